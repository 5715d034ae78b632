package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BudgetPeriod 预算周期
type BudgetPeriod string

const (
	PeriodWeekly  BudgetPeriod = "weekly"
	PeriodMonthly BudgetPeriod = "monthly"
	PeriodYearly  BudgetPeriod = "yearly"
)

func (p BudgetPeriod) Valid() bool {
	switch p {
	case PeriodWeekly, PeriodMonthly, PeriodYearly:
		return true
	}
	return false
}

// Budget 类别预算，AccountID 为空表示不限账户
type Budget struct {
	ID         string          `json:"id" gorm:"primaryKey;size:36"`
	CategoryID string          `json:"category_id" gorm:"size:36;not null;index"`
	Amount     decimal.Decimal `json:"amount" gorm:"type:decimal(15,2);not null"`
	Period     BudgetPeriod    `json:"period" gorm:"size:10;not null"`
	StartDate  time.Time       `json:"start_date" gorm:"not null"`
	AccountID  *string         `json:"account_id,omitempty" gorm:"size:36;index"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
	DeletedAt  gorm.DeletedAt  `json:"-" gorm:"index"`
}

func (Budget) TableName() string {
	return "budgets"
}

// Validate 校验预算字段
func (b *Budget) Validate() error {
	if b.CategoryID == "" {
		return invalid("category_id", ErrMissingCategory)
	}
	if b.Amount.IsNegative() {
		return invalid("amount", ErrNegativeAmount)
	}
	if !b.Period.Valid() {
		return invalid("period", ErrInvalidPeriod)
	}
	return nil
}
