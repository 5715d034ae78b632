package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AccountType 账户类型
type AccountType string

const (
	AccountBank        AccountType = "bank"
	AccountCash        AccountType = "cash"
	AccountMobileMoney AccountType = "mobile_money"
	AccountCreditCard  AccountType = "credit_card"
	AccountInvestment  AccountType = "investment"
)

func (t AccountType) Valid() bool {
	switch t {
	case AccountBank, AccountCash, AccountMobileMoney, AccountCreditCard, AccountInvestment:
		return true
	}
	return false
}

// DefaultCurrency 未指定币种时使用
const DefaultCurrency = "USD"

// Account 账户模型
// 当前余额不落库，始终由交易流水推导
type Account struct {
	ID             string          `json:"id" gorm:"primaryKey;size:36"`
	Name           string          `json:"name" gorm:"size:100;not null"`
	Type           AccountType     `json:"type" gorm:"size:20;not null"`
	Currency       string          `json:"currency" gorm:"size:3;not null;default:USD"`
	Icon           string          `json:"icon,omitempty" gorm:"size:50"`
	Color          string          `json:"color,omitempty" gorm:"size:20"`
	InitialBalance decimal.Decimal `json:"initial_balance" gorm:"type:decimal(15,2);not null"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	DeletedAt      gorm.DeletedAt  `json:"-" gorm:"index"`
}

func (Account) TableName() string {
	return "accounts"
}

// Validate 校验账户字段
func (a *Account) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return invalid("name", ErrEmptyName)
	}
	if !a.Type.Valid() {
		return invalid("type", ErrInvalidAccountType)
	}
	return nil
}
