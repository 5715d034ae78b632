package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransactionType 交易类型
type TransactionType string

const (
	TxIncome   TransactionType = "income"
	TxExpense  TransactionType = "expense"
	TxTransfer TransactionType = "transfer"
)

func (t TransactionType) Valid() bool {
	switch t {
	case TxIncome, TxExpense, TxTransfer:
		return true
	}
	return false
}

// AllTransactionTypes 全部交易类型
func AllTransactionTypes() []TransactionType {
	return []TransactionType{TxIncome, TxExpense, TxTransfer}
}

// Transaction 交易流水
// Amount 始终为非负数，方向由 Type 决定
type Transaction struct {
	ID              string          `json:"id" gorm:"primaryKey;size:36"`
	AccountID       string          `json:"account_id" gorm:"size:36;not null;index"`
	CategoryID      string          `json:"category_id" gorm:"size:36;index"`
	Amount          decimal.Decimal `json:"amount" gorm:"type:decimal(15,2);not null"`
	Description     string          `json:"description" gorm:"size:255"`
	Date            time.Time       `json:"date" gorm:"not null;index"`
	Type            TransactionType `json:"type" gorm:"size:10;not null;index"`
	Tags            []string        `json:"tags,omitempty" gorm:"serializer:json;type:text"`
	TargetAccountID *string         `json:"target_account_id,omitempty" gorm:"size:36;index"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	DeletedAt       gorm.DeletedAt  `json:"-" gorm:"index"`
}

func (Transaction) TableName() string {
	return "transactions"
}

// Target 返回转入账户ID，非转账返回空串
func (t *Transaction) Target() string {
	if t.Type != TxTransfer || t.TargetAccountID == nil {
		return ""
	}
	return *t.TargetAccountID
}

// Validate 校验交易字段
func (t *Transaction) Validate() error {
	if t.AccountID == "" {
		return invalid("account_id", ErrMissingAccount)
	}
	if !t.Type.Valid() {
		return invalid("type", ErrInvalidTxType)
	}
	if t.Amount.IsNegative() {
		return invalid("amount", ErrNegativeAmount)
	}
	if t.Type == TxTransfer {
		target := t.Target()
		if target == "" {
			return invalid("target_account_id", ErrMissingTarget)
		}
		if target == t.AccountID {
			return invalid("target_account_id", ErrSameAccountTransfer)
		}
		return nil
	}
	if t.TargetAccountID != nil && *t.TargetAccountID != "" {
		return invalid("target_account_id", ErrUnexpectedTarget)
	}
	return nil
}
