package aggregator

import (
	"ledgerboard/models"

	"github.com/shopspring/decimal"
)

// AccountBalance 计算账户的流水净额（不含初始余额）
// 收入 +amount，支出 -amount，作为转出方 -amount，作为转入方 +amount
func AccountBalance(accountID string, txs []models.Transaction) decimal.Decimal {
	total := decimal.Zero
	for i := range txs {
		total = total.Add(delta(accountID, &txs[i]))
	}
	return total
}

// DisplayedBalance 账户当前余额 = 初始余额 + 流水净额
func DisplayedBalance(account models.Account, txs []models.Transaction) decimal.Decimal {
	return account.InitialBalance.Add(AccountBalance(account.ID, txs))
}

// TotalBalance 所有账户当前余额之和
func TotalBalance(accounts []models.Account, txs []models.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, b := range Balances(accounts, txs) {
		total = total.Add(b)
	}
	return total
}

// Balances 一次遍历计算每个账户的当前余额
func Balances(accounts []models.Account, txs []models.Transaction) map[string]decimal.Decimal {
	running := make(map[string]decimal.Decimal, len(accounts))
	for _, a := range accounts {
		running[a.ID] = a.InitialBalance
	}
	for i := range txs {
		apply(running, &txs[i])
	}
	return running
}

func delta(accountID string, t *models.Transaction) decimal.Decimal {
	d := decimal.Zero
	if t.AccountID == accountID {
		switch t.Type {
		case models.TxIncome:
			d = d.Add(t.Amount)
		case models.TxExpense, models.TxTransfer:
			d = d.Sub(t.Amount)
		}
	}
	if t.Target() == accountID && accountID != "" {
		d = d.Add(t.Amount)
	}
	return d
}

// apply 把一笔交易记入 running，只更新已存在的账户
func apply(running map[string]decimal.Decimal, t *models.Transaction) {
	if b, ok := running[t.AccountID]; ok {
		running[t.AccountID] = b.Add(delta(t.AccountID, t))
	}
	if target := t.Target(); target != "" && target != t.AccountID {
		if b, ok := running[target]; ok {
			running[target] = b.Add(t.Amount)
		}
	}
}
