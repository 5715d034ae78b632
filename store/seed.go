package store

import (
	"context"
	"fmt"
	"time"

	"ledgerboard/logger"
	"ledgerboard/models"

	"github.com/shopspring/decimal"
)

// defaultCategories 空账本的默认类别
var defaultCategories = []models.Category{
	{Name: "Salary", Type: models.CategoryIncome, Color: "#10B981"},
	{Name: "Freelance", Type: models.CategoryIncome, Color: "#3B82F6"},
	{Name: "Groceries", Type: models.CategoryExpense, Color: "#F59E0B"},
	{Name: "Rent", Type: models.CategoryExpense, Color: "#EF4444"},
	{Name: "Entertainment", Type: models.CategoryExpense, Color: "#8B5CF6"},
	{Name: "Transportation", Type: models.CategoryExpense, Color: "#EC4899"},
	{Name: "Utilities", Type: models.CategoryExpense, Color: "#6366F1"},
	{Name: "Investments", Type: models.CategoryExpense, Color: "#14B8A6"},
}

// SeedCategories 类别为空时写入默认类别
func (s *Store) SeedCategories(ctx context.Context) error {
	if len(s.Snapshot().Categories) > 0 {
		return nil
	}
	for _, c := range defaultCategories {
		if _, err := s.AddCategory(ctx, c); err != nil {
			return fmt.Errorf("初始化默认类别失败: %w", err)
		}
	}
	logger.L().Infof("已初始化 %d 个默认类别", len(defaultCategories))
	return nil
}

// SeedDemo 没有账户时写入演示账户、预算和本月的几笔固定交易
func (s *Store) SeedDemo(ctx context.Context) error {
	if len(s.Snapshot().Accounts) > 0 {
		return nil
	}
	if err := s.SeedCategories(ctx); err != nil {
		return err
	}

	demoAccounts := []models.Account{
		{Name: "Main Bank Account", Type: models.AccountBank, Color: "#3B82F6", InitialBalance: decimal.NewFromInt(5000)},
		{Name: "Savings", Type: models.AccountBank, Color: "#10B981", InitialBalance: decimal.NewFromInt(10000)},
		{Name: "Cash Wallet", Type: models.AccountCash, Color: "#F59E0B", InitialBalance: decimal.NewFromInt(500)},
		{Name: "Mobile Money", Type: models.AccountMobileMoney, Color: "#8B5CF6", InitialBalance: decimal.NewFromInt(750)},
	}
	accounts := make([]models.Account, 0, len(demoAccounts))
	for _, a := range demoAccounts {
		created, err := s.AddAccount(ctx, a)
		if err != nil {
			return fmt.Errorf("初始化演示账户失败: %w", err)
		}
		accounts = append(accounts, created)
	}

	byName := make(map[string]string)
	for _, c := range s.Snapshot().Categories {
		byName[c.Name] = c.ID
	}

	now := s.now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	savings := accounts[1].ID
	demoTxs := []models.Transaction{
		{AccountID: accounts[0].ID, CategoryID: byName["Salary"], Amount: decimal.NewFromInt(4500), Description: "Monthly Salary", Date: monthStart, Type: models.TxIncome},
		{AccountID: accounts[0].ID, CategoryID: byName["Freelance"], Amount: decimal.NewFromInt(1200), Description: "Website Development Project", Date: monthStart.AddDate(0, 0, 14), Type: models.TxIncome},
		{AccountID: accounts[0].ID, CategoryID: byName["Investments"], Amount: decimal.NewFromInt(1000), Description: "Transfer to savings", Date: monthStart.AddDate(0, 0, 4), Type: models.TxTransfer, TargetAccountID: &savings},
	}
	for _, t := range demoTxs {
		if _, err := s.AddTransaction(ctx, t); err != nil {
			return fmt.Errorf("初始化演示交易失败: %w", err)
		}
	}

	for _, item := range []struct {
		category string
		amount   int64
	}{
		{"Groceries", 500},
		{"Entertainment", 300},
		{"Transportation", 200},
		{"Utilities", 150},
	} {
		b := models.Budget{CategoryID: byName[item.category], Amount: decimal.NewFromInt(item.amount), Period: models.PeriodMonthly, StartDate: monthStart}
		if _, err := s.AddBudget(ctx, b); err != nil {
			return fmt.Errorf("初始化演示预算失败: %w", err)
		}
	}
	logger.L().Infof("已写入演示数据: %d 个账户, %d 笔交易", len(accounts), len(demoTxs))
	return nil
}
