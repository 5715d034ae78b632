package database

import (
	"context"
	"fmt"

	"ledgerboard/aggregator"
	"ledgerboard/models"
	"ledgerboard/store"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var _ store.Repository = (*Repository)(nil)

// Repository 账本的 gorm 持久化实现，每个实体集合一张表，按ID主键存储
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Load 读取全部未删除的实体
func (r *Repository) Load(ctx context.Context) (*aggregator.Snapshot, error) {
	db := r.db.WithContext(ctx)

	var accounts []models.Account
	if err := db.Order("created_at ASC").Find(&accounts).Error; err != nil {
		return nil, fmt.Errorf("加载账户失败: %w", err)
	}
	var categories []models.Category
	if err := db.Order("created_at ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("加载类别失败: %w", err)
	}
	var txs []models.Transaction
	if err := db.Order("date ASC").Find(&txs).Error; err != nil {
		return nil, fmt.Errorf("加载交易失败: %w", err)
	}
	var budgets []models.Budget
	if err := db.Order("created_at ASC").Find(&budgets).Error; err != nil {
		return nil, fmt.Errorf("加载预算失败: %w", err)
	}
	return aggregator.NewSnapshot(accounts, txs, categories, budgets), nil
}

// upsert 按主键插入或整体更新
func (r *Repository) upsert(ctx context.Context, value interface{}) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(value).Error
}

func (r *Repository) SaveAccount(ctx context.Context, a *models.Account) error {
	if err := r.upsert(ctx, a); err != nil {
		return fmt.Errorf("保存账户失败: %w", err)
	}
	return nil
}

func (r *Repository) DeleteAccount(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Delete(&models.Account{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("删除账户失败: %w", err)
	}
	return nil
}

func (r *Repository) SaveCategory(ctx context.Context, c *models.Category) error {
	if err := r.upsert(ctx, c); err != nil {
		return fmt.Errorf("保存类别失败: %w", err)
	}
	return nil
}

func (r *Repository) DeleteCategory(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Delete(&models.Category{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("删除类别失败: %w", err)
	}
	return nil
}

func (r *Repository) SaveTransaction(ctx context.Context, t *models.Transaction) error {
	if err := r.upsert(ctx, t); err != nil {
		return fmt.Errorf("保存交易失败: %w", err)
	}
	return nil
}

func (r *Repository) DeleteTransaction(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Delete(&models.Transaction{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("删除交易失败: %w", err)
	}
	return nil
}

func (r *Repository) SaveBudget(ctx context.Context, b *models.Budget) error {
	if err := r.upsert(ctx, b); err != nil {
		return fmt.Errorf("保存预算失败: %w", err)
	}
	return nil
}

func (r *Repository) DeleteBudget(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Delete(&models.Budget{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("删除预算失败: %w", err)
	}
	return nil
}
