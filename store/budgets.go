package store

import (
	"context"

	"ledgerboard/aggregator"
	"ledgerboard/models"
)

func budgetID(b *models.Budget) string { return b.ID }

// AddBudget 新增预算，StartDate 默认为当前时间
func (s *Store) AddBudget(ctx context.Context, b models.Budget) (models.Budget, error) {
	b.ID = s.newID()
	if b.StartDate.IsZero() {
		b.StartDate = s.now()
	}
	if err := b.Validate(); err != nil {
		return models.Budget{}, err
	}
	b.CreatedAt = s.now()
	b.UpdatedAt = b.CreatedAt

	err := s.commit(ctx, Event{Entity: EntityBudget, Action: ActionCreated, ID: b.ID}, func(cur *aggregator.Snapshot) (*aggregator.Snapshot, error) {
		if err := s.persist(func(r Repository) error { return r.SaveBudget(ctx, &b) }); err != nil {
			return nil, err
		}
		return aggregator.NewSnapshot(cur.Accounts, cur.Transactions, cur.Categories, appended(cur.Budgets, b)), nil
	})
	if err != nil {
		return models.Budget{}, err
	}
	return b, nil
}

// UpdateBudget 整体替换预算
func (s *Store) UpdateBudget(ctx context.Context, b models.Budget) (models.Budget, error) {
	if err := b.Validate(); err != nil {
		return models.Budget{}, err
	}

	err := s.commit(ctx, Event{Entity: EntityBudget, Action: ActionUpdated, ID: b.ID}, func(cur *aggregator.Snapshot) (*aggregator.Snapshot, error) {
		i := indexByID(cur.Budgets, b.ID, budgetID)
		if i < 0 {
			return nil, ErrNotFound
		}
		if b.StartDate.IsZero() {
			b.StartDate = cur.Budgets[i].StartDate
		}
		b.CreatedAt = cur.Budgets[i].CreatedAt
		b.UpdatedAt = s.now()
		if err := s.persist(func(r Repository) error { return r.SaveBudget(ctx, &b) }); err != nil {
			return nil, err
		}
		return aggregator.NewSnapshot(cur.Accounts, cur.Transactions, cur.Categories, replaced(cur.Budgets, i, b)), nil
	})
	if err != nil {
		return models.Budget{}, err
	}
	return b, nil
}

// DeleteBudget 删除预算
func (s *Store) DeleteBudget(ctx context.Context, id string) error {
	return s.commit(ctx, Event{Entity: EntityBudget, Action: ActionDeleted, ID: id}, func(cur *aggregator.Snapshot) (*aggregator.Snapshot, error) {
		i := indexByID(cur.Budgets, id, budgetID)
		if i < 0 {
			return nil, ErrNotFound
		}
		if err := s.persist(func(r Repository) error { return r.DeleteBudget(ctx, id) }); err != nil {
			return nil, err
		}
		return aggregator.NewSnapshot(cur.Accounts, cur.Transactions, cur.Categories, removed(cur.Budgets, i)), nil
	})
}
