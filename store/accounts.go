package store

import (
	"context"

	"ledgerboard/aggregator"
	"ledgerboard/models"
)

func accountID(a *models.Account) string { return a.ID }

// AddAccount 新增账户并分配新ID
func (s *Store) AddAccount(ctx context.Context, a models.Account) (models.Account, error) {
	a.ID = s.newID()
	if a.Currency == "" {
		a.Currency = models.DefaultCurrency
	}
	if err := a.Validate(); err != nil {
		return models.Account{}, err
	}
	a.CreatedAt = s.now()
	a.UpdatedAt = a.CreatedAt

	err := s.commit(ctx, Event{Entity: EntityAccount, Action: ActionCreated, ID: a.ID}, func(cur *aggregator.Snapshot) (*aggregator.Snapshot, error) {
		if err := s.persist(func(r Repository) error { return r.SaveAccount(ctx, &a) }); err != nil {
			return nil, err
		}
		return aggregator.NewSnapshot(appended(cur.Accounts, a), cur.Transactions, cur.Categories, cur.Budgets), nil
	})
	if err != nil {
		return models.Account{}, err
	}
	return a, nil
}

// UpdateAccount 整体替换账户
func (s *Store) UpdateAccount(ctx context.Context, a models.Account) (models.Account, error) {
	if a.Currency == "" {
		a.Currency = models.DefaultCurrency
	}
	if err := a.Validate(); err != nil {
		return models.Account{}, err
	}

	err := s.commit(ctx, Event{Entity: EntityAccount, Action: ActionUpdated, ID: a.ID}, func(cur *aggregator.Snapshot) (*aggregator.Snapshot, error) {
		i := indexByID(cur.Accounts, a.ID, accountID)
		if i < 0 {
			return nil, ErrNotFound
		}
		a.CreatedAt = cur.Accounts[i].CreatedAt
		a.UpdatedAt = s.now()
		if err := s.persist(func(r Repository) error { return r.SaveAccount(ctx, &a) }); err != nil {
			return nil, err
		}
		return aggregator.NewSnapshot(replaced(cur.Accounts, i, a), cur.Transactions, cur.Categories, cur.Budgets), nil
	})
	if err != nil {
		return models.Account{}, err
	}
	return a, nil
}

// DeleteAccount 删除账户，已有交易保留（展示为未知账户）
func (s *Store) DeleteAccount(ctx context.Context, id string) error {
	return s.commit(ctx, Event{Entity: EntityAccount, Action: ActionDeleted, ID: id}, func(cur *aggregator.Snapshot) (*aggregator.Snapshot, error) {
		i := indexByID(cur.Accounts, id, accountID)
		if i < 0 {
			return nil, ErrNotFound
		}
		if err := s.persist(func(r Repository) error { return r.DeleteAccount(ctx, id) }); err != nil {
			return nil, err
		}
		return aggregator.NewSnapshot(removed(cur.Accounts, i), cur.Transactions, cur.Categories, cur.Budgets), nil
	})
}
