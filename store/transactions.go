package store

import (
	"context"

	"ledgerboard/aggregator"
	"ledgerboard/models"
)

func transactionID(t *models.Transaction) string { return t.ID }

func checkAccounts(cur *aggregator.Snapshot, t *models.Transaction) error {
	idx := cur.Index()
	if _, ok := idx.Account(t.AccountID); !ok {
		return &models.ValidationError{Field: "account_id", Err: ErrUnknownAccount}
	}
	if target := t.Target(); target != "" {
		if _, ok := idx.Account(target); !ok {
			return &models.ValidationError{Field: "target_account_id", Err: ErrUnknownAccount}
		}
	}
	return nil
}

// AddTransaction 记一笔，未指定日期时取当前时间
func (s *Store) AddTransaction(ctx context.Context, t models.Transaction) (models.Transaction, error) {
	t.ID = s.newTxID()
	if t.Date.IsZero() {
		t.Date = s.now()
	}
	if err := t.Validate(); err != nil {
		return models.Transaction{}, err
	}
	t.CreatedAt = s.now()
	t.UpdatedAt = t.CreatedAt

	err := s.commit(ctx, Event{Entity: EntityTransaction, Action: ActionCreated, ID: t.ID}, func(cur *aggregator.Snapshot) (*aggregator.Snapshot, error) {
		if err := checkAccounts(cur, &t); err != nil {
			return nil, err
		}
		if err := s.persist(func(r Repository) error { return r.SaveTransaction(ctx, &t) }); err != nil {
			return nil, err
		}
		return aggregator.NewSnapshot(cur.Accounts, appended(cur.Transactions, t), cur.Categories, cur.Budgets), nil
	})
	if err != nil {
		return models.Transaction{}, err
	}
	return t, nil
}

// UpdateTransaction 整体替换交易
func (s *Store) UpdateTransaction(ctx context.Context, t models.Transaction) (models.Transaction, error) {
	if err := t.Validate(); err != nil {
		return models.Transaction{}, err
	}

	err := s.commit(ctx, Event{Entity: EntityTransaction, Action: ActionUpdated, ID: t.ID}, func(cur *aggregator.Snapshot) (*aggregator.Snapshot, error) {
		i := indexByID(cur.Transactions, t.ID, transactionID)
		if i < 0 {
			return nil, ErrNotFound
		}
		if t.Date.IsZero() {
			t.Date = cur.Transactions[i].Date
		}
		if err := checkAccounts(cur, &t); err != nil {
			return nil, err
		}
		t.CreatedAt = cur.Transactions[i].CreatedAt
		t.UpdatedAt = s.now()
		if err := s.persist(func(r Repository) error { return r.SaveTransaction(ctx, &t) }); err != nil {
			return nil, err
		}
		return aggregator.NewSnapshot(cur.Accounts, replaced(cur.Transactions, i, t), cur.Categories, cur.Budgets), nil
	})
	if err != nil {
		return models.Transaction{}, err
	}
	return t, nil
}

// DeleteTransaction 删除交易
func (s *Store) DeleteTransaction(ctx context.Context, id string) error {
	return s.commit(ctx, Event{Entity: EntityTransaction, Action: ActionDeleted, ID: id}, func(cur *aggregator.Snapshot) (*aggregator.Snapshot, error) {
		i := indexByID(cur.Transactions, id, transactionID)
		if i < 0 {
			return nil, ErrNotFound
		}
		if err := s.persist(func(r Repository) error { return r.DeleteTransaction(ctx, id) }); err != nil {
			return nil, err
		}
		return aggregator.NewSnapshot(cur.Accounts, removed(cur.Transactions, i), cur.Categories, cur.Budgets), nil
	})
}
