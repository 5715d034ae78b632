package store

import (
	"context"

	"ledgerboard/aggregator"
	"ledgerboard/models"
)

func categoryID(c *models.Category) string { return c.ID }

// checkParent 父类别必须存在且本身是顶级类别
func checkParent(cur *aggregator.Snapshot, c *models.Category) error {
	if c.ParentID == nil || *c.ParentID == "" {
		c.ParentID = nil
		return nil
	}
	idx := cur.Index()
	parent, ok := idx.Category(*c.ParentID)
	if !ok {
		return &models.ValidationError{Field: "parent_id", Err: ErrUnknownParent}
	}
	if parent.ParentID != nil && *parent.ParentID != "" {
		return &models.ValidationError{Field: "parent_id", Err: ErrNestedTooDeep}
	}
	if c.ID != "" && len(idx.Children(c.ID)) > 0 {
		return &models.ValidationError{Field: "parent_id", Err: ErrHasChildren}
	}
	return nil
}

// AddCategory 新增类别
func (s *Store) AddCategory(ctx context.Context, c models.Category) (models.Category, error) {
	c.ID = s.newID()
	if c.Color == "" {
		c.Color = models.DefaultCategoryColor
	}
	if err := c.Validate(); err != nil {
		return models.Category{}, err
	}
	c.CreatedAt = s.now()
	c.UpdatedAt = c.CreatedAt

	err := s.commit(ctx, Event{Entity: EntityCategory, Action: ActionCreated, ID: c.ID}, func(cur *aggregator.Snapshot) (*aggregator.Snapshot, error) {
		if err := checkParent(cur, &c); err != nil {
			return nil, err
		}
		if err := s.persist(func(r Repository) error { return r.SaveCategory(ctx, &c) }); err != nil {
			return nil, err
		}
		return aggregator.NewSnapshot(cur.Accounts, cur.Transactions, appended(cur.Categories, c), cur.Budgets), nil
	})
	if err != nil {
		return models.Category{}, err
	}
	return c, nil
}

// UpdateCategory 整体替换类别
func (s *Store) UpdateCategory(ctx context.Context, c models.Category) (models.Category, error) {
	if c.Color == "" {
		c.Color = models.DefaultCategoryColor
	}
	if err := c.Validate(); err != nil {
		return models.Category{}, err
	}

	err := s.commit(ctx, Event{Entity: EntityCategory, Action: ActionUpdated, ID: c.ID}, func(cur *aggregator.Snapshot) (*aggregator.Snapshot, error) {
		i := indexByID(cur.Categories, c.ID, categoryID)
		if i < 0 {
			return nil, ErrNotFound
		}
		if err := checkParent(cur, &c); err != nil {
			return nil, err
		}
		c.CreatedAt = cur.Categories[i].CreatedAt
		c.UpdatedAt = s.now()
		if err := s.persist(func(r Repository) error { return r.SaveCategory(ctx, &c) }); err != nil {
			return nil, err
		}
		return aggregator.NewSnapshot(cur.Accounts, cur.Transactions, replaced(cur.Categories, i, c), cur.Budgets), nil
	})
	if err != nil {
		return models.Category{}, err
	}
	return c, nil
}

// DeleteCategory 删除类别，引用它的交易展示为未分类
func (s *Store) DeleteCategory(ctx context.Context, id string) error {
	return s.commit(ctx, Event{Entity: EntityCategory, Action: ActionDeleted, ID: id}, func(cur *aggregator.Snapshot) (*aggregator.Snapshot, error) {
		i := indexByID(cur.Categories, id, categoryID)
		if i < 0 {
			return nil, ErrNotFound
		}
		if err := s.persist(func(r Repository) error { return r.DeleteCategory(ctx, id) }); err != nil {
			return nil, err
		}
		return aggregator.NewSnapshot(cur.Accounts, cur.Transactions, removed(cur.Categories, i), cur.Budgets), nil
	})
}
