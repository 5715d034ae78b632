package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// CategoryType 类别类型
type CategoryType string

const (
	CategoryIncome  CategoryType = "income"
	CategoryExpense CategoryType = "expense"
)

func (t CategoryType) Valid() bool {
	return t == CategoryIncome || t == CategoryExpense
}

// DefaultCategoryColor 未指定颜色时的默认灰色
const DefaultCategoryColor = "#64748b"

// Category 收支类别，ParentID 最多形成一层嵌套
type Category struct {
	ID        string         `json:"id" gorm:"primaryKey;size:36"`
	Name      string         `json:"name" gorm:"size:50;not null"`
	Type      CategoryType   `json:"type" gorm:"size:10;not null;index"`
	Color     string         `json:"color" gorm:"size:20;default:#64748b"` // 颜色代码，如 #ef4444
	Icon      string         `json:"icon,omitempty" gorm:"size:50"`
	ParentID  *string        `json:"parent_id,omitempty" gorm:"size:36;index"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Category) TableName() string {
	return "categories"
}

// Validate 校验类别字段
func (c *Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return invalid("name", ErrEmptyName)
	}
	if !c.Type.Valid() {
		return invalid("type", ErrInvalidCategoryType)
	}
	if c.ParentID != nil && *c.ParentID != "" && *c.ParentID == c.ID {
		return invalid("parent_id", ErrSelfParent)
	}
	return nil
}
