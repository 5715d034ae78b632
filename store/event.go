package store

import "time"

// 实体名称
const (
	EntityAccount     = "account"
	EntityCategory    = "category"
	EntityTransaction = "transaction"
	EntityBudget      = "budget"
)

// 变更动作
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// Event 一次已提交的变更
type Event struct {
	Entity string    `json:"entity"`
	Action string    `json:"action"`
	ID     string    `json:"id"`
	At     time.Time `json:"at"`
}
