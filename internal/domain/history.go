package domain

import "time"

// Action identifies the kind of mutation a history entry records.
type Action string

const (
	ActionCreated    Action = "created"
	ActionUpdated    Action = "updated"
	ActionDeleted    Action = "deleted"
	ActionMoved      Action = "moved"
	ActionDuplicated Action = "duplicated"
)

// HistoryEntry is an immutable audit record of one mutating action taken
// against a product. ProductID is a weak reference: the product may be
// deleted later while its history rows persist, so there is no foreign key.
type HistoryEntry struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Action    Action    `gorm:"size:20;index" json:"action"`
	ProductID int64     `gorm:"index" json:"product_id"`
	Details   string    `gorm:"size:255" json:"details"`
	Timestamp time.Time `gorm:"index" json:"timestamp"`
}

// TableName Specify table name
func (HistoryEntry) TableName() string {
	return "history"
}
