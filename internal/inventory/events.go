package inventory

import "stockd/internal/domain"

// EventBus topics published by the store after a mutation commits.
const (
	TopicProductChanged = "inventory:product.changed"
	TopicStockMoved     = "inventory:stock.moved"
)

// ChangeEvent describes one committed mutation.
type ChangeEvent struct {
	Action    domain.Action
	ProductID int64
	Name      string
	Quantity  int
}

// Bus is the minimal publishing surface the store needs. It matches
// EventBus.Bus so the application bus can be injected directly.
type Bus interface {
	Publish(topic string, args ...interface{})
}

type nopBus struct{}

func (nopBus) Publish(string, ...interface{}) {}
