package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Field bounds enforced by the validators and the schema.
const (
	NameMinLen     = 2
	NameMaxLen     = 50
	QuantityMax    = 99999
	CategoryMaxLen = 30
	DescMaxLen     = 200
	SupplierMaxLen = 50
)

// PriceMax is the upper bound for a product price.
var PriceMax = decimal.RequireFromString("999999.99")

// Sentinel defaults substituted when an optional field is blank.
const (
	DefaultCategory = "uncategorized"
	DefaultSupplier = "unknown"
)

// Product represents a named, quantified, priced inventory item.
// Name is unique across all products, case-sensitive as stored.
type Product struct {
	ID          int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string          `gorm:"size:50;uniqueIndex" json:"name"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2)" json:"price"`
	Category    string          `gorm:"size:30" json:"category"`
	Description string          `gorm:"size:200" json:"description"`
	Supplier    string          `gorm:"size:50" json:"supplier"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// TableName Specify table name
func (Product) TableName() string {
	return "products"
}
