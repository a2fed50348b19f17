package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"stockd/internal/domain"
)

// Store owns the persistent product and history collections. Every
// mutation writes the product row and its audit row in one transaction:
// both commit or both roll back. Callers never touch storage directly.
type Store struct {
	db  *gorm.DB
	bus Bus
	log *zap.Logger
}

// NewStore creates a store around an injected database handle. The bus
// and logger may be nil.
func NewStore(db *gorm.DB, bus Bus, log *zap.Logger) *Store {
	if bus == nil {
		bus = nopBus{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{db: db, bus: bus, log: log}
}

// CreateParams carries raw caller input for Create. Category, Description
// and Supplier are optional; blanks fall back to their defaults.
type CreateParams struct {
	Name        string
	Quantity    string
	Price       string
	Category    string
	Description string
	Supplier    string
}

// UpdateParams carries a subset of fields for Update. A nil pointer means
// the field was omitted and is left unchanged; an empty string clears an
// optional field back to its default.
type UpdateParams struct {
	Quantity    *string
	Price       *string
	Category    *string
	Description *string
	Supplier    *string
}

// Report is the aggregate view over all products.
type Report struct {
	Count         int
	TotalQuantity int
	TotalValue    decimal.Decimal
}

// Create validates all fields, inserts the product and its "created"
// history entry atomically, and returns the stored product.
func (s *Store) Create(ctx context.Context, params CreateParams) (*domain.Product, error) {
	name, err := ValidateName(params.Name)
	if err != nil {
		return nil, err
	}
	qty, err := ValidateQuantity(params.Quantity)
	if err != nil {
		return nil, err
	}
	price, err := ValidatePrice(params.Price)
	if err != nil {
		return nil, err
	}
	category, err := ValidateCategory(params.Category)
	if err != nil {
		return nil, err
	}
	desc, err := ValidateDescription(params.Description)
	if err != nil {
		return nil, err
	}
	supplier, err := ValidateSupplier(params.Supplier)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	product := domain.Product{
		Name:        name,
		Quantity:    qty,
		Price:       price,
		Category:    category,
		Description: desc,
		Supplier:    supplier,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.checkNameFree(tx, name); err != nil {
			return err
		}
		if err := tx.Create(&product).Error; err != nil {
			return translateErr("create product", name, err)
		}
		details := fmt.Sprintf("Product %q created (qty: %d, price: %s)", name, qty, price)
		return s.writeHistory(tx, domain.ActionCreated, product.ID, details)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("product created",
		zap.Int64("id", product.ID),
		zap.String("name", product.Name),
		zap.Int("quantity", product.Quantity))
	s.bus.Publish(TopicProductChanged, ChangeEvent{
		Action:    domain.ActionCreated,
		ProductID: product.ID,
		Name:      product.Name,
		Quantity:  product.Quantity,
	})
	return &product, nil
}

// List returns all products ordered by id ascending. An empty result is
// not an error.
func (s *Store) List(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&products).Error; err != nil {
		return nil, translateErr("list products", "", err)
	}
	return products, nil
}

// Get returns one product by id.
func (s *Store) Get(ctx context.Context, id int64) (*domain.Product, error) {
	return s.getByID(s.db.WithContext(ctx), id)
}

// Update applies the supplied subset of fields and writes an "updated"
// history entry atomically. Omitted fields are neither validated nor
// changed. With no fields supplied it fails with ErrNothingToUpdate.
func (s *Store) Update(ctx context.Context, id int64, params UpdateParams) (*domain.Product, error) {
	var product *domain.Product

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := s.getByID(tx, id)
		if err != nil {
			return err
		}

		updates := map[string]interface{}{}
		var fragments []string

		if params.Quantity != nil {
			qty, err := ValidateQuantity(*params.Quantity)
			if err != nil {
				return err
			}
			updates["quantity"] = qty
			current.Quantity = qty
			fragments = append(fragments, fmt.Sprintf("Qty=%d", qty))
		}
		if params.Price != nil {
			price, err := ValidatePrice(*params.Price)
			if err != nil {
				return err
			}
			updates["price"] = price
			current.Price = price
			fragments = append(fragments, fmt.Sprintf("Price=%s", price))
		}
		if params.Category != nil {
			category, err := ValidateCategory(*params.Category)
			if err != nil {
				return err
			}
			updates["category"] = category
			current.Category = category
			fragments = append(fragments, fmt.Sprintf("Category=%q", category))
		}
		if params.Description != nil {
			desc, err := ValidateDescription(*params.Description)
			if err != nil {
				return err
			}
			updates["description"] = desc
			current.Description = desc
			fragments = append(fragments, fmt.Sprintf("Desc=%q", desc))
		}
		if params.Supplier != nil {
			supplier, err := ValidateSupplier(*params.Supplier)
			if err != nil {
				return err
			}
			updates["supplier"] = supplier
			current.Supplier = supplier
			fragments = append(fragments, fmt.Sprintf("Supplier=%q", supplier))
		}

		if len(updates) == 0 {
			return ErrNothingToUpdate
		}

		now := time.Now()
		updates["updated_at"] = now
		current.UpdatedAt = now

		if err := tx.Model(&domain.Product{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return translateErr("update product", current.Name, err)
		}
		if err := s.writeHistory(tx, domain.ActionUpdated, id, strings.Join(fragments, "; ")); err != nil {
			return err
		}
		product = current
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("product updated", zap.Int64("id", product.ID), zap.String("name", product.Name))
	s.bus.Publish(TopicProductChanged, ChangeEvent{
		Action:    domain.ActionUpdated,
		ProductID: product.ID,
		Name:      product.Name,
		Quantity:  product.Quantity,
	})
	return product, nil
}

// Delete hard-removes the product and writes a "deleted" history entry in
// the same transaction. The history row outlives the product.
func (s *Store) Delete(ctx context.Context, id int64) (*domain.Product, error) {
	var product *domain.Product

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := s.getByID(tx, id)
		if err != nil {
			return err
		}
		if err := tx.Delete(&domain.Product{}, id).Error; err != nil {
			return translateErr("delete product", current.Name, err)
		}
		details := fmt.Sprintf("Product %q removed", current.Name)
		if err := s.writeHistory(tx, domain.ActionDeleted, id, details); err != nil {
			return err
		}
		product = current
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("product deleted", zap.Int64("id", product.ID), zap.String("name", product.Name))
	s.bus.Publish(TopicProductChanged, ChangeEvent{
		Action:    domain.ActionDeleted,
		ProductID: product.ID,
		Name:      product.Name,
	})
	return product, nil
}

// Move applies a signed quantity delta: positive is stock in, negative is
// stock out. A delta that would take the quantity below zero fails with
// NegativeStockError and leaves the product untouched.
func (s *Store) Move(ctx context.Context, id int64, delta int) (*domain.Product, error) {
	var product *domain.Product

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := s.getByID(tx, id)
		if err != nil {
			return err
		}

		newQty := current.Quantity + delta
		if newQty < 0 {
			return &NegativeStockError{Name: current.Name, Current: current.Quantity, Delta: delta}
		}
		if err := checkQuantityRange(newQty); err != nil {
			return err
		}

		now := time.Now()
		updates := map[string]interface{}{
			"quantity":   newQty,
			"updated_at": now,
		}
		if err := tx.Model(&domain.Product{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return translateErr("move stock", current.Name, err)
		}

		direction := "in"
		if delta < 0 {
			direction = "out"
		}
		magnitude := delta
		if magnitude < 0 {
			magnitude = -magnitude
		}
		details := fmt.Sprintf("Stock %s of %d units, resulting quantity %d", direction, magnitude, newQty)
		if err := s.writeHistory(tx, domain.ActionMoved, id, details); err != nil {
			return err
		}

		current.Quantity = newQty
		current.UpdatedAt = now
		product = current
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("stock moved",
		zap.Int64("id", product.ID),
		zap.String("name", product.Name),
		zap.Int("delta", delta),
		zap.Int("quantity", product.Quantity))
	s.bus.Publish(TopicStockMoved, ChangeEvent{
		Action:    domain.ActionMoved,
		ProductID: product.ID,
		Name:      product.Name,
		Quantity:  product.Quantity,
	})
	return product, nil
}

// Duplicate copies every field but id and timestamps from the source into
// a new product under newName, and writes a "duplicated" history entry
// referencing the new product.
func (s *Store) Duplicate(ctx context.Context, id int64, newName string) (*domain.Product, error) {
	var product *domain.Product

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		source, err := s.getByID(tx, id)
		if err != nil {
			return err
		}
		name, err := ValidateName(newName)
		if err != nil {
			return err
		}
		if err := s.checkNameFree(tx, name); err != nil {
			return err
		}

		now := time.Now()
		copied := domain.Product{
			Name:        name,
			Quantity:    source.Quantity,
			Price:       source.Price,
			Category:    source.Category,
			Description: source.Description,
			Supplier:    source.Supplier,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := tx.Create(&copied).Error; err != nil {
			return translateErr("duplicate product", name, err)
		}

		details := fmt.Sprintf("Copied %q to new product %q", source.Name, name)
		if err := s.writeHistory(tx, domain.ActionDuplicated, copied.ID, details); err != nil {
			return err
		}
		product = &copied
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("product duplicated",
		zap.Int64("source_id", id),
		zap.Int64("id", product.ID),
		zap.String("name", product.Name))
	s.bus.Publish(TopicProductChanged, ChangeEvent{
		Action:    domain.ActionDuplicated,
		ProductID: product.ID,
		Name:      product.Name,
		Quantity:  product.Quantity,
	})
	return product, nil
}

// History returns all audit entries, newest first. An empty result is not
// an error.
func (s *Store) History(ctx context.Context) ([]domain.HistoryEntry, error) {
	var entries []domain.HistoryEntry
	if err := s.db.WithContext(ctx).Order("timestamp DESC, id DESC").Find(&entries).Error; err != nil {
		return nil, translateErr("list history", "", err)
	}
	return entries, nil
}

// Report computes product count, total quantity and total stock value
// (price times quantity). Read-only derived view, nothing is persisted.
func (s *Store) Report(ctx context.Context) (*Report, error) {
	products, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	report := Report{TotalValue: decimal.Zero}
	for _, p := range products {
		report.Count++
		report.TotalQuantity += p.Quantity
		report.TotalValue = report.TotalValue.Add(p.Price.Mul(decimal.NewFromInt(int64(p.Quantity))))
	}
	return &report, nil
}

func (s *Store) getByID(tx *gorm.DB, id int64) (*domain.Product, error) {
	var product domain.Product
	err := tx.First(&product, id).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, &NotFoundError{ID: id}
	case err != nil:
		return nil, translateErr("get product", "", err)
	}
	return &product, nil
}

// checkNameFree enforces the unique name constraint up front so the
// failure is reported distinctly from generic storage errors. The unique
// index remains the backstop.
func (s *Store) checkNameFree(tx *gorm.DB, name string) error {
	var count int64
	if err := tx.Model(&domain.Product{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return translateErr("check product name", name, err)
	}
	if count > 0 {
		return &DuplicateNameError{Name: name}
	}
	return nil
}

func (s *Store) writeHistory(tx *gorm.DB, action domain.Action, productID int64, details string) error {
	entry := domain.HistoryEntry{
		Action:    action,
		ProductID: productID,
		Details:   details,
		Timestamp: time.Now(),
	}
	if err := tx.Create(&entry).Error; err != nil {
		return translateErr("write history", details, err)
	}
	return nil
}

// translateErr maps driver failures onto the store's error taxonomy.
func translateErr(op, name string, err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) || isUniqueViolation(err) {
		return &DuplicateNameError{Name: name}
	}
	return &StorageError{Op: op, Err: errors.WithStack(err)}
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}
