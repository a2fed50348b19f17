package inventory

import (
	"context"
	"io"
	"time"

	"github.com/gocarina/gocsv"
)

type productRow struct {
	ID          int64  `csv:"id"`
	Name        string `csv:"name"`
	Quantity    int    `csv:"quantity"`
	Price       string `csv:"price"`
	Category    string `csv:"category"`
	Description string `csv:"description"`
	Supplier    string `csv:"supplier"`
	CreatedAt   string `csv:"created_at"`
	UpdatedAt   string `csv:"updated_at"`
}

// ExportCSV writes the full product list as CSV and returns the number of
// exported rows.
func (s *Store) ExportCSV(ctx context.Context, w io.Writer) (int, error) {
	products, err := s.List(ctx)
	if err != nil {
		return 0, err
	}

	rows := make([]productRow, 0, len(products))
	for _, p := range products {
		rows = append(rows, productRow{
			ID:          p.ID,
			Name:        p.Name,
			Quantity:    p.Quantity,
			Price:       p.Price.StringFixed(2),
			Category:    p.Category,
			Description: p.Description,
			Supplier:    p.Supplier,
			CreatedAt:   p.CreatedAt.Format(time.RFC3339),
			UpdatedAt:   p.UpdatedAt.Format(time.RFC3339),
		})
	}

	if err := gocsv.Marshal(&rows, w); err != nil {
		return 0, &StorageError{Op: "export csv", Err: err}
	}
	return len(rows), nil
}
