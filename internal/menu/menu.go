package menu

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cast"

	"stockd/internal/inventory"
)

// Menu is the interactive text front end. It only collects strings,
// dispatches to the store and renders results; all validation and
// persistence rules live in the store.
type Menu struct {
	store     *inventory.Store
	in        *bufio.Scanner
	out       io.Writer
	exportDir string
}

func New(store *inventory.Store, in io.Reader, out io.Writer, exportDir string) *Menu {
	return &Menu{
		store:     store,
		in:        bufio.NewScanner(in),
		out:       out,
		exportDir: exportDir,
	}
}

// Run loops until the user exits or input ends.
func (m *Menu) Run(ctx context.Context) error {
	for {
		m.printMenu()
		option, ok := m.readLine("Choose an option: ")
		if !ok {
			return nil
		}

		switch strings.TrimSpace(option) {
		case "1":
			m.createProduct(ctx)
		case "2":
			m.listProducts(ctx)
		case "3":
			m.updateProduct(ctx)
		case "4":
			m.deleteProduct(ctx)
		case "5":
			m.moveStock(ctx)
		case "6":
			m.duplicateProduct(ctx)
		case "7":
			m.showHistory(ctx)
		case "8":
			m.quickReport(ctx)
		case "9":
			m.exportCSV(ctx)
		case "0":
			fmt.Fprintln(m.out, "Bye.")
			return nil
		default:
			fmt.Fprintln(m.out, "Invalid option, try again.")
		}
	}
}

func (m *Menu) printMenu() {
	fmt.Fprintln(m.out, "\n========== INVENTORY MENU ==========")
	fmt.Fprintln(m.out, "1) Create product")
	fmt.Fprintln(m.out, "2) List products")
	fmt.Fprintln(m.out, "3) Update product")
	fmt.Fprintln(m.out, "4) Delete product")
	fmt.Fprintln(m.out, "5) Move stock (in/out)")
	fmt.Fprintln(m.out, "6) Duplicate product")
	fmt.Fprintln(m.out, "7) Show history")
	fmt.Fprintln(m.out, "8) Quick report")
	fmt.Fprintln(m.out, "9) Export products to CSV")
	fmt.Fprintln(m.out, "0) Exit")
	fmt.Fprintln(m.out, "====================================")
}

func (m *Menu) createProduct(ctx context.Context) {
	fmt.Fprintln(m.out, "\n=== Create Product ===")
	name, _ := m.readLine("Name: ")
	quantity, _ := m.readLine("Quantity: ")
	price, _ := m.readLine("Price: ")
	category, _ := m.readLine("[Optional] Category: ")
	supplier, _ := m.readLine("[Optional] Supplier: ")
	description, _ := m.readLine("[Optional] Description: ")

	product, err := m.store.Create(ctx, inventory.CreateParams{
		Name:        name,
		Quantity:    quantity,
		Price:       price,
		Category:    category,
		Description: description,
		Supplier:    supplier,
	})
	if err != nil {
		fmt.Fprintln(m.out, errMessage(err))
		return
	}
	fmt.Fprintf(m.out, "Product %q added to the inventory (id %d).\n", product.Name, product.ID)
}

func (m *Menu) listProducts(ctx context.Context) {
	fmt.Fprintln(m.out, "\n=== Product List ===")
	products, err := m.store.List(ctx)
	if err != nil {
		fmt.Fprintln(m.out, errMessage(err))
		return
	}
	if len(products) == 0 {
		fmt.Fprintln(m.out, "No products registered.")
		return
	}
	for _, p := range products {
		fmt.Fprintf(m.out, "ID: %d | Name: %s | Qty: %d | Price: %s | Category: %s | Supplier: %s\n",
			p.ID, p.Name, p.Quantity, p.Price.StringFixed(2), p.Category, p.Supplier)
	}
	fmt.Fprintf(m.out, "Total products: %d\n", len(products))
}

func (m *Menu) updateProduct(ctx context.Context) {
	fmt.Fprintln(m.out, "\n=== Update Product ===")
	id, ok := m.readID()
	if !ok {
		return
	}

	quantity, _ := m.readLine("New quantity [Enter to keep]: ")
	price, _ := m.readLine("New price [Enter to keep]: ")
	category, _ := m.readLine("New category [Enter to keep]: ")
	supplier, _ := m.readLine("New supplier [Enter to keep]: ")
	description, _ := m.readLine("New description [Enter to keep]: ")

	product, err := m.store.Update(ctx, id, inventory.UpdateParams{
		Quantity:    optional(quantity),
		Price:       optional(price),
		Category:    optional(category),
		Description: optional(description),
		Supplier:    optional(supplier),
	})
	if err != nil {
		fmt.Fprintln(m.out, errMessage(err))
		return
	}
	fmt.Fprintf(m.out, "Product %q updated successfully.\n", product.Name)
}

func (m *Menu) deleteProduct(ctx context.Context) {
	fmt.Fprintln(m.out, "\n=== Delete Product ===")
	id, ok := m.readID()
	if !ok {
		return
	}

	confirm, _ := m.readLine(fmt.Sprintf("Delete product id %d? (y/N): ", id))
	if !strings.EqualFold(strings.TrimSpace(confirm), "y") {
		fmt.Fprintln(m.out, "Deletion cancelled.")
		return
	}

	product, err := m.store.Delete(ctx, id)
	if err != nil {
		fmt.Fprintln(m.out, errMessage(err))
		return
	}
	fmt.Fprintf(m.out, "Product %q removed from the inventory.\n", product.Name)
}

func (m *Menu) moveStock(ctx context.Context) {
	fmt.Fprintln(m.out, "\n=== Move Stock ===")
	id, ok := m.readID()
	if !ok {
		return
	}

	raw, _ := m.readLine("Quantity to add (positive) or remove (negative): ")
	delta, err := cast.ToIntE(strings.TrimSpace(raw))
	if err != nil {
		fmt.Fprintln(m.out, "Invalid value, enter an integer.")
		return
	}

	product, err := m.store.Move(ctx, id, delta)
	if err != nil {
		fmt.Fprintln(m.out, errMessage(err))
		return
	}
	direction := "in"
	if delta < 0 {
		direction = "out"
	}
	fmt.Fprintf(m.out, "Stock %s completed for product %q (quantity now %d).\n",
		direction, product.Name, product.Quantity)
}

func (m *Menu) duplicateProduct(ctx context.Context) {
	fmt.Fprintln(m.out, "\n=== Duplicate Product ===")
	id, ok := m.readID()
	if !ok {
		return
	}
	newName, _ := m.readLine("Name for the duplicated product: ")

	product, err := m.store.Duplicate(ctx, id, newName)
	if err != nil {
		fmt.Fprintln(m.out, errMessage(err))
		return
	}
	fmt.Fprintf(m.out, "Product duplicated successfully: %q (id %d).\n", product.Name, product.ID)
}

func (m *Menu) showHistory(ctx context.Context) {
	fmt.Fprintln(m.out, "\n=== Action History ===")
	entries, err := m.store.History(ctx)
	if err != nil {
		fmt.Fprintln(m.out, errMessage(err))
		return
	}
	if len(entries) == 0 {
		fmt.Fprintln(m.out, "No history records.")
		return
	}
	for _, e := range entries {
		fmt.Fprintf(m.out, "ID=%d | Action=%s | ProductID=%d | Details=%s | At=%s\n",
			e.ID, e.Action, e.ProductID, e.Details, e.Timestamp.Format("2006-01-02 15:04:05"))
	}
}

func (m *Menu) quickReport(ctx context.Context) {
	fmt.Fprintln(m.out, "\n=== Quick Inventory Report ===")
	report, err := m.store.Report(ctx)
	if err != nil {
		fmt.Fprintln(m.out, errMessage(err))
		return
	}
	fmt.Fprintf(m.out, "Total products: %d\n", report.Count)
	fmt.Fprintf(m.out, "Total quantity: %d\n", report.TotalQuantity)
	fmt.Fprintf(m.out, "Total stock value: %s\n", report.TotalValue.StringFixed(2))
}

func (m *Menu) exportCSV(ctx context.Context) {
	fmt.Fprintln(m.out, "\n=== Export Products ===")
	path := filepath.Join(m.exportDir, "products.csv")
	f, err := os.Create(path)
	if err != nil {
		fmt.Fprintf(m.out, "Could not create %s: %v\n", path, err)
		return
	}
	defer f.Close()

	n, err := m.store.ExportCSV(ctx, f)
	if err != nil {
		fmt.Fprintln(m.out, errMessage(err))
		return
	}
	fmt.Fprintf(m.out, "Exported %d products to %s\n", n, path)
}

func (m *Menu) readID() (int64, bool) {
	raw, ok := m.readLine("Product ID: ")
	if !ok {
		return 0, false
	}
	id, err := cast.ToInt64E(strings.TrimSpace(raw))
	if err != nil || id <= 0 {
		fmt.Fprintln(m.out, "Invalid ID.")
		return 0, false
	}
	return id, true
}

func (m *Menu) readLine(prompt string) (string, bool) {
	fmt.Fprint(m.out, prompt)
	if !m.in.Scan() {
		return "", false
	}
	return m.in.Text(), true
}

// optional maps a blank answer to "field omitted".
func optional(raw string) *string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	return &raw
}

// errMessage renders a store error for direct display, branching on the
// error kind rather than parsing text.
func errMessage(err error) string {
	var (
		validationErr *inventory.ValidationError
		notFoundErr   *inventory.NotFoundError
		duplicateErr  *inventory.DuplicateNameError
		negativeErr   *inventory.NegativeStockError
	)
	switch {
	case errors.As(err, &validationErr):
		return "Validation error: " + validationErr.Error()
	case errors.As(err, &notFoundErr):
		return "Error: " + notFoundErr.Error() + "."
	case errors.As(err, &duplicateErr):
		return "Error: " + duplicateErr.Error() + "."
	case errors.As(err, &negativeErr):
		return "Error: " + negativeErr.Error() + "."
	case errors.Is(err, inventory.ErrNothingToUpdate):
		return "No fields to update."
	default:
		return "Unexpected storage error: " + err.Error()
	}
}
