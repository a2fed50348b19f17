package menu

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"stockd/internal/domain"
	"stockd/internal/inventory"
)

func setupMenuStore(t *testing.T) *inventory.Store {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(domain.Tables...))
	return inventory.NewStore(db, nil, nil)
}

func TestMenuScriptedSession(t *testing.T) {
	store := setupMenuStore(t)

	// Create a product, list it, attempt an invalid stock-out, then exit.
	script := strings.Join([]string{
		"1",
		"Widget",
		"10",
		"5.00",
		"", // category
		"", // supplier
		"", // description
		"2",
		"5",
		"1",
		"-15",
		"0",
	}, "\n") + "\n"

	var out bytes.Buffer
	m := New(store, strings.NewReader(script), &out, t.TempDir())
	require.NoError(t, m.Run(context.Background()))

	output := out.String()
	assert.Contains(t, output, `Product "Widget" added to the inventory`)
	assert.Contains(t, output, "Total products: 1")
	assert.Contains(t, output, "cannot go negative")
	assert.Contains(t, output, "Bye.")

	products, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, 10, products[0].Quantity)
}

func TestMenuUpdateOmitsBlankFields(t *testing.T) {
	store := setupMenuStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, inventory.CreateParams{
		Name: "Widget", Quantity: "10", Price: "5.00", Category: "tools",
	})
	require.NoError(t, err)

	// Only the quantity answer is filled in; everything else keeps its value.
	script := strings.Join([]string{
		"3",
		"1",
		"25", // quantity
		"",   // price
		"",   // category
		"",   // supplier
		"",   // description
		"0",
	}, "\n") + "\n"

	var out bytes.Buffer
	m := New(store, strings.NewReader(script), &out, t.TempDir())
	require.NoError(t, m.Run(ctx))

	assert.Contains(t, out.String(), `Product "Widget" updated successfully`)

	got, err := store.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 25, got.Quantity)
	assert.Equal(t, "tools", got.Category)
	assert.Equal(t, "5.00", got.Price.StringFixed(2))
}

func TestMenuDeleteNeedsConfirmation(t *testing.T) {
	store := setupMenuStore(t)
	ctx := context.Background()

	_, err := store.Create(ctx, inventory.CreateParams{Name: "Widget", Quantity: "1", Price: "1.00"})
	require.NoError(t, err)

	script := strings.Join([]string{
		"4",
		"1",
		"n",
		"0",
	}, "\n") + "\n"

	var out bytes.Buffer
	m := New(store, strings.NewReader(script), &out, t.TempDir())
	require.NoError(t, m.Run(ctx))

	assert.Contains(t, out.String(), "Deletion cancelled.")
	products, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 1)
}

func TestMenuReport(t *testing.T) {
	store := setupMenuStore(t)
	ctx := context.Background()

	_, err := store.Create(ctx, inventory.CreateParams{Name: "Widget", Quantity: "10", Price: "5.00"})
	require.NoError(t, err)
	_, err = store.Create(ctx, inventory.CreateParams{Name: "Gadget", Quantity: "3", Price: "19.90"})
	require.NoError(t, err)

	script := "8\n0\n"
	var out bytes.Buffer
	m := New(store, strings.NewReader(script), &out, t.TempDir())
	require.NoError(t, m.Run(ctx))

	output := out.String()
	assert.Contains(t, output, "Total products: 2")
	assert.Contains(t, output, "Total quantity: 13")
	assert.Contains(t, output, "Total stock value: 109.70")
}
