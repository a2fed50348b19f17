package inventory

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockd/internal/domain"
)

func TestValidateName(t *testing.T) {
	t.Run("valid names", func(t *testing.T) {
		for raw, want := range map[string]string{
			"Widget":         "Widget",
			"  Widget  ":     "Widget",
			"Widget-2 Pro_X": "Widget-2 Pro_X",
			"ab":             "ab",
		} {
			got, err := ValidateName(raw)
			require.NoError(t, err, raw)
			assert.Equal(t, want, got)
		}

		longest := strings.Repeat("a", 50)
		got, err := ValidateName(longest)
		require.NoError(t, err)
		assert.Equal(t, longest, got)
	})

	t.Run("invalid names", func(t *testing.T) {
		for _, raw := range []string{
			"",
			"   ",
			"a",
			" a ",
			strings.Repeat("a", 51),
			"Widget!",
			"Caixa/2",
			"name\twith\ttabs",
		} {
			_, err := ValidateName(raw)
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr, "input %q", raw)
			assert.Equal(t, "name", vErr.Field)
		}
	})
}

func TestValidateQuantity(t *testing.T) {
	got, err := ValidateQuantity(" 42 ")
	require.NoError(t, err)
	assert.Equal(t, 42, got)

	got, err = ValidateQuantity("0")
	require.NoError(t, err)
	assert.Equal(t, 0, got)

	got, err = ValidateQuantity("99999")
	require.NoError(t, err)
	assert.Equal(t, domain.QuantityMax, got)

	for _, raw := range []string{"", "abc", "1.5", "-1", "100000"} {
		_, err := ValidateQuantity(raw)
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr, "input %q", raw)
		assert.Equal(t, "quantity", vErr.Field)
	}
}

func TestValidatePrice(t *testing.T) {
	t.Run("rounds to two places", func(t *testing.T) {
		got, err := ValidatePrice("10.005")
		require.NoError(t, err)
		assert.Equal(t, "10.01", got.StringFixed(2))

		got, err = ValidatePrice("5")
		require.NoError(t, err)
		assert.Equal(t, "5.00", got.StringFixed(2))
	})

	t.Run("bounds", func(t *testing.T) {
		got, err := ValidatePrice("999999.99")
		require.NoError(t, err)
		assert.Equal(t, "999999.99", got.StringFixed(2))

		for _, raw := range []string{"", "abc", "-0.01", "1000000"} {
			_, err := ValidatePrice(raw)
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr, "input %q", raw)
			assert.Equal(t, "price", vErr.Field)
		}
	})
}

func TestValidateCategory(t *testing.T) {
	got, err := ValidateCategory("")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultCategory, got)

	got, err = ValidateCategory("   ")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultCategory, got)

	got, err = ValidateCategory(" tools ")
	require.NoError(t, err)
	assert.Equal(t, "tools", got)

	_, err = ValidateCategory(strings.Repeat("c", 31))
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "category", vErr.Field)
}

func TestValidateDescription(t *testing.T) {
	got, err := ValidateDescription("")
	require.NoError(t, err)
	assert.Equal(t, "", got)

	got, err = ValidateDescription(" some text ")
	require.NoError(t, err)
	assert.Equal(t, "some text", got)

	_, err = ValidateDescription(strings.Repeat("d", 201))
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "description", vErr.Field)
}

func TestValidateSupplier(t *testing.T) {
	got, err := ValidateSupplier("")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSupplier, got)

	got, err = ValidateSupplier(" ACME Ltda ")
	require.NoError(t, err)
	assert.Equal(t, "ACME Ltda", got)

	_, err = ValidateSupplier(strings.Repeat("s", 51))
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "supplier", vErr.Field)
}

func TestOptionalFieldLengthsCountRunes(t *testing.T) {
	// Multi-byte characters count once, not once per byte.
	got, err := ValidateCategory(strings.Repeat("ç", domain.CategoryMaxLen))
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("ç", domain.CategoryMaxLen), got)

	_, err = ValidateCategory(strings.Repeat("ç", domain.CategoryMaxLen+1))
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "category", vErr.Field)

	got, err = ValidateDescription(strings.Repeat("é", domain.DescMaxLen))
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("é", domain.DescMaxLen), got)

	_, err = ValidateDescription(strings.Repeat("é", domain.DescMaxLen+1))
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "description", vErr.Field)

	got, err = ValidateSupplier(strings.Repeat("ã", domain.SupplierMaxLen))
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("ã", domain.SupplierMaxLen), got)

	_, err = ValidateSupplier(strings.Repeat("ã", domain.SupplierMaxLen+1))
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "supplier", vErr.Field)
}
