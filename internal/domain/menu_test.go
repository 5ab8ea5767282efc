package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		raw     string
		want    string
		wantErr bool
	}{
		{"35.50", "35.5", false},
		{"35,50", "35.5", false},
		{" 12 ", "12", false},
		{"", "", true},
		{"abc", "", true},
		{"0", "", true},
		{"-3,00", "", true},
		{"R$ 35,50", "35.5", false},
		{"R$35.50", "35.5", false},
		{"1.234,50", "1234.5", false},
		{"1,234.50", "1234.5", false},
		{"R$ 1.234.567,89", "1234567.89", false},
		{"R$", "", true},
		{"35,50,10", "", true},
	}
	for _, tt := range tests {
		got, err := ParsePrice(tt.raw)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrValidation, "ParsePrice(%q)", tt.raw)
			continue
		}
		require.NoError(t, err, "ParsePrice(%q)", tt.raw)
		assert.Equal(t, tt.want, got.String(), "ParsePrice(%q)", tt.raw)
	}
}

func TestMenuItemDraftValidate(t *testing.T) {
	valid := MenuItemDraft{Name: "Açaí 300ml", Price: decimal.NewFromInt(20), Category: CategoryM}
	require.NoError(t, valid.Validate())

	noName := valid
	noName.Name = "  "
	assert.ErrorIs(t, noName.Validate(), ErrValidation)

	freePrice := valid
	freePrice.Price = decimal.Zero
	assert.ErrorIs(t, freePrice.Validate(), ErrValidation)

	badCategory := valid
	badCategory.Category = "XL"
	assert.ErrorIs(t, badCategory.Validate(), ErrValidation)

	badAvailability := valid
	badAvailability.Availability = "Disponível"
	assert.ErrorIs(t, badAvailability.Validate(), ErrValidation)
}

func TestMenuItemDraftWithIDDefaults(t *testing.T) {
	item := MenuItemDraft{Name: "Cupuaçu", Price: decimal.NewFromInt(18)}.WithID("42")

	assert.Equal(t, "42", item.ID)
	assert.Equal(t, AvailabilityAvailable, item.Availability)
	assert.Equal(t, CategoryNone, item.Category)
	assert.False(t, item.IsSpecial)
	assert.True(t, item.IsAvailable())
}
