package parser

import (
	"testing"

	"github.com/Larafmp/acai-mae-e-filha/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRows(t *testing.T) {
	rows := [][]interface{}{
		{"Nome", "Descrição", "Preço", "Tamanho", "Especial", "Disponibilidade"},
		{"Açaí 500ml", "com granola", "35,50", "g", "SIM", "Disponível"},
		{"Cupuaçu 300ml", "", "14.5", "", "FALSE", "Unavailable"},
		{},
		{"", "", "", "", "", ""},
		{"Sem preço", "", "", "M"},
		{"Preço zero", "", "0", "M"},
		{"Tamanho errado", "", "10", "XL"},
		{"", "sem nome", "10"},
		{"Tapioca", "", 9},
	}

	result := ParseRows(rows)

	require.Len(t, result.Items, 3)
	assert.Equal(t, 4, result.Skipped)

	acai := result.Items[0]
	assert.Equal(t, "Açaí 500ml", acai.Name)
	assert.Equal(t, "com granola", acai.Description)
	assert.Equal(t, "35.5", acai.Price.String())
	assert.Equal(t, domain.CategoryG, acai.Category)
	assert.True(t, acai.IsSpecial)
	assert.Equal(t, domain.AvailabilityAvailable, acai.Availability)

	cupuacu := result.Items[1]
	assert.False(t, cupuacu.IsSpecial)
	assert.Equal(t, domain.CategoryNone, cupuacu.Category)
	assert.Equal(t, domain.AvailabilityUnavailable, cupuacu.Availability)

	tapioca := result.Items[2]
	assert.Equal(t, "9", tapioca.Price.String())
	assert.Equal(t, domain.AvailabilityAvailable, tapioca.Availability)
}

func TestParseRowsHeaderOnly(t *testing.T) {
	result := ParseRows([][]interface{}{{"Nome", "Preço"}})

	assert.NotNil(t, result.Items)
	assert.Empty(t, result.Items)
	assert.Equal(t, 0, result.Skipped)
}

func TestParseRowsUnknownAvailability(t *testing.T) {
	result := ParseRows([][]interface{}{
		{"header"},
		{"Açaí 300ml", "", "20", "M", "", "talvez"},
	})

	assert.Empty(t, result.Items)
	assert.Equal(t, 1, result.Skipped)
}

func TestParseRowsFormattedPrices(t *testing.T) {
	result := ParseRows([][]interface{}{
		{"Nome", "Descrição", "Preço"},
		{"Açaí 500ml", "", "R$ 35,50"},
		{"Combo família", "", "R$ 1.234,50"},
		{"Cupuaçu 300ml", "", 14.5},
	})

	require.Len(t, result.Items, 3)
	assert.Equal(t, 0, result.Skipped)
	assert.Equal(t, "35.5", result.Items[0].Price.String())
	assert.Equal(t, "1234.5", result.Items[1].Price.String())
	assert.Equal(t, "14.5", result.Items[2].Price.String())
}
