package parser

import (
	"context"
	"fmt"
	"strings"

	"github.com/Larafmp/acai-mae-e-filha/internal/domain"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// readRange covers name, description, price, category, special and
// availability.
const readRange = "A:F"

// Currency cells come back as plain numbers instead of "R$ 35,50".
const valueRenderOption = "UNFORMATTED_VALUE"

const (
	colName = iota
	colDescription
	colPrice
	colCategory
	colSpecial
	colAvailability
)

type GoogleSheetsParser struct {
	service *sheets.Service
}

type Config struct {
	CredentialsJSON []byte
}

// Result holds the menu item drafts read from a sheet and the number of rows
// that were skipped as invalid.
type Result struct {
	Items   []domain.MenuItemDraft
	Skipped int
}

func New(ctx context.Context, cfg Config) (*GoogleSheetsParser, error) {
	service, err := sheets.NewService(ctx, option.WithCredentialsJSON(cfg.CredentialsJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &GoogleSheetsParser{
		service: service,
	}, nil
}

func (p *GoogleSheetsParser) ParseCatalog(ctx context.Context, spreadsheetID string) (*Result, error) {
	resp, err := p.service.Spreadsheets.Values.Get(spreadsheetID, readRange).
		ValueRenderOption(valueRenderOption).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read spreadsheet: %w", err)
	}

	if len(resp.Values) == 0 {
		return nil, fmt.Errorf("no data found in spreadsheet")
	}

	return ParseRows(resp.Values), nil
}

// ParseRows converts sheet rows into drafts. The first row is a header.
// Blank rows are ignored; rows that fail validation are counted as skipped.
func ParseRows(rows [][]interface{}) *Result {
	result := &Result{Items: []domain.MenuItemDraft{}}

	// skip header
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if isBlank(row) {
			continue
		}

		draft, err := parseRow(row)
		if err != nil {
			result.Skipped++
			continue
		}
		result.Items = append(result.Items, draft)
	}

	return result
}

func parseRow(row []interface{}) (domain.MenuItemDraft, error) {
	price, err := domain.ParsePrice(cell(row, colPrice))
	if err != nil {
		return domain.MenuItemDraft{}, err
	}

	availability, err := parseAvailability(cell(row, colAvailability))
	if err != nil {
		return domain.MenuItemDraft{}, err
	}

	draft := domain.MenuItemDraft{
		Name:         cell(row, colName),
		Description:  cell(row, colDescription),
		Price:        price,
		Category:     domain.Category(strings.ToUpper(cell(row, colCategory))),
		IsSpecial:    parseBool(cell(row, colSpecial)),
		Availability: availability,
	}

	if err := draft.Validate(); err != nil {
		return domain.MenuItemDraft{}, err
	}

	return draft, nil
}

func cell(row []interface{}, i int) string {
	if i >= len(row) || row[i] == nil {
		return ""
	}
	return strings.TrimSpace(fmt.Sprintf("%v", row[i]))
}

func isBlank(row []interface{}) bool {
	for i := range row {
		if cell(row, i) != "" {
			return false
		}
	}
	return true
}

func parseBool(s string) bool {
	switch strings.ToUpper(s) {
	case "TRUE", "SIM", "S", "X", "1":
		return true
	}
	return false
}

func parseAvailability(s string) (domain.Availability, error) {
	switch strings.ToLower(s) {
	case "", "available", "disponível", "disponivel":
		return domain.AvailabilityAvailable, nil
	case "unavailable", "indisponível", "indisponivel":
		return domain.AvailabilityUnavailable, nil
	}
	return "", fmt.Errorf("%w: unknown availability %q", domain.ErrValidation, s)
}
