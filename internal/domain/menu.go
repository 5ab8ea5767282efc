package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

type Availability string

const (
	AvailabilityAvailable   Availability = "Available"
	AvailabilityUnavailable Availability = "Unavailable"
)

// Category is the cup size label of an item; empty means no size.
type Category string

const (
	CategoryNone Category = ""
	CategoryP    Category = "P"
	CategoryM    Category = "M"
	CategoryG    Category = "G"
	CategoryGG   Category = "GG"
)

var Categories = []Category{CategoryP, CategoryM, CategoryG, CategoryGG}

type MenuItem struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	Category     Category        `json:"category"`
	IsSpecial    bool            `json:"isSpecial"`
	Availability Availability    `json:"availability"`
}

func (m MenuItem) IsAvailable() bool {
	return m.Availability == AvailabilityAvailable
}

// MenuItemDraft is a menu item that has not been assigned an id yet.
type MenuItemDraft struct {
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	Category     Category        `json:"category"`
	IsSpecial    bool            `json:"isSpecial"`
	Availability Availability    `json:"availability"`
}

// Validate applies the rules the presentation layer enforces before any
// catalog call is made.
func (d MenuItemDraft) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if !d.Price.IsPositive() {
		return fmt.Errorf("%w: price must be greater than 0", ErrValidation)
	}
	if !ValidCategory(d.Category) {
		return fmt.Errorf("%w: unknown category %q", ErrValidation, d.Category)
	}
	if d.Availability != "" && !ValidAvailability(d.Availability) {
		return fmt.Errorf("%w: unknown availability %q", ErrValidation, d.Availability)
	}
	return nil
}

// WithID turns the draft into a stored item; empty optional fields get
// their defaults.
func (d MenuItemDraft) WithID(id string) MenuItem {
	availability := d.Availability
	if availability == "" {
		availability = AvailabilityAvailable
	}

	return MenuItem{
		ID:           id,
		Name:         d.Name,
		Description:  d.Description,
		Price:        d.Price,
		Category:     d.Category,
		IsSpecial:    d.IsSpecial,
		Availability: availability,
	}
}

func ValidCategory(c Category) bool {
	if c == CategoryNone {
		return true
	}
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

func ValidAvailability(a Availability) bool {
	return a == AvailabilityAvailable || a == AvailabilityUnavailable
}

// ParsePrice reads a price typed at the till or copied from a sheet. "35,50",
// "35.50", "R$ 35,50" and "1.234,50" are all accepted. When both separators
// appear the last one is the decimal separator.
func ParsePrice(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimSpace(strings.TrimPrefix(s, "R$"))
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return decimal.Zero, fmt.Errorf("%w: price is required", ErrValidation)
	}

	if comma, dot := strings.LastIndex(s, ","), strings.LastIndex(s, "."); comma > dot {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	} else {
		s = strings.ReplaceAll(s, ",", "")
	}

	price, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: invalid price %q", ErrValidation, raw)
	}
	if !price.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: price must be greater than 0", ErrValidation)
	}

	return price, nil
}
