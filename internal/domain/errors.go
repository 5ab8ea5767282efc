package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrValidation        = errors.New("validation failed")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrStorageRead       = errors.New("storage read failure")
	ErrStorageWrite      = errors.New("storage write failure")

	ErrEmptyOrder      = fmt.Errorf("%w: order has no items", ErrValidation)
	ErrItemUnavailable = fmt.Errorf("%w: menu item is unavailable", ErrValidation)
)
