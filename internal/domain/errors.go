package domain

import "errors"

var (
	ErrNoIdentity        = errors.New("no identity")
	ErrNotFound          = errors.New("not found")
	ErrInvalidQuantity   = errors.New("invalid quantity")
	ErrInvalidInput      = errors.New("invalid input")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrForbidden         = errors.New("forbidden")
	ErrConflict          = errors.New("conflict")
	ErrAlreadySubscribed = errors.New("already subscribed")
	ErrDelivery          = errors.New("delivery failed")
)
