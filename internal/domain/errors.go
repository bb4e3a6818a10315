package domain

import "errors"

var (
	ErrInvoiceNotFound       = errors.New("invoice not found")
	ErrInvoiceAlreadyPaid    = errors.New("invoice already paid")
	ErrTransactionNotFound   = errors.New("transaction not found")
	ErrInsufficientBalance   = errors.New("insufficient balance")
	ErrInsufficientAllowance = errors.New("insufficient allowance")
	ErrInvalidAddress        = errors.New("invalid account address")
	ErrInvalidTransition     = errors.New("invalid payment flow transition")
)
