package chain

import (
	"errors"
	"fmt"
	"testing"

	"chainvoice/internal/domain"
	"chainvoice/internal/model"
	"chainvoice/pkg/token"
)

func TestDeriveInvoiceID(t *testing.T) {
	t.Parallel()

	receiver := "0x742d35cc6634c0532925a3b844bc9e7595f0beb3"
	id := deriveInvoiceID(receiver, 0, "Acme Corp", "Consulting services", 10_000_000, 1_780_000_000)

	if len(id) != 66 || id[:2] != "0x" {
		t.Fatalf("id = %q, want 0x-prefixed 32-byte hex", id)
	}

	// Same inputs reproduce the same id.
	again := deriveInvoiceID(receiver, 0, "Acme Corp", "Consulting services", 10_000_000, 1_780_000_000)
	if again != id {
		t.Fatalf("id not deterministic: %q vs %q", id, again)
	}

	// The nonce distinguishes otherwise identical invoices.
	next := deriveInvoiceID(receiver, 1, "Acme Corp", "Consulting services", 10_000_000, 1_780_000_000)
	if next == id {
		t.Fatalf("nonce did not change the id")
	}
}

func TestNewTxHash(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		hash := newTxHash()
		if len(hash) != 66 || hash[:2] != "0x" {
			t.Fatalf("hash = %q, want 0x-prefixed 32-byte hex", hash)
		}
		if seen[hash] {
			t.Fatalf("duplicate hash %q", hash)
		}
		seen[hash] = true
	}
}

func TestIsRevert(t *testing.T) {
	t.Parallel()

	reverts := []error{
		domain.ErrInvoiceNotFound,
		domain.ErrInvoiceAlreadyPaid,
		domain.ErrInsufficientBalance,
		domain.ErrInsufficientAllowance,
		token.ErrInvalidAmount,
		fmt.Errorf("wrapped: %w", domain.ErrInsufficientBalance),
	}
	for _, err := range reverts {
		if !isRevert(err) {
			t.Fatalf("isRevert(%v) = false, want true", err)
		}
	}

	if isRevert(errors.New("connection refused")) {
		t.Fatalf("infrastructure error classified as revert")
	}
	if isRevert(nil) {
		t.Fatalf("isRevert(nil) = true")
	}
}

func TestToReceiptStatus(t *testing.T) {
	t.Parallel()

	if got := toReceiptStatus(model.TxConfirmed); got != TxConfirmed {
		t.Fatalf("toReceiptStatus(confirmed) = %q", got)
	}
	if got := toReceiptStatus(model.TxFailed); got != TxFailed {
		t.Fatalf("toReceiptStatus(failed) = %q", got)
	}
}
