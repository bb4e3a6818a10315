// Package chain is the boundary to the contract that owns all durable
// state. Services only ever see the Reader and Writer interfaces; the
// in-repo Ledger implements them on Postgres with the same semantics
// the invoice-factory and token contracts expose.
package chain

import (
	"context"

	"chainvoice/internal/domain"
)

// TxHandle identifies a submitted transaction. Submission returning a
// handle says nothing about execution; callers learn the outcome from
// AwaitConfirmation.
type TxHandle string

// Receipt statuses.
const (
	TxConfirmed = "confirmed"
	TxFailed    = "failed"
)

// Receipt is the recorded outcome of a submitted transaction. For
// invoice creation it carries the derived invoice id; for reverted
// transactions it carries the revert reason verbatim.
type Receipt struct {
	Hash      string `json:"hash"`
	Kind      string `json:"kind"`
	Status    string `json:"status"`
	InvoiceID string `json:"invoice_id,omitempty"`
	Revert    string `json:"revert,omitempty"`
}

// Reader is the contract-read capability.
type Reader interface {
	ReadInvoice(ctx context.Context, id string) (domain.Invoice, error)
	ListUserInvoices(ctx context.Context, account string) ([]string, error)
	ReadBalance(ctx context.Context, account string) (int64, error)
	ReadAllowance(ctx context.Context, owner, spender string) (int64, error)
}

// Writer is the contract-write capability. Once a write is submitted
// there is no way to retract it; failures surface on the receipt.
type Writer interface {
	SubmitCreateInvoice(ctx context.Context, receiver, orgName, workDescription string, amount, dueDate int64) (TxHandle, error)
	SubmitApprove(ctx context.Context, owner, spender string, amount int64) (TxHandle, error)
	SubmitPayInvoice(ctx context.Context, payer, invoiceID string) (TxHandle, error)
	SubmitMint(ctx context.Context, account string, amount int64) (TxHandle, error)
	AwaitConfirmation(ctx context.Context, handle TxHandle) (Receipt, error)
}
