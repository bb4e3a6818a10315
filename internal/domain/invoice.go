// Package domain holds the pure computation core: invoice values,
// draft validation, status derivation, payment readiness and the
// payment flow state machine. Nothing here touches the clock, the
// database or the chain gateway; callers supply every input, including
// the current time.
package domain

import "time"

// Invoice is the on-chain invoice record as read back through the
// gateway. Immutable except for IsPaid, which only ever flips through
// an external payment and is observed by re-reading.
type Invoice struct {
	ID              string // content-derived 0x-hex identifier
	OrgName         string
	WorkDescription string
	Amount          int64 // token units, scale 6
	BillDate        int64 // unix seconds
	DueDate         int64 // unix seconds
	Receiver        string
	IsPaid          bool
}

// Status is the derived lifecycle state of an invoice. It is never
// stored; recompute it from the invoice and the current time on every
// read.
type Status string

const (
	StatusPaid    Status = "paid"
	StatusPending Status = "pending"
	StatusExpired Status = "expired"
)

// ResolveStatus classifies an invoice at the given instant. Paid wins
// over everything; otherwise the invoice is expired only strictly
// after its due date. Exactly at the due date it is still pending.
func ResolveStatus(inv Invoice, now time.Time) Status {
	if inv.IsPaid {
		return StatusPaid
	}
	if now.Unix() > inv.DueDate {
		return StatusExpired
	}
	return StatusPending
}
