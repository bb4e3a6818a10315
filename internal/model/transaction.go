package model

import (
	"time"

	"github.com/google/uuid"
)

// Transaction status constants.
const (
	TxConfirmed = "CONFIRMED"
	TxFailed    = "FAILED"
)

// Transaction kind constants.
const (
	TxKindCreateInvoice = "CREATE_INVOICE"
	TxKindApprove       = "APPROVE"
	TxKindPayInvoice    = "PAY_INVOICE"
	TxKindMint          = "MINT"
)

// ChainTransaction is the receipt of a submitted ledger write. A
// transaction is recorded even when execution reverts; the revert
// reason is kept verbatim for the caller to surface.
type ChainTransaction struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Hash      string    `gorm:"type:varchar(66);uniqueIndex;not null" json:"hash"`
	Kind      string    `gorm:"type:varchar(20);not null" json:"kind"`
	Sender    string    `gorm:"type:varchar(42);not null;index" json:"sender"`
	Status    string    `gorm:"type:varchar(20);not null;index" json:"status"`
	InvoiceID string    `gorm:"type:varchar(66);index" json:"invoice_id"` // set on invoice writes
	Revert    string    `gorm:"type:text" json:"revert"`                  // revert reason when FAILED
	CreatedAt time.Time `json:"created_at"`
}
