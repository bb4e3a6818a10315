package model

import "time"

// Invoice is the ledger row backing an on-chain invoice record. The ID
// is the content-derived 0x-hex identifier computed at creation; every
// field except IsPaid is immutable once written.
type Invoice struct {
	ID              string    `gorm:"type:varchar(66);primaryKey" json:"id"`
	OrgName         string    `gorm:"type:varchar(120);not null" json:"org_name"`
	WorkDescription string    `gorm:"type:text;not null" json:"work_description"`
	Amount          int64     `gorm:"not null" json:"amount"` // token units, scale 6
	BillDate        int64     `gorm:"not null" json:"bill_date"`
	DueDate         int64     `gorm:"not null;index" json:"due_date"`
	Receiver        string    `gorm:"type:varchar(42);not null;index" json:"receiver"`
	Nonce           int64     `gorm:"not null" json:"nonce"` // per-receiver creation counter
	IsPaid          bool      `gorm:"not null;default:false" json:"is_paid"`
	PaidBy          string    `gorm:"type:varchar(42)" json:"paid_by"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
