package model

import "time"

// TokenBalance is one account's holding of the settlement token.
type TokenBalance struct {
	Account   string    `gorm:"type:varchar(42);primaryKey" json:"account"`
	Amount    int64     `gorm:"not null;default:0" json:"amount"` // token units, scale 6
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TokenAllowance is the amount a spender may transfer on behalf of an
// owner. Spending debits the remaining allowance, ERC20-style.
type TokenAllowance struct {
	Owner     string    `gorm:"type:varchar(42);primaryKey" json:"owner"`
	Spender   string    `gorm:"type:varchar(42);primaryKey" json:"spender"`
	Amount    int64     `gorm:"not null;default:0" json:"amount"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
