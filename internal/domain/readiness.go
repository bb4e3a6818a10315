package domain

// PaymentReadiness is the go/no-go computation gating the two-step
// approve-then-pay flow. All inputs are token units at the same scale.
type PaymentReadiness struct {
	HasSufficientBalance   bool `json:"has_sufficient_balance"`
	HasSufficientAllowance bool `json:"has_sufficient_allowance"`
	NeedsApproval          bool `json:"needs_approval"`
	CanPay                 bool `json:"can_pay"`
}

// EvaluateReadiness computes whether a payer holding balance, with the
// given allowance toward the spender, can settle amount. Approval is
// only surfaced when it would actually unblock the payment; with an
// insufficient balance the approval step is pointless and stays
// hidden.
func EvaluateReadiness(balance, allowance, amount int64) PaymentReadiness {
	hasBalance := balance >= amount
	hasAllowance := allowance >= amount
	return PaymentReadiness{
		HasSufficientBalance:   hasBalance,
		HasSufficientAllowance: hasAllowance,
		NeedsApproval:          !hasAllowance && hasBalance,
		CanPay:                 hasBalance && hasAllowance,
	}
}
