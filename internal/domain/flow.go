package domain

// FlowState is a step of the two-step approve-then-pay flow. The flow
// is orchestration only: the truth about payment lives on the ledger
// and is re-derived from the invoice, so re-entering after success
// always lands on FlowSuccess regardless of any local state.
type FlowState string

const (
	FlowAwaitingApproval FlowState = "awaiting_approval"
	FlowAwaitingPayment  FlowState = "awaiting_payment"
	FlowSuccess          FlowState = "success"
)

// FlowEvent is an externally confirmed transaction outcome.
type FlowEvent string

const (
	EventApprovalConfirmed FlowEvent = "approval_confirmed"
	EventPaymentConfirmed  FlowEvent = "payment_confirmed"
)

// PaymentFlow drives the approve/pay step sequence for one payer and
// one invoice. Transitions are irreversible.
type PaymentFlow struct {
	state FlowState
}

// NewPaymentFlow derives the initial step from the invoice's resolved
// status and the payer's readiness: an already-paid invoice starts (and
// stays) at success, otherwise the approval step is only entered when
// approval would unblock payment.
func NewPaymentFlow(r PaymentReadiness, status Status) *PaymentFlow {
	switch {
	case status == StatusPaid:
		return &PaymentFlow{state: FlowSuccess}
	case r.NeedsApproval:
		return &PaymentFlow{state: FlowAwaitingApproval}
	default:
		return &PaymentFlow{state: FlowAwaitingPayment}
	}
}

// State returns the current step.
func (f *PaymentFlow) State() FlowState {
	return f.state
}

// Apply advances the flow on a confirmed external transaction. Events
// that would re-enter the current or an earlier step are idempotent
// no-ops; a payment confirmation cannot skip a pending approval step.
func (f *PaymentFlow) Apply(ev FlowEvent) error {
	switch f.state {
	case FlowAwaitingApproval:
		if ev == EventApprovalConfirmed {
			f.state = FlowAwaitingPayment
			return nil
		}
		return ErrInvalidTransition
	case FlowAwaitingPayment:
		if ev == EventPaymentConfirmed {
			f.state = FlowSuccess
		}
		// A repeated approval confirmation changes nothing.
		return nil
	case FlowSuccess:
		return nil
	}
	return ErrInvalidTransition
}
