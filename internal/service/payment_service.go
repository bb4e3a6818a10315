package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"chainvoice/internal/chain"
	"chainvoice/internal/domain"
	"chainvoice/internal/logger"
	"chainvoice/pkg/format"
	"chainvoice/pkg/token"
)

// --- DTOs ---

type ReadinessResponse struct {
	InvoiceID     string                  `json:"invoice_id"`
	Payer         string                  `json:"payer"`
	Amount        string                  `json:"amount"`
	AmountDisplay string                  `json:"amount_display"`
	Balance       string                  `json:"balance"`
	Allowance     string                  `json:"allowance"`
	Readiness     domain.PaymentReadiness `json:"readiness"`
	Status        string                  `json:"status"`
	Step          string                  `json:"step"` // initial payment flow step
}

type TransactionResponse struct {
	Receipt chain.Receipt `json:"receipt"`
	Step    string        `json:"step"` // payment flow step after this transaction
}

type PaymentResponse struct {
	Receipt chain.Receipt   `json:"receipt"`
	Invoice InvoiceResponse `json:"invoice"`
	Step    string          `json:"step"`
}

// --- Interface ---

// PaymentService orchestrates the two-step approve-then-pay flow.
// Readiness is recomputed from fresh chain reads on every call; the
// service never caches a derived value.
type PaymentService interface {
	GetReadiness(ctx context.Context, payer, invoiceID string) (ReadinessResponse, error)
	Approve(ctx context.Context, payer, invoiceID string) (TransactionResponse, error)
	Pay(ctx context.Context, payer, invoiceID string) (PaymentResponse, error)
	GetTransaction(ctx context.Context, hash string) (chain.Receipt, error)
}

type paymentService struct {
	reader   chain.Reader
	writer   chain.Writer
	invoices InvoiceService
	spender  string // contract address payers approve
	log      zerolog.Logger
}

func NewPaymentService(reader chain.Reader, writer chain.Writer, invoices InvoiceService, spender string) PaymentService {
	return &paymentService{
		reader:   reader,
		writer:   writer,
		invoices: invoices,
		spender:  spender,
		log:      logger.WithComponent("payment-service"),
	}
}

// --- Implementation ---

func (s *paymentService) GetReadiness(ctx context.Context, payer, invoiceID string) (ReadinessResponse, error) {
	invoice, balance, allowance, err := s.read(ctx, payer, invoiceID)
	if err != nil {
		return ReadinessResponse{}, err
	}
	readiness := domain.EvaluateReadiness(balance, allowance, invoice.Amount)
	status := domain.ResolveStatus(invoice, time.Now())

	amount := token.FormatUnits(invoice.Amount)
	flow := domain.NewPaymentFlow(readiness, status)
	return ReadinessResponse{
		InvoiceID:     invoice.ID,
		Payer:         payer,
		Amount:        amount,
		AmountDisplay: format.Currency(amount, true),
		Balance:       token.FormatUnits(balance),
		Allowance:     token.FormatUnits(allowance),
		Readiness:     readiness,
		Status:        string(status),
		Step:          string(flow.State()),
	}, nil
}

func (s *paymentService) Approve(ctx context.Context, payer, invoiceID string) (TransactionResponse, error) {
	invoice, readiness, status, err := s.evaluate(ctx, payer, invoiceID)
	if err != nil {
		return TransactionResponse{}, err
	}
	if status == domain.StatusPaid {
		return TransactionResponse{}, domain.ErrInvoiceAlreadyPaid
	}

	handle, err := s.writer.SubmitApprove(ctx, payer, s.spender, invoice.Amount)
	if err != nil {
		return TransactionResponse{}, fmt.Errorf("submit approve: %w", err)
	}
	receipt, err := s.writer.AwaitConfirmation(ctx, handle)
	if err != nil {
		return TransactionResponse{}, fmt.Errorf("await approve: %w", err)
	}
	if receipt.Status == chain.TxFailed {
		return TransactionResponse{Receipt: receipt}, fmt.Errorf("approve reverted: %s", receipt.Revert)
	}

	flow := domain.NewPaymentFlow(readiness, status)
	if err := flow.Apply(domain.EventApprovalConfirmed); err != nil {
		return TransactionResponse{Receipt: receipt}, err
	}

	s.log.Info().
		Str("invoice_id", invoice.ID).
		Str("payer", payer).
		Str("tx", receipt.Hash).
		Msg("spending approved")

	return TransactionResponse{Receipt: receipt, Step: string(flow.State())}, nil
}

func (s *paymentService) Pay(ctx context.Context, payer, invoiceID string) (PaymentResponse, error) {
	invoice, readiness, status, err := s.evaluate(ctx, payer, invoiceID)
	if err != nil {
		return PaymentResponse{}, err
	}
	if status == domain.StatusPaid {
		return PaymentResponse{}, domain.ErrInvoiceAlreadyPaid
	}

	// Gate locally before submitting anything the chain would revert.
	if !readiness.CanPay {
		if !readiness.HasSufficientBalance {
			return PaymentResponse{}, domain.ErrInsufficientBalance
		}
		return PaymentResponse{}, domain.ErrInsufficientAllowance
	}

	handle, err := s.writer.SubmitPayInvoice(ctx, payer, invoice.ID)
	if err != nil {
		return PaymentResponse{}, fmt.Errorf("submit pay: %w", err)
	}
	receipt, err := s.writer.AwaitConfirmation(ctx, handle)
	if err != nil {
		return PaymentResponse{}, fmt.Errorf("await pay: %w", err)
	}
	if receipt.Status == chain.TxFailed {
		return PaymentResponse{Receipt: receipt}, fmt.Errorf("payment reverted: %s", receipt.Revert)
	}

	flow := domain.NewPaymentFlow(readiness, status)
	if err := flow.Apply(domain.EventPaymentConfirmed); err != nil {
		return PaymentResponse{Receipt: receipt}, err
	}

	paid, err := s.invoices.GetInvoice(ctx, invoice.ID)
	if err != nil {
		return PaymentResponse{Receipt: receipt}, fmt.Errorf("read back paid invoice: %w", err)
	}

	s.log.Info().
		Str("invoice_id", invoice.ID).
		Str("payer", payer).
		Str("tx", receipt.Hash).
		Msg("invoice paid")

	return PaymentResponse{Receipt: receipt, Invoice: paid, Step: string(flow.State())}, nil
}

func (s *paymentService) GetTransaction(ctx context.Context, hash string) (chain.Receipt, error) {
	return s.writer.AwaitConfirmation(ctx, chain.TxHandle(hash))
}

// evaluate derives readiness and status from fresh chain reads.
func (s *paymentService) evaluate(ctx context.Context, payer, invoiceID string) (domain.Invoice, domain.PaymentReadiness, domain.Status, error) {
	invoice, balance, allowance, err := s.read(ctx, payer, invoiceID)
	if err != nil {
		return domain.Invoice{}, domain.PaymentReadiness{}, "", err
	}
	readiness := domain.EvaluateReadiness(balance, allowance, invoice.Amount)
	status := domain.ResolveStatus(invoice, time.Now())
	return invoice, readiness, status, nil
}

// read fetches the invoice plus the payer's current balance and
// allowance toward the spender.
func (s *paymentService) read(ctx context.Context, payer, invoiceID string) (domain.Invoice, int64, int64, error) {
	invoice, err := s.reader.ReadInvoice(ctx, invoiceID)
	if err != nil {
		return domain.Invoice{}, 0, 0, err
	}
	balance, err := s.reader.ReadBalance(ctx, payer)
	if err != nil {
		return domain.Invoice{}, 0, 0, fmt.Errorf("read balance: %w", err)
	}
	allowance, err := s.reader.ReadAllowance(ctx, payer, s.spender)
	if err != nil {
		return domain.Invoice{}, 0, 0, fmt.Errorf("read allowance: %w", err)
	}
	return invoice, balance, allowance, nil
}
