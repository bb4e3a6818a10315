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
	"chainvoice/pkg/pagination"
	"chainvoice/pkg/token"
)

// --- DTOs ---

type CreateInvoiceRequest struct {
	OrgName         string `json:"org_name" binding:"required"`
	WorkDescription string `json:"work_description" binding:"required"`
	Amount          string `json:"amount" binding:"required"`
	DueDate         string `json:"due_date" binding:"required"`
}

type InvoiceResponse struct {
	ID              string `json:"id"`
	IDShort         string `json:"id_short"`
	OrgName         string `json:"org_name"`
	WorkDescription string `json:"work_description"`
	Amount          string `json:"amount"`         // fixed-scale decimal string
	AmountDisplay   string `json:"amount_display"` // grouped, with symbol
	BillDate        string `json:"bill_date"`      // RFC3339
	BillDateDisplay string `json:"bill_date_display"`
	Created         string `json:"created"` // relative to now
	DueDate         string `json:"due_date"`
	DueDateDisplay  string `json:"due_date_display"`
	Receiver        string `json:"receiver"`
	ReceiverShort   string `json:"receiver_short"`
	IsPaid          bool   `json:"is_paid"`
	Status          string `json:"status"` // derived, never stored
	TimeRemaining   string `json:"time_remaining"`
	PaymentURL      string `json:"payment_url"`
	TxHash          string `json:"tx_hash,omitempty"` // creation transaction
}

// ValidationError carries the field→message map of a rejected draft.
// Submission is blocked locally; nothing reaches the gateway.
type ValidationError struct {
	Result domain.ValidationResult
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("draft validation failed on %d field(s)", len(e.Result.Errors))
}

// --- Interface ---

type InvoiceService interface {
	CreateInvoice(ctx context.Context, receiver string, req CreateInvoiceRequest) (InvoiceResponse, error)
	GetInvoice(ctx context.Context, id string) (InvoiceResponse, error)
	ListInvoices(ctx context.Context, account string, p pagination.Params) ([]InvoiceResponse, int64, error)
	ValidateDraft(req CreateInvoiceRequest) domain.ValidationResult
}

type invoiceService struct {
	reader  chain.Reader
	writer  chain.Writer
	baseURL string
	log     zerolog.Logger
}

func NewInvoiceService(reader chain.Reader, writer chain.Writer, baseURL string) InvoiceService {
	return &invoiceService{
		reader:  reader,
		writer:  writer,
		baseURL: baseURL,
		log:     logger.WithComponent("invoice-service"),
	}
}

// --- Implementation ---

func (s *invoiceService) CreateInvoice(ctx context.Context, receiver string, req CreateInvoiceRequest) (InvoiceResponse, error) {
	draft := toDraft(req)

	if result := domain.ValidateDraft(draft, time.Now()); !result.IsValid {
		return InvoiceResponse{}, &ValidationError{Result: result}
	}

	units, err := token.ParseUnits(draft.Amount)
	if err != nil {
		return InvoiceResponse{}, fmt.Errorf("invalid amount: %w", err)
	}
	due, err := time.Parse(domain.DueDateLayout, draft.DueDate)
	if err != nil {
		return InvoiceResponse{}, fmt.Errorf("invalid due date: %w", err)
	}

	handle, err := s.writer.SubmitCreateInvoice(ctx, receiver, draft.OrgName, draft.WorkDescription, units, due.Unix())
	if err != nil {
		return InvoiceResponse{}, fmt.Errorf("submit create invoice: %w", err)
	}
	receipt, err := s.writer.AwaitConfirmation(ctx, handle)
	if err != nil {
		return InvoiceResponse{}, fmt.Errorf("await create invoice: %w", err)
	}
	if receipt.Status == chain.TxFailed {
		return InvoiceResponse{}, fmt.Errorf("create invoice reverted: %s", receipt.Revert)
	}

	// The invoice id is derived by the write itself and comes back on
	// the receipt, never from the submission handle.
	invoice, err := s.reader.ReadInvoice(ctx, receipt.InvoiceID)
	if err != nil {
		return InvoiceResponse{}, fmt.Errorf("read back created invoice: %w", err)
	}

	s.log.Info().
		Str("invoice_id", invoice.ID).
		Str("receiver", invoice.Receiver).
		Int64("amount", invoice.Amount).
		Msg("invoice created")

	resp := s.toResponse(invoice, time.Now())
	resp.TxHash = receipt.Hash
	return resp, nil
}

func (s *invoiceService) GetInvoice(ctx context.Context, id string) (InvoiceResponse, error) {
	invoice, err := s.reader.ReadInvoice(ctx, id)
	if err != nil {
		return InvoiceResponse{}, err
	}
	return s.toResponse(invoice, time.Now()), nil
}

func (s *invoiceService) ListInvoices(ctx context.Context, account string, p pagination.Params) ([]InvoiceResponse, int64, error) {
	ids, err := s.reader.ListUserInvoices(ctx, account)
	if err != nil {
		return nil, 0, fmt.Errorf("list invoices: %w", err)
	}
	total := int64(len(ids))

	now := time.Now()
	page := pagination.Slice(ids, p)
	result := make([]InvoiceResponse, 0, len(page))
	for _, id := range page {
		invoice, err := s.reader.ReadInvoice(ctx, id)
		if err != nil {
			return nil, 0, fmt.Errorf("read invoice %s: %w", id, err)
		}
		result = append(result, s.toResponse(invoice, now))
	}
	return result, total, nil
}

func (s *invoiceService) ValidateDraft(req CreateInvoiceRequest) domain.ValidationResult {
	return domain.ValidateDraft(toDraft(req), time.Now())
}

// --- Mapping ---

func toDraft(req CreateInvoiceRequest) domain.Draft {
	return domain.Draft{
		OrgName:         req.OrgName,
		WorkDescription: req.WorkDescription,
		Amount:          token.SanitizeAmountInput(req.Amount),
		DueDate:         req.DueDate,
	}
}

func (s *invoiceService) toResponse(inv domain.Invoice, now time.Time) InvoiceResponse {
	amount := token.FormatUnits(inv.Amount)
	billDate := time.Unix(inv.BillDate, 0).UTC()
	dueDate := time.Unix(inv.DueDate, 0).UTC()

	return InvoiceResponse{
		ID:              inv.ID,
		IDShort:         format.TruncateIdentifier(inv.ID),
		OrgName:         inv.OrgName,
		WorkDescription: inv.WorkDescription,
		Amount:          amount,
		AmountDisplay:   format.Currency(amount, true),
		BillDate:        billDate.Format(time.RFC3339),
		BillDateDisplay: format.DisplayDate(billDate),
		Created:         format.RelativeTime(billDate, now),
		DueDate:         dueDate.Format(time.RFC3339),
		DueDateDisplay:  format.DisplayDate(dueDate),
		Receiver:        inv.Receiver,
		ReceiverShort:   format.TruncateIdentifier(inv.Receiver),
		IsPaid:          inv.IsPaid,
		Status:          string(domain.ResolveStatus(inv, now)),
		TimeRemaining:   format.TimeRemaining(dueDate, now),
		PaymentURL:      s.baseURL + "/pay/" + inv.ID,
	}
}
