package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"chainvoice/internal/domain"
	"chainvoice/pkg/pagination"
)

const (
	testReceiver = "0x742d35cc6634c0532925a3b844bc9e7595f0beb3"
	testPayer    = "0x1a2b3c4d5e6f7a8b9c0d1e2f3a4b5c6d7e8f9a0b"
	testSpender  = "0x4c1e5fc5cd0d6e9fcbc14aac2e0e7a8b9d2f1a30"
	testBaseURL  = "http://localhost:5173"
)

func futureDueDate(days int) string {
	return time.Now().Add(time.Duration(days) * 24 * time.Hour).Format(domain.DueDateLayout)
}

func validCreateRequest() CreateInvoiceRequest {
	return CreateInvoiceRequest{
		OrgName:         "Acme Corp",
		WorkDescription: "Consulting services for Q2",
		Amount:          "1500.50",
		DueDate:         futureDueDate(3),
	}
}

func TestCreateInvoice(t *testing.T) {
	t.Parallel()

	gateway := newFakeGateway()
	svc := NewInvoiceService(gateway, gateway, testBaseURL)

	resp, err := svc.CreateInvoice(context.Background(), testReceiver, validCreateRequest())
	if err != nil {
		t.Fatalf("CreateInvoice: %v", err)
	}

	if resp.ID == "" {
		t.Fatalf("expected invoice id")
	}
	if resp.TxHash == "" {
		t.Fatalf("expected creation tx hash")
	}
	if resp.Status != string(domain.StatusPending) {
		t.Fatalf("Status = %q, want %q", resp.Status, domain.StatusPending)
	}
	if resp.Amount != "1500.500000" {
		t.Fatalf("Amount = %q, want %q", resp.Amount, "1500.500000")
	}
	if resp.AmountDisplay != "1,500.50 PYUSD" {
		t.Fatalf("AmountDisplay = %q, want %q", resp.AmountDisplay, "1,500.50 PYUSD")
	}
	if resp.Receiver != testReceiver {
		t.Fatalf("Receiver = %q, want %q", resp.Receiver, testReceiver)
	}
	if want := testBaseURL + "/pay/" + resp.ID; resp.PaymentURL != want {
		t.Fatalf("PaymentURL = %q, want %q", resp.PaymentURL, want)
	}

	stored, err := gateway.ReadInvoice(context.Background(), resp.ID)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if stored.Amount != 1_500_500_000 {
		t.Fatalf("stored amount = %d, want %d", stored.Amount, 1_500_500_000)
	}
}

func TestCreateInvoiceSanitizesAmount(t *testing.T) {
	t.Parallel()

	gateway := newFakeGateway()
	svc := NewInvoiceService(gateway, gateway, testBaseURL)

	req := validCreateRequest()
	req.Amount = "$1,500.50"

	resp, err := svc.CreateInvoice(context.Background(), testReceiver, req)
	if err != nil {
		t.Fatalf("CreateInvoice: %v", err)
	}
	if resp.Amount != "1500.500000" {
		t.Fatalf("Amount = %q, want %q", resp.Amount, "1500.500000")
	}

	// Excess precision truncates rather than rejecting.
	req = validCreateRequest()
	req.Amount = "10.1234567"
	resp, err = svc.CreateInvoice(context.Background(), testReceiver, req)
	if err != nil {
		t.Fatalf("CreateInvoice with excess precision: %v", err)
	}
	if resp.Amount != "10.123456" {
		t.Fatalf("Amount = %q, want %q", resp.Amount, "10.123456")
	}
}

func TestCreateInvoiceValidationFailure(t *testing.T) {
	t.Parallel()

	gateway := newFakeGateway()
	svc := NewInvoiceService(gateway, gateway, testBaseURL)

	_, err := svc.CreateInvoice(context.Background(), testReceiver, CreateInvoiceRequest{
		OrgName:         "A",
		WorkDescription: "short",
		Amount:          "0",
		DueDate:         futureDueDate(3),
	})

	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("want *ValidationError, got %v", err)
	}
	if vErr.Result.IsValid {
		t.Fatalf("validation error carries a valid result")
	}
	if got := vErr.Result.Errors[domain.FieldOrgName]; got != "Organization name must be at least 2 characters" {
		t.Fatalf("org_name message = %q", got)
	}

	// A rejected draft never reaches the chain.
	if n := gateway.submitCount(); n != 0 {
		t.Fatalf("expected no submissions, got %d", n)
	}
}

func TestGetInvoiceNotFound(t *testing.T) {
	t.Parallel()

	gateway := newFakeGateway()
	svc := NewInvoiceService(gateway, gateway, testBaseURL)

	_, err := svc.GetInvoice(context.Background(), "0xmissing")
	if !errors.Is(err, domain.ErrInvoiceNotFound) {
		t.Fatalf("want ErrInvoiceNotFound, got %v", err)
	}
}

func TestGetInvoiceDerivesStatus(t *testing.T) {
	t.Parallel()

	gateway := newFakeGateway()
	svc := NewInvoiceService(gateway, gateway, testBaseURL)

	gateway.seedInvoice(domain.Invoice{
		ID:       "0xoverdue",
		OrgName:  "Acme Corp",
		Amount:   5_000_000,
		BillDate: time.Now().Add(-96 * time.Hour).Unix(),
		DueDate:  time.Now().Add(-48 * time.Hour).Unix(),
		Receiver: testReceiver,
	})

	resp, err := svc.GetInvoice(context.Background(), "0xoverdue")
	if err != nil {
		t.Fatalf("GetInvoice: %v", err)
	}
	if resp.Status != string(domain.StatusExpired) {
		t.Fatalf("Status = %q, want %q", resp.Status, domain.StatusExpired)
	}
	if resp.TimeRemaining != "Expired" {
		t.Fatalf("TimeRemaining = %q, want %q", resp.TimeRemaining, "Expired")
	}
}

func TestListInvoices(t *testing.T) {
	t.Parallel()

	gateway := newFakeGateway()
	svc := NewInvoiceService(gateway, gateway, testBaseURL)

	var ids []string
	for i := 0; i < 3; i++ {
		req := validCreateRequest()
		req.WorkDescription = fmt.Sprintf("Consulting engagement number %d", i+1)
		resp, err := svc.CreateInvoice(context.Background(), testReceiver, req)
		if err != nil {
			t.Fatalf("CreateInvoice %d: %v", i, err)
		}
		ids = append(ids, resp.ID)
	}

	page, total, err := svc.ListInvoices(context.Background(), testReceiver, pagination.Params{Page: 1, Limit: 2, Offset: 0})
	if err != nil {
		t.Fatalf("ListInvoices: %v", err)
	}
	if total != 3 {
		t.Fatalf("total = %d, want 3", total)
	}
	if len(page) != 2 {
		t.Fatalf("page size = %d, want 2", len(page))
	}
	// Newest first.
	if page[0].ID != ids[2] {
		t.Fatalf("first id = %q, want %q", page[0].ID, ids[2])
	}

	rest, total, err := svc.ListInvoices(context.Background(), testReceiver, pagination.Params{Page: 2, Limit: 2, Offset: 2})
	if err != nil {
		t.Fatalf("ListInvoices page 2: %v", err)
	}
	if total != 3 || len(rest) != 1 {
		t.Fatalf("page 2: total = %d len = %d, want 3 and 1", total, len(rest))
	}

	// Another account sees nothing.
	other, total, err := svc.ListInvoices(context.Background(), testPayer, pagination.Params{Page: 1, Limit: 20})
	if err != nil {
		t.Fatalf("ListInvoices other account: %v", err)
	}
	if total != 0 || len(other) != 0 {
		t.Fatalf("other account: total = %d len = %d, want 0 and 0", total, len(other))
	}
}

func TestValidateDraftPassthrough(t *testing.T) {
	t.Parallel()

	gateway := newFakeGateway()
	svc := NewInvoiceService(gateway, gateway, testBaseURL)

	result := svc.ValidateDraft(validCreateRequest())
	if !result.IsValid {
		t.Fatalf("expected valid draft, got %v", result.Errors)
	}

	result = svc.ValidateDraft(CreateInvoiceRequest{})
	if result.IsValid {
		t.Fatalf("expected invalid empty draft")
	}
	if len(result.Errors) != 4 {
		t.Fatalf("expected 4 field errors, got %v", result.Errors)
	}
}
