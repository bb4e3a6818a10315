package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"chainvoice/internal/chain"
	"chainvoice/internal/domain"
)

// fakeGateway is an in-memory chain.Reader/Writer with the same revert
// semantics as the real ledger: recognized business violations produce
// a failed receipt behind a valid handle instead of a submission error.
type fakeGateway struct {
	mu         sync.Mutex
	invoices   map[string]domain.Invoice
	order      []string // invoice ids, newest first
	balances   map[string]int64
	allowances map[string]int64 // owner + "|" + spender
	receipts   map[chain.TxHandle]chain.Receipt
	seq        int
	submits    int // total write submissions
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		invoices:   make(map[string]domain.Invoice),
		balances:   make(map[string]int64),
		allowances: make(map[string]int64),
		receipts:   make(map[chain.TxHandle]chain.Receipt),
	}
}

func (f *fakeGateway) seedInvoice(inv domain.Invoice) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.invoices[inv.ID] = inv
	f.order = append([]string{inv.ID}, f.order...)
}

func (f *fakeGateway) seedBalance(account string, units int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.balances[account] = units
}

func (f *fakeGateway) submitCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submits
}

func (f *fakeGateway) nextHash() chain.TxHandle {
	f.seq++
	return chain.TxHandle(fmt.Sprintf("0xtx%038d", f.seq))
}

func (f *fakeGateway) record(handle chain.TxHandle, kind, invoiceID, revert string) {
	status := chain.TxConfirmed
	if revert != "" {
		status = chain.TxFailed
	}
	f.receipts[handle] = chain.Receipt{
		Hash:      string(handle),
		Kind:      kind,
		Status:    status,
		InvoiceID: invoiceID,
		Revert:    revert,
	}
}

// --- chain.Reader ---

func (f *fakeGateway) ReadInvoice(_ context.Context, id string) (domain.Invoice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	inv, ok := f.invoices[id]
	if !ok {
		return domain.Invoice{}, domain.ErrInvoiceNotFound
	}
	return inv, nil
}

func (f *fakeGateway) ListUserInvoices(_ context.Context, account string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var ids []string
	for _, id := range f.order {
		if f.invoices[id].Receiver == account {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (f *fakeGateway) ReadBalance(_ context.Context, account string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.balances[account], nil
}

func (f *fakeGateway) ReadAllowance(_ context.Context, owner, spender string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.allowances[owner+"|"+spender], nil
}

// --- chain.Writer ---

func (f *fakeGateway) SubmitCreateInvoice(_ context.Context, receiver, orgName, workDescription string, amount, dueDate int64) (chain.TxHandle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submits++

	handle := f.nextHash()
	id := fmt.Sprintf("0xinv%038d", f.seq)
	f.invoices[id] = domain.Invoice{
		ID:              id,
		OrgName:         orgName,
		WorkDescription: workDescription,
		Amount:          amount,
		BillDate:        time.Now().Unix(),
		DueDate:         dueDate,
		Receiver:        receiver,
	}
	f.order = append([]string{id}, f.order...)
	f.record(handle, "CREATE_INVOICE", id, "")
	return handle, nil
}

func (f *fakeGateway) SubmitApprove(_ context.Context, owner, spender string, amount int64) (chain.TxHandle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submits++

	handle := f.nextHash()
	f.allowances[owner+"|"+spender] = amount
	f.record(handle, "APPROVE", "", "")
	return handle, nil
}

func (f *fakeGateway) SubmitPayInvoice(_ context.Context, payer, invoiceID string) (chain.TxHandle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submits++

	handle := f.nextHash()
	inv, ok := f.invoices[invoiceID]
	switch {
	case !ok:
		f.record(handle, "PAY_INVOICE", invoiceID, domain.ErrInvoiceNotFound.Error())
	case inv.IsPaid:
		f.record(handle, "PAY_INVOICE", invoiceID, domain.ErrInvoiceAlreadyPaid.Error())
	case f.balances[payer] < inv.Amount:
		f.record(handle, "PAY_INVOICE", invoiceID, domain.ErrInsufficientBalance.Error())
	default:
		f.balances[payer] -= inv.Amount
		f.balances[inv.Receiver] += inv.Amount
		inv.IsPaid = true
		f.invoices[invoiceID] = inv
		f.record(handle, "PAY_INVOICE", invoiceID, "")
	}
	return handle, nil
}

func (f *fakeGateway) SubmitMint(_ context.Context, account string, amount int64) (chain.TxHandle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submits++

	handle := f.nextHash()
	f.balances[account] += amount
	f.record(handle, "MINT", "", "")
	return handle, nil
}

func (f *fakeGateway) AwaitConfirmation(_ context.Context, handle chain.TxHandle) (chain.Receipt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	receipt, ok := f.receipts[handle]
	if !ok {
		return chain.Receipt{}, domain.ErrTransactionNotFound
	}
	return receipt, nil
}
