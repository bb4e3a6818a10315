package chain

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/sha3"
	"gorm.io/gorm"

	"chainvoice/internal/domain"
	"chainvoice/internal/logger"
	"chainvoice/internal/model"
	"chainvoice/internal/repository"
	"chainvoice/internal/websocket"
	"chainvoice/pkg/token"
)

// Ledger implements Reader and Writer on Postgres, reproducing the
// contract semantics: content-derived invoice ids, ERC20 balances and
// allowances, exactly-once payment settlement, persisted receipts.
// Every write runs in one database transaction; a revert rolls the
// whole state change back but still leaves a failed receipt behind.
type Ledger struct {
	invoiceRepo repository.InvoiceRepository
	tokenRepo   repository.TokenRepository
	txRepo      repository.TransactionRepository
	txManager   repository.TransactionManager
	hub         *websocket.Hub
	contract    string // spender address the factory settles through
	log         zerolog.Logger
}

func NewLedger(
	invoiceRepo repository.InvoiceRepository,
	tokenRepo repository.TokenRepository,
	txRepo repository.TransactionRepository,
	txManager repository.TransactionManager,
	hub *websocket.Hub,
	contract string,
) *Ledger {
	return &Ledger{
		invoiceRepo: invoiceRepo,
		tokenRepo:   tokenRepo,
		txRepo:      txRepo,
		txManager:   txManager,
		hub:         hub,
		contract:    NormalizeAddress(contract),
		log:         logger.WithComponent("ledger"),
	}
}

// ContractAddress returns the spender address payers approve.
func (l *Ledger) ContractAddress() string {
	return l.contract
}

// --- Reader ---

func (l *Ledger) ReadInvoice(ctx context.Context, id string) (domain.Invoice, error) {
	row, err := l.invoiceRepo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Invoice{}, domain.ErrInvoiceNotFound
	}
	if err != nil {
		return domain.Invoice{}, fmt.Errorf("read invoice: %w", err)
	}
	return toDomainInvoice(row), nil
}

func (l *Ledger) ListUserInvoices(ctx context.Context, account string) ([]string, error) {
	ids, err := l.invoiceRepo.ListIDsByReceiver(ctx, NormalizeAddress(account))
	if err != nil {
		return nil, fmt.Errorf("list user invoices: %w", err)
	}
	return ids, nil
}

func (l *Ledger) ReadBalance(ctx context.Context, account string) (int64, error) {
	return l.tokenRepo.GetBalance(ctx, NormalizeAddress(account))
}

func (l *Ledger) ReadAllowance(ctx context.Context, owner, spender string) (int64, error) {
	return l.tokenRepo.GetAllowance(ctx, NormalizeAddress(owner), NormalizeAddress(spender))
}

// --- Writer ---

func (l *Ledger) SubmitCreateInvoice(ctx context.Context, receiver, orgName, workDescription string, amount, dueDate int64) (TxHandle, error) {
	if !IsAddress(receiver) {
		return "", domain.ErrInvalidAddress
	}
	receiver = NormalizeAddress(receiver)

	record := &model.ChainTransaction{Kind: model.TxKindCreateInvoice, Sender: receiver}
	return l.submit(ctx, record, func(txCtx context.Context) error {
		if amount <= 0 {
			return token.ErrInvalidAmount
		}
		nonce, err := l.invoiceRepo.CountByReceiver(txCtx, receiver)
		if err != nil {
			return err
		}
		invoice := &model.Invoice{
			ID:              deriveInvoiceID(receiver, nonce, orgName, workDescription, amount, dueDate),
			OrgName:         orgName,
			WorkDescription: workDescription,
			Amount:          amount,
			BillDate:        time.Now().Unix(),
			DueDate:         dueDate,
			Receiver:        receiver,
			Nonce:           nonce,
		}
		if err := l.invoiceRepo.Create(txCtx, invoice); err != nil {
			return err
		}
		record.InvoiceID = invoice.ID
		return nil
	})
}

func (l *Ledger) SubmitApprove(ctx context.Context, owner, spender string, amount int64) (TxHandle, error) {
	if !IsAddress(owner) || !IsAddress(spender) {
		return "", domain.ErrInvalidAddress
	}
	owner = NormalizeAddress(owner)
	spender = NormalizeAddress(spender)

	record := &model.ChainTransaction{Kind: model.TxKindApprove, Sender: owner}
	return l.submit(ctx, record, func(txCtx context.Context) error {
		if amount < 0 {
			return token.ErrInvalidAmount
		}
		return l.tokenRepo.SetAllowance(txCtx, owner, spender, amount)
	})
}

func (l *Ledger) SubmitPayInvoice(ctx context.Context, payer, invoiceID string) (TxHandle, error) {
	if !IsAddress(payer) {
		return "", domain.ErrInvalidAddress
	}
	payer = NormalizeAddress(payer)

	record := &model.ChainTransaction{Kind: model.TxKindPayInvoice, Sender: payer, InvoiceID: invoiceID}
	return l.submit(ctx, record, func(txCtx context.Context) error {
		invoice, err := l.invoiceRepo.FindByID(txCtx, invoiceID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrInvoiceNotFound
		}
		if err != nil {
			return err
		}
		if invoice.IsPaid {
			return domain.ErrInvoiceAlreadyPaid
		}

		balance, err := l.tokenRepo.GetBalance(txCtx, payer)
		if err != nil {
			return err
		}
		if balance < invoice.Amount {
			return domain.ErrInsufficientBalance
		}
		allowance, err := l.tokenRepo.GetAllowance(txCtx, payer, l.contract)
		if err != nil {
			return err
		}
		if allowance < invoice.Amount {
			return domain.ErrInsufficientAllowance
		}

		if err := l.tokenRepo.SetBalance(txCtx, payer, balance-invoice.Amount); err != nil {
			return err
		}
		if err := l.tokenRepo.SetAllowance(txCtx, payer, l.contract, allowance-invoice.Amount); err != nil {
			return err
		}
		receiverBalance, err := l.tokenRepo.GetBalance(txCtx, invoice.Receiver)
		if err != nil {
			return err
		}
		if err := l.tokenRepo.SetBalance(txCtx, invoice.Receiver, receiverBalance+invoice.Amount); err != nil {
			return err
		}
		return l.invoiceRepo.MarkPaid(txCtx, invoiceID, payer)
	})
}

func (l *Ledger) SubmitMint(ctx context.Context, account string, amount int64) (TxHandle, error) {
	if !IsAddress(account) {
		return "", domain.ErrInvalidAddress
	}
	account = NormalizeAddress(account)

	record := &model.ChainTransaction{Kind: model.TxKindMint, Sender: account}
	return l.submit(ctx, record, func(txCtx context.Context) error {
		if amount <= 0 {
			return token.ErrInvalidAmount
		}
		balance, err := l.tokenRepo.GetBalance(txCtx, account)
		if err != nil {
			return err
		}
		return l.tokenRepo.SetBalance(txCtx, account, balance+amount)
	})
}

func (l *Ledger) AwaitConfirmation(ctx context.Context, handle TxHandle) (Receipt, error) {
	row, err := l.txRepo.FindByHash(ctx, string(handle))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Receipt{}, domain.ErrTransactionNotFound
	}
	if err != nil {
		return Receipt{}, fmt.Errorf("await confirmation: %w", err)
	}
	return toReceipt(row), nil
}

// --- internals ---

// submit executes a state change and records its receipt. A revert
// (any recognized business rejection) rolls the state back but the
// failed receipt is still persisted and broadcast; only infrastructure
// failures surface as submission errors.
func (l *Ledger) submit(ctx context.Context, record *model.ChainTransaction, exec func(txCtx context.Context) error) (TxHandle, error) {
	record.Hash = newTxHash()

	err := l.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := exec(txCtx); err != nil {
			return err
		}
		record.Status = model.TxConfirmed
		return l.txRepo.Create(txCtx, record)
	})
	if err != nil {
		if !isRevert(err) {
			return "", fmt.Errorf("submit %s: %w", record.Kind, err)
		}
		record.Status = model.TxFailed
		record.Revert = err.Error()
		if recordErr := l.txRepo.Create(ctx, record); recordErr != nil {
			return "", fmt.Errorf("record reverted %s: %w", record.Kind, recordErr)
		}
	}

	l.log.Info().
		Str("hash", record.Hash).
		Str("kind", record.Kind).
		Str("status", record.Status).
		Str("invoice_id", record.InvoiceID).
		Msg("transaction recorded")
	l.publish(record)

	return TxHandle(record.Hash), nil
}

func (l *Ledger) publish(record *model.ChainTransaction) {
	if l.hub == nil {
		return
	}
	l.hub.BroadcastEvent(websocket.Event{
		Type:      websocket.EventTransaction,
		Hash:      record.Hash,
		Kind:      record.Kind,
		Status:    toReceiptStatus(record.Status),
		InvoiceID: record.InvoiceID,
	})
}

var revertReasons = []error{
	domain.ErrInvoiceNotFound,
	domain.ErrInvoiceAlreadyPaid,
	domain.ErrInsufficientBalance,
	domain.ErrInsufficientAllowance,
	token.ErrInvalidAmount,
}

func isRevert(err error) bool {
	for _, reason := range revertReasons {
		if errors.Is(err, reason) {
			return true
		}
	}
	return false
}

func toDomainInvoice(row *model.Invoice) domain.Invoice {
	return domain.Invoice{
		ID:              row.ID,
		OrgName:         row.OrgName,
		WorkDescription: row.WorkDescription,
		Amount:          row.Amount,
		BillDate:        row.BillDate,
		DueDate:         row.DueDate,
		Receiver:        row.Receiver,
		IsPaid:          row.IsPaid,
	}
}

func toReceipt(row *model.ChainTransaction) Receipt {
	return Receipt{
		Hash:      row.Hash,
		Kind:      row.Kind,
		Status:    toReceiptStatus(row.Status),
		InvoiceID: row.InvoiceID,
		Revert:    row.Revert,
	}
}

func toReceiptStatus(status string) string {
	if status == model.TxFailed {
		return TxFailed
	}
	return TxConfirmed
}

// deriveInvoiceID hashes the invoice content plus the receiver's
// creation nonce, so the id is unique and reproducible from the write
// itself rather than from the transaction handle.
func deriveInvoiceID(receiver string, nonce int64, orgName, workDescription string, amount, dueDate int64) string {
	h := sha3.NewLegacyKeccak256()
	fmt.Fprintf(h, "%s|%d|%s|%s|%d|%d", receiver, nonce, orgName, workDescription, amount, dueDate)
	return fmt.Sprintf("0x%x", h.Sum(nil))
}

// newTxHash produces a unique transaction hash for a submission.
func newTxHash() string {
	h := sha3.NewLegacyKeccak256()
	id := uuid.New()
	h.Write(id[:])
	var ts [8]byte
	binary.BigEndian.PutUint64(ts[:], uint64(time.Now().UnixNano()))
	h.Write(ts[:])
	return fmt.Sprintf("0x%x", h.Sum(nil))
}
