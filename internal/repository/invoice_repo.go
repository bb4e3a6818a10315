package repository

import (
	"context"

	"chainvoice/internal/model"

	"gorm.io/gorm"
)

type InvoiceRepository interface {
	Create(ctx context.Context, invoice *model.Invoice) error
	FindByID(ctx context.Context, id string) (*model.Invoice, error)
	ListIDsByReceiver(ctx context.Context, receiver string) ([]string, error)
	CountByReceiver(ctx context.Context, receiver string) (int64, error)
	MarkPaid(ctx context.Context, id, payer string) error
}

type invoiceRepository struct {
	db *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) InvoiceRepository {
	return &invoiceRepository{db: db}
}

func (r *invoiceRepository) Create(ctx context.Context, invoice *model.Invoice) error {
	return GetDB(ctx, r.db).Create(invoice).Error
}

func (r *invoiceRepository) FindByID(ctx context.Context, id string) (*model.Invoice, error) {
	var invoice model.Invoice
	if err := GetDB(ctx, r.db).First(&invoice, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *invoiceRepository) ListIDsByReceiver(ctx context.Context, receiver string) ([]string, error) {
	var ids []string
	err := GetDB(ctx, r.db).
		Model(&model.Invoice{}).
		Where("receiver = ?", receiver).
		Order("created_at desc").
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *invoiceRepository) CountByReceiver(ctx context.Context, receiver string) (int64, error) {
	var count int64
	if err := GetDB(ctx, r.db).Model(&model.Invoice{}).Where("receiver = ?", receiver).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *invoiceRepository) MarkPaid(ctx context.Context, id, payer string) error {
	return GetDB(ctx, r.db).
		Model(&model.Invoice{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"is_paid": true, "paid_by": payer}).Error
}
