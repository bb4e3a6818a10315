package repository

import (
	"context"

	"chainvoice/internal/model"

	"gorm.io/gorm"
)

type TransactionRepository interface {
	Create(ctx context.Context, tx *model.ChainTransaction) error
	FindByHash(ctx context.Context, hash string) (*model.ChainTransaction, error)
}

type transactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(ctx context.Context, tx *model.ChainTransaction) error {
	return GetDB(ctx, r.db).Create(tx).Error
}

func (r *transactionRepository) FindByHash(ctx context.Context, hash string) (*model.ChainTransaction, error) {
	var tx model.ChainTransaction
	if err := GetDB(ctx, r.db).First(&tx, "hash = ?", hash).Error; err != nil {
		return nil, err
	}
	return &tx, nil
}
