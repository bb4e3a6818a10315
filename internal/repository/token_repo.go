package repository

import (
	"context"
	"errors"

	"chainvoice/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TokenRepository stores ERC20-style balances and allowances. Missing
// rows read as zero; writes upsert.
type TokenRepository interface {
	GetBalance(ctx context.Context, account string) (int64, error)
	SetBalance(ctx context.Context, account string, amount int64) error
	GetAllowance(ctx context.Context, owner, spender string) (int64, error)
	SetAllowance(ctx context.Context, owner, spender string, amount int64) error
}

type tokenRepository struct {
	db *gorm.DB
}

func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &tokenRepository{db: db}
}

func (r *tokenRepository) GetBalance(ctx context.Context, account string) (int64, error) {
	var row model.TokenBalance
	err := GetDB(ctx, r.db).First(&row, "account = ?", account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return row.Amount, nil
}

func (r *tokenRepository) SetBalance(ctx context.Context, account string, amount int64) error {
	return GetDB(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "account"}},
		DoUpdates: clause.AssignmentColumns([]string{"amount", "updated_at"}),
	}).Create(&model.TokenBalance{Account: account, Amount: amount}).Error
}

func (r *tokenRepository) GetAllowance(ctx context.Context, owner, spender string) (int64, error) {
	var row model.TokenAllowance
	err := GetDB(ctx, r.db).First(&row, "owner = ? AND spender = ?", owner, spender).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return row.Amount, nil
}

func (r *tokenRepository) SetAllowance(ctx context.Context, owner, spender string, amount int64) error {
	return GetDB(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "owner"}, {Name: "spender"}},
		DoUpdates: clause.AssignmentColumns([]string{"amount", "updated_at"}),
	}).Create(&model.TokenAllowance{Owner: owner, Spender: spender, Amount: amount}).Error
}
