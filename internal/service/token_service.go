package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"chainvoice/internal/chain"
	"chainvoice/internal/logger"
	"chainvoice/pkg/format"
	"chainvoice/pkg/token"
)

// --- DTOs ---

type TokenInfoResponse struct {
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals int    `json:"decimals"`
	Contract string `json:"contract"`
}

type BalanceResponse struct {
	Account        string `json:"account"`
	Balance        string `json:"balance"`
	BalanceDisplay string `json:"balance_display"`
}

type AllowanceResponse struct {
	Owner            string `json:"owner"`
	Spender          string `json:"spender"`
	Allowance        string `json:"allowance"`
	AllowanceDisplay string `json:"allowance_display"`
}

type FaucetResponse struct {
	Receipt chain.Receipt   `json:"receipt"`
	Balance BalanceResponse `json:"balance"`
}

// --- Interface ---

type TokenService interface {
	Info() TokenInfoResponse
	Balance(ctx context.Context, account string) (BalanceResponse, error)
	Allowance(ctx context.Context, owner string) (AllowanceResponse, error)
	Faucet(ctx context.Context, account string) (FaucetResponse, error)
}

type tokenService struct {
	reader       chain.Reader
	writer       chain.Writer
	spender      string
	faucetAmount int64 // token units minted per faucet request
	log          zerolog.Logger
}

// NewTokenService wires the token read surface plus the dev faucet.
// faucetAmount is a whole-token decimal string from configuration.
func NewTokenService(reader chain.Reader, writer chain.Writer, spender, faucetAmount string) (TokenService, error) {
	units, err := token.ParseUnits(faucetAmount)
	if err != nil {
		return nil, fmt.Errorf("invalid faucet amount %q: %w", faucetAmount, err)
	}
	return &tokenService{
		reader:       reader,
		writer:       writer,
		spender:      spender,
		faucetAmount: units,
		log:          logger.WithComponent("token-service"),
	}, nil
}

// --- Implementation ---

func (s *tokenService) Info() TokenInfoResponse {
	return TokenInfoResponse{
		Name:     token.Name,
		Symbol:   token.Symbol,
		Decimals: token.Decimals,
		Contract: s.spender,
	}
}

func (s *tokenService) Balance(ctx context.Context, account string) (BalanceResponse, error) {
	balance, err := s.reader.ReadBalance(ctx, account)
	if err != nil {
		return BalanceResponse{}, fmt.Errorf("read balance: %w", err)
	}
	return toBalanceResponse(account, balance), nil
}

func (s *tokenService) Allowance(ctx context.Context, owner string) (AllowanceResponse, error) {
	allowance, err := s.reader.ReadAllowance(ctx, owner, s.spender)
	if err != nil {
		return AllowanceResponse{}, fmt.Errorf("read allowance: %w", err)
	}
	formatted := token.FormatUnits(allowance)
	return AllowanceResponse{
		Owner:            owner,
		Spender:          s.spender,
		Allowance:        formatted,
		AllowanceDisplay: format.Currency(formatted, true),
	}, nil
}

func (s *tokenService) Faucet(ctx context.Context, account string) (FaucetResponse, error) {
	handle, err := s.writer.SubmitMint(ctx, account, s.faucetAmount)
	if err != nil {
		return FaucetResponse{}, fmt.Errorf("submit mint: %w", err)
	}
	receipt, err := s.writer.AwaitConfirmation(ctx, handle)
	if err != nil {
		return FaucetResponse{}, fmt.Errorf("await mint: %w", err)
	}
	if receipt.Status == chain.TxFailed {
		return FaucetResponse{}, fmt.Errorf("mint reverted: %s", receipt.Revert)
	}

	balance, err := s.reader.ReadBalance(ctx, account)
	if err != nil {
		return FaucetResponse{}, fmt.Errorf("read balance: %w", err)
	}

	s.log.Info().Str("account", account).Int64("amount", s.faucetAmount).Msg("faucet mint")
	return FaucetResponse{
		Receipt: receipt,
		Balance: toBalanceResponse(account, balance),
	}, nil
}

func toBalanceResponse(account string, balance int64) BalanceResponse {
	formatted := token.FormatUnits(balance)
	return BalanceResponse{
		Account:        account,
		Balance:        formatted,
		BalanceDisplay: format.Currency(formatted, true),
	}
}
