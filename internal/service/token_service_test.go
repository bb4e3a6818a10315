package service

import (
	"context"
	"testing"

	"chainvoice/internal/chain"
	"chainvoice/pkg/token"
)

func TestNewTokenServiceRejectsBadFaucetAmount(t *testing.T) {
	t.Parallel()

	gateway := newFakeGateway()
	if _, err := NewTokenService(gateway, gateway, testSpender, "not-a-number"); err == nil {
		t.Fatalf("expected error for malformed faucet amount")
	}
	if _, err := NewTokenService(gateway, gateway, testSpender, "-5"); err == nil {
		t.Fatalf("expected error for negative faucet amount")
	}
}

func TestTokenInfo(t *testing.T) {
	t.Parallel()

	gateway := newFakeGateway()
	svc, err := NewTokenService(gateway, gateway, testSpender, "1000")
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}

	info := svc.Info()
	if info.Name != token.Name || info.Symbol != token.Symbol || info.Decimals != token.Decimals {
		t.Fatalf("Info = %+v", info)
	}
	if info.Contract != testSpender {
		t.Fatalf("Contract = %q, want %q", info.Contract, testSpender)
	}
}

func TestTokenBalance(t *testing.T) {
	t.Parallel()

	gateway := newFakeGateway()
	svc, err := NewTokenService(gateway, gateway, testSpender, "1000")
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}

	gateway.seedBalance(testPayer, 1_234_560_000)

	resp, err := svc.Balance(context.Background(), testPayer)
	if err != nil {
		t.Fatalf("Balance: %v", err)
	}
	if resp.Balance != "1234.560000" {
		t.Fatalf("Balance = %q, want %q", resp.Balance, "1234.560000")
	}
	if resp.BalanceDisplay != "1,234.56 PYUSD" {
		t.Fatalf("BalanceDisplay = %q, want %q", resp.BalanceDisplay, "1,234.56 PYUSD")
	}

	// Unseeded accounts read zero, not an error.
	empty, err := svc.Balance(context.Background(), testReceiver)
	if err != nil {
		t.Fatalf("Balance for fresh account: %v", err)
	}
	if empty.Balance != "0.000000" {
		t.Fatalf("fresh balance = %q", empty.Balance)
	}
}

func TestTokenAllowance(t *testing.T) {
	t.Parallel()

	gateway := newFakeGateway()
	svc, err := NewTokenService(gateway, gateway, testSpender, "1000")
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}

	if _, err := gateway.SubmitApprove(context.Background(), testPayer, testSpender, 42_000_000); err != nil {
		t.Fatalf("SubmitApprove: %v", err)
	}

	resp, err := svc.Allowance(context.Background(), testPayer)
	if err != nil {
		t.Fatalf("Allowance: %v", err)
	}
	if resp.Spender != testSpender {
		t.Fatalf("Spender = %q, want %q", resp.Spender, testSpender)
	}
	if resp.Allowance != "42.000000" {
		t.Fatalf("Allowance = %q, want %q", resp.Allowance, "42.000000")
	}
}

func TestFaucet(t *testing.T) {
	t.Parallel()

	gateway := newFakeGateway()
	svc, err := NewTokenService(gateway, gateway, testSpender, "1000")
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}

	resp, err := svc.Faucet(context.Background(), testPayer)
	if err != nil {
		t.Fatalf("Faucet: %v", err)
	}
	if resp.Receipt.Status != chain.TxConfirmed {
		t.Fatalf("receipt status = %q", resp.Receipt.Status)
	}
	if resp.Balance.Balance != "1000.000000" {
		t.Fatalf("balance after mint = %q, want %q", resp.Balance.Balance, "1000.000000")
	}

	// Mints accumulate.
	resp, err = svc.Faucet(context.Background(), testPayer)
	if err != nil {
		t.Fatalf("second Faucet: %v", err)
	}
	if resp.Balance.Balance != "2000.000000" {
		t.Fatalf("balance after second mint = %q, want %q", resp.Balance.Balance, "2000.000000")
	}
}
