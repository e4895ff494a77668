package bank

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func amt(v int64) Amount { return decimal.NewFromInt(v) }

func seeded(t *testing.T) *Bank {
	t.Helper()
	b := New()
	for _, cmd := range []Command{
		&CreateAccount{ID: "alice", Name: "Alice"},
		&CreateAccount{ID: "bob", Name: "Bob"},
		&Deposit{AccountID: "alice", Amount: amt(100)},
	} {
		if err := cmd.ApplyTo(b); err != nil {
			t.Fatalf("seed command failed: %v", err)
		}
	}
	return b
}

func TestClone_IsIndependent(t *testing.T) {
	original := seeded(t)
	clone := original.Clone()

	clone.Accounts["alice"].Balance = amt(999)
	clone.Accounts["carol"] = &Account{ID: "carol"}

	if !original.Accounts["alice"].Balance.Equal(amt(100)) {
		t.Errorf("mutating the clone leaked into the original: %s", original.Accounts["alice"].Balance)
	}
	if _, ok := original.Accounts["carol"]; ok {
		t.Error("new account in clone leaked into the original")
	}
}

func TestCreateAccount_RejectsDuplicate(t *testing.T) {
	b := seeded(t)
	err := (&CreateAccount{ID: "alice", Name: "Alice II"}).ApplyTo(b)
	if !errors.Is(err, ErrDuplicateAccount) {
		t.Fatalf("want ErrDuplicateAccount, got %v", err)
	}
}

func TestDeposit_UnknownAccount(t *testing.T) {
	b := seeded(t)
	err := (&Deposit{AccountID: "nobody", Amount: amt(1)}).ApplyTo(b)
	if !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("want ErrAccountNotFound, got %v", err)
	}
}

func TestWithdraw_InsufficientFunds(t *testing.T) {
	b := seeded(t)
	err := (&Withdraw{AccountID: "alice", Amount: amt(200)}).ApplyTo(b)
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("want ErrInsufficientFunds, got %v", err)
	}
	if !b.Accounts["alice"].Balance.Equal(amt(100)) {
		t.Errorf("failed withdraw changed the balance: %s", b.Accounts["alice"].Balance)
	}
}

func TestTransfer_MovesFunds(t *testing.T) {
	b := seeded(t)
	if err := (&Transfer{FromAccountID: "alice", ToAccountID: "bob", Amount: amt(30)}).ApplyTo(b); err != nil {
		t.Fatalf("transfer failed: %v", err)
	}
	if !b.Accounts["alice"].Balance.Equal(amt(70)) {
		t.Errorf("alice balance = %s, want 70", b.Accounts["alice"].Balance)
	}
	if !b.Accounts["bob"].Balance.Equal(amt(30)) {
		t.Errorf("bob balance = %s, want 30", b.Accounts["bob"].Balance)
	}
}

func TestTransfer_InsufficientFundsLeavesPartialCredit(t *testing.T) {
	// Applied directly (no engine), the credit-first order leaves the
	// destination mutated. The engine discards the whole clone, which is
	// exactly why this ordering is safe there.
	b := seeded(t)
	err := (&Transfer{FromAccountID: "alice", ToAccountID: "bob", Amount: amt(500)}).ApplyTo(b)
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("want ErrInsufficientFunds, got %v", err)
	}
	if !b.Accounts["bob"].Balance.Equal(amt(500)) {
		t.Errorf("expected raw partial credit on direct apply, got %s", b.Accounts["bob"].Balance)
	}
}

func TestNonPositiveAmounts(t *testing.T) {
	b := seeded(t)
	for _, cmd := range []Command{
		&Deposit{AccountID: "alice", Amount: amt(0)},
		&Withdraw{AccountID: "alice", Amount: amt(-5)},
		&Transfer{FromAccountID: "alice", ToAccountID: "bob", Amount: amt(0)},
	} {
		if err := cmd.ApplyTo(b); !errors.Is(err, ErrNonPositiveAmount) {
			t.Errorf("%T: want ErrNonPositiveAmount, got %v", cmd, err)
		}
	}
}

func TestQueries(t *testing.T) {
	b := seeded(t)

	account, err := (GetAccount{AccountID: "alice"}).ExtractFrom(b)
	if err != nil {
		t.Fatalf("GetAccount failed: %v", err)
	}
	if account.Name != "Alice" || !account.Balance.Equal(amt(100)) {
		t.Errorf("unexpected account: %+v", account)
	}

	if _, err := (GetBalance{AccountID: "nobody"}).ExtractFrom(b); !errors.Is(err, ErrAccountNotFound) {
		t.Errorf("want ErrAccountNotFound, got %v", err)
	}

	accounts, err := (ListAccounts{}).ExtractFrom(b)
	if err != nil {
		t.Fatalf("ListAccounts failed: %v", err)
	}
	if len(accounts) != 2 || accounts[0].ID != "alice" || accounts[1].ID != "bob" {
		t.Errorf("unexpected listing: %+v", accounts)
	}
}
