// Package bank is the example domain exercising the memimg engine: a
// toy ledger of accounts and balances. Its business rules are
// deliberately simple; the interesting behavior (durability, rollback,
// replay) all lives in the engine.
package bank

import (
	"errors"

	"github.com/shopspring/decimal"
)

// Amount is a monetary value. Decimal, not float: replay must reproduce
// balances exactly.
type Amount = decimal.Decimal

var (
	ErrAccountNotFound   = errors.New("account not found")
	ErrDuplicateAccount  = errors.New("account already exists")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrNonPositiveAmount = errors.New("amount must be positive")
)

// Account is a single ledger entry.
type Account struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Balance Amount `json:"balance"`
}

// Bank is the system state: the complete account map. It is owned by the
// engine and only ever mutated through commands.
type Bank struct {
	Accounts map[string]*Account
}

// New returns an empty bank, the initial state for a fresh engine.
func New() *Bank {
	return &Bank{Accounts: make(map[string]*Account)}
}

// Clone returns a deep, independent copy. The engine mutates clones and
// discards them on failure, so sharing any account pointer would leak
// partial mutations into the live state.
func (b *Bank) Clone() *Bank {
	clone := &Bank{Accounts: make(map[string]*Account, len(b.Accounts))}
	for id, account := range b.Accounts {
		copied := *account
		clone.Accounts[id] = &copied
	}
	return clone
}
