package bank

import (
	"fmt"

	"github.com/aretw0/memimg/pkg/codec/jsonline"
	"github.com/aretw0/memimg/pkg/domain"
)

// Command is the bank's command type: a state transition that can be
// applied to a Bank and serialized to the event log.
type Command interface {
	domain.Command[*Bank]
	jsonline.Typed
}

// CreateAccount opens a new account with a zero balance.
type CreateAccount struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (*CreateAccount) CommandName() string { return "create_account" }

func (c *CreateAccount) ApplyTo(b *Bank) error {
	if _, exists := b.Accounts[c.ID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateAccount, c.ID)
	}
	b.Accounts[c.ID] = &Account{ID: c.ID, Name: c.Name}
	return nil
}

// Deposit credits an existing account.
type Deposit struct {
	AccountID string `json:"account_id"`
	Amount    Amount `json:"amount"`
}

func (*Deposit) CommandName() string { return "deposit" }

func (c *Deposit) ApplyTo(b *Bank) error {
	if !c.Amount.IsPositive() {
		return fmt.Errorf("%w: %s", ErrNonPositiveAmount, c.Amount)
	}
	account, ok := b.Accounts[c.AccountID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrAccountNotFound, c.AccountID)
	}
	account.Balance = account.Balance.Add(c.Amount)
	return nil
}

// Withdraw debits an existing account, failing on insufficient funds.
type Withdraw struct {
	AccountID string `json:"account_id"`
	Amount    Amount `json:"amount"`
}

func (*Withdraw) CommandName() string { return "withdraw" }

func (c *Withdraw) ApplyTo(b *Bank) error {
	if !c.Amount.IsPositive() {
		return fmt.Errorf("%w: %s", ErrNonPositiveAmount, c.Amount)
	}
	account, ok := b.Accounts[c.AccountID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrAccountNotFound, c.AccountID)
	}
	if account.Balance.LessThan(c.Amount) {
		return fmt.Errorf("%w: %s < %s", ErrInsufficientFunds, account.Balance, c.Amount)
	}
	account.Balance = account.Balance.Sub(c.Amount)
	return nil
}

// Transfer moves funds between two accounts.
//
// The credit runs before the debit on purpose: if the source turns out
// to have insufficient funds, the destination has already been mutated.
// The engine's shadow copy is what makes that safe; the half-applied
// clone is simply thrown away.
type Transfer struct {
	FromAccountID string `json:"from_account_id"`
	ToAccountID   string `json:"to_account_id"`
	Amount        Amount `json:"amount"`
}

func (*Transfer) CommandName() string { return "transfer" }

func (c *Transfer) ApplyTo(b *Bank) error {
	if !c.Amount.IsPositive() {
		return fmt.Errorf("%w: %s", ErrNonPositiveAmount, c.Amount)
	}

	to, ok := b.Accounts[c.ToAccountID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrAccountNotFound, c.ToAccountID)
	}
	to.Balance = to.Balance.Add(c.Amount)

	from, ok := b.Accounts[c.FromAccountID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrAccountNotFound, c.FromAccountID)
	}
	if from.Balance.LessThan(c.Amount) {
		return fmt.Errorf("%w: %s < %s", ErrInsufficientFunds, from.Balance, c.Amount)
	}
	from.Balance = from.Balance.Sub(c.Amount)
	return nil
}
