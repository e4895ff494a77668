package bank

import (
	"fmt"
	"sort"
)

// GetAccount returns a copy of one account.
type GetAccount struct {
	AccountID string
}

func (q GetAccount) ExtractFrom(b *Bank) (Account, error) {
	account, ok := b.Accounts[q.AccountID]
	if !ok {
		return Account{}, fmt.Errorf("%w: %s", ErrAccountNotFound, q.AccountID)
	}
	return *account, nil
}

// GetBalance returns one account's balance.
type GetBalance struct {
	AccountID string
}

func (q GetBalance) ExtractFrom(b *Bank) (Amount, error) {
	account, ok := b.Accounts[q.AccountID]
	if !ok {
		return Amount{}, fmt.Errorf("%w: %s", ErrAccountNotFound, q.AccountID)
	}
	return account.Balance, nil
}

// ListAccounts returns copies of all accounts, sorted by ID.
type ListAccounts struct{}

func (ListAccounts) ExtractFrom(b *Bank) ([]Account, error) {
	accounts := make([]Account, 0, len(b.Accounts))
	for _, account := range b.Accounts {
		accounts = append(accounts, *account)
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].ID < accounts[j].ID })
	return accounts, nil
}
