package domain

import (
	"fmt"
	"time"
)

// AccountStatus is the lifecycle state of an account.
type AccountStatus string

const (
	AccountStatusActive    AccountStatus = "ACTIVE"
	AccountStatusInactive  AccountStatus = "INACTIVE"
	AccountStatusSuspended AccountStatus = "SUSPENDED"
	AccountStatusClosed    AccountStatus = "CLOSED"
)

// Account holds a customer's balances in base-currency minor units.
// AvailableBalance is the spendable part of Balance and is what funds checks use.
type Account struct {
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        *time.Time
	AccountNumber    string
	Status           AccountStatus
	ID               int64
	UserID           int64
	AccountTypeID    int64
	Balance          int64
	AvailableBalance int64
	DailyLimit       int64
	MonthlyLimit     int64
}

// IsActive reports whether the account may take part in a transaction.
func (a *Account) IsActive() bool {
	return a.Status == AccountStatusActive && a.DeletedAt == nil
}

// ValidateDebit checks that amount can leave the account without driving
// the available balance below zero. Debiting the full available balance is allowed.
func (a *Account) ValidateDebit(amount int64) error {
	if a.AvailableBalance-amount < 0 {
		return fmt.Errorf("%w: account %d has %d available, %d requested",
			ErrInsufficientFunds, a.ID, a.AvailableBalance, amount)
	}
	return nil
}

// ApplyDebit returns the balances after removing amount.
func (a *Account) ApplyDebit(amount int64, currency string) (balance, available int64, err error) {
	if err := a.ValidateDebit(amount); err != nil {
		return 0, 0, err
	}

	delta := NewMoney(amount, currency)

	newBalance, err := NewMoney(a.Balance, currency).Sub(delta)
	if err != nil {
		return 0, 0, err
	}

	newAvailable, err := NewMoney(a.AvailableBalance, currency).Sub(delta)
	if err != nil {
		return 0, 0, err
	}

	return newBalance.Amount, newAvailable.Amount, nil
}

// ApplyCredit returns the balances after adding amount. Credits never fail on funds.
func (a *Account) ApplyCredit(amount int64, currency string) (balance, available int64, err error) {
	delta := NewMoney(amount, currency)

	newBalance, err := NewMoney(a.Balance, currency).Add(delta)
	if err != nil {
		return 0, 0, err
	}

	newAvailable, err := NewMoney(a.AvailableBalance, currency).Add(delta)
	if err != nil {
		return 0, 0, err
	}

	return newBalance.Amount, newAvailable.Amount, nil
}
