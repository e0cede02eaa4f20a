package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/iho/walletledger/internal/domain"
	"github.com/iho/walletledger/internal/infrastructure/postgres/generated"
	"github.com/iho/walletledger/internal/usecase"
)

// AccountRepository implements usecase.AccountRepository.
type AccountRepository struct {
	queries *generated.Queries
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(db generated.DBTX) *AccountRepository {
	return &AccountRepository{
		queries: generated.New(db),
	}
}

// GetByID retrieves an account by ID, including closed ones.
func (r *AccountRepository) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	row, err := r.queries.GetAccountByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}

		return nil, err
	}

	return rowToAccount(row), nil
}

// GetActiveByIDForUpdate locks an active, non-deleted account.
func (r *AccountRepository) GetActiveByIDForUpdate(ctx context.Context, tx usecase.Transaction, id int64) (*domain.Account, error) {
	row, err := queriesFor(tx).GetActiveAccountByIDForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}

		return nil, err
	}

	return rowToAccount(row), nil
}

// GetActiveByIDsForUpdate locks active accounts in ascending id order.
// Missing or inactive ids are simply absent from the result.
func (r *AccountRepository) GetActiveByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []int64) ([]*domain.Account, error) {
	rows, err := queriesFor(tx).GetActiveAccountsByIDsForUpdate(ctx, ids)
	if err != nil {
		return nil, err
	}

	accounts := make([]*domain.Account, 0, len(rows))
	for _, row := range rows {
		accounts = append(accounts, rowToAccount(row))
	}

	return accounts, nil
}

// UpdateBalances writes both balances of a locked account.
func (r *AccountRepository) UpdateBalances(ctx context.Context, tx usecase.Transaction, id int64, balance, availableBalance int64, updatedAt time.Time) error {
	err := queriesFor(tx).UpdateAccountBalances(ctx, generated.UpdateAccountBalancesParams{
		ID:               id,
		Balance:          balance,
		AvailableBalance: availableBalance,
		UpdatedAt:        timeToPgTimestamptz(updatedAt),
	})
	if isCheckViolation(err) {
		return domain.ErrInsufficientFunds
	}

	return err
}

func rowToAccount(row generated.Account) *domain.Account {
	return &domain.Account{
		ID:               row.ID,
		AccountNumber:    row.AccountNumber,
		UserID:           row.UserID,
		AccountTypeID:    row.AccountTypeID,
		Balance:          row.Balance,
		AvailableBalance: row.AvailableBalance,
		DailyLimit:       row.DailyLimit,
		MonthlyLimit:     row.MonthlyLimit,
		Status:           domain.AccountStatus(row.Status),
		DeletedAt:        pgTimestamptzToPtr(row.DeletedAt),
		CreatedAt:        row.CreatedAt.Time,
		UpdatedAt:        row.UpdatedAt.Time,
	}
}
