// Package account defines the interface for account detail persistence.
// The chron balance is mutated only through atomic credit/debit operations;
// a debit that would push the balance negative is rejected at the storage
// layer, never applied and compensated.
package account

//go:generate mockgen -destination=mock/mock_repository.go -package=accountmock github.com/homesteadhq/homestead-api/internal/repositories/account Repository

import (
	"context"

	"github.com/homesteadhq/homestead-api/internal/entities/homestead"
)

// Repository defines the interface for account detail persistence
type Repository interface {
	// Create initializes an account detail record.
	// Returns errors.AlreadyExists if the account already has one
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get retrieves an account's counters.
	// Returns errors.NotFound if the account has no detail record
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Credit atomically adds to the chron balance (sell refunds, timer
	// awards). Amount must be non-negative.
	Credit(ctx context.Context, input CreditInput) (*CreditOutput, error)

	// Debit atomically subtracts from the chron balance.
	// Returns errors.FailedPrecondition if the balance would go negative;
	// the balance is left unchanged in that case.
	// Returns errors.NotFound if the account has no detail record
	Debit(ctx context.Context, input DebitInput) (*DebitOutput, error)

	// AddExperience atomically adds to the experience counter. Map
	// expansion grants experience inside its own transaction; this is the
	// entry point for external award flows (timer awards, quest rewards)
	// that credit experience without touching chron. Amount must be
	// non-negative.
	AddExperience(ctx context.Context, input AddExperienceInput) (*AddExperienceOutput, error)
}

// CreateInput defines the input for creating an account detail record
type CreateInput struct {
	Detail *homestead.AccountDetail
}

// CreateOutput defines the output for creating an account detail record
type CreateOutput struct {
	Detail *homestead.AccountDetail
}

// GetInput defines the input for getting an account detail record
type GetInput struct {
	AccountID string
}

// GetOutput defines the output for getting an account detail record
type GetOutput struct {
	Detail *homestead.AccountDetail
}

// CreditInput defines the input for crediting chron
type CreditInput struct {
	AccountID string
	Amount    int64
}

// CreditOutput defines the output for crediting chron
type CreditOutput struct {
	Balance int64
}

// DebitInput defines the input for debiting chron
type DebitInput struct {
	AccountID string
	Amount    int64
}

// DebitOutput defines the output for debiting chron
type DebitOutput struct {
	Balance int64
}

// AddExperienceInput defines the input for granting experience
type AddExperienceInput struct {
	AccountID string
	Amount    int64
}

// AddExperienceOutput defines the output for granting experience
type AddExperienceOutput struct {
	Experience int64
}
