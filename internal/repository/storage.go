package repository

import (
	"SalesBoard-Backend/internal/domain"
	"context"
	"errors"
)

var (
	ErrRecordNotFound = errors.New("sales record not found")
	ErrNegativeAmount = errors.New("sale amount must be non-negative")
	ErrNegativeLeads  = errors.New("lead count must be non-negative")
)

// Storage is the stats store contract. Implementations must keep every
// per-record read-modify-write atomic and every reset atomic across the
// whole table.
type Storage interface {
	// GetStats returns the record for the given name or ErrRecordNotFound.
	GetStats(ctx context.Context, name string) (*domain.SalesRecord, error)

	// RecordSale creates the record if absent, then adds amount to both
	// sales accumulators and leads to both lead accumulators.
	RecordSale(ctx context.Context, name string, amount, leads int64) error

	// SetEmoji creates the record if absent (all totals zero), then
	// overwrites its emoji. The emoji content is not validated.
	SetEmoji(ctx context.Context, name string, emoji string) error

	// ListRanked returns all records ordered by the metric descending.
	// Ties are broken by record creation order, oldest first.
	ListRanked(ctx context.Context, metric domain.Metric) ([]*domain.SalesRecord, error)

	// ResetWeekly zeroes weekly sales and leads on every record.
	ResetWeekly(ctx context.Context) error

	// ResetMonthly zeroes monthly sales and leads on every record.
	ResetMonthly(ctx context.Context) error
}
