package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Outcome describes what happened to one line's stock change
type Outcome string

const (
	OutcomeApplied             Outcome = "applied"
	OutcomeSkippedUnmatched    Outcome = "skipped_unmatched"
	OutcomeSkippedInsufficient Outcome = "skipped_insufficient"
)

// StockLine is one document line to reconcile against inventory
type StockLine struct {
	ProductID   *uuid.UUID
	Description string
	Quantity    decimal.Decimal
}

// StockAdjustment is the per-line result of StockLedger.Apply
type StockAdjustment struct {
	LineIndex   int             `json:"line_index"`
	ProductID   uuid.UUID       `json:"product_id,omitempty"`
	ProductName string          `json:"product_name,omitempty"`
	Movement    Movement        `json:"movement"`
	Delta       decimal.Decimal `json:"delta"`
	Outcome     Outcome         `json:"outcome"`
	Message     string          `json:"message,omitempty"`
}

// IsWarning reports whether the caller should surface this adjustment as a warning
func (a StockAdjustment) IsWarning() bool {
	return a.Outcome == OutcomeSkippedInsufficient
}

// Warnings returns the messages of every skipped-for-stock adjustment
func Warnings(adjustments []StockAdjustment) []string {
	var out []string
	for _, a := range adjustments {
		if a.IsWarning() {
			out = append(out, a.Message)
		}
	}
	return out
}

// StockLedger applies document lines to product stock. It is stateless; the
// repository it is handed decides the transaction the updates run in.
type StockLedger struct{}

// NewStockLedger creates a StockLedger
func NewStockLedger() *StockLedger {
	return &StockLedger{}
}

// Apply resolves each line to a product and applies the movement's signed
// delta. Lines that match no product are free-text items and are skipped.
// A reduction that would take stock below zero is refused for that line only
// and reported as a warning; the remaining lines still apply. Only store
// failures are returned as errors.
func (l *StockLedger) Apply(ctx context.Context, repo ProductRepository, tenantID uuid.UUID, movement Movement, lines []StockLine) ([]StockAdjustment, error) {
	if !movement.IsValid() {
		return nil, shared.NewValidationError("Unknown stock movement: " + string(movement))
	}

	adjustments := make([]StockAdjustment, 0, len(lines))
	for i, line := range lines {
		if !line.Quantity.IsPositive() {
			continue
		}
		adj := StockAdjustment{LineIndex: i, Movement: movement, Delta: movement.Delta(line.Quantity)}

		product, err := l.resolve(ctx, repo, tenantID, line)
		if err != nil {
			return nil, err
		}
		if product == nil {
			adj.Outcome = OutcomeSkippedUnmatched
			adjustments = append(adjustments, adj)
			continue
		}
		adj.ProductID = product.ID
		adj.ProductName = product.Name

		err = repo.ApplyStockDelta(ctx, tenantID, product.ID, adj.Delta, adj.Delta.IsNegative())
		switch {
		case err == nil:
			adj.Outcome = OutcomeApplied
		case errors.Is(err, shared.ErrInsufficientStock):
			adj.Outcome = OutcomeSkippedInsufficient
			adj.Message = fmt.Sprintf("insufficient stock for %s: available %s, requested %s",
				product.Name, product.CurrentStock.String(), line.Quantity.String())
		default:
			return nil, fmt.Errorf("apply stock delta for product %s: %w", product.ID, err)
		}
		adjustments = append(adjustments, adj)
	}
	return adjustments, nil
}

// resolve finds the product for a line: explicit reference first, then exact
// case-insensitive name. A nil product with a nil error means no match.
func (l *StockLedger) resolve(ctx context.Context, repo ProductRepository, tenantID uuid.UUID, line StockLine) (*Product, error) {
	if line.ProductID != nil && *line.ProductID != uuid.Nil {
		p, err := repo.FindByIDForTenant(ctx, tenantID, *line.ProductID)
		if err == nil {
			return p, nil
		}
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, fmt.Errorf("find product %s: %w", *line.ProductID, err)
		}
	}
	name := strings.TrimSpace(line.Description)
	if name == "" {
		return nil, nil
	}
	p, err := repo.FindByNameForTenant(ctx, tenantID, name)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find product by name: %w", err)
	}
	return p, nil
}
