package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/ledger"
	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// LedgerService manages ledger accounts, postings and the trial balance
type LedgerService struct {
	ledgerRepo ledger.LedgerRepository
	logger     *zap.Logger
}

// NewLedgerService creates a new LedgerService
func NewLedgerService(ledgerRepo ledger.LedgerRepository, logger *zap.Logger) *LedgerService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LedgerService{ledgerRepo: ledgerRepo, logger: logger}
}

// CreateLedger opens a ledger account
func (s *LedgerService) CreateLedger(ctx context.Context, tenantID, ownerID uuid.UUID, req CreateLedgerRequest) (*LedgerResponse, error) {
	l, err := ledger.NewLedger(tenantID, ownerID, req.Name, ledger.Type(req.Type), req.OpeningBalance)
	if err != nil {
		return nil, err
	}
	l.Description = strings.TrimSpace(req.Description)
	if err := s.ledgerRepo.Save(ctx, l); err != nil {
		return nil, s.storeError("Failed to save ledger", err)
	}
	s.logger.Info("ledger created",
		zap.String("tenant_id", tenantID.String()),
		zap.String("ledger_id", l.ID.String()),
		zap.String("type", string(l.Type)),
	)
	response := ToLedgerResponse(l, l.OpeningBalance)
	return &response, nil
}

// List returns every ledger of the tenant with its balance to date
func (s *LedgerService) List(ctx context.Context, tenantID uuid.UUID) ([]LedgerResponse, error) {
	ledgers, err := s.ledgerRepo.FindAllForTenant(ctx, tenantID, allLedgers())
	if err != nil {
		return nil, s.storeError("Failed to load ledgers", err)
	}
	entries, err := s.ledgerRepo.FindEntriesForTenant(ctx, tenantID, ledger.Period{})
	if err != nil {
		return nil, s.storeError("Failed to load ledger entries", err)
	}
	byLedger := make(map[uuid.UUID][]ledger.LedgerEntry)
	for _, e := range entries {
		byLedger[e.LedgerID] = append(byLedger[e.LedgerID], e)
	}

	out := make([]LedgerResponse, len(ledgers))
	for i := range ledgers {
		out[i] = ToLedgerResponse(&ledgers[i], ledgers[i].Balance(byLedger[ledgers[i].ID]))
	}
	return out, nil
}

// PostEntry appends one debit or credit to a ledger
func (s *LedgerService) PostEntry(ctx context.Context, tenantID, ledgerID uuid.UUID, req PostEntryRequest) (*EntryResponse, error) {
	l, err := s.ledgerRepo.FindByIDForTenant(ctx, tenantID, ledgerID)
	if err != nil {
		return nil, s.storeError("Failed to load ledger", err)
	}
	date, err := parseDate(req.EntryDate, "entry_date")
	if err != nil {
		return nil, err
	}
	entry, err := ledger.NewLedgerEntry(l, date, req.Debit, req.Credit, req.Narration, req.Reference)
	if err != nil {
		return nil, err
	}
	if err := s.ledgerRepo.AppendEntries(ctx, []ledger.LedgerEntry{*entry}); err != nil {
		return nil, s.storeError("Failed to post ledger entries", err)
	}
	response := ToEntryResponses([]ledger.LedgerEntry{*entry})[0]
	return &response, nil
}

// PostJournal debits one ledger and credits another with the same amount
func (s *LedgerService) PostJournal(ctx context.Context, tenantID uuid.UUID, req PostJournalRequest) ([]EntryResponse, error) {
	debitLedger, err := s.ledgerRepo.FindByIDForTenant(ctx, tenantID, req.DebitLedgerID)
	if err != nil {
		return nil, s.storeError("Failed to load ledger", err)
	}
	creditLedger, err := s.ledgerRepo.FindByIDForTenant(ctx, tenantID, req.CreditLedgerID)
	if err != nil {
		return nil, s.storeError("Failed to load ledger", err)
	}
	date, err := parseDate(req.EntryDate, "entry_date")
	if err != nil {
		return nil, err
	}
	entries, err := ledger.NewJournal(debitLedger, creditLedger, date, req.Amount, req.Narration, req.Reference)
	if err != nil {
		return nil, err
	}
	if err := s.ledgerRepo.AppendEntries(ctx, entries); err != nil {
		return nil, s.storeError("Failed to post ledger entries", err)
	}
	return ToEntryResponses(entries), nil
}

// GetLedgerSummary returns one ledger's opening, movement and closing balance
// for the period
func (s *LedgerService) GetLedgerSummary(ctx context.Context, tenantID, ledgerID uuid.UUID, q PeriodQuery) (*ledger.Summary, error) {
	l, err := s.ledgerRepo.FindByIDForTenant(ctx, tenantID, ledgerID)
	if err != nil {
		return nil, s.storeError("Failed to load ledger", err)
	}
	p, err := toPeriod(q)
	if err != nil {
		return nil, err
	}
	entries, err := s.ledgerRepo.FindEntriesForTenant(ctx, tenantID, p)
	if err != nil {
		return nil, s.storeError("Failed to load ledger entries", err)
	}
	summary := ledger.Summarize(*l, entries, p)
	return &summary, nil
}

// TrialBalance builds the trial balance for the period. An unbalanced result
// is returned as such with its difference; it is not an error.
func (s *LedgerService) TrialBalance(ctx context.Context, tenantID uuid.UUID, q PeriodQuery) (*ledger.TrialBalance, error) {
	p, err := toPeriod(q)
	if err != nil {
		return nil, err
	}
	ledgers, err := s.ledgerRepo.FindAllForTenant(ctx, tenantID, allLedgers())
	if err != nil {
		return nil, s.storeError("Failed to load ledgers", err)
	}
	entries, err := s.ledgerRepo.FindEntriesForTenant(ctx, tenantID, p)
	if err != nil {
		return nil, s.storeError("Failed to load ledger entries", err)
	}
	tb := ledger.BuildTrialBalance(ledgers, entries, p)
	return &tb, nil
}

// storeError leaves domain errors untouched and reports store failures as
// dependency failures
func (s *LedgerService) storeError(message string, err error) error {
	if shared.CodeOf(err) != "" {
		return err
	}
	s.logger.Error(message, zap.Error(err))
	return shared.WrapDomainError(shared.CodeDependencyFailure, message, err)
}

// allLedgers lists every ledger; trial balances are never paged
func allLedgers() shared.Filter {
	filter := shared.DefaultFilter()
	filter.PageSize = 0
	filter.OrderBy = "name"
	filter.OrderDir = "asc"
	return filter
}

func toPeriod(q PeriodQuery) (ledger.Period, error) {
	from, err := parseDate(q.From, "from")
	if err != nil {
		return ledger.Period{}, err
	}
	to, err := parseDate(q.To, "to")
	if err != nil {
		return ledger.Period{}, err
	}
	var p ledger.Period
	if !from.IsZero() {
		p.From = &from
	}
	if !to.IsZero() {
		end := to.Add(24*time.Hour - time.Nanosecond)
		p.To = &end
	}
	if p.From != nil && p.To != nil && p.To.Before(*p.From) {
		return ledger.Period{}, shared.NewValidationError("to must not be before from")
	}
	return p, nil
}

func parseDate(value, field string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation(dateLayout, value, time.Local)
	if err != nil {
		return time.Time{}, shared.NewValidationError(fmt.Sprintf("%s must be a date in YYYY-MM-DD format", field))
	}
	return t, nil
}
