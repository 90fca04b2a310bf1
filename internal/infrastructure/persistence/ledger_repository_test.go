package persistence

import (
	"context"
	"testing"

	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/ledger"
	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormLedgerRepository(t *testing.T) {
	repo := NewGormLedgerRepository(newTestDB(t))
	ctx := context.Background()
	tenantID, ownerID := uuid.New(), uuid.New()

	cash, err := ledger.NewLedger(tenantID, ownerID, "Cash in Hand", ledger.TypeCash, dec("1000"))
	require.NoError(t, err)
	capital, err := ledger.NewLedger(tenantID, ownerID, "Owner Capital", ledger.TypeCapital, dec("1000"))
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, cash))
	require.NoError(t, repo.Save(ctx, capital))

	t.Run("find and filter", func(t *testing.T) {
		got, err := repo.FindByIDForTenant(ctx, tenantID, cash.ID)
		require.NoError(t, err)
		assert.Equal(t, ledger.TypeCash, got.Type)
		assert.True(t, got.OpeningBalance.Equal(dec("1000")))

		filter := shared.DefaultFilter()
		filter.Filters["ledger_type"] = string(ledger.TypeCapital)
		list, err := repo.FindAllForTenant(ctx, tenantID, filter)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, capital.ID, list[0].ID)

		_, err = repo.FindByIDForTenant(ctx, uuid.New(), cash.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("entries up to a date", func(t *testing.T) {
		jan, err := ledger.NewJournal(cash, capital, day(2026, 1, 15), dec("500"), "Capital introduced", "")
		require.NoError(t, err)
		mar, err := ledger.NewJournal(cash, capital, day(2026, 3, 15), dec("200"), "Capital introduced", "")
		require.NoError(t, err)
		require.NoError(t, repo.AppendEntries(ctx, append(jan, mar...)))
		require.NoError(t, repo.AppendEntries(ctx, nil))

		all, err := repo.FindEntriesForTenant(ctx, tenantID, ledger.Period{})
		require.NoError(t, err)
		assert.Len(t, all, 4)

		to := day(2026, 2, 28)
		upTo, err := repo.FindEntriesForTenant(ctx, tenantID, ledger.Period{To: &to})
		require.NoError(t, err)
		require.Len(t, upTo, 2)
		assert.True(t, cash.Balance(upTo).Equal(dec("1500")))
		assert.True(t, capital.Balance(upTo).Equal(dec("1500")))

		other, err := repo.FindEntriesForTenant(ctx, uuid.New(), ledger.Period{})
		require.NoError(t, err)
		assert.Empty(t, other)
	})
}
