package persistence

import (
	"fmt"
	"testing"
	"time"

	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/inventory"
	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/invoice"
	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/partner"
	"github.com/Eros-Aphrodite/Inventory-sub000/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestDB opens a private in-memory SQLite database with every table migrated.
// A single connection keeps the shared-cache database alive and serializes writers.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := Open(sqlite.Open(dsn), nil)
	require.NoError(t, err)

	sqlDB, err := db.DB.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.DB.AutoMigrate(models.All()...))
	require.NoError(t, db.DB.Exec(
		"CREATE UNIQUE INDEX idx_invoices_owner_number ON invoices (tenant_id, owner_id, invoice_number)").Error)
	require.NoError(t, db.DB.Exec(
		"CREATE UNIQUE INDEX idx_purchase_orders_number ON purchase_orders (tenant_id, order_number)").Error)
	return db.DB
}

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func seedProduct(t *testing.T, repo *GormProductRepository, tenantID uuid.UUID, name string, stock string) *inventory.Product {
	t.Helper()
	p, err := inventory.NewProduct(tenantID, uuid.New(), name, "", dec(stock), dec("80"), dec("100"), dec("18"))
	require.NoError(t, err)
	require.NoError(t, repo.Save(t.Context(), p))
	return p
}

func newSalesInvoice(t *testing.T, tenantID, ownerID uuid.UUID, number string, date time.Time, lines ...invoice.ItemInput) *invoice.Invoice {
	t.Helper()
	customer, err := partner.NewBusinessEntity(tenantID, ownerID, "Acme Traders", partner.EntityTypeCustomer, "27", "")
	require.NoError(t, err)
	if len(lines) == 0 {
		lines = []invoice.ItemInput{{Description: "Widget", Quantity: dec("2"), UnitPrice: dec("100"), GSTRate: dec("18")}}
	}
	inv, err := invoice.NewInvoice(tenantID, ownerID, invoice.Header{
		InvoiceType: invoice.InvoiceTypeSales,
		EntityType:  partner.EntityTypeCustomer,
		InvoiceDate: date,
	}, lines, customer, "27")
	require.NoError(t, err)
	inv.AssignNumber(number)
	return inv
}
