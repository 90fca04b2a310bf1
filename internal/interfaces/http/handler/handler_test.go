package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	invoiceapp "github.com/Eros-Aphrodite/Inventory-sub000/internal/application/invoice"
	inventoryapp "github.com/Eros-Aphrodite/Inventory-sub000/internal/application/inventory"
	ledgerapp "github.com/Eros-Aphrodite/Inventory-sub000/internal/application/ledger"
	partnerapp "github.com/Eros-Aphrodite/Inventory-sub000/internal/application/partner"
	reportapp "github.com/Eros-Aphrodite/Inventory-sub000/internal/application/report"
	tradeapp "github.com/Eros-Aphrodite/Inventory-sub000/internal/application/trade"
	"github.com/Eros-Aphrodite/Inventory-sub000/internal/infrastructure/cache"
	"github.com/Eros-Aphrodite/Inventory-sub000/internal/infrastructure/persistence"
	"github.com/Eros-Aphrodite/Inventory-sub000/internal/infrastructure/persistence/models"
	"github.com/Eros-Aphrodite/Inventory-sub000/internal/infrastructure/storage"
	"github.com/Eros-Aphrodite/Inventory-sub000/internal/interfaces/http/dto"
	"github.com/Eros-Aphrodite/Inventory-sub000/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

// testAPI serves every handler over a private in-memory SQLite database
type testAPI struct {
	t        *testing.T
	engine   *gin.Engine
	tenantID uuid.UUID
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	database, err := persistence.Open(sqlite.Open(dsn), nil)
	require.NoError(t, err)
	sqlDB, err := database.DB.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db := database.DB
	require.NoError(t, db.AutoMigrate(models.All()...))
	require.NoError(t, db.Exec(
		"CREATE UNIQUE INDEX idx_invoices_owner_number ON invoices (tenant_id, owner_id, invoice_number)").Error)

	entityRepo := persistence.NewGormBusinessEntityRepository(db)
	scope := persistence.NewGormTransactionScope(db)

	invoiceService := invoiceapp.NewInvoiceService(persistence.NewGormInvoiceRepository(db), entityRepo, scope.ForInvoices(), "27", nil)
	invoiceService.SetIdempotencyStore(cache.NewInMemoryIdempotencyStore(), 0)
	orderService := tradeapp.NewPurchaseOrderService(persistence.NewGormPurchaseOrderRepository(db), entityRepo, scope.ForPurchaseOrders(), "27", nil)

	partners := NewPartnerHandler(partnerapp.NewEntityService(entityRepo, nil))
	products := NewProductHandler(inventoryapp.NewProductService(persistence.NewGormProductRepository(db), nil))
	invoices := NewInvoiceHandler(invoiceService)
	orders := NewPurchaseOrderHandler(orderService)
	ledgers := NewLedgerHandler(ledgerapp.NewLedgerService(persistence.NewGormLedgerRepository(db), nil))
	reports := NewReportHandler(reportapp.NewReportService(persistence.NewGormReportSource(db), storage.NewMemorySnapshotStore(), nil))
	system := NewSystemHandler("ledger-test", "test", map[string]Pinger{"database": database})

	r := gin.New()
	r.GET("/health", system.Health)
	api := r.Group("/api/v1", middleware.RequestID(), middleware.Identity())
	api.GET("/system/info", system.GetSystemInfo)

	api.POST("/partners", partners.Create)
	api.GET("/partners", partners.List)
	api.GET("/partners/:id", partners.GetByID)
	api.PUT("/partners/:id", partners.Update)

	api.POST("/products", products.Create)
	api.GET("/products", products.List)
	api.GET("/products/:id", products.GetByID)
	api.POST("/products/:id/adjust", products.Adjust)

	api.POST("/invoices/preview", invoices.Preview)
	api.POST("/invoices/mark-overdue", invoices.MarkOverdue)
	api.POST("/invoices", invoices.Create)
	api.GET("/invoices", invoices.List)
	api.GET("/invoices/:id", invoices.GetByID)
	api.GET("/invoices/:id/payments", invoices.ListPayments)
	api.POST("/invoices/:id/payments", invoices.RecordPayment)
	api.PUT("/invoices/:id/payment-status", invoices.UpdatePaymentStatus)

	api.POST("/purchase-orders", orders.Create)
	api.GET("/purchase-orders", orders.List)
	api.GET("/purchase-orders/:id", orders.GetByID)
	api.POST("/purchase-orders/:id/send", orders.Send)
	api.POST("/purchase-orders/:id/receive", orders.Receive)
	api.POST("/purchase-orders/:id/cancel", orders.Cancel)

	api.POST("/ledgers", ledgers.Create)
	api.GET("/ledgers", ledgers.List)
	api.GET("/ledgers/:id/summary", ledgers.Summary)
	api.POST("/ledgers/:id/entries", ledgers.PostEntry)
	api.POST("/journal", ledgers.PostJournal)
	api.GET("/trial-balance", ledgers.TrialBalance)

	api.GET("/reports/:type", reports.Generate)
	api.GET("/reports/:type/latest", reports.Latest)

	return &testAPI{t: t, engine: r, tenantID: uuid.New()}
}

// do sends a request as the API's tenant and decodes the envelope
func (a *testAPI) do(method, path string, body any, headers ...string) (*httptest.ResponseRecorder, dto.Response) {
	a.t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.TenantHeaderKey, a.tenantID.String())
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)

	var resp dto.Response
	require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return w, resp
}

// data decodes the response data into out
func data[T any](t *testing.T, resp dto.Response) T {
	t.Helper()
	raw, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var out T
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func (a *testAPI) mustCreate(path string, body any, out any) {
	a.t.Helper()
	w, resp := a.do(http.MethodPost, path, body)
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())
	raw, err := json.Marshal(resp.Data)
	require.NoError(a.t, err)
	require.NoError(a.t, json.Unmarshal(raw, out))
}
