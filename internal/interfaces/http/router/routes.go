package router

import (
	"github.com/Eros-Aphrodite/Inventory-sub000/internal/interfaces/http/handler"
	"github.com/gin-gonic/gin"
)

// Handlers are the HTTP handlers served under the versioned API group
type Handlers struct {
	System         *handler.SystemHandler
	Partners       *handler.PartnerHandler
	Products       *handler.ProductHandler
	Invoices       *handler.InvoiceHandler
	PurchaseOrders *handler.PurchaseOrderHandler
	Ledgers        *handler.LedgerHandler
	Reports        *handler.ReportHandler
}

// Groups returns the domain route groups
func (h Handlers) Groups() []*DomainGroup {
	system := NewDomainGroup("system", "/system").
		GET("/info", h.System.GetSystemInfo)

	partners := NewDomainGroup("partners", "/partners").
		POST("", h.Partners.Create).
		GET("", h.Partners.List).
		GET("/:id", h.Partners.GetByID).
		PUT("/:id", h.Partners.Update)

	products := NewDomainGroup("products", "/products").
		POST("", h.Products.Create).
		GET("", h.Products.List).
		GET("/:id", h.Products.GetByID).
		POST("/:id/adjust", h.Products.Adjust)

	invoices := NewDomainGroup("invoices", "/invoices").
		POST("", h.Invoices.Create).
		GET("", h.Invoices.List).
		POST("/preview", h.Invoices.Preview).
		POST("/mark-overdue", h.Invoices.MarkOverdue).
		GET("/:id", h.Invoices.GetByID).
		GET("/:id/payments", h.Invoices.ListPayments).
		POST("/:id/payments", h.Invoices.RecordPayment).
		PUT("/:id/payment-status", h.Invoices.UpdatePaymentStatus)

	orders := NewDomainGroup("purchase_orders", "/purchase-orders").
		POST("", h.PurchaseOrders.Create).
		GET("", h.PurchaseOrders.List).
		GET("/:id", h.PurchaseOrders.GetByID).
		POST("/:id/send", h.PurchaseOrders.Send).
		POST("/:id/receive", h.PurchaseOrders.Receive).
		POST("/:id/cancel", h.PurchaseOrders.Cancel)

	// journal and trial balance span every ledger, so they sit at the group root
	accounting := NewDomainGroup("accounting", "").
		POST("/journal", h.Ledgers.PostJournal).
		GET("/trial-balance", h.Ledgers.TrialBalance)
	accounting.Group("ledgers", "/ledgers").
		POST("", h.Ledgers.Create).
		GET("", h.Ledgers.List).
		GET("/:id/summary", h.Ledgers.Summary).
		POST("/:id/entries", h.Ledgers.PostEntry)

	reports := NewDomainGroup("reports", "/reports").
		GET("/:type", h.Reports.Generate).
		GET("/:type/latest", h.Reports.Latest)

	return []*DomainGroup{system, partners, products, invoices, orders, accounting, reports}
}

// Setup registers /health on the engine and every domain group under the
// versioned API group
func Setup(engine *gin.Engine, h Handlers, opts ...RouterOption) *Router {
	engine.GET("/health", h.System.Health)

	r := NewRouter(engine, opts...)
	for _, g := range h.Groups() {
		r.Register(g)
	}
	r.Setup()
	return r
}
