package handler

import (
	ledgerapp "github.com/Eros-Aphrodite/Inventory-sub000/internal/application/ledger"
	"github.com/gin-gonic/gin"
)

// LedgerHandler handles ledger accounts, postings and the trial balance
type LedgerHandler struct {
	BaseHandler
	ledgerService *ledgerapp.LedgerService
}

// NewLedgerHandler creates a new LedgerHandler
func NewLedgerHandler(ledgerService *ledgerapp.LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgerService: ledgerService}
}

// Create handles POST /ledgers
func (h *LedgerHandler) Create(c *gin.Context) {
	tenantID, userID := identity(c)

	var req ledgerapp.CreateLedgerRequest
	if !h.bindJSON(c, &req) {
		return
	}

	l, err := h.ledgerService.CreateLedger(c.Request.Context(), tenantID, userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, l)
}

// List handles GET /ledgers
func (h *LedgerHandler) List(c *gin.Context) {
	tenantID, _ := identity(c)

	ledgers, err := h.ledgerService.List(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, ledgers)
}

// Summary handles GET /ledgers/:id/summary
func (h *LedgerHandler) Summary(c *gin.Context) {
	tenantID, _ := identity(c)
	id, ok := h.pathID(c, "id", "ledger")
	if !ok {
		return
	}

	var q ledgerapp.PeriodQuery
	if !h.bindQuery(c, &q) {
		return
	}

	summary, err := h.ledgerService.GetLedgerSummary(c.Request.Context(), tenantID, id, q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// PostEntry handles POST /ledgers/:id/entries
func (h *LedgerHandler) PostEntry(c *gin.Context) {
	tenantID, _ := identity(c)
	id, ok := h.pathID(c, "id", "ledger")
	if !ok {
		return
	}

	var req ledgerapp.PostEntryRequest
	if !h.bindJSON(c, &req) {
		return
	}

	entry, err := h.ledgerService.PostEntry(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, entry)
}

// PostJournal handles POST /journal
func (h *LedgerHandler) PostJournal(c *gin.Context) {
	tenantID, _ := identity(c)

	var req ledgerapp.PostJournalRequest
	if !h.bindJSON(c, &req) {
		return
	}

	entries, err := h.ledgerService.PostJournal(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, entries)
}

// TrialBalance handles GET /trial-balance. An unbalanced result is still a
// 200; the status field carries the verdict.
func (h *LedgerHandler) TrialBalance(c *gin.Context) {
	tenantID, _ := identity(c)

	var q ledgerapp.PeriodQuery
	if !h.bindQuery(c, &q) {
		return
	}

	tb, err := h.ledgerService.TrialBalance(c.Request.Context(), tenantID, q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tb)
}
