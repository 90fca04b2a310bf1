package report

import (
	"context"
	"fmt"

	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/inventory"
	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/invoice"
	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/ledger"
	"github.com/google/uuid"
)

// Part is one independently fetched slice of a dataset
type Part string

const (
	PartInvoices   Part = "invoices"
	PartGSTEntries Part = "gst_entries"
	PartProducts   Part = "products"
	PartLedgers    Part = "ledgers"
)

// needs lists the parts each report reads
var needs = map[Type][]Part{
	TypeProfitLoss:   {PartInvoices, PartProducts, PartLedgers},
	TypeTrialBalance: {PartLedgers},
	TypeGST:          {PartGSTEntries},
	TypeAging:        {PartInvoices},
	TypeReturns:      {PartInvoices},
	TypeSales:        {PartInvoices},
	TypePurchases:    {PartInvoices},
}

// Needs returns the dataset parts the report type reads
func Needs(t Type) []Part {
	return needs[t]
}

// Dataset is everything a report reads, fetched once per request. A part that
// failed to load is empty and recorded in Failures.
type Dataset struct {
	Invoices      []invoice.Invoice
	GSTEntries    []invoice.GSTEntry
	Products      []inventory.Product
	Ledgers       []ledger.Ledger
	LedgerEntries []ledger.LedgerEntry
	Failures      map[Part]error
}

// NewDataset creates an empty dataset
func NewDataset() *Dataset {
	return &Dataset{Failures: make(map[Part]error)}
}

// Failed reports whether a part could not be loaded
func (d *Dataset) Failed(p Part) bool {
	_, ok := d.Failures[p]
	return ok
}

// failureWarning formats the warning attached to a report for a failed part
func failureWarning(p Part, err error) string {
	return fmt.Sprintf("%s unavailable, counted as zero: %v", p, err)
}

// Source loads dataset parts for a tenant. Implementations must scope every
// query to tenantID. Invoices are returned with items and payments.
type Source interface {
	LoadInvoices(ctx context.Context, tenantID uuid.UUID) ([]invoice.Invoice, error)
	LoadGSTEntries(ctx context.Context, req Request) ([]invoice.GSTEntry, error)
	LoadProducts(ctx context.Context, tenantID uuid.UUID) ([]inventory.Product, error)
	LoadLedgers(ctx context.Context, req Request) ([]ledger.Ledger, []ledger.LedgerEntry, error)
}

// productIndex resolves products by id and by case-insensitive name
type productIndex struct {
	byID   map[uuid.UUID]*inventory.Product
	byName map[string]*inventory.Product
}

func newProductIndex(products []inventory.Product) *productIndex {
	idx := &productIndex{
		byID:   make(map[uuid.UUID]*inventory.Product, len(products)),
		byName: make(map[string]*inventory.Product, len(products)),
	}
	for i := range products {
		p := &products[i]
		idx.byID[p.ID] = p
		key := normalizeName(p.Name)
		if _, taken := idx.byName[key]; !taken {
			idx.byName[key] = p
		}
	}
	return idx
}

func (idx *productIndex) resolve(productID *uuid.UUID, description string) *inventory.Product {
	if productID != nil {
		if p, ok := idx.byID[*productID]; ok {
			return p
		}
	}
	return idx.byName[normalizeName(description)]
}
