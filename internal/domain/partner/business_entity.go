package partner

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/shared"
	"github.com/google/uuid"
)

// EntityType classifies the counterparty on an invoice
type EntityType string

const (
	EntityTypeCustomer   EntityType = "customer"
	EntityTypeSupplier   EntityType = "supplier"
	EntityTypeWholesaler EntityType = "wholesaler"
	EntityTypeTransport  EntityType = "transport"
	EntityTypeLabour     EntityType = "labour"
	EntityTypeOther      EntityType = "other"
)

// AllEntityTypes lists every entity type in display order
var AllEntityTypes = []EntityType{
	EntityTypeCustomer,
	EntityTypeSupplier,
	EntityTypeWholesaler,
	EntityTypeTransport,
	EntityTypeLabour,
	EntityTypeOther,
}

// IsValid checks if the entity type is known
func (t EntityType) IsValid() bool {
	for _, v := range AllEntityTypes {
		if v == t {
			return true
		}
	}
	return false
}

// String returns the string representation
func (t EntityType) String() string {
	return string(t)
}

// IsExpense reports whether invoices against this entity type are operating
// expenses (labour and transport) rather than trade
func (t EntityType) IsExpense() bool {
	return t == EntityTypeLabour || t == EntityTypeTransport
}

// gstinPattern matches the 15-character GSTIN layout: 2-digit state code,
// 10-character PAN, entity number, 'Z', checksum
var gstinPattern = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z][1-9A-Z]Z[0-9A-Z]$`)

// BusinessEntity is a counterparty (customer, supplier, transporter...) with
// the state code used for GST jurisdiction
type BusinessEntity struct {
	shared.TenantAggregateRoot
	Name       string
	EntityType EntityType
	StateCode  string
	GSTIN      string
	Phone      string
	Email      string
	Address    string
}

// NewBusinessEntity creates a counterparty. When a GSTIN is given its first two
// digits become the state code unless one was supplied explicitly.
func NewBusinessEntity(tenantID, ownerID uuid.UUID, name string, entityType EntityType, stateCode, gstin string) (*BusinessEntity, error) {
	e := &BusinessEntity{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID, ownerID),
	}
	if err := e.apply(name, entityType, stateCode, gstin); err != nil {
		return nil, err
	}
	return e, nil
}

// Update replaces the identifying fields and bumps the version
func (e *BusinessEntity) Update(name string, entityType EntityType, stateCode, gstin, phone, email, address string) error {
	if err := e.apply(name, entityType, stateCode, gstin); err != nil {
		return err
	}
	e.Phone = phone
	e.Email = email
	e.Address = address
	e.UpdatedAt = time.Now()
	e.IncrementVersion()
	return nil
}

func (e *BusinessEntity) apply(name string, entityType EntityType, stateCode, gstin string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewValidationError("Entity name is required")
	}
	if len(name) > 200 {
		return shared.NewValidationError("Entity name cannot exceed 200 characters")
	}
	if !entityType.IsValid() {
		return shared.NewValidationError("Invalid entity type: " + string(entityType))
	}
	gstin = strings.ToUpper(strings.TrimSpace(gstin))
	if gstin != "" && !gstinPattern.MatchString(gstin) {
		return shared.NewValidationError("Invalid GSTIN format")
	}
	stateCode = strings.ToUpper(strings.TrimSpace(stateCode))
	if stateCode == "" && gstin != "" {
		stateCode = gstin[:2]
	}

	e.Name = name
	e.EntityType = entityType
	e.StateCode = stateCode
	e.GSTIN = gstin
	return nil
}

// DedupKey identifies duplicate counterparties: same lower-cased name and type
func (e *BusinessEntity) DedupKey() string {
	return strings.ToLower(strings.TrimSpace(e.Name)) + "|" + string(e.EntityType)
}

// Deduplicate keeps, for every (lower-cased name, entity type) pair, the most
// recently created entity. Output is ordered by name.
func Deduplicate(entities []BusinessEntity) []BusinessEntity {
	latest := make(map[string]BusinessEntity, len(entities))
	for _, e := range entities {
		key := e.DedupKey()
		if cur, ok := latest[key]; !ok || e.CreatedAt.After(cur.CreatedAt) {
			latest[key] = e
		}
	}
	out := make([]BusinessEntity, 0, len(latest))
	for _, e := range latest {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		ni, nj := strings.ToLower(out[i].Name), strings.ToLower(out[j].Name)
		if ni == nj {
			return out[i].EntityType < out[j].EntityType
		}
		return ni < nj
	})
	return out
}
