package shared

import (
	"fmt"
	"time"
)

// Document number prefixes
const (
	InvoiceNumberPrefix       = "INV"
	PurchaseOrderNumberPrefix = "PO"
)

// GenerateDocumentNumber builds PREFIX-YYYYMM-NNNNNN where NNNNNN is the last
// six digits of the millisecond clock. Uniqueness is enforced by the store;
// callers regenerate on conflict.
func GenerateDocumentNumber(prefix string, now time.Time) string {
	return fmt.Sprintf("%s-%s-%06d", prefix, now.Format("200601"), now.UnixMilli()%1000000)
}
