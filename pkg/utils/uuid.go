package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewUUID generates a new UUID
func NewUUID() uuid.UUID {
	return uuid.New()
}

// ParseUUID parses a string into a UUID
func ParseUUID(s string) (uuid.UUID, error) {
	return uuid.Parse(s)
}

// GenerateInvoiceNo generates an invoice number of the form
// PREFIX-YYYY-XXXXX, e.g. "INV-2026-A3F9C". The suffix is random; the
// caller is responsible for retrying on the (unlikely) collision.
func GenerateInvoiceNo(prefix string) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:5])
	return fmt.Sprintf("%s-%d-%s", prefix, time.Now().Year(), suffix)
}

// GenerateBarcode generates a pseudo-EAN barcode for seeded demo products.
func GenerateBarcode() string {
	return "629" + strings.ReplaceAll(uuid.New().String(), "-", "")[:9]
}
