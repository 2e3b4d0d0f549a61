package paytm

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const OrderIDPrefix = "ORDER"

// NewOrderID returns OrderIDPrefix followed by a UUIDv7 as 32 upper-case hex
// digits. Version 7 ids are time ordered and unique across instances.
func NewOrderID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("failed to generate order id: %w", err)
	}
	return OrderIDPrefix + strings.ToUpper(strings.ReplaceAll(id.String(), "-", "")), nil
}
