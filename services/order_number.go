package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// GenerateOrderNumber produces a unique, sortable order number:
// timestamp followed by an 8-character uuid fragment.
func GenerateOrderNumber() string {
	return fmt.Sprintf("%s%s", time.Now().Format("20060102150405"), uuid.New().String()[:8])
}
