package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateOrderNumber(t *testing.T) {
	first := GenerateOrderNumber()
	second := GenerateOrderNumber()

	// 14-digit timestamp plus an 8-character random suffix.
	assert.Len(t, first, 22)
	assert.NotEqual(t, first, second)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		n := GenerateOrderNumber()
		assert.False(t, seen[n], "order numbers must not repeat")
		seen[n] = true
	}
}
