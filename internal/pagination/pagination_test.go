package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name               string
		page, size         int
		wantPage, wantSize int
	}{
		{"defaults", 0, 0, 1, 20},
		{"negative", -3, -1, 1, 20},
		{"kept", 4, 50, 4, 50},
		{"capped", 2, 1000, 2, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, s := Normalize(tt.page, tt.size)
			assert.Equal(t, tt.wantPage, p)
			assert.Equal(t, tt.wantSize, s)
		})
	}
}

func TestPages(t *testing.T) {
	assert.Equal(t, 0, Pages(0, 20))
	assert.Equal(t, 1, Pages(20, 20))
	assert.Equal(t, 2, Pages(21, 20))
	assert.Equal(t, 0, Pages(5, 0))
}
