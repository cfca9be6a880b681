package pagelayout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePages(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    []int
		wantErr bool
	}{
		{"empty", "", nil, false},
		{"single", "1", []int{1}, false},
		{"list", "1, 3,5", []int{1, 3, 5}, false},
		{"range", "2-4,7", []int{2, 3, 4, 7}, false},
		{"empty entry", "1,,2", []int{1, 2}, false},
		{"not a number", "x", nil, true},
		{"reversed range", "4-2", nil, true},
		{"open range", "1-", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePages(tt.value)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
