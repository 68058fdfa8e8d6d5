package plate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/velostock/velostock/business/types/plate"
)

func Test_Parse(t *testing.T) {
	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{"ABC1D23", "ABC1D23", true},
		{"ABC1234", "ABC1234", true},
		{"abc1d23", "ABC1D23", true},
		{"ABC-1234", "ABC1234", true},
		{"AB1234", "", false},
		{"ABCD123", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p, err := plate.Parse(tt.input)
			if !tt.ok {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.String())
		})
	}
}
