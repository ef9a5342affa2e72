package options

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasmodel/oaserrors"
)

func TestValidateSingleInputSource(t *testing.T) {
	tests := []struct {
		name    string
		sources []bool
		wantErr string
	}{
		{"exactly one", []bool{false, true, false}, ""},
		{"none", []bool{false, false}, "need one"},
		{"no sources at all", nil, "need one"},
		{"two", []bool{true, true, false}, "only one"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSingleInputSource("need one", "only one", tt.sources...)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, oaserrors.ErrConfig)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
