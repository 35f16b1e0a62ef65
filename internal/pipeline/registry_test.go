package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	assert.Equal(t, []string{CRMKey, CatalogKey}, Keys())

	def, ok := Get(CRMKey)
	require.True(t, ok)
	assert.Equal(t, CRMKey, def.Key)
	assert.NotNil(t, def.Run)

	_, ok = Get("missing")
	assert.False(t, ok)
}

func TestRegister_Duplicate(t *testing.T) {
	assert.Panics(t, func() {
		Register(Definition{Key: CRMKey})
	})
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name    string
		names   []string
		want    []string
		wantErr bool
	}{
		{"all", []string{All}, []string{CRMKey, CatalogKey}, false},
		{"given order", []string{CatalogKey, CRMKey}, []string{CatalogKey, CRMKey}, false},
		{"repeats run once", []string{CatalogKey, All, CatalogKey}, []string{CatalogKey, CRMKey}, false},
		{"unknown", []string{"crm", "nope"}, nil, true},
		{"empty", nil, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defs, err := Resolve(tt.names)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			var keys []string
			for _, d := range defs {
				keys = append(keys, d.Key)
			}
			assert.Equal(t, tt.want, keys)
		})
	}
}
