package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/forge/internal/core/domain"
)

func TestParseVersion(t *testing.T) {
	tests := []struct {
		input   string
		want    domain.Version
		wantErr bool
	}{
		{input: "13.2.0", want: domain.Version{13, 2, 0}},
		{input: "2.5", want: domain.Version{2, 5}},
		{input: "23.5.0", want: domain.Version{23, 5, 0}},
		{input: "13", wantErr: true},
		{input: "13.x", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v, err := domain.ParseVersion(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, v)
		})
	}
}

func TestVersion_Compare(t *testing.T) {
	assert.Equal(t, 0, domain.Version{2, 5, 0}.Compare(domain.Version{2, 5, 0}))
	assert.Equal(t, -1, domain.Version{2, 4, 9}.Compare(domain.Version{2, 5, 0}))
	assert.Equal(t, 1, domain.Version{3, 0}.Compare(domain.Version{2, 5, 0}))

	// Missing components count as zero.
	assert.Equal(t, 0, domain.Version{2, 5}.Compare(domain.Version{2, 5, 0}))
	assert.Equal(t, 1, domain.Version{2, 5, 0, 1}.Compare(domain.Version{2, 5, 0}))
}

func TestCategory_Properties(t *testing.T) {
	assert.True(t, domain.CategoryCCompiler.IsCompiler())
	assert.True(t, domain.CategoryFortranCompiler.IsCompiler())
	assert.False(t, domain.CategoryLinker.IsCompiler())

	assert.True(t, domain.CategoryLinker.IsMPIAware())
	assert.False(t, domain.CategoryFortranPreprocessor.IsMPIAware())

	for _, c := range domain.Categories() {
		assert.NotEqual(t, "unknown", c.String())
	}
}
