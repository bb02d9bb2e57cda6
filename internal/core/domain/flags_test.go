package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/forge/internal/core/domain"
)

func TestFlags_AddAndList(t *testing.T) {
	f := domain.NewFlags("-O2")
	f.Add("-g", "-Wall")

	assert.Equal(t, []string{"-O2", "-g", "-Wall"}, f.List())
	assert.Equal(t, 3, f.Len())
	assert.True(t, f.Contains("-g"))
	assert.False(t, f.Contains("-O3"))
}

func TestFlags_ListIsACopy(t *testing.T) {
	f := domain.NewFlags("-O2")
	list := f.List()
	list[0] = "-O0"

	assert.Equal(t, []string{"-O2"}, f.List())
}

func TestFlags_Remove(t *testing.T) {
	tests := []struct {
		name         string
		flags        []string
		remove       string
		hasParameter bool
		want         []string
		wantRemoved  int
	}{
		{
			name:        "exact match without parameter",
			flags:       []string{"-c", "-O2"},
			remove:      "-c",
			want:        []string{"-O2"},
			wantRemoved: 1,
		},
		{
			name:         "exact match consumes following parameter",
			flags:        []string{"-J", "mods", "-O2"},
			remove:       "-J",
			hasParameter: true,
			want:         []string{"-O2"},
			wantRemoved:  1,
		},
		{
			name:         "prefix match removed alone",
			flags:        []string{"-Jmods", "-O2"},
			remove:       "-J",
			hasParameter: true,
			want:         []string{"-O2"},
			wantRemoved:  1,
		},
		{
			name:         "trailing flag with missing parameter",
			flags:        []string{"-O2", "-J"},
			remove:       "-J",
			hasParameter: true,
			want:         []string{"-O2"},
			wantRemoved:  1,
		},
		{
			name:        "no match",
			flags:       []string{"-O2"},
			remove:      "-g",
			want:        []string{"-O2"},
			wantRemoved: 0,
		},
		{
			name:         "multiple occurrences",
			flags:        []string{"-J", "a", "-O2", "-Jb"},
			remove:       "-J",
			hasParameter: true,
			want:         []string{"-O2"},
			wantRemoved:  2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := domain.NewFlags(tt.flags...)
			removed := f.Remove(tt.remove, tt.hasParameter)

			assert.Equal(t, tt.wantRemoved, removed)
			assert.Equal(t, tt.want, f.List())
		})
	}
}

func TestFlags_Checksum(t *testing.T) {
	a := domain.NewFlags("-O2", "-g")
	b := domain.NewFlags("-O2", "-g")
	require.Equal(t, a.Checksum(), b.Checksum())

	// Order matters for flags, unlike for dependency hashes.
	c := domain.NewFlags("-g", "-O2")
	assert.NotEqual(t, a.Checksum(), c.Checksum())

	// Adjacent flags must not collide with their concatenation.
	d := domain.NewFlags("-O2-g")
	assert.NotEqual(t, a.Checksum(), d.Checksum())
}
