package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invconv/internal/types"
)

func TestParseFloat(t *testing.T) {
	tests := []struct {
		in   string
		want Version
		ok   bool
	}{
		{in: "3.2", want: Version{Major: 3, Minor: 2}, ok: true},
		{in: "3.10", want: Version{Major: 3, Minor: 10}, ok: true},
		{in: "3", ok: false},
		{in: "3.2.1", ok: false},
		{in: "3.x", ok: false},
		{in: ".", ok: false},
		{in: "", ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := parseFloat(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
	v310, _ := parseFloat("3.10")
	v31, _ := parseFloat("3.1")
	assert.NotEqual(t, v310, v31)
}

func TestParseSect(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want types.FileSection
	}{
		{name: "file only", in: "[FILE: inv.xlsx]", want: types.NewFileSection("inv.xlsx", types.SectFallback)},
		{name: "file and section", in: "[FILE: inv.xlsx, SECTION: Sheet 1]", want: types.NewFileSection("inv.xlsx", "Sheet 1")},
		{name: "comma in file name", in: "[FILE: a, b.xlsx, SECTION: Parts]", want: types.NewFileSection("a, b.xlsx", "Parts")},
		{name: "padding", in: "  [ FILE:inv ,SECTION:  Tools ]  ", want: types.NewFileSection("inv", "Tools")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseSect(tt.in)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsSectRejectsMalformed(t *testing.T) {
	for _, in := range []string{
		"FILE: inv",
		"[SECTION: x]",
		"[FILE: inv SECTION: x]",
		"[[FILE: inv]]",
		"]FILE: inv[",
	} {
		assert.False(t, isSect(in), in)
	}
}

func TestStructKind(t *testing.T) {
	kind, ok := structKind("3.2")
	require.True(t, ok)
	assert.Equal(t, types.StructFloat, kind)

	kind, ok = structKind("[FILE: inv]")
	require.True(t, ok)
	assert.Equal(t, types.StructSect, kind)

	_, ok = structKind("description")
	assert.False(t, ok)
}
