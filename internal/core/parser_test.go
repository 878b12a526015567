package core

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invconv/internal/types"
)

func newSheet(file string, section string, headers ...string) types.Sheet {
	sheet := types.Sheet{File: file, Section: section}
	for i, name := range headers {
		sheet.Headers = append(sheet.Headers, types.Header{Name: name, Index: i + 1})
	}
	return sheet
}

func parseLines(t *testing.T, lines ...string) *Parser {
	t.Helper()
	p, err := NewParser()
	require.NoError(t, err)
	for _, line := range lines {
		require.NoError(t, p.ParseLine(context.Background(), line), line)
	}
	return p
}

func parseError(t *testing.T, lines ...string) error {
	t.Helper()
	p, err := NewParser()
	require.NoError(t, err)
	for _, line := range lines {
		if err := p.ParseLine(context.Background(), line); err != nil {
			return err
		}
	}
	t.Fatalf("expected an error parsing %q", lines)
	return nil
}

// ---------------------------------------------------------------------------
// Operators
// ---------------------------------------------------------------------------

func TestParseAssign(t *testing.T) {
	p := parseLines(t, "name : Name, Product Title ,, ")

	got, ok := p.Table().Mappings.Get(types.GenericFileSection(), "name")
	require.True(t, ok)
	if diff := cmp.Diff([]string{"NAME", "PRODUCT TITLE"}, got); diff != "" {
		t.Fatalf("candidates mismatch (-want +got):\n%s", diff)
	}
}

func TestParseAssignWithoutCandidates(t *testing.T) {
	requireKind(t, parseError(t, "name :"), KindInvalidSyntax)
}

func TestParseDelegator(t *testing.T) {
	p := parseLines(t,
		"salePrice : Price",
		"[FILE: inv]",
		"cost : Cost",
		"purchasePrice > cost, salePrice",
	)

	got, ok := p.Table().Mappings.Get(types.NewFileSection("inv", types.SectFallback), "purchasePrice")
	require.True(t, ok)
	assert.Equal(t, []string{"COST", "PRICE"}, got)
}

func TestParseDelegatorCopiesTemplate(t *testing.T) {
	p := parseLines(t,
		`unit < "Unit"`,
		"salesUnit > unit",
	)

	got, ok := p.Table().Templates.Get(types.GenericFileSection(), "salesUnit")
	require.True(t, ok)
	assert.Equal(t, "Unit", got)
}

func TestParseDelegatorWithoutEffect(t *testing.T) {
	requireKind(t, parseError(t, "salesUnit > unit"), KindOperatorNoEffect)
}

func TestParseOptional(t *testing.T) {
	p := parseLines(t, "  ~description : Description, Notes")

	table := p.Table()
	optional, _ := table.Optional.Get(types.GenericFileSection(), "description")
	assert.True(t, optional)
	got, _ := table.Mappings.Get(types.GenericFileSection(), "description")
	assert.Equal(t, []string{"DESCRIPTION", "NOTES"}, got)
}

func TestParseOptionalWithoutOperator(t *testing.T) {
	requireKind(t, parseError(t, "~description"), KindOperatorNotFound)
}

func TestParseImporter(t *testing.T) {
	p := parseLines(t,
		`productTypeSelect < "product"`,
		`code < "INV-$output_txt"`,
	)

	table := p.Table()
	template, _ := table.Templates.Get(types.GenericFileSection(), "productTypeSelect")
	assert.Equal(t, "product", template)
	optional, _ := table.Optional.Get(types.GenericFileSection(), "productTypeSelect")
	assert.True(t, optional)

	template, _ = table.Templates.Get(types.GenericFileSection(), "code")
	assert.Equal(t, "INV-$output_txt", template)
	_, optional = table.Optional.Get(types.GenericFileSection(), "code")
	assert.False(t, optional)
}

func TestParseComments(t *testing.T) {
	p := parseLines(t,
		"# full line comment",
		"",
		"   ",
		"name : Name # trailing",
		`note < "a # b" # trailing`,
	)

	got, _ := p.Table().Mappings.Get(types.GenericFileSection(), "name")
	assert.Equal(t, []string{"NAME"}, got)
	template, _ := p.Table().Templates.Get(types.GenericFileSection(), "note")
	assert.Equal(t, "a # b", template)
}

func TestParseLineWithoutOperator(t *testing.T) {
	err := parseError(t, "name Name")
	axmErr := requireKind(t, err, KindOperatorNotFound)
	assert.Contains(t, axmErr.Error(), `"name Name"`)
}

// ---------------------------------------------------------------------------
// Commands
// ---------------------------------------------------------------------------

func TestParseSectSwitchesContext(t *testing.T) {
	p := parseLines(t,
		"!SECT [FILE: inv.xlsx, SECTION: Tools]",
		"name : Tool",
		"[FILE: other.xlsx]",
		"name : Part",
	)

	got, _ := p.Table().Mappings.Get(types.NewFileSection("inv.xlsx", "Tools"), "name")
	assert.Equal(t, []string{"TOOL"}, got)
	got, _ = p.Table().Mappings.Get(types.NewFileSection("other.xlsx", types.SectFallback), "name")
	assert.Equal(t, []string{"PART"}, got)
	assert.Equal(t, types.NewFileSection("other.xlsx", types.SectFallback), p.Current())
}

func TestParseCommandsAreCaseInsensitive(t *testing.T) {
	p := parseLines(t, "!axm 3.2", "!sect [FILE: inv]")
	assert.Equal(t, types.NewFileSection("inv", types.SectFallback), p.Current())
}

func TestParseSectMalformed(t *testing.T) {
	requireKind(t, parseError(t, "!SECT inv"), KindInvalidSyntax)
	requireKind(t, parseError(t, "!AVOID [SECTION: x]"), KindInvalidSyntax)
}

func TestParseUnknownCommand(t *testing.T) {
	axmErr := requireKind(t, parseError(t, "!FOO bar"), KindCommandNotRecognized)
	assert.Equal(t, "line 1: !FOO is not recognized", axmErr.Error())

	axmErr = requireKind(t, parseError(t, "!DELETE"), KindCommandNotRecognized)
	assert.Equal(t, `line 1: "!DELETE" is not recognized`, axmErr.Error())
}

func TestParseAXM(t *testing.T) {
	parseLines(t, "!AXM 3.1")

	axmErr := requireKind(t, parseError(t, "!AXM 3.5"), KindInvalidVersion)
	assert.Contains(t, axmErr.Error(), "version 3.5 is not compatible with 3.2")

	requireKind(t, parseError(t, "!AXM 4.0"), KindInvalidVersion)
	requireKind(t, parseError(t, "!AXM three"), KindInvalidSyntax)
	requireKind(t, parseError(t, "!AXM 3.2", "!AXM 3.2"), KindUnexpectedCommand)
}

func TestParseDel(t *testing.T) {
	p := parseLines(t,
		"description : Description",
		"[FILE: inv, SECTION: Tools]",
		"!DEL description",
	)
	deleted, _ := p.Table().Deletions.Get(types.NewFileSection("inv", "Tools"), "description")
	assert.True(t, deleted)

	requireKind(t, parseError(t, "!DEL missing"), KindUnexpectedCommand)
	requireKind(t, parseError(t, "name : Name", "!DEL 3.2"), KindInvalidSyntax)
	requireKind(t, parseError(t, "!DEL"), KindInvalidSyntax)
}

func TestParseAvoid(t *testing.T) {
	p := parseLines(t, "!AVOID [FILE: inv, SECTION: Old]")
	assert.True(t, p.Table().Avoid.Has(types.NewFileSection("inv", "Old")))
}

// ---------------------------------------------------------------------------
// Parser
// ---------------------------------------------------------------------------

func TestParseErrorCarriesLineNumber(t *testing.T) {
	err := parseError(t, "!AXM 3.2", "name : Name", "oops")
	axmErr := requireKind(t, err, KindOperatorNotFound)
	assert.Equal(t, 3, axmErr.Line)
	assert.True(t, strings.HasPrefix(axmErr.Error(), "line 3: "))
}

func TestParseReader(t *testing.T) {
	p, err := NewParser()
	require.NoError(t, err)
	mapping := "!AXM 3.2\n[FILE: inv]\nname : Name\nprice : Cost\n"

	require.NoError(t, p.Parse(context.Background(), strings.NewReader(mapping)))

	assert.Equal(t, []string{"name", "price"}, p.Table().Mappings.Names(types.NewFileSection("inv", types.SectFallback)))
}

func TestFinalizeOnlyOnce(t *testing.T) {
	p := parseLines(t, "name : Name")
	p.Init([]types.Sheet{newSheet("inv.xlsx", "Sheet1", "Name")})

	require.NoError(t, p.Finalize(context.Background()))
	requireKind(t, p.Finalize(context.Background()), KindUnexpectedCommand)
	requireKind(t, p.ParseLine(context.Background(), "x : y"), KindUnexpectedCommand)
}

func TestFinalizeWithoutDeclarations(t *testing.T) {
	p := parseLines(t, "!AXM 3.2")
	p.Init([]types.Sheet{newSheet("inv.xlsx", "Sheet1", "Name")})

	requireKind(t, p.Finalize(context.Background()), KindSourceNotIterable)
}

func TestStripComment(t *testing.T) {
	assert.Equal(t, "a ", stripComment("a # b"))
	assert.Equal(t, `x < "#1" `, stripComment(`x < "#1" # c`))
	assert.Equal(t, "plain", stripComment("plain"))
}
