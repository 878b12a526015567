package policies

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"invconv/internal/core"
	"invconv/internal/types"
)

// Axelor product columns with a built-in transform.
const (
	ColumnImportID            = "importId"
	ColumnCode                = "code"
	ColumnName                = "name"
	ColumnFullName            = "fullName"
	ColumnDescription         = "description"
	ColumnInternalDescription = "internalDescription"
	ColumnFamily              = "productFamily_importId"
	ColumnCategory            = "productCategory_importId"
	ColumnProductType         = "productTypeSelect"
	ColumnSalesUnit           = "salesUnit_importId"
	ColumnPurchasesUnit       = "purchasesUnit_importId"
	ColumnSalePrice           = "salePrice"
	ColumnPurchasePrice       = "purchasePrice"
)

const (
	defaultCode  = "INVCONV"
	defaultPrice = "0.00"
)

type codeCounter struct {
	row   int
	value int
}

// FieldPolicy derives Axelor product fields from cell text using the
// lookup tables. It keeps per-run state: names seen, code counters and the
// import id sequence.
type FieldPolicy struct {
	units        types.LookupTable
	categories   types.LookupTable
	families     types.LookupTable
	productTypes types.LookupTable
	columns      []string
	title        cases.Caser
	logger       zerolog.Logger
	row          map[string]string
	rowIndex     int
	importID     int
	names        map[string]types.FileSection
	codes        map[string]codeCounter
	current      types.FileSection
	transforms   map[string]core.TransformFunc
}

var _ core.FieldTransforms = (*FieldPolicy)(nil)

// NewFieldPolicy checks that every lookup table exists and that its
// fallback, after overrides, names one of its entries.
func NewFieldPolicy(tables types.LookupTables, overrides types.FallbackOverrides) (*FieldPolicy, error) {
	resolved := map[string]types.LookupTable{}
	for _, want := range []struct {
		name     string
		override string
	}{
		{types.TableUnits, overrides.Unit},
		{types.TableProductCategories, overrides.Category},
		{types.TableProductFamilies, overrides.Family},
		{types.TableProductTypes, overrides.Type},
	} {
		table, ok := tables.Tables[want.name]
		if !ok {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("lookup table %s is missing", want.name))
		}
		seen := map[string]bool{}
		for _, entry := range table.Entries {
			if seen[entry.Name] {
				return nil, errbuilder.New().
					WithCode(errbuilder.CodeAlreadyExists).
					WithMsg(fmt.Sprintf("lookup table %s defines %q twice", want.name, entry.Name))
			}
			seen[entry.Name] = true
		}
		if want.override != "" {
			table.Fallback = want.override
		}
		if !seen[table.Fallback] {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("fallback %q is not an entry of lookup table %s", table.Fallback, want.name))
		}
		resolved[want.name] = table
	}
	p := &FieldPolicy{
		units:        resolved[types.TableUnits],
		categories:   resolved[types.TableProductCategories],
		families:     resolved[types.TableProductFamilies],
		productTypes: resolved[types.TableProductTypes],
		columns:      tables.Columns,
		title:        cases.Title(language.English),
		logger:       zerolog.Nop(),
		names:        map[string]types.FileSection{},
		codes:        map[string]codeCounter{},
	}
	p.transforms = map[string]core.TransformFunc{
		ColumnName:                p.name,
		ColumnDescription:         identity,
		ColumnInternalDescription: identity,
		ColumnFamily:              p.familyID,
		ColumnCategory:            p.categoryID,
		ColumnCode:                p.code,
		ColumnProductType:         p.productType,
		ColumnSalesUnit:           p.unit,
		ColumnPurchasesUnit:       p.unit,
		ColumnSalePrice:           p.price,
		ColumnPurchasePrice:       p.price,
	}
	return p, nil
}

// Columns returns the output columns in CSV order.
func (p *FieldPolicy) Columns() []string {
	return p.columns
}

// BeginSheet scopes warnings to the sheet whose rows follow.
func (p *FieldPolicy) BeginSheet(ctx context.Context, sheet types.Sheet) {
	p.current = sheet.FileSection()
	p.logger = log.Ctx(ctx).With().
		Str("file", sheet.File).
		Str("section", sheet.Section).
		Logger()
}

func (p *FieldPolicy) BeginRow(values map[string]string) {
	p.row = values
}

func (p *FieldPolicy) Transform(column string) (core.TransformFunc, bool) {
	fn, ok := p.transforms[column]
	return fn, ok
}

// Deferred reports columns whose transform reads other values of the row.
func (p *FieldPolicy) Deferred(column string) bool {
	return column == ColumnCode
}

// Commit completes a built row and returns it in column order: fullName
// and the next import id are filled in, unknown columns stay blank.
func (p *FieldPolicy) Commit(values map[string]string) []string {
	p.importID++
	values[ColumnFullName] = fmt.Sprintf("[%s] %s", values[ColumnCode], values[ColumnName])
	values[ColumnImportID] = strconv.Itoa(p.importID)
	record := make([]string, 0, len(p.columns))
	for _, column := range p.columns {
		record = append(record, values[column])
	}
	p.rowIndex++
	return record
}

func identity(raw string) string {
	return raw
}

func (p *FieldPolicy) name(raw string) string {
	if first, ok := p.names[raw]; ok {
		p.logger.Warn().Msgf("product name %q has already been defined in %s", raw, first)
		return raw
	}
	p.names[raw] = p.current
	return raw
}

// groupEntry finds the entry whose name equals raw in title case, then the
// entry whose shorthand is a word of raw, then the fallback.
func (p *FieldPolicy) groupEntry(table types.LookupTable, raw string) types.LookupEntry {
	titled := p.title.String(raw)
	for _, entry := range table.Entries {
		if p.title.String(entry.Name) == titled {
			return entry
		}
	}
	upper := strings.ToUpper(raw)
	for _, entry := range table.Entries {
		if hasShorthand(upper, strings.ToUpper(entry.Shorthand)) {
			return entry
		}
	}
	return table.FallbackEntry()
}

func (p *FieldPolicy) familyID(raw string) string {
	return p.groupEntry(p.families, raw).ID
}

func (p *FieldPolicy) categoryID(raw string) string {
	return p.groupEntry(p.categories, raw).ID
}

// code builds PREFIX-NNNN. The prefix is the category shorthand, the
// family shorthand when the category is the fallback, or the row name.
// The number advances once per committed row that uses the prefix.
func (p *FieldPolicy) code(raw string) string {
	category := p.groupEntry(p.categories, raw)
	family := p.groupEntry(p.families, raw)
	prefix := ""
	if category.Name == p.categories.Fallback {
		prefix = family.Shorthand
	} else {
		prefix = category.Shorthand
	}
	if prefix == "" {
		prefix = p.row[ColumnName]
	}
	if prefix == "" {
		prefix = defaultCode
	}
	prefix = strings.ReplaceAll(strings.ToUpper(prefix), " ", "_")

	counter, ok := p.codes[prefix]
	switch {
	case !ok:
		counter = codeCounter{row: p.rowIndex}
	case counter.row != p.rowIndex:
		counter = codeCounter{row: p.rowIndex, value: counter.value + 1}
	}
	p.codes[prefix] = counter
	return fmt.Sprintf("%s-%04d", prefix, counter.value)
}

// productType returns the id of the first type whose name or id occurs in
// raw.
func (p *FieldPolicy) productType(raw string) string {
	for _, entry := range p.productTypes.Entries {
		if (entry.Name != "" && strings.Contains(raw, entry.Name)) || (entry.ID != "" && strings.Contains(raw, entry.ID)) {
			return entry.ID
		}
	}
	return p.productTypes.FallbackEntry().ID
}

// unit returns the id of the first unit named in raw, either spelled out
// or by its shorthand after a quantity.
func (p *FieldPolicy) unit(raw string) string {
	titled := p.title.String(raw)
	for _, entry := range p.units.Entries {
		if strings.Contains(titled, p.title.String(entry.Name)) {
			return entry.ID
		}
		if hasUnitShorthand(raw, entry.Shorthand) {
			return entry.ID
		}
	}
	return p.units.FallbackEntry().ID
}

// price keeps the first run of digits with at most one decimal point.
func (p *FieldPolicy) price(raw string) string {
	var b strings.Builder
	seenDigit := false
	seenPoint := false
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
			seenDigit = true
			continue
		case r == '.' && seenDigit && !seenPoint:
			b.WriteRune(r)
			seenPoint = true
			continue
		}
		if seenDigit {
			break
		}
	}
	price := strings.TrimSuffix(b.String(), ".")
	if price == "" {
		p.logger.Warn().Msgf("cell has %q and not a price; defaulting to %s", raw, defaultPrice)
		return defaultPrice
	}
	return price
}
