package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"invconv/internal/shared"
	"invconv/internal/types"
)

const asciiPunctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// operator is one line-level AXM operator.
type operator struct {
	kind   types.OperatorKind
	symbol string
}

// operators is scanned in this order for every non-command line.
var operators = []operator{
	{kind: types.OperatorOptional, symbol: "~"},
	{kind: types.OperatorAssign, symbol: ":"},
	{kind: types.OperatorDelegator, symbol: ">"},
	{kind: types.OperatorImporter, symbol: "<"},
}

func (o operator) String() string {
	return fmt.Sprintf("%s (%s)", o.kind, o.symbol)
}

// find returns the offset of the operator in line or -1.
func (o operator) find(line string) int {
	if o.kind == types.OperatorOptional {
		trimmed := strings.TrimLeft(line, " \t")
		if strings.HasPrefix(trimmed, o.symbol) {
			return len(line) - len(trimmed)
		}
		return -1
	}
	return findSymbol(line, o.symbol)
}

// findSymbol locates the first occurrence of symbol. Occurrences at or
// after the first quote are ignored, and so is a symbol that is part of a
// larger run of punctuation.
func findSymbol(line string, symbol string) int {
	if symbol == "" {
		return -1
	}
	start := strings.Index(line, symbol)
	if start < 0 {
		return -1
	}
	if quote := strings.IndexByte(line, '"'); quote >= 0 && quote <= start {
		return -1
	}
	if len(symbol) == 1 {
		if isPunctuationAt(line, start-1) && isPunctuationAt(line, start+1) {
			return -1
		}
		return start
	}
	if isPunctuationAt(line, start+len(symbol)) {
		return -1
	}
	return start
}

func isPunctuationAt(line string, pos int) bool {
	if pos < 0 || pos >= len(line) {
		return false
	}
	return strings.IndexByte(asciiPunctuation, line[pos]) >= 0
}

// lfind returns the operator that starts leftmost in line.
func lfind(line string) (operator, bool) {
	best := -1
	var found operator
	for _, op := range operators {
		pos := op.find(line)
		if pos < 0 {
			continue
		}
		if best < 0 || pos < best {
			best = pos
			found = op
		}
	}
	return found, best >= 0
}

// target returns the output column an operator line declares.
func (o operator) target(line string) (string, error) {
	if o.kind == types.OperatorOptional {
		inner, ok := lfind(stripOptional(line))
		if !ok {
			return "", errOperatorNotFound(line)
		}
		return inner.target(stripOptional(line))
	}
	pos := o.find(line)
	if pos < 0 {
		return "", errOperatorNotFound(line)
	}
	name := strings.TrimSpace(line[:pos])
	if name == "" {
		return "", errInvalidSyntax(o.String(), "operator")
	}
	return name, nil
}

// split returns the output column and the comma separated arguments.
func (o operator) split(line string) (string, []string, error) {
	name, err := o.target(line)
	if err != nil {
		return "", nil, err
	}
	pos := o.find(line)
	var args []string
	for _, arg := range strings.Split(line[pos+len(o.symbol):], ",") {
		arg = strings.TrimSpace(arg)
		if arg != "" {
			args = append(args, arg)
		}
	}
	if len(args) == 0 {
		return "", nil, errInvalidSyntax(o.String(), "operator")
	}
	return name, args, nil
}

func stripOptional(line string) string {
	return strings.TrimPrefix(strings.TrimLeft(line, " \t"), "~")
}

// apply runs the operator on line in the current FileSection. A non-empty
// result is the rewritten line the parser scans again.
func (o operator) apply(ctx context.Context, p *Parser, line string) (string, error) {
	switch o.kind {
	case types.OperatorOptional:
		return applyOptional(ctx, p, line)
	case types.OperatorAssign:
		return "", applyAssign(ctx, p, o, line)
	case types.OperatorDelegator:
		return "", applyDelegator(ctx, p, o, line)
	case types.OperatorImporter:
		return "", applyImporter(ctx, p, o, line)
	default:
		return "", errOperatorNotFound(line)
	}
}

func applyOptional(ctx context.Context, p *Parser, line string) (string, error) {
	stripped := stripOptional(line)
	inner, ok := lfind(stripped)
	if !ok {
		return "", errOperatorNotFound(stripped)
	}
	column, err := inner.target(stripped)
	if err != nil {
		return "", err
	}
	p.table.Optional.Set(p.current, column, true)
	log.Ctx(ctx).Debug().Str("column", column).Str("file_section", p.current.String()).Msg("column marked optional")
	return stripped, nil
}

func applyAssign(ctx context.Context, p *Parser, o operator, line string) error {
	column, args, err := o.split(line)
	if err != nil {
		return err
	}
	candidates := make([]string, 0, len(args))
	for _, arg := range args {
		candidates = append(candidates, shared.NormalizeHeader(arg))
	}
	p.table.Mappings.Set(p.current, column, candidates)
	log.Ctx(ctx).Debug().Str("column", column).Strs("candidates", candidates).Msg("mapping declared")
	return nil
}

// applyDelegator gives target the candidates of every source column and
// the template of the first source that has one. Sources are looked up in
// the current FileSection, then its file generic and global parents.
func applyDelegator(ctx context.Context, p *Parser, o operator, line string) error {
	target, sources, err := o.split(line)
	if err != nil {
		return err
	}
	levels := []types.FileSection{p.current, p.current.FileGeneric(), types.GenericFileSection()}
	var candidates []string
	copied := false
	for _, source := range sources {
		for _, level := range levels {
			if list, ok := p.table.Mappings.Get(level, source); ok {
				candidates = append(candidates, list...)
				break
			}
		}
		if _, ok := p.table.Templates.Get(p.current, target); ok {
			continue
		}
		for _, level := range levels {
			if template, ok := p.table.Templates.Get(level, source); ok {
				p.table.Templates.Set(p.current, target, template)
				copied = true
				break
			}
		}
	}
	if len(candidates) > 0 {
		p.table.Mappings.Set(p.current, target, candidates)
		copied = true
	}
	if !copied {
		return errOperatorNoEffect(o.String())
	}
	log.Ctx(ctx).Debug().Str("column", target).Strs("sources", sources).Msg("mapping delegated")
	return nil
}

// applyImporter stores a literal output template. A template that reads
// nothing from the input is optional.
func applyImporter(ctx context.Context, p *Parser, o operator, line string) error {
	column, err := o.target(line)
	if err != nil {
		return err
	}
	pos := o.find(line)
	template := strings.TrimSpace(line[pos+len(o.symbol):])
	template = strings.TrimSuffix(strings.TrimPrefix(template, `"`), `"`)
	p.table.Templates.Set(p.current, column, template)
	if !usesInput(template) {
		p.table.Optional.Set(p.current, column, true)
	}
	log.Ctx(ctx).Debug().Str("column", column).Str("template", template).Msg("template declared")
	return nil
}

func usesInput(template string) bool {
	for _, variable := range []string{VarInputCol, VarInputTxt, VarOutputTxt} {
		if strings.Contains(template, variable) {
			return true
		}
	}
	return false
}
