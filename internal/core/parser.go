package core

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"

	"github.com/rs/zerolog/log"

	"invconv/internal/types"
)

// Parser reads an AXM mapping file line by line into a Table. Finalize
// resolves the declarations against the input headers given to Init.
type Parser struct {
	table          *Table
	scheduler      *Scheduler
	current        types.FileSection
	line           int
	supported      Version
	versionChecked bool
	finalized      bool
}

func NewParser() (*Parser, error) {
	p := &Parser{
		table:     NewTable(),
		scheduler: NewScheduler(),
		current:   types.GenericFileSection(),
		supported: SupportedVersion,
	}
	for _, op := range p.finalizeSteps() {
		if err := p.scheduler.Add(op.phase, op.name, op.run); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Table exposes the parsed state. It is complete once Finalize returns.
func (p *Parser) Table() *Table {
	return p.table
}

// Current returns the FileSection new declarations go to.
func (p *Parser) Current() types.FileSection {
	return p.current
}

// Init records the headers of every real input section.
func (p *Parser) Init(sheets []types.Sheet) {
	for _, sheet := range sheets {
		p.table.AddInput(sheet.FileSection(), sheet.HeaderNames())
	}
}

// Parse reads every line of r.
func (p *Parser) Parse(ctx context.Context, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if err := p.ParseLine(ctx, scanner.Text()); err != nil {
			return err
		}
	}
	return scanner.Err()
}

// ParseLine handles one line of a mapping file. Errors carry the line
// number.
func (p *Parser) ParseLine(ctx context.Context, line string) error {
	p.line++
	if err := p.parseLine(ctx, line); err != nil {
		var axmErr *Error
		if errors.As(err, &axmErr) && axmErr.Line == 0 {
			axmErr.Line = p.line
		}
		return err
	}
	return nil
}

func (p *Parser) parseLine(ctx context.Context, line string) error {
	if p.finalized {
		return errUnexpectedCommand("line after finalize")
	}
	text := strings.TrimSpace(stripComment(line))
	if text == "" {
		return nil
	}
	if strings.HasPrefix(text, "[") && isSect(text) {
		fs, _ := parseSect(text)
		if fs.File == "" {
			return errInvalidSyntax("section", "literal")
		}
		p.switchSection(ctx, fs)
		return nil
	}
	if strings.HasPrefix(text, commandPrefix) {
		kind, args, err := detectCommand(text)
		if err != nil {
			return err
		}
		return p.runCommand(ctx, kind, args)
	}
	return p.applyOperators(ctx, text)
}

// applyOperators applies the first operator found in line. When the
// operator rewrites the line, the scan starts over on the new text.
func (p *Parser) applyOperators(ctx context.Context, line string) error {
	for {
		matched := false
		for _, op := range operators {
			if op.find(line) < 0 {
				continue
			}
			rewritten, err := op.apply(ctx, p, line)
			if err != nil {
				return err
			}
			if rewritten == "" {
				return nil
			}
			line = rewritten
			matched = true
			break
		}
		if !matched {
			return errOperatorNotFound(line)
		}
	}
}

// stripComment drops everything from the first '#' outside double quotes.
func stripComment(line string) string {
	inQuote := false
	for i, r := range line {
		switch r {
		case '"':
			inQuote = !inQuote
		case '#':
			if !inQuote {
				return line[:i]
			}
		}
	}
	return line
}

// Finalize runs the scheduled cascade and column resolution. It may only
// be called once.
func (p *Parser) Finalize(ctx context.Context) error {
	if p.finalized {
		return errUnexpectedCommand("finalize")
	}
	p.finalized = true
	if !p.versionChecked {
		log.Ctx(ctx).Warn().Str("supported", p.supported.String()).Msg("mapping file does not declare an !AXM version")
	}
	if err := p.scheduler.RunAll(ctx); err != nil {
		return err
	}
	log.Ctx(ctx).Debug().
		Int("sections", len(p.table.Output.Keys())).
		Int("avoided", p.table.Avoid.Len()).
		Msg("mapping finalized")
	return nil
}

// finalizeSteps lists the deferred work of every command and operator,
// then column resolution and output materialization.
func (p *Parser) finalizeSteps() []scheduledOperation {
	var steps []scheduledOperation
	for _, kind := range commands {
		steps = append(steps, p.commandSteps(kind)...)
	}
	for _, op := range operators {
		steps = append(steps, p.operatorSteps(op.kind)...)
	}
	return append(steps, p.table.resolutionSteps()...)
}

func (p *Parser) commandSteps(kind types.CommandKind) []scheduledOperation {
	switch kind {
	case types.CommandDel:
		return []scheduledOperation{
			{phase: types.PhaseInherit, name: "specialize deletions", run: p.specializeStep(p.table.Deletions)},
			{phase: types.PhaseInherit, name: "inherit deletions", run: inheritStep(p.table.Deletions)},
			{phase: types.PhaseDeleteAvoid, name: "apply deletions", run: p.table.applyDeletions},
		}
	case types.CommandAvoid:
		return []scheduledOperation{
			{phase: types.PhaseInherit, name: "specialize avoid list", run: p.specializeStep(p.table.Avoid)},
			{phase: types.PhaseDeleteAvoid, name: "apply avoid list", run: p.table.applyAvoid},
		}
	default:
		return nil
	}
}

func (p *Parser) operatorSteps(kind types.OperatorKind) []scheduledOperation {
	switch kind {
	case types.OperatorOptional:
		return []scheduledOperation{
			{phase: types.PhaseInherit, name: "specialize optional columns", run: p.specializeStep(p.table.Optional)},
			{phase: types.PhaseInherit, name: "inherit optional columns", run: inheritStep(p.table.Optional)},
		}
	case types.OperatorAssign:
		return []scheduledOperation{
			{phase: types.PhaseInherit, name: "specialize mappings", run: p.specializeStep(p.table.Mappings)},
			{phase: types.PhaseInherit, name: "inherit mappings", run: inheritStep(p.table.Mappings)},
		}
	case types.OperatorImporter:
		return []scheduledOperation{
			{phase: types.PhaseInherit, name: "specialize templates", run: p.specializeStep(p.table.Templates)},
			{phase: types.PhaseInherit, name: "inherit templates", run: inheritStep(p.table.Templates)},
		}
	default:
		return nil
	}
}

// specializeStep expands table over the declared FileSections. The avoid
// list is consulted for every table except itself.
func (p *Parser) specializeStep(table keyed) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		known, err := p.table.known()
		if err != nil {
			return err
		}
		avoid := p.table.Avoid
		if list, ok := table.(*KeyList); ok && list == p.table.Avoid {
			avoid = nil
		}
		specialize(table, known, avoid)
		return nil
	}
}

func inheritStep(table inheritable) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		inherit(table)
		return nil
	}
}
