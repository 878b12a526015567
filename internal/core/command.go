package core

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/rs/zerolog/log"

	"invconv/internal/types"
)

const commandPrefix = "!"

var commands = []types.CommandKind{
	types.CommandAXM,
	types.CommandSect,
	types.CommandDel,
	types.CommandAvoid,
}

func commandName(kind types.CommandKind) string {
	return commandPrefix + string(kind)
}

// detectCommand matches a '!' line against the known commands and returns
// the command and its argument text.
func detectCommand(line string) (types.CommandKind, string, error) {
	rest := strings.TrimPrefix(strings.TrimLeft(line, " \t"), commandPrefix)
	upper := strings.ToUpper(rest)
	for _, kind := range commands {
		name := string(kind)
		if !strings.HasPrefix(upper, name) {
			continue
		}
		args := rest[len(name):]
		if next := firstRune(args); next != 0 && (unicode.IsLetter(next) || next == '_') {
			continue
		}
		return kind, strings.TrimSpace(args), nil
	}
	token := strings.TrimSpace(line)
	if idx := strings.IndexByte(token, ' '); idx >= 0 {
		token = token[:idx]
	} else {
		token = fmt.Sprintf("%q", token)
	}
	return "", "", errCommandNotRecognized(token)
}

func firstRune(text string) rune {
	for _, r := range text {
		return r
	}
	return 0
}

func (p *Parser) runCommand(ctx context.Context, kind types.CommandKind, args string) error {
	switch kind {
	case types.CommandAXM:
		return p.commandAXM(ctx, args)
	case types.CommandSect:
		return p.commandSect(ctx, args)
	case types.CommandDel:
		return p.commandDel(ctx, args)
	case types.CommandAvoid:
		return p.commandAvoid(ctx, args)
	default:
		return errCommandNotRecognized(commandName(kind))
	}
}

func (p *Parser) commandAXM(ctx context.Context, args string) error {
	if p.versionChecked {
		return errUnexpectedCommand(commandName(types.CommandAXM))
	}
	declared, ok := parseFloat(args)
	if !ok {
		return errInvalidSyntax(commandName(types.CommandAXM), "command")
	}
	if err := checkVersion(declared, p.supported); err != nil {
		return err
	}
	p.versionChecked = true
	log.Ctx(ctx).Debug().Str("version", declared.String()).Msg("axm version accepted")
	return nil
}

func (p *Parser) commandSect(ctx context.Context, args string) error {
	fs, ok := parseSect(args)
	if !ok || fs.File == "" {
		return errInvalidSyntax(commandName(types.CommandSect), "command")
	}
	p.switchSection(ctx, fs)
	return nil
}

func (p *Parser) switchSection(ctx context.Context, fs types.FileSection) {
	assert.NotEmpty(ctx, fs.Section, "section must be set")
	p.current = fs
	log.Ctx(ctx).Debug().Str("file_section", fs.String()).Msg("section selected")
}

// commandDel removes a column from the current FileSection after
// inheritance. The column has to be declared at the current, file generic
// or global level.
func (p *Parser) commandDel(ctx context.Context, args string) error {
	name := commandName(types.CommandDel)
	if args == "" {
		return errInvalidSyntax(name, "command")
	}
	if kind, ok := structKind(args); ok {
		return errInvalidSyntax(name, fmt.Sprintf("command with a %s argument", kind))
	}
	levels := []types.FileSection{p.current, p.current.FileGeneric(), types.GenericFileSection()}
	for _, level := range levels {
		_, mapped := p.table.Mappings.Get(level, args)
		_, templated := p.table.Templates.Get(level, args)
		if mapped || templated {
			p.table.Deletions.Set(p.current, args, true)
			log.Ctx(ctx).Debug().Str("column", args).Str("file_section", p.current.String()).Msg("column deleted")
			return nil
		}
	}
	return errUnexpectedCommand(name)
}

func (p *Parser) commandAvoid(ctx context.Context, args string) error {
	fs, ok := parseSect(args)
	if !ok || fs.File == "" {
		return errInvalidSyntax(commandName(types.CommandAvoid), "command")
	}
	p.table.Avoid.AddEmpty(fs)
	log.Ctx(ctx).Debug().Str("file_section", fs.String()).Msg("section avoided")
	return nil
}
