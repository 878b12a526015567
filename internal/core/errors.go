package core

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"invconv/internal/types"
)

// ErrorKind classifies fatal AXM conditions.
type ErrorKind string

const (
	KindInvalidVersion       ErrorKind = "invalid_version"
	KindInvalidSyntax        ErrorKind = "invalid_syntax"
	KindCommandNotRecognized ErrorKind = "command_not_recognized"
	KindUnexpectedCommand    ErrorKind = "unexpected_command"
	KindOperatorNoEffect     ErrorKind = "operator_no_effect"
	KindOperatorNotFound     ErrorKind = "operator_not_found"
	KindExpectedVarNotFound  ErrorKind = "expected_var_not_found"
	KindInvalidFileSection   ErrorKind = "invalid_file_section"
	KindInvalidPriority      ErrorKind = "invalid_priority"
	KindSourceNotIterable    ErrorKind = "source_not_iterable"
)

// MissingColumn is an output column left without an input column.
type MissingColumn struct {
	FileSection types.FileSection
	Column      string
}

// Error is returned for every fatal AXM condition. It unwraps to an
// errbuilder error so callers can map it to an exit code.
type Error struct {
	Kind    ErrorKind
	Line    int
	Msg     string
	Missing []MissingColumn
	cause   error
}

func (e *Error) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.cause
}

func newError(kind ErrorKind, msg string) *Error {
	return &Error{
		Kind: kind,
		Msg:  msg,
		cause: errbuilder.New().
			WithCode(codeForKind(kind)).
			WithMsg(msg),
	}
}

func codeForKind(kind ErrorKind) errbuilder.ErrCode {
	switch kind {
	case KindInvalidVersion, KindExpectedVarNotFound:
		return errbuilder.CodeFailedPrecondition
	case KindInvalidFileSection:
		return errbuilder.CodeNotFound
	case KindInvalidPriority, KindSourceNotIterable:
		return errbuilder.CodeInternal
	default:
		return errbuilder.CodeInvalidArgument
	}
}

func errInvalidSyntax(name string, what string) *Error {
	return newError(KindInvalidSyntax, fmt.Sprintf("invalid usage of %s %s", name, what))
}

func errCommandNotRecognized(command string) *Error {
	return newError(KindCommandNotRecognized, fmt.Sprintf("%s is not recognized", command))
}

func errInvalidVersion(declared Version, supported Version) *Error {
	return newError(KindInvalidVersion, fmt.Sprintf("version %s is not compatible with %s", declared, supported))
}

func errInvalidPriority(phase types.Phase) *Error {
	return newError(KindInvalidPriority, fmt.Sprintf("phase %d is not a valid scheduling phase", int(phase)))
}

func errOperatorNoEffect(name string) *Error {
	return newError(KindOperatorNoEffect, fmt.Sprintf("the operator %s has no effect", name))
}

func errOperatorNotFound(line string) *Error {
	return newError(KindOperatorNotFound, fmt.Sprintf("no operator was found in %q", line))
}

func errUnexpectedCommand(name string) *Error {
	return newError(KindUnexpectedCommand, fmt.Sprintf("the command %s was unexpectedly used", name))
}

func errInvalidFileSection(file string, section string) *Error {
	return newError(KindInvalidFileSection, fmt.Sprintf("the file section pair (%s, %s) cannot be found in axm file", file, section))
}

func errSourceNotIterable(what string) *Error {
	return newError(KindSourceNotIterable, fmt.Sprintf("%s must not be empty", what))
}

// errExpectedVarNotFound groups missing columns per file section, in key
// order, and words the message for one or many columns.
func errExpectedVarNotFound(missing []MissingColumn) *Error {
	grouped := map[types.FileSection][]string{}
	var keys []types.FileSection
	for _, entry := range missing {
		if _, ok := grouped[entry.FileSection]; !ok {
			keys = append(keys, entry.FileSection)
		}
		grouped[entry.FileSection] = append(grouped[entry.FileSection], entry.Column)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })

	var parts []string
	for _, key := range keys {
		columns := grouped[key]
		sort.Strings(columns)
		quoted := make([]string, 0, len(columns))
		for _, column := range columns {
			quoted = append(quoted, fmt.Sprintf("%q", column))
		}
		parts = append(parts, fmt.Sprintf("%s in %s", strings.Join(quoted, ", "), key))
	}

	msg := fmt.Sprintf("the variables %s are all missing", strings.Join(parts, "; "))
	if len(missing) == 1 {
		msg = fmt.Sprintf("the variable %s is missing", parts[0])
	}
	err := newError(KindExpectedVarNotFound, msg)
	err.Missing = missing
	return err
}
