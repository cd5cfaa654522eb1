package vcgc

import (
	"fmt"

	"github.com/juju/errors"
)

// LexError is raised by the tokenizer for an unexpected character, a
// malformed number/identifier, or an unterminated/empty quoted string.
// It always carries a source position.
type LexError struct {
	Filename string
	Line     int
	Column   int
	Message  string

	cause error
}

func newLexError(filename string, line, column int, format string, args ...interface{}) *LexError {
	msg := fmt.Sprintf(format, args...)
	e := &LexError{Filename: filename, Line: line, Column: column, Message: msg}
	e.cause = errors.Annotatef(errors.New(msg), "lex error in %s at %d:%d", filename, line, column)
	return e
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lex error in %s at %d:%d: %s", e.Filename, e.Line, e.Column, e.Message)
}

// Cause returns the juju/errors-annotated underlying error, so callers
// that walk error causes with errors.Cause(e) land on the same message
// Error() reports.
func (e *LexError) Cause() error { return e.cause }

// CompileError is raised by the parser or the rule builder for a
// semantic violation: malformed import, duplicate package, a package
// that is both static and aliased, a malformed rule, a negative repeat
// count, or a max-repeat smaller than its paired min. Line is 0 when no
// source position is available (e.g. an error raised before any token
// was consumed).
type CompileError struct {
	Filename string
	Line     int
	Message  string

	cause error
}

func newCompileError(filename string, line int, format string, args ...interface{}) *CompileError {
	msg := fmt.Sprintf(format, args...)
	e := &CompileError{Filename: filename, Line: line, Message: msg}
	if line > 0 {
		e.cause = errors.Annotatef(errors.New(msg), "compile error in %s at line %d", filename, line)
	} else {
		e.cause = errors.Annotatef(errors.New(msg), "compile error in %s", filename)
	}
	return e
}

func (e *CompileError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("compile error in %s at line %d: %s", e.Filename, e.Line, e.Message)
	}
	return fmt.Sprintf("compile error in %s: %s", e.Filename, e.Message)
}

// Cause mirrors LexError.Cause.
func (e *CompileError) Cause() error { return e.cause }
