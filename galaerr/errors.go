package galaerr

import (
	"fmt"
	"strings"
)

// ErrorType defines the category of the error.
type ErrorType string

const (
	TypeSyntax     ErrorType = "SyntaxError"
	TypeSemantic   ErrorType = "SemanticError"
	TypeInitSafety ErrorType = "InitSafetyError"
)

// GalaError is the interface for all GALA-related errors.
type GalaError interface {
	error
	Type() ErrorType
}

// BaseError provides common fields for GALA errors.
type BaseError struct {
	Msg     string
	ErrType ErrorType
}

func (e *BaseError) Error() string {
	return fmt.Sprintf("[%s] %s", e.ErrType, e.Msg)
}

func (e *BaseError) Type() ErrorType {
	return e.ErrType
}

// SyntaxError represents an error during the parsing phase.
type SyntaxError struct {
	BaseError
	Line   int
	Column int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("[%s] line %d:%d %s", e.ErrType, e.Line, e.Column, e.Msg)
}

// SemanticError represents an error during the transformation/transpilation phase.
type SemanticError struct {
	BaseError
	Line     int
	Column   int
	FilePath string
}

func (e *SemanticError) Error() string {
	if e.Line > 0 {
		if e.FilePath != "" {
			return fmt.Sprintf("[%s] %s:%d:%d %s", e.ErrType, e.FilePath, e.Line, e.Column, e.Msg)
		}
		return fmt.Sprintf("[%s] line %d:%d %s", e.ErrType, e.Line, e.Column, e.Msg)
	}
	return fmt.Sprintf("[%s] %s", e.ErrType, e.Msg)
}

// InitSafetyError wraps a single rendered initialization-safety warning so
// it composes with the rest of this hierarchy in a toolchain that mixes
// syntax/semantic errors and checker warnings in one diagnostic stream.
// Kind names the effect the warning came from (e.g. "Uninit", "Call");
// Children holds the nested warnings that were reported before this one,
// mirroring the checker's child-before-parent effect trees.
type InitSafetyError struct {
	BaseError
	Kind     string
	FilePath string
	Line     int
	Column   int
	Children []*InitSafetyError
}

func (e *InitSafetyError) Error() string {
	if e.FilePath != "" {
		return fmt.Sprintf("[%s] %s:%d:%d %s: %s", e.ErrType, e.FilePath, e.Line, e.Column, e.Kind, e.Msg)
	}
	return fmt.Sprintf("[%s] %d:%d %s: %s", e.ErrType, e.Line, e.Column, e.Kind, e.Msg)
}

// NewInitSafetyError constructs an InitSafetyError from a rendered
// checker warning's parts.
func NewInitSafetyError(kind, filePath string, line, column int, msg string, children []*InitSafetyError) *InitSafetyError {
	return &InitSafetyError{
		BaseError: BaseError{Msg: msg, ErrType: TypeInitSafety},
		Kind:      kind,
		FilePath:  filePath,
		Line:      line,
		Column:    column,
		Children:  children,
	}
}

// MultiError collects multiple GALA errors.
type MultiError struct {
	Errors []error
}

func (m *MultiError) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d error(s) occurred:\n", len(m.Errors)))
	for _, err := range m.Errors {
		sb.WriteString(fmt.Sprintf("- %v\n", err))
	}
	return sb.String()
}

func (m *MultiError) Type() ErrorType {
	if len(m.Errors) > 0 {
		if ge, ok := m.Errors[0].(GalaError); ok {
			return ge.Type()
		}
	}
	return "MultiError"
}

// NewSyntaxError creates a new SyntaxError.
func NewSyntaxError(line, column int, msg string) *SyntaxError {
	return &SyntaxError{
		BaseError: BaseError{
			Msg:     msg,
			ErrType: TypeSyntax,
		},
		Line:   line,
		Column: column,
	}
}

// NewSemanticError creates a new SemanticError.
func NewSemanticError(msg string) *SemanticError {
	return &SemanticError{
		BaseError: BaseError{
			Msg:     msg,
			ErrType: TypeSemantic,
		},
	}
}

// NewSemanticErrorAt creates a SemanticError with line and column position.
func NewSemanticErrorAt(line, column int, msg string) *SemanticError {
	return &SemanticError{
		BaseError: BaseError{
			Msg:     msg,
			ErrType: TypeSemantic,
		},
		Line:   line,
		Column: column,
	}
}

// NewSemanticErrorInFile creates a SemanticError with file path, line, and column position.
func NewSemanticErrorInFile(filePath string, line, column int, msg string) *SemanticError {
	return &SemanticError{
		BaseError: BaseError{
			Msg:     msg,
			ErrType: TypeSemantic,
		},
		Line:     line,
		Column:   column,
		FilePath: filePath,
	}
}
