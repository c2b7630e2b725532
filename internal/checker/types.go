package checker

import "fmt"

// Type is the host-provided type query surface the checker consumes:
// dealiasing, widening, and decomposition of a self-type into the class
// symbols it names. An interface plus small value-receiver struct
// variants, each with String().
type Type interface {
	String() string
	// Dealias unwraps a type alias down to its underlying type.
	Dealias() Type
	// Widen drops a singleton/literal type down to its nominal supertype.
	Widen() Type
	// ClassSymbols decomposes a (possibly compound) self-type into the
	// class symbols it names.
	ClassSymbols() []Symbol
	// IsPartialAnnotated reports whether this type carries @partial,
	// e.g. a field or parameter declared `@partial p: P`.
	IsPartialAnnotated() bool
}

// BasicType is a primitive type (Int, String, Unit, Boolean, ...).
type BasicType struct {
	Name string
}

func (t BasicType) String() string            { return t.Name }
func (t BasicType) Dealias() Type             { return t }
func (t BasicType) Widen() Type               { return t }
func (t BasicType) ClassSymbols() []Symbol    { return nil }
func (t BasicType) IsPartialAnnotated() bool  { return false }

// NamedType is a reference to a class/trait by symbol, optionally wrapping
// an alias target and carrying the @partial annotation surfaced on a field
// or parameter's declared type.
type NamedType struct {
	Sym     Symbol
	Alias   Type // non-nil when this NamedType is a type alias
	Partial bool
}

func (t NamedType) String() string {
	if t.Sym != nil {
		return t.Sym.Name()
	}
	return "<named>"
}

func (t NamedType) Dealias() Type {
	if t.Alias != nil {
		return t.Alias.Dealias()
	}
	return t
}

func (t NamedType) Widen() Type { return t }

func (t NamedType) ClassSymbols() []Symbol {
	if t.Sym == nil {
		return nil
	}
	return []Symbol{t.Sym}
}

func (t NamedType) IsPartialAnnotated() bool { return t.Partial }

// ClassType is a compound self-type, e.g. `self: A & B =>`, decomposing
// into the class symbols it names.
type ClassType struct {
	Syms []Symbol
}

func (t ClassType) String() string {
	s := ""
	for i, sym := range t.Syms {
		if i > 0 {
			s += " & "
		}
		s += sym.Name()
	}
	return s
}

func (t ClassType) Dealias() Type            { return t }
func (t ClassType) Widen() Type              { return t }
func (t ClassType) ClassSymbols() []Symbol   { return t.Syms }
func (t ClassType) IsPartialAnnotated() bool { return false }

// NilType is the bottom/null type assigned to literal `null`.
type NilType struct{}

func (t NilType) String() string            { return "Null" }
func (t NilType) Dealias() Type             { return t }
func (t NilType) Widen() Type               { return t }
func (t NilType) ClassSymbols() []Symbol    { return nil }
func (t NilType) IsPartialAnnotated() bool  { return false }

func describeType(t Type) string {
	if t == nil {
		return "<unknown>"
	}
	return fmt.Sprint(t)
}
