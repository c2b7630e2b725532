package checker

// Tree is the typed-AST node interface the checker dispatches on: one
// small struct per variant, no shared base struct, each answering Pos().
//
// The checker never parses GALA source; a real host supplies its own Tree
// nodes over its own typed AST. These shapes exist so the algorithm is
// runnable and testable from fixtures.
type Tree interface {
	Pos() Position
}

// Literal is any constant expression; the checker treats it as inert.
type Literal struct {
	P Position
}

func (t *Literal) Pos() Position { return t.P }

// Closure refers to an indexed method symbol standing in for a first-class
// function value.
type Closure struct {
	P   Position
	Sym Symbol
}

func (t *Closure) Pos() Position { return t.P }

// Ident is a bare identifier reference.
type Ident struct {
	P   Position
	Sym Symbol
}

func (t *Ident) Pos() Position { return t.P }

// This is a self-reference.
type This struct {
	P Position
}

func (t *This) Pos() Position { return t.P }

// Super is a super-reference qualified by the symbol it supers into.
type Super struct {
	P    Position
	Qual Symbol
}

func (t *Super) Pos() Position { return t.P }

// New is a constructor call `new T(args...)`. Argss keeps every parameter
// list GALA's curried-constructor syntax allows, even though indexing only
// models the final one for methods; constructors are always checked with
// force=true regardless of list count.
type New struct {
	P     Position
	Tref  Type
	Init  Symbol
	Argss [][]Tree
}

func (t *New) Pos() Position { return t.P }

// Apply is a general function application `fun(args...)`.
type Apply struct {
	P    Position
	Fun  Tree
	Args []Tree
}

func (t *Apply) Pos() Position { return t.P }

// Select is a member selection `qualifier.sym`. When Qualifier is a *This
// or *Super, the dispatcher routes to checkTermRef instead of checkSelect.
type Select struct {
	P         Position
	Qualifier Tree
	Sym       Symbol
}

func (t *Select) Pos() Position { return t.P }

// If is a conditional expression.
type If struct {
	P    Position
	Cond Tree
	Then Tree
	Else Tree
}

func (t *If) Pos() Position { return t.P }

// Assign is a field or variable assignment.
type Assign struct {
	P   Position
	Lhs Tree
	Rhs Tree
}

func (t *Assign) Pos() Position { return t.P }

// Typed wraps an expression with an explicit ascribed type; the checker
// recurses into Expr and ignores the ascription.
type Typed struct {
	P    Position
	Expr Tree
}

func (t *Typed) Pos() Position { return t.P }

// Block is a sequence of statements followed by a tail expression.
type Block struct {
	P     Position
	Stats []Tree
	Expr  Tree
}

func (t *Block) Pos() Position { return t.P }

// ValDef defines a val/var member or local. There is no separate node shape
// for a lazy val: Sym.Flags().Has(FlagLazy) distinguishes one, and the
// indexing pass and statement dispatcher both treat it specially — indexed
// with its own LatentInfo up front, then skipped as an already-registered
// def wherever the definition itself is walked as a statement.
type ValDef struct {
	P   Position
	Sym Symbol
	Rhs Tree
}

func (t *ValDef) Pos() Position { return t.P }

// DefDef defines a method. ParamLists preserves every parameter list the
// source declared; only the last is modelled during indexing.
type DefDef struct {
	P          Position
	Sym        Symbol
	ParamLists [][]Symbol
	Body       Tree
}

func (t *DefDef) Pos() Position { return t.P }

// ClassDef defines a class, including the template being checked itself
// when nested classes recurse into their own bodies.
type ClassDef struct {
	P    Position
	Sym  Symbol
	Body []Tree
}

func (t *ClassDef) Pos() Position { return t.P }
