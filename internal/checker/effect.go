package checker

// EffectKind names one of the effect cases, used to look a rendering
// template up in an EffectCatalog.
type EffectKind int

const (
	KindUninit EffectKind = iota
	KindOverrideRisk
	KindUseAbstractDef
	KindMember
	KindCrossAssign
	KindArgument
	KindPartialNew
	KindCall
	KindForce
	KindLatent
	KindInstantiate
	KindRecCreate
)

func (k EffectKind) String() string {
	switch k {
	case KindUninit:
		return "Uninit"
	case KindOverrideRisk:
		return "OverrideRisk"
	case KindUseAbstractDef:
		return "UseAbstractDef"
	case KindMember:
		return "Member"
	case KindCrossAssign:
		return "CrossAssign"
	case KindArgument:
		return "Argument"
	case KindPartialNew:
		return "PartialNew"
	case KindCall:
		return "Call"
	case KindForce:
		return "Force"
	case KindLatent:
		return "Latent"
	case KindInstantiate:
		return "Instantiate"
	case KindRecCreate:
		return "RecCreate"
	default:
		return "Effect"
	}
}

// Effect is the tagged-variant type for a checker warning: each case
// carries a source position and enough context to render a diagnostic.
// Each case is its own small struct implementing this interface rather
// than one struct with optional fields.
type Effect interface {
	Pos() Position
	Kind() EffectKind
	// Args returns the values an EffectCatalog template substitutes into
	// this effect's message, in template order.
	Args() []string
	// Children returns nested sub-effects for the tree-shaped cases
	// (Call, Force, Latent, Instantiate); nil for leaf cases.
	Children() []Effect
}

// Uninit is a read of a not-yet-initialized field.
type Uninit struct {
	P   Position
	Sym Symbol
}

func (e *Uninit) Pos() Position      { return e.P }
func (e *Uninit) Kind() EffectKind   { return KindUninit }
func (e *Uninit) Args() []string     { return []string{e.Sym.Name()} }
func (e *Uninit) Children() []Effect { return nil }

// OverrideRisk is a call to an overridable non-@init method during
// construction.
type OverrideRisk struct {
	P   Position
	Sym Symbol
}

func (e *OverrideRisk) Pos() Position      { return e.P }
func (e *OverrideRisk) Kind() EffectKind   { return KindOverrideRisk }
func (e *OverrideRisk) Args() []string     { return []string{e.Sym.Name()} }
func (e *OverrideRisk) Children() []Effect { return nil }

// UseAbstractDef is a use of an abstract declaration not marked @init.
type UseAbstractDef struct {
	P   Position
	Sym Symbol
}

func (e *UseAbstractDef) Pos() Position      { return e.P }
func (e *UseAbstractDef) Kind() EffectKind   { return KindUseAbstractDef }
func (e *UseAbstractDef) Args() []string     { return []string{e.Sym.Name()} }
func (e *UseAbstractDef) Children() []Effect { return nil }

// Member is a selection on a partial value not known safe.
type Member struct {
	P   Position
	Sym Symbol
	Obj Tree
}

func (e *Member) Pos() Position      { return e.P }
func (e *Member) Kind() EffectKind   { return KindMember }
func (e *Member) Args() []string     { return []string{e.Sym.Name()} }
func (e *Member) Children() []Effect { return nil }

// CrossAssign is assigning a partial rhs into a non-partial lhs.
type CrossAssign struct {
	P   Position
	Lhs Symbol
	Rhs Tree
}

func (e *CrossAssign) Pos() Position      { return e.P }
func (e *CrossAssign) Kind() EffectKind   { return KindCrossAssign }
func (e *CrossAssign) Args() []string     { return []string{e.Lhs.Name()} }
func (e *CrossAssign) Children() []Effect { return nil }

// Argument is passing a partial value where a non-partial one is expected.
type Argument struct {
	P   Position
	Fun Symbol
	Arg Tree
}

func (e *Argument) Pos() Position      { return e.P }
func (e *Argument) Kind() EffectKind   { return KindArgument }
func (e *Argument) Args() []string     { return []string{e.Fun.Name()} }
func (e *Argument) Children() []Effect { return nil }

// PartialNew is constructing an inner class whose outer is partial, where
// the constructor symbol is not lexically in scope.
type PartialNew struct {
	P      Position
	Prefix Tree
	Cls    Symbol
}

func (e *PartialNew) Pos() Position      { return e.P }
func (e *PartialNew) Kind() EffectKind   { return KindPartialNew }
func (e *PartialNew) Args() []string     { return []string{e.Cls.Name()} }
func (e *PartialNew) Children() []Effect { return nil }

// Call is a method call whose body produces effects.
type Call struct {
	P   Position
	Sym Symbol
	Sub []Effect
}

func (e *Call) Pos() Position      { return e.P }
func (e *Call) Kind() EffectKind   { return KindCall }
func (e *Call) Args() []string     { return []string{e.Sym.Name()} }
func (e *Call) Children() []Effect { return e.Sub }

// Force is forcing a lazy val whose thunk produces effects.
type Force struct {
	P   Position
	Sym Symbol
	Sub []Effect
}

func (e *Force) Pos() Position      { return e.P }
func (e *Force) Kind() EffectKind   { return KindForce }
func (e *Force) Args() []string     { return []string{e.Sym.Name()} }
func (e *Force) Children() []Effect { return e.Sub }

// Latent is a latent value (closure/method result) evaluated to an unsafe
// body.
type Latent struct {
	P    Position
	Tree Tree
	Sub  []Effect
}

func (e *Latent) Pos() Position      { return e.P }
func (e *Latent) Kind() EffectKind   { return KindLatent }
func (e *Latent) Args() []string     { return nil }
func (e *Latent) Children() []Effect { return e.Sub }

// Instantiate is constructing an in-scope inner class whose body is
// unsafe.
type Instantiate struct {
	P   Position
	Cls Symbol
	Sub []Effect
}

func (e *Instantiate) Pos() Position      { return e.P }
func (e *Instantiate) Kind() EffectKind   { return KindInstantiate }
func (e *Instantiate) Args() []string     { return []string{e.Cls.Name()} }
func (e *Instantiate) Children() []Effect { return e.Sub }

// RecCreate is recursive construction of the currently-constructing class.
type RecCreate struct {
	P   Position
	Cls Symbol
}

func (e *RecCreate) Pos() Position      { return e.P }
func (e *RecCreate) Kind() EffectKind   { return KindRecCreate }
func (e *RecCreate) Args() []string     { return []string{e.Cls.Name()} }
func (e *RecCreate) Children() []Effect { return nil }
