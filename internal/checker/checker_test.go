package checker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// findKind returns the first effect of the given kind among effects (not
// recursing into Children), or nil if none is present.
func findKind(effects []Effect, kind EffectKind) Effect {
	for _, e := range effects {
		if e.Kind() == kind {
			return e
		}
	}
	return nil
}

// TestUseBeforeInit is spec scenario S1: class A { val x = y; val y = 1 }
// Expect exactly one warning: Uninit(y) at the rhs of x.
func TestUseBeforeInit(t *testing.T) {
	a := &StaticSymbol{SymName: "A"}
	x := &StaticSymbol{SymName: "x", SymOwner: a}
	y := &StaticSymbol{SymName: "y", SymOwner: a}
	a.SymDecls = []Symbol{x, y}

	tmpl := &ClassTemplate{
		Sym: a,
		Body: []Tree{
			&ValDef{Sym: x, Rhs: &Ident{Sym: y}},
			&ValDef{Sym: y, Rhs: &Literal{}},
		},
	}

	effects := NewChecker().CheckClass(tmpl)
	require.Len(t, effects, 1)
	uninit, ok := effects[0].(*Uninit)
	require.True(t, ok, "expected *Uninit, got %T", effects[0])
	assert.Equal(t, y, uninit.Sym)
}

// TestOverrideRiskPartialLeak is spec scenario S2:
// class A { foo(); def foo(): Unit = println(x); val x = 1 }
// Expect OverrideRisk(foo) at the call, and Uninit(x) inside foo's body
// wrapped as Call(foo, [Uninit(x)]).
func TestOverrideRiskPartialLeak(t *testing.T) {
	a := &StaticSymbol{SymName: "A"}
	foo := &StaticSymbol{SymName: "foo", SymOwner: a, SymFlags: FlagMethod}
	x := &StaticSymbol{SymName: "x", SymOwner: a}
	println_ := &StaticSymbol{SymName: "println"}
	a.SymDecls = []Symbol{foo, x}

	tmpl := &ClassTemplate{
		Sym: a,
		Body: []Tree{
			&Apply{Fun: &Ident{Sym: foo}},
			&DefDef{Sym: foo, Body: &Apply{Fun: &Ident{Sym: println_}, Args: []Tree{&Ident{Sym: x}}}},
			&ValDef{Sym: x, Rhs: &Literal{}},
		},
	}

	effects := NewChecker().CheckClass(tmpl)
	require.Len(t, effects, 2)

	risk, ok := effects[0].(*OverrideRisk)
	require.True(t, ok, "expected *OverrideRisk first, got %T", effects[0])
	assert.Equal(t, foo, risk.Sym)

	call, ok := effects[1].(*Call)
	require.True(t, ok, "expected *Call second, got %T", effects[1])
	assert.Equal(t, foo, call.Sym)
	require.Len(t, call.Sub, 1)
	uninit, ok := call.Sub[0].(*Uninit)
	require.True(t, ok)
	assert.Equal(t, x, uninit.Sym)
}

// TestSafeInitMethod is spec scenario S3:
// class A { foo(); @init def foo(): Unit = (); val x = 1 }
// Expect no warnings.
func TestSafeInitMethod(t *testing.T) {
	a := &StaticSymbol{SymName: "A"}
	foo := &StaticSymbol{SymName: "foo", SymOwner: a, SymFlags: FlagMethod, SymAnnotations: []Annotation{AnnoInit}}
	x := &StaticSymbol{SymName: "x", SymOwner: a}
	a.SymDecls = []Symbol{foo, x}

	tmpl := &ClassTemplate{
		Sym: a,
		Body: []Tree{
			&Apply{Fun: &Ident{Sym: foo}},
			&DefDef{Sym: foo, Body: &Literal{}},
			&ValDef{Sym: x, Rhs: &Literal{}},
		},
	}

	effects := NewChecker().CheckClass(tmpl)
	assert.Empty(t, effects)
}

// buildS4 constructs class A(@partial p: P) { sink(p); def sink(q: Q): Unit = () },
// optionally marking sink's parameter q as @partial.
func buildS4(qPartial bool) *ClassTemplate {
	ptype := &StaticSymbol{SymName: "P"}
	a := &StaticSymbol{SymName: "A"}
	p := &StaticSymbol{
		SymName:  "p",
		SymOwner: a,
		SymFlags: FlagParamAccessor,
		SymType:  NamedType{Sym: ptype, Partial: true},
	}
	sink := &StaticSymbol{SymName: "sink", SymOwner: a, SymFlags: FlagMethod}
	qAnnos := []Annotation(nil)
	if qPartial {
		qAnnos = []Annotation{AnnoPartial}
	}
	q := &StaticSymbol{SymName: "q", SymOwner: sink, SymAnnotations: qAnnos}
	sink.SymParams = []Symbol{q}

	a.SymParamAccessors = []Symbol{p}
	a.SymDecls = []Symbol{p, sink}

	return &ClassTemplate{
		Sym: a,
		Body: []Tree{
			&Apply{Fun: &Ident{Sym: sink}, Args: []Tree{&Ident{Sym: p}}},
			&DefDef{Sym: sink, ParamLists: [][]Symbol{{q}}, Body: &Literal{}},
		},
	}
}

// TestPartialArgument is spec scenario S4:
// class A(@partial p: P) { sink(p); def sink(q: Q): Unit = () }
// Expect Argument(sink, p) since q is not marked @partial. The scenario's
// wording doesn't rule out OverrideRisk(sink) also firing (unlike S1/S2/S3/
// S5/S6's explicit "one warning"/"no warnings" phrasing), so this asserts
// presence of Argument rather than an exact effect set.
func TestPartialArgument(t *testing.T) {
	tmpl := buildS4(false)
	effects := NewChecker().CheckClass(tmpl)

	arg := findKind(effects, KindArgument)
	require.NotNil(t, arg, "expected an Argument effect, got %v", effects)
	a, ok := arg.(*Argument)
	require.True(t, ok)
	assert.Equal(t, "p", a.Arg.(*Ident).Sym.Name())
}

// TestPartialArgumentSuppressedByPartialParam checks S4's follow-up: if sink
// were declared sink(@partial q: Q), no Argument warning fires.
func TestPartialArgumentSuppressedByPartialParam(t *testing.T) {
	tmpl := buildS4(true)
	effects := NewChecker().CheckClass(tmpl)

	assert.Nil(t, findKind(effects, KindArgument))
}

// TestRecursiveNew is spec scenario S5: class A { new A }
// Expect RecCreate(A).
func TestRecursiveNew(t *testing.T) {
	a := &StaticSymbol{SymName: "A"}
	tmpl := &ClassTemplate{
		Sym: a,
		Body: []Tree{
			&New{Tref: NamedType{Sym: a}},
		},
	}

	effects := NewChecker().CheckClass(tmpl)
	require.Len(t, effects, 1)
	rec, ok := effects[0].(*RecCreate)
	require.True(t, ok, "expected *RecCreate, got %T", effects[0])
	assert.Equal(t, a, rec.Cls)
}

// TestCrossAssign is spec scenario S6:
// class A(@partial p: P) { var q: P = null; q = p }
// Expect CrossAssign(q, p).
func TestCrossAssign(t *testing.T) {
	ptype := &StaticSymbol{SymName: "P"}
	a := &StaticSymbol{SymName: "A"}
	p := &StaticSymbol{
		SymName:  "p",
		SymOwner: a,
		SymFlags: FlagParamAccessor,
		SymType:  NamedType{Sym: ptype, Partial: true},
	}
	q := &StaticSymbol{SymName: "q", SymOwner: a, SymType: NamedType{Sym: ptype}}
	a.SymParamAccessors = []Symbol{p}
	a.SymDecls = []Symbol{p, q}

	tmpl := &ClassTemplate{
		Sym: a,
		Body: []Tree{
			&ValDef{Sym: q, Rhs: &Literal{}},
			&Assign{Lhs: &Ident{Sym: q}, Rhs: &Ident{Sym: p}},
		},
	}

	effects := NewChecker().CheckClass(tmpl)
	require.Len(t, effects, 1)
	cross, ok := effects[0].(*CrossAssign)
	require.True(t, ok, "expected *CrossAssign, got %T", effects[0])
	assert.Equal(t, q, cross.Lhs)
}

// TestUncheckedClassSkipped verifies the @unchecked annotation short-circuits
// analysis entirely, even over a body that would otherwise warn.
func TestUncheckedClassSkipped(t *testing.T) {
	a := &StaticSymbol{SymName: "A", SymAnnotations: []Annotation{AnnoUnchecked}}
	x := &StaticSymbol{SymName: "x", SymOwner: a}
	y := &StaticSymbol{SymName: "y", SymOwner: a}
	a.SymDecls = []Symbol{x, y}

	tmpl := &ClassTemplate{
		Sym: a,
		Body: []Tree{
			&ValDef{Sym: x, Rhs: &Ident{Sym: y}},
			&ValDef{Sym: y, Rhs: &Literal{}},
		},
	}

	assert.Empty(t, NewChecker().CheckClass(tmpl))
}

// TestForceRunsOnce: checkForce invoked twice on the same symbol in the same
// frame runs the body once. A lazy val referenced twice, where the thunk
// itself warns, should only warn once.
func TestForceRunsOnce(t *testing.T) {
	a := &StaticSymbol{SymName: "A"}
	lazyV := &StaticSymbol{SymName: "v", SymOwner: a, SymFlags: FlagLazy}
	y := &StaticSymbol{SymName: "y", SymOwner: a}
	a.SymDecls = []Symbol{lazyV, y}

	tmpl := &ClassTemplate{
		Sym: a,
		Body: []Tree{
			&ValDef{Sym: lazyV, Rhs: &Ident{Sym: y}},
			&Apply{Fun: &Ident{Sym: lazyV}}, // force once
			&Apply{Fun: &Ident{Sym: lazyV}}, // force again, cached
			&ValDef{Sym: y, Rhs: &Literal{}},
		},
	}

	effects := NewChecker().CheckClass(tmpl)
	require.Len(t, effects, 1, "expected only the Force wrapper, the bare ValDef must not also evaluate the thunk eagerly")
	force, ok := effects[0].(*Force)
	require.True(t, ok, "expected *Force, got %T", effects[0])
	assert.Equal(t, lazyV, force.Sym)
	require.Len(t, force.Sub, 1)
	uninit, ok := force.Sub[0].(*Uninit)
	require.True(t, ok)
	assert.Equal(t, y, uninit.Sym)
}

// TestLazyValDefNeverForcedProducesNoEffects: a lazy val that's declared but
// never referenced must contribute nothing, since its effects aren't
// realized until something forces it.
func TestLazyValDefNeverForcedProducesNoEffects(t *testing.T) {
	a := &StaticSymbol{SymName: "A"}
	lazyV := &StaticSymbol{SymName: "v", SymOwner: a, SymFlags: FlagLazy}
	y := &StaticSymbol{SymName: "y", SymOwner: a}
	a.SymDecls = []Symbol{lazyV, y}

	tmpl := &ClassTemplate{
		Sym: a,
		Body: []Tree{
			&ValDef{Sym: lazyV, Rhs: &Ident{Sym: y}},
			&ValDef{Sym: y, Rhs: &Literal{}},
		},
	}

	assert.Empty(t, NewChecker().CheckClass(tmpl))
}

// TestSafeOnPartialSelfTypeExemption: reading another class B's field x from
// a partial A is unsafe in general, but is exempted when A's self-type
// subclasses B (the "self: C" pattern where C extends B).
func TestSafeOnPartialSelfTypeExemption(t *testing.T) {
	b := &StaticSymbol{SymName: "B"}
	x := &StaticSymbol{SymName: "x", SymOwner: b}
	b.SymDecls = []Symbol{x}

	cls := &StaticSymbol{SymName: "C", SymBaseClasses: []Symbol{b}}

	ptype := &StaticSymbol{SymName: "P"}
	a := &StaticSymbol{SymName: "A"}
	p := &StaticSymbol{
		SymName:  "p",
		SymOwner: a,
		SymFlags: FlagParamAccessor,
		SymType:  NamedType{Sym: ptype, Partial: true},
	}
	a.SymParamAccessors = []Symbol{p}
	a.SymDecls = []Symbol{p}

	ref := &Ident{Sym: x}

	without := NewChecker()
	without.env = without.seed(a)
	res := without.checkNonLexicalRef(ref, x)
	require.Len(t, res.Effects, 1, "expected a Member warning with no self-type exemption")
	_, ok := res.Effects[0].(*Member)
	assert.True(t, ok, "expected *Member, got %T", res.Effects[0])

	a.SymSelfClasses = []Symbol{cls}
	with := NewChecker()
	with.env = with.seed(a)
	res = with.checkNonLexicalRef(ref, x)
	assert.Empty(t, res.Effects, "self-type subclassing x's owner should exempt the non-lexical read")
}

// TestAnalysisNeverMutatesInput: analyzing a tree never mutates the input
// tree. Re-checking the same template twice must produce identical effect
// counts.
func TestAnalysisNeverMutatesInput(t *testing.T) {
	a := &StaticSymbol{SymName: "A"}
	foo := &StaticSymbol{SymName: "foo", SymOwner: a, SymFlags: FlagMethod}
	x := &StaticSymbol{SymName: "x", SymOwner: a}
	a.SymDecls = []Symbol{foo, x}

	tmpl := &ClassTemplate{
		Sym: a,
		Body: []Tree{
			&Apply{Fun: &Ident{Sym: foo}},
			&DefDef{Sym: foo, Body: &Ident{Sym: x}},
			&ValDef{Sym: x, Rhs: &Literal{}},
		},
	}

	first := NewChecker().CheckClass(tmpl)
	second := NewChecker().CheckClass(tmpl)
	assert.Equal(t, len(first), len(second))
}

// buildNewWithConstructorParam constructs
// class A(@partial p: P) { new B(p) }, where B's primary constructor takes
// one parameter r: R, optionally declared @partial (rPartial), so the
// Argument check against a primary-constructor parameter's partial-ness
// has to read it off the parameter's declared type rather than an
// annotation on the parameter symbol itself.
func buildNewWithConstructorParam(rPartial bool) *ClassTemplate {
	rtype := &StaticSymbol{SymName: "R"}
	b := &StaticSymbol{SymName: "B"}
	r := &StaticSymbol{
		SymName:          "r",
		SymOwner:         b,
		SymType:          NamedType{Sym: rtype, Partial: rPartial},
		ConstructorParam: true,
	}
	initB := &StaticSymbol{SymName: "<init>", SymOwner: b, SymFlags: FlagMethod, SymParams: []Symbol{r}}

	ptype := &StaticSymbol{SymName: "P"}
	a := &StaticSymbol{SymName: "A"}
	p := &StaticSymbol{
		SymName:  "p",
		SymOwner: a,
		SymFlags: FlagParamAccessor,
		SymType:  NamedType{Sym: ptype, Partial: true},
	}
	a.SymParamAccessors = []Symbol{p}
	a.SymDecls = []Symbol{p}

	return &ClassTemplate{
		Sym: a,
		Body: []Tree{
			&New{
				Tref:  ClassType{Syms: []Symbol{b}},
				Init:  initB,
				Argss: [][]Tree{{&Ident{Sym: p}}},
			},
		},
	}
}

// TestConstructorParamPartialTypeFlagsArgument checks that a partial value
// passed to a primary-constructor parameter not declared @partial is
// flagged, even though the declaration carries no Annotations — the
// partial-ness of a constructor parameter lives on its declared type.
func TestConstructorParamPartialTypeFlagsArgument(t *testing.T) {
	tmpl := buildNewWithConstructorParam(false)
	effects := NewChecker().CheckClass(tmpl)

	arg := findKind(effects, KindArgument)
	require.NotNil(t, arg, "expected an Argument effect, got %v", effects)
}

// TestConstructorParamPartialTypeExemptsArgument checks the converse: when
// B's constructor parameter is itself declared @partial (on its type),
// passing a partial value to it is exempt.
func TestConstructorParamPartialTypeExemptsArgument(t *testing.T) {
	tmpl := buildNewWithConstructorParam(true)
	effects := NewChecker().CheckClass(tmpl)

	assert.Nil(t, findKind(effects, KindArgument))
}
