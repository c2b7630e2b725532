package checker

// ClassTemplate is the unit the host submits for checking: a class symbol
// plus the sequence of statements forming its body.
type ClassTemplate struct {
	Sym  Symbol
	Body []Tree
}

// Checker is one analyzer instance. It owns its entire mutable state (the
// environment stack and the recursion guard); nothing is shared across
// class checks, so a host may run many Checkers concurrently as long as
// each gets its own (see pool.go).
type Checker struct {
	env      *Env
	checking map[Symbol]bool
	debug    func(format string, args ...any)
}

// NewChecker returns a fresh analyzer instance with no debug trace.
func NewChecker() *Checker {
	return &Checker{checking: make(map[Symbol]bool)}
}

// SetDebug installs a trace sink for latent-force and recursion-guard
// decisions.
func (c *Checker) SetDebug(f func(format string, args ...any)) {
	c.debug = f
}

func (c *Checker) debugf(format string, args ...any) {
	if c.debug != nil {
		c.debug(format, args...)
	}
}

// CheckClass runs the full analysis over tmpl and returns the accumulated
// effects in discovery order. A class annotated @unchecked is skipped
// entirely.
func (c *Checker) CheckClass(tmpl *ClassTemplate) []Effect {
	if HasAnnotation(tmpl.Sym, AnnoUnchecked) {
		return nil
	}
	c.env = c.seed(tmpl.Sym)
	c.index(c.env, tmpl.Body)
	return c.checkStats(tmpl.Body).Effects
}

// Check is the host-facing entry point: it runs CheckClass, renders the
// effects through catalog, and returns tmpl.Body unchanged — analysis
// never rewrites its input.
func Check(tmpl *ClassTemplate, catalog *EffectCatalog) ([]Tree, []Diagnostic) {
	c := NewChecker()
	effects := c.CheckClass(tmpl)
	return tmpl.Body, Render(effects, catalog)
}

// seed constructs the class-seed environment for cls: every non-deferred,
// non-lazy, non-accessor field starts not-initialized, and every @partial
// constructor/base-class member starts partial, alongside cls itself.
func (c *Checker) seed(cls Symbol) *Env {
	top := NewTopEnv(cls)
	frame := top.Push()

	partial := newSymbolSet()
	for _, a := range cls.ParamAccessors() {
		if a.IsSetter() {
			continue
		}
		if a.DeclaredType() != nil && a.DeclaredType().IsPartialAnnotated() {
			partial.add(a)
		}
	}
	for _, base := range cls.BaseClasses() {
		for _, d := range base.Decls() {
			if d.Flags().Has(FlagDeferred) {
				continue
			}
			if d.DeclaredType() != nil && d.DeclaredType().IsPartialAnnotated() {
				partial.add(d)
			}
		}
	}
	partial.add(cls)

	nonInit := newSymbolSet()
	for _, d := range cls.Decls() {
		f := d.Flags()
		if f.Has(FlagLazy) || f.Has(FlagDeferred) || f.Has(FlagParamAccessor) || f.Has(FlagMethod) {
			continue
		}
		nonInit.add(d)
	}

	for sym := range nonInit {
		frame.SeedNonInit(sym)
	}
	for sym := range partial {
		frame.SeedPartial(sym)
	}
	return frame
}

// index registers every local definition in stats with the frame that
// owns it, binding a LatentInfo for methods, lazy vals, and nested classes.
// It is run once for a class body and again, fresh, every time checkBlock
// pushes a new frame.
func (c *Checker) index(frame *Env, stats []Tree) {
	for _, st := range stats {
		switch t := st.(type) {
		case *DefDef:
			if t.Sym.Flags().Has(FlagAccessor) {
				continue
			}
			frame.AddLocal(t.Sym)
			frame.BindLatent(t.Sym, c.methodLatent(t, frame.DeepClone()))
		case *ValDef:
			frame.AddLocal(t.Sym)
			if t.Sym.Flags().Has(FlagLazy) {
				frame.BindLatent(t.Sym, c.lazyLatent(t, frame.DeepClone()))
			}
		case *ClassDef:
			frame.AddLocal(t.Sym)
			frame.BindLatent(t.Sym, c.classLatent(t, frame.DeepClone()))
		}
	}
}

// lastParamList returns the final parameter list, or nil for a
// zero-arity/zero-list method. Earlier lists are dropped: a curried
// method's first lists never see their argument partial-ness propagated
// in, only the last.
func lastParamList(lists [][]Symbol) []Symbol {
	if len(lists) == 0 {
		return nil
	}
	return lists[len(lists)-1]
}

func (c *Checker) methodLatent(def *DefDef, snapshot *Env) *LatentInfo {
	params := lastParamList(def.ParamLists)
	return &LatentInfo{
		Kind:      LatentMethod,
		Sym:       def.Sym,
		Paramless: len(params) == 0,
		Force: func(argInfo func(int) ValueInfo) Res {
			return c.withGuard(def.Sym, func() Res {
				return c.withEnv(snapshot.Push(), func() Res {
					for i, p := range params {
						info := argInfo(i)
						c.env.AddLocal(p)
						if info.Partial {
							c.env.MarkPartial(p)
						}
						if info.Latent != nil {
							c.env.BindLatent(p, info.Latent)
						}
					}
					return c.check(def.Body)
				})
			})
		},
	}
}

func (c *Checker) lazyLatent(vdef *ValDef, snapshot *Env) *LatentInfo {
	return &LatentInfo{
		Kind: LatentLazy,
		Sym:  vdef.Sym,
		Force: func(argInfo func(int) ValueInfo) Res {
			return c.withGuard(vdef.Sym, func() Res {
				return c.withEnv(snapshot, func() Res {
					return c.check(vdef.Rhs)
				})
			})
		},
	}
}

func (c *Checker) classLatent(cdef *ClassDef, snapshot *Env) *LatentInfo {
	return &LatentInfo{
		Kind: LatentClass,
		Sym:  cdef.Sym,
		Force: func(argInfo func(int) ValueInfo) Res {
			return c.withGuard(cdef.Sym, func() Res {
				return c.withEnv(snapshot.Push(), func() Res {
					c.index(c.env, cdef.Body)
					return c.checkStats(cdef.Body)
				})
			})
		},
	}
}

// withGuard runs fn unless sym is already being checked on this path, in
// which case it short-circuits to a neutral Res. This breaks infinite
// recursion on mutually-referencing lazy vals, methods, and nested classes.
func (c *Checker) withGuard(sym Symbol, fn func() Res) Res {
	if c.checking[sym] {
		c.debugf("init.println: recursion guard hit on %s, short-circuiting", sym.Name())
		return EmptyRes()
	}
	c.checking[sym] = true
	defer delete(c.checking, sym)
	return fn()
}

// withEnv runs fn with c.env temporarily set to env, restoring the
// previous environment afterward. Frames are shared by pointer up the
// chain, so mutations fn makes to symbols owned by an outer frame persist
// after env itself is discarded.
func (c *Checker) withEnv(env *Env, fn func() Res) Res {
	prev := c.env
	c.env = env
	res := fn()
	c.env = prev
	return res
}

// checkStats folds left across stats, accumulating effects and discarding
// per-statement value info; earlier effects are never dropped.
func (c *Checker) checkStats(stats []Tree) Res {
	var effects []Effect
	for _, st := range stats {
		r := c.check(st)
		effects = append(effects, r.Effects...)
	}
	return Res{Effects: effects}
}

func (c *Checker) checkBlock(b *Block) Res {
	return c.withEnv(c.env.Push(), func() Res {
		c.index(c.env, b.Stats)
		stmts := c.checkStats(b.Stats)
		tail := c.check(b.Expr)
		return Res{Effects: append(stmts.Effects, tail.Effects...), Value: tail.Value}
	})
}

// check is the tree dispatcher.
func (c *Checker) check(t Tree) Res {
	if t == nil {
		return EmptyRes()
	}
	switch n := t.(type) {
	case *Literal:
		return EmptyRes()
	case *Closure:
		return Res{Value: ValueInfo{Latent: c.env.LatentInfoFor(n.Sym)}}
	case *Ident:
		return c.checkTermRef(t)
	case *Select:
		if isThisOrSuper(n.Qualifier) {
			return c.checkTermRef(t)
		}
		return c.checkSelect(n)
	case *This:
		return c.checkThis()
	case *Super:
		return c.checkSuperRef(n)
	case *New:
		return c.checkNew(n)
	case *Apply:
		return c.checkApply(n)
	case *If:
		return c.checkIf(n)
	case *Assign:
		return c.checkAssign(n)
	case *Typed:
		return c.check(n.Expr)
	case *Block:
		return c.checkBlock(n)
	case *ValDef:
		if n.Sym.Flags().Has(FlagLazy) {
			// Already registered by index with a LatentInfo; walking the
			// definition itself as a statement has no further effect,
			// the body only runs when something forces it.
			return EmptyRes()
		}
		return c.checkValDef(n)
	case *DefDef, *ClassDef:
		// Already registered by index; walking the definition itself
		// as a statement has no further effect.
		return EmptyRes()
	default:
		return EmptyRes()
	}
}

func isThisOrSuper(t Tree) bool {
	switch t.(type) {
	case *This, *Super:
		return true
	}
	return false
}

// calleeSymbol extracts the symbol a reference tree denotes, when it is
// syntactically an Ident, Select, or Closure. Used wherever a check needs
// "the symbol this subtree names" for diagnostics or parameter lookups.
func calleeSymbol(t Tree) Symbol {
	switch n := t.(type) {
	case *Ident:
		return n.Sym
	case *Select:
		return n.Sym
	case *Closure:
		return n.Sym
	}
	return nil
}

func (c *Checker) checkThis() Res {
	partial := c.env.IsPartial(c.env.CurrentClass()) && !c.env.Initialized()
	return Res{Value: ValueInfo{Partial: partial}}
}

func (c *Checker) checkSuperRef(n *Super) Res {
	partial := c.env.IsPartial(n.Qual) && !c.env.Initialized()
	return Res{Value: ValueInfo{Partial: partial}}
}

// checkTermRef classifies the reference by localRef, then dispatches to
// the lexical or non-lexical handling.
func (c *Checker) checkTermRef(t Tree) Res {
	sym, lexical := c.localRef(t)
	if sym == nil {
		return EmptyRes()
	}
	if lexical {
		return c.checkLexicalRef(t, sym)
	}
	return c.checkNonLexicalRef(t, sym)
}

// localRef classifies a reference as lexical or non-lexical. A bare
// identifier is always a genuine local (in a resolved/typed tree, any
// other member access is already desugared to an explicit Select);
// `this.x` and `super.x` are lexical by construction too. The non-lexical
// branch exists for a Select whose qualifier is neither `this` nor
// `super` but that the dispatcher still routed here rather than to
// checkSelect — defensive, since the dispatcher in this module never
// produces that shape, but kept so a host with a richer desugaring still
// gets safeOnPartial's guarded treatment instead of checkSelect's
// unconditional one.
func (c *Checker) localRef(t Tree) (Symbol, bool) {
	switch n := t.(type) {
	case *Ident:
		return n.Sym, true
	case *Select:
		if isThisOrSuper(n.Qualifier) {
			return n.Sym, true
		}
		return n.Sym, false
	}
	return nil, false
}

func (c *Checker) checkLexicalRef(t Tree, sym Symbol) Res {
	if c.env.IsNotInit(sym) {
		return EffectRes(&Uninit{P: t.Pos(), Sym: sym})
	}
	if sym.Flags().Has(FlagLazy) {
		return c.checkForce(sym, t)
	}
	if sym.Flags().Has(FlagMethod) {
		var effects []Effect
		if !HasAnnotation(sym, AnnoInit) && !sym.IsEffectivelyFinal() && !sym.IsDefaultGetter() {
			effects = append(effects, &OverrideRisk{P: t.Pos(), Sym: sym})
		}
		latent := c.env.LatentInfoFor(sym)
		if latent != nil && latent.Paramless {
			res := latent.Force(neutralArgInfo)
			if len(res.Effects) > 0 {
				effects = append(effects, &Call{P: t.Pos(), Sym: sym, Sub: res.Effects})
			}
			return Res{Effects: effects, Value: ValueInfo{Partial: c.env.IsPartial(sym)}}
		}
		return Res{Effects: effects, Value: ValueInfo{Partial: c.env.IsPartial(sym), Latent: latent}}
	}
	if sym.Flags().Has(FlagDeferred) && !HasAnnotation(sym, AnnoInit) && sym.Owner() == c.env.CurrentClass() {
		return Res{
			Effects: []Effect{&UseAbstractDef{P: t.Pos(), Sym: sym}},
			Value:   ValueInfo{Partial: c.env.IsPartial(sym), Latent: c.env.LatentInfoFor(sym)},
		}
	}
	return Res{Value: ValueInfo{Partial: c.env.IsPartial(sym), Latent: c.env.LatentInfoFor(sym)}}
}

func (c *Checker) checkNonLexicalRef(t Tree, sym Symbol) Res {
	prefixPartial := c.env.IsPartial(c.env.CurrentClass()) && !c.env.Initialized()
	if prefixPartial && !c.safeOnPartial(sym) {
		return EffectRes(&Member{P: t.Pos(), Sym: sym, Obj: t})
	}
	return Res{Value: ValueInfo{Partial: c.env.IsPartial(sym)}}
}

// safeOnPartial decides whether reading sym through a partial object
// prefix is safe: the current class (or its self-type) must be a subclass
// of sym's owner, and sym itself must be a plain field with no partial
// constructor params, an @init/@partial member, a default-argument
// accessor, or any member read after full initialization when the current
// class is final.
func (c *Checker) safeOnPartial(sym Symbol) bool {
	owner := sym.Owner()
	if owner == nil {
		return false
	}
	cur := c.env.CurrentClass()
	subclass := cur.IsSubClassOf(owner)
	if !subclass {
		for _, self := range cur.SelfClassSymbols() {
			if self.IsSubClassOf(owner) {
				subclass = true
				break
			}
		}
	}
	if !subclass {
		return false
	}
	f := sym.Flags()
	if !f.Has(FlagMethod) && !f.Has(FlagLazy) && !f.Has(FlagDeferred) && ownerHasNoPartialParams(owner) {
		return true
	}
	if HasAnnotation(sym, AnnoInit) || HasAnnotation(sym, AnnoPartial) {
		return true
	}
	if sym.IsDefaultGetter() {
		return true
	}
	if c.env.Initialized() && cur.Flags().Has(FlagFinal) {
		return true
	}
	return false
}

func ownerHasNoPartialParams(owner Symbol) bool {
	for _, a := range owner.ParamAccessors() {
		if a.DeclaredType() != nil && a.DeclaredType().IsPartialAnnotated() {
			return false
		}
	}
	return true
}

// checkForce runs a lazy val's thunk at most once per frame: a cache hit
// reports the value's already-known partial/latent facts instead of
// re-running the body.
func (c *Checker) checkForce(sym Symbol, t Tree) Res {
	if c.env.IsForced(sym) {
		c.debugf("init.println: %s already forced in this frame, using cached value", sym.Name())
		return Res{Value: ValueInfo{Partial: c.env.IsPartial(sym), Latent: c.env.LatentInfoFor(sym)}}
	}
	c.env.MarkForced(sym)
	latent := c.env.LatentInfoFor(sym)
	if latent == nil {
		return EmptyRes()
	}
	c.debugf("init.println: forcing %s: %s", sym.Name(), describeType(sym.DeclaredType()))
	res := latent.Force(neutralArgInfo)
	if res.Value.Partial {
		c.env.MarkPartial(sym)
	}
	// Rebind sym's latent to whatever the thunk's value itself carries
	// (e.g. a method reference), even when that is nil: once forced, a
	// cache hit must report the value's own latent-ness, not re-offer the
	// original thunk for checkApply to force all over again.
	c.env.BindLatent(sym, res.Value.Latent)
	value := ValueInfo{Partial: res.Value.Partial, Latent: res.Value.Latent}
	if len(res.Effects) > 0 {
		return Res{Effects: []Effect{&Force{P: t.Pos(), Sym: sym, Sub: res.Effects}}, Value: value}
	}
	return Res{Value: value}
}

// checkParams checks a call's argument expressions and, when force is
// true, flags any argument whose value is partial or latently unsafe
// against a parameter that isn't itself @partial. sym names the callee,
// for Argument's diagnostic; params is the callee's declared parameter
// symbols (nil when unknown, treated conservatively as never @partial).
func (c *Checker) checkParams(sym Symbol, params []Symbol, args []Tree, force bool) ([]Effect, []ValueInfo) {
	var effects []Effect
	argInfos := make([]ValueInfo, len(args))
	for i, arg := range args {
		res := c.check(arg)
		effects = append(effects, res.Effects...)
		argInfos[i] = res.Value
		if !force {
			continue
		}
		var param Symbol
		if i < len(params) {
			param = params[i]
		}
		paramPartial := param != nil && isParamPartial(param)
		if res.Value.Latent != nil {
			sub := res.Value.Latent.Force(neutralArgInfo)
			if len(sub.Effects) > 0 && !paramPartial {
				effects = append(effects, &Latent{P: arg.Pos(), Tree: arg, Sub: sub.Effects})
			}
		}
		if res.Value.Partial && !paramPartial {
			effects = append(effects, &Argument{P: arg.Pos(), Fun: sym, Arg: arg})
		}
	}
	return effects, argInfos
}

// isParamPartial reports whether param is declared @partial. A primary
// constructor parameter carries that annotation on its declared type
// (`A(@partial p: P)`), while a method parameter carries it directly as an
// annotation on the parameter symbol (`def sink(@partial q: Q)`).
func isParamPartial(param Symbol) bool {
	if HasAnnotation(param, AnnoPartial) {
		return true
	}
	if param.IsConstructorParam() && param.DeclaredType() != nil {
		return param.DeclaredType().IsPartialAnnotated()
	}
	return false
}

// checkApply checks a call. Argument-vs-parameter partial safety always
// runs at the call site: whether or not fun resolves to an inspectable
// latent body, the caller-visible parameter annotations are the contract
// the call must honor. When fun is additionally latent, its body is
// forced with the argument ValueInfos on top of that, and any effects it
// produces are wrapped in a single Latent(tree, ...).
func (c *Checker) checkApply(n *Apply) Res {
	funRes := c.check(n.Fun)
	funLatent := funRes.Value.Latent
	funSym := calleeSymbol(n.Fun)
	var params []Symbol
	if funSym != nil {
		params = funSym.Params()
	}
	paramEffects, argInfos := c.checkParams(funSym, params, n.Args, true)
	effects := append(append([]Effect{}, funRes.Effects...), paramEffects...)
	if funLatent == nil {
		return Res{Effects: effects, Value: ValueInfo{}}
	}
	sub := funLatent.Force(func(i int) ValueInfo {
		if i < len(argInfos) {
			return argInfos[i]
		}
		return ValueInfo{}
	})
	if len(sub.Effects) > 0 {
		effects = append(effects, &Latent{P: n.Pos(), Tree: n, Sub: sub.Effects})
	}
	return Res{Effects: effects, Value: sub.Value}
}

// checkNew checks a constructor call: `new A(...)` flags a recursive
// construction when A is the class currently being built, and otherwise
// flags the construction as unsafe when it happens on a partial prefix
// and the target init isn't itself safe on one.
func (c *Checker) checkNew(n *New) Res {
	initSym := n.Init
	var params []Symbol
	if initSym != nil {
		params = initSym.Params()
	}
	var effects []Effect
	for _, args := range n.Argss {
		argEffects, _ := c.checkParams(initSym, params, args, true)
		effects = append(effects, argEffects...)
	}

	clsSym := classSymbolOf(n.Tref)
	if clsSym != nil && clsSym == c.env.CurrentClass() {
		effects = append(effects, &RecCreate{P: n.Pos(), Cls: clsSym})
		return Res{Effects: effects}
	}

	prefixPartial := c.env.IsPartial(c.env.CurrentClass()) && !c.env.Initialized()
	if !prefixPartial || (initSym != nil && c.safeOnPartial(initSym)) {
		return Res{Effects: effects}
	}

	if initSym == nil || !c.env.Owns(initSym) {
		effects = append(effects, &PartialNew{P: n.Pos(), Prefix: n, Cls: clsSym})
		return Res{Effects: effects, Value: ValueInfo{Partial: true}}
	}

	classLatent := c.env.LatentInfoFor(clsSym)
	if classLatent != nil {
		sub := classLatent.Force(neutralArgInfo)
		if len(sub.Effects) > 0 {
			effects = append(effects, &Instantiate{P: n.Pos(), Cls: clsSym, Sub: sub.Effects})
		}
	}
	return Res{Effects: effects, Value: ValueInfo{Partial: true}}
}

func classSymbolOf(t Type) Symbol {
	if t == nil {
		return nil
	}
	syms := t.Dealias().ClassSymbols()
	if len(syms) == 0 {
		return nil
	}
	return syms[0]
}

// checkSelect checks a qualified reference `e.x` where e is not `this` or
// `super`. Unlike checkTermRef's non-lexical path, this unconditionally
// emits Member when the qualifier is partial, rather than running it
// through safeOnPartial's exemptions.
func (c *Checker) checkSelect(n *Select) Res {
	qualRes := c.check(n.Qualifier)
	if qualRes.Value.Partial {
		return Res{
			Effects: append(qualRes.Effects, &Member{P: n.Pos(), Sym: n.Sym, Obj: n.Qualifier}),
			Value:   ValueInfo{Partial: c.env.IsPartial(n.Sym)},
		}
	}
	return Res{Effects: qualRes.Effects, Value: ValueInfo{Partial: c.env.IsPartial(n.Sym)}}
}

// checkIf checks cond, then then and else against independent clones of
// the environment, then joins the two branch environments back together
// so effects downstream of the `if` see the conservative union of both.
func (c *Checker) checkIf(n *If) Res {
	condRes := c.check(n.Cond)
	clone := c.env.DeepClone()
	thenRes := c.check(n.Then)
	afterThen := c.env
	c.env = clone
	elseRes := c.check(n.Else)
	afterElse := c.env
	c.env = afterThen
	c.env.Join(afterElse)
	joined := thenRes.Join(elseRes)
	return Res{
		Effects: append(append([]Effect{}, condRes.Effects...), joined.Effects...),
		Value:   joined.Value,
	}
}

// checkValDef checks a non-lazy val/var definition's right-hand side and
// updates the environment to reflect the symbol's initialized, partial,
// and latent state.
func (c *Checker) checkValDef(vdef *ValDef) Res {
	res := c.check(vdef.Rhs)
	if vdef.Rhs != nil {
		c.env.MarkInit(vdef.Sym)
		if res.Value.Partial {
			if c.env.Initialized() {
				c.env.MarkInitialized()
			} else {
				c.env.MarkPartial(vdef.Sym)
			}
		}
		if res.Value.Latent != nil {
			c.env.BindLatent(vdef.Sym, res.Value.Latent)
		}
	}
	return Res{Effects: res.Effects}
}

// checkAssign checks an assignment. A lexical target (a local, or a
// field through `this`) updates the environment directly; anything else
// evaluates its prefix and flags a CrossAssign when a partial value would
// leak across the assignment.
func (c *Checker) checkAssign(n *Assign) Res {
	rhsRes := c.check(n.Rhs)
	lhsSym, lhsLexical := c.assignTarget(n.Lhs)
	if lhsSym != nil && lhsLexical {
		wasUninit := c.env.IsNotInit(lhsSym)
		wasPartial := c.env.IsPartial(lhsSym)
		if !rhsRes.Value.Partial || wasPartial || wasUninit {
			if wasUninit {
				c.env.MarkInit(lhsSym)
			}
			if rhsRes.Value.Partial {
				c.env.MarkPartial(lhsSym)
			} else {
				c.env.UnmarkPartial(lhsSym)
			}
			return Res{Effects: rhsRes.Effects}
		}
		return Res{Effects: append(rhsRes.Effects, &CrossAssign{P: n.Pos(), Lhs: lhsSym, Rhs: n.Rhs})}
	}

	prefixRes := c.checkAssignPrefix(n.Lhs)
	effects := append(append([]Effect{}, rhsRes.Effects...), prefixRes.Effects...)
	if rhsRes.Value.Partial && !prefixRes.Value.Partial {
		sym := calleeSymbol(n.Lhs)
		effects = append(effects, &CrossAssign{P: n.Pos(), Lhs: sym, Rhs: n.Rhs})
	}
	return Res{Effects: effects}
}

// assignTarget classifies an Assign's lhs the way localRef does, but
// restricted to the two shapes that count as a lexical assignment target:
// a bare Ident or a `this.x` select.
func (c *Checker) assignTarget(t Tree) (Symbol, bool) {
	switch n := t.(type) {
	case *Ident:
		return n.Sym, true
	case *Select:
		if _, ok := n.Qualifier.(*This); ok {
			return n.Sym, true
		}
	}
	return nil, false
}

// checkAssignPrefix evaluates the qualifier of a non-lexical assignment
// target.
func (c *Checker) checkAssignPrefix(t Tree) Res {
	switch n := t.(type) {
	case *Select:
		return c.check(n.Qualifier)
	default:
		return EmptyRes()
	}
}
