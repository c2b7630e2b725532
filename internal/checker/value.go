package checker

// ValueInfo is the pair (partial, latent) attached to every checked
// expression's result.
type ValueInfo struct {
	Partial bool
	Latent  *LatentInfo
}

// LatentKind tags what a LatentInfo defers: a method body, a lazy-val
// thunk, or a nested class body. A tagged variant in place of first-class
// closures over the three deferred-analysis shapes.
type LatentKind int

const (
	LatentMethod LatentKind = iota
	LatentLazy
	LatentClass
)

func (k LatentKind) String() string {
	switch k {
	case LatentMethod:
		return "method"
	case LatentLazy:
		return "lazy"
	case LatentClass:
		return "class"
	default:
		return "latent"
	}
}

// LatentInfo is a stored continuation representing the deferred analysis
// of a method body, lazy-val thunk, or class body. Force takes a function
// supplying caller-side knowledge of each positional parameter; a caller
// with no knowledge passes a function returning the zero ValueInfo.
//
// Kind and Sym are metadata for tracing and the recursion guard; the
// captured defining-frame snapshot lives inside Force's closure, built at
// indexing time over a DeepClone of the indexing-time env — a snapshot,
// never a live reference, so forcing later can't observe env mutations
// that happened after indexing.
type LatentInfo struct {
	Kind LatentKind
	Sym  Symbol
	// Paramless is true for a LatentMethod whose modelled (final)
	// parameter list is empty, letting checkTermRef decide whether to
	// invoke the latent immediately or hand it back to the caller.
	Paramless bool
	Force     func(argInfo func(index int) ValueInfo) Res
}

// neutralArgInfo supplies absent/neutral ValueInfo for any index, used
// wherever the caller has no argument-site knowledge (checkForce,
// checkNew's in-scope-inner-class case).
func neutralArgInfo(int) ValueInfo { return ValueInfo{} }

// joinLatent combines two latents: the joined latent re-forces both and
// joins the results. Either side may be nil.
func joinLatent(a, b *LatentInfo) *LatentInfo {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return &LatentInfo{
		Kind: a.Kind,
		Sym:  a.Sym,
		Force: func(argInfo func(int) ValueInfo) Res {
			return a.Force(argInfo).Join(b.Force(argInfo))
		},
	}
}

// Res is (effects, valueInfo), monoidally composable via Join.
type Res struct {
	Effects []Effect
	Value   ValueInfo
}

// EmptyRes is the neutral Res: no effects, a non-partial non-latent value.
func EmptyRes() Res { return Res{} }

// EffectRes wraps a single effect with a neutral ValueInfo.
func EffectRes(e Effect) Res { return Res{Effects: []Effect{e}} }

// Join concatenates effects and takes the elementwise disjunction of
// partial-ness; the joined latent re-forces both sides.
func (r Res) Join(other Res) Res {
	var effects []Effect
	effects = append(effects, r.Effects...)
	effects = append(effects, other.Effects...)
	return Res{
		Effects: effects,
		Value: ValueInfo{
			Partial: r.Value.Partial || other.Value.Partial,
			Latent:  joinLatent(r.Value.Latent, other.Value.Latent),
		},
	}
}

// WithEffects returns a copy of r with extra effects appended after r's
// own, preserving discovery order.
func (r Res) WithEffects(extra ...Effect) Res {
	if len(extra) == 0 {
		return r
	}
	effects := append(append([]Effect{}, r.Effects...), extra...)
	return Res{Effects: effects, Value: r.Value}
}
