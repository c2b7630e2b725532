package checker

import (
	"encoding/json"
	"fmt"
)

// Fixture is the on-disk JSON shape a host (here, the CLI) submits to the
// checker: a flat symbol table plus a class body built from tree-node
// JSON, with symbols cross-referenced by id rather than nested inline.
// Symbol identity is assumed already resolved; fixtures give that identity
// explicitly instead of reconstructing it from a parser.
//
// Each tree node decodes through a "kind" string discriminator dispatched
// through a decode switch, json.RawMessage deferring the per-kind fields
// until the kind is known.
type Fixture struct {
	Symbols []symbolSpec      `json:"symbols"`
	Class   string            `json:"class"`
	Body    []json.RawMessage `json:"body"`
}

type posSpec struct {
	File   string `json:"file"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

func (p *posSpec) resolve() Position {
	if p == nil {
		return Position{}
	}
	return Position{File: p.File, Line: p.Line, Column: p.Column}
}

type typeSpec struct {
	Kind    string   `json:"kind"`
	Name    string   `json:"name,omitempty"`
	Sym     string   `json:"sym,omitempty"`
	Syms    []string `json:"syms,omitempty"`
	Partial bool     `json:"partial,omitempty"`
}

type symbolSpec struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Owner            string    `json:"owner,omitempty"`
	Flags            []string  `json:"flags,omitempty"`
	Annotations      []string  `json:"annotations,omitempty"`
	Type             *typeSpec `json:"type,omitempty"`
	Pos              *posSpec  `json:"pos,omitempty"`
	ConstructorParam bool      `json:"constructorParam,omitempty"`
	Setter           bool      `json:"setter,omitempty"`
	EffectivelyFinal bool      `json:"effectivelyFinal,omitempty"`
	DefaultGetter    bool      `json:"defaultGetter,omitempty"`
	BaseClasses      []string  `json:"baseClasses,omitempty"`
	Decls            []string  `json:"decls,omitempty"`
	ParamAccessors   []string  `json:"paramAccessors,omitempty"`
	SelfClasses      []string  `json:"selfClasses,omitempty"`
	Params           []string  `json:"params,omitempty"`
}

var flagNames = map[string]Flags{
	"lazy":          FlagLazy,
	"method":        FlagMethod,
	"deferred":      FlagDeferred,
	"paramAccessor": FlagParamAccessor,
	"accessor":      FlagAccessor,
	"final":         FlagFinal,
	"private":       FlagPrivate,
	"local":         FlagLocal,
}

func parseFlags(names []string) (Flags, error) {
	var f Flags
	for _, n := range names {
		bit, ok := flagNames[n]
		if !ok {
			return 0, fmt.Errorf("fixture: unknown flag %q", n)
		}
		f |= bit
	}
	return f, nil
}

// symbolTable resolves id references accumulated while decoding a Fixture.
type symbolTable struct {
	specs map[string]symbolSpec
	syms  map[string]*StaticSymbol
}

func newSymbolTable(specs []symbolSpec) (*symbolTable, error) {
	t := &symbolTable{
		specs: make(map[string]symbolSpec, len(specs)),
		syms:  make(map[string]*StaticSymbol, len(specs)),
	}
	for _, spec := range specs {
		if spec.ID == "" {
			return nil, fmt.Errorf("fixture: symbol %q missing id", spec.Name)
		}
		if _, dup := t.specs[spec.ID]; dup {
			return nil, fmt.Errorf("fixture: duplicate symbol id %q", spec.ID)
		}
		t.specs[spec.ID] = spec
		t.syms[spec.ID] = &StaticSymbol{SymName: spec.Name}
	}
	return t, nil
}

func (t *symbolTable) get(id string) (*StaticSymbol, error) {
	if id == "" {
		return nil, nil
	}
	sym, ok := t.syms[id]
	if !ok {
		return nil, fmt.Errorf("fixture: unresolved symbol id %q", id)
	}
	return sym, nil
}

func (t *symbolTable) getMany(ids []string) ([]Symbol, error) {
	out := make([]Symbol, len(ids))
	for i, id := range ids {
		sym, err := t.get(id)
		if err != nil {
			return nil, err
		}
		out[i] = sym
	}
	return out, nil
}

func (t *symbolTable) resolveType(spec *typeSpec) (Type, error) {
	if spec == nil {
		return nil, nil
	}
	switch spec.Kind {
	case "basic":
		return BasicType{Name: spec.Name}, nil
	case "nil":
		return NilType{}, nil
	case "named":
		sym, err := t.get(spec.Sym)
		if err != nil {
			return nil, err
		}
		return NamedType{Sym: sym, Partial: spec.Partial}, nil
	case "class":
		syms, err := t.getMany(spec.Syms)
		if err != nil {
			return nil, err
		}
		return ClassType{Syms: syms}, nil
	default:
		return nil, fmt.Errorf("fixture: unknown type kind %q", spec.Kind)
	}
}

// populate fills in every StaticSymbol's fields now that every id in the
// table has a (possibly still-empty) *StaticSymbol to point at, so
// forward references between symbols (a class's decls naming methods
// declared later in the file, a method's owner naming its class) resolve
// regardless of declaration order.
func (t *symbolTable) populate() error {
	for id, spec := range t.specs {
		sym := t.syms[id]
		flags, err := parseFlags(spec.Flags)
		if err != nil {
			return err
		}
		owner, err := t.get(spec.Owner)
		if err != nil {
			return err
		}
		declaredType, err := t.resolveType(spec.Type)
		if err != nil {
			return err
		}
		baseClasses, err := t.getMany(spec.BaseClasses)
		if err != nil {
			return err
		}
		decls, err := t.getMany(spec.Decls)
		if err != nil {
			return err
		}
		paramAccessors, err := t.getMany(spec.ParamAccessors)
		if err != nil {
			return err
		}
		selfClasses, err := t.getMany(spec.SelfClasses)
		if err != nil {
			return err
		}
		params, err := t.getMany(spec.Params)
		if err != nil {
			return err
		}

		annos := make([]Annotation, len(spec.Annotations))
		for i, a := range spec.Annotations {
			annos[i] = Annotation(a)
		}

		sym.SymOwner = owner
		sym.SymFlags = flags
		sym.SymAnnotations = annos
		sym.SymType = declaredType
		sym.SymPos = spec.Pos.resolve()
		sym.SymBaseClasses = baseClasses
		sym.SymDecls = decls
		sym.SymParamAccessors = paramAccessors
		sym.SymSelfClasses = selfClasses
		sym.SymParams = params
		sym.ConstructorParam = spec.ConstructorParam
		sym.Setter = spec.Setter
		sym.EffectivelyFinal = spec.EffectivelyFinal
		sym.DefaultGetter = spec.DefaultGetter
	}
	return nil
}

// treeSpec is the discriminated-union envelope every tree-node JSON object
// decodes through; only the fields relevant to kind are populated.
type treeSpec struct {
	Kind string `json:"kind"`

	Pos *posSpec `json:"pos,omitempty"`

	Sym  string `json:"sym,omitempty"`
	Qual string `json:"qual,omitempty"`

	Tref  string              `json:"tref,omitempty"`
	Init  string              `json:"init,omitempty"`
	Argss [][]json.RawMessage `json:"argss,omitempty"`

	Fun  json.RawMessage   `json:"fun,omitempty"`
	Args []json.RawMessage `json:"args,omitempty"`

	Qualifier json.RawMessage `json:"qualifier,omitempty"`

	Cond json.RawMessage `json:"cond,omitempty"`
	Then json.RawMessage `json:"then,omitempty"`
	Else json.RawMessage `json:"else,omitempty"`

	Lhs json.RawMessage `json:"lhs,omitempty"`
	Rhs json.RawMessage `json:"rhs,omitempty"`

	Expr json.RawMessage `json:"expr,omitempty"`

	Stats []json.RawMessage `json:"stats,omitempty"`

	ParamLists [][]string        `json:"paramLists,omitempty"`
	Body       json.RawMessage   `json:"body,omitempty"`
	ClassBody  []json.RawMessage `json:"classBody,omitempty"`
}

func (t *symbolTable) decodeTree(raw json.RawMessage) (Tree, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var spec treeSpec
	if err := json.Unmarshal(raw, &spec); err != nil {
		return nil, fmt.Errorf("fixture: decode tree: %w", err)
	}
	pos := spec.Pos.resolve()

	switch spec.Kind {
	case "literal":
		return &Literal{P: pos}, nil
	case "this":
		return &This{P: pos}, nil
	case "super":
		sym, err := t.get(spec.Qual)
		if err != nil {
			return nil, err
		}
		return &Super{P: pos, Qual: sym}, nil
	case "ident":
		sym, err := t.get(spec.Sym)
		if err != nil {
			return nil, err
		}
		return &Ident{P: pos, Sym: sym}, nil
	case "closure":
		sym, err := t.get(spec.Sym)
		if err != nil {
			return nil, err
		}
		return &Closure{P: pos, Sym: sym}, nil
	case "select":
		qualifier, err := t.decodeTree(spec.Qualifier)
		if err != nil {
			return nil, err
		}
		sym, err := t.get(spec.Sym)
		if err != nil {
			return nil, err
		}
		return &Select{P: pos, Qualifier: qualifier, Sym: sym}, nil
	case "new":
		tref, err := t.get(spec.Tref)
		if err != nil {
			return nil, err
		}
		var trefType Type
		if tref != nil {
			trefType = ClassType{Syms: []Symbol{tref}}
		}
		init, err := t.get(spec.Init)
		if err != nil {
			return nil, err
		}
		argss := make([][]Tree, len(spec.Argss))
		for i, list := range spec.Argss {
			args, err := t.decodeTreeList(list)
			if err != nil {
				return nil, err
			}
			argss[i] = args
		}
		return &New{P: pos, Tref: trefType, Init: init, Argss: argss}, nil
	case "apply":
		fun, err := t.decodeTree(spec.Fun)
		if err != nil {
			return nil, err
		}
		args, err := t.decodeTreeList(spec.Args)
		if err != nil {
			return nil, err
		}
		return &Apply{P: pos, Fun: fun, Args: args}, nil
	case "if":
		cond, err := t.decodeTree(spec.Cond)
		if err != nil {
			return nil, err
		}
		thenT, err := t.decodeTree(spec.Then)
		if err != nil {
			return nil, err
		}
		elseT, err := t.decodeTree(spec.Else)
		if err != nil {
			return nil, err
		}
		return &If{P: pos, Cond: cond, Then: thenT, Else: elseT}, nil
	case "assign":
		lhs, err := t.decodeTree(spec.Lhs)
		if err != nil {
			return nil, err
		}
		rhs, err := t.decodeTree(spec.Rhs)
		if err != nil {
			return nil, err
		}
		return &Assign{P: pos, Lhs: lhs, Rhs: rhs}, nil
	case "typed":
		expr, err := t.decodeTree(spec.Expr)
		if err != nil {
			return nil, err
		}
		return &Typed{P: pos, Expr: expr}, nil
	case "block":
		stats, err := t.decodeTreeList(spec.Stats)
		if err != nil {
			return nil, err
		}
		expr, err := t.decodeTree(spec.Expr)
		if err != nil {
			return nil, err
		}
		return &Block{P: pos, Stats: stats, Expr: expr}, nil
	case "valdef":
		sym, err := t.get(spec.Sym)
		if err != nil {
			return nil, err
		}
		rhs, err := t.decodeTree(spec.Rhs)
		if err != nil {
			return nil, err
		}
		return &ValDef{P: pos, Sym: sym, Rhs: rhs}, nil
	case "defdef":
		sym, err := t.get(spec.Sym)
		if err != nil {
			return nil, err
		}
		paramLists := make([][]Symbol, len(spec.ParamLists))
		for i, ids := range spec.ParamLists {
			params, err := t.getMany(ids)
			if err != nil {
				return nil, err
			}
			paramLists[i] = params
		}
		body, err := t.decodeTree(spec.Body)
		if err != nil {
			return nil, err
		}
		return &DefDef{P: pos, Sym: sym, ParamLists: paramLists, Body: body}, nil
	case "classdef":
		sym, err := t.get(spec.Sym)
		if err != nil {
			return nil, err
		}
		classBody, err := t.decodeTreeList(spec.ClassBody)
		if err != nil {
			return nil, err
		}
		return &ClassDef{P: pos, Sym: sym, Body: classBody}, nil
	default:
		return nil, fmt.Errorf("fixture: unknown tree kind %q", spec.Kind)
	}
}

func (t *symbolTable) decodeTreeList(raws []json.RawMessage) ([]Tree, error) {
	out := make([]Tree, len(raws))
	for i, raw := range raws {
		tree, err := t.decodeTree(raw)
		if err != nil {
			return nil, err
		}
		out[i] = tree
	}
	return out, nil
}

// LoadFixture decodes a Fixture's JSON bytes into a checkable ClassTemplate.
func LoadFixture(data []byte) (*ClassTemplate, error) {
	var fx Fixture
	if err := json.Unmarshal(data, &fx); err != nil {
		return nil, fmt.Errorf("fixture: %w", err)
	}
	table, err := newSymbolTable(fx.Symbols)
	if err != nil {
		return nil, err
	}
	if err := table.populate(); err != nil {
		return nil, err
	}
	cls, err := table.get(fx.Class)
	if err != nil {
		return nil, err
	}
	if cls == nil {
		return nil, fmt.Errorf("fixture: class %q not found", fx.Class)
	}
	body, err := table.decodeTreeList(fx.Body)
	if err != nil {
		return nil, err
	}
	return &ClassTemplate{Sym: cls, Body: body}, nil
}
