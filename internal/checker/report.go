package checker

import (
	"fmt"
	"sync"

	"martianoff/gala/galaerr"
)

// Diagnostic is a rendered warning: a position, a prose message, the
// effect kind it came from, and any nested diagnostics that were reported
// before it. Nested effects are reported in a child-before-parent stream
// with the parent's summary message last.
type Diagnostic struct {
	Pos      Position
	Message  string
	Kind     EffectKind
	Children []Diagnostic
}

// EffectCatalog is a thread-safe, sync.RWMutex-guarded kind→message-template
// registry, kept separate to keep prose messages out of the check* control
// flow. A host may register overrides, e.g. for localization, through the
// same Register API used to seed the defaults.
type EffectCatalog struct {
	mu        sync.RWMutex
	templates map[EffectKind]string
}

// NewEffectCatalog returns an empty catalog with no templates registered.
func NewEffectCatalog() *EffectCatalog {
	return &EffectCatalog{templates: make(map[EffectKind]string)}
}

// Register installs or overrides the message template for kind. template
// is a fmt-style format string consuming the effect's Args() in order.
func (c *EffectCatalog) Register(kind EffectKind, template string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.templates[kind] = template
}

// Template returns the registered template for kind and whether one was
// found.
func (c *EffectCatalog) Template(kind EffectKind) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	t, ok := c.templates[kind]
	return t, ok
}

// Render formats e's message using its registered template, falling back
// to a generic rendering when no template is registered for e's kind. A
// registered template is always applied as is: one that consumes more
// arguments than e supplies renders fmt's missing-argument marker instead
// of falling back.
func (c *EffectCatalog) Render(e Effect) string {
	args := e.Args()
	template, ok := c.Template(e.Kind())
	if !ok {
		if len(args) > 0 {
			return fmt.Sprintf("%s(%s)", e.Kind(), args[0])
		}
		return e.Kind().String()
	}
	anyArgs := make([]any, len(args))
	for i, a := range args {
		anyArgs[i] = a
	}
	return fmt.Sprintf(template, anyArgs...)
}

// DefaultCatalog ships the built-in templates for every EffectKind.
var DefaultCatalog = newDefaultCatalog()

func newDefaultCatalog() *EffectCatalog {
	c := NewEffectCatalog()
	c.Register(KindUninit, "read of not-yet-initialized field %s")
	c.Register(KindOverrideRisk, "call to overridable method %s during construction may observe a partially-built object")
	c.Register(KindUseAbstractDef, "use of abstract member %s not marked @init during construction")
	c.Register(KindMember, "selection of %s on a value that is not known to be fully initialized")
	c.Register(KindCrossAssign, "assigning a partially-initialized value into already-initialized, non-partial %s")
	c.Register(KindArgument, "passing a partially-initialized value to %s where a non-partial argument is expected")
	c.Register(KindPartialNew, "constructing %s whose enclosing instance is still partially initialized")
	c.Register(KindCall, "call to %s may observe a partially-initialized object")
	c.Register(KindForce, "forcing lazy value %s may observe a partially-initialized object")
	c.Register(KindLatent, "evaluating this closure may observe a partially-initialized object")
	c.Register(KindInstantiate, "constructing %s may observe a partially-initialized object")
	c.Register(KindRecCreate, "recursive construction of %s while it is still being constructed")
	return c
}

// ToGalaError converts a rendered Diagnostic into a galaerr.InitSafetyError,
// recursively converting its Children, so a host's diagnostic stream can
// mix checker warnings with SyntaxError/SemanticError via the shared
// galaerr.GalaError interface.
func ToGalaError(d Diagnostic, filePath string) *galaerr.InitSafetyError {
	children := make([]*galaerr.InitSafetyError, len(d.Children))
	for i, c := range d.Children {
		children[i] = ToGalaError(c, filePath)
	}
	return galaerr.NewInitSafetyError(d.Kind.String(), filePath, d.Pos.Line, d.Pos.Column, d.Message, children)
}

// Render flattens effects into a discovery-ordered slice of Diagnostic,
// nested effects before the summary that wraps them.
func Render(effects []Effect, catalog *EffectCatalog) []Diagnostic {
	var out []Diagnostic
	for _, e := range effects {
		_, flat := renderOne(e, catalog)
		out = append(out, flat...)
	}
	return out
}

// renderOne renders a single effect and its subtree, returning this
// effect's own Diagnostic (with Children populated) plus the full
// child-before-parent flattening.
func renderOne(e Effect, catalog *EffectCatalog) (Diagnostic, []Diagnostic) {
	var children []Diagnostic
	var flat []Diagnostic
	for _, sub := range e.Children() {
		d, subFlat := renderOne(sub, catalog)
		children = append(children, d)
		flat = append(flat, subFlat...)
	}
	self := Diagnostic{
		Pos:      e.Pos(),
		Message:  catalog.Render(e),
		Kind:     e.Kind(),
		Children: children,
	}
	flat = append(flat, self)
	return self, flat
}
