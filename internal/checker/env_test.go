package checker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnvSeedAndQuery(t *testing.T) {
	a := &StaticSymbol{SymName: "A"}
	x := &StaticSymbol{SymName: "x", SymOwner: a}

	top := NewTopEnv(a)
	frame := top.Push()
	frame.SeedNonInit(x)

	assert.True(t, frame.Owns(x))
	assert.True(t, frame.IsNotInit(x))
	assert.False(t, frame.IsPartial(x))

	frame.MarkInit(x)
	assert.False(t, frame.IsNotInit(x))
}

func TestEnvOwningFrameWalksOuter(t *testing.T) {
	a := &StaticSymbol{SymName: "A"}
	x := &StaticSymbol{SymName: "x", SymOwner: a}

	top := NewTopEnv(a)
	outer := top.Push()
	outer.SeedNonInit(x)
	inner := outer.Push()

	assert.True(t, inner.Owns(x))
	assert.True(t, inner.IsNotInit(x))

	inner.MarkInit(x)
	assert.False(t, outer.IsNotInit(x), "MarkInit on inner must clear the outer owning frame's nonInit")
}

func TestEnvUnrelatedSymbolIsNeutral(t *testing.T) {
	a := &StaticSymbol{SymName: "A"}
	other := &StaticSymbol{SymName: "other"}

	top := NewTopEnv(a)
	frame := top.Push()

	assert.False(t, frame.Owns(other))
	assert.False(t, frame.IsNotInit(other))
	assert.False(t, frame.IsPartial(other))
	assert.Nil(t, frame.LatentInfoFor(other))
}

func TestEnvInitializedAllowsCurrentClassPartial(t *testing.T) {
	a := &StaticSymbol{SymName: "A"}
	top := NewTopEnv(a)
	frame := top.Push()
	frame.SeedPartial(a)

	assert.True(t, frame.Initialized(), "partialSyms={currentClass} alone still counts as initialized")

	other := &StaticSymbol{SymName: "other", SymOwner: a}
	frame.AddLocal(other)
	frame.MarkPartial(other)
	assert.False(t, frame.Initialized(), "a second partial symbol breaks the invariant")
}

func TestEnvMarkInitializedClearsPartial(t *testing.T) {
	a := &StaticSymbol{SymName: "A"}
	top := NewTopEnv(a)
	frame := top.Push()
	frame.SeedPartial(a)

	frame.MarkInitialized()
	assert.False(t, frame.IsPartial(a))
}

func TestEnvMarkInitializedPanicsWhenNotReady(t *testing.T) {
	a := &StaticSymbol{SymName: "A"}
	other := &StaticSymbol{SymName: "other", SymOwner: a}
	top := NewTopEnv(a)
	frame := top.Push()
	frame.SeedPartial(other)

	assert.Panics(t, func() { frame.MarkInitialized() })
}

func TestEnvDeepCloneIsIndependent(t *testing.T) {
	a := &StaticSymbol{SymName: "A"}
	x := &StaticSymbol{SymName: "x", SymOwner: a}
	top := NewTopEnv(a)
	frame := top.Push()
	frame.SeedNonInit(x)

	clone := frame.DeepClone()
	clone.MarkInit(x)

	assert.True(t, frame.IsNotInit(x), "mutating the clone must not affect the original")
	assert.False(t, clone.IsNotInit(x))
	assert.Same(t, frame.top, clone.top, "the TopEnv sentinel is shared by identity across clones")
}

func TestEnvJoinUnionsNonInitAndPartial(t *testing.T) {
	a := &StaticSymbol{SymName: "A"}
	x := &StaticSymbol{SymName: "x", SymOwner: a}
	y := &StaticSymbol{SymName: "y", SymOwner: a}
	top := NewTopEnv(a)
	base := top.Push()
	base.SeedNonInit(x)
	base.SeedNonInit(y)

	left := base.DeepClone()
	left.MarkInit(x)

	right := base.DeepClone()
	right.MarkInit(y)

	left.Join(right)
	assert.True(t, left.IsNotInit(x), "join must re-union x as not-init since right still had it")
	assert.True(t, left.IsNotInit(y), "join must re-union y as not-init since base had it before either branch ran")
}

func TestEnvJoinPanicsOnDifferentTop(t *testing.T) {
	a := &StaticSymbol{SymName: "A"}
	b := &StaticSymbol{SymName: "B"}
	e1 := NewTopEnv(a).Push()
	e2 := NewTopEnv(b).Push()

	assert.Panics(t, func() { e1.Join(e2) })
}

func TestEnvPopPanicsOnTop(t *testing.T) {
	top := NewTopEnv(&StaticSymbol{SymName: "A"})
	assert.Panics(t, func() { top.Pop() })
}
