package netmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScene_ResourceBalanceMountUnmount(t *testing.T) {
	ts := NewTestScene(WithSeed(1))
	require.True(t, ts.Scene.Generated())
	require.Greater(t, ts.Factory.Allocs, 0)

	ts.Scene.Teardown()
	assert.True(t, ts.Factory.Balanced(),
		"allocs=%d disposes=%d", ts.Factory.Allocs, ts.Factory.Disposes)
}

func TestScene_ResourceBalanceAcrossTierChange(t *testing.T) {
	ts := NewTestScene(WithSeed(1), WithTier(TierDesktop))
	afterMount := ts.Factory.Allocs

	ts.Scene.SetTier(TierPhone)
	require.Greater(t, ts.Factory.Allocs, afterMount, "tier change should reallocate")
	assert.Equal(t, afterMount, ts.Factory.Disposes,
		"tier change must dispose the previous generation in full")

	ts.Scene.Teardown()
	assert.True(t, ts.Factory.Balanced())
}

func TestScene_TierChangeForcesFullRebuild(t *testing.T) {
	ts := NewTestScene(WithSeed(12))
	before := ts.Scene.Nodes()
	beforeEdges := ts.Scene.Edges()

	ts.Scene.SetTier(TierTablet)
	require.True(t, ts.Scene.Generated())
	after := ts.Scene.Nodes()
	require.NotEmpty(t, after)

	// Fresh node and edge objects, not patched ones.
	assert.NotSame(t, before[0], after[0])
	if len(beforeEdges) > 0 && len(ts.Scene.Edges()) > 0 {
		assert.NotSame(t, beforeEdges[0], ts.Scene.Edges()[0])
	}
}

func TestScene_ModuleListChangeRebuildsAndClearsStaleHover(t *testing.T) {
	ts := NewTestScene(WithSeed(3))
	ts.Scene.SetHovered("music")
	ts.Scene.SetModules([]Module{{ID: "solo", Label: "SOLO", Pos: Vec3{}, Color: 0xabcdef}})

	assert.Equal(t, "", ts.Scene.Hovered(), "hovered id that no longer exists must clear")
	assert.Len(t, ts.Scene.ModuleNodes(), 1)

	ts.Scene.Teardown()
	assert.True(t, ts.Factory.Balanced())
}

func TestScene_HoverSurvivesRebuildWhenModuleRemains(t *testing.T) {
	ts := NewTestScene(WithSeed(3))
	ts.Scene.SetHovered("music")
	ts.Scene.SetTier(TierLaptop)
	assert.Equal(t, "music", ts.Scene.Hovered())
}

func TestScene_ZeroSizeDefersGeneration(t *testing.T) {
	ts := NewTestScene(WithSeed(1), WithSurfaceSize(0, 0))
	require.False(t, ts.Scene.Generated())
	assert.Empty(t, ts.Scene.Nodes())

	// Stepping and pointer input before generation are no-ops.
	ts.Scene.Step(1.0)
	ts.Scene.PointerMove(10, 10, 1.0)
	assert.Empty(t, ts.HoverEvents)

	ts.Scene.SetSurfaceSize(1280, 720)
	require.True(t, ts.Scene.Generated())
	assert.NotEmpty(t, ts.Scene.Nodes())
}

func TestScene_ShrinkToZeroTearsDown(t *testing.T) {
	ts := NewTestScene(WithSeed(1))
	require.True(t, ts.Scene.Generated())
	ts.Scene.SetSurfaceSize(0, 0)
	assert.False(t, ts.Scene.Generated())
	assert.True(t, ts.Factory.Balanced())
}

// TestScene_DesktopScenario pins the documented reference scene:
// camera distance 8 (desktop tier), 60° FOV, six modules, 40 small and
// 20 medium nodes requested, connection threshold 4.
func TestScene_DesktopScenario(t *testing.T) {
	cfg := DefaultConfig()
	require.Equal(t, 8.0, TierDesktop.Distance())
	require.Equal(t, 60.0, cfg.Field.FOV)
	require.Len(t, cfg.Modules, 6)

	ts := NewTestScene(WithConfig(cfg), WithSeed(42), WithTier(TierDesktop))
	modules := cfg.ModuleList()

	// No background node closer than 1.5 units to any module.
	for _, n := range ts.Scene.Nodes() {
		if n.Class == ClassModule {
			continue
		}
		for _, m := range modules {
			assert.GreaterOrEqual(t, n.Base.Dist(m.Pos), 1.5)
		}
	}

	// Edge count is deterministic for a fixed seed.
	ts2 := NewTestScene(WithConfig(cfg), WithSeed(42), WithTier(TierDesktop))
	assert.Equal(t, len(ts.Scene.Edges()), len(ts2.Scene.Edges()))
	assert.Equal(t, len(ts.Scene.Nodes()), len(ts2.Scene.Nodes()))

	// Hovering music and releasing reproduces the pre-release position.
	ts.RunFrames(60, 1.0/60)
	n := ts.Scene.ModuleNode("music")
	require.NotNil(t, n)
	ts.Scene.SetHovered("music")
	ts.RunFrames(45, 1.0/60)
	snapshot := n.Pos
	ts.Scene.SetHovered("")
	ts.RunFrames(1, 1e-4)
	assert.InDelta(t, 0, n.Pos.Dist(snapshot), 1e-6)
}

func TestScene_DebugReportMentionsCounts(t *testing.T) {
	ts := NewTestScene(WithSeed(9))
	rep := ts.Scene.DebugReport()
	assert.Contains(t, rep, "seed=9")
	assert.Contains(t, rep, "edges=")
	assert.Contains(t, rep, "music")
}
