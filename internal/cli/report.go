package cli

import (
	"fmt"
	"math"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mvaldren/netmap/internal/netmap"
)

// resumeEpsilon bounds the hover release position error: phase recovery
// must put the module back within this distance of its pause snapshot.
const resumeEpsilon = 0.01

type runResult struct {
	runIndex int
	seed     int64

	small, medium, modules, edges   int
	requestedSmall, requestedMedium int

	minClearance  float64
	clearanceOK   bool
	resumeErr     float64
	resumeOK      bool
	resumeModule  string
	deterministic bool
	balanced      bool
	hitTests      int
}

func newReportCmd(verbose *bool) *cobra.Command {
	var runs, frames int
	var seedBase, seedStep int64
	var cfgPath, tierName, hoverID string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Run seeded headless generations and print invariant checks",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(os.Stderr, *verbose)

			if runs <= 0 {
				return fmt.Errorf("--runs must be > 0")
			}
			if frames <= 0 {
				return fmt.Errorf("--frames must be > 0")
			}
			cfg := netmap.DefaultConfig()
			if cfgPath != "" {
				var err error
				cfg, err = netmap.LoadConfig(cfgPath)
				if err != nil {
					return err
				}
			}
			tier, err := netmap.ParseTier(tierName)
			if err != nil {
				return err
			}
			if hoverID == "" && len(cfg.Modules) > 0 {
				hoverID = cfg.Modules[0].ID
			}

			fmt.Printf("=== netmap headless report ===\n")
			fmt.Printf("tier=%s runs=%d frames=%d seed_base=%d seed_step=%d modules=%d\n\n",
				tier, runs, frames, seedBase, seedStep, len(cfg.Modules))

			allOK := true
			for i := 0; i < runs; i++ {
				seed := seedBase + int64(i)*seedStep
				rr := runOnce(cfg, tier, seed, frames, hoverID)
				rr.runIndex = i + 1
				printRun(rr)
				if !(rr.clearanceOK && rr.resumeOK && rr.deterministic && rr.balanced) {
					allOK = false
				}
			}

			if allOK {
				color.Green("all runs passed")
			} else {
				color.Red("one or more runs failed")
				logger.Error("invariant violations detected")
				return fmt.Errorf("report failed")
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&runs, "runs", 5, "number of headless runs")
	cmd.Flags().IntVar(&frames, "frames", 600, "animation frames per run")
	cmd.Flags().Int64Var(&seedBase, "seed-base", 42, "seed for run 1")
	cmd.Flags().Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	cmd.Flags().StringVarP(&cfgPath, "config", "c", "", "scene config file (TOML)")
	cmd.Flags().StringVar(&tierName, "tier", "desktop", "breakpoint tier")
	cmd.Flags().StringVar(&hoverID, "hover-module", "", "module id for the hover round trip (default: first module)")
	return cmd
}

func runOnce(cfg netmap.Config, tier netmap.Tier, seed int64, frames int, hoverID string) runResult {
	const dt = 1.0 / 60

	ts := netmap.NewTestScene(
		netmap.WithConfig(cfg),
		netmap.WithTier(tier),
		netmap.WithSeed(seed),
	)
	ts.RunFrames(frames, dt)

	rr := runResult{
		seed:            seed,
		small:           ts.Scene.NodeCount(netmap.ClassSmall),
		medium:          ts.Scene.NodeCount(netmap.ClassMedium),
		modules:         len(ts.Scene.ModuleNodes()),
		edges:           len(ts.Scene.Edges()),
		requestedSmall:  cfg.Field.Small.Count,
		requestedMedium: cfg.Field.Medium.Count,
	}

	rr.minClearance, rr.clearanceOK = checkClearance(cfg, ts)
	rr.resumeModule = hoverID
	rr.resumeErr, rr.resumeOK = checkResume(ts, hoverID)

	// Same seed, same tier, same counts: generation must be a pure
	// function of its inputs.
	ts2 := netmap.NewTestScene(
		netmap.WithConfig(cfg),
		netmap.WithTier(tier),
		netmap.WithSeed(seed),
	)
	rr.deterministic = ts2.Scene.NodeCount(netmap.ClassSmall) == rr.small &&
		ts2.Scene.NodeCount(netmap.ClassMedium) == rr.medium &&
		len(ts2.Scene.Edges()) == rr.edges
	ts2.Scene.Teardown()

	rr.hitTests = ts.Scene.HitTests()
	ts.Scene.Teardown()
	rr.balanced = ts.Factory.Balanced() && ts2.Factory.Balanced()
	return rr
}

// checkClearance returns the smallest background-node→module distance
// and whether every node keeps its class clearance.
func checkClearance(cfg netmap.Config, ts *netmap.TestScene) (float64, bool) {
	modules := cfg.ModuleList()
	minDist := math.Inf(1)
	ok := true
	for _, n := range ts.Scene.Nodes() {
		if n.Class == netmap.ClassModule {
			continue
		}
		clearance := cfg.Field.Small.Clearance
		if n.Class == netmap.ClassMedium {
			clearance = cfg.Field.Medium.Clearance
		}
		for _, m := range modules {
			d := n.Base.Dist(m.Pos)
			if d < minDist {
				minDist = d
			}
			if d < clearance {
				ok = false
			}
		}
	}
	if len(modules) == 0 {
		return 0, true
	}
	return minDist, ok
}

// checkResume hovers a module, holds, releases, and measures how far
// the node lands from its pause snapshot at the release instant.
func checkResume(ts *netmap.TestScene, hoverID string) (float64, bool) {
	if hoverID == "" {
		return 0, true
	}
	if !ts.MoveOverModule(hoverID) {
		return math.Inf(1), false
	}
	ts.RunFrames(90, 1.0/60) // hold the hover ~1.5s
	n := ts.Scene.ModuleNode(hoverID)
	if n == nil {
		return math.Inf(1), false
	}
	snapshot := n.Pos

	// Release: move the pointer to a corner, past the throttle window.
	ts.Time += 0.02
	ts.MoveTo(1, 1)
	ts.RunFrames(1, 1e-4)
	posErr := n.Pos.Dist(snapshot)
	return posErr, posErr <= resumeEpsilon
}

func printRun(rr runResult) {
	fmt.Printf("--- run %d (seed=%d) ---\n", rr.runIndex, rr.seed)
	fmt.Printf("nodes: small=%d/%d medium=%d/%d module=%d edges=%d hit_tests=%d\n",
		rr.small, rr.requestedSmall, rr.medium, rr.requestedMedium, rr.modules, rr.edges, rr.hitTests)
	fmt.Printf("clearance: min_node_module_dist=%.3f %s\n", rr.minClearance, passFail(rr.clearanceOK))
	fmt.Printf("hover_resume: module=%s position_err=%.5f %s\n", rr.resumeModule, rr.resumeErr, passFail(rr.resumeOK))
	fmt.Printf("determinism: %s  resource_balance: %s\n\n", passFail(rr.deterministic), passFail(rr.balanced))
}

func passFail(ok bool) string {
	if ok {
		return color.GreenString("PASS")
	}
	return color.RedString("FAIL")
}
