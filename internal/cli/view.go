package cli

import (
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/mvaldren/netmap/internal/netmap"
)

func newViewCmd(verbose *bool) *cobra.Command {
	var cfgPath string
	var seed int64
	var width, height int

	cmd := &cobra.Command{
		Use:   "view",
		Short: "Open the interactive map window",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(os.Stderr, *verbose)

			cfg := netmap.DefaultConfig()
			if cfgPath != "" {
				var err error
				cfg, err = netmap.LoadConfig(cfgPath)
				if err != nil {
					return err
				}
			}
			if seed == 0 {
				seed = time.Now().UnixNano()
			}

			viewer := netmap.NewViewer(cfg, seed, logger)
			defer viewer.Shutdown()

			ebiten.SetWindowTitle("netmap")
			ebiten.SetWindowSize(width, height)
			ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
			logger.Info("starting viewer", "modules", len(cfg.Modules), "seed", seed)
			return ebiten.RunGame(viewer)
		},
	}
	cmd.Flags().StringVarP(&cfgPath, "config", "c", "", "scene config file (TOML)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "layout seed (0 = time-based)")
	cmd.Flags().IntVar(&width, "width", 1280, "initial window width")
	cmd.Flags().IntVar(&height, "height", 720, "initial window height")
	return cmd
}
