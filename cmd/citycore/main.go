package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"
)

// worldFlags are the config overrides shared by the world-building commands.
type worldFlags struct {
	config string
	seed   int64
	delay  time.Duration
}

func (f *worldFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.config, "config", "c", "", "world.yaml file or project directory (defaults built in)")
	cmd.Flags().Int64Var(&f.seed, "seed", 0, "placement seed (0 keeps the configured seed)")
	cmd.Flags().DurationVar(&f.delay, "delay", 0, "pause between placements, negative for none")
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "citycore",
		Short: "Grid city builder: roads, zones and growing buildings",
	}

	rootCmd.AddCommand(playCmd())
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(simulateCmd())
	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(catalogCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func playCmd() *cobra.Command {
	var wf worldFlags
	var logFile string

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Build a city in the terminal with the mouse",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPlay(cmd, wf, logFile)
		},
	}

	wf.register(cmd)
	cmd.Flags().StringVar(&logFile, "log-file", "", "write logs to this file")
	return cmd
}

func serveCmd() *cobra.Command {
	var wf worldFlags
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the local dev server with a websocket change stream",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, wf, port)
		},
	}

	wf.register(cmd)
	cmd.Flags().IntVarP(&port, "port", "p", 0, "HTTP server port (defaults to the configured port)")
	return cmd
}

func simulateCmd() *cobra.Command {
	var wf worldFlags
	var pngPath string

	cmd := &cobra.Command{
		Use:   "simulate [script]",
		Short: "Replay a script, let placement settle and print the scene",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulate(cmd, wf, args[0], pngPath)
		},
	}

	wf.register(cmd)
	cmd.Flags().StringVar(&pngPath, "png", "", "also render the scene to this PNG file")
	return cmd
}

func validateCmd() *cobra.Command {
	var wf worldFlags

	cmd := &cobra.Command{
		Use:   "validate [script]",
		Short: "Replay a script and check the resulting world",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := runValidate(cmd, wf, args[0])
			if err != nil {
				return err
			}
			if !report.Valid {
				os.Exit(1)
			}
			return nil
		},
	}

	wf.register(cmd)
	return cmd
}

func catalogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog [path]",
		Short: "Load and check a building catalog (the embedded one by default)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			report, err := runCatalog(cmd.OutOrStdout(), path)
			if err != nil {
				return err
			}
			if !report.Valid {
				os.Exit(1)
			}
			return nil
		},
	}
}
