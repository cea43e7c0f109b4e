package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/polidog/pomodoro-shell/internal/app"
	"github.com/polidog/pomodoro-shell/internal/config"
	"github.com/polidog/pomodoro-shell/internal/timer"
	"github.com/polidog/pomodoro-shell/internal/version"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// interactive reports whether stdin is a terminal the TUI can own
var interactive = func() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "pomodoro-shell",
		Short:         "Pomodoro timer for the terminal",
		Version:       version.Short(),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !interactive() {
				return runHeadless(cmd, configPath, "")
			}

			application, err := app.New(app.WithConfigPath(configPath))
			if err != nil {
				return err
			}
			defer application.Stop()
			return application.Run()
		},
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default ~/.pomodoro-shell/config.yaml)")

	root.AddCommand(
		newRunCmd(&configPath),
		newConfigCmd(),
		newVersionCmd(),
	)
	return root
}

func newRunCmd(configPath *string) *cobra.Command {
	var phase string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one phase without the TUI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHeadless(cmd, *configPath, timer.Phase(phase))
		},
	}
	cmd.Flags().StringVarP(&phase, "phase", "p", string(timer.PhaseWork), "phase to run: work, short_break or long_break")
	return cmd
}

func runHeadless(cmd *cobra.Command, configPath string, phase timer.Phase) error {
	out := cmd.OutOrStdout()
	opts := []app.Option{app.WithConfigPath(configPath), app.WithOutput(out)}
	if f, ok := out.(*os.File); !ok || !isatty.IsTerminal(f.Fd()) {
		opts = append(opts, app.WithNonInteractive())
	}

	application, err := app.New(opts...)
	if err != nil {
		return err
	}
	defer application.Stop()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return application.RunHeadless(ctx, phase)
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the config file",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Create a sample config file",
		Example: `  pomodoro-shell config init                    # Create at ~/.pomodoro-shell/config.yaml
  pomodoro-shell config init ~/work.yaml        # Create at specified path
  pomodoro-shell config init ~/work.yaml -f     # Overwrite if exists`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) > 0 {
				path = args[0]
			}
			configPath, err := config.InitConfig(path, force)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Config file created at %s\n", configPath)
			return nil
		},
	}
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")

	cmd.AddCommand(initCmd)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}
