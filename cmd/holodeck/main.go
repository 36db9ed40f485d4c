// Package main provides the CLI entry point for the holodeck.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/jwulff/holodeck/internal/app"
	"github.com/jwulff/holodeck/internal/audio"
	"github.com/jwulff/holodeck/internal/catalog"
	"github.com/jwulff/holodeck/internal/config"
	"github.com/jwulff/holodeck/internal/db"
	"github.com/jwulff/holodeck/internal/lesson"
	"github.com/jwulff/holodeck/internal/logging"
	"github.com/jwulff/holodeck/internal/narration"
	"github.com/jwulff/holodeck/internal/scene"
	"github.com/jwulff/holodeck/internal/ui"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	tea "github.com/charmbracelet/bubbletea"
)

// Version information (set at build time)
var version = "dev"

var (
	successStyle = lipgloss.NewStyle().
			Foreground(ui.ColorGreen)

	warnStyle = lipgloss.NewStyle().
			Foreground(ui.ColorYellow)
)

// session is what every subcommand gets from the persistent pre-run.
type session struct {
	cfg    *config.Config
	logger zerolog.Logger
	closer io.Closer
}

// Close releases the log file. Safe to call more than once.
func (s *session) Close() error {
	if s.closer == nil {
		return nil
	}
	err := s.closer.Close()
	s.closer = nil
	return err
}

func main() {
	rootCmd, s := newRootCmd()
	err := rootCmd.Execute()
	// Cobra skips the post-run when a command fails.
	s.Close()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() (*cobra.Command, *session) {
	var (
		configPath  string
		contentPath string
		provider    string
		verbose     bool
	)
	s := &session{logger: zerolog.Nop()}

	rootCmd := &cobra.Command{
		Use:   "holodeck",
		Short: "Holographic science lessons in your terminal",
		Long: ui.TitleStyle.Render("HOLODECK") + `

Pick a science module, listen to the instructor's lecture while the
holographic model turns, then prove what you learned in the quiz.

` + ui.DimStyle.Render("Use 'holodeck [command] --help' for more information."),
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if contentPath != "" {
				cfg.Content.Path = contentPath
			}
			if provider != "" {
				cfg.Narration.Provider = provider
			}
			if verbose {
				cfg.Log.Level = "debug"
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logCfg := logging.Config{Dir: cfg.Log.Dir, Level: cfg.Log.Level}
			// The TUI owns the terminal; only the other commands echo logs.
			if verbose && cmd != cmd.Root() {
				logCfg.Console = cmd.ErrOrStderr()
			}
			logger, closer, err := logging.New(logCfg)
			if err != nil {
				return err
			}
			logger.Info().Str("command", cmd.Name()).Str("provider", cfg.Narration.Provider).Msg("Starting")

			s.cfg, s.logger, s.closer = cfg, logger, closer
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return s.Close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.runTUI()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "config file (default ~/.holodeck/config.yaml)")
	flags.StringVar(&contentPath, "content", "", "content pack (.yaml or .db), built-in modules when empty")
	flags.StringVar(&provider, "provider", "", "narration provider: openai, daemon or none")
	flags.BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(
		newModulesCmd(s),
		newSpeakCmd(s),
		newStatusCmd(s),
		newVersionCmd(),
	)
	return rootCmd, s
}

func (s *session) runTUI() error {
	cat, err := catalog.LoadFile(s.cfg.Content.Path)
	if err != nil {
		return err
	}

	narrator, closeCache := newNarrator(s.cfg.Narration, s.logger)
	defer closeCache.Close()

	device := audio.NewDevice(s.cfg.Audio.SampleRate, s.cfg.Audio.Volume, s.logger)
	defer device.Suspend()

	deck := scene.NewHolodeck()
	ctrl := lesson.New(cat, narrator, device, deck, lesson.Options{
		GraceDelay:    s.cfg.Lesson.GraceDelay,
		FeedbackDelay: s.cfg.Lesson.FeedbackDelay,
	}, s.logger)
	defer ctrl.Close()

	p := tea.NewProgram(app.New(ctrl, deck, s.logger), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}

func newModulesCmd(s *session) *cobra.Command {
	var asYAML bool
	cmd := &cobra.Command{
		Use:   "modules",
		Short: "List the science modules",
		Long:  "List the modules of the active content pack, or print the pack as YAML.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := catalog.LoadFile(s.cfg.Content.Path)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if asYAML {
				data, err := cat.EncodeYAML()
				if err != nil {
					return err
				}
				_, err = out.Write(data)
				return err
			}

			for i, m := range cat.Modules() {
				fmt.Fprintf(out, "%2d  %s  %s\n", i+1, ui.Accent(m.Color).Render(fmt.Sprintf("%-18s", m.ID)), m.Title)
				fmt.Fprintf(out, "    %s\n", ui.DimStyle.Render(fmt.Sprintf("%s (%d questions)", m.Description, len(m.Quiz))))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "print the content pack as YAML")
	return cmd
}

func newSpeakCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "speak [module]",
		Short: "Narrate a module's lecture without the TUI",
		Long:  "Synthesize and play one lecture through the configured provider and audio device.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := catalog.LoadFile(s.cfg.Content.Path)
			if err != nil {
				return err
			}
			mod, err := cat.Get(catalog.ModuleID(strings.ToUpper(args[0])))
			if err != nil {
				return fmt.Errorf("%w (see 'holodeck modules')", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			narrator, closeCache := newNarrator(s.cfg.Narration, s.logger)
			defer closeCache.Close()

			device := audio.NewDevice(s.cfg.Audio.SampleRate, s.cfg.Audio.Volume, s.logger)
			if err := device.Resume(); err != nil {
				return err
			}
			defer device.Suspend()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s\n", ui.Accent(mod.Color).Render(mod.Title), ui.DimStyle.Render("via "+narrator.Provider().Name()))

			started := time.Now()
			handle, err := narrator.Narrate(ctx, mod.Lecture, device)
			if err != nil {
				return err
			}
			select {
			case <-handle.Done():
				fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("✓ Transmission complete (%s)", time.Since(started).Round(time.Second))))
			case <-ctx.Done():
				handle.Stop()
				fmt.Fprintln(out, warnStyle.Render("Transmission interrupted"))
			}
			return nil
		},
	}
}

func newStatusCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check the narration provider and cache",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := s.cfg.Narration
			out := cmd.OutOrStdout()

			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Timeout)
			defer cancel()

			p := newProvider(cfg, s.logger)
			if err := p.Health(ctx); err != nil {
				fmt.Fprintf(out, "%s %s\n", warnStyle.Render("○ provider "+p.Name()), ui.DimStyle.Render(err.Error()))
			} else {
				fmt.Fprintln(out, successStyle.Render("● provider "+p.Name()))
			}

			if d, ok := p.(*narration.DaemonProvider); ok {
				if voices, err := d.Voices(ctx); err == nil {
					fmt.Fprintf(out, "  voices: %s\n", strings.Join(voices, ", "))
				}
			}

			if !cfg.CacheEnabled {
				fmt.Fprintln(out, ui.DimStyle.Render("○ cache disabled"))
				return nil
			}
			cache, err := db.OpenCache(cfg.CachePath)
			if err != nil {
				return err
			}
			defer cache.Close()
			n, err := cache.Count()
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s %s\n", successStyle.Render(fmt.Sprintf("● cache %d narrations", n)), ui.DimStyle.Render(cfg.CachePath))
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		// No config or log file needed.
		PersistentPreRunE:  func(*cobra.Command, []string) error { return nil },
		PersistentPostRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "holodeck "+version)
		},
	}
}
