// Package cli wires the prefsync core into an inspection and driver
// command line: show effective settings, list recognition languages,
// and apply mutations through the same pipeline the preferences panel
// uses.
package cli

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/prefsync/pkg/config"
	"github.com/arthur-debert/prefsync/pkg/logging"
	"github.com/arthur-debert/prefsync/pkg/settings"
	"github.com/arthur-debert/prefsync/pkg/viewmodel"
)

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	var (
		verbosity  int
		configPath string
	)

	rootCmd := &cobra.Command{
		Use:   "prefsync",
		Short: "Settings synchronization for preference panels",
		Long: `prefsync is the settings-synchronization core behind a desktop
utility's preferences panel: it resolves administrative policy, matches
stored language preferences against the recognition engine's candidates,
and coalesces edit bursts into debounced persist-and-notify operations.

This CLI drives the same pipeline from the shell, against the on-disk
settings repository.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a prefsync.toml override")

	rootCmd.AddCommand(newShowCmd(&configPath))
	rootCmd.AddCommand(newLanguagesCmd(&configPath))
	rootCmd.AddCommand(newSetLanguageCmd(&configPath))
	rootCmd.AddCommand(newSetShortcutCmd(&configPath))
	rootCmd.AddCommand(newEnableCmd(&configPath, true))
	rootCmd.AddCommand(newEnableCmd(&configPath, false))
	rootCmd.AddCommand(newConfigCmd(&configPath))

	return rootCmd
}

// buildViewModel assembles the pipeline against the file-backed
// repository. The outbound transport prints each envelope to stdout so
// mutations are observable from the shell.
func buildViewModel(configPath string) (*viewmodel.ViewModel, config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, config.Config{}, err
	}

	saver := settings.NewFileSaver(cfg.Storage.SettingsDir)

	initial, _, err := saver.Load(cfg.Core.ModuleName)
	if err != nil {
		return nil, config.Config{}, err
	}
	storedEnabled, err := saver.LoadEnabled(cfg.Core.ModuleName, false)
	if err != nil {
		return nil, config.Config{}, err
	}

	vm, err := viewmodel.New(viewmodel.Options{
		ModuleName:     cfg.Core.ModuleName,
		Saver:          saver,
		EnabledSaver:   saver,
		Send:           printTransport,
		Policy:         policyFromEnv(),
		Enumerator:     repositoryEnumerator(saver.Root()),
		Culture:        cultureFromEnv(),
		Initial:        initial,
		StoredEnabled:  storedEnabled,
		DebounceWindow: cfg.DebounceWindow(),
	})
	if err != nil {
		return nil, config.Config{}, err
	}
	return vm, cfg, nil
}

// printTransport writes the outbound envelope to stdout.
func printTransport(message string) int {
	fmt.Println(message)
	return 0
}

// flush waits out the debounce window so a scheduled persist fires
// before the process exits.
func flush(cfg config.Config) {
	time.Sleep(cfg.DebounceWindow() + 100*time.Millisecond)
}

func newShowCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			vm, _, err := buildViewModel(*configPath)
			if err != nil {
				return err
			}
			defer vm.Close()

			snapshot := vm.Snapshot()

			fmt.Printf("%s\n", formatBold(vm.ModuleName()))
			fmt.Printf("  enabled:  %v", vm.Enabled.Get())
			if vm.Locked.Get() {
				fmt.Printf(" (locked by policy)")
			}
			fmt.Println()
			fmt.Printf("  shortcut: %s\n", formatHotkey(snapshot.ActivationShortcut))
			fmt.Printf("  language: %s\n", valueOrNone(snapshot.PreferredLanguage))
			return nil
		},
	}
}

func newLanguagesCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List recognition languages and the current selection",
		RunE: func(cmd *cobra.Command, args []string) error {
			vm, _, err := buildViewModel(*configPath)
			if err != nil {
				return err
			}
			defer vm.Close()

			selection := vm.Selection()
			if len(selection.Candidates) == 0 {
				fmt.Println("No recognition languages available.")
				return nil
			}

			return renderLanguageTable(selection)
		},
	}
}

func newSetLanguageCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "set-language INDEX",
		Short: "Select the preferred recognition language by index",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid index %q: %w", args[0], err)
			}

			vm, cfg, err := buildViewModel(*configPath)
			if err != nil {
				return err
			}
			defer vm.Close()

			if err := vm.SetSelectedLanguage(index); err != nil {
				return err
			}

			// The selection path is debounced; wait for the persist to
			// fire before exiting.
			flush(cfg)
			return nil
		},
	}
}

func newSetShortcutCmd(configPath *string) *cobra.Command {
	var hotkey settings.Hotkey

	cmd := &cobra.Command{
		Use:   "set-shortcut",
		Short: "Set the activation shortcut",
		RunE: func(cmd *cobra.Command, args []string) error {
			vm, _, err := buildViewModel(*configPath)
			if err != nil {
				return err
			}
			defer vm.Close()

			vm.SetActivationShortcut(&hotkey)
			return nil
		},
	}

	cmd.Flags().BoolVar(&hotkey.Win, "win", false, "Windows/super modifier")
	cmd.Flags().BoolVar(&hotkey.Ctrl, "ctrl", false, "Control modifier")
	cmd.Flags().BoolVar(&hotkey.Alt, "alt", false, "Alt modifier")
	cmd.Flags().BoolVar(&hotkey.Shift, "shift", false, "Shift modifier")
	cmd.Flags().IntVar(&hotkey.Code, "code", 0, "Virtual key code")
	cmd.Flags().StringVar(&hotkey.Key, "key", "", "Key label")

	return cmd
}

func newEnableCmd(configPath *string, enable bool) *cobra.Command {
	use, short := "enable", "Enable the feature"
	if !enable {
		use, short = "disable", "Disable the feature"
	}

	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			vm, _, err := buildViewModel(*configPath)
			if err != nil {
				return err
			}
			defer vm.Close()

			if !vm.SetEnabled(enable) {
				fmt.Fprintln(os.Stderr, "The enabled state is locked by administrative policy.")
				return nil
			}
			return nil
		},
	}
}

func newConfigCmd(configPath *string) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration",
	}

	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as TOML",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			out, err := cfg.Marshal()
			if err != nil {
				return err
			}
			fmt.Print(out)
			return nil
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "defaults",
		Short: "Print the built-in defaults file",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Print(config.GetDefaultConfigContent())
		},
	})

	return configCmd
}

func valueOrNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}

func formatHotkey(hk *settings.Hotkey) string {
	if hk == nil {
		return "(none)"
	}
	out := ""
	if hk.Win {
		out += "Win+"
	}
	if hk.Ctrl {
		out += "Ctrl+"
	}
	if hk.Alt {
		out += "Alt+"
	}
	if hk.Shift {
		out += "Shift+"
	}
	if hk.Key != "" {
		return out + hk.Key
	}
	return fmt.Sprintf("%svk(%d)", out, hk.Code)
}
