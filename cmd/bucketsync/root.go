package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"bucketsync/internal/flags"
	"bucketsync/internal/provider/factory"
	"bucketsync/internal/provider/registry"
)

// rootFlags are the persistent flags shared by every subcommand.
type rootFlags struct {
	backend string
	workdir string
	debug   bool
}

func newRootCmd(app *appContainer) *cobra.Command {
	rf := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:   "bucketsync",
		Short: "Bucketsync is a command-line tool for one-way file synchronization with object storage.",
		Long: `A CLI to synchronize files between a local directory and an object-storage
bucket. Transfers are content-addressed: unchanged files are skipped by
comparing MD5 content hashes, so repeated runs only move what changed.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if rf.debug {
				app.LogLevel.Set(slog.LevelDebug)
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&rf.backend, flags.Backend, flags.BackendShort, "", "Storage backend to talk to. Defaults to the only configured backend.")
	rootCmd.PersistentFlags().StringVarP(&rf.workdir, flags.Workdir, flags.WorkdirShort, ".", "Root of the local file tree that paths resolve against.")
	rootCmd.PersistentFlags().BoolVarP(&rf.debug, flags.Debug, flags.DebugShort, false, "Enable verbose logging.")

	rootCmd.AddCommand(
		newUploadCmd(app, rf),
		newDownloadCmd(app, rf),
		newDeleteCmd(app, rf),
		newListCmd(app, rf),
		newMirrorCmd(app, rf),
		newConfigCmd(app),
	)
	return rootCmd
}

func Execute(app *appContainer) {
	if err := newRootCmd(app).Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// resolveBackend turns the --backend flag into a concrete backend name.
// Without the flag there must be exactly one configured backend.
func resolveBackend(requested string, f *factory.Factory) (string, error) {
	if requested != "" {
		name := strings.ToLower(strings.TrimSpace(requested))
		if !registry.IsSupported(name) {
			return "", fmt.Errorf("unsupported backend: %s. Supported backends are: %v", requested, registry.GetSupportedBackends())
		}
		return name, nil
	}

	configured := f.GetConfiguredBackends()
	switch len(configured) {
	case 0:
		return "", fmt.Errorf("no backends configured. Use 'bucketsync config set'. Supported backends: %s", strings.Join(registry.GetSupportedBackends(), ", "))
	case 1:
		return configured[0], nil
	default:
		return "", fmt.Errorf("multiple backends configured (%s); pick one with --%s", strings.Join(configured, ", "), flags.Backend)
	}
}
