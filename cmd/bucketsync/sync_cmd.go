package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"bucketsync/internal/flags"
	"bucketsync/internal/service"
	"bucketsync/internal/ui/prompt"
	"bucketsync/pkg/reconcile"
	"bucketsync/pkg/storage"
)

type syncFlags struct {
	checksum bool
	backup   bool
	latest   bool
	force    bool
	up       bool
}

func newUploadCmd(app *appContainer, rf *rootFlags) *cobra.Command {
	cmdFlags := syncFlags{}

	uploadCmd := &cobra.Command{
		Use:   "upload [path]...",
		Short: "Upload files to the storage backend",
		Long: `Uploads one or more files from the working directory to the backend.
A file whose content hash already matches the stored object is skipped.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			backendName, err := resolveBackend(rf.backend, app.BackendFactory)
			if err != nil {
				return err
			}

			svc, remote, err := app.newSyncService(cmd.Context(), backendName, rf.workdir)
			if err != nil {
				return err
			}
			defer remote.Close()

			opts := service.Options{Checksum: cmdFlags.checksum, Backup: cmdFlags.backup}
			for _, arg := range args {
				result, err := svc.Upload(cmd.Context(), storage.NewRef(arg), opts)
				if err != nil {
					return fmt.Errorf("error uploading '%s' to %s: %w", arg, backendName, err)
				}
				fmt.Println(app.SyncFormatter.FormatResult(result))
			}
			return nil
		},
	}
	uploadCmd.Flags().BoolVar(&cmdFlags.checksum, flags.Checksum, true, "Compare content hashes and skip unchanged files. Disable to overwrite unconditionally.")
	uploadCmd.Flags().BoolVar(&cmdFlags.backup, flags.Backup, false, "Buffer the previous stored content and restore it if the overwrite fails.")
	return uploadCmd
}

func newDownloadCmd(app *appContainer, rf *rootFlags) *cobra.Command {
	cmdFlags := syncFlags{}

	downloadCmd := &cobra.Command{
		Use:   "download [path]...",
		Short: "Download files from the storage backend",
		Long: `Downloads one or more objects from the backend into the working
directory. A local file whose content hash already matches is skipped.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			backendName, err := resolveBackend(rf.backend, app.BackendFactory)
			if err != nil {
				return err
			}

			svc, remote, err := app.newSyncService(cmd.Context(), backendName, rf.workdir)
			if err != nil {
				return err
			}
			defer remote.Close()

			opts := service.Options{Checksum: cmdFlags.checksum, Backup: cmdFlags.backup}
			for _, arg := range args {
				ref := storage.NewRef(arg)

				var result service.Result
				if cmdFlags.latest {
					result, err = svc.DownloadLatest(cmd.Context(), ref, opts)
				} else {
					result, err = svc.Download(cmd.Context(), ref, opts)
				}
				if err != nil {
					return fmt.Errorf("error downloading '%s' from %s: %w", arg, backendName, err)
				}
				fmt.Println(app.SyncFormatter.FormatResult(result))
			}
			return nil
		},
	}
	downloadCmd.Flags().BoolVar(&cmdFlags.checksum, flags.Checksum, true, "Compare content hashes and skip unchanged files. Disable to overwrite unconditionally.")
	downloadCmd.Flags().BoolVar(&cmdFlags.backup, flags.Backup, false, "Buffer the previous local content and restore it if the overwrite fails.")
	downloadCmd.Flags().BoolVar(&cmdFlags.latest, flags.Latest, false, "Fetch the newest stored version on backends that keep versions.")
	return downloadCmd
}

func newDeleteCmd(app *appContainer, rf *rootFlags) *cobra.Command {
	cmdFlags := syncFlags{}

	deleteCmd := &cobra.Command{
		Use:   "delete [path]...",
		Short: "Delete objects from the storage backend",
		Long: `Deletes one or more objects from the backend. Each deletion must be
confirmed by typing the path back, unless --force is given. Deleting an
object that does not exist is reported, not treated as a failure.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			backendName, err := resolveBackend(rf.backend, app.BackendFactory)
			if err != nil {
				return err
			}

			svc, remote, err := app.newSyncService(cmd.Context(), backendName, rf.workdir)
			if err != nil {
				return err
			}
			defer remote.Close()

			prompter := prompt.NewStandardPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
			for _, arg := range args {
				ref := storage.NewRef(arg)

				if !cmdFlags.force {
					message := fmt.Sprintf("This will permanently delete '%s' from the %s backend.", ref, backendName)
					confirmed, err := prompter.Confirm(message, ref.String())
					if err != nil {
						return err
					}
					if !confirmed {
						fmt.Printf("Skipped '%s': confirmation did not match\n", ref)
						continue
					}
				}

				deleted, err := svc.Delete(cmd.Context(), ref)
				if err != nil {
					return fmt.Errorf("error deleting '%s' from %s: %w", arg, backendName, err)
				}
				if deleted {
					fmt.Printf("Deleted '%s' from %s\n", ref, backendName)
				} else {
					fmt.Printf("'%s' does not exist on %s, nothing to delete\n", ref, backendName)
				}
			}
			return nil
		},
	}
	deleteCmd.Flags().BoolVarP(&cmdFlags.force, flags.Force, flags.ForceShort, false, "Skip the interactive confirmation prompt.")
	return deleteCmd
}

func newMirrorCmd(app *appContainer, rf *rootFlags) *cobra.Command {
	cmdFlags := syncFlags{}

	mirrorCmd := &cobra.Command{
		Use:   "mirror [prefix]",
		Short: "Reconcile every path under a prefix",
		Long: `Mirrors all objects under a prefix from the backend into the working
directory, or the other way around with --up. Paths whose content
already matches are skipped. An empty prefix mirrors everything.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			backendName, err := resolveBackend(rf.backend, app.BackendFactory)
			if err != nil {
				return err
			}

			svc, remote, err := app.newSyncService(cmd.Context(), backendName, rf.workdir)
			if err != nil {
				return err
			}
			defer remote.Close()

			var prefix storage.Ref
			if len(args) > 0 {
				prefix = storage.NewRef(args[0])
			}

			intent := reconcile.Download
			if cmdFlags.up {
				intent = reconcile.Upload
			}

			opts := service.Options{Checksum: cmdFlags.checksum, Backup: cmdFlags.backup}
			results, err := svc.Mirror(cmd.Context(), prefix, intent, opts)
			if err != nil {
				return fmt.Errorf("error mirroring '%s' on %s: %w", prefix, backendName, err)
			}

			if len(results) == 0 {
				fmt.Println("Nothing to mirror.")
				return nil
			}
			fmt.Println(app.SyncFormatter.FormatResults(results))
			return nil
		},
	}
	mirrorCmd.Flags().BoolVar(&cmdFlags.up, flags.Up, false, "Push local content to the backend instead of pulling.")
	mirrorCmd.Flags().BoolVar(&cmdFlags.checksum, flags.Checksum, true, "Compare content hashes and skip unchanged files. Disable to overwrite unconditionally.")
	mirrorCmd.Flags().BoolVar(&cmdFlags.backup, flags.Backup, false, "Buffer previous destination content and restore it if an overwrite fails.")
	return mirrorCmd
}
