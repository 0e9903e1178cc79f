package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"bucketsync/internal/flags"
	"bucketsync/pkg/formatter"
	"bucketsync/pkg/storage"
)

type listFlags struct {
	prefix string
	long   bool
}

func newListCmd(app *appContainer, rf *rootFlags) *cobra.Command {
	cmdFlags := listFlags{}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List objects stored on the backend",
		Long: `Lists the objects stored on the backend, optionally restricted to a
prefix. With --long each object's size and content hash are shown.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			backendName, err := resolveBackend(rf.backend, app.BackendFactory)
			if err != nil {
				return err
			}

			remote, err := app.BackendFactory.GetBackend(cmd.Context(), backendName)
			if err != nil {
				return err
			}
			defer remote.Close()

			refs, err := remote.List(cmd.Context(), storage.NewRef(cmdFlags.prefix))
			if err != nil {
				return fmt.Errorf("error listing objects on %s: %w", backendName, err)
			}

			if len(refs) == 0 {
				fmt.Println("No objects found.")
				return nil
			}

			fmt.Println(formatter.FormatHeaderSection(fmt.Sprintf("Objects on %s", backendName)))

			if cmdFlags.long {
				details := make([]formatter.ObjectDetail, 0, len(refs))
				for _, ref := range refs {
					meta, err := remote.Stat(cmd.Context(), ref)
					if err != nil {
						return fmt.Errorf("error inspecting '%s' on %s: %w", ref, backendName, err)
					}
					details = append(details, formatter.ObjectDetail{Ref: ref, Meta: meta})
				}
				fmt.Println(app.SyncFormatter.FormatObjectList(details))
			} else {
				fmt.Println(app.SyncFormatter.FormatRefList(refs))
			}

			fmt.Printf("%d object(s) on %s\n", len(refs), backendName)
			return nil
		},
	}
	listCmd.Flags().StringVar(&cmdFlags.prefix, flags.Prefix, "", "Only list objects whose path starts with this prefix.")
	listCmd.Flags().BoolVar(&cmdFlags.long, flags.Long, false, "Include per-object size and content hash.")
	return listCmd
}
