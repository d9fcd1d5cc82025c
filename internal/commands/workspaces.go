package commands

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/spf13/cobra"
)

func newWorkspacesCommand(flags *rootFlags) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "workspaces",
		Short: "List the workspaces visible to the configured user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), flags, func(app *App) error {
				ws, err := app.Client().GetWorkspaces(cmd.Context())
				if err != nil {
					return err
				}

				if asJSON {
					data, err := json.MarshalIndent(ws, "", "  ")
					if err != nil {
						return fmt.Errorf("failed to marshal workspaces: %w", err)
					}
					cmd.Println(string(data))
					return nil
				}

				ids := make([]string, 0, len(ws))
				for id := range ws {
					ids = append(ids, id)
				}
				slices.Sort(ids)
				for _, id := range ids {
					cmd.Printf("%s\t%s\n", id, ws[id])
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}
