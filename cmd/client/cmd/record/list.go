package record

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"reviewroom/cmd/client/cmd/types"
	"reviewroom/cmd/client/cmd/ui"
)

var listFormat string

var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your reviews in the order they were added",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.AppFrom(cmd.Context())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		records, err := app.ListRecords(cmd.Context())
		if err != nil {
			return err
		}

		switch listFormat {
		case "json":
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(records)
		case "table":
			if len(records) == 0 {
				ui.Warn(out, "No reviews yet")
				return nil
			}
			fmt.Fprint(out, RenderRecords(records, app.State().Selection))
			fmt.Fprintf(out, "%d review(s)\n", len(records))
			return nil
		default:
			return fmt.Errorf("unknown format %q", listFormat)
		}
	},
}

func init() {
	ListCmd.Flags().StringVarP(&listFormat, "format", "f", "table", "output format (table, json)")
}
