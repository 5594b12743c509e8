package record

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"reviewroom/cmd/client/cmd/types"
	"reviewroom/cmd/client/cmd/ui"
	"reviewroom/internal/domain/record"
)

var searchType string

var SearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Look up movies or books to review",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.AppFrom(cmd.Context())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		kind, err := record.ParseType(searchType)
		if err != nil {
			return err
		}

		candidates, err := app.Search(cmd.Context(), kind, strings.Join(args, " "))
		if err != nil {
			return err
		}
		if len(candidates) == 0 {
			ui.Warn(out, "Nothing found")
			return nil
		}

		fmt.Fprint(out, RenderCandidates(candidates))
		return nil
	},
}

func init() {
	SearchCmd.Flags().StringVarP(&searchType, "type", "t", string(record.TypeMovie), "movie or book")
}
