package record

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"reviewroom/cmd/client/cmd/types"
	"reviewroom/cmd/client/cmd/ui"
	"reviewroom/internal/domain/record"
)

var (
	addType     string
	addQuery    string
	addPick     int
	addTitle    string
	addCreator  string
	addDate     string
	addGenre    string
	addImageURL string
	addRating   int
	addReview   string
)

var AddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a review",
	Long: `Adds a review to your ledger.

Either describe the work with --title and friends, or look it up with
--query and pick one of the matches. A rating of 0 means the default (3);
other values are kept between 1 and 5.`,
	Example: `  reviewroom record add --type movie --title Heat --rating 5
  reviewroom record add --type book --query dune --pick 1 --review "Still great"`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.AppFrom(cmd.Context())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		kind, err := record.ParseType(addType)
		if err != nil {
			return err
		}

		draft := record.Draft{
			Type:        kind,
			Title:       addTitle,
			CreatorName: addCreator,
			ReleaseDate: addDate,
			Genre:       addGenre,
			ImageURL:    addImageURL,
			Rating:      addRating,
			Review:      addReview,
		}

		if addQuery != "" {
			candidate, err := pickCandidate(cmd, kind)
			if err != nil {
				return err
			}
			draft = record.DraftFromCandidate(kind, candidate, addRating, addReview)
		}

		id, err := app.AddRecord(cmd.Context(), draft)
		if err != nil {
			return err
		}

		ui.Success(out, "Added %s %q (%s)", kind.DisplayName(), draft.Title, ShortID(id))
		return nil
	},
}

func pickCandidate(cmd *cobra.Command, kind record.Type) (record.Candidate, error) {
	app, err := types.AppFrom(cmd.Context())
	if err != nil {
		return record.Candidate{}, err
	}
	out := cmd.OutOrStdout()

	candidates, err := app.Search(cmd.Context(), kind, addQuery)
	if err != nil {
		return record.Candidate{}, err
	}
	if len(candidates) == 0 {
		return record.Candidate{}, fmt.Errorf("nothing found for %q", addQuery)
	}

	pick := addPick
	if pick == 0 {
		fmt.Fprint(out, RenderCandidates(candidates))
		answer, err := ui.Prompt(cmd.InOrStdin(), out, "Pick #: ")
		if err != nil {
			return record.Candidate{}, err
		}
		pick, err = strconv.Atoi(answer)
		if err != nil {
			return record.Candidate{}, errors.New("not a number")
		}
	}

	if pick < 1 || pick > len(candidates) {
		return record.Candidate{}, fmt.Errorf("pick must be between 1 and %d", len(candidates))
	}
	return candidates[pick-1], nil
}

func init() {
	f := AddCmd.Flags()
	f.StringVarP(&addType, "type", "t", string(record.TypeMovie), "movie or book")
	f.StringVarP(&addQuery, "query", "q", "", "look the work up instead of describing it")
	f.IntVar(&addPick, "pick", 0, "which search match to use, 1-based (asked when 0)")
	f.StringVar(&addTitle, "title", "", "title")
	f.StringVar(&addCreator, "creator", "", "director or author")
	f.StringVar(&addDate, "date", "", "release date or year")
	f.StringVar(&addGenre, "genre", "", "genre")
	f.StringVar(&addImageURL, "image", "", "poster or cover url")
	f.IntVarP(&addRating, "rating", "r", 0, "rating from 1 to 5")
	f.StringVar(&addReview, "review", "", "review text")
}
