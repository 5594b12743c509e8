package record

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"reviewroom/cmd/client/cmd/ui"
	"reviewroom/internal/domain/record"
)

// RecordCmd groups the ledger commands.
var RecordCmd = &cobra.Command{
	Use:   "record",
	Short: "Manage your reviews",
	Long:  `Add, list, search for and delete movie and book reviews.`,
}

// ShortID is the prefix shown in tables; commands accept it back.
func ShortID(id uuid.UUID) string {
	return id.String()[:8]
}

func Stars(rating int) string {
	rating = record.ClampRating(rating)
	return strings.Repeat("★", rating) + strings.Repeat("☆", record.MaxRating-rating)
}

// RenderRecords draws records as a table. Ids in selected get a mark.
func RenderRecords(records []record.Record, selected []uuid.UUID) string {
	marked := make(map[uuid.UUID]struct{}, len(selected))
	for _, id := range selected {
		marked[id] = struct{}{}
	}

	rows := make([][]string, 0, len(records))
	for _, r := range records {
		mark := ""
		if _, ok := marked[r.ID]; ok {
			mark = "●"
		}
		rows = append(rows, []string{
			mark,
			ShortID(r.ID),
			r.Type.DisplayName(),
			ui.Truncate(r.Title, 40),
			ui.Truncate(r.CreatorName, 24),
			r.ReleaseDate,
			Stars(r.Rating),
		})
	}

	return ui.Table(
		[]string{"", "ID", "Type", "Title", "Creator", "Date", "Rating"},
		rows,
		nil,
	)
}

const reviewWidth = 72

// RenderRecordDetails prints every field of each record as a block, review
// text included. Empty fields are skipped.
func RenderRecordDetails(records []record.Record) string {
	var b strings.Builder
	for i, r := range records {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s  %s [%s]\n", Stars(r.Rating), r.Title, r.Type.DisplayName())
		field := func(label, value string) {
			if value != "" {
				fmt.Fprintf(&b, "  %-9s %s\n", label+":", value)
			}
		}
		field("ID", ShortID(r.ID))
		field(r.Type.CreatorLabel(), r.CreatorName)
		field("Released", r.ReleaseDate)
		field("Genre", r.Genre)
		field("Image", r.ImageURL)
		if r.Review != "" {
			for _, line := range strings.Split(text.WrapSoft(r.Review, reviewWidth), "\n") {
				fmt.Fprintf(&b, "  | %s\n", line)
			}
		}
	}
	return b.String()
}

func RenderCandidates(candidates []record.Candidate) string {
	rows := make([][]string, 0, len(candidates))
	for i, c := range candidates {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			ui.Truncate(c.Title, 40),
			ui.Truncate(c.CreatorName, 24),
			c.Date,
			ui.Truncate(c.Genre, 20),
		})
	}

	return ui.Table(
		[]string{"#", "Title", "Creator", "Date", "Genre"},
		rows,
		[]ui.Align{ui.AlignRight},
	)
}
