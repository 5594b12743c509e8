package room

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	recordCmd "reviewroom/cmd/client/cmd/record"
	"reviewroom/cmd/client/cmd/ui"
	"reviewroom/internal/app/client"
	"reviewroom/internal/domain/record"
)

// shown by open, view and selection
var recordsFormat string

// RoomCmd groups selection and sharing commands.
var RoomCmd = &cobra.Command{
	Use:   "room",
	Short: "Select reviews and share them through rooms",
	Long: `Build a selection of your reviews, turn it into a room and open rooms
other people shared with you.`,
}

// ParseRoomRef accepts a room id or a share link such as /?room_id=<id>.
func ParseRoomRef(ref string) (uuid.UUID, error) {
	ref = strings.TrimSpace(ref)
	if i := strings.Index(ref, "?"); i >= 0 {
		values, err := url.ParseQuery(ref[i+1:])
		if err == nil && values.Get("room_id") != "" {
			ref = values.Get("room_id")
		}
	}

	id, err := uuid.Parse(ref)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%q is not a room id or link", ref)
	}
	return id, nil
}

func renderRooms(rooms []client.RoomSummary) string {
	rows := make([][]string, 0, len(rooms))
	for _, r := range rooms {
		lock := "public"
		if r.Protected {
			lock = "password"
		}
		rows = append(rows, []string{
			ui.Truncate(r.Name, 32),
			lock,
			fmt.Sprint(r.RecordCount),
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
			r.Link,
		})
	}

	return ui.Table(
		[]string{"Name", "Access", "Records", "Created", "Link"},
		rows,
		[]ui.Align{ui.AlignLeft, ui.AlignLeft, ui.AlignRight},
	)
}

// writeRecords prints shared records as detail blocks, a table or json.
func writeRecords(out io.Writer, records []record.Record, format string) error {
	switch format {
	case "details", "":
		fmt.Fprint(out, recordCmd.RenderRecordDetails(records))
	case "table":
		fmt.Fprint(out, recordCmd.RenderRecords(records, nil))
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
	return nil
}

func init() {
	for _, c := range []*cobra.Command{OpenCmd, ViewCmd, SelectionCmd} {
		c.Flags().StringVarP(&recordsFormat, "format", "f", "details", "output format (details, table, json)")
	}
}
