package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/rsvp/pkg/domain/model"
	"github.com/secmon-lab/rsvp/pkg/domain/types"
	"github.com/secmon-lab/rsvp/pkg/usecase"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

type outputFormat string

const (
	formatTable outputFormat = "table"
	formatJSON  outputFormat = "json"
	formatYAML  outputFormat = "yaml"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	groupStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
)

func formatFlag(dest *string) cli.Flag {
	return &cli.StringFlag{
		Name:        "format",
		Aliases:     []string{"o"},
		Usage:       "Output format (table, json, yaml)",
		Value:       string(formatTable),
		Destination: dest,
	}
}

func parseOutputFormat(s string) (outputFormat, error) {
	switch f := outputFormat(s); f {
	case formatTable, formatJSON, formatYAML:
		return f, nil
	default:
		return "", goerr.New("invalid output format", goerr.V("format", s))
	}
}

// encode writes v as JSON or YAML
func encode(w io.Writer, v any, format outputFormat) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return goerr.Wrap(err, "failed to encode JSON")
		}
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return goerr.Wrap(err, "failed to encode YAML")
		}
		if err := enc.Close(); err != nil {
			return goerr.Wrap(err, "failed to encode YAML")
		}
	default:
		return goerr.New("unsupported structured format", goerr.V("format", format))
	}
	return nil
}

func renderTable(w io.Writer, headers []string, rows [][]string) error {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	if _, err := fmt.Fprintln(w, t.Render()); err != nil {
		return goerr.Wrap(err, "failed to write table")
	}
	return nil
}

func formatCounts(c model.AttendanceCounts) string {
	return fmt.Sprintf("All %d | Going %d | Not Going %d | Maybe %d | %s %d",
		c.All, c.Going, c.NotGoing, c.Maybe, types.NoResponseLabel, c.NoResponse)
}

// writeView prints the guest list. In table form the Updated column is
// relative to now.
func writeView(w io.Writer, view *usecase.ManageView, format outputFormat, now time.Time) error {
	if format != formatTable {
		return encode(w, view, format)
	}

	if _, err := fmt.Fprintln(w, formatCounts(view.Counts)); err != nil {
		return goerr.Wrap(err, "failed to write counts")
	}

	for _, g := range view.Groups {
		if _, err := fmt.Fprintf(w, "\n%s (%s)\n", groupStyle.Render(g.Name), g.ID); err != nil {
			return goerr.Wrap(err, "failed to write group header")
		}

		rows := make([][]string, 0, len(g.Members))
		for _, m := range g.Members {
			rows = append(rows, []string{m.ID.String(), m.Name, m.Attendance.Label(), m.UpdatedRelative(now)})
		}
		if err := renderTable(w, []string{"ID", "Name", "Attendance", "Updated"}, rows); err != nil {
			return err
		}
	}
	return nil
}

func writeGuest(w io.Writer, guest *model.Guest, format outputFormat) error {
	if format != formatTable {
		return encode(w, guest, format)
	}
	if _, err := fmt.Fprintf(w, "%s (%s) is now %s\n", guest.Name, guest.ID, guest.Attendance.Label()); err != nil {
		return goerr.Wrap(err, "failed to write guest")
	}
	return nil
}

func writeSubmissions(w io.Writer, submissions []*model.Submission, format outputFormat) error {
	if format != formatTable {
		if submissions == nil {
			submissions = []*model.Submission{}
		}
		return encode(w, submissions, format)
	}

	rows := make([][]string, 0, len(submissions))
	for _, s := range submissions {
		result := "ok"
		if !s.Succeeded {
			result = "failed: " + s.Error
		}
		rows = append(rows, []string{
			s.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			s.Previous.Label(),
			s.Attendance.Label(),
			string(s.Source),
			result,
		})
	}
	return renderTable(w, []string{"Time", "From", "To", "Source", "Result"}, rows)
}

func writeBulkResult(w io.Writer, groupID types.GroupID, updated int, format outputFormat) error {
	if format != formatTable {
		return encode(w, map[string]any{"group_id": groupID, "updated": updated}, format)
	}
	if _, err := fmt.Fprintf(w, "Updated %d member(s) of %s\n", updated, groupID); err != nil {
		return goerr.Wrap(err, "failed to write result")
	}
	return nil
}
