package output

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/olekukonko/tablewriter"

	"github.com/meera-nair/mailrules/internal/database"
	"github.com/meera-nair/mailrules/internal/email"
)

// Table writes data as a formatted table to stdout
func Table(data interface{}) error {
	return TableTo(os.Stdout, data)
}

// TableTo writes data as a formatted table to the given writer
func TableTo(w io.Writer, data interface{}) error {
	switch v := data.(type) {
	case []database.StoredEmail:
		return emailsTable(w, v)
	case []database.Run:
		return runsTable(w, v)
	case map[string]string:
		return labelsTable(w, v)
	default:
		return fmt.Errorf("unsupported data type for table output: %T", data)
	}
}

func emailsTable(w io.Writer, emails []database.StoredEmail) error {
	if len(emails) == 0 {
		fmt.Fprintln(w, "No emails found.")
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header("FROM", "SUBJECT", "RECEIVED", "READ")

	for _, e := range emails {
		received := ""
		if !e.ReceivedDate.IsZero() {
			received = e.ReceivedDate.Format("Jan 02, 2006 15:04")
		}

		read := "no"
		if e.ReadStatus {
			read = "yes"
		}

		// Show the bare address, not the display-name form
		sender := email.ParseAddress(e.Sender).Email

		if err := table.Append([]string{
			truncate(sender, 35),
			truncate(e.Subject, 45),
			received,
			read,
		}); err != nil {
			return err
		}
	}

	return table.Render()
}

func runsTable(w io.Writer, runs []database.Run) error {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header("STARTED", "PROCESSED", "MATCHED", "DRY RUN")

	for _, r := range runs {
		dry := ""
		if r.DryRun {
			dry = "yes"
		}

		if err := table.Append([]string{
			r.StartedAt.Format("Jan 02, 2006 15:04"),
			fmt.Sprintf("%d", r.Processed),
			fmt.Sprintf("%d", r.Matched),
			dry,
		}); err != nil {
			return err
		}
	}

	return table.Render()
}

func labelsTable(w io.Writer, labels map[string]string) error {
	if len(labels) == 0 {
		fmt.Fprintln(w, "No labels found.")
		return nil
	}

	names := make([]string, 0, len(labels))
	for name := range labels {
		names = append(names, name)
	}
	sort.Strings(names)

	table := tablewriter.NewWriter(w)
	table.Header("LABEL", "ID")

	for _, name := range names {
		if err := table.Append([]string{name, labels[name]}); err != nil {
			return err
		}
	}

	return table.Render()
}

// truncate shortens a string with ellipsis
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
