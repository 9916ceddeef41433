package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/klabast/wb-services/ferien-checker/internal/calendar"
	"github.com/klabast/wb-services/ferien-checker/internal/dataset"
)

// ExamplesCmd prints the classification of a fixed list of days.
var ExamplesCmd = &cobra.Command{
	Use:   "examples",
	Short: "Classify a fixed list of example days",
	Long:  "This command prints the holidays and school vacations for a fixed list of (date, region) pairs using the embedded data.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cmd.SilenceUsage = true
		return printExamples(cmd.OutOrStdout(), dataset.Default())
	},
}

type example struct {
	date   string
	region calendar.Region
}

var exampleDays = []example{
	{"15.07.2026", calendar.NordrheinWestfalen},
	{"01.01.2026", calendar.Bayern},
	{"03.04.2026", calendar.BadenWuerttemberg},
	{"27.07.2026", calendar.Bayern},
	{"05.06.2026", calendar.DenmarkRegion},
	{"27.06.2026", calendar.DenmarkRegion},
	{"15.05.2026", calendar.Hessen},
	{"01.11.2026", calendar.NordrheinWestfalen},
	{"31.10.2026", calendar.Thueringen},
	{"12.03.2026", calendar.Hamburg},
}

func printExamples(w io.Writer, registry *dataset.Registry) error {
	for _, ex := range exampleDays {
		d, err := calendar.ParseDate(ex.date)
		if err != nil {
			return err
		}
		ds, ok := registry.Get(d.Year)
		if !ok {
			return &calendar.UnsupportedYearError{Year: d.Year, Available: registry.Years()}
		}
		c, err := ds.Classify(d, ex.region)
		if err != nil {
			return err
		}

		fmt.Fprintf(w, "%s (%s):\n", d, ex.region.DisplayName())
		if c.Empty() {
			fmt.Fprintf(w, "  Kein Feiertag oder Ferien am %s\n", d)
			continue
		}
		if len(c.Holidays) > 0 {
			fmt.Fprintf(w, "  Feiertag: %s\n", strings.Join(c.Holidays, ", "))
		}
		if len(c.Vacations) > 0 {
			fmt.Fprintf(w, "  Ferien:   %s\n", strings.Join(c.Vacations, ", "))
		}
	}
	return nil
}
