package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/klabast/wb-services/ferien-checker/internal/app"
	"github.com/klabast/wb-services/ferien-checker/internal/calendar"
	"github.com/klabast/wb-services/ferien-checker/internal/compare"
)

const (
	compareUsage   = "compare"
	compareShort   = "Compare a date range of a German state with Denmark"
	compareLong    = "This command lists the holidays and school vacations of a German state and of Denmark within a date range."
	compareExample = "ferien-checker compare --from 15.07.2026 --to 31.08.2026 --region NRW"
)

var (
	// CompareCmd is the compare command.
	CompareCmd = &cobra.Command{
		Use:     compareUsage,
		Short:   compareShort,
		Long:    compareLong,
		Example: compareExample,
		RunE:    executeCompare,
	}
	flagFrom   string
	flagTo     string
	flagRegion string
	flagYear   int
	flagDaily  bool
	flagJSON   bool
)

// nolint:gochecknoinits // cobra's standard way to initialize flags
func init() {
	CompareCmd.Flags().StringVar(&flagFrom, "from", "", "start date (DD.MM.YYYY)")
	CompareCmd.Flags().StringVar(&flagTo, "to", "", "end date (DD.MM.YYYY)")
	CompareCmd.Flags().StringVarP(&flagRegion, "region", "r", "", "German state code, e.g. NRW (default from config)")
	CompareCmd.Flags().IntVarP(&flagYear, "year", "y", 0, "reference year (default: year of --from)")
	CompareCmd.Flags().BoolVar(&flagDaily, "daily", false, "walk the range day by day")
	CompareCmd.Flags().BoolVar(&flagJSON, "json", false, "print the result as JSON")
}

func executeCompare(cmd *cobra.Command, _ []string) error {
	cmd.SilenceUsage = true

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	registry, _, _, err := loadRegistry(ctx, cfg)
	if err != nil {
		return err
	}
	source, err := buildSource(cfg, registry)
	if err != nil {
		return err
	}

	region := flagRegion
	if region == "" {
		region = cfg.DefaultRegion
	}
	year := flagYear
	if year == 0 {
		year = yearOf(flagFrom, cfg.DefaultYear)
	}
	q, err := compare.ParseQuery(flagFrom, flagTo, region, year)
	if err != nil {
		return errors.New(app.Localize(language.German, err))
	}

	c := compare.New(source)
	var res compare.Result
	if flagDaily {
		res, err = c.CompareDaily(ctx, q)
	} else {
		res, err = c.Compare(ctx, q)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", app.Localize(language.German, err), err)
	}

	if flagJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	printResult(cmd.OutOrStdout(), q, res)
	return nil
}

// yearOf returns the year of a DD.MM.YYYY date, or fallback if s is malformed.
// Malformed dates are reported later by ParseQuery.
func yearOf(s string, fallback int) int {
	d, err := calendar.ParseDate(strings.TrimSpace(s))
	if err != nil {
		return fallback
	}
	return d.Year
}

func printResult(w io.Writer, q compare.Query, res compare.Result) {
	fmt.Fprintf(w, "Zeitraum: %s - %s (%d Tage)\n\n", q.From, q.To, q.Days()+1)
	printCountry(w, q.Region.DisplayName(), res.DEHolidays, res.DEVacations)
	fmt.Fprintln(w)
	printCountry(w, "Dänemark", res.DKHolidays, res.DKVacations)
}

func printCountry(w io.Writer, title string, holidays, vacations []string) {
	fmt.Fprintf(w, "%s:\n", title)
	if len(holidays) == 0 && len(vacations) == 0 {
		fmt.Fprintf(w, "  %s\n", app.NoMatchesMessage(language.German))
		return
	}
	if len(holidays) > 0 {
		fmt.Fprintf(w, "  Feiertage: %s\n", strings.Join(holidays, ", "))
	}
	if len(vacations) > 0 {
		fmt.Fprintf(w, "  Ferien:    %s\n", strings.Join(vacations, ", "))
	}
}
