package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/klabast/wb-services/ferien-checker/internal/calendar"
)

// RegionsCmd lists the known region codes.
var RegionsCmd = &cobra.Command{
	Use:   "regions",
	Short: "List region codes and their names",
	Run: func(cmd *cobra.Command, _ []string) {
		printRegions(cmd.OutOrStdout())
	},
}

func printRegions(w io.Writer) {
	for _, r := range calendar.Regions() {
		fmt.Fprintf(w, "%-4s %s\n", r, r.DisplayName())
	}
}
