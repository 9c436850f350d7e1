package cmd

import (
	"fmt"
	"strconv"

	"github.com/nfrund/zippytrip/cmd/zippy-cli/internal/format"
	"github.com/nfrund/zippytrip/internal/gate"
	"github.com/spf13/cobra"
)

var routesFormat string

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "Print the navigation gate decision table",
	Long: `Evaluates every page path against each session state (anonymous,
signed in, onboarded) and prints whether the page renders or redirects.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !format.Valid(routesFormat) {
			return fmt.Errorf("unknown format %q", routesFormat)
		}
		rules := gate.Table()
		out := cmd.OutOrStdout()

		if routesFormat == format.JSON {
			type row struct {
				Path      string `json:"path"`
				SignedIn  bool   `json:"signed_in"`
				Onboarded bool   `json:"onboarded"`
				Decision  string `json:"decision"`
			}
			rows := make([]row, 0, len(rules))
			for _, r := range rules {
				rows = append(rows, row{r.Path, r.SignedIn, r.Onboarded, describe(r.Decision)})
			}
			return format.WriteJSON(out, rows)
		}

		rows := make([][]string, 0, len(rules))
		for _, r := range rules {
			rows = append(rows, []string{
				r.Path,
				strconv.FormatBool(r.SignedIn),
				strconv.FormatBool(r.Onboarded),
				describe(r.Decision),
			})
		}
		return format.WriteTable(out, []string{"PATH", "SIGNED IN", "ONBOARDED", "DECISION"}, rows)
	},
}

func describe(d gate.Decision) string {
	if d.Render {
		if d.Param != "" {
			return fmt.Sprintf("render %s (%s)", d.Page, d.Param)
		}
		return "render " + string(d.Page)
	}
	return "redirect " + d.Redirect
}

func init() {
	routesCmd.Flags().StringVarP(&routesFormat, "format", "f", format.Table, "output format (table or json)")
	rootCmd.AddCommand(routesCmd)
}
