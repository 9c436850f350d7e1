package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nfrund/zippytrip/cmd/zippy-cli/internal/format"
	"github.com/nfrund/zippytrip/internal/catalog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var (
	catalogFormat string
	catalogDir    string
)

var catalogCmd = &cobra.Command{
	Use:       "catalog [flights|buses|destinations|deals]",
	Short:     "List the travel catalog",
	Long:      `Lists one section of the catalog. Without --dir the embedded catalog is used.`,
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"flights", "buses", "destinations", "deals"},
	RunE: func(cmd *cobra.Command, args []string) error {
		if !format.Valid(catalogFormat) {
			return fmt.Errorf("unknown format %q", catalogFormat)
		}
		section := "flights"
		if len(args) == 1 {
			section = args[0]
		}

		c, err := loadCatalog(catalogDir)
		if err != nil {
			return err
		}

		var (
			data    any
			headers []string
			rows    [][]string
		)
		switch section {
		case "flights":
			data = c.Flights()
			headers = []string{"ID", "ROUTE", "DEPARTS", "AIRLINE", "PRICE", "SEATS"}
			for _, f := range c.Flights() {
				rows = append(rows, []string{f.ID, f.From + " -> " + f.To, f.Departure, f.Airline, price(f.Price), strconv.Itoa(f.SeatsAvailable)})
			}
		case "buses":
			data = c.Buses()
			headers = []string{"ID", "ROUTE", "DEPARTS", "OPERATOR", "TYPE", "PRICE", "SEATS"}
			for _, b := range c.Buses() {
				rows = append(rows, []string{b.ID, b.From + " -> " + b.To, b.Departure, b.Operator, b.BusType, price(b.Price), strconv.Itoa(b.SeatsAvailable)})
			}
		case "destinations":
			data = c.Destinations()
			headers = []string{"SLUG", "NAME", "RATING", "HIGHLIGHTS"}
			for _, d := range c.Destinations() {
				rows = append(rows, []string{d.Slug(), d.DisplayName(), strconv.FormatFloat(d.Rating, 'f', 1, 64), format.Truncate(strings.Join(d.Highlights, ", "), 40)})
			}
		case "deals":
			data = c.Deals()
			headers = []string{"ID", "TITLE", "DISCOUNT", "VALID UNTIL"}
			for _, d := range c.Deals() {
				rows = append(rows, []string{d.ID, d.Title, d.Discount, d.ValidUntil})
			}
		}

		if catalogFormat == format.JSON {
			return format.WriteJSON(cmd.OutOrStdout(), data)
		}
		return format.WriteTable(cmd.OutOrStdout(), headers, rows)
	},
}

func loadCatalog(dir string) (*catalog.Catalog, error) {
	if dir == "" {
		return catalog.Default()
	}
	return catalog.Load(afero.NewOsFs(), dir)
}

func price(v float64) string {
	return "$" + strconv.FormatFloat(v, 'f', 2, 64)
}

func init() {
	catalogCmd.Flags().StringVarP(&catalogFormat, "format", "f", format.Table, "output format (table or json)")
	catalogCmd.Flags().StringVar(&catalogDir, "dir", "", "directory holding flights.json, buses.json, destinations.json and deals.json")
	rootCmd.AddCommand(catalogCmd)
}
