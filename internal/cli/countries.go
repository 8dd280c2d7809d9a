// Package cli — countries.go implements the "plnumbers countries" command.
//
// The countries command prints the country reference table: every ISO code
// with its dialing prefix, whether a carrier table is registered for it,
// or with --prefix a single reverse lookup.
package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/plnumbers/internal/carrier"
	"github.com/shinji-kodama/plnumbers/internal/country"
	"github.com/shinji-kodama/plnumbers/internal/model"
)

// countriesFlags holds the flag values for the countries command.
type countriesFlags struct {
	prefix string // --prefix: reverse-lookup a single dialing prefix
}

// NewCountriesCommand creates the "countries" cobra command.
func NewCountriesCommand() *cobra.Command {
	flags := &countriesFlags{}

	cmd := &cobra.Command{
		Use:   "countries [code...]",
		Short: "List country codes and dialing prefixes",
		Long: `List the country reference table used to resolve dialing prefixes.

Examples:
  plnumbers countries
  plnumbers countries PL CZ
  plnumbers countries --prefix 48
  plnumbers countries --json`,

		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := loadEnvironment()
			if err != nil {
				return err
			}
			entries, err := selectCountries(env.countries, flags.prefix, args)
			if err != nil {
				return err
			}
			return printCountries(cmd.OutOrStdout(), entries, env.registry)
		},
	}

	cmd.Flags().StringVar(&flags.prefix, "prefix", "", "Reverse-lookup the country for a dialing prefix")

	return cmd
}

// selectCountries picks the entries to print. With neither a prefix nor
// codes it returns the whole table.
func selectCountries(table *country.Table, prefix string, codes []string) ([]country.Entry, error) {
	if prefix != "" {
		prefix = strings.TrimLeft(prefix, "+")
		code, ok := table.CodeFor(prefix)
		if !ok {
			return nil, model.NewCLIError(model.ExitCountryNotFound,
				fmt.Sprintf("no country for dialing prefix %q", prefix))
		}
		return []country.Entry{{Code: code, Prefix: prefix}}, nil
	}

	if len(codes) == 0 {
		return table.Entries(), nil
	}

	entries := make([]country.Entry, 0, len(codes))
	for _, code := range codes {
		code = strings.ToUpper(code)
		prefix, ok := table.PrefixFor(code)
		if !ok {
			return nil, model.NewCLIError(model.ExitCountryNotFound,
				fmt.Sprintf("unknown country code %q", code))
		}
		entries = append(entries, country.Entry{Code: code, Prefix: prefix})
	}
	return entries, nil
}

// countryJSON is the JSON output structure for a single country.
type countryJSON struct {
	Code         string `json:"code"`
	Prefix       string `json:"prefix"`
	CarrierTable bool   `json:"carrierTable"`
}

// printCountries outputs the entries as a text table or JSON.
//
// The table format is:
//
//	CODE  PREFIX  CARRIERS
//	PL    +48     yes
//	CZ    +420    -
func printCountries(w io.Writer, entries []country.Entry, registry *carrier.Registry) error {
	if IsJSONOutput() {
		result := struct {
			Countries []countryJSON `json:"countries"`
		}{Countries: make([]countryJSON, 0, len(entries))}

		for _, e := range entries {
			result.Countries = append(result.Countries, countryJSON{
				Code:         e.Code,
				Prefix:       e.Prefix,
				CarrierTable: registry.Has(e.Code),
			})
		}
		return printJSON(w, result)
	}

	fmt.Fprintf(w, "%-5s %-7s %s\n", "CODE", "PREFIX", "CARRIERS")
	for _, e := range entries {
		fmt.Fprintf(w, "%-5s %-7s %s\n", e.Code, "+"+e.Prefix, yesOrDash(registry.Has(e.Code)))
	}
	return nil
}

func yesOrDash(b bool) string {
	if b {
		return "yes"
	}
	return "-"
}
