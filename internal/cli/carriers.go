// Package cli — carriers.go implements the "plnumbers carriers" command.
//
// The carriers command dumps a carrier rule table in scan order, which is
// the quickest way to see why a number resolved to a given carrier when
// ranges overlap.
package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/plnumbers/internal/carrier"
	"github.com/shinji-kodama/plnumbers/internal/model"
	"github.com/shinji-kodama/plnumbers/internal/phonenumber"
)

// NewCarriersCommand creates the "carriers" cobra command.
func NewCarriersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "carriers [country]",
		Short: "Show the carrier rule table of a country",
		Long: `Show the rules of a country's carrier table in the order they are
scanned. The first matching rule decides the carrier.

Examples:
  plnumbers carriers
  plnumbers carriers PL --json`,

		Args: cobra.MaximumNArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			code := phonenumber.DefaultCountry
			if len(args) == 1 {
				code = strings.ToUpper(args[0])
			}

			env, err := loadEnvironment()
			if err != nil {
				return err
			}
			table, err := env.registry.Load(code)
			if err != nil {
				if errors.Is(err, carrier.ErrNoTable) {
					return model.NewCLIError(model.ExitCountryNotFound,
						fmt.Sprintf("no carrier table for %s (available: %s)", code, strings.Join(env.registry.Codes(), ", ")))
				}
				return model.WrapCLIError(model.ExitTableError, "failed to load carrier table", err)
			}
			return printCarrierTable(cmd.OutOrStdout(), code, table)
		},
	}

	return cmd
}

// ruleJSON is the JSON output structure for a single rule.
type ruleJSON struct {
	Order    int            `json:"order"`
	Pattern  string         `json:"pattern"`
	Carrier  string         `json:"carrier"`
	Name     string         `json:"name"`
	LineType model.LineType `json:"lineType"`
}

// describeRules flattens the table into rows in scan order.
func describeRules(table *carrier.Table) []ruleJSON {
	rows := make([]ruleJSON, 0, len(table.Rules))
	for i, r := range table.Rules {
		c := table.Carriers[r.CarrierID]
		rows = append(rows, ruleJSON{
			Order:    i + 1,
			Pattern:  r.Pattern.String(),
			Carrier:  r.CarrierID,
			Name:     c.Name,
			LineType: table.LineTypes[c.Tag],
		})
	}
	return rows
}

func printCarrierTable(w io.Writer, code string, table *carrier.Table) error {
	rows := describeRules(table)

	if IsJSONOutput() {
		return printJSON(w, struct {
			Country string     `json:"country"`
			Rules   []ruleJSON `json:"rules"`
		}{code, rows})
	}

	fmt.Fprintf(w, "%-3s %-30s %-28s %s\n", "#", "CARRIER", "NAME", "TYPE")
	for _, r := range rows {
		fmt.Fprintf(w, "%-3d %-30s %-28s %s\n", r.Order, r.Carrier, r.Name, r.LineType)
		fmt.Fprintf(w, "    %s\n", r.Pattern)
	}
	return nil
}
