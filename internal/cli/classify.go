// Package cli — classify.go implements the "plnumbers classify" command.
//
// classify skips normalization entirely: it takes domestic digits and a
// country code and runs only the carrier rule table.
package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/plnumbers/internal/carrier"
	"github.com/shinji-kodama/plnumbers/internal/phonenumber"
)

// classifyFlags holds the flag values for the classify command.
type classifyFlags struct {
	country string // --country: ISO code of the rule table to use
}

// NewClassifyCommand creates the "classify" cobra command.
func NewClassifyCommand() *cobra.Command {
	flags := &classifyFlags{}

	cmd := &cobra.Command{
		Use:   "classify <digits>",
		Short: "Look up the carrier and line type of domestic digits",
		Long: `Run the carrier rule table for a country against domestic digits,
without any normalization. An unknown country or an unlisted range is
reported as "unknown", never as an error.

Examples:
  plnumbers classify 601234567
  plnumbers classify --country CZ 777123456`,

		Args: cobra.ExactArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := loadEnvironment()
			if err != nil {
				return err
			}
			return runClassify(cmd.OutOrStdout(), env.classifier, strings.ToUpper(flags.country), args[0])
		},
	}

	cmd.Flags().StringVar(&flags.country, "country", phonenumber.DefaultCountry, "ISO country code of the rule table")

	return cmd
}

// classifyJSON is the JSON output of the classify command.
type classifyJSON struct {
	Country string `json:"country"`
	Digits  string `json:"digits"`
	carrier.Result
}

func runClassify(w io.Writer, c *carrier.Classifier, country, digits string) error {
	res := c.Classify(country, digits)
	VerboseLog("Classified %s/%s as %s", country, digits, res.LineType)

	if IsJSONOutput() {
		return printJSON(w, classifyJSON{Country: country, Digits: digits, Result: res})
	}

	fmt.Fprintf(w, "%s %s: %s (%s)\n", country, digits, orDash(res.Carrier), res.LineType)
	return nil
}
