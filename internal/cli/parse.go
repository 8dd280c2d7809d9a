// Package cli — parse.go implements the "plnumbers parse" command.
//
// The parse command runs every input through the parser and prints one row
// per number. Inputs come from positional arguments or, with --file, one
// per line from a file ("-" reads stdin). A rejected input does not stop
// the run; it is reported and the command exits with ExitInvalidNumber.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/plnumbers/internal/model"
	"github.com/shinji-kodama/plnumbers/internal/phonenumber"
)

// parseFlags holds the flag values for the parse command.
type parseFlags struct {
	file string // --file: read inputs from a file, "-" for stdin
}

// NewParseCommand creates the "parse" cobra command.
func NewParseCommand() *cobra.Command {
	flags := &parseFlags{}

	cmd := &cobra.Command{
		Use:   "parse [number...]",
		Short: "Parse and classify phone numbers",
		Long: `Parse free-form phone numbers and report their digits, country,
dialing prefix, carrier and line type.

Examples:
  plnumbers parse 601234567
  plnumbers parse "+48 601 234 567" "0048 22 123 45 67"
  plnumbers parse --file contacts.txt --json
  cat contacts.txt | plnumbers parse --file -`,

		RunE: func(cmd *cobra.Command, args []string) error {
			inputs, err := collectInputs(cmd.InOrStdin(), flags.file, args)
			if err != nil {
				return err
			}
			env, err := loadEnvironment()
			if err != nil {
				return err
			}
			return runParse(cmd.OutOrStdout(), env.parser, inputs)
		},
	}

	cmd.Flags().StringVarP(&flags.file, "file", "f", "",
		`Read numbers from a file, one per line ("-" for stdin)`)

	return cmd
}

// collectInputs returns the positional arguments followed by the lines of
// file. Blank lines and lines starting with # are skipped.
func collectInputs(stdin io.Reader, file string, args []string) ([]string, error) {
	inputs := append([]string(nil), args...)

	if file != "" {
		r := stdin
		if file != "-" {
			f, err := os.Open(file)
			if err != nil {
				return nil, model.WrapCLIError(model.ExitGeneralError,
					fmt.Sprintf("failed to open input file %s", file), err)
			}
			defer func() { _ = f.Close() }()
			r = f
		}

		lines, err := readLines(r)
		if err != nil {
			return nil, model.WrapCLIError(model.ExitGeneralError, "failed to read inputs", err)
		}
		inputs = append(inputs, lines...)
	}

	if len(inputs) == 0 {
		return nil, model.NewCLIError(model.ExitGeneralError,
			"no numbers given: pass them as arguments or use --file")
	}
	return inputs, nil
}

// readLines reads non-empty, non-comment lines. Lines are not trimmed
// beyond what is needed to detect comments, so the raw input reaches the
// parser untouched.
func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		lines = append(lines, line)
	}
	return lines, scanner.Err()
}

// parseFailure records an input the parser rejected.
type parseFailure struct {
	Input   string `json:"input"`
	Reason  string `json:"reason"`
	Length  int    `json:"length"`
	Message string `json:"message"`
}

// runParse parses every input, prints the results and returns a CLIError
// with ExitInvalidNumber when at least one input was rejected.
func runParse(w io.Writer, p *phonenumber.Parser, inputs []string) error {
	numbers := make([]*phonenumber.Number, 0, len(inputs))
	failures := make([]parseFailure, 0)

	for _, in := range inputs {
		n, err := p.Parse(in)
		if err != nil {
			var invalid *phonenumber.InvalidNumberError
			if !errors.As(err, &invalid) {
				return err
			}
			VerboseLog("Rejected %q: %v", in, err)
			failures = append(failures, parseFailure{
				Input:   in,
				Reason:  invalid.Reason.String(),
				Length:  invalid.Length,
				Message: invalid.Error(),
			})
			continue
		}
		VerboseLog("Parsed %q as %s", in, n.Display())
		numbers = append(numbers, n)
	}

	if err := printParseResult(w, numbers, failures); err != nil {
		return err
	}

	if len(failures) > 0 {
		return model.NewCLIError(model.ExitInvalidNumber,
			fmt.Sprintf("%d of %d numbers rejected", len(failures), len(inputs)))
	}
	return nil
}

// printParseResult outputs the parsed numbers in text or JSON format.
func printParseResult(w io.Writer, numbers []*phonenumber.Number, failures []parseFailure) error {
	if IsJSONOutput() {
		return printJSON(w, struct {
			Numbers []*phonenumber.Number `json:"numbers"`
			Errors  []parseFailure        `json:"errors"`
		}{numbers, failures})
	}

	if len(numbers) > 0 {
		fmt.Fprintf(w, "%-22s %-17s %-8s %-7s %-24s %s\n",
			"INPUT", "DIGITS", "COUNTRY", "PREFIX", "CARRIER", "TYPE")
		for _, n := range numbers {
			carrierName, _ := n.Carrier()
			fmt.Fprintf(w, "%-22s %-17s %-8s %-7s %-24s %s\n",
				quoteInput(n.RawInput()),
				n.Digits(),
				orDash(n.Country()),
				orDash(n.DialingPrefix()),
				orDash(carrierName),
				n.LineType(),
			)
		}
	}

	for _, f := range failures {
		fmt.Fprintf(w, "%s: %s\n", quoteInput(f.Input), f.Message)
	}
	return nil
}

// orDash renders an absent value as "-".
func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// quoteInput quotes inputs containing whitespace so table columns stay
// readable.
func quoteInput(s string) string {
	if strings.ContainsAny(s, " \t") || s == "" {
		return fmt.Sprintf("%q", s)
	}
	return s
}
