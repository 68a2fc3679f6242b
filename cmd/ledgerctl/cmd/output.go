package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

func validateFormat(format string) error {
	switch format {
	case formatTable, formatJSON, formatYAML:
		return nil
	}
	return fmt.Errorf("unknown output format %q, expected table, json or yaml", format)
}

// render writes v to the command's stdout in the selected format. The table
// callback is used for the table format.
func (a *app) render(cmd *cobra.Command, v any, table func(tw *tabwriter.Writer)) error {
	out := cmd.OutOrStdout()
	switch a.output {
	case formatJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML:
		return writeYAML(out, v)
	default:
		tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		table(tw)
		return tw.Flush()
	}
}

// writeYAML renders v through its JSON form so field names and embedded
// structs match the API.
func writeYAML(w io.Writer, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var generic any
	if err := dec.Decode(&generic); err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(generic); err != nil {
		return err
	}
	return enc.Close()
}

// reportWarnings prints reconciliation warnings to stderr. A command that
// was saved with warnings still succeeds.
func reportWarnings(cmd *cobra.Command, outcome domain.Outcome) {
	for _, w := range outcome.Warnings {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", w)
	}
}

func row(tw *tabwriter.Writer, cols ...any) {
	parts := make([]string, len(cols))
	for i, c := range cols {
		parts[i] = cell(c)
	}
	fmt.Fprintln(tw, strings.Join(parts, "\t"))
}

func cell(v any) string {
	switch x := v.(type) {
	case nil:
		return "-"
	case string:
		if x == "" {
			return "-"
		}
		return x
	case time.Time:
		return domain.FormatDate(x)
	case *time.Time:
		if x == nil {
			return "-"
		}
		return domain.FormatDate(*x)
	case decimal.Decimal:
		return x.StringFixed(2)
	case *decimal.Decimal:
		if x == nil {
			return "-"
		}
		return x.StringFixed(2)
	case *int64:
		if x == nil {
			return "-"
		}
		return fmt.Sprint(*x)
	case *int:
		if x == nil {
			return "-"
		}
		return fmt.Sprint(*x)
	default:
		return fmt.Sprint(x)
	}
}

// parseAmount reads a decimal flag value. Empty means zero.
func parseAmount(flag, value string) (decimal.Decimal, error) {
	if strings.TrimSpace(value) == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid --%s %q: %w", flag, value, err)
	}
	return d, nil
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}

var errCategoryKind = errors.New("category kind must be expense or income")
