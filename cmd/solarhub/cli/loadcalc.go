// Package cli holds the operator commands bundled with the admin binary.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/solarhub/solarhub-admin/internal/calculator"
	"github.com/solarhub/solarhub-admin/internal/view"
)

// LoadCalcOptions defines the flags of the loadcalc command.
type LoadCalcOptions struct {
	Mode       string
	Room       string
	Sets       []string
	JSONOutput bool
	Stdout     io.Writer
	Stderr     io.Writer
}

// LoadCalcReport is the JSON output of loadcalc.
type LoadCalcReport struct {
	Mode    calculator.Mode            `json:"mode"`
	Room    string                     `json:"room"`
	Items   []calculator.ApplianceItem `json:"items"`
	Summary calculator.Summary         `json:"summary"`
}

// LoadCalc prints the load summary of a preset room. Each --set id=qty
// overrides a quantity before totals are computed. It returns the exit code.
func LoadCalc(catalog *calculator.Catalog, opts LoadCalcOptions) int {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	mode, err := calculator.ParseMode(strings.TrimSpace(opts.Mode))
	if err != nil {
		_, _ = fmt.Fprintln(opts.Stderr, "loadcalc: --mode must be inverter or solar")
		return 1
	}
	room, err := catalog.Room(mode, strings.TrimSpace(opts.Room))
	if err != nil {
		_, _ = fmt.Fprintf(opts.Stderr, "loadcalc: unknown room %q, choose one of: %s\n", opts.Room, roomIDs(catalog, mode))
		return 1
	}
	ws := calculator.NewWorksheet(mode, room)
	for _, set := range opts.Sets {
		if err := applySet(ws, set); err != nil {
			_, _ = fmt.Fprintf(opts.Stderr, "loadcalc: %v\n", err)
			return 1
		}
	}

	report := LoadCalcReport{Mode: mode, Room: room.ID, Items: ws.Items, Summary: ws.Summary()}
	if opts.JSONOutput {
		enc := json.NewEncoder(opts.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			_, _ = fmt.Fprintf(opts.Stderr, "loadcalc: encode: %v\n", err)
			return 1
		}
		return 0
	}

	tw := tabwriter.NewWriter(opts.Stdout, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintf(tw, "%s: %s\n", mode.Title(), room.Name)
	_, _ = fmt.Fprintln(tw, "ID\tAPPLIANCE\tWATTAGE\tQTY\tTOTAL")
	for _, item := range ws.Items {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n", item.ID, item.Name, view.FormatWatts(item.Wattage), item.Quantity, view.FormatWatts(item.TotalWattage))
	}
	_, _ = fmt.Fprintf(tw, "%s:\t%s\n", mode.TotalLabel(), view.FormatWatts(report.Summary.TotalLoad))
	if mode == calculator.ModeSolar {
		_, _ = fmt.Fprintf(tw, "Recommended inverter:\t%s\n", view.FormatWatts(report.Summary.InverterRating))
	}
	if err := tw.Flush(); err != nil {
		return 1
	}
	return 0
}

func applySet(ws *calculator.Worksheet, set string) error {
	id, raw, ok := strings.Cut(set, "=")
	if !ok {
		return fmt.Errorf("--set %q must look like id=qty", set)
	}
	qty, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("--set %q: quantity must be a whole number", set)
	}
	if err := ws.SetQuantity(strings.TrimSpace(id), qty); err != nil {
		if errors.Is(err, calculator.ErrInvalidQuantity) {
			return fmt.Errorf("--set %q: quantity must be between 0 and %d", set, calculator.MaxQuantity)
		}
		return fmt.Errorf("--set %q: %w", set, err)
	}
	return nil
}

func roomIDs(catalog *calculator.Catalog, mode calculator.Mode) string {
	rooms := catalog.Rooms(mode)
	ids := make([]string, 0, len(rooms))
	for _, r := range rooms {
		ids = append(ids, r.ID)
	}
	return strings.Join(ids, ", ")
}
