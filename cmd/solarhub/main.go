package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/solarhub/solarhub-admin/cmd/solarhub/cli"
	"github.com/solarhub/solarhub-admin/internal/calculator"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "solarhub",
		Short:         "SolarHub admin dashboard",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newServeCmd(), newLoadCalcCmd())
	return root
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the admin web server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context())
		},
	}
}

func newLoadCalcCmd() *cobra.Command {
	opts := cli.LoadCalcOptions{}
	cmd := &cobra.Command{
		Use:   "loadcalc",
		Short: "Print the load summary of a preset room",
		Example: "  solarhub loadcalc --mode solar --room duplex --set 6=2\n" +
			"  solarhub loadcalc --mode inverter --room kitchen --json",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := calculator.LoadCatalog()
			if err != nil {
				return err
			}
			opts.Stdout = cmd.OutOrStdout()
			opts.Stderr = cmd.ErrOrStderr()
			if code := cli.LoadCalc(catalog, opts); code != 0 {
				return fmt.Errorf("loadcalc exited with code %d", code)
			}
			return nil
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&opts.Mode, "mode", string(calculator.ModeInverter), "calculator mode: inverter or solar")
	flags.StringVar(&opts.Room, "room", "", "preset room id")
	flags.StringArrayVar(&opts.Sets, "set", nil, "override a quantity as id=qty (repeatable)")
	flags.BoolVar(&opts.JSONOutput, "json", false, "print JSON instead of a table")
	_ = cmd.MarkFlagRequired("room")
	return cmd
}
