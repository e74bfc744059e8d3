package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zephyrtronium/calculator"
	"github.com/zephyrtronium/calculator/internal/display"
)

func newFuncsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "funcs",
		Short: "List functions and constants",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "functions:")
			for _, name := range calculator.Functions() {
				fmt.Fprintf(out, "  %s(x)\n", name)
			}
			fmt.Fprintln(out, "constants:")
			for _, name := range calculator.Constants() {
				v, _ := calculator.LookupConstant(name)
				fmt.Fprintf(out, "  %s = %s\n", name, display.Format(v))
			}
		},
	}
}
