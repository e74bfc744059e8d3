package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/zephyrtronium/calculator/internal/display"
)

func newHistoryCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show or clear saved results",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "Print saved results, most recent first",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, log, err := o.setup(cmd)
				if err != nil {
					return err
				}
				defer log.Sync()
				h, store, err := openHistory(cfg, log)
				if err != nil {
					return err
				}
				if store == nil {
					return errNoHistory
				}
				defer store.Close()
				out := cmd.OutOrStdout()
				for _, e := range h.Entries() {
					fmt.Fprintf(out, "%s = %s\n", e.Expression, display.Format(e.Result))
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Remove all saved results",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, log, err := o.setup(cmd)
				if err != nil {
					return err
				}
				defer log.Sync()
				h, store, err := openHistory(cfg, log)
				if err != nil {
					return err
				}
				if store == nil {
					return errNoHistory
				}
				defer store.Close()
				n := h.Len()
				h.Clear()
				if err := h.Save(store); err != nil {
					return err
				}
				log.Info("cleared history", zap.Int("entries", n))
				return nil
			},
		},
	)
	return cmd
}

var errNoHistory = errors.New("no history file configured; use --history or history.path")
