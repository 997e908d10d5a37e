package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/faa-hf/confsite/internal/databag"
)

func newBagCmd(a *app) *cobra.Command {
	bag := &cobra.Command{
		Use:   "bag",
		Short: "Inspect and edit databags",
	}

	var format string
	get := &cobra.Command{
		Use:   "get <bag>",
		Short: "Print a databag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store, cleanup, err := a.stores(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			values, err := store.Bag(cmd.Context(), args[0])
			if errors.Is(err, databag.ErrBagNotFound) {
				return fmt.Errorf("databag %q not found", args[0])
			}
			if err != nil {
				return err
			}
			return writeDoc(cmd.OutOrStdout(), format, values)
		},
	}
	get.Flags().StringVarP(&format, "format", "f", "yaml", "Output format: json or yaml")

	put := &cobra.Command{
		Use:   "put <bag> <key> <value>",
		Short: "Set a databag entry in the database",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.cfg.UsesDatabase() {
				return errors.New("bag put requires DATABASE_URL")
			}
			ctx := cmd.Context()
			pool, err := openPool(ctx, a.cfg.Database)
			if err != nil {
				return err
			}
			defer pool.Close()

			pg := databag.NewPGStore(pool)
			if err := pg.EnsureSchema(ctx); err != nil {
				return err
			}
			if err := pg.Put(ctx, args[0], args[1], args[2]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s[%s] = %s\n", args[0], args[1], args[2])
			return nil
		},
	}

	bag.AddCommand(get, put)
	return bag
}
