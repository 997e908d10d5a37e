package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/faa-hf/confsite/internal/palette"
)

func newColorsCmd(a *app) *cobra.Command {
	var hex bool

	cmd := &cobra.Command{
		Use:   "colors [n]",
		Short: "Print n evenly spaced colors",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n := a.cfg.Palette.DefaultColors
			if len(args) == 1 {
				var err error
				if n, err = strconv.Atoi(args[0]); err != nil {
					return fmt.Errorf("invalid color count %q", args[0])
				}
			}
			n = min(n, palette.MaxCount)

			colors := palette.UniqueColors(n)
			if hex {
				colors = palette.UniqueHexColors(n)
			}
			for _, c := range colors {
				fmt.Fprintln(cmd.OutOrStdout(), c)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&hex, "hex", false, "Print #rrggbb instead of hsl()")
	return cmd
}
