package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/faa-hf/confsite/internal/core"
	"github.com/faa-hf/confsite/internal/site"
)

// tableExport is the document written by "confsite tables".
type tableExport struct {
	ID        string                `json:"id" yaml:"id"`
	Generated time.Time             `json:"generated" yaml:"generated"`
	Page      string                `json:"page" yaml:"page"`
	Organized bool                  `json:"organized" yaml:"organized"`
	Tables    []*core.Table         `json:"tables" yaml:"tables"`
	Flags     map[string]core.Flags `json:"flags" yaml:"flags"`
}

func newTablesCmd(a *app) *cobra.Command {
	var (
		organized bool
		format    string
	)

	cmd := &cobra.Command{
		Use:   "tables <page>",
		Short: "Print the keynote, tutorial and paper tables of a page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := site.NewTree(a.cfg.Site.ContentDir).Page(args[0])
			if err != nil {
				return err
			}
			tables, err := core.LoadCollection(page.Attachments(), organized)
			if err != nil {
				return fmt.Errorf("%s (%s)", core.FormatUserError(err), err)
			}

			doc := tableExport{
				ID:        uuid.NewString(),
				Generated: time.Now().UTC(),
				Page:      page.Path,
				Organized: organized,
				Tables:    tables,
				Flags:     make(map[string]core.Flags, len(tables)),
			}
			for _, t := range tables {
				doc.Flags[t.Title] = core.ClassificationFlags(t.Rows)
			}
			return writeDoc(cmd.OutOrStdout(), format, doc)
		},
	}

	cmd.Flags().BoolVar(&organized, "organized", false, "Group papers by theme or track")
	cmd.Flags().StringVarP(&format, "format", "f", "json", "Output format: json or yaml")
	return cmd
}

func writeDoc(w io.Writer, format string, v any) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q (want json or yaml)", format)
	}
}
