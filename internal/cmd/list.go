package cmd

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"github.com/indigo-web/mediatype"
)

type listEntry struct {
	Suffix    string              `json:"suffix"`
	MediaType mediatype.MediaType `json:"media_type"`
}

func newListCmd(opts *options) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print every suffix mapping, sorted by suffix",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, table, err := opts.load()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !asJSON {
				for suffix, m := range table.Iter() {
					fmt.Fprintf(out, "%s\t%s\n", suffix, m)
				}

				return nil
			}

			entries := make([]listEntry, 0, table.Len())
			for suffix, m := range table.Iter() {
				entries = append(entries, listEntry{Suffix: suffix, MediaType: m})
			}

			data, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(entries, "", "  ")
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(out, string(data))
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print a JSON array instead of tab separated lines")

	return cmd
}
