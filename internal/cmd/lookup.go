package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/indigo-web/mediatype/describe"
)

func newLookupCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <path>...",
		Short: "Print the media type of every path",
		Long: `Print the media type of every path, resolved by its suffix. Files
don't have to exist. Paths with unknown suffixes get the default
media type.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, table, err := opts.load()
			if err != nil {
				return err
			}

			for _, path := range args {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", path, table.ForPath(path))
			}

			return nil
		},
	}
}

func newDescribeCmd(opts *options) *cobra.Command {
	var compressed bool

	cmd := &cobra.Command{
		Use:   "describe <file>...",
		Short: "Describe files by their media types",
		Long: `Describe files by their media types. With --compressed, gzip,
zip and zstd files are additionally looked into and the media
types of their contents are reported as well.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, table, err := opts.load()
			if err != nil {
				return err
			}

			describer := describe.New(table)
			for _, path := range args {
				description, err := describer.Describe(path, compressed)
				if err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", path, description)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&compressed, "compressed", false, "Look inside compressed files")

	return cmd
}
