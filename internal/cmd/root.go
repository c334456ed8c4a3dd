// Package cmd provides Command Line Interface support
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/indigo-web/mediatype"
	"github.com/indigo-web/mediatype/config"
)

const (
	configDirFlag     = "config-dir"
	configDirKey      = "config_dir"
	configFileFlag    = "config-file"
	configFileKey     = "config_file"
	defaultConfigDir  = "."
	defaultConfigFile = ""
)

type options struct {
	configDir  string
	configFile string
}

// NewRootCmd builds the mediatype command with every subcommand attached.
func NewRootCmd() *cobra.Command {
	opts := new(options)
	root := &cobra.Command{
		Use:           "mediatype",
		Short:         "Resolve media types of files by their suffixes",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.CompletionOptions.DisableDefaultCmd = true
	addConfigFlags(root, opts)

	root.AddCommand(
		newLookupCmd(opts),
		newDescribeCmd(opts),
		newListCmd(opts),
		newServeCmd(opts),
	)

	return root
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func addConfigFlags(cmd *cobra.Command, opts *options) {
	v := viper.New()

	v.SetDefault(configDirKey, defaultConfigDir)
	v.BindEnv(configDirKey, "MEDIATYPE_CONFIG_DIR") //nolint:errcheck // err is not nil only if the key to bind is missing
	cmd.PersistentFlags().StringVarP(&opts.configDir, configDirFlag, "c", v.GetString(configDirKey),
		`Location of the config dir. The configuration
file, if not explicitly set, is looked for in
this dir as "mediatype.json", "mediatype.yaml"
or "mediatype.toml". This flag can be set using
MEDIATYPE_CONFIG_DIR env var too.`)

	v.SetDefault(configFileKey, defaultConfigFile)
	v.BindEnv(configFileKey, "MEDIATYPE_CONFIG_FILE") //nolint:errcheck
	cmd.PersistentFlags().StringVar(&opts.configFile, configFileFlag, v.GetString(configFileKey),
		`Path to the configuration file. It must be an
absolute path or a path relative to the config
dir. This flag can be set using
MEDIATYPE_CONFIG_FILE env var too.`)
}

// load reads the config and builds the table it describes on top of the compiled-in one.
func (o *options) load() (*config.Config, *mediatype.Table, error) {
	cfg, err := config.Load(o.configDir, o.configFile)
	if err != nil {
		return nil, nil, err
	}

	table := mediatype.NewBuiltin()
	if err = cfg.Types.Apply(table); err != nil {
		return nil, nil, err
	}

	return cfg, table, nil
}
