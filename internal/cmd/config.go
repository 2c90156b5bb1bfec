package cmd

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dendrascience/filetree/util"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Flag names shared by several commands. They double as viper keys, so the
// same setting can come from FILETREE_<NAME> or the config file.
const (
	flagConfig     = "config"
	flagVerbose    = "verbose"
	flagPath       = "path"
	flagFile       = "file"
	flagCount      = "count"
	flagWidth      = "width"
	flagByteOrder  = "byteorder"
	flagThrottle   = "throttle"
	flagNoProgress = "no-progress"
	flagLegacyStop = "legacy-stop"
)

const envPrefix = "FILETREE"

// newViper resolves the settings of one command invocation. Precedence is
// flags set on the command line, then environment, then the config file,
// then flag defaults.
func newViper(cmd *cobra.Command) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, err
	}

	cfgFile, _ := cmd.Flags().GetString(flagConfig)
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("%w: read config %s: %w", util.ErrInvalidConfiguration, cfgFile, err)
		}
		logger(cmd).Debug("using config file: " + v.ConfigFileUsed())
		return v, nil
	}

	home, err := homedir.Dir()
	if err != nil {
		// No home directory means no default config file.
		return v, nil
	}
	v.AddConfigPath(filepath.Join(home, ".config"))
	v.SetConfigName("filetree")
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("%w: read config: %w", util.ErrInvalidConfiguration, err)
		}
		return v, nil
	}
	logger(cmd).Debug("using config file: " + v.ConfigFileUsed())
	return v, nil
}

// requireSet fails if any of keys resolved to its zero value, printing the
// command's usage first.
func requireSet(cmd *cobra.Command, v *viper.Viper, keys ...string) error {
	var missing []string
	for _, k := range keys {
		if v.GetString(k) == "" || v.GetString(k) == "0" {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		cmd.PrintErr(cmd.UsageString())
		return fmt.Errorf("required flag(s) \"%s\" not set", strings.Join(missing, `", "`))
	}
	return nil
}

// byteOrder reads the byteorder setting.
func byteOrder(v *viper.Viper) (util.ByteOrder, error) {
	return util.ParseByteOrder(v.GetString(flagByteOrder))
}
