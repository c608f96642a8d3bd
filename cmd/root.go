/*
Copyright © 2026 The legisdb Authors

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/civicdata/legisdb/internal/iofs"
	"github.com/civicdata/legisdb/internal/iologger"
	legisdb "github.com/civicdata/legisdb/pkg"
	"github.com/civicdata/legisdb/pkg/config"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	homeDir   string
	opts      []config.Option
	cfg       *config.Config
	logCloser io.Closer
)

// getRootCmd returns the root command with all subcommands attached.
func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Version: fmt.Sprintf("version: %s\nbuild:   %s",
			legisdb.Version, legisdb.Build),
		Use:   "legisdb",
		Short: "legisdb loads US legislators into a relational database",
		Long: `legisdb builds and refreshes a database of current US legislators.

It reads the federal roster of Congress (legislators-current.json) and
per-state legislature files (<state>/legislature/*.yml), resolves every
record to one legislator, and stores their terms with the party,
jurisdiction, chamber and district they belong to.

Commands:
  - create:   create the schema (PostgreSQL or SQLite)
  - migrate:  bring an existing schema to the latest version
  - populate: load legislators and terms in one transaction

Configuration precedence (highest to lowest):
  1. CLI flags
  2. Environment variables (LEGISDB_*, DB_*)
  3. Config file (~/.config/legisdb/config.yaml)
  4. Built-in defaults

Environment Variables:
  DB_HOST, DB_PORT, DB_USER, DB_PASSWORD, DB_NAME
  LEGISDB_DATABASE_DRIVER     postgres or sqlite
  LEGISDB_DATABASE_PATH       SQLite database file
  LEGISDB_LOG_LEVEL           debug, info, warn, error`,
		PersistentPreRunE: bootstrap,
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			if logCloser != nil {
				return logCloser.Close()
			}
			return nil
		},
		RunE:          runRoot,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	// Remove the automatic "legisdb version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")
	rootCmd.Flags().BoolP("version", "V", false, "version for legisdb")

	rootCmd.AddCommand(
		getCreateCmd(),
		getMigrateCmd(),
		getPopulateCmd(),
	)
	return rootCmd
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	var cfgViper *config.Config
	if cfgViper, err = initConfig(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	opts = cfgViper.ToOptions()
	cfg.Update(opts)
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})

	logCloser, err = iologger.Init(config.LogDir(homeDir), cfg.Log, false)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded",
		"config_file", config.ConfigFilePath(homeDir),
		"driver", cfg.Database.Driver,
	)
	return nil
}

func runRoot(cmd *cobra.Command, _ []string) error {
	versionFlag(cmd)
	return cmd.Help()
}

// Execute runs the root command. It is called by main.main().
func Execute() {
	if err := getRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func initConfig(home string) (*config.Config, error) {
	var err error
	cfgPath := config.ConfigFilePath(home)
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	return &res, nil
}

// initEnvVars binds the environment variables of persistent settings,
// the ones that config.ToOptions returns. Database settings also accept
// the short DB_* names.
func initEnvVars(v *viper.Viper) {
	v.SetEnvPrefix("LEGISDB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Database configuration
	_ = v.BindEnv("database.driver", "LEGISDB_DATABASE_DRIVER")
	_ = v.BindEnv("database.host", "LEGISDB_DATABASE_HOST", "DB_HOST")
	_ = v.BindEnv("database.port", "LEGISDB_DATABASE_PORT", "DB_PORT")
	_ = v.BindEnv("database.user", "LEGISDB_DATABASE_USER", "DB_USER")
	_ = v.BindEnv("database.password", "LEGISDB_DATABASE_PASSWORD", "DB_PASSWORD")
	_ = v.BindEnv("database.database", "LEGISDB_DATABASE_DATABASE", "DB_NAME")
	_ = v.BindEnv("database.ssl_mode", "LEGISDB_DATABASE_SSL_MODE")
	_ = v.BindEnv("database.path", "LEGISDB_DATABASE_PATH")

	// Populate configuration
	_ = v.BindEnv("populate.federal_source", "LEGISDB_POPULATE_FEDERAL_SOURCE")
	_ = v.BindEnv("populate.state_dir", "LEGISDB_POPULATE_STATE_DIR")
	_ = v.BindEnv("populate.fetch_timeout", "LEGISDB_POPULATE_FETCH_TIMEOUT")

	// Log configuration
	_ = v.BindEnv("log.level", "LEGISDB_LOG_LEVEL")
	_ = v.BindEnv("log.format", "LEGISDB_LOG_FORMAT")
	_ = v.BindEnv("log.destination", "LEGISDB_LOG_DESTINATION")

	v.AutomaticEnv()
}
