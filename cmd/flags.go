package cmd

import (
	"fmt"
	"os"

	legisdb "github.com/civicdata/legisdb/pkg"
	"github.com/civicdata/legisdb/pkg/config"
	"github.com/spf13/cobra"
)

// funcFlag converts an explicitly set flag into a config option.
// It returns nil when the flag was not used.
type funcFlag func(cmd *cobra.Command) config.Option

func versionFlag(cmd *cobra.Command) {
	hasVersionFlag, _ := cmd.Flags().GetBool("version")
	if hasVersionFlag {
		fmt.Printf("\nversion: %s\nbuild: %s\n\n", legisdb.Version, legisdb.Build)
		os.Exit(0)
	}
}

func federalFlag(cmd *cobra.Command) config.Option {
	if !cmd.Flags().Changed("federal") {
		return nil
	}
	s, _ := cmd.Flags().GetString("federal")
	return config.OptPopulateFederalSource(s)
}

func stateDirFlag(cmd *cobra.Command) config.Option {
	if !cmd.Flags().Changed("state-dir") {
		return nil
	}
	s, _ := cmd.Flags().GetString("state-dir")
	return config.OptPopulateStateDir(s)
}

func skipFederalFlag(cmd *cobra.Command) config.Option {
	if !cmd.Flags().Changed("skip-federal") {
		return nil
	}
	b, _ := cmd.Flags().GetBool("skip-federal")
	return config.OptPopulateSkipFederal(b)
}

func skipStateFlag(cmd *cobra.Command) config.Option {
	if !cmd.Flags().Changed("skip-state") {
		return nil
	}
	b, _ := cmd.Flags().GetBool("skip-state")
	return config.OptPopulateSkipState(b)
}

func metricsFileFlag(cmd *cobra.Command) config.Option {
	if !cmd.Flags().Changed("metrics-file") {
		return nil
	}
	s, _ := cmd.Flags().GetString("metrics-file")
	return config.OptPopulateMetricsFile(s)
}

// flagOptions collects the options of all flags that were set.
func flagOptions(cmd *cobra.Command, flags ...funcFlag) []config.Option {
	var res []config.Option
	for _, f := range flags {
		if opt := f(cmd); opt != nil {
			res = append(res, opt)
		}
	}
	return res
}
