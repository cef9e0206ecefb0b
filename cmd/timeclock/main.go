package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"time-clock/internal/config"
)

func main() {
	root := &cobra.Command{
		Use:           "timeclock",
		Short:         "Multi-tenant punch clock",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.SetLogLevel(config.Get().LogLevel)
		},
	}

	root.AddCommand(
		newServeCommand(),
		newSeedCommand(),
		newCompanyCommand(),
		newReportCommand(),
	)

	if err := root.Execute(); err != nil {
		logrus.WithError(err).Error("Command failed")
		os.Exit(1)
	}
}
