package main

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"time-clock/internal/config"
)

func newSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create the super-admin from SUPER_ADMIN_* variables",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Get()
			a, err := newApp(cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			created, err := a.seed.SeedSuperAdmin(context.Background(), superAdminSeed(cfg))
			if err != nil {
				return err
			}
			if created {
				logrus.Info("Super-admin seeded")
			}
			return nil
		},
	}
}
