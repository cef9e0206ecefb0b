package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"time-clock/internal/config"
	"time-clock/internal/models"
)

func newCompanyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "company",
		Short: "Manage tenants",
	}

	var status string
	create := &cobra.Command{
		Use:   "create <slug> <name>",
		Short: "Register a company",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(config.Get())
			if err != nil {
				return err
			}
			defer a.Close()

			company, err := a.companies.Create(context.Background(), args[1], args[0], status)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", company.Slug, company.Name, company.Status)
			return nil
		},
	}
	create.Flags().StringVar(&status, "status", models.CompanyStatusTrial, "Active, Trial or Suspended")

	setStatus := &cobra.Command{
		Use:   "status <slug> <status>",
		Short: "Change a company's subscription status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(config.Get())
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.companies.SetStatus(context.Background(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", args[0], args[1])
			return nil
		},
	}

	cmd.AddCommand(create, setStatus)
	return cmd
}
