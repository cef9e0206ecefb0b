package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"time-clock/internal/api"
	"time-clock/internal/config"
	"time-clock/internal/handler"
	"time-clock/internal/service"
	"time-clock/pkg/telegram"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and, when a token is configured, the Telegram bot",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(config.Get())
		},
	}
}

func serve(cfg *config.Config) error {
	if cfg.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}

	a, err := newApp(cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	if cfg.SuperAdminUsername != "" {
		if _, err := a.seed.SeedSuperAdmin(context.Background(), superAdminSeed(cfg)); err != nil {
			logrus.WithError(err).Warn("Failed to seed super-admin")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.TelegramToken != "" {
		client, err := telegram.NewClient(cfg.TelegramToken, cfg.LogLevel == "debug")
		if err != nil {
			return err
		}
		logrus.Infof("Authorized on account %s", client.Bot.Self.UserName)

		bot := handler.NewHandler(client, a.employees, a.punches, a.reports, a.companies, cfg.Location)
		go bot.HandleUpdates(ctx, client.Updates())
		defer client.Stop()
	}

	server := api.NewServer(api.Services{
		Auth:      a.auth,
		Punches:   a.punches,
		Reports:   a.reports,
		Employees: a.employees,
		Companies: a.companies,
		Settings:  a.settings,
	}, api.Options{
		CORSOrigins:  cfg.CORSOrigins,
		CookieSecure: cfg.CookieSecure,
	})

	errCh := make(chan error, 1)
	go func() {
		logrus.Infof("Listening on :%s", cfg.Port)
		errCh <- server.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logrus.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Warn("HTTP shutdown failed")
	}

	logrus.Info("Stopped gracefully")
	return nil
}

func superAdminSeed(cfg *config.Config) service.SuperAdminSeed {
	return service.SuperAdminSeed{
		CompanyID: cfg.SuperAdminCompanyID,
		Username:  cfg.SuperAdminUsername,
		Email:     cfg.SuperAdminEmail,
		Password:  cfg.SuperAdminPassword,
	}
}
