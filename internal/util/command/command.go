package command

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SafeMPC/pox-signer/internal/api"
	"github.com/SafeMPC/pox-signer/internal/api/router"
	"github.com/SafeMPC/pox-signer/internal/config"
	"github.com/SafeMPC/pox-signer/internal/util"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const (
	shutdownTimeout = 30 * time.Second
)

// NewSubcommandGroup groups subcommands under name; running the group alone prints its help.
func NewSubcommandGroup(name string, subcommands ...*cobra.Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   name,
		Short: fmt.Sprintf("%s related subcommands", name),
		Run: func(cmd *cobra.Command, _ []string) {
			if err := cmd.Help(); err != nil {
				fmt.Println(err)
				os.Exit(1)
			}
		},
	}

	cmd.AddCommand(subcommands...)

	return cmd
}

// ConfigureLogger applies the logger settings of config to the global logger.
func ConfigureLogger(config config.Server) {
	util.ConfigureGlobalLogger(config.Logger.Level, util.LogOutput{
		PrettyPrintConsole: config.Logger.PrettyPrintConsole,
		File:               config.Logger.File,
		FileMaxSizeMB:      config.Logger.FileMaxSizeMB,
		FileMaxBackups:     config.Logger.FileMaxBackups,
		FileMaxAgeDays:     config.Logger.FileMaxAgeDays,
	})
}

// WithServer initializes a server from config, runs f with it and shuts it down afterwards.
// f's error is returned; shutdown errors are logged.
func WithServer(ctx context.Context, config config.Server, f func(ctx context.Context, s *api.Server) error) error {
	ConfigureLogger(config)

	if err := config.Validate(); err != nil {
		return err
	}

	s, err := api.InitNewServer(config)
	if err != nil {
		log.Error().Err(err).Msg("Failed to initialize server")
		return err
	}

	router.Init(s)

	fErr := f(ctx, s)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if errs := s.Shutdown(shutdownCtx); len(errs) > 0 {
		log.Error().Errs("shutdownErrors", errs).Msg("Failed to gracefully shut down server")
	}

	return fErr
}

// RunServer starts s and blocks until SIGINT/SIGTERM or ctx is done.
func RunServer(ctx context.Context, s *api.Server) error {
	errs := make(chan error, 1)
	go func() {
		if err := s.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- err
		}
		close(errs)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err, ok := <-errs:
		if ok {
			log.Error().Err(err).Msg("Failed to start server")
			return err
		}
		return nil
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
	case <-ctx.Done():
	}

	return nil
}
