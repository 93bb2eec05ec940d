package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"mathsolver/internal/config"
	"mathsolver/internal/domain"
	"mathsolver/internal/handler"
	"mathsolver/internal/logging"
	"mathsolver/internal/router"
	"mathsolver/internal/service"
)

func newStartCmd(cfgFile *string) *cobra.Command {
	var (
		web  bool
		host string
		port int
	)

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start the polling scheduler, optionally with the status API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*cfgFile)
			if err != nil {
				return err
			}
			applyServerFlags(cfg, cmd, host, port)

			closer, err := logging.Setup(&cfg.Log)
			if err != nil {
				return err
			}
			defer closer.Close()

			a, err := newApp(cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			scheduler := service.NewScheduler(a.processor, service.SchedulerConfig{
				Interval:   cfg.Scheduler.Interval(),
				RunOnStart: true,
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if web {
				srv := buildServer(a, scheduler)
				go func() {
					log.Printf("server: listening on %s", srv.Addr)
					if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
						log.Printf("server: %v", err)
					}
				}()
				defer shutdownServer(srv)
			}

			scheduler.Start(ctx)
			return nil
		},
	}

	cmd.Flags().BoolVar(&web, "web", false, "also serve the HTTP status API")
	cmd.Flags().StringVar(&host, "host", "", "status API listen host")
	cmd.Flags().IntVar(&port, "port", 0, "status API listen port")
	return cmd
}

func newWebCmd(cfgFile *string) *cobra.Command {
	var (
		host string
		port int
	)

	cmd := &cobra.Command{
		Use:   "web",
		Short: "Serve the HTTP status API without the scheduler",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*cfgFile)
			if err != nil {
				return err
			}
			applyServerFlags(cfg, cmd, host, port)

			closer, err := logging.Setup(&cfg.Log)
			if err != nil {
				return err
			}
			defer closer.Close()

			a, err := newApp(cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			srv := buildServer(a, nil)
			go func() {
				log.Printf("server: listening on %s", srv.Addr)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Printf("server: %v", err)
				}
			}()

			<-ctx.Done()
			shutdownServer(srv)
			return nil
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "listen host")
	cmd.Flags().IntVar(&port, "port", 0, "listen port")
	return cmd
}

func applyServerFlags(cfg *config.Config, cmd *cobra.Command, host string, port int) {
	if cmd.Flags().Changed("host") {
		cfg.Server.Host = host
	}
	if cmd.Flags().Changed("port") {
		cfg.Server.Port = port
	}
}

// buildServer assembles the gin router and http.Server. scheduler may be nil
// in web-only mode, in which case the trigger endpoint responds 503.
func buildServer(a *app, scheduler *service.Scheduler) *http.Server {
	statusSvc := a.newStatusService(scheduler)
	tokens := service.NewTokenService(a.cfg.API)

	statusH := handler.NewStatusHandler(statusSvc, scheduler, handler.PublicConfig{
		Repository:       a.cfg.GitHub.Repository,
		Branch:           a.cfg.GitHub.Branch,
		UploadFolder:     a.cfg.GitHub.UploadFolder,
		SolutionsFolder:  a.cfg.GitHub.SolutionsFolder,
		CheckInterval:    a.cfg.Scheduler.Interval().String(),
		EmailProvider:    a.cfg.Email.Provider,
		MaxFileSizeMB:    a.cfg.Security.MaxFileSizeMB,
		SupportedFormats: supportedFormats(),
	})
	uploadH := handler.NewUploadHandler(a.processor)
	healthH := handler.NewHealthHandler(a.db, scheduler)

	r := router.Setup(tokens, statusH, uploadH, healthH)

	return &http.Server{
		Addr:         a.cfg.Server.Addr(),
		Handler:      r,
		ReadTimeout:  a.cfg.Server.ReadTimeout,
		WriteTimeout: a.cfg.Server.WriteTimeout,
	}
}

// supportedFormats lists the accepted problem file extensions.
func supportedFormats() []string {
	formats := make([]string, 0, len(domain.AllowedExtensions))
	for ext := range domain.AllowedExtensions {
		formats = append(formats, ext)
	}
	sort.Strings(formats)
	return formats
}

func shutdownServer(srv *http.Server) {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server: shutdown: %v", err)
	}
}
