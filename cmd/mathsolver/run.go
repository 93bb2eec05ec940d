package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	emailmsg "mathsolver/internal/email"
)

func newTriggerCmd(cfgFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "trigger",
		Short: "Run one check-and-process cycle immediately",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*cfgFile)
			if err != nil {
				return err
			}
			a, err := newApp(cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			run, err := a.processor.ProcessAll(cmd.Context(), "manual")
			if err != nil {
				return err
			}

			fmt.Printf("Run %s finished\n", run.ID)
			fmt.Printf("  Files found: %d\n", run.FilesFound)
			fmt.Printf("  Solved:      %d\n", run.Solved)
			fmt.Printf("  Rejected:    %d\n", run.Rejected)
			fmt.Printf("  Failed:      %d\n", run.Failed)
			return nil
		},
	}
}

func newStatusCmd(cfgFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Print processing statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*cfgFile)
			if err != nil {
				return err
			}
			a, err := newApp(cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			statusSvc := a.newStatusService(nil)
			st, err := statusSvc.Status(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Printf("Repository:        %s (folder %s)\n", cfg.GitHub.Repository, cfg.GitHub.UploadFolder)
			fmt.Printf("Check interval:    %s\n", st.CheckInterval)
			fmt.Printf("Total runs:        %d (%d ok, %d failed)\n",
				st.Stats.TotalRuns, st.Stats.SuccessfulRuns, st.Stats.FailedRuns)
			fmt.Printf("Problems solved:   %d\n", st.Stats.ProblemsSolved)
			fmt.Printf("Problems rejected: %d\n", st.Stats.ProblemsRejected)
			fmt.Printf("Problems failed:   %d\n", st.Stats.ProblemsFailed)
			fmt.Printf("Last run:          %s\n", formatLast(st.Stats.LastRun))
			fmt.Printf("Last success:      %s\n", formatLast(st.Stats.LastSuccess))
			if st.Stats.LastError != "" {
				fmt.Printf("Last error:        %s\n", st.Stats.LastError)
			}
			return nil
		},
	}
}

func newTestCmd(cfgFile *string) *cobra.Command {
	var (
		github bool
		email  bool
	)

	cmd := &cobra.Command{
		Use:   "test",
		Short: "Verify GitHub and email connectivity",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*cfgFile)
			if err != nil {
				return err
			}

			// No flags means test everything.
			if !github && !email {
				github, email = true, true
			}

			a, err := newApp(cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			if github {
				stats, err := a.source.Stats(cmd.Context())
				if err != nil {
					return fmt.Errorf("github test failed: %w", err)
				}
				fmt.Printf("GitHub OK: %s (%d stars, %d open issues)\n",
					stats.FullName, stats.Stars, stats.OpenIssues)
			}

			if email {
				// Build the transport strictly so a missing configuration is
				// reported instead of silently downgraded.
				mailer, err := newMailer(cfg)
				if err != nil {
					return fmt.Errorf("email test failed: %w", err)
				}
				if err := mailer.Send(cmd.Context(), emailmsg.TestMail(cfg.Email.To())); err != nil {
					return fmt.Errorf("email test failed: %w", err)
				}
				fmt.Printf("Email OK: test message sent to %s\n", cfg.Email.To())
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&github, "github", false, "test GitHub repository access")
	cmd.Flags().BoolVar(&email, "email", false, "test email delivery")
	return cmd
}

func formatLast(t *time.Time) string {
	if t == nil {
		return "never"
	}
	return t.Format(time.RFC3339)
}
