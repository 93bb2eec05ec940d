package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mathsolver/internal/report"
)

func newReportCmd(cfgFile *string) *cobra.Command {
	var (
		out       string
		sendEmail bool
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Export processing history to an Excel workbook",
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

			exporter := report.NewExporter(a.submissions, a.runs)
			if err := exporter.Export(cmd.Context(), out); err != nil {
				return err
			}
			fmt.Printf("Wrote %s\n", out)

			if sendEmail {
				statusSvc := a.newStatusService(nil)
				if err := statusSvc.SendStatusReport(cmd.Context()); err != nil {
					return fmt.Errorf("send status report: %w", err)
				}
				fmt.Printf("Status report emailed to %s\n", cfg.Email.To())
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "history.xlsx", "output file path")
	cmd.Flags().BoolVar(&sendEmail, "email", false, "also email the status report")
	return cmd
}
