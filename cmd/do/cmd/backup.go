package cmd

import (
	"fmt"

	"github.com/mumvest/mumvest/internal/app"
	"github.com/spf13/cobra"
)

func BackupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backup",
		Short: "Upload a JSON snapshot to the configured S3 bucket",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(a *app.App) error {
				result, err := a.ExportService.Backup(cmd.Context())
				if err != nil {
					return err
				}

				fmt.Fprintln(cmd.OutOrStdout(), "backup written to", result.Key)
				if result.URL != "" {
					fmt.Fprintln(cmd.OutOrStdout(), "download (1h):", result.URL)
				}
				return nil
			})
		},
	}
}
