// Command cloudcheck verifies the AWS wiring of the console: report bucket,
// alert topic and notification log.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ositopolar/fleet-console/internal/cloud"
	"github.com/ositopolar/fleet-console/internal/config"
)

func main() {
	root := &cobra.Command{
		Use:   "cloudcheck",
		Short: "Check the AWS services used by the fleet console",
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return config.Load()
		},
		SilenceUsage: true,
	}
	root.AddCommand(reportsCmd(), alertCmd(), alertsCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func reportsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reports",
		Short: "List archived daily reports",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := cloud.NewS3Client(cmd.Context(), config.AWSRegion(), config.S3Bucket())
			if err != nil {
				return err
			}
			keys, err := c.ListReports(cmd.Context())
			if err != nil {
				return err
			}
			for _, k := range keys {
				fmt.Fprintln(cmd.OutOrStdout(), k)
			}
			log.Info().Str("bucket", config.S3Bucket()).Int("reports", len(keys)).Msg("s3 ok")
			return nil
		},
	}
}

func alertCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "alert",
		Short: "Publish a test alert to the SNS topic",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := cloud.NewSNSClient(cmd.Context(), config.AWSRegion(), config.SNSTopicArn())
			if err != nil {
				return err
			}
			id, err := c.SendAlert(cmd.Context(), "Fleet console test alert",
				"This is a test alert to verify SNS configuration.\n\nTimestamp: "+time.Now().Format(time.RFC3339))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}
}

func alertsCmd() *cobra.Command {
	var timeout time.Duration
	cmd := &cobra.Command{
		Use:   "alerts EQUIPMENT_ID",
		Short: "Show the logged alerts of one equipment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()
			l, err := cloud.NewNotificationLog(ctx, config.AWSRegion(), config.NotificationsTable())
			if err != nil {
				return err
			}
			items, err := l.ForEquipment(ctx, args[0])
			if err != nil {
				return err
			}
			for _, n := range items {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %-6s  %s\n", n.Timestamp, n.Status, n.Title)
			}
			return nil
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "request timeout")
	return cmd
}
