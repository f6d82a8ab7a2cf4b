// File: cmd/fill.go
package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/aehnz/Auto-GoogleForms-Filler/internal/browser"
	"github.com/aehnz/Auto-GoogleForms-Filler/internal/config"
	"github.com/aehnz/Auto-GoogleForms-Filler/internal/observability"
	"github.com/aehnz/Auto-GoogleForms-Filler/internal/orchestrator"
	"github.com/aehnz/Auto-GoogleForms-Filler/internal/pacing"
)

// newFillCmd creates and configures the `fill` command.
func newFillCmd() *cobra.Command {
	fillCmd := &cobra.Command{
		Use:   "fill [form-url]",
		Short: "Runs repeated scan-fill-submit passes against a form",
		Args:  cobra.MaximumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			// Bind flags to their Viper keys so command-line values override
			// the config file and environment with the right precedence.
			if err := viper.BindPFlag("form.url", cmd.Flags().Lookup("url")); err != nil {
				return err
			}
			if err := viper.BindPFlag("form.passes", cmd.Flags().Lookup("passes")); err != nil {
				return err
			}
			if err := viper.BindPFlag("browser.headless", cmd.Flags().Lookup("headless")); err != nil {
				return err
			}
			return viper.BindPFlag("pacing.disabled", cmd.Flags().Lookup("no-pacing"))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := observability.GetLogger()

			if len(args) > 0 {
				viper.Set("form.url", args[0])
			}
			cfg, err := config.NewConfigFromViper(viper.GetViper())
			if err != nil {
				return err
			}
			if !strings.HasPrefix(cfg.Form.URL, "http://") && !strings.HasPrefix(cfg.Form.URL, "https://") {
				cfg.Form.URL = "https://" + cfg.Form.URL
			}

			runID := uuid.New().String()
			logger.Info("Starting fill run",
				zap.String("runID", runID),
				zap.String("url", cfg.Form.URL),
				zap.Int("passes", cfg.Form.Passes),
			)

			driver, err := browser.NewDriver(ctx, cfg.Browser, logger)
			if err != nil {
				return fmt.Errorf("failed to start browser: %w", err)
			}
			defer func() {
				if err := driver.Close(context.Background()); err != nil {
					logger.Warn("Error during browser shutdown", zap.Error(err))
				}
			}()

			pacer := pacing.New(cfg.Pacing, cfg.Typing)
			orch := orchestrator.New(cfg, driver, pacer, logger)

			results, err := orch.Run(ctx)
			if err != nil {
				if errors.Is(err, context.Canceled) {
					logger.Warn("Run aborted gracefully", zap.String("runID", runID))
					return fmt.Errorf("run aborted by user signal")
				}
				logger.Error("Run failed", zap.Error(err), zap.String("runID", runID))
				return err
			}

			var submitted, filled int
			for _, r := range results {
				if r.Submitted {
					submitted++
				}
				filled += r.Filled
			}
			fmt.Printf("\nRun Complete. Run ID: %s\n", runID)
			fmt.Printf("Passes: %d, Submitted: %d, Answers filled: %d\n", len(results), submitted, filled)
			return nil
		},
	}

	fillCmd.Flags().StringP("url", "u", "", "URL of the form to fill. (Overrides config/env)")
	fillCmd.Flags().IntP("passes", "n", 0, "Number of scan-fill-submit passes. (Overrides config/env)")
	fillCmd.Flags().Bool("headless", true, "Run the browser headless. (Overrides config/env)")
	fillCmd.Flags().Bool("no-pacing", false, "Disable randomized delays between actions.")

	return fillCmd
}
