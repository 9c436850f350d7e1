package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/nfrund/zippytrip/internal/config"
	"github.com/nfrund/zippytrip/internal/database"
	"github.com/nfrund/zippytrip/internal/logging"
	"github.com/spf13/cobra"
)

var schemaTimeout time.Duration

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Manage the SurrealDB schema",
}

var schemaApplyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Apply the schema to the configured database",
	Long: `Connects with the SURREAL_* settings and defines the tables, indexes and
access methods. Applying the schema more than once is safe.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.New()
		logging.New(cfg.GetLogFormat(), cfg.GetLogLevel())

		ctx, cancel := context.WithTimeout(cmd.Context(), schemaTimeout)
		defer cancel()

		db, err := database.NewDB(ctx, cfg)
		if err != nil {
			return err
		}
		defer db.Close(context.Background())

		if err := database.ApplySchema(ctx, db, cfg.GetOAuthBridgeSecret()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Schema applied to %s/%s\n", cfg.GetDBNs(), cfg.GetDBDb())
		return nil
	},
}

var schemaPrintCmd = &cobra.Command{
	Use:   "print",
	Short: "Print the schema without applying it",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprint(cmd.OutOrStdout(), database.Schema())
	},
}

func init() {
	schemaApplyCmd.Flags().DurationVar(&schemaTimeout, "timeout", 30*time.Second, "time allowed for connecting and applying")
	schemaCmd.AddCommand(schemaApplyCmd, schemaPrintCmd)
	rootCmd.AddCommand(schemaCmd)
}
