package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/relmap/relmap/internal/export"
	"github.com/relmap/relmap/internal/gateway"
)

var (
	applyModelPath string
	applyDSN       string
	applyTolerant  bool
	applyVerbose   bool
)

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Create the schema in a live database",
	Long: `Apply compiles the model file and executes the resulting statements
against the database inside one transaction: tables, then triggers, then
seed records. The first failed statement rolls everything back.`,
	RunE: runApply,
}

func init() {
	applyCmd.Flags().StringVarP(&applyModelPath, "file", "f", "relmap.models.yml", "model file to compile")
	applyCmd.Flags().StringVar(&applyDSN, "dsn", "", "database DSN (overrides config)")
	applyCmd.Flags().BoolVar(&applyTolerant, "tolerant", false, "tolerate pre-existing objects")
	applyCmd.Flags().BoolVarP(&applyVerbose, "verbose", "v", false, "log each applied statement")
}

func runApply(cmd *cobra.Command, args []string) error {
	dsn := applyDSN
	if dsn == "" {
		var err error
		dsn, err = loadDSN()
		if err != nil {
			return err
		}
	}

	compiled, err := compileModelFile(applyModelPath)
	if err != nil {
		return err
	}

	gw, err := gateway.Open(dsn)
	if err != nil {
		return err
	}
	defer gw.Close()

	logger := zap.NewNop()
	if applyVerbose {
		logger, err = zap.NewDevelopment()
		if err != nil {
			return err
		}
		defer logger.Sync()
	}

	exporter := export.NewExporter(compiled, export.WithLogger(logger))
	created, err := exporter.Apply(cmd.Context(), gw, renderMode(applyTolerant))
	if err != nil {
		return err
	}

	color.Green("✓ Created %d table(s)", created)
	return nil
}

// loadDSN resolves the database DSN from relmap.yml or the environment
// (RELMAP_DATABASE_URL).
func loadDSN() (string, error) {
	v := viper.New()
	v.SetConfigName("relmap")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.SetEnvPrefix("relmap")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return "", fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if dsn := v.GetString("database_url"); dsn != "" {
		return dsn, nil
	}
	if dsn := v.GetString("database.url"); dsn != "" {
		return dsn, nil
	}
	return "", fmt.Errorf("no database DSN configured (set --dsn, relmap.yml, or RELMAP_DATABASE_URL)")
}
