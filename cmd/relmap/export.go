package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/relmap/relmap/internal/compile"
	"github.com/relmap/relmap/internal/export"
	"github.com/relmap/relmap/internal/modelfile"
	"github.com/relmap/relmap/internal/schema"
)

var (
	exportModelPath string
	exportOutPath   string
	exportOnly      string
	exportTolerant  bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Render the schema as a SQL script",
	Long: `Export compiles the model file into dependency-ordered SQL and writes it
to stdout or a file. Use --tolerant to emit idempotent statements
(IF NOT EXISTS, DROP TRIGGER IF EXISTS, INSERT IGNORE).`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportModelPath, "file", "f", "relmap.models.yml", "model file to compile")
	exportCmd.Flags().StringVarP(&exportOutPath, "out", "o", "", "output file (default stdout)")
	exportCmd.Flags().StringVar(&exportOnly, "only", "all", "statement kinds to render: tables, triggers, records, all")
	exportCmd.Flags().BoolVar(&exportTolerant, "tolerant", false, "tolerate pre-existing objects")
}

func runExport(cmd *cobra.Command, args []string) error {
	kind, err := parseKind(exportOnly)
	if err != nil {
		return err
	}

	compiled, err := compileModelFile(exportModelPath)
	if err != nil {
		return err
	}

	script := export.NewExporter(compiled).Render(kind, renderMode(exportTolerant))

	if exportOutPath == "" {
		fmt.Print(script)
		return nil
	}

	if err := os.WriteFile(exportOutPath, []byte(script), 0o644); err != nil {
		return fmt.Errorf("failed to write script: %w", err)
	}
	color.Green("✓ Wrote %d table(s) to %s", len(compiled.Tables), exportOutPath)
	return nil
}

// compileModelFile loads the model file, registers every declared type, and
// compiles the registry.
func compileModelFile(path string) (*compile.Schema, error) {
	types, err := modelfile.Load(path)
	if err != nil {
		return nil, err
	}

	reg := schema.NewRegistry()
	if err := reg.RegisterTypes(types...); err != nil {
		return nil, err
	}

	return compile.NewCompiler().Compile(reg)
}

func parseKind(only string) (export.Kind, error) {
	switch only {
	case "tables":
		return export.KindTables, nil
	case "triggers":
		return export.KindTriggers, nil
	case "records":
		return export.KindRecords, nil
	case "all":
		return export.KindAll, nil
	default:
		return 0, fmt.Errorf("unknown statement kind: %s", only)
	}
}

func renderMode(tolerant bool) export.Mode {
	if tolerant {
		return export.ModeTolerant
	}
	return export.ModeStrict
}
