package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dshearer1/quoteshield-webdev-sub000/internal/analysis"
	"github.com/dshearer1/quoteshield-webdev-sub000/internal/config"
	"github.com/dshearer1/quoteshield-webdev-sub000/internal/db"
	"github.com/dshearer1/quoteshield-webdev-sub000/internal/observability"
	"github.com/dshearer1/quoteshield-webdev-sub000/internal/schemas"
	"github.com/dshearer1/quoteshield-webdev-sub000/internal/types"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run a one-shot quote analysis from local files",
	Long:  `Read an AI extraction result (and optionally line items) from JSON files, run the quality/risk and pricing branches, and print the reports. Benchmark positioning requires a database; without one the pricing branch degrades to a no-data classification.`,
	RunE:  runAnalyze,
}

var (
	analyzeConfigPath    string
	analyzeAiResultPath  string
	analyzeLineItemsPath string
	analyzeTrade         string
	analyzeSubtrade      string
	analyzeRegion        string
	analyzeProjectValue  float64
	analyzeMaxFindings   int
	analyzeDatabaseURL   string
	analyzeVerbose       bool
)

func init() {
	analyzeCmd.Flags().StringVar(&analyzeConfigPath, "config", "", "Path to JSON config file with flag defaults")
	analyzeCmd.Flags().StringVar(&analyzeAiResultPath, "ai-result", "", "Path to AI-result JSON file")
	analyzeCmd.Flags().StringVar(&analyzeLineItemsPath, "line-items", "", "Path to line-items JSON file")
	analyzeCmd.Flags().StringVar(&analyzeTrade, "trade", "roofing", "Trade of the quoted job")
	analyzeCmd.Flags().StringVar(&analyzeSubtrade, "subtrade", "", "Subtrade of the quoted job")
	analyzeCmd.Flags().StringVar(&analyzeRegion, "region", types.RegionUnknown, "Region key for benchmark lookups")
	analyzeCmd.Flags().Float64Var(&analyzeProjectValue, "project-value", 0, "Quoted project total in dollars")
	analyzeCmd.Flags().IntVar(&analyzeMaxFindings, "max-findings", 0, "Maximum preview findings to surface (0 = default)")
	analyzeCmd.Flags().StringVar(&analyzeDatabaseURL, "db-url", "", "Database URL for benchmark lookups (optional)")
	analyzeCmd.Flags().BoolVar(&analyzeVerbose, "verbose", false, "Print per-step progress")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(_ *cobra.Command, _ []string) error {
	if analyzeConfigPath != "" {
		fileCfg, err := config.LoadConfig(analyzeConfigPath)
		if err != nil {
			return err
		}
		if err := fileCfg.Validate(); err != nil {
			return err
		}
		applyConfigDefaults(fileCfg)
	}

	if analyzeAiResultPath == "" {
		return fmt.Errorf("an AI-result file is required (use --ai-result or the config file)")
	}

	raw, err := os.ReadFile(analyzeAiResultPath)
	if err != nil {
		return fmt.Errorf("failed to read AI result file: %w", err)
	}
	if err := schemas.ValidateAiResult(string(raw)); err != nil {
		return fmt.Errorf("AI result failed schema validation: %w", err)
	}

	var aiResult types.AiResult
	if err := json.Unmarshal(raw, &aiResult); err != nil {
		return fmt.Errorf("failed to parse AI result: %w", err)
	}

	var lineItems []types.LineItemRow
	if analyzeLineItemsPath != "" {
		itemsRaw, err := os.ReadFile(analyzeLineItemsPath)
		if err != nil {
			return fmt.Errorf("failed to read line items file: %w", err)
		}
		if err := json.Unmarshal(itemsRaw, &lineItems); err != nil {
			return fmt.Errorf("failed to parse line items: %w", err)
		}
	}

	ctx := context.Background()

	opts := analysis.RunOptions{
		AiResult:    &aiResult,
		LineItems:   lineItems,
		Trade:       analyzeTrade,
		Subtrade:    analyzeSubtrade,
		RegionKey:   analyzeRegion,
		MaxFindings: analyzeMaxFindings,
	}
	if analyzeProjectValue > 0 {
		pv := analyzeProjectValue
		opts.ProjectValue = &pv
	}
	if analyzeVerbose {
		opts.OnProgress = func(event analysis.ProgressEvent) {
			fmt.Fprintf(os.Stderr, "[%s] %s\n", event.Step, event.Message)
		}
	}

	if analyzeDatabaseURL != "" {
		database, err := db.Connect(ctx, analyzeDatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer database.Close()
		opts.RangeStore = database
	}

	result, err := analysis.Run(ctx, opts)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintScoreReport(result.Report)
	printer.PrintFindings(result.PreviewFindings)
	printer.PrintPricing(result.Pricing, result.UnitEstimate)

	return nil
}

// applyConfigDefaults fills flag values the user left unset from the config
// file. Explicit flags always win.
func applyConfigDefaults(cfg *config.Config) {
	if analyzeAiResultPath == "" {
		analyzeAiResultPath = cfg.AiResultPath
	}
	if analyzeLineItemsPath == "" {
		analyzeLineItemsPath = cfg.LineItemsPath
	}
	if analyzeTrade == "roofing" && cfg.Trade != "" {
		analyzeTrade = cfg.Trade
	}
	if analyzeSubtrade == "" {
		analyzeSubtrade = cfg.Subtrade
	}
	if analyzeRegion == types.RegionUnknown && cfg.RegionKey != "" {
		analyzeRegion = cfg.RegionKey
	}
	if analyzeProjectValue == 0 {
		analyzeProjectValue = cfg.ProjectValue
	}
	if analyzeMaxFindings == 0 {
		analyzeMaxFindings = cfg.MaxFindings
	}
	if analyzeDatabaseURL == "" {
		analyzeDatabaseURL = cfg.DatabaseURL
	}
	if cfg.Verbose {
		analyzeVerbose = true
	}
}
