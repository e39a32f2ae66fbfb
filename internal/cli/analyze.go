package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/codewithwu/ContractAI/internal/analyze"
	"github.com/codewithwu/ContractAI/internal/config"
	"github.com/codewithwu/ContractAI/internal/docio"
	"github.com/codewithwu/ContractAI/internal/enrich"
	"github.com/codewithwu/ContractAI/internal/reportstore"
	"github.com/codewithwu/ContractAI/internal/risk"
)

type analyzeOptions struct {
	policy     string
	rulesPath  string
	save       bool
	reportsDir string
}

// NewAnalyzeCommand creates the analyze command.
func NewAnalyzeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &analyzeOptions{}

	cmd := &cobra.Command{
		Use:   "analyze <file>",
		Short: "Analyze a contract document",
		Long: `Analyze a contract document for risky clauses.

The document is segmented into clauses, each clause is checked against
the risk rules and scored, and an aggregate report is printed. With an
Anthropic API key configured, clauses are additionally reviewed by an
LLM according to the enrichment policy.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(rootOpts, opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.policy, "policy", "", "enrichment policy (always|high_risk_only|never); defaults to ENRICH_POLICY")
	cmd.Flags().StringVar(&opts.rulesPath, "rules", "", "path to a YAML risk rules file; defaults to the built-in rules")
	cmd.Flags().BoolVar(&opts.save, "save", true, "persist the report to the reports directory")
	cmd.Flags().StringVar(&opts.reportsDir, "reports-dir", "", "reports directory; defaults to REPORTS_DIR")

	return cmd
}

func runAnalyze(rootOpts *RootOptions, opts *analyzeOptions, path string, cmd *cobra.Command) error {
	log := newLogger(rootOpts)
	cfg := config.Load()
	if opts.policy != "" {
		cfg.EnrichPolicy = opts.policy
	}
	if opts.rulesPath != "" {
		cfg.RulesPath = opts.rulesPath
	}
	if opts.reportsDir != "" {
		cfg.ReportsDir = opts.reportsDir
		cfg.HistoryDBPath = opts.reportsDir + "/history.db"
	}

	policy, err := analyze.ParsePolicy(cfg.EnrichPolicy)
	if err != nil {
		return err
	}

	rules := risk.DefaultRules()
	if cfg.RulesPath != "" {
		rules, err = risk.LoadRules(cfg.RulesPath)
		if err != nil {
			return fmt.Errorf("load rules: %w", err)
		}
	}

	// Enrichment is skipped, not fatal, when no API key is configured.
	var enricher analyze.Enricher
	if policy != analyze.PolicyNever {
		if cfg.AnthropicAPIKey == "" {
			log.Warn("ANTHROPIC_API_KEY not set, skipping LLM enrichment")
			policy = analyze.PolicyNever
		} else {
			client := enrich.NewClient(cfg.AnthropicAPIKey, cfg.AnthropicModel)
			defer client.Close()
			enricher = client
		}
	}

	paragraphs, err := docio.ReadFile(path)
	if err != nil {
		return err
	}

	analyzer := analyze.New(rules, enricher, policy, cfg.EnrichTimeout, log)
	report, err := analyzer.Document(cmd.Context(), paragraphs)
	if err != nil {
		return err
	}
	report.FileName = path

	if opts.save {
		store, err := reportstore.Open(cfg.ReportsDir, cfg.HistoryDBPath)
		if err != nil {
			return fmt.Errorf("open report store: %w", err)
		}
		defer store.Close()
		saved, err := store.Save(cmd.Context(), report)
		if err != nil {
			return fmt.Errorf("save report: %w", err)
		}
		log.Info("report saved", "id", saved.ID, "json", saved.JSONPath, "text", saved.TextPath)
	}

	switch rootOpts.Format {
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	default:
		fmt.Fprint(cmd.OutOrStdout(), reportstore.RenderText(report))
		return nil
	}
}
