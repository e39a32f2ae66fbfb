package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/codewithwu/ContractAI/internal/config"
	"github.com/codewithwu/ContractAI/internal/reportstore"
)

// NewReportsCommand creates the reports command group.
func NewReportsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reports",
		Short: "Browse saved analysis reports",
	}

	cmd.AddCommand(newReportsListCommand(rootOpts))
	cmd.AddCommand(newReportsShowCommand(rootOpts))
	cmd.AddCommand(newReportsDeleteCommand(rootOpts))

	return cmd
}

func openStore(reportsDir string) (*reportstore.Store, error) {
	cfg := config.Load()
	if reportsDir != "" {
		cfg.ReportsDir = reportsDir
		cfg.HistoryDBPath = reportsDir + "/history.db"
	}
	return reportstore.Open(cfg.ReportsDir, cfg.HistoryDBPath)
}

func newReportsListCommand(rootOpts *RootOptions) *cobra.Command {
	var limit int
	var reportsDir string

	cmd := &cobra.Command{
		Use:           "list",
		Short:         "List saved reports, newest first",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(reportsDir)
			if err != nil {
				return err
			}
			defer store.Close()

			entries, err := store.List(cmd.Context(), limit)
			if err != nil {
				return err
			}

			if rootOpts.Format == "json" {
				if entries == nil {
					entries = []reportstore.Entry{}
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(entries)
			}

			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no reports")
				return nil
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tFILE\tSCORE\tLEVEL\tCLAUSES\tANALYZED")
			for _, e := range entries {
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%d\t%s\n",
					e.ID, e.FileName, e.OverallScore, e.Tier,
					e.ClauseCount, e.CreatedAt.Local().Format("2006-01-02 15:04"))
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of reports to list")
	cmd.Flags().StringVar(&reportsDir, "reports-dir", "", "reports directory; defaults to REPORTS_DIR")

	return cmd
}

func newReportsShowCommand(rootOpts *RootOptions) *cobra.Command {
	var reportsDir string

	cmd := &cobra.Command{
		Use:           "show <id>",
		Short:         "Print a saved report",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(reportsDir)
			if err != nil {
				return err
			}
			defer store.Close()

			report, err := store.Get(cmd.Context(), args[0])
			if err != nil {
				if errors.Is(err, reportstore.ErrNotFound) {
					return fmt.Errorf("report %s not found", args[0])
				}
				return err
			}

			if rootOpts.Format == "json" {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}
			fmt.Fprint(cmd.OutOrStdout(), reportstore.RenderText(report))
			return nil
		},
	}

	cmd.Flags().StringVar(&reportsDir, "reports-dir", "", "reports directory; defaults to REPORTS_DIR")

	return cmd
}

func newReportsDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	var reportsDir string

	cmd := &cobra.Command{
		Use:           "delete <id>",
		Short:         "Delete a saved report",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(reportsDir)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Delete(cmd.Context(), args[0]); err != nil {
				if errors.Is(err, reportstore.ErrNotFound) {
					return fmt.Errorf("report %s not found", args[0])
				}
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "deleted", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&reportsDir, "reports-dir", "", "reports directory; defaults to REPORTS_DIR")

	return cmd
}
