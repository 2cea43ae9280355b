package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/tarteel-labs/qul-indexer/internal/adapters/driving/tui"
	"github.com/tarteel-labs/qul-indexer/internal/core/domain"
	"github.com/tarteel-labs/qul-indexer/internal/core/services"
)

var (
	reconcileKeep        string
	reconcileApply       bool
	reconcileInteractive bool
)

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Find and remove duplicate ingested documents",
	Long: `Scans the per-section backend for documents sharing a name and flags
all but one per group for deletion. Dry-run by default: nothing is
deleted unless --apply is set. With --interactive, the plan is reviewed
in a terminal UI before applying.`,
	RunE: runReconcile,
}

func init() {
	reconcileCmd.Flags().StringVar(&reconcileKeep, "keep", string(domain.KeepOldest), `which duplicate to retain: "oldest" or "newest"`)
	reconcileCmd.Flags().BoolVar(&reconcileApply, "apply", false, "delete flagged duplicates instead of just reporting")
	reconcileCmd.Flags().BoolVarP(&reconcileInteractive, "interactive", "i", false, "review the plan in a terminal UI before applying")
	rootCmd.AddCommand(reconcileCmd)
}

func runReconcile(cmd *cobra.Command, _ []string) error {
	store, err := newIngestStore()
	if err != nil {
		return err
	}

	r := services.NewReconciler(store)
	report, err := r.Plan(cmd.Context(), domain.KeepPolicy(reconcileKeep))
	if err != nil {
		return fmt.Errorf("plan failed: %w", err)
	}

	if reconcileInteractive {
		confirmed, err := reviewPlan(report)
		if err != nil {
			return err
		}
		if !confirmed {
			cmd.Println(dimStyle.Render("Aborted, nothing deleted."))
			return nil
		}
		reconcileApply = true
	}

	printPlan(cmd, report)

	if !reconcileApply {
		cmd.Println(dimStyle.Render("Dry run. Re-run with --apply to delete."))
		return nil
	}
	if report.PendingDeletes() == 0 {
		return nil
	}

	if err := r.Apply(cmd.Context(), report); err != nil {
		return fmt.Errorf("apply failed: %w", err)
	}

	cmd.Println(successStyle.Render(fmt.Sprintf("Deleted %d duplicates", report.Deleted)))
	if report.Failed > 0 {
		cmd.Println(errorStyle.Render(fmt.Sprintf("%d deletions failed", report.Failed)))
	}
	return nil
}

// printPlan summarises the duplicate groups.
func printPlan(cmd *cobra.Command, report *domain.ReconcileReport) {
	cmd.Println(headingStyle.Render(fmt.Sprintf("Scanned %d documents, %d duplicate groups", report.Scanned, len(report.Groups))))
	for _, group := range report.Groups {
		cmd.Printf("  %s: keep %s, remove %d\n", group.Name, group.Keep.ID, len(group.Remove))
	}
}

// reviewPlan runs the interactive review. Returns whether the user
// confirmed applying the plan.
func reviewPlan(report *domain.ReconcileReport) (bool, error) {
	model, err := tea.NewProgram(tui.NewReviewModel(report)).Run()
	if err != nil {
		return false, fmt.Errorf("interactive review: %w", err)
	}

	review, ok := model.(tui.ReviewModel)
	if !ok {
		return false, nil
	}
	return review.Confirmed(), nil
}
