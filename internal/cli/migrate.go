package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/runoshun/vtodo/internal/app"
	"github.com/runoshun/vtodo/internal/domain"
	"github.com/runoshun/vtodo/internal/usecase"
)

// newMigrateCommand creates the migrate command.
func newMigrateCommand(c *app.Container) *cobra.Command {
	var opts struct {
		To     string
		Path   string
		DryRun bool
	}

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Copy tasks to another store backend",
		Long: `Copy every task of every owner from the current store into another
store backend, keeping task IDs.

Tasks already present and identical in the destination are skipped. A
task that differs aborts the migration before anything is written.
Switch to the new store afterwards with [tasks] store in the config.

Examples:
  # Move from tasks.json to tasks.db
  vtodo migrate --to sqlite

  # Export to a JSON file
  vtodo migrate --to json --path ./backup.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			to := strings.ToLower(strings.TrimSpace(opts.To))
			if to != domain.StoreJSON && to != domain.StoreSQLite {
				return fmt.Errorf("%w: %q", domain.ErrUnknownStore, opts.To)
			}
			path := opts.Path
			if path == "" {
				path = domain.StorePath(c.Config.DataDir, to)
			}
			if sameFile(path, c.Config.StorePath) {
				return domain.ErrSameStore
			}

			dest, err := c.OpenStore(to, path)
			if err != nil {
				return err
			}

			uc := c.MigrateStoreUseCase(dest)
			out, err := uc.Execute(cmd.Context(), usecase.MigrateStoreInput{DryRun: opts.DryRun})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if out.Total == 0 {
				_, _ = fmt.Fprintf(w, "No tasks found in %s\n", c.Config.StorePath)
				return nil
			}

			verb := "Migrated"
			if opts.DryRun {
				verb = "Would migrate"
			}
			summary := fmt.Sprintf("%s %d task(s) to %s", verb, out.Migrated, path)
			if out.Skipped > 0 {
				summary += fmt.Sprintf(" (skipped %d existing)", out.Skipped)
			}
			_, _ = fmt.Fprintln(w, summary)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.To, "to", "", "Destination store: json or sqlite (required)")
	cmd.Flags().StringVar(&opts.Path, "path", "", "Destination file (default: in the data directory)")
	cmd.Flags().BoolVarP(&opts.DryRun, "dry-run", "n", false, "Count tasks without writing")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func sameFile(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return a == b
	}
	return absA == absB
}
