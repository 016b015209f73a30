package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/runoshun/vtodo/internal/app"
	"github.com/runoshun/vtodo/internal/usecase"
)

// newPruneCommand creates the prune command.
func newPruneCommand(c *app.Container) *cobra.Command {
	var (
		dryRun bool
		yes    bool
	)

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete completed tasks",
		Long: `Prune deletes all of your completed tasks.

The tasks to be deleted are listed first and confirmation is asked
unless --yes is given.

Examples:
  vtodo prune --dry-run
  vtodo prune -y`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			owner, err := ownerFor(cmd, c)
			if err != nil {
				return err
			}
			uc := c.PruneTasksUseCase()
			w := cmd.OutOrStdout()

			// Preview first, then confirm unless --yes
			preview, err := uc.Execute(cmd.Context(), usecase.PruneTasksInput{
				Owner:  owner,
				DryRun: true,
			})
			if err != nil {
				return err
			}

			if len(preview.DeletedTasks) == 0 {
				_, _ = fmt.Fprintln(w, "Nothing to prune.")
				return nil
			}

			_, _ = fmt.Fprintln(w, "Tasks to be deleted:")
			for _, task := range preview.DeletedTasks {
				_, _ = fmt.Fprintf(w, "  - #%d %s\n", task.ID, task.Title)
			}
			_, _ = fmt.Fprintln(w)

			if dryRun {
				_, _ = fmt.Fprintln(w, "Dry run: no changes made.")
				return nil
			}

			if !yes {
				_, _ = fmt.Fprint(w, "Are you sure you want to delete these tasks? [y/N] ")
				response, readErr := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if readErr != nil && response == "" {
					// EOF counts as no
					_, _ = fmt.Fprintln(w, "\nAborted.")
					return nil
				}
				if strings.ToLower(strings.TrimSpace(response)) != "y" {
					_, _ = fmt.Fprintln(w, "Aborted.")
					return nil
				}
			}

			out, err := uc.Execute(cmd.Context(), usecase.PruneTasksInput{Owner: owner})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(w, "Deleted %d completed task(s).\n", len(out.DeletedTasks))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Display only, no deletion")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation prompt")

	return cmd
}
