package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/runoshun/vtodo/internal/app"
	"github.com/runoshun/vtodo/internal/usecase"
)

// newLogsCommand creates the logs command.
func newLogsCommand(c *app.Container) *cobra.Command {
	var lines int

	cmd := &cobra.Command{
		Use:   "logs [id]",
		Short: "Show the activity log",
		Long: `Show the activity log, or the log of one task.

Task changes, voice commands and listening sessions are logged to
<data dir>/logs. The level is set with [log] level in the config.

Examples:
  vtodo logs
  vtodo logs 3
  vtodo logs -n 20`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := usecase.ShowLogsInput{Lines: lines}
			if len(args) == 1 {
				taskID, err := parseTaskID(args[0])
				if err != nil {
					return fmt.Errorf("invalid task ID: %w", err)
				}
				owner, err := ownerFor(cmd, c)
				if err != nil {
					return err
				}
				input.TaskID = taskID
				input.Owner = owner
			}

			out, err := c.ShowLogsUseCase().Execute(cmd.Context(), input)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), out.Content)
			return nil
		},
	}

	cmd.Flags().IntVarP(&lines, "lines", "n", 0, "Number of lines to show from the end (0 = all)")

	return cmd
}
