package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/runoshun/vtodo/internal/app"
	"github.com/runoshun/vtodo/internal/usecase"
)

// newInitCommand creates the init command.
func newInitCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize the vtodo data directory",
		Long: `Initialize the vtodo data directory.

This command creates the data directory with:
- the task store (tasks.json, or tasks.db with [tasks] store = "sqlite")
- logs/: directory for log files

The data directory is $VTODO_HOME, else $XDG_DATA_HOME/vtodo,
else ~/.local/share/vtodo.

Running init again is safe: it repairs the store (for example a stale
task ID counter) and leaves existing tasks untouched.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			uc := c.InitStoreUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.InitStoreInput{
				DataDir: c.Config.DataDir,
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			switch {
			case out.Repaired:
				_, _ = fmt.Fprintf(w, "Repaired task store in %s\n", c.Config.StorePath)
			case out.AlreadyInitialized:
				_, _ = fmt.Fprintf(w, "vtodo already initialized in %s\n", out.DataDir)
			default:
				_, _ = fmt.Fprintf(w, "Initialized vtodo in %s\n", out.DataDir)
			}
			return nil
		},
	}
}
