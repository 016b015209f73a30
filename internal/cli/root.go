// Package cli provides the command-line interface for vtodo.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/runoshun/vtodo/internal/app"
)

// Command group IDs.
const (
	groupSetup = "setup"
	groupTask  = "task"
	groupVoice = "voice"
)

// ReportedError marks an error whose message has already been shown to the
// user. main exits non-zero without printing it again.
type ReportedError struct {
	Err error
}

func (e *ReportedError) Error() string { return e.Err.Error() }

// Unwrap returns the underlying error.
func (e *ReportedError) Unwrap() error { return e.Err }

// NewRootCommand creates the root command for vtodo.
// It receives the container for dependency injection and version for display.
func NewRootCommand(c *app.Container, version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "vtodo",
		Short: "Voice-driven todo list",
		Long: `vtodo is a todo list you can talk to.

Tasks belong to a single owner and are either high or normal priority.
Besides the usual task commands, spoken commands in English or Urdu
(native script or Roman transliteration) can create tasks, complete them
and change their priority:

  vtodo say add todo: buy milk
  vtodo say --lang ur "doodh ko aham banao"
  vtodo listen --script session.yaml`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			// Skip if container is nil (e.g. in tests)
			if c == nil || c.AppConfig == nil {
				return
			}
			for _, w := range c.AppConfig.Warnings {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", w)
			}
		},
	}

	root.PersistentFlags().String("owner", "", "Act as this user (default: $VTODO_OWNER, config owner, OS user)")

	// Define command groups
	root.AddGroup(
		&cobra.Group{ID: groupSetup, Title: "Setup Commands:"},
		&cobra.Group{ID: groupTask, Title: "Task Management:"},
		&cobra.Group{ID: groupVoice, Title: "Voice Commands:"},
	)

	// Setup commands
	initCmd := newInitCommand(c)
	initCmd.GroupID = groupSetup

	configCmd := newConfigCommand(c)
	configCmd.GroupID = groupSetup

	migrateCmd := newMigrateCommand(c)
	migrateCmd.GroupID = groupSetup

	logsCmd := newLogsCommand(c)
	logsCmd.GroupID = groupSetup

	// Task management commands
	newCmd := newNewCommand(c)
	newCmd.GroupID = groupTask

	listCmd := newListCommand(c)
	listCmd.GroupID = groupTask

	showCmd := newShowCommand(c)
	showCmd.GroupID = groupTask

	editCmd := newEditCommand(c)
	editCmd.GroupID = groupTask

	rmCmd := newRmCommand(c)
	rmCmd.GroupID = groupTask

	doneCmd := newDoneCommand(c)
	doneCmd.GroupID = groupTask

	undoneCmd := newUndoneCommand(c)
	undoneCmd.GroupID = groupTask

	priorityCmd := newPriorityCommand(c)
	priorityCmd.GroupID = groupTask

	pruneCmd := newPruneCommand(c)
	pruneCmd.GroupID = groupTask

	// Voice commands
	sayCmd := newSayCommand(c)
	sayCmd.GroupID = groupVoice

	listenCmd := newListenCommand(c)
	listenCmd.GroupID = groupVoice

	// Add subcommands
	root.AddCommand(
		initCmd,
		configCmd,
		migrateCmd,
		logsCmd,
		newCmd,
		listCmd,
		showCmd,
		editCmd,
		rmCmd,
		doneCmd,
		undoneCmd,
		priorityCmd,
		pruneCmd,
		sayCmd,
		listenCmd,
	)

	return root
}

// ownerFor resolves the acting owner for cmd from --owner and the container.
func ownerFor(cmd *cobra.Command, c *app.Container) (string, error) {
	flag, _ := cmd.Flags().GetString("owner")
	return c.Owner(flag)
}
