package cli

import (
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/runoshun/vtodo/internal/app"
	"github.com/runoshun/vtodo/internal/domain"
	"github.com/runoshun/vtodo/internal/usecase"
)

// newConfigCommand creates the config command.
func newConfigCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Init   bool
		Global bool
	}

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or create configuration files",
		Long: `Show the configuration files and the effective configuration.

Configuration is merged from:
  1. $XDG_CONFIG_HOME/vtodo/config.toml (global)
  2. <data dir>/config.toml

With --init, a commented config file is written to the data directory
(or the global config directory with --global). Existing files are never
overwritten.

Examples:
  vtodo config
  vtodo config --init
  vtodo config --init --global`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.Global && !opts.Init {
				return fmt.Errorf("--global can only be used with --init")
			}

			if opts.Init {
				uc := c.InitConfigUseCase()
				out, err := uc.Execute(cmd.Context(), usecase.InitConfigInput{
					Global: opts.Global,
				})
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created config file: %s\n", out.Path)
				return nil
			}

			uc := c.ShowConfigUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.ShowConfigInput{})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()

			// Display loaded files section
			_, _ = fmt.Fprintln(w, "[Loaded from]")
			printConfigSource(w, out.GlobalConfig)
			printConfigSource(w, out.DataConfig)
			_, _ = fmt.Fprintln(w)

			// Display effective config in TOML format
			_, _ = fmt.Fprintln(w, "[Effective Config]")
			return formatEffectiveConfig(w, out.Effective)
		},
	}

	cmd.Flags().BoolVar(&opts.Init, "init", false, "Create a config file from the template")
	cmd.Flags().BoolVar(&opts.Global, "global", false, "With --init, create the global config file")

	return cmd
}

func printConfigSource(w io.Writer, info domain.ConfigInfo) {
	if info.Path == "" {
		return
	}
	if info.Exists {
		_, _ = fmt.Fprintf(w, "- %s\n", info.Path)
	} else {
		_, _ = fmt.Fprintf(w, "- %s (not found)\n", info.Path)
	}
}

// formatEffectiveConfig writes cfg as TOML.
func formatEffectiveConfig(w io.Writer, cfg *domain.Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	_, err = w.Write(data)
	return err
}
