package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/runoshun/vtodo/internal/app"
	"github.com/runoshun/vtodo/internal/domain"
	"github.com/runoshun/vtodo/internal/i18n"
	"github.com/runoshun/vtodo/internal/usecase"
)

// newSayCommand creates the say command, which runs a typed voice command.
func newSayCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Lang   string
		DryRun bool
	}

	cmd := &cobra.Command{
		Use:   "say <words...>",
		Short: "Run a voice command given as text",
		Long: `Run a voice command from typed words, exactly as if it had been spoken.

Supported commands (English):
  add todo: <title>             create a task
  mark <title> as done          complete a task
  mark <title> as high priority flag a task as important
  mark <title> as not urgent    return a task to normal priority

Urdu commands work in native script or Roman transliteration:
  نیا کام: دودھ خریدیں      /  naya kaam: doodh khareedein
  رپورٹ کو اہم بنائیں        /  report ko aham banao
  رپورٹ مکمل ہو گیا         /  report mukammal ho gaya

Task titles are matched against your tasks: an exact title first, then a
title containing the spoken words, then a title contained in them.

Examples:
  vtodo say add todo: buy milk
  vtodo say --lang ur "naya kaam: doodh khareedein"
  vtodo say --dry-run mark buy milk as done`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lang, err := c.Language(opts.Lang)
			if err != nil {
				return err
			}
			owner, err := ownerFor(cmd, c)
			if err != nil {
				return err
			}

			text := strings.Join(args, " ")
			uc := c.VoiceCommandUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.VoiceCommandInput{
				// Typed text is taken at full confidence.
				Transcript: domain.Transcript{Text: text, Confidence: 1, IsFinal: true},
				Owner:      owner,
				Language:   lang,
				DryRun:     opts.DryRun,
			})
			return reportVoiceResult(cmd, c, lang, text, out, err)
		},
	}

	cmd.Flags().StringVarP(&opts.Lang, "lang", "l", "", "Command language: en or ur (default: [voice] language)")
	cmd.Flags().BoolVarP(&opts.DryRun, "dry-run", "n", false, "Show what would happen without changing anything")

	return cmd
}

// newListenCommand creates the listen command.
func newListenCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Lang       string
		Engine     string
		Script     string
		Audio      string
		Encoding   string
		SampleRate int
		DryRun     bool
		TUI        bool
	}

	cmd := &cobra.Command{
		Use:   "listen",
		Short: "Listen for one spoken command",
		Long: `Run one recognition session and execute the command that was heard.

Engines:
  script    replays a YAML script of recognition events (--script)
  deepgram  streams audio (--audio, "-" for stdin) to a Deepgram-compatible
            live transcription endpoint; the API key is read from
            $DEEPGRAM_API_KEY or the variable named by [deepgram] api_key_env

Interim results are shown while listening. Press Ctrl-C (or q with --tui)
to stop early.

Script format:
  events:
    - text: "add todo"
      confidence: 0.5
    - text: "add todo: buy milk"
      confidence: 0.93
      final: true

Examples:
  vtodo listen --script session.yaml
  vtodo listen --engine deepgram --audio memo.wav --lang ur
  arecord -f S16_LE -r 16000 | vtodo listen --engine deepgram --audio - --encoding linear16 --sample-rate 16000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			lang, err := c.Language(opts.Lang)
			if err != nil {
				return err
			}
			owner, err := ownerFor(cmd, c)
			if err != nil {
				return err
			}

			engine, err := c.SpeechEngine(app.EngineOptions{
				Name:       opts.Engine,
				ScriptPath: opts.Script,
				AudioPath:  opts.Audio,
				Encoding:   opts.Encoding,
				SampleRate: opts.SampleRate,
			})
			if err != nil {
				return err
			}
			uc := c.ListenUseCase(c.Recognizer(engine))

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			input := usecase.ListenInput{
				Owner:    owner,
				Language: lang,
				DryRun:   opts.DryRun,
			}

			if opts.TUI {
				return runListenTUIFunc(ctx, lang, func(ctx context.Context, onInterim func(domain.Transcript)) (*usecase.ListenOutput, error) {
					input.OnInterim = onInterim
					return uc.Execute(ctx, input)
				})
			}

			errw := cmd.ErrOrStderr()
			_, _ = fmt.Fprintln(errw, i18n.T(lang, i18n.KeyListening))
			input.OnInterim = func(t domain.Transcript) {
				_, _ = fmt.Fprintf(errw, "  ... %s\n", t.Text)
			}

			out, err := uc.Execute(ctx, input)
			var (
				heard string
				res   *usecase.VoiceCommandOutput
			)
			if out != nil {
				heard = out.Transcript.Text
				res = out.Result
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), i18n.Tf(lang, i18n.KeyHeard, heard))
			}
			return reportVoiceResult(cmd, c, lang, heard, res, err)
		},
	}

	cmd.Flags().StringVarP(&opts.Lang, "lang", "l", "", "Spoken language: en or ur (default: [voice] language)")
	cmd.Flags().StringVar(&opts.Engine, "engine", "", "Speech engine: script or deepgram (default: [voice] engine)")
	cmd.Flags().StringVar(&opts.Script, "script", "", "Recognition script for the script engine")
	cmd.Flags().StringVar(&opts.Audio, "audio", "", "Audio file for the deepgram engine (- for stdin)")
	cmd.Flags().StringVar(&opts.Encoding, "encoding", "", "Raw audio encoding, e.g. linear16 (omit for wav/mp3)")
	cmd.Flags().IntVar(&opts.SampleRate, "sample-rate", 0, "Raw audio sample rate in Hz")
	cmd.Flags().BoolVarP(&opts.DryRun, "dry-run", "n", false, "Show what would happen without changing anything")
	cmd.Flags().BoolVar(&opts.TUI, "tui", false, "Show an interactive listening view")

	return cmd
}

// reportVoiceResult prints the localized outcome of a voice command.
// Failures are printed to stderr and returned as ReportedError; a missing
// store is returned as is so the user sees the init hint.
func reportVoiceResult(cmd *cobra.Command, c *app.Container, lang domain.Language, heard string, out *usecase.VoiceCommandOutput, err error) error {
	if errors.Is(err, domain.ErrNotInitialized) {
		return err
	}

	msg := usecase.FeedbackMessage(lang, heard, out, err)
	if err != nil {
		_, _ = fmt.Fprintln(cmd.ErrOrStderr(), msg)
		if c.Logger != nil {
			c.Logger.Debug("voice command failed", "error", err)
		}
		return &ReportedError{Err: err}
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), msg)
	return nil
}
