// Package deepgram implements a streaming speech engine on top of a
// Deepgram-compatible live transcription websocket.
package deepgram

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/runoshun/vtodo/internal/domain"
)

// EngineName is the configuration name of this engine.
const EngineName = domain.EngineDeepgram

const chunkSize = 8 * 1024

// closeStreamMsg asks the server to flush pending results and close.
var closeStreamMsg = []byte(`{"type":"CloseStream"}`)

// Config holds the connection settings.
// Fields are ordered to minimize memory padding.
type Config struct {
	Endpoint   string
	Model      string
	APIKey     string
	Encoding   string // Raw audio encoding; empty for containerized audio (wav, mp3)
	SampleRate int
}

// AudioSource opens the audio to transcribe.
type AudioSource func() (io.ReadCloser, error)

// FileSource reads audio from path, or from stdin when path is "-".
func FileSource(path string) AudioSource {
	return func() (io.ReadCloser, error) {
		if path == "-" {
			return io.NopCloser(os.Stdin), nil
		}
		return os.Open(path)
	}
}

// Ensure Engine implements domain.SpeechEngine.
var _ domain.SpeechEngine = (*Engine)(nil)

// Engine streams one utterance per session.
type Engine struct {
	dialer *websocket.Dialer
	open   AudioSource
	cfg    Config
}

// New creates an Engine.
func New(cfg Config, open AudioSource) *Engine {
	if cfg.Endpoint == "" {
		cfg.Endpoint = domain.DefaultDeepgramEndpoint
	}
	if cfg.Model == "" {
		cfg.Model = domain.DefaultDeepgramModel
	}
	return &Engine{
		dialer: websocket.DefaultDialer,
		open:   open,
		cfg:    cfg,
	}
}

// Name returns the engine name.
func (e *Engine) Name() string { return EngineName }

// Supported reports whether credentials and an audio source are configured.
func (e *Engine) Supported() bool {
	return e.cfg.APIKey != "" && e.open != nil
}

// Listen opens the audio source, connects and starts streaming.
func (e *Engine) Listen(ctx context.Context, opts domain.ListenOptions) (<-chan domain.SpeechEvent, error) {
	audio, err := e.open()
	if err != nil {
		return nil, domain.NewRecognitionError(domain.ErrorNoMicrophone, fmt.Errorf("open audio: %w", err))
	}

	u, err := e.listenURL(opts)
	if err != nil {
		_ = audio.Close()
		return nil, fmt.Errorf("build listen url: %w", err)
	}

	header := http.Header{}
	header.Set("Authorization", "Token "+e.cfg.APIKey)
	conn, resp, err := e.dialer.DialContext(ctx, u, header)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		_ = audio.Close()
		return nil, dialError(ctx, resp, err)
	}

	events := make(chan domain.SpeechEvent)
	go e.stream(ctx, conn, audio, events)
	return events, nil
}

func (e *Engine) listenURL(opts domain.ListenOptions) (string, error) {
	u, err := url.Parse(e.cfg.Endpoint)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("model", e.cfg.Model)
	if opts.Language != "" {
		q.Set("language", opts.Language.Locale())
	}
	q.Set("interim_results", strconv.FormatBool(opts.InterimResults))
	// Punctuation would end up inside spoken titles.
	q.Set("punctuate", "false")
	q.Set("smart_format", "false")
	if opts.MaxAlternatives > 0 {
		q.Set("alternatives", strconv.Itoa(opts.MaxAlternatives))
	}
	if e.cfg.Encoding != "" {
		q.Set("encoding", e.cfg.Encoding)
		if e.cfg.SampleRate > 0 {
			q.Set("sample_rate", strconv.Itoa(e.cfg.SampleRate))
		}
		q.Set("channels", "1")
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func dialError(ctx context.Context, resp *http.Response, err error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if resp != nil && (resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden) {
		return domain.NewRecognitionError(domain.ErrorPermissionDenied, fmt.Errorf("dial: %s", resp.Status))
	}
	return domain.NewRecognitionError(domain.ErrorNetwork, fmt.Errorf("dial: %w", err))
}

// resultMessage is the subset of a live transcription response we use.
type resultMessage struct {
	Type    string `json:"type"`
	Channel struct {
		Alternatives []struct {
			Transcript string  `json:"transcript"`
			Confidence float64 `json:"confidence"`
		} `json:"alternatives"`
	} `json:"channel"`
	IsFinal     bool `json:"is_final"`
	SpeechFinal bool `json:"speech_final"`
}

// stream reads results until the utterance ends. Finalized segments are
// joined into one final transcript; everything before that is interim.
func (e *Engine) stream(ctx context.Context, conn *websocket.Conn, audio io.ReadCloser, events chan<- domain.SpeechEvent) {
	defer close(events)
	defer conn.Close()
	defer audio.Close()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-done:
		}
	}()
	go pump(conn, audio, done)

	var utt utterance
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				events <- domain.SpeechEvent{Err: ctx.Err()}
				return
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				events <- utt.finish()
				return
			}
			events <- domain.SpeechEvent{Err: domain.NewRecognitionError(domain.ErrorNetwork, fmt.Errorf("read: %w", err))}
			return
		}

		var msg resultMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}
		switch msg.Type {
		case "UtteranceEnd":
			if !utt.empty() {
				events <- utt.finish()
				return
			}
			continue
		case "", "Results":
		default:
			continue
		}
		if len(msg.Channel.Alternatives) == 0 {
			continue
		}
		alt := msg.Channel.Alternatives[0]
		text := strings.TrimSpace(alt.Transcript)

		if msg.IsFinal {
			utt.add(text, alt.Confidence)
			if msg.SpeechFinal && !utt.empty() {
				events <- utt.finish()
				return
			}
			if text != "" {
				events <- utt.interim("", alt.Confidence)
			}
			continue
		}
		if text != "" {
			events <- utt.interim(text, alt.Confidence)
		}
	}
}

// pump streams audio chunks and then asks the server to close the stream.
func pump(conn *websocket.Conn, audio io.Reader, done <-chan struct{}) {
	buf := make([]byte, chunkSize)
	for {
		n, err := audio.Read(buf)
		if n > 0 {
			if werr := conn.WriteMessage(websocket.BinaryMessage, buf[:n]); werr != nil {
				return
			}
		}
		if err != nil {
			// EOF or a failed read: flush whatever the server has.
			_ = conn.WriteMessage(websocket.TextMessage, closeStreamMsg)
			return
		}
		select {
		case <-done:
			return
		default:
		}
	}
}

// utterance accumulates finalized segments.
type utterance struct {
	parts      []string
	confidence float64
}

func (u *utterance) add(text string, confidence float64) {
	if text == "" {
		return
	}
	if len(u.parts) == 0 || confidence < u.confidence {
		u.confidence = confidence
	}
	u.parts = append(u.parts, text)
}

func (u *utterance) empty() bool {
	return len(u.parts) == 0
}

func (u *utterance) text(pending string) string {
	parts := u.parts
	if pending != "" {
		parts = append(parts[:len(parts):len(parts)], pending)
	}
	return strings.Join(parts, " ")
}

func (u *utterance) interim(pending string, confidence float64) domain.SpeechEvent {
	return domain.SpeechEvent{Transcript: domain.Transcript{
		Text:       u.text(pending),
		Confidence: confidence,
	}}
}

// finish returns the final transcript, or a no-speech error when nothing
// was recognized.
func (u *utterance) finish() domain.SpeechEvent {
	if u.empty() {
		return domain.SpeechEvent{Err: domain.NewRecognitionError(domain.ErrorNoSpeech, errors.New("stream closed without speech"))}
	}
	return domain.SpeechEvent{Transcript: domain.Transcript{
		Text:       u.text(""),
		Confidence: u.confidence,
		IsFinal:    true,
	}}
}
