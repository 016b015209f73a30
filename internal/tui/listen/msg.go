package listen

import (
	"github.com/runoshun/vtodo/internal/domain"
	"github.com/runoshun/vtodo/internal/usecase"
)

// MsgInterim is sent for each interim transcript.
type MsgInterim struct {
	Transcript domain.Transcript
}

// MsgFinished is sent once when the session and its command are done.
type MsgFinished struct {
	Output *usecase.ListenOutput
	Err    error
}
