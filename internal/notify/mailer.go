package notify

import (
	"context"

	"github.com/rs/zerolog/log"
)

// LogMailer writes messages to the log instead of sending them.
type LogMailer struct{}

func (LogMailer) Send(_ context.Context, m Message) error {
	log.Info().
		Str("to", m.To).
		Str("subject", m.Subject).
		Msg("mail")
	log.Debug().Str("to", m.To).Msg(m.Body)
	return nil
}
