package notify

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"legal-booking-api/internal/metrics"
)

const (
	consumerGroup = "legal_notifiers"
	streamMaxLen  = 10000
)

type streamAdder interface {
	XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd
}

// StreamPublisher appends events to a redis stream for the Worker to deliver.
type StreamPublisher struct {
	rdb    streamAdder
	stream string
}

func NewStreamPublisher(rdb streamAdder, stream string) *StreamPublisher {
	return &StreamPublisher{rdb: rdb, stream: stream}
}

func (p *StreamPublisher) Notify(ctx context.Context, ev Event) error {
	err := p.rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		MaxLen: streamMaxLen,
		Approx: true,
		Values: encode(ev),
	}).Err()
	metrics.NotificationsTotal.WithLabelValues("publish", string(ev.Kind), metrics.Result(err)).Inc()
	return err
}

func encode(ev Event) map[string]any {
	return map[string]any{
		"kind":  string(ev.Kind),
		"to":    ev.To,
		"name":  ev.Name,
		"email": ev.Email,
	}
}

func decode(values map[string]any) (Event, error) {
	str := func(k string) string {
		s, _ := values[k].(string)
		return s
	}
	ev := Event{Kind: Kind(str("kind")), To: str("to"), Name: str("name"), Email: str("email")}
	if ev.Kind == "" || ev.To == "" {
		return Event{}, errors.New("malformed notification entry")
	}
	return ev, nil
}

// Worker consumes the stream through a consumer group and hands each event to a Mailer.
type Worker struct {
	rdb      *redis.Client
	stream   string
	consumer string
	mailer   Mailer
}

func NewWorker(rdb *redis.Client, stream, consumer string, mailer Mailer) *Worker {
	return &Worker{rdb: rdb, stream: stream, consumer: consumer, mailer: mailer}
}

// Run blocks until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) {
	err := w.rdb.XGroupCreateMkStream(ctx, w.stream, consumerGroup, "0").Err()
	if err != nil && !strings.HasPrefix(err.Error(), "BUSYGROUP") {
		log.Error().Err(err).Str("stream", w.stream).Msg("create consumer group")
	}

	log.Info().Str("stream", w.stream).Str("consumer", w.consumer).Msg("notification worker started")
	for {
		if ctx.Err() != nil {
			log.Info().Msg("notification worker stopped")
			return
		}

		entries, err := w.rdb.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    consumerGroup,
			Consumer: w.consumer,
			Streams:  []string{w.stream, ">"},
			Count:    10,
			Block:    5 * time.Second,
		}).Result()
		if err != nil {
			if !errors.Is(err, redis.Nil) && ctx.Err() == nil {
				log.Warn().Err(err).Msg("read notification stream")
				sleep(ctx, time.Second)
			}
			continue
		}

		for _, s := range entries {
			for _, msg := range s.Messages {
				w.handle(ctx, msg)
				if err := w.rdb.XAck(ctx, w.stream, consumerGroup, msg.ID).Err(); err != nil {
					log.Warn().Err(err).Str("id", msg.ID).Msg("ack notification")
				}
			}
		}
	}
}

// handle delivers one entry. Failures are logged and the entry is still acked.
func (w *Worker) handle(ctx context.Context, msg redis.XMessage) {
	ev, err := decode(msg.Values)
	if err != nil {
		log.Warn().Err(err).Str("id", msg.ID).Msg("drop notification")
		return
	}
	m, err := Compose(ev)
	if err == nil {
		err = w.mailer.Send(ctx, m)
	}
	metrics.NotificationsTotal.WithLabelValues("deliver", string(ev.Kind), metrics.Result(err)).Inc()
	if err != nil {
		log.Warn().Err(err).Str("id", msg.ID).Str("kind", string(ev.Kind)).Msg("deliver notification")
	}
}

func sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
