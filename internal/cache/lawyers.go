package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"legal-booking-api/internal/model"
)

const (
	activeLawyersKey = "directory:lawyers:active"
	generationKey    = "directory:lawyers:gen"
)

// setIfCurrent writes the listing only while the generation still matches ARGV[1].
var setIfCurrent = redis.NewScript(`
local cur = redis.call('GET', KEYS[1]) or '0'
if cur ~= ARGV[1] then
	return 0
end
redis.call('SET', KEYS[2], ARGV[2], 'PX', ARGV[3])
return 1
`)

// ErrMiss is returned when the key is absent.
var ErrMiss = errors.New("cache miss")

// lawyerEntry is the cached form of a lawyer. Credentials never reach redis.
type lawyerEntry struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Gender          string    `json:"gender"`
	Email           string    `json:"email"`
	Specialization  string    `json:"specialization"`
	ExperienceYears int       `json:"experience_years"`
	HourlyRate      float64   `json:"hourly_rate"`
	Bio             string    `json:"bio"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Lawyers caches the active lawyer directory as a single JSON value.
type Lawyers struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewLawyers(rdb redis.Cmdable, ttl time.Duration) *Lawyers {
	return &Lawyers{rdb: rdb, ttl: ttl}
}

func (c *Lawyers) Active(ctx context.Context) ([]model.Lawyer, error) {
	data, err := c.rdb.Get(ctx, activeLawyersKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, err
	}

	var entries []lawyerEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decode cached lawyers: %w", err)
	}
	out := make([]model.Lawyer, len(entries))
	for i, e := range entries {
		out[i] = model.Lawyer{
			ID:              e.ID,
			Name:            e.Name,
			Gender:          model.Gender(e.Gender),
			Email:           e.Email,
			Specialization:  e.Specialization,
			ExperienceYears: e.ExperienceYears,
			HourlyRate:      e.HourlyRate,
			Bio:             e.Bio,
			Status:          model.LawyerStatus(e.Status),
			CreatedAt:       e.CreatedAt,
			UpdatedAt:       e.UpdatedAt,
		}
	}
	return out, nil
}

// Generation is bumped by every Invalidate. Read it before loading from the database.
func (c *Lawyers) Generation(ctx context.Context) (int64, error) {
	gen, err := c.rdb.Get(ctx, generationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// SetActive stores the listing loaded at generation gen. The write is dropped when an
// Invalidate happened since, so a slow reader cannot put back a list an admin just changed.
func (c *Lawyers) SetActive(ctx context.Context, gen int64, lawyers []model.Lawyer) error {
	entries := make([]lawyerEntry, len(lawyers))
	for i, l := range lawyers {
		entries[i] = lawyerEntry{
			ID:              l.ID,
			Name:            l.Name,
			Gender:          string(l.Gender),
			Email:           l.Email,
			Specialization:  l.Specialization,
			ExperienceYears: l.ExperienceYears,
			HourlyRate:      l.HourlyRate,
			Bio:             l.Bio,
			Status:          string(l.Status),
			CreatedAt:       l.CreatedAt,
			UpdatedAt:       l.UpdatedAt,
		}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	keys := []string{generationKey, activeLawyersKey}
	return setIfCurrent.Run(ctx, c.rdb, keys, strconv.FormatInt(gen, 10), data, c.ttl.Milliseconds()).Err()
}

func (c *Lawyers) Invalidate(ctx context.Context) error {
	_, err := c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, generationKey)
		pipe.Del(ctx, activeLawyersKey)
		return nil
	})
	return err
}
