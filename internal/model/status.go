package model

import (
	"errors"
	"strings"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

var (
	ErrUnknownStatus     = errors.New("unknown appointment status")
	ErrIllegalTransition = errors.New("illegal status transition")
)

// legacy spelling of the accepted state
const statusApprovedAlias = "approved"

var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCancelled},
}

// ParseStatus maps an external status string onto the closed set.
// "approved" is folded into StatusConfirmed.
func ParseStatus(s string) (Status, error) {
	switch v := strings.ToLower(strings.TrimSpace(s)); v {
	case string(StatusPending), string(StatusConfirmed), string(StatusCancelled):
		return Status(v), nil
	case statusApprovedAlias:
		return StatusConfirmed, nil
	}
	return "", ErrUnknownStatus
}

func (s Status) Terminal() bool { return s == StatusCancelled }

func (s Status) CanTransitionTo(next Status) bool {
	for _, t := range transitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// Transition returns next if moving from s to next is allowed. Re-applying the current
// status is a no-op unless s is terminal.
func (s Status) Transition(next Status) (Status, error) {
	if s == next && !s.Terminal() {
		return s, nil
	}
	if !s.CanTransitionTo(next) {
		return s, ErrIllegalTransition
	}
	return next, nil
}
