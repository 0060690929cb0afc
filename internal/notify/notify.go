package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

type Kind string

const (
	// KindRegistrationPending tells the admin a new client is waiting for review.
	KindRegistrationPending Kind = "registration_pending"
	KindUserApproved        Kind = "user_approved"
	KindUserRejected        Kind = "user_rejected"
)

var ErrUnknownKind = errors.New("unknown notification kind")

// Event is what the services hand to a Notifier. Name and Email describe the
// user the event is about; To is the recipient address.
type Event struct {
	Kind  Kind
	To    string
	Name  string
	Email string
}

type Notifier interface {
	Notify(ctx context.Context, ev Event) error
}

type Message struct {
	To      string
	Subject string
	Body    string
}

type Mailer interface {
	Send(ctx context.Context, m Message) error
}

// Compose renders the message for ev.
func Compose(ev Event) (Message, error) {
	m := Message{To: ev.To}
	var b strings.Builder
	switch ev.Kind {
	case KindRegistrationPending:
		m.Subject = "New User Registration - Approval Required"
		fmt.Fprintf(&b, "A new user has registered and requires approval:\n\n")
		fmt.Fprintf(&b, "Name: %s\nEmail: %s\n\n", ev.Name, ev.Email)
		b.WriteString("Please review and approve or reject this user.\n")
	case KindUserApproved:
		m.Subject = "Your Account Has Been Approved"
		fmt.Fprintf(&b, "Dear %s,\n\n", ev.Name)
		b.WriteString("Your account has been approved by the administrator. You can now log in to your account.\n")
	case KindUserRejected:
		m.Subject = "Your Account Registration Has Been Rejected"
		fmt.Fprintf(&b, "Dear %s,\n\n", ev.Name)
		b.WriteString("We regret to inform you that your account registration has been rejected by the administrator.\n")
		b.WriteString("If you believe this is a mistake, please contact our support team.\n")
	default:
		return Message{}, fmt.Errorf("%w: %q", ErrUnknownKind, ev.Kind)
	}
	m.Body = b.String()
	return m, nil
}

// Direct delivers events synchronously through a Mailer. Used when no stream is configured.
type Direct struct {
	Mailer Mailer
}

func (d Direct) Notify(ctx context.Context, ev Event) error {
	m, err := Compose(ev)
	if err != nil {
		return err
	}
	return d.Mailer.Send(ctx, m)
}
