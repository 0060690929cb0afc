package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"legal-booking-api/internal/auth"
	"legal-booking-api/internal/model"
	"legal-booking-api/internal/notify"
)

const testSecret = "test-secret-that-is-long-enough-32b"

func newIdentity(t *testing.T) (*Identity, *memStore, *recordingNotifier) {
	t.Helper()
	ms := newMemStore()
	rn := &recordingNotifier{}
	id := NewIdentity(ms, ms, ms, ms, rn, IdentityConfig{
		Issuer:     auth.Issuer{Secret: testSecret, TTL: 15 * time.Minute},
		RefreshTTL: time.Hour,
		AdminEmail: "admin@legal.test",
		SignupKey:  "let-me-in",
	})
	return id, ms, rn
}

func alice() RegisterInput {
	return RegisterInput{Name: "Alice", Email: "alice@x.com", Password: "password123", Age: 30, Gender: "Female"}
}

func TestRegisterValidation(t *testing.T) {
	id, _, rn := newIdentity(t)
	ctx := context.Background()

	tests := []struct {
		name string
		mod  func(*RegisterInput)
		want error
	}{
		{"missing name", func(in *RegisterInput) { in.Name = " " }, ErrMissingFields},
		{"missing email", func(in *RegisterInput) { in.Email = "" }, ErrMissingFields},
		{"missing password", func(in *RegisterInput) { in.Password = "" }, ErrMissingFields},
		{"negative age", func(in *RegisterInput) { in.Age = -1 }, ErrInvalidAge},
		{"bad gender", func(in *RegisterInput) { in.Gender = "female" }, ErrInvalidGender},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := alice()
			tt.mod(&in)
			_, err := id.Register(ctx, in)
			assert.ErrorIs(t, err, tt.want)
		})
	}
	assert.Empty(t, rn.kinds(), "no notification for failed registrations")
}

func TestRegisterAcceptsShortPassword(t *testing.T) {
	id, _, _ := newIdentity(t)
	ctx := context.Background()

	in := alice()
	in.Password = "abc"
	u, err := id.Register(ctx, in)
	require.NoError(t, err)
	require.NoError(t, id.Approve(ctx, u.ID))

	_, err = id.Login(ctx, "alice@x.com", "abc")
	assert.NoError(t, err)
}

func TestRegisterDuplicateCheckedFirst(t *testing.T) {
	id, _, _ := newIdentity(t)
	ctx := context.Background()

	_, err := id.Register(ctx, alice())
	require.NoError(t, err)

	in := alice()
	in.Age = -5
	in.Gender = "unknown"
	_, err = id.Register(ctx, in)
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestRegisterCreatesPendingUserAndNotifiesAdmin(t *testing.T) {
	id, _, rn := newIdentity(t)

	in := alice()
	in.Email = "  Alice@X.com "
	u, err := id.Register(context.Background(), in)
	require.NoError(t, err)
	assert.False(t, u.IsApproved)
	assert.Equal(t, "alice@x.com", u.Email)
	assert.NotEqual(t, "password123", u.PasswordHash)

	require.Len(t, rn.events, 1)
	ev := rn.events[0]
	assert.Equal(t, notify.KindRegistrationPending, ev.Kind)
	assert.Equal(t, "admin@legal.test", ev.To)
	assert.Equal(t, "alice@x.com", ev.Email)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	id, _, _ := newIdentity(t)
	ctx := context.Background()

	_, err := id.Register(ctx, alice())
	require.NoError(t, err)
	_, err = id.Register(ctx, alice())
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestRegisterSurvivesNotifierFailure(t *testing.T) {
	id, _, rn := newIdentity(t)
	rn.err = errors.New("smtp down")

	_, err := id.Register(context.Background(), alice())
	assert.NoError(t, err)
}

func TestApprovalGate(t *testing.T) {
	id, _, rn := newIdentity(t)
	ctx := context.Background()

	u, err := id.Register(ctx, alice())
	require.NoError(t, err)

	_, err = id.Login(ctx, "alice@x.com", "password123")
	assert.ErrorIs(t, err, ErrPendingApproval)

	require.NoError(t, id.Approve(ctx, u.ID))
	assert.Equal(t, []notify.Kind{notify.KindRegistrationPending, notify.KindUserApproved}, rn.kinds())

	sess, err := id.Login(ctx, "alice@x.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, u.ID, sess.Principal.ID)
	assert.Equal(t, model.RoleClient, sess.Principal.Role)
	assert.Equal(t, "Alice", sess.Principal.Name)
	assert.NotEmpty(t, sess.RefreshToken)

	claims, err := auth.ParseToken(sess.AccessToken, testSecret)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, model.RoleClient, claims.Role)

	// approving twice is harmless
	assert.NoError(t, id.Approve(ctx, u.ID))
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	id, _, _ := newIdentity(t)
	ctx := context.Background()

	u, err := id.Register(ctx, alice())
	require.NoError(t, err)
	require.NoError(t, id.Approve(ctx, u.ID))

	_, errWrongPw := id.Login(ctx, "alice@x.com", "wrong-password")
	_, errUnknown := id.Login(ctx, "nobody@x.com", "password123")
	assert.ErrorIs(t, errWrongPw, ErrInvalidCredentials)
	assert.ErrorIs(t, errUnknown, ErrInvalidCredentials)
	assert.Equal(t, errWrongPw.Error(), errUnknown.Error())
}

func TestLoginPendingOnlyAfterPasswordCheck(t *testing.T) {
	id, _, _ := newIdentity(t)
	ctx := context.Background()

	_, err := id.Register(ctx, alice())
	require.NoError(t, err)

	// a wrong password must not reveal that the account exists and is pending
	_, err = id.Login(ctx, "alice@x.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestReject(t *testing.T) {
	id, ms, rn := newIdentity(t)
	ctx := context.Background()

	u, err := id.Register(ctx, alice())
	require.NoError(t, err)
	require.NoError(t, id.Reject(ctx, u.ID))
	assert.Contains(t, rn.kinds(), notify.KindUserRejected)
	assert.Empty(t, ms.users)

	_, err = id.Login(ctx, "alice@x.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// rejecting an approved user does nothing
	bob := alice()
	bob.Email = "bob@x.com"
	b, err := id.Register(ctx, bob)
	require.NoError(t, err)
	require.NoError(t, id.Approve(ctx, b.ID))
	assert.ErrorIs(t, id.Reject(ctx, b.ID), ErrNotFoundOrForbidden)
	assert.Len(t, ms.users, 1)

	assert.ErrorIs(t, id.Reject(ctx, "not-a-uuid"), ErrNotFoundOrForbidden)
	assert.ErrorIs(t, id.Approve(ctx, "not-a-uuid"), ErrNotFoundOrForbidden)
}

func TestListUsersWithStats(t *testing.T) {
	id, _, _ := newIdentity(t)
	ctx := context.Background()

	a, err := id.Register(ctx, alice())
	require.NoError(t, err)
	bob := alice()
	bob.Email = "bob@x.com"
	_, err = id.Register(ctx, bob)
	require.NoError(t, err)
	require.NoError(t, id.Approve(ctx, a.ID))

	pending, err := id.ListPendingUsers(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "bob@x.com", pending[0].Email)

	users, stats, err := id.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)
	assert.Equal(t, model.UserStats{Total: 2, Approved: 1, Pending: 1, NewThisMonth: 2}, stats)
}

func TestLawyerLogin(t *testing.T) {
	id, ms, _ := newIdentity(t)
	ctx := context.Background()

	hash, err := auth.HashPassword("password123")
	require.NoError(t, err)
	active := ms.seedLawyer("John Smith", model.LawyerActive)
	ms.lawyers[active].Email = "john@law.test"
	ms.lawyers[active].PasswordHash = hash
	inactive := ms.seedLawyer("Gone", model.LawyerInactive)
	ms.lawyers[inactive].Email = "gone@law.test"
	ms.lawyers[inactive].PasswordHash = hash

	sess, err := id.LawyerLogin(ctx, "john@law.test", "password123")
	require.NoError(t, err)
	assert.Equal(t, model.RoleLawyer, sess.Principal.Role)

	_, err = id.LawyerLogin(ctx, "gone@law.test", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = id.LawyerLogin(ctx, "john@law.test", "nope-nope")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = id.LawyerLogin(ctx, "who@law.test", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterAdminAndLogin(t *testing.T) {
	id, _, _ := newIdentity(t)
	ctx := context.Background()

	in := AdminInput{Name: "Root", Email: "root@legal.test", Password: "password123", SignupKey: "wrong"}
	_, err := id.RegisterAdmin(ctx, in)
	assert.ErrorIs(t, err, ErrInvalidSignupKey)

	in.SignupKey = "let-me-in"
	a, err := id.RegisterAdmin(ctx, in)
	require.NoError(t, err)

	_, err = id.RegisterAdmin(ctx, in)
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	sess, err := id.AdminLogin(ctx, "root@legal.test", "password123")
	require.NoError(t, err)
	assert.Equal(t, a.ID, sess.Principal.ID)
	assert.Equal(t, model.RoleAdmin, sess.Principal.Role)

	_, err = id.AdminLogin(ctx, "root@legal.test", "bad-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterAdminDisabledWithoutKey(t *testing.T) {
	id, _, _ := newIdentity(t)
	id.cfg.SignupKey = ""

	_, err := id.RegisterAdmin(context.Background(), AdminInput{Name: "R", Email: "r@x.com", Password: "password123"})
	assert.ErrorIs(t, err, ErrInvalidSignupKey)
}

func TestRefreshRotation(t *testing.T) {
	id, _, _ := newIdentity(t)
	ctx := context.Background()

	u, err := id.Register(ctx, alice())
	require.NoError(t, err)
	require.NoError(t, id.Approve(ctx, u.ID))
	sess, err := id.Login(ctx, "alice@x.com", "password123")
	require.NoError(t, err)

	next, err := id.Refresh(ctx, sess.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, sess.RefreshToken, next.RefreshToken)
	assert.Equal(t, u.ID, next.Principal.ID)

	// the old token is spent; reusing it revokes the whole family
	_, err = id.Refresh(ctx, sess.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = id.Refresh(ctx, next.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = id.Refresh(ctx, "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = id.Refresh(ctx, "garbage")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefreshExpired(t *testing.T) {
	id, _, _ := newIdentity(t)
	ctx := context.Background()

	u, err := id.Register(ctx, alice())
	require.NoError(t, err)
	require.NoError(t, id.Approve(ctx, u.ID))
	sess, err := id.Login(ctx, "alice@x.com", "password123")
	require.NoError(t, err)

	id.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = id.Refresh(ctx, sess.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestStorageFailureIsOpaque(t *testing.T) {
	id, ms, _ := newIdentity(t)
	ms.fail = errors.New("dial tcp 10.0.0.1:5432: connection refused")

	_, err := id.Login(context.Background(), "alice@x.com", "password123")
	require.ErrorIs(t, err, ErrStorageUnavailable)

	var se *StorageError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "user by email", se.Op)
}
