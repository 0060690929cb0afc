package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"legal-booking-api/internal/auth"
	"legal-booking-api/internal/metrics"
	"legal-booking-api/internal/model"
	"legal-booking-api/internal/notify"
	"legal-booking-api/internal/store"
)

// minPasswordLen applies to admin and lawyer credentials set through the API.
const minPasswordLen = 8

type IdentityConfig struct {
	Issuer     auth.Issuer
	RefreshTTL time.Duration
	AdminEmail string
	// SignupKey guards admin self-registration. Empty disables it.
	SignupKey string
}

// Identity registers and authenticates principals and runs the approval gate.
type Identity struct {
	users    UserStore
	lawyers  LawyerStore
	admins   AdminStore
	tokens   TokenStore
	notifier notify.Notifier
	cfg      IdentityConfig
	now      func() time.Time
}

func NewIdentity(users UserStore, lawyers LawyerStore, admins AdminStore, tokens TokenStore, n notify.Notifier, cfg IdentityConfig) *Identity {
	if cfg.RefreshTTL <= 0 {
		cfg.RefreshTTL = 7 * 24 * time.Hour
	}
	return &Identity{
		users:    users,
		lawyers:  lawyers,
		admins:   admins,
		tokens:   tokens,
		notifier: n,
		cfg:      cfg,
		now:      time.Now,
	}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Age      int
	Gender   string
}

// Session is what a successful login or refresh hands back.
type Session struct {
	Principal    model.Principal
	AccessToken  string
	RefreshToken string
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Register creates an unapproved client and tells the admin about it.
func (s *Identity) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	u, err := s.register(ctx, in)
	metrics.RegistrationsTotal.WithLabelValues(string(model.RoleClient), outcome(err)).Inc()
	return u, err
}

func (s *Identity) register(ctx context.Context, in RegisterInput) (*model.User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = normalizeEmail(in.Email)
	if in.Name == "" || in.Email == "" || in.Password == "" {
		return nil, ErrMissingFields
	}
	// a taken email wins over bad age or gender
	switch _, err := s.users.UserByEmail(ctx, in.Email); {
	case err == nil:
		return nil, ErrDuplicateEmail
	case !errors.Is(err, store.ErrNotFound):
		return nil, storageErr("user by email", err)
	}
	if in.Age < 0 {
		return nil, ErrInvalidAge
	}
	gender := model.Gender(in.Gender)
	if !gender.Valid() {
		return nil, ErrInvalidGender
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	u := &model.User{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Age:          in.Age,
		Gender:       gender,
	}
	if err := s.users.CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, ErrDuplicateEmail
		}
		return nil, storageErr("create user", err)
	}

	s.notify(ctx, notify.Event{
		Kind:  notify.KindRegistrationPending,
		To:    s.cfg.AdminEmail,
		Name:  u.Name,
		Email: u.Email,
	})
	return u, nil
}

// Login authenticates a client. Unknown email and wrong password are indistinguishable.
func (s *Identity) Login(ctx context.Context, email, password string) (*Session, error) {
	sess, err := s.login(ctx, email, password)
	metrics.LoginsTotal.WithLabelValues(string(model.RoleClient), outcome(err)).Inc()
	return sess, err
}

func (s *Identity) login(ctx context.Context, email, password string) (*Session, error) {
	u, err := s.users.UserByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, store.ErrNotFound) {
		auth.BurnCheck(password)
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, storageErr("user by email", err)
	}
	if !auth.CheckPassword(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	if !u.IsApproved {
		return nil, ErrPendingApproval
	}
	return s.issue(ctx, userPrincipal(u))
}

// LawyerLogin authenticates a lawyer. Inactive lawyers are treated as unknown.
func (s *Identity) LawyerLogin(ctx context.Context, email, password string) (*Session, error) {
	sess, err := s.lawyerLogin(ctx, email, password)
	metrics.LoginsTotal.WithLabelValues(string(model.RoleLawyer), outcome(err)).Inc()
	return sess, err
}

func (s *Identity) lawyerLogin(ctx context.Context, email, password string) (*Session, error) {
	l, err := s.lawyers.LawyerByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, store.ErrNotFound) {
		auth.BurnCheck(password)
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, storageErr("lawyer by email", err)
	}
	if !auth.CheckPassword(l.PasswordHash, password) || l.Status != model.LawyerActive {
		return nil, ErrInvalidCredentials
	}
	return s.issue(ctx, lawyerPrincipal(l))
}

func (s *Identity) AdminLogin(ctx context.Context, email, password string) (*Session, error) {
	sess, err := s.adminLogin(ctx, email, password)
	metrics.LoginsTotal.WithLabelValues(string(model.RoleAdmin), outcome(err)).Inc()
	return sess, err
}

func (s *Identity) adminLogin(ctx context.Context, email, password string) (*Session, error) {
	a, err := s.admins.AdminByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, store.ErrNotFound) {
		auth.BurnCheck(password)
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, storageErr("admin by email", err)
	}
	if !auth.CheckPassword(a.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return s.issue(ctx, adminPrincipal(a))
}

type AdminInput struct {
	Name      string
	Email     string
	Password  string
	SignupKey string
}

// RegisterAdmin creates an admin when the caller knows the configured signup key.
func (s *Identity) RegisterAdmin(ctx context.Context, in AdminInput) (*model.Admin, error) {
	a, err := s.registerAdmin(ctx, in)
	metrics.RegistrationsTotal.WithLabelValues(string(model.RoleAdmin), outcome(err)).Inc()
	return a, err
}

func (s *Identity) registerAdmin(ctx context.Context, in AdminInput) (*model.Admin, error) {
	if s.cfg.SignupKey == "" ||
		subtle.ConstantTimeCompare([]byte(in.SignupKey), []byte(s.cfg.SignupKey)) != 1 {
		return nil, ErrInvalidSignupKey
	}
	in.Name = strings.TrimSpace(in.Name)
	in.Email = normalizeEmail(in.Email)
	if in.Name == "" || in.Email == "" || in.Password == "" {
		return nil, ErrMissingFields
	}
	if len(in.Password) < minPasswordLen {
		return nil, ErrPasswordTooShort
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	a := &model.Admin{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
	}
	if err := s.admins.CreateAdmin(ctx, a); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, ErrDuplicateEmail
		}
		return nil, storageErr("create admin", err)
	}
	return a, nil
}

// Refresh rotates a refresh token and issues a new pair. Presenting a token that
// was already rotated revokes every token of that principal.
func (s *Identity) Refresh(ctx context.Context, raw string) (*Session, error) {
	if raw == "" {
		return nil, ErrInvalidCredentials
	}
	rt, err := s.tokens.RefreshTokenByHash(ctx, auth.HashRefreshToken(raw))
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, storageErr("refresh token by hash", err)
	}
	if rt.Revoked {
		if err := s.tokens.RevokeAllRefreshTokens(ctx, rt.UserID, rt.Role); err != nil {
			log.Error().Err(err).Str("uid", rt.UserID).Msg("revoke tokens after reuse")
		}
		log.Warn().Str("uid", rt.UserID).Str("role", string(rt.Role)).Msg("refresh token reuse")
		return nil, ErrInvalidCredentials
	}
	if !s.now().Before(rt.ExpiresAt) {
		return nil, ErrInvalidCredentials
	}

	p, err := s.principal(ctx, rt.UserID, rt.Role)
	if err != nil {
		return nil, err
	}

	access, err := s.cfg.Issuer.MakeToken(p.ID, p.Role)
	if err != nil {
		return nil, err
	}
	newRaw, newHash, err := auth.GenerateRefreshToken()
	if err != nil {
		return nil, err
	}
	if _, err := s.tokens.RotateRefreshToken(ctx, rt, newHash, s.now().Add(s.cfg.RefreshTTL)); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, storageErr("rotate refresh token", err)
	}
	return &Session{Principal: p, AccessToken: access, RefreshToken: newRaw}, nil
}

// principal reloads the account behind a refresh token and re-applies the login gates.
func (s *Identity) principal(ctx context.Context, id string, role model.Role) (model.Principal, error) {
	var (
		p   model.Principal
		err error
	)
	switch role {
	case model.RoleClient:
		var u *model.User
		if u, err = s.users.UserByID(ctx, id); err == nil {
			if !u.IsApproved {
				return p, ErrPendingApproval
			}
			p = userPrincipal(u)
		}
	case model.RoleLawyer:
		var l *model.Lawyer
		if l, err = s.lawyers.LawyerByID(ctx, id, true); err == nil {
			p = lawyerPrincipal(l)
		}
	case model.RoleAdmin:
		var a *model.Admin
		if a, err = s.admins.AdminByID(ctx, id); err == nil {
			p = adminPrincipal(a)
		}
	default:
		return p, ErrInvalidCredentials
	}
	if errors.Is(err, store.ErrNotFound) {
		return p, ErrInvalidCredentials
	}
	if err != nil {
		return p, storageErr("load principal", err)
	}
	return p, nil
}

func (s *Identity) issue(ctx context.Context, p model.Principal) (*Session, error) {
	access, err := s.cfg.Issuer.MakeToken(p.ID, p.Role)
	if err != nil {
		return nil, err
	}
	raw, hash, err := auth.GenerateRefreshToken()
	if err != nil {
		return nil, err
	}
	if _, err := s.tokens.CreateRefreshToken(ctx, p.ID, p.Role, hash, s.now().Add(s.cfg.RefreshTTL)); err != nil {
		return nil, storageErr("create refresh token", err)
	}
	return &Session{Principal: p, AccessToken: access, RefreshToken: raw}, nil
}

// Approve lets a pending client log in.
func (s *Identity) Approve(ctx context.Context, userID string) error {
	if !validID(userID) {
		return ErrNotFoundOrForbidden
	}
	u, err := s.users.ApproveUser(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFoundOrForbidden
	}
	if err != nil {
		return storageErr("approve user", err)
	}
	s.notify(ctx, notify.Event{Kind: notify.KindUserApproved, To: u.Email, Name: u.Name, Email: u.Email})
	return nil
}

// Reject deletes a client that has not been approved yet. Approved clients are left alone
// and reported as not found.
func (s *Identity) Reject(ctx context.Context, userID string) error {
	if !validID(userID) {
		return ErrNotFoundOrForbidden
	}
	u, err := s.users.RejectUser(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFoundOrForbidden
	}
	if err != nil {
		return storageErr("reject user", err)
	}
	s.notify(ctx, notify.Event{Kind: notify.KindUserRejected, To: u.Email, Name: u.Name, Email: u.Email})
	return nil
}

func (s *Identity) ListPendingUsers(ctx context.Context) ([]model.User, error) {
	users, err := s.users.ListUsers(ctx, true)
	if err != nil {
		return nil, storageErr("list pending users", err)
	}
	return users, nil
}

// ListUsers returns every client plus counters for the admin overview.
func (s *Identity) ListUsers(ctx context.Context) ([]model.User, model.UserStats, error) {
	users, err := s.users.ListUsers(ctx, false)
	if err != nil {
		return nil, model.UserStats{}, storageErr("list users", err)
	}
	now := s.now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	stats, err := s.users.UserStats(ctx, monthStart)
	if err != nil {
		return nil, model.UserStats{}, storageErr("user stats", err)
	}
	return users, stats, nil
}

// notify never fails the caller.
func (s *Identity) notify(ctx context.Context, ev notify.Event) {
	if s.notifier == nil || ev.To == "" {
		return
	}
	if err := s.notifier.Notify(ctx, ev); err != nil {
		log.Warn().Err(err).Str("kind", string(ev.Kind)).Str("to", ev.To).Msg("notification failed")
	}
}

func userPrincipal(u *model.User) model.Principal {
	return model.Principal{ID: u.ID, Role: model.RoleClient, Name: u.Name, Email: u.Email, CreatedAt: u.CreatedAt}
}

func lawyerPrincipal(l *model.Lawyer) model.Principal {
	return model.Principal{ID: l.ID, Role: model.RoleLawyer, Name: l.Name, Email: l.Email, CreatedAt: l.CreatedAt}
}

func adminPrincipal(a *model.Admin) model.Principal {
	return model.Principal{ID: a.ID, Role: model.RoleAdmin, Name: a.Name, Email: a.Email, CreatedAt: a.CreatedAt}
}

// outcome turns a service error into a metric label.
func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrStorageUnavailable):
		return "unavailable"
	case errors.Is(err, ErrInvalidCredentials), errors.Is(err, ErrPendingApproval), errors.Is(err, ErrInvalidSignupKey):
		return "denied"
	case errors.Is(err, ErrDuplicateEmail), errors.Is(err, ErrSlotConflict):
		return "conflict"
	default:
		return "invalid"
	}
}
