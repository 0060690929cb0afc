package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"legal-booking-api/internal/model"
	"legal-booking-api/internal/notify"
	"legal-booking-api/internal/store"
)

// memStore is an in-memory stand-in for *store.Store with the same uniqueness rules.
type memStore struct {
	mu      sync.Mutex
	users   map[string]*model.User
	lawyers map[string]*model.Lawyer
	admins  map[string]*model.Admin
	appts   map[string]*model.Appointment
	tokens  map[string]*store.RefreshToken

	// fail, when set, is returned by every call
	fail error
	// slotRace makes SlotTaken always report a free slot, as if a concurrent insert
	// happened right after the check
	slotRace bool
	// afterList runs once ListLawyers has taken its snapshot
	afterList func()
}

func newMemStore() *memStore {
	return &memStore{
		users:   map[string]*model.User{},
		lawyers: map[string]*model.Lawyer{},
		admins:  map[string]*model.Admin{},
		appts:   map[string]*model.Appointment{},
		tokens:  map[string]*store.RefreshToken{},
	}
}

func (m *memStore) CreateUser(_ context.Context, u *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	for _, x := range m.users {
		if x.Email == u.Email {
			return store.ErrDuplicate
		}
	}
	u.CreatedAt = time.Now()
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *memStore) UserByEmail(_ context.Context, email string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return nil, m.fail
	}
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *memStore) UserByID(_ context.Context, id string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return nil, m.fail
	}
	u, ok := m.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memStore) ApproveUser(_ context.Context, id string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return nil, m.fail
	}
	u, ok := m.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	u.IsApproved = true
	cp := *u
	return &cp, nil
}

func (m *memStore) RejectUser(_ context.Context, id string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return nil, m.fail
	}
	u, ok := m.users[id]
	if !ok || u.IsApproved {
		return nil, store.ErrNotFound
	}
	delete(m.users, id)
	return u, nil
}

func (m *memStore) ListUsers(_ context.Context, pendingOnly bool) ([]model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return nil, m.fail
	}
	var out []model.User
	for _, u := range m.users {
		if pendingOnly && u.IsApproved {
			continue
		}
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memStore) UserStats(_ context.Context, monthStart time.Time) (model.UserStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var st model.UserStats
	if m.fail != nil {
		return st, m.fail
	}
	for _, u := range m.users {
		st.Total++
		if u.IsApproved {
			st.Approved++
		} else {
			st.Pending++
		}
		if !u.CreatedAt.Before(monthStart) {
			st.NewThisMonth++
		}
	}
	return st, nil
}

func (m *memStore) ListLawyers(_ context.Context, activeOnly bool) ([]model.Lawyer, error) {
	if hook := m.afterList; hook != nil {
		m.afterList = nil
		defer hook()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return nil, m.fail
	}
	var out []model.Lawyer
	for _, l := range m.lawyers {
		if activeOnly && l.Status != model.LawyerActive {
			continue
		}
		out = append(out, *l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memStore) LawyerByID(_ context.Context, id string, activeOnly bool) (*model.Lawyer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return nil, m.fail
	}
	l, ok := m.lawyers[id]
	if !ok || (activeOnly && l.Status != model.LawyerActive) {
		return nil, store.ErrNotFound
	}
	cp := *l
	return &cp, nil
}

func (m *memStore) LawyerByEmail(_ context.Context, email string) (*model.Lawyer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return nil, m.fail
	}
	for _, l := range m.lawyers {
		if l.Email == email {
			cp := *l
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *memStore) CreateLawyer(_ context.Context, l *model.Lawyer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	for _, x := range m.lawyers {
		if x.Email == l.Email {
			return store.ErrDuplicate
		}
	}
	l.CreatedAt, l.UpdatedAt = time.Now(), time.Now()
	cp := *l
	m.lawyers[l.ID] = &cp
	return nil
}

func (m *memStore) UpdateLawyer(_ context.Context, l *model.Lawyer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	cur, ok := m.lawyers[l.ID]
	if !ok {
		return store.ErrNotFound
	}
	for id, x := range m.lawyers {
		if id != l.ID && x.Email == l.Email {
			return store.ErrDuplicate
		}
	}
	if l.PasswordHash == "" {
		l.PasswordHash = cur.PasswordHash
	}
	l.CreatedAt, l.UpdatedAt = cur.CreatedAt, time.Now()
	cp := *l
	m.lawyers[l.ID] = &cp
	return nil
}

func (m *memStore) CreateAdmin(_ context.Context, a *model.Admin) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	for _, x := range m.admins {
		if x.Email == a.Email {
			return store.ErrDuplicate
		}
	}
	a.CreatedAt = time.Now()
	cp := *a
	m.admins[a.ID] = &cp
	return nil
}

func (m *memStore) AdminByEmail(_ context.Context, email string) (*model.Admin, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return nil, m.fail
	}
	for _, a := range m.admins {
		if a.Email == email {
			cp := *a
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *memStore) AdminByID(_ context.Context, id string) (*model.Admin, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return nil, m.fail
	}
	a, ok := m.admins[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *memStore) CreateRefreshToken(_ context.Context, userID string, role model.Role, hash string, exp time.Time) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return "", m.fail
	}
	id := uuid.New().String()
	m.tokens[hash] = &store.RefreshToken{ID: id, UserID: userID, Role: role, TokenHash: hash, ExpiresAt: exp, CreatedAt: time.Now()}
	return id, nil
}

func (m *memStore) RefreshTokenByHash(_ context.Context, hash string) (*store.RefreshToken, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return nil, m.fail
	}
	rt, ok := m.tokens[hash]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *rt
	return &cp, nil
}

func (m *memStore) RotateRefreshToken(_ context.Context, old *store.RefreshToken, newHash string, exp time.Time) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return "", m.fail
	}
	cur, ok := m.tokens[old.TokenHash]
	if !ok || cur.Revoked {
		return "", store.ErrNotFound
	}
	id := uuid.New().String()
	cur.Revoked = true
	cur.ReplacedBy = &id
	m.tokens[newHash] = &store.RefreshToken{ID: id, UserID: old.UserID, Role: old.Role, TokenHash: newHash, ExpiresAt: exp, CreatedAt: time.Now()}
	return id, nil
}

func (m *memStore) RevokeAllRefreshTokens(_ context.Context, userID string, role model.Role) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	for _, rt := range m.tokens {
		if rt.UserID == userID && rt.Role == role {
			rt.Revoked = true
		}
	}
	return nil
}

func (m *memStore) SlotTaken(_ context.Context, lawyerID string, at time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return false, m.fail
	}
	if m.slotRace {
		return false, nil
	}
	return m.slotTakenLocked(lawyerID, at), nil
}

func (m *memStore) slotTakenLocked(lawyerID string, at time.Time) bool {
	for _, a := range m.appts {
		if a.LawyerID == lawyerID && a.ScheduledAt.Equal(at) && a.Status != model.StatusCancelled {
			return true
		}
	}
	return false
}

func (m *memStore) CreateAppointment(_ context.Context, a *model.Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	if m.slotTakenLocked(a.LawyerID, a.ScheduledAt) {
		return store.ErrSlotTaken
	}
	a.CreatedAt = time.Now()
	cp := *a
	m.appts[a.ID] = &cp
	return nil
}

func (m *memStore) AppointmentByID(_ context.Context, id string) (*model.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return nil, m.fail
	}
	a, ok := m.appts[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *memStore) CancelAppointment(_ context.Context, id, clientID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return false, m.fail
	}
	a, ok := m.appts[id]
	if !ok || a.ClientID != clientID || a.Status == model.StatusCancelled {
		return false, nil
	}
	a.Status = model.StatusCancelled
	return true, nil
}

func (m *memStore) SetAppointmentStatus(_ context.Context, id, lawyerID string, from, to model.Status) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return false, m.fail
	}
	a, ok := m.appts[id]
	if !ok || a.Status != from || (lawyerID != "" && a.LawyerID != lawyerID) {
		return false, nil
	}
	a.Status = to
	return true, nil
}

func (m *memStore) views(keep func(*model.Appointment) bool) []model.AppointmentView {
	var out []model.AppointmentView
	for _, a := range m.appts {
		if !keep(a) {
			continue
		}
		v := model.AppointmentView{Appointment: *a}
		if u, ok := m.users[a.ClientID]; ok {
			v.ClientName, v.ClientEmail = u.Name, u.Email
		}
		if l, ok := m.lawyers[a.LawyerID]; ok {
			v.LawyerName, v.LawyerEmail, v.Specialization = l.Name, l.Email, l.Specialization
		}
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ScheduledAt.After(out[j].ScheduledAt) })
	return out
}

func (m *memStore) ListClientAppointments(_ context.Context, clientID string) ([]model.AppointmentView, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return nil, m.fail
	}
	return m.views(func(a *model.Appointment) bool {
		return a.ClientID == clientID && a.Status != model.StatusCancelled
	}), nil
}

func (m *memStore) ListLawyerAppointments(_ context.Context, lawyerID string, includeCancelled bool) ([]model.AppointmentView, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return nil, m.fail
	}
	return m.views(func(a *model.Appointment) bool {
		return a.LawyerID == lawyerID && (includeCancelled || a.Status != model.StatusCancelled)
	}), nil
}

func (m *memStore) ListAllAppointments(_ context.Context, limit int) ([]model.AppointmentView, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return nil, m.fail
	}
	out := m.views(func(*model.Appointment) bool { return true })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// seedLawyer adds an active lawyer directly and returns its id.
func (m *memStore) seedLawyer(name string, status model.LawyerStatus) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := uuid.New().String()
	m.lawyers[id] = &model.Lawyer{
		ID: id, Name: name, Gender: model.GenderOther, Email: id + "@law.test",
		Specialization: "General", Status: status, CreatedAt: time.Now(),
	}
	return id
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []notify.Event
	err    error
}

func (r *recordingNotifier) Notify(_ context.Context, ev notify.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return r.err
}

func (r *recordingNotifier) kinds() []notify.Kind {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []notify.Kind
	for _, e := range r.events {
		out = append(out, e.Kind)
	}
	return out
}

type memCache struct {
	mu          sync.Mutex
	lawyers     []model.Lawyer
	set         bool
	invalidated int
	gen         int64
}

func (c *memCache) Active(context.Context) ([]model.Lawyer, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.set {
		return nil, errCacheMiss
	}
	return c.lawyers, nil
}

func (c *memCache) Generation(context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gen, nil
}

func (c *memCache) SetActive(_ context.Context, gen int64, l []model.Lawyer) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return nil
	}
	c.lawyers, c.set = l, true
	return nil
}

func (c *memCache) Invalidate(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lawyers, c.set = nil, false
	c.invalidated++
	c.gen++
	return nil
}
