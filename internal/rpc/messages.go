package rpc

import "time"

// ----- identity -----

type RegisterRequest struct {
	Name     string
	Email    string
	Password string
	Age      int64
	Gender   string
}

func (m *RegisterRequest) MarshalWire() []byte {
	var e encoder
	e.str(1, m.Name)
	e.str(2, m.Email)
	e.str(3, m.Password)
	e.integer(4, m.Age)
	e.str(5, m.Gender)
	return e.b
}

func (m *RegisterRequest) UnmarshalWire(b []byte) error {
	return walk(b, func(f field) error {
		switch f.num {
		case 1:
			m.Name = f.str()
		case 2:
			m.Email = f.str()
		case 3:
			m.Password = f.str()
		case 4:
			m.Age = f.integer()
		case 5:
			m.Gender = f.str()
		}
		return nil
	})
}

type RegisterResponse struct {
	UserID  string
	Message string
}

func (m *RegisterResponse) MarshalWire() []byte {
	var e encoder
	e.str(1, m.UserID)
	e.str(2, m.Message)
	return e.b
}

func (m *RegisterResponse) UnmarshalWire(b []byte) error {
	return walk(b, func(f field) error {
		switch f.num {
		case 1:
			m.UserID = f.str()
		case 2:
			m.Message = f.str()
		}
		return nil
	})
}

type LoginRequest struct {
	Email    string
	Password string
}

func (m *LoginRequest) MarshalWire() []byte {
	var e encoder
	e.str(1, m.Email)
	e.str(2, m.Password)
	return e.b
}

func (m *LoginRequest) UnmarshalWire(b []byte) error {
	return walk(b, func(f field) error {
		switch f.num {
		case 1:
			m.Email = f.str()
		case 2:
			m.Password = f.str()
		}
		return nil
	})
}

type AuthResponse struct {
	AccessToken  string
	RefreshToken string
	Principal    *Principal
}

func (m *AuthResponse) MarshalWire() []byte {
	var e encoder
	e.str(1, m.AccessToken)
	e.str(2, m.RefreshToken)
	if m.Principal != nil {
		e.msg(3, m.Principal.MarshalWire())
	}
	return e.b
}

func (m *AuthResponse) UnmarshalWire(b []byte) error {
	return walk(b, func(f field) error {
		switch f.num {
		case 1:
			m.AccessToken = f.str()
		case 2:
			m.RefreshToken = f.str()
		case 3:
			m.Principal = &Principal{}
			return m.Principal.UnmarshalWire(f.bytes)
		}
		return nil
	})
}

type AdminRegisterRequest struct {
	Name      string
	Email     string
	Password  string
	SignupKey string
}

func (m *AdminRegisterRequest) MarshalWire() []byte {
	var e encoder
	e.str(1, m.Name)
	e.str(2, m.Email)
	e.str(3, m.Password)
	e.str(4, m.SignupKey)
	return e.b
}

func (m *AdminRegisterRequest) UnmarshalWire(b []byte) error {
	return walk(b, func(f field) error {
		switch f.num {
		case 1:
			m.Name = f.str()
		case 2:
			m.Email = f.str()
		case 3:
			m.Password = f.str()
		case 4:
			m.SignupKey = f.str()
		}
		return nil
	})
}

type AdminRegisterResponse struct {
	AdminID string
}

func (m *AdminRegisterResponse) MarshalWire() []byte {
	var e encoder
	e.str(1, m.AdminID)
	return e.b
}

func (m *AdminRegisterResponse) UnmarshalWire(b []byte) error {
	return walk(b, func(f field) error {
		if f.num == 1 {
			m.AdminID = f.str()
		}
		return nil
	})
}

type RefreshRequest struct {
	RefreshToken string
}

func (m *RefreshRequest) MarshalWire() []byte {
	var e encoder
	e.str(1, m.RefreshToken)
	return e.b
}

func (m *RefreshRequest) UnmarshalWire(b []byte) error {
	return walk(b, func(f field) error {
		if f.num == 1 {
			m.RefreshToken = f.str()
		}
		return nil
	})
}

type UserIDRequest struct {
	UserID string
}

func (m *UserIDRequest) MarshalWire() []byte {
	var e encoder
	e.str(1, m.UserID)
	return e.b
}

func (m *UserIDRequest) UnmarshalWire(b []byte) error {
	return walk(b, func(f field) error {
		if f.num == 1 {
			m.UserID = f.str()
		}
		return nil
	})
}

type ListUsersResponse struct {
	Users []*User
	Stats *UserStats
}

func (m *ListUsersResponse) MarshalWire() []byte {
	var e encoder
	for _, u := range m.Users {
		e.msg(1, u.MarshalWire())
	}
	if m.Stats != nil {
		e.msg(2, m.Stats.MarshalWire())
	}
	return e.b
}

func (m *ListUsersResponse) UnmarshalWire(b []byte) error {
	return walk(b, func(f field) error {
		switch f.num {
		case 1:
			u := &User{}
			if err := u.UnmarshalWire(f.bytes); err != nil {
				return err
			}
			m.Users = append(m.Users, u)
		case 2:
			m.Stats = &UserStats{}
			return m.Stats.UnmarshalWire(f.bytes)
		}
		return nil
	})
}

// ----- directory -----

type LawyerIDRequest struct {
	LawyerID string
}

func (m *LawyerIDRequest) MarshalWire() []byte {
	var e encoder
	e.str(1, m.LawyerID)
	return e.b
}

func (m *LawyerIDRequest) UnmarshalWire(b []byte) error {
	return walk(b, func(f field) error {
		if f.num == 1 {
			m.LawyerID = f.str()
		}
		return nil
	})
}

// LawyerRequest creates a lawyer, or updates one when LawyerID is set.
type LawyerRequest struct {
	LawyerID        string
	Name            string
	Gender          string
	Email           string
	Password        string
	Specialization  string
	ExperienceYears int64
	HourlyRate      float64
	Bio             string
	Status          string
}

func (m *LawyerRequest) MarshalWire() []byte {
	var e encoder
	e.str(1, m.LawyerID)
	e.str(2, m.Name)
	e.str(3, m.Gender)
	e.str(4, m.Email)
	e.str(5, m.Password)
	e.str(6, m.Specialization)
	e.integer(7, m.ExperienceYears)
	e.double(8, m.HourlyRate)
	e.str(9, m.Bio)
	e.str(10, m.Status)
	return e.b
}

func (m *LawyerRequest) UnmarshalWire(b []byte) error {
	return walk(b, func(f field) error {
		switch f.num {
		case 1:
			m.LawyerID = f.str()
		case 2:
			m.Name = f.str()
		case 3:
			m.Gender = f.str()
		case 4:
			m.Email = f.str()
		case 5:
			m.Password = f.str()
		case 6:
			m.Specialization = f.str()
		case 7:
			m.ExperienceYears = f.integer()
		case 8:
			m.HourlyRate = f.double()
		case 9:
			m.Bio = f.str()
		case 10:
			m.Status = f.str()
		}
		return nil
	})
}

type LawyerResponse struct {
	Lawyer *Lawyer
}

func (m *LawyerResponse) MarshalWire() []byte {
	var e encoder
	if m.Lawyer != nil {
		e.msg(1, m.Lawyer.MarshalWire())
	}
	return e.b
}

func (m *LawyerResponse) UnmarshalWire(b []byte) error {
	return walk(b, func(f field) error {
		if f.num == 1 {
			m.Lawyer = &Lawyer{}
			return m.Lawyer.UnmarshalWire(f.bytes)
		}
		return nil
	})
}

type ListLawyersResponse struct {
	Lawyers []*Lawyer
}

func (m *ListLawyersResponse) MarshalWire() []byte {
	var e encoder
	for _, l := range m.Lawyers {
		e.msg(1, l.MarshalWire())
	}
	return e.b
}

func (m *ListLawyersResponse) UnmarshalWire(b []byte) error {
	return walk(b, func(f field) error {
		if f.num == 1 {
			l := &Lawyer{}
			if err := l.UnmarshalWire(f.bytes); err != nil {
				return err
			}
			m.Lawyers = append(m.Lawyers, l)
		}
		return nil
	})
}

// ----- booking -----

type CreateAppointmentRequest struct {
	LawyerID        string
	ScheduledAt     time.Time
	DurationMinutes int64
	Notes           string
}

func (m *CreateAppointmentRequest) MarshalWire() []byte {
	var e encoder
	e.str(1, m.LawyerID)
	e.timestamp(2, m.ScheduledAt)
	e.integer(3, m.DurationMinutes)
	e.str(4, m.Notes)
	return e.b
}

func (m *CreateAppointmentRequest) UnmarshalWire(b []byte) error {
	return walk(b, func(f field) (err error) {
		switch f.num {
		case 1:
			m.LawyerID = f.str()
		case 2:
			m.ScheduledAt, err = f.timestamp()
		case 3:
			m.DurationMinutes = f.integer()
		case 4:
			m.Notes = f.str()
		}
		return err
	})
}

type AppointmentIDRequest struct {
	AppointmentID string
}

func (m *AppointmentIDRequest) MarshalWire() []byte {
	var e encoder
	e.str(1, m.AppointmentID)
	return e.b
}

func (m *AppointmentIDRequest) UnmarshalWire(b []byte) error {
	return walk(b, func(f field) error {
		if f.num == 1 {
			m.AppointmentID = f.str()
		}
		return nil
	})
}

type UpdateStatusRequest struct {
	AppointmentID string
	Status        string
}

func (m *UpdateStatusRequest) MarshalWire() []byte {
	var e encoder
	e.str(1, m.AppointmentID)
	e.str(2, m.Status)
	return e.b
}

func (m *UpdateStatusRequest) UnmarshalWire(b []byte) error {
	return walk(b, func(f field) error {
		switch f.num {
		case 1:
			m.AppointmentID = f.str()
		case 2:
			m.Status = f.str()
		}
		return nil
	})
}

type AppointmentResponse struct {
	Appointment *Appointment
}

func (m *AppointmentResponse) MarshalWire() []byte {
	var e encoder
	if m.Appointment != nil {
		e.msg(1, m.Appointment.MarshalWire())
	}
	return e.b
}

func (m *AppointmentResponse) UnmarshalWire(b []byte) error {
	return walk(b, func(f field) error {
		if f.num == 1 {
			m.Appointment = &Appointment{}
			return m.Appointment.UnmarshalWire(f.bytes)
		}
		return nil
	})
}

type ListAllAppointmentsRequest struct {
	Limit int64
}

func (m *ListAllAppointmentsRequest) MarshalWire() []byte {
	var e encoder
	e.integer(1, m.Limit)
	return e.b
}

func (m *ListAllAppointmentsRequest) UnmarshalWire(b []byte) error {
	return walk(b, func(f field) error {
		if f.num == 1 {
			m.Limit = f.integer()
		}
		return nil
	})
}

type ListAppointmentsResponse struct {
	Appointments []*Appointment
}

func (m *ListAppointmentsResponse) MarshalWire() []byte {
	var e encoder
	for _, a := range m.Appointments {
		e.msg(1, a.MarshalWire())
	}
	return e.b
}

func (m *ListAppointmentsResponse) UnmarshalWire(b []byte) error {
	return walk(b, func(f field) error {
		if f.num == 1 {
			a := &Appointment{}
			if err := a.UnmarshalWire(f.bytes); err != nil {
				return err
			}
			m.Appointments = append(m.Appointments, a)
		}
		return nil
	})
}
