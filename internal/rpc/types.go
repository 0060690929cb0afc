package rpc

import "time"

// Shared message types. Field numbers match api/legal/v1/legal.proto.

type Empty struct{}

func (*Empty) MarshalWire() []byte { return nil }

func (*Empty) UnmarshalWire(b []byte) error { return walk(b, func(field) error { return nil }) }

type Principal struct {
	ID        string
	Role      string
	Name      string
	Email     string
	CreatedAt time.Time
}

func (m *Principal) MarshalWire() []byte {
	var e encoder
	e.str(1, m.ID)
	e.str(2, m.Role)
	e.str(3, m.Name)
	e.str(4, m.Email)
	e.timestamp(5, m.CreatedAt)
	return e.b
}

func (m *Principal) UnmarshalWire(b []byte) error {
	return walk(b, func(f field) (err error) {
		switch f.num {
		case 1:
			m.ID = f.str()
		case 2:
			m.Role = f.str()
		case 3:
			m.Name = f.str()
		case 4:
			m.Email = f.str()
		case 5:
			m.CreatedAt, err = f.timestamp()
		}
		return err
	})
}

type User struct {
	ID         string
	Name       string
	Email      string
	Age        int64
	Gender     string
	IsApproved bool
	CreatedAt  time.Time
}

func (m *User) MarshalWire() []byte {
	var e encoder
	e.str(1, m.ID)
	e.str(2, m.Name)
	e.str(3, m.Email)
	e.integer(4, m.Age)
	e.str(5, m.Gender)
	e.boolean(6, m.IsApproved)
	e.timestamp(7, m.CreatedAt)
	return e.b
}

func (m *User) UnmarshalWire(b []byte) error {
	return walk(b, func(f field) (err error) {
		switch f.num {
		case 1:
			m.ID = f.str()
		case 2:
			m.Name = f.str()
		case 3:
			m.Email = f.str()
		case 4:
			m.Age = f.integer()
		case 5:
			m.Gender = f.str()
		case 6:
			m.IsApproved = f.boolean()
		case 7:
			m.CreatedAt, err = f.timestamp()
		}
		return err
	})
}

type UserStats struct {
	Total        int64
	Approved     int64
	Pending      int64
	NewThisMonth int64
}

func (m *UserStats) MarshalWire() []byte {
	var e encoder
	e.integer(1, m.Total)
	e.integer(2, m.Approved)
	e.integer(3, m.Pending)
	e.integer(4, m.NewThisMonth)
	return e.b
}

func (m *UserStats) UnmarshalWire(b []byte) error {
	return walk(b, func(f field) error {
		switch f.num {
		case 1:
			m.Total = f.integer()
		case 2:
			m.Approved = f.integer()
		case 3:
			m.Pending = f.integer()
		case 4:
			m.NewThisMonth = f.integer()
		}
		return nil
	})
}

type Lawyer struct {
	ID              string
	Name            string
	Gender          string
	Email           string
	Specialization  string
	ExperienceYears int64
	HourlyRate      float64
	Bio             string
	Status          string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (m *Lawyer) MarshalWire() []byte {
	var e encoder
	e.str(1, m.ID)
	e.str(2, m.Name)
	e.str(3, m.Gender)
	e.str(4, m.Email)
	e.str(5, m.Specialization)
	e.integer(6, m.ExperienceYears)
	e.double(7, m.HourlyRate)
	e.str(8, m.Bio)
	e.str(9, m.Status)
	e.timestamp(10, m.CreatedAt)
	e.timestamp(11, m.UpdatedAt)
	return e.b
}

func (m *Lawyer) UnmarshalWire(b []byte) error {
	return walk(b, func(f field) (err error) {
		switch f.num {
		case 1:
			m.ID = f.str()
		case 2:
			m.Name = f.str()
		case 3:
			m.Gender = f.str()
		case 4:
			m.Email = f.str()
		case 5:
			m.Specialization = f.str()
		case 6:
			m.ExperienceYears = f.integer()
		case 7:
			m.HourlyRate = f.double()
		case 8:
			m.Bio = f.str()
		case 9:
			m.Status = f.str()
		case 10:
			m.CreatedAt, err = f.timestamp()
		case 11:
			m.UpdatedAt, err = f.timestamp()
		}
		return err
	})
}

// Appointment carries the counterpart display fields when the listing joined them.
type Appointment struct {
	ID              string
	ClientID        string
	LawyerID        string
	ScheduledAt     time.Time
	DurationMinutes int64
	Notes           string
	Status          string
	CreatedAt       time.Time
	ClientName      string
	ClientEmail     string
	LawyerName      string
	LawyerEmail     string
	Specialization  string
}

func (m *Appointment) MarshalWire() []byte {
	var e encoder
	e.str(1, m.ID)
	e.str(2, m.ClientID)
	e.str(3, m.LawyerID)
	e.timestamp(4, m.ScheduledAt)
	e.integer(5, m.DurationMinutes)
	e.str(6, m.Notes)
	e.str(7, m.Status)
	e.timestamp(8, m.CreatedAt)
	e.str(9, m.ClientName)
	e.str(10, m.ClientEmail)
	e.str(11, m.LawyerName)
	e.str(12, m.LawyerEmail)
	e.str(13, m.Specialization)
	return e.b
}

func (m *Appointment) UnmarshalWire(b []byte) error {
	return walk(b, func(f field) (err error) {
		switch f.num {
		case 1:
			m.ID = f.str()
		case 2:
			m.ClientID = f.str()
		case 3:
			m.LawyerID = f.str()
		case 4:
			m.ScheduledAt, err = f.timestamp()
		case 5:
			m.DurationMinutes = f.integer()
		case 6:
			m.Notes = f.str()
		case 7:
			m.Status = f.str()
		case 8:
			m.CreatedAt, err = f.timestamp()
		case 9:
			m.ClientName = f.str()
		case 10:
			m.ClientEmail = f.str()
		case 11:
			m.LawyerName = f.str()
		case 12:
			m.LawyerEmail = f.str()
		case 13:
			m.Specialization = f.str()
		}
		return err
	})
}
