package model

import "time"

type Role string

const (
	RoleClient Role = "client"
	RoleLawyer Role = "lawyer"
	RoleAdmin  Role = "admin"
)

func (r Role) Valid() bool {
	return r == RoleClient || r == RoleLawyer || r == RoleAdmin
}

type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale || g == GenderOther
}

type LawyerStatus string

const (
	LawyerActive   LawyerStatus = "active"
	LawyerInactive LawyerStatus = "inactive"
)

func (s LawyerStatus) Valid() bool {
	return s == LawyerActive || s == LawyerInactive
}

// User is a client account. It stays unapproved until an admin acts on it.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Age          int
	Gender       Gender
	IsApproved   bool
	CreatedAt    time.Time
}

type Lawyer struct {
	ID              string
	Name            string
	Gender          Gender
	Email           string
	PasswordHash    string
	Specialization  string
	ExperienceYears int
	HourlyRate      float64
	Bio             string
	Status          LawyerStatus
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type Admin struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

type Appointment struct {
	ID              string
	ClientID        string
	LawyerID        string
	ScheduledAt     time.Time
	DurationMinutes int
	Notes           string
	Status          Status
	CreatedAt       time.Time
}

// AppointmentView is an appointment joined with the display fields of both parties.
// Fields for the side that was not joined are left empty.
type AppointmentView struct {
	Appointment
	ClientName     string
	ClientEmail    string
	LawyerName     string
	LawyerEmail    string
	Specialization string
}

// Principal is an authenticated caller as seen by the services.
type Principal struct {
	ID        string
	Role      Role
	Name      string
	Email     string
	CreatedAt time.Time
}

type UserStats struct {
	Total        int
	Approved     int
	Pending      int
	NewThisMonth int
}
