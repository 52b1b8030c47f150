package domain

// Role represents account role in the system
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleDoctor  Role = "doctor"
	RolePatient Role = "patient"
)

// Valid reports whether r is one of the three fixed roles
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleDoctor, RolePatient:
		return true
	}
	return false
}

// HomePath returns the landing page for the role
func (r Role) HomePath() string {
	switch r {
	case RoleAdmin:
		return "/admin"
	case RoleDoctor:
		return "/doctor"
	default:
		return "/patient"
	}
}

// Appointment statuses. Approved is terminal.
const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
)

// Identity is the resolved caller of an authenticated request.
type Identity struct {
	Username   string
	Role       Role
	Department string
}

// Capabilities are only obtainable from an Identity carrying the matching
// role, so a core operation that takes one cannot be reached with the wrong
// role. Fields are unexported.

// Admin is the capability of an admin caller
type Admin struct {
	username string
}

// Doctor is the capability of a doctor caller bound to a department
type Doctor struct {
	username   string
	department string
}

// Patient is the capability of a patient caller bound to its account
type Patient struct {
	username   string
	department string
}

// AsAdmin returns the admin capability if the identity is an admin
func (i Identity) AsAdmin() (Admin, bool) {
	if i.Role != RoleAdmin || i.Username == "" {
		return Admin{}, false
	}
	return Admin{username: i.Username}, true
}

// AsDoctor returns the doctor capability if the identity is a doctor
func (i Identity) AsDoctor() (Doctor, bool) {
	if i.Role != RoleDoctor || i.Username == "" {
		return Doctor{}, false
	}
	return Doctor{username: i.Username, department: i.Department}, true
}

// AsPatient returns the patient capability if the identity is a patient
func (i Identity) AsPatient() (Patient, bool) {
	if i.Role != RolePatient || i.Username == "" {
		return Patient{}, false
	}
	return Patient{username: i.Username, department: i.Department}, true
}

func (a Admin) Username() string { return a.username }

func (d Doctor) Username() string   { return d.username }
func (d Doctor) Department() string { return d.department }

func (p Patient) Username() string   { return p.username }
func (p Patient) Department() string { return p.department }
