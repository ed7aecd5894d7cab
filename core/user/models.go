package user

import (
	"context"
	"errors"
	"time"

	"github.com/rohitbokare05/Project-Connect-IITR/core"
)

var ErrNotFound = errors.New("user not found")

// Role is one of the two portal roles. It is chosen at registration and never
// changes afterwards.
type Role string

const (
	RoleStudent Role = "student"
	RoleFaculty Role = "faculty"
)

func (r Role) Valid() bool {
	return r == RoleStudent || r == RoleFaculty
}

// Department is the only department this portal serves.
const Department = "ECE"

// AcademicYears are the allowed values of User.Year.
var AcademicYears = []string{"1st Year", "2nd Year", "3rd Year", "4th Year", "5th Year"}

// Designations are the allowed values of User.Designation.
var Designations = []string{"Professor", "Associate Professor", "Assistant Professor"}

// User is one account record. Role-specific fields of the opposite role stay
// empty for the account's whole lifetime.
type User struct {
	ID    string `json:"uid"`
	Email string `json:"email"`
	Role  Role   `json:"role"`

	// student fields
	Name          string `json:"name,omitempty"`
	Year          string `json:"year,omitempty"`
	CustomMessage string `json:"customMessage,omitempty"`
	ResumeURL     string `json:"resumeUrl,omitempty"`
	ResumeName    string `json:"resumeName,omitempty"`

	// faculty fields
	FacultyName    string `json:"facultyName,omitempty"`
	Department     string `json:"department,omitempty"`
	Designation    string `json:"designation,omitempty"`
	OfficeLocation string `json:"officeLocation,omitempty"`
	Phone          string `json:"phone,omitempty"`

	CreatedAt time.Time `json:"createdAt"` // UTC
	UpdatedAt time.Time `json:"updatedAt"` // UTC
}

func (u User) IsStudent() bool { return u.Role == RoleStudent }
func (u User) IsFaculty() bool { return u.Role == RoleFaculty }

// New returns the role-appropriate empty-default record written at
// registration.
func New(id, email string, role Role, now time.Time) User {
	usr := User{
		ID:        id,
		Email:     email,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if role == RoleFaculty {
		usr.Department = Department
	}
	return usr
}

// Repository is the user slice of the document store. Update merges the given
// fields into the stored record, per the docstore contract.
type Repository interface {
	Create(ctx context.Context, usr User) error
	Get(ctx context.Context, id string) (User, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) error
}

// StudentProfile defines what a student may edit on their profile.
type StudentProfile struct {
	Name          string `json:"name" validate:"required,max=100"`
	Year          string `json:"year" validate:"required,academicyear"`
	CustomMessage string `json:"customMessage" validate:"required,max=500"`
}

func (sp *StudentProfile) Validate() error {
	sp.Name = core.CleanString(sp.Name)
	sp.CustomMessage = core.CleanString(sp.CustomMessage)
	return core.Validate.Struct(sp)
}

// FacultyProfile defines what a faculty member may edit on their profile.
// Department is fixed and not editable.
type FacultyProfile struct {
	FacultyName    string `json:"facultyName" validate:"required,max=100"`
	Designation    string `json:"designation" validate:"required,designation"`
	OfficeLocation string `json:"officeLocation"`
	Phone          string `json:"phone"`
}

func (fp *FacultyProfile) Validate() error {
	fp.FacultyName = core.CleanString(fp.FacultyName)
	fp.OfficeLocation = core.CleanString(fp.OfficeLocation)
	fp.Phone = core.CleanString(fp.Phone)
	return core.Validate.Struct(fp)
}
