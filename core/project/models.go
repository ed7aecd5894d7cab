package project

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rohitbokare05/Project-Connect-IITR/core"
)

var (
	ErrNotFound = errors.New("project not found")
	ErrNotOwner = errors.New("project belongs to another faculty member")
	ErrClosed   = errors.New("project is closed")
)

type Status string

const (
	StatusOpen   Status = "open"
	StatusClosed Status = "closed"
)

// Toggled returns the flipped status.
func (s Status) Toggled() Status {
	if s == StatusOpen {
		return StatusClosed
	}
	return StatusOpen
}

// Project is one research posting, owned by exactly one faculty member.
// FacultyName and FacultyEmail are denormalized copies captured at creation
// time and deliberately never synced with later profile edits.
type Project struct {
	ID             string   `json:"projectId"`
	FacultyID      string   `json:"facultyId"`
	FacultyName    string   `json:"facultyName"`
	FacultyEmail   string   `json:"facultyEmail"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	SkillsRequired []string `json:"skillsRequired"`
	Duration       string   `json:"duration"`
	Stipend        string   `json:"stipend"`
	Positions      int      `json:"positions"`
	Deadline       string   `json:"deadline"` // optional, YYYY-MM-DD
	Status         Status   `json:"status"`

	CreatedAt time.Time `json:"createdAt"` // UTC
	UpdatedAt time.Time `json:"updatedAt"` // UTC
}

// Repository is the project slice of the document store. Queries return
// records in no particular order; the service sorts.
type Repository interface {
	Create(ctx context.Context, p Project) (Project, error)
	Get(ctx context.Context, id string) (Project, error)
	QueryByStatus(ctx context.Context, status Status) ([]Project, error)
	QueryByFaculty(ctx context.Context, facultyID string) ([]Project, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, id string) error
}

// NewProject contains the creation form fields. Skills is the raw
// comma-separated input.
type NewProject struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"required,min=10,max=2000"`
	Skills      string `json:"skills" validate:"required,skillslist"`
	Duration    string `json:"duration" validate:"required"`
	Stipend     string `json:"stipend" validate:"required"`
	Positions   int    `json:"positions" validate:"required,min=1"`
	Deadline    string `json:"deadline" validate:"omitempty,deadline"`
}

func (np *NewProject) Validate() error {
	np.Title = core.CleanString(np.Title)
	np.Description = strings.TrimSpace(np.Description)
	np.Duration = core.CleanString(np.Duration)
	np.Stipend = core.CleanString(np.Stipend)
	np.Deadline = core.CleanString(np.Deadline)
	return core.Validate.Struct(np)
}

// ParseSkills splits a comma-separated input into trimmed segments, dropping
// empties. Order is kept and duplicates are NOT deduplicated; the list
// mirrors what was typed.
func ParseSkills(input string) []string {
	var skills []string
	for _, s := range strings.Split(input, ",") {
		if s = strings.TrimSpace(s); s != "" {
			skills = append(skills, s)
		}
	}
	return skills
}
