package project

import (
	"context"
	"net/mail"
	"time"

	"github.com/pkg/errors"

	"github.com/rohitbokare05/Project-Connect-IITR/core"
	"github.com/rohitbokare05/Project-Connect-IITR/core/user"
)

type Service struct {
	repo  Repository
	users user.Repository
	mail  core.EmailService
	log   core.Logger
}

func NewService(repo Repository, users user.Repository, mailSvc core.EmailService, log core.Logger) *Service {
	return &Service{repo: repo, users: users, mail: mailSvc, log: log}
}

// Counts summarizes a faculty member's project list.
type Counts struct {
	Total  int `json:"total"`
	Open   int `json:"open"`
	Closed int `json:"closed"`
}

// Open returns all open projects, newest first.
func (svc *Service) Open(ctx context.Context) ([]Project, error) {
	projects, err := svc.repo.QueryByStatus(ctx, StatusOpen)
	if err != nil {
		return nil, errors.Wrap(err, "querying open projects")
	}
	SortNewestFirst(projects)
	return projects, nil
}

// ByFaculty returns the faculty member's own projects, newest first.
func (svc *Service) ByFaculty(ctx context.Context, facultyID string) ([]Project, error) {
	projects, err := svc.repo.QueryByFaculty(ctx, facultyID)
	if err != nil {
		return nil, errors.Wrap(err, "querying faculty projects")
	}
	SortNewestFirst(projects)
	return projects, nil
}

func (svc *Service) CountsFor(projects []Project) Counts {
	c := Counts{Total: len(projects)}
	for _, p := range projects {
		if p.Status == StatusOpen {
			c.Open++
		} else {
			c.Closed++
		}
	}
	return c
}

// Create validates the form and writes a new open project. FacultyName is
// denormalized from the owner's profile at this moment; FacultyEmail comes
// from the session.
func (svc *Service) Create(ctx context.Context, facultyID, facultyEmail string, np NewProject) (Project, error) {
	if err := np.Validate(); err != nil {
		return Project{}, err
	}

	facultyName := "Faculty"
	if owner, err := svc.users.Get(ctx, facultyID); err == nil && owner.FacultyName != "" {
		facultyName = owner.FacultyName
	} else if err != nil && err != user.ErrNotFound {
		return Project{}, errors.Wrap(err, "loading faculty profile")
	}

	now := time.Now().UTC()
	p := Project{
		FacultyID:      facultyID,
		FacultyName:    facultyName,
		FacultyEmail:   facultyEmail,
		Title:          np.Title,
		Description:    np.Description,
		SkillsRequired: ParseSkills(np.Skills),
		Duration:       np.Duration,
		Stipend:        np.Stipend,
		Positions:      np.Positions,
		Deadline:       np.Deadline,
		Status:         StatusOpen,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	p, err := svc.repo.Create(ctx, p)
	if err != nil {
		return Project{}, errors.Wrap(err, "creating project")
	}
	svc.log.Info("project created", map[string]interface{}{"project": p.ID, "faculty": facultyID})
	return p, nil
}

// ToggleStatus flips open<->closed on an owned project. The returned record
// reflects the remote write; nothing is mutated locally before the store
// confirms, so a failure leaves state consistent.
func (svc *Service) ToggleStatus(ctx context.Context, facultyID, projectID string) (Project, error) {
	p, err := svc.owned(ctx, facultyID, projectID)
	if err != nil {
		return Project{}, err
	}

	fields := map[string]interface{}{
		"status":    p.Status.Toggled(),
		"updatedAt": time.Now().UTC(),
	}
	if err := svc.repo.Update(ctx, projectID, fields); err != nil {
		return Project{}, errors.Wrap(err, "updating project status")
	}
	return svc.repo.Get(ctx, projectID)
}

// Delete permanently removes an owned project. Deleting an id that is already
// gone succeeds; the store's delete is idempotent.
func (svc *Service) Delete(ctx context.Context, facultyID, projectID string) error {
	_, err := svc.owned(ctx, facultyID, projectID)
	if err == ErrNotFound {
		return nil
	}
	if err != nil {
		return err
	}
	if err := svc.repo.Delete(ctx, projectID); err != nil {
		return errors.Wrap(err, "deleting project")
	}
	svc.log.Info("project deleted", map[string]interface{}{"project": projectID, "faculty": facultyID})
	return nil
}

// Contact composes the interest e-mail for an open project and relays it
// through the mail service on the student's behalf.
func (svc *Service) Contact(ctx context.Context, projectID string, from user.User) (ContactMessage, error) {
	p, err := svc.repo.Get(ctx, projectID)
	if err != nil {
		return ContactMessage{}, err
	}
	if p.Status != StatusOpen {
		return ContactMessage{}, ErrClosed
	}

	msg := NewContactMessage(p)
	svc.mail.SendMessages(&core.EmailMessage{
		To:      []mail.Address{{Name: p.FacultyName, Address: p.FacultyEmail}},
		ReplyTo: &mail.Address{Name: from.Name, Address: from.Email},
		Subject: msg.Subject,
		Body:    msg.Body,
	})
	return msg, nil
}

func (svc *Service) owned(ctx context.Context, facultyID, projectID string) (Project, error) {
	p, err := svc.repo.Get(ctx, projectID)
	if err != nil {
		return Project{}, err
	}
	if p.FacultyID != facultyID {
		return Project{}, ErrNotOwner
	}
	return p, nil
}
