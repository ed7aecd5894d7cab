package user

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/rohitbokare05/Project-Connect-IITR/core"
	"github.com/rohitbokare05/Project-Connect-IITR/storage/blob"
)

type Service struct {
	repo  Repository
	blobs blob.Store
	log   core.Logger
}

func NewService(repo Repository, blobs blob.Store, log core.Logger) *Service {
	return &Service{repo: repo, blobs: blobs, log: log}
}

func (svc *Service) Get(ctx context.Context, id string) (User, error) {
	return svc.repo.Get(ctx, id)
}

// Profile loads the record at id filtered to the expected role. A record
// whose stored role disagrees is treated as not found, so the caller renders
// an empty profile instead of another role's data.
func (svc *Service) Profile(ctx context.Context, id string, want Role) (User, error) {
	usr, err := svc.repo.Get(ctx, id)
	if err != nil {
		return User{}, err
	}
	if usr.Role != want {
		return User{}, ErrNotFound
	}
	return usr, nil
}

// UpdateStudentProfile validates and saves the student-editable fields, then
// reloads the record to reflect authoritative state.
func (svc *Service) UpdateStudentProfile(ctx context.Context, id string, sp StudentProfile) (User, error) {
	if _, err := svc.Profile(ctx, id, RoleStudent); err != nil {
		return User{}, err
	}
	if err := sp.Validate(); err != nil {
		return User{}, err
	}

	fields := map[string]interface{}{
		"name":          sp.Name,
		"year":          sp.Year,
		"customMessage": sp.CustomMessage,
		"updatedAt":     time.Now().UTC(),
	}
	if err := svc.repo.Update(ctx, id, fields); err != nil {
		return User{}, errors.Wrap(err, "updating student profile")
	}
	return svc.repo.Get(ctx, id)
}

// UpdateFacultyProfile validates and saves the faculty-editable fields, then
// reloads the record.
func (svc *Service) UpdateFacultyProfile(ctx context.Context, id string, fp FacultyProfile) (User, error) {
	if _, err := svc.Profile(ctx, id, RoleFaculty); err != nil {
		return User{}, err
	}
	if err := fp.Validate(); err != nil {
		return User{}, err
	}

	fields := map[string]interface{}{
		"facultyName":    fp.FacultyName,
		"designation":    fp.Designation,
		"officeLocation": fp.OfficeLocation,
		"phone":          fp.Phone,
		"updatedAt":      time.Now().UTC(),
	}
	if err := svc.repo.Update(ctx, id, fields); err != nil {
		return User{}, errors.Wrap(err, "updating faculty profile")
	}
	return svc.repo.Get(ctx, id)
}

// SaveResume uploads a validated resume and stores its URL and display name
// on the student's record. A failed upload aborts before any record write, so
// the previously stored resume fields survive the attempt.
func (svc *Service) SaveResume(ctx context.Context, id string, f ResumeFile) (User, error) {
	if _, err := svc.Profile(ctx, id, RoleStudent); err != nil {
		return User{}, err
	}
	if err := f.Validate(); err != nil {
		return User{}, err
	}

	path := ResumePath(id, f.Filename, time.Now())
	url, err := svc.blobs.Upload(ctx, path, f.Content)
	if err != nil {
		return User{}, errors.Wrap(err, "uploading resume")
	}

	fields := map[string]interface{}{
		"resumeUrl":  url,
		"resumeName": f.Filename,
		"updatedAt":  time.Now().UTC(),
	}
	if err := svc.repo.Update(ctx, id, fields); err != nil {
		return User{}, errors.Wrap(err, "storing resume fields")
	}
	svc.log.Info("resume uploaded", map[string]interface{}{"user": id, "path": path})
	return svc.repo.Get(ctx, id)
}
