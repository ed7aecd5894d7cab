package records

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/rohitbokare05/Project-Connect-IITR/core/project"
	"github.com/rohitbokare05/Project-Connect-IITR/storage/docstore"
)

const projectsCollection = "projects"

type projectRepository struct {
	store docstore.Store
}

var _ project.Repository = (*projectRepository)(nil)

func NewProjectRepository(store docstore.Store) project.Repository {
	return &projectRepository{store: store}
}

func (repo *projectRepository) Create(ctx context.Context, p project.Project) (project.Project, error) {
	id, err := repo.store.Add(ctx, projectsCollection, p)
	if err != nil {
		return project.Project{}, errors.Wrap(err, "creating project record")
	}
	p.ID = id
	return p, nil
}

func (repo *projectRepository) Get(ctx context.Context, id string) (project.Project, error) {
	rec, err := repo.store.Get(ctx, projectsCollection, id)
	if err != nil {
		if err == docstore.ErrNotFound {
			return project.Project{}, project.ErrNotFound
		}
		return project.Project{}, errors.Wrap(err, "getting project record")
	}
	return decodeProject(rec)
}

func (repo *projectRepository) QueryByStatus(ctx context.Context, status project.Status) ([]project.Project, error) {
	return repo.query(ctx, docstore.Where("status", string(status)))
}

func (repo *projectRepository) QueryByFaculty(ctx context.Context, facultyID string) ([]project.Project, error) {
	return repo.query(ctx, docstore.Where("facultyId", facultyID))
}

func (repo *projectRepository) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	err := repo.store.Update(ctx, projectsCollection, id, fields)
	if err == docstore.ErrNotFound {
		return project.ErrNotFound
	}
	return errors.Wrap(err, "updating project record")
}

func (repo *projectRepository) Delete(ctx context.Context, id string) error {
	return errors.Wrap(repo.store.Delete(ctx, projectsCollection, id), "deleting project record")
}

func (repo *projectRepository) query(ctx context.Context, filters ...docstore.Filter) ([]project.Project, error) {
	recs, err := repo.store.Query(ctx, projectsCollection, filters...)
	if err != nil {
		return nil, errors.Wrap(err, "querying project records")
	}
	projects := make([]project.Project, 0, len(recs))
	for _, rec := range recs {
		p, err := decodeProject(rec)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, nil
}

func decodeProject(rec docstore.Record) (project.Project, error) {
	var p project.Project
	if err := json.Unmarshal(rec.Data, &p); err != nil {
		return project.Project{}, errors.Wrap(err, "decoding project record")
	}
	p.ID = rec.ID
	return p, nil
}
