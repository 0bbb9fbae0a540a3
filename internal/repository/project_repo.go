package repository

import (
	"fmt"

	"lueurstudio/internal/db"
	"lueurstudio/internal/store"
)

const projectCollection = "projects"

// ProjectRepository stores portfolio projects keyed by slug.
type ProjectRepository struct {
	Store *store.Store
}

func NewProjectRepository(s *store.Store) *ProjectRepository {
	return &ProjectRepository{Store: s}
}

func (r *ProjectRepository) Create(p *db.Project) error {
	rec, err := toRecord(p)
	if err != nil {
		return fmt.Errorf("create project: %w", err)
	}
	rec["id"] = p.Slug
	_, err = r.Store.Append(projectCollection, rec)
	return err
}

func (r *ProjectRepository) BySlug(slug string) (*db.Project, error) {
	rec, err := r.Store.FindByID(projectCollection, slug)
	if err != nil {
		return nil, err
	}
	var p db.Project
	if err := fromRecord(rec, &p); err != nil {
		return nil, fmt.Errorf("project %s: %w", slug, err)
	}
	return &p, nil
}

func (r *ProjectRepository) Update(slug string, fields store.Record) (*db.Project, error) {
	delete(fields, "slug") // the slug is the identity, it does not move
	rec, err := r.Store.UpdateByID(projectCollection, slug, fields)
	if err != nil {
		return nil, err
	}
	var p db.Project
	if err := fromRecord(rec, &p); err != nil {
		return nil, fmt.Errorf("project %s: %w", slug, err)
	}
	return &p, nil
}

func (r *ProjectRepository) Delete(slug string) error {
	return r.Store.RemoveByID(projectCollection, slug)
}

func (r *ProjectRepository) List() ([]db.Project, error) {
	records, err := r.Store.ListAll(projectCollection)
	if err != nil {
		return nil, err
	}
	out := make([]db.Project, 0, len(records))
	for _, rec := range records {
		var p db.Project
		if err := fromRecord(rec, &p); err != nil {
			continue
		}
		if p.Slug == "" {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}
