package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Aayush9266/gtd-app/logging"
	"github.com/Aayush9266/gtd-app/models"
	"github.com/Aayush9266/gtd-app/storage"
)

const projectsBlobKey = "gtd_projects"

// ProjectService owns the project collection. It reads task state through
// the TaskService to derive per-project task counts, and writes it only for
// the cascade clear on project deletion.
type ProjectService struct {
	blobs storage.BlobStore
	tasks *TaskService
}

func NewProjectService(blobs storage.BlobStore, tasks *TaskService) *ProjectService {
	return &ProjectService{blobs: blobs, tasks: tasks}
}

type CreateProjectInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ProjectUpdate is a partial update; nil fields are left unchanged.
type ProjectUpdate struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

func (s *ProjectService) loadProjects(ctx context.Context) ([]models.Project, error) {
	text, ok, err := s.blobs.ReadBlob(ctx, projectsBlobKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []models.Project{}, nil
	}
	projects, err := decodeProjects(text)
	if err != nil {
		logging.Logger.Warnf("Event ID: PROJECTS_DECODE_FAILED, Description: Treating project collection as empty: %v", err)
		return []models.Project{}, nil
	}
	return projects, nil
}

func (s *ProjectService) saveProjects(ctx context.Context, projects []models.Project) error {
	text, err := encodeProjects(projects)
	if err != nil {
		return err
	}
	return s.blobs.WriteBlob(ctx, projectsBlobKey, text)
}

// annotateTaskCount fills in the live count of tasks referencing the
// project. The count is recomputed on every read and never persisted.
func (s *ProjectService) annotateTaskCount(ctx context.Context, project *models.Project) error {
	tasks, err := s.tasks.GetTasksByProject(ctx, project.ID)
	if err != nil {
		return err
	}
	project.TaskCount = len(tasks)
	return nil
}

// GetAllProjects returns every project with its live task count. One task
// query per project; fine at personal-organizer scale.
func (s *ProjectService) GetAllProjects(ctx context.Context) ([]models.Project, error) {
	projects, err := s.loadProjects(ctx)
	if err != nil {
		return nil, err
	}
	for i := range projects {
		if err := s.annotateTaskCount(ctx, &projects[i]); err != nil {
			return nil, fmt.Errorf("failed to count tasks for project %s: %w", projects[i].ID, err)
		}
	}
	return projects, nil
}

func (s *ProjectService) GetProjectByID(ctx context.Context, projectID string) (*models.Project, error) {
	projects, err := s.loadProjects(ctx)
	if err != nil {
		return nil, err
	}
	index := findProject(projects, projectID)
	if index == -1 {
		return nil, ErrProjectNotFound
	}
	project := projects[index]
	if err := s.annotateTaskCount(ctx, &project); err != nil {
		return nil, fmt.Errorf("failed to count tasks for project %s: %w", projectID, err)
	}
	return &project, nil
}

func (s *ProjectService) CreateProject(ctx context.Context, input CreateProjectInput) (*models.Project, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, &ValidationError{Field: "name", Reason: "must not be empty"}
	}

	projects, err := s.loadProjects(ctx)
	if err != nil {
		return nil, err
	}

	taken := make(map[string]bool, len(projects))
	for _, p := range projects {
		taken[p.ID] = true
	}

	project := models.Project{
		ID:          newRecordID(taken),
		Name:        name,
		Description: input.Description,
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
	}

	projects = append(projects, project)
	if err := s.saveProjects(ctx, projects); err != nil {
		return nil, fmt.Errorf("failed to persist new project: %w", err)
	}

	logging.Logger.Infof("Event ID: PROJECT_CREATED, Description: Created project %s", project.ID)
	return &project, nil
}

func (s *ProjectService) UpdateProject(ctx context.Context, projectID string, updates ProjectUpdate) (*models.Project, error) {
	projects, err := s.loadProjects(ctx)
	if err != nil {
		return nil, err
	}

	index := findProject(projects, projectID)
	if index == -1 {
		return nil, ErrProjectNotFound
	}

	project := projects[index]
	if updates.Name != nil {
		name := strings.TrimSpace(*updates.Name)
		if name == "" {
			return nil, &ValidationError{Field: "name", Reason: "must not be empty"}
		}
		project.Name = name
	}
	if updates.Description != nil {
		project.Description = *updates.Description
	}

	projects[index] = project
	if err := s.saveProjects(ctx, projects); err != nil {
		return nil, fmt.Errorf("failed to persist project update: %w", err)
	}

	if err := s.annotateTaskCount(ctx, &project); err != nil {
		return nil, fmt.Errorf("failed to count tasks for project %s: %w", projectID, err)
	}
	return &project, nil
}

// DeleteProject removes the project after clearing the project reference on
// every task that pointed at it. The cascade runs first: if any clear fails,
// the delete fails with the project still in the collection, so a deleted
// project can never leave dangling references behind.
func (s *ProjectService) DeleteProject(ctx context.Context, projectID string) error {
	associated, err := s.tasks.GetTasksByProject(ctx, projectID)
	if err != nil {
		return fmt.Errorf("failed to list tasks for project %s: %w", projectID, err)
	}
	for _, task := range associated {
		if _, err := s.tasks.AssignTaskToProject(ctx, task.ID, ""); err != nil {
			return fmt.Errorf("failed to clear project %s from task %s: %w", projectID, task.ID, err)
		}
	}

	projects, err := s.loadProjects(ctx)
	if err != nil {
		return err
	}

	remaining := []models.Project{}
	for _, p := range projects {
		if p.ID != projectID {
			remaining = append(remaining, p)
		}
	}
	if err := s.saveProjects(ctx, remaining); err != nil {
		return fmt.Errorf("failed to persist project deletion: %w", err)
	}

	logging.Logger.Infof("Event ID: PROJECT_DELETED, Description: Deleted project %s, cleared %d task references", projectID, len(associated))
	return nil
}

func findProject(projects []models.Project, projectID string) int {
	for i, project := range projects {
		if project.ID == projectID {
			return i
		}
	}
	return -1
}
