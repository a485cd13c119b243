package services

import (
	"encoding/json"
	"fmt"

	"github.com/Aayush9266/gtd-app/models"
)

// The codec owns the persisted shape of both collections: a JSON array per
// blob, records in stored order, timestamps and enums as their literal
// strings. Field names must stay compatible with already-persisted data.

// projectRecord is the persisted form of a project. TaskCount is derived on
// read and deliberately has no place here.
type projectRecord struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	CreatedAt   string `json:"createdAt"`
}

func encodeTasks(tasks []models.Task) (string, error) {
	if tasks == nil {
		tasks = []models.Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return "", fmt.Errorf("failed to encode tasks: %v", err)
	}
	return string(data), nil
}

func decodeTasks(text string) ([]models.Task, error) {
	if text == "" {
		return []models.Task{}, nil
	}
	var tasks []models.Task
	if err := json.Unmarshal([]byte(text), &tasks); err != nil {
		return nil, fmt.Errorf("%w: tasks: %v", ErrCorruptData, err)
	}
	return tasks, nil
}

func encodeProjects(projects []models.Project) (string, error) {
	records := make([]projectRecord, 0, len(projects))
	for _, p := range projects {
		records = append(records, projectRecord{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			CreatedAt:   p.CreatedAt,
		})
	}
	data, err := json.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("failed to encode projects: %v", err)
	}
	return string(data), nil
}

func decodeProjects(text string) ([]models.Project, error) {
	if text == "" {
		return []models.Project{}, nil
	}
	var records []projectRecord
	if err := json.Unmarshal([]byte(text), &records); err != nil {
		return nil, fmt.Errorf("%w: projects: %v", ErrCorruptData, err)
	}
	projects := make([]models.Project, 0, len(records))
	for _, r := range records {
		projects = append(projects, models.Project{
			ID:          r.ID,
			Name:        r.Name,
			Description: r.Description,
			CreatedAt:   r.CreatedAt,
		})
	}
	return projects, nil
}
