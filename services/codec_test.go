package services

import (
	"errors"
	"strings"
	"testing"

	"github.com/Aayush9266/gtd-app/models"
)

func TestDecodeTasksCorruptText(t *testing.T) {
	if _, err := decodeTasks("{not json"); !errors.Is(err, ErrCorruptData) {
		t.Fatalf("expected ErrCorruptData, got %v", err)
	}
}

func TestDecodeTasksEmptyText(t *testing.T) {
	tasks, err := decodeTasks("")
	if err != nil {
		t.Fatalf("decode empty: %v", err)
	}
	if len(tasks) != 0 {
		t.Fatalf("expected empty collection, got %+v", tasks)
	}
}

func TestTasksRoundTripPreservesOrder(t *testing.T) {
	original := []models.Task{
		{ID: "1700000000001", Title: "b", Status: models.StatusNext, Tags: []string{"x"}},
		{ID: "1700000000000", Title: "a", Status: models.StatusInbox, Tags: []string{}},
	}

	text, err := encodeTasks(original)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	decoded, err := decodeTasks(text)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(decoded) != 2 || decoded[0].ID != "1700000000001" || decoded[1].ID != "1700000000000" {
		t.Fatalf("expected stored order preserved, got %+v", decoded)
	}
}

func TestEncodeProjectsOmitsTaskCount(t *testing.T) {
	text, err := encodeProjects([]models.Project{
		{ID: "1700000000000", Name: "Home", CreatedAt: "2024-01-01T00:00:00Z", TaskCount: 5},
	})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if strings.Contains(text, "taskCount") {
		t.Fatalf("derived taskCount leaked into persisted form: %s", text)
	}

	decoded, err := decodeProjects(text)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded[0].TaskCount != 0 {
		t.Fatalf("expected task count reset on decode, got %d", decoded[0].TaskCount)
	}
}

func TestDecodeProjectsCorruptText(t *testing.T) {
	if _, err := decodeProjects("[{"); !errors.Is(err, ErrCorruptData) {
		t.Fatalf("expected ErrCorruptData, got %v", err)
	}
}
