package models

type TaskStatus string

const (
	StatusInbox     TaskStatus = "inbox"
	StatusNext      TaskStatus = "next"
	StatusWaiting   TaskStatus = "waiting"
	StatusSomeday   TaskStatus = "someday"
	StatusCompleted TaskStatus = "completed"
	StatusArchived  TaskStatus = "archived"
)

type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

type TaskContext string

const (
	ContextWork     TaskContext = "work"
	ContextHome     TaskContext = "home"
	ContextErrands  TaskContext = "errands"
	ContextPersonal TaskContext = "personal"
)

// Task is the canonical task record. The json tags are the persisted field
// names; timestamps are RFC 3339 strings.
type Task struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Priority    TaskPriority `json:"priority"`
	Context     TaskContext  `json:"context"`
	Status      TaskStatus   `json:"status"`
	DueDate     string       `json:"dueDate,omitempty"`
	CreatedAt   string       `json:"createdAt"`
	CompletedAt string       `json:"completedAt,omitempty"`
	Tags        []string     `json:"tags"`
	ProjectID   string       `json:"projectId,omitempty"`
	Reminder    string       `json:"reminder,omitempty"`
}

// ValidStatus reports whether s is one of the six status buckets.
func ValidStatus(s TaskStatus) bool {
	switch s {
	case StatusInbox, StatusNext, StatusWaiting, StatusSomeday, StatusCompleted, StatusArchived:
		return true
	}
	return false
}

func ValidPriority(p TaskPriority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

func ValidContext(c TaskContext) bool {
	switch c {
	case ContextWork, ContextHome, ContextErrands, ContextPersonal:
		return true
	}
	return false
}
