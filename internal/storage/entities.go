package storage

import "time"

const (
	KeySubmissions = "submissions"
	KeyHabits      = "habits"
	KeyTasks       = "tasks"
	KeyLastSent    = "lastSubmissionSent"
)

type Entry struct {
	Key       string
	Value     []byte
	UpdatedAt time.Time
}

type EntryListFilter struct {
	Prefix string
	Limit  int
	Offset int
}

type submissionRecord struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Content     []string  `json:"content"`
	Timestamp   time.Time `json:"timestamp"`
	Duration    int       `json:"duration"`
	Completed   bool      `json:"completed"`
	Questions   []string  `json:"questions"`
	TaskContent string    `json:"taskContent,omitempty"`
}

type habitRecord struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	CompletedDays []int  `json:"completedDays"`
}

type taskRecord struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Hour      int    `json:"hour"`
	Content   string `json:"content"`
	Notes     string `json:"notes,omitempty"`
	Completed bool   `json:"completed"`
}
