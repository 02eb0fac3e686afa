package session

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sandeepkv93/focusboard/internal/model"
)

const DefaultSessionTitle = "Focus Session"

var reflectionQuestions = []string{
	"What did you accomplish during this session?",
	"What obstacles did you encounter?",
	"How could you improve your next session?",
}

// ReflectionQuestions returns the fixed questions asked after every work phase.
func ReflectionQuestions() []string {
	return slices.Clone(reflectionQuestions)
}

// NewReflectionSubmission records a completed work phase. task may be nil
// when no task is active.
func NewReflectionSubmission(task *model.Task, answers []string, workMinutes int, now time.Time) model.Submission {
	title := DefaultSessionTitle
	content := ""
	if task != nil {
		if strings.TrimSpace(task.Title) != "" {
			title = task.Title
		}
		content = task.Content
	}
	return model.Submission{
		ID:          uuid.New().String(),
		Title:       title,
		Content:     slices.Clone(answers),
		Timestamp:   now,
		Duration:    workMinutes,
		Completed:   true,
		Questions:   ReflectionQuestions(),
		TaskContent: content,
	}
}
