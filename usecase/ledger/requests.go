package ledger

import (
	"time"

	"github.com/fastygo/todoledger/domain"
)

// Request bodies accepted per transaction kind. Tags only check shape; the
// engines decide which fields are required. domain.Ref fields decode as user
// references; task and user lookups go through refID with the expected type.

type createTaskRequest struct {
	TaskID       string           `json:"taskId" validate:"max=128"`
	TaskName     string           `json:"taskName" validate:"max=256"`
	TaskDuration *domain.Duration `json:"taskDuration"`
	TaskEnergy   *domain.Energy   `json:"taskEnergy"`
	TaskLocation *string          `json:"taskLocation" validate:"omitempty,max=512"`
	TaskTags     []string         `json:"taskTags" validate:"omitempty,max=64,dive,max=64"`
	TaskNotes    *string          `json:"taskNotes" validate:"omitempty,max=4096"`
	TaskDue      *string          `json:"taskDue"`
	TaskAssignee *domain.Ref      `json:"taskAssignee"`
}

type assignTaskRequest struct {
	Task         string      `json:"task" validate:"max=256"`
	TaskAssignee *domain.Ref `json:"taskAssignee"`
}

type taskRequest struct {
	Task string `json:"task" validate:"max=256"`
}

type updateTaskRequest struct {
	Task         string            `json:"task" validate:"max=256"`
	TaskName     *string           `json:"taskName" validate:"omitempty,max=256"`
	TaskLocation *string           `json:"taskLocation" validate:"omitempty,max=512"`
	TaskDue      *string           `json:"taskDue"`
	TaskDuration *domain.Duration  `json:"taskDuration"`
	TaskEnergy   *domain.Energy    `json:"taskEnergy"`
	TaskState    *domain.TaskState `json:"taskState"`
	TaskTags     []string          `json:"taskTags" validate:"omitempty,max=64,dive,max=64"`
	TaskNotes    *string           `json:"taskNotes" validate:"omitempty,max=4096"`
	TaskAssignee *domain.Ref       `json:"taskAssignee"`
}

type createUserRequest struct {
	UserEmail     string  `json:"userEmail" validate:"omitempty,email,max=256"`
	UserFirstName *string `json:"userFirstName" validate:"omitempty,max=128"`
	UserLastName  *string `json:"userLastName" validate:"omitempty,max=128"`
	UserPassword  *string `json:"userPassword" validate:"omitempty,max=256"`
}

type updateUserRequest struct {
	User          string  `json:"user" validate:"max=256"`
	UserFirstName *string `json:"userFirstName" validate:"omitempty,max=128"`
	UserLastName  *string `json:"userLastName" validate:"omitempty,max=128"`
	UserPassword  *string `json:"userPassword" validate:"omitempty,max=256"`
}

type userRequest struct {
	User string `json:"user" validate:"max=256"`
}

// parseDue reads an RFC 3339 timestamp. An empty string yields the zero time,
// which UpdateTask treats as clearing the due date.
func parseDue(raw *string) (*time.Time, error) {
	if raw == nil {
		return nil, nil
	}
	if *raw == "" {
		return &time.Time{}, nil
	}
	due, err := time.Parse(time.RFC3339, *raw)
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeInvalidArgument, "taskDue must be RFC 3339", err)
	}
	due = due.UTC()
	return &due, nil
}
