package domain

import "time"

// TaskState is the lifecycle position of a task.
type TaskState string

const (
	TaskInactive  TaskState = "INACTIVE"
	TaskActive    TaskState = "ACTIVE"
	TaskCompleted TaskState = "COMPLETED"
)

func (s TaskState) Valid() bool {
	switch s {
	case TaskInactive, TaskActive, TaskCompleted:
		return true
	}
	return false
}

// Duration is a coarse estimate of how long a task takes.
type Duration string

const (
	DurationThirtyMinutes Duration = "THIRTY_MINUTES"
	DurationTwoHours      Duration = "TWO_HOURS"
	DurationFourHours     Duration = "FOUR_HOURS"
	DurationLong          Duration = "LONG"
)

func (d Duration) Valid() bool {
	switch d {
	case DurationThirtyMinutes, DurationTwoHours, DurationFourHours, DurationLong:
		return true
	}
	return false
}

// Energy is how demanding a task is.
type Energy string

const (
	EnergyLow    Energy = "LOW"
	EnergyNormal Energy = "NORMAL"
	EnergyHigh   Energy = "HIGH"
)

func (e Energy) Valid() bool {
	switch e {
	case EnergyLow, EnergyNormal, EnergyHigh:
		return true
	}
	return false
}

// Task is a to-do item. It references users by identity only.
type Task struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	State         TaskState  `json:"state"`
	Duration      Duration   `json:"duration,omitempty"`
	Energy        Energy     `json:"energy,omitempty"`
	Location      string     `json:"location,omitempty"`
	Tags          []string   `json:"tags,omitempty"`
	Notes         string     `json:"notes,omitempty"`
	Due           *time.Time `json:"due,omitempty"`
	Assignee      *Ref       `json:"assignee,omitempty"`
	CreatedBy     Ref        `json:"created_by"`
	CreatedAt     time.Time  `json:"created_at"`
	LastUpdatedBy *Ref       `json:"last_updated_by,omitempty"`
	LastUpdatedAt *time.Time `json:"last_updated_at,omitempty"`
}

func (t *Task) IsCompleted() bool {
	return t != nil && t.State == TaskCompleted
}

func (t *Task) IsActive() bool {
	return t != nil && t.State == TaskActive
}

func (t *Task) IsAssigned() bool {
	return t != nil && t.Assignee != nil && !t.Assignee.IsZero()
}

// Touch stamps the audit fields of a mutation.
func (t *Task) Touch(by Ref, at time.Time) {
	if t == nil {
		return
	}
	t.LastUpdatedBy = refPtr(by)
	t.LastUpdatedAt = &at
}

// Clone returns a deep copy so a failed store call leaves the original untouched.
func (t *Task) Clone() *Task {
	if t == nil {
		return nil
	}
	c := *t
	if t.Tags != nil {
		c.Tags = append([]string{}, t.Tags...)
	}
	if t.Due != nil {
		due := *t.Due
		c.Due = &due
	}
	if t.Assignee != nil {
		a := *t.Assignee
		c.Assignee = &a
	}
	if t.LastUpdatedBy != nil {
		by := *t.LastUpdatedBy
		c.LastUpdatedBy = &by
	}
	if t.LastUpdatedAt != nil {
		at := *t.LastUpdatedAt
		c.LastUpdatedAt = &at
	}
	return &c
}

// TagSet drops blank and duplicate tags, keeping first-seen order.
func TagSet(tags []string) []string {
	if tags == nil {
		return nil
	}
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}
