package domain

import "time"

// TransactionKind names one of the state-changing operations the ledger accepts.
type TransactionKind string

const (
	KindBootstrap    TransactionKind = "Bootstrap"
	KindCreateTask   TransactionKind = "CreateTask"
	KindAssignTask   TransactionKind = "AssignTask"
	KindCompleteTask TransactionKind = "CompleteTask"
	KindUpdateTask   TransactionKind = "UpdateTask"
	KindDeleteTask   TransactionKind = "DeleteTask"
	KindCreateUser   TransactionKind = "CreateUser"
	KindUpdateUser   TransactionKind = "UpdateUser"
	KindDeleteUser   TransactionKind = "DeleteUser"
)

// TransactionKinds lists every accepted kind.
var TransactionKinds = []TransactionKind{
	KindBootstrap,
	KindCreateTask,
	KindAssignTask,
	KindCompleteTask,
	KindUpdateTask,
	KindDeleteTask,
	KindCreateUser,
	KindUpdateUser,
	KindDeleteUser,
}

func (k TransactionKind) Valid() bool {
	for _, kind := range TransactionKinds {
		if k == kind {
			return true
		}
	}
	return false
}

// Transaction is the envelope the hosting system supplies with every operation.
type Transaction struct {
	ID        string
	Timestamp time.Time
	Executor  *User
}

// ExecutorRef is the zero Ref when no executor is present.
func (t Transaction) ExecutorRef() Ref {
	return t.Executor.Ref()
}

type Bootstrap struct {
	Transaction
}

type CreateTask struct {
	Transaction
	TaskID   string
	TaskName string

	TaskDuration *Duration
	TaskEnergy   *Energy
	TaskLocation *string
	TaskTags     []string
	TaskNotes    *string
	TaskDue      *time.Time
	TaskAssignee *Ref
}

type AssignTask struct {
	Transaction
	Task         *Task
	TaskAssignee *Ref
}

type CompleteTask struct {
	Transaction
	Task *Task
}

// UpdateTask overwrites every field that is non-nil. A non-nil empty value
// clears the field; a zero TaskAssignee unassigns.
type UpdateTask struct {
	Transaction
	Task *Task

	TaskName     *string
	TaskLocation *string
	TaskDue      *time.Time
	TaskDuration *Duration
	TaskEnergy   *Energy
	TaskState    *TaskState
	TaskTags     []string
	TaskNotes    *string
	TaskAssignee *Ref
}

type DeleteTask struct {
	Transaction
	Task *Task
}

type CreateUser struct {
	Transaction
	UserEmail     string
	UserFirstName *string
	UserLastName  *string
	UserPassword  *string
}

type UpdateUser struct {
	Transaction
	User          *User
	UserFirstName *string
	UserLastName  *string
	UserPassword  *string
}

type DeleteUser struct {
	Transaction
	User *User
}
