package task

import "fmt"

type Status string

const (
	StatusTodo       Status = "TODO"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
)

// Statuses в порядке колонок доски.
var Statuses = []Status{StatusTodo, StatusInProgress, StatusCompleted}

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusTodo, StatusInProgress, StatusCompleted:
		return Status(s), nil
	}
	return "", fmt.Errorf("неизвестный статус %q", s)
}

func (s Status) Valid() bool {
	_, err := ParseStatus(string(s))
	return err == nil
}

// Column - id колонки доски, в которую проецируется статус.
func (s Status) Column() string {
	switch s {
	case StatusTodo:
		return "todo-column"
	case StatusInProgress:
		return "in-progress-column"
	case StatusCompleted:
		return "completed-column"
	}
	return ""
}

func StatusFromColumn(column string) (Status, error) {
	for _, s := range Statuses {
		if s.Column() == column {
			return s, nil
		}
	}
	return "", fmt.Errorf("неизвестная колонка %q", column)
}

func (s Status) CSSClass() string {
	switch s {
	case StatusTodo:
		return "status-todo"
	case StatusInProgress:
		return "status-in-progress"
	}
	return "status-completed"
}

// MessageKey - ключ перевода статуса ("todo", "in_progress", "completed").
func (s Status) MessageKey() string {
	switch s {
	case StatusTodo:
		return "todo"
	case StatusInProgress:
		return "in_progress"
	case StatusCompleted:
		return "completed"
	}
	return string(s)
}

type BillingType string

const (
	BillingHourly BillingType = "HOURLY"
	BillingFixed  BillingType = "FIXED"
)
