package task

import (
	"fmt"
	"strings"
	"time"
)

type ClientRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Task - копия задачи, восстановленная из ответа бэкенда. Только для отрисовки.
type Task struct {
	ID             int64       `json:"id"`
	Title          string      `json:"title"`
	Description    string      `json:"description,omitempty"`
	Deadline       *Timestamp  `json:"deadline,omitempty"`
	Status         Status      `json:"status"`
	Hidden         bool        `json:"hidden"`
	Billable       bool        `json:"billable"`
	BillingType    BillingType `json:"billingType,omitempty"`
	HoursWorked    float64     `json:"hoursWorked"`
	HourlyRate     float64     `json:"hourlyRate"`
	FixedAmount    float64     `json:"fixedAmount"`
	AdvancePayment float64     `json:"advancePayment"`
	Total          float64     `json:"total"`
	RemainingDue   float64     `json:"remainingDue"`
	Color          string      `json:"color,omitempty"`
	OrderIndex     int         `json:"orderIndex"`
	Client         *ClientRef  `json:"client,omitempty"`
}

func (t *Task) Validate() error {
	if t.ID <= 0 {
		return fmt.Errorf("неверный id задачи: %d", t.ID)
	}
	if !t.Status.Valid() {
		return fmt.Errorf("задача %d: неизвестный статус %q", t.ID, t.Status)
	}
	if t.BillingType == "" {
		t.BillingType = BillingHourly
	}
	if t.BillingType != BillingHourly && t.BillingType != BillingFixed {
		return fmt.Errorf("задача %d: неизвестный тип оплаты %q", t.ID, t.BillingType)
	}
	if t.OrderIndex < 0 {
		return fmt.Errorf("задача %d: отрицательный orderIndex", t.ID)
	}
	return nil
}

func (t *Task) BillingFieldsMeaningful() bool {
	return t.Billable
}

func (t *Task) HourlyFieldsMeaningful() bool {
	return t.Billable && t.BillingType != BillingFixed
}

func (t *Task) FixedAmountMeaningful() bool {
	return t.Billable && t.BillingType == BillingFixed
}

func (t *Task) ClientName() string {
	if t.Client == nil {
		return ""
	}
	return t.Client.Name
}

// Timestamp - LocalDateTime бэкенда без зоны ("2006-01-02T15:04:05").
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func ParseTimestamp(s string) (Timestamp, error) {
	s = strings.TrimSpace(s)
	// дробные секунды LocalDateTime
	if i := strings.IndexByte(s, '.'); i == len("2006-01-02T15:04:05") && !strings.ContainsAny(s[i:], "Z+") {
		s = s[:i]
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Timestamp{Time: t}, nil
		}
	}
	return Timestamp{}, fmt.Errorf("неверный формат даты %q", s)
}

func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	if raw == "" || raw == "null" {
		return nil
	}
	parsed, err := ParseTimestamp(raw)
	if err != nil {
		return err
	}
	*ts = parsed
	return nil
}

func (ts Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(`"` + ts.Format("2006-01-02T15:04:05") + `"`), nil
}
