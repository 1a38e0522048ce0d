package task

import (
	"encoding/json"
	"fmt"
	"io"
)

// DecodeTask разбирает и проверяет задачу из ответа бэкенда.
func DecodeTask(r io.Reader) (*Task, error) {
	var t Task
	if err := json.NewDecoder(r).Decode(&t); err != nil {
		return nil, fmt.Errorf("декодирование задачи: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}
