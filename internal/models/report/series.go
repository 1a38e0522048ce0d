package report

import (
	"encoding/json"
	"fmt"
	"io"
)

// Series - данные графика отчёта.
type Series struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

func Decode(r io.Reader) (*Series, error) {
	var s Series
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("декодирование отчёта: %w", err)
	}
	if len(s.Labels) != len(s.Values) {
		return nil, fmt.Errorf("отчёт: %d подписей и %d значений", len(s.Labels), len(s.Values))
	}
	return &s, nil
}
