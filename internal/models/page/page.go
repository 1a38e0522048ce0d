package page

import (
	"encoding/json"
	"fmt"
	"io"
)

// Page - страница результатов поиска. Пустой Content - отдельное допустимое состояние.
type Page[T any] struct {
	Content       []T `json:"content"`
	PageNumber    int `json:"pageNumber"`
	PageSize      int `json:"pageSize"`
	TotalPages    int `json:"totalPages"`
	TotalElements int `json:"totalElements"`
}

type Meta struct {
	PageNumber    int
	PageSize      int
	TotalPages    int
	TotalElements int
}

func (p *Page[T]) Meta() Meta {
	return Meta{
		PageNumber:    p.PageNumber,
		PageSize:      p.PageSize,
		TotalPages:    p.TotalPages,
		TotalElements: p.TotalElements,
	}
}

func (p *Page[T]) Empty() bool {
	return len(p.Content) == 0
}

func (p *Page[T]) Validate() error {
	return p.Meta().Validate()
}

func (m Meta) Validate() error {
	if m.PageNumber < 0 || m.PageSize < 0 || m.TotalPages < 0 || m.TotalElements < 0 {
		return fmt.Errorf("отрицательные значения пагинации: %+v", m)
	}
	if m.TotalPages > 0 && m.PageNumber >= m.TotalPages {
		return fmt.Errorf("номер страницы %d вне диапазона (всего %d)", m.PageNumber, m.TotalPages)
	}
	return nil
}

// Decode разбирает страницу и проверяет каждый элемент через check (может быть nil).
func Decode[T any](r io.Reader, check func(*T) error) (*Page[T], error) {
	var p Page[T]
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return nil, fmt.Errorf("декодирование страницы: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if check != nil {
		for i := range p.Content {
			if err := check(&p.Content[i]); err != nil {
				return nil, fmt.Errorf("элемент %d: %w", i, err)
			}
		}
	}
	return &p, nil
}
