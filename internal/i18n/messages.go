// Package i18n хранит тексты интерфейса: встроенные английские и переопределения из файла.
package i18n

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed messages.en.yml
var defaultMessages []byte

type Messages struct {
	texts map[string]string
}

// Default - встроенный английский каталог.
func Default() *Messages {
	m, err := parse(defaultMessages)
	if err != nil {
		panic(fmt.Sprintf("встроенный каталог сообщений: %v", err))
	}
	return m
}

// Load читает переопределения из path поверх встроенного каталога. Пустой path - только встроенный.
func Load(path string) (*Messages, error) {
	m := Default()
	if path == "" {
		return m, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("чтение каталога сообщений: %w", err)
	}
	overrides, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("каталог %s: %w", path, err)
	}
	for k, v := range overrides.texts {
		m.texts[k] = v
	}
	return m, nil
}

func parse(data []byte) (*Messages, error) {
	texts := make(map[string]string)
	if err := yaml.Unmarshal(data, &texts); err != nil {
		return nil, fmt.Errorf("разбор yaml: %w", err)
	}
	return &Messages{texts: texts}, nil
}

// Text возвращает текст по ключу; неизвестный ключ возвращается как есть.
func (m *Messages) Text(key string) string {
	if t, ok := m.texts[key]; ok {
		return t
	}
	return key
}

func (m *Messages) Textf(key string, args ...any) string {
	return fmt.Sprintf(m.Text(key), args...)
}

// Sentinel распознаёт тело ответа бэкенда, состоящее из одного ключа каталога.
func (m *Messages) Sentinel(body string) (string, bool) {
	key := strings.TrimSpace(body)
	if key == "" || strings.ContainsAny(key, " \n") {
		return "", false
	}
	t, ok := m.texts[key]
	return t, ok
}

func (m *Messages) Has(key string) bool {
	_, ok := m.texts[key]
	return ok
}
