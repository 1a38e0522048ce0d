// Package validate содержит правила проверки полей форм.
// Все проверки чистые: значение обрезается, пустое необязательное поле считается корректным.
package validate

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf16"

	"golang.org/x/net/html"

	"taskBoard/internal/dom"
)

// InvalidClass - CSS-класс, которым помечается некорректное поле.
const InvalidClass = "is-invalid"

const companyNameMaxLen = 100

var (
	emailPattern       = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern       = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)
	logoURLPattern     = regexp.MustCompile(`(?i)^(https?://)?([\w\-]+\.)+[\w\-]+(/[\w\- ./?%&=]*)?$`)
	clientEmailPattern = regexp.MustCompile(`^[A-Za-z0-9+_.\-]+@(.+)$`)
	clientPhonePattern = regexp.MustCompile(`^(\+?\d{1,3}[\- ]?)?\(?\d{3}\)?[\- ]?\d{3}[\- ]?\d{4}$`)
	usernamePattern    = regexp.MustCompile(`^[A-Za-z0-9_\-]+$`)
)

func CompanyName(v string) bool {
	v = strings.TrimSpace(v)
	if v == "" {
		return true
	}
	n := textLength(v)
	return n >= 1 && n <= companyNameMaxLen
}

// textLength - длина в кодовых единицах UTF-16, как её считает поле формы в браузере:
// символ вне BMP (эмодзи) занимает две единицы.
func textLength(s string) int {
	return len(utf16.Encode([]rune(s)))
}

func Email(v string) bool {
	return optional(v, emailPattern)
}

func Phone(v string) bool {
	return optional(v, phonePattern)
}

func LogoURL(v string) bool {
	return optional(v, logoURLPattern)
}

// ClientEmail - более мягкое правило страницы клиентов.
func ClientEmail(v string) bool {
	return optional(v, clientEmailPattern)
}

func ClientPhone(v string) bool {
	return optional(v, clientPhonePattern)
}

func optional(v string, re *regexp.Regexp) bool {
	v = strings.TrimSpace(v)
	return v == "" || re.MatchString(v)
}

// NormalizeUsername удаляет пробелы так же, как это делает поле при вводе.
func NormalizeUsername(v string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, v)
}

// Username - обязательное поле регистрации.
func Username(v string) bool {
	v = NormalizeUsername(v)
	return v != "" && !strings.Contains(v, "@") && usernamePattern.MatchString(v)
}

// Mark ставит или снимает класс некорректного поля. Значение поля не меняется.
func Mark(n *html.Node, ok bool) {
	if n == nil {
		return
	}
	dom.ToggleClass(n, InvalidClass, !ok)
}
