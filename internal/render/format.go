package render

import (
	"fmt"
	"html"
	"html/template"
	"math"
	"regexp"
	"strconv"
	"strings"

	"taskBoard/internal/models/task"
)

// NA - заполнитель для отсутствующих необязательных полей.
const NA = "N/A"

const (
	cardExcerptLen = 30
	rowExcerptLen  = 50
	defaultColor   = "#FFFFFF"
)

var colorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{3,8}$`)

// FormatDate - DD/MM/YYYY; пустая строка для отсутствующей даты.
func FormatDate(ts *task.Timestamp) string {
	if ts == nil || ts.IsZero() {
		return ""
	}
	return ts.Format("02/01/2006")
}

func FormatCurrency(symbol string, v float64) string {
	return symbol + strconv.FormatFloat(v, 'f', 2, 64)
}

// FormatHours - целое без дробной части, иначе один знак после запятой.
func FormatHours(v float64) string {
	if v == math.Trunc(v) {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	return strconv.FormatFloat(v, 'f', 1, 64)
}

func Placeholder(s string) string {
	if strings.TrimSpace(s) == "" {
		return NA
	}
	return s
}

// Excerpt обрезает описание до n символов с "...";
// короткое описание показывается целиком с переносами строк.
func Excerpt(desc string, n int, noDescription string) template.HTML {
	if desc == "" {
		return template.HTML(html.EscapeString(noDescription))
	}
	runes := []rune(desc)
	if len(runes) > n {
		return template.HTML(html.EscapeString(string(runes[:n])) + "...")
	}
	escaped := html.EscapeString(desc)
	return template.HTML(strings.ReplaceAll(escaped, "\n", "<br>"))
}

// SafeColor пропускает только hex-цвета.
func SafeColor(c string) string {
	if colorPattern.MatchString(c) {
		return c
	}
	return defaultColor
}

func backgroundStyle(color string) template.CSS {
	return template.CSS(fmt.Sprintf("background-color: %s", SafeColor(color)))
}
