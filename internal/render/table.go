package render

import (
	"fmt"
	"strconv"

	"golang.org/x/net/html"

	"taskBoard/internal/dom"
)

// View - где на странице живёт таблица и связанные с ней блоки.
// Обязателен только Body; отсутствующие блоки пропускаются.
type View struct {
	Table      dom.Selector
	Body       dom.Selector
	Empty      dom.Selector
	Pagination dom.Selector
}

var (
	TasksView = View{
		Table:      dom.MustCompile("#tasksTable"),
		Body:       dom.MustCompile("#tasksTable tbody"),
		Empty:      dom.MustCompile(".alert-info"),
		Pagination: dom.MustCompile(".pagination-container"),
	}
	ClientsView = View{
		Table:      dom.MustCompile("#clientsTable"),
		Body:       dom.MustCompile("#clientsTable tbody"),
		Empty:      dom.MustCompile(".alert-info"),
		Pagination: dom.MustCompile(".pagination-container"),
	}
	UsersView = View{
		Table:      dom.MustCompile("#userTable"),
		Body:       dom.MustCompile("#userTable tbody"),
		Empty:      dom.MustCompile(".alert-info"),
		Pagination: dom.MustCompile(".pagination-container"),
	}
)

// RowFunc строит HTML строки для одного элемента.
type RowFunc[T any] func(T) (string, error)

func (v View) body(doc *dom.Document) (*html.Node, error) {
	body := doc.Query(v.Body)
	if body == nil {
		return nil, fmt.Errorf("на странице нет контейнера %s", v.Body)
	}
	return body, nil
}

func (v View) show(doc *dom.Document, sel dom.Selector, visible bool) {
	if sel.String() == "" {
		return
	}
	if n := doc.Query(sel); n != nil {
		dom.Show(n, visible)
	}
}

// SetEmpty переключает состояние "нет результатов".
func (v View) SetEmpty(doc *dom.Document, empty bool) {
	v.show(doc, v.Table, !empty)
	v.show(doc, v.Pagination, !empty)
	v.show(doc, v.Empty, empty)
}

// Render очищает контейнер и строит строки заново из items.
// Пустой список - отдельное состояние, а не ошибка.
func Render[T any](doc *dom.Document, v View, items []T, row RowFunc[T]) error {
	body, err := v.body(doc)
	if err != nil {
		return err
	}
	dom.Clear(body)
	if len(items) == 0 {
		v.SetEmpty(doc, true)
		return nil
	}
	for i, item := range items {
		markup, err := row(item)
		if err != nil {
			return fmt.Errorf("строка %d: %w", i, err)
		}
		el, err := dom.ParseElement(body, markup)
		if err != nil {
			return fmt.Errorf("строка %d: %w", i, err)
		}
		body.AppendChild(el)
	}
	v.SetEmpty(doc, false)
	return nil
}

// PatchRow обновляет строку с тем же data-id на месте. false - строки нет на странице.
func PatchRow[T any](doc *dom.Document, v View, id string, item T, row RowFunc[T]) (bool, error) {
	body, err := v.body(doc)
	if err != nil {
		return false, err
	}
	existing := FindRow(body, id)
	if existing == nil {
		return false, nil
	}
	markup, err := row(item)
	if err != nil {
		return false, err
	}
	next, err := dom.ParseElement(body, markup)
	if err != nil {
		return false, err
	}
	dom.Morph(existing, next)
	return true, nil
}

// RemoveRow удаляет строку; если строк не осталось, включается состояние "нет результатов".
func RemoveRow(doc *dom.Document, v View, id string) (bool, error) {
	body, err := v.body(doc)
	if err != nil {
		return false, err
	}
	existing := FindRow(body, id)
	if existing == nil {
		return false, nil
	}
	dom.Detach(existing)
	if len(dom.Elements(body)) == 0 {
		v.SetEmpty(doc, true)
	}
	return true, nil
}

// AppendRow добавляет строку в конец таблицы.
func AppendRow[T any](doc *dom.Document, v View, item T, row RowFunc[T]) error {
	body, err := v.body(doc)
	if err != nil {
		return err
	}
	markup, err := row(item)
	if err != nil {
		return err
	}
	el, err := dom.ParseElement(body, markup)
	if err != nil {
		return err
	}
	body.AppendChild(el)
	v.SetEmpty(doc, false)
	return nil
}

func FindRow(container *html.Node, id string) *html.Node {
	for _, el := range dom.Elements(container) {
		if dom.Attr(el, "data-id") == id {
			return el
		}
	}
	return nil
}

// IDs - data-id дочерних элементов контейнера по порядку.
func IDs(container *html.Node) []string {
	var ids []string
	for _, el := range dom.Elements(container) {
		if id, ok := attrValue(el, "data-id"); ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// IntIDs - то же, что IDs, для числовых идентификаторов.
func IntIDs(container *html.Node) ([]int64, error) {
	raw := IDs(container)
	out := make([]int64, 0, len(raw))
	for _, s := range raw {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("неверный data-id %q: %w", s, err)
		}
		out = append(out, id)
	}
	return out, nil
}

func attrValue(n *html.Node, key string) (string, bool) {
	if !dom.HasAttr(n, key) {
		return "", false
	}
	return dom.Attr(n, key), true
}
