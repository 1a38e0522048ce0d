// Package dom держит серверную копию страницы браузера и операции над ней.
package dom

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

type Document struct {
	root *html.Node
}

func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("разбор страницы: %w", err)
	}
	return &Document{root: root}, nil
}

func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

func (d *Document) Root() *html.Node {
	return d.root
}

func (d *Document) ByID(id string) *html.Node {
	return First(d.root, ByID(id))
}

func (d *Document) Query(s Selector) *html.Node {
	return s.First(d.root)
}

func (d *Document) QueryAll(s Selector) []*html.Node {
	return s.All(d.root)
}

// Meta возвращает content тега <meta name=...>.
func (d *Document) Meta(name string) string {
	n := First(d.root, All(ByTag("meta"), ByAttr("name", name)))
	if n == nil {
		return ""
	}
	return Attr(n, "content")
}

type Matcher func(*html.Node) bool

func ByID(id string) Matcher {
	return ByAttr("id", id)
}

func ByTag(tag string) Matcher {
	return func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == tag
	}
}

func ByClass(class string) Matcher {
	return func(n *html.Node) bool {
		return n.Type == html.ElementNode && HasClass(n, class)
	}
}

func ByAttr(key, val string) Matcher {
	return func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return false
		}
		v, ok := lookup(n, key)
		return ok && v == val
	}
}

func All(ms ...Matcher) Matcher {
	return func(n *html.Node) bool {
		for _, m := range ms {
			if !m(n) {
				return false
			}
		}
		return true
	}
}

// First - первый потомок n в порядке документа, подходящий под m.
func First(n *html.Node, m Matcher) *html.Node {
	if n == nil {
		return nil
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if m(c) {
			return c
		}
		if found := First(c, m); found != nil {
			return found
		}
	}
	return nil
}

func FindAll(n *html.Node, m Matcher) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(p *html.Node) {
		for c := p.FirstChild; c != nil; c = c.NextSibling {
			if m(c) {
				out = append(out, c)
			}
			walk(c)
		}
	}
	if n != nil {
		walk(n)
	}
	return out
}

func lookup(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func Attr(n *html.Node, key string) string {
	v, _ := lookup(n, key)
	return v
}

func HasAttr(n *html.Node, key string) bool {
	_, ok := lookup(n, key)
	return ok
}

func SetAttr(n *html.Node, key, val string) {
	for i := range n.Attr {
		if n.Attr[i].Namespace == "" && n.Attr[i].Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func RemoveAttr(n *html.Node, key string) {
	attrs := n.Attr[:0]
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			continue
		}
		attrs = append(attrs, a)
	}
	n.Attr = attrs
}

func Classes(n *html.Node) []string {
	return strings.Fields(Attr(n, "class"))
}

func HasClass(n *html.Node, class string) bool {
	for _, c := range Classes(n) {
		if c == class {
			return true
		}
	}
	return false
}

func AddClass(n *html.Node, classes ...string) {
	current := Classes(n)
	for _, class := range classes {
		if !HasClass(n, class) {
			current = append(current, class)
			SetAttr(n, "class", strings.Join(current, " "))
		}
	}
}

func RemoveClass(n *html.Node, classes ...string) {
	if !HasAttr(n, "class") {
		return
	}
	drop := make(map[string]bool, len(classes))
	for _, c := range classes {
		drop[c] = true
	}
	var kept []string
	for _, c := range Classes(n) {
		if !drop[c] {
			kept = append(kept, c)
		}
	}
	SetAttr(n, "class", strings.Join(kept, " "))
}

func ToggleClass(n *html.Node, class string, on bool) {
	if on {
		AddClass(n, class)
		return
	}
	RemoveClass(n, class)
}

// Text - склеенный текст всех текстовых потомков.
func Text(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(p *html.Node) {
		if p.Type == html.TextNode {
			b.WriteString(p.Data)
		}
		for c := p.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func Clear(n *html.Node) {
	for n.FirstChild != nil {
		n.RemoveChild(n.FirstChild)
	}
}

func SetText(n *html.Node, s string) {
	Clear(n)
	n.AppendChild(&html.Node{Type: html.TextNode, Data: s})
}

// NewElement создаёт элемент tag с текстом text (пустой текст - без дочерних узлов).
func NewElement(tag, text string) *html.Node {
	n := &html.Node{Type: html.ElementNode, Data: tag, DataAtom: atom.Lookup([]byte(tag))}
	if text != "" {
		n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	}
	return n
}

// ParseFragment разбирает фрагмент в контексте узла parent (важно для <tr>, <li>).
func ParseFragment(parent *html.Node, s string) ([]*html.Node, error) {
	ctx := parent
	if ctx == nil || ctx.Type != html.ElementNode {
		ctx = &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	} else if ctx.DataAtom == 0 {
		ctx = &html.Node{Type: html.ElementNode, Data: ctx.Data, DataAtom: atom.Lookup([]byte(ctx.Data))}
	}
	nodes, err := html.ParseFragment(strings.NewReader(s), ctx)
	if err != nil {
		return nil, fmt.Errorf("разбор фрагмента: %w", err)
	}
	return nodes, nil
}

// ParseElement разбирает фрагмент и возвращает его единственный корневой элемент.
func ParseElement(parent *html.Node, s string) (*html.Node, error) {
	nodes, err := ParseFragment(parent, s)
	if err != nil {
		return nil, err
	}
	var el *html.Node
	for _, n := range nodes {
		if n.Type != html.ElementNode {
			continue
		}
		if el != nil {
			return nil, fmt.Errorf("фрагмент содержит больше одного элемента")
		}
		el = n
	}
	if el == nil {
		return nil, fmt.Errorf("фрагмент не содержит элементов")
	}
	return el, nil
}

func SetInnerHTML(n *html.Node, s string) error {
	nodes, err := ParseFragment(n, s)
	if err != nil {
		return err
	}
	Clear(n)
	for _, c := range nodes {
		n.AppendChild(c)
	}
	return nil
}

// Elements - дочерние элементы n без текстовых узлов.
func Elements(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, c)
		}
	}
	return out
}

// Index - позиция n среди элементов-братьев, -1 без родителя.
func Index(n *html.Node) int {
	if n.Parent == nil {
		return -1
	}
	for i, c := range Elements(n.Parent) {
		if c == n {
			return i
		}
	}
	return -1
}

func Detach(n *html.Node) {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// InsertAt вставляет child на позицию i среди элементов parent; i вне диапазона - в конец.
func InsertAt(parent, child *html.Node, i int) {
	Detach(child)
	els := Elements(parent)
	if i < 0 || i >= len(els) {
		parent.AppendChild(child)
		return
	}
	parent.InsertBefore(child, els[i])
}

// Replace ставит next на место old; old отсоединяется.
func Replace(old, next *html.Node) {
	if old.Parent == nil {
		return
	}
	Detach(next)
	old.Parent.InsertBefore(next, old)
	old.Parent.RemoveChild(old)
}

// Show управляет свойством display в style, остальные объявления не трогает.
func Show(n *html.Node, visible bool) {
	var decls []string
	for _, d := range strings.Split(Attr(n, "style"), ";") {
		d = strings.TrimSpace(d)
		if d == "" {
			continue
		}
		if k, _, ok := strings.Cut(d, ":"); ok && strings.TrimSpace(k) == "display" {
			continue
		}
		decls = append(decls, d)
	}
	if !visible {
		decls = append(decls, "display: none")
	}
	if len(decls) == 0 {
		RemoveAttr(n, "style")
		return
	}
	SetAttr(n, "style", strings.Join(decls, "; ")+";")
}

func Visible(n *html.Node) bool {
	for _, d := range strings.Split(Attr(n, "style"), ";") {
		k, v, ok := strings.Cut(d, ":")
		if ok && strings.TrimSpace(k) == "display" && strings.TrimSpace(v) == "none" {
			return false
		}
	}
	return true
}

// Render - внешний HTML узла.
func Render(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", fmt.Errorf("отрисовка узла: %w", err)
	}
	return buf.String(), nil
}

func InnerHTML(n *html.Node) (string, error) {
	var buf bytes.Buffer
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", fmt.Errorf("отрисовка узла: %w", err)
		}
	}
	return buf.String(), nil
}
