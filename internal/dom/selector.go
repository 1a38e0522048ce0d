package dom

import (
	"fmt"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// Selector - скомпилированный CSS-селектор вместе с исходной строкой,
// которая служит ключом фрагмента в ответе.
type Selector struct {
	raw string
	sel cascadia.Sel
}

func Compile(sel string) (Selector, error) {
	compiled, err := cascadia.Parse(sel)
	if err != nil {
		return Selector{}, fmt.Errorf("селектор %q: %w", sel, err)
	}
	return Selector{raw: sel, sel: compiled}, nil
}

func MustCompile(sel string) Selector {
	s, err := Compile(sel)
	if err != nil {
		panic(err)
	}
	return s
}

func (s Selector) String() string {
	return s.raw
}

func (s Selector) First(n *html.Node) *html.Node {
	return First(n, s.Match)
}

func (s Selector) All(n *html.Node) []*html.Node {
	return FindAll(n, s.Match)
}

func (s Selector) Match(n *html.Node) bool {
	if s.sel == nil || n.Type != html.ElementNode {
		return false
	}
	return s.sel.Match(n)
}
