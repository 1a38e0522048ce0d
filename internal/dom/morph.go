package dom

import "golang.org/x/net/html"

// Morph переносит содержимое src в dst, сохраняя узлы dst там, где структура совпадает.
// Сам dst остаётся тем же узлом; src после вызова использовать нельзя.
func Morph(dst, src *html.Node) {
	dst.Attr = append([]html.Attribute(nil), src.Attr...)

	dc, sc := childNodes(dst), childNodes(src)
	if sameShape(dc, sc) {
		for i := range dc {
			switch dc[i].Type {
			case html.ElementNode:
				Morph(dc[i], sc[i])
			default:
				dc[i].Data = sc[i].Data
			}
		}
		return
	}

	Clear(dst)
	for src.FirstChild != nil {
		c := src.FirstChild
		src.RemoveChild(c)
		dst.AppendChild(c)
	}
}

func childNodes(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, c)
	}
	return out
}

func sameShape(a, b []*html.Node) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Type != b[i].Type {
			return false
		}
		if a[i].Type == html.ElementNode && a[i].Data != b[i].Data {
			return false
		}
	}
	return true
}
