package dom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const page = `<!DOCTYPE html><html><head>
<meta name="_csrf" content="tok-1"><meta name="_csrf_header" content="X-CSRF-TOKEN">
</head><body>
<div id="board">
  <div class="task-list" id="todo-column">
    <div class="task-card collapsed" data-id="7"><h6>a</h6></div>
    <div class="task-card collapsed" data-id="42"><h6>b</h6></div>
  </div>
</div>
<table id="tasksTable"><tbody><tr data-id="1"><td>x</td></tr></tbody></table>
</body></html>`

func mustDoc(t *testing.T) *Document {
	t.Helper()
	doc, err := ParseString(page)
	require.NoError(t, err)
	return doc
}

func TestMeta(t *testing.T) {
	doc := mustDoc(t)
	assert.Equal(t, "tok-1", doc.Meta("_csrf"))
	assert.Equal(t, "X-CSRF-TOKEN", doc.Meta("_csrf_header"))
	assert.Empty(t, doc.Meta("missing"))
}

func TestSelector(t *testing.T) {
	doc := mustDoc(t)

	tests := []struct {
		name     string
		selector string
		expected int
	}{
		{name: "success - id", selector: "#todo-column", expected: 1},
		{name: "success - class", selector: ".task-card", expected: 2},
		{name: "success - compound class", selector: "div.task-card.collapsed", expected: 2},
		{name: "success - attr value", selector: `.task-card[data-id="42"]`, expected: 1},
		{name: "success - attr presence", selector: "[data-id]", expected: 3},
		{name: "success - descendant", selector: "#tasksTable tbody tr", expected: 1},
		{name: "success - no match", selector: "#board tr", expected: 0},
		{name: "success - child combinator", selector: "#todo-column > .task-card", expected: 2},
		{name: "success - negation", selector: `.task-card:not([data-id="7"])`, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel, err := Compile(tt.selector)
			require.NoError(t, err)
			assert.Len(t, doc.QueryAll(sel), tt.expected)
		})
	}
}

func TestCompileErrors(t *testing.T) {
	for _, sel := range []string{"", "div[", "a]", ".", "[=x]"} {
		assert.Panics(t, func() { MustCompile(sel) }, sel)
		_, err := Compile(sel)
		assert.Error(t, err, sel)
	}
}

func TestClasses(t *testing.T) {
	doc := mustDoc(t)
	card := doc.Query(MustCompile(`[data-id="7"]`))
	require.NotNil(t, card)

	AddClass(card, "is-invalid")
	AddClass(card, "is-invalid")
	assert.Equal(t, "task-card collapsed is-invalid", Attr(card, "class"))

	ToggleClass(card, "is-invalid", false)
	assert.False(t, HasClass(card, "is-invalid"))
	assert.True(t, HasClass(card, "collapsed"))
}

func TestMoveNodes(t *testing.T) {
	doc := mustDoc(t)
	col := doc.ByID("todo-column")
	cards := Elements(col)
	require.Len(t, cards, 2)

	InsertAt(col, cards[1], 0)
	assert.Equal(t, 0, Index(cards[1]))
	assert.Equal(t, 1, Index(cards[0]))

	InsertAt(col, cards[1], 10)
	assert.Equal(t, 1, Index(cards[1]))

	Detach(cards[0])
	assert.Equal(t, -1, Index(cards[0]))
	assert.Len(t, Elements(col), 1)
}

func TestReplaceAndFragments(t *testing.T) {
	doc := mustDoc(t)
	tbody := doc.Query(MustCompile("#tasksTable tbody"))
	require.NotNil(t, tbody)

	row, err := ParseElement(tbody, `<tr data-id="2"><td>y</td></tr>`)
	require.NoError(t, err)
	Replace(Elements(tbody)[0], row)

	out, err := InnerHTML(tbody)
	require.NoError(t, err)
	assert.Equal(t, `<tr data-id="2"><td>y</td></tr>`, out)

	_, err = ParseElement(tbody, `<tr></tr><tr></tr>`)
	assert.Error(t, err)
}

func TestShow(t *testing.T) {
	doc := mustDoc(t)
	table := doc.ByID("tasksTable")
	SetAttr(table, "style", "color: red")

	Show(table, false)
	assert.False(t, Visible(table))
	assert.Equal(t, "color: red; display: none;", Attr(table, "style"))

	Show(table, true)
	assert.True(t, Visible(table))
	assert.Equal(t, "color: red;", Attr(table, "style"))
}

func TestSetText(t *testing.T) {
	doc := mustDoc(t)
	card := doc.Query(MustCompile(`[data-id="42"] h6`))
	SetText(card, "<b>")
	out, err := Render(card)
	require.NoError(t, err)
	assert.Equal(t, "<h6>&lt;b&gt;</h6>", out)
	assert.Equal(t, "<b>", Text(card))
}

func TestMorphKeepsIdentity(t *testing.T) {
	doc, err := ParseString(`<table><tbody><tr data-id="1" class="old"><td>a</td><td><i class="edit"></i></td></tr></tbody></table>`)
	require.NoError(t, err)
	tbody := doc.Query(MustCompile("tbody"))
	row := Elements(tbody)[0]
	firstCell := Elements(row)[0]
	actions := Elements(row)[1]

	next, err := ParseElement(tbody, `<tr data-id="1"><td>b</td><td><i class="edit"></i><i class="unhide"></i></td></tr>`)
	require.NoError(t, err)
	Morph(row, next)

	assert.Same(t, row, Elements(tbody)[0])
	assert.Same(t, firstCell, Elements(row)[0])
	assert.Same(t, actions, Elements(row)[1])
	assert.Equal(t, "b", Text(firstCell))
	assert.Len(t, Elements(actions), 2)
	assert.False(t, HasAttr(row, "class"))
}
