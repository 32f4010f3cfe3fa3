package preview

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uiforge/internal/common/errors"
	"uiforge/internal/storage"
)

func renderString(t *testing.T, session *storage.Session) string {
	t.Helper()
	doc, err := Render(session)
	require.NoError(t, err)
	return string(doc)
}

func TestRenderDocument(t *testing.T) {
	session := &storage.Session{
		Title: "Pricing card",
		Code: storage.ComponentCode{
			JSX: "export default function Card() {\n  return <div className=\"p-4\">hi</div>\n}",
			CSS: ".extra { color: blue }",
		},
	}

	doc := renderString(t, session)

	assert.Contains(t, doc, "<title>Pricing card</title>")
	assert.Contains(t, doc, "react.production.min.js")
	assert.Contains(t, doc, "react-dom.production.min.js")
	assert.Contains(t, doc, "babel.min.js")
	assert.Contains(t, doc, "cdn.tailwindcss.com")
	assert.Contains(t, doc, `<script type="text/babel"`)
	assert.Contains(t, doc, ".extra { color: blue }")
	assert.Contains(t, doc, "error-overlay")
}

func TestRenderNoCode(t *testing.T) {
	_, err := Render(&storage.Session{Title: "Empty"})
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeValidation))
}

func TestRenderNeutralizesScriptClose(t *testing.T) {
	session := &storage.Session{
		Code: storage.ComponentCode{
			JSX: "export default function X() {\n  return <div>{'</script><script>alert(1)'}</div>\n}",
		},
	}

	doc := renderString(t, session)

	assert.NotContains(t, doc, "</script><script>alert(1)")
	assert.Contains(t, doc, "<\\/script>")
}

func TestRenderEscapesTitle(t *testing.T) {
	session := &storage.Session{
		Title: `<img src=x onerror=alert(1)>`,
		Code:  storage.ComponentCode{JSX: "export default function X() { return <b/> }"},
	}

	doc := renderString(t, session)
	assert.NotContains(t, doc, "<img src=x")
	assert.Contains(t, doc, "&lt;img")
}

func TestRenderDefaultTitle(t *testing.T) {
	session := &storage.Session{
		Code: storage.ComponentCode{JSX: "export default function X() { return <b/> }"},
	}

	doc := renderString(t, session)
	assert.Contains(t, doc, "<title>"+storage.DefaultTitle+"</title>")
}

func TestPrepareSourceRewritesExports(t *testing.T) {
	src := prepareSource("import React from 'react'\nexport default function Card() {\n  return <b/>\n}")

	assert.NotContains(t, src, "import React")
	assert.NotContains(t, src, "export default")
	assert.Contains(t, src, "__defaultExport = function Card()")
	assert.Contains(t, src, "ReactDOM.createRoot")
}

func TestPrepareSourceNamedExport(t *testing.T) {
	src := prepareSource("export const Badge = () => <span/>")

	assert.NotContains(t, src, "export const")
	assert.Contains(t, src, "const Badge = () => <span/>")
	assert.Contains(t, src, "__lastDeclared = Badge")
}

func TestLastDeclaredComponent(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"function declaration", "function Card() {}", "Card"},
		{"arrow const", "const Hero = () => <div/>", "Hero"},
		{"class", "class Panel extends React.Component {}", "Panel"},
		{"last wins", "function First() {}\nfunction Second() {}", "Second"},
		{"lowercase ignored", "function helper() {}", ""},
		{"exported declaration", "export default function Card() {}", "Card"},
		{"none", "const x = 1", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, lastDeclaredComponent(tt.src))
		})
	}
}

func TestRenderMountsLastDeclaredWithoutExport(t *testing.T) {
	session := &storage.Session{
		Code: storage.ComponentCode{JSX: "function Widget() {\n  return <div/>\n}"},
	}

	doc := renderString(t, session)
	assert.True(t, strings.Contains(doc, "__lastDeclared = Widget"))
}
