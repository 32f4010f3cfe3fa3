// Package preview assembles the sandboxed HTML document that renders a
// session's component. The document is self-contained: React, ReactDOM,
// Babel standalone and Tailwind load from CDNs, the JSX is transpiled in
// the browser, and runtime errors paint an overlay instead of a blank
// frame. It is meant to be served into a sandboxed iframe.
package preview

import (
	"bytes"
	"html"
	"strings"
	"text/template"

	"uiforge/internal/common/errors"
	"uiforge/internal/storage"
)

// scriptClose breaks "</script" sequences inside user code so they cannot
// terminate the babel script element early.
var (
	scriptClose = strings.NewReplacer("</script", "<\\/script")
	styleClose  = strings.NewReplacer("</style", "<\\/style")
)

var documentTmpl = template.Must(template.New("preview").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<script src="https://unpkg.com/react@18/umd/react.production.min.js"></script>
<script src="https://unpkg.com/react-dom@18/umd/react-dom.production.min.js"></script>
<script src="https://unpkg.com/@babel/standalone/babel.min.js"></script>
<script src="https://cdn.tailwindcss.com"></script>
<style>
html, body, #root { height: 100%; margin: 0; }
#error-overlay {
  display: none; position: fixed; inset: 0; background: #1a1a1a; color: #ff6b6b;
  font-family: monospace; font-size: 13px; padding: 16px; white-space: pre-wrap;
  overflow: auto; z-index: 9999;
}
{{.CSS}}
</style>
</head>
<body>
<div id="root"></div>
<div id="error-overlay"></div>
<script>
window.addEventListener('error', function (e) {
  var overlay = document.getElementById('error-overlay');
  overlay.textContent = String(e.error && e.error.stack || e.message);
  overlay.style.display = 'block';
});
</script>
<script type="text/babel" data-presets="react">
{{.Source}}
</script>
</body>
</html>
`))

// documentData is injected verbatim, so every field must be neutralized
// before Execute: the title is HTML-escaped and the CSS and source have
// their closing-tag sequences broken.
type documentData struct {
	Title  string
	CSS    string
	Source string
}

// mountScript resolves the component to render: the default export if the
// code declared one, otherwise the last declared capitalized function or
// const, then mounts it on #root.
const mountScript = `
const __component = __defaultExport || __lastDeclared || null;
if (!__component) {
  throw new Error('No component found: add a default export or declare a component function');
}
ReactDOM.createRoot(document.getElementById('root')).render(React.createElement(__component));
`

// Render produces the full preview document for a session. Returns a
// validation error when the session has no component source yet.
func Render(session *storage.Session) ([]byte, error) {
	jsx := strings.TrimSpace(session.Code.JSX)
	if jsx == "" {
		return nil, errors.ValidationError("session has no component code to preview")
	}

	title := session.Title
	if title == "" {
		title = storage.DefaultTitle
	}

	var buf bytes.Buffer
	err := documentTmpl.Execute(&buf, documentData{
		Title:  html.EscapeString(title),
		CSS:    styleClose.Replace(scriptClose.Replace(session.Code.CSS)),
		Source: prepareSource(jsx),
	})
	if err != nil {
		return nil, errors.InternalError("failed to render preview", err)
	}
	return buf.Bytes(), nil
}

// prepareSource neutralizes script terminators and rewrites the module
// syntax Babel standalone cannot evaluate in a plain script: the default
// export becomes an assignment, named exports are stripped, and declared
// components are tracked so the last one can serve as a fallback mount
// target.
func prepareSource(jsx string) string {
	src := scriptClose.Replace(jsx)

	var b strings.Builder
	b.WriteString("let __defaultExport, __lastDeclared;\n")

	lastComponent := lastDeclaredComponent(src)

	for _, line := range strings.Split(src, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "import "):
			// React and Tailwind are globals here
			continue
		case strings.HasPrefix(trimmed, "export default "):
			b.WriteString(strings.Replace(line, "export default ", "__defaultExport = ", 1))
			b.WriteString("\n")
		case strings.HasPrefix(trimmed, "export "):
			b.WriteString(strings.Replace(line, "export ", "", 1))
			b.WriteString("\n")
		default:
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	if lastComponent != "" {
		b.WriteString("try { __lastDeclared = " + lastComponent + "; } catch (e) {}\n")
	}
	b.WriteString(mountScript)
	return b.String()
}

var declPrefixes = []string{"function ", "const ", "class "}

// lastDeclaredComponent finds the last top-level capitalized declaration,
// the usual shape of a component the model forgot to export.
func lastDeclaredComponent(src string) string {
	last := ""
	for _, line := range strings.Split(src, "\n") {
		trimmed := strings.TrimSpace(line)
		trimmed = strings.TrimPrefix(trimmed, "export default ")
		trimmed = strings.TrimPrefix(trimmed, "export ")
		for _, prefix := range declPrefixes {
			if !strings.HasPrefix(trimmed, prefix) {
				continue
			}
			rest := trimmed[len(prefix):]
			name := identifier(rest)
			if name != "" && name[0] >= 'A' && name[0] <= 'Z' {
				last = name
			}
		}
	}
	return last
}

func identifier(s string) string {
	end := 0
	for end < len(s) {
		c := s[end]
		if c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (end > 0 && c >= '0' && c <= '9') {
			end++
			continue
		}
		break
	}
	return s[:end]
}
