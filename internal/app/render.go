package app

import (
	"bytes"
	"embed"
	"html/template"
	"log/slog"
	"net/http"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = parsePages("index", "actions", "correct", "notfound")

// page is the data every template receives.
type page struct {
	Title   string
	Message string
	Context *LoadContext
}

func parsePages(names ...string) map[string]*template.Template {
	layout := template.Must(template.ParseFS(templateFS, "templates/layout.html"))
	out := make(map[string]*template.Template, len(names))
	for _, name := range names {
		out[name] = template.Must(template.Must(layout.Clone()).ParseFS(templateFS, "templates/"+name+".html"))
	}
	return out
}

func (a *application) render(w http.ResponseWriter, r *http.Request, status int, name string, data page) {
	data.Context = loadContext(r.Context())

	var buf bytes.Buffer
	if err := pages[name].ExecuteTemplate(&buf, "layout", data); err != nil {
		a.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if r.Method != http.MethodHead {
		_, _ = buf.WriteTo(w)
	}
}

// fail reports an internal error; details are only exposed in development mode.
func (a *application) fail(w http.ResponseWriter, err error) {
	a.logger.Error("failed to render response", slog.Any("error", err))
	msg := http.StatusText(http.StatusInternalServerError)
	if a.debug {
		msg = err.Error()
	}
	http.Error(w, msg, http.StatusInternalServerError)
}
