package view

import (
	"embed"
	"html/template"
	"time"

	"github.com/BloggingApp/web-client/internal/model"
	"github.com/BloggingApp/web-client/internal/service"
)

//go:embed templates/*.html
var files embed.FS

const timeLayout = "1/2/2006, 3:04:05 PM"

var templates = template.Must(template.New("").Funcs(template.FuncMap{
	"formatTime": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Local().Format(timeLayout)
	},
}).ParseFS(files, "templates/*.html"))

// Templates returns the parsed component templates: "page", "navbar",
// "composer" and "thread".
func Templates() *template.Template {
	return templates
}

type ComposerView struct {
	Text       string
	Images     []model.Attachment
	Alert      string
	ReturnPath string
}

type Page struct {
	Nav      NavigationBar
	Composer ComposerView
	Thread   service.ThreadSnapshot
	Flash    string
}
