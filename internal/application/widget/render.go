package widget

import (
	"embed"
	"html/template"
	"io"
	"io/fs"
	"strconv"

	"github.com/labstack/echo/v4"

	"weather-widget/internal/domain/entity"
)

// PageTemplate is the template name of the full widget page.
const PageTemplate = "page"

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Page is the data the widget templates render.
type Page struct {
	ContextPath string
	Input       string
	Loading     bool
	Error       string
	Result      *entity.Weather
}

// NewPage flattens a view for the templates.
func NewPage(view View, contextPath string) Page {
	return Page{
		ContextPath: contextPath,
		Input:       view.Input,
		Loading:     view.State.IsLoading(),
		Error:       view.ErrorMessage(),
		Result:      view.State.Result(),
	}
}

// Renderer renders the embedded widget templates for echo.
type Renderer struct {
	templates *template.Template
}

func NewRenderer() (*Renderer, error) {
	templates, err := template.New("root").
		Funcs(template.FuncMap{"number": FormatNumber}).
		ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Renderer{templates: templates}, nil
}

// Render implements echo.Renderer.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}

// StaticFS holds the widget stylesheet.
func StaticFS() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// FormatNumber prints a measurement with the shortest exact representation,
// so 20 renders as "20" and 19.5 as "19.5".
func FormatNumber(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
