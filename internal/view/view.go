// Package view renders the console's HTML pages. Templates are embedded
// and parsed once; each page is its own set combined with the shared
// layout so pages can all define "content".
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/matrimony-admin/internal/model"
	"github.com/iliyamo/matrimony-admin/internal/userlist"
)

//go:embed templates/*.html
var files embed.FS

// Page names accepted by Render.
const (
	PageLogin     = "login"
	PageDashboard = "dashboard"
	PageUsers     = "users"
	PageProfile   = "profile"
)

// Image fallbacks used when a profile has no pictures.
const (
	DefaultAvatar    = "https://cdn-icons-png.flaticon.com/512/149/149071.png"
	PlaceholderImage = "https://cdn-icons-png.flaticon.com/512/2922/2922510.png"
	placeholderCount = 5
)

// Page is the data every template receives. Body holds the page-specific
// struct.
type Page struct {
	Title    string
	Active   string // nav entry to highlight
	SignedIn bool
	Body     any
}

// Renderer implements echo.Renderer over the embedded templates.
type Renderer struct {
	pages map[string]*template.Template
}

// New parses every page together with the layout.
func New() (*Renderer, error) {
	r := &Renderer{pages: map[string]*template.Template{}}
	for _, name := range []string{PageLogin, PageDashboard, PageUsers, PageProfile} {
		t, err := template.New(name).Funcs(funcs).ParseFS(files, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// Render executes the layout of page name with data.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("view: unknown page %q", name)
	}
	return t.ExecuteTemplate(w, "layout", data)
}

var funcs = template.FuncMap{
	"label":    FormatLabel,
	"orNA":     OrNA,
	"phone":    Phone,
	"hintBG":   func(h userlist.RowHint) string { return h.Color() },
	"roles":    func() []model.Role { return model.Roles },
	"statuses": func() []model.Status { return model.Statuses },
	"when":     When,
	"inc":      func(i int) int { return i + 1 },
}

// FormatLabel turns a camelCase or snake_case key into a Title Case label:
// "maritalStatus" and "marital_status" both become "Marital Status".
func FormatLabel(key string) string {
	var b strings.Builder
	prevWord := false
	for _, r := range key {
		if r == '_' {
			b.WriteRune(' ')
			prevWord = false
			continue
		}
		if unicode.IsUpper(r) {
			b.WriteRune(' ')
			prevWord = false
		}
		if !prevWord {
			r = unicode.ToUpper(r)
		}
		b.WriteRune(r)
		prevWord = unicode.IsLetter(r) || unicode.IsDigit(r)
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// OrNA renders a profile value, or "N/A" when it is missing or empty.
func OrNA(v any) string {
	switch t := v.(type) {
	case nil:
		return "N/A"
	case string:
		if t == "" {
			return "N/A"
		}
		return t
	case model.FlexString:
		return OrNA(string(t))
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case []any:
		parts := make([]string, 0, len(t))
		for _, e := range t {
			parts = append(parts, OrNA(e))
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprint(t)
	}
}

// Phone prefixes the Indian country code to a stored number.
func Phone(p model.FlexString) string {
	if p == "" {
		return "N/A"
	}
	return "+91 " + string(p)
}

// When formats an optional timestamp.
func When(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "N/A"
	}
	return t.Local().Format("02 Jan 2006, 15:04")
}
