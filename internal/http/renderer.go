package httpx

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"math"
	"net/http"
	"path"
	"strings"
	"sync"
	"time"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/learnsphere/learnsphere-ui/internal/domain/auth"
)

// Template directory paths.
const (
	TemplatePathFromRoot = "frontend/templates"
	TemplatePathFromTest = "../../frontend/templates"
)

// PageData is the value every page template receives. Page specific values
// live in Content.
type PageData struct {
	Title       string
	CurrentPage string
	User        *auth.User
	CSRFToken   string
	Notice      string
	Error       string
	Content     any
}

// TemplateRenderer renders pages. Each page is parsed into its own clone of
// the layout so every page can define "content" without collisions.
type TemplateRenderer struct {
	fsys    fs.FS
	devMode bool
	logger  *slog.Logger
	now     func() time.Time

	mu    sync.RWMutex
	pages map[string]*template.Template
}

// TemplateRendererConfig holds configuration for creating a TemplateRenderer.
type TemplateRendererConfig struct {
	TemplateFS fs.FS // required
	DevMode    bool  // reparse on every render
	Logger     *slog.Logger
	Now        func() time.Time
}

// NewTemplateRenderer parses layout.tmpl, partials/*.tmpl and every
// pages/*.tmpl.
func NewTemplateRenderer(cfg TemplateRendererConfig) (*TemplateRenderer, error) {
	if cfg.TemplateFS == nil {
		return nil, errors.New("TemplateFS is required")
	}
	r := &TemplateRenderer{
		fsys:    cfg.TemplateFS,
		devMode: cfg.DevMode,
		logger:  cfg.Logger,
		now:     cfg.Now,
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	if r.now == nil {
		r.now = time.Now
	}
	pages, err := r.parse()
	if err != nil {
		r.logger.Error("template parsing failed", slog.Any("error", err))
		return nil, err
	}
	r.pages = pages
	return r, nil
}

func (r *TemplateRenderer) parse() (map[string]*template.Template, error) {
	base, err := template.New("root").Funcs(r.funcs()).ParseFS(r.fsys, "layout.tmpl", "partials/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}
	files, err := fs.Glob(r.fsys, "pages/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("list pages: %w", err)
	}
	pages := make(map[string]*template.Template, len(files))
	for _, f := range files {
		t, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone layout for %s: %w", f, err)
		}
		if _, err := t.ParseFS(r.fsys, f); err != nil {
			return nil, fmt.Errorf("parse %s: %w", f, err)
		}
		pages[strings.TrimSuffix(path.Base(f), ".tmpl")] = t
	}
	return pages, nil
}

func (r *TemplateRenderer) page(name string) (*template.Template, error) {
	if r.devMode {
		pages, err := r.parse()
		if err != nil {
			return nil, err
		}
		r.mu.Lock()
		r.pages = pages
		r.mu.Unlock()
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.pages[name]
	if !ok {
		return nil, fmt.Errorf("unknown page template %q", name)
	}
	return t, nil
}

// Render executes the layout for page into a buffer and writes it with status.
func (r *TemplateRenderer) Render(w http.ResponseWriter, status int, page string, data PageData) error {
	t, err := r.page(page)
	if err != nil {
		r.logger.Error("template lookup failed", slog.String("page", page), slog.Any("error", err))
		return err
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		r.logger.Error("template execution failed", slog.String("page", page), slog.Any("error", err))
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err = buf.WriteTo(w)
	return err
}

var printer = message.NewPrinter(language.AmericanEnglish)

// formatNumber groups thousands and keeps at most two decimals.
func formatNumber(v any) string {
	switch n := v.(type) {
	case int:
		return printer.Sprintf("%v", number.Decimal(n))
	case *int:
		if n == nil {
			return ""
		}
		return printer.Sprintf("%v", number.Decimal(*n))
	case float64:
		return printer.Sprintf("%v", number.Decimal(n, number.MaxFractionDigits(2)))
	case *float64:
		if n == nil {
			return ""
		}
		return printer.Sprintf("%v", number.Decimal(*n, number.MaxFractionDigits(2)))
	default:
		return fmt.Sprint(v)
	}
}

// formatPrice renders "$89" style prices; "" for free courses.
func formatPrice(p *float64) string {
	if p == nil || *p == 0 {
		return ""
	}
	return "$" + formatNumber(*p)
}

func initial(s string) string {
	r, _ := utf8.DecodeRuneInString(strings.TrimSpace(s))
	if r == utf8.RuneError {
		return "?"
	}
	return string(unicode.ToUpper(r))
}

func clampPercent(p int) int {
	return max(0, min(100, p))
}

// relativeTime renders a past instant the way the dashboard shows it.
func relativeTime(now time.Time, t *time.Time) string {
	if t == nil || t.IsZero() {
		return "Never"
	}
	d := now.Sub(*t)
	plural := func(n int, unit string) string {
		if n == 1 {
			return "1 " + unit + " ago"
		}
		return fmt.Sprintf("%d %ss ago", n, unit)
	}
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return plural(int(d.Minutes()), "minute")
	case d < 24*time.Hour:
		return plural(int(d.Hours()), "hour")
	case d < 30*24*time.Hour:
		return plural(int(math.Floor(d.Hours()/24)), "day")
	default:
		return t.Format("Jan 2, 2006")
	}
}

func (r *TemplateRenderer) funcs() template.FuncMap {
	return template.FuncMap{
		"number":  formatNumber,
		"price":   formatPrice,
		"initial": initial,
		"percent": clampPercent,
		"hours":   func(h float64) string { return formatNumber(h) },
		"ago":     func(t *time.Time) string { return relativeTime(r.now(), t) },
		"deref": func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		},
	}
}
