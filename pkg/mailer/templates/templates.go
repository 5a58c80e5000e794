package templates

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	htmpl "html/template"
	"io"
	"reflect"
	"strings"
	"sync"
	texttpl "text/template"
	"time"
)

//go:embed *.tmpl
var FS embed.FS

const ConfirmEmail = "confirm_email"

// EmailData is the data every template can rely on. Jobs carry it as a
// map so it survives the trip through the queue as plain JSON.
type EmailData struct {
	Name  string `json:"Name"`
	Email string `json:"Email"`
	Type  string `json:"Type"`

	CompanyName string `json:"CompanyName"`
	AppName     string `json:"AppName"`
	SupportURL  string `json:"SupportURL"`

	ConfirmURL string `json:"ConfirmURL"`

	ExpiresAt     time.Time `json:"ExpiresAt"`
	ExpiresAtText string    `json:"ExpiresAtText"`
	Time          string    `json:"Time"`
	TimeAt        time.Time `json:"TimeAt"`
}

// ToMap converts EmailData to the map form used by EmailJob.Data.
func ToMap(d EmailData) map[string]any {
	b, _ := json.Marshal(d)
	var m map[string]any
	_ = json.Unmarshal(b, &m)
	return m
}

// defaultFn backs {{ .Value | default "Fallback" }}: blank strings and zero
// values fall back.
func defaultFn(fallback, value any) any {
	if s, ok := value.(string); ok {
		if strings.TrimSpace(s) == "" {
			return fallback
		}
		return s
	}
	rv := reflect.ValueOf(value)
	if !rv.IsValid() || rv.IsZero() {
		return fallback
	}
	return value
}

func funcs() map[string]any {
	return map[string]any{
		"now":     func() time.Time { return time.Now().UTC() },
		"upper":   strings.ToUpper,
		"default": defaultFn,
	}
}

// set is one parsed template triple.
type set struct {
	subject *texttpl.Template
	text    *texttpl.Template
	html    *htmpl.Template
}

var (
	mu    sync.Mutex
	cache = map[string]*set{}
)

func load(name string) (*set, error) {
	mu.Lock()
	defer mu.Unlock()
	if s, ok := cache[name]; ok {
		return s, nil
	}

	parseText := func(file string) (*texttpl.Template, error) {
		t, err := texttpl.New(file).Funcs(funcs()).ParseFS(FS, file)
		if err != nil {
			return nil, fmt.Errorf("parse %q: %w", file, err)
		}
		return t, nil
	}
	subject, err := parseText(name + ".subject.tmpl")
	if err != nil {
		return nil, err
	}
	text, err := parseText(name + ".text.tmpl")
	if err != nil {
		return nil, err
	}
	htmlFile := name + ".html.tmpl"
	html, err := htmpl.New(htmlFile).Funcs(funcs()).ParseFS(FS, htmlFile)
	if err != nil {
		return nil, fmt.Errorf("parse %q: %w", htmlFile, err)
	}

	s := &set{subject: subject, text: text, html: html}
	cache[name] = s
	return s, nil
}

type executor interface {
	Execute(w io.Writer, data any) error
	Name() string
}

func execute(t executor, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("exec %q: %w", t.Name(), err)
	}
	return buf.String(), nil
}

// Render produces subject, text and html for the template family name,
// i.e. <name>.subject.tmpl, <name>.text.tmpl and <name>.html.tmpl.
func Render(name string, data any) (subject, text, html string, err error) {
	s, err := load(name)
	if err != nil {
		return "", "", "", err
	}
	if subject, err = execute(s.subject, data); err != nil {
		return "", "", "", err
	}
	if text, err = execute(s.text, data); err != nil {
		return "", "", "", err
	}
	if html, err = execute(s.html, data); err != nil {
		return "", "", "", err
	}
	return strings.TrimSpace(subject), text, html, nil
}
