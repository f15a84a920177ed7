// Package locale provides translated UI texts.
//
// Catalogs are nested JSON objects, one file per language, addressed with
// dotted keys such as "buttons.download". Lookups never fail: an unknown
// language falls back to the default catalog, and a missing or empty entry
// yields the key itself.
package locale

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"socialdl/internal/domain"
)

//go:embed locales/*.json
var embedded embed.FS

// Localizer resolves dotted keys against per-language catalogs
type Localizer struct {
	catalogs    map[string]map[string]any
	defaultLang string
}

// New loads the built-in catalogs
func New(defaultLang string) (*Localizer, error) {
	sub, err := fs.Sub(embedded, "locales")
	if err != nil {
		return nil, fmt.Errorf("open embedded locales: %w", err)
	}
	return NewFromFS(sub, defaultLang)
}

// NewFromFS loads every *.json file at the root of fsys as a catalog named after the file
func NewFromFS(fsys fs.FS, defaultLang string) (*Localizer, error) {
	files, err := fs.Glob(fsys, "*.json")
	if err != nil {
		return nil, fmt.Errorf("list locale files: %w", err)
	}

	l := &Localizer{
		catalogs:    make(map[string]map[string]any, len(files)),
		defaultLang: defaultLang,
	}

	for _, name := range files {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("read locale %s: %w", name, err)
		}

		var catalog map[string]any
		if err := json.Unmarshal(data, &catalog); err != nil {
			return nil, fmt.Errorf("parse locale %s: %w", name, err)
		}

		l.catalogs[strings.TrimSuffix(path.Base(name), ".json")] = catalog
	}

	if _, ok := l.catalogs[defaultLang]; !ok {
		return nil, fmt.Errorf("default language %q: %w", defaultLang, domain.ErrUnsupportedLanguage)
	}

	return l, nil
}

// Languages returns loaded language codes, sorted
func (l *Localizer) Languages() []string {
	langs := make([]string, 0, len(l.catalogs))
	for lang := range l.catalogs {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// DefaultLanguage returns the fallback language code
func (l *Localizer) DefaultLanguage() string {
	return l.defaultLang
}

// Get returns the text stored under key, or key itself if there is none
func (l *Localizer) Get(lang, key string) string {
	if s, ok := l.lookup(lang, key).(string); ok {
		return s
	}
	return key
}

// List returns the string list stored under key, or nil if there is none
func (l *Localizer) List(lang, key string) []string {
	items, ok := l.lookup(lang, key).([]any)
	if !ok {
		return nil
	}

	list := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			list = append(list, s)
		}
	}
	return list
}

// Format returns Get(lang, key) with every {name} placeholder replaced by args[name]
func (l *Localizer) Format(lang, key string, args map[string]string) string {
	text := l.Get(lang, key)
	for name, value := range args {
		text = strings.ReplaceAll(text, "{"+name+"}", value)
	}
	return text
}

func (l *Localizer) lookup(lang, key string) any {
	catalog, ok := l.catalogs[lang]
	if !ok {
		catalog = l.catalogs[l.defaultLang]
	}

	var node any = catalog
	for _, segment := range strings.Split(key, ".") {
		m, ok := node.(map[string]any)
		if !ok {
			return nil
		}
		node, ok = m[segment]
		if !ok || isEmpty(node) {
			return nil
		}
	}
	return node
}

func isEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case map[string]any:
		return len(t) == 0
	case []any:
		return len(t) == 0
	case bool:
		return !t
	case float64:
		return t == 0
	}
	return false
}
