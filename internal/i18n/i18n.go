// Package i18n holds the console's zh/en dictionary and the persisted language preference.
package i18n

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/pmsadmin/console/internal/domain/model"
	apperrors "github.com/pmsadmin/console/internal/errors"
	"github.com/pmsadmin/console/internal/ports"
)

// Lang is a supported display language.
type Lang string

// Supported languages.
const (
	LangZH Lang = "zh"
	LangEN Lang = "en"
)

// DefaultLang is used when nothing valid is stored.
const DefaultLang = LangEN

// ParseLang validates a language code.
func ParseLang(v string) (Lang, bool) {
	switch Lang(strings.ToLower(strings.TrimSpace(v))) {
	case LangZH:
		return LangZH, true
	case LangEN:
		return LangEN, true
	default:
		return "", false
	}
}

// Entry is one translated string.
type Entry struct {
	ZH string `json:"zh"`
	EN string `json:"en"`
}

// In returns the entry's text in lang.
func (e Entry) In(lang Lang) string {
	if lang == LangZH {
		return e.ZH
	}
	return e.EN
}

// Dictionary maps section -> key -> entry.
type Dictionary map[string]map[string]Entry

//go:embed dictionary.json
var rawDictionary []byte

var dict = mustLoad(rawDictionary)

func mustLoad(raw []byte) Dictionary {
	var d Dictionary
	if err := json.Unmarshal(raw, &d); err != nil {
		panic(fmt.Sprintf("i18n: decode dictionary: %v", err))
	}
	return d
}

// Default returns the shipped dictionary.
func Default() Dictionary { return dict }

// Lookup returns the text for section.key in lang, or key when unknown.
func (d Dictionary) Lookup(section, key string, lang Lang) string {
	entry, ok := d[section][key]
	if !ok {
		return key
	}
	if s := entry.In(lang); s != "" {
		return s
	}
	return key
}

// Lookup reads from the shipped dictionary.
func Lookup(section, key string, lang Lang) string {
	return dict.Lookup(section, key, lang)
}

// Flatten renders every entry in lang as "section.key" -> text.
func (d Dictionary) Flatten(lang Lang) map[string]string {
	out := make(map[string]string)
	for section, entries := range d {
		for key, e := range entries {
			out[section+"."+key] = e.In(lang)
		}
	}
	return out
}

// Sections returns section names in sorted order.
func (d Dictionary) Sections() []string {
	out := make([]string, 0, len(d))
	for s := range d {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// Preference stores the language choice under the "lang" key of a scoped store.
type Preference struct {
	kv       ports.KeyValueStore
	fallback Lang
}

// NewPreference creates a Preference backed by kv.
func NewPreference(kv ports.KeyValueStore) *Preference {
	return &Preference{kv: kv, fallback: DefaultLang}
}

// WithFallback sets the language returned when nothing valid is stored.
// Unsupported values keep DefaultLang.
func (p *Preference) WithFallback(lang Lang) *Preference {
	if l, ok := ParseLang(string(lang)); ok {
		p.fallback = l
	}
	return p
}

// Get returns the stored language, or the fallback when unset or invalid.
func (p *Preference) Get(ctx context.Context) (Lang, error) {
	v, ok, err := p.kv.Get(ctx, model.KeyLang)
	if err != nil {
		return p.fallback, fmt.Errorf("read language preference: %w", err)
	}
	if !ok {
		return p.fallback, nil
	}
	lang, valid := ParseLang(v)
	if !valid {
		return p.fallback, nil
	}
	return lang, nil
}

// Set stores lang. Unsupported values are rejected.
func (p *Preference) Set(ctx context.Context, value string) (Lang, error) {
	lang, ok := ParseLang(value)
	if !ok {
		return "", apperrors.ValidationField("lang", `language must be "zh" or "en"`)
	}
	if err := p.kv.Set(ctx, model.KeyLang, string(lang)); err != nil {
		return "", fmt.Errorf("store language preference: %w", err)
	}
	return lang, nil
}
