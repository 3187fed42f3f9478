// Package i18n loads the embedded translation tables and tracks the active
// locale. Keys are dotted paths into the TOML tables; values may reference
// {{name}} placeholders. A "count" argument selects the _one or _other form
// when the table defines one.
package i18n

import (
	"embed"
	"fmt"
	"os"
	"path"
	"sort"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
)

//go:embed locales/*.toml
var localeFS embed.FS

// Supported locales.
const (
	English = "en"
	Chinese = "zh"
)

// Fallback is used when a key or locale is missing.
const Fallback = English

var supportedTags = []language.Tag{language.English, language.Chinese}

var supportedCodes = []string{English, Chinese}

// Args are interpolation values for a translation.
type Args map[string]any

// Catalog holds one flat key→text table per locale.
type Catalog struct {
	tables map[string]map[string]string
}

// LoadCatalog parses the embedded locale tables.
func LoadCatalog() (*Catalog, error) {
	c := &Catalog{tables: make(map[string]map[string]string, len(supportedCodes))}
	for _, code := range supportedCodes {
		data, err := localeFS.ReadFile(path.Join("locales", code+".toml"))
		if err != nil {
			return nil, fmt.Errorf("read locale %s: %w", code, err)
		}
		var raw map[string]any
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse locale %s: %w", code, err)
		}
		table := make(map[string]string)
		flatten("", raw, table)
		c.tables[code] = table
	}
	return c, nil
}

// MustLoadCatalog is LoadCatalog for the embedded tables, which are known good.
func MustLoadCatalog() *Catalog {
	c, err := LoadCatalog()
	if err != nil {
		panic(err)
	}
	return c
}

func flatten(prefix string, in map[string]any, out map[string]string) {
	for k, v := range in {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case map[string]any:
			flatten(key, val, out)
		case string:
			out[key] = val
		default:
			out[key] = fmt.Sprint(val)
		}
	}
}

// Locales lists the supported locale codes.
func Locales() []string {
	return append([]string(nil), supportedCodes...)
}

// Keys returns the sorted keys defined for locale.
func (c *Catalog) Keys(locale string) []string {
	table := c.tables[locale]
	keys := make([]string, 0, len(table))
	for k := range table {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Translate looks key up in locale, then in the fallback locale, and finally
// returns the key itself.
func (c *Catalog) Translate(locale, key string, args Args) string {
	for _, code := range []string{locale, Fallback} {
		if text, ok := c.lookup(code, key, args); ok {
			return interpolate(text, args)
		}
	}
	return key
}

func (c *Catalog) lookup(locale, key string, args Args) (string, bool) {
	table, ok := c.tables[locale]
	if !ok {
		return "", false
	}
	if n, ok := args["count"]; ok {
		suffix := "_other"
		if fmt.Sprint(n) == "1" {
			suffix = "_one"
		}
		if text, ok := table[key+suffix]; ok {
			return text, true
		}
		if text, ok := table[key+"_other"]; ok {
			return text, true
		}
	}
	text, ok := table[key]
	return text, ok
}

func interpolate(text string, args Args) string {
	if len(args) == 0 || !strings.Contains(text, "{{") {
		return text
	}
	pairs := make([]string, 0, len(args)*2)
	for k, v := range args {
		pairs = append(pairs, "{{"+k+"}}", fmt.Sprint(v))
	}
	return strings.NewReplacer(pairs...).Replace(text)
}

// Match maps a locale string such as "zh_CN.UTF-8" or "en-GB" onto a
// supported locale. ok is false when nothing matches.
func Match(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	if i := strings.IndexAny(s, ".@"); i >= 0 {
		s = s[:i]
	}
	s = strings.ReplaceAll(s, "_", "-")
	if s == "" || s == "C" || s == "POSIX" {
		return "", false
	}
	tag, err := language.Parse(s)
	if err != nil {
		return "", false
	}
	matcher := language.NewMatcher(supportedTags)
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return "", false
	}
	return supportedCodes[idx], true
}

// Detect picks the starting locale: the saved preference, then the
// environment, then the fallback.
func Detect(preferred string) string {
	if code, ok := Match(preferred); ok {
		return code
	}
	for _, env := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if code, ok := Match(os.Getenv(env)); ok {
			return code
		}
	}
	return Fallback
}

// DisplayName is the native name of a locale.
func DisplayName(locale string) string {
	switch locale {
	case Chinese:
		return "中文"
	default:
		return "English"
	}
}
