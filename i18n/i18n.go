// i18n/i18n.go

// Package i18n loads per-theme translation bundles. Themes ship a lang/
// directory next to views/ holding one flat JSON file per locale
// (lang/en.json, lang/tr.json). Lookups fall back from the exact locale
// to its base language, then to the bundle's fallback locale, and a key
// with no translation anywhere comes back unchanged.
package i18n

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/language"
)

// Bundle holds translations for multiple locales. It is safe for
// concurrent use.
type Bundle struct {
	mu       sync.RWMutex
	fallback string
	locales  map[string]map[string]string
	matcher  language.Matcher
	names    []string // parallel to the matcher's tag list
}

// NewBundle creates a bundle whose lookups fall back to the given locale.
func NewBundle(fallback string) *Bundle {
	return &Bundle{
		fallback: fallback,
		locales:  make(map[string]map[string]string),
	}
}

// AddLocale merges messages into the locale, overwriting existing keys.
// Loading a child theme after its parent therefore lets the child win.
func (b *Bundle) AddLocale(locale string, messages map[string]string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	loc, ok := b.locales[locale]
	if !ok {
		loc = make(map[string]string, len(messages))
		b.locales[locale] = loc
	}
	for k, v := range messages {
		loc[k] = v
	}
	b.rebuildMatcher()
}

// LoadJSON loads a flat {"key": "message"} JSON file into the locale.
func (b *Bundle) LoadJSON(locale, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("i18n: read %s: %w", path, err)
	}

	var messages map[string]string
	if err := json.Unmarshal(data, &messages); err != nil {
		return fmt.Errorf("i18n: parse %s: %w", path, err)
	}

	b.AddLocale(locale, messages)
	return nil
}

// LoadDir loads every {locale}.json file in dir. A missing directory is
// not an error, so themes without translations load cleanly.
func (b *Bundle) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("i18n: read dir %s: %w", dir, err)
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		locale := strings.TrimSuffix(name, ".json")
		if err := b.LoadJSON(locale, filepath.Join(dir, name)); err != nil {
			return err
		}
	}
	return nil
}

// Locales returns the registered locale tags, sorted.
func (b *Bundle) Locales() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	tags := make([]string, 0, len(b.locales))
	for tag := range b.locales {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// HasLocale reports whether the locale has any messages.
func (b *Bundle) HasLocale(locale string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.locales[locale]
	return ok
}

// Fallback returns the locale lookups fall back to.
func (b *Bundle) Fallback() string {
	return b.fallback
}

// T translates key for the locale. Lookup tries the exact locale, its
// base language ("en" for "en-US"), then the fallback locale. A key with
// no translation comes back unchanged. Args are applied with fmt.Sprintf
// when present.
func (b *Bundle) T(locale, key string, args ...any) string {
	msg, ok := b.message(locale, key)
	if !ok {
		return key
	}
	if len(args) == 0 {
		return msg
	}
	return fmt.Sprintf(msg, args...)
}

func (b *Bundle) message(locale, key string) (string, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if msg, ok := b.locales[locale][key]; ok {
		return msg, true
	}
	if idx := strings.IndexAny(locale, "-_"); idx > 0 {
		if msg, ok := b.locales[locale[:idx]][key]; ok {
			return msg, true
		}
	}
	if locale != b.fallback {
		if msg, ok := b.locales[b.fallback][key]; ok {
			return msg, true
		}
	}
	return "", false
}

// Messages returns the resolved message map for the locale: the
// fallback locale's messages, overlaid with the base language's, then
// the exact locale's. Mutating the result does not affect the bundle.
func (b *Bundle) Messages(locale string) map[string]string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make(map[string]string)
	layers := []string{b.fallback}
	if idx := strings.IndexAny(locale, "-_"); idx > 0 {
		layers = append(layers, locale[:idx])
	}
	layers = append(layers, locale)

	for _, layer := range layers {
		for k, v := range b.locales[layer] {
			out[k] = v
		}
	}
	return out
}

// Match picks the best registered locale for the given Accept-Language
// values. It returns the fallback locale when nothing is registered or
// nothing matches.
func (b *Bundle) Match(accept ...string) string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.matcher == nil {
		return b.fallback
	}
	_, idx := language.MatchStrings(b.matcher, accept...)
	if idx < 0 || idx >= len(b.names) {
		return b.fallback
	}
	return b.names[idx]
}

// rebuildMatcher recomputes the BCP-47 matcher. The fallback locale goes
// first so the matcher lands on it when no header matches. Callers hold
// the write lock.
func (b *Bundle) rebuildMatcher() {
	names := make([]string, 0, len(b.locales))
	if _, ok := b.locales[b.fallback]; ok {
		names = append(names, b.fallback)
	}
	rest := make([]string, 0, len(b.locales))
	for name := range b.locales {
		if name != b.fallback {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	names = append(names, rest...)

	var tags []language.Tag
	b.names = b.names[:0]
	for _, name := range names {
		tag, err := language.Parse(name)
		if err != nil {
			continue
		}
		tags = append(tags, tag)
		b.names = append(b.names, name)
	}

	if len(tags) == 0 {
		b.matcher = nil
		return
	}
	b.matcher = language.NewMatcher(tags)
}
