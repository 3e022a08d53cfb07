// i18n/theme.go
package i18n

import (
	"path/filepath"

	"github.com/salihkiraz/lumen-theme/theme"
)

// LangDir is the translations directory inside a theme, next to views.
const LangDir = "lang"

// LoadTheme loads one theme's lang directory into the bundle. Themes
// without translations load as a no-op.
func LoadTheme(b *Bundle, info *theme.Info) error {
	return b.LoadDir(filepath.Join(filepath.Dir(info.Path), LangDir))
}

// LoadThemeChain loads the ancestor chain of dir from the registry,
// parent-most first, so a child theme's entries override its parent's.
// The walk stops at an unregistered parent and will not revisit a key.
func LoadThemeChain(b *Bundle, reg *theme.Registry, dir string) error {
	var chain []*theme.Info
	seen := make(map[string]bool)

	for key := dir; key != "" && !seen[key]; {
		info, err := reg.Get(key)
		if err != nil {
			break
		}
		seen[key] = true
		chain = append(chain, info)
		key = info.Parent
	}

	for i := len(chain) - 1; i >= 0; i-- {
		if err := LoadTheme(b, chain[i]); err != nil {
			return err
		}
	}
	return nil
}
