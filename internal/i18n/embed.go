package i18n

import "embed"

//go:embed locales/*.json
var localeFiles embed.FS

// NewEmbeddedManager loads the locales compiled into the binary.
func NewEmbeddedManager(defaultLanguage string) (*Manager, error) {
	return NewManager(defaultLanguage, localeFiles, "locales")
}
