package transport

import "strings"

const (
	// DefaultKagiBase is the origin serving search, summarizer, and assistant.
	DefaultKagiBase = "https://kagi.com"

	// DefaultTranslateBase is the origin serving proofread and token exchange.
	DefaultTranslateBase = "https://translate.kagi.com"
)

// Endpoints holds the base URLs each capability resolves its paths against.
// Tests point both at an httptest server.
type Endpoints struct {
	Kagi      string
	Translate string
}

// DefaultEndpoints returns the production Kagi origins.
func DefaultEndpoints() Endpoints {
	return Endpoints{
		Kagi:      DefaultKagiBase,
		Translate: DefaultTranslateBase,
	}
}

// KagiURL joins path onto the Kagi origin.
func (e Endpoints) KagiURL(path string) string {
	return join(e.Kagi, DefaultKagiBase, path)
}

// KagiOrigin returns the Kagi origin without a trailing slash, as sent in
// Origin headers.
func (e Endpoints) KagiOrigin() string {
	if e.Kagi == "" {
		return DefaultKagiBase
	}
	return strings.TrimRight(e.Kagi, "/")
}

// TranslateURL joins path onto the translate origin.
func (e Endpoints) TranslateURL(path string) string {
	return join(e.Translate, DefaultTranslateBase, path)
}

func join(base, fallback, path string) string {
	if base == "" {
		base = fallback
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}
