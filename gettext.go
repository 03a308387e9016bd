// Reads, compares and extends gettext message catalogs.

package gettext

import (
	"fmt"
	"path/filepath"
	"sync"
)

// Translations gives access to the catalogs of one domain in a locales
// directory. Use NewTranslations to create an instance.
type Translations struct {
	// As we don't want the mutex protecting the catalog cache to be
	// copied, we embed a pointer to an ancillary struct holding our
	// data.
	*translations
}

type translations struct {
	mu       sync.Mutex
	cache    map[string]*Catalog
	root     string
	domain   string
	resolver PathResolver
}

// PathResolver resolves the path of the catalog for a locale.
type PathResolver func(root string, locale string, domain string) string

// DefaultResolver resolves paths in the format <root>/<locale>/<domain>.po
func DefaultResolver(root string, locale string, domain string) string {
	return filepath.Join(root, locale, fmt.Sprintf("%s.po", domain))
}

// NewTranslations sets up access to the catalogs of domain under root. If
// resolver is nil, DefaultResolver is used.
func NewTranslations(root string, domain string, resolver PathResolver) Translations {
	if resolver == nil {
		resolver = DefaultResolver
	}
	return Translations{&translations{
		root:     root,
		resolver: resolver,
		domain:   domain,
		cache:    map[string]*Catalog{},
	}}
}

// TemplatePath returns the path of the domain template, <root>/<domain>.pot
func (t Translations) TemplatePath() string {
	return filepath.Join(t.root, fmt.Sprintf("%s.pot", t.domain))
}

// Template parses the domain template. It is not cached, as the template
// is the file missing entries get appended to.
func (t Translations) Template() (*Catalog, error) {
	return Parse(t.TemplatePath())
}

// Preload parses the catalogs of the given locales, so that subsequent
// calls to Locale for them do no IO.
func (t Translations) Preload(locales ...string) error {
	for _, locale := range locales {
		if _, err := t.Locale(locale); err != nil {
			return err
		}
	}
	return nil
}

// Locale returns the parsed catalog of a locale.
func (t Translations) Locale(locale string) (*Catalog, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if catalog, ok := t.cache[locale]; ok {
		return catalog, nil
	}

	catalog, err := Parse(t.resolver(t.root, locale, t.domain))
	if err != nil {
		return nil, fmt.Errorf("cannot load %s catalog: %w", locale, err)
	}
	t.cache[locale] = catalog
	return catalog, nil
}
