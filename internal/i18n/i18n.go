// Package i18n holds the screen copy. English is complete; other catalogs
// may be partial and fall back to English per message.
package i18n

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/BurntSushi/toml"
	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.toml
var localeFS embed.FS

// Catalog translates message ids for one language.
type Catalog struct {
	tag      language.Tag
	loc      *goi18n.Localizer
	fallback *goi18n.Localizer
}

func newBundle() (*goi18n.Bundle, error) {
	bundle := goi18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)
	files, err := fs.Glob(localeFS, "locales/*.toml")
	if err != nil {
		return nil, err
	}
	for _, f := range files {
		if _, err := bundle.LoadMessageFileFS(localeFS, f); err != nil {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}
	return bundle, nil
}

// New returns the catalog closest to lang. Unknown or unsupported languages
// get English.
func New(lang string) (*Catalog, error) {
	bundle, err := newBundle()
	if err != nil {
		return nil, err
	}
	tag := language.English
	if want, perr := language.Parse(lang); perr == nil {
		matcher := language.NewMatcher(bundle.LanguageTags())
		_, idx, conf := matcher.Match(want)
		if conf != language.No {
			tag = bundle.LanguageTags()[idx]
		}
	}
	return &Catalog{
		tag:      tag,
		loc:      goi18n.NewLocalizer(bundle, tag.String()),
		fallback: goi18n.NewLocalizer(bundle, language.English.String()),
	}, nil
}

// English is the catalog used when none is configured, e.g. in tests.
func English() *Catalog {
	c, err := New("en")
	if err != nil {
		panic(err)
	}
	return c
}

// Language is the matched language.
func (c *Catalog) Language() language.Tag { return c.tag }

// T renders message id with optional template data. Missing ids render as
// the id itself so gaps are visible rather than blank.
func (c *Catalog) T(id string, data ...map[string]any) string {
	cfg := &goi18n.LocalizeConfig{MessageID: id}
	if len(data) > 0 {
		cfg.TemplateData = data[0]
	}
	out, err := c.loc.Localize(cfg)
	if err == nil {
		return out
	}
	var notFound *goi18n.MessageNotFoundErr
	if errors.As(err, &notFound) || out == "" {
		if out, err = c.fallback.Localize(cfg); err == nil {
			return out
		}
	}
	return id
}
