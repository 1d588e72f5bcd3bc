// Package i18n selects the UI language (English or Urdu) per request and
// translates interface strings through golang.org/x/text message catalogs.
package i18n

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"github.com/zsajjad/dr-admission-portal-sub001/internal/shared"
)

// QueryParam and CookieName carry an explicit language choice.
const (
	QueryParam = "lang"
	CookieName = "admission_lang"
)

// Supported lists the UI languages; the first is the fallback.
var Supported = []language.Tag{language.English, language.Urdu}

// Translator owns the message catalog and language matcher.
type Translator struct {
	catalog   *catalog.Builder
	matcher   language.Matcher
	supported []language.Tag
	fallback  language.Tag
}

// New builds a Translator. defaultLocale picks the fallback language.
func New(defaultLocale string) (*Translator, error) {
	fallback := language.English
	if defaultLocale != "" {
		tag, err := language.Parse(defaultLocale)
		if err != nil {
			return nil, fmt.Errorf("i18n: default locale: %w", err)
		}
		fallback = tag
	}
	if !isSupported(fallback) {
		return nil, fmt.Errorf("i18n: unsupported default locale %q", defaultLocale)
	}
	supported := []language.Tag{fallback}
	for _, tag := range Supported {
		if tag != fallback {
			supported = append(supported, tag)
		}
	}

	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for key, msg := range urdu {
		if err := b.SetString(language.Urdu, key, msg); err != nil {
			return nil, fmt.Errorf("i18n: catalog %q: %w", key, err)
		}
	}
	return &Translator{
		catalog:   b,
		matcher:   language.NewMatcher(supported),
		supported: supported,
		fallback:  fallback,
	}, nil
}

// Match returns the supported language that best fits the candidates. Each
// candidate is a language code or an Accept-Language header value.
func (t *Translator) Match(candidates ...string) language.Tag {
	var tags []language.Tag
	for _, c := range candidates {
		if c == "" {
			continue
		}
		parsed, _, err := language.ParseAcceptLanguage(c)
		if err != nil {
			continue
		}
		tags = append(tags, parsed...)
	}
	if len(tags) == 0 {
		return t.fallback
	}
	_, idx, conf := t.matcher.Match(tags...)
	if conf == language.No {
		return t.fallback
	}
	return t.supported[idx]
}

func isSupported(tag language.Tag) bool {
	for _, s := range Supported {
		if s == tag {
			return true
		}
	}
	return false
}

// Locale returns the Locale for tag.
func (t *Translator) Locale(tag language.Tag) Locale {
	return Locale{Tag: tag, printer: message.NewPrinter(tag, message.Catalog(t.catalog))}
}

// Locale translates strings for one language.
type Locale struct {
	Tag     language.Tag
	printer *message.Printer
}

// T translates key, formatting args with the language's number rules.
func (l Locale) T(key string, args ...any) string {
	if l.printer == nil {
		return fmt.Sprintf(key, args...)
	}
	return l.printer.Sprintf(key, args...)
}

// Code returns the BCP 47 code, e.g. "ur".
func (l Locale) Code() string {
	return l.Tag.String()
}

// Dir returns the text direction for the html dir attribute.
func (l Locale) Dir() string {
	if l.Tag == language.Urdu {
		return "rtl"
	}
	return "ltr"
}

type localeContextKey struct{}

// ContextWithLocale stores the request locale.
func ContextWithLocale(ctx context.Context, l Locale) context.Context {
	return context.WithValue(ctx, localeContextKey{}, l)
}

// FromContext returns the request locale, English when none was resolved.
func FromContext(ctx context.Context) Locale {
	if l, ok := ctx.Value(localeContextKey{}).(Locale); ok {
		return l
	}
	return Locale{Tag: language.English}
}

// Middleware resolves the locale from ?lang=, the session, the language cookie
// and Accept-Language, in that order. An explicit ?lang= is remembered.
func (t *Translator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := shared.SessionFromContext(r.Context())
		explicit := r.URL.Query().Get(QueryParam)

		var candidates []string
		if explicit != "" {
			candidates = append(candidates, explicit)
		} else {
			if sess != nil {
				candidates = append(candidates, sess.Locale())
			}
			if c, err := r.Cookie(CookieName); err == nil {
				candidates = append(candidates, c.Value)
			}
			candidates = append(candidates, r.Header.Get("Accept-Language"))
		}
		tag := t.Match(candidates...)

		if explicit != "" {
			if sess != nil {
				sess.SetLocale(tag.String())
			}
			http.SetCookie(w, &http.Cookie{
				Name:     CookieName,
				Value:    tag.String(),
				Path:     "/",
				Expires:  time.Now().Add(365 * 24 * time.Hour),
				SameSite: http.SameSiteLaxMode,
			})
		}
		w.Header().Set("Content-Language", tag.String())
		next.ServeHTTP(w, r.WithContext(ContextWithLocale(r.Context(), t.Locale(tag))))
	})
}
