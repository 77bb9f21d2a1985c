// Package catalog loads the localized message catalogs embedded in the
// binary and registers them with golang.org/x/text/message.
//
// Catalog files live at locales/{locale}/{namespace}.yaml and use a small
// YAML subset: quoted locale and namespace headers followed by a messages
// block of quoted "key": "value" pairs. Values are x/text format strings.
package catalog

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// BaseLocale is the locale every other catalog falls back to.
const BaseLocale = "en-US"

//go:embed locales/*/*.yaml
var embeddedCatalogFS embed.FS

var defaultBundle = mustLoadAndRegisterEmbedded()

// Default returns the process-wide embedded catalog bundle.
func Default() *Bundle {
	return defaultBundle
}

// Bundle holds every message of every loaded locale.
type Bundle struct {
	locales map[string]map[string]string
	tags    []language.Tag
	matcher language.Matcher
}

type catalogFile struct {
	locale    string
	namespace string
	messages  map[string]string
}

// LoadEmbedded loads the catalogs compiled into this package.
func LoadEmbedded() (*Bundle, error) {
	return LoadFromFS(embeddedCatalogFS)
}

// LoadFromFS loads every locales/*/*.yaml file in catalogFS. The base locale
// must be present and keys must be unique per locale.
func LoadFromFS(catalogFS fs.FS) (*Bundle, error) {
	paths, err := fs.Glob(catalogFS, "locales/*/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locale catalogs: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no catalog files found")
	}
	sort.Strings(paths)

	bundle := &Bundle{locales: map[string]map[string]string{}}
	for _, filePath := range paths {
		data, err := fs.ReadFile(catalogFS, filePath)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", filePath, err)
		}
		parsed, err := parseCatalogFile(data)
		if err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", filePath, err)
		}
		if err := bundle.add(filePath, parsed); err != nil {
			return nil, err
		}
	}
	if !bundle.HasLocale(BaseLocale) {
		return nil, fmt.Errorf("base locale %s is not defined in catalogs", BaseLocale)
	}

	// The base locale leads so the matcher falls back to it.
	bundle.tags = []language.Tag{language.MustParse(BaseLocale)}
	for _, locale := range bundle.Locales() {
		if locale == BaseLocale {
			continue
		}
		tag, err := language.Parse(locale)
		if err != nil {
			return nil, fmt.Errorf("parse locale tag %q: %w", locale, err)
		}
		bundle.tags = append(bundle.tags, tag)
	}
	bundle.matcher = language.NewMatcher(bundle.tags)
	return bundle, nil
}

func (b *Bundle) add(filePath string, file catalogFile) error {
	localeFromPath := path.Base(path.Dir(filePath))
	namespaceFromPath := strings.TrimSuffix(path.Base(filePath), path.Ext(filePath))
	if file.locale != localeFromPath {
		return fmt.Errorf("catalog %s: locale %q must match path locale %q", filePath, file.locale, localeFromPath)
	}
	if file.namespace != namespaceFromPath {
		return fmt.Errorf("catalog %s: namespace %q must match filename %q", filePath, file.namespace, namespaceFromPath)
	}

	messages, ok := b.locales[file.locale]
	if !ok {
		messages = map[string]string{}
		b.locales[file.locale] = messages
	}
	for key, value := range file.messages {
		if _, exists := messages[key]; exists {
			return fmt.Errorf("catalog %s: duplicate key %q in locale %q", filePath, key, file.locale)
		}
		messages[key] = value
	}
	return nil
}

// Register registers every message with x/text/message under its locale
// and, when different, the locale's base language. Keys missing from a
// locale are registered with the base locale's text.
func (b *Bundle) Register() error {
	if b == nil {
		return nil
	}
	base := b.locales[BaseLocale]
	for _, tag := range b.tags {
		locale := tag.String()
		tags := []language.Tag{tag}
		if lang, conf := tag.Base(); conf != language.No {
			if baseTag, err := language.Parse(lang.String()); err == nil && baseTag.String() != locale {
				tags = append(tags, baseTag)
			}
		}
		for key, fallback := range base {
			value, ok := b.locales[locale][key]
			if !ok {
				value = fallback
			}
			for _, registerTag := range tags {
				if err := message.SetString(registerTag, key, value); err != nil {
					return fmt.Errorf("register %s %q: %w", locale, key, err)
				}
			}
		}
	}
	return nil
}

// HasLocale reports whether the locale exists in this bundle.
func (b *Bundle) HasLocale(locale string) bool {
	if b == nil {
		return false
	}
	_, ok := b.locales[strings.TrimSpace(locale)]
	return ok
}

// Locales returns all available locale identifiers, sorted.
func (b *Bundle) Locales() []string {
	if b == nil {
		return nil
	}
	out := make([]string, 0, len(b.locales))
	for locale := range b.locales {
		out = append(out, locale)
	}
	sort.Strings(out)
	return out
}

// Message returns one message with base-locale fallback.
func (b *Bundle) Message(locale string, key string) (string, bool) {
	if b == nil {
		return "", false
	}
	key = strings.TrimSpace(key)
	if value, ok := b.locales[strings.TrimSpace(locale)][key]; ok {
		return value, true
	}
	value, ok := b.locales[BaseLocale][key]
	return value, ok
}

// Match resolves a requested locale, such as "it" or "en-GB", to the closest
// supported tag. Unparseable or unsupported input yields the base locale.
func (b *Bundle) Match(requested string) language.Tag {
	base := language.MustParse(BaseLocale)
	if b == nil || b.matcher == nil {
		return base
	}
	tag, err := language.Parse(strings.TrimSpace(requested))
	if err != nil {
		return base
	}
	_, index, conf := b.matcher.Match(tag)
	if conf == language.No {
		return base
	}
	return b.tags[index]
}

// Printer returns a message printer for the closest supported locale.
func (b *Bundle) Printer(requested string) (*message.Printer, language.Tag) {
	tag := b.Match(requested)
	return message.NewPrinter(tag), tag
}

func mustLoadAndRegisterEmbedded() *Bundle {
	bundle, err := LoadEmbedded()
	if err != nil {
		panic(err)
	}
	if err := bundle.Register(); err != nil {
		panic(err)
	}
	return bundle
}

func parseCatalogFile(data []byte) (catalogFile, error) {
	out := catalogFile{messages: map[string]string{}}
	inMessages := false

	for _, rawLine := range strings.Split(string(data), "\n") {
		line := strings.TrimSpace(rawLine)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		var err error
		switch {
		case strings.HasPrefix(line, "locale:"):
			out.locale, err = strconv.Unquote(strings.TrimSpace(strings.TrimPrefix(line, "locale:")))
		case strings.HasPrefix(line, "namespace:"):
			out.namespace, err = strconv.Unquote(strings.TrimSpace(strings.TrimPrefix(line, "namespace:")))
		case line == "messages:":
			inMessages = true
		case inMessages:
			var key, value string
			key, value, err = parseMessageEntry(line)
			if err == nil {
				if _, exists := out.messages[key]; exists {
					return catalogFile{}, fmt.Errorf("duplicate key %q", key)
				}
				out.messages[key] = value
			}
		default:
			return catalogFile{}, fmt.Errorf("unexpected line %q", line)
		}
		if err != nil {
			return catalogFile{}, fmt.Errorf("parse line %q: %w", line, err)
		}
	}

	switch {
	case strings.TrimSpace(out.locale) == "":
		return catalogFile{}, fmt.Errorf("missing locale")
	case strings.TrimSpace(out.namespace) == "":
		return catalogFile{}, fmt.Errorf("missing namespace")
	case len(out.messages) == 0:
		return catalogFile{}, fmt.Errorf("missing messages")
	}
	return out, nil
}

// parseMessageEntry splits `"key": "value"` into its unquoted parts.
func parseMessageEntry(line string) (string, string, error) {
	keyToken, rest, err := splitQuotedToken(line)
	if err != nil {
		return "", "", err
	}
	key, err := strconv.Unquote(keyToken)
	if err != nil {
		return "", "", fmt.Errorf("unquote key: %w", err)
	}
	if strings.TrimSpace(key) == "" {
		return "", "", fmt.Errorf("message key cannot be blank")
	}
	rest = strings.TrimSpace(rest)
	if !strings.HasPrefix(rest, ":") {
		return "", "", fmt.Errorf("missing ':' separator")
	}
	value, err := strconv.Unquote(strings.TrimSpace(strings.TrimPrefix(rest, ":")))
	if err != nil {
		return "", "", fmt.Errorf("unquote value: %w", err)
	}
	return key, value, nil
}

func splitQuotedToken(line string) (string, string, error) {
	if !strings.HasPrefix(line, `"`) {
		return "", "", fmt.Errorf("expected quoted token")
	}
	escaped := false
	for i := 1; i < len(line); i++ {
		switch {
		case escaped:
			escaped = false
		case line[i] == '\\':
			escaped = true
		case line[i] == '"':
			return line[:i+1], line[i+1:], nil
		}
	}
	return "", "", fmt.Errorf("unterminated quoted token")
}
