package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed messages.yaml
var defaultMessages []byte

// Ref points at a catalog entry that is rendered in place of a literal value,
// e.g. the localized word for "row" inside a larger message.
type Ref struct {
	Component string
	Key       string
}

// R builds a Ref.
func R(component, key string) Ref {
	return Ref{Component: component, Key: key}
}

// Catalog maps language -> component -> key -> message template.
// A loaded Catalog is read-only and safe for concurrent use.
type Catalog struct {
	entries map[Language]map[string]map[string]string
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Default returns the catalog embedded in the binary. It is parsed once.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCatalog, defaultErr = Load(defaultMessages)
	})
	return defaultCatalog, defaultErr
}

// MustDefault returns the embedded catalog, panicking if it is broken.
func MustDefault() *Catalog {
	c, err := Default()
	if err != nil {
		panic(fmt.Sprintf("failed to load message catalog: %v", err))
	}
	return c
}

// LoadFile reads an external catalog file.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigError{Message: fmt.Sprintf("failed to read catalog file %s", path), Cause: err}
	}
	return Load(data)
}

// Load parses a YAML catalog. Every supported language must be present and
// must define every key the primary language defines.
func Load(data []byte) (*Catalog, error) {
	var raw map[string]map[string]map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &ConfigError{Message: "failed to parse catalog YAML", Cause: err}
	}

	c := &Catalog{entries: make(map[Language]map[string]map[string]string, len(raw))}
	for name, components := range raw {
		lang, err := ParseLanguage(name)
		if err != nil {
			return nil, err
		}
		c.entries[lang] = components
	}

	primary, ok := c.entries[Primary]
	if !ok {
		return nil, &ConfigError{Language: Primary, Message: "primary language missing from catalog"}
	}
	for _, lang := range Languages {
		if lang == Primary {
			continue
		}
		components, ok := c.entries[lang]
		if !ok {
			return nil, &ConfigError{Language: lang, Message: "language missing from catalog"}
		}
		var missing []string
		for component, keys := range primary {
			for key := range keys {
				if _, ok := components[component][key]; !ok {
					missing = append(missing, component+"."+key)
				}
			}
		}
		if len(missing) > 0 {
			sort.Strings(missing)
			return nil, &ConfigError{Language: lang, Message: "missing keys: " + strings.Join(missing, ", ")}
		}
	}

	return c, nil
}

// Get returns the template for a key.
func (c *Catalog) Get(lang Language, component, key string) (string, error) {
	components, ok := c.entries[lang]
	if !ok {
		return "", &ConfigError{Language: lang, Message: "language not loaded"}
	}
	msg, ok := components[component][key]
	if !ok {
		return "", &ConfigError{Language: lang, Message: fmt.Sprintf("key %s.%s not found", component, key)}
	}
	return msg, nil
}

// MustGet returns the template for a key, panicking if it is absent.
func (c *Catalog) MustGet(lang Language, component, key string) string {
	msg, err := c.Get(lang, component, key)
	if err != nil {
		panic(err.Error())
	}
	return msg
}

// Require verifies that every listed key exists for lang.
func (c *Catalog) Require(lang Language, component string, keys ...string) error {
	var missing []string
	for _, key := range keys {
		if _, err := c.Get(lang, component, key); err != nil {
			missing = append(missing, component+"."+key)
		}
	}
	if len(missing) > 0 {
		return &ConfigError{Language: lang, Message: "missing keys: " + strings.Join(missing, ", ")}
	}
	return nil
}

// Keys returns the sorted keys of a component.
func (c *Catalog) Keys(lang Language, component string) []string {
	keys := make([]string, 0, len(c.entries[lang][component]))
	for key := range c.entries[lang][component] {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Components returns the sorted component names for lang.
func (c *Catalog) Components(lang Language) []string {
	names := make([]string, 0, len(c.entries[lang]))
	for name := range c.entries[lang] {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var placeholderPattern = regexp.MustCompile(`\{\{\.(\w+)\}\}`)

// Format replaces placeholders in the form {{.Key}} with values from data in a
// single pass. Placeholders without a value are left untouched.
func Format(template string, data map[string]string) string {
	return placeholderPattern.ReplaceAllStringFunc(template, func(match string) string {
		key := placeholderPattern.FindStringSubmatch(match)[1]
		if value, ok := data[key]; ok {
			return value
		}
		return match
	})
}
