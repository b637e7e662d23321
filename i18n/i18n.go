// Package i18n turns route instruction keys into text.
//
// The route engine never formats user-facing strings itself; it asks a
// Translator for one of three keys with a destination and, for floor
// changes, the target floor. A Catalog holds "{destination}"/"{floor}"
// templates per language and picks the best language for a request tag
// with golang.org/x/text/language matching. Missing keys fall back to
// English, then to the key itself.
package i18n

import (
	"embed"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"golang.org/x/text/language"
)

// Instruction keys.
const (
	KeyGoTo      = "goTo"
	KeyProceedTo = "proceedTo"
	KeyArrivedAt = "arrivedAt"
)

// ErrBadTag is returned when a catalog file names an unparsable language.
var ErrBadTag = errors.New("i18n: bad language tag")

// Params fill the placeholders of a message.
type Params struct {
	Destination string
	Floor       int
}

// Translator renders a message key.
type Translator interface {
	Translate(key string, p Params) string
}

// Func adapts a plain function to Translator.
type Func func(key string, p Params) string

// Translate implements Translator.
func (f Func) Translate(key string, p Params) string { return f(key, p) }

// Messages maps keys to templates of one language.
type Messages map[string]string

// English is the built-in fallback catalog.
var English = Messages{
	KeyGoTo:      "Take the {destination} to floor {floor}",
	KeyProceedTo: "Proceed to {destination}",
	KeyArrivedAt: "You have arrived at {destination}",
}

//go:embed locales/*.toml
var locales embed.FS

// Catalog holds messages for several languages. Build it up front with
// Add/Load; lookups are safe for concurrent use once building is done.
type Catalog struct {
	tags    []language.Tag
	msgs    []Messages
	matcher language.Matcher
}

// NewCatalog returns a catalog containing only English.
func NewCatalog() *Catalog {
	c := &Catalog{}
	c.Add(language.English, English)
	return c
}

// Default returns the catalog with every bundled language.
func Default() *Catalog {
	c := NewCatalog()
	entries, err := locales.ReadDir("locales")
	if err != nil {
		panic(err)
	}
	for _, e := range entries {
		f, err := locales.Open("locales/" + e.Name())
		if err != nil {
			panic(err)
		}
		if err := c.Decode(f); err != nil {
			panic(fmt.Sprintf("i18n: bundled %s: %v", e.Name(), err))
		}
		f.Close()
	}
	return c
}

// Add merges msgs into the messages of tag.
func (c *Catalog) Add(tag language.Tag, msgs Messages) {
	for i, t := range c.tags {
		if t == tag {
			for k, v := range msgs {
				c.msgs[i][k] = v
			}
			return
		}
	}
	own := make(Messages, len(msgs))
	for k, v := range msgs {
		own[k] = v
	}
	c.tags = append(c.tags, tag)
	c.msgs = append(c.msgs, own)
	c.matcher = language.NewMatcher(c.tags)
}

// Decode reads a TOML catalog whose tables are language tags:
//
//	[hi]
//	proceedTo = "{destination} की ओर बढ़ें"
func (c *Catalog) Decode(r io.Reader) error {
	var file map[string]Messages
	if _, err := toml.NewDecoder(r).Decode(&file); err != nil {
		return fmt.Errorf("i18n: decode catalog: %w", err)
	}
	for _, name := range slices.Sorted(maps.Keys(file)) {
		tag, err := language.Parse(name)
		if err != nil {
			return fmt.Errorf("%w: %q: %v", ErrBadTag, name, err)
		}
		c.Add(tag, file[name])
	}
	return nil
}

// Load reads a TOML catalog file into c.
func (c *Catalog) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("i18n: open %s: %w", path, err)
	}
	defer f.Close()
	return c.Decode(f)
}

// Languages returns the tags c holds, English first.
func (c *Catalog) Languages() []string {
	out := make([]string, len(c.tags))
	for i, t := range c.tags {
		out[i] = t.String()
	}
	return out
}

// For returns the translator best matching lang ("hi", "kn-IN",
// "en-GB,en;q=0.8", ...). Unknown or unparsable input yields English.
func (c *Catalog) For(lang string) Translator {
	desired, _, err := language.ParseAcceptLanguage(lang)
	if err != nil || len(desired) == 0 {
		return translator{msgs: c.msgs[0], fallback: c.msgs[0]}
	}
	_, idx, conf := c.matcher.Match(desired...)
	if conf == language.No {
		idx = 0
	}
	return translator{msgs: c.msgs[idx], fallback: c.msgs[0]}
}

// Translate implements Translator with the English messages.
func (c *Catalog) Translate(key string, p Params) string {
	return translator{msgs: c.msgs[0], fallback: c.msgs[0]}.Translate(key, p)
}

type translator struct {
	msgs, fallback Messages
}

func (t translator) Translate(key string, p Params) string {
	tmpl, ok := t.msgs[key]
	if !ok {
		tmpl, ok = t.fallback[key]
	}
	if !ok {
		return key
	}
	return Format(tmpl, p)
}

// Format fills the {destination} and {floor} placeholders of tmpl.
func Format(tmpl string, p Params) string {
	return strings.NewReplacer(
		"{destination}", p.Destination,
		"{floor}", strconv.Itoa(p.Floor),
	).Replace(tmpl)
}
