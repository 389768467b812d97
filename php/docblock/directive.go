// Package docblock parses translation directives out of PHP doc comments.
package docblock

// Directive is the interface implemented by all docblock directives.
type Directive interface {
	directive()
}

// Ignore marks a literal as intentionally untranslated (@Ignore).
type Ignore struct{}

func (Ignore) directive() {}

// Desc carries a human description for translators (@Desc("...")).
type Desc struct {
	Text string
}

func (Desc) directive() {}

// Meaning disambiguates otherwise identical ids (@Meaning("...")).
type Meaning struct {
	Text string
}

func (Meaning) directive() {}

// AltTrans provides a translation hint for one locale
// (@AltTrans("fr", "...") or @AltTrans(locale="fr", text="...")).
type AltTrans struct {
	Locale string
	Text   string
}

func (AltTrans) directive() {}
