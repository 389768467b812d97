// Package translation holds the catalogue of extracted translation units.
package translation

import "fmt"

// SourceRef points at the literal a message was extracted from.
type SourceRef struct {
	File string
	Line int
}

func (r SourceRef) String() string {
	return fmt.Sprintf("%s:%d", r.File, r.Line)
}

// Message is one translation unit. Identity is (ID, Domain); Domain is the
// empty string when no domain was resolved.
type Message struct {
	ID       string
	Domain   string
	Desc     string
	Meaning  string
	Sources  []SourceRef
	AltTrans map[string]string // locale -> text
}

// NewMessage returns a message with a single source reference.
func NewMessage(id, domain string, source SourceRef) *Message {
	return &Message{
		ID:      id,
		Domain:  domain,
		Sources: []SourceRef{source},
	}
}

// AddSource appends a source reference unless it is already recorded.
func (m *Message) AddSource(source SourceRef) {
	for _, existing := range m.Sources {
		if existing == source {
			return
		}
	}
	m.Sources = append(m.Sources, source)
}

// SetAltTrans records a translation hint for a locale, replacing any
// earlier hint for the same locale.
func (m *Message) SetAltTrans(locale, text string) {
	if m.AltTrans == nil {
		m.AltTrans = make(map[string]string)
	}
	m.AltTrans[locale] = text
}
