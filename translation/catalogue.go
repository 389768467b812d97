package translation

import (
	"sort"
	"sync"
)

type catalogueKey struct {
	id     string
	domain string
}

// Catalogue is a deduplicated collection of messages keyed by (id, domain).
// It is safe for concurrent Add calls so that independent source units can
// be extracted in parallel into one catalogue.
type Catalogue struct {
	mu       sync.Mutex
	messages map[catalogueKey]*Message
}

func NewCatalogue() *Catalogue {
	return &Catalogue{messages: make(map[catalogueKey]*Message)}
}

// Add merges a message into the catalogue. For an existing identity the
// sources accumulate (deduplicated) and non-empty desc/meaning/alt-trans
// fields overwrite earlier values; a new identity is inserted as-is.
func (c *Catalogue) Add(m *Message) {
	c.mu.Lock()
	defer c.mu.Unlock()

	k := catalogueKey{id: m.ID, domain: m.Domain}
	existing, ok := c.messages[k]
	if !ok {
		stored := &Message{ID: m.ID, Domain: m.Domain, Desc: m.Desc, Meaning: m.Meaning}
		for _, source := range m.Sources {
			stored.AddSource(source)
		}
		for locale, text := range m.AltTrans {
			stored.SetAltTrans(locale, text)
		}
		c.messages[k] = stored
		return
	}
	for _, source := range m.Sources {
		existing.AddSource(source)
	}
	if m.Desc != "" {
		existing.Desc = m.Desc
	}
	if m.Meaning != "" {
		existing.Meaning = m.Meaning
	}
	for locale, text := range m.AltTrans {
		existing.SetAltTrans(locale, text)
	}
}

// Get returns the message for (id, domain), or nil.
func (c *Catalogue) Get(id, domain string) *Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.messages[catalogueKey{id: id, domain: domain}]
}

// Len returns the number of distinct (id, domain) identities.
func (c *Catalogue) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.messages)
}

// Messages returns all messages sorted by domain, then id.
func (c *Catalogue) Messages() []*Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*Message, 0, len(c.messages))
	for _, m := range c.messages {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Domain != out[j].Domain {
			return out[i].Domain < out[j].Domain
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Domains returns the distinct domains in sorted order. The empty domain is
// included when present.
func (c *Catalogue) Domains() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	seen := make(map[string]bool)
	var domains []string
	for k := range c.messages {
		if !seen[k.domain] {
			seen[k.domain] = true
			domains = append(domains, k.domain)
		}
	}
	sort.Strings(domains)
	return domains
}
