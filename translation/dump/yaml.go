// Package dump serializes extracted catalogues for translators.
package dump

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/TNAJanssen/JMSTranslationBundle2/translation"
)

// DefaultDomain is the name used for messages without a resolved domain.
const DefaultDomain = "messages"

// DomainName maps the core's empty "no domain" marker to the conventional
// default domain name.
func DomainName(domain string) string {
	if domain == "" {
		return DefaultDomain
	}
	return domain
}

// YAML renders one domain of the catalogue as a translation template: each
// id maps to itself as the initial target, with extraction metadata kept in
// comments above the entry. Pass "" for messages without a domain.
func YAML(cat *translation.Catalogue, domain string) ([]byte, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, m := range cat.Messages() {
		if m.Domain != domain {
			continue
		}
		key := &yaml.Node{
			Kind:        yaml.ScalarNode,
			Value:       m.ID,
			HeadComment: messageComment(m),
		}
		value := &yaml.Node{Kind: yaml.ScalarNode, Value: m.ID}
		root.Content = append(root.Content, key, value)
	}
	return yaml.Marshal(root)
}

func messageComment(m *translation.Message) string {
	var lines []string
	if m.Desc != "" {
		lines = append(lines, "desc: "+m.Desc)
	}
	if m.Meaning != "" {
		lines = append(lines, "meaning: "+m.Meaning)
	}
	for _, source := range m.Sources {
		lines = append(lines, "source: "+source.String())
	}
	return strings.Join(lines, "\n")
}

// FileName returns the conventional translation file name for a domain and
// locale, such as messages.en.yml.
func FileName(domain, locale, ext string) string {
	return fmt.Sprintf("%s.%s.%s", DomainName(domain), locale, ext)
}
