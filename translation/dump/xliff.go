package dump

import (
	"bytes"
	"encoding/xml"
	"sort"
	"strconv"

	"github.com/TNAJanssen/JMSTranslationBundle2/translation"
)

func sortedLocales(alternates map[string]string) []string {
	locales := make([]string, 0, len(alternates))
	for locale := range alternates {
		locales = append(locales, locale)
	}
	sort.Strings(locales)
	return locales
}

type xliffDocument struct {
	XMLName xml.Name  `xml:"xliff"`
	Version string    `xml:"version,attr"`
	Xmlns   string    `xml:"xmlns,attr"`
	File    xliffFile `xml:"file"`
}

type xliffFile struct {
	SourceLanguage string      `xml:"source-language,attr"`
	TargetLanguage string      `xml:"target-language,attr"`
	Datatype       string      `xml:"datatype,attr"`
	Original       string      `xml:"original,attr"`
	Body           []xliffUnit `xml:"body>trans-unit"`
}

type xliffUnit struct {
	ID       string          `xml:"id,attr"`
	Resname  string          `xml:"resname,attr"`
	Source   string          `xml:"source"`
	Target   string          `xml:"target"`
	Notes    []xliffNote     `xml:"note,omitempty"`
	Contexts []xliffGroup    `xml:"context-group,omitempty"`
	AltTrans []xliffAltTrans `xml:"alt-trans,omitempty"`
}

type xliffNote struct {
	From string `xml:"from,attr"`
	Text string `xml:",chardata"`
}

type xliffGroup struct {
	Name     string         `xml:"name,attr"`
	Contexts []xliffContext `xml:"context"`
}

type xliffContext struct {
	Type string `xml:"context-type,attr"`
	Text string `xml:",chardata"`
}

type xliffAltTrans struct {
	Lang   string `xml:"xml:lang,attr"`
	Target string `xml:"target"`
}

// XLIFF renders one domain of the catalogue as an XLIFF 1.2 document with
// the source text doubling as the initial target. Descriptions, meanings,
// source references, and alternate-locale hints ride along as notes,
// context groups, and alt-trans elements.
func XLIFF(cat *translation.Catalogue, domain, sourceLocale, targetLocale string) ([]byte, error) {
	doc := xliffDocument{
		Version: "1.2",
		Xmlns:   "urn:oasis:names:tc:xliff:document:1.2",
		File: xliffFile{
			SourceLanguage: sourceLocale,
			TargetLanguage: targetLocale,
			Datatype:       "plaintext",
			Original:       "not.available",
		},
	}
	seq := 0
	for _, m := range cat.Messages() {
		if m.Domain != domain {
			continue
		}
		seq++
		unit := xliffUnit{
			ID:      strconv.Itoa(seq),
			Resname: m.ID,
			Source:  m.ID,
			Target:  m.ID,
		}
		if m.Meaning != "" {
			unit.Notes = append(unit.Notes, xliffNote{From: "meaning", Text: m.Meaning})
		}
		if m.Desc != "" {
			unit.Notes = append(unit.Notes, xliffNote{From: "description", Text: m.Desc})
		}
		for _, source := range m.Sources {
			unit.Contexts = append(unit.Contexts, xliffGroup{
				Name: "location",
				Contexts: []xliffContext{
					{Type: "sourcefile", Text: source.File},
					{Type: "linenumber", Text: strconv.Itoa(source.Line)},
				},
			})
		}
		for _, locale := range sortedLocales(m.AltTrans) {
			unit.AltTrans = append(unit.AltTrans, xliffAltTrans{
				Lang:   locale,
				Target: m.AltTrans[locale],
			})
		}
		doc.File.Body = append(doc.File.Body, unit)
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
