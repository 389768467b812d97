package dump

import (
	"encoding/xml"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TNAJanssen/JMSTranslationBundle2/translation"
)

func TestXLIFFDocumentShape(t *testing.T) {
	out, err := XLIFF(testCatalogue(), "account", "en", "en")
	require.NoError(t, err)

	var doc xliffDocument
	require.NoError(t, xml.Unmarshal(out, &doc))

	assert.Equal(t, "1.2", doc.Version)
	assert.Equal(t, "en", doc.File.SourceLanguage)
	assert.Equal(t, "en", doc.File.TargetLanguage)
	require.Len(t, doc.File.Body, 2)

	// units follow catalogue order: sorted by id within the domain
	assert.Equal(t, "Email", doc.File.Body[0].Resname)
	assert.Equal(t, "Sign up", doc.File.Body[1].Resname)
	assert.Equal(t, "1", doc.File.Body[0].ID)
	assert.Equal(t, "2", doc.File.Body[1].ID)

	unit := doc.File.Body[1]
	assert.Equal(t, "Sign up", unit.Source)
	assert.Equal(t, "Sign up", unit.Target)
}

func TestXLIFFNotesAndContexts(t *testing.T) {
	out, err := XLIFF(testCatalogue(), "account", "en", "de")
	require.NoError(t, err)

	var doc xliffDocument
	require.NoError(t, xml.Unmarshal(out, &doc))

	unit := doc.File.Body[1] // Sign up
	require.Len(t, unit.Notes, 2)
	assert.Equal(t, xliffNote{From: "meaning", Text: "imperative"}, unit.Notes[0])
	assert.Equal(t, xliffNote{From: "description", Text: "Button on the registration form"}, unit.Notes[1])

	require.Len(t, unit.Contexts, 1)
	require.Len(t, unit.Contexts[0].Contexts, 2)
	assert.Equal(t, "RegistrationType.php", unit.Contexts[0].Contexts[0].Text)
	assert.Equal(t, "12", unit.Contexts[0].Contexts[1].Text)

	// the plain Email unit carries neither
	assert.Empty(t, doc.File.Body[0].Notes)
}

func TestXLIFFAltTransSorted(t *testing.T) {
	cat := translation.NewCatalogue()
	m := translation.NewMessage("Full name", "", translation.SourceRef{File: "Form.php", Line: 2})
	m.SetAltTrans("fr", "Nom complet")
	m.SetAltTrans("de", "Vollständiger Name")
	cat.Add(m)

	out, err := XLIFF(cat, "", "en", "en")
	require.NoError(t, err)

	text := string(out)
	de := strings.Index(text, `xml:lang="de"`)
	fr := strings.Index(text, `xml:lang="fr"`)
	require.NotEqual(t, -1, de)
	require.NotEqual(t, -1, fr)
	assert.Less(t, de, fr)
	assert.Contains(t, text, "Nom complet")
}

func TestXLIFFFiltersByDomain(t *testing.T) {
	out, err := XLIFF(testCatalogue(), "", "en", "en")
	require.NoError(t, err)

	var doc xliffDocument
	require.NoError(t, xml.Unmarshal(out, &doc))
	require.Len(t, doc.File.Body, 1)
	assert.Equal(t, "Hello", doc.File.Body[0].Resname)
}

func TestXLIFFHeader(t *testing.T) {
	out, err := XLIFF(testCatalogue(), "account", "en", "en")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), xml.Header))
	assert.Contains(t, string(out), "urn:oasis:names:tc:xliff:document:1.2")
}
