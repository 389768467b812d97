package docblock

import "testing"

func TestParseIgnore(t *testing.T) {
	directives := Parse("/** @Ignore */", "test")
	if len(directives) != 1 {
		t.Fatalf("expected 1 directive, got %d", len(directives))
	}
	if _, ok := directives[0].(Ignore); !ok {
		t.Fatalf("expected Ignore, got %T", directives[0])
	}
}

func TestParseDesc(t *testing.T) {
	directives := Parse(`/** @Desc("The user's full name") */`, "test")
	if len(directives) != 1 {
		t.Fatalf("expected 1 directive, got %d", len(directives))
	}
	desc, ok := directives[0].(Desc)
	if !ok {
		t.Fatalf("expected Desc, got %T", directives[0])
	}
	if desc.Text != "The user's full name" {
		t.Errorf("unexpected text %q", desc.Text)
	}
}

func TestParseDescNamedArgument(t *testing.T) {
	directives := Parse(`/** @Desc(text="Named form") */`, "test")
	desc, ok := directives[0].(Desc)
	if !ok {
		t.Fatalf("expected Desc, got %T", directives[0])
	}
	if desc.Text != "Named form" {
		t.Errorf("unexpected text %q", desc.Text)
	}
}

func TestParseMeaning(t *testing.T) {
	directives := Parse(`/** @Meaning("navigation entry, not the act") */`, "test")
	meaning, ok := directives[0].(Meaning)
	if !ok {
		t.Fatalf("expected Meaning, got %T", directives[0])
	}
	if meaning.Text != "navigation entry, not the act" {
		t.Errorf("unexpected text %q", meaning.Text)
	}
}

func TestParseAltTransPositional(t *testing.T) {
	directives := Parse(`/** @AltTrans("fr", "Nom complet") */`, "test")
	alt, ok := directives[0].(AltTrans)
	if !ok {
		t.Fatalf("expected AltTrans, got %T", directives[0])
	}
	if alt.Locale != "fr" || alt.Text != "Nom complet" {
		t.Errorf("unexpected alt-trans %+v", alt)
	}
}

func TestParseAltTransNamed(t *testing.T) {
	directives := Parse(`/** @AltTrans(text="Nombre", locale="es") */`, "test")
	alt, ok := directives[0].(AltTrans)
	if !ok {
		t.Fatalf("expected AltTrans, got %T", directives[0])
	}
	if alt.Locale != "es" || alt.Text != "Nombre" {
		t.Errorf("unexpected alt-trans %+v", alt)
	}
}

func TestParseMultipleDirectives(t *testing.T) {
	comment := `/**
	 * @Desc("Shown above the form")
	 * @Meaning("heading")
	 * @AltTrans("de", "Anmeldung")
	 */`
	directives := Parse(comment, "test")
	if len(directives) != 3 {
		t.Fatalf("expected 3 directives, got %d: %+v", len(directives), directives)
	}
	if _, ok := directives[0].(Desc); !ok {
		t.Errorf("directive 0: expected Desc, got %T", directives[0])
	}
	if _, ok := directives[1].(Meaning); !ok {
		t.Errorf("directive 1: expected Meaning, got %T", directives[1])
	}
	if _, ok := directives[2].(AltTrans); !ok {
		t.Errorf("directive 2: expected AltTrans, got %T", directives[2])
	}
}

func TestParseUnknownDirectivesIgnored(t *testing.T) {
	directives := Parse(`/** @var string @deprecated @Desc("kept") */`, "test")
	if len(directives) != 1 {
		t.Fatalf("expected 1 directive, got %d: %+v", len(directives), directives)
	}
	if _, ok := directives[0].(Desc); !ok {
		t.Fatalf("expected Desc, got %T", directives[0])
	}
}

func TestParseEmailIsNotADirective(t *testing.T) {
	directives := Parse("/** contact jane@example.org for details */", "test")
	if len(directives) != 0 {
		t.Fatalf("expected 0 directives, got %+v", directives)
	}
}

func TestParseEscapedQuote(t *testing.T) {
	directives := Parse(`/** @Desc("say \"hi\"") */`, "test")
	desc := directives[0].(Desc)
	if desc.Text != `say "hi"` {
		t.Errorf("unexpected text %q", desc.Text)
	}
}

func TestParseMalformedArgumentsSkipped(t *testing.T) {
	directives := Parse(`/** @Desc(unclosed @Meaning("ok") */`, "test")
	// the malformed @Desc is dropped; scanning resumes at the next directive
	if len(directives) != 1 {
		t.Fatalf("expected 1 directive, got %d: %+v", len(directives), directives)
	}
	if _, ok := directives[0].(Meaning); !ok {
		t.Fatalf("expected Meaning, got %T", directives[0])
	}
}
