package docblock

// Parse extracts directives from a raw comment, comment markers included.
// The where tag names the source location for annotation tooling; it does
// not influence parsing. Unknown directives and malformed argument lists are
// skipped, never reported: a doc comment can legally contain anything.
func Parse(comment string, where string) []Directive {
	_ = where
	var directives []Directive
	s := &scanner{input: comment}
	for {
		if !s.seekByte('@') {
			return directives
		}
		name := s.scanName()
		if name == "" {
			continue
		}
		args, ok := s.scanArgs()
		if !ok {
			continue
		}
		switch name {
		case "Ignore":
			directives = append(directives, Ignore{})
		case "Desc":
			if text, ok := args.first("text"); ok {
				directives = append(directives, Desc{Text: text})
			}
		case "Meaning":
			if text, ok := args.first("text"); ok {
				directives = append(directives, Meaning{Text: text})
			}
		case "AltTrans":
			locale, okLocale := args.at(0, "locale")
			text, okText := args.at(1, "text")
			if okLocale && okText {
				directives = append(directives, AltTrans{Locale: locale, Text: text})
			}
		}
	}
}

type argument struct {
	name  string // empty for positional arguments
	value string
}

type arguments []argument

// first returns the first positional argument, or the named one as a
// fallback.
func (a arguments) first(name string) (string, bool) {
	return a.at(0, name)
}

// at returns the positional argument at index i, counting positional
// arguments only, or the argument with the given name.
func (a arguments) at(i int, name string) (string, bool) {
	pos := 0
	for _, arg := range a {
		if arg.name == name {
			return arg.value, true
		}
		if arg.name == "" {
			if pos == i {
				return arg.value, true
			}
			pos++
		}
	}
	return "", false
}

type scanner struct {
	input string
	pos   int
}

func (s *scanner) peek() byte {
	if s.pos >= len(s.input) {
		return 0
	}
	return s.input[s.pos]
}

func (s *scanner) seekByte(ch byte) bool {
	for s.pos < len(s.input) {
		if s.input[s.pos] == ch {
			s.pos++
			return true
		}
		s.pos++
	}
	return false
}

func (s *scanner) scanName() string {
	start := s.pos
	for s.pos < len(s.input) && isNameByte(s.input[s.pos]) {
		s.pos++
	}
	return s.input[start:s.pos]
}

func (s *scanner) skipSpace() {
	for s.pos < len(s.input) {
		switch s.input[s.pos] {
		case ' ', '\t', '\r', '\n':
			s.pos++
		default:
			return
		}
	}
}

// scanArgs parses an optional parenthesized argument list following a
// directive name. A directive without parentheses has an empty, valid
// argument list.
func (s *scanner) scanArgs() (arguments, bool) {
	s.skipSpace()
	if s.peek() != '(' {
		return nil, true
	}
	s.pos++
	var args arguments
	for {
		s.skipSpace()
		switch s.peek() {
		case 0:
			return nil, false
		case ')':
			s.pos++
			return args, true
		case ',':
			s.pos++
			continue
		}
		arg, ok := s.scanArg()
		if !ok {
			return nil, false
		}
		args = append(args, arg)
	}
}

func (s *scanner) scanArg() (argument, bool) {
	if s.peek() == '"' || s.peek() == '\'' {
		value, ok := s.scanQuoted()
		return argument{value: value}, ok
	}
	name := s.scanName()
	if name == "" {
		return argument{}, false
	}
	s.skipSpace()
	if s.peek() != '=' {
		return argument{}, false
	}
	s.pos++
	s.skipSpace()
	if s.peek() != '"' && s.peek() != '\'' {
		return argument{}, false
	}
	value, ok := s.scanQuoted()
	return argument{name: name, value: value}, ok
}

func (s *scanner) scanQuoted() (string, bool) {
	quote := s.input[s.pos]
	s.pos++
	var out []byte
	for s.pos < len(s.input) {
		ch := s.input[s.pos]
		if ch == '\\' && s.pos+1 < len(s.input) {
			out = append(out, s.input[s.pos+1])
			s.pos += 2
			continue
		}
		if ch == quote {
			s.pos++
			return string(out), true
		}
		out = append(out, ch)
		s.pos++
	}
	return "", false
}

func isNameByte(ch byte) bool {
	return ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' || ch >= '0' && ch <= '9' || ch == '_'
}
