package parser

type Lexer struct {
	input  []byte
	file   string
	pos    int
	line   int
	column int
	inPHP  bool
}

func NewLexer(input []byte, file string) *Lexer {
	return &Lexer{
		input:  input,
		file:   file,
		pos:    0,
		line:   1,
		column: 1,
	}
}

func (l *Lexer) Position() Position {
	return Position{
		File:   l.file,
		Offset: l.pos,
		Line:   l.line,
		Column: l.column,
	}
}

func (l *Lexer) peek() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) peekN(n int) byte {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

func (l *Lexer) advance() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	ch := l.input[l.pos]
	l.pos++
	if ch == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return ch
}

func (l *Lexer) advanceN(n int) {
	for i := 0; i < n; i++ {
		l.advance()
	}
}

func (l *Lexer) hasPrefix(s string) bool {
	if l.pos+len(s) > len(l.input) {
		return false
	}
	return string(l.input[l.pos:l.pos+len(s)]) == s
}

func (l *Lexer) NextToken() Token {
	startPos := l.Position()

	if l.pos >= len(l.input) {
		return Token{Kind: TokenEOF, Span: Span{Start: startPos, End: startPos}}
	}

	if !l.inPHP {
		return l.scanInlineHTML(startPos)
	}

	ch := l.peek()

	if ch == '?' && l.peekN(1) == '>' {
		l.advanceN(2)
		l.inPHP = false
		return l.makeToken(TokenCloseTag, startPos)
	}

	if ch == '/' && l.peekN(1) == '/' || ch == '#' {
		return l.scanLineComment(startPos)
	}
	if ch == '/' && l.peekN(1) == '*' {
		return l.scanBlockComment(startPos)
	}

	if ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n' {
		return l.scanWhitespace(startPos)
	}

	if ch == '$' && isNameStart(l.peekN(1)) {
		return l.scanVariable(startPos)
	}

	if isNameStart(ch) {
		return l.scanIdentOrKeyword(startPos)
	}

	if isDigit(ch) {
		return l.scanNumber(startPos)
	}

	if ch == '\'' || ch == '"' {
		return l.scanStringLiteral(startPos, ch)
	}

	return l.scanOperator(startPos)
}

func (l *Lexer) makeToken(kind TokenKind, start Position) Token {
	end := l.Position()
	return Token{
		Kind:    kind,
		Span:    Span{Start: start, End: end},
		Literal: string(l.input[start.Offset:end.Offset]),
	}
}

// scanInlineHTML consumes everything up to the next opening tag. The opening
// tag itself is emitted as a separate token.
func (l *Lexer) scanInlineHTML(start Position) Token {
	if l.hasPrefix("<?php") {
		l.advanceN(5)
		l.inPHP = true
		return l.makeToken(TokenOpenTag, start)
	}
	if l.hasPrefix("<?=") || l.hasPrefix("<?") {
		n := 2
		if l.hasPrefix("<?=") {
			n = 3
		}
		l.advanceN(n)
		l.inPHP = true
		return l.makeToken(TokenOpenTag, start)
	}
	for l.pos < len(l.input) && !l.hasPrefix("<?") {
		l.advance()
	}
	return l.makeToken(TokenInlineHTML, start)
}

func (l *Lexer) scanWhitespace(start Position) Token {
	for {
		ch := l.peek()
		if ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n' {
			l.advance()
		} else {
			break
		}
	}
	return l.makeToken(TokenWhitespace, start)
}

func (l *Lexer) scanLineComment(start Position) Token {
	if l.peek() == '#' {
		l.advance()
	} else {
		l.advanceN(2)
	}
	for l.peek() != 0 && l.peek() != '\n' {
		// a close tag ends a line comment in PHP
		if l.peek() == '?' && l.peekN(1) == '>' {
			break
		}
		l.advance()
	}
	return l.makeToken(TokenLineComment, start)
}

func (l *Lexer) scanBlockComment(start Position) Token {
	l.advanceN(2)
	for {
		if l.peek() == 0 {
			break
		}
		if l.peek() == '*' && l.peekN(1) == '/' {
			l.advanceN(2)
			break
		}
		l.advance()
	}
	return l.makeToken(TokenComment, start)
}

func (l *Lexer) scanVariable(start Position) Token {
	l.advance() // $
	for isNamePart(l.peek()) {
		l.advance()
	}
	return l.makeToken(TokenVariable, start)
}

func (l *Lexer) scanIdentOrKeyword(start Position) Token {
	for isNamePart(l.peek()) {
		l.advance()
	}
	tok := l.makeToken(TokenIdent, start)
	tok.Kind = LookupKeyword(tok.Literal)
	return tok
}

func (l *Lexer) scanNumber(start Position) Token {
	if l.peek() == '0' && (l.peekN(1) == 'x' || l.peekN(1) == 'X') {
		l.advanceN(2)
		for isHexDigit(l.peek()) || l.peek() == '_' {
			l.advance()
		}
		return l.makeToken(TokenIntLiteral, start)
	}
	kind := TokenIntLiteral
	for isDigit(l.peek()) || l.peek() == '_' {
		l.advance()
	}
	if l.peek() == '.' && isDigit(l.peekN(1)) {
		kind = TokenFloatLiteral
		l.advance()
		for isDigit(l.peek()) || l.peek() == '_' {
			l.advance()
		}
	}
	if l.peek() == 'e' || l.peek() == 'E' {
		next := l.peekN(1)
		if isDigit(next) || ((next == '+' || next == '-') && isDigit(l.peekN(2))) {
			kind = TokenFloatLiteral
			l.advance()
			if l.peek() == '+' || l.peek() == '-' {
				l.advance()
			}
			for isDigit(l.peek()) {
				l.advance()
			}
		}
	}
	return l.makeToken(kind, start)
}

func (l *Lexer) scanStringLiteral(start Position, quote byte) Token {
	l.advance() // opening quote
	for {
		ch := l.peek()
		if ch == 0 {
			break
		}
		if ch == '\\' {
			l.advanceN(2)
			continue
		}
		if ch == quote {
			l.advance()
			break
		}
		l.advance()
	}
	return l.makeToken(TokenStringLiteral, start)
}

func (l *Lexer) scanOperator(start Position) Token {
	ch := l.advance()
	switch ch {
	case '(':
		return l.makeToken(TokenLParen, start)
	case ')':
		return l.makeToken(TokenRParen, start)
	case '{':
		return l.makeToken(TokenLBrace, start)
	case '}':
		return l.makeToken(TokenRBrace, start)
	case '[':
		return l.makeToken(TokenLBracket, start)
	case ']':
		return l.makeToken(TokenRBracket, start)
	case ';':
		return l.makeToken(TokenSemicolon, start)
	case ',':
		return l.makeToken(TokenComma, start)
	case '-':
		if l.peek() == '>' {
			l.advance()
			return l.makeToken(TokenArrow, start)
		}
	case '=':
		if l.peek() == '>' {
			l.advance()
			return l.makeToken(TokenDoubleArrow, start)
		}
		if l.peek() == '=' {
			l.advance()
			if l.peek() == '=' {
				l.advance()
			}
			return l.makeToken(TokenOther, start)
		}
		return l.makeToken(TokenAssign, start)
	case ':':
		if l.peek() == ':' {
			l.advance()
			return l.makeToken(TokenDoubleColon, start)
		}
		return l.makeToken(TokenColon, start)
	case '.':
		return l.makeToken(TokenDot, start)
	case '\\':
		return l.makeToken(TokenBackslash, start)
	case '?':
		return l.makeToken(TokenQuestion, start)
	case '&':
		return l.makeToken(TokenAmpersand, start)
	case '!':
		if l.peek() == '=' {
			l.advance()
			if l.peek() == '=' {
				l.advance()
			}
			return l.makeToken(TokenOther, start)
		}
		return l.makeToken(TokenBang, start)
	}
	return l.makeToken(TokenOther, start)
}

func isNameStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch >= 0x80
}

func isNamePart(ch byte) bool {
	return isNameStart(ch) || isDigit(ch)
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isHexDigit(ch byte) bool {
	return isDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}
