package parser

import "strings"

// Parser reads a PHP source unit into a slice of root nodes. It is
// deliberately tolerant: statements it cannot parse are skipped to the next
// statement boundary instead of failing the whole unit.
type Parser struct {
	lex        *Lexer
	tok        Token
	pendingDoc string
}

// Parse parses one PHP source unit and returns its root nodes in source
// order. Class declarations become Class nodes whose Body holds the
// expression statements of every method; expressions outside any class are
// returned directly.
func Parse(input []byte, file string) []Node {
	p := &Parser{lex: NewLexer(input, file)}
	p.next()
	return p.parseStatements(TokenEOF)
}

func (p *Parser) next() {
	for {
		tok := p.lex.NextToken()
		switch tok.Kind {
		case TokenWhitespace, TokenLineComment, TokenInlineHTML, TokenOpenTag, TokenCloseTag:
			continue
		case TokenComment:
			// block comments attach to the next expression node
			p.pendingDoc = tok.Literal
			continue
		}
		p.tok = tok
		return
	}
}

func (p *Parser) takeDoc() string {
	doc := p.pendingDoc
	p.pendingDoc = ""
	return doc
}

func (p *Parser) parseStatements(stop TokenKind) []Node {
	var stmts []Node
	for p.tok.Kind != TokenEOF {
		if p.tok.Kind == stop {
			p.next()
			return stmts
		}
		switch p.tok.Kind {
		case TokenSemicolon:
			p.pendingDoc = ""
			p.next()
		case TokenLBrace:
			p.next()
			stmts = append(stmts, p.parseStatements(TokenRBrace)...)
		case TokenRBrace:
			// stray closer; drop it
			p.next()
		case TokenNamespace, TokenUse:
			p.skipToSemicolon()
		case TokenAbstract, TokenFinal:
			p.next()
		case TokenClass, TokenTrait, TokenInterface:
			stmts = append(stmts, p.parseClass())
		case TokenFunction:
			stmts = append(stmts, p.parseFunctionBody()...)
		case TokenReturn:
			pos := p.tok.Span.Start
			p.next()
			ret := &Return{base: base{Position: pos}}
			if p.tok.Kind != TokenSemicolon {
				ret.Value = p.parseExpr()
			}
			stmts = append(stmts, ret)
			p.skipToSemicolon()
		default:
			before := p.tok.Span.Start.Offset
			expr := p.parseExpr()
			if expr != nil {
				stmts = append(stmts, expr)
			}
			if p.tok.Kind == TokenSemicolon {
				p.pendingDoc = ""
				p.next()
			} else if p.tok.Span.Start.Offset == before {
				// no progress; drop one token
				p.next()
			}
		}
	}
	return stmts
}

func (p *Parser) parseClass() *Class {
	pos := p.tok.Span.Start
	p.next() // class, trait, or interface
	cls := &Class{base: base{Position: pos, Doc: p.takeDoc()}}
	if p.tok.Kind == TokenIdent {
		cls.Name = p.tok.Literal
		p.next()
	}
	for p.tok.Kind != TokenLBrace && p.tok.Kind != TokenEOF && p.tok.Kind != TokenSemicolon {
		p.next() // extends/implements clause
	}
	if p.tok.Kind == TokenLBrace {
		p.next()
		cls.Body = p.parseClassBody()
	}
	return cls
}

func (p *Parser) parseClassBody() []Node {
	var body []Node
	for p.tok.Kind != TokenRBrace && p.tok.Kind != TokenEOF {
		switch p.tok.Kind {
		case TokenPublic, TokenPrivate, TokenProtected, TokenStatic, TokenAbstract, TokenFinal, TokenQuestion:
			p.next()
		case TokenFunction:
			body = append(body, p.parseFunctionBody()...)
		case TokenConst, TokenUse:
			p.skipToSemicolon()
		case TokenVariable:
			// property declaration, possibly with a default value
			expr := p.parseExpr()
			if expr != nil {
				body = append(body, expr)
			}
			p.skipToSemicolon()
		case TokenIdent, TokenArray, TokenBackslash:
			// property type ahead of the variable name
			p.next()
		case TokenSemicolon:
			p.pendingDoc = ""
			p.next()
		default:
			p.next()
		}
	}
	if p.tok.Kind == TokenRBrace {
		p.next()
	}
	return body
}

// parseFunctionBody skips a function signature and returns the statements of
// its body. Abstract and interface methods without a body yield nothing.
func (p *Parser) parseFunctionBody() []Node {
	p.next() // function
	if p.tok.Kind == TokenAmpersand {
		p.next()
	}
	if p.tok.Kind == TokenIdent || isKeywordToken(p.tok.Kind) {
		p.next() // name; keywords are valid method names in PHP
	}
	if p.tok.Kind == TokenLParen {
		p.skipBalancedParens()
	}
	for p.tok.Kind != TokenLBrace && p.tok.Kind != TokenSemicolon && p.tok.Kind != TokenEOF {
		p.next() // return type
	}
	if p.tok.Kind == TokenSemicolon {
		p.next()
		return nil
	}
	if p.tok.Kind == TokenLBrace {
		p.next()
		return p.parseStatements(TokenRBrace)
	}
	return nil
}

func (p *Parser) parseExpr() Node {
	left := p.parseConcat()
	if left == nil {
		return nil
	}
	switch p.tok.Kind {
	case TokenAssign:
		pos := left.Pos()
		p.next()
		right := p.parseExpr()
		if right == nil {
			return left
		}
		return &Assign{base: base{Position: pos}, Target: left, Value: right}
	case TokenQuestion:
		pos := left.Pos()
		p.next()
		mid := p.parseExpr()
		if p.tok.Kind == TokenColon {
			p.next()
			end := p.parseExpr()
			if mid == nil {
				mid = end
			} else if end != nil {
				mid = &Binary{base: base{Position: mid.Pos()}, Op: ":", Left: mid, Right: end}
			}
		}
		if mid == nil {
			return left
		}
		return &Binary{base: base{Position: pos}, Op: "?:", Left: left, Right: mid}
	}
	return left
}

func (p *Parser) parseConcat() Node {
	left := p.parseUnary()
	if left == nil {
		return nil
	}
	for p.tok.Kind == TokenDot || p.tok.Kind == TokenOther {
		op := p.tok.Literal
		p.next()
		right := p.parseUnary()
		if right == nil {
			return left
		}
		left = &Binary{base: base{Position: left.Pos()}, Op: op, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseUnary() Node {
	switch p.tok.Kind {
	case TokenBang, TokenAmpersand:
		p.next()
		return p.parseUnary()
	case TokenOther:
		if p.tok.Literal == "-" || p.tok.Literal == "+" {
			p.next()
			return p.parseUnary()
		}
	}
	return p.parsePostfix(p.parsePrimary())
}

func (p *Parser) parsePrimary() Node {
	doc := p.takeDoc()
	pos := p.tok.Span.Start
	switch p.tok.Kind {
	case TokenVariable:
		name := strings.TrimPrefix(p.tok.Literal, "$")
		p.next()
		return &Variable{base: base{Position: pos, Doc: doc}, Name: name}
	case TokenStringLiteral:
		value := decodeString(p.tok.Literal)
		p.next()
		return &String{base: base{Position: pos, Doc: doc}, Value: value}
	case TokenIntLiteral, TokenFloatLiteral:
		value := p.tok.Literal
		p.next()
		return &Number{base: base{Position: pos, Doc: doc}, Value: value}
	case TokenLBracket:
		p.next()
		return p.parseArrayLiteral(TokenRBracket, pos, doc)
	case TokenArray:
		p.next()
		if p.tok.Kind == TokenLParen {
			p.next()
			return p.parseArrayLiteral(TokenRParen, pos, doc)
		}
		return &Ident{base: base{Position: pos, Doc: doc}, Name: "array"}
	case TokenFunction:
		// a closure literal; its statements stay reachable as arguments
		return &FuncCall{base: base{Position: pos, Doc: doc}, Name: "{closure}", Args: p.parseFunctionBody()}
	case TokenNew:
		p.next()
		class := p.parseTypeName()
		n := &New{base: base{Position: pos, Doc: doc}, Class: class}
		if p.tok.Kind == TokenLParen {
			n.Args = p.parseArgs()
		}
		return n
	case TokenIdent, TokenBackslash, TokenStatic:
		name := p.parseTypeName()
		if name == "" {
			return nil
		}
		if p.tok.Kind == TokenDoubleColon {
			p.next()
			suffix := ""
			switch p.tok.Kind {
			case TokenClass:
				suffix = "class"
				p.next()
			case TokenIdent, TokenVariable:
				suffix = p.tok.Literal
				p.next()
			}
			full := name + "::" + suffix
			if p.tok.Kind == TokenLParen {
				return &FuncCall{base: base{Position: pos, Doc: doc}, Name: full, Args: p.parseArgs()}
			}
			return &ConstFetch{base: base{Position: pos, Doc: doc}, Name: full}
		}
		if p.tok.Kind == TokenLParen {
			return &FuncCall{base: base{Position: pos, Doc: doc}, Name: name, Args: p.parseArgs()}
		}
		switch toLower(name) {
		case "true", "false", "null":
			return &ConstFetch{base: base{Position: pos, Doc: doc}, Name: toLower(name)}
		}
		return &Ident{base: base{Position: pos, Doc: doc}, Name: name}
	case TokenLParen:
		p.next()
		expr := p.parseExpr()
		if p.tok.Kind == TokenRParen {
			p.next()
		}
		return p.parsePostfix(expr)
	}
	return nil
}

func (p *Parser) parseTypeName() string {
	var parts []string
	if p.tok.Kind == TokenBackslash {
		p.next()
	}
	for p.tok.Kind == TokenIdent || p.tok.Kind == TokenStatic || p.tok.Kind == TokenArray {
		parts = append(parts, p.tok.Literal)
		p.next()
		if p.tok.Kind != TokenBackslash {
			break
		}
		p.next()
	}
	return strings.Join(parts, "\\")
}

func (p *Parser) parsePostfix(n Node) Node {
	if n == nil {
		return nil
	}
	for {
		switch p.tok.Kind {
		case TokenArrow:
			p.next()
			pos := p.tok.Span.Start
			name := ""
			switch p.tok.Kind {
			case TokenIdent, TokenVariable, TokenClass, TokenArray:
				name = p.tok.Literal
				p.next()
			}
			if p.tok.Kind == TokenLParen {
				n = &MethodCall{base: base{Position: pos}, Receiver: n, Name: name, Args: p.parseArgs()}
			} else {
				n = &PropFetch{base: base{Position: pos}, Receiver: n, Name: name}
			}
		case TokenLBracket:
			// array index; the subscript is not a translation source
			p.next()
			if p.tok.Kind != TokenRBracket {
				p.parseExpr()
			}
			if p.tok.Kind == TokenRBracket {
				p.next()
			}
		default:
			return n
		}
	}
}

func (p *Parser) parseArgs() []Node {
	p.next() // (
	var args []Node
	for p.tok.Kind != TokenRParen && p.tok.Kind != TokenEOF {
		expr := p.parseExpr()
		if expr != nil {
			args = append(args, expr)
		}
		if p.tok.Kind == TokenComma {
			p.next()
			continue
		}
		if p.tok.Kind == TokenRParen {
			break
		}
		p.skipToBoundary(TokenRParen)
	}
	if p.tok.Kind == TokenRParen {
		p.next()
	}
	return args
}

func (p *Parser) parseArrayLiteral(closer TokenKind, pos Position, doc string) *Array {
	arr := &Array{base: base{Position: pos, Doc: doc}}
	for p.tok.Kind != closer && p.tok.Kind != TokenEOF {
		item := p.parseArrayItem()
		if item != nil {
			arr.Items = append(arr.Items, item)
		}
		if p.tok.Kind == TokenComma {
			p.next()
			continue
		}
		if p.tok.Kind == closer {
			break
		}
		p.skipToBoundary(closer)
	}
	if p.tok.Kind == closer {
		p.next()
	}
	return arr
}

func (p *Parser) parseArrayItem() *ArrayItem {
	first := p.parseExpr()
	if first == nil {
		return nil
	}
	if p.tok.Kind == TokenDoubleArrow {
		p.next()
		value := p.parseExpr()
		if value == nil {
			return nil
		}
		return &ArrayItem{Key: first, Value: value}
	}
	return &ArrayItem{Value: first}
}

// skipToBoundary advances until a comma at the current nesting level (which
// is consumed) or the given closer (which is left for the caller). Used for
// error recovery inside argument and array-item lists.
func (p *Parser) skipToBoundary(closer TokenKind) {
	depth := 0
	for p.tok.Kind != TokenEOF {
		switch p.tok.Kind {
		case TokenLParen, TokenLBracket, TokenLBrace:
			depth++
		case TokenRParen, TokenRBracket, TokenRBrace:
			if depth == 0 {
				return
			}
			depth--
		case TokenComma:
			if depth == 0 {
				p.next()
				return
			}
		case TokenSemicolon:
			if depth == 0 {
				return
			}
		}
		p.next()
	}
}

func (p *Parser) skipToSemicolon() {
	for p.tok.Kind != TokenEOF {
		if p.tok.Kind == TokenSemicolon {
			p.pendingDoc = ""
			p.next()
			return
		}
		if p.tok.Kind == TokenRBrace {
			return
		}
		p.next()
	}
}

func (p *Parser) skipBalancedParens() {
	depth := 0
	for p.tok.Kind != TokenEOF {
		switch p.tok.Kind {
		case TokenLParen:
			depth++
		case TokenRParen:
			depth--
			if depth == 0 {
				p.next()
				return
			}
		}
		p.next()
	}
}

// isKeywordToken reports whether k lies in the keyword block of the
// TokenKind enum (TokenAbstract through TokenUse).
func isKeywordToken(k TokenKind) bool {
	return k >= TokenAbstract && k <= TokenUse
}

func decodeString(raw string) string {
	if len(raw) < 2 {
		return raw
	}
	quote := raw[0]
	body := raw[1:]
	if body[len(body)-1] == quote {
		body = body[:len(body)-1]
	}
	if !strings.ContainsRune(body, '\\') {
		return body
	}
	var sb strings.Builder
	sb.Grow(len(body))
	for i := 0; i < len(body); i++ {
		ch := body[i]
		if ch != '\\' || i+1 >= len(body) {
			sb.WriteByte(ch)
			continue
		}
		next := body[i+1]
		if quote == '\'' {
			// single-quoted strings only unescape \' and \\
			if next == '\'' || next == '\\' {
				sb.WriteByte(next)
				i++
			} else {
				sb.WriteByte(ch)
			}
			continue
		}
		switch next {
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		case 'r':
			sb.WriteByte('\r')
		case 'v':
			sb.WriteByte('\v')
		case 'f':
			sb.WriteByte('\f')
		case 'e':
			sb.WriteByte(0x1b)
		case '"', '\\', '$':
			sb.WriteByte(next)
		default:
			sb.WriteByte(ch)
			continue
		}
		i++
	}
	return sb.String()
}
