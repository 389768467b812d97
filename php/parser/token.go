package parser

type Position struct {
	File   string
	Offset int
	Line   int
	Column int
}

type Span struct {
	Start Position
	End   Position
}

type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenError
	TokenWhitespace
	TokenInlineHTML
	TokenOpenTag
	TokenCloseTag
	TokenComment
	TokenLineComment

	// Literals
	TokenIdent
	TokenVariable
	TokenIntLiteral
	TokenFloatLiteral
	TokenStringLiteral

	// Keywords
	TokenAbstract
	TokenArray
	TokenClass
	TokenConst
	TokenExtends
	TokenFinal
	TokenFunction
	TokenImplements
	TokenInterface
	TokenNamespace
	TokenNew
	TokenPrivate
	TokenProtected
	TokenPublic
	TokenReturn
	TokenStatic
	TokenTrait
	TokenUse

	// Operators and punctuation
	TokenLParen
	TokenRParen
	TokenLBrace
	TokenRBrace
	TokenLBracket
	TokenRBracket
	TokenSemicolon
	TokenComma
	TokenArrow
	TokenDoubleArrow
	TokenDoubleColon
	TokenAssign
	TokenDot
	TokenBackslash
	TokenQuestion
	TokenColon
	TokenAmpersand
	TokenBang
	TokenOther
)

var tokenKindNames = map[TokenKind]string{
	TokenEOF:           "EOF",
	TokenError:         "Error",
	TokenWhitespace:    "Whitespace",
	TokenInlineHTML:    "InlineHTML",
	TokenOpenTag:       "OpenTag",
	TokenCloseTag:      "CloseTag",
	TokenComment:       "Comment",
	TokenLineComment:   "LineComment",
	TokenIdent:         "Ident",
	TokenVariable:      "Variable",
	TokenIntLiteral:    "IntLiteral",
	TokenFloatLiteral:  "FloatLiteral",
	TokenStringLiteral: "StringLiteral",
	TokenAbstract:      "abstract",
	TokenArray:         "array",
	TokenClass:         "class",
	TokenConst:         "const",
	TokenExtends:       "extends",
	TokenFinal:         "final",
	TokenFunction:      "function",
	TokenImplements:    "implements",
	TokenInterface:     "interface",
	TokenNamespace:     "namespace",
	TokenNew:           "new",
	TokenPrivate:       "private",
	TokenProtected:     "protected",
	TokenPublic:        "public",
	TokenReturn:        "return",
	TokenStatic:        "static",
	TokenTrait:         "trait",
	TokenUse:           "use",
	TokenLParen:        "(",
	TokenRParen:        ")",
	TokenLBrace:        "{",
	TokenRBrace:        "}",
	TokenLBracket:      "[",
	TokenRBracket:      "]",
	TokenSemicolon:     ";",
	TokenComma:         ",",
	TokenArrow:         "->",
	TokenDoubleArrow:   "=>",
	TokenDoubleColon:   "::",
	TokenAssign:        "=",
	TokenDot:           ".",
	TokenBackslash:     "\\",
	TokenQuestion:      "?",
	TokenColon:         ":",
	TokenAmpersand:     "&",
	TokenBang:          "!",
	TokenOther:         "Other",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

type Token struct {
	Kind    TokenKind
	Span    Span
	Literal string
}

// PHP keywords are case-insensitive; the lookup table holds the lowercase form.
var keywords = map[string]TokenKind{
	"abstract":   TokenAbstract,
	"array":      TokenArray,
	"class":      TokenClass,
	"const":      TokenConst,
	"extends":    TokenExtends,
	"final":      TokenFinal,
	"function":   TokenFunction,
	"implements": TokenImplements,
	"interface":  TokenInterface,
	"namespace":  TokenNamespace,
	"new":        TokenNew,
	"private":    TokenPrivate,
	"protected":  TokenProtected,
	"public":     TokenPublic,
	"return":     TokenReturn,
	"static":     TokenStatic,
	"trait":      TokenTrait,
	"use":        TokenUse,
}

func LookupKeyword(literal string) TokenKind {
	if kind, ok := keywords[toLower(literal)]; ok {
		return kind
	}
	return TokenIdent
}

func toLower(s string) string {
	hasUpper := false
	for i := 0; i < len(s); i++ {
		if s[i] >= 'A' && s[i] <= 'Z' {
			hasUpper = true
			break
		}
	}
	if !hasUpper {
		return s
	}
	b := []byte(s)
	for i := range b {
		if b[i] >= 'A' && b[i] <= 'Z' {
			b[i] += 'a' - 'A'
		}
	}
	return string(b)
}
