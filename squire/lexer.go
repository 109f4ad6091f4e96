package squire

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

type lexer struct {
	input string

	offset int
	width  int

	line   int
	column int

	ch  rune
	eof bool
}

func newLexer(input string) *lexer {
	l := &lexer{input: input, line: 1, column: 0}
	l.readRune()
	return l
}

func (l *lexer) readRune() {
	if l.offset >= len(l.input) {
		l.width = 0
		l.ch = 0
		l.eof = true
		return
	}

	r, w := utf8.DecodeRuneInString(l.input[l.offset:])
	l.width = w
	l.offset += w

	if r == '\n' {
		l.line++
		l.column = 0
	} else {
		l.column++
	}

	l.ch = r
}

func (l *lexer) peekRune() rune {
	if l.offset >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.offset:])
	return r
}

func (l *lexer) NextToken() Token {
	l.skipWhitespaceAndComments()

	tok := Token{Pos: Position{Line: l.line, Column: l.column}}
	if l.eof {
		tok.Type = tokenEOF
		return tok
	}

	switch l.ch {
	case '=':
		tok = l.makeToken(tokenAssign, "=")
		l.readRune()
	case '-':
		tok = l.makeToken(tokenMinus, "-")
		l.readRune()
	case ',':
		tok = l.makeToken(tokenComma, ",")
		l.readRune()
	case ':':
		tok = l.makeToken(tokenColon, ":")
		l.readRune()
	case '.':
		tok = l.makeToken(tokenDot, ".")
		l.readRune()
	case '(':
		tok = l.makeToken(tokenLParen, "(")
		l.readRune()
	case ')':
		tok = l.makeToken(tokenRParen, ")")
		l.readRune()
	case '"', '\'':
		literal, err := l.readText(l.ch)
		if err != "" {
			tok.Type = tokenIllegal
			tok.Literal = err
		} else {
			tok.Type = tokenText
			tok.Literal = literal
		}
	default:
		switch {
		case isIdentifierStart(l.ch):
			literal := l.readIdentifier()
			tok.Type = lookupIdent(literal)
			tok.Literal = literal
		case unicode.IsDigit(l.ch):
			tok.Type = tokenNumeral
			tok.Literal = l.readNumeral()
		default:
			tok = l.makeToken(tokenIllegal, string(l.ch))
			l.readRune()
		}
	}

	return tok
}

func (l *lexer) currentOffset() int {
	return l.offset - l.width
}

func (l *lexer) makeToken(tt TokenType, literal string) Token {
	return Token{Type: tt, Literal: literal, Pos: Position{Line: l.line, Column: l.column}}
}

func (l *lexer) skipWhitespaceAndComments() {
	for {
		switch l.ch {
		case ' ', '\t', '\r', '\n':
			l.readRune()
		case '#':
			for !l.eof && l.ch != '\n' {
				l.readRune()
			}
		default:
			return
		}
	}
}

func (l *lexer) readIdentifier() string {
	start := l.currentOffset()
	for isIdentifierRune(l.peekRune()) {
		l.readRune()
	}
	literal := l.input[start:l.offset]
	l.readRune()
	return literal
}

func (l *lexer) readNumeral() string {
	var sb strings.Builder
	sb.WriteRune(l.ch)
	for {
		r := l.peekRune()
		if r == '_' {
			l.readRune()
			continue
		}
		if !unicode.IsDigit(r) {
			break
		}
		l.readRune()
		sb.WriteRune(r)
	}
	l.readRune()
	return sb.String()
}

// readText reads a quoted literal. Escapes produce raw bytes, so "\0"
// yields a zero byte inside the text. Source bytes are copied as they are,
// including NUL and invalid UTF-8.
func (l *lexer) readText(quote rune) (string, string) {
	var sb strings.Builder

	for {
		l.readRune()
		if l.eof {
			return "", "unterminated text"
		}
		switch l.ch {
		case quote:
			l.readRune()
			return sb.String(), ""
		case '\\':
			l.readRune()
			if l.eof {
				return "", "unterminated text"
			}
			switch l.ch {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case 'r':
				sb.WriteByte('\r')
			case '0':
				sb.WriteByte(0)
			default:
				sb.WriteString(l.currentRaw())
			}
		default:
			sb.WriteString(l.currentRaw())
		}
	}
}

// currentRaw returns the source bytes behind the current rune.
func (l *lexer) currentRaw() string {
	return l.input[l.currentOffset():l.offset]
}

func isIdentifierStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}

func isIdentifierRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

func lookupIdent(ident string) TokenType {
	switch ident {
	case "ni":
		return tokenNi
	case "yay":
		return tokenYay
	case "nay":
		return tokenNay
	case "catch":
		return tokenCatch
	}
	return tokenIdent
}
