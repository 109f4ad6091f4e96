package squire

import (
	"fmt"
	"strconv"
)

// SyntaxError reports console input that could not be parsed.
type SyntaxError struct {
	Pos     Position
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at %d:%d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

type expression interface {
	pos() Position
}

type identExpr struct {
	name string
	at   Position
}

type literalExpr struct {
	value Value
	at    Position
}

type attrExpr struct {
	target expression
	name   string
	at     Position
}

type keywordArg struct {
	name  string
	value expression
}

type callExpr struct {
	callee  expression
	args    []expression
	keyword []keywordArg
	at      Position
}

type catchExpr struct {
	inner expression
	at    Position
}

func (e *identExpr) pos() Position   { return e.at }
func (e *literalExpr) pos() Position { return e.at }
func (e *attrExpr) pos() Position    { return e.at }
func (e *callExpr) pos() Position    { return e.at }
func (e *catchExpr) pos() Position   { return e.at }

// statement is one console line: an expression, optionally assigned.
type statement struct {
	assign string
	expr   expression
}

type parser struct {
	l    *lexer
	cur  Token
	peek Token
}

func newParser(input string) *parser {
	p := &parser{l: newLexer(input)}
	p.next()
	p.next()
	return p
}

func (p *parser) next() {
	p.cur = p.peek
	p.peek = p.l.NextToken()
}

func (p *parser) errorf(tok Token, format string, args ...any) error {
	return &SyntaxError{Pos: tok.Pos, Message: fmt.Sprintf(format, args...)}
}

func (p *parser) expect(tt TokenType) (Token, error) {
	tok := p.cur
	if tok.Type != tt {
		return tok, p.errorf(tok, "expected %s, got %s", tt, describeToken(tok))
	}
	p.next()
	return tok, nil
}

func describeToken(tok Token) string {
	switch tok.Type {
	case tokenEOF:
		return "end of input"
	case tokenIllegal:
		return tok.Literal
	default:
		return strconv.Quote(tok.Literal)
	}
}

// parseStatement parses one line. A blank or comment-only line yields nil.
func parseStatement(input string) (*statement, error) {
	p := newParser(input)
	if p.cur.Type == tokenEOF {
		return nil, nil
	}
	stmt := &statement{}
	if p.cur.Type == tokenIdent && p.peek.Type == tokenAssign {
		stmt.assign = p.cur.Literal
		p.next()
		p.next()
	}
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if p.cur.Type != tokenEOF {
		return nil, p.errorf(p.cur, "unexpected %s", describeToken(p.cur))
	}
	stmt.expr = expr
	return stmt, nil
}

func (p *parser) parseExpression() (expression, error) {
	if p.cur.Type == tokenCatch {
		at := p.cur.Pos
		p.next()
		inner, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return &catchExpr{inner: inner, at: at}, nil
	}
	return p.parsePostfix()
}

func (p *parser) parsePostfix() (expression, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch p.cur.Type {
		case tokenDot:
			p.next()
			name, err := p.expect(tokenIdent)
			if err != nil {
				return nil, err
			}
			expr = &attrExpr{target: expr, name: name.Literal, at: name.Pos}
		case tokenLParen:
			at := p.cur.Pos
			p.next()
			call := &callExpr{callee: expr, at: at}
			if err := p.parseArguments(call); err != nil {
				return nil, err
			}
			expr = call
		default:
			return expr, nil
		}
	}
}

func (p *parser) parseArguments(call *callExpr) error {
	if p.cur.Type == tokenRParen {
		p.next()
		return nil
	}
	for {
		if p.cur.Type == tokenIdent && p.peek.Type == tokenColon {
			name := p.cur.Literal
			p.next()
			p.next()
			value, err := p.parseExpression()
			if err != nil {
				return err
			}
			call.keyword = append(call.keyword, keywordArg{name: name, value: value})
		} else {
			arg, err := p.parseExpression()
			if err != nil {
				return err
			}
			call.args = append(call.args, arg)
		}
		switch p.cur.Type {
		case tokenComma:
			p.next()
		case tokenRParen:
			p.next()
			return nil
		default:
			return p.errorf(p.cur, "expected , or ) in argument list, got %s", describeToken(p.cur))
		}
	}
}

func (p *parser) parsePrimary() (expression, error) {
	tok := p.cur
	switch tok.Type {
	case tokenIdent:
		p.next()
		return &identExpr{name: tok.Literal, at: tok.Pos}, nil
	case tokenText:
		p.next()
		return &literalExpr{value: NewText(tok.Literal), at: tok.Pos}, nil
	case tokenNumeral:
		p.next()
		return p.numeral(tok, tok.Literal)
	case tokenMinus:
		p.next()
		num, err := p.expect(tokenNumeral)
		if err != nil {
			return nil, err
		}
		return p.numeral(tok, "-"+num.Literal)
	case tokenNi:
		p.next()
		return &literalExpr{value: NewNi(), at: tok.Pos}, nil
	case tokenYay, tokenNay:
		p.next()
		return &literalExpr{value: NewVeracity(tok.Type == tokenYay), at: tok.Pos}, nil
	case tokenLParen:
		p.next()
		inner, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokenRParen); err != nil {
			return nil, err
		}
		return inner, nil
	default:
		return nil, p.errorf(tok, "unexpected %s", describeToken(tok))
	}
}

func (p *parser) numeral(tok Token, literal string) (expression, error) {
	n, err := strconv.ParseInt(literal, 10, 64)
	if err != nil {
		return nil, p.errorf(tok, "numeral %s out of range", literal)
	}
	return &literalExpr{value: NewNumeral(n), at: tok.Pos}, nil
}
