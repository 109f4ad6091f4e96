package squire

// TokenType identifies the lexical category of a console token.
type TokenType string

const (
	tokenIllegal TokenType = "ILLEGAL"
	tokenEOF     TokenType = "EOF"

	tokenIdent   TokenType = "IDENT"
	tokenNumeral TokenType = "NUMERAL"
	tokenText    TokenType = "TEXT"

	tokenAssign TokenType = "="
	tokenMinus  TokenType = "-"
	tokenComma  TokenType = ","
	tokenColon  TokenType = ":"
	tokenDot    TokenType = "."
	tokenLParen TokenType = "("
	tokenRParen TokenType = ")"

	tokenNi    TokenType = "NI"
	tokenYay   TokenType = "YAY"
	tokenNay   TokenType = "NAY"
	tokenCatch TokenType = "CATCH"
)

// Token captures lexical information for the parser.
type Token struct {
	Type    TokenType
	Literal string
	Pos     Position
}

// Position identifies a line and column in console input.
type Position struct {
	Line   int
	Column int
}
