package dsl

import "fmt"

// TokenType represents the type of a model DSL token.
type TokenType uint8

const (
	TokenEOF TokenType = iota
	TokenNewline
	TokenIdent  // variable and function names
	TokenInt    // integer literals
	TokenFloat  // float literals
	TokenString // "quoted strings"

	// Operators
	TokenAssign // =
	TokenPlus   // +
	TokenMinus  // -
	TokenStar   // *
	TokenSlash  // /

	// Delimiters
	TokenLParen // (
	TokenRParen // )
	TokenComma  // ,

	// Keywords
	TokenReturn // return
)

// Token is one lexical unit with its source position.
type Token struct {
	Type  TokenType
	Value string
	Line  int
	Col   int
}

// LookupIdent maps identifier text to its keyword token type, or
// TokenIdent for a plain name.
func LookupIdent(ident string) TokenType {
	if ident == "return" {
		return TokenReturn
	}
	return TokenIdent
}

// String returns a readable name for the token type.
func (t TokenType) String() string {
	switch t {
	case TokenEOF:
		return "EOF"
	case TokenNewline:
		return "newline"
	case TokenIdent:
		return "identifier"
	case TokenInt:
		return "int"
	case TokenFloat:
		return "float"
	case TokenString:
		return "string"
	case TokenAssign:
		return "="
	case TokenPlus:
		return "+"
	case TokenMinus:
		return "-"
	case TokenStar:
		return "*"
	case TokenSlash:
		return "/"
	case TokenLParen:
		return "("
	case TokenRParen:
		return ")"
	case TokenComma:
		return ","
	case TokenReturn:
		return "return"
	default:
		return fmt.Sprintf("TokenType(%d)", t)
	}
}
