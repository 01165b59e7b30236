package parser

import (
	"fmt"

	"github.com/snesdev/zealgo/system"
)

// TokenType is the closed set of lexical categories the lexer produces.
type TokenType int

const (
	TokenInvalid TokenType = iota
	TokenIdentifier
	TokenOpcode
	TokenNumber
	TokenString
	TokenRegister
	TokenComma
	TokenImmediate // '#'
	TokenLParen
	TokenRParen
	TokenLBracket
	TokenRBracket
	TokenColon
	TokenEOF
	TokenKwInclude
	TokenKwIncbin
	TokenKwOrigin
	TokenKwSnesMap
)

var tokenNames = map[TokenType]string{
	TokenInvalid:    "INVALID",
	TokenIdentifier: "IDENTIFIER",
	TokenOpcode:     "OPCODE",
	TokenNumber:     "NUMBER",
	TokenString:     "STRING",
	TokenRegister:   "REGISTER",
	TokenComma:      ",",
	TokenImmediate:  "#",
	TokenLParen:     "(",
	TokenRParen:     ")",
	TokenLBracket:   "[",
	TokenRBracket:   "]",
	TokenColon:      ":",
	TokenEOF:        "EOF",
	TokenKwInclude:  "include",
	TokenKwIncbin:   "incbin",
	TokenKwOrigin:   "origin",
	TokenKwSnesMap:  "snesmap",
}

func (t TokenType) String() string {
	if n, ok := tokenNames[t]; ok {
		return n
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// Token is one lexical unit. Literal carries the mnemonic/identifier/register text, the raw
// invalid character, or the contents between the quotes for TokenString; Number carries the
// parsed numeric value for TokenNumber.
type Token struct {
	Type    TokenType
	Literal string
	Number  system.NumberLiteral
	Pos     Position
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%s", t.Type, t.Literal, t.Pos)
}

var keywords = map[string]TokenType{
	"include": TokenKwInclude,
	"incbin":  TokenKwIncbin,
	"origin":  TokenKwOrigin,
	"snesmap": TokenKwSnesMap,
}
