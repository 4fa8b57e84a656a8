/*
 * Copyright 2024 CloudWeGo Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package lang

import (
	"fmt"
	"unicode"

	"github.com/cloudwego/tacopt/internal/tac"
)

type TokenKind uint8

const (
	T_eof TokenKind = iota
	T_int
	T_ident
	T_keyword
	T_punct
)

// Token is a lexeme together with its position in the source.
type Token struct {
	Kind TokenKind
	Text string
	Pos  int
	Line int
}

func (self Token) String() string {
	if self.Kind == T_eof {
		return "EOF"
	} else {
		return fmt.Sprintf("%q", self.Text)
	}
}

var keywords = map[string]bool {
	"var"   : true,
	"if"    : true,
	"else"  : true,
	"while" : true,
	"for"   : true,
	"goto"  : true,
	"input" : true,
	"print" : true,
	"true"  : true,
	"false" : true,
	"or"    : true,
	"and"   : true,
}

// two character operators, checked before the single character ones
var digraphs = [...]string { "==", "!=", "<=", ">=" }

func isdigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isident(c byte) bool {
	return isident0(c) || isdigit(c)
}

func isident0(c byte) bool {
	return c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func ispunct(c byte) bool {
	switch c {
		case ';', ',', ':', '(', ')', '{', '}', '=', '<', '>', '+', '-', '*', '/', '!' : return true
		default                                                                         : return false
	}
}

// Scanner splits the source into tokens on demand.
type Scanner struct {
	src  string
	pos  int
	line int
}

func NewScanner(src string) *Scanner {
	return &Scanner { src: src, line: 1 }
}

func (self *Scanner) skip() {
	n := len(self.src)
	for self.pos < n {
		c := self.src[self.pos]

		/* line comments */
		if c == '/' && self.pos + 1 < n && self.src[self.pos + 1] == '/' {
			for self.pos < n && self.src[self.pos] != '\n' {
				self.pos++
			}
			continue
		}

		/* spaces */
		if !unicode.IsSpace(rune(c)) {
			break
		}
		if c == '\n' {
			self.line++
		}
		self.pos++
	}
}

// Next reads the next token, it returns T_eof repeatedly at the end of input.
func (self *Scanner) Next() (Token, error) {
	self.skip()
	p := self.pos
	n := len(self.src)

	/* check for EOF */
	if p == n {
		return Token { Kind: T_eof, Pos: p, Line: self.line }, nil
	}

	/* integer literals */
	if c := self.src[p]; isdigit(c) {
		for self.pos < n && isdigit(self.src[self.pos]) {
			self.pos++
		}
		if self.pos < n && isident0(self.src[self.pos]) {
			return Token{}, tac.ESyntax(self.pos, self.line, "invalid integer literal")
		}
		return self.token(T_int, p), nil
	}

	/* identifiers and keywords */
	if c := self.src[p]; isident0(c) {
		for self.pos < n && isident(self.src[self.pos]) {
			self.pos++
		}
		if keywords[self.src[p:self.pos]] {
			return self.token(T_keyword, p), nil
		} else {
			return self.token(T_ident, p), nil
		}
	}

	/* two character operators */
	for _, v := range digraphs {
		if p + 2 <= n && self.src[p:p + 2] == v {
			self.pos += 2
			return self.token(T_punct, p), nil
		}
	}

	/* single character punctuations */
	if c := self.src[p]; ispunct(c) {
		self.pos++
		return self.token(T_punct, p), nil
	}

	/* nothing matches */
	return Token{}, tac.ESyntax(p, self.line, fmt.Sprintf("unexpected character %q", self.src[p]))
}

func (self *Scanner) token(kind TokenKind, p int) Token {
	return Token {
		Kind : kind,
		Text : self.src[p:self.pos],
		Pos  : p,
		Line : self.line,
	}
}
