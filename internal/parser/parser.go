// Package parser turns a token stream into the AST of the type-inference
// core. Its grammar is the simplest correct instance of the external
// syntax the core's data model requires — declarations with parameter
// lists, guards, binds, and tagged tuples — not a specified contract.
package parser

import (
	"strconv"

	"github.com/dar-lang/darc/internal/ast"
	"github.com/dar-lang/darc/internal/diag"
	"github.com/dar-lang/darc/internal/lexer"
)

// Parser is a recursive-descent parser over a token stream.
type Parser struct {
	l *lexer.Lexer

	curToken  lexer.Token
	peekToken lexer.Token
}

// New constructs a Parser over l, primed with its first two tokens.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}
	p.advance()
	p.advance()
	return p
}

func (p *Parser) advance() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) pos() ast.Pos {
	return ast.Pos{File: p.curToken.File, Line: p.curToken.Line, Column: p.curToken.Column}
}

func (p *Parser) expect(tt lexer.TokenType) (lexer.Token, error) {
	if p.curToken.Type != tt {
		return lexer.Token{}, diag.Fatal(diag.TK001, diag.PhaseParser, p.pos(),
			"expected %s, got %s %q", tt, p.curToken.Type, p.curToken.Literal)
	}
	tok := p.curToken
	p.advance()
	return tok, nil
}

// checkAdvance consumes the current token and reports true if it matches
// tt; otherwise it leaves the stream untouched and reports false.
func (p *Parser) checkAdvance(tt lexer.TokenType) bool {
	if p.curToken.Type != tt {
		return false
	}
	p.advance()
	return true
}

// ParseModule parses an entire source file into a Module.
func (p *Parser) ParseModule() (*ast.Module, error) {
	pos := p.pos()
	var decls []*ast.Declaration
	for p.curToken.Type != lexer.EOF {
		d, err := p.parseDecl()
		if err != nil {
			return nil, err
		}
		decls = append(decls, d)
	}
	return ast.NewModule(pos, decls), nil
}

// parseDecl parses `name(params) = body`. A declaration is polymorphic
// unless it is named main — main is the sole monomorphic entry point a
// program-mode module may export.
func (p *Parser) parseDecl() (*ast.Declaration, error) {
	pos := p.pos()
	nameTok, err := p.expect(lexer.IDENT)
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(lexer.LPAREN); err != nil {
		return nil, err
	}
	var params []string
	for p.curToken.Type != lexer.RPAREN {
		tok, err := p.expect(lexer.IDENT)
		if err != nil {
			return nil, err
		}
		params = append(params, tok.Literal)
		if !p.checkAdvance(lexer.COMMA) {
			break
		}
	}
	if _, err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.ASSIGN); err != nil {
		return nil, err
	}

	body, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	polymorphic := nameTok.Literal != "main"
	return ast.NewDeclaration(pos, nameTok.Literal, params, body, polymorphic), nil
}

func (p *Parser) parseExpr() (ast.Expr, error) {
	switch p.curToken.Type {
	case lexer.IDENT:
		return p.parseIdentLed()
	case lexer.LBRACE:
		return p.parseGuard()
	case lexer.LPAREN:
		return p.parseTuple()
	case lexer.STRING:
		return p.parseStringLiteral()
	case lexer.INT:
		return p.parseIntegralLiteral()
	case lexer.TRUE, lexer.FALSE:
		return p.parseBooleanLiteral()
	default:
		return nil, diag.Fatal(diag.TK001, diag.PhaseParser, p.pos(), "unexpected %s %q", p.curToken.Type, p.curToken.Literal)
	}
}

// parseIdentLed disambiguates the three expression shapes that begin
// with an identifier: a call (name immediately followed by '('), a bind
// (name immediately followed by ':='), or a bare identifier reference.
func (p *Parser) parseIdentLed() (ast.Expr, error) {
	switch p.peekToken.Type {
	case lexer.LPAREN:
		return p.parseInvocation()
	case lexer.BIND:
		return p.parseBind()
	default:
		pos := p.pos()
		tok, err := p.expect(lexer.IDENT)
		if err != nil {
			return nil, err
		}
		return ast.NewIdExpression(pos, tok.Literal), nil
	}
}

func (p *Parser) parseInvocation() (ast.Expr, error) {
	pos := p.pos()
	calleeTok, err := p.expect(lexer.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.LPAREN); err != nil {
		return nil, err
	}
	var args []ast.Expr
	for p.curToken.Type != lexer.RPAREN {
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if !p.checkAdvance(lexer.COMMA) {
			break
		}
	}
	if _, err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}
	return ast.NewInvocation(pos, calleeTok.Literal, args), nil
}

func (p *Parser) parseBind() (ast.Expr, error) {
	pos := p.pos()
	idTok, err := p.expect(lexer.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.BIND); err != nil {
		return nil, err
	}
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.SEMI); err != nil {
		return nil, err
	}
	body, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return ast.NewBind(pos, idTok.Literal, value, body), nil
}

// parseGuard parses `{ cond1 : val1 ; cond2 : val2 ; * : wildcard }`.
func (p *Parser) parseGuard() (ast.Expr, error) {
	pos := p.pos()
	if _, err := p.expect(lexer.LBRACE); err != nil {
		return nil, err
	}

	var cases []ast.GuardCase
	var wildcard ast.Expr

	for p.curToken.Type != lexer.RBRACE {
		isWildcard := p.checkAdvance(lexer.STAR)

		var cond ast.Expr
		if !isWildcard {
			c, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			cond = c
		}

		if _, err := p.expect(lexer.COLON); err != nil {
			return nil, err
		}

		value, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		if isWildcard {
			if wildcard != nil {
				return nil, diag.Fatal(diag.TK001, diag.PhaseParser, pos, "multiple wildcard cases in guard")
			}
			wildcard = value
		} else {
			cases = append(cases, ast.GuardCase{Condition: cond, Value: value})
		}

		if !p.checkAdvance(lexer.SEMI) {
			break
		}
	}

	if wildcard == nil {
		return nil, diag.Fatal(diag.TK001, diag.PhaseParser, pos, "guard has no wildcard case")
	}

	if _, err := p.expect(lexer.RBRACE); err != nil {
		return nil, err
	}

	return ast.NewGuard(pos, cases, wildcard), nil
}

// parseTuple parses `(item, ~tag item, ...)`.
func (p *Parser) parseTuple() (ast.Expr, error) {
	pos := p.pos()
	if _, err := p.expect(lexer.LPAREN); err != nil {
		return nil, err
	}

	var items []ast.TupleItem
	for p.curToken.Type != lexer.RPAREN {
		var tag string
		if p.checkAdvance(lexer.TILDE) {
			tagTok, err := p.expect(lexer.IDENT)
			if err != nil {
				return nil, err
			}
			tag = tagTok.Literal
		}
		value, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		items = append(items, ast.TupleItem{Tag: tag, Value: value})
		p.checkAdvance(lexer.COMMA)
	}

	if _, err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}

	return ast.NewTuple(pos, items), nil
}

func (p *Parser) parseStringLiteral() (ast.Expr, error) {
	pos := p.pos()
	tok, err := p.expect(lexer.STRING)
	if err != nil {
		return nil, err
	}
	return ast.NewStringLiteral(pos, tok.Literal), nil
}

func (p *Parser) parseIntegralLiteral() (ast.Expr, error) {
	pos := p.pos()
	tok, err := p.expect(lexer.INT)
	if err != nil {
		return nil, err
	}
	v, err := strconv.ParseInt(tok.Literal, 10, 64)
	if err != nil {
		return nil, diag.Fatal(diag.TK001, diag.PhaseParser, pos, "invalid integer literal %q", tok.Literal)
	}
	return ast.NewIntegralLiteral(pos, v), nil
}

func (p *Parser) parseBooleanLiteral() (ast.Expr, error) {
	pos := p.pos()
	v := p.curToken.Type == lexer.TRUE
	if _, err := p.expect(p.curToken.Type); err != nil {
		return nil, err
	}
	return ast.NewBooleanLiteral(pos, v), nil
}
