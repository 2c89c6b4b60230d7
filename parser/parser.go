// ==============================================================================================
// FILE: parser/parser.go
// ==============================================================================================
// PACKAGE: parser
// PURPOSE: Turns the token list of one logical line into exactly one (block-introduces?,
//          Instruction) pair. A secondary entry point, parseAtom (exported via ParseWaitLine
//          and the assembler's own needs), parses an Atom — Expression or YieldingInstruction
//          — for reuse inside expressions and argument lists.
//
//          Recursive-descent, operator-precedence for expressions (comparisons → additive →
//          multiplicative/power → unary → primary), keyword-dispatched for statement forms.
// ==============================================================================================

package parser

import (
	"fmt"

	"zen/ast"
	"zen/diag"
	"zen/token"
	"zen/value"
)

// Parser consumes the tokens of a single logical line.
type Parser struct {
	toks []token.Token
	pos  int
	file string
	line int
}

// New creates a Parser over one logical line's token list (leading TABs and any trailing
// SEMI already stripped by the caller). A trailing EOF token is optional: cur reports EOF
// once the tokens run out.
func New(toks []token.Token, file string, line int) *Parser {
	return &Parser{toks: toks, file: file, line: line}
}

func (p *Parser) cur() token.Token {
	if p.pos >= len(p.toks) {
		return token.Token{Kind: token.EOF, OK: true}
	}
	return p.toks[p.pos]
}

func (p *Parser) peek() token.Token {
	if p.pos+1 >= len(p.toks) {
		return token.Token{Kind: token.EOF, OK: true}
	}
	return p.toks[p.pos+1]
}

func (p *Parser) advance() token.Token {
	t := p.cur()
	if p.pos < len(p.toks) {
		p.pos++
	}
	return t
}

func (p *Parser) atEnd() bool { return p.cur().Kind == token.EOF }

func (p *Parser) errorf(tok token.Token, expected string, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	if expected != "" {
		msg = fmt.Sprintf("%s (beklenen: %s)", msg, expected)
	}
	return diag.NewAt(diag.TokenError, p.file, p.line, tok.Span.Start, "%s", msg)
}

func (p *Parser) expect(kind token.Kind, expectedDesc string) (token.Token, error) {
	if p.cur().Kind != kind {
		return token.Token{}, p.errorf(p.cur(), expectedDesc, "beklenmeyen jeton %q", p.cur().Literal)
	}
	return p.advance(), nil
}

// ParseLine dispatches on the line's leading token to the matching statement-form parser
// and reports whether this line introduces a new block scope.
func (p *Parser) ParseLine() (bool, ast.Instruction, error) {
	if p.atEnd() {
		return false, ast.Instruction{Kind: ast.NoOp}, nil
	}

	switch p.cur().Kind {
	case token.KW_PRINT:
		return p.parsePrintLike(ast.Print)
	case token.KW_TYPE:
		return p.parsePrintLike(ast.Type)
	case token.KW_IF:
		return p.parseIf()
	case token.KW_ELIF:
		return p.parseElif()
	case token.KW_ELSE:
		return p.parseElse()
	case token.KW_WHILE:
		p.advance()
		return true, ast.Instruction{Kind: ast.WhileTrue}, nil
	case token.KW_FUNCTION:
		return p.parseFunctionDecl()
	case token.KW_BREAK:
		p.advance()
		return false, ast.Instruction{Kind: ast.Break}, nil
	case token.KW_CONTINUE:
		p.advance()
		return false, ast.Instruction{Kind: ast.Continue}, nil
	case token.KW_RETURN:
		return p.parseReturn()
	case token.KW_INPUT, token.KW_RANDOM:
		return false, ast.Instruction{}, p.errorf(p.cur(), "yazdır/tip/atama", "bu konumda beklenmeyen ifade")
	}

	if p.cur().Kind == token.IDENT && p.peek().Kind == token.LPAREN {
		return p.parseFunctionCallStmt()
	}
	if p.cur().Kind == token.IDENT && isAssignOp(p.peek().Kind) {
		return p.parseAssignment()
	}
	if p.cur().Kind == token.IDENT && p.peek().Kind == token.KW_IN {
		return p.parseForIn()
	}

	// Both Repeat ("5 defa tekrarla") and For-range ("0 ile 10 aralığında : i") start with
	// an arbitrary Atom, so try the longer For-range form first and fall back to Repeat.
	if forIntr, instr, ok, err := p.tryParseForRange(); ok || err != nil {
		return forIntr, instr, err
	}
	return p.parseRepeat()
}

func isAssignOp(k token.Kind) bool {
	switch k {
	case token.ASSIGN, token.ASSIGN_ADD, token.ASSIGN_SUB, token.ASSIGN_MUL, token.ASSIGN_DIV:
		return true
	default:
		return false
	}
}

// ---------------------------------------------------------------------------------------------
// Print / Type
// ---------------------------------------------------------------------------------------------

func (p *Parser) parsePrintLike(kind ast.InstrKind) (bool, ast.Instruction, error) {
	p.advance() // KW_PRINT or KW_TYPE
	var args []ast.Atom
	a, err := p.parseAtom()
	if err != nil {
		return false, ast.Instruction{}, err
	}
	args = append(args, a)
	for p.cur().Kind == token.COMMA {
		p.advance()
		a, err := p.parseAtom()
		if err != nil {
			return false, ast.Instruction{}, err
		}
		args = append(args, a)
	}
	return false, ast.Instruction{Kind: kind, Args: args}, nil
}

// ---------------------------------------------------------------------------------------------
// If / Elif / Else
// ---------------------------------------------------------------------------------------------

func (p *Parser) parseIf() (bool, ast.Instruction, error) {
	p.advance() // KW_IF
	cond, err := p.parseExpression()
	if err != nil {
		return false, ast.Instruction{}, err
	}
	if _, err := p.expect(token.KW_THEN, "ise"); err != nil {
		return false, ast.Instruction{}, err
	}
	// Rewritten into a full IfChain by the assembler; the parser only hands back the
	// condition of the `if` arm.
	return true, ast.Instruction{Kind: ast.IfChain, If: ast.Branch{Condition: ast.ExprAtom(cond)}}, nil
}

func (p *Parser) parseElif() (bool, ast.Instruction, error) {
	p.advance() // KW_ELIF
	cond, err := p.parseExpression()
	if err != nil {
		return false, ast.Instruction{}, err
	}
	if _, err := p.expect(token.KW_THEN, "ise"); err != nil {
		return false, ast.Instruction{}, err
	}
	return true, ast.Instruction{Kind: ast.IfChain, Elifs: []ast.Branch{{Condition: ast.ExprAtom(cond)}}}, nil
}

func (p *Parser) parseElse() (bool, ast.Instruction, error) {
	p.advance() // KW_ELSE
	branch := ast.Branch{AlwaysTrue: true}
	return true, ast.Instruction{Kind: ast.IfChain, Else: &branch}, nil
}

// ---------------------------------------------------------------------------------------------
// Repeat / While-true / For-range / For-in
// ---------------------------------------------------------------------------------------------

func (p *Parser) parseRepeat() (bool, ast.Instruction, error) {
	count, err := p.parseAtom()
	if err != nil {
		return false, ast.Instruction{}, err
	}
	if _, err := p.expect(token.KW_NTIMES, "defa/kere/kez tekrarla"); err != nil {
		return false, ast.Instruction{}, err
	}
	return true, ast.Instruction{Kind: ast.Repeat, Count: count}, nil
}

// tryParseForRange speculatively parses the For-range form ("Atom ile Atom (aralığında|
// arasında) (Atom artarak)? : identifier"); it restores the cursor and returns ok=false if
// the line does not match so the caller can fall back to Repeat.
func (p *Parser) tryParseForRange() (bool, ast.Instruction, bool, error) {
	start := p.pos
	from, err := p.parseAtom()
	if err != nil {
		p.pos = start
		return false, ast.Instruction{}, false, nil
	}
	if p.cur().Kind != token.KW_WITH {
		p.pos = start
		return false, ast.Instruction{}, false, nil
	}
	p.advance() // KW_WITH
	to, err := p.parseAtom()
	if err != nil {
		p.pos = start
		return false, ast.Instruction{}, false, nil
	}
	if p.cur().Kind != token.KW_RANGE && p.cur().Kind != token.KW_BETWEEN {
		p.pos = start
		return false, ast.Instruction{}, false, nil
	}
	p.advance() // aralığında | arasında

	var step ast.Atom
	if p.cur().Kind != token.COLON {
		s, err := p.parseAtom()
		if err != nil {
			return true, ast.Instruction{}, true, err
		}
		if _, err := p.expect(token.KW_STEPPING, "artarak"); err != nil {
			return true, ast.Instruction{}, true, err
		}
		step = s
	}
	if _, err := p.expect(token.COLON, ":"); err != nil {
		return true, ast.Instruction{}, true, err
	}
	nameTok, err := p.expect(token.IDENT, "değişken adı")
	if err != nil {
		return true, ast.Instruction{}, true, err
	}
	return true, ast.Instruction{Kind: ast.For, From: from, To: to, Step: step, VarName: nameTok.Literal}, true, nil
}

func (p *Parser) parseForIn() (bool, ast.Instruction, error) {
	containerTok, err := p.expect(token.IDENT, "kapsayıcı adı")
	if err != nil {
		return false, ast.Instruction{}, err
	}
	if _, err := p.expect(token.KW_IN, "içinde"); err != nil {
		return false, ast.Instruction{}, err
	}
	var step ast.Atom
	if p.cur().Kind != token.KW_ITERATE {
		s, err := p.parseAtom()
		if err != nil {
			return false, ast.Instruction{}, err
		}
		if _, err := p.expect(token.KW_STEPPING, "artarak"); err != nil {
			return false, ast.Instruction{}, err
		}
		step = s
	}
	if _, err := p.expect(token.KW_ITERATE, "dolan"); err != nil {
		return false, ast.Instruction{}, err
	}
	if _, err := p.expect(token.COLON, ":"); err != nil {
		return false, ast.Instruction{}, err
	}
	iterTok, err := p.expect(token.IDENT, "değişken adı")
	if err != nil {
		return false, ast.Instruction{}, err
	}
	return true, ast.Instruction{
		Kind:          ast.ForIn,
		ContainerName: containerTok.Literal,
		Step:          step,
		IterVarName:   iterTok.Literal,
	}, nil
}

// ---------------------------------------------------------------------------------------------
// Function declaration / call statement
// ---------------------------------------------------------------------------------------------

func (p *Parser) parseFunctionDecl() (bool, ast.Instruction, error) {
	p.advance() // KW_FUNCTION
	nameTok, err := p.expect(token.IDENT, "fonksiyon adı")
	if err != nil {
		return false, ast.Instruction{}, err
	}
	if _, err := p.expect(token.LPAREN, "("); err != nil {
		return false, ast.Instruction{}, err
	}
	var params []ast.Param
	for p.cur().Kind != token.RPAREN {
		paramTok, err := p.expect(token.IDENT, "parametre adı")
		if err != nil {
			return false, ast.Instruction{}, err
		}
		param := ast.Param{Name: paramTok.Literal}
		if p.cur().Kind == token.COLON {
			p.advance()
			tag, err := p.parseTypeTag()
			if err != nil {
				return false, ast.Instruction{}, err
			}
			param.DeclaredType = &tag
		}
		if p.cur().Kind == token.ASSIGN {
			p.advance()
			def, err := p.parseExpression()
			if err != nil {
				return false, ast.Instruction{}, err
			}
			param.Default = def
		}
		params = append(params, param)
		if p.cur().Kind == token.COMMA {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(token.RPAREN, ")"); err != nil {
		return false, ast.Instruction{}, err
	}
	return true, ast.Instruction{Kind: ast.FunctionDecl, Name: nameTok.Literal, Params: params}, nil
}

func (p *Parser) parseTypeTag() (value.TypeTag, error) {
	switch p.cur().Kind {
	case token.KW_TYPE_NUMBER:
		p.advance()
		return value.TagNumber, nil
	case token.KW_TYPE_TEXT:
		p.advance()
		return value.TagText, nil
	case token.KW_TYPE_BOOLEAN:
		p.advance()
		return value.TagBoolean, nil
	default:
		return 0, p.errorf(p.cur(), "sayı/metin/mantıksal", "beklenmeyen jeton %q", p.cur().Literal)
	}
}

func (p *Parser) parseFunctionCallStmt() (bool, ast.Instruction, error) {
	nameTok := p.advance() // IDENT
	args, err := p.parseAtomArgList()
	if err != nil {
		return false, ast.Instruction{}, err
	}
	return false, ast.Instruction{Kind: ast.FunctionCallStmt, Name: nameTok.Literal, CallArgs: args}, nil
}

func (p *Parser) parseAtomArgList() ([]ast.Atom, error) {
	if _, err := p.expect(token.LPAREN, "("); err != nil {
		return nil, err
	}
	var args []ast.Atom
	for p.cur().Kind != token.RPAREN {
		a, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		args = append(args, a)
		if p.cur().Kind == token.COMMA {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(token.RPAREN, ")"); err != nil {
		return nil, err
	}
	return args, nil
}

func (p *Parser) parseExprArgList() ([]*ast.Expression, error) {
	if _, err := p.expect(token.LPAREN, "("); err != nil {
		return nil, err
	}
	var args []*ast.Expression
	for p.cur().Kind != token.RPAREN {
		e, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, e)
		if p.cur().Kind == token.COMMA {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(token.RPAREN, ")"); err != nil {
		return nil, err
	}
	return args, nil
}

// ---------------------------------------------------------------------------------------------
// Assignment / Wait / Return
// ---------------------------------------------------------------------------------------------

func (p *Parser) parseAssignment() (bool, ast.Instruction, error) {
	nameTok := p.advance() // IDENT
	opTok := p.advance()
	var method ast.AssignMethod
	switch opTok.Kind {
	case token.ASSIGN:
		method = ast.Set
	case token.ASSIGN_ADD:
		method = ast.Add
	case token.ASSIGN_SUB:
		method = ast.SubAssign
	case token.ASSIGN_MUL:
		method = ast.Mul
	case token.ASSIGN_DIV:
		method = ast.DivAssign
	}
	val, err := p.parseAtom()
	if err != nil {
		return false, ast.Instruction{}, err
	}
	return false, ast.Instruction{Kind: ast.VariableAssign, Name: nameTok.Literal, AssignValue: val, AssignMethod: method}, nil
}

func (p *Parser) parseReturn() (bool, ast.Instruction, error) {
	p.advance() // KW_RETURN
	val, err := p.parseAtom()
	if err != nil {
		return false, ast.Instruction{}, err
	}
	return false, ast.Instruction{Kind: ast.Return, ReturnValue: val}, nil
}

// ParseWaitLine handles the "Atom time-unit-kw KW_wait" statement form. The assembler
// routes a line here (instead of through ParseLine) when it detects the line's tokens end
// in KW_WAIT, since a leading Atom is otherwise ambiguous with Repeat/For-range.
func (p *Parser) ParseWaitLine() (bool, ast.Instruction, error) {
	amount, err := p.parseAtom()
	if err != nil {
		return false, ast.Instruction{}, err
	}
	unit, err := p.parseTimeUnit()
	if err != nil {
		return false, ast.Instruction{}, err
	}
	if _, err := p.expect(token.KW_WAIT, "bekle"); err != nil {
		return false, ast.Instruction{}, err
	}
	return false, ast.Instruction{Kind: ast.Wait, Amount: amount, Unit: unit}, nil
}

func (p *Parser) parseTimeUnit() (ast.TimeUnit, error) {
	switch p.cur().Kind {
	case token.KW_MS:
		p.advance()
		return ast.Millisecond, nil
	case token.KW_SEC:
		p.advance()
		return ast.Second, nil
	case token.KW_MIN:
		p.advance()
		return ast.Minute, nil
	case token.KW_HOUR:
		p.advance()
		return ast.Hour, nil
	case token.KW_DAY:
		p.advance()
		return ast.Day, nil
	case token.KW_WEEK:
		p.advance()
		return ast.Week, nil
	case token.KW_MONTH:
		p.advance()
		return ast.Month, nil
	case token.KW_YEAR:
		p.advance()
		return ast.Year, nil
	default:
		return 0, p.errorf(p.cur(), "salise/saniye/dakika/saat/gün/hafta/ay/yıl", "beklenmeyen jeton %q", p.cur().Literal)
	}
}

// HasTrailingWait reports whether this logical line's tokens end (EOF aside) in KW_WAIT,
// letting the assembler route it to ParseWaitLine instead of the ambiguous Repeat/For
// dispatch in ParseLine.
func HasTrailingWait(toks []token.Token) bool {
	for i := len(toks) - 1; i >= 0; i-- {
		if toks[i].Kind == token.EOF {
			continue
		}
		return toks[i].Kind == token.KW_WAIT
	}
	return false
}

// ---------------------------------------------------------------------------------------------
// Atom / Expression grammar
// ---------------------------------------------------------------------------------------------

// parseAtom parses a value position: a YieldingInstruction (girdi, rastgele, a call
// "name(...)", or an index "name[...]") if one starts here, else a full Expression.
func (p *Parser) parseAtom() (ast.Atom, error) {
	switch {
	case p.cur().Kind == token.KW_INPUT:
		y, err := p.parseInput()
		if err != nil {
			return ast.Atom{}, err
		}
		return ast.YieldAtom(y), nil
	case p.cur().Kind == token.KW_RANDOM:
		y, err := p.parseRandom()
		if err != nil {
			return ast.Atom{}, err
		}
		return ast.YieldAtom(y), nil
	case p.cur().Kind == token.IDENT && p.peek().Kind == token.LPAREN:
		name := p.advance().Literal
		args, err := p.parseExprArgList()
		if err != nil {
			return ast.Atom{}, err
		}
		return ast.YieldAtom(&ast.YieldingInstruction{Kind: ast.YieldCall, Name: name, Args: args}), nil
	case p.cur().Kind == token.IDENT && p.peek().Kind == token.LBRACKET:
		name := p.advance().Literal
		p.advance() // LBRACKET
		idx, err := p.parseAtom()
		if err != nil {
			return ast.Atom{}, err
		}
		if _, err := p.expect(token.RBRACKET, "]"); err != nil {
			return ast.Atom{}, err
		}
		return ast.YieldAtom(&ast.YieldingInstruction{Kind: ast.YieldIndex, IndexName: name, IndexAt: &idx}), nil
	}

	e, err := p.parseExpression()
	if err != nil {
		return ast.Atom{}, err
	}
	return ast.ExprAtom(e), nil
}

// parseInput: "girdi <promptExpr> (sayı|metin|mantıksal)?"
func (p *Parser) parseInput() (*ast.YieldingInstruction, error) {
	p.advance() // KW_INPUT
	prompt, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	y := &ast.YieldingInstruction{Kind: ast.YieldInput, Prompt: prompt}
	switch p.cur().Kind {
	case token.KW_TYPE_NUMBER, token.KW_TYPE_TEXT, token.KW_TYPE_BOOLEAN:
		tag, err := p.parseTypeTag()
		if err != nil {
			return nil, err
		}
		y.CoerceTo = &tag
	}
	return y, nil
}

// parseRandom: "rastgele sayı (Expression ile Expression arasında)?" | "rastgele harf" |
// "rastgele mantıksal Expression".
func (p *Parser) parseRandom() (*ast.YieldingInstruction, error) {
	p.advance() // KW_RANDOM
	switch p.cur().Kind {
	case token.KW_TYPE_NUMBER:
		p.advance()
		y := &ast.YieldingInstruction{Kind: ast.YieldRandom, Mode: ast.RandomNumber}
		if p.cur().Kind != token.EOF && p.cur().Kind != token.COMMA && p.cur().Kind != token.RPAREN {
			from, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(token.KW_WITH, "ile"); err != nil {
				return nil, err
			}
			to, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(token.KW_BETWEEN, "arasında"); err != nil {
				return nil, err
			}
			y.From, y.To = from, to
		}
		return y, nil
	case token.KW_LETTER_VARIANT:
		p.advance()
		return &ast.YieldingInstruction{Kind: ast.YieldRandom, Mode: ast.RandomLetter}, nil
	case token.KW_TYPE_BOOLEAN:
		p.advance()
		chance, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return &ast.YieldingInstruction{Kind: ast.YieldRandom, Mode: ast.RandomBoolean, Chance: chance}, nil
	default:
		return nil, p.errorf(p.cur(), "sayı/harf/mantıksal", "beklenmeyen jeton %q", p.cur().Literal)
	}
}

// parseExpression implements the comparison tier: exactly zero or one comparison operator
// between two additive expressions — comparisons do not chain.
func (p *Parser) parseExpression() (*ast.Expression, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	if op, ok := comparisonOp(p.cur().Kind); ok {
		p.advance()
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		return ast.Binary(op, left, right), nil
	}
	return left, nil
}

func comparisonOp(k token.Kind) (string, bool) {
	switch k {
	case token.EQ:
		return "==", true
	case token.NEQ:
		return "!=", true
	case token.LT:
		return "<", true
	case token.GT:
		return ">", true
	case token.LTE:
		return "<=", true
	case token.GTE:
		return ">=", true
	default:
		return "", false
	}
}

func (p *Parser) parseAdditive() (*ast.Expression, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.cur().Kind == token.PLUS || p.cur().Kind == token.MINUS {
		op := "+"
		if p.cur().Kind == token.MINUS {
			op = "-"
		}
		p.advance()
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = ast.Binary(op, left, right)
	}
	return left, nil
}

func (p *Parser) parseMultiplicative() (*ast.Expression, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		var op string
		switch p.cur().Kind {
		case token.STAR:
			op = "*"
		case token.SLASH:
			op = "/"
		case token.PERCENT:
			op = "%"
		case token.CARET:
			op = "^"
		default:
			return left, nil
		}
		p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = ast.Binary(op, left, right)
	}
}

func (p *Parser) parseUnary() (*ast.Expression, error) {
	switch p.cur().Kind {
	case token.NOT:
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return ast.UnaryNot(operand), nil
	case token.MINUS:
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return ast.UnaryNeg(operand), nil
	default:
		return p.parsePrimary()
	}
}

func (p *Parser) parsePrimary() (*ast.Expression, error) {
	tok := p.cur()
	switch tok.Kind {
	case token.LPAREN:
		p.advance()
		e, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN, ")"); err != nil {
			return nil, err
		}
		return e, nil
	case token.LBRACKET:
		return p.parseArrayLiteral()
	case token.NUMBER:
		p.advance()
		n, err := parseFloat(tok.Literal)
		if err != nil {
			return nil, p.errorf(tok, "sayı", "geçersiz sayı literali %q", tok.Literal)
		}
		return ast.Lit(value.Num(n)), nil
	case token.TEXT:
		p.advance()
		return ast.Lit(value.Str(tok.Literal)), nil
	case token.BOOL:
		p.advance()
		return ast.Lit(value.Bool(token.IsTrueLiteral(tok.Literal))), nil
	case token.IDENT:
		p.advance()
		return ast.Lit(value.Var(tok.Literal)), nil
	default:
		return nil, p.errorf(tok, "değer", "beklenmeyen jeton %q", tok.Literal)
	}
}

func (p *Parser) parseArrayLiteral() (*ast.Expression, error) {
	p.advance() // LBRACKET
	var elems []*ast.Expression
	for p.cur().Kind != token.RBRACKET {
		e, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		elems = append(elems, e)
		if p.cur().Kind == token.COMMA {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(token.RBRACKET, "]"); err != nil {
		return nil, err
	}
	return ast.ArrayLit(elems), nil
}

func parseFloat(s string) (float64, error) {
	var n float64
	_, err := fmt.Sscanf(s, "%g", &n)
	return n, err
}
