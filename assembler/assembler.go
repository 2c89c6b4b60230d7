// ==============================================================================================
// FILE: assembler/assembler.go
// ==============================================================================================
// PACKAGE: assembler
// PURPOSE: Drives the lexer, parser, and scope manager to fold a whole source file into a
//          scope tree: per physical line, lex → split on top-level ';' → for each resulting
//          logical line, count leading tabs, parse, reconcile indentation against the current
//          scope, and materialize any block the parsed instruction introduces.
// ==============================================================================================

package assembler

import (
	"io"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"

	"zen/ast"
	"zen/diag"
	"zen/lexer"
	"zen/parser"
	"zen/scope"
	"zen/token"
)

// Assembler owns the scope arena being built and the strict-mode indentation policy.
type Assembler struct {
	mgr     *scope.Manager
	file    string
	strict  bool
	current int
	log     *logrus.Logger
}

// New creates an Assembler with a fresh scope arena rooted at scope 0. log may be nil, in
// which case a discarding logger is used.
func New(file string, strict bool, log *logrus.Logger) *Assembler {
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}
	mgr := scope.NewManager()
	return &Assembler{mgr: mgr, file: file, strict: strict, current: mgr.RootID(), log: log}
}

// Manager exposes the built arena, normally called after AssembleSource returns.
func (a *Assembler) Manager() *scope.Manager { return a.mgr }

// AssembleSource runs the lex/parse/reconcile/materialize pipeline over src and returns the
// aggregate of every line-level error encountered (nil if none). Assembly does not stop at
// the first error; every malformed line is collected and the rest of the file is still
// assembled.
func (a *Assembler) AssembleSource(src string) error {
	var errs *multierror.Error
	lines := strings.Split(src, "\n")
	for i, raw := range lines {
		lineNo := i + 1
		if err := a.assembleLine(raw, lineNo); err != nil {
			errs = diag.Append(errs, err)
		}
	}
	if errs != nil {
		return errs.ErrorOrNil()
	}
	return nil
}

func (a *Assembler) assembleLine(raw string, lineNo int) error {
	toks := lexer.Tokenize(raw)

	indent := 0
	i := 0
	for i < len(toks) && toks[i].Kind == token.TAB {
		indent++
		i++
	}
	toks = toks[i:]

	if len(toks) == 0 || toks[0].Kind == token.EOF || toks[0].Kind == token.COMMENT {
		return nil
	}

	var errs *multierror.Error
	for _, segment := range splitOnSemicolons(toks) {
		if len(segment) == 0 || segment[0].Kind == token.COMMENT {
			continue
		}
		malformed := false
		for _, t := range segment {
			if !t.OK {
				malformed = true
			}
		}
		if malformed {
			continue // malformed logical line: silently skipped, not a fatal error
		}
		if err := a.assembleSegment(segment, indent, lineNo); err != nil {
			errs = diag.Append(errs, err)
		}
	}
	if errs != nil {
		return errs.ErrorOrNil()
	}
	return nil
}

// splitOnSemicolons breaks a logical line's token list into independent segments at
// top-level SEMI tokens. The trailing EOF is dropped from every segment; Parser synthesizes
// its own EOF once a segment's tokens are exhausted.
func splitOnSemicolons(toks []token.Token) [][]token.Token {
	var segments [][]token.Token
	var cur []token.Token
	for _, t := range toks {
		switch t.Kind {
		case token.EOF:
			continue
		case token.SEMI:
			segments = append(segments, cur)
			cur = nil
		default:
			cur = append(cur, t)
		}
	}
	segments = append(segments, cur)
	return segments
}

func (a *Assembler) assembleSegment(segment []token.Token, indent, lineNo int) error {
	blockFlag, instr, err := a.parseSegment(segment, lineNo)
	if err != nil {
		return err
	}

	for a.mgr.Depth(a.current) > indent {
		popped := a.current
		a.current = a.mgr.Parent(a.current)
		a.log.WithField("scope", popped).WithField("to", a.current).Debug("kapsam kapatıldı")
	}
	if indent > a.mgr.Depth(a.current)+1 {
		if a.strict {
			return diag.New(diag.IndentationError, a.file, lineNo,
				"girinti beklenenden fazla: %d (mevcut derinlik: %d)", indent, a.mgr.Depth(a.current))
		}
		// Non-strict mode tolerates the jump by treating it as a one-level indent.
	}

	if !blockFlag {
		a.mgr.PushInstruction(a.current, instr)
		return nil
	}
	return a.materializeBlock(instr, lineNo)
}

func (a *Assembler) parseSegment(segment []token.Token, lineNo int) (bool, ast.Instruction, error) {
	p := parser.New(segment, a.file, lineNo)
	if parser.HasTrailingWait(segment) {
		return p.ParseWaitLine()
	}
	return p.ParseLine()
}

// materializeBlock turns a block-introducing instruction into a fresh child scope and makes
// it the assembler's current insertion point.
func (a *Assembler) materializeBlock(instr ast.Instruction, lineNo int) error {
	switch instr.Kind {
	case ast.Repeat, ast.WhileTrue, ast.For, ast.ForIn:
		childID := a.mgr.CreateChild(a.current, scope.Transparent, actionForLoop(instr.Kind))
		instr.BodyScopeID = childID
		a.mgr.PushInstruction(a.current, instr)
		a.log.WithField("scope", childID).WithField("parent", a.current).Debug("kapsam oluşturuldu")
		a.current = childID
		return nil

	case ast.FunctionDecl:
		childID := a.mgr.CreateChild(a.current, scope.Isolated, scope.ActionFunction)
		instr.BodyScopeID = childID
		a.mgr.PushInstruction(a.current, instr)
		a.log.WithField("scope", childID).WithField("parent", a.current).Debug("kapsam oluşturuldu")
		a.current = childID
		return nil

	case ast.IfChain:
		return a.materializeIfChain(instr, lineNo)

	default:
		return diag.New(diag.UnknownError, a.file, lineNo, "blok açan bilinmeyen yönerge")
	}
}

func actionForLoop(kind ast.InstrKind) scope.Action {
	switch kind {
	case ast.Repeat:
		return scope.ActionRepeat
	case ast.WhileTrue:
		return scope.ActionWhileTrue
	case ast.For:
		return scope.ActionFor
	case ast.ForIn:
		return scope.ActionForIn
	default:
		return scope.ActionRoot
	}
}

// materializeIfChain distinguishes a fresh `eğer` (which pushes a brand new IfChain
// instruction) from `değilse ve`/`değilse` (which must locate the most recently pushed
// IfChain in the current scope and extend it in place).
func (a *Assembler) materializeIfChain(instr ast.Instruction, lineNo int) error {
	isFresh := len(instr.Elifs) == 0 && instr.Else == nil

	if isFresh {
		childID := a.mgr.CreateChild(a.current, scope.Transparent, scope.ActionCondition)
		instr.If.BodyScopeID = childID
		a.mgr.PushInstruction(a.current, instr)
		a.log.WithField("scope", childID).WithField("parent", a.current).Debug("kapsam oluşturuldu")
		a.current = childID
		return nil
	}

	last := a.mgr.LastInstruction(a.current)
	if last == nil || last.Kind != ast.IfChain {
		return diag.New(diag.TokenError, a.file, lineNo,
			"\"değilse ve\"/\"değilse\" öncesinde bir \"eğer\" bloğu yok")
	}

	childID := a.mgr.CreateChild(a.current, scope.Transparent, scope.ActionCondition)
	if len(instr.Elifs) == 1 {
		branch := instr.Elifs[0]
		branch.BodyScopeID = childID
		last.Elifs = append(last.Elifs, branch)
	} else {
		branch := *instr.Else
		branch.BodyScopeID = childID
		last.Else = &branch
	}
	a.log.WithField("scope", childID).WithField("parent", a.current).Debug("kapsam oluşturuldu")
	a.current = childID
	return nil
}
