// ==============================================================================================
// FILE: exec/exec.go
// ==============================================================================================
// PACKAGE: exec
// PURPOSE: The tree-walking executor. Recursively runs a scope's instruction list against the
//          Scope Manager, performing side effects and returning a BlockOutcome that signals
//          Normal/Break/Continue/Return up through the recursion.
// ==============================================================================================

package exec

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"zen/ast"
	"zen/diag"
	"zen/scope"
	"zen/value"
)

// OutcomeKind discriminates the BlockOutcome sum.
type OutcomeKind int

const (
	Normal OutcomeKind = iota
	BreakOutcome
	ContinueOutcome
	ReturnOutcome
)

// Outcome is the signal a body execution returns. Value is only meaningful for
// ReturnOutcome.
type Outcome struct {
	Kind  OutcomeKind
	Value value.Value
}

// Executor walks the scope tree built by the assembler.
type Executor struct {
	mgr  *scope.Manager
	file string
	out  io.Writer
	in   *bufio.Reader
	rng  *rand.Rand
	log  *logrus.Logger
}

// New creates an Executor. out/in are the stdout/stdin collaborators; log may be nil, in
// which case a discarding logger is used.
func New(mgr *scope.Manager, file string, out io.Writer, in io.Reader, seed int64, log *logrus.Logger) *Executor {
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}
	return &Executor{
		mgr:  mgr,
		file: file,
		out:  out,
		in:   bufio.NewReader(in),
		rng:  rand.New(rand.NewSource(seed)),
		log:  log,
	}
}

// Run executes the root scope to completion. A Break/Continue that escapes the outermost
// loop, or any diagnostic error, is returned; a Return at the top level simply ends the run.
func (e *Executor) Run() error {
	outcome, err := e.ExecuteScope(e.mgr.RootID())
	if err != nil {
		return err
	}
	switch outcome.Kind {
	case BreakOutcome, ContinueOutcome:
		return diag.New(diag.UnknownError, e.file, 0, "döngü dışında durdur/devam et kullanıldı")
	default:
		return nil
	}
}

// ExecuteScope runs every instruction in scope id's body in order, stopping early on the
// first non-Normal outcome.
func (e *Executor) ExecuteScope(id int) (Outcome, error) {
	return e.ExecuteScopeFrom(id, 0)
}

// ExecuteScopeFrom runs scope id's body starting at instruction index start. The REPL uses
// this to execute only the instructions a freshly assembled paragraph appended to the root
// scope, without re-running statements from earlier paragraphs still sitting in the body.
func (e *Executor) ExecuteScopeFrom(id, start int) (Outcome, error) {
	body := e.mgr.Scope(id).Body
	for _, instr := range body[start:] {
		outcome, err := e.executeInstr(id, instr)
		if err != nil {
			return Outcome{}, err
		}
		if outcome.Kind != Normal {
			return outcome, nil
		}
	}
	return Outcome{Kind: Normal}, nil
}

// BodyLen reports the current instruction count of scope id's body, used by the REPL to
// remember where the next paragraph's new instructions begin.
func (e *Executor) BodyLen(id int) int {
	return len(e.mgr.Scope(id).Body)
}

func (e *Executor) executeInstr(scopeID int, instr ast.Instruction) (Outcome, error) {
	switch instr.Kind {
	case ast.NoOp:
		return Outcome{Kind: Normal}, nil
	case ast.Print:
		return e.execPrint(scopeID, instr, false)
	case ast.Type:
		return e.execPrint(scopeID, instr, true)
	case ast.Wait:
		return e.execWait(scopeID, instr)
	case ast.VariableAssign:
		return e.execAssign(scopeID, instr)
	case ast.Repeat:
		return e.execRepeat(scopeID, instr)
	case ast.WhileTrue:
		return e.execWhileTrue(instr)
	case ast.For:
		return e.execFor(scopeID, instr)
	case ast.ForIn:
		return e.execForIn(scopeID, instr)
	case ast.IfChain:
		return e.execIfChain(scopeID, instr)
	case ast.FunctionDecl:
		return e.execFunctionDecl(scopeID, instr)
	case ast.FunctionCallStmt:
		return e.execFunctionCallStmt(scopeID, instr)
	case ast.Break:
		return Outcome{Kind: BreakOutcome}, nil
	case ast.Continue:
		return Outcome{Kind: ContinueOutcome}, nil
	case ast.Return:
		val, err := e.resolveAtom(scopeID, instr.ReturnValue)
		if err != nil {
			return Outcome{}, err
		}
		return Outcome{Kind: ReturnOutcome, Value: val}, nil
	default:
		return Outcome{}, diag.New(diag.UnknownError, e.file, 0, "bilinmeyen yönerge türü")
	}
}

// ---------------------------------------------------------------------------------------------
// Print / Type / Wait
// ---------------------------------------------------------------------------------------------

func (e *Executor) execPrint(scopeID int, instr ast.Instruction, withType bool) (Outcome, error) {
	parts := make([]string, 0, len(instr.Args))
	for _, a := range instr.Args {
		v, err := e.resolveAtom(scopeID, a)
		if err != nil {
			return Outcome{}, err
		}
		if withType {
			parts = append(parts, fmt.Sprintf("%s (%s)", v.Inspect(), v.Kind))
		} else {
			parts = append(parts, v.Inspect())
		}
	}
	fmt.Fprintln(e.out, strings.Join(parts, " "))
	return Outcome{Kind: Normal}, nil
}

var unitDuration = map[ast.TimeUnit]time.Duration{
	ast.Millisecond: time.Millisecond,
	ast.Second:      time.Second,
	ast.Minute:      time.Minute,
	ast.Hour:        time.Hour,
	ast.Day:         24 * time.Hour,
	ast.Week:        7 * 24 * time.Hour,
	ast.Month:       30 * 24 * time.Hour,
	ast.Year:        365 * 24 * time.Hour,
}

func (e *Executor) execWait(scopeID int, instr ast.Instruction) (Outcome, error) {
	amount, err := e.resolveAtom(scopeID, instr.Amount)
	if err != nil {
		return Outcome{}, err
	}
	d := time.Duration(amount.Num * float64(unitDuration[instr.Unit]))
	e.log.WithField("duration", d).Debug("bekle")
	time.Sleep(d)
	return Outcome{Kind: Normal}, nil
}

// ---------------------------------------------------------------------------------------------
// Assignment
// ---------------------------------------------------------------------------------------------

func (e *Executor) execAssign(scopeID int, instr ast.Instruction) (Outcome, error) {
	rhs, err := e.resolveAtom(scopeID, instr.AssignValue)
	if err != nil {
		return Outcome{}, err
	}
	if instr.AssignMethod == ast.Set {
		e.mgr.SetVar(scopeID, instr.Name, rhs.Clone())
		return Outcome{Kind: Normal}, nil
	}

	cur, ok := e.mgr.GetVar(scopeID, instr.Name)
	if !ok {
		return Outcome{}, diag.New(diag.UndefinedNameError, e.file, 0, "tanımsız isim: %s", instr.Name)
	}
	var next value.Value
	var opErr error
	switch instr.AssignMethod {
	case ast.Add:
		next, opErr = value.Add(cur, rhs)
	case ast.SubAssign:
		next, opErr = value.Sub(cur, rhs)
	case ast.Mul:
		next, opErr = value.Mul(cur, rhs)
	case ast.DivAssign:
		next, opErr = value.Div(cur, rhs)
	}
	if opErr != nil {
		return Outcome{}, diag.New(diag.TypeError, e.file, 0, "%s", opErr.Error())
	}
	e.mgr.SetVar(scopeID, instr.Name, next)
	return Outcome{Kind: Normal}, nil
}

// ---------------------------------------------------------------------------------------------
// Loops
// ---------------------------------------------------------------------------------------------

// runLoopBody executes one iteration's body and translates Break/Continue into loop control;
// Return and errors propagate to the caller unchanged.
func (e *Executor) runLoopBody(bodyScopeID int) (stop bool, propagate *Outcome, err error) {
	outcome, err := e.ExecuteScope(bodyScopeID)
	if err != nil {
		return true, nil, err
	}
	switch outcome.Kind {
	case BreakOutcome:
		return true, nil, nil
	case ReturnOutcome:
		return true, &outcome, nil
	default:
		return false, nil, nil
	}
}

func (e *Executor) execRepeat(scopeID int, instr ast.Instruction) (Outcome, error) {
	countVal, err := e.resolveAtom(scopeID, instr.Count)
	if err != nil {
		return Outcome{}, err
	}
	n := int(math.Trunc(countVal.Num))
	e.log.WithField("count", n).Trace("tekrarla girildi")
	defer e.log.Trace("tekrarla çıkıldı")
	for i := 0; i < n; i++ {
		stop, propagate, err := e.runLoopBody(instr.BodyScopeID)
		if err != nil {
			return Outcome{}, err
		}
		if propagate != nil {
			return *propagate, nil
		}
		if stop {
			break
		}
	}
	return Outcome{Kind: Normal}, nil
}

func (e *Executor) execWhileTrue(instr ast.Instruction) (Outcome, error) {
	e.log.Trace("sürekli tekrarla girildi")
	defer e.log.Trace("sürekli tekrarla çıkıldı")
	for {
		stop, propagate, err := e.runLoopBody(instr.BodyScopeID)
		if err != nil {
			return Outcome{}, err
		}
		if propagate != nil {
			return *propagate, nil
		}
		if stop {
			break
		}
	}
	return Outcome{Kind: Normal}, nil
}

func (e *Executor) execFor(scopeID int, instr ast.Instruction) (Outcome, error) {
	fromVal, err := e.resolveAtom(scopeID, instr.From)
	if err != nil {
		return Outcome{}, err
	}
	toVal, err := e.resolveAtom(scopeID, instr.To)
	if err != nil {
		return Outcome{}, err
	}
	step := 1.0
	if !isEmptyAtom(instr.Step) {
		stepVal, err := e.resolveAtom(scopeID, instr.Step)
		if err != nil {
			return Outcome{}, err
		}
		step = math.Trunc(stepVal.Num)
		if step == 0 {
			step = 1
		}
	}
	from := math.Trunc(fromVal.Num)
	to := math.Trunc(toVal.Num)

	e.log.WithField("from", from).WithField("to", to).WithField("step", step).Trace("for girildi")
	defer e.log.Trace("for çıkıldı")
	for i := from; i < to; i += step {
		e.mgr.SetVar(instr.BodyScopeID, instr.VarName, value.Num(i))
		stop, propagate, err := e.runLoopBody(instr.BodyScopeID)
		if err != nil {
			return Outcome{}, err
		}
		if propagate != nil {
			return *propagate, nil
		}
		if stop {
			break
		}
	}
	return Outcome{Kind: Normal}, nil
}

func (e *Executor) execForIn(scopeID int, instr ast.Instruction) (Outcome, error) {
	container, ok := e.mgr.GetVar(scopeID, instr.ContainerName)
	if !ok {
		return Outcome{}, diag.New(diag.UndefinedNameError, e.file, 0, "tanımsız isim: %s", instr.ContainerName)
	}
	step := 1
	if !isEmptyAtom(instr.Step) {
		stepVal, err := e.resolveAtom(scopeID, instr.Step)
		if err != nil {
			return Outcome{}, err
		}
		step = int(math.Trunc(stepVal.Num))
		if step <= 0 {
			step = 1
		}
	}

	var items []value.Value
	switch container.Kind {
	case value.Text:
		for _, r := range container.Str {
			items = append(items, value.Str(string(r)))
		}
	case value.Array:
		items = container.Arr
	default:
		return Outcome{}, diag.New(diag.TypeError, e.file, 0,
			"%s içinde dolaşılamaz: metin veya dizi bekleniyor", instr.ContainerName)
	}

	e.log.WithField("container", instr.ContainerName).WithField("items", len(items)).Trace("içinde dolan girildi")
	defer e.log.Trace("içinde dolan çıkıldı")
	for i := 0; i < len(items); i += step {
		e.mgr.SetVar(instr.BodyScopeID, instr.IterVarName, items[i].Clone())
		stop, propagate, err := e.runLoopBody(instr.BodyScopeID)
		if err != nil {
			return Outcome{}, err
		}
		if propagate != nil {
			return *propagate, nil
		}
		if stop {
			break
		}
	}
	return Outcome{Kind: Normal}, nil
}

func isEmptyAtom(a ast.Atom) bool {
	return a.Kind == ast.AtomExpr && a.Expr == nil && a.Yield == nil
}

// ---------------------------------------------------------------------------------------------
// IfChain
// ---------------------------------------------------------------------------------------------

func (e *Executor) execIfChain(scopeID int, instr ast.Instruction) (Outcome, error) {
	branches := append([]ast.Branch{instr.If}, instr.Elifs...)
	for _, b := range branches {
		truthy, err := e.branchTruthy(scopeID, b)
		if err != nil {
			return Outcome{}, err
		}
		if truthy {
			return e.ExecuteScope(b.BodyScopeID)
		}
	}
	if instr.Else != nil {
		return e.ExecuteScope(instr.Else.BodyScopeID)
	}
	return Outcome{Kind: Normal}, nil
}

func (e *Executor) branchTruthy(scopeID int, b ast.Branch) (bool, error) {
	if b.AlwaysTrue {
		return true, nil
	}
	v, err := e.resolveAtom(scopeID, b.Condition)
	if err != nil {
		return false, err
	}
	return v.Truthy(), nil
}

// ---------------------------------------------------------------------------------------------
// Functions
// ---------------------------------------------------------------------------------------------

func (e *Executor) execFunctionDecl(scopeID int, instr ast.Instruction) (Outcome, error) {
	defaults := make([]*value.Value, len(instr.Params))
	for i, param := range instr.Params {
		if param.Default == nil {
			continue
		}
		v, err := e.evalExpr(scopeID, param.Default)
		if err != nil {
			return Outcome{}, err
		}
		defaults[i] = &v
	}
	e.mgr.DeclareFunction(scopeID, scope.FunctionRecord{
		Name:             instr.Name,
		Params:           instr.Params,
		ResolvedDefaults: defaults,
		BodyScopeID:      instr.BodyScopeID,
	})
	return Outcome{Kind: Normal}, nil
}

func (e *Executor) execFunctionCallStmt(scopeID int, instr ast.Instruction) (Outcome, error) {
	actuals := make([]value.Value, len(instr.CallArgs))
	for i, a := range instr.CallArgs {
		v, err := e.resolveAtom(scopeID, a)
		if err != nil {
			return Outcome{}, err
		}
		actuals[i] = v
	}
	if _, err := e.callFunction(scopeID, instr.Name, actuals); err != nil {
		return Outcome{}, err
	}
	return Outcome{Kind: Normal}, nil
}

// callFunction resolves name via the scope chain, validates arity and declared parameter
// types, binds locals in the callee's Isolated body scope, and runs it. A body that falls
// off the end without an explicit Return yields Null, not a conventional falsy sentinel.
func (e *Executor) callFunction(scopeID int, name string, actuals []value.Value) (value.Value, error) {
	e.log.WithField("name", name).WithField("argc", len(actuals)).Trace("fonksiyon çağrısı")
	rec, ok := e.mgr.GetFunction(scopeID, name)
	if !ok {
		return value.Value{}, diag.New(diag.FunctionNotFoundError, e.file, 0, "fonksiyon bulunamadı: %s", name)
	}
	if len(actuals) > len(rec.Params) {
		return value.Value{}, diag.New(diag.ArityError, e.file, 0,
			"%s için çok fazla argüman: en fazla %d bekleniyor", name, len(rec.Params))
	}
	for i, param := range rec.Params {
		var v value.Value
		switch {
		case i < len(actuals):
			v = actuals[i]
		case rec.ResolvedDefaults[i] != nil:
			v = *rec.ResolvedDefaults[i]
		default:
			return value.Value{}, diag.New(diag.ArityError, e.file, 0,
				"%s için eksik argüman: %s", name, param.Name)
		}
		if param.DeclaredType != nil && !v.Matches(*param.DeclaredType) {
			return value.Value{}, diag.New(diag.TypeError, e.file, 0,
				"%s parametresi %s türünde olmalı, %s geldi", param.Name, param.DeclaredType.String(), v.Kind)
		}
		e.mgr.SetVar(rec.BodyScopeID, param.Name, v.Clone())
	}

	outcome, err := e.ExecuteScope(rec.BodyScopeID)
	if err != nil {
		return value.Value{}, err
	}
	if outcome.Kind == ReturnOutcome {
		e.log.WithField("name", name).Trace("fonksiyon dönüşü")
		return outcome.Value, nil
	}
	e.log.WithField("name", name).Trace("fonksiyon dönüşü (boş)")
	return value.NullVal(), nil
}

// ---------------------------------------------------------------------------------------------
// Expression / Atom / YieldingInstruction evaluation
// ---------------------------------------------------------------------------------------------

func (e *Executor) resolveAtom(scopeID int, a ast.Atom) (value.Value, error) {
	if a.Kind == ast.AtomYield {
		return e.evalYield(scopeID, a.Yield)
	}
	return e.evalExpr(scopeID, a.Expr)
}

func (e *Executor) evalExpr(scopeID int, expr *ast.Expression) (value.Value, error) {
	switch expr.Kind {
	case ast.ExprLiteral:
		if expr.Literal.Kind == value.Variable {
			v, ok := e.mgr.GetVar(scopeID, expr.Literal.VarName)
			if !ok {
				return value.Value{}, diag.New(diag.UndefinedNameError, e.file, 0, "tanımsız isim: %s", expr.Literal.VarName)
			}
			return v.Clone(), nil
		}
		return expr.Literal.Clone(), nil

	case ast.ExprArray:
		elems := make([]value.Value, len(expr.Elements))
		for i, el := range expr.Elements {
			v, err := e.evalExpr(scopeID, el)
			if err != nil {
				return value.Value{}, err
			}
			elems[i] = v
		}
		return value.Arr(elems), nil

	case ast.ExprUnaryNot:
		v, err := e.evalExpr(scopeID, expr.Right)
		if err != nil {
			return value.Value{}, err
		}
		return value.Not(v), nil

	case ast.ExprUnaryNeg:
		v, err := e.evalExpr(scopeID, expr.Right)
		if err != nil {
			return value.Value{}, err
		}
		out, err := value.Neg(v)
		if err != nil {
			return value.Value{}, diag.New(diag.TypeError, e.file, 0, "%s", err.Error())
		}
		return out, nil

	case ast.ExprBinary:
		left, err := e.evalExpr(scopeID, expr.Left)
		if err != nil {
			return value.Value{}, err
		}
		right, err := e.evalExpr(scopeID, expr.Right)
		if err != nil {
			return value.Value{}, err
		}
		return e.evalBinary(expr.Op, left, right)

	default:
		return value.Value{}, diag.New(diag.UnknownError, e.file, 0, "bilinmeyen ifade türü")
	}
}

func (e *Executor) evalBinary(op string, left, right value.Value) (value.Value, error) {
	var out value.Value
	var err error
	switch op {
	case "+":
		out, err = value.Add(left, right)
	case "-":
		out, err = value.Sub(left, right)
	case "*":
		out, err = value.Mul(left, right)
	case "/":
		out, err = value.Div(left, right)
	case "%":
		out, err = value.Mod(left, right)
	case "^":
		out, err = value.Pow(left, right)
	case "==":
		return value.Bool(value.Equal(left, right)), nil
	case "!=":
		return value.Bool(!value.Equal(left, right)), nil
	case "<", ">", "<=", ">=":
		result, ok := value.Compare(op, left, right)
		if !ok {
			return value.Value{}, diag.New(diag.TypeError, e.file, 0,
				"%s ile %s karşılaştırılamaz", left.Kind, right.Kind)
		}
		return value.Bool(result), nil
	default:
		return value.Value{}, diag.New(diag.UnknownError, e.file, 0, "bilinmeyen işleç: %s", op)
	}
	if err != nil {
		kind := diag.TypeError
		if op == "%" && left.Kind == value.Number && right.Kind == value.Number && right.Num == 0 {
			kind = diag.DivisionByZeroError
		}
		return value.Value{}, diag.New(kind, e.file, 0, "%s", err.Error())
	}
	return out, nil
}

func (e *Executor) evalYield(scopeID int, y *ast.YieldingInstruction) (value.Value, error) {
	switch y.Kind {
	case ast.YieldInput:
		return e.evalInput(scopeID, y)
	case ast.YieldRandom:
		return e.evalRandom(scopeID, y)
	case ast.YieldCall:
		return e.evalCall(scopeID, y)
	case ast.YieldIndex:
		return e.evalIndex(scopeID, y)
	default:
		return value.Value{}, diag.New(diag.UnknownError, e.file, 0, "bilinmeyen üreten yönerge")
	}
}

func (e *Executor) evalInput(scopeID int, y *ast.YieldingInstruction) (value.Value, error) {
	prompt, err := e.evalExpr(scopeID, y.Prompt)
	if err != nil {
		return value.Value{}, err
	}
	fmt.Fprint(e.out, prompt.Inspect())
	line, _ := e.in.ReadString('\n')
	line = strings.TrimSpace(line)

	if y.CoerceTo == nil {
		return value.Str(line), nil
	}
	switch *y.CoerceTo {
	case value.TagNumber:
		var n float64
		if _, err := fmt.Sscanf(line, "%g", &n); err != nil {
			n = 0
		}
		return value.Num(n), nil
	case value.TagBoolean:
		return value.Bool(isTruthyWord(line)), nil
	default:
		return value.Str(line), nil
	}
}

func isTruthyWord(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "doğru", "evet", "yes":
		return true
	default:
		return false
	}
}

const randomLetters = "abcçdefgğhıijklmnoöprsştuüvyz"

func (e *Executor) evalRandom(scopeID int, y *ast.YieldingInstruction) (value.Value, error) {
	switch y.Mode {
	case ast.RandomNumber:
		lo, hi := 0, 1
		if y.From != nil {
			fromVal, err := e.evalExpr(scopeID, y.From)
			if err != nil {
				return value.Value{}, err
			}
			toVal, err := e.evalExpr(scopeID, y.To)
			if err != nil {
				return value.Value{}, err
			}
			lo = int(math.Trunc(fromVal.Num))
			hi = int(math.Trunc(toVal.Num))
		}
		if hi < lo {
			lo, hi = hi, lo
		}
		n := lo + e.rng.Intn(hi-lo+1)
		return value.Num(float64(n)), nil

	case ast.RandomLetter:
		letters := []rune(randomLetters)
		r := letters[e.rng.Intn(len(letters))]
		return value.Str(string(r)), nil

	case ast.RandomBoolean:
		chanceVal, err := e.evalExpr(scopeID, y.Chance)
		if err != nil {
			return value.Value{}, err
		}
		chance := chanceVal.Num
		if chance < 0 {
			chance = 0
		}
		if chance > 100 {
			chance = 100
		}
		return value.Bool(e.rng.Float64()*100 < chance), nil

	default:
		return value.Value{}, diag.New(diag.UnknownError, e.file, 0, "bilinmeyen rastgele türü")
	}
}

func (e *Executor) evalCall(scopeID int, y *ast.YieldingInstruction) (value.Value, error) {
	actuals := make([]value.Value, len(y.Args))
	for i, argExpr := range y.Args {
		v, err := e.evalExpr(scopeID, argExpr)
		if err != nil {
			return value.Value{}, err
		}
		actuals[i] = v
	}
	return e.callFunction(scopeID, y.Name, actuals)
}

func (e *Executor) evalIndex(scopeID int, y *ast.YieldingInstruction) (value.Value, error) {
	container, ok := e.mgr.GetVar(scopeID, y.IndexName)
	if !ok {
		return value.Value{}, diag.New(diag.UndefinedNameError, e.file, 0, "tanımsız isim: %s", y.IndexName)
	}
	idxVal, err := e.resolveAtom(scopeID, *y.IndexAt)
	if err != nil {
		return value.Value{}, err
	}
	i := int(math.Trunc(idxVal.Num))

	switch container.Kind {
	case value.Text:
		runes := []rune(container.Str)
		if i < 0 {
			i += len(runes)
		}
		if i < 0 || i >= len(runes) {
			return value.Bool(false), nil
		}
		return value.Str(string(runes[i])), nil
	case value.Array:
		if i < 0 {
			i += len(container.Arr)
		}
		if i < 0 || i >= len(container.Arr) {
			return value.Bool(false), nil
		}
		return container.Arr[i].Clone(), nil
	default:
		return value.Bool(false), nil
	}
}
