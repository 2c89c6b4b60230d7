// ==============================================================================================
// FILE: cmd/astdump.go
// ==============================================================================================
// PACKAGE: cmd
// PURPOSE: The `--printast` debugging aid for `run`: a indentation-nested dump of the scope
//          arena's instructions, one line per instruction, block bodies recursed into.
// ==============================================================================================

package cmd

import (
	"fmt"
	"io"
	"strings"

	"zen/assembler"
	"zen/ast"
)

func dumpScopeTree(out io.Writer, asm *assembler.Assembler, scopeID, depth int) {
	mgr := asm.Manager()
	sc := mgr.Scope(scopeID)
	pad := strings.Repeat("  ", depth)
	for _, instr := range sc.Body {
		fmt.Fprintf(out, "%s%s\n", pad, describeInstr(instr))
		for _, child := range childScopesOf(instr) {
			dumpScopeTree(out, asm, child, depth+1)
		}
	}
}

func childScopesOf(instr ast.Instruction) []int {
	switch instr.Kind {
	case ast.Repeat, ast.WhileTrue, ast.For, ast.ForIn, ast.FunctionDecl:
		return []int{instr.BodyScopeID}
	case ast.IfChain:
		ids := []int{instr.If.BodyScopeID}
		for _, elif := range instr.Elifs {
			ids = append(ids, elif.BodyScopeID)
		}
		if instr.Else != nil {
			ids = append(ids, instr.Else.BodyScopeID)
		}
		return ids
	default:
		return nil
	}
}

func describeInstr(instr ast.Instruction) string {
	switch instr.Kind {
	case ast.Print:
		return "yazdır"
	case ast.Type:
		return "tip"
	case ast.Wait:
		return "bekle"
	case ast.VariableAssign:
		return fmt.Sprintf("atama %s", instr.Name)
	case ast.Repeat:
		return "tekrarla"
	case ast.For:
		return fmt.Sprintf("for %s", instr.VarName)
	case ast.ForIn:
		return fmt.Sprintf("for-in %s", instr.IterVarName)
	case ast.WhileTrue:
		return "sürekli-tekrarla"
	case ast.IfChain:
		return "eğer-zinciri"
	case ast.FunctionDecl:
		return fmt.Sprintf("fonksiyon %s", instr.Name)
	case ast.FunctionCallStmt:
		return fmt.Sprintf("çağrı %s", instr.Name)
	case ast.Break:
		return "durdur"
	case ast.Continue:
		return "devam et"
	case ast.Return:
		return "döndür"
	default:
		return "noop"
	}
}
