// ==============================================================================================
// FILE: assembler/assembler_test.go
// ==============================================================================================
// PURPOSE: Exercises the full line-by-line assembly algorithm: indentation reconciliation,
//          block materialization for every block-introducing kind, and the if/elif/else fusion.
// ==============================================================================================

package assembler

import (
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zen/ast"
	"zen/diag"
	"zen/scope"
)

func TestAssembleFlatProgram(t *testing.T) {
	asm := New("<test>", true, nil)
	err := asm.AssembleSource("x = 1\nyazdır x")
	require.NoError(t, err)

	root := asm.Manager().Scope(asm.Manager().RootID())
	require.Len(t, root.Body, 2)
	assert.Equal(t, ast.VariableAssign, root.Body[0].Kind)
	assert.Equal(t, ast.Print, root.Body[1].Kind)
}

func TestAssembleRepeatNestsBodyInTransparentScope(t *testing.T) {
	asm := New("<test>", true, nil)
	err := asm.AssembleSource("5 defa tekrarla\n\tx += 1")
	require.NoError(t, err)

	root := asm.Manager().Scope(asm.Manager().RootID())
	require.Len(t, root.Body, 1)
	repeatInstr := root.Body[0]
	require.Equal(t, ast.Repeat, repeatInstr.Kind)

	body := asm.Manager().Scope(repeatInstr.BodyScopeID)
	assert.Equal(t, scope.Transparent, body.Kind)
	require.Len(t, body.Body, 1)
	assert.Equal(t, ast.VariableAssign, body.Body[0].Kind)
}

func TestAssembleFunctionDeclUsesIsolatedScope(t *testing.T) {
	asm := New("<test>", true, nil)
	err := asm.AssembleSource("fonksiyon topla(a, b)\n\tdöndür a + b")
	require.NoError(t, err)

	root := asm.Manager().Scope(asm.Manager().RootID())
	require.Len(t, root.Body, 1)
	decl := root.Body[0]
	require.Equal(t, ast.FunctionDecl, decl.Kind)

	body := asm.Manager().Scope(decl.BodyScopeID)
	assert.Equal(t, scope.Isolated, body.Kind)
}

func TestAssembleIfElifElseFusesIntoOneInstruction(t *testing.T) {
	src := "eğer x == 1 ise\n" +
		"\tyazdır \"bir\"\n" +
		"değilse ve x == 2 ise\n" +
		"\tyazdır \"iki\"\n" +
		"değilse\n" +
		"\tyazdır \"diğer\""
	asm := New("<test>", true, nil)
	err := asm.AssembleSource(src)
	require.NoError(t, err)

	root := asm.Manager().Scope(asm.Manager().RootID())
	require.Len(t, root.Body, 1, "elif/else must fold into the same instruction as the if")

	chain := root.Body[0]
	require.Equal(t, ast.IfChain, chain.Kind)
	require.Len(t, chain.Elifs, 1)
	require.NotNil(t, chain.Else)

	ifBody := asm.Manager().Scope(chain.If.BodyScopeID)
	require.Len(t, ifBody.Body, 1)
	elifBody := asm.Manager().Scope(chain.Elifs[0].BodyScopeID)
	require.Len(t, elifBody.Body, 1)
	elseBody := asm.Manager().Scope(chain.Else.BodyScopeID)
	require.Len(t, elseBody.Body, 1)
}

func TestAssembleElifWithoutPrecedingIfErrors(t *testing.T) {
	asm := New("<test>", true, nil)
	err := asm.AssembleSource("değilse ve x == 1 ise\n\tyazdır x")
	require.Error(t, err)
}

func TestAssembleDedentReturnsToEnclosingScope(t *testing.T) {
	src := "5 defa tekrarla\n" +
		"\tx += 1\n" +
		"yazdır x" // back at root indent
	asm := New("<test>", true, nil)
	err := asm.AssembleSource(src)
	require.NoError(t, err)

	root := asm.Manager().Scope(asm.Manager().RootID())
	require.Len(t, root.Body, 2, "the print after dedent belongs to root, not the loop body")
	assert.Equal(t, ast.Print, root.Body[1].Kind)
}

func TestAssembleStrictModeRejectsOverIndent(t *testing.T) {
	asm := New("<test>", true, nil)
	// Two tabs with nothing opening a nested block first.
	err := asm.AssembleSource("x = 1\n\t\tyazdır x")
	require.Error(t, err)

	de, ok := asErrorsContainKind(err, diag.IndentationError)
	assert.True(t, ok, "expected an IndentationError among: %v", de)
}

func TestAssembleNonStrictModeTreatsOverIndentAsOneLevel(t *testing.T) {
	asm := New("<test>", false, nil)
	err := asm.AssembleSource("x = 1\n\t\tyazdır x")
	assert.NoError(t, err)
}

func TestAssembleMalformedLineIsSkippedNotFatal(t *testing.T) {
	asm := New("<test>", true, nil)
	// "@" lexes as an ILLEGAL token; the line is skipped rather than erroring.
	err := asm.AssembleSource("@@@\nyazdır \"devam\"")
	require.NoError(t, err)

	root := asm.Manager().Scope(asm.Manager().RootID())
	require.Len(t, root.Body, 1)
}

func TestAssembleSemicolonSeparatesStatementsOnOneLine(t *testing.T) {
	asm := New("<test>", true, nil)
	err := asm.AssembleSource("x = 1; yazdır x")
	require.NoError(t, err)

	root := asm.Manager().Scope(asm.Manager().RootID())
	require.Len(t, root.Body, 2)
}

func TestAssembleAccumulatesErrorsAcrossLines(t *testing.T) {
	asm := New("<test>", true, nil)
	err := asm.AssembleSource("eğer ise\nfonksiyon (\n")
	require.Error(t, err)
}

// asErrorsContainKind inspects err (a *multierror.Error, or a single *diag.Error) for one
// matching the given diag.Kind.
func asErrorsContainKind(err error, kind diag.Kind) (*diag.Error, bool) {
	if me, ok := err.(*multierror.Error); ok {
		for _, sub := range me.Errors {
			if de, ok := sub.(*diag.Error); ok && de.Kind == kind {
				return de, true
			}
		}
		return nil, false
	}
	if de, ok := err.(*diag.Error); ok && de.Kind == kind {
		return de, true
	}
	return nil, false
}
