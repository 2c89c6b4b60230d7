// ==============================================================================================
// FILE: scope/scope.go
// ==============================================================================================
// PACKAGE: scope
// PURPOSE: The scope arena: an integer-identified tree of Scope nodes, each owning its own
//          instruction list, local variable map, local function map, and kind.
//
//          Scopes live in a flat table owned by Manager rather than a linked list of
//          environments: every reference between scopes is an integer id, not a pointer, so
//          traversal is iterative and nothing needs a parent pointer to stay valid.
// ==============================================================================================

package scope

import (
	"zen/ast"
	"zen/value"
)

// Kind is one of the three scope kinds.
type Kind int

const (
	// Default is a fresh local frame: reads fall through to parent, writes land here.
	Default Kind = iota
	// Transparent forwards writes to the nearest non-Transparent ancestor. Used for
	// control-flow block bodies (if/elif/else, while, repeat, for) so that assignments
	// inside them mutate the enclosing frame rather than a throwaway loop frame.
	Transparent
	// Isolated confines both reads and writes to itself (root globals excepted). Used
	// for function bodies.
	Isolated
)

// Action records which block-introducing construct produced a scope. The assembler sets it
// on every scope it creates; the executor does not read it.
type Action int

const (
	ActionRoot Action = iota
	ActionRepeat
	ActionFor
	ActionForIn
	ActionWhileTrue
	ActionCondition
	ActionFunction
)

// FunctionRecord is a declared function: its resolved parameter list and the scope id of
// its (Isolated) body. ResolvedDefaults is parallel to Params — ResolvedDefaults[i] is the
// Value produced by evaluating Params[i].Default against the declaring scope once, at the
// moment the function declaration executed, or nil when that parameter has no default.
type FunctionRecord struct {
	Name             string
	Params           []ast.Param
	ResolvedDefaults []*value.Value
	BodyScopeID      int
}

// Scope is one node of the arena. ID is stable and never reused.
type Scope struct {
	ID       int
	Parent   int // -1 for the root
	HasParent bool
	Children []int
	Action   Action
	Kind     Kind

	Body      []ast.Instruction
	Locals    map[string]value.Value
	Functions map[string]FunctionRecord

	// Globals is populated only on the root scope and is visible from every scope
	// regardless of kind.
	Globals map[string]value.Value
}
