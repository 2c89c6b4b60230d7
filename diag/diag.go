// ==============================================================================================
// FILE: diag/diag.go
// ==============================================================================================
// PACKAGE: diag
// PURPOSE: The runtime/parse error taxonomy as a single structured Error type, plus a
//          fatih/color-based pretty-printer. Parser and assembler errors are aggregated with
//          hashicorp/go-multierror so a single assembly pass can report every line at once
//          instead of stopping at the first mistake.
// ==============================================================================================

package diag

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/hashicorp/go-multierror"
)

// Kind discriminates the error taxonomy.
type Kind int

const (
	IndentationError Kind = iota
	UndefinedNameError
	FunctionNotFoundError
	ArityError
	TypeError
	DivisionByZeroError
	TokenError
	UnknownError
)

func (k Kind) String() string {
	switch k {
	case IndentationError:
		return "GirintiHatası"
	case UndefinedNameError:
		return "TanımsızİsimHatası"
	case FunctionNotFoundError:
		return "FonksiyonBulunamadıHatası"
	case ArityError:
		return "ArgümanSayısıHatası"
	case TypeError:
		return "TipHatası"
	case DivisionByZeroError:
		return "SıfıraBölmeHatası"
	case TokenError:
		return "JetonHatası"
	default:
		return "BilinmeyenHata"
	}
}

// Error is the one structured error type every layer of the interpreter returns. File is
// the source name ("<repl>" in interactive mode); Line is 1-indexed; Col, meaningful only
// when HasCol is set, narrows the position within Line and is appended to it by Print.
type Error struct {
	Kind    Kind
	Message string
	File    string
	Line    int
	Col     int
	HasCol  bool
}

func (e *Error) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s: %s", e.File, e.Line, e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", e.File, e.Kind, e.Message)
}

// New builds an Error with no column information.
func New(kind Kind, file string, line int, format string, args ...any) *Error {
	return &Error{Kind: kind, File: file, Line: line, Message: fmt.Sprintf(format, args...)}
}

// NewAt builds an Error carrying a column, which Print appends to the location.
func NewAt(kind Kind, file string, line, col int, format string, args ...any) *Error {
	return &Error{Kind: kind, File: file, Line: line, Col: col, HasCol: true, Message: fmt.Sprintf(format, args...)}
}

// Append folds err into an accumulating *multierror.Error, returning the (possibly newly
// allocated) accumulator. Used by the assembler to collect every malformed line in one pass
// instead of bailing at the first one.
func Append(acc *multierror.Error, err error) *multierror.Error {
	if err == nil {
		return acc
	}
	return multierror.Append(acc, err)
}

var (
	kindColor    = color.New(color.FgRed, color.Bold)
	locationColor = color.New(color.FgCyan)
	messageColor = color.New(color.FgWhite)
)

// Print renders err the way the `run` and `repl` front-ends show it to a terminal:
// "file:line: Kind: message" with the location in cyan and the kind in bold red. Falls back
// to plain err.Error() for non-*Error values (e.g. a wrapped multierror).
func Print(err error) string {
	de, ok := err.(*Error)
	if !ok {
		return err.Error()
	}
	loc := de.File
	if de.Line > 0 {
		loc = fmt.Sprintf("%s:%d", de.File, de.Line)
		if de.HasCol {
			loc = fmt.Sprintf("%s:%d", loc, de.Col)
		}
	}
	return fmt.Sprintf("%s %s %s",
		locationColor.Sprint(loc+":"),
		kindColor.Sprint(de.Kind.String()+":"),
		messageColor.Sprint(de.Message))
}
