package sexp

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/shibukawa/puzzlegen"
	"github.com/shibukawa/puzzlegen/nodepath"
)

// Operator tokens understood by the downstream compiler. They are part of the
// wire format and must not be renamed.
const (
	OpCons       = "c"
	OpFirst      = "f"
	OpRest       = "r"
	OpQuote      = "q"
	OpIf         = "i"
	OpFail       = "x"
	OpSHA256     = "sha256"
	OpSHA256Tree = "sha256tree"
	OpEqual      = "="
	OpMultiply   = "*"
	OpAdd        = "+"
	OpSubtract   = "-"
)

// Sentinel errors
var (
	ErrInvalidAtom = fmt.Errorf("%w: atom", puzzlegen.ErrInvalidArgument)
	ErrInvalidHex  = fmt.Errorf("%w: hex literal", puzzlegen.ErrInvalidArgument)
)

// NewAtom returns an atom holding text verbatim.
func NewAtom(text string) Atom {
	return Atom{Text: text}
}

// ValidateAtom checks that text renders as exactly one token.
func ValidateAtom(text string) error {
	if text == "" {
		return fmt.Errorf("%w: empty token", ErrInvalidAtom)
	}

	if i := strings.IndexFunc(text, func(r rune) bool {
		return unicode.IsSpace(r) || r == '(' || r == ')'
	}); i >= 0 {
		return fmt.Errorf("%w: %q contains %q", ErrInvalidAtom, text, text[i])
	}

	return nil
}

// Int returns a base-10 integer atom.
func Int(n int64) Atom {
	return Atom{Text: strconv.FormatInt(n, 10)}
}

// Uint returns a base-10 unsigned integer atom.
func Uint(n uint64) Atom {
	return Atom{Text: strconv.FormatUint(n, 10)}
}

// ApplyOp applies the operator name to operands.
func ApplyOp(name string, operands ...Node) Apply {
	return Apply{Operator: name, Operands: append([]Node(nil), operands...)}
}

// Sexp returns the bare list of items.
func Sexp(items ...Node) List {
	return List{Items: append([]Node(nil), items...)}
}

// Cons pairs a and b.
func Cons(a, b Node) Apply {
	return ApplyOp(OpCons, a, b)
}

// First takes the first component of x.
func First(x Node) Apply {
	return ApplyOp(OpFirst, x)
}

// Rest takes the rest component of x.
func Rest(x Node) Apply {
	return ApplyOp(OpRest, x)
}

// Quote marks x as literal data.
func Quote(x Node) Quoted {
	return Quoted{Inner: x}
}

// Nil returns the empty list literal "(q ())".
func Nil() Quoted {
	return Quote(List{})
}

// EnvRef refers to the environment node at path.
func EnvRef(path nodepath.Path) Atom {
	return Atom{Text: path.Encode().Literal()}
}

// AddressRef refers to the environment node at an already computed address.
func AddressRef(addr nodepath.Address) Atom {
	return Atom{Text: addr.Literal()}
}

// Args refers to an argument in index notation (see nodepath.FromArgs).
func Args(indices ...int) (Atom, error) {
	path, err := nodepath.FromArgs(indices...)
	if err != nil {
		return Atom{}, err
	}

	return EnvRef(path), nil
}

// Nth wraps obj in the first/rest calls that select an element in index
// notation: index n takes the rest n times and then the first.
func Nth(obj Node, indices ...int) (Node, error) {
	path, err := nodepath.FromArgs(indices...)
	if err != nil {
		return nil, err
	}

	for i := range path.Len() {
		if path.At(i) == nodepath.Left {
			obj = First(obj)
		} else {
			obj = Rest(obj)
		}
	}

	return obj, nil
}

// Eval runs code against the whole current environment.
func Eval(code Node) List {
	return EvalWithEnv(code, EnvRef(nodepath.Root()))
}

// EvalWithEnv runs code against env: the quoted code is consed onto env and
// the pair is wrapped for evaluation, giving "((c (q code) env))".
func EvalWithEnv(code, env Node) List {
	return Sexp(Cons(Quote(code), env))
}

// MakeIf selects trueBranch or falseBranch by predicate. Both branches are
// quoted so that only the selected one is evaluated by the runtime.
func MakeIf(predicate, trueBranch, falseBranch Node) List {
	return Eval(ApplyOp(OpIf, predicate, Quote(trueBranch), Quote(falseBranch)))
}

// MakeList builds a cons list of items terminated by Nil.
func MakeList(items ...Node) Node {
	return MakeListWithTerminator(Nil(), items...)
}

// MakeListWithTerminator builds a cons list of items ending in terminator.
// With no items the terminator itself is returned.
func MakeListWithTerminator(terminator Node, items ...Node) Node {
	list := terminator
	for i := len(items) - 1; i >= 0; i-- {
		list = Cons(items[i], list)
	}

	return list
}

// Fail aborts evaluation in the runtime.
func Fail(args ...Node) Apply {
	return ApplyOp(OpFail, args...)
}

func SHA256(args ...Node) Apply {
	return ApplyOp(OpSHA256, args...)
}

func SHA256Tree(args ...Node) Apply {
	return ApplyOp(OpSHA256Tree, args...)
}

func Equal(args ...Node) Apply {
	return ApplyOp(OpEqual, args...)
}

func Multiply(args ...Node) Apply {
	return ApplyOp(OpMultiply, args...)
}

func Add(args ...Node) Apply {
	return ApplyOp(OpAdd, args...)
}

func Subtract(args ...Node) Apply {
	return ApplyOp(OpSubtract, args...)
}

// IsZero compares x with the literal 0.
func IsZero(x Node) Apply {
	return Equal(x, Quote(Atom{Text: "0"}))
}

// HexLiteral quotes digits as a 0x-prefixed hex literal. digits are
// hexadecimal characters without prefix; an odd count is allowed.
func HexLiteral(digits string) (Quoted, error) {
	for i, r := range digits {
		if !isHexDigit(r) {
			return Quoted{}, fmt.Errorf("%w: %q is not a hex digit at offset %d of %q", ErrInvalidHex, r, i, digits)
		}
	}

	return Quote(Atom{Text: "0x" + digits}), nil
}

func isHexDigit(r rune) bool {
	return ('0' <= r && r <= '9') || ('a' <= r && r <= 'f') || ('A' <= r && r <= 'F')
}

// Bytes quotes b as a hex literal.
func Bytes(b []byte) Quoted {
	return Quote(Atom{Text: "0x" + hex.EncodeToString(b)})
}
