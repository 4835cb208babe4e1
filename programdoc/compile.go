package programdoc

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/shibukawa/puzzlegen"
	"github.com/shibukawa/puzzlegen/nodepath"
	"github.com/shibukawa/puzzlegen/sexp"
)

// CompileYAML decodes a program written in the YAML program notation.
func CompileYAML(src []byte) (sexp.Node, error) {
	var value any
	if err := yaml.Unmarshal(src, &value); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidProgram, err)
	}

	return Compile(value)
}

// Compile turns a decoded YAML value into an expression tree.
//
// Scalars are atoms: strings are taken verbatim (the string "nil" and YAML
// null mean the empty list literal) and integers are written in base 10.
// A mapping selects one constructor by its key, for example
//
//	if:
//	  - is_zero: {arg: 0}
//	  - fail: []
//	  - cons: [{arg: 1}, nil]
func Compile(value any) (sexp.Node, error) {
	return compileAt("$", value)
}

// MaxIndex bounds each argument or element index a document may use.
const MaxIndex = 4096

type form struct {
	// companion keys allowed next to the form key
	extra []string
	build func(loc string, arg any, m map[string]any) (sexp.Node, error)
}

var forms map[string]form

func init() {
	variadic := func(op string) form {
		return form{build: func(loc string, arg any, _ map[string]any) (sexp.Node, error) {
			args, err := compileArgs(loc, arg)
			if err != nil {
				return nil, err
			}

			return sexp.ApplyOp(op, args...), nil
		}}
	}

	forms = map[string]form{
		"atom":       {build: buildAtom},
		"int":        {build: buildInt},
		"hex":        {build: buildHex},
		"nil":        {build: func(string, any, map[string]any) (sexp.Node, error) { return sexp.Nil(), nil }},
		"quote":      {build: unary(func(n sexp.Node) sexp.Node { return sexp.Quote(n) })},
		"first":      {build: unary(func(n sexp.Node) sexp.Node { return sexp.First(n) })},
		"rest":       {build: unary(func(n sexp.Node) sexp.Node { return sexp.Rest(n) })},
		"is_zero":    {build: unary(func(n sexp.Node) sexp.Node { return sexp.IsZero(n) })},
		"cons":       {build: buildCons},
		"if":         {build: buildIf},
		"list":       {extra: []string{"terminator"}, build: buildList},
		"sexp":       {build: buildSexp},
		"eval":       {extra: []string{"env"}, build: buildEval},
		"env":        {build: buildEnv},
		"address":    {build: buildAddress},
		"arg":        {build: buildArg},
		"nth":        {extra: []string{"index"}, build: buildNth},
		"op":         {extra: []string{"args"}, build: buildOp},
		"fail":       variadic(sexp.OpFail),
		"sha256":     variadic(sexp.OpSHA256),
		"sha256tree": variadic(sexp.OpSHA256Tree),
		"equal":      variadic(sexp.OpEqual),
		"multiply":   variadic(sexp.OpMultiply),
		"add":        variadic(sexp.OpAdd),
		"subtract":   variadic(sexp.OpSubtract),
	}
}

func compileAt(loc string, value any) (sexp.Node, error) {
	switch v := value.(type) {
	case nil:
		return sexp.Nil(), nil
	case string:
		if v == "nil" {
			return sexp.Nil(), nil
		}

		if err := sexp.ValidateAtom(v); err != nil {
			return nil, programError(loc, err)
		}

		return sexp.NewAtom(v), nil
	case map[string]any:
		return compileForm(loc, v)
	case []any:
		return nil, programError(loc, fmt.Errorf("%w: a sequence must be the argument of a form such as sexp or list", ErrInvalidProgram))
	}

	if n, ok := toInteger(value); ok {
		return n, nil
	}

	return nil, programError(loc, fmt.Errorf("%w: unsupported value %v (%T)", ErrInvalidProgram, value, value))
}

func compileForm(loc string, m map[string]any) (sexp.Node, error) {
	var candidates []string

	for k := range m {
		if _, ok := forms[k]; ok {
			candidates = append(candidates, k)
		}
	}

	sort.Strings(candidates)

	// a form key may appear as the companion of another form ({eval: x, env: y})
	key := ""
	for _, k := range candidates {
		covers := true
		for _, other := range candidates {
			if other != k && !contains(forms[k].extra, other) {
				covers = false
				break
			}
		}

		if covers {
			key = k
			break
		}
	}

	switch {
	case len(candidates) == 0:
		return nil, programError(loc, fmt.Errorf("%w: no known form in keys %s", ErrInvalidProgram, strings.Join(sortedKeys(m), ", ")))
	case key == "":
		return nil, programError(loc, fmt.Errorf("%w: forms %s in one mapping", ErrInvalidProgram, strings.Join(candidates, ", ")))
	}

	f := forms[key]
	for k := range m {
		if k != key && !contains(f.extra, k) {
			return nil, programError(loc, fmt.Errorf("%w: unexpected key %q for %s", ErrInvalidProgram, k, key))
		}
	}

	return f.build(loc+"."+key, m[key], m)
}

func unary(wrap func(sexp.Node) sexp.Node) func(string, any, map[string]any) (sexp.Node, error) {
	return func(loc string, arg any, _ map[string]any) (sexp.Node, error) {
		n, err := compileAt(loc, arg)
		if err != nil {
			return nil, err
		}

		return wrap(n), nil
	}
}

func buildAtom(loc string, arg any, _ map[string]any) (sexp.Node, error) {
	text, ok := scalarText(arg)
	if !ok {
		return nil, programError(loc, fmt.Errorf("%w: atom needs a scalar", ErrInvalidProgram))
	}

	if err := sexp.ValidateAtom(text); err != nil {
		return nil, programError(loc, err)
	}

	return sexp.NewAtom(text), nil
}

func buildInt(loc string, arg any, _ map[string]any) (sexp.Node, error) {
	if n, ok := toInteger(arg); ok {
		return n, nil
	}

	if s, ok := arg.(string); ok {
		if v, err := strconv.ParseInt(s, 10, 64); err == nil {
			return sexp.Int(v), nil
		}

		if v, err := strconv.ParseUint(s, 10, 64); err == nil {
			return sexp.Uint(v), nil
		}
	}

	return nil, programError(loc, fmt.Errorf("%w: %v is not an integer", ErrInvalidProgram, arg))
}

func buildHex(loc string, arg any, _ map[string]any) (sexp.Node, error) {
	digits, ok := arg.(string)
	if !ok {
		return nil, programError(loc, fmt.Errorf("%w: hex digits must be a string", ErrInvalidProgram))
	}

	q, err := sexp.HexLiteral(strings.TrimPrefix(digits, "0x"))
	if err != nil {
		return nil, programError(loc, err)
	}

	return q, nil
}

func buildCons(loc string, arg any, _ map[string]any) (sexp.Node, error) {
	args, err := compileFixed(loc, arg, 2)
	if err != nil {
		return nil, err
	}

	return sexp.Cons(args[0], args[1]), nil
}

func buildIf(loc string, arg any, _ map[string]any) (sexp.Node, error) {
	args, err := compileFixed(loc, arg, 3)
	if err != nil {
		return nil, err
	}

	return sexp.MakeIf(args[0], args[1], args[2]), nil
}

func buildList(loc string, arg any, m map[string]any) (sexp.Node, error) {
	items, err := compileArgs(loc, arg)
	if err != nil {
		return nil, err
	}

	raw, ok := m["terminator"]
	if !ok {
		return sexp.MakeList(items...), nil
	}

	terminator, err := compileAt(loc+".terminator", raw)
	if err != nil {
		return nil, err
	}

	return sexp.MakeListWithTerminator(terminator, items...), nil
}

func buildSexp(loc string, arg any, _ map[string]any) (sexp.Node, error) {
	items, err := compileArgs(loc, arg)
	if err != nil {
		return nil, err
	}

	return sexp.Sexp(items...), nil
}

func buildEval(loc string, arg any, m map[string]any) (sexp.Node, error) {
	code, err := compileAt(loc, arg)
	if err != nil {
		return nil, err
	}

	raw, ok := m["env"]
	if !ok {
		return sexp.Eval(code), nil
	}

	env, err := compileAt(loc+".env", raw)
	if err != nil {
		return nil, err
	}

	return sexp.EvalWithEnv(code, env), nil
}

func buildEnv(loc string, arg any, _ map[string]any) (sexp.Node, error) {
	var text string

	switch v := arg.(type) {
	case nil:
	case string:
		text = v
	default:
		return nil, programError(loc, fmt.Errorf("%w: env needs a path such as \"LRL\"", ErrInvalidProgram))
	}

	path, err := nodepath.Parse(text)
	if err != nil {
		return nil, programError(loc, err)
	}

	return sexp.EnvRef(path), nil
}

func buildAddress(loc string, arg any, _ map[string]any) (sexp.Node, error) {
	text, ok := scalarText(arg)
	if !ok {
		return nil, programError(loc, fmt.Errorf("%w: address needs an integer", ErrInvalidProgram))
	}

	addr, err := nodepath.ParseAddress(text)
	if err != nil {
		return nil, programError(loc, err)
	}

	return sexp.AddressRef(addr), nil
}

func buildArg(loc string, arg any, _ map[string]any) (sexp.Node, error) {
	indices, err := toIndices(loc, arg)
	if err != nil {
		return nil, err
	}

	a, err := sexp.Args(indices...)
	if err != nil {
		return nil, programError(loc, err)
	}

	return a, nil
}

func buildNth(loc string, arg any, m map[string]any) (sexp.Node, error) {
	obj, err := compileAt(loc, arg)
	if err != nil {
		return nil, err
	}

	indices, err := toIndices(loc+".index", m["index"])
	if err != nil {
		return nil, err
	}

	n, err := sexp.Nth(obj, indices...)
	if err != nil {
		return nil, programError(loc, err)
	}

	return n, nil
}

func buildOp(loc string, arg any, m map[string]any) (sexp.Node, error) {
	name, ok := arg.(string)
	if !ok {
		return nil, programError(loc, fmt.Errorf("%w: operator name must be a string", ErrInvalidProgram))
	}

	if err := sexp.ValidateAtom(name); err != nil {
		return nil, programError(loc, err)
	}

	args, err := compileArgs(loc+".args", m["args"])
	if err != nil {
		return nil, err
	}

	return sexp.ApplyOp(name, args...), nil
}

// compileArgs accepts a sequence, a single value standing for a one-element
// sequence, or nothing.
func compileArgs(loc string, arg any) ([]sexp.Node, error) {
	var values []any

	switch v := arg.(type) {
	case nil:
	case []any:
		values = v
	default:
		values = []any{v}
	}

	nodes := make([]sexp.Node, 0, len(values))
	for i, value := range values {
		n, err := compileAt(fmt.Sprintf("%s[%d]", loc, i), value)
		if err != nil {
			return nil, err
		}

		nodes = append(nodes, n)
	}

	return nodes, nil
}

func compileFixed(loc string, arg any, arity int) ([]sexp.Node, error) {
	values, ok := arg.([]any)
	if !ok || len(values) != arity {
		return nil, programError(loc, fmt.Errorf("%w: expected %d arguments", ErrInvalidProgram, arity))
	}

	return compileArgs(loc, values)
}

func toIndices(loc string, arg any) ([]int, error) {
	var values []any

	switch v := arg.(type) {
	case nil:
	case []any:
		values = v
	default:
		values = []any{v}
	}

	indices := make([]int, 0, len(values))
	for _, value := range values {
		i, ok := toInt(value)
		if !ok {
			return nil, programError(loc, fmt.Errorf("%w: index %v is not an integer", ErrInvalidProgram, value))
		}

		if i > MaxIndex {
			return nil, programError(loc, fmt.Errorf("%w: index %d exceeds %d", ErrInvalidProgram, i, MaxIndex))
		}

		indices = append(indices, i)
	}

	return indices, nil
}

func toInteger(value any) (sexp.Node, bool) {
	switch v := value.(type) {
	case int:
		return sexp.Int(int64(v)), true
	case int64:
		return sexp.Int(v), true
	case uint64:
		return sexp.Uint(v), true
	case float64:
		if v == math.Trunc(v) && math.Abs(v) < 1<<53 {
			return sexp.Int(int64(v)), true
		}
	}

	return nil, false
}

func toInt(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case uint64:
		if v <= math.MaxInt32 {
			return int(v), true
		}
	}

	return 0, false
}

func scalarText(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case int, int64, uint64:
		return fmt.Sprint(v), true
	}

	return "", false
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}

	return false
}

// programError prefixes err with the location of the offending value, for
// example "$.if[0].arg".
func programError(loc string, err error) error {
	switch {
	case errors.Is(err, ErrInvalidProgram):
		return fmt.Errorf("%s: %w", loc, err)
	case errors.Is(err, puzzlegen.ErrInvalidArgument):
		return fmt.Errorf("%s: %w", loc, invalidProgram{err})
	}

	return fmt.Errorf("%s: %w: %w", loc, ErrInvalidProgram, err)
}

// invalidProgram classifies a builder error as ErrInvalidProgram while
// keeping its message, which already names the invalid argument.
type invalidProgram struct {
	err error
}

func (e invalidProgram) Error() string {
	return e.err.Error()
}

func (e invalidProgram) Unwrap() []error {
	return []error{ErrInvalidProgram, e.err}
}
