package sexp

import (
	"sync"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/shibukawa/puzzlegen"
	"github.com/shibukawa/puzzlegen/nodepath"
)

func TestRender(t *testing.T) {
	a := NewAtom("1")
	b := NewAtom("2")

	tests := []struct {
		name string
		node Node
		want string
	}{
		{"atom", NewAtom("0xcafe"), "0xcafe"},
		{"quote", Quote(NewAtom("x")), "(q x)"},
		{"cons", Cons(a, b), "(c 1 2)"},
		{"first", First(a), "(f 1)"},
		{"rest", Rest(a), "(r 1)"},
		{"nil", Nil(), "(q ())"},
		{"apply without operands", ApplyOp("x"), "(x)"},
		{"apply variadic", ApplyOp("+", a, b, NewAtom("3")), "(+ 1 2 3)"},
		{"empty sexp", Sexp(), "()"},
		{"nested sexp", Sexp(Sexp(a), b), "((1) 2)"},
		{"list", MakeList(a, b), "(c 1 (c 2 (q ())))"},
		{"list with terminator", MakeListWithTerminator(NewAtom("1"), NewAtom("5")), "(c 5 1)"},
		{"fail", Fail(NewAtom("0x01")), "(x 0x01)"},
		{"fail without args", Fail(), "(x)"},
		{"sha256", SHA256(a, b), "(sha256 1 2)"},
		{"sha256tree", SHA256Tree(a), "(sha256tree 1)"},
		{"equal", Equal(a, b), "(= 1 2)"},
		{"multiply", Multiply(a, b), "(* 1 2)"},
		{"add", Add(a, b), "(+ 1 2)"},
		{"subtract", Subtract(a, b), "(- 1 2)"},
		{"is zero", IsZero(NewAtom("2")), "(= 2 (q 0))"},
		{"int", Int(-42), "-42"},
		{"uint", Uint(18446744073709551615), "18446744073709551615"},
		{"bytes", Bytes([]byte{0xde, 0xad}), "(q 0xdead)"},
		{"zero quoted", Quoted{}, "(q ())"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Render(tt.node))
			assert.Equal(t, tt.want, tt.node.String())
		})
	}
}

func TestEnvRef(t *testing.T) {
	assert.Equal(t, "1", Render(EnvRef(nodepath.Root())))
	assert.Equal(t, "5", Render(EnvRef(nodepath.New(nodepath.Left, nodepath.Right))))
	assert.Equal(t, "7", Render(AddressRef(nodepath.New(nodepath.Right, nodepath.Right).Encode())))
}

func TestArgs(t *testing.T) {
	tests := []struct {
		indices []int
		want    string
	}{
		{nil, "1"},
		{[]int{0}, "2"},
		{[]int{1}, "6"},
		{[]int{2}, "14"},
		{[]int{0, 1}, "10"},
	}

	for _, tt := range tests {
		got, err := Args(tt.indices...)
		assert.NoError(t, err)
		assert.Equal(t, tt.want, got.Text)
	}

	_, err := Args(-1)
	assert.IsError(t, err, puzzlegen.ErrInvalidArgument)
}

func TestNth(t *testing.T) {
	x := NewAtom("x")

	got, err := Nth(x)
	assert.NoError(t, err)
	assert.Equal(t, "x", Render(got))

	got, err = Nth(x, 0)
	assert.NoError(t, err)
	assert.Equal(t, "(f x)", Render(got))

	got, err = Nth(x, 1)
	assert.NoError(t, err)
	assert.Equal(t, "(f (r x))", Render(got))

	got, err = Nth(x, 2, 0)
	assert.NoError(t, err)
	assert.Equal(t, "(f (f (r (r x))))", Render(got))

	_, err = Nth(x, -2)
	assert.IsError(t, err, puzzlegen.ErrInvalidArgument)
}

func TestEval(t *testing.T) {
	code := NewAtom("CODE")

	assert.Equal(t, "((c (q CODE) 1))", Render(Eval(code)))
	assert.Equal(t, "((c (q CODE) 5))", Render(EvalWithEnv(code, NewAtom("5"))))
	assert.True(t, Equivalent(
		Eval(code),
		Sexp(Cons(Quote(code), EnvRef(nodepath.Root()))),
	))
}

func TestMakeIf(t *testing.T) {
	p, tr, f := NewAtom("P"), NewAtom("T"), NewAtom("F")

	got := MakeIf(p, tr, f)

	// assembled literally from the eval and select rules
	selected := ApplyOp("i", p, Quote(tr), Quote(f))
	want := Sexp(ApplyOp("c", Quote(selected), NewAtom("1")))

	assert.True(t, Equivalent(want, got))
	assert.Equal(t, Render(want), Render(got))
	assert.Equal(t, "((c (q (i P (q T) (q F))) 1))", Render(got))
}

func TestMakeListEmpty(t *testing.T) {
	assert.True(t, Equivalent(Nil(), MakeList()))
	assert.Equal(t, Node(Nil()), MakeList())

	term := NewAtom("end")
	assert.Equal(t, Node(term), MakeListWithTerminator(term))
}

func TestMakeListDoesNotShareInput(t *testing.T) {
	items := []Node{NewAtom("1"), NewAtom("2")}
	list := MakeList(items...)
	items[0] = NewAtom("9")

	assert.Equal(t, "(c 1 (c 2 (q ())))", Render(list))

	operands := []Node{NewAtom("1")}
	apply := ApplyOp("+", operands...)
	operands[0] = NewAtom("9")
	assert.Equal(t, "(+ 1)", Render(apply))
}

func TestHexLiteral(t *testing.T) {
	tests := []struct {
		name    string
		digits  string
		want    string
		wantErr bool
	}{
		{name: "bytes", digits: "deadbeef", want: "(q 0xdeadbeef)"},
		{name: "upper case", digits: "CAFE", want: "(q 0xCAFE)"},
		{name: "empty", digits: "", want: "(q 0x)"},
		{name: "odd length", digits: "abc", want: "(q 0xabc)"},
		{name: "single digit", digits: "f", want: "(q 0xf)"},
		{name: "not hex", digits: "zz", wantErr: true},
		{name: "prefixed", digits: "0xab", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := HexLiteral(tt.digits)
			if tt.wantErr {
				assert.IsError(t, err, ErrInvalidHex)
				assert.IsError(t, err, puzzlegen.ErrInvalidArgument)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, Render(got))
		})
	}
}

func TestValidateAtom(t *testing.T) {
	assert.NoError(t, ValidateAtom("sha256"))
	assert.NoError(t, ValidateAtom("0x00ff"))
	assert.NoError(t, ValidateAtom("-"))
	assert.IsError(t, ValidateAtom(""), ErrInvalidAtom)
	assert.IsError(t, ValidateAtom("a b"), ErrInvalidAtom)
	assert.IsError(t, ValidateAtom("(c"), ErrInvalidAtom)
	assert.IsError(t, ValidateAtom("x\n"), puzzlegen.ErrInvalidArgument)
}

func TestEquivalent(t *testing.T) {
	one, two := NewAtom("1"), NewAtom("2")

	tests := []struct {
		name string
		a, b Node
		want bool
	}{
		{"same atom", one, NewAtom("1"), true},
		{"different atom", one, two, false},
		{"same cons", Cons(one, two), Cons(NewAtom("1"), NewAtom("2")), true},
		{"swapped cons", Cons(one, two), Cons(two, one), false},
		{"quote sugar", Quote(one), ApplyOp("q", one), true},
		{"apply as list", Cons(one, two), Sexp(NewAtom("c"), one, two), true},
		{"atom vs list", one, Sexp(one), false},
		{"arity", ApplyOp("+", one), ApplyOp("+", one, one), false},
		{"nil node", nil, Sexp(), true},
		{"nested", MakeList(one, two), MakeList(one, two), true},
		{"nested differs", MakeList(one, two), MakeList(one), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Equivalent(tt.a, tt.b))
			assert.Equal(t, tt.want, Render(tt.a) == Render(tt.b))
		})
	}
}

func TestWalk(t *testing.T) {
	tree := MakeIf(Equal(NewAtom("2"), NewAtom("5")), Fail(), MakeList(NewAtom("6")))

	ops := map[string]int{}
	atoms := 0

	Walk(tree, func(n Node) bool {
		switch x := n.(type) {
		case Apply:
			ops[x.Operator]++
		case Quoted:
			ops[OpQuote]++
		case Atom:
			atoms++
		}

		return true
	})

	assert.Equal(t, map[string]int{"c": 2, "q": 4, "i": 1, "=": 1, "x": 1}, ops)
	assert.Equal(t, 4, atoms)

	visited := 0
	Walk(tree, func(Node) bool {
		visited++
		return false
	})
	assert.Equal(t, 1, visited)
}

func TestRenderIsDeterministicAcrossGoroutines(t *testing.T) {
	tree := MakeIf(IsZero(NewAtom("2")), Fail(), MakeList(NewAtom("5"), NewAtom("6")))
	want := Render(tree)

	var wg sync.WaitGroup

	results := make([]string, 16)
	for i := range results {
		wg.Add(1)

		go func(i int) {
			defer wg.Done()

			results[i] = Render(tree)
		}(i)
	}

	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}
