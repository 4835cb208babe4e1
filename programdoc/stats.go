package programdoc

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shibukawa/puzzlegen/sexp"
)

// OperatorCounts returns how often each operator is applied in the program.
// Quoted values count as applications of the quote operator.
func (d *Document) OperatorCounts() map[string]int {
	counts := make(map[string]int)

	sexp.Walk(d.Program, func(n sexp.Node) bool {
		switch x := n.(type) {
		case sexp.Apply:
			counts[x.Operator]++
		case sexp.Quoted:
			counts[sexp.OpQuote]++
		}

		return true
	})

	return counts
}

// FormatOperatorCounts renders counts as "op=n" pairs ordered by operator.
func FormatOperatorCounts(counts map[string]int) string {
	ops := make([]string, 0, len(counts))
	for op := range counts {
		ops = append(ops, op)
	}

	sort.Strings(ops)

	pairs := make([]string, len(ops))
	for i, op := range ops {
		pairs[i] = fmt.Sprintf("%s=%d", op, counts[op])
	}

	return strings.Join(pairs, " ")
}
