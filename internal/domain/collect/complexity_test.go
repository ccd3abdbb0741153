package collect_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/debloat-dev/debloat/internal/domain"
	"github.com/debloat-dev/debloat/internal/domain/collect"
)

func TestComplexity_DeeplyNestedFunction(t *testing.T) {
	src := `package p

func tangled(xs []int) int {
	total := 0
	for _, x := range xs {
		if x > 0 {
			for i := 0; i < x; i++ {
				if i%2 == 0 {
					switch i {
					case 0:
						if total > 10 {
							total--
						}
					default:
						total++
					}
				}
			}
		}
	}
	return total
}
`
	tr := mkTree(mkFile("tangled.go", src, time.Now()))

	signals, err := collect.NewComplexity().Collect(tr)
	require.NoError(t, err)
	require.Len(t, signals, 1)
	assert.Equal(t, domain.ActionRefactor, signals[0].Action)
	assert.Contains(t, signals[0].Evidence, "nested deeper")
}

func TestComplexity_LongFunction(t *testing.T) {
	var b strings.Builder
	b.WriteString("package p\n\nfunc long() {\n")
	for i := 0; i < 90; i++ {
		b.WriteString("\t_ = 1\n")
	}
	b.WriteString("}\n")

	tr := mkTree(mkFile("long.go", b.String(), time.Now()))

	signals, err := collect.NewComplexity().Collect(tr)
	require.NoError(t, err)
	require.Len(t, signals, 1)
	assert.Contains(t, signals[0].Evidence, "1/1 functions")
}

func TestComplexity_PlainCodeQuiet(t *testing.T) {
	src := `package p

func add(a, b int) int { return a + b }

func mul(a, b int) int {
	if a == 0 || b == 0 {
		return 0
	}
	return a * b
}
`
	tr := mkTree(mkFile("math.go", src, time.Now()))

	signals, err := collect.NewComplexity().Collect(tr)
	require.NoError(t, err)
	assert.Empty(t, signals)
}
