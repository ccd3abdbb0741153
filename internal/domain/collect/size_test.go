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

func TestSize_CommentedOutFile(t *testing.T) {
	var b strings.Builder
	b.WriteString("package p\n\n")
	for i := 0; i < 30; i++ {
		b.WriteString("// func oldHandler(w http.ResponseWriter) {\n")
	}
	b.WriteString("func keep() {}\n")

	tr := mkTree(mkFile("graveyard.go", b.String(), time.Now()))
	signals, err := collect.NewSize().Collect(tr)
	require.NoError(t, err)
	require.Len(t, signals, 1)
	assert.Equal(t, domain.ActionDelete, signals[0].Action)
	assert.Contains(t, signals[0].Evidence, "comments")
}

func TestSize_OversizedFile(t *testing.T) {
	content := "package p\n" + strings.Repeat("var filler = 1\n", 520)

	tr := mkTree(mkFile("monolith.go", content, time.Now()))
	signals, err := collect.NewSize().Collect(tr)
	require.NoError(t, err)
	require.Len(t, signals, 1)
	assert.Equal(t, "monolith.go", signals[0].Target)
	assert.Equal(t, domain.ActionRefactor, signals[0].Action)
}

func TestSize_NormalFileQuiet(t *testing.T) {
	tr := mkTree(mkFile("ok.go", "package p\n\n// short doc\nfunc A() {}\n", time.Now()))
	signals, err := collect.NewSize().Collect(tr)
	require.NoError(t, err)
	assert.Empty(t, signals)
}
