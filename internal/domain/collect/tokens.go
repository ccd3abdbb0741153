package collect

import (
	"strings"

	"github.com/fatih/camelcase"
)

// EstimateTokens approximates how many tokens a file's content costs a
// reader or a model. Whitespace-separated fields are split further on
// camelCase and snake_case boundaries, so identifier-dense code counts
// heavier than prose of the same byte size. Monotonic in content size,
// which is all prioritization needs.
func EstimateTokens(content string) int {
	if content == "" {
		return 0
	}
	total := 0
	for _, field := range strings.Fields(content) {
		for _, part := range strings.FieldsFunc(field, func(r rune) bool {
			return r == '_' || r == '.' || r == '/' || r == '-'
		}) {
			total += len(camelcase.Split(part))
		}
	}
	return total
}
