package nfts

import (
	"fmt"
	"strings"
)

// whereBuilder accumulates the clauses of a subgraph `where` block. Clauses are
// combined with AND by the subgraph; their order only affects readability.
type whereBuilder struct {
	clauses []string
}

func newWhereBuilder() *whereBuilder {
	return &whereBuilder{}
}

// Where adds a clause verbatim.
func (wb *whereBuilder) Where(expr string) *whereBuilder {
	if expr = strings.TrimSpace(expr); expr != "" {
		wb.clauses = append(wb.clauses, expr)
	}
	return wb
}

// Wheref adds a formatted clause.
func (wb *whereBuilder) Wheref(format string, args ...any) *whereBuilder {
	return wb.Where(fmt.Sprintf(format, args...))
}

// WhereIn adds `field: [values]` with every value quoted. Nothing is added when no
// value can be quoted, so an empty membership list is never emitted.
func (wb *whereBuilder) WhereIn(field string, values []string, sep string) *whereBuilder {
	if list, ok := QuoteList(values, sep); ok {
		wb.Wheref("%s: [%s]", field, list)
	}
	return wb
}

// Extend adds caller supplied clauses.
func (wb *whereBuilder) Extend(exprs []string) *whereBuilder {
	for _, e := range exprs {
		wb.Where(e)
	}
	return wb
}

// Len returns the number of accumulated clauses.
func (wb *whereBuilder) Len() int {
	return len(wb.clauses)
}

// Build joins the clauses, one per line, each prefixed by indent.
func (wb *whereBuilder) Build(indent string) string {
	if len(wb.clauses) == 0 {
		return ""
	}
	var b strings.Builder
	for i, c := range wb.clauses {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(indent)
		b.WriteString(c)
	}
	return b.String()
}
