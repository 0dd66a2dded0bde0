package repository

import (
	"strings"
	"testing"
)

func TestFreeTextClause(t *testing.T) {
	clause, args, ok := freeTextClause("  florist  ")
	if !ok {
		t.Fatal("expected a clause for a non-empty query")
	}
	for _, column := range []string{"name", "category", "location", "description"} {
		if !strings.Contains(clause, column+" LIKE ?") {
			t.Fatalf("clause must match on %s, got %q", column, clause)
		}
	}
	if len(args) != strings.Count(clause, "?") {
		t.Fatalf("got %d args for %d placeholders", len(args), strings.Count(clause, "?"))
	}
	for _, arg := range args {
		if arg != "%florist%" {
			t.Fatalf("expected trimmed wildcard pattern, got %v", arg)
		}
	}

	if _, _, ok := freeTextClause("   "); ok {
		t.Fatal("blank query must not produce a clause")
	}
}
