package regexcache

import "testing"

func TestCompileCachesResult(t *testing.T) {
	c, err := New(4)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	re1, err := c.Compile(`\.go$`)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	re2, err := c.Compile(`\.go$`)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if re1 != re2 {
		t.Error("expected the same *regexp.Regexp pointer on repeated Compile")
	}
}

func TestCompileCachesError(t *testing.T) {
	c, err := New(4)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	_, err1 := c.Compile("(unterminated")
	_, err2 := c.Compile("(unterminated")
	if err1 == nil || err2 == nil {
		t.Fatal("expected a compile error both times")
	}
}

func TestMatchAnySkipsBadPatterns(t *testing.T) {
	c, err := New(4)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	patterns := []string{"(unterminated", `\.go$`}
	if !c.MatchAny(patterns, "main.go") {
		t.Error("expected MatchAny to match main.go via the valid pattern")
	}
	if c.MatchAny(patterns, "main.py") {
		t.Error("expected MatchAny to not match main.py")
	}
}
