package engine

import (
	"strings"
	"sync"
	"testing"
)

func TestEvaluateEmptyString(t *testing.T) {
	eng := NewEngine()

	sc, evalErrs, err := eng.Evaluate("")
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("unexpected eval errors: %v", evalErrs)
	}
	if sc == nil {
		t.Fatal("expected non-nil scene")
	}
	if sc.Count() != 0 {
		t.Errorf("expected empty scene, got %d figures", sc.Count())
	}
}

func TestEvaluateWhitespaceOnly(t *testing.T) {
	eng := NewEngine()

	sc, evalErrs, err := eng.Evaluate("   \n\t  \n  ")
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("unexpected eval errors: %v", evalErrs)
	}
	if sc == nil {
		t.Fatal("expected non-nil scene")
	}
	if sc.Count() != 0 {
		t.Errorf("expected empty scene, got %d figures", sc.Count())
	}
}

func TestEvaluateValidExpression(t *testing.T) {
	eng := NewEngine()

	// Plain Lisp with no figure builtins leaves the scene empty.
	sc, evalErrs, err := eng.Evaluate("(+ 1 2)")
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("unexpected eval errors: %v", evalErrs)
	}
	if sc == nil {
		t.Fatal("expected non-nil scene")
	}
	if sc.Count() != 0 {
		t.Errorf("expected empty scene, got %d figures", sc.Count())
	}
}

func TestEvaluateMultipleExpressions(t *testing.T) {
	eng := NewEngine()

	source := `
(def x 10)
(def y 20)
(+ x y)
`
	sc, evalErrs, err := eng.Evaluate(source)
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("unexpected eval errors: %v", evalErrs)
	}
	if sc == nil {
		t.Fatal("expected non-nil scene")
	}
}

func TestEvaluateSyntaxError(t *testing.T) {
	eng := NewEngine()

	// Unmatched paren is a parse error.
	sc, evalErrs, err := eng.Evaluate("(+ 1 2")
	if err != nil {
		t.Fatalf("expected non-fatal eval error, got fatal: %v", err)
	}
	if sc != nil {
		t.Fatal("expected nil scene on syntax error")
	}
	if len(evalErrs) == 0 {
		t.Fatal("expected at least one eval error for syntax error")
	}

	// The error message should contain something meaningful.
	msg := evalErrs[0].Message
	if msg == "" {
		t.Error("eval error message should not be empty")
	}
}

func TestEvaluateUndefinedSymbol(t *testing.T) {
	eng := NewEngine()

	sc, evalErrs, err := eng.Evaluate("(+ 1 no-such-symbol)")
	if err != nil {
		t.Fatalf("expected non-fatal eval error, got fatal: %v", err)
	}
	if sc != nil {
		t.Fatal("expected nil scene on eval error")
	}
	if len(evalErrs) == 0 {
		t.Fatal("expected at least one eval error for undefined symbol")
	}
}

func TestEvaluateFreshScenePerCall(t *testing.T) {
	eng := NewEngine()

	sc1, _, err := eng.Evaluate(`(figure "circle" :name "c")`)
	if err != nil {
		t.Fatalf("first evaluation: %v", err)
	}
	sc2, _, err := eng.Evaluate(`(+ 1 2)`)
	if err != nil {
		t.Fatalf("second evaluation: %v", err)
	}
	if sc1.Count() != 1 {
		t.Errorf("first scene has %d figures, want 1", sc1.Count())
	}
	if sc2.Count() != 0 {
		t.Errorf("second scene has %d figures, want 0; scenes must not leak between evaluations", sc2.Count())
	}
}

func TestEvaluateConcurrent(t *testing.T) {
	eng := NewEngine()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// Errors from superseded generations are acceptable; panics
			// and data races are not.
			eng.Evaluate(`(figure "circle" :name "c")`)
		}()
	}
	wg.Wait()
}

func TestParseZygomysErrorLineExtraction(t *testing.T) {
	tests := []struct {
		name     string
		msg      string
		wantLine int
	}{
		{"with line info", "Error on line 3: unexpected token", 3},
		{"short form", "line 12: bad call", 12},
		{"no line info", "something went wrong", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := parseZygomysError(errString(tt.msg))
			if len(errs) != 1 {
				t.Fatalf("got %d errors, want 1", len(errs))
			}
			if errs[0].Line != tt.wantLine {
				t.Errorf("Line = %d, want %d", errs[0].Line, tt.wantLine)
			}
			if errs[0].Message == "" {
				t.Error("empty message")
			}
		})
	}
}

// errString adapts a string to the error interface for parser tests.
type errString string

func (e errString) Error() string { return string(e) }

func TestEvalErrorFormatting(t *testing.T) {
	withLine := EvalError{Line: 4, Message: "bad form"}
	if got := withLine.Error(); !strings.Contains(got, "line 4") {
		t.Errorf("Error() = %q, want line prefix", got)
	}
	withoutLine := EvalError{Message: "bad form"}
	if got := withoutLine.Error(); got != "bad form" {
		t.Errorf("Error() = %q, want bare message", got)
	}
}

func TestRunGuardDiscardsSuperseded(t *testing.T) {
	var g runGuard
	first := g.begin()
	second := g.begin()

	ch := make(chan evalResult, 1)
	ch <- evalResult{scene: nil}
	if _, _, err := g.await(first, ch); err == nil {
		t.Error("stale run delivered its result")
	}

	ch2 := make(chan evalResult, 1)
	ch2 <- evalResult{errors: []EvalError{{Message: "boom"}}}
	_, errs, err := g.await(second, ch2)
	if err != nil {
		t.Fatalf("current run rejected: %v", err)
	}
	if len(errs) != 1 || errs[0].Message != "boom" {
		t.Errorf("result not passed through: %v", errs)
	}
}

func TestRunGuardIDsIncrease(t *testing.T) {
	var g runGuard
	a := g.begin()
	b := g.begin()
	if b <= a {
		t.Errorf("run ids not increasing: %d then %d", a, b)
	}
	if g.isCurrent(a) {
		t.Error("old run still reported current")
	}
	if !g.isCurrent(b) {
		t.Error("newest run not reported current")
	}
}
