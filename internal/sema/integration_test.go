package sema_test

import (
	"testing"

	"github.com/fern-lang/fern/internal/sema"
	"github.com/fern-lang/fern/internal/types"
)

// checkSource runs the full lex/parse/check pipeline over a complete
// program and returns the checker so callers can inspect its diagnostics.
func checkSource(t *testing.T, src string) *sema.Checker {
	t.Helper()
	prog := parseCode(t, src)
	checker := sema.NewChecker()
	checker.CheckProgram(prog)
	return checker
}

func TestIntegrationPositivePrograms(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{
			"simple function and call",
			"fn square(n: Int) -> Int:\n    n * n\n\nfn main() -> Int:\n    square(5)\n",
		},
		{
			"nested if/match expression",
			"fn classify(n: Int) -> String:\n" +
				"    if n < 0:\n" +
				"        \"negative\"\n" +
				"    else:\n" +
				"        match n:\n" +
				"            0 -> \"zero\"\n" +
				"            _ -> \"positive\"\n",
		},
		{
			"result-returning function and propagation",
			"fn safe_div(a: Int, b: Int) -> Result[Int, String]:\n" +
				"    if b == 0:\n" +
				"        Err(\"division by zero\")\n" +
				"    else:\n" +
				"        Ok(a / b)\n" +
				"\n" +
				"fn main() -> Int:\n" +
				"    match safe_div(10, 2):\n" +
				"        Ok(v) -> v\n" +
				"        Err(_) -> 0\n",
		},
		{
			"generic list helper used at two element types",
			"fn first(xs: List[a]) -> a:\n" +
				"    list_get(xs, 0)\n" +
				"\n" +
				"fn main() -> Int:\n" +
				"    let ints = [1, 2, 3]\n" +
				"    let strs = [\"a\", \"b\"]\n" +
				"    let a = first(ints)\n" +
				"    let b = first(strs)\n" +
				"    a\n",
		},
		{
			"tuple destructuring let",
			"fn main() -> Int:\n" +
				"    let (a, b) = (1, 2)\n" +
				"    a + b\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checker := checkSource(t, tt.src)
			if checker.HasErrors() {
				t.Errorf("expected no errors, got: %v", checker.Errors)
			}
		})
	}
}

func TestIntegrationNegativePrograms(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{
			"calling a non-function",
			"fn main() -> Int:\n    let x = 5\n    x(1)\n",
		},
		{
			"wrong argument count",
			"fn add(a: Int, b: Int) -> Int:\n    a + b\n\nfn main() -> Int:\n    add(1)\n",
		},
		{
			"mismatched constructor field",
			"fn main() -> Option[Int]:\n    Some(\"not an int\")\n",
		},
		{
			"branches of match disagree",
			"fn main() -> Int:\n" +
				"    match 1:\n" +
				"        0 -> 1\n" +
				"        _ -> \"two\"\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checker := checkSource(t, tt.src)
			if !checker.HasErrors() {
				t.Error("expected a type error, got none")
			}
		})
	}
}

// TestTopLevelLetPolymorphism checks spec.md §8 Scenario 2 verbatim: a
// top-level identity lambda bound with `let`, then applied to an Int and a
// String. Each use must get its own instantiation of id's scheme — the
// defining property of let-polymorphism — rather than unifying Int and
// String against a single monomorphic type variable.
func TestTopLevelLetPolymorphism(t *testing.T) {
	src := "let id = (x) -> x\nlet a = id(1)\nlet b = id(\"x\")\n"
	checker := checkSource(t, src)
	if checker.HasErrors() {
		t.Fatalf("expected no errors, got: %v", checker.Errors)
	}

	idScheme, ok := checker.Env().Lookup("id")
	if !ok {
		t.Fatal("expected 'id' in the top-level environment")
	}
	if len(idScheme.Vars) == 0 {
		t.Errorf("expected id's scheme to be quantified over a type variable, got %#v", idScheme)
	}

	aScheme, ok := checker.Env().Lookup("a")
	if !ok {
		t.Fatal("expected 'a' in the top-level environment")
	}
	if got := types.Prune(aScheme.Type).String(); got != "Int" {
		t.Errorf("expected a : Int, got %s", got)
	}

	bScheme, ok := checker.Env().Lookup("b")
	if !ok {
		t.Fatal("expected 'b' in the top-level environment")
	}
	if got := types.Prune(bScheme.Type).String(); got != "String" {
		t.Errorf("expected b : String, got %s", got)
	}
}
