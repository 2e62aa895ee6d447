package templatesimplifier_test

import (
	"strings"
	"testing"

	"detemplate/internal/diag"
	"detemplate/internal/lexer"
	"detemplate/internal/source"
	"detemplate/internal/templatesimplifier"
	"detemplate/internal/token"
)

// tokenize lexes src as a virtual file and returns the resulting list.
func tokenize(t *testing.T, src string) *token.List {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.cpp", []byte(src))
	list := token.NewList(fs)
	lexer.Tokenize(list, fs.Get(id), lexer.Options{})
	return list
}

// render joins every token's text with a single space, matching how the
// literal scenarios in spec.md's testable-properties section are stated.
func render(list *token.List) string {
	var b strings.Builder
	for tok := list.Front(); tok != nil; tok = tok.Next {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(tok.Text)
	}
	return b.String()
}

func run(t *testing.T, src string) (*token.List, templatesimplifier.Result) {
	t.Helper()
	list := tokenize(t, src)
	bag := diag.NewBag(100)
	result := templatesimplifier.Run(list, templatesimplifier.Settings{}, diag.BagReporter{Bag: bag}, nil)
	if msg := templatesimplifier.CheckPostconditions(list, result); msg != "" {
		t.Errorf("postcondition violated: %s", msg)
	}
	return list, result
}

func TestSimplifyFunctionTemplate(t *testing.T) {
	list, result := run(t, `template <class T> T f(T x){return x;} int z = f<int>(3);`)
	if !result.ContainsTemplates {
		t.Fatal("expected ContainsTemplates")
	}
	if !strings.Contains(render(list), "f<int> ( int x ) { return x ; }") {
		t.Errorf("monomorph body missing, got: %s", render(list))
	}
	if strings.Contains(render(list), "template") {
		t.Errorf("template keyword survived: %s", render(list))
	}
}

func TestSimplifyDefaultArgument(t *testing.T) {
	list, result := run(t, `template <class T, int N = 2> struct A { T v[N]; }; A<char> a;`)
	out := render(list)
	if !result.Monomorphs["A<char,2>"] {
		t.Errorf("expected monomorph A<char,2>, got %v", result.Monomorphs)
	}
	if !strings.Contains(out, "struct A<char,2> { char v [ 2 ] ; }") {
		t.Errorf("monomorphized struct body missing, got: %s", out)
	}
}

func TestSimplifySpecialization(t *testing.T) {
	list, _ := run(t, `template<> int f<int>(int x){return x;} int y = f<int>(4);`)
	out := render(list)
	if strings.Contains(out, "template") {
		t.Errorf("template keyword survived: %s", out)
	}
	if strings.Count(out, "f<int>") != 2 {
		t.Errorf("expected both sites renamed to f<int>, got: %s", out)
	}
}

func TestSimplifyNestedInstantiation(t *testing.T) {
	_, result := run(t, `template<class T> struct V{}; V<V<int>> w;`)
	if !result.Monomorphs["V<int>"] {
		t.Errorf("expected inner monomorph V<int>, got %v", result.Monomorphs)
	}
	if !result.Monomorphs["V<V<int>>"] {
		t.Errorf("expected outer monomorph V<V<int>>, got %v", result.Monomorphs)
	}
}

func TestSimplifyNumericArgument(t *testing.T) {
	_, result := run(t, `template<class T> struct S{}; S<1+2> s;`)
	if !result.Monomorphs["S<3>"] {
		t.Errorf("expected folded monomorph S<3>, got %v", result.Monomorphs)
	}
}

func TestSimplifyNoTemplates(t *testing.T) {
	src := `int add(int a, int b) { return a + b; }`
	list, result := run(t, src)
	if result.ContainsTemplates {
		t.Fatal("expected ContainsTemplates to be false")
	}
	if render(list) != render(tokenize(t, src)) {
		t.Errorf("non-template input should pass through unchanged")
	}
}

func TestSimplifyIdempotent(t *testing.T) {
	list := tokenize(t, `template <class T> T f(T x){return x;} int z = f<int>(3);`)
	bag := diag.NewBag(100)
	first := templatesimplifier.Run(list, templatesimplifier.Settings{}, diag.BagReporter{Bag: bag}, nil)

	before := render(list)
	second := templatesimplifier.Run(list, templatesimplifier.Settings{}, diag.BagReporter{Bag: bag}, nil)
	after := render(list)

	if before != after {
		t.Errorf("second run mutated an already-simplified list:\nbefore: %s\nafter:  %s", before, after)
	}
	if msg := templatesimplifier.CheckIdempotent(first, second, list, strings.Count(before, " ")+1); msg != "" {
		t.Errorf("idempotence check failed: %s", msg)
	}
}
