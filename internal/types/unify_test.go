package types_test

import (
	"testing"

	"github.com/fern-lang/fern/internal/types"
)

func TestUnifyPrimitives(t *testing.T) {
	if err := types.Unify(types.Int{}, types.Int{}); err != nil {
		t.Errorf("expected Int/Int to unify, got %v", err)
	}
	if err := types.Unify(types.Int{}, types.Bool{}); err == nil {
		t.Error("expected Int/Bool to fail to unify")
	}
}

func TestUnifyBindsVar(t *testing.T) {
	g := types.NewVarGen()
	v := g.Fresh()
	if err := types.Unify(v, types.Int{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !v.IsLinked() {
		t.Fatal("expected var to be linked after unification")
	}
	if got := types.Prune(v).String(); got != "Int" {
		t.Errorf("expected pruned var to be Int, got %s", got)
	}
}

func TestUnifyOccursCheck(t *testing.T) {
	g := types.NewVarGen()
	v := g.Fresh()
	list := &types.List{Elem: v}
	if err := types.Unify(v, list); err == nil {
		t.Error("expected occurs-check failure for v = List[v]")
	}
}

func TestUnifyFunctionTypes(t *testing.T) {
	g := types.NewVarGen()
	a, b := g.Fresh(), g.Fresh()
	f1 := &types.Fn{Params: []types.Type{a}, Return: types.Int{}}
	f2 := &types.Fn{Params: []types.Type{types.Bool{}}, Return: b}
	if err := types.Unify(f1, f2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if types.Prune(a).String() != "Bool" {
		t.Errorf("expected a to unify to Bool, got %s", types.Prune(a))
	}
	if types.Prune(b).String() != "Int" {
		t.Errorf("expected b to unify to Int, got %s", types.Prune(b))
	}
}

func TestUnifyTupleArityMismatch(t *testing.T) {
	t1 := &types.Tuple{Elems: []types.Type{types.Int{}, types.Int{}}}
	t2 := &types.Tuple{Elems: []types.Type{types.Int{}}}
	if err := types.Unify(t1, t2); err == nil {
		t.Error("expected arity mismatch to fail to unify")
	}
}

func TestUnifyListElem(t *testing.T) {
	g := types.NewVarGen()
	v := g.Fresh()
	l1 := &types.List{Elem: v}
	l2 := &types.List{Elem: types.Str{}}
	if err := types.Unify(l1, l2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if types.Prune(v).String() != "String" {
		t.Errorf("expected v to unify to String, got %s", types.Prune(v))
	}
}

func TestGeneralizeAndInstantiate(t *testing.T) {
	g := types.NewVarGen()
	g.EnterLevel()
	a := g.Fresh()
	idType := &types.Fn{Params: []types.Type{a}, Return: a}
	scheme := types.Generalize(idType, 1)
	if len(scheme.Vars) != 1 {
		t.Fatalf("expected 1 generalized var, got %d", len(scheme.Vars))
	}

	inst1 := types.Instantiate(scheme, g)
	inst2 := types.Instantiate(scheme, g)
	f1 := inst1.(*types.Fn)
	f2 := inst2.(*types.Fn)
	if err := types.Unify(f1.Params[0], types.Int{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := types.Unify(f2.Params[0], types.Str{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Each instantiation must be independently unifiable: applying `id` to
	// an Int and then to a String must not make the two calls collide.
	if types.Prune(f1.Return).String() != "Int" {
		t.Errorf("expected first instantiation's return to be Int, got %s", types.Prune(f1.Return))
	}
	if types.Prune(f2.Return).String() != "String" {
		t.Errorf("expected second instantiation's return to be String, got %s", types.Prune(f2.Return))
	}
}

func TestEnvLookupShadowing(t *testing.T) {
	env := types.NewEnv()
	env.Extend("x", types.Mono(types.Int{}))
	env.Push()
	env.Extend("x", types.Mono(types.Str{}))
	inner, _ := env.Lookup("x")
	if inner.Type.String() != "String" {
		t.Errorf("expected inner x to be String, got %s", inner.Type)
	}
	env.Pop()
	outer, _ := env.Lookup("x")
	if outer.Type.String() != "Int" {
		t.Errorf("expected outer x to be Int after pop, got %s", outer.Type)
	}
}
