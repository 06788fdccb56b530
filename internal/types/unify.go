package types

import "fmt"

// UnifyError reports a type mismatch or an occurs-check failure found
// during unification.
type UnifyError struct {
	A, B Type
	Msg  string
}

func (e *UnifyError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("cannot unify %s with %s: %s", e.A, e.B, e.Msg)
	}
	return fmt.Sprintf("cannot unify %s with %s", e.A, e.B)
}

// Unify makes a and b structurally equal, linking unbound Vars as needed.
// It runs an occurs check before every Var link to reject infinite types
// like `a = List[a]`.
func Unify(a, b Type) error {
	a, b = Prune(a), Prune(b)

	if av, ok := a.(*Var); ok {
		if bv, ok := b.(*Var); ok && av == bv {
			return nil
		}
		return bindVar(av, b)
	}
	if bv, ok := b.(*Var); ok {
		return bindVar(bv, a)
	}

	switch at := a.(type) {
	case Int:
		if _, ok := b.(Int); ok {
			return nil
		}
	case Float:
		if _, ok := b.(Float); ok {
			return nil
		}
	case Bool:
		if _, ok := b.(Bool); ok {
			return nil
		}
	case Str:
		if _, ok := b.(Str); ok {
			return nil
		}
	case Unit:
		if _, ok := b.(Unit); ok {
			return nil
		}
	case ErrorType:
		return nil // an error type unifies with anything to avoid cascades
	case *Fn:
		bt, ok := b.(*Fn)
		if !ok || len(at.Params) != len(bt.Params) {
			break
		}
		for i := range at.Params {
			if err := Unify(at.Params[i], bt.Params[i]); err != nil {
				return err
			}
		}
		return Unify(at.Return, bt.Return)
	case *Tuple:
		bt, ok := b.(*Tuple)
		if !ok || len(at.Elems) != len(bt.Elems) {
			break
		}
		for i := range at.Elems {
			if err := Unify(at.Elems[i], bt.Elems[i]); err != nil {
				return err
			}
		}
		return nil
	case *List:
		bt, ok := b.(*List)
		if !ok {
			break
		}
		return Unify(at.Elem, bt.Elem)
	case *Named:
		bt, ok := b.(*Named)
		if !ok || at.Name != bt.Name || len(at.Args) != len(bt.Args) {
			break
		}
		for i := range at.Args {
			if err := Unify(at.Args[i], bt.Args[i]); err != nil {
				return err
			}
		}
		return nil
	}
	if _, ok := b.(ErrorType); ok {
		return nil
	}
	return &UnifyError{A: a, B: b}
}

func bindVar(v *Var, t Type) error {
	if t2, ok := Prune(t).(*Var); ok && t2 == v {
		return nil
	}
	if occurs(v, t) {
		return &UnifyError{A: v, B: t, Msg: "infinite type (occurs check)"}
	}
	lowerLevels(t, v.Level())
	v.Link(t)
	return nil
}

// occurs reports whether v appears free within t, rejecting cyclic types.
func occurs(v *Var, t Type) bool {
	t = Prune(t)
	switch tt := t.(type) {
	case *Var:
		return tt == v
	case *Fn:
		for _, p := range tt.Params {
			if occurs(v, p) {
				return true
			}
		}
		return occurs(v, tt.Return)
	case *Tuple:
		for _, e := range tt.Elems {
			if occurs(v, e) {
				return true
			}
		}
		return false
	case *List:
		return occurs(v, tt.Elem)
	case *Named:
		for _, a := range tt.Args {
			if occurs(v, a) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// lowerLevels propagates v's generalization level down into any unbound
// Vars inside t, so a variable isn't generalized past the scope of
// something it now depends on. This is what makes let-polymorphism sound
// under the level-based scheme.
func lowerLevels(t Type, level int) {
	t = Prune(t)
	switch tt := t.(type) {
	case *Var:
		if !tt.state.linked && tt.Level() > level {
			tt.setLevel(level)
		}
	case *Fn:
		for _, p := range tt.Params {
			lowerLevels(p, level)
		}
		lowerLevels(tt.Return, level)
	case *Tuple:
		for _, e := range tt.Elems {
			lowerLevels(e, level)
		}
	case *List:
		lowerLevels(tt.Elem, level)
	case *Named:
		for _, a := range tt.Args {
			lowerLevels(a, level)
		}
	}
}
