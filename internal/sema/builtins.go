package sema

import "github.com/fern-lang/fern/internal/types"

// registerBuiltins extends env with Fern's standard library surface:
// printing, string/list primitives. Each polymorphic entry is generalized
// once at level 0 so every call site gets its own fresh instantiation.
func registerBuiltins(env *types.Env, gen *types.VarGen) {
	printArg := gen.Fresh()
	env.Extend("print", types.Generalize(&types.Fn{
		Params: []types.Type{printArg}, Return: types.Unit{},
	}, 0))
	printlnArg := gen.Fresh()
	env.Extend("println", types.Generalize(&types.Fn{
		Params: []types.Type{printlnArg}, Return: types.Unit{},
	}, 0))

	env.Extend("str_concat", types.Mono(&types.Fn{
		Params: []types.Type{types.Str{}, types.Str{}}, Return: types.Str{},
	}))
	env.Extend("str_len", types.Mono(&types.Fn{
		Params: []types.Type{types.Str{}}, Return: types.Int{},
	}))
	env.Extend("str_eq", types.Mono(&types.Fn{
		Params: []types.Type{types.Str{}, types.Str{}}, Return: types.Bool{},
	}))
	env.Extend("str_of_int", types.Mono(&types.Fn{
		Params: []types.Type{types.Int{}}, Return: types.Str{},
	}))

	newElem := gen.Fresh()
	env.Extend("list_new", types.Generalize(&types.Fn{
		Params: nil, Return: &types.List{Elem: newElem},
	}, 0))

	pushElem := gen.Fresh()
	env.Extend("list_push", types.Generalize(&types.Fn{
		Params: []types.Type{&types.List{Elem: pushElem}, pushElem},
		Return: &types.List{Elem: pushElem},
	}, 0))

	lenElem := gen.Fresh()
	env.Extend("list_len", types.Generalize(&types.Fn{
		Params: []types.Type{&types.List{Elem: lenElem}}, Return: types.Int{},
	}, 0))

	getElem := gen.Fresh()
	env.Extend("list_get", types.Generalize(&types.Fn{
		Params: []types.Type{&types.List{Elem: getElem}, types.Int{}}, Return: getElem,
	}, 0))
}
