// Package abi models, without implementing, the small C runtime linked
// into every compiled Fern executable: the packed Result/Option word
// layout and the external symbol names the emitter is allowed to call.
// Nothing here runs — it exists so internal/codegen and its tests can
// assert on the exact calling convention without vendoring or faking a
// runtime implementation, per spec.md §6.
package abi

// Result and Option share one packed-64-bit-word representation: the low
// 32 bits hold the tag, the high 32 bits hold the sign-extended payload.
// spec.md §6 specifies this over the competing struct layout because it
// is the one the emitted IR actually produces.
const (
	ResultOkTag  int32 = 0
	ResultErrTag int32 = 1

	OptionNoneTag int32 = 0
	OptionSomeTag int32 = 1
)

// Pack combines a tag and a sign-extended 32-bit payload into the packed
// word the emitter stores in a Result/Option-typed temporary.
func Pack(tag, payload int32) uint64 {
	return uint64(uint32(tag)) | uint64(uint32(payload))<<32
}

// Unpack splits a packed Result/Option word back into its tag and
// payload, mirroring Pack for the emitter's own tests.
func Unpack(word uint64) (tag, payload int32) {
	return int32(uint32(word)), int32(uint32(word >> 32))
}

// RuntimeSymbol names one externally-linked helper the emitter may call.
// The runtime library itself is an out-of-scope collaborator (spec.md
// §1); this is the contract the emitter is allowed to assume it honors.
type RuntimeSymbol struct {
	Name   string // QBE global symbol, e.g. "$print_int"
	Params []string
	Return string
}

// RuntimeSymbols is the full externally-linked helper surface the
// emitter may reference by name, per spec.md §6: "integer/string/bool
// print, string length/concat/equality, list new/len/get/push, and
// option/result helpers" plus a panic abort.
var RuntimeSymbols = []RuntimeSymbol{
	{Name: "$print_int", Params: []string{"w"}, Return: ""},
	{Name: "$print_bool", Params: []string{"w"}, Return: ""},
	{Name: "$print_str", Params: []string{"l"}, Return: ""},
	{Name: "$print_float", Params: []string{"d"}, Return: ""},

	{Name: "$str_len", Params: []string{"l"}, Return: "w"},
	{Name: "$str_concat", Params: []string{"l", "l"}, Return: "l"},
	{Name: "$str_eq", Params: []string{"l", "l"}, Return: "w"},
	{Name: "$str_of_int", Params: []string{"w"}, Return: "l"},

	{Name: "$list_new", Params: []string{"w"}, Return: "l"},
	{Name: "$list_len", Params: []string{"l"}, Return: "w"},
	{Name: "$list_get", Params: []string{"l", "w"}, Return: "l"},
	{Name: "$list_push", Params: []string{"l", "l"}, Return: "l"},

	{Name: "$pow_int", Params: []string{"w", "w"}, Return: "d"},

	// Tuples and multi-field sum-type variants aren't representable in
	// the packed-word Result/Option layout, so they're boxed through a
	// small fixed-slot record, the same shape spec.md's list helpers
	// already take for granted.
	{Name: "$record_new", Params: []string{"w"}, Return: "l"},
	{Name: "$record_get", Params: []string{"l", "w"}, Return: "l"},
	{Name: "$record_set", Params: []string{"l", "w", "l"}, Return: ""},

	{Name: "$panic", Params: []string{"l"}, Return: ""},
}

// Lookup finds a runtime symbol by its QBE global name, for emitter code
// that wants to validate a call site against its declared signature.
func Lookup(name string) (RuntimeSymbol, bool) {
	for _, s := range RuntimeSymbols {
		if s.Name == name {
			return s, true
		}
	}
	return RuntimeSymbol{}, false
}
