// Package arena provides the bump allocator shared by every compiler stage.
//
// All tree nodes, types, and symbols produced while compiling one source
// file live in a single Arena; none of them are freed individually. A
// pipeline run creates one Arena, runs the lexer/parser/checker/codegen in
// sequence, and destroys it. The allocator itself only hands out raw,
// zeroed byte slices, used by the string interner in this package; AST
// and type nodes are ordinary garbage-collected Go values and are not
// allocated from the arena, which avoids unsafe pointer arithmetic.
package arena

import "fmt"

// defaultAlign is applied by Alloc; use AlignedAlloc for anything stricter.
const defaultAlign = 16

// block is one chunk of the arena's backing storage.
type block struct {
	data []byte
	used int
}

// Arena is a bump allocator over a growing list of blocks. It is not safe
// for concurrent use; per spec, a single Arena is never shared between
// lexer, parser, checker, or codegen threads.
type Arena struct {
	blockSize int
	blocks    []*block
	total     int
}

// New creates an Arena that grows in blockSize-byte chunks. 4096 is a
// reasonable default for a single source file.
func New(blockSize int) *Arena {
	if blockSize <= 0 {
		blockSize = 4096
	}
	return &Arena{blockSize: blockSize}
}

// Alloc returns n zeroed bytes aligned to the default 16-byte boundary.
func (a *Arena) Alloc(n int) []byte {
	return a.AlignedAlloc(n, defaultAlign)
}

// AlignedAlloc returns n zeroed bytes aligned to align, which must be a
// power of two.
func (a *Arena) AlignedAlloc(n int, align int) []byte {
	if align <= 0 || align&(align-1) != 0 {
		panic(fmt.Sprintf("arena: alignment %d is not a power of two", align))
	}
	if len(a.blocks) == 0 {
		a.pushBlock(n + align)
	}
	b := a.blocks[len(a.blocks)-1]
	start := alignUp(b.used, align)
	if start+n > len(b.data) {
		size := a.blockSize
		if n+align > size {
			size = n + align
		}
		a.pushBlock(size)
		b = a.blocks[len(a.blocks)-1]
		start = alignUp(b.used, align)
	}
	out := b.data[start : start+n : start+n]
	b.used = start + n
	a.total += n
	return out
}

func (a *Arena) pushBlock(size int) {
	if size < a.blockSize {
		size = a.blockSize
	}
	a.blocks = append(a.blocks, &block{data: make([]byte, size)})
}

func alignUp(n, align int) int {
	return (n + align - 1) &^ (align - 1)
}

// Reset reuses previously allocated blocks for the next compilation without
// returning memory to the OS. All pointers/slices returned before Reset
// become invalid.
func (a *Arena) Reset() {
	for _, b := range a.blocks {
		for i := range b.data {
			b.data[i] = 0
		}
		b.used = 0
	}
	a.total = 0
}

// Destroy releases every block. All previously returned slices become
// invalid; the Arena may not be used again.
func (a *Arena) Destroy() {
	a.blocks = nil
	a.total = 0
}

// TotalAllocated reports bytes handed out so far, useful for profiling a
// compiler stage's memory usage.
func (a *Arena) TotalAllocated() int {
	return a.total
}
