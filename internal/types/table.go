// Package types exposes the resolved-type facade the formatter consumes.
//
// The formatter never inspects type structure; it only needs a display name
// for every TypeID the front end attached to the tree. Table is the read-only
// view handed to a formatting run, Interner is the concrete implementation
// the toolchain (and the tests) populate.
package types

import (
	"fmt"

	"fortio.org/safecast"
)

// TypeID is a stable identifier for a resolved type. Zero is invalid.
type TypeID uint32

// NoTypeID marks an absent type (e.g. a function without a return type).
const NoTypeID TypeID = 0

func (id TypeID) IsValid() bool {
	return id != NoTypeID
}

// Table resolves display names for type identifiers. The formatter treats it
// as shared, read-only state.
type Table interface {
	// Name renders the in-source display name for id. It panics on an
	// unknown id: the tree is assumed well formed.
	Name(id TypeID) string
}

// Builtins stores TypeIDs for the primitive types every table carries.
type Builtins struct {
	Bool   TypeID
	String TypeID
	Int    TypeID
	I64    TypeID
	U32    TypeID
	U64    TypeID
	F32    TypeID
	F64    TypeID
	Rune   TypeID
	Byte   TypeID
}

// Interner provides stable TypeIDs for display names.
type Interner struct {
	names    []string
	index    map[string]TypeID
	builtins Builtins
}

// NewInterner constructs an interner seeded with built-in primitives.
func NewInterner() *Interner {
	in := &Interner{
		index: make(map[string]TypeID, 32),
	}
	in.names = append(in.names, "") // reserve 0 as invalid sentinel
	in.builtins.Bool = in.Intern("bool")
	in.builtins.String = in.Intern("string")
	in.builtins.Int = in.Intern("int")
	in.builtins.I64 = in.Intern("i64")
	in.builtins.U32 = in.Intern("u32")
	in.builtins.U64 = in.Intern("u64")
	in.builtins.F32 = in.Intern("f32")
	in.builtins.F64 = in.Intern("f64")
	in.builtins.Rune = in.Intern("rune")
	in.builtins.Byte = in.Intern("u8")
	return in
}

// Builtins returns TypeIDs for primitive types.
func (in *Interner) Builtins() Builtins {
	return in.builtins
}

// Intern ensures the provided display name has a stable TypeID.
func (in *Interner) Intern(name string) TypeID {
	if name == "" {
		return NoTypeID
	}
	if id, ok := in.index[name]; ok {
		return id
	}
	next, err := safecast.Conv[uint32](len(in.names))
	if err != nil {
		panic(fmt.Errorf("type table overflow: %w", err))
	}
	id := TypeID(next)
	in.names = append(in.names, name)
	in.index[name] = id
	return id
}

// Name implements Table.
func (in *Interner) Name(id TypeID) string {
	if !id.IsValid() || int(id) >= len(in.names) {
		panic(fmt.Sprintf("types: unknown TypeID %d", id))
	}
	return in.names[id]
}

// Len returns the number of interned names, the invalid sentinel included.
func (in *Interner) Len() int {
	return len(in.names)
}
