/*
NAME
  types.go

DESCRIPTION
  types.go defines the PLY header vocabulary: scalar property types,
  list/scalar property specs, and element specs, plus the fixed set of
  scalar names the Transformer requires from the vertex element.

LICENSE
  Copyright (C) 2026 the ply2splat authors. All Rights Reserved.
*/

package ply

// scalarType is a PLY scalar property type, covering both the long
// and short-form names the format allows (e.g. "float" and "float32"
// are the same type).
type scalarType int

const (
	typeInt8 scalarType = iota
	typeUint8
	typeInt16
	typeUint16
	typeInt32
	typeUint32
	typeFloat32
	typeFloat64
)

// size returns the on-disk byte size of a binary-encoded scalar value
// of this type.
func (t scalarType) size() int {
	switch t {
	case typeInt8, typeUint8:
		return 1
	case typeInt16, typeUint16:
		return 2
	case typeInt32, typeUint32, typeFloat32:
		return 4
	case typeFloat64:
		return 8
	default:
		return 0
	}
}

// scalarTypeNames maps every PLY spelling (long and short form) of a
// scalar type to its scalarType.
var scalarTypeNames = map[string]scalarType{
	"char":    typeInt8,
	"int8":    typeInt8,
	"uchar":   typeUint8,
	"uint8":   typeUint8,
	"short":   typeInt16,
	"int16":   typeInt16,
	"ushort":  typeUint16,
	"uint16":  typeUint16,
	"int":     typeInt32,
	"int32":   typeInt32,
	"uint":    typeUint32,
	"uint32":  typeUint32,
	"float":   typeFloat32,
	"float32": typeFloat32,
	"double":  typeFloat64,
	"float64": typeFloat64,
}

// propSpec describes a single declared PLY property, either scalar or
// a list (a variable-length run of values prefixed by a count).
type propSpec struct {
	name      string
	isList    bool
	countType scalarType // meaningful only if isList
	valueType scalarType
}

// elementSpec describes a declared PLY element: its name, the number
// of records it contains, and its ordered property list.
type elementSpec struct {
	name  string
	count int
	props []propSpec
}

// requiredVertexProps is the ordered list of scalar vertex properties
// the Transformer requires. Order here determines which property name
// is reported first by a MissingProperty error.
var requiredVertexProps = []string{
	"x", "y", "z",
	"scale_0", "scale_1", "scale_2",
	"rot_0", "rot_1", "rot_2", "rot_3",
	"opacity",
	"f_dc_0", "f_dc_1", "f_dc_2",
}

// Slot indices into the fixed-size value array a vertex record is
// decoded into, matching the order of requiredVertexProps.
const (
	slotX = iota
	slotY
	slotZ
	slotScale0
	slotScale1
	slotScale2
	slotRot0
	slotRot1
	slotRot2
	slotRot3
	slotOpacity
	slotFDC0
	slotFDC1
	slotFDC2
	numSlots
)
