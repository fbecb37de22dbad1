package tricotype

// StreamType identifies the kind of a stream record. The numeric value is
// the tag byte stored in the archive.
type StreamType uint8

// Stream types. Empty is reported when no stream is pending; it is never
// written to an archive.
const (
	StreamEmpty StreamType = iota
	StreamVertexFloat
	StreamVertexDouble
	StreamTriangleUint32
	StreamTriangleUint64
	StreamUVPerVertexFloat
	StreamUVPerVertexDouble
	StreamUVPerTriangleFloat
	StreamUVPerTriangleDouble
	StreamNormalPerVertexFloat
	StreamNormalPerVertexDouble
	StreamNormalPerTriangleFloat
	StreamNormalPerTriangleDouble
	StreamColorPerVertex
	StreamColorPerTriangle
	StreamAttributeFloat
	StreamAttributeDouble
	StreamAttributeUint8
	StreamAttributeUint16
	StreamAttributeUint32
	StreamAttributeUint64

	streamTypeCount
)

// Category groups stream types that describe the same mesh property.
type Category uint8

const (
	CategoryNone Category = iota
	CategoryVertex
	CategoryTriangle
	CategoryUV
	CategoryNormal
	CategoryColor
	CategoryAttribute
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryVertex:
		return "vertices"
	case CategoryTriangle:
		return "triangles"
	case CategoryUV:
		return "uv"
	case CategoryNormal:
		return "normals"
	case CategoryColor:
		return "colors"
	case CategoryAttribute:
		return "attributes"
	default:
		return "none"
	}
}

// Binding says whether a property is stored per vertex or per triangle.
type Binding uint8

const (
	PerVertex Binding = iota
	PerTriangle
)

// String returns the binding name.
func (b Binding) String() string {
	if b == PerTriangle {
		return "per-triangle"
	}
	return "per-vertex"
}

// ElementClass is the scalar type of the values in a stream.
type ElementClass uint8

const (
	ClassFloat32 ElementClass = iota + 1
	ClassFloat64
	ClassUint8
	ClassUint16
	ClassUint32
	ClassUint64
)

// Width returns the size in bytes of one scalar of the class.
func (c ElementClass) Width() int {
	switch c {
	case ClassUint8:
		return 1
	case ClassUint16:
		return 2
	case ClassFloat32, ClassUint32:
		return 4
	case ClassFloat64, ClassUint64:
		return 8
	default:
		return 0
	}
}

// Predicted reports whether the class is coded with the value predictor.
// Integer classes are split into byte planes for the byte compressor.
func (c ElementClass) Predicted() bool {
	return c == ClassFloat32 || c == ClassFloat64
}

// Layout describes how a stream's values are arranged and coded.
type Layout struct {
	Name     string
	Category Category
	Binding  Binding
	Class    ElementClass

	// Values is the number of scalars per counted element
	// (3 for a vertex or a triangle, 6 for a per-triangle UV record).
	Values int

	// Components is the number of interleaved components split into
	// separate planes before prediction (x/y/z, u/v). Always 1 for
	// integer classes.
	Components int
}

var layouts = [streamTypeCount]Layout{
	StreamEmpty:                   {Name: "empty"},
	StreamVertexFloat:             {Name: "vertex-float", Category: CategoryVertex, Class: ClassFloat32, Values: 3, Components: 3},
	StreamVertexDouble:            {Name: "vertex-double", Category: CategoryVertex, Class: ClassFloat64, Values: 3, Components: 3},
	StreamTriangleUint32:          {Name: "triangle-uint32", Category: CategoryTriangle, Class: ClassUint32, Values: 3, Components: 1},
	StreamTriangleUint64:          {Name: "triangle-uint64", Category: CategoryTriangle, Class: ClassUint64, Values: 3, Components: 1},
	StreamUVPerVertexFloat:        {Name: "uv-vertex-float", Category: CategoryUV, Binding: PerVertex, Class: ClassFloat32, Values: 2, Components: 2},
	StreamUVPerVertexDouble:       {Name: "uv-vertex-double", Category: CategoryUV, Binding: PerVertex, Class: ClassFloat64, Values: 2, Components: 2},
	StreamUVPerTriangleFloat:      {Name: "uv-triangle-float", Category: CategoryUV, Binding: PerTriangle, Class: ClassFloat32, Values: 6, Components: 2},
	StreamUVPerTriangleDouble:     {Name: "uv-triangle-double", Category: CategoryUV, Binding: PerTriangle, Class: ClassFloat64, Values: 6, Components: 2},
	StreamNormalPerVertexFloat:    {Name: "normal-vertex-float", Category: CategoryNormal, Binding: PerVertex, Class: ClassFloat32, Values: 3, Components: 3},
	StreamNormalPerVertexDouble:   {Name: "normal-vertex-double", Category: CategoryNormal, Binding: PerVertex, Class: ClassFloat64, Values: 3, Components: 3},
	StreamNormalPerTriangleFloat:  {Name: "normal-triangle-float", Category: CategoryNormal, Binding: PerTriangle, Class: ClassFloat32, Values: 3, Components: 3},
	StreamNormalPerTriangleDouble: {Name: "normal-triangle-double", Category: CategoryNormal, Binding: PerTriangle, Class: ClassFloat64, Values: 3, Components: 3},
	StreamColorPerVertex:          {Name: "color-vertex", Category: CategoryColor, Binding: PerVertex, Class: ClassUint32, Values: 1, Components: 1},
	StreamColorPerTriangle:        {Name: "color-triangle", Category: CategoryColor, Binding: PerTriangle, Class: ClassUint32, Values: 1, Components: 1},
	StreamAttributeFloat:          {Name: "attribute-float", Category: CategoryAttribute, Class: ClassFloat32, Values: 1, Components: 1},
	StreamAttributeDouble:         {Name: "attribute-double", Category: CategoryAttribute, Class: ClassFloat64, Values: 1, Components: 1},
	StreamAttributeUint8:          {Name: "attribute-uint8", Category: CategoryAttribute, Class: ClassUint8, Values: 1, Components: 1},
	StreamAttributeUint16:         {Name: "attribute-uint16", Category: CategoryAttribute, Class: ClassUint16, Values: 1, Components: 1},
	StreamAttributeUint32:         {Name: "attribute-uint32", Category: CategoryAttribute, Class: ClassUint32, Values: 1, Components: 1},
	StreamAttributeUint64:         {Name: "attribute-uint64", Category: CategoryAttribute, Class: ClassUint64, Values: 1, Components: 1},
}

// Valid reports whether s is a stream type that can appear in an archive.
func (s StreamType) Valid() bool {
	return s > StreamEmpty && s < streamTypeCount
}

// Layout returns the coding layout of s. Invalid types return the zero Layout.
func (s StreamType) Layout() Layout {
	if s >= streamTypeCount {
		return Layout{}
	}
	return layouts[s]
}

// Category returns the mesh property s describes.
func (s StreamType) Category() Category {
	return s.Layout().Category
}

// Binding returns whether s is stored per vertex or per triangle.
func (s StreamType) Binding() Binding {
	return s.Layout().Binding
}

// SubBlocks returns the number of length-prefixed sub-blocks that follow
// the element count of a stream of type s.
func (s StreamType) SubBlocks() int {
	l := s.Layout()
	if l.Class.Predicted() {
		return l.Components
	}
	return l.Class.Width()
}

// String returns the stream type name.
func (s StreamType) String() string {
	if s >= streamTypeCount {
		return "unknown"
	}
	return layouts[s].Name
}

// StreamTypes returns the stream types of category c in tag order.
func (c Category) StreamTypes() []StreamType {
	var out []StreamType
	for s := StreamEmpty + 1; s < streamTypeCount; s++ {
		if layouts[s].Category == c {
			out = append(out, s)
		}
	}
	return out
}
