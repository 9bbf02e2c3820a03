package gltf

// enums.go contains the closed numeric and string domains of the glTF 2.0 schema.
// Every domain has a validating Parse function; none of them substitutes a default for an
// unknown code.

import (
	"fmt"
)

// --- Component Type ---

// ComponentType is the data type of an accessor component.
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html#accessor-data-types
type ComponentType int

const (
	ComponentTypeByte          ComponentType = 5120
	ComponentTypeUnsignedByte  ComponentType = 5121
	ComponentTypeShort         ComponentType = 5122
	ComponentTypeUnsignedShort ComponentType = 5123
	ComponentTypeUnsignedInt   ComponentType = 5125
	ComponentTypeFloat         ComponentType = 5126
)

// ParseComponentType validates a raw componentType code.
//
// Parameters:
//   - code: the integer found in the document
//
// Returns:
//   - ComponentType: the matching variant
//   - error: *InvalidEnumCodeError when code is not one of the six legal values
func ParseComponentType(code int) (ComponentType, error) {
	switch c := ComponentType(code); c {
	case ComponentTypeByte, ComponentTypeUnsignedByte, ComponentTypeShort,
		ComponentTypeUnsignedShort, ComponentTypeUnsignedInt, ComponentTypeFloat:
		return c, nil
	}
	return 0, &InvalidEnumCodeError{Domain: "componentType", Value: code}
}

// ByteSize returns the size of one component in bytes.
func (c ComponentType) ByteSize() int {
	switch c {
	case ComponentTypeByte, ComponentTypeUnsignedByte:
		return 1
	case ComponentTypeShort, ComponentTypeUnsignedShort:
		return 2
	case ComponentTypeUnsignedInt, ComponentTypeFloat:
		return 4
	default:
		return 0
	}
}

func (c ComponentType) String() string {
	switch c {
	case ComponentTypeByte:
		return "BYTE"
	case ComponentTypeUnsignedByte:
		return "UNSIGNED_BYTE"
	case ComponentTypeShort:
		return "SHORT"
	case ComponentTypeUnsignedShort:
		return "UNSIGNED_SHORT"
	case ComponentTypeUnsignedInt:
		return "UNSIGNED_INT"
	case ComponentTypeFloat:
		return "FLOAT"
	default:
		return fmt.Sprintf("ComponentType(%d)", int(c))
	}
}

// --- Accessor Type ---

// AccessorType is the element shape tag of an accessor ("SCALAR", "VEC3", ...).
type AccessorType string

const (
	AccessorTypeScalar AccessorType = "SCALAR"
	AccessorTypeVec2   AccessorType = "VEC2"
	AccessorTypeVec3   AccessorType = "VEC3"
	AccessorTypeVec4   AccessorType = "VEC4"
	AccessorTypeMat2   AccessorType = "MAT2"
	AccessorTypeMat3   AccessorType = "MAT3"
	AccessorTypeMat4   AccessorType = "MAT4"
)

// ComponentCount returns how many components make up one element of this type.
// Unknown tags fail with ErrInvalidAccessorType.
func (t AccessorType) ComponentCount() (int, error) {
	switch t {
	case AccessorTypeScalar:
		return 1, nil
	case AccessorTypeVec2:
		return 2, nil
	case AccessorTypeVec3:
		return 3, nil
	case AccessorTypeVec4, AccessorTypeMat2:
		return 4, nil
	case AccessorTypeMat3:
		return 9, nil
	case AccessorTypeMat4:
		return 16, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidAccessorType, string(t))
	}
}

// --- Primitive Mode ---

// PrimitiveMode is the topology of a mesh primitive.
type PrimitiveMode int

const (
	PrimitiveModePoints        PrimitiveMode = 0
	PrimitiveModeLines         PrimitiveMode = 1
	PrimitiveModeLineLoop      PrimitiveMode = 2
	PrimitiveModeLineStrip     PrimitiveMode = 3
	PrimitiveModeTriangles     PrimitiveMode = 4
	PrimitiveModeTriangleStrip PrimitiveMode = 5
	PrimitiveModeTriangleFan   PrimitiveMode = 6
)

// ParsePrimitiveMode validates a raw primitive mode code (0 through 6).
func ParsePrimitiveMode(code int) (PrimitiveMode, error) {
	if code < int(PrimitiveModePoints) || code > int(PrimitiveModeTriangleFan) {
		return 0, &InvalidEnumCodeError{Domain: "primitiveMode", Value: code}
	}
	return PrimitiveMode(code), nil
}

func (m PrimitiveMode) String() string {
	switch m {
	case PrimitiveModePoints:
		return "POINTS"
	case PrimitiveModeLines:
		return "LINES"
	case PrimitiveModeLineLoop:
		return "LINE_LOOP"
	case PrimitiveModeLineStrip:
		return "LINE_STRIP"
	case PrimitiveModeTriangles:
		return "TRIANGLES"
	case PrimitiveModeTriangleStrip:
		return "TRIANGLE_STRIP"
	case PrimitiveModeTriangleFan:
		return "TRIANGLE_FAN"
	default:
		return fmt.Sprintf("PrimitiveMode(%d)", int(m))
	}
}

// --- Sampler Filter ---

// Filter is a texture magnification or minification filter.
type Filter int

const (
	FilterNearest              Filter = 9728
	FilterLinear               Filter = 9729
	FilterNearestMipmapNearest Filter = 9984
	FilterLinearMipmapNearest  Filter = 9985
	FilterNearestMipmapLinear  Filter = 9986
	FilterLinearMipmapLinear   Filter = 9987
)

// ParseFilter validates a raw sampler filter code.
func ParseFilter(code int) (Filter, error) {
	switch f := Filter(code); f {
	case FilterNearest, FilterLinear, FilterNearestMipmapNearest,
		FilterLinearMipmapNearest, FilterNearestMipmapLinear, FilterLinearMipmapLinear:
		return f, nil
	}
	return 0, &InvalidEnumCodeError{Domain: "filter", Value: code}
}

// UsesMipmaps reports whether the filter samples between mip levels.
func (f Filter) UsesMipmaps() bool {
	return f >= FilterNearestMipmapNearest && f <= FilterLinearMipmapLinear
}

func (f Filter) String() string {
	switch f {
	case FilterNearest:
		return "NEAREST"
	case FilterLinear:
		return "LINEAR"
	case FilterNearestMipmapNearest:
		return "NEAREST_MIPMAP_NEAREST"
	case FilterLinearMipmapNearest:
		return "LINEAR_MIPMAP_NEAREST"
	case FilterNearestMipmapLinear:
		return "NEAREST_MIPMAP_LINEAR"
	case FilterLinearMipmapLinear:
		return "LINEAR_MIPMAP_LINEAR"
	default:
		return fmt.Sprintf("Filter(%d)", int(f))
	}
}

// --- Sampler Wrap Mode ---

// WrapMode is a texture coordinate wrapping mode.
type WrapMode int

const (
	WrapModeClampToEdge    WrapMode = 33071
	WrapModeMirroredRepeat WrapMode = 33648
	WrapModeRepeat         WrapMode = 10497
)

// ParseWrapMode validates a raw sampler wrap code.
func ParseWrapMode(code int) (WrapMode, error) {
	switch w := WrapMode(code); w {
	case WrapModeClampToEdge, WrapModeMirroredRepeat, WrapModeRepeat:
		return w, nil
	}
	return 0, &InvalidEnumCodeError{Domain: "wrapMode", Value: code}
}

func (w WrapMode) String() string {
	switch w {
	case WrapModeClampToEdge:
		return "CLAMP_TO_EDGE"
	case WrapModeMirroredRepeat:
		return "MIRRORED_REPEAT"
	case WrapModeRepeat:
		return "REPEAT"
	default:
		return fmt.Sprintf("WrapMode(%d)", int(w))
	}
}

// --- Buffer View Target ---

// BufferViewTarget is the GPU buffer usage hint of a buffer view.
type BufferViewTarget int

const (
	BufferViewTargetArrayBuffer        BufferViewTarget = 34962
	BufferViewTargetElementArrayBuffer BufferViewTarget = 34963
)

// ParseBufferViewTarget validates a raw buffer view target code.
func ParseBufferViewTarget(code int) (BufferViewTarget, error) {
	switch t := BufferViewTarget(code); t {
	case BufferViewTargetArrayBuffer, BufferViewTargetElementArrayBuffer:
		return t, nil
	}
	return 0, &InvalidEnumCodeError{Domain: "bufferViewTarget", Value: code}
}

func (t BufferViewTarget) String() string {
	switch t {
	case BufferViewTargetArrayBuffer:
		return "ARRAY_BUFFER"
	case BufferViewTargetElementArrayBuffer:
		return "ELEMENT_ARRAY_BUFFER"
	default:
		return fmt.Sprintf("BufferViewTarget(%d)", int(t))
	}
}

// --- Alpha Mode ---

// AlphaMode is the alpha rendering mode of a material.
type AlphaMode string

const (
	AlphaModeOpaque AlphaMode = "OPAQUE"
	AlphaModeMask   AlphaMode = "MASK"
	AlphaModeBlend  AlphaMode = "BLEND"
)

// ParseAlphaMode validates an alphaMode tag. The second return value is false for unknown tags.
func ParseAlphaMode(s string) (AlphaMode, bool) {
	switch m := AlphaMode(s); m {
	case AlphaModeOpaque, AlphaModeMask, AlphaModeBlend:
		return m, true
	}
	return "", false
}

// --- Animation ---

// Animation interpolation tags.
const (
	InterpolationLinear      = "LINEAR"
	InterpolationStep        = "STEP"
	InterpolationCubicSpline = "CUBICSPLINE"
)

// Animation target paths.
const (
	AnimationPathTranslation = "translation"
	AnimationPathRotation    = "rotation"
	AnimationPathScale       = "scale"
	AnimationPathWeights     = "weights"
)

// Camera projection types.
const (
	CameraTypePerspective  = "perspective"
	CameraTypeOrthographic = "orthographic"
)
