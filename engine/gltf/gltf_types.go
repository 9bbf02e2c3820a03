// Package gltf holds the typed glTF 2.0 document model.
// The types mirror the glTF 2.0 JSON schema after defaults and enum validation have been
// applied by the loader package. A Document is never mutated after it has been built, so it can
// be shared between goroutines without locking.
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html
package gltf

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-gltf/engine/uri"
)

// --- glTF Root Structure ---

// Document represents the root of a glTF document.
// Cross references between entities are plain indices into the slices below; use the lookup
// methods in document.go to dereference them.
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html#reference-gltf
type Document struct {
	// Asset contains metadata about the glTF asset, nil when the document omits it.
	Asset *Asset

	// Scene is the index of the default scene.
	Scene *int

	Accessors   []Accessor
	Buffers     []Buffer
	BufferViews []BufferView
	Images      []Image
	Samplers    []Sampler
	Textures    []Texture
	Scenes      []Scene
	Materials   []Material
	Meshes      []Mesh
	Nodes       []Node
	Cameras     []Camera
	Skins       []Skin
	Animations  []Animation

	// ExtensionsUsed lists extensions used by this asset.
	ExtensionsUsed []string

	// ExtensionsRequired lists extensions required to load this asset.
	ExtensionsRequired []string
}

// Asset contains metadata about the glTF asset.
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html#reference-asset
type Asset struct {
	Version    string
	MinVersion string
	Generator  string
	Copyright  string
}

// --- Buffer Data ---

// Buffer is a source of raw bytes, either inline (data URI), external, or the GLB binary chunk.
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html#reference-buffer
type Buffer struct {
	// URI is the data URI or relative path of the buffer. Empty for the GLB binary chunk.
	URI string

	// ByteLength is the declared length of the buffer.
	ByteLength int

	Name string
}

func (b Buffer) String() string {
	return fmt.Sprintf("Buffer{uri: %s, byteLength: %d, name: %q}", uri.TrimForDebug(b.URI), b.ByteLength, b.Name)
}

// BufferView is a byte sub-range of a buffer.
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html#reference-bufferview
type BufferView struct {
	// Buffer is the index of the buffer.
	Buffer int

	// ByteOffset is the offset into the buffer (default 0).
	ByteOffset int

	// ByteLength is the length of the view.
	ByteLength int

	// Stride is the distance between interleaved elements (JSON byteStride), nil when tightly packed.
	Stride *int

	// Target is the intended GPU buffer type.
	Target *BufferViewTarget

	Name string
}

// Accessor describes how to interpret a byte range as typed elements.
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html#reference-accessor
type Accessor struct {
	// BufferView is the index of the buffer view. Nil means all zeros (or sparse-only data).
	BufferView *int

	// ByteOffset is the offset within the buffer view (default 0).
	ByteOffset int

	ComponentType ComponentType

	// Normalized indicates integer data maps to [0, 1] or [-1, 1] (default false).
	Normalized bool

	// Count is the number of elements.
	Count int

	// Type is the element shape (SCALAR, VEC2, VEC3, VEC4, MAT2, MAT3, MAT4).
	Type AccessorType

	Max []float64
	Min []float64

	// Sparse is recognized but not applied; resolving a sparse accessor fails.
	Sparse *Sparse

	Name string
}

// Sparse describes a sparse override of an accessor's dense data.
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html#reference-accessor-sparse
type Sparse struct {
	Count   int
	Indices SparseIndices
	Values  SparseValues
}

// SparseIndices locates the indices of the overridden elements.
type SparseIndices struct {
	BufferView    int
	ByteOffset    int
	ComponentType ComponentType
}

// SparseValues locates the replacement element values.
type SparseValues struct {
	BufferView int
	ByteOffset int
}

// --- Images, Samplers and Textures ---

// Image is a texture image source. Exactly one of URI or BufferView is expected.
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html#reference-image
type Image struct {
	URI *string

	// MimeType is required by the format when BufferView is set.
	MimeType *string

	BufferView *int

	Name string
}

func (i Image) String() string {
	u := "<nil>"
	if i.URI != nil {
		u = uri.TrimForDebug(*i.URI)
	}
	m := "<nil>"
	if i.MimeType != nil {
		m = *i.MimeType
	}
	return fmt.Sprintf("Image{uri: %s, mimeType: %s, name: %q}", u, m, i.Name)
}

// Sampler defines texture sampling parameters.
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html#reference-sampler
type Sampler struct {
	MagFilter *Filter
	MinFilter *Filter

	// WrapS is the U wrapping mode (default REPEAT).
	WrapS WrapMode

	// WrapT is the V wrapping mode (default REPEAT).
	WrapT WrapMode

	Name string
}

// Texture combines an image and a sampler.
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html#reference-texture
type Texture struct {
	Sampler *int
	Source  *int
	Name    string
}

// --- Materials ---

// Material defines the appearance of a primitive.
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html#reference-material
type Material struct {
	Name string

	// PBRMetallicRoughness is always populated; absent JSON yields the format defaults.
	PBRMetallicRoughness PBRMetallicRoughness

	NormalTexture    *NormalTextureInfo
	OcclusionTexture *OcclusionTextureInfo
	EmissiveTexture  *TextureInfo

	// EmissiveFactor is the emissive color (default black).
	EmissiveFactor [3]float64

	// AlphaMode is OPAQUE, MASK or BLEND (default OPAQUE).
	AlphaMode AlphaMode

	// AlphaCutoff applies in MASK mode (default 0.5).
	AlphaCutoff float64

	DoubleSided bool
}

// PBRMetallicRoughness is the metallic-roughness material model.
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html#reference-material-pbrmetallicroughness
type PBRMetallicRoughness struct {
	// BaseColorFactor is the base color RGBA (default opaque white).
	BaseColorFactor [4]float64

	BaseColorTexture *TextureInfo

	// MetallicFactor is the metalness (default 1).
	MetallicFactor float64

	// RoughnessFactor is the roughness (default 1).
	RoughnessFactor float64

	// MetallicRoughnessTexture holds roughness in G and metalness in B.
	MetallicRoughnessTexture *TextureInfo
}

// TextureInfo references a texture and the UV set used to sample it.
type TextureInfo struct {
	Index int

	// TexCoord selects TEXCOORD_n (default 0).
	TexCoord int
}

// NormalTextureInfo references a normal map.
type NormalTextureInfo struct {
	TextureInfo

	// Scale multiplies the sampled XY normal (default 1).
	Scale float64
}

// OcclusionTextureInfo references an occlusion map.
type OcclusionTextureInfo struct {
	TextureInfo

	// Strength scales the occlusion effect (default 1).
	Strength float64
}

// --- Mesh Data ---

// Mesh is a set of primitives to be rendered.
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html#reference-mesh
type Mesh struct {
	Primitives []Primitive
	Weights    []float64
	Name       string
}

// Primitive is a drawable mesh part.
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html#reference-mesh-primitive
type Primitive struct {
	// Attributes maps semantic names (POSITION, NORMAL, TEXCOORD_0, ...) to accessor indices.
	Attributes map[string]int

	// Indices is the accessor index of the index buffer.
	Indices *int

	Material *int

	// Mode is the topology (default TRIANGLES).
	Mode PrimitiveMode

	// Targets are morph targets, each a semantic → accessor mapping.
	Targets []map[string]int
}

// --- Scene Graph ---

// Node is an element of the node hierarchy.
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html#reference-node
type Node struct {
	Camera   *int
	Children []int
	Skin     *int

	// Matrix is a column-major 4x4 local transform. Mutually exclusive with TRS.
	Matrix *[16]float64

	Mesh *int

	// Rotation is a unit quaternion (x, y, z, w).
	Rotation    *[4]float64
	Scale       *[3]float64
	Translation *[3]float64

	Weights []float64
	Name    string
}

// Scene is a set of root nodes.
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html#reference-scene
type Scene struct {
	Nodes []int
	Name  string
}

// Camera is a projection attached to nodes. Exactly one of Perspective or Orthographic is set,
// matching Type.
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html#reference-camera
type Camera struct {
	// Type is "perspective" or "orthographic".
	Type string

	Perspective  *Perspective
	Orthographic *Orthographic

	Name string
}

// Perspective holds the parameters of a perspective projection.
type Perspective struct {
	// AspectRatio is width over height; nil means the viewport's aspect ratio.
	AspectRatio *float64

	// YFov is the vertical field of view in radians.
	YFov float64

	// ZFar is the far clipping plane; nil means an infinite projection.
	ZFar *float64

	ZNear float64
}

// Orthographic holds the parameters of an orthographic projection.
type Orthographic struct {
	// XMag and YMag are half the width and height of the view volume.
	XMag float64
	YMag float64

	ZFar  float64
	ZNear float64
}

// --- Skeletal Animation ---

// Skin binds a mesh to a joint hierarchy.
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html#reference-skin
type Skin struct {
	// InverseBindMatrices is the index of a MAT4 accessor.
	InverseBindMatrices *int

	// Skeleton is the node index of the skeleton root.
	Skeleton *int

	// Joints are node indices.
	Joints []int

	Name string
}

// Animation is a set of keyframe channels.
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html#reference-animation
type Animation struct {
	Channels []AnimationChannel
	Samplers []AnimationSampler
	Name     string
}

// AnimationChannel connects a sampler to a node property.
type AnimationChannel struct {
	Sampler int
	Target  AnimationTarget
}

// AnimationTarget specifies the animated node and property path.
type AnimationTarget struct {
	Node *int

	// Path is translation, rotation, scale or weights.
	Path string
}

// AnimationSampler pairs keyframe times with output values.
type AnimationSampler struct {
	// Input is the accessor index of keyframe times.
	Input int

	// Output is the accessor index of keyframe values.
	Output int

	// Interpolation is LINEAR (default), STEP or CUBICSPLINE.
	Interpolation string
}
