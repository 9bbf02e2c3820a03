package importer

import (
	"fmt"
	"slices"

	"github.com/Carmen-Shannon/oxy-gltf/engine/accessor"
	"github.com/Carmen-Shannon/oxy-gltf/engine/gltf"
	"github.com/go-gl/mathgl/mgl32"
)

// Primitive holds the vertex streams of one mesh primitive, read from the imported buffers.
// Optional streams are nil when the primitive does not carry the attribute.
type Primitive struct {
	Mode     gltf.PrimitiveMode
	Material *int

	Positions [][3]float32
	Normals   [][3]float32
	Tangents  [][4]float32
	TexCoords [][2]float32
	Colors    [][4]float32
	Joints    [][4]uint32
	Weights   [][4]float32

	// Indices is nil for non-indexed primitives.
	Indices []uint32
}

// Primitive reads the standard attributes (POSITION, NORMAL, TANGENT, TEXCOORD_0, COLOR_0,
// JOINTS_0, WEIGHTS_0) and the indices of a mesh primitive.
//
// Parameters:
//   - meshIndex: the index of the mesh
//   - primitiveIndex: the index of the primitive within the mesh
//
// Returns:
//   - *Primitive: the vertex streams
//   - error: error if the primitive has no POSITION or an attribute cannot be read
func (im *Import) Primitive(meshIndex, primitiveIndex int) (*Primitive, error) {
	mesh, err := im.Document.Mesh(meshIndex)
	if err != nil {
		return nil, err
	}
	if primitiveIndex < 0 || primitiveIndex >= len(mesh.Primitives) {
		return nil, &gltf.IndexOutOfRangeError{Kind: "primitives", Index: primitiveIndex, Len: len(mesh.Primitives)}
	}
	prim := &mesh.Primitives[primitiveIndex]

	out, err := readPrimitive(im.Document, im.Reader(), prim)
	if err != nil {
		return nil, fmt.Errorf("mesh %d primitive %d: %w", meshIndex, primitiveIndex, err)
	}
	return out, nil
}

func readPrimitive(doc *gltf.Document, r accessor.Reader, prim *gltf.Primitive) (*Primitive, error) {
	out := &Primitive{Mode: prim.Mode, Material: prim.Material}

	posAccessor, ok := prim.Attributes["POSITION"]
	if !ok {
		return nil, fmt.Errorf("primitive has no POSITION attribute")
	}
	var err error
	if out.Positions, err = r.ReadVec3(posAccessor); err != nil {
		return nil, fmt.Errorf("failed to read positions: %w", err)
	}

	if idx, ok := prim.Attributes["NORMAL"]; ok {
		if out.Normals, err = r.ReadVec3(idx); err != nil {
			return nil, fmt.Errorf("failed to read normals: %w", err)
		}
	}
	if idx, ok := prim.Attributes["TANGENT"]; ok {
		if out.Tangents, err = r.ReadVec4(idx); err != nil {
			return nil, fmt.Errorf("failed to read tangents: %w", err)
		}
	}
	if idx, ok := prim.Attributes["TEXCOORD_0"]; ok {
		if _, err := attributeComponents(doc, "TEXCOORD_0", idx, gltf.AccessorTypeVec2); err != nil {
			return nil, err
		}
		values, err := r.ReadFloatsNormalized(idx)
		if err != nil {
			return nil, fmt.Errorf("failed to read texcoords: %w", err)
		}
		out.TexCoords = make([][2]float32, len(values)/2)
		for i := range out.TexCoords {
			out.TexCoords[i] = [2]float32{values[i*2], values[i*2+1]}
		}
	}
	if idx, ok := prim.Attributes["COLOR_0"]; ok {
		if out.Colors, err = readColors(doc, r, idx); err != nil {
			return nil, fmt.Errorf("failed to read colors: %w", err)
		}
	}
	if idx, ok := prim.Attributes["JOINTS_0"]; ok {
		if out.Joints, err = r.ReadJoints(idx); err != nil {
			return nil, fmt.Errorf("failed to read joints: %w", err)
		}
	}
	if idx, ok := prim.Attributes["WEIGHTS_0"]; ok {
		if _, err := attributeComponents(doc, "WEIGHTS_0", idx, gltf.AccessorTypeVec4); err != nil {
			return nil, err
		}
		values, err := r.ReadFloatsNormalized(idx)
		if err != nil {
			return nil, fmt.Errorf("failed to read weights: %w", err)
		}
		out.Weights = make([][4]float32, len(values)/4)
		for i := range out.Weights {
			out.Weights[i] = [4]float32(values[i*4 : i*4+4])
		}
	}

	if prim.Indices != nil {
		if out.Indices, err = r.ReadIndices(*prim.Indices); err != nil {
			return nil, fmt.Errorf("failed to read indices: %w", err)
		}
	}

	return out, nil
}

// readColors reads COLOR_0 as RGBA. VEC3 colors get an alpha of 1.
func readColors(doc *gltf.Document, r accessor.Reader, accessorIndex int) ([][4]float32, error) {
	components, err := attributeComponents(doc, "COLOR_0", accessorIndex, gltf.AccessorTypeVec3, gltf.AccessorTypeVec4)
	if err != nil {
		return nil, err
	}
	values, err := r.ReadFloatsNormalized(accessorIndex)
	if err != nil {
		return nil, err
	}

	colors := make([][4]float32, len(values)/components)
	for i := range colors {
		c := values[i*components:]
		colors[i] = [4]float32{c[0], c[1], c[2], 1}
		if components == 4 {
			colors[i][3] = c[3]
		}
	}
	return colors, nil
}

// attributeComponents returns the component count of an attribute's accessor, failing with
// accessor.ErrTypeMismatch unless its type is one of allowed.
func attributeComponents(doc *gltf.Document, semantic string, accessorIndex int, allowed ...gltf.AccessorType) (int, error) {
	acc, err := doc.Accessor(accessorIndex)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", semantic, err)
	}
	if !slices.Contains(allowed, acc.Type) {
		return 0, fmt.Errorf("%w: %s accessor %d is %s", accessor.ErrTypeMismatch, semantic, accessorIndex, acc.Type)
	}
	return acc.Type.ComponentCount()
}

// InverseBindMatrices reads the inverse bind matrices of a skin, one per joint.
// A skin without the accessor yields identity matrices.
//
// Parameters:
//   - skinIndex: the index of the skin
//
// Returns:
//   - []mgl32.Mat4: the matrices
//   - error: error if the skin or its accessor cannot be read
func (im *Import) InverseBindMatrices(skinIndex int) ([]mgl32.Mat4, error) {
	skin, err := im.Document.Skin(skinIndex)
	if err != nil {
		return nil, err
	}

	result := make([]mgl32.Mat4, len(skin.Joints))
	if skin.InverseBindMatrices == nil {
		for i := range result {
			result[i] = mgl32.Ident4()
		}
		return result, nil
	}

	mats, err := im.Reader().ReadMat4(*skin.InverseBindMatrices)
	if err != nil {
		return nil, fmt.Errorf("skin %d: %w", skinIndex, err)
	}
	if len(mats) < len(skin.Joints) {
		return nil, fmt.Errorf("skin %d: %d inverse bind matrices for %d joints", skinIndex, len(mats), len(skin.Joints))
	}
	for i := range result {
		result[i] = mgl32.Mat4(mats[i])
	}
	return result, nil
}

// AnimationSampler reads the keyframe times and flattened output values of an animation sampler.
//
// Parameters:
//   - animationIndex: the index of the animation
//   - samplerIndex: the index of the sampler within the animation
//
// Returns:
//   - []float32: the keyframe times in seconds
//   - []float32: the output values, flattened
//   - error: error if the sampler or its accessors cannot be read
func (im *Import) AnimationSampler(animationIndex, samplerIndex int) ([]float32, []float32, error) {
	anim, err := im.Document.Animation(animationIndex)
	if err != nil {
		return nil, nil, err
	}
	if samplerIndex < 0 || samplerIndex >= len(anim.Samplers) {
		return nil, nil, &gltf.IndexOutOfRangeError{Kind: "samplers", Index: samplerIndex, Len: len(anim.Samplers)}
	}
	sampler := anim.Samplers[samplerIndex]

	r := im.Reader()
	times, err := r.ReadScalars(sampler.Input)
	if err != nil {
		return nil, nil, fmt.Errorf("animation %d sampler %d input: %w", animationIndex, samplerIndex, err)
	}
	values, err := r.ReadFloatsNormalized(sampler.Output)
	if err != nil {
		return nil, nil, fmt.Errorf("animation %d sampler %d output: %w", animationIndex, samplerIndex, err)
	}
	return times, values, nil
}
