// Package accessor reads typed elements out of buffer bytes that the caller has already loaded.
// Element locations come from the resolver package; interleaved buffer views are honored through
// their byteStride.
package accessor

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-gltf/engine/gltf"
	"github.com/Carmen-Shannon/oxy-gltf/engine/resolver"
)

// Errors returned by typed reads.
var (
	// ErrTypeMismatch is returned when the accessor's type or component type does not match the read.
	ErrTypeMismatch = errors.New("accessor type mismatch")

	// ErrMissingBufferData is returned when no bytes were supplied for the referenced buffer.
	ErrMissingBufferData = errors.New("buffer data not loaded")
)

// reader is the implementation of the Reader interface.
type reader struct {
	res     resolver.Resolver
	buffers [][]byte
}

// Reader defines the public-facing interface for typed accessor reads.
// Every read copies its result, so the returned slices never alias the buffer bytes.
type Reader interface {
	// ReadBytes returns the raw bytes of every element, packed without stride.
	//
	// Parameters:
	//   - accessorIndex: the index of the accessor
	//
	// Returns:
	//   - []byte: Count tightly packed elements
	//   - error: error if the accessor cannot be resolved or its data exceeds the buffer
	ReadBytes(accessorIndex int) ([]byte, error)

	// ReadScalars reads a SCALAR FLOAT accessor.
	//
	// Parameters:
	//   - accessorIndex: the index of the accessor
	//
	// Returns:
	//   - []float32: the scalar data
	//   - error: ErrTypeMismatch or a resolution error
	ReadScalars(accessorIndex int) ([]float32, error)

	// ReadVec2 reads a VEC2 FLOAT accessor.
	//
	// Parameters:
	//   - accessorIndex: the index of the accessor
	//
	// Returns:
	//   - [][2]float32: the vec2 data
	//   - error: ErrTypeMismatch or a resolution error
	ReadVec2(accessorIndex int) ([][2]float32, error)

	// ReadVec3 reads a VEC3 FLOAT accessor.
	//
	// Parameters:
	//   - accessorIndex: the index of the accessor
	//
	// Returns:
	//   - [][3]float32: the vec3 data
	//   - error: ErrTypeMismatch or a resolution error
	ReadVec3(accessorIndex int) ([][3]float32, error)

	// ReadVec4 reads a VEC4 FLOAT accessor.
	//
	// Parameters:
	//   - accessorIndex: the index of the accessor
	//
	// Returns:
	//   - [][4]float32: the vec4 data
	//   - error: ErrTypeMismatch or a resolution error
	ReadVec4(accessorIndex int) ([][4]float32, error)

	// ReadMat4 reads a MAT4 FLOAT accessor (column-major), e.g. inverse bind matrices.
	//
	// Parameters:
	//   - accessorIndex: the index of the accessor
	//
	// Returns:
	//   - [][16]float32: the matrices
	//   - error: ErrTypeMismatch or a resolution error
	ReadMat4(accessorIndex int) ([][16]float32, error)

	// ReadFloatsNormalized reads every component of any accessor as float32, flattened.
	// Integer components are mapped to [0, 1] (unsigned) or [-1, 1] (signed) as the format defines
	// for normalized data; FLOAT components pass through.
	//
	// Parameters:
	//   - accessorIndex: the index of the accessor
	//
	// Returns:
	//   - []float32: Count * components values
	//   - error: ErrTypeMismatch for UNSIGNED_INT, or a resolution error
	ReadFloatsNormalized(accessorIndex int) ([]float32, error)

	// ReadIndices reads a SCALAR index accessor, widening UNSIGNED_BYTE and UNSIGNED_SHORT.
	//
	// Parameters:
	//   - accessorIndex: the index of the accessor
	//
	// Returns:
	//   - []uint32: the indices
	//   - error: ErrTypeMismatch or a resolution error
	ReadIndices(accessorIndex int) ([]uint32, error)

	// ReadJoints reads a VEC4 JOINTS_n accessor of UNSIGNED_BYTE or UNSIGNED_SHORT.
	//
	// Parameters:
	//   - accessorIndex: the index of the accessor
	//
	// Returns:
	//   - [][4]uint32: the joint indices
	//   - error: ErrTypeMismatch or a resolution error
	ReadJoints(accessorIndex int) ([][4]uint32, error)
}

var _ Reader = &reader{}

// NewReader creates a Reader over a resolver and the bytes of every buffer of its document.
//
// Parameters:
//   - res: the resolver for the document
//   - buffers: buffer contents indexed like the document's buffers
//
// Returns:
//   - Reader: a new instance of Reader
func NewReader(res resolver.Resolver, buffers [][]byte) Reader {
	return &reader{res: res, buffers: buffers}
}

func (r *reader) ReadBytes(accessorIndex int) ([]byte, error) {
	data, _, err := r.elements(accessorIndex)
	return data, err
}

// elements resolves an accessor and copies its elements out of the buffer, dropping any stride.
func (r *reader) elements(accessorIndex int) ([]byte, *gltf.Accessor, error) {
	s, err := r.res.Attribute(accessorIndex)
	if err != nil {
		return nil, nil, err
	}

	doc := r.res.Document()
	acc, _ := doc.Accessor(accessorIndex)
	view, _ := doc.BufferView(*acc.BufferView)

	if s.Buffer >= len(r.buffers) || r.buffers[s.Buffer] == nil {
		return nil, nil, fmt.Errorf("accessor %d: buffer %d: %w", accessorIndex, s.Buffer, ErrMissingBufferData)
	}
	buf := r.buffers[s.Buffer]

	if acc.Count == 0 {
		return []byte{}, acc, nil
	}

	elementSize := s.Length / acc.Count
	stride := elementSize
	if view.Stride != nil && *view.Stride > 0 {
		stride = *view.Stride
	}

	span := (acc.Count-1)*stride + elementSize
	if s.Offset+span > len(buf) {
		return nil, nil, fmt.Errorf("accessor %d: %w: needs %d bytes at offset %d, buffer %d has %d",
			accessorIndex, resolver.ErrRangeOutOfBounds, span, s.Offset, s.Buffer, len(buf))
	}

	result := make([]byte, s.Length)
	if stride == elementSize {
		copy(result, buf[s.Offset:s.End()])
		return result, acc, nil
	}
	for i := 0; i < acc.Count; i++ {
		src := s.Offset + i*stride
		dst := i * elementSize
		copy(result[dst:dst+elementSize], buf[src:src+elementSize])
	}
	return result, acc, nil
}

// readFloat decodes a FLOAT accessor whose elements have the Go shape T.
func readFloat[T any](r *reader, accessorIndex int, typ gltf.AccessorType) ([]T, error) {
	data, acc, err := r.elements(accessorIndex)
	if err != nil {
		return nil, err
	}
	if acc.Type != typ || acc.ComponentType != gltf.ComponentTypeFloat {
		return nil, fmt.Errorf("accessor %d: %w: want %s FLOAT, got %s %s",
			accessorIndex, ErrTypeMismatch, typ, acc.Type, acc.ComponentType)
	}

	result := make([]T, acc.Count)
	if err := binary.Read(bytes.NewReader(data), binary.LittleEndian, result); err != nil {
		return nil, fmt.Errorf("accessor %d: %w", accessorIndex, err)
	}
	return result, nil
}

func (r *reader) ReadScalars(accessorIndex int) ([]float32, error) {
	return readFloat[float32](r, accessorIndex, gltf.AccessorTypeScalar)
}

func (r *reader) ReadVec2(accessorIndex int) ([][2]float32, error) {
	return readFloat[[2]float32](r, accessorIndex, gltf.AccessorTypeVec2)
}

func (r *reader) ReadVec3(accessorIndex int) ([][3]float32, error) {
	return readFloat[[3]float32](r, accessorIndex, gltf.AccessorTypeVec3)
}

func (r *reader) ReadVec4(accessorIndex int) ([][4]float32, error) {
	return readFloat[[4]float32](r, accessorIndex, gltf.AccessorTypeVec4)
}

func (r *reader) ReadMat4(accessorIndex int) ([][16]float32, error) {
	return readFloat[[16]float32](r, accessorIndex, gltf.AccessorTypeMat4)
}

func (r *reader) ReadIndices(accessorIndex int) ([]uint32, error) {
	data, acc, err := r.elements(accessorIndex)
	if err != nil {
		return nil, err
	}
	if acc.Type != gltf.AccessorTypeScalar {
		return nil, fmt.Errorf("accessor %d: %w: index accessor is %s, want SCALAR", accessorIndex, ErrTypeMismatch, acc.Type)
	}

	result := make([]uint32, acc.Count)
	switch acc.ComponentType {
	case gltf.ComponentTypeUnsignedByte:
		for i := range result {
			result[i] = uint32(data[i])
		}
	case gltf.ComponentTypeUnsignedShort:
		for i := range result {
			result[i] = uint32(binary.LittleEndian.Uint16(data[i*2:]))
		}
	case gltf.ComponentTypeUnsignedInt:
		for i := range result {
			result[i] = binary.LittleEndian.Uint32(data[i*4:])
		}
	default:
		return nil, fmt.Errorf("accessor %d: %w: unsupported index component type %s", accessorIndex, ErrTypeMismatch, acc.ComponentType)
	}
	return result, nil
}

func (r *reader) ReadJoints(accessorIndex int) ([][4]uint32, error) {
	data, acc, err := r.elements(accessorIndex)
	if err != nil {
		return nil, err
	}
	if acc.Type != gltf.AccessorTypeVec4 {
		return nil, fmt.Errorf("accessor %d: %w: joints accessor is %s, want VEC4", accessorIndex, ErrTypeMismatch, acc.Type)
	}

	result := make([][4]uint32, acc.Count)
	switch acc.ComponentType {
	case gltf.ComponentTypeUnsignedByte:
		for i := range result {
			v := data[i*4 : i*4+4]
			result[i] = [4]uint32{uint32(v[0]), uint32(v[1]), uint32(v[2]), uint32(v[3])}
		}
	case gltf.ComponentTypeUnsignedShort:
		for i := range result {
			for c := 0; c < 4; c++ {
				result[i][c] = uint32(binary.LittleEndian.Uint16(data[i*8+c*2:]))
			}
		}
	default:
		return nil, fmt.Errorf("accessor %d: %w: unsupported joints component type %s", accessorIndex, ErrTypeMismatch, acc.ComponentType)
	}
	return result, nil
}
