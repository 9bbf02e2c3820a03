package accessor

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-gltf/engine/gltf"
	"github.com/Carmen-Shannon/oxy-gltf/engine/resolver"
)

func ptr[T any](v T) *T {
	return &v
}

// le encodes values as little-endian bytes.
func le(t *testing.T, values ...any) []byte {
	t.Helper()
	var buf bytes.Buffer
	for _, v := range values {
		if err := binary.Write(&buf, binary.LittleEndian, v); err != nil {
			t.Fatalf("binary.Write: %v", err)
		}
	}
	return buf.Bytes()
}

// newTestReader builds a single-buffer document around data with the given views and accessors.
func newTestReader(data []byte, views []gltf.BufferView, accessors []gltf.Accessor) Reader {
	doc := &gltf.Document{
		Buffers:     []gltf.Buffer{{ByteLength: len(data)}},
		BufferViews: views,
		Accessors:   accessors,
	}
	return NewReader(resolver.New(doc), [][]byte{data})
}

func TestReadInterleavedVec3(t *testing.T) {
	data := le(t,
		[3]float32{1, 2, 3}, [3]float32{0, 1, 0},
		[3]float32{4, 5, 6}, [3]float32{0, 0, 1},
	)
	r := newTestReader(data,
		[]gltf.BufferView{{Buffer: 0, ByteLength: 48, Stride: ptr(24)}},
		[]gltf.Accessor{
			{BufferView: ptr(0), ComponentType: gltf.ComponentTypeFloat, Count: 2, Type: gltf.AccessorTypeVec3},
			{BufferView: ptr(0), ByteOffset: 12, ComponentType: gltf.ComponentTypeFloat, Count: 2, Type: gltf.AccessorTypeVec3},
		},
	)

	positions, err := r.ReadVec3(0)
	if err != nil {
		t.Fatalf("ReadVec3(0) failed: %v", err)
	}
	if positions[0] != [3]float32{1, 2, 3} || positions[1] != [3]float32{4, 5, 6} {
		t.Fatalf("positions = %v", positions)
	}

	normals, err := r.ReadVec3(1)
	if err != nil {
		t.Fatalf("ReadVec3(1) failed: %v", err)
	}
	if normals[0] != [3]float32{0, 1, 0} || normals[1] != [3]float32{0, 0, 1} {
		t.Fatalf("normals = %v", normals)
	}

	raw, err := r.ReadBytes(1)
	if err != nil || len(raw) != 24 {
		t.Fatalf("ReadBytes = %d bytes, %v", len(raw), err)
	}
}

func TestReadFloatShapes(t *testing.T) {
	identity := [16]float32{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}
	data := le(t, []float32{0.5, 1.5}, [2]float32{1, 2}, [4]float32{1, 2, 3, 4}, identity)
	r := newTestReader(data,
		[]gltf.BufferView{
			{Buffer: 0, ByteOffset: 0, ByteLength: 8},
			{Buffer: 0, ByteOffset: 8, ByteLength: 8},
			{Buffer: 0, ByteOffset: 16, ByteLength: 16},
			{Buffer: 0, ByteOffset: 32, ByteLength: 64},
		},
		[]gltf.Accessor{
			{BufferView: ptr(0), ComponentType: gltf.ComponentTypeFloat, Count: 2, Type: gltf.AccessorTypeScalar},
			{BufferView: ptr(1), ComponentType: gltf.ComponentTypeFloat, Count: 1, Type: gltf.AccessorTypeVec2},
			{BufferView: ptr(2), ComponentType: gltf.ComponentTypeFloat, Count: 1, Type: gltf.AccessorTypeVec4},
			{BufferView: ptr(3), ComponentType: gltf.ComponentTypeFloat, Count: 1, Type: gltf.AccessorTypeMat4},
		},
	)

	scalars, err := r.ReadScalars(0)
	if err != nil || len(scalars) != 2 || scalars[1] != 1.5 {
		t.Fatalf("scalars = %v, %v", scalars, err)
	}
	vec2, err := r.ReadVec2(1)
	if err != nil || vec2[0] != [2]float32{1, 2} {
		t.Fatalf("vec2 = %v, %v", vec2, err)
	}
	vec4, err := r.ReadVec4(2)
	if err != nil || vec4[0] != [4]float32{1, 2, 3, 4} {
		t.Fatalf("vec4 = %v, %v", vec4, err)
	}
	mat, err := r.ReadMat4(3)
	if err != nil || mat[0] != identity {
		t.Fatalf("mat4 = %v, %v", mat, err)
	}
}

func TestReadIndices(t *testing.T) {
	data := le(t, []uint8{0, 1, 2, 0}, []uint16{3, 4, 65535, 0}, []uint32{7, 70000})
	r := newTestReader(data,
		[]gltf.BufferView{
			{Buffer: 0, ByteOffset: 0, ByteLength: 4},
			{Buffer: 0, ByteOffset: 4, ByteLength: 8},
			{Buffer: 0, ByteOffset: 12, ByteLength: 8},
		},
		[]gltf.Accessor{
			{BufferView: ptr(0), ComponentType: gltf.ComponentTypeUnsignedByte, Count: 3, Type: gltf.AccessorTypeScalar},
			{BufferView: ptr(1), ComponentType: gltf.ComponentTypeUnsignedShort, Count: 3, Type: gltf.AccessorTypeScalar},
			{BufferView: ptr(2), ComponentType: gltf.ComponentTypeUnsignedInt, Count: 2, Type: gltf.AccessorTypeScalar},
			{BufferView: ptr(2), ComponentType: gltf.ComponentTypeFloat, Count: 2, Type: gltf.AccessorTypeScalar},
		},
	)

	tests := []struct {
		index int
		want  []uint32
	}{
		{0, []uint32{0, 1, 2}},
		{1, []uint32{3, 4, 65535}},
		{2, []uint32{7, 70000}},
	}
	for _, tt := range tests {
		got, err := r.ReadIndices(tt.index)
		if err != nil {
			t.Fatalf("ReadIndices(%d) failed: %v", tt.index, err)
		}
		if len(got) != len(tt.want) {
			t.Fatalf("ReadIndices(%d) = %v, want %v", tt.index, got, tt.want)
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Fatalf("ReadIndices(%d) = %v, want %v", tt.index, got, tt.want)
			}
		}
	}

	if _, err := r.ReadIndices(3); !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("float indices: error = %v, want ErrTypeMismatch", err)
	}
}

func TestReadJoints(t *testing.T) {
	data := le(t, [4]uint8{1, 2, 3, 4}, [4]uint16{10, 20, 300, 4000})
	r := newTestReader(data,
		[]gltf.BufferView{
			{Buffer: 0, ByteOffset: 0, ByteLength: 4},
			{Buffer: 0, ByteOffset: 4, ByteLength: 8},
		},
		[]gltf.Accessor{
			{BufferView: ptr(0), ComponentType: gltf.ComponentTypeUnsignedByte, Count: 1, Type: gltf.AccessorTypeVec4},
			{BufferView: ptr(1), ComponentType: gltf.ComponentTypeUnsignedShort, Count: 1, Type: gltf.AccessorTypeVec4},
			{BufferView: ptr(1), ComponentType: gltf.ComponentTypeUnsignedShort, Count: 1, Type: gltf.AccessorTypeVec2},
		},
	)

	small, err := r.ReadJoints(0)
	if err != nil || small[0] != [4]uint32{1, 2, 3, 4} {
		t.Fatalf("u8 joints = %v, %v", small, err)
	}
	wide, err := r.ReadJoints(1)
	if err != nil || wide[0] != [4]uint32{10, 20, 300, 4000} {
		t.Fatalf("u16 joints = %v, %v", wide, err)
	}
	if _, err := r.ReadJoints(2); !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("VEC2 joints: error = %v, want ErrTypeMismatch", err)
	}
}

func TestReadFloatsNormalized(t *testing.T) {
	data := le(t,
		[]uint8{0, 255, 51, 0},
		[]int8{-128, 127, 0, 0},
		[]uint16{0, 65535},
		[]int16{-32768, 32767},
		[]float32{0.25},
		[]uint32{1},
	)
	r := newTestReader(data,
		[]gltf.BufferView{{Buffer: 0, ByteLength: len(data)}},
		[]gltf.Accessor{
			{BufferView: ptr(0), ComponentType: gltf.ComponentTypeUnsignedByte, Count: 3, Type: gltf.AccessorTypeScalar, Normalized: true},
			{BufferView: ptr(0), ByteOffset: 4, ComponentType: gltf.ComponentTypeByte, Count: 1, Type: gltf.AccessorTypeVec2, Normalized: true},
			{BufferView: ptr(0), ByteOffset: 8, ComponentType: gltf.ComponentTypeUnsignedShort, Count: 1, Type: gltf.AccessorTypeVec2, Normalized: true},
			{BufferView: ptr(0), ByteOffset: 12, ComponentType: gltf.ComponentTypeShort, Count: 1, Type: gltf.AccessorTypeVec2, Normalized: true},
			{BufferView: ptr(0), ByteOffset: 16, ComponentType: gltf.ComponentTypeFloat, Count: 1, Type: gltf.AccessorTypeScalar},
			{BufferView: ptr(0), ByteOffset: 20, ComponentType: gltf.ComponentTypeUnsignedInt, Count: 1, Type: gltf.AccessorTypeScalar},
		},
	)

	tests := []struct {
		index int
		want  []float32
	}{
		{0, []float32{0, 1, 0.2}},
		{1, []float32{-1, 1}},
		{2, []float32{0, 1}},
		{3, []float32{-1, 1}},
		{4, []float32{0.25}},
	}
	for _, tt := range tests {
		got, err := r.ReadFloatsNormalized(tt.index)
		if err != nil {
			t.Fatalf("ReadFloatsNormalized(%d) failed: %v", tt.index, err)
		}
		if len(got) != len(tt.want) {
			t.Fatalf("ReadFloatsNormalized(%d) = %v, want %v", tt.index, got, tt.want)
		}
		for i := range got {
			if math.Abs(float64(got[i]-tt.want[i])) > 1e-6 {
				t.Fatalf("ReadFloatsNormalized(%d) = %v, want %v", tt.index, got, tt.want)
			}
		}
	}

	if _, err := r.ReadFloatsNormalized(5); !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("UNSIGNED_INT: error = %v, want ErrTypeMismatch", err)
	}
}

func TestReadErrors(t *testing.T) {
	data := le(t, [3]float32{1, 2, 3})
	views := []gltf.BufferView{{Buffer: 0, ByteLength: 12, Stride: ptr(16)}}
	accessors := []gltf.Accessor{
		{BufferView: ptr(0), ComponentType: gltf.ComponentTypeFloat, Count: 1, Type: gltf.AccessorTypeVec3},
		{BufferView: ptr(0), ComponentType: gltf.ComponentTypeFloat, Count: 3, Type: gltf.AccessorTypeScalar},
		{ComponentType: gltf.ComponentTypeFloat, Count: 1, Type: gltf.AccessorTypeVec3},
	}
	r := newTestReader(data, views, accessors)

	if _, err := r.ReadVec2(0); !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("VEC3 read as VEC2: error = %v, want ErrTypeMismatch", err)
	}
	if _, err := r.ReadScalars(1); !errors.Is(err, resolver.ErrRangeOutOfBounds) {
		t.Fatalf("strided overrun: error = %v, want ErrRangeOutOfBounds", err)
	}
	if _, err := r.ReadVec3(2); !errors.Is(err, resolver.ErrMissingBufferView) {
		t.Fatalf("no view: error = %v, want ErrMissingBufferView", err)
	}

	doc := &gltf.Document{
		Buffers:     []gltf.Buffer{{URI: "external.bin", ByteLength: 12}},
		BufferViews: []gltf.BufferView{{Buffer: 0, ByteLength: 12}},
		Accessors:   accessors[:1],
	}
	if _, err := NewReader(resolver.New(doc), nil).ReadVec3(0); !errors.Is(err, ErrMissingBufferData) {
		t.Fatalf("missing buffer: error = %v, want ErrMissingBufferData", err)
	}
}
