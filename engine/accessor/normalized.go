package accessor

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/Carmen-Shannon/oxy-gltf/engine/gltf"
)

func (r *reader) ReadFloatsNormalized(accessorIndex int) ([]float32, error) {
	data, acc, err := r.elements(accessorIndex)
	if err != nil {
		return nil, err
	}

	size := acc.ComponentType.ByteSize()
	result := make([]float32, len(data)/size)

	switch acc.ComponentType {
	case gltf.ComponentTypeFloat:
		for i := range result {
			result[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
		}
	case gltf.ComponentTypeUnsignedByte:
		for i := range result {
			result[i] = float32(data[i]) / 255
		}
	case gltf.ComponentTypeByte:
		for i := range result {
			result[i] = max(float32(int8(data[i]))/127, -1)
		}
	case gltf.ComponentTypeUnsignedShort:
		for i := range result {
			result[i] = float32(binary.LittleEndian.Uint16(data[i*2:])) / 65535
		}
	case gltf.ComponentTypeShort:
		for i := range result {
			result[i] = max(float32(int16(binary.LittleEndian.Uint16(data[i*2:])))/32767, -1)
		}
	default:
		return nil, fmt.Errorf("accessor %d: %w: %s cannot be normalized", accessorIndex, ErrTypeMismatch, acc.ComponentType)
	}
	return result, nil
}
