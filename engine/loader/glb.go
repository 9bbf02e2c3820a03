package loader

import (
	"encoding/binary"
)

// GLB container constants.
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html#glb-file-format-specification
const (
	glbMagic      = 0x46546C67 // "glTF" in little-endian ASCII
	glbVersion    = 2
	glbHeaderSize = 12
	glbChunkSize  = 8
	glbChunkJSON  = 0x4E4F534A // "JSON" in little-endian ASCII
	glbChunkBIN   = 0x004E4942 // "BIN\0" in little-endian ASCII
)

// IsGLB reports whether data starts with the GLB magic number.
func IsGLB(data []byte) bool {
	return len(data) >= 4 && binary.LittleEndian.Uint32(data[:4]) == glbMagic
}

// SplitGLB validates a GLB container and returns its JSON and BIN chunks.
// Unknown chunk types are skipped as the format requires.
//
// Parameters:
//   - data: the complete GLB file contents
//
// Returns:
//   - []byte: the JSON chunk
//   - []byte: the BIN chunk, or nil when absent
//   - error: one of the ErrGLB... / ErrInvalidGLB... sentinels
func SplitGLB(data []byte) ([]byte, []byte, error) {
	if len(data) < glbHeaderSize {
		return nil, nil, ErrGLBTooSmall
	}

	magic := binary.LittleEndian.Uint32(data[0:4])
	version := binary.LittleEndian.Uint32(data[4:8])
	length := binary.LittleEndian.Uint32(data[8:12])

	if magic != glbMagic {
		return nil, nil, ErrInvalidGLBMagic
	}
	if version != glbVersion {
		return nil, nil, ErrInvalidGLBVersion
	}
	if int(length) > len(data) || length < glbHeaderSize {
		return nil, nil, ErrInvalidGLBLength
	}

	var jsonData, binData []byte
	offset := glbHeaderSize
	end := int(length)

	for offset < end {
		if end-offset < glbChunkSize {
			return nil, nil, ErrTruncatedGLBChunk
		}
		chunkLength := int(binary.LittleEndian.Uint32(data[offset : offset+4]))
		chunkType := binary.LittleEndian.Uint32(data[offset+4 : offset+8])
		offset += glbChunkSize

		if chunkLength > end-offset {
			return nil, nil, ErrTruncatedGLBChunk
		}
		chunk := data[offset : offset+chunkLength]
		offset += chunkLength

		switch chunkType {
		case glbChunkJSON:
			if jsonData == nil {
				jsonData = chunk
			}
		case glbChunkBIN:
			if binData == nil {
				binData = chunk
			}
		}
	}

	if jsonData == nil {
		return nil, nil, ErrMissingJSONChunk
	}

	return jsonData, binData, nil
}
