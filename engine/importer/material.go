package importer

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-gltf/common"
	"github.com/Carmen-Shannon/oxy-gltf/engine/gltf"
	"github.com/Carmen-Shannon/oxy-gltf/engine/resolver"
)

// extractMaterials converts every material of the document, linking texture slots to decoded images.
func extractMaterials(imp *Import) ([]common.ImportedMaterial, error) {
	doc := imp.Document
	result := make([]common.ImportedMaterial, len(doc.Materials))

	for i := range doc.Materials {
		m, err := extractMaterial(imp, i)
		if err != nil {
			return nil, err
		}
		result[i] = *m
	}
	return result, nil
}

// textureSlot pairs a material texture reference with the field it populates.
type textureSlot struct {
	name string
	info *gltf.TextureInfo
	dst  **common.ImportedTexture
}

func extractMaterial(imp *Import, materialIndex int) (*common.ImportedMaterial, error) {
	mat := &imp.Document.Materials[materialIndex]
	pbr := mat.PBRMetallicRoughness

	result := &common.ImportedMaterial{
		Name:        common.Coalesce(mat.Name, fmt.Sprintf("material_%d", materialIndex)),
		BaseColor:   toFloat32x4(pbr.BaseColorFactor),
		Metallic:    float32(pbr.MetallicFactor),
		Roughness:   float32(pbr.RoughnessFactor),
		Emissive:    [3]float32{float32(mat.EmissiveFactor[0]), float32(mat.EmissiveFactor[1]), float32(mat.EmissiveFactor[2])},
		AlphaMode:   string(mat.AlphaMode),
		AlphaCutoff: float32(mat.AlphaCutoff),
		DoubleSided: mat.DoubleSided,
	}

	slots := []textureSlot{
		{"baseColor", pbr.BaseColorTexture, &result.BaseColorTexture},
		{"metallicRoughness", pbr.MetallicRoughnessTexture, &result.MetallicRoughnessTexture},
		{"emissive", mat.EmissiveTexture, &result.EmissiveTexture},
	}
	if mat.NormalTexture != nil {
		slots = append(slots, textureSlot{"normal", &mat.NormalTexture.TextureInfo, &result.NormalTexture})
	}
	if mat.OcclusionTexture != nil {
		slots = append(slots, textureSlot{"occlusion", &mat.OcclusionTexture.TextureInfo, &result.OcclusionTexture})
	}

	for _, slot := range slots {
		if slot.info == nil {
			continue
		}
		tex, err := importTexture(imp, slot.name, *slot.info)
		if err != nil {
			return nil, fmt.Errorf("material %q: %s texture: %w", result.Name, slot.name, err)
		}
		*slot.dst = tex
	}

	return result, nil
}

// importTexture follows a texture reference to its image and attaches the decoded pixels, if any.
func importTexture(imp *Import, name string, info gltf.TextureInfo) (*common.ImportedTexture, error) {
	tex, err := imp.Document.Texture(info.Index)
	if err != nil {
		return nil, err
	}

	result := &common.ImportedTexture{Name: name, ImageIndex: -1, TexCoord: info.TexCoord}
	if tex.Source == nil {
		return result, nil
	}

	src, err := imp.Resolver.ImageSourceAt(*tex.Source)
	if err != nil {
		return nil, err
	}
	result.ImageIndex = *tex.Source
	result.MimeType = src.MimeType
	if src.Kind == resolver.SourceExternalPath {
		result.Path = src.Path
		result.MimeType = common.Coalesce(src.MimeType, mimeTypeFromPath(src.Path))
	}
	result.Image = imp.Images[*tex.Source]

	return result, nil
}

func toFloat32x4(v [4]float64) [4]float32 {
	return [4]float32{float32(v[0]), float32(v[1]), float32(v[2]), float32(v[3])}
}
