package loader

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-gltf/engine/gltf"
)

// gltf_convert.go is the second loading phase: the generic value tree is mapped field by field
// onto the typed gltf model. JSON key renames, format defaults and enum validation all live here.

// convertDocument maps the root object onto a gltf.Document.
func convertDocument(root object) (*gltf.Document, error) {
	doc := &gltf.Document{}
	var err error

	if doc.Asset, err = convertAsset(root); err != nil {
		return nil, err
	}
	if doc.Scene, err = root.optionalInt("scene"); err != nil {
		return nil, err
	}
	if doc.Accessors, err = convertAll(root, "accessors", convertAccessor); err != nil {
		return nil, err
	}
	if doc.Buffers, err = convertAll(root, "buffers", convertBuffer); err != nil {
		return nil, err
	}
	if doc.BufferViews, err = convertAll(root, "bufferViews", convertBufferView); err != nil {
		return nil, err
	}
	if doc.Images, err = convertAll(root, "images", convertImage); err != nil {
		return nil, err
	}
	if doc.Samplers, err = convertAll(root, "samplers", convertSampler); err != nil {
		return nil, err
	}
	if doc.Textures, err = convertAll(root, "textures", convertTexture); err != nil {
		return nil, err
	}
	if doc.Scenes, err = convertAll(root, "scenes", convertScene); err != nil {
		return nil, err
	}
	if doc.Materials, err = convertAll(root, "materials", convertMaterial); err != nil {
		return nil, err
	}
	if doc.Meshes, err = convertAll(root, "meshes", convertMesh); err != nil {
		return nil, err
	}
	if doc.Nodes, err = convertAll(root, "nodes", convertNode); err != nil {
		return nil, err
	}
	if doc.Cameras, err = convertAll(root, "cameras", convertCamera); err != nil {
		return nil, err
	}
	if doc.Skins, err = convertAll(root, "skins", convertSkin); err != nil {
		return nil, err
	}
	if doc.Animations, err = convertAll(root, "animations", convertAnimation); err != nil {
		return nil, err
	}
	if doc.ExtensionsUsed, err = root.texts("extensionsUsed"); err != nil {
		return nil, err
	}
	if doc.ExtensionsRequired, err = root.texts("extensionsRequired"); err != nil {
		return nil, err
	}

	return doc, nil
}

// convertAll maps every object of an array field; an absent field yields an empty slice.
func convertAll[T any](o object, key string, fn func(object) (T, error)) ([]T, error) {
	items, err := o.objects(key)
	if err != nil {
		return nil, err
	}
	out := make([]T, len(items))
	for i, item := range items {
		if out[i], err = fn(item); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// enumField validates an optional numeric enum field. Validation failures keep their
// *gltf.InvalidEnumCodeError type and gain the field path.
func enumField[T any](o object, key string, parse func(int) (T, error)) (*T, error) {
	code, err := o.optionalCode(key)
	if err != nil || code == nil {
		return nil, err
	}
	v, err := parse(*code)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", o.at(key), err)
	}
	return &v, nil
}

// requiredEnumField is enumField for fields the format requires.
func requiredEnumField[T any](o object, key string, parse func(int) (T, error)) (T, error) {
	var zero T
	v, err := enumField(o, key, parse)
	if err != nil {
		return zero, err
	}
	if v == nil {
		return zero, malformed(o.at(key), "missing required field")
	}
	return *v, nil
}

func convertAsset(root object) (*gltf.Asset, error) {
	o, err := root.optionalObject("asset")
	if err != nil || o == nil {
		return nil, err
	}

	a := &gltf.Asset{}
	if a.Version, err = o.requiredText("version"); err != nil {
		return nil, err
	}
	if a.MinVersion, err = o.text("minVersion", ""); err != nil {
		return nil, err
	}
	if a.Generator, err = o.text("generator", ""); err != nil {
		return nil, err
	}
	if a.Copyright, err = o.text("copyright", ""); err != nil {
		return nil, err
	}
	return a, nil
}

// --- Buffer Data ---

func convertAccessor(o object) (gltf.Accessor, error) {
	var a gltf.Accessor
	var err error

	if a.BufferView, err = o.optionalInt("bufferView"); err != nil {
		return a, err
	}
	if a.ByteOffset, err = o.integer("byteOffset", 0); err != nil {
		return a, err
	}
	if a.ComponentType, err = requiredEnumField(o, "componentType", gltf.ParseComponentType); err != nil {
		return a, err
	}
	if a.Normalized, err = o.boolean("normalized", false); err != nil {
		return a, err
	}
	if a.Count, err = o.requiredInt("count"); err != nil {
		return a, err
	}

	typ, err := o.requiredText("type")
	if err != nil {
		return a, err
	}
	a.Type = gltf.AccessorType(typ)

	if a.Max, err = o.floats("max"); err != nil {
		return a, err
	}
	if a.Min, err = o.floats("min"); err != nil {
		return a, err
	}
	if a.Name, err = o.text("name", ""); err != nil {
		return a, err
	}

	sparse, err := o.optionalObject("sparse")
	if err != nil {
		return a, err
	}
	if sparse != nil {
		s, err := convertSparse(*sparse)
		if err != nil {
			return a, err
		}
		a.Sparse = &s
	}

	return a, nil
}

func convertSparse(o object) (gltf.Sparse, error) {
	var s gltf.Sparse
	var err error

	if s.Count, err = o.requiredInt("count"); err != nil {
		return s, err
	}

	indices, err := o.requiredObject("indices")
	if err != nil {
		return s, err
	}
	if s.Indices.BufferView, err = indices.requiredInt("bufferView"); err != nil {
		return s, err
	}
	if s.Indices.ByteOffset, err = indices.integer("byteOffset", 0); err != nil {
		return s, err
	}
	if s.Indices.ComponentType, err = requiredEnumField(indices, "componentType", gltf.ParseComponentType); err != nil {
		return s, err
	}

	values, err := o.requiredObject("values")
	if err != nil {
		return s, err
	}
	if s.Values.BufferView, err = values.requiredInt("bufferView"); err != nil {
		return s, err
	}
	if s.Values.ByteOffset, err = values.integer("byteOffset", 0); err != nil {
		return s, err
	}

	return s, nil
}

func convertBuffer(o object) (gltf.Buffer, error) {
	var b gltf.Buffer
	var err error

	if b.URI, err = o.text("uri", ""); err != nil {
		return b, err
	}
	if b.ByteLength, err = o.requiredInt("byteLength"); err != nil {
		return b, err
	}
	if b.Name, err = o.text("name", ""); err != nil {
		return b, err
	}
	return b, nil
}

func convertBufferView(o object) (gltf.BufferView, error) {
	var v gltf.BufferView
	var err error

	if v.Buffer, err = o.requiredInt("buffer"); err != nil {
		return v, err
	}
	if v.ByteOffset, err = o.integer("byteOffset", 0); err != nil {
		return v, err
	}
	if v.ByteLength, err = o.requiredInt("byteLength"); err != nil {
		return v, err
	}
	if v.Stride, err = o.optionalInt("byteStride"); err != nil {
		return v, err
	}
	if v.Stride != nil && (*v.Stride < 4 || *v.Stride > 252) {
		return v, malformed(o.at("byteStride"), "stride %d outside [4, 252]", *v.Stride)
	}
	if v.Target, err = enumField(o, "target", gltf.ParseBufferViewTarget); err != nil {
		return v, err
	}
	if v.Name, err = o.text("name", ""); err != nil {
		return v, err
	}
	return v, nil
}

// --- Images, Samplers and Textures ---

func convertImage(o object) (gltf.Image, error) {
	var img gltf.Image
	var err error

	if img.URI, err = o.optionalText("uri"); err != nil {
		return img, err
	}
	if img.MimeType, err = o.optionalText("mimeType"); err != nil {
		return img, err
	}
	if img.BufferView, err = o.optionalInt("bufferView"); err != nil {
		return img, err
	}
	if img.Name, err = o.text("name", ""); err != nil {
		return img, err
	}
	return img, nil
}

func convertSampler(o object) (gltf.Sampler, error) {
	s := gltf.Sampler{WrapS: gltf.WrapModeRepeat, WrapT: gltf.WrapModeRepeat}
	var err error

	if s.MagFilter, err = enumField(o, "magFilter", gltf.ParseFilter); err != nil {
		return s, err
	}
	if s.MinFilter, err = enumField(o, "minFilter", gltf.ParseFilter); err != nil {
		return s, err
	}

	wrapS, err := enumField(o, "wrapS", gltf.ParseWrapMode)
	if err != nil {
		return s, err
	}
	if wrapS != nil {
		s.WrapS = *wrapS
	}
	wrapT, err := enumField(o, "wrapT", gltf.ParseWrapMode)
	if err != nil {
		return s, err
	}
	if wrapT != nil {
		s.WrapT = *wrapT
	}

	if s.Name, err = o.text("name", ""); err != nil {
		return s, err
	}
	return s, nil
}

func convertTexture(o object) (gltf.Texture, error) {
	var t gltf.Texture
	var err error

	if t.Sampler, err = o.optionalInt("sampler"); err != nil {
		return t, err
	}
	if t.Source, err = o.optionalInt("source"); err != nil {
		return t, err
	}
	if t.Name, err = o.text("name", ""); err != nil {
		return t, err
	}
	return t, nil
}

// --- Materials ---

func convertMaterial(o object) (gltf.Material, error) {
	m := gltf.Material{
		PBRMetallicRoughness: defaultPBR(),
		AlphaMode:            gltf.AlphaModeOpaque,
		AlphaCutoff:          0.5,
	}
	var err error

	if m.Name, err = o.text("name", ""); err != nil {
		return m, err
	}

	pbr, err := o.optionalObject("pbrMetallicRoughness")
	if err != nil {
		return m, err
	}
	if pbr != nil {
		if m.PBRMetallicRoughness, err = convertPBR(*pbr); err != nil {
			return m, err
		}
	}

	if normal, err := o.optionalObject("normalTexture"); err != nil {
		return m, err
	} else if normal != nil {
		info, err := convertTextureInfo(*normal)
		if err != nil {
			return m, err
		}
		scale, err := normal.number("scale", 1)
		if err != nil {
			return m, err
		}
		m.NormalTexture = &gltf.NormalTextureInfo{TextureInfo: info, Scale: scale}
	}

	if occlusion, err := o.optionalObject("occlusionTexture"); err != nil {
		return m, err
	} else if occlusion != nil {
		info, err := convertTextureInfo(*occlusion)
		if err != nil {
			return m, err
		}
		strength, err := occlusion.number("strength", 1)
		if err != nil {
			return m, err
		}
		m.OcclusionTexture = &gltf.OcclusionTextureInfo{TextureInfo: info, Strength: strength}
	}

	if m.EmissiveTexture, err = optionalTextureInfo(o, "emissiveTexture"); err != nil {
		return m, err
	}

	emissive, err := o.fixedFloats("emissiveFactor", 3)
	if err != nil {
		return m, err
	}
	copy(m.EmissiveFactor[:], emissive)

	mode, err := o.optionalText("alphaMode")
	if err != nil {
		return m, err
	}
	if mode != nil {
		parsed, ok := gltf.ParseAlphaMode(*mode)
		if !ok {
			return m, malformed(o.at("alphaMode"), "unknown alpha mode %q", *mode)
		}
		m.AlphaMode = parsed
	}

	if m.AlphaCutoff, err = o.number("alphaCutoff", 0.5); err != nil {
		return m, err
	}
	if m.DoubleSided, err = o.boolean("doubleSided", false); err != nil {
		return m, err
	}

	return m, nil
}

// defaultPBR returns the metallic-roughness values used when the material omits them.
func defaultPBR() gltf.PBRMetallicRoughness {
	return gltf.PBRMetallicRoughness{
		BaseColorFactor: [4]float64{1, 1, 1, 1},
		MetallicFactor:  1,
		RoughnessFactor: 1,
	}
}

func convertPBR(o object) (gltf.PBRMetallicRoughness, error) {
	p := defaultPBR()
	var err error

	base, err := o.fixedFloats("baseColorFactor", 4)
	if err != nil {
		return p, err
	}
	if base != nil {
		copy(p.BaseColorFactor[:], base)
	}

	if p.BaseColorTexture, err = optionalTextureInfo(o, "baseColorTexture"); err != nil {
		return p, err
	}
	if p.MetallicFactor, err = o.number("metallicFactor", 1); err != nil {
		return p, err
	}
	if p.RoughnessFactor, err = o.number("roughnessFactor", 1); err != nil {
		return p, err
	}
	if p.MetallicRoughnessTexture, err = optionalTextureInfo(o, "metallicRoughnessTexture"); err != nil {
		return p, err
	}
	return p, nil
}

func optionalTextureInfo(o object, key string) (*gltf.TextureInfo, error) {
	obj, err := o.optionalObject(key)
	if err != nil || obj == nil {
		return nil, err
	}
	info, err := convertTextureInfo(*obj)
	if err != nil {
		return nil, err
	}
	return &info, nil
}

func convertTextureInfo(o object) (gltf.TextureInfo, error) {
	var t gltf.TextureInfo
	var err error

	if t.Index, err = o.requiredInt("index"); err != nil {
		return t, err
	}
	if t.TexCoord, err = o.integer("texCoord", 0); err != nil {
		return t, err
	}
	return t, nil
}

// --- Mesh Data ---

func convertMesh(o object) (gltf.Mesh, error) {
	var m gltf.Mesh
	var err error

	if m.Primitives, err = convertAll(o, "primitives", convertPrimitive); err != nil {
		return m, err
	}
	if m.Weights, err = o.floats("weights"); err != nil {
		return m, err
	}
	if m.Name, err = o.text("name", ""); err != nil {
		return m, err
	}
	return m, nil
}

func convertPrimitive(o object) (gltf.Primitive, error) {
	p := gltf.Primitive{Mode: gltf.PrimitiveModeTriangles}
	var err error

	if p.Attributes, err = o.indexMap("attributes"); err != nil {
		return p, err
	}
	if p.Attributes == nil {
		p.Attributes = map[string]int{}
	}
	if p.Indices, err = o.optionalInt("indices"); err != nil {
		return p, err
	}
	if p.Material, err = o.optionalInt("material"); err != nil {
		return p, err
	}

	mode, err := enumField(o, "mode", gltf.ParsePrimitiveMode)
	if err != nil {
		return p, err
	}
	if mode != nil {
		p.Mode = *mode
	}

	targets, err := o.objects("targets")
	if err != nil {
		return p, err
	}
	if len(targets) > 0 {
		p.Targets = make([]map[string]int, len(targets))
		for i, t := range targets {
			if p.Targets[i], err = t.asIndexMap(); err != nil {
				return p, err
			}
		}
	}

	return p, nil
}

// --- Scene Graph ---

func convertNode(o object) (gltf.Node, error) {
	var n gltf.Node
	var err error

	if n.Camera, err = o.optionalInt("camera"); err != nil {
		return n, err
	}
	if n.Children, err = o.ints("children"); err != nil {
		return n, err
	}
	if n.Skin, err = o.optionalInt("skin"); err != nil {
		return n, err
	}
	if n.Mesh, err = o.optionalInt("mesh"); err != nil {
		return n, err
	}

	matrix, err := o.fixedFloats("matrix", 16)
	if err != nil {
		return n, err
	}
	if matrix != nil {
		n.Matrix = (*[16]float64)(matrix)
	}

	rotation, err := o.fixedFloats("rotation", 4)
	if err != nil {
		return n, err
	}
	if rotation != nil {
		n.Rotation = (*[4]float64)(rotation)
	}

	scale, err := o.fixedFloats("scale", 3)
	if err != nil {
		return n, err
	}
	if scale != nil {
		n.Scale = (*[3]float64)(scale)
	}

	translation, err := o.fixedFloats("translation", 3)
	if err != nil {
		return n, err
	}
	if translation != nil {
		n.Translation = (*[3]float64)(translation)
	}

	if n.Weights, err = o.floats("weights"); err != nil {
		return n, err
	}
	if n.Name, err = o.text("name", ""); err != nil {
		return n, err
	}
	return n, nil
}

func convertScene(o object) (gltf.Scene, error) {
	var s gltf.Scene
	var err error

	if s.Nodes, err = o.ints("nodes"); err != nil {
		return s, err
	}
	if s.Name, err = o.text("name", ""); err != nil {
		return s, err
	}
	return s, nil
}

func convertCamera(o object) (gltf.Camera, error) {
	var c gltf.Camera
	var err error

	if c.Type, err = o.requiredText("type"); err != nil {
		return c, err
	}
	if c.Name, err = o.text("name", ""); err != nil {
		return c, err
	}

	switch c.Type {
	case gltf.CameraTypePerspective:
		p, err := o.requiredObject("perspective")
		if err != nil {
			return c, err
		}
		c.Perspective = &gltf.Perspective{}
		if c.Perspective.AspectRatio, err = optionalPositive(p, "aspectRatio"); err != nil {
			return c, err
		}
		if c.Perspective.YFov, err = requiredPositive(p, "yfov"); err != nil {
			return c, err
		}
		if c.Perspective.ZNear, err = requiredPositive(p, "znear"); err != nil {
			return c, err
		}
		if c.Perspective.ZFar, err = optionalPositive(p, "zfar"); err != nil {
			return c, err
		}
		if c.Perspective.ZFar != nil && *c.Perspective.ZFar <= c.Perspective.ZNear {
			return c, malformed(p.at("zfar"), "zfar %g must be greater than znear %g", *c.Perspective.ZFar, c.Perspective.ZNear)
		}
	case gltf.CameraTypeOrthographic:
		ortho, err := o.requiredObject("orthographic")
		if err != nil {
			return c, err
		}
		c.Orthographic = &gltf.Orthographic{}
		for _, f := range []struct {
			key string
			dst *float64
		}{
			{"xmag", &c.Orthographic.XMag},
			{"ymag", &c.Orthographic.YMag},
			{"zfar", &c.Orthographic.ZFar},
			{"znear", &c.Orthographic.ZNear},
		} {
			v, ok := ortho.get(f.key)
			if !ok {
				return c, malformed(ortho.at(f.key), "missing required field")
			}
			if *f.dst, err = toFloat(ortho.at(f.key), v); err != nil {
				return c, err
			}
		}
		if c.Orthographic.ZNear < 0 || c.Orthographic.ZFar <= c.Orthographic.ZNear {
			return c, malformed(ortho.at("zfar"), "invalid clipping planes znear %g, zfar %g", c.Orthographic.ZNear, c.Orthographic.ZFar)
		}
	default:
		return c, malformed(o.at("type"), "unknown camera type %q", c.Type)
	}
	return c, nil
}

// optionalPositive reads an optional number that must be greater than zero when present.
func optionalPositive(o object, key string) (*float64, error) {
	v, ok := o.get(key)
	if !ok {
		return nil, nil
	}
	f, err := toFloat(o.at(key), v)
	if err != nil {
		return nil, err
	}
	if f <= 0 {
		return nil, malformed(o.at(key), "expected a positive number, got %g", f)
	}
	return &f, nil
}

func requiredPositive(o object, key string) (float64, error) {
	f, err := optionalPositive(o, key)
	if err != nil {
		return 0, err
	}
	if f == nil {
		return 0, malformed(o.at(key), "missing required field")
	}
	return *f, nil
}

// --- Skeletal Animation ---

func convertSkin(o object) (gltf.Skin, error) {
	var s gltf.Skin
	var err error

	if s.InverseBindMatrices, err = o.optionalInt("inverseBindMatrices"); err != nil {
		return s, err
	}
	if s.Skeleton, err = o.optionalInt("skeleton"); err != nil {
		return s, err
	}
	if _, ok := o.get("joints"); !ok {
		return s, malformed(o.at("joints"), "missing required field")
	}
	if s.Joints, err = o.ints("joints"); err != nil {
		return s, err
	}
	if s.Name, err = o.text("name", ""); err != nil {
		return s, err
	}
	return s, nil
}

func convertAnimation(o object) (gltf.Animation, error) {
	var a gltf.Animation
	var err error

	if a.Channels, err = convertAll(o, "channels", convertAnimationChannel); err != nil {
		return a, err
	}
	if a.Samplers, err = convertAll(o, "samplers", convertAnimationSampler); err != nil {
		return a, err
	}
	if a.Name, err = o.text("name", ""); err != nil {
		return a, err
	}
	return a, nil
}

func convertAnimationChannel(o object) (gltf.AnimationChannel, error) {
	var c gltf.AnimationChannel
	var err error

	if c.Sampler, err = o.requiredInt("sampler"); err != nil {
		return c, err
	}
	target, err := o.requiredObject("target")
	if err != nil {
		return c, err
	}
	if c.Target.Node, err = target.optionalInt("node"); err != nil {
		return c, err
	}
	if c.Target.Path, err = target.requiredText("path"); err != nil {
		return c, err
	}
	switch c.Target.Path {
	case gltf.AnimationPathTranslation, gltf.AnimationPathRotation, gltf.AnimationPathScale, gltf.AnimationPathWeights:
	default:
		return c, malformed(target.at("path"), "unknown animation path %q", c.Target.Path)
	}
	return c, nil
}

func convertAnimationSampler(o object) (gltf.AnimationSampler, error) {
	var s gltf.AnimationSampler
	var err error

	if s.Input, err = o.requiredInt("input"); err != nil {
		return s, err
	}
	if s.Output, err = o.requiredInt("output"); err != nil {
		return s, err
	}
	if s.Interpolation, err = o.text("interpolation", gltf.InterpolationLinear); err != nil {
		return s, err
	}
	switch s.Interpolation {
	case gltf.InterpolationLinear, gltf.InterpolationStep, gltf.InterpolationCubicSpline:
	default:
		return s, malformed(o.at("interpolation"), "unknown interpolation %q", s.Interpolation)
	}
	return s, nil
}
