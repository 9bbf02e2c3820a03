package importer

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/oxy-gltf/engine/accessor"
	"github.com/Carmen-Shannon/oxy-gltf/engine/codec"
	"github.com/Carmen-Shannon/oxy-gltf/engine/gltf"
	"github.com/Carmen-Shannon/oxy-gltf/engine/loader"
	"github.com/go-gl/mathgl/mgl32"
)

// encodePNG renders a w x h image filled with c.
func encodePNG(t *testing.T, w, h int, c color.NRGBA) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

// triangleBuffer holds three VEC3 positions followed by three UNSIGNED_SHORT indices and padding.
func triangleBuffer(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	values := []any{
		[3]float32{0, 0, 0}, [3]float32{1, 0, 0}, [3]float32{0, 1, 0},
		[]uint16{0, 1, 2, 0},
	}
	for _, v := range values {
		if err := binary.Write(&buf, binary.LittleEndian, v); err != nil {
			t.Fatalf("binary.Write: %v", err)
		}
	}
	return buf.Bytes()
}

// triangleJSON builds a document around a 44-byte triangle buffer with the given buffer entry.
func triangleJSON(bufferEntry, imagesEntry string) string {
	return fmt.Sprintf(`{
		"asset": {"version": "2.0"},
		"scene": 0,
		"scenes": [{"name": "triangle_scene", "nodes": [0]}],
		"nodes": [
			{"name": "parent", "translation": [10, 0, 0], "children": [1]},
			{"name": "child", "mesh": 0, "translation": [0, 5, 0]}
		],
		"meshes": [{"primitives": [{"attributes": {"POSITION": 0}, "indices": 1, "material": 0}]}],
		"materials": [{
			"pbrMetallicRoughness": {"baseColorTexture": {"index": 0}, "metallicFactor": 0},
			"normalTexture": {"index": 1, "scale": 0.5}
		}],
		"textures": [{"source": 0}, {"source": 1}],
		"images": %s,
		"accessors": [
			{"bufferView": 0, "componentType": 5126, "count": 3, "type": "VEC3"},
			{"bufferView": 1, "componentType": 5123, "count": 3, "type": "SCALAR"}
		],
		"bufferViews": [
			{"buffer": 0, "byteLength": 36},
			{"buffer": 0, "byteOffset": 36, "byteLength": 6}
		],
		"buffers": [%s]
	}`, imagesEntry, bufferEntry)
}

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func TestImportFileWithExternalResources(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "tri mesh.bin"), triangleBuffer(t))
	writeFile(t, filepath.Join(dir, "normal.png"), encodePNG(t, 4, 2, color.NRGBA{B: 255, A: 255}))

	inline := "data:image/png;base64," + codec.Encode(encodePNG(t, 2, 2, color.NRGBA{R: 255, A: 255}))
	text := triangleJSON(`{"uri": "tri%20mesh.bin", "byteLength": 44}`,
		fmt.Sprintf(`[{"uri": %q}, {"uri": "normal.png"}]`, inline))
	path := filepath.Join(dir, "triangle.gltf")
	writeFile(t, path, []byte(text))

	imp, err := NewImporter(WithWorkers(2)).ImportFile(path)
	if err != nil {
		t.Fatalf("ImportFile failed: %v", err)
	}

	if imp.Name != "triangle_scene" {
		t.Fatalf("name = %q", imp.Name)
	}
	if len(imp.Buffers) != 1 || len(imp.Buffers[0]) != 44 {
		t.Fatalf("buffers = %d", len(imp.Buffers))
	}

	if imp.Images[0] == nil || imp.Images[0].Width != 2 || imp.Images[0].Pixels[0] != 255 {
		t.Fatalf("inline image = %+v", imp.Images[0])
	}
	if imp.Images[1] == nil || imp.Images[1].Width != 4 || imp.Images[1].Height != 2 || imp.Images[1].Pixels[2] != 255 {
		t.Fatalf("external image = %+v", imp.Images[1])
	}

	mat := imp.Materials[0]
	if mat.Name != "material_0" || mat.Metallic != 0 || mat.Roughness != 1 || mat.BaseColor != [4]float32{1, 1, 1, 1} {
		t.Fatalf("material = %+v", mat)
	}
	if mat.BaseColorTexture == nil || mat.BaseColorTexture.Image != imp.Images[0] || mat.BaseColorTexture.MimeType != "image/png" {
		t.Fatalf("base color texture = %+v", mat.BaseColorTexture)
	}
	if mat.NormalTexture == nil || mat.NormalTexture.Path != "normal.png" || mat.NormalTexture.ImageIndex != 1 {
		t.Fatalf("normal texture = %+v", mat.NormalTexture)
	}

	prim, err := imp.Primitive(0, 0)
	if err != nil {
		t.Fatalf("Primitive failed: %v", err)
	}
	if len(prim.Positions) != 3 || prim.Positions[1] != [3]float32{1, 0, 0} {
		t.Fatalf("positions = %v", prim.Positions)
	}
	if len(prim.Indices) != 3 || prim.Indices[2] != 2 || prim.Normals != nil {
		t.Fatalf("primitive = %+v", prim)
	}

	raw, err := imp.AttributeBytes(1)
	if err != nil || len(raw) != 6 {
		t.Fatalf("AttributeBytes = %d bytes, %v", len(raw), err)
	}
}

func TestImportFileGLB(t *testing.T) {
	bin := triangleBuffer(t)
	jsonText := []byte(triangleJSON(`{"byteLength": 44}`, `[{"bufferView": 2, "mimeType": "image/png"}]`))

	// Append a third view holding a PNG after the triangle data.
	pngData := encodePNG(t, 1, 1, color.NRGBA{G: 255, A: 255})
	jsonText = bytes.Replace(jsonText, []byte(`{"buffer": 0, "byteOffset": 36, "byteLength": 6}`),
		[]byte(fmt.Sprintf(`{"buffer": 0, "byteOffset": 36, "byteLength": 6}, {"buffer": 0, "byteOffset": 44, "byteLength": %d}`, len(pngData))), 1)
	jsonText = bytes.Replace(jsonText, []byte(`{"byteLength": 44}`), []byte(fmt.Sprintf(`{"byteLength": %d}`, 44+len(pngData))), 1)
	jsonText = bytes.Replace(jsonText, []byte(`"textures": [{"source": 0}, {"source": 1}]`), []byte(`"textures": [{"source": 0}, {"source": 0}]`), 1)
	bin = append(bin, pngData...)

	path := filepath.Join(t.TempDir(), "triangle.glb")
	writeFile(t, path, buildGLB(t, jsonText, bin))

	imp, err := NewImporter().ImportFile(path)
	if err != nil {
		t.Fatalf("ImportFile failed: %v", err)
	}
	if imp.Images[0] == nil || imp.Images[0].Width != 1 || imp.Images[0].Pixels[1] != 255 {
		t.Fatalf("embedded image = %+v", imp.Images[0])
	}
	prim, err := imp.Primitive(0, 0)
	if err != nil || prim.Positions[2] != [3]float32{0, 1, 0} {
		t.Fatalf("primitive = %+v, %v", prim, err)
	}
}

// buildGLB wraps a JSON chunk and a BIN chunk in a GLB container.
func buildGLB(t *testing.T, jsonChunk, binChunk []byte) []byte {
	t.Helper()
	for len(jsonChunk)%4 != 0 {
		jsonChunk = append(jsonChunk, ' ')
	}
	for len(binChunk)%4 != 0 {
		binChunk = append(binChunk, 0)
	}

	var out bytes.Buffer
	total := 12 + 8 + len(jsonChunk) + 8 + len(binChunk)
	for _, v := range []uint32{0x46546C67, 2, uint32(total), uint32(len(jsonChunk)), 0x4E4F534A} {
		binary.Write(&out, binary.LittleEndian, v)
	}
	out.Write(jsonChunk)
	binary.Write(&out, binary.LittleEndian, uint32(len(binChunk)))
	binary.Write(&out, binary.LittleEndian, uint32(0x004E4942))
	out.Write(binChunk)
	return out.Bytes()
}

// memoryLoader serves buffers from a map.
type memoryLoader map[string][]byte

func (m memoryLoader) LoadBuffer(path string) ([]byte, error) {
	data, ok := m[path]
	if !ok {
		return nil, os.ErrNotExist
	}
	return data, nil
}

func TestImportWithCustomBufferLoader(t *testing.T) {
	doc, err := loader.Load(triangleJSON(`{"uri": "mem://tri", "byteLength": 44}`, `[]`))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	// The material references textures whose images are missing, so drop the material.
	doc.Materials = []gltf.Material{}

	imp, err := NewImporter(WithBufferLoader(memoryLoader{"mem://tri": triangleBuffer(t)})).Import(doc, nil)
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	indices, err := imp.Reader().ReadIndices(1)
	if err != nil || len(indices) != 3 {
		t.Fatalf("indices = %v, %v", indices, err)
	}
}

func TestImportErrors(t *testing.T) {
	short, err := loader.Load(triangleJSON(`{"uri": "tri.bin", "byteLength": 64}`, `[]`))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	mem := memoryLoader{"tri.bin": triangleBuffer(t)}
	if _, err := NewImporter(WithBufferLoader(mem), WithSkipImages()).Import(short, nil); !errors.Is(err, ErrBufferSizeMismatch) {
		t.Fatalf("short buffer: error = %v, want ErrBufferSizeMismatch", err)
	}

	glbOnly, err := loader.Load(triangleJSON(`{"byteLength": 44}`, `[]`))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if _, err := NewImporter().Import(glbOnly, nil); !errors.Is(err, ErrMissingGLBChunk) {
		t.Fatalf("no BIN chunk: error = %v, want ErrMissingGLBChunk", err)
	}

	badImage, err := loader.Load(triangleJSON(`{"uri": "tri.bin", "byteLength": 44}`, `[{"uri": "data:image/png;base64,AAAA"}]`))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if _, err := NewImporter(WithBufferLoader(mem)).Import(badImage, nil); err == nil {
		t.Fatalf("expected an image decoding error")
	}

	if _, err := NewImporter().ImportFile(filepath.Join(t.TempDir(), "missing.gltf")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("missing file: error = %v", err)
	}
}

func TestImportSkipImages(t *testing.T) {
	doc, err := loader.Load(triangleJSON(`{"uri": "tri.bin", "byteLength": 44}`, `[{"uri": "data:image/png;base64,AAAA"}, {"uri": "missing.png"}]`))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	imp, err := NewImporter(WithBufferLoader(memoryLoader{"tri.bin": triangleBuffer(t)}), WithSkipImages()).Import(doc, nil)
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if len(imp.Images) != 2 || imp.Images[0] != nil || imp.Images[1] != nil {
		t.Fatalf("images = %v", imp.Images)
	}
	if imp.Materials[0].BaseColorTexture == nil || imp.Materials[0].BaseColorTexture.Image != nil {
		t.Fatalf("texture = %+v", imp.Materials[0].BaseColorTexture)
	}
}

func TestWalkScene(t *testing.T) {
	doc, err := loader.Load(triangleJSON(`{"uri": "tri.bin", "byteLength": 44}`, `[]`))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	imp := &Import{Document: doc}

	var names []string
	var childWorld mgl32.Mat4
	err = imp.WalkScene(func(index int, node *gltf.Node, world mgl32.Mat4) error {
		names = append(names, node.Name)
		if index == 1 {
			childWorld = world
		}
		return nil
	})
	if err != nil {
		t.Fatalf("WalkScene failed: %v", err)
	}
	if len(names) != 2 || names[0] != "parent" || names[1] != "child" {
		t.Fatalf("visit order = %v", names)
	}
	if got := childWorld.Col(3); got != (mgl32.Vec4{10, 5, 0, 1}) {
		t.Fatalf("child translation = %v", got)
	}

	stop := errors.New("stop")
	if err := imp.WalkScene(func(int, *gltf.Node, mgl32.Mat4) error { return stop }); !errors.Is(err, stop) {
		t.Fatalf("error = %v, want visitor error", err)
	}

	doc.Nodes[1].Children = []int{0}
	if err := imp.WalkScene(func(int, *gltf.Node, mgl32.Mat4) error { return nil }); !errors.Is(err, ErrNodeCycle) {
		t.Fatalf("error = %v, want ErrNodeCycle", err)
	}
}

func TestSkinsAndAnimations(t *testing.T) {
	var buf bytes.Buffer
	identity := mgl32.Ident4()
	translated := mgl32.Translate3D(1, 2, 3)
	for _, v := range []any{[2]float32{0, 1}, identity, translated, [2]float32{0.5, 1}} {
		binary.Write(&buf, binary.LittleEndian, v)
	}
	data := buf.Bytes()

	text := fmt.Sprintf(`{
		"buffers": [{"uri": "data:application/octet-stream;base64,%s", "byteLength": %d}],
		"bufferViews": [
			{"buffer": 0, "byteLength": 8},
			{"buffer": 0, "byteOffset": 8, "byteLength": 128},
			{"buffer": 0, "byteOffset": 136, "byteLength": 8}
		],
		"accessors": [
			{"bufferView": 0, "componentType": 5126, "count": 2, "type": "SCALAR"},
			{"bufferView": 1, "componentType": 5126, "count": 2, "type": "MAT4"},
			{"bufferView": 2, "componentType": 5126, "count": 2, "type": "SCALAR"}
		],
		"nodes": [{}, {}],
		"skins": [{"joints": [0, 1], "inverseBindMatrices": 1}, {"joints": [0]}],
		"animations": [{"channels": [{"sampler": 0, "target": {"node": 0, "path": "weights"}}],
		                "samplers": [{"input": 0, "output": 2, "interpolation": "STEP"}]}]
	}`, codec.Encode(data), len(data))

	doc, err := loader.Load(text)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	imp, err := NewImporter().Import(doc, nil)
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	mats, err := imp.InverseBindMatrices(0)
	if err != nil {
		t.Fatalf("InverseBindMatrices failed: %v", err)
	}
	if len(mats) != 2 || mats[0] != identity || mats[1] != translated {
		t.Fatalf("matrices = %v", mats)
	}
	defaults, err := imp.InverseBindMatrices(1)
	if err != nil || len(defaults) != 1 || defaults[0] != identity {
		t.Fatalf("default matrices = %v, %v", defaults, err)
	}

	times, values, err := imp.AnimationSampler(0, 0)
	if err != nil {
		t.Fatalf("AnimationSampler failed: %v", err)
	}
	if len(times) != 2 || times[1] != 1 || len(values) != 2 || math.Abs(float64(values[0])-0.5) > 1e-6 {
		t.Fatalf("times = %v, values = %v", times, values)
	}
	if _, _, err := imp.AnimationSampler(0, 3); !errors.Is(err, gltf.ErrIndexOutOfRange) {
		t.Fatalf("error = %v, want ErrIndexOutOfRange", err)
	}
}

func TestCameras(t *testing.T) {
	doc, err := loader.Load(`{
		"scenes": [{"nodes": [0, 2]}],
		"nodes": [
			{"name": "rig", "translation": [0, 0, 10], "children": [1]},
			{"name": "eye", "camera": 0, "translation": [0, 2, 0]},
			{"name": "top", "camera": 1}
		],
		"cameras": [
			{"type": "perspective", "perspective": {"yfov": 0.9, "znear": 0.1}},
			{"type": "orthographic", "name": "plan", "orthographic": {"xmag": 4, "ymag": 2, "zfar": 50, "znear": 0}}
		]
	}`)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	imp := &Import{Document: doc}

	cams, err := imp.Cameras(16.0 / 9.0)
	if err != nil {
		t.Fatalf("Cameras failed: %v", err)
	}
	if len(cams) != 2 {
		t.Fatalf("got %d cameras, want 2", len(cams))
	}

	eye := cams[0]
	if eye.Node != 1 || eye.Index != 0 || eye.Name() != "eye" {
		t.Fatalf("camera 0: node %d index %d name %q", eye.Node, eye.Index, eye.Name())
	}
	if x, y, z := eye.Position(); x != 0 || y != 2 || z != 10 {
		t.Fatalf("camera 0 position = (%v, %v, %v)", x, y, z)
	}
	if eye.Aspect() != 16.0/9.0 {
		t.Fatalf("camera 0 aspect = %v, want the viewport aspect", eye.Aspect())
	}

	plan := cams[1]
	if plan.Name() != "plan" || !plan.Orthographic() || plan.Aspect() != 2 {
		t.Fatalf("camera 1: name %q orthographic %v aspect %v", plan.Name(), plan.Orthographic(), plan.Aspect())
	}

	doc.Nodes[2].Camera = ptrTo(5)
	if _, err := imp.Cameras(1); err == nil {
		t.Fatal("expected an index error for a missing camera")
	}
}

func ptrTo[T any](v T) *T { return &v }

func TestPrimitiveAttributeShapes(t *testing.T) {
	var buf bytes.Buffer
	for _, v := range []any{
		[4][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {1, 1, 0}},
		[3][4]float32{{0, 0.2, 0.3, 0.5}, {0.1, 0.2, 0.3, 0.5}, {0.2, 0.2, 0.3, 0.5}},
	} {
		binary.Write(&buf, binary.LittleEndian, v)
	}
	data := buf.Bytes()

	text := fmt.Sprintf(`{
		"buffers": [{"uri": "data:application/octet-stream;base64,%s", "byteLength": %d}],
		"bufferViews": [
			{"buffer": 0, "byteLength": 48},
			{"buffer": 0, "byteOffset": 48, "byteLength": 48}
		],
		"accessors": [
			{"bufferView": 0, "componentType": 5126, "count": 4, "type": "VEC3"},
			{"bufferView": 1, "componentType": 5126, "count": 3, "type": "VEC4"},
			{"bufferView": 1, "componentType": 5126, "count": 4, "type": "VEC3"},
			{"bufferView": 0, "componentType": 5126, "count": 4, "type": "SCALAR"}
		],
		"meshes": [
			{"primitives": [{"attributes": {"POSITION": 0, "COLOR_0": 1}}]},
			{"primitives": [{"attributes": {"POSITION": 0, "TEXCOORD_0": 2}}]},
			{"primitives": [{"attributes": {"POSITION": 0, "WEIGHTS_0": 3}}]},
			{"primitives": [{"attributes": {"POSITION": 0, "COLOR_0": 3}}]}
		]
	}`, codec.Encode(data), len(data))

	doc, err := loader.Load(text)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	imp, err := NewImporter().Import(doc, nil)
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	// COLOR_0 has fewer elements than POSITION; its VEC4 type still decides the layout.
	prim, err := imp.Primitive(0, 0)
	if err != nil {
		t.Fatalf("Primitive failed: %v", err)
	}
	if len(prim.Positions) != 4 || len(prim.Colors) != 3 {
		t.Fatalf("got %d positions and %d colors, want 4 and 3", len(prim.Positions), len(prim.Colors))
	}
	for i, c := range prim.Colors {
		if c[3] != 0.5 || math.Abs(float64(c[0])-0.1*float64(i)) > 1e-6 {
			t.Fatalf("color %d = %v", i, c)
		}
	}

	for mesh, semantic := range map[int]string{1: "TEXCOORD_0", 2: "WEIGHTS_0", 3: "COLOR_0"} {
		if _, err := imp.Primitive(mesh, 0); !errors.Is(err, accessor.ErrTypeMismatch) {
			t.Errorf("%s with the wrong accessor type: error = %v, want ErrTypeMismatch", semantic, err)
		}
	}
}
