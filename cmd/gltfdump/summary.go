package main

import (
	"fmt"
	"io"
	"math"
	"slices"
	"text/tabwriter"

	"github.com/Carmen-Shannon/oxy-gltf/common"
	"github.com/Carmen-Shannon/oxy-gltf/engine/gltf"
	"github.com/Carmen-Shannon/oxy-gltf/engine/importer"
	"github.com/Carmen-Shannon/oxy-gltf/engine/resolver"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// summary is the printable view of an imported document.
type summary struct {
	Name       string            `json:"name" yaml:"name"`
	Version    string            `json:"version,omitempty" yaml:"version,omitempty"`
	Generator  string            `json:"generator,omitempty" yaml:"generator,omitempty"`
	Counts     map[string]int    `json:"counts" yaml:"counts"`
	Extensions []string          `json:"extensions_required,omitempty" yaml:"extensions_required,omitempty"`
	Meshes     []meshSummary     `json:"meshes" yaml:"meshes"`
	Materials  []materialSummary `json:"materials" yaml:"materials"`
	Images     []imageSummary    `json:"images" yaml:"images"`
	Nodes      []nodeSummary     `json:"nodes" yaml:"nodes"`
	Cameras    []cameraSummary   `json:"cameras,omitempty" yaml:"cameras,omitempty"`
}

type meshSummary struct {
	Index      int                `json:"index" yaml:"index"`
	Name       string             `json:"name,omitempty" yaml:"name,omitempty"`
	Primitives []primitiveSummary `json:"primitives" yaml:"primitives"`
}

type primitiveSummary struct {
	Mode       string             `json:"mode" yaml:"mode"`
	Material   *int               `json:"material,omitempty" yaml:"material,omitempty"`
	Attributes []attributeSummary `json:"attributes" yaml:"attributes"`
}

// attributeSummary is one resolved (buffer, offset, length) triple, or the reason it failed.
type attributeSummary struct {
	Semantic string `json:"semantic" yaml:"semantic"`
	Accessor int    `json:"accessor" yaml:"accessor"`
	Buffer   int    `json:"buffer" yaml:"buffer"`
	Offset   int    `json:"offset" yaml:"offset"`
	Length   int    `json:"length" yaml:"length"`
	Error    string `json:"error,omitempty" yaml:"error,omitempty"`
}

type materialSummary struct {
	Name      string     `json:"name" yaml:"name"`
	BaseColor [4]float32 `json:"base_color" yaml:"base_color,flow"`
	Metallic  float32    `json:"metallic" yaml:"metallic"`
	Roughness float32    `json:"roughness" yaml:"roughness"`
	AlphaMode string     `json:"alpha_mode" yaml:"alpha_mode"`
	Textures  []string   `json:"textures,omitempty" yaml:"textures,omitempty,flow"`
}

type imageSummary struct {
	Index    int    `json:"index" yaml:"index"`
	Name     string `json:"name,omitempty" yaml:"name,omitempty"`
	Source   string `json:"source" yaml:"source"`
	MimeType string `json:"mime_type,omitempty" yaml:"mime_type,omitempty"`
	Width    int    `json:"width,omitempty" yaml:"width,omitempty"`
	Height   int    `json:"height,omitempty" yaml:"height,omitempty"`
}

type nodeSummary struct {
	Index    int        `json:"index" yaml:"index"`
	Name     string     `json:"name,omitempty" yaml:"name,omitempty"`
	Mesh     *int       `json:"mesh,omitempty" yaml:"mesh,omitempty"`
	Position [3]float32 `json:"world_position" yaml:"world_position,flow"`
}

type cameraSummary struct {
	Node     int        `json:"node" yaml:"node"`
	Name     string     `json:"name,omitempty" yaml:"name,omitempty"`
	Type     string     `json:"type" yaml:"type"`
	YFov     float32    `json:"yfov,omitempty" yaml:"yfov,omitempty"`
	Near     float32    `json:"znear" yaml:"znear"`
	Far      float32    `json:"zfar,omitempty" yaml:"zfar,omitempty"`
	Position [3]float32 `json:"world_position" yaml:"world_position,flow"`
}

// buildSummary collects the printable view of imp.
func buildSummary(imp *importer.Import) (*summary, error) {
	doc := imp.Document
	s := &summary{
		Name: imp.Name,
		Counts: map[string]int{
			"accessors":   len(doc.Accessors),
			"animations":  len(doc.Animations),
			"buffers":     len(doc.Buffers),
			"cameras":     len(doc.Cameras),
			"bufferViews": len(doc.BufferViews),
			"images":      len(doc.Images),
			"materials":   len(doc.Materials),
			"meshes":      len(doc.Meshes),
			"nodes":       len(doc.Nodes),
			"samplers":    len(doc.Samplers),
			"scenes":      len(doc.Scenes),
			"skins":       len(doc.Skins),
			"textures":    len(doc.Textures),
		},
		Extensions: doc.ExtensionsRequired,
		Meshes:     []meshSummary{},
		Materials:  []materialSummary{},
		Images:     []imageSummary{},
		Nodes:      []nodeSummary{},
	}
	if doc.Asset != nil {
		s.Version = doc.Asset.Version
		s.Generator = doc.Asset.Generator
	}

	for i, mesh := range doc.Meshes {
		ms := meshSummary{Index: i, Name: mesh.Name}
		for _, prim := range mesh.Primitives {
			ms.Primitives = append(ms.Primitives, summarizePrimitive(imp, prim))
		}
		s.Meshes = append(s.Meshes, ms)
	}

	for _, mat := range imp.Materials {
		m := materialSummary{
			Name:      mat.Name,
			BaseColor: mat.BaseColor,
			Metallic:  mat.Metallic,
			Roughness: mat.Roughness,
			AlphaMode: mat.AlphaMode,
		}
		for _, slot := range [...]struct {
			name string
			tex  *common.ImportedTexture
		}{
			{"baseColor", mat.BaseColorTexture},
			{"metallicRoughness", mat.MetallicRoughnessTexture},
			{"normal", mat.NormalTexture},
			{"occlusion", mat.OcclusionTexture},
			{"emissive", mat.EmissiveTexture},
		} {
			if slot.tex != nil {
				m.Textures = append(m.Textures, fmt.Sprintf("%s=image[%d]", slot.name, slot.tex.ImageIndex))
			}
		}
		s.Materials = append(s.Materials, m)
	}

	for i := range doc.Images {
		is := imageSummary{Index: i, Name: doc.Images[i].Name}
		src, err := imp.Resolver.ImageSourceAt(i)
		if err != nil {
			is.Source = "error: " + err.Error()
		} else {
			is.Source = src.Kind.String()
			is.MimeType = src.MimeType
			if src.Kind == resolver.SourceExternalPath {
				is.Source += " " + src.Path
			}
		}
		if i < len(imp.Images) && imp.Images[i] != nil {
			img := imp.Images[i]
			is.Width, is.Height = img.Width, img.Height
		}
		s.Images = append(s.Images, is)
	}

	err := imp.WalkScene(func(index int, node *gltf.Node, world mgl32.Mat4) error {
		s.Nodes = append(s.Nodes, nodeSummary{
			Index:    index,
			Name:     node.Name,
			Mesh:     node.Mesh,
			Position: world.Col(3).Vec3(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}

	cams, err := imp.Cameras(1)
	if err != nil {
		return nil, fmt.Errorf("cameras: %w", err)
	}
	for _, c := range cams {
		cs := cameraSummary{
			Node: c.Node,
			Name: c.Name(),
			Type: gltf.CameraTypePerspective,
			YFov: c.Fov(),
			Near: c.Near(),
		}
		if c.Orthographic() {
			cs.Type = gltf.CameraTypeOrthographic
		}
		if far := c.Far(); !math.IsInf(float64(far), 1) {
			cs.Far = far
		}
		cs.Position[0], cs.Position[1], cs.Position[2] = c.Position()
		s.Cameras = append(s.Cameras, cs)
	}

	return s, nil
}

func summarizePrimitive(imp *importer.Import, prim gltf.Primitive) primitiveSummary {
	ps := primitiveSummary{Mode: prim.Mode.String(), Material: prim.Material}

	semantics := make([]string, 0, len(prim.Attributes))
	for name := range prim.Attributes {
		semantics = append(semantics, name)
	}
	slices.Sort(semantics)
	if prim.Indices != nil {
		semantics = append(semantics, "indices")
	}

	for _, name := range semantics {
		index := prim.Attributes[name]
		if name == "indices" {
			index = *prim.Indices
		}
		as := attributeSummary{Semantic: name, Accessor: index}
		slice, err := imp.Resolver.Attribute(index)
		if err != nil {
			as.Error = err.Error()
		} else {
			as.Buffer, as.Offset, as.Length = slice.Buffer, slice.Offset, slice.Length
		}
		ps.Attributes = append(ps.Attributes, as)
	}
	return ps
}

// writeSummary prints s in the configured format.
func writeSummary(w io.Writer, s *summary, format string) error {
	switch format {
	case formatJSON:
		data, err := json.MarshalIndent(s, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return err
		}
		return enc.Close()
	default:
		return writeText(w, s)
	}
}

func writeText(w io.Writer, s *summary) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "name:\t%s\n", s.Name)
	if s.Version != "" {
		fmt.Fprintf(tw, "version:\t%s\n", s.Version)
	}
	if s.Generator != "" {
		fmt.Fprintf(tw, "generator:\t%s\n", s.Generator)
	}
	keys := make([]string, 0, len(s.Counts))
	for k := range s.Counts {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		fmt.Fprintf(tw, "%s:\t%d\n", k, s.Counts[k])
	}

	for _, m := range s.Meshes {
		fmt.Fprintf(tw, "\nmesh[%d] %s\n", m.Index, m.Name)
		for pi, p := range m.Primitives {
			fmt.Fprintf(tw, "  primitive[%d]\t%s\n", pi, p.Mode)
			for _, a := range p.Attributes {
				if a.Error != "" {
					fmt.Fprintf(tw, "    %s\taccessor %d\terror: %s\n", a.Semantic, a.Accessor, a.Error)
					continue
				}
				fmt.Fprintf(tw, "    %s\taccessor %d\tbuffer %d\toffset %d\tlength %d\n", a.Semantic, a.Accessor, a.Buffer, a.Offset, a.Length)
			}
		}
	}

	for _, img := range s.Images {
		fmt.Fprintf(tw, "\nimage[%d] %s\t%s\t%s\t%dx%d\n", img.Index, img.Name, img.Source, img.MimeType, img.Width, img.Height)
	}
	for _, n := range s.Nodes {
		fmt.Fprintf(tw, "node[%d] %s\tworld (%.3f, %.3f, %.3f)\n", n.Index, n.Name, n.Position[0], n.Position[1], n.Position[2])
	}
	for _, c := range s.Cameras {
		fmt.Fprintf(tw, "camera %s\t%s\tnode %d\tworld (%.3f, %.3f, %.3f)\n", c.Name, c.Type, c.Node, c.Position[0], c.Position[1], c.Position[2])
	}

	return tw.Flush()
}
