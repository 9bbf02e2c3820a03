package gltf

// lookup dereferences index into items, reporting an *IndexOutOfRangeError when it is outside
// the collection.
func lookup[T any](kind string, items []T, index int) (*T, error) {
	if index < 0 || index >= len(items) {
		return nil, &IndexOutOfRangeError{Kind: kind, Index: index, Len: len(items)}
	}
	return &items[index], nil
}

// Accessor returns the accessor at index.
// The returned pointer aliases the document and must not be modified.
func (d *Document) Accessor(index int) (*Accessor, error) {
	return lookup("accessors", d.Accessors, index)
}

// Buffer returns the buffer at index.
func (d *Document) Buffer(index int) (*Buffer, error) {
	return lookup("buffers", d.Buffers, index)
}

// BufferView returns the buffer view at index.
func (d *Document) BufferView(index int) (*BufferView, error) {
	return lookup("bufferViews", d.BufferViews, index)
}

// Image returns the image at index.
func (d *Document) Image(index int) (*Image, error) {
	return lookup("images", d.Images, index)
}

// Sampler returns the sampler at index.
func (d *Document) Sampler(index int) (*Sampler, error) {
	return lookup("samplers", d.Samplers, index)
}

// Texture returns the texture at index.
func (d *Document) Texture(index int) (*Texture, error) {
	return lookup("textures", d.Textures, index)
}

// Material returns the material at index.
func (d *Document) Material(index int) (*Material, error) {
	return lookup("materials", d.Materials, index)
}

// Mesh returns the mesh at index.
func (d *Document) Mesh(index int) (*Mesh, error) {
	return lookup("meshes", d.Meshes, index)
}

// Node returns the node at index.
func (d *Document) Node(index int) (*Node, error) {
	return lookup("nodes", d.Nodes, index)
}

// Camera returns the camera at index.
func (d *Document) Camera(index int) (*Camera, error) {
	return lookup("cameras", d.Cameras, index)
}

// SceneAt returns the scene at index.
func (d *Document) SceneAt(index int) (*Scene, error) {
	return lookup("scenes", d.Scenes, index)
}

// Skin returns the skin at index.
func (d *Document) Skin(index int) (*Skin, error) {
	return lookup("skins", d.Skins, index)
}

// Animation returns the animation at index.
func (d *Document) Animation(index int) (*Animation, error) {
	return lookup("animations", d.Animations, index)
}

// DefaultScene returns the scene selected by the document's scene field, falling back to the
// first scene. A document without scenes yields a nil scene and index -1.
//
// Returns:
//   - *Scene: the default scene, or nil
//   - int: its index, or -1
//   - error: *IndexOutOfRangeError when the scene field points past the scenes array
func (d *Document) DefaultScene() (*Scene, int, error) {
	if d.Scene != nil {
		s, err := d.SceneAt(*d.Scene)
		if err != nil {
			return nil, -1, err
		}
		return s, *d.Scene, nil
	}
	if len(d.Scenes) == 0 {
		return nil, -1, nil
	}
	return &d.Scenes[0], 0, nil
}

// TextureImage follows a texture reference to its image. The image pointer is nil when the
// texture has no source (for example when the image lives in an unsupported extension).
func (d *Document) TextureImage(info TextureInfo) (*Image, error) {
	tex, err := d.Texture(info.Index)
	if err != nil {
		return nil, err
	}
	if tex.Source == nil {
		return nil, nil
	}
	return d.Image(*tex.Source)
}
