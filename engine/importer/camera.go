package importer

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-gltf/common"
	"github.com/Carmen-Shannon/oxy-gltf/engine/camera"
	"github.com/Carmen-Shannon/oxy-gltf/engine/gltf"
	"github.com/go-gl/mathgl/mgl32"
)

// SceneCamera is a camera placed by a node of the default scene.
type SceneCamera struct {
	// Node is the index of the node holding the camera.
	Node int

	// Index is the index of the camera definition in Document.Cameras.
	Index int

	camera.Camera
}

// Cameras places every camera referenced by the default scene, in traversal order.
// Cameras are named after their definition, falling back to the node name.
//
// Parameters:
//   - aspect: the viewport aspect ratio used when a definition has none; <= 0 keeps 1
//
// Returns:
//   - []SceneCamera: the placed cameras
//   - error: an index error or ErrNodeCycle
func (im *Import) Cameras(aspect float32) ([]SceneCamera, error) {
	var out []SceneCamera
	err := im.WalkScene(func(nodeIndex int, node *gltf.Node, world mgl32.Mat4) error {
		if node.Camera == nil {
			return nil
		}
		def, err := im.Document.Camera(*node.Camera)
		if err != nil {
			return fmt.Errorf("node %d: %w", nodeIndex, err)
		}
		out = append(out, SceneCamera{
			Node:  nodeIndex,
			Index: *node.Camera,
			Camera: camera.NewCamera(
				camera.WithDefinition(*def),
				camera.WithName(common.Coalesce(def.Name, node.Name)),
				camera.WithAspect(aspect),
				camera.WithWorld(world),
			),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
