package importer

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-gltf/engine/gltf"
	"github.com/go-gl/mathgl/mgl32"
)

// NodeVisitor is called once per node reached by WalkScene, parents before children.
// Returning an error stops the walk.
type NodeVisitor func(nodeIndex int, node *gltf.Node, world mgl32.Mat4) error

// WalkScene visits the nodes of the default scene depth-first, passing each node's world matrix.
// A document without scenes is walked as empty.
//
// Parameters:
//   - visit: the callback invoked for each node
//
// Returns:
//   - error: an index error, ErrNodeCycle, or the first error returned by visit
func (im *Import) WalkScene(visit NodeVisitor) error {
	scene, _, err := im.Document.DefaultScene()
	if err != nil {
		return err
	}
	if scene == nil {
		return nil
	}

	onPath := make(map[int]bool)
	for _, root := range scene.Nodes {
		if err := im.walkNode(root, mgl32.Ident4(), onPath, visit); err != nil {
			return err
		}
	}
	return nil
}

func (im *Import) walkNode(index int, parent mgl32.Mat4, onPath map[int]bool, visit NodeVisitor) error {
	if onPath[index] {
		return fmt.Errorf("node %d: %w", index, ErrNodeCycle)
	}
	node, err := im.Document.Node(index)
	if err != nil {
		return err
	}

	world := parent.Mul4(node.LocalMatrix())
	if err := visit(index, node, world); err != nil {
		return err
	}

	onPath[index] = true
	defer delete(onPath, index)
	for _, child := range node.Children {
		if err := im.walkNode(child, world, onPath, visit); err != nil {
			return err
		}
	}
	return nil
}
