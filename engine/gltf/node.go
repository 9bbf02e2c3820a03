package gltf

import (
	"github.com/go-gl/mathgl/mgl32"
)

// LocalMatrix returns the node's local transform.
// An explicit matrix takes precedence; otherwise the transform is T * R * S with identity
// defaults for every absent component.
func (n *Node) LocalMatrix() mgl32.Mat4 {
	if n.Matrix != nil {
		var m mgl32.Mat4
		for i, v := range n.Matrix {
			m[i] = float32(v)
		}
		return m
	}

	t := mgl32.Ident4()
	if n.Translation != nil {
		t = mgl32.Translate3D(float32(n.Translation[0]), float32(n.Translation[1]), float32(n.Translation[2]))
	}

	r := mgl32.Ident4()
	if n.Rotation != nil {
		q := mgl32.Quat{
			W: float32(n.Rotation[3]),
			V: mgl32.Vec3{float32(n.Rotation[0]), float32(n.Rotation[1]), float32(n.Rotation[2])},
		}
		r = q.Normalize().Mat4()
	}

	s := mgl32.Ident4()
	if n.Scale != nil {
		s = mgl32.Scale3D(float32(n.Scale[0]), float32(n.Scale[1]), float32(n.Scale[2]))
	}

	return t.Mul4(r).Mul4(s)
}
