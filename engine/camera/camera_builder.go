package camera

import (
	"github.com/Carmen-Shannon/oxy-gltf/engine/gltf"
	"github.com/go-gl/mathgl/mgl32"
)

type CameraBuilderOption func(*cameraImpl)

// WithDefinition copies the projection of a glTF camera.
// A perspective definition without zfar produces an infinite projection, and one with an
// aspect ratio ignores later SetAspect calls.
//
// Parameters:
//   - def: the camera definition from the document
//
// Returns:
//   - CameraBuilderOption: a function that applies the definition to the camera
func WithDefinition(def gltf.Camera) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.name = def.Name
		switch {
		case def.Orthographic != nil:
			c.orthographic = true
			c.xmag = float32(def.Orthographic.XMag)
			c.ymag = float32(def.Orthographic.YMag)
			c.near = float32(def.Orthographic.ZNear)
			c.far = float32(def.Orthographic.ZFar)
			if c.ymag != 0 {
				c.aspect = c.xmag / c.ymag
			}
			c.fixedAspect = true
		case def.Perspective != nil:
			c.orthographic = false
			c.fov = float32(def.Perspective.YFov)
			c.near = float32(def.Perspective.ZNear)
			c.far = 0
			if def.Perspective.ZFar != nil {
				c.far = float32(*def.Perspective.ZFar)
			}
			c.fixedAspect = def.Perspective.AspectRatio != nil
			if c.fixedAspect {
				c.aspect = float32(*def.Perspective.AspectRatio)
			}
		}
	}
}

// WithName sets the camera's name.
//
// Parameters:
//   - name: the name to set
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's name
func WithName(name string) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.name = name
	}
}

// WithAspect sets the viewport aspect ratio (width / height).
// It is ignored when the definition fixes its own aspect ratio.
//
// Parameters:
//   - aspect: the aspect ratio to set
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's aspect ratio
func WithAspect(aspect float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		if !c.fixedAspect && aspect > 0 {
			c.aspect = aspect
		}
	}
}

// WithWorld places the camera with the world matrix of its node.
//
// Parameters:
//   - world: the node's world matrix
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's world transform
func WithWorld(world mgl32.Mat4) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.world = world
	}
}
