// Package camera turns glTF camera definitions into view and projection matrices.
package camera

import (
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

type cameraImpl struct {
	mu *sync.Mutex

	name         string
	orthographic bool

	fov    float32
	aspect float32
	near   float32

	// far is zero for an infinite perspective projection.
	far float32

	xmag float32
	ymag float32

	// fixedAspect is set when the definition carries its own aspect ratio.
	fixedAspect bool

	world mgl32.Mat4

	viewMatrix              mgl32.Mat4
	projectionMatrix        mgl32.Mat4
	viewProjectionMatrix    mgl32.Mat4
	inverseProjectionMatrix mgl32.Mat4
}

// Camera defines the interface for a placed glTF camera.
// The camera holds projection settings and a world transform, and keeps the derived matrices
// up to date whenever either changes. All methods are safe for concurrent use.
type Camera interface {
	// Name returns the camera's name.
	Name() string

	// Orthographic reports whether the camera uses an orthographic projection.
	Orthographic() bool

	// Fov returns the vertical field of view in radians. Zero for orthographic cameras.
	Fov() float32

	// Aspect returns the aspect ratio (width / height).
	Aspect() float32

	// Near returns the near clipping plane distance.
	Near() float32

	// Far returns the far clipping plane distance, or +Inf for an infinite projection.
	Far() float32

	// Position returns the camera's world position.
	//
	// Returns:
	//   - x, y, z: position components
	Position() (x, y, z float32)

	// ViewMatrix returns the world-to-camera matrix.
	ViewMatrix() mgl32.Mat4

	// ProjectionMatrix returns the camera-to-clip matrix.
	ProjectionMatrix() mgl32.Mat4

	// ViewProjectionMatrix returns ProjectionMatrix * ViewMatrix.
	ViewProjectionMatrix() mgl32.Mat4

	// InverseProjectionMatrix returns the inverse of ProjectionMatrix.
	InverseProjectionMatrix() mgl32.Mat4

	// SetAspect sets the viewport aspect ratio and recomputes matrices.
	// It has no effect when the definition fixes its own aspect ratio.
	//
	// Parameters:
	//   - aspect: the viewport width divided by its height
	SetAspect(aspect float32)

	// SetWorld sets the camera's world transform and recomputes matrices.
	//
	// Parameters:
	//   - world: the world matrix of the node holding the camera
	SetWorld(world mgl32.Mat4)
}

var _ Camera = &cameraImpl{}

// NewCamera creates a new Camera with default perspective settings at the origin,
// looking down -Z.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:     &sync.Mutex{},
		fov:    45.0 * (math.Pi / 180.0), // radians
		aspect: 1.0,
		near:   0.1,
		far:    100.0,
		world:  mgl32.Ident4(),
	}
	for _, option := range options {
		option(c)
	}
	c.updateMatrices()
	return c
}

func (c *cameraImpl) Name() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.name
}

func (c *cameraImpl) Orthographic() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.orthographic
}

func (c *cameraImpl) Fov() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.orthographic {
		return 0
	}
	return c.fov
}

func (c *cameraImpl) Aspect() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect
}

func (c *cameraImpl) Near() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.near
}

func (c *cameraImpl) Far() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.far == 0 {
		return float32(math.Inf(1))
	}
	return c.far
}

func (c *cameraImpl) Position() (x, y, z float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.world[12], c.world[13], c.world[14]
}

func (c *cameraImpl) ViewMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix
}

func (c *cameraImpl) ProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix
}

func (c *cameraImpl) ViewProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewProjectionMatrix
}

func (c *cameraImpl) InverseProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inverseProjectionMatrix
}

func (c *cameraImpl) SetAspect(aspect float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fixedAspect || aspect <= 0 {
		return
	}
	c.aspect = aspect
	c.updateMatrices()
}

func (c *cameraImpl) SetWorld(world mgl32.Mat4) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.world = world
	c.updateMatrices()
}

// updateMatrices recalculates the view, projection, view-projection, and inverse projection matrices.
// Caller must hold the mutex.
func (c *cameraImpl) updateMatrices() {
	c.viewMatrix = c.world.Inv()

	switch {
	case c.orthographic:
		c.projectionMatrix = mgl32.Ortho(-c.xmag, c.xmag, -c.ymag, c.ymag, c.near, c.far)
	case c.far == 0:
		c.projectionMatrix = infinitePerspective(c.fov, c.aspect, c.near)
	default:
		c.projectionMatrix = mgl32.Perspective(c.fov, c.aspect, c.near, c.far)
	}

	c.viewProjectionMatrix = c.projectionMatrix.Mul4(c.viewMatrix)
	c.inverseProjectionMatrix = c.projectionMatrix.Inv()
}

// infinitePerspective builds a right-handed perspective matrix with no far plane.
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html#infinite-perspective-projection
func infinitePerspective(fovy, aspect, near float32) mgl32.Mat4 {
	f := 1 / float32(math.Tan(float64(fovy)/2))
	return mgl32.Mat4{
		f / aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, -1, -1,
		0, 0, -2 * near, 0,
	}
}
