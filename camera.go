package panolens

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// poseAnim holds active pose tweens for camera position and target.
type poseAnim struct {
	tweens [6]*gween.Tween
}

// Camera is a perspective camera defined by a position and a look-at target.
// The up reference is world Y; rolling the camera is not supported.
type Camera struct {
	// Position is the world-space eye position.
	Position Vec3
	// Target is the world-space point the camera looks at.
	Target Vec3
	// FOV is the vertical field of view in degrees.
	FOV float64

	width  int
	height int

	poseTween *poseAnim
}

// NewCamera creates a camera with the given vertical FOV and viewport size.
func NewCamera(fov float64, width, height int) *Camera {
	return &Camera{
		Target: Vec3{Z: -1},
		FOV:    fov,
		width:  width,
		height: height,
	}
}

// SetSize updates the viewport size used for aspect ratio and NDC conversion.
func (c *Camera) SetSize(width, height int) {
	if width > 0 {
		c.width = width
	}
	if height > 0 {
		c.height = height
	}
}

// Size returns the current viewport size in pixels.
func (c *Camera) Size() (width, height int) {
	return c.width, c.height
}

// Aspect returns the viewport aspect ratio.
func (c *Camera) Aspect() float64 {
	if c.height == 0 {
		return 1
	}
	return float64(c.width) / float64(c.height)
}

// basis returns the camera's orthonormal axes: forward toward the target,
// right, and up. Falls back to -Z forward when position and target coincide.
func (c *Camera) basis() (forward, right, up Vec3) {
	forward = c.Target.Sub(c.Position).Normalize()
	if forward.Length() == 0 {
		forward = Vec3{Z: -1}
	}
	right = forward.Cross(Vec3{Y: 1}).Normalize()
	if right.Length() == 0 {
		// Looking straight up or down; pick an arbitrary horizontal right.
		right = Vec3{X: 1}
	}
	up = right.Cross(forward)
	return
}

// ScreenRay builds a world-space ray from the eye through the given screen
// pixel. Screen coordinates are converted to normalized device coordinates
// (2x/W-1, -2y/H+1) and projected through the camera basis.
func (c *Camera) ScreenRay(sx, sy float64) Ray {
	ndcX := 2*sx/float64(c.width) - 1
	ndcY := -2*sy/float64(c.height) + 1

	tanHalf := math.Tan(c.FOV * math.Pi / 360)
	forward, right, up := c.basis()

	dir := forward.
		Add(right.Scale(ndcX * tanHalf * c.Aspect())).
		Add(up.Scale(ndcY * tanHalf)).
		Normalize()

	return Ray{Origin: c.Position, Dir: dir}
}

// LookTo animates the camera pose to the given position and target over
// duration seconds. A duration of zero or less snaps immediately.
func (c *Camera) LookTo(position, target Vec3, duration float32, easeFn ease.TweenFunc) {
	if duration <= 0 {
		c.Position = position
		c.Target = target
		c.poseTween = nil
		return
	}
	c.poseTween = &poseAnim{tweens: [6]*gween.Tween{
		gween.New(float32(c.Position.X), float32(position.X), duration, easeFn),
		gween.New(float32(c.Position.Y), float32(position.Y), duration, easeFn),
		gween.New(float32(c.Position.Z), float32(position.Z), duration, easeFn),
		gween.New(float32(c.Target.X), float32(target.X), duration, easeFn),
		gween.New(float32(c.Target.Y), float32(target.Y), duration, easeFn),
		gween.New(float32(c.Target.Z), float32(target.Z), duration, easeFn),
	}}
}

// update advances the pose tween. Called from Viewer.Update each tick.
func (c *Camera) update(dt float64) {
	anim := c.poseTween
	if anim == nil {
		return
	}
	var vals [6]float64
	allDone := true
	for i, tw := range anim.tweens {
		val, finished := tw.Update(float32(dt))
		vals[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	c.Position = Vec3{vals[0], vals[1], vals[2]}
	c.Target = Vec3{vals[3], vals[4], vals[5]}
	if allDone {
		c.poseTween = nil
	}
}
