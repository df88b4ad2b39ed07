package panolens

import (
	"math"

	"go.uber.org/zap"
)

// Control is a camera-control scheme. Exactly one control is active on a
// viewer at a time; the set itself is fixed at construction.
type Control interface {
	Kind() ControlKind
	Enable()
	Disable()
	Update(dt float64)
}

// dragControl is implemented by schemes that consume pointer drag deltas.
type dragControl interface {
	Drag(dx, dy float64)
}

// zoomControl is implemented by schemes that consume wheel deltas.
type zoomControl interface {
	Zoom(delta float64)
}

// --- Orbit control ---

// OrbitControl orbits the camera around a target point using spherical
// coordinates driven by pointer drags. Elevation is clamped short of the
// poles to keep the world-up basis valid.
type OrbitControl struct {
	cam     *Camera
	enabled bool

	target    Vec3
	radius    float64
	azimuth   float64
	elevation float64

	minRadius    float64
	maxRadius    float64
	maxElevation float64

	// RotateSpeed is the orbit sensitivity in radians per pixel.
	RotateSpeed float64
	// ZoomSpeed scales wheel deltas into radius changes.
	ZoomSpeed float64
}

// NewOrbitControl creates an orbit control bound to cam.
func NewOrbitControl(cam *Camera) *OrbitControl {
	return &OrbitControl{
		cam:          cam,
		radius:       1,
		minRadius:    0.1,
		maxRadius:    100,
		maxElevation: math.Pi/2 - 0.05,
		RotateSpeed:  0.005,
		ZoomSpeed:    0.1,
	}
}

// Kind returns ControlOrbit.
func (c *OrbitControl) Kind() ControlKind { return ControlOrbit }

// Enable activates the control.
func (c *OrbitControl) Enable() { c.enabled = true }

// Disable deactivates the control; drags and zooms are ignored while disabled.
func (c *OrbitControl) Disable() { c.enabled = false }

// Update is a no-op: the orbit pose changes only through input.
func (c *OrbitControl) Update(dt float64) {}

// SetTarget re-centers the orbit on the given point and re-derives the
// spherical coordinates from the camera's current offset to it.
func (c *OrbitControl) SetTarget(target Vec3) {
	c.target = target
	offset := c.cam.Position.Sub(target)
	r := offset.Length()
	if r == 0 {
		// Degenerate offset: park the camera on the default unit-Z orbit.
		c.radius, c.azimuth, c.elevation = 1, 0, 0
		c.apply()
		return
	}
	c.radius = r
	c.elevation = math.Asin(offset.Y / r)
	c.azimuth = math.Atan2(offset.X, offset.Z)
	c.apply()
}

// Drag adjusts azimuth and elevation from pointer deltas.
func (c *OrbitControl) Drag(dx, dy float64) {
	if !c.enabled {
		return
	}
	c.azimuth -= dx * c.RotateSpeed
	c.elevation += dy * c.RotateSpeed
	if c.elevation > c.maxElevation {
		c.elevation = c.maxElevation
	}
	if c.elevation < -c.maxElevation {
		c.elevation = -c.maxElevation
	}
	c.apply()
}

// Zoom adjusts the orbit radius from a wheel delta.
func (c *OrbitControl) Zoom(delta float64) {
	if !c.enabled {
		return
	}
	c.radius -= delta * c.ZoomSpeed
	if c.radius < c.minRadius {
		c.radius = c.minRadius
	}
	if c.radius > c.maxRadius {
		c.radius = c.maxRadius
	}
	c.apply()
}

// apply recomputes the camera pose from the spherical coordinates.
func (c *OrbitControl) apply() {
	cosE := math.Cos(c.elevation)
	c.cam.Position = c.target.Add(Vec3{
		X: c.radius * cosE * math.Sin(c.azimuth),
		Y: c.radius * math.Sin(c.elevation),
		Z: c.radius * cosE * math.Cos(c.azimuth),
	})
	c.cam.Target = c.target
}

// --- Device orientation control ---

// DeviceOrientationControl points the camera along the host device's
// orientation. Samples are fed externally through SetOrientation; the camera
// stays at its current position and only the view direction changes.
type DeviceOrientationControl struct {
	cam     *Camera
	enabled bool

	// Orientation angles in degrees, following the device convention:
	// alpha is the compass heading around world Y, beta the front-back tilt.
	alpha float64
	beta  float64
}

// NewDeviceOrientationControl creates a device-orientation control bound to cam.
func NewDeviceOrientationControl(cam *Camera) *DeviceOrientationControl {
	return &DeviceOrientationControl{cam: cam, beta: 90}
}

// Kind returns ControlDeviceOrientation.
func (c *DeviceOrientationControl) Kind() ControlKind { return ControlDeviceOrientation }

// Enable activates the control.
func (c *DeviceOrientationControl) Enable() { c.enabled = true }

// Disable deactivates the control.
func (c *DeviceOrientationControl) Disable() { c.enabled = false }

// SetOrientation stores the latest device orientation sample in degrees.
// The gamma (screen-roll) axis is not supported and is ignored.
func (c *DeviceOrientationControl) SetOrientation(alpha, beta float64) {
	c.alpha = alpha
	c.beta = beta
}

// Update writes the view direction derived from the stored sample. Beta of 90
// degrees (device held upright) looks at the horizon.
func (c *DeviceOrientationControl) Update(dt float64) {
	if !c.enabled {
		return
	}
	yaw := c.alpha * math.Pi / 180
	pitch := (c.beta - 90) * math.Pi / 180
	dir := Vec3{
		X: -math.Sin(yaw) * math.Cos(pitch),
		Y: math.Sin(pitch),
		Z: -math.Cos(yaw) * math.Cos(pitch),
	}
	c.cam.Target = c.cam.Position.Add(dir)
}

// --- VR control ---

// VRControl is the scheme slot for VR head tracking. The pose itself is
// written by the VR collaborator's per-frame update (see Viewer.updateControls);
// the scheme only marks VR as the active mode.
type VRControl struct {
	enabled bool
}

// NewVRControl creates the VR scheme slot.
func NewVRControl() *VRControl { return &VRControl{} }

// Kind returns ControlVR.
func (c *VRControl) Kind() ControlKind { return ControlVR }

// Enable activates the control.
func (c *VRControl) Enable() { c.enabled = true }

// Disable deactivates the control.
func (c *VRControl) Disable() { c.enabled = false }

// Update is a no-op; the device pose update runs from the coordinator tick.
func (c *VRControl) Update(dt float64) {}

// --- Coordinator ---

// activeControl returns the currently active scheme.
func (v *Viewer) activeControl() Control {
	return v.controls[v.controlIndex]
}

// ActiveControl returns the currently active camera-control scheme.
func (v *Viewer) ActiveControl() Control {
	return v.activeControl()
}

// ControlIndex returns the index of the active scheme in the fixed set.
func (v *Viewer) ControlIndex() int {
	return v.controlIndex
}

// EnableControl switches the active scheme to the given index. An out-of-range
// index is clamped to 0 with a warning. The old scheme is disabled before the
// new one activates, and the scheme-appropriate camera pose is applied
// relative to the current panorama.
func (v *Viewer) EnableControl(index int) {
	if index < 0 || index >= len(v.controls) {
		log.Warn("control index out of range, defaulting to 0", zap.Int("index", index))
		index = 0
	}
	v.activeControl().Disable()
	v.controlIndex = index
	ctl := v.activeControl()
	ctl.Enable()
	v.applyControlPose(ctl)
}

// NextControl cycles to the next scheme in the fixed set, wrapping around.
func (v *Viewer) NextControl() {
	v.EnableControl((v.controlIndex + 1) % len(v.controls))
}

// applyControlPose places the camera where the given scheme expects it,
// relative to the current panorama: orbit schemes sit one unit off the
// panorama center and orbit around it, device-orientation sits exactly at the
// center. Other schemes leave the pose untouched. No-op without a panorama.
func (v *Viewer) applyControlPose(ctl Control) {
	if v.panorama == nil {
		return
	}
	pos := v.panorama.Position()
	switch ctl.Kind() {
	case ControlOrbit:
		v.camera.Position = pos.Add(Vec3{Z: 1})
		v.camera.Target = pos
		if oc, ok := ctl.(*OrbitControl); ok {
			oc.SetTarget(pos)
		}
	case ControlDeviceOrientation:
		v.camera.Position = pos
		v.camera.Target = pos.Add(Vec3{Z: -1})
	}
}

// updateControls advances the active scheme once per tick. When the VR
// collaborator is in stereo mode its pose tracking is additionally updated.
func (v *Viewer) updateControls(dt float64) {
	v.activeControl().Update(dt)
	if v.vr != nil && v.vr.Mode() == VRModeStereo {
		v.vr.UpdatePose(v.camera)
	}
}
