package panolens

import (
	"math"
	"testing"
)

func newControlsViewer() *Viewer {
	cfg := DefaultConfig()
	cfg.FadeDuration = 0
	v := NewViewer(cfg)
	v.Add(NewPanorama("test", PanoramaImage))
	return v
}

func TestControlCycle(t *testing.T) {
	v := newControlsViewer()

	if len(v.controls) != 3 {
		t.Fatalf("control count = %d, want 3", len(v.controls))
	}
	if v.ActiveControl().Kind() != ControlOrbit {
		t.Fatalf("initial control = %v, want orbit", v.ActiveControl().Kind())
	}

	want := []ControlKind{ControlDeviceOrientation, ControlVR, ControlOrbit}
	for _, kind := range want {
		v.NextControl()
		if got := v.ActiveControl().Kind(); got != kind {
			t.Errorf("after NextControl: %v, want %v", got, kind)
		}
	}
}

func TestControlSetWithoutVR(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EnableVR = false
	v := NewViewer(cfg)

	if len(v.controls) != 2 {
		t.Fatalf("control count = %d, want 2", len(v.controls))
	}
	v.NextControl()
	v.NextControl()
	if v.ControlIndex() != 0 {
		t.Errorf("two-scheme cycle landed on %d, want 0", v.ControlIndex())
	}
}

func TestEnableControlClampsOutOfRange(t *testing.T) {
	v := newControlsViewer()

	v.EnableControl(1)
	v.EnableControl(99)
	if v.ControlIndex() != 0 {
		t.Errorf("out-of-range index landed on %d, want 0", v.ControlIndex())
	}
	v.EnableControl(-1)
	if v.ControlIndex() != 0 {
		t.Errorf("negative index landed on %d, want 0", v.ControlIndex())
	}
}

func TestEnableControlSwapsEnabledFlags(t *testing.T) {
	v := newControlsViewer()
	orbit := v.controls[0].(*OrbitControl)
	dev := v.controls[1].(*DeviceOrientationControl)

	if !orbit.enabled {
		t.Fatal("orbit not enabled at construction")
	}
	v.EnableControl(1)
	if orbit.enabled {
		t.Error("old scheme still enabled after switch")
	}
	if !dev.enabled {
		t.Error("new scheme not enabled after switch")
	}
}

func TestControlPoseOrbit(t *testing.T) {
	v := newControlsViewer()
	pano := NewPanorama("far", PanoramaImage)
	pano.SetPosition(Vec3{10, 0, -20})
	v.Add(pano)
	v.SetPanorama(pano)

	cam := v.Camera()
	if !vecNear(cam.Position, Vec3{10, 0, -19}, epsilon) {
		t.Errorf("orbit camera position = %v, want panorama center + Z", cam.Position)
	}
	if !vecNear(cam.Target, Vec3{10, 0, -20}, epsilon) {
		t.Errorf("orbit camera target = %v, want panorama center", cam.Target)
	}
}

func TestControlPoseDeviceOrientation(t *testing.T) {
	v := newControlsViewer()
	pano := NewPanorama("far", PanoramaImage)
	pano.SetPosition(Vec3{10, 0, -20})
	v.Add(pano)
	v.SetPanorama(pano)

	v.EnableControl(1)

	cam := v.Camera()
	if !vecNear(cam.Position, Vec3{10, 0, -20}, epsilon) {
		t.Errorf("device-orientation camera position = %v, want panorama center", cam.Position)
	}
	if !vecNear(cam.Target, Vec3{10, 0, -21}, epsilon) {
		t.Errorf("device-orientation camera target = %v, want center - Z", cam.Target)
	}
}

func TestOrbitDrag(t *testing.T) {
	v := newControlsViewer()
	orbit := v.controls[0].(*OrbitControl)
	cam := v.Camera()

	start := cam.Position
	orbit.Drag(50, 0)
	if cam.Position == start {
		t.Error("drag did not move the camera")
	}
	if math.Abs(cam.Position.Distance(cam.Target)-orbit.radius) > 1e-9 {
		t.Errorf("drag changed orbit distance: %v, want %v",
			cam.Position.Distance(cam.Target), orbit.radius)
	}
	if cam.Target != orbit.target {
		t.Error("drag moved the orbit target")
	}
}

func TestOrbitElevationClamp(t *testing.T) {
	v := newControlsViewer()
	orbit := v.controls[0].(*OrbitControl)

	orbit.Drag(0, 1e6)
	if orbit.elevation != orbit.maxElevation {
		t.Errorf("elevation = %v, want clamp at %v", orbit.elevation, orbit.maxElevation)
	}
	orbit.Drag(0, -1e6)
	if orbit.elevation != -orbit.maxElevation {
		t.Errorf("elevation = %v, want clamp at %v", orbit.elevation, -orbit.maxElevation)
	}
}

func TestOrbitZoomClamps(t *testing.T) {
	v := newControlsViewer()
	orbit := v.controls[0].(*OrbitControl)

	orbit.Zoom(1e6)
	if orbit.radius != orbit.minRadius {
		t.Errorf("radius = %v, want clamp at %v", orbit.radius, orbit.minRadius)
	}
	orbit.Zoom(-1e6)
	if orbit.radius != orbit.maxRadius {
		t.Errorf("radius = %v, want clamp at %v", orbit.radius, orbit.maxRadius)
	}
}

func TestOrbitDisabledIgnoresInput(t *testing.T) {
	v := newControlsViewer()
	orbit := v.controls[0].(*OrbitControl)
	orbit.Disable()

	pos := v.Camera().Position
	orbit.Drag(100, 100)
	orbit.Zoom(5)
	if v.Camera().Position != pos {
		t.Error("disabled orbit control moved the camera")
	}
}

func TestOrbitSetTargetDerivesSpherical(t *testing.T) {
	cam := NewCamera(60, 100, 100)
	orbit := NewOrbitControl(cam)

	cam.Position = Vec3{0, 3, 4}
	orbit.SetTarget(Vec3{})

	if math.Abs(orbit.radius-5) > epsilon {
		t.Errorf("radius = %v, want 5", orbit.radius)
	}
	if math.Abs(orbit.elevation-math.Asin(3.0/5.0)) > epsilon {
		t.Errorf("elevation = %v", orbit.elevation)
	}
	if !vecNear(cam.Position, Vec3{0, 3, 4}, 1e-9) {
		t.Errorf("SetTarget moved the camera to %v", cam.Position)
	}
}

func TestDeviceOrientationUpdate(t *testing.T) {
	cam := NewCamera(60, 100, 100)
	cam.Position = Vec3{1, 2, 3}
	dev := NewDeviceOrientationControl(cam)
	dev.Enable()

	tests := []struct {
		name        string
		alpha, beta float64
		wantDir     Vec3
	}{
		{"upright facing north", 0, 90, Vec3{Z: -1}},
		{"quarter turn", 90, 90, Vec3{X: -1}},
		{"facing straight up", 0, 180, Vec3{Y: 1}},
		{"facing straight down", 0, 0, Vec3{Y: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dev.SetOrientation(tt.alpha, tt.beta)
			dev.Update(0)
			dir := cam.Target.Sub(cam.Position)
			if !vecNear(dir, tt.wantDir, epsilon) {
				t.Errorf("view dir = %v, want %v", dir, tt.wantDir)
			}
		})
	}
}

func TestDeviceOrientationDisabledIgnoresUpdate(t *testing.T) {
	cam := NewCamera(60, 100, 100)
	dev := NewDeviceOrientationControl(cam)

	target := cam.Target
	dev.SetOrientation(45, 120)
	dev.Update(0)
	if cam.Target != target {
		t.Error("disabled device-orientation control moved the camera")
	}
}
