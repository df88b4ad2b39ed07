package panolens

import (
	"math"
	"testing"
)

func TestFirstPanoramaBecomesCurrent(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FadeDuration = 0
	v := NewViewer(cfg)

	first := NewPanorama("first", PanoramaImage)
	second := NewPanorama("second", PanoramaImage)
	v.Add(first)
	v.Add(second)

	if v.CurrentPanorama() != first {
		t.Errorf("current = %v, want the first added panorama", v.CurrentPanorama())
	}
	if len(v.panoramas) != 2 {
		t.Errorf("panorama count = %d, want 2", len(v.panoramas))
	}
}

func TestAddPanoramaDedupes(t *testing.T) {
	v := NewViewer(DefaultConfig())
	p := NewPanorama("dup", PanoramaImage)
	v.Add(p)
	v.Add(p)

	if len(v.panoramas) != 1 {
		t.Errorf("panorama count = %d, want 1", len(v.panoramas))
	}
}

func TestSetPanoramaLeaveBeforeEnter(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FadeDuration = 0
	v := NewViewer(cfg)

	var order []string
	a := NewPanorama("a", PanoramaImage)
	a.OnEnter = func() { order = append(order, "enter-a") }
	a.OnLeave = func() { order = append(order, "leave-a") }
	b := NewPanorama("b", PanoramaImage)
	b.OnEnter = func() { order = append(order, "enter-b") }

	v.Add(a)
	v.Add(b)
	v.SetPanorama(b)

	want := []string{"enter-a", "leave-a", "enter-b"}
	if len(order) != len(want) {
		t.Fatalf("lifecycle order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("lifecycle order = %v, want %v", order, want)
		}
	}
}

func TestSetPanoramaSameIsNoOp(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FadeDuration = 0
	v := NewViewer(cfg)

	enters, changes := 0, 0
	p := NewPanorama("only", PanoramaImage)
	p.OnEnter = func() { enters++ }
	v.OnPanoramaChange(func(*Panorama) { changes++ })

	v.Add(p)
	v.SetPanorama(p)
	v.SetPanorama(nil)

	if enters != 1 {
		t.Errorf("enters = %d, want 1", enters)
	}
	if changes != 1 {
		t.Errorf("change notifications = %d, want 1", changes)
	}
	if v.CurrentPanorama() != p {
		t.Error("nil switch replaced the current panorama")
	}
}

func TestSetPanoramaAppliesPoseBeforeEnter(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FadeDuration = 0
	v := NewViewer(cfg)

	p := NewPanorama("room", PanoramaImage)
	p.SetPosition(Vec3{50, 0, 0})
	var poseAtEnter Vec3
	p.OnEnter = func() { poseAtEnter = v.Camera().Position }

	v.Add(p)

	if !vecNear(poseAtEnter, Vec3{50, 0, 1}, epsilon) {
		t.Errorf("camera at enter = %v, want already placed at panorama", poseAtEnter)
	}
}

func TestVideoPanoramaWidgetNotifications(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FadeDuration = 0
	v := NewViewer(cfg)
	w := &fakeWidget{}
	v.SetWidget(w)

	video := NewPanorama("clip", PanoramaVideo)
	image := NewPanorama("still", PanoramaImage)
	v.Add(video)

	if w.shows != 1 {
		t.Errorf("shows = %d after entering video, want 1", w.shows)
	}

	v.Add(image)
	v.SetPanorama(image)

	if w.hides != 1 {
		t.Errorf("hides = %d after leaving video, want 1", w.hides)
	}
	if w.shows != 1 {
		t.Errorf("shows = %d after entering image, want still 1", w.shows)
	}
}

func TestSetVideoProgress(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FadeDuration = 0
	v := NewViewer(cfg)
	w := &fakeWidget{}
	v.SetWidget(w)
	v.Add(NewPanorama("clip", PanoramaVideo))

	v.SetVideoProgress(0.5)
	v.SetVideoProgress(-1)
	v.SetVideoProgress(7)

	want := []float64{0.5, 0, 1}
	if len(w.progress) != len(want) {
		t.Fatalf("progress reports = %v, want %v", w.progress, want)
	}
	for i := range want {
		if w.progress[i] != want[i] {
			t.Fatalf("progress reports = %v, want %v", w.progress, want)
		}
	}
}

func TestSetVideoProgressIgnoredForImage(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FadeDuration = 0
	v := NewViewer(cfg)
	w := &fakeWidget{}
	v.SetWidget(w)
	v.Add(NewPanorama("still", PanoramaImage))

	v.SetVideoProgress(0.5)

	if len(w.progress) != 0 {
		t.Errorf("progress reported for image panorama: %v", w.progress)
	}
}

func TestAddUnsupportedItemIgnored(t *testing.T) {
	v := NewViewer(DefaultConfig())
	before := len(v.World().Children())

	v.Add(42)
	v.Add("not a scene object")
	v.Add(nil)

	if got := len(v.World().Children()); got != before {
		t.Errorf("world children = %d after unsupported adds, want %d", got, before)
	}
}

func TestAddObjectAttachesToWorld(t *testing.T) {
	v := NewViewer(DefaultConfig())
	o := NewObject("floating", SphereVolume{Radius: 1})
	v.Add(o)

	if o.Parent != v.World() {
		t.Error("object not attached to the world root")
	}
}

func TestPanoramaEnterFade(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FadeDuration = 1
	v := NewViewer(cfg)
	p := NewPanorama("fade", PanoramaImage)
	v.Add(p)

	if p.Alpha() != 0 {
		t.Fatalf("alpha at enter = %v, want 0", p.Alpha())
	}
	p.update(0.5)
	if math.Abs(p.Alpha()-0.5) > 0.01 {
		t.Errorf("alpha midway = %v, want ~0.5", p.Alpha())
	}
	p.update(0.6)
	if p.Alpha() != 1 {
		t.Errorf("alpha after fade = %v, want 1", p.Alpha())
	}
	if p.fade != nil {
		t.Error("fade tween not cleared after completion")
	}
}

func TestPanoramaZeroFadeSnapsOpaque(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FadeDuration = 0
	v := NewViewer(cfg)
	p := NewPanorama("snap", PanoramaImage)
	v.Add(p)

	if p.Alpha() != 1 {
		t.Errorf("alpha = %v with zero fade, want 1", p.Alpha())
	}
}

func TestPanoramaAddAndPosition(t *testing.T) {
	p := NewPanorama("room", PanoramaImage)
	p.SetPosition(Vec3{5, 0, 0})
	m := NewMarker("exit", SphereVolume{Radius: 10})
	m.Position = Vec3{0, 0, -100}
	p.Add(m)

	if m.Parent != p.Root {
		t.Error("marker not attached to the panorama root")
	}
	if got := m.WorldPosition(); got != (Vec3{5, 0, -100}) {
		t.Errorf("marker world position = %v", got)
	}
	if got := p.Position(); got != (Vec3{5, 0, 0}) {
		t.Errorf("panorama position = %v", got)
	}
}

func TestPanoramaRootPassThrough(t *testing.T) {
	p := NewPanorama("room", PanoramaImage)
	if !p.Root.PassThrough {
		t.Error("panorama root must be pass-through")
	}
	if _, ok := p.Root.Volume.(SphereVolume); !ok {
		t.Error("panorama root must carry a sphere hit volume")
	}
}
