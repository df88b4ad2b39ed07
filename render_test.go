package panolens

import (
	"math"
	"testing"
)

func TestEquirectUV(t *testing.T) {
	tests := []struct {
		name  string
		dir   Vec3
		wantU float64
		wantV float64
	}{
		{"forward maps to texture center", Vec3{Z: -1}, 0.5, 0.5},
		{"right maps to three quarters", Vec3{X: 1}, 0.75, 0.5},
		{"left maps to one quarter", Vec3{X: -1}, 0.25, 0.5},
		{"zenith maps to top edge", Vec3{Y: 1}, 0.5, 0},
		{"nadir maps to bottom edge", Vec3{Y: -1}, 0.5, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, v := equirectUV(tt.dir)
			if math.Abs(u-tt.wantU) > epsilon {
				t.Errorf("u = %v, want %v", u, tt.wantU)
			}
			if math.Abs(v-tt.wantV) > epsilon {
				t.Errorf("v = %v, want %v", v, tt.wantV)
			}
		})
	}
}

func TestEquirectUVClampsY(t *testing.T) {
	// Slightly denormalized directions must not feed Asin out of domain.
	_, v := equirectUV(Vec3{Y: 1.0000001})
	if math.IsNaN(v) {
		t.Error("v is NaN for out-of-domain Y")
	}
}

func TestUnwrapSeam(t *testing.T) {
	tests := []struct {
		name string
		in   [4]float64
		want [4]float64
	}{
		{
			name: "contiguous quad untouched",
			in:   [4]float64{0.40, 0.42, 0.42, 0.40},
			want: [4]float64{0.40, 0.42, 0.42, 0.40},
		},
		{
			name: "seam quad unwrapped past 1",
			in:   [4]float64{0.98, 0.02, 0.02, 0.98},
			want: [4]float64{0.98, 1.02, 1.02, 0.98},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := tt.in
			unwrapSeam(&u)
			for k := range u {
				if math.Abs(u[k]-tt.want[k]) > epsilon {
					t.Fatalf("u = %v, want %v", u, tt.want)
				}
			}
		})
	}
}

func TestRenderFrameWithoutTextureIsNoOp(t *testing.T) {
	r := NewEquirectRenderer()
	r.SetSize(640, 480)
	cam := NewCamera(60, 640, 480)

	// Unregistered panorama, nil screen: must simply return.
	r.RenderFrame(nil, NewPanorama("bare", PanoramaImage), cam)
}

func TestGrowBuffers(t *testing.T) {
	v := growVertices(nil, 16)
	if len(v) != 16 {
		t.Fatalf("vertex buffer len = %d, want 16", len(v))
	}
	v2 := growVertices(v, 8)
	if len(v2) != 8 || cap(v2) != cap(v) {
		t.Error("shrinking request must reslice, not reallocate")
	}

	i := growIndices(nil, 24)
	if len(i) != 24 {
		t.Fatalf("index buffer len = %d, want 24", len(i))
	}
}
