package panolens

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// EquirectRenderer is the built-in Renderer: it projects an equirectangular
// panorama texture through the camera using a screen-space triangle grid.
// Each grid vertex samples the texture at the UV its view ray points at, so
// projection quality scales with grid density rather than texture size.
//
// Textures are registered per panorama with SetTexture; panoramas without a
// texture render nothing.
type EquirectRenderer struct {
	textures map[*Panorama]*ebiten.Image

	cols int
	rows int

	width  int
	height int

	// Reused per frame, high-water-mark sized.
	vertices []ebiten.Vertex
	indices  []uint16
}

// defaultGridCols and defaultGridRows set the projection grid density. 48x32
// keeps the per-quad angular error below a pixel at typical viewport sizes.
const (
	defaultGridCols = 48
	defaultGridRows = 32
)

// NewEquirectRenderer creates a renderer with the default grid density.
func NewEquirectRenderer() *EquirectRenderer {
	return &EquirectRenderer{
		textures: make(map[*Panorama]*ebiten.Image),
		cols:     defaultGridCols,
		rows:     defaultGridRows,
	}
}

// SetTexture associates an equirectangular texture with a panorama. Passing a
// nil image removes the association.
func (r *EquirectRenderer) SetTexture(p *Panorama, img *ebiten.Image) {
	if img == nil {
		delete(r.textures, p)
		return
	}
	r.textures[p] = img
}

// SetSize records the viewport size used to lay out the projection grid.
func (r *EquirectRenderer) SetSize(width, height int) {
	r.width, r.height = width, height
}

// RenderFrame draws one frame of the panorama as seen by cam. Quads are
// emitted with unshared vertices so the horizontal texture seam can be
// unwrapped per quad.
func (r *EquirectRenderer) RenderFrame(screen *ebiten.Image, panorama *Panorama, cam *Camera) {
	tex := r.textures[panorama]
	if tex == nil || screen == nil || r.width <= 0 || r.height <= 0 {
		return
	}

	tw := float64(tex.Bounds().Dx())
	th := float64(tex.Bounds().Dy())
	alpha := float32(panorama.Alpha())

	quadCount := r.cols * r.rows
	r.vertices = growVertices(r.vertices, quadCount*4)
	r.indices = growIndices(r.indices, quadCount*6)

	cellW := float64(r.width) / float64(r.cols)
	cellH := float64(r.height) / float64(r.rows)

	vi, ii := 0, 0
	var sx, sy, u, v [4]float64
	for row := 0; row < r.rows; row++ {
		for col := 0; col < r.cols; col++ {
			sx[0], sy[0] = float64(col)*cellW, float64(row)*cellH
			sx[1], sy[1] = sx[0]+cellW, sy[0]
			sx[2], sy[2] = sx[0]+cellW, sy[0]+cellH
			sx[3], sy[3] = sx[0], sy[0]+cellH

			for k := 0; k < 4; k++ {
				u[k], v[k] = equirectUV(cam.ScreenRay(sx[k], sy[k]).Dir)
			}
			unwrapSeam(&u)

			for k := 0; k < 4; k++ {
				r.vertices[vi+k] = ebiten.Vertex{
					DstX:   float32(sx[k]),
					DstY:   float32(sy[k]),
					SrcX:   float32(u[k] * tw),
					SrcY:   float32(v[k] * th),
					ColorR: alpha,
					ColorG: alpha,
					ColorB: alpha,
					ColorA: alpha,
				}
			}
			base := uint16(vi)
			r.indices[ii+0] = base
			r.indices[ii+1] = base + 1
			r.indices[ii+2] = base + 2
			r.indices[ii+3] = base
			r.indices[ii+4] = base + 2
			r.indices[ii+5] = base + 3
			vi += 4
			ii += 6
		}
	}

	opts := &ebiten.DrawTrianglesOptions{Address: ebiten.AddressRepeat}
	screen.DrawTriangles(r.vertices[:vi], r.indices[:ii], tex, opts)
}

// equirectUV maps a view direction to equirectangular texture coordinates.
// U wraps around the Y axis with -Z at the texture center; V runs from the
// zenith (0) to the nadir (1).
func equirectUV(dir Vec3) (u, v float64) {
	u = 0.5 + math.Atan2(dir.X, -dir.Z)/(2*math.Pi)
	y := dir.Y
	if y > 1 {
		y = 1
	}
	if y < -1 {
		y = -1
	}
	v = 0.5 - math.Asin(y)/math.Pi
	return u, v
}

// unwrapSeam shifts wrapped U coordinates within one quad so the quad never
// spans the 0/1 texture seam. The repeat address mode resolves U outside [0, 1].
func unwrapSeam(u *[4]float64) {
	minU, maxU := u[0], u[0]
	for _, x := range u[1:] {
		if x < minU {
			minU = x
		}
		if x > maxU {
			maxU = x
		}
	}
	if maxU-minU <= 0.5 {
		return
	}
	for k := range u {
		if u[k] < 0.5 {
			u[k]++
		}
	}
}

// growVertices resizes the vertex buffer to n, never shrinking capacity.
func growVertices(buf []ebiten.Vertex, n int) []ebiten.Vertex {
	if cap(buf) < n {
		return make([]ebiten.Vertex, n)
	}
	return buf[:n]
}

// growIndices resizes the index buffer to n, never shrinking capacity.
func growIndices(buf []uint16, n int) []uint16 {
	if cap(buf) < n {
		return make([]uint16, n)
	}
	return buf[:n]
}
