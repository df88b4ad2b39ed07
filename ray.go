package panolens

import (
	"math"
	"sort"
)

// Ray is a half-line in world space. Dir is expected to be normalized.
type Ray struct {
	Origin Vec3
	Dir    Vec3
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Dir.Scale(t))
}

// Intersection is the ephemeral result of a ray cast against one primitive.
// Produced fresh on every cast; never persisted across frames.
type Intersection struct {
	Object   *Object
	Point    Vec3
	Distance float64
}

// --- Built-in hit volumes ---

// SphereVolume is a sphere hit volume centered on the owner's world position.
type SphereVolume struct {
	Radius float64
}

// IntersectRay solves the ray/sphere quadratic and returns the nearest
// non-negative root. A ray starting inside the sphere hits at the exit point.
func (s SphereVolume) IntersectRay(ray Ray, center Vec3) (float64, bool) {
	oc := ray.Origin.Sub(center)
	b := oc.Dot(ray.Dir)
	c := oc.Dot(oc) - s.Radius*s.Radius
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	sq := math.Sqrt(disc)
	t := -b - sq
	if t < 0 {
		t = -b + sq
	}
	if t < 0 {
		return 0, false
	}
	return t, true
}

// BoxVolume is an axis-aligned box hit volume. Min and Max are local offsets
// from the owner's world position.
type BoxVolume struct {
	Min, Max Vec3
}

// IntersectRay runs the slab test against the box translated to center.
// A ray starting inside the box hits at the exit point.
func (b BoxVolume) IntersectRay(ray Ray, center Vec3) (float64, bool) {
	lo := b.Min.Add(center)
	hi := b.Max.Add(center)

	tmin := math.Inf(-1)
	tmax := math.Inf(1)

	slab := func(origin, dir, minV, maxV float64) bool {
		if dir != 0 {
			t1 := (minV - origin) / dir
			t2 := (maxV - origin) / dir
			if t1 > t2 {
				t1, t2 = t2, t1
			}
			if t1 > tmin {
				tmin = t1
			}
			if t2 < tmax {
				tmax = t2
			}
			return true
		}
		return origin >= minV && origin <= maxV
	}

	if !slab(ray.Origin.X, ray.Dir.X, lo.X, hi.X) {
		return 0, false
	}
	if !slab(ray.Origin.Y, ray.Dir.Y, lo.Y, hi.Y) {
		return 0, false
	}
	if !slab(ray.Origin.Z, ray.Dir.Z, lo.Z, hi.Z) {
		return 0, false
	}

	if tmax < tmin || tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}

// --- Raycaster ---

// Raycaster produces the ordered intersection list for a ray against a
// subtree. Implementations must return hits sorted nearest-first. The
// built-in VolumeRaycaster tests object hit volumes; a renderer collaborator
// with real geometry can substitute its own.
type Raycaster interface {
	Cast(ray Ray, root *Object, recursive bool) []Intersection
}

// VolumeRaycaster intersects rays against object HitVolumes. It is a pure
// function of (ray, tree) — no state is kept between casts.
type VolumeRaycaster struct{}

// Cast walks root (and, when recursive, its descendants), intersecting every
// visible object that carries a hit volume, and returns the hits sorted by
// ascending distance. Invisible subtrees are skipped entirely.
func (VolumeRaycaster) Cast(ray Ray, root *Object, recursive bool) []Intersection {
	if root == nil {
		return nil
	}
	var hits []Intersection
	hits = castObject(ray, root, recursive, hits)
	sort.Slice(hits, func(i, j int) bool {
		return hits[i].Distance < hits[j].Distance
	})
	return hits
}

func castObject(ray Ray, o *Object, recursive bool, hits []Intersection) []Intersection {
	if !o.Visible {
		return hits
	}
	if o.Volume != nil {
		if t, ok := o.Volume.IntersectRay(ray, o.WorldPosition()); ok {
			hits = append(hits, Intersection{Object: o, Point: ray.At(t), Distance: t})
		}
	}
	if recursive {
		for _, c := range o.children {
			hits = castObject(ray, c, recursive, hits)
		}
	}
	return hits
}
