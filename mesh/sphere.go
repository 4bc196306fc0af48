// Package mesh generates UV-mapped sphere geometry for globe
// rendering. Generation is pure: same inputs, same mesh.
package mesh

import (
	"fmt"
	"math"

	"github.com/LeromX/geochron/vectors"
)

// Vertex is one mesh vertex: position, outward unit normal, and
// equirectangular texture coordinates.
type Vertex struct {
	Position vectors.Vec3
	Normal   vectors.Vec3
	U, V     float64
}

// Mesh is static triangle geometry. Indices reference Vertices in
// groups of three, wound counter-clockwise viewed from outside.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// GenerateSphere builds a latitude/longitude sphere centered at the
// origin with +Z through the north pole. It produces
// (latDiv+1)*(lonDiv+1) vertices and 2*latDiv*lonDiv triangles; the
// pole rows repeat the pole position with distinct UVs, which leaves a
// harmless seam at the poles.
//
// radius must be positive and both subdivision counts at least 3.
func GenerateSphere(radius float64, latDiv, lonDiv int) (*Mesh, error) {
	if radius <= 0 {
		return nil, fmt.Errorf("sphere radius must be positive, got %v", radius)
	}
	if latDiv < 3 || lonDiv < 3 {
		return nil, fmt.Errorf("sphere subdivisions must be at least 3, got %dx%d", latDiv, lonDiv)
	}

	m := &Mesh{
		Vertices: make([]Vertex, 0, (latDiv+1)*(lonDiv+1)),
		Indices:  make([]uint32, 0, 6*latDiv*lonDiv),
	}

	for lat := 0; lat <= latDiv; lat++ {
		// Colatitude: 0 at the north pole, π at the south pole.
		theta := float64(lat) * math.Pi / float64(latDiv)
		latDeg := 90 - theta*180/math.Pi

		for lon := 0; lon <= lonDiv; lon++ {
			phi := float64(lon) * 2 * math.Pi / float64(lonDiv)
			lonDeg := phi*180/math.Pi - 180

			// Position, normal and UVs all derive from the same
			// geographic coordinates, so a vertex sits at exactly the
			// Earth-fixed direction its texture coordinates name. That
			// keeps the mesh aligned with sun-direction vectors and
			// camera placement, and the UVs stay unflipped like the
			// compositor's.
			n := vectors.FromLatLon(latDeg, lonDeg)

			m.Vertices = append(m.Vertices, Vertex{
				Position: n.Scale(radius),
				Normal:   n,
				U:        (lonDeg + 180) / 360,
				V:        (90 - latDeg) / 180,
			})
		}
	}

	// Two CCW triangles per quad between consecutive rings.
	stride := uint32(lonDiv + 1)
	for lat := 0; lat < latDiv; lat++ {
		for lon := 0; lon < lonDiv; lon++ {
			a := uint32(lat)*stride + uint32(lon)
			b := a + stride

			m.Indices = append(m.Indices,
				a, b, a+1,
				a+1, b, b+1,
			)
		}
	}

	return m, nil
}
