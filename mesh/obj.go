package mesh

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// WriteOBJ writes the mesh as Wavefront OBJ. Texture coordinates are
// flipped vertically because OBJ places v=0 at the bottom of the image
// while the mesh follows the north-at-top raster convention.
func (m *Mesh) WriteOBJ(w io.Writer) error {
	bw := bufio.NewWriter(w)

	for _, v := range m.Vertices {
		fmt.Fprintf(bw, "v %.6f %.6f %.6f\n", v.Position.X, v.Position.Y, v.Position.Z)
	}
	for _, v := range m.Vertices {
		fmt.Fprintf(bw, "vt %.6f %.6f\n", v.U, 1-v.V)
	}
	for _, v := range m.Vertices {
		fmt.Fprintf(bw, "vn %.6f %.6f %.6f\n", v.Normal.X, v.Normal.Y, v.Normal.Z)
	}

	for i := 0; i+2 < len(m.Indices); i += 3 {
		// OBJ indices are 1-based.
		a := m.Indices[i] + 1
		b := m.Indices[i+1] + 1
		c := m.Indices[i+2] + 1
		fmt.Fprintf(bw, "f %d/%d/%d %d/%d/%d %d/%d/%d\n", a, a, a, b, b, b, c, c, c)
	}

	return bw.Flush()
}

// SaveOBJ writes the mesh to a file.
func (m *Mesh) SaveOBJ(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating obj file: %w", err)
	}
	defer f.Close()

	if err := m.WriteOBJ(f); err != nil {
		return fmt.Errorf("writing obj: %w", err)
	}
	return nil
}
