package meshsplit

import (
	"bufio"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model3d"
)

// Save writes obj to a file using a serialization function.
func Save[T any](path string, obj T, writer func(w io.Writer, obj T) error) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "save")
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	if err := writer(w, obj); err != nil {
		return errors.Wrap(err, "save")
	}
	if err := w.Flush(); err != nil {
		return errors.Wrap(err, "save")
	}
	return nil
}

// Load reads an object from a file using a deserialization function.
func Load[T any](path string, reader func(r io.Reader) (T, error)) (T, error) {
	var zero T
	f, err := os.Open(path)
	if err != nil {
		return zero, errors.Wrap(err, "load")
	}
	defer f.Close()
	res, err := reader(bufio.NewReader(f))
	if err != nil {
		return zero, errors.Wrap(err, "load")
	}
	return res, nil
}

// ReadSTL reads an STL file as a mesh with only positions, welding
// vertices that share a position.
func ReadSTL(r io.Reader) (*Mesh, error) {
	tris, err := model3d.ReadSTL(r)
	if err != nil {
		return nil, errors.Wrap(err, "read STL")
	}
	return NewMeshTriangles(tris), nil
}

// WriteSTL writes the triangles of m as an STL file.
func WriteSTL(w io.Writer, m *Mesh) error {
	tris := make([]*model3d.Triangle, m.NumTriangles())
	for i := range tris {
		tris[i] = m.Triangle(i)
	}
	if err := model3d.WriteSTL(w, tris); err != nil {
		return errors.Wrap(err, "write STL")
	}
	return nil
}
