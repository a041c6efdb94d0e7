package meshsplit

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
	"github.com/unixpickle/essentials"
	"github.com/ungerik/go3d/float64/mat4"
	"github.com/unixpickle/model3d/model2d"
	"github.com/unixpickle/model3d/model3d"
)

const (
	channelNormals = 1 << iota
	channelTangents
	channelUV
	channelUV2
	channelColors
	channelBoneWeights
)

// maxSerializedCount bounds the sizes read from a header.
const maxSerializedCount = 1 << 26

// readChunkSize is the number of values decoded at once. Buffers grow only
// as data arrives, so a truncated stream fails before a corrupt header can
// cause a large allocation.
const readChunkSize = 1 << 14

type meshHeader struct {
	NumVertices  uint32
	NumIndices   uint32
	NumBindPoses uint32
	Channels     uint32
}

// WriteMesh serializes m in a 32-bit precision binary format.
func WriteMesh(w io.Writer, m *Mesh) error {
	if err := m.Validate(); err != nil {
		return errors.Wrap(err, "write mesh")
	}
	if err := writeMesh(w, m); err != nil {
		return errors.Wrap(err, "write mesh")
	}
	return nil
}

func writeMesh(w io.Writer, m *Mesh) error {
	header := meshHeader{
		NumVertices:  uint32(len(m.Positions)),
		NumIndices:   uint32(len(m.Triangles)),
		NumBindPoses: uint32(len(m.BindPoses)),
	}
	var values []float32
	values = appendCoords3D(values, m.Positions)
	if len(m.Normals) > 0 {
		header.Channels |= channelNormals
		values = appendCoords3D(values, m.Normals)
	}
	if len(m.Tangents) > 0 {
		header.Channels |= channelTangents
		for _, t := range m.Tangents {
			values = append(values, float32(t.X), float32(t.Y), float32(t.Z), float32(t.W))
		}
	}
	if len(m.UV) > 0 {
		header.Channels |= channelUV
		values = appendCoords2D(values, m.UV)
	}
	if len(m.UV2) > 0 {
		header.Channels |= channelUV2
		values = appendCoords2D(values, m.UV2)
	}
	if len(m.Colors) > 0 {
		header.Channels |= channelColors
		for _, c := range m.Colors {
			values = append(values, float32(c.R), float32(c.G), float32(c.B), float32(c.A))
		}
	}
	if len(m.BoneWeights) > 0 {
		header.Channels |= channelBoneWeights
		for _, bw := range m.BoneWeights {
			for i, idx := range bw.Indices {
				values = append(values, float32(idx), float32(bw.Weights[i]))
			}
		}
	}
	for _, pose := range m.BindPoses {
		for _, col := range pose {
			for _, x := range col {
				values = append(values, float32(x))
			}
		}
	}

	indices := make([]uint32, len(m.Triangles))
	for i, idx := range m.Triangles {
		indices[i] = uint32(idx)
	}

	if err := binary.Write(w, binary.LittleEndian, header); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, values); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, indices)
}

func appendCoords3D(values []float32, coords []model3d.Coord3D) []float32 {
	for _, c := range coords {
		values = append(values, float32(c.X), float32(c.Y), float32(c.Z))
	}
	return values
}

func appendCoords2D(values []float32, coords []model2d.Coord) []float32 {
	for _, c := range coords {
		values = append(values, float32(c.X), float32(c.Y))
	}
	return values
}

// ReadMesh reads the output written by WriteMesh.
func ReadMesh(r io.Reader) (*Mesh, error) {
	res, err := readMesh(r)
	if err != nil {
		return nil, errors.Wrap(err, "read mesh")
	}
	return res, nil
}

func readMesh(r io.Reader) (*Mesh, error) {
	var header meshHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, err
	}
	if header.NumVertices > maxSerializedCount || header.NumIndices > maxSerializedCount ||
		header.NumBindPoses > maxSerializedCount {
		return nil, errors.New("header counts out of bounds")
	}
	n := int(header.NumVertices)

	res := &Mesh{}
	var err error
	if res.Positions, err = readCoords3D(r, n); err != nil {
		return nil, err
	}
	if header.Channels&channelNormals != 0 {
		if res.Normals, err = readCoords3D(r, n); err != nil {
			return nil, err
		}
	}
	if header.Channels&channelTangents != 0 {
		values, err := readFloats(r, n*4)
		if err != nil {
			return nil, err
		}
		res.Tangents = make([]Vec4, n)
		for i := range res.Tangents {
			v := values[i*4 : (i+1)*4]
			res.Tangents[i] = Vec4{X: v[0], Y: v[1], Z: v[2], W: v[3]}
		}
	}
	if header.Channels&channelUV != 0 {
		if res.UV, err = readCoords2D(r, n); err != nil {
			return nil, err
		}
	}
	if header.Channels&channelUV2 != 0 {
		if res.UV2, err = readCoords2D(r, n); err != nil {
			return nil, err
		}
	}
	if header.Channels&channelColors != 0 {
		values, err := readFloats(r, n*4)
		if err != nil {
			return nil, err
		}
		res.Colors = make([]Color, n)
		for i := range res.Colors {
			v := values[i*4 : (i+1)*4]
			res.Colors[i] = Color{R: v[0], G: v[1], B: v[2], A: v[3]}
		}
	}
	if header.Channels&channelBoneWeights != 0 {
		values, err := readFloats(r, n*8)
		if err != nil {
			return nil, err
		}
		res.BoneWeights = make([]BoneWeight, n)
		for i := range res.BoneWeights {
			v := values[i*8 : (i+1)*8]
			for j := 0; j < 4; j++ {
				res.BoneWeights[i].Indices[j] = int(v[j*2])
				res.BoneWeights[i].Weights[j] = v[j*2+1]
			}
		}
	}
	if header.NumBindPoses > 0 {
		values, err := readFloats(r, int(header.NumBindPoses)*16)
		if err != nil {
			return nil, err
		}
		res.BindPoses = make([]mat4.T, header.NumBindPoses)
		for i := range res.BindPoses {
			for j := 0; j < 16; j++ {
				res.BindPoses[i][j/4][j%4] = values[i*16+j]
			}
		}
	}

	indices, err := readChunked[uint32](r, int(header.NumIndices))
	if err != nil {
		return nil, err
	}
	res.Triangles = make([]int, len(indices))
	for i, idx := range indices {
		res.Triangles[i] = int(idx)
	}
	if err := res.Validate(); err != nil {
		return nil, err
	}
	return res, nil
}

func readFloats(r io.Reader, count int) ([]float64, error) {
	values, err := readChunked[float32](r, count)
	if err != nil {
		return nil, err
	}
	res := make([]float64, count)
	for i, x := range values {
		res[i] = float64(x)
	}
	return res, nil
}

func readChunked[T float32 | uint32](r io.Reader, count int) ([]T, error) {
	var res []T
	chunk := make([]T, essentials.MinInt(count, readChunkSize))
	for len(res) < count {
		n := essentials.MinInt(count-len(res), len(chunk))
		if err := binary.Read(r, binary.LittleEndian, chunk[:n]); err != nil {
			return nil, err
		}
		res = append(res, chunk[:n]...)
	}
	return res, nil
}

func readCoords3D(r io.Reader, count int) ([]model3d.Coord3D, error) {
	values, err := readFloats(r, count*3)
	if err != nil {
		return nil, err
	}
	res := make([]model3d.Coord3D, count)
	for i := range res {
		res[i] = model3d.XYZ(values[i*3], values[i*3+1], values[i*3+2])
	}
	return res, nil
}

func readCoords2D(r io.Reader, count int) ([]model2d.Coord, error) {
	values, err := readFloats(r, count*2)
	if err != nil {
		return nil, err
	}
	res := make([]model2d.Coord, count)
	for i := range res {
		res[i] = model2d.XY(values[i*2], values[i*2+1])
	}
	return res, nil
}

// WriteFragmentTree serializes every plane and fragment of f.
func WriteFragmentTree(w io.Writer, f *FragmentTree) error {
	if err := writeFragmentTree(w, f); err != nil {
		return errors.Wrap(err, "write fragment tree")
	}
	return nil
}

const (
	fragmentEmpty = iota
	fragmentLeaf
	fragmentBranch
)

func writeFragmentTree(w io.Writer, f *FragmentTree) error {
	if f == nil {
		return binary.Write(w, binary.LittleEndian, uint8(fragmentEmpty))
	} else if f.IsLeaf() {
		if err := binary.Write(w, binary.LittleEndian, uint8(fragmentLeaf)); err != nil {
			return err
		}
		return writeMesh(w, f.Leaf)
	}
	if err := binary.Write(w, binary.LittleEndian, uint8(fragmentBranch)); err != nil {
		return err
	}
	var values []float32
	values = appendCoords3D(values, []model3d.Coord3D{f.Plane.Point, f.Plane.Normal})
	if err := binary.Write(w, binary.LittleEndian, values); err != nil {
		return err
	}
	if err := writeFragmentTree(w, f.Upper); err != nil {
		return err
	}
	return writeFragmentTree(w, f.Lower)
}

// ReadFragmentTree reads the output written by WriteFragmentTree.
func ReadFragmentTree(r io.Reader) (*FragmentTree, error) {
	res, err := readFragmentTree(r)
	if err != nil {
		return nil, errors.Wrap(err, "read fragment tree")
	}
	return res, nil
}

func readFragmentTree(r io.Reader) (*FragmentTree, error) {
	var kind uint8
	if err := binary.Read(r, binary.LittleEndian, &kind); err != nil {
		return nil, err
	}
	switch kind {
	case fragmentEmpty:
		return nil, nil
	case fragmentLeaf:
		m, err := readMesh(r)
		if err != nil {
			return nil, err
		}
		return &FragmentTree{Leaf: m}, nil
	case fragmentBranch:
		coords, err := readCoords3D(r, 2)
		if err != nil {
			return nil, err
		}
		upper, err := readFragmentTree(r)
		if err != nil {
			return nil, err
		}
		lower, err := readFragmentTree(r)
		if err != nil {
			return nil, err
		}
		return &FragmentTree{
			Plane: &Plane{Point: coords[0], Normal: coords[1]},
			Upper: upper,
			Lower: lower,
		}, nil
	}
	return nil, errors.Errorf("unknown node type: %d", kind)
}
