package main

import (
	"log"

	"github.com/spf13/cobra"
	"github.com/unixpickle/essentials"
	"github.com/unixpickle/mesh-split/meshsplit"
	"github.com/unixpickle/model3d/model2d"
	"github.com/unixpickle/model3d/model3d"
)

var (
	splitPoint  []float64
	splitNormal []float64
	splitFlags  configFlags
)

var splitCmd = &cobra.Command{
	Use:   "split <input> <upper-output> <lower-output>",
	Short: "Cut a mesh in two with a plane",
	Args:  cobra.ExactArgs(3),
	Run:   runSplit,
}

func init() {
	splitCmd.Flags().Float64SliceVar(&splitPoint, "point", []float64{0, 0, 0},
		"point on the cutting plane")
	splitCmd.Flags().Float64SliceVar(&splitNormal, "normal", []float64{0, 1, 0},
		"normal of the cutting plane, pointing to the upper side")
	splitFlags.Register(splitCmd)
	rootCmd.AddCommand(splitCmd)
}

func runSplit(cmd *cobra.Command, args []string) {
	inputPath, upperPath, lowerPath := args[0], args[1], args[2]
	plane := &meshsplit.Plane{
		Point:  parseCoord("point", splitPoint),
		Normal: parseCoord("normal", splitNormal),
	}

	log.Println("Loading mesh...")
	mesh, err := loadMesh(inputPath)
	essentials.Must(err)

	log.Println("Splitting mesh...")
	result, err := meshsplit.Split(mesh, nil, plane, splitFlags.Config())
	essentials.Must(err)

	for _, side := range []struct {
		name string
		path string
		mesh *meshsplit.Mesh
	}{
		{"upper", upperPath, result.Upper},
		{"lower", lowerPath, result.Lower},
	} {
		if side.mesh == nil {
			log.Printf(" => %s: empty", side.name)
			continue
		}
		log.Printf(" => %s: %d triangles", side.name, side.mesh.NumTriangles())
		essentials.Must(saveMesh(side.path, side.mesh))
	}
}

// configFlags holds the flags shared by every command that cuts meshes.
type configFlags struct {
	Convex  bool
	NoCaps  bool
	CapUV   bool
	UVRect  []float64
	Verbose bool
}

func (c *configFlags) Register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&c.Convex, "convex", false,
		"assume every cross-section is a single convex polygon")
	cmd.Flags().BoolVar(&c.NoCaps, "no-caps", false, "leave the cut open")
	cmd.Flags().BoolVar(&c.CapUV, "cap-uv", false, "generate texture coordinates for caps")
	cmd.Flags().Float64SliceVar(&c.UVRect, "uv-rect", []float64{0, 0, 1, 1},
		"texture rectangle for cap UVs as min-u,min-v,max-u,max-v")
	cmd.Flags().BoolVarP(&c.Verbose, "verbose", "v", false, "log unusual geometry")
}

func (c *configFlags) Config() *meshsplit.Config {
	if len(c.UVRect) != 4 {
		essentials.Die("--uv-rect must have 4 components")
	}
	res := &meshsplit.Config{
		NoCaps: c.NoCaps,
		CapUV:  c.CapUV,
		CapUVRect: &meshsplit.UVRect{
			Min: model2d.XY(c.UVRect[0], c.UVRect[1]),
			Max: model2d.XY(c.UVRect[2], c.UVRect[3]),
		},
		Verbose: c.Verbose,
	}
	if c.Convex {
		res.Strategy = meshsplit.ConvexCaps
	}
	return res
}

func parseCoord(name string, values []float64) model3d.Coord3D {
	if len(values) != 3 {
		essentials.Die("--" + name + " must have 3 components")
	}
	return model3d.XYZ(values[0], values[1], values[2])
}
