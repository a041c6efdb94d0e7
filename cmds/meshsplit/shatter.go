package main

import (
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/unixpickle/essentials"
	"github.com/unixpickle/mesh-split/meshsplit"
	"github.com/unixpickle/model3d/model3d"
)

var (
	shatterCuts        int
	shatterSeed        int64
	shatterConcurrency int
	shatterFlags       configFlags
)

var shatterCmd = &cobra.Command{
	Use:   "shatter <input> <output-dir>",
	Short: "Break a mesh into fragments with random planes",
	Long: `Cut a mesh with a series of random planes through its bounding box.
Every fragment is written to the output directory, along with a tree.bin
file recording the planes and fragments.`,
	Args: cobra.ExactArgs(2),
	Run:  runShatter,
}

func init() {
	shatterCmd.Flags().IntVarP(&shatterCuts, "cuts", "n", 3, "number of cutting planes")
	shatterCmd.Flags().Int64Var(&shatterSeed, "seed", 0, "random seed for the planes")
	shatterCmd.Flags().IntVar(&shatterConcurrency, "concurrency", 0,
		"maximum number of Goroutines (0 uses GOMAXPROCS)")
	shatterFlags.Register(shatterCmd)
	rootCmd.AddCommand(shatterCmd)
}

func runShatter(cmd *cobra.Command, args []string) {
	inputPath, outputDir := args[0], args[1]

	log.Println("Loading mesh...")
	mesh, err := loadMesh(inputPath)
	essentials.Must(err)

	planes := randomPlanes(rand.New(rand.NewSource(shatterSeed)), mesh, shatterCuts)

	log.Printf("Shattering with %d planes...", len(planes))
	tree, err := meshsplit.Shatter(mesh, nil, planes, shatterFlags.Config(), shatterConcurrency)
	essentials.Must(err)

	essentials.Must(os.MkdirAll(outputDir, 0755))
	essentials.Must(meshsplit.Save(filepath.Join(outputDir, "tree.bin"), tree,
		meshsplit.WriteFragmentTree))
	fragments := tree.Fragments()
	for i, fragment := range fragments {
		path := filepath.Join(outputDir, fmt.Sprintf("fragment_%03d.stl", i))
		essentials.Must(saveMesh(path, fragment))
	}
	log.Printf(" => wrote %d fragments", len(fragments))
}

func randomPlanes(gen *rand.Rand, m *meshsplit.Mesh, n int) []*meshsplit.Plane {
	min, max := m.Min(), m.Max()
	res := make([]*meshsplit.Plane, n)
	for i := range res {
		point := model3d.XYZ(gen.Float64(), gen.Float64(), gen.Float64())
		normal := model3d.XYZ(gen.NormFloat64(), gen.NormFloat64(), gen.NormFloat64())
		res[i] = &meshsplit.Plane{
			Point:  min.Add(max.Sub(min).Mul(point)),
			Normal: normal.Normalize(),
		}
	}
	return res
}
