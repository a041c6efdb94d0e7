package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/unixpickle/essentials"
)

var infoCmd = &cobra.Command{
	Use:   "info <input>",
	Short: "Print statistics about a mesh",
	Args:  cobra.ExactArgs(1),
	Run:   runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) {
	mesh, err := loadMesh(args[0])
	essentials.Must(err)

	fmt.Println("Vertices:", mesh.NumVertices())
	fmt.Println("Triangles:", mesh.NumTriangles())
	fmt.Println("Min:", mesh.Min())
	fmt.Println("Max:", mesh.Max())

	var channels []string
	for _, ch := range []struct {
		name    string
		present bool
	}{
		{"normals", len(mesh.Normals) > 0},
		{"tangents", len(mesh.Tangents) > 0},
		{"uv", len(mesh.UV) > 0},
		{"uv2", len(mesh.UV2) > 0},
		{"colors", len(mesh.Colors) > 0},
		{"bone weights", len(mesh.BoneWeights) > 0},
	} {
		if ch.present {
			channels = append(channels, ch.name)
		}
	}
	fmt.Println("Channels:", channels)

	m3d := mesh.Model3D()
	if m3d.NeedsRepair() {
		fmt.Println("Closed: false")
	} else {
		fmt.Println("Closed: true")
		fmt.Println("Volume:", m3d.Volume())
	}
}
