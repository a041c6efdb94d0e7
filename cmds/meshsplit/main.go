package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "meshsplit",
	Short: "Cut triangle meshes with planes",
	Long: `meshsplit bisects triangle meshes with cutting planes and caps the
resulting holes. Meshes are read and written as STL (.stl) or in the
binary mesh format (.bin), which keeps every vertex attribute.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
