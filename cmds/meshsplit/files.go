package main

import (
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/unixpickle/mesh-split/meshsplit"
)

func loadMesh(path string) (*meshsplit.Mesh, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".stl":
		return meshsplit.Load(path, meshsplit.ReadSTL)
	case ".bin":
		return meshsplit.Load(path, meshsplit.ReadMesh)
	}
	return nil, errors.Errorf("unknown mesh extension: %s", path)
}

func saveMesh(path string, m *meshsplit.Mesh) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".stl":
		return meshsplit.Save(path, m, meshsplit.WriteSTL)
	case ".bin":
		return meshsplit.Save(path, m, meshsplit.WriteMesh)
	}
	return errors.Errorf("unknown mesh extension: %s", path)
}
