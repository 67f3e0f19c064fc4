// Package export writes snapshots of the grid for external viewers.
package export

import (
	"fmt"
	"io"
	"os"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"voxel-ca/internal/automaton"
	"voxel-ca/internal/picker"
	"voxel-ca/internal/render"
)

// Mesh is an indexed triangle mesh with flat per-vertex normals and colours.
type Mesh struct {
	Positions [][3]float32
	Normals   [][3]float32
	Colors    [][4]float32
	Indices   []uint32
}

// BuildMesh converts the exposed faces of cells into two triangles each.
func BuildMesh(cells []automaton.Cell, states int, frame picker.Frame) Mesh {
	quads := render.Faces(cells, states, frame)
	m := Mesh{
		Positions: make([][3]float32, 0, 4*len(quads)),
		Normals:   make([][3]float32, 0, 4*len(quads)),
		Colors:    make([][4]float32, 0, 4*len(quads)),
		Indices:   make([]uint32, 0, 6*len(quads)),
	}
	for _, q := range quads {
		base := uint32(len(m.Positions))
		normal := [3]float32{float32(q.Normal[0]), float32(q.Normal[1]), float32(q.Normal[2])}
		col := [4]float32{float32(q.Color.R) / 255, float32(q.Color.G) / 255, float32(q.Color.B) / 255, 1}
		for _, c := range q.Corners {
			m.Positions = append(m.Positions, [3]float32{float32(c[0]), float32(c[1]), float32(c[2])})
			m.Normals = append(m.Normals, normal)
			m.Colors = append(m.Colors, col)
		}
		m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	return m
}

// Document builds a single-mesh glTF document for cells.
func Document(cells []automaton.Cell, states int, frame picker.Frame) (*gltf.Document, error) {
	if len(cells) == 0 {
		return nil, fmt.Errorf("export: no occupied cells")
	}
	mesh := BuildMesh(cells, states, frame)

	doc := gltf.NewDocument()
	doc.Asset.Generator = "voxel-ca"
	posAccessor := modeler.WritePosition(doc, mesh.Positions)
	normalAccessor := modeler.WriteNormal(doc, mesh.Normals)
	colorAccessor := modeler.WriteColor(doc, mesh.Colors)
	indicesAccessor := modeler.WriteIndices(doc, mesh.Indices)
	prim := &gltf.Primitive{
		Attributes: gltf.PrimitiveAttributes{
			gltf.POSITION: posAccessor,
			gltf.NORMAL:   normalAccessor,
			gltf.COLOR_0:  colorAccessor,
		},
		Indices:  gltf.Index(indicesAccessor),
		Material: gltf.Index(0),
	}
	pbr := &gltf.PBRMetallicRoughness{BaseColorFactor: &[4]float64{1, 1, 1, 1}, MetallicFactor: gltf.Float(0), RoughnessFactor: gltf.Float(1)}
	doc.Materials = []*gltf.Material{{Name: "Voxels", PBRMetallicRoughness: pbr, AlphaMode: gltf.AlphaOpaque}}
	doc.Meshes = []*gltf.Mesh{{Name: "Voxels", Primitives: []*gltf.Primitive{prim}}}
	doc.Nodes = []*gltf.Node{{Name: "Grid", Mesh: gltf.Index(0)}}
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0)
	return doc, nil
}

// WriteGLB encodes cells as binary glTF to w.
func WriteGLB(w io.Writer, cells []automaton.Cell, states int, frame picker.Frame) error {
	doc, err := Document(cells, states, frame)
	if err != nil {
		return err
	}
	enc := gltf.NewEncoder(w)
	enc.AsBinary = true
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("export: encode glb: %w", err)
	}
	return nil
}

// SaveGLB writes the grid's occupied cells to path.
func SaveGLB(path string, g *automaton.Grid, frame picker.Frame) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if err := WriteGLB(f, g.OccupiedCells(), g.Rule().States(), frame); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
