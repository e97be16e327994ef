package models

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/taigrr/tori/pkg/math3d"
)

// ErrNoGeometry is returned when there is nothing to export.
var ErrNoGeometry = errors.New("no geometry")

// Part is one exported mesh with its flat base color.
type Part struct {
	Mesh      *Mesh
	BaseColor [4]float64 // RGBA in 0-1 range
}

// WriteGLB saves the parts as a binary GLTF (.glb) file, one node per part.
// Polygon faces are triangulated on export.
func WriteGLB(path string, parts []Part) error {
	doc, err := buildDocument(parts)
	if err != nil {
		return err
	}
	if err := gltf.SaveBinary(doc, path); err != nil {
		return fmt.Errorf("save glb %s: %w", path, err)
	}
	return nil
}

func buildDocument(parts []Part) (*gltf.Document, error) {
	if len(parts) == 0 {
		return nil, ErrNoGeometry
	}

	doc := gltf.NewDocument()
	doc.Asset.Generator = "tori"
	var data []byte

	// addView appends b to the shared buffer and returns its buffer view index.
	addView := func(b []byte, target gltf.Target) int {
		doc.BufferViews = append(doc.BufferViews, &gltf.BufferView{
			Buffer:     0,
			ByteOffset: len(data),
			ByteLength: len(b),
			Target:     target,
		})
		data = append(data, b...)
		return len(doc.BufferViews) - 1
	}

	for i, p := range parts {
		mesh := p.Mesh.Triangulated()
		if mesh.VertexCount() == 0 || mesh.FaceCount() == 0 {
			continue
		}

		positions, lo, hi := encodePositions(mesh.Vertices)
		posView := addView(positions, gltf.TargetArrayBuffer)
		doc.Accessors = append(doc.Accessors, &gltf.Accessor{
			BufferView:    gltf.Index(posView),
			ComponentType: gltf.ComponentFloat,
			Count:         mesh.VertexCount(),
			Type:          gltf.AccessorVec3,
			Min:           lo,
			Max:           hi,
		})
		posAccessor := len(doc.Accessors) - 1

		idxView := addView(encodeIndices(mesh.Faces), gltf.TargetElementArrayBuffer)
		doc.Accessors = append(doc.Accessors, &gltf.Accessor{
			BufferView:    gltf.Index(idxView),
			ComponentType: gltf.ComponentUint,
			Count:         3 * mesh.FaceCount(),
			Type:          gltf.AccessorScalar,
		})
		idxAccessor := len(doc.Accessors) - 1

		color := p.BaseColor
		doc.Materials = append(doc.Materials, &gltf.Material{
			Name: fmt.Sprintf("%s-%d", mesh.Name, i),
			PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
				BaseColorFactor: &color,
			},
		})

		doc.Meshes = append(doc.Meshes, &gltf.Mesh{
			Name: mesh.Name,
			Primitives: []*gltf.Primitive{{
				Attributes: map[string]int{gltf.POSITION: posAccessor},
				Indices:    gltf.Index(idxAccessor),
				Material:   gltf.Index(len(doc.Materials) - 1),
				Mode:       gltf.PrimitiveTriangles,
			}},
		})
		doc.Nodes = append(doc.Nodes, &gltf.Node{
			Name: fmt.Sprintf("%s-%d", mesh.Name, i),
			Mesh: gltf.Index(len(doc.Meshes) - 1),
		})
		doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, len(doc.Nodes)-1)
	}

	if len(data) == 0 {
		return nil, ErrNoGeometry
	}
	doc.Buffers = []*gltf.Buffer{{ByteLength: len(data), Data: data}}
	return doc, nil
}

// encodePositions packs x, y, z as little-endian float32 and reports the
// bounds GLTF requires on position accessors.
func encodePositions(vs []math3d.Vector) (b []byte, lo, hi []float64) {
	b = make([]byte, 0, 12*len(vs))
	lo = []float64{math.Inf(1), math.Inf(1), math.Inf(1)}
	hi = []float64{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	for _, v := range vs {
		for k, c := range [3]float32{v.X, v.Y, v.Z} {
			b = binary.LittleEndian.AppendUint32(b, math.Float32bits(c))
			lo[k] = math.Min(lo[k], float64(c))
			hi[k] = math.Max(hi[k], float64(c))
		}
	}
	return b, lo, hi
}

func encodeIndices(faces []Face) []byte {
	b := make([]byte, 0, 12*len(faces))
	for _, f := range faces {
		for _, idx := range f[:3] {
			b = binary.LittleEndian.AppendUint32(b, uint32(idx))
		}
	}
	return b
}

// LoadGLB loads the triangle geometry of a binary GLTF (.glb) file into a
// single mesh. Only embedded buffers are supported.
func LoadGLB(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}

	mesh := NewMesh(filepath.Base(path))
	for _, m := range doc.Meshes {
		if err := processMesh(doc, m, mesh); err != nil {
			return nil, fmt.Errorf("process mesh %q: %w", m.Name, err)
		}
	}
	return mesh, nil
}

// processMesh appends the triangle primitives of m to mesh.
func processMesh(doc *gltf.Document, m *gltf.Mesh, mesh *Mesh) error {
	for _, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
			// Skip non-triangle primitives (lines, points, etc)
			continue
		}

		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}

		positions, err := readVec3Accessor(doc, posIdx)
		if err != nil {
			return fmt.Errorf("read positions: %w", err)
		}

		baseVertex := len(mesh.Vertices)
		mesh.Vertices = append(mesh.Vertices, positions...)

		// GLTF winding is counter-clockwise, same as ours.
		if prim.Indices != nil {
			indices, err := readIndices(doc, *prim.Indices)
			if err != nil {
				return fmt.Errorf("read indices: %w", err)
			}
			for i := 0; i+2 < len(indices); i += 3 {
				mesh.Faces = append(mesh.Faces, Face{
					baseVertex + indices[i],
					baseVertex + indices[i+1],
					baseVertex + indices[i+2],
				})
			}
		} else {
			for i := 0; i+2 < len(positions); i += 3 {
				mesh.Faces = append(mesh.Faces, Face{baseVertex + i, baseVertex + i + 1, baseVertex + i + 2})
			}
		}
	}
	return nil
}

// readVec3Accessor reads float VEC3 data as points.
func readVec3Accessor(doc *gltf.Document, accessorIdx int) ([]math3d.Vector, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorVec3 || accessor.ComponentType != gltf.ComponentFloat {
		return nil, fmt.Errorf("expected float VEC3, got %v / %v", accessor.Type, accessor.ComponentType)
	}

	buf, start, stride, err := accessorBytes(doc, accessor, 12)
	if err != nil {
		return nil, err
	}

	result := make([]math3d.Vector, accessor.Count)
	for i := range accessor.Count {
		off := start + i*stride
		if off+12 > len(buf) {
			return nil, fmt.Errorf("accessor %d overruns its buffer", accessorIdx)
		}
		result[i] = math3d.Point(
			math.Float32frombits(binary.LittleEndian.Uint32(buf[off:])),
			math.Float32frombits(binary.LittleEndian.Uint32(buf[off+4:])),
			math.Float32frombits(binary.LittleEndian.Uint32(buf[off+8:])),
		)
	}
	return result, nil
}

// readIndices reads unsigned scalar index data.
func readIndices(doc *gltf.Document, accessorIdx int) ([]int, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorScalar {
		return nil, fmt.Errorf("expected SCALAR indices, got %v", accessor.Type)
	}

	var size int
	switch accessor.ComponentType {
	case gltf.ComponentUbyte:
		size = 1
	case gltf.ComponentUshort:
		size = 2
	case gltf.ComponentUint:
		size = 4
	default:
		return nil, fmt.Errorf("unexpected index type: %v", accessor.ComponentType)
	}

	buf, start, stride, err := accessorBytes(doc, accessor, size)
	if err != nil {
		return nil, err
	}

	result := make([]int, accessor.Count)
	for i := range accessor.Count {
		off := start + i*stride
		if off+size > len(buf) {
			return nil, fmt.Errorf("accessor %d overruns its buffer", accessorIdx)
		}
		switch size {
		case 1:
			result[i] = int(buf[off])
		case 2:
			result[i] = int(binary.LittleEndian.Uint16(buf[off:]))
		case 4:
			result[i] = int(binary.LittleEndian.Uint32(buf[off:]))
		}
	}
	return result, nil
}

// accessorBytes resolves the embedded buffer behind an accessor.
func accessorBytes(doc *gltf.Document, accessor *gltf.Accessor, elemSize int) (buf []byte, start, stride int, err error) {
	if accessor.BufferView == nil {
		return nil, 0, 0, fmt.Errorf("accessor has no buffer view")
	}

	bufferView := doc.BufferViews[*accessor.BufferView]
	buffer := doc.Buffers[bufferView.Buffer]
	if buffer.URI != "" {
		return nil, 0, 0, fmt.Errorf("external buffers not supported yet")
	}
	if buffer.Data == nil {
		return nil, 0, 0, fmt.Errorf("buffer has no data")
	}

	stride = bufferView.ByteStride
	if stride == 0 {
		stride = elemSize
	}
	return buffer.Data, bufferView.ByteOffset + accessor.ByteOffset, stride, nil
}
