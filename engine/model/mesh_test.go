package model

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/Carmen-Shannon/flycam/engine/renderer/bind_group_provider"
	"github.com/go-gl/mathgl/mgl32"
)

func vec3(v [4]float32) mgl32.Vec3 {
	return mgl32.Vec3{v[0], v[1], v[2]}
}

// windingNormal returns (b-a) x (c-a) for the triangle at indices[t*3:].
func windingNormal(m *Mesh, t int) mgl32.Vec3 {
	a := vec3(m.Vertices[m.Indices[t*3]].Position)
	b := vec3(m.Vertices[m.Indices[t*3+1]].Position)
	c := vec3(m.Vertices[m.Indices[t*3+2]].Position)
	return b.Sub(a).Cross(c.Sub(a))
}

func TestGenerateCube(t *testing.T) {
	var m Mesh
	GenerateCube(&m)

	if len(m.Vertices) != 24 {
		t.Fatalf("len(Vertices) = %d, want 24", len(m.Vertices))
	}
	if len(m.Indices) != 36 {
		t.Fatalf("len(Indices) = %d, want 36", len(m.Indices))
	}
	for i, idx := range m.Indices {
		if idx >= 24 {
			t.Fatalf("Indices[%d] = %d, out of range", i, idx)
		}
	}

	for tri := range 12 {
		n := vec3(m.Vertices[m.Indices[tri*3]].Normal)
		if d := n.Dot(windingNormal(&m, tri)); d <= 0 {
			t.Errorf("triangle %d winds clockwise seen from outside (dot %v)", tri, d)
		}
	}

	// Both triangles of a face share the diagonal between corners 0 and 2.
	for f := range 6 {
		k := uint32(f * 4)
		got := m.Indices[f*6 : f*6+6]
		want := []uint32{k, k + 1, k + 2, k + 2, k + 3, k}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("face %d indices = %v, want %v", f, got, want)
			}
		}
	}

	for i, v := range m.Vertices {
		if v.Normal[3] != 1 || v.Position[3] != 1 {
			t.Errorf("vertex %d: w components = (%v, %v), want 1", i, v.Position[3], v.Normal[3])
		}
		if v.Color != white {
			t.Errorf("vertex %d: color = %v, want white", i, v.Color)
		}
	}
}

func TestGenerateCubeAppends(t *testing.T) {
	var m Mesh
	GenerateCube(&m)
	GenerateCube(&m)

	if len(m.Vertices) != 48 || len(m.Indices) != 72 {
		t.Fatalf("got %d vertices, %d indices, want 48, 72", len(m.Vertices), len(m.Indices))
	}
	for i := 36; i < 72; i++ {
		if m.Indices[i] != m.Indices[i-36]+24 {
			t.Fatalf("Indices[%d] = %d, want %d", i, m.Indices[i], m.Indices[i-36]+24)
		}
	}
}

func TestGeneratePlane(t *testing.T) {
	for _, r := range []uint32{1, 2, 7} {
		var m Mesh
		if err := GeneratePlane(&m, r); err != nil {
			t.Fatalf("GeneratePlane(%d): %v", r, err)
		}
		wantV := int((r + 1) * (r + 1))
		wantI := int(6 * r * r)
		if len(m.Vertices) != wantV || len(m.Indices) != wantI {
			t.Fatalf("R=%d: got %d vertices, %d indices, want %d, %d", r, len(m.Vertices), len(m.Indices), wantV, wantI)
		}
		for i, idx := range m.Indices {
			if int(idx) >= wantV {
				t.Fatalf("R=%d: Indices[%d] = %d out of range", r, i, idx)
			}
		}
		for tri := range len(m.Indices) / 3 {
			if n := windingNormal(&m, tri); n.Z() <= 0 {
				t.Fatalf("R=%d: triangle %d faces %v, want +Z", r, tri, n)
			}
		}
		last := m.Vertices[len(m.Vertices)-1]
		if last.Position != [4]float32{1, 1, 0, 1} || last.TexCoord != [2]float32{1, 1} {
			t.Errorf("R=%d: last vertex = %+v, want corner (1,1)", r, last)
		}
	}
}

func TestGeneratePlaneLayout(t *testing.T) {
	var m Mesh
	if err := GeneratePlane(&m, 2); err != nil {
		t.Fatal(err)
	}
	// x is the outer loop: the second vertex steps along y.
	if got := m.Vertices[1].Position; got != [4]float32{0, 0.5, 0, 1} {
		t.Errorf("Vertices[1].Position = %v, want (0, 0.5, 0, 1)", got)
	}
	want := []uint32{0, 3, 1, 3, 4, 1}
	for i := range want {
		if m.Indices[i] != want[i] {
			t.Fatalf("first cell indices = %v, want %v", m.Indices[:6], want)
		}
	}
}

func TestGeneratePlaneZeroResolution(t *testing.T) {
	var m Mesh
	GenerateCube(&m)

	err := GeneratePlane(&m, 0)
	if !errors.Is(err, ErrZeroResolution) {
		t.Fatalf("GeneratePlane(0) error = %v, want ErrZeroResolution", err)
	}
	if len(m.Vertices) != 24 || len(m.Indices) != 36 {
		t.Fatalf("mesh modified: %d vertices, %d indices", len(m.Vertices), len(m.Indices))
	}
}

func TestVertexSerialization(t *testing.T) {
	v := GPUVertex{
		Position: [4]float32{1, 2, 3, 1},
		TexCoord: [2]float32{0.25, 0.75},
	}
	if v.Size() != GPUVertexSize {
		t.Fatalf("Size() = %d, want %d", v.Size(), GPUVertexSize)
	}
	buf := v.Marshal()
	if len(buf) != GPUVertexSize {
		t.Fatalf("len(Marshal()) = %d, want %d", len(buf), GPUVertexSize)
	}
	if got := math.Float32frombits(binary.LittleEndian.Uint32(buf[8:])); got != 3 {
		t.Errorf("position.z = %v, want 3", got)
	}
	if got := math.Float32frombits(binary.LittleEndian.Uint32(buf[52:])); got != 0.75 {
		t.Errorf("uv.y = %v, want 0.75", got)
	}

	var m Mesh
	GenerateCube(&m)
	if got := len(m.VertexBytes()); got != 24*GPUVertexSize {
		t.Errorf("len(VertexBytes()) = %d, want %d", got, 24*GPUVertexSize)
	}
	ib := m.IndexBytes()
	if len(ib) != 36*4 || binary.LittleEndian.Uint32(ib[8:]) != m.Indices[2] {
		t.Errorf("IndexBytes() does not match Indices")
	}
}

func TestNewPlaneModel(t *testing.T) {
	if _, err := NewPlane("floor", 0); !errors.Is(err, ErrZeroResolution) {
		t.Fatalf("NewPlane(0) error = %v, want ErrZeroResolution", err)
	}
	m, err := NewPlane("floor", 4)
	if err != nil {
		t.Fatal(err)
	}
	if m.IndexCount() != 96 || len(m.IndexData()) != 96*4 {
		t.Errorf("IndexCount() = %d, want 96", m.IndexCount())
	}
	if m.MeshProvider().Label() != "floor Mesh" {
		t.Errorf("MeshProvider().Label() = %q", m.MeshProvider().Label())
	}
}

func TestModelSharesMeshProvider(t *testing.T) {
	mesh := &Mesh{}
	GenerateCube(mesh)
	shared := bind_group_provider.NewBindGroupProvider("shared Mesh")

	a := NewModel(WithName("a"), WithMesh(mesh), WithMeshProvider(shared))
	b := NewModel(WithName("b"), WithMesh(mesh), WithMeshProvider(shared))
	if a.MeshProvider() != shared || b.MeshProvider() != shared {
		t.Fatal("models did not keep the supplied mesh provider")
	}
	if a.IndexCount() != 36 || b.Name() != "b" {
		t.Errorf("IndexCount() = %d, Name() = %q", a.IndexCount(), b.Name())
	}
}
