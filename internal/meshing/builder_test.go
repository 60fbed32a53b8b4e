package meshing

import (
	"testing"

	"crafter/internal/atlas"

	"github.com/go-gl/mathgl/mgl32"
)

func identityFaces() [6][8]float32 {
	var faces [6][8]float32
	for i := range faces {
		faces[i] = atlas.Identity().Corners()
	}
	return faces
}

func TestCapacityMatchesBuilderForEveryMask(t *testing.T) {
	faces := identityFaces()
	for m := Mask(0); m <= AllFaces; m++ {
		var c Capacity
		c.AddBlock(&faces, m, mgl32.Vec3{}, 1)

		b := NewBuilder(c)
		b.AddBlock(&faces, m, mgl32.Vec3{3, 4, 5}, 1)
		if !b.Complete() {
			t.Fatalf("mask %06b: builder did not fill the planned capacity %+v", m, c)
		}
		mesh := b.Finish()
		if got, want := mesh.FaceCount(), m.Count(); got != want {
			t.Fatalf("mask %06b: got %d faces, want %d", m, got, want)
		}
		if len(mesh.Vertices) != c.Floats || len(mesh.Indices) != c.Indices {
			t.Fatalf("mask %06b: mesh %d/%d, capacity %d/%d", m, len(mesh.Vertices), len(mesh.Indices), c.Floats, c.Indices)
		}
	}
}

func TestFullBlockMesh(t *testing.T) {
	faces := identityFaces()
	var c Capacity
	DryRunBlock(&c, true, true, true, true, true, true)
	if c.Floats != 6*FloatsPerFace || c.Indices != 36 {
		t.Fatalf("capacity = %+v, want 192 floats / 36 indices", c)
	}

	b := NewBuilder(c)
	EmitBlock(b, &faces, mgl32.Vec3{}, 1, true, true, true, true, true, true)
	mesh := b.Finish()

	if mesh.VertexCount() != 24 {
		t.Fatalf("got %d vertices, want 24", mesh.VertexCount())
	}
	if len(mesh.Indices) != 36 {
		t.Fatalf("got %d indices, want 36", len(mesh.Indices))
	}
	for i, idx := range mesh.Indices {
		if idx >= 24 {
			t.Fatalf("index %d = %d out of range", i, idx)
		}
	}
}

func TestIndicesContinueAcrossBlocks(t *testing.T) {
	faces := identityFaces()
	var c Capacity
	DryRunBlock(&c, true, false, false, false, false, false)
	DryRunBlock(&c, true, false, false, false, false, false)

	b := NewBuilder(c)
	EmitBlock(b, &faces, mgl32.Vec3{0, 0, 0}, 1, true, false, false, false, false, false)
	EmitBlock(b, &faces, mgl32.Vec3{1, 0, 0}, 1, true, false, false, false, false, false)
	mesh := b.Finish()

	want := []uint32{0, 1, 2, 2, 3, 0, 4, 5, 6, 6, 7, 4}
	for i := range want {
		if mesh.Indices[i] != want[i] {
			t.Fatalf("indices = %v, want %v", mesh.Indices, want)
		}
	}
}

func TestSideShade(t *testing.T) {
	faces := identityFaces()
	var c Capacity
	c.AddBlock(&faces, AllFaces, mgl32.Vec3{}, 1)
	b := NewBuilder(c)
	b.AddBlock(&faces, AllFaces, mgl32.Vec3{}, 1)
	mesh := b.Finish()

	for f, d := range Directions {
		want := float32(1)
		if d.IsSide() {
			want = 1 - SideShade
		}
		for v := 0; v < VerticesPerFace; v++ {
			o := f*FloatsPerFace + v*FloatsPerVertex + ColorOffset
			for ch := 0; ch < 3; ch++ {
				if got := mesh.Vertices[o+ch]; got != want {
					t.Fatalf("%s vertex %d channel %d = %v, want %v", d, v, ch, got, want)
				}
			}
		}
	}
}

func TestEmitFaceLayout(t *testing.T) {
	uv := [8]float32{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8}
	b := NewBuilder(Capacity{Floats: FloatsPerFace, Indices: IndicesPerFace})
	b.EmitFace(Up, uv, mgl32.Vec3{2, 3, 4}, 0.5)
	mesh := b.Finish()

	wantPos := [4][3]float32{{2, 4, 4}, {2, 4, 5}, {3, 4, 5}, {3, 4, 4}}
	for v := 0; v < 4; v++ {
		o := v * FloatsPerVertex
		got := [3]float32{mesh.Vertices[o], mesh.Vertices[o+1], mesh.Vertices[o+2]}
		if got != wantPos[v] {
			t.Errorf("vertex %d position = %v, want %v", v, got, wantPos[v])
		}
		if u, w := mesh.Vertices[o+TexCoordOffset], mesh.Vertices[o+TexCoordOffset+1]; u != uv[v*2] || w != uv[v*2+1] {
			t.Errorf("vertex %d uv = (%v, %v), want (%v, %v)", v, u, w, uv[v*2], uv[v*2+1])
		}
	}
}

func TestEmitPastCapacityPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic when writing past the planned capacity")
		}
	}()
	faces := identityFaces()
	var c Capacity
	DryRunBlock(&c, true, false, false, false, false, false)
	b := NewBuilder(c)
	b.AddBlock(&faces, AllFaces, mgl32.Vec3{}, 1)
}

func TestMask(t *testing.T) {
	m := NewMask(true, false, true, false, false, true)
	if !m.Has(Up) || m.Has(Down) || !m.Has(South) || m.Has(North) || m.Has(West) || !m.Has(East) {
		t.Fatalf("mask %06b has wrong faces", m)
	}
	if m.Count() != 3 {
		t.Fatalf("Count() = %d, want 3", m.Count())
	}
	if AllFaces.Count() != 6 {
		t.Fatalf("AllFaces.Count() = %d", AllFaces.Count())
	}
}
