package common

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestModelMatrixTranslationOnly(t *testing.T) {
	got := ModelMatrix(mgl32.Vec3{1, 2, 3}, mgl32.QuatIdent(), mgl32.Vec3{1, 1, 1})
	want := mgl32.Translate3D(1, 2, 3)
	if !near(got, want) {
		t.Fatalf("ModelMatrix = %v, want pure translation %v", got, want)
	}
}

func TestModelMatrixScaleOnly(t *testing.T) {
	got := ModelMatrix(mgl32.Vec3{}, mgl32.QuatIdent(), mgl32.Vec3{2, 2, 2})
	want := mgl32.Scale3D(2, 2, 2)
	if !near(got, want) {
		t.Fatalf("ModelMatrix = %v, want pure scale %v", got, want)
	}
}

func TestModelMatrixCompositionOrder(t *testing.T) {
	// Non-uniform scale applied after rotation exposes T*S*R versus T*R*S.
	rot := mgl32.QuatRotate(mgl32.DegToRad(90), mgl32.Vec3{0, 0, 1})
	m := ModelMatrix(mgl32.Vec3{}, rot, mgl32.Vec3{2, 1, 1})

	// R maps +X to +Y, then S leaves Y unscaled.
	p := m.Mul4x1(mgl32.Vec4{1, 0, 0, 1})
	if !near(p, mgl32.Vec4{0, 1, 0, 1}) {
		t.Fatalf("T*S*R applied to +X = %v, want (0,1,0,1)", p)
	}
}

func TestPerspectiveWGPUDepthRange(t *testing.T) {
	near, far := float32(0.1), float32(100)
	proj := PerspectiveWGPU(mgl32.DegToRad(90), 1.5, near, far)

	for _, tc := range []struct {
		name  string
		z     float32
		depth float32
	}{
		{"near plane", -near, 0},
		{"far plane", -far, 1},
	} {
		t.Run(tc.name, func(t *testing.T) {
			clip := proj.Mul4x1(mgl32.Vec4{0, 0, tc.z, 1})
			ndc := clip.Z() / clip.W()
			if math.Abs(float64(ndc-tc.depth)) > 1e-4 {
				t.Errorf("depth at z=%v = %v, want %v", tc.z, ndc, tc.depth)
			}
		})
	}
}

func TestLookToMatchesLookAt(t *testing.T) {
	eye := mgl32.Vec3{1, 2, 3}
	dir := mgl32.Vec3{0, 0, -1}
	up := mgl32.Vec3{0, 1, 0}

	got := LookTo(eye, dir, up)
	want := mgl32.LookAtV(eye, mgl32.Vec3{1, 2, 2}, up)
	if !near(got, want) {
		t.Fatalf("LookTo = %v, want %v", got, want)
	}
}

func TestWrapAngle(t *testing.T) {
	tests := []struct {
		in   float32
		want float32
	}{
		{0, 0},
		{1, 1},
		{TwoPi, 0},
		{TwoPi + 1, 1},
		{-math.Pi / 2, 3 * math.Pi / 2},
		{-5 * TwoPi, 0},
	}
	for _, tc := range tests {
		got := WrapAngle(tc.in)
		if got < 0 || got >= TwoPi {
			t.Errorf("WrapAngle(%v) = %v, outside [0, 2π)", tc.in, got)
		}
		if angleDistance(got, tc.want) > 1e-4 {
			t.Errorf("WrapAngle(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

// angleDistance is the shortest distance between two angles on the circle.
func angleDistance(a, b float32) float64 {
	d := math.Abs(float64(a - b))
	return math.Min(d, 2*math.Pi-d)
}

func TestWrapAngleTinyNegative(t *testing.T) {
	got := WrapAngle(-1e-9)
	if got < 0 || got >= TwoPi {
		t.Fatalf("WrapAngle(-1e-9) = %v, outside [0, 2π)", got)
	}
}

func TestPutMat4LittleEndian(t *testing.T) {
	buf := make([]byte, 64)
	PutMat4(buf, mgl32.Ident4())
	// 1.0f = 0x3f800000, little-endian
	if buf[0] != 0x00 || buf[3] != 0x3f || buf[2] != 0x80 {
		t.Fatalf("first element bytes = % x, want 00 00 80 3f", buf[0:4])
	}
	for i := 4; i < 20; i++ {
		if buf[i] != 0 {
			t.Fatalf("byte %d = %#x, want 0", i, buf[i])
		}
	}
}

// near compares element-wise with an absolute tolerance. mgl32's threshold helpers are
// relative and reject tiny values that should read as zero.
func near[T mgl32.Vec3 | mgl32.Vec4 | mgl32.Mat4](a, b T) bool {
	for i := 0; i < len(a); i++ {
		if d := a[i] - b[i]; d > 1e-4 || d < -1e-4 {
			return false
		}
	}
	return true
}
