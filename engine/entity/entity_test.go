package entity

import (
	"bytes"
	"testing"

	"github.com/Carmen-Shannon/flycam/engine/model"
	"github.com/go-gl/mathgl/mgl32"
)

const eps = 1e-5

func TestModelMatrixPureTranslation(t *testing.T) {
	e := NewEntity(model.NewCube("cube"), WithPosition(1, 2, 3))
	want := mgl32.Translate3D(1, 2, 3)
	if got := e.ModelMatrix(); !near(got, want) {
		t.Fatalf("ModelMatrix() = %v, want %v", got, want)
	}
}

func TestModelMatrixPureScale(t *testing.T) {
	e := NewEntity(model.NewCube("cube"), WithUniformScale(2))
	want := mgl32.Scale3D(2, 2, 2)
	if got := e.ModelMatrix(); !near(got, want) {
		t.Fatalf("ModelMatrix() = %v, want %v", got, want)
	}
}

func TestNormalMatrixIsRotationOnly(t *testing.T) {
	e := NewEntity(nil,
		WithRotation(mgl32.DegToRad(-90), mgl32.Vec3{1, 0, 0}),
		WithScale(2, 3, 4),
		WithPosition(5, 5, 5),
	)

	n := e.NormalMatrix().Mul4x1(mgl32.Vec4{0, 0, 1, 0}).Vec3()
	if !near(n, mgl32.Vec3{0, 1, 0}) {
		t.Fatalf("normal (0,0,1) maps to %v, want (0,1,0)", n)
	}

	// T * S * R: the rotated point is scaled, then translated.
	p := e.ModelMatrix().Mul4x1(mgl32.Vec4{0, 0, 1, 1}).Vec3()
	if want := (mgl32.Vec3{5, 8, 5}); !near(p, want) {
		t.Fatalf("model maps (0,0,1) to %v, want %v", p, want)
	}
}

func TestSetRotationNormalizes(t *testing.T) {
	e := NewEntity(nil)
	e.SetRotation(mgl32.Quat{W: 2})
	if l := e.Rotation().Len(); !mgl32.FloatEqualThreshold(l, 1, eps) {
		t.Fatalf("|rotation| = %v, want 1", l)
	}
}

func TestMarshalInstances(t *testing.T) {
	a := NewEntity(nil, WithPosition(1, 0, 0))
	b := NewEntity(nil, WithUniformScale(0.01), WithPipelineKey("cube"), WithFollowLight(true))

	buf := MarshalInstances([]Entity{a, b})
	if len(buf) != 2*GPUInstanceDataSize {
		t.Fatalf("len = %d, want %d", len(buf), 2*GPUInstanceDataSize)
	}

	inst := b.InstanceData()
	if inst.Size() != GPUInstanceDataSize {
		t.Fatalf("Size() = %d, want %d", inst.Size(), GPUInstanceDataSize)
	}
	if !bytes.Equal(buf[GPUInstanceDataSize:], inst.Marshal()) {
		t.Fatal("second record does not match entity b")
	}
	if b.PipelineKey() != "cube" || !b.FollowsLight() {
		t.Fatalf("options not applied: key %q, follows %v", b.PipelineKey(), b.FollowsLight())
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
