package profiler

import (
	"strings"
	"testing"
	"time"
)

func TestTickSamplesOncePerInterval(t *testing.T) {
	var lines []string
	p := NewProfiler(WithInterval(time.Second), WithLogger(func(format string, args ...any) {
		lines = append(lines, format)
	}))
	start := time.Unix(100, 0)
	p.Reset(start)

	for i := 1; i < 4; i++ {
		if _, sampled := p.Tick(start.Add(time.Duration(i) * 250 * time.Millisecond)); sampled {
			t.Fatalf("sampled after %d frames", i)
		}
	}
	s, sampled := p.Tick(start.Add(time.Second))
	if !sampled {
		t.Fatal("no sample after one second")
	}
	if s.Frames != 4 || s.FPS != 4 || s.FrameTime != 250*time.Millisecond {
		t.Errorf("sample = %+v, want 4 frames at 4 FPS", s)
	}
	if len(lines) != 1 || !strings.HasPrefix(lines[0], "[Profiler]") {
		t.Errorf("logged %q", lines)
	}

	if _, sampled := p.Tick(start.Add(1500 * time.Millisecond)); sampled {
		t.Error("interval did not restart after a sample")
	}
}

func TestStatsString(t *testing.T) {
	s := Stats{FPS: 60, FrameTime: 16667 * time.Microsecond, HeapMB: 1.5}
	got := s.String()
	if !strings.Contains(got, "FPS: 60.00") || !strings.Contains(got, "16.67 ms") || !strings.Contains(got, "Heap: 1.50 MB") {
		t.Errorf("String() = %q", got)
	}
}

func TestNilLoggerIsSilent(t *testing.T) {
	p := NewProfiler(WithLogger(nil), WithInterval(time.Millisecond))
	p.Reset(time.Unix(0, 0))
	if _, sampled := p.Tick(time.Unix(1, 0)); !sampled {
		t.Fatal("no sample")
	}
}
