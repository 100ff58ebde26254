package profiler

import (
	"fmt"
	"log"
	"runtime"
	"time"
)

// Stats is one profiling sample covering the frames since the previous sample.
type Stats struct {
	Frames      int
	FPS         float64
	FrameTime   time.Duration
	HeapMB      float64
	AllocRateMB float64
	SysMB       float64
	GCCount     uint32
	LastPauseUs uint64
	MaxPauseUs  uint64
}

func (s Stats) String() string {
	return fmt.Sprintf("FPS: %.2f (%.2f ms) | Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC: %d (last: %d µs, max: %d µs) | Sys: %.2f MB",
		s.FPS, float64(s.FrameTime.Microseconds())/1000, s.HeapMB, s.AllocRateMB, s.GCCount, s.LastPauseUs, s.MaxPauseUs, s.SysMB)
}

// Profiler tracks frame rate and memory statistics and logs a sample once per interval.
type Profiler struct {
	frameCount     int
	lastTime       time.Time
	interval       time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
	logf           func(format string, args ...any)
}

// ProfilerOption is a functional option used to configure a Profiler during construction.
type ProfilerOption func(*Profiler)

// WithInterval sets how often a sample is taken. Defaults to one second.
//
// Parameters:
//   - d: the sampling interval
//
// Returns:
//   - ProfilerOption: a function that sets the interval
func WithInterval(d time.Duration) ProfilerOption {
	return func(p *Profiler) {
		if d > 0 {
			p.interval = d
		}
	}
}

// WithLogger replaces log.Printf as the sample sink. A nil logf disables output.
//
// Parameters:
//   - logf: printf style logging function
//
// Returns:
//   - ProfilerOption: a function that sets the logger
func WithLogger(logf func(format string, args ...any)) ProfilerOption {
	return func(p *Profiler) {
		p.logf = logf
	}
}

// NewProfiler creates a Profiler whose first interval starts now.
//
// Parameters:
//   - options: a variadic list of ProfilerOption functions
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerOption) *Profiler {
	p := &Profiler{
		lastTime: time.Now(),
		interval: time.Second,
		logf:     log.Printf,
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

// Reset discards the frames counted so far and starts a new interval at now.
//
// Parameters:
//   - now: the start of the new interval
func (p *Profiler) Reset(now time.Time) {
	p.frameCount = 0
	p.lastTime = now
}

// Tick counts one frame ending at now. Once the interval has elapsed it reads the runtime
// memory statistics, logs them and starts the next interval.
//
// Parameters:
//   - now: the time the frame finished
//
// Returns:
//   - Stats: the sample, zero unless sampled is true
//   - bool: true if a sample was taken this tick
func (p *Profiler) Tick(now time.Time) (Stats, bool) {
	p.frameCount++
	elapsed := now.Sub(p.lastTime)
	if elapsed < p.interval {
		return Stats{}, false
	}

	runtime.ReadMemStats(&p.memStats)
	s := Stats{
		Frames:      p.frameCount,
		FPS:         float64(p.frameCount) / elapsed.Seconds(),
		FrameTime:   elapsed / time.Duration(p.frameCount),
		HeapMB:      float64(p.memStats.Alloc) / 1024 / 1024,
		AllocRateMB: float64(p.memStats.TotalAlloc-p.lastTotalAlloc) / 1024 / 1024 / elapsed.Seconds(),
		SysMB:       float64(p.memStats.Sys) / 1024 / 1024,
		GCCount:     p.memStats.NumGC,
	}

	// PauseNs is a ring of the last 256 pauses.
	if n := s.GCCount; n > 0 {
		s.LastPauseUs = p.memStats.PauseNs[(n-1)%256] / 1000
		start := p.lastGCCount
		if n-start > 256 {
			start = n - 256
		}
		for i := start; i < n; i++ {
			s.MaxPauseUs = max(s.MaxPauseUs, p.memStats.PauseNs[i%256]/1000)
		}
	}

	if p.logf != nil {
		p.logf("[Profiler] %s", s)
	}

	p.frameCount = 0
	p.lastTime = now
	p.lastGCCount = s.GCCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return s, true
}
