// Package profiler records wall time and memory statistics for the phases of an import.
package profiler

import (
	"fmt"
	"log"
	"runtime"
	"time"
)

// Phase is the measurement taken between two marks.
type Phase struct {
	Name     string
	Duration time.Duration

	// AllocBytes is the heap allocated during the phase (TotalAlloc delta).
	AllocBytes uint64

	// HeapBytes is the live heap at the end of the phase.
	HeapBytes uint64

	// GCCount is the number of collections that finished during the phase.
	GCCount uint32

	// MaxPause is the longest GC pause observed during the phase.
	MaxPause time.Duration
}

func (p Phase) String() string {
	return fmt.Sprintf("%s: %s | Alloc: %.2f MB | Heap: %.2f MB | GC: %d (max: %d µs)",
		p.Name, p.Duration.Round(time.Microsecond),
		float64(p.AllocBytes)/1024/1024, float64(p.HeapBytes)/1024/1024,
		p.GCCount, p.MaxPause.Microseconds())
}

// Profiler splits a run into named phases. It is not safe for concurrent use.
type Profiler struct {
	lastTime       time.Time
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
	phases         []Phase
}

// NewProfiler creates a new Profiler whose first phase starts now.
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler() *Profiler {
	p := &Profiler{}
	runtime.ReadMemStats(&p.memStats)
	p.lastGCCount = p.memStats.NumGC
	p.lastTotalAlloc = p.memStats.TotalAlloc
	p.lastTime = time.Now()
	return p
}

// Mark ends the current phase under the given name and starts the next one.
//
// Parameters:
//   - name: the name of the phase that just finished
//
// Returns:
//   - Phase: the measurement of the finished phase
func (p *Profiler) Mark(name string) Phase {
	currentTime := time.Now()
	runtime.ReadMemStats(&p.memStats)

	gcCount := p.memStats.NumGC
	var maxPauseNs uint64
	if gcCount > 0 {
		// PauseNs is a circular buffer of the last 256 GC pauses
		startIdx := p.lastGCCount
		if gcCount-startIdx > 256 {
			startIdx = gcCount - 256
		}
		for i := startIdx; i < gcCount; i++ {
			maxPauseNs = max(maxPauseNs, p.memStats.PauseNs[i%256])
		}
	}

	phase := Phase{
		Name:       name,
		Duration:   currentTime.Sub(p.lastTime),
		AllocBytes: p.memStats.TotalAlloc - p.lastTotalAlloc,
		HeapBytes:  p.memStats.Alloc,
		GCCount:    gcCount - p.lastGCCount,
		MaxPause:   time.Duration(maxPauseNs),
	}
	p.phases = append(p.phases, phase)

	p.lastTime = currentTime
	p.lastGCCount = gcCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return phase
}

// Phases returns the phases marked so far, in order.
func (p *Profiler) Phases() []Phase {
	return p.phases
}

// Total is the summed duration of every marked phase.
func (p *Profiler) Total() time.Duration {
	var total time.Duration
	for _, phase := range p.phases {
		total += phase.Duration
	}
	return total
}

// Report logs every marked phase followed by the total.
func (p *Profiler) Report() {
	for _, phase := range p.phases {
		log.Printf("[Profiler] %s", phase)
	}
	log.Printf("[Profiler] total: %s", p.Total().Round(time.Microsecond))
}
