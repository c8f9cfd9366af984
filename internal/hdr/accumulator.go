package hdr

// Accumulator keeps the running per-frame latency totals for one
// processor instance. Single writer: the thread invoking Process.
// Not safe for concurrent use; one processor per concurrent stream.
type Accumulator struct {
	frameCount  uint64
	totalTimeMs float64
}

// Record adds one frame's processing duration.
func (a *Accumulator) Record(durationMs float64) {
	a.frameCount++
	a.totalTimeMs += durationMs
}

// Average returns the mean frame duration, 0 before any frame.
func (a *Accumulator) Average() float64 {
	if a.frameCount == 0 {
		return 0
	}
	return a.totalTimeMs / float64(a.frameCount)
}

// Count returns the number of frames recorded.
func (a *Accumulator) Count() uint64 {
	return a.frameCount
}

// Total returns the summed processing time in milliseconds.
func (a *Accumulator) Total() float64 {
	return a.totalTimeMs
}

// FrameMetrics is the per-frame readout exposed alongside each result.
// Intended for observability display, never consumed internally.
type FrameMetrics struct {
	ProcessTimeMs   float64
	AverageTimeMs   float64
	Exposure        float64
	Contrast        float64
	Saturation      float64
	SharpenStrength float64
}

// Readout returns the metrics as a plain mapping for external display.
func (m FrameMetrics) Readout() map[string]float64 {
	return map[string]float64{
		"process_time_ms": m.ProcessTimeMs,
		"avg_time_ms":     m.AverageTimeMs,
		"exposure":        m.Exposure,
		"contrast":        m.Contrast,
		"saturation":      m.Saturation,
		"sharpening":      m.SharpenStrength,
	}
}
