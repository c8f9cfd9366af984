package telemetry

import (
	"math"
	"math/rand"
	"time"
)

// Sensor produces one reading per sampling tick.
type Sensor interface {
	Name() string
	Read(now time.Time) (Reading, bool)
}

const simCycleDuration = 120 * time.Second

// SimulatedLightSensor models ambient light over a compressed day/night
// cycle: dawn ramp, noon peak, dusk ramp, night floor, plus noise.
type SimulatedLightSensor struct {
	start time.Time
	rng   *rand.Rand
}

func NewSimulatedLightSensor(rng *rand.Rand) *SimulatedLightSensor {
	return &SimulatedLightSensor{start: time.Now(), rng: ensureRand(rng)}
}

func (*SimulatedLightSensor) Name() string { return "simulated_light" }

func (s *SimulatedLightSensor) Read(now time.Time) (Reading, bool) {
	pos := cyclePosition(s.start, now)

	var lux float64
	switch {
	case pos < 0.25: // dawn
		lux = 100 + 900*(pos*4)
	case pos < 0.5: // morning to noon
		lux = 1000 + 4000*((pos-0.25)*4)
	case pos < 0.75: // afternoon to dusk
		lux = 5000 - 4000*((pos-0.5)*4)
	default: // night
		lux = 1000 - 900*((pos-0.75)*4)
	}

	lux += s.rng.Float64()*100 - 50
	lux = clamp(lux, 50, 5000)

	return Reading{
		Kind:       KindAmbientLight,
		Value:      lux,
		Unit:       "lux",
		CapturedAt: now,
	}, true
}

// SimulatedColorTempSensor models color temperature correlated with the
// time of day: warm mornings and evenings, neutral-to-cool midday.
type SimulatedColorTempSensor struct {
	start time.Time
	rng   *rand.Rand
}

func NewSimulatedColorTempSensor(rng *rand.Rand) *SimulatedColorTempSensor {
	return &SimulatedColorTempSensor{start: time.Now(), rng: ensureRand(rng)}
}

func (*SimulatedColorTempSensor) Name() string { return "simulated_color_temp" }

func (s *SimulatedColorTempSensor) Read(now time.Time) (Reading, bool) {
	pos := cyclePosition(s.start, now)

	var kelvin float64
	switch {
	case pos < 0.3: // morning
		kelvin = 3000 + 2000*(pos/0.3)
	case pos < 0.7: // day
		kelvin = 5000 + 1000*math.Sin((pos-0.3)*2.5*math.Pi)
	default: // evening
		kelvin = 5000 - 2000*((pos-0.7)/0.3)
	}

	kelvin += s.rng.Float64()*200 - 100
	kelvin = clamp(kelvin, 2700, 6500)

	return Reading{
		Kind:       KindColorTemperature,
		Value:      kelvin,
		Unit:       "kelvin",
		CapturedAt: now,
	}, true
}

// SimulatedMotionSensor models scene activity: a random walk that picks
// a new target level every 10-20 seconds and eases toward it.
type SimulatedMotionSensor struct {
	rng        *rand.Rand
	level      float64
	target     float64
	lastChange time.Time
	nextAfter  time.Duration
}

func NewSimulatedMotionSensor(rng *rand.Rand) *SimulatedMotionSensor {
	r := ensureRand(rng)
	return &SimulatedMotionSensor{
		rng:        r,
		level:      0.3,
		target:     0.3,
		lastChange: time.Now(),
		nextAfter:  retargetDelay(r),
	}
}

func (*SimulatedMotionSensor) Name() string { return "simulated_motion" }

func (s *SimulatedMotionSensor) Read(now time.Time) (Reading, bool) {
	if now.Sub(s.lastChange) > s.nextAfter {
		targets := []float64{0.1, 0.3, 0.5, 0.7, 0.9}
		s.target = targets[s.rng.Intn(len(targets))]
		s.lastChange = now
		s.nextAfter = retargetDelay(s.rng)
	}

	s.level += (s.target - s.level) * 0.1

	motion := s.level + s.rng.Float64()*0.1 - 0.05
	motion = clamp(motion, 0, 1)

	return Reading{
		Kind:       KindMotion,
		Value:      motion,
		Unit:       "normalized",
		CapturedAt: now,
	}, true
}

// SimulatedSensors returns the full simulated sensor set.
func SimulatedSensors(rng *rand.Rand) []Sensor {
	r := ensureRand(rng)
	return []Sensor{
		NewSimulatedLightSensor(r),
		NewSimulatedColorTempSensor(r),
		NewSimulatedMotionSensor(r),
	}
}

func cyclePosition(start, now time.Time) float64 {
	elapsed := now.Sub(start) % simCycleDuration
	if elapsed < 0 {
		elapsed += simCycleDuration
	}
	return float64(elapsed) / float64(simCycleDuration)
}

func retargetDelay(rng *rand.Rand) time.Duration {
	return 10*time.Second + time.Duration(rng.Float64()*float64(10*time.Second))
}

func ensureRand(rng *rand.Rand) *rand.Rand {
	if rng == nil {
		return rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return rng
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
