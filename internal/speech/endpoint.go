package speech

import "time"

// EndpointState is the outcome of feeding a frame to an Endpointer
type EndpointState int

const (
	// Waiting means no speech has been heard yet
	Waiting EndpointState = iota
	// Recording means speech started and the utterance is still open
	Recording
	// Done means the utterance ended
	Done
	// TimedOut means no speech started within the listen timeout
	TimedOut
)

// Endpointer decides where an utterance starts and ends from frame energy
type Endpointer struct {
	threshold  int16
	maxWait    int // samples to wait for speech
	maxSilence int // trailing silent samples that end an utterance
	maxSamples int // hard cap on utterance length
	waited     int
	silent     int
	started    bool
	previous   []int16
	samples    []int16
}

// NewEndpointer creates an endpointer from capture settings in config
func NewEndpointer(config *Config) *Endpointer {
	rate := config.SampleRate
	if rate <= 0 {
		rate = 16000
	}
	return &Endpointer{
		threshold:  config.SilenceThreshold,
		maxWait:    samplesFor(config.ListenTimeout, rate),
		maxSilence: samplesFor(config.TrailingSilence, rate),
		maxSamples: samplesFor(config.MaxDuration, rate),
	}
}

func samplesFor(d time.Duration, rate int) int {
	return int(d.Seconds() * float64(rate))
}

// loud reports whether any sample in frame exceeds the threshold
func (e *Endpointer) loud(frame []int16) bool {
	for _, s := range frame {
		if s > e.threshold || s < -e.threshold {
			return true
		}
	}
	return false
}

// Feed consumes one frame of samples and reports the new state
func (e *Endpointer) Feed(frame []int16) EndpointState {
	if !e.started {
		if !e.loud(frame) {
			e.waited += len(frame)
			e.previous = append(e.previous[:0], frame...)
			if e.maxWait > 0 && e.waited >= e.maxWait {
				return TimedOut
			}
			return Waiting
		}
		// Keep one frame of pre-roll so the first syllable is not clipped
		e.started = true
		e.samples = append(e.samples, e.previous...)
	}

	e.samples = append(e.samples, frame...)

	if e.loud(frame) {
		e.silent = 0
	} else {
		e.silent += len(frame)
	}

	if e.maxSilence > 0 && e.silent >= e.maxSilence {
		return Done
	}
	if e.maxSamples > 0 && len(e.samples) >= e.maxSamples {
		return Done
	}
	return Recording
}

// Samples returns the captured utterance
func (e *Endpointer) Samples() []int16 {
	return e.samples
}
