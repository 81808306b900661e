// Package filter smooths noisy analog readings.
package filter

// Smooth blends each new sample with the mean of the last few samples. A higher gain follows the input more closely.
type Smooth struct {
	gain   float32
	values []float32
	next   int
}

func NewSmooth(size uint8) *Smooth {
	if size == 0 {
		size = 1
	}
	return &Smooth{
		gain:   0.2,
		values: make([]float32, 0, size),
	}
}

func (f *Smooth) SetGain(gain float32) {
	f.gain = gain
}

func (f *Smooth) Filter(value float32) float32 {
	if len(f.values) < cap(f.values) {
		f.values = append(f.values, value)
	} else {
		f.values[f.next] = value
		f.next = (f.next + 1) % len(f.values)
	}

	var sum float32
	for _, v := range f.values {
		sum += v
	}
	avg := sum / float32(len(f.values))

	return f.gain*value + (1-f.gain)*avg
}
