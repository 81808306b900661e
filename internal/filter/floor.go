package filter

import "math"

// Floor tracks the resting level of a signal: the minimum over a sliding window, averaged across the last few
// distinct minima so one outlier does not drag it down.
type Floor struct {
	window  []float32
	next    int
	minima  []float32
	primed  bool
	skipDup bool
}

// NewFloor keeps size samples and size/10 (at least one) minima. With skipDup, a minimum equal to the previous one
// is not recorded again.
func NewFloor(size uint8, skipDup bool) *Floor {
	if size == 0 {
		size = 1
	}
	n := size / 10
	if n == 0 {
		n = 1
	}
	return &Floor{
		window:  make([]float32, 0, size),
		minima:  make([]float32, n),
		skipDup: skipDup,
	}
}

func (f *Floor) Filter(value float32) float32 {
	if len(f.window) < cap(f.window) {
		f.window = append(f.window, value)
	} else {
		f.window[f.next] = value
		f.next = (f.next + 1) % len(f.window)
	}

	min := float32(math.MaxFloat32)
	for _, v := range f.window {
		if v < min {
			min = v
		}
	}

	last := len(f.minima) - 1
	switch {
	case !f.primed:
		for i := range f.minima {
			f.minima[i] = min
		}
		f.primed = true
	case f.minima[last] != min || !f.skipDup:
		copy(f.minima, f.minima[1:])
		f.minima[last] = min
	}

	var sum float32
	for _, v := range f.minima {
		sum += v
	}
	return sum / float32(len(f.minima))
}
