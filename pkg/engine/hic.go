package engine

import "math"

// hicWindowS is the maximum HIC integration window (15 ms).
const hicWindowS = 0.015

// chestA3msWindowS is the sustained-acceleration window for the chest
// 3 ms clip diagnostic.
const chestA3msWindowS = 0.003

// HIC15 computes the Head Injury Criterion with a 15 ms window limit over
// an occupant head acceleration series given in m/s²:
//
//	HIC = max over (t1,t2), t2-t1 <= 15ms of (t2-t1) * avgG^2.5
//
// where avgG is the mean acceleration over the window expressed in g.
// A prefix-sum over the series makes each window average O(1); all window
// start/end pairs within the limit are examined. Windows whose average is
// non-positive are skipped.
func HIC15(accel []float64, dt float64) float64 {
	n := len(accel)
	if n < 2 || dt <= 0 {
		return 0
	}

	prefix := make([]float64, n+1)
	for i, a := range accel {
		prefix[i+1] = prefix[i] + a
	}

	// Epsilon keeps the window at 15 ms when the division lands just
	// below an integer.
	maxSamples := int(hicWindowS/dt + 1e-9)
	if maxSamples < 1 {
		maxSamples = 1
	}

	var hic float64
	for i := 0; i < n-1; i++ {
		jMax := i + maxSamples
		if jMax > n-1 {
			jMax = n - 1
		}
		for j := i + 1; j <= jMax; j++ {
			window := float64(j-i) * dt
			avg := (prefix[j+1] - prefix[i]) / float64(j-i+1)
			avgG := avg / Gravity
			if avgG <= 0 {
				continue
			}
			v := window * math.Pow(avgG, 2.5)
			if v > hic {
				hic = v
			}
		}
	}
	return hic
}

// ChestA3ms returns the highest acceleration, in g, sustained over any
// contiguous 3 ms window of the occupant series. It is a diagnostic
// companion to the thorax deflection criterion, not a scored channel.
func ChestA3ms(accel []float64, dt float64) float64 {
	n := len(accel)
	if n == 0 || dt <= 0 {
		return 0
	}

	window := int(chestA3msWindowS/dt + 1e-9)
	if window < 1 {
		window = 1
	}
	if window > n {
		window = n
	}

	var sum float64
	for i := 0; i < window; i++ {
		sum += accel[i]
	}
	best := sum
	for i := window; i < n; i++ {
		sum += accel[i] - accel[i-window]
		if sum > best {
			best = sum
		}
	}

	return best / float64(window) / Gravity
}
