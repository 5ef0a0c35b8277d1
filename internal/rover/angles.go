package rover

import "math"

// WrapToPi maps an angle in radians to (-pi, pi].
func WrapToPi(a float64) float64 {
	w := math.Mod(a+math.Pi, 2*math.Pi)
	if w <= 0 {
		w += 2 * math.Pi
	}
	return w - math.Pi
}

// Sinc is the unnormalized sinc function sin(z)/z, with the removable
// singularity at zero defined as 1. Below the threshold sin(z)/z differs
// from 1 by less than one ulp.
func Sinc(z float64) float64 {
	if math.Abs(z) < 1e-9 {
		return 1
	}
	return math.Sin(z) / z
}
