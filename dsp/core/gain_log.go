//go:build !fastmath

package core

import "math"

// gainToDB evaluates ln(m) with the odd series in t = (m-1)/(m+1) after
// splitting x into m*2^e with m in [1/sqrt2, sqrt2).
func gainToDB(x float64) float64 {
	m, e := math.Frexp(x)
	if m < math.Sqrt2/2 {
		m *= 2
		e--
	}
	t := (m - 1) / (m + 1)
	t2 := t * t
	ln := 2 * t * (1 + t2*(1.0/3+t2*(1.0/5+t2*(1.0/7+t2*(1.0/9)))))
	return dbPerNeper * (float64(e)*math.Ln2 + ln)
}
