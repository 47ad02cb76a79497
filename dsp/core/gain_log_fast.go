//go:build fastmath

package core

import "github.com/meko-christian/algo-approx"

// gainToDB uses the fast natural logarithm approximation.
func gainToDB(x float64) float64 {
	return dbPerNeper * approx.FastLog(x)
}
