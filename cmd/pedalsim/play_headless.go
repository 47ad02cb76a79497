//go:build headless

package main

import "errors"

func play(int, []float64, []float64) error {
	return errors.New("playback not available in headless builds")
}
