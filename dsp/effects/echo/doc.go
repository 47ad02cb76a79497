// Package echo provides the delay effects.
//
// DelayRam and DelaySpi share one Voice, the time/level/feedback/tone
// control block, and differ only in where the delayed samples live: a
// 16-bit line in local memory or a 16-bit ring in external serial RAM.
package echo
