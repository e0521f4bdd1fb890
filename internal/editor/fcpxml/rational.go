package fcpxml

import (
	"fmt"
	"math"
)

// frame duration of a rate as a rational number of seconds, num/den.
// NTSC rates use the 1001 family so 23.976 is 1001/24000s exactly.
func frameDuration(rate float64) (num, den int64) {
	if rate <= 0 {
		return 0, 1
	}
	if whole := math.Round(rate); math.Abs(rate-whole) < 1e-6 {
		return 1, int64(whole)
	}
	if ntsc := math.Round(rate * 1001 / 1000); math.Abs(rate-ntsc*1000/1001) < 0.01 {
		return 1001, int64(ntsc * 1000)
	}
	return 100, int64(math.Round(rate * 100))
}

// seconds value of frames at rate, as an FCPXML time string ("5s",
// "1001/24000s", "0s").
func frameTime(frames int, rate float64) string {
	if frames == 0 {
		return "0s"
	}
	num, den := frameDuration(rate)
	n := int64(frames) * num
	g := gcd(abs(n), den)
	n, den = n/g, den/g
	if den == 1 {
		return fmt.Sprintf("%ds", n)
	}
	return fmt.Sprintf("%d/%ds", n, den)
}

// frames covering seconds at rate, rounded up so a clip of the whole asset
// always fits
func secondsToFrames(seconds, rate float64) int {
	if seconds <= 0 || rate <= 0 {
		return 0
	}
	return int(math.Ceil(seconds*rate - 1e-9))
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	if a == 0 {
		return 1
	}
	return a
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}
