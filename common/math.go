package common

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// Clamp limits v to the closed interval [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// TowardZero reduces the magnitude of v by amount without crossing zero.
func TowardZero(v, amount float64) float64 {
	if amount <= 0 {
		return v
	}
	if v > 0 {
		v -= amount
		if v < 0 {
			return 0
		}
		return v
	}
	if v < 0 {
		v += amount
		if v > 0 {
			return 0
		}
	}
	return v
}
