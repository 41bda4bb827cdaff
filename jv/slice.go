package jv

// clampSliceParams normalizes a [start, end) range against a sequence of
// the given length: a negative index is first interpreted relative to the
// end of the sequence (start = length + start), then both bounds are
// clamped into [0, length], and finally end is raised to at least start so
// the result is never an inverted range. This mirrors
// jvp_clamp_slice_params exactly, including that BOTH bounds (not just
// start) receive the negative-index adjustment before clamping.
func clampSliceParams(length, start, end int) (int, int) {
	if start < 0 {
		start += length
	}
	if end < 0 {
		end += length
	}

	start = clampInt(start, 0, length)
	end = clampInt(end, 0, length)

	if end < start {
		end = start
	}
	return start, end
}

func clampInt(x, lo, hi int) int {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
