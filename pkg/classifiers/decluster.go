package classifiers

// Decluster collapses each maximal run of consecutive indices in a sorted
// SpikeSet into a single representative index at the run's midpoint,
// floor((start+end)/2). A threshold classifier flags both edges of a spike
// individually; an analyst counts one spike.
func Decluster(indices SpikeSet) SpikeSet {
	if len(indices) == 0 {
		return SpikeSet{}
	}

	out := make(SpikeSet, 0, len(indices))
	start := indices[0]
	prev := indices[0]

	for _, idx := range indices[1:] {
		if idx-prev > 1 {
			out = append(out, (start+prev)/2)
			start = idx
		}
		prev = idx
	}
	out = append(out, (start+prev)/2)

	return out
}
