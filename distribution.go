package genus

// bucket indexes a slot in a gender distribution. The first four buckets
// are the real genders in priority order; bucketUnknown holds the
// "contextual evidence present but unresolved" mass; bucketNoGender holds
// mass contributed by contexts that have no committed gender yet.
type bucket int

const (
	bucketM bucket = iota
	bucketI
	bucketF
	bucketN
	bucketUnknown
	bucketNoGender
	numBuckets
)

// genderBucket maps a gender to its distribution slot.
func genderBucket(g Gender) bucket {
	switch g {
	case MasculineAnimate:
		return bucketM
	case MasculineInanimate:
		return bucketI
	case Feminine:
		return bucketF
	default:
		return bucketN
	}
}

// gender returns the real gender behind b, or false for the Unknown and
// NoGender buckets.
func (b bucket) gender() (Gender, bool) {
	switch b {
	case bucketM:
		return MasculineAnimate, true
	case bucketI:
		return MasculineInanimate, true
	case bucketF:
		return Feminine, true
	case bucketN:
		return Neuter, true
	}
	return 0, false
}

// dist is a gender probability distribution over the fixed buckets.
// Using a flat array instead of a map keeps iteration order (and therefore
// floating-point accumulation and argmax results) fully deterministic.
type dist [numBuckets]float64

// normalize scales the distribution in place to sum to 1.
// A zero-mass distribution is left unchanged; callers treat it as
// "no usable signal".
func (d *dist) normalize() {
	var sum float64
	for _, v := range d {
		sum += v
	}
	if sum == 0 {
		return
	}
	for i := range d {
		d[i] /= sum
	}
}

// add accumulates o into d slot by slot.
func (d *dist) add(o dist) {
	for i := range d {
		d[i] += o[i]
	}
}

// scale multiplies every slot by w.
func (d *dist) scale(w float64) {
	for i := range d {
		d[i] *= w
	}
}

// argMax returns the highest-probability bucket and its probability.
// Ties resolve to the earliest bucket in declaration order
// (M, I, F, N, Unknown, NoGender).
func (d dist) argMax() (bucket, float64) {
	best := bucket(0)
	for b := bucket(1); b < numBuckets; b++ {
		if d[b] > d[best] {
			best = b
		}
	}
	return best, d[best]
}
