package metastudy

import (
	"math"
	"math/rand"
)

const (
	kmeansMaxIterations = 100
	kmeansTolerance     = 1e-6
	// kmeansRestarts is how many seeded initializations each Fit tries; the
	// assignment with the lowest total within-cluster squared distance wins.
	kmeansRestarts = 10
)

// Clustering is the outcome of one k-means run: a label in [0, K) per input
// row plus the fitted centroids in the same vocabulary space as the input
// matrix.
type Clustering struct {
	K         int
	Labels    []int
	Centroids [][]float64
}

// KMeans partitions a term matrix into k clusters with Lloyd's algorithm.
// Each instance owns its own seed and produces identical assignments for
// identical input, so one instance per meta-study run keeps concurrent runs
// isolated from each other.
type KMeans struct {
	k    int
	seed int64
}

// NewKMeans returns an engine for the requested cluster count. The count is
// clamped per run: effective k = min(k, number of rows), at least 1.
func NewKMeans(k int, seed int64) *KMeans {
	return &KMeans{k: k, seed: seed}
}

// Fit runs the clustering. A matrix with zero rows skips clustering entirely
// and yields an empty result.
//
// Lloyd's algorithm only finds a local optimum for a given initialization, so
// Fit restarts it kmeansRestarts times with seeds derived from the engine's
// seed and keeps the lowest-inertia run. Restart seeds are a fixed function
// of the caller's seed, so the result stays deterministic.
func (km *KMeans) Fit(rows [][]float64) *Clustering {
	n := len(rows)
	if n == 0 {
		return &Clustering{K: 0, Labels: []int{}, Centroids: [][]float64{}}
	}

	k := km.k
	if k > n {
		k = n
	}
	if k < 1 {
		k = 1
	}

	var best *Clustering
	bestInertia := math.Inf(1)
	for restart := 0; restart < kmeansRestarts; restart++ {
		clustering := km.fitOnce(rows, k, km.seed+int64(restart))
		if in := inertia(rows, clustering); in < bestInertia {
			bestInertia = in
			best = clustering
		}
	}
	return best
}

// fitOnce runs a single Lloyd pass from one seeded initialization.
func (km *KMeans) fitOnce(rows [][]float64, k int, seed int64) *Clustering {
	n := len(rows)
	dim := len(rows[0])
	rng := rand.New(rand.NewSource(seed))

	// Seed centroids from k distinct document rows.
	centroids := make([][]float64, k)
	for i, idx := range rng.Perm(n)[:k] {
		centroids[i] = append([]float64(nil), rows[idx]...)
	}

	labels := make([]int, n)
	for iter := 0; iter < kmeansMaxIterations; iter++ {
		for i, row := range rows {
			labels[i] = nearestCentroid(row, centroids)
		}

		next := recomputeCentroids(rows, labels, k, dim)
		reseedEmptyClusters(next, rows, labels, centroids)

		if maxShift(centroids, next) < kmeansTolerance {
			centroids = next
			break
		}
		centroids = next
	}

	// Final assignment against the converged centroids.
	for i, row := range rows {
		labels[i] = nearestCentroid(row, centroids)
	}

	return &Clustering{K: k, Labels: labels, Centroids: centroids}
}

// inertia is the total within-cluster squared distance of an assignment.
func inertia(rows [][]float64, clustering *Clustering) float64 {
	var sum float64
	for i, row := range rows {
		sum += squaredDistance(row, clustering.Centroids[clustering.Labels[i]])
	}
	return sum
}

// nearestCentroid returns the index of the closest centroid by squared
// euclidean distance, ties going to the lowest index.
func nearestCentroid(row []float64, centroids [][]float64) int {
	best := 0
	bestDist := math.Inf(1)
	for i, c := range centroids {
		d := squaredDistance(row, c)
		if d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best
}

func recomputeCentroids(rows [][]float64, labels []int, k, dim int) [][]float64 {
	next := make([][]float64, k)
	sizes := make([]int, k)
	for i := range next {
		next[i] = make([]float64, dim)
	}
	for i, row := range rows {
		c := labels[i]
		sizes[c]++
		for j, w := range row {
			next[c][j] += w
		}
	}
	for c := range next {
		if sizes[c] == 0 {
			next[c] = nil // reseeded below
			continue
		}
		for j := range next[c] {
			next[c][j] /= float64(sizes[c])
		}
	}
	return next
}

// reseedEmptyClusters replaces the centroid of any cluster that lost all its
// members with the row farthest from its current centroid. Deterministic:
// rows are scanned in input order.
func reseedEmptyClusters(next, rows [][]float64, labels []int, prev [][]float64) {
	for c := range next {
		if next[c] != nil {
			continue
		}
		farthest := 0
		farthestDist := -1.0
		for i, row := range rows {
			d := squaredDistance(row, prev[labels[i]])
			if d > farthestDist {
				farthestDist = d
				farthest = i
			}
		}
		next[c] = append([]float64(nil), rows[farthest]...)
	}
}

func maxShift(prev, next [][]float64) float64 {
	shift := 0.0
	for i := range prev {
		if d := squaredDistance(prev[i], next[i]); d > shift {
			shift = d
		}
	}
	return shift
}

func squaredDistance(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}
