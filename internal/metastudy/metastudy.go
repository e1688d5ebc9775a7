// Package metastudy clusters a corpus of document summaries and reports the
// most representative terms per cluster.
package metastudy

import "sort"

const (
	// DefaultClusterCount is the requested k when the caller does not pick one.
	DefaultClusterCount = 3
	// DefaultSeed fixes the k-means initialization for reproducible runs.
	DefaultSeed = 42
	// topTermCount caps how many terms describe each cluster centroid.
	topTermCount = 5
)

// CorpusRecord is one document in a meta-study request. Summary and Entities
// are produced by an external collaborator and are opaque here; Cluster is
// -1 until clustering assigns a label.
type CorpusRecord struct {
	Filename string `json:"filename"`
	Text     string `json:"text,omitempty"`
	Summary  string `json:"summary"`
	Entities string `json:"entities"`
	Cluster  int    `json:"cluster"`
}

// ClusterProfile describes one cluster by its highest-weighted centroid terms.
type ClusterProfile struct {
	ClusterID int      `json:"cluster_id"`
	TopTerms  []string `json:"top_terms"`
}

// Result is the complete outcome of one meta-study run. Clusters maps each
// cluster id to its member filenames in corpus input order; Matrix is the
// input corpus with cluster labels attached.
type Result struct {
	Clusters map[int][]string `json:"clusters"`
	TopTerms map[int][]string `json:"top_terms"`
	Matrix   []CorpusRecord   `json:"matrix"`
}

// Run vectorizes the corpus summaries, clusters them, and aggregates the
// findings. The whole corpus must be materialized before the call: partial
// or incremental clustering is not supported, and adding a document after a
// run invalidates its result.
//
// An empty corpus is not an error; it returns empty structures.
func Run(corpus []CorpusRecord, kRequested int, seed int64) *Result {
	result := &Result{
		Clusters: map[int][]string{},
		TopTerms: map[int][]string{},
		Matrix:   []CorpusRecord{},
	}
	if len(corpus) == 0 {
		return result
	}

	summaries := make([]string, len(corpus))
	for i, rec := range corpus {
		summaries[i] = rec.Summary
	}

	matrix := NewVectorizer().Fit(summaries)
	clustering := NewKMeans(kRequested, seed).Fit(matrix.Rows)

	for c := 0; c < clustering.K; c++ {
		profile := profileCluster(c, clustering.Centroids[c], matrix.Vocabulary)
		result.TopTerms[c] = profile.TopTerms
		result.Clusters[c] = []string{}
		for i, rec := range corpus {
			if clustering.Labels[i] == c {
				result.Clusters[c] = append(result.Clusters[c], rec.Filename)
			}
		}
	}

	result.Matrix = make([]CorpusRecord, len(corpus))
	for i, rec := range corpus {
		rec.Cluster = clustering.Labels[i]
		result.Matrix[i] = rec
	}

	return result
}

// profileCluster ranks vocabulary indices by descending centroid weight,
// breaking exact ties by ascending index, and keeps the top non-zero terms.
func profileCluster(id int, centroid []float64, vocab []string) ClusterProfile {
	indices := make([]int, len(vocab))
	for i := range indices {
		indices[i] = i
	}
	sort.SliceStable(indices, func(a, b int) bool {
		if centroid[indices[a]] != centroid[indices[b]] {
			return centroid[indices[a]] > centroid[indices[b]]
		}
		return indices[a] < indices[b]
	})

	terms := []string{}
	for _, idx := range indices {
		if len(terms) == topTermCount {
			break
		}
		if centroid[idx] <= 0 {
			break
		}
		terms = append(terms, vocab[idx])
	}

	return ClusterProfile{ClusterID: id, TopTerms: terms}
}
