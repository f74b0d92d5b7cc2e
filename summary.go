package kmeans

import "gonum.org/v1/gonum/stat"

// ClusterSummary describes the members of one cluster.
type ClusterSummary struct {
	Cluster      int
	Count        int
	MeanRentals  float64
	MeanSpending float64
	StdRentals   float64
	StdSpending  float64
}

// Summarize returns a summary for every cluster of s that has members, in cluster order.
// Unassigned points are skipped, so a snapshot taken before the first step has no summaries.
// The standard deviations are zero for single-member clusters.
func Summarize(s State) []ClusterSummary {
	k := len(s.Centroids)
	rentals := make([][]float64, k)
	spending := make([][]float64, k)
	for _, p := range s.Points {
		if p.Cluster < 0 || p.Cluster >= k {
			continue
		}
		rentals[p.Cluster] = append(rentals[p.Cluster], p.Rentals)
		spending[p.Cluster] = append(spending[p.Cluster], p.Spending)
	}

	var summaries []ClusterSummary
	for i := range k {
		if len(rentals[i]) == 0 {
			continue
		}
		sum := ClusterSummary{
			Cluster:      i,
			Count:        len(rentals[i]),
			MeanRentals:  stat.Mean(rentals[i], nil),
			MeanSpending: stat.Mean(spending[i], nil),
		}
		if sum.Count > 1 {
			sum.StdRentals = stat.StdDev(rentals[i], nil)
			sum.StdSpending = stat.StdDev(spending[i], nil)
		}
		summaries = append(summaries, sum)
	}
	return summaries
}
