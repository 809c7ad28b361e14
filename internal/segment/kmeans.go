// Dealradar - Deals Discovery Analytics and Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dealradar

package segment

import (
	"math"
	"math/rand"
)

// kMeans clusters the feature rows into k groups and returns the cluster
// index per row. Centroids are seeded from k distinct rows chosen without
// replacement; iteration stops when an assignment pass changes nothing or
// maxIterations is reached. A cluster that loses all members keeps its
// previous centroid.
func kMeans(features [][]float64, k, maxIterations int, rng *rand.Rand) []int {
	n := len(features)
	if k > n {
		k = n
	}

	centroids := make([][]float64, k)
	for i, idx := range rng.Perm(n)[:k] {
		centroids[i] = append([]float64(nil), features[idx]...)
	}

	assignments := make([]int, n)
	for i := range assignments {
		assignments[i] = -1
	}

	for iter := 0; iter < maxIterations; iter++ {
		changed := false
		for i, row := range features {
			best := nearestCentroid(row, centroids)
			if best != assignments[i] {
				assignments[i] = best
				changed = true
			}
		}
		if !changed {
			break
		}
		recomputeCentroids(features, assignments, centroids)
	}

	return assignments
}

// nearestCentroid returns the index of the closest centroid by Euclidean
// distance. Ties keep the lower index.
func nearestCentroid(row []float64, centroids [][]float64) int {
	best, bestDist := 0, math.Inf(1)
	for i, c := range centroids {
		if d := squaredDistance(row, c); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// squaredDistance is the squared Euclidean distance; the ordering is the
// same as the true distance so the square root is skipped.
func squaredDistance(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

// recomputeCentroids moves each centroid to the mean of its members.
// Empty clusters are left where they were.
func recomputeCentroids(features [][]float64, assignments []int, centroids [][]float64) {
	dims := len(features[0])
	sums := make([][]float64, len(centroids))
	counts := make([]int, len(centroids))
	for i := range sums {
		sums[i] = make([]float64, dims)
	}

	for i, row := range features {
		cluster := assignments[i]
		counts[cluster]++
		for d, v := range row {
			sums[cluster][d] += v
		}
	}

	for i := range centroids {
		if counts[i] == 0 {
			continue
		}
		for d := 0; d < dims; d++ {
			centroids[i][d] = sums[i][d] / float64(counts[i])
		}
	}
}
