package core

import (
	"math"

	"github.com/signalsfoundry/constellation-validator/model"
)

// referenceScenario is the 27-satellite quality-strategy scenario used across
// the engine tests: ids drawn from the 111–166 grid, 25 distinct targets, a
// duplicated (163,132) link and a duplicated (146,8) observation so the
// last-write-wins indexing is always exercised.
func referenceScenario() *model.ScenarioInput {
	return &model.ScenarioInput{
		Timestamp: "2025-06-27T01:41:21Z",
		Strategy:  model.StrategyQuality,
		Satellites: []model.SatelliteAttr{
			{ID: 132, Health: 0.87, Pos: [3]float64{5231.847, -1289.387, -2519.124}},
			{ID: 133, Health: 0.94, Pos: [3]float64{-7693.171, -7198.445, -4887.208}},
			{ID: 134, Health: 0.52, Pos: [3]float64{-1867.829, -1481.63, 6607.229}},
			{ID: 135, Health: 0.6, Pos: [3]float64{-403.845, 4230.973, 6247.4}},
			{ID: 136, Health: 0.66, Pos: [3]float64{1680.431, 1628.839, 7823.812}},
			{ID: 143, Health: 0.84, Pos: [3]float64{-5400.805, 4999.156, -7618.133}},
			{ID: 144, Health: 0.81, Pos: [3]float64{-5660.731, 7871.925, -5448.375}},
			{ID: 145, Health: 0.97, Pos: [3]float64{7740.468, -1228.166, 2964.448}},
			{ID: 146, Health: 0.8, Pos: [3]float64{2015.698, 6321.6, -6458.866}},
			{ID: 151, Health: 0.6, Pos: [3]float64{-836.917, -6103.703, -6547.617}},
			{ID: 153, Health: 0.63, Pos: [3]float64{-1384.164, 2633.782, -1945.832}},
			{ID: 154, Health: 0.63, Pos: [3]float64{-2615.123, 7887.198, 5633.477}},
			{ID: 155, Health: 1.0, Pos: [3]float64{7802.729, 5117.391, 2828.367}},
			{ID: 161, Health: 0.77, Pos: [3]float64{4648.125, 3681.344, 7259.989}},
			{ID: 162, Health: 0.86, Pos: [3]float64{4548.898, -4132.845, 4160.725}},
			{ID: 163, Health: 0.64, Pos: [3]float64{-3854.781, 945.113, -7.173}},
			{ID: 165, Health: 0.76, Pos: [3]float64{1269.62, -6641.84, -2687.341}},
			{ID: 166, Health: 0.55, Pos: [3]float64{1502.668, -2076.357, -6947.712}},
			{ID: 111, Health: 0.85, Pos: [3]float64{2413.383, 1236.673, -2967.662}},
			{ID: 113, Health: 0.55, Pos: [3]float64{-7567.903, 2783.617, -3289.413}},
			{ID: 114, Health: 0.95, Pos: [3]float64{2225.978, -3370.548, -4403.578}},
			{ID: 115, Health: 0.7, Pos: [3]float64{-2603.784, -2124.826, -1279.521}},
			{ID: 116, Health: 0.83, Pos: [3]float64{2497.692, 6023.306, 5118.791}},
			{ID: 121, Health: 0.77, Pos: [3]float64{-7962.326, 1233.002, -7528.661}},
			{ID: 122, Health: 0.75, Pos: [3]float64{2445.126, 5115.013, -7937.369}},
			{ID: 124, Health: 0.6, Pos: [3]float64{-2010.079, 1236.28, 1588.676}},
			{ID: 125, Health: 0.78, Pos: [3]float64{2912.689, 6321.827, 2679.13}},
		},
		SatelliteLinks: []model.LinkEdge{
			{From: 125, To: 166, Weight: 0.94},
			{From: 155, To: 143, Weight: 0.83},
			{From: 115, To: 145, Weight: 0.36},
			{From: 111, To: 162, Weight: 0.95},
			{From: 116, To: 135, Weight: 0.23},
			{From: 124, To: 121, Weight: 0.42},
			{From: 125, To: 111, Weight: 0.56},
			{From: 163, To: 132, Weight: 0.25},
			{From: 122, To: 136, Weight: 0.26},
			{From: 124, To: 136, Weight: 0.75},
			{From: 143, To: 144, Weight: 0.44},
			{From: 153, To: 136, Weight: 0.23},
			{From: 132, To: 136, Weight: 0.72},
			{From: 124, To: 132, Weight: 0.21},
			{From: 111, To: 165, Weight: 0.58},
			{From: 133, To: 166, Weight: 0.88},
			{From: 154, To: 136, Weight: 0.89},
			{From: 154, To: 151, Weight: 0.76},
			{From: 125, To: 163, Weight: 0.75},
			{From: 114, To: 146, Weight: 0.33},
			{From: 114, To: 161, Weight: 0.61},
			{From: 115, To: 163, Weight: 0.58},
			{From: 113, To: 163, Weight: 0.93},
			{From: 151, To: 111, Weight: 0.83},
			{From: 154, To: 135, Weight: 0.77},
			{From: 163, To: 132, Weight: 0.75},
			{From: 162, To: 134, Weight: 0.76},
		},
		TargetLinks: []model.TargetEdge{
			{Sat: 116, Target: 5, Quality: 0.86},
			{Sat: 166, Target: 18, Quality: 0.9},
			{Sat: 114, Target: 15, Quality: 0.65},
			{Sat: 154, Target: 6, Quality: 0.35},
			{Sat: 135, Target: 25, Quality: 0.48},
			{Sat: 162, Target: 5, Quality: 0.83},
			{Sat: 135, Target: 31, Quality: 0.43},
			{Sat: 116, Target: 48, Quality: 0.53},
			{Sat: 136, Target: 39, Quality: 0.62},
			{Sat: 162, Target: 31, Quality: 0.43},
			{Sat: 162, Target: 14, Quality: 0.82},
			{Sat: 146, Target: 8, Quality: 0.5},
			{Sat: 146, Target: 22, Quality: 0.52},
			{Sat: 114, Target: 25, Quality: 0.99},
			{Sat: 113, Target: 12, Quality: 0.84},
			{Sat: 133, Target: 19, Quality: 0.61},
			{Sat: 132, Target: 34, Quality: 0.4},
			{Sat: 143, Target: 10, Quality: 0.72},
			{Sat: 161, Target: 47, Quality: 0.88},
			{Sat: 132, Target: 23, Quality: 0.43},
			{Sat: 124, Target: 16, Quality: 0.35},
			{Sat: 162, Target: 42, Quality: 0.52},
			{Sat: 145, Target: 3, Quality: 0.76},
			{Sat: 136, Target: 8, Quality: 0.98},
			{Sat: 153, Target: 7, Quality: 0.88},
			{Sat: 146, Target: 8, Quality: 0.29},
			{Sat: 116, Target: 12, Quality: 0.93},
			{Sat: 125, Target: 2, Quality: 0.77},
			{Sat: 151, Target: 33, Quality: 0.83},
			{Sat: 146, Target: 39, Quality: 0.82},
			{Sat: 146, Target: 25, Quality: 0.37},
			{Sat: 122, Target: 2, Quality: 0.47},
			{Sat: 161, Target: 15, Quality: 0.58},
			{Sat: 114, Target: 27, Quality: 0.91},
			{Sat: 144, Target: 31, Quality: 1.0},
			{Sat: 115, Target: 15, Quality: 0.82},
			{Sat: 133, Target: 48, Quality: 0.5},
			{Sat: 144, Target: 7, Quality: 0.57},
			{Sat: 155, Target: 10, Quality: 0.76},
			{Sat: 166, Target: 37, Quality: 0.88},
		},
	}
}

// cleanClustering covers all 25 targets, assigns all 27 satellites exactly
// once, and keeps every master healthy and inside its own cluster. Its sole
// finding is the low observation quality of single-satellite cluster 7.
func cleanClustering() *model.CandidateOutput {
	return &model.CandidateOutput{
		Clusters: []model.Cluster{
			{ClusterID: 1, Master: 125, Sats: []int{125, 166, 165}, Targets: []int{2, 18, 37}},
			{ClusterID: 2, Master: 145, Sats: []int{145, 115, 155, 143, 134}, Targets: []int{3, 10}},
			{ClusterID: 3, Master: 116, Sats: []int{116, 162, 136, 111, 151}, Targets: []int{5, 12, 48, 14, 33, 42}},
			{ClusterID: 4, Master: 144, Sats: []int{153, 144, 135, 163, 154}, Targets: []int{7, 31, 6}},
			{ClusterID: 5, Master: 114, Sats: []int{114, 146, 161, 124}, Targets: []int{25, 27, 8, 39, 47, 15, 16, 22}},
			{ClusterID: 6, Master: 133, Sats: []int{133, 132, 121, 113}, Targets: []int{19, 23, 34, 12}},
			{ClusterID: 7, Master: 122, Sats: []int{122}, Targets: []int{2}},
		},
	}
}

// draftClustering is a plausible but flawed clustering: satellite 125 sits
// in clusters 1 and 3, six targets are never observed, three satellites go
// unused, and cluster 4 elects an unhealthy master.
func draftClustering() *model.CandidateOutput {
	return &model.CandidateOutput{
		Clusters: []model.Cluster{
			{ClusterID: 1, Master: 125, Sats: []int{125, 166, 165}, Targets: []int{2}},
			{ClusterID: 2, Master: 145, Sats: []int{145, 115, 155, 143}, Targets: []int{3, 10}},
			{ClusterID: 3, Master: 116, Sats: []int{116, 162, 125, 136, 111, 151}, Targets: []int{5, 12, 48, 14, 33}},
			{ClusterID: 4, Master: 153, Sats: []int{153, 144, 135, 163}, Targets: []int{7, 31, 6}},
			{ClusterID: 5, Master: 114, Sats: []int{114, 146, 161, 124}, Targets: []int{25, 27, 8, 39, 47}},
			{ClusterID: 6, Master: 133, Sats: []int{133, 132, 121}, Targets: []int{19, 18, 37}},
			{ClusterID: 7, Master: 122, Sats: []int{122}, Targets: []int{2}},
		},
	}
}

func approx(got, want float64) bool {
	return math.Abs(got-want) <= 1e-6
}

func equalStrings(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}
