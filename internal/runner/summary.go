package runner

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"

	"rootfind/internal/rootfind"
)

// Cluster — группа близких корней, найденных разными методами
type Cluster struct {
	Mean    float64           `json:"mean"`
	StdDev  float64           `json:"stddev"`
	Min     float64           `json:"min"`
	Max     float64           `json:"max"`
	Count   int               `json:"count"`
	Methods []rootfind.Method `json:"methods"`
}

// clusterFactor — во сколько раз допуск группировки шире допуска методов:
// инкрементальный и графический поиск дают только середину шага
const clusterFactor = 1000

// Summarize объединяет корни всех успешных методов в кластеры.
// Соседние по значению корни попадают в один кластер, если расстояние
// между ними меньше tol·clusterFactor.
func Summarize(outcomes []Outcome, tol float64) []Cluster {
	type tagged struct {
		x float64
		m rootfind.Method
	}
	var all []tagged
	for _, o := range outcomes {
		if o.err != nil || o.Err != "" {
			continue
		}
		for _, r := range o.Result.Roots {
			all = append(all, tagged{x: r.Value, m: o.Method})
		}
	}
	if len(all) == 0 {
		return []Cluster{}
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].x < all[j].x })

	gap := tol * clusterFactor
	if !(gap > 0) {
		gap = rootfind.DefaultTol * clusterFactor
	}

	var clusters []Cluster
	var group []tagged
	flush := func() {
		values := make(stats.Float64Data, len(group))
		seen := map[rootfind.Method]bool{}
		var methods []rootfind.Method
		for i, g := range group {
			values[i] = g.x
			if !seen[g.m] {
				seen[g.m] = true
				methods = append(methods, g.m)
			}
		}
		mean, _ := stats.Mean(values)
		sd, _ := stats.StandardDeviation(values)
		lo, _ := stats.Min(values)
		hi, _ := stats.Max(values)
		clusters = append(clusters, Cluster{
			Mean:    mean,
			StdDev:  sd,
			Min:     lo,
			Max:     hi,
			Count:   len(group),
			Methods: methods,
		})
		group = group[:0]
	}

	for _, t := range all {
		if len(group) > 0 && math.Abs(t.x-group[len(group)-1].x) >= gap {
			flush()
		}
		group = append(group, t)
	}
	flush()
	return clusters
}
