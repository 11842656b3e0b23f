package osmparser

import (
	"context"
	"os"
	"sort"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
)

type HighwayCount struct {
	Highway string
	Ways    int
}

// SurveyHighways counts the ways of every distinct highway value in mapFile, drivable or not.
// The result is sorted by highway value.
func SurveyHighways(ctx context.Context, mapFile string) ([]HighwayCount, error) {
	f, err := os.Open(mapFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	scanner := osmpbf.New(ctx, f, 1)
	defer scanner.Close()
	scanner.SkipNodes = true
	scanner.SkipRelations = true

	counts := make(map[string]int)
	for scanner.Scan() {
		way, ok := scanner.Object().(*osm.Way)
		if !ok {
			continue
		}
		if hw := way.Tags.Find("highway"); hw != "" {
			counts[hw]++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return sortHighwayCounts(counts), nil
}

func sortHighwayCounts(counts map[string]int) []HighwayCount {
	out := make([]HighwayCount, 0, len(counts))
	for hw, n := range counts {
		out = append(out, HighwayCount{Highway: hw, Ways: n})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Highway < out[j].Highway
	})
	return out
}

func IsDrivable(highway string) bool {
	_, ok := acceptedHighway[highway]
	return ok
}
