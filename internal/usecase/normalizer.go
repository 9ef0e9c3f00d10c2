package usecase

import (
	"math"
	"regexp"
	"strings"

	"github.com/mealsnap/backend/internal/domain"
)

// Package-level compiled regex patterns for performance
var whitespaceRegex = regexp.MustCompile(`\s+`)

// NormalizeLabel converts a raw detector label into a reference table key.
// Lowercases, trims, and joins interior whitespace with underscores:
// "White  Rice " -> "white_rice". Exact key equality is the only matching
// rule; labels never match by substring or token overlap.
func NormalizeLabel(label string) string {
	key := strings.ToLower(strings.TrimSpace(label))
	if key == "" {
		return ""
	}
	return whitespaceRegex.ReplaceAllString(key, "_")
}

// GroupDetections merges raw detections of the same food into one group per
// food. Groups keep the order in which their food first appeared. Each group
// counts its detections, averages their confidence (2 decimals) and keeps the
// largest area ratio seen. Detections whose label normalizes to the empty
// string are dropped.
func GroupDetections(detections []domain.Detection) []domain.DetectionGroup {
	groups := make([]domain.DetectionGroup, 0, len(detections))
	indexByKey := make(map[string]int, len(detections))
	confidenceSums := make([]float64, 0, len(detections))

	for _, d := range detections {
		key := NormalizeLabel(d.FoodLabel)
		if key == "" {
			continue
		}

		i, seen := indexByKey[key]
		if !seen {
			i = len(groups)
			indexByKey[key] = i
			groups = append(groups, domain.DetectionGroup{
				FoodKey: key,
				Label:   strings.TrimSpace(d.FoodLabel),
			})
			confidenceSums = append(confidenceSums, 0)
		}

		groups[i].Count++
		confidenceSums[i] += d.Confidence
		if d.AreaRatio > groups[i].MaxAreaRatio {
			groups[i].MaxAreaRatio = d.AreaRatio
		}
	}

	for i := range groups {
		groups[i].AvgConfidence = round2(confidenceSums[i] / float64(groups[i].Count))
	}

	return groups
}

// round2 rounds to two decimal places, halves away from zero
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
