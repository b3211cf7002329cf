package checkout

import "fmt"

const (
	baseEstimateMinutes = 20
	estimateStepMinutes = 5
	itemsPerStep        = 3
	maxEstimateMinutes  = 60
	estimateSpread      = 10
)

// EstimatedTime returns a delivery window such as "25-35 minutes" that grows
// by five minutes for every three items, capped at an hour.
func EstimatedTime(items int) string {
	if items < 1 {
		items = 1
	}
	low := baseEstimateMinutes + estimateStepMinutes*((items-1)/itemsPerStep)
	if low > maxEstimateMinutes {
		low = maxEstimateMinutes
	}
	return fmt.Sprintf("%d-%d minutes", low, low+estimateSpread)
}
