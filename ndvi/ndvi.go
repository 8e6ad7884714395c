package ndvi

import (
	"fmt"
	"math"
)

// Index computes the Normalized Difference Vegetation Index
// (nir-red)/(nir+red) per pixel. Pixels where both bands are zero have no
// defined index and come back as 0.
func Index(nir, red Grid) (Grid, error) {
	nirW, nirH := nir.Dimensions()
	redW, redH := red.Dimensions()
	if nirW != redW || nirH != redH {
		return nil, fmt.Errorf("Band raster dimensions do not match: nir %dx%d, red %dx%d", nirW, nirH, redW, redH)
	}
	if nirW == 0 || nirH == 0 {
		return nil, fmt.Errorf("Band rasters are empty")
	}

	result := make(Grid, nirH)
	for i := range result {
		result[i] = make([]float64, nirW)
		for j := range result[i] {
			denominator := nir[i][j] + red[i][j]
			if denominator != 0 {
				result[i][j] = (nir[i][j] - red[i][j]) / denominator
			}
		}
	}
	return result, nil
}

// Statistics summarizes a computed index grid
type Statistics struct {
	Min  float64
	Max  float64
	Mean float64
}

// Stats computes summary statistics of an index grid, ignoring NaN pixels
func Stats(grid Grid) (Statistics, error) {
	stats := Statistics{Min: math.Inf(1), Max: math.Inf(-1)}
	var sum float64
	var count int

	for _, row := range grid {
		for _, value := range row {
			if math.IsNaN(value) {
				continue
			}
			stats.Min = math.Min(stats.Min, value)
			stats.Max = math.Max(stats.Max, value)
			sum += value
			count++
		}
	}

	if count == 0 {
		return Statistics{}, fmt.Errorf("Index grid contains no valid pixels")
	}
	stats.Mean = sum / float64(count)
	return stats, nil
}
