package catalog

import (
	"bytes"
	"fmt"
	"image"

	"github.com/viventriglia/vesuvius-sentinel/ndvi"
	"github.com/viventriglia/vesuvius-sentinel/util"
)

// ComputeNDVI fetches the red and near-infrared band rasters of a scene,
// computes the vegetation index locally, and renders it through the
// requested palette. The grid statistics come back alongside the render.
func ComputeNDVI(options MetadataOptions, width, height int, paletteStops []string, context *Context) (*image.RGBA, *ndvi.Statistics, error) {
	redGrid, err := fetchBandGrid(options, "red", width, height, context)
	if err != nil {
		return nil, nil, err
	}
	nirGrid, err := fetchBandGrid(options, "nir", width, height, context)
	if err != nil {
		return nil, nil, err
	}

	indexGrid, err := ndvi.Index(nirGrid, redGrid)
	if err != nil {
		return nil, nil, util.LogSimpleErr(context, fmt.Sprintf("Failed to compute NDVI for scene %v.", options.ID), err)
	}

	stats, err := ndvi.Stats(indexGrid)
	if err != nil {
		return nil, nil, util.LogSimpleErr(context, fmt.Sprintf("Failed to summarize NDVI for scene %v.", options.ID), err)
	}

	palette := ndvi.DefaultPalette
	if len(paletteStops) > 0 {
		if palette, err = ndvi.ParsePalette(paletteStops); err != nil {
			return nil, nil, err
		}
	}

	img, err := ndvi.Render(indexGrid, palette)
	if err != nil {
		return nil, nil, util.LogSimpleErr(context, fmt.Sprintf("Failed to render NDVI for scene %v.", options.ID), err)
	}

	return img, &stats, nil
}

func fetchBandGrid(options MetadataOptions, band string, width, height int, context *Context) (ndvi.Grid, error) {
	imageBytes, _, err := GetBandThumbnail(options, band, width, height, context)
	if err != nil {
		return nil, err
	}
	grid, err := ndvi.DecodeRaster(bytes.NewReader(imageBytes))
	if err != nil {
		return nil, util.LogSimpleErr(context, fmt.Sprintf("Failed to decode %s band raster for scene %v.", band, options.ID), err)
	}
	return grid, nil
}
