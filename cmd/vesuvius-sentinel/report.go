package main

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/venicegeo/geojson-go/geojson"
	"github.com/viventriglia/vesuvius-sentinel/catalog"
	"github.com/viventriglia/vesuvius-sentinel/mosaic"
	"github.com/viventriglia/vesuvius-sentinel/util"
	cli "gopkg.in/urfave/cli.v1"
)

var reportFlags = []cli.Flag{
	cli.Float64Flag{Name: "lon", Value: 14.426, Usage: "AOI center longitude"},
	cli.Float64Flag{Name: "lat", Value: 40.822, Usage: "AOI center latitude"},
	cli.Float64Flag{Name: "radius", Value: 2500, Usage: "AOI buffer radius in meters"},
	cli.StringFlag{Name: "from", Usage: "Earliest acquired date, as RFC 3339"},
	cli.StringFlag{Name: "to", Usage: "Latest acquired date, as RFC 3339"},
	cli.Float64Flag{Name: "cloud", Value: 30, Usage: "Maximum cloud cover, as a percentage (0-100)"},
	cli.IntFlag{Name: "count", Value: 6, Usage: "Number of least-cloudy scenes to render"},
	cli.StringFlag{Name: "item-type", Value: "Sentinel2L1C", Usage: "Catalog item type to search"},
	cli.StringFlag{Name: "out", Value: "scene_report.png", Usage: "Output file for the composite figure"},
	cli.BoolFlag{Name: "ndvi", Usage: "Add an NDVI render next to each scene preview"},
}

func reportAction(c *cli.Context) {
	context := &catalog.Context{
		BaseCatalogURL: util.GetCatalogAPIURL(),
		BaseWeatherURL: util.GetWeatherURL(),
		CatalogKey:     util.GetCatalogAPIKey(),
	}

	options := catalog.SearchOptions{
		ItemType:        c.String("item-type"),
		Point:           geojson.NewPoint([]float64{c.Float64("lon"), c.Float64("lat")}),
		RadiusMeters:    c.Float64("radius"),
		AcquiredDate:    c.String("from"),
		MaxAcquiredDate: c.String("to"),
		CloudCover:      c.Float64("cloud") / 100.0,
	}

	featureCollection, err := catalog.GetScenes(options, context)
	if err != nil {
		log.Fatal("Scene search failed: ", err)
	}
	if len(featureCollection.Features) == 0 {
		log.Fatal("No scenes found for the requested area and date range.")
	}

	printSceneTable(featureCollection.Features)

	selected := leastCloudyScenes(featureCollection.Features, c.Int("count"))
	cells, err := renderCells(selected, c.String("item-type"), c.Bool("ndvi"), context)
	if err != nil {
		log.Fatal("Scene rendering failed: ", err)
	}

	sheet, err := mosaic.Compose(cells, mosaicOptions(c.Bool("ndvi")))
	if err != nil {
		log.Fatal("Could not compose the figure: ", err)
	}

	outFile, err := os.Create(c.String("out"))
	if err != nil {
		log.Fatal("Could not create the output file: ", err)
	}
	defer outFile.Close()
	if err = mosaic.WritePNG(outFile, sheet); err != nil {
		log.Fatal("Could not write the figure: ", err)
	}

	fmt.Printf("Wrote %d scenes to %s\n", len(selected), c.String("out"))
}

func printSceneTable(features []*geojson.Feature) {
	table := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(table, "SCENE\tACQUIRED\tCLOUD %\tSENSOR")
	for _, feature := range features {
		cloud := "unknown"
		if cc := feature.PropertyFloat("cloudCover"); cc >= 0 {
			cloud = fmt.Sprintf("%.1f", cc)
		}
		fmt.Fprintf(table, "%s\t%s\t%s\t%s\n",
			feature.IDStr(),
			feature.PropertyString("acquiredDate"),
			cloud,
			feature.PropertyString("sensorName"))
	}
	table.Flush()
}

// leastCloudyScenes orders by ascending cloud cover, with unknown cover
// sorted last
func leastCloudyScenes(features []*geojson.Feature, count int) []*geojson.Feature {
	sorted := make([]*geojson.Feature, len(features))
	copy(sorted, features)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].PropertyFloat("cloudCover"), sorted[j].PropertyFloat("cloudCover")
		if a < 0 {
			return false
		}
		if b < 0 {
			return true
		}
		return a < b
	})
	if count > 0 && len(sorted) > count {
		sorted = sorted[:count]
	}
	return sorted
}

func renderCells(features []*geojson.Feature, itemType string, withNDVI bool, context *catalog.Context) ([]mosaic.Cell, error) {
	cells := make([]mosaic.Cell, 0, len(features)*2)
	for _, feature := range features {
		options := catalog.MetadataOptions{ID: feature.IDStr(), ItemType: itemType}

		imageBytes, _, err := catalog.GetThumbnail(options, catalog.DefaultRGBVisParams(), context)
		if err != nil {
			return nil, err
		}
		thumbnail, _, err := image.Decode(bytes.NewReader(imageBytes))
		if err != nil {
			return nil, fmt.Errorf("could not decode thumbnail for scene %s: %v", feature.IDStr(), err)
		}

		label := feature.PropertyString("acquiredDate")
		if cc := feature.PropertyFloat("cloudCover"); cc >= 0 {
			label = fmt.Sprintf("%s (%.0f%% cloud)", label, cc)
		}
		cells = append(cells, mosaic.Cell{Image: thumbnail, Label: label})

		if withNDVI {
			ndviImage, stats, err := catalog.ComputeNDVI(options, 256, 256, nil, context)
			if err != nil {
				return nil, err
			}
			cells = append(cells, mosaic.Cell{
				Image: ndviImage,
				Label: fmt.Sprintf("NDVI mean %.2f", stats.Mean),
			})
		}
	}
	return cells, nil
}

func mosaicOptions(withNDVI bool) mosaic.Options {
	options := mosaic.DefaultOptions()
	if withNDVI {
		// Keep each scene's preview and NDVI render on the same row
		options.Columns = 2
	}
	return options
}
