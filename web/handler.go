package web

import (
	"fmt"
	"html/template"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/viventriglia/vesuvius-sentinel/catalog"
	"github.com/viventriglia/vesuvius-sentinel/util"
)

const defaultZoom = 12

// ndviPalette is the red-to-green ramp used for the vegetation overlay
var ndviPalette = []string{"a50026", "f46d43", "fee08b", "a6d96a", "1a9850"}

type mapPage struct {
	Title     string
	CenterLat float64
	CenterLon float64
	Zoom      int
	Layers    []mapLayer
}

type mapLayer struct {
	Name        string
	TileURL     string
	Attribution string
}

// MapHandler is a handler for /map/{itemType}/{id}
// @Title mapHandler
// @Description serves an interactive web map with true-color and NDVI tile
// overlays for one scene
// @Accept  plain
// @Param   id   path   string  false        "The ID of the requested scene"
// @Param   lat  query  float   false        "Map center latitude"
// @Param   lon  query  float   false        "Map center longitude"
// @Param   zoom query  int     false        "Initial map zoom level"
// @Success 200 HTML page
// @Failure 400 {object}  string
// @Router /map/{itemType}/{id} [get]
type MapHandler struct {
	Context  catalog.Context
	template *template.Template
}

// NewMapHandler creates a new handler using configuration from environment
// variables and the embedded page template
func NewMapHandler() (*MapHandler, error) {
	pageTemplate, err := template.ParseFS(Content, "map.html")
	if err != nil {
		return nil, err
	}
	return &MapHandler{
		Context: catalog.Context{
			BaseCatalogURL: util.GetCatalogAPIURL(),
			BaseWeatherURL: util.GetWeatherURL(),
			CatalogKey:     util.GetCatalogAPIKey(),
		},
		template: pageTemplate,
	}, nil
}

// ServeHTTP implements the http.Handler interface for the MapHandler type
func (h MapHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sceneID, ok := vars["id"]
	if !ok || sceneID == "" {
		message := "No scene ID found in URL"
		util.LogAlert(&h.Context, message)
		util.HTTPError(r, w, &h.Context, message, http.StatusNotFound)
		return
	}
	itemType, ok := vars["itemType"]
	if !ok || itemType == "" {
		itemType = "Sentinel2L1C"
	}

	page := mapPage{
		Title:     "Scene " + sceneID,
		CenterLat: 40.822,
		CenterLon: 14.426,
		Zoom:      defaultZoom,
	}
	if lat, err := strconv.ParseFloat(r.FormValue("lat"), 64); err == nil {
		page.CenterLat = lat
	}
	if lon, err := strconv.ParseFloat(r.FormValue("lon"), 64); err == nil {
		page.CenterLon = lon
	}
	if zoom, err := strconv.Atoi(r.FormValue("zoom")); err == nil && zoom > 0 {
		page.Zoom = zoom
	}

	options := catalog.MetadataOptions{ID: sceneID, ItemType: itemType}

	rgbParams := catalog.DefaultRGBVisParams()
	rgbSession, err := catalog.CreateTileSession(options, rgbParams, &h.Context)
	if err != nil {
		message := fmt.Sprintf("Error creating true-color map session for scene %v: %v", sceneID, err)
		util.LogSimpleErr(&h.Context, message, err)
		util.HTTPError(r, w, &h.Context, message, http.StatusBadGateway)
		return
	}
	page.Layers = append(page.Layers, mapLayer{
		Name:        "True color",
		TileURL:     rgbSession.TileURL,
		Attribution: rgbSession.Attribution,
	})

	ndviParams := catalog.VisParams{
		Bands:   []string{"ndvi"},
		Min:     -1,
		Max:     1,
		Width:   rgbParams.Width,
		Height:  rgbParams.Height,
		Palette: ndviPalette,
	}
	ndviSession, err := catalog.CreateTileSession(options, ndviParams, &h.Context)
	if err != nil {
		// The page is still useful with only the true-color overlay
		util.LogAlert(&h.Context, fmt.Sprintf("Could not create NDVI map session for scene %v: %v", sceneID, err))
	} else {
		page.Layers = append(page.Layers, mapLayer{
			Name:        "NDVI",
			TileURL:     ndviSession.TileURL,
			Attribution: ndviSession.Attribution,
		})
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err = h.template.Execute(w, page); err != nil {
		util.LogSimpleErr(&h.Context, "Error rendering the map page", err)
	}
}
