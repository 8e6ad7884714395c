package catalog

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/venicegeo/geojson-go/geojson"
	"github.com/viventriglia/vesuvius-sentinel/ndvi"
	"github.com/viventriglia/vesuvius-sentinel/util"
)

const defaultItemType = "Sentinel2L1C"

func newHandlerContext() Context {
	return Context{
		BaseCatalogURL: util.GetCatalogAPIURL(),
		BaseWeatherURL: util.GetWeatherURL(),
		CatalogKey:     util.GetCatalogAPIKey(),
	}
}

// DiscoverHandler is a handler for /discover/{itemType}
// @Title discoverHandler
// @Description discovers scenes from the upstream catalog
// @Accept  plain
// @Param   bbox            query   string  false        "The bounding box, as a GeoJSON Bounding box (x1,y1,x2,y2)"
// @Param   lon             query   string  false        "AOI center longitude (with lat and radius)"
// @Param   lat             query   string  false        "AOI center latitude (with lon and radius)"
// @Param   radius          query   string  false        "AOI buffer radius in meters"
// @Param   cloudCover      query   string  false        "The maximum cloud cover, as a percentage (0-100)"
// @Param   acquiredDate    query   string  false        "The minimum (earliest) acquired date, as RFC 3339"
// @Param   maxAcquiredDate query   string  false        "The maximum acquired date, as RFC 3339"
// @Param   weather         query   bool    false        "True: incorporate acquisition-time weather in the output"
// @Success 200 {object}  geojson.FeatureCollection
// @Failure 400 {object}  string
// @Router /discover/{itemType} [get]
type DiscoverHandler struct {
	Context Context
}

// NewDiscoverHandler creates a new handler using configuration
// from environment variables
func NewDiscoverHandler() *DiscoverHandler {
	return &DiscoverHandler{Context: newHandlerContext()}
}

// ServeHTTP implements the http.Handler interface for the DiscoverHandler type
func (h DiscoverHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	options, err := searchOptionsFromRequest(r)
	if err != nil {
		util.LogSimpleErr(&h.Context, err.Error(), err)
		util.HTTPError(r, w, &h.Context, err.Error(), http.StatusBadRequest)
		return
	}

	featureCollection, err := GetScenes(*options, &h.Context)
	if err != nil {
		message := fmt.Sprintf("Error searching for scenes: %v", err)
		util.LogSimpleErr(&h.Context, message, err)
		util.HTTPError(r, w, &h.Context, message, httpStatusForError(err))
		return
	}

	w.Write([]byte(featureCollection.String()))
}

func searchOptionsFromRequest(r *http.Request) (*SearchOptions, error) {
	options := SearchOptions{ItemType: defaultItemType}
	if itemType, ok := mux.Vars(r)["itemType"]; ok {
		options.ItemType = itemType
	}

	options.Weather, _ = strconv.ParseBool(r.FormValue("weather"))
	options.AcquiredDate = r.FormValue("acquiredDate")
	options.MaxAcquiredDate = r.FormValue("maxAcquiredDate")

	if r.FormValue("cloudCover") != "" {
		maxCloudCover, err := strconv.ParseFloat(r.FormValue("cloudCover"), 64)
		if err != nil {
			return nil, fmt.Errorf("Cloud Cover value of %v is invalid", r.FormValue("cloudCover"))
		}
		options.CloudCover = maxCloudCover / 100.0
	}

	switch {
	case r.FormValue("lon") != "" || r.FormValue("lat") != "":
		lon, lonErr := strconv.ParseFloat(r.FormValue("lon"), 64)
		lat, latErr := strconv.ParseFloat(r.FormValue("lat"), 64)
		if lonErr != nil || latErr != nil {
			return nil, fmt.Errorf("The lon/lat values of %v,%v are invalid", r.FormValue("lon"), r.FormValue("lat"))
		}
		radius := 1000.0
		if r.FormValue("radius") != "" {
			var err error
			if radius, err = strconv.ParseFloat(r.FormValue("radius"), 64); err != nil || radius <= 0 {
				return nil, fmt.Errorf("The radius value of %v is invalid", r.FormValue("radius"))
			}
		}
		options.Point = geojson.NewPoint([]float64{lon, lat})
		options.RadiusMeters = radius
	case r.FormValue("bbox") != "":
		bbox, err := geojson.NewBoundingBox(r.FormValue("bbox"))
		if err != nil {
			return nil, fmt.Errorf("The bbox value of %v is invalid", r.FormValue("bbox"))
		}
		options.Bbox = bbox
	default:
		return nil, fmt.Errorf("Either a bbox or a lon/lat point is required")
	}

	return &options, nil
}

func httpStatusForError(err error) int {
	if httpErr, ok := err.(util.HTTPErr); ok {
		return httpErr.Status
	}
	return http.StatusInternalServerError
}

// MetadataHandler is a handler for /{itemType}/{id}
// @Title metadataHandler
// @Description returns normalized metadata for a single scene
// @Accept  plain
// @Param   id       path   string  false        "The ID of the requested scene"
// @Param   weather  query  bool    false        "True: incorporate acquisition-time weather in the output"
// @Success 200 {object}  geojson.Feature
// @Failure 400 {object}  string
// @Router /{itemType}/{id} [get]
type MetadataHandler struct {
	Context Context
}

// NewMetadataHandler creates a new handler using configuration
// from environment variables
func NewMetadataHandler() *MetadataHandler {
	return &MetadataHandler{Context: newHandlerContext()}
}

// ServeHTTP implements the http.Handler interface for the MetadataHandler type
func (h MetadataHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	options, err := metadataOptionsFromRequest(r)
	if err != nil {
		util.LogAlert(&h.Context, err.Error())
		util.HTTPError(r, w, &h.Context, err.Error(), http.StatusNotFound)
		return
	}
	options.Weather, _ = strconv.ParseBool(r.FormValue("weather"))

	feature, err := GetSceneMetadata(*options, &h.Context)
	if err != nil {
		message := fmt.Sprintf("Error retrieving metadata for scene %v: %v", options.ID, err)
		util.LogSimpleErr(&h.Context, message, err)
		util.HTTPError(r, w, &h.Context, message, httpStatusForError(err))
		return
	}

	w.Write([]byte(feature.String()))
}

func metadataOptionsFromRequest(r *http.Request) (*MetadataOptions, error) {
	options := MetadataOptions{ItemType: defaultItemType}
	if itemType, ok := mux.Vars(r)["itemType"]; ok {
		options.ItemType = itemType
	}
	id, ok := mux.Vars(r)["id"]
	if !ok || id == "" {
		return nil, fmt.Errorf("No scene ID found in URL")
	}
	options.ID = id
	return &options, nil
}

// ThumbnailHandler is a handler for /thumb/{itemType}/{id}.png
// @Title thumbnailHandler
// @Description proxies a rendered scene preview from the upstream catalog
// @Accept  plain
// @Param   id      path   string  false        "The ID of the requested scene"
// @Param   width   query  int     false        "Output width in pixels"
// @Param   height  query  int     false        "Output height in pixels"
// @Param   bands   query  string  false        "Comma-separated band selection"
// @Param   min     query  float   false        "Stretch minimum"
// @Param   max     query  float   false        "Stretch maximum"
// @Param   palette query  string  false        "Comma-separated hex color ramp"
// @Success 200 image bytes
// @Failure 400 {object}  string
// @Router /thumb/{itemType}/{id}.png [get]
type ThumbnailHandler struct {
	Context Context
}

// NewThumbnailHandler creates a new handler using configuration
// from environment variables
func NewThumbnailHandler() *ThumbnailHandler {
	return &ThumbnailHandler{Context: newHandlerContext()}
}

// ServeHTTP implements the http.Handler interface for the ThumbnailHandler type
func (h ThumbnailHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	options, err := metadataOptionsFromRequest(r)
	if err != nil {
		util.LogAlert(&h.Context, err.Error())
		util.HTTPError(r, w, &h.Context, err.Error(), http.StatusNotFound)
		return
	}

	visParams, err := visParamsFromRequest(r)
	if err != nil {
		util.LogSimpleErr(&h.Context, err.Error(), err)
		util.HTTPError(r, w, &h.Context, err.Error(), http.StatusBadRequest)
		return
	}

	imageBytes, contentType, err := GetThumbnail(*options, *visParams, &h.Context)
	if err != nil {
		message := fmt.Sprintf("Error rendering thumbnail for scene %v: %v", options.ID, err)
		util.HTTPError(r, w, &h.Context, message, httpStatusForError(err))
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Write(imageBytes)
}

func visParamsFromRequest(r *http.Request) (*VisParams, error) {
	visParams := DefaultRGBVisParams()

	if r.FormValue("bands") != "" {
		visParams.Bands = strings.Split(r.FormValue("bands"), ",")
	}
	var err error
	if r.FormValue("width") != "" {
		if visParams.Width, err = strconv.Atoi(r.FormValue("width")); err != nil {
			return nil, fmt.Errorf("The width value of %v is invalid", r.FormValue("width"))
		}
	}
	if r.FormValue("height") != "" {
		if visParams.Height, err = strconv.Atoi(r.FormValue("height")); err != nil {
			return nil, fmt.Errorf("The height value of %v is invalid", r.FormValue("height"))
		}
	}
	if r.FormValue("min") != "" {
		if visParams.Min, err = strconv.ParseFloat(r.FormValue("min"), 64); err != nil {
			return nil, fmt.Errorf("The min value of %v is invalid", r.FormValue("min"))
		}
	}
	if r.FormValue("max") != "" {
		if visParams.Max, err = strconv.ParseFloat(r.FormValue("max"), 64); err != nil {
			return nil, fmt.Errorf("The max value of %v is invalid", r.FormValue("max"))
		}
	}
	if r.FormValue("palette") != "" {
		visParams.Palette = strings.Split(r.FormValue("palette"), ",")
	}

	if err = visParams.Validate(); err != nil {
		return nil, err
	}
	return &visParams, nil
}

// NDVIHandler is a handler for /ndvi/{itemType}/{id}.png
// @Title ndviHandler
// @Description computes and renders the NDVI raster of a scene from its red
// and near-infrared band previews
// @Accept  plain
// @Param   id      path   string  false        "The ID of the requested scene"
// @Param   width   query  int     false        "Raster width in pixels"
// @Param   height  query  int     false        "Raster height in pixels"
// @Param   palette query  string  false        "Comma-separated hex color ramp"
// @Success 200 PNG bytes
// @Failure 400 {object}  string
// @Router /ndvi/{itemType}/{id}.png [get]
type NDVIHandler struct {
	Context Context
}

// NewNDVIHandler creates a new handler using configuration
// from environment variables
func NewNDVIHandler() *NDVIHandler {
	return &NDVIHandler{Context: newHandlerContext()}
}

// ServeHTTP implements the http.Handler interface for the NDVIHandler type
func (h NDVIHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	options, err := metadataOptionsFromRequest(r)
	if err != nil {
		util.LogAlert(&h.Context, err.Error())
		util.HTTPError(r, w, &h.Context, err.Error(), http.StatusNotFound)
		return
	}

	visParams, err := visParamsFromRequest(r)
	if err != nil {
		util.LogSimpleErr(&h.Context, err.Error(), err)
		util.HTTPError(r, w, &h.Context, err.Error(), http.StatusBadRequest)
		return
	}

	img, _, err := ComputeNDVI(*options, visParams.Width, visParams.Height, visParams.Palette, &h.Context)
	if err != nil {
		message := fmt.Sprintf("Error computing NDVI for scene %v: %v", options.ID, err)
		util.LogSimpleErr(&h.Context, message, err)
		util.HTTPError(r, w, &h.Context, message, httpStatusForError(err))
		return
	}

	var buf bytes.Buffer
	if err = ndvi.EncodePNG(&buf, img); err != nil {
		message := fmt.Sprintf("Error encoding NDVI render for scene %v: %v", options.ID, err)
		util.LogSimpleErr(&h.Context, message, err)
		util.HTTPError(r, w, &h.Context, message, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(buf.Bytes())
}
