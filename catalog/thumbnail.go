package catalog

import (
	"errors"
	"fmt"
	"io/ioutil"
	"strings"

	"github.com/viventriglia/vesuvius-sentinel/util"
)

// ThumbnailURL builds the upstream render URL for a scene preview using the
// given visualization parameters
func ThumbnailURL(options MetadataOptions, visParams VisParams, context *Context) (string, error) {
	if err := visParams.Validate(); err != nil {
		return "", err
	}
	return fmt.Sprintf("catalog/v1/item-types/%s/items/%s/thumb?%s",
		options.ItemType, options.ID, visParams.QueryValues().Encode()), nil
}

// GetThumbnail fetches the rendered preview bytes for a scene, returning the
// image data and its content type
func GetThumbnail(options MetadataOptions, visParams VisParams, context *Context) ([]byte, string, error) {
	inputURL, err := ThumbnailURL(options, visParams, context)
	if err != nil {
		return nil, "", util.LogSimpleErr(context, fmt.Sprintf("Invalid visualization parameters for scene %v.", options.ID), err)
	}

	response, err := catalogRequest(catalogRequestInput{method: "GET", inputURL: inputURL}, context)
	if err != nil {
		return nil, "", err
	}
	defer response.Body.Close()

	switch {
	case (response.StatusCode >= 400) && (response.StatusCode < 500):
		message := fmt.Sprintf("Failed to render thumbnail for scene %v: %v. ", options.ID, response.Status)
		err := util.HTTPErr{Status: response.StatusCode, Message: message}
		util.LogAlert(context, message)
		return nil, "", err
	case response.StatusCode >= 500:
		err = util.LogSimpleErr(context, fmt.Sprintf("Failed to render thumbnail for scene %v. ", options.ID), errors.New(response.Status))
		return nil, "", err
	default:
		//no op
	}

	contentType := response.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		body, _ := ioutil.ReadAll(response.Body)
		ctErr := util.Error{LogMsg: "Thumbnail response was not an image: " + contentType,
			SimpleMsg:  "The scene catalog returned an unexpected response for this thumbnail.",
			Response:   string(body),
			URL:        inputURL,
			HTTPStatus: response.StatusCode}
		return nil, "", ctErr.Log(context, "")
	}

	imageBytes, err := ioutil.ReadAll(response.Body)
	if err != nil {
		return nil, "", util.LogSimpleErr(context, fmt.Sprintf("Failed to read thumbnail body for scene %v.", options.ID), err)
	}

	return imageBytes, contentType, nil
}

var getThumbnail = GetThumbnail

// GetBandThumbnail fetches a single-band grayscale render of a scene, used
// as the raster input for local band math
func GetBandThumbnail(options MetadataOptions, band string, width, height int, context *Context) ([]byte, string, error) {
	visParams := VisParams{
		Bands:  []string{band},
		Min:    0,
		Max:    10000,
		Width:  width,
		Height: height,
	}
	return getThumbnail(options, visParams, context)
}
