package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/ioutil"
	"net/http"
	"strings"

	"github.com/viventriglia/vesuvius-sentinel/util"
)

// CreateTileSession asks the upstream renderer for a map session for one
// scene. The response carries an XYZ tile URL template which web map clients
// consume directly.
func CreateTileSession(options MetadataOptions, visParams VisParams, context *Context) (*TileSession, error) {
	if err := visParams.Validate(); err != nil {
		return nil, util.LogSimpleErr(context, fmt.Sprintf("Invalid visualization parameters for scene %v.", options.ID), err)
	}

	requestBody, err := json.Marshal(map[string]interface{}{
		"bands":   visParams.Bands,
		"min":     visParams.Min,
		"max":     visParams.Max,
		"palette": visParams.Palette,
	})
	if err != nil {
		return nil, util.LogSimpleErr(context, "Failed to marshal tile session request.", err)
	}

	inputURL := "catalog/v1/item-types/" + options.ItemType + "/items/" + options.ID + "/map"
	response, err := catalogRequest(catalogRequestInput{method: "POST", inputURL: inputURL, body: requestBody, contentType: "application/json"}, context)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()
	body, _ := ioutil.ReadAll(response.Body)

	switch {
	case (response.StatusCode >= 400) && (response.StatusCode < 500):
		message := fmt.Sprintf("Failed to create tile session for scene %v: %v. ", options.ID, response.Status)
		err := util.HTTPErr{Status: response.StatusCode, Message: message}
		util.LogAlert(context, message)
		return nil, err
	case response.StatusCode >= 500:
		err = util.LogSimpleErr(context, fmt.Sprintf("Failed to create tile session for scene %v. ", options.ID), errors.New(response.Status))
		return nil, err
	default:
		//no op
	}

	var session TileSession
	if err = json.Unmarshal(body, &session); err != nil {
		ctErr := util.Error{LogMsg: "Failed to Unmarshal response from the tile session request: " + err.Error(),
			SimpleMsg:  "The scene catalog returned an unexpected response for this map request.",
			Response:   string(body),
			URL:        inputURL,
			HTTPStatus: response.StatusCode}
		return nil, ctErr.Log(context, "")
	}

	if session.TileURL == "" {
		ctErr := util.Error{LogMsg: "Tile session response carried no tile URL template",
			SimpleMsg:  "The scene catalog returned invalid map session data for this scene.",
			Response:   string(body),
			URL:        inputURL,
			HTTPStatus: response.StatusCode}
		return nil, ctErr.Log(context, "")
	}
	if !strings.Contains(session.TileURL, "{z}") {
		return nil, util.HTTPErr{Status: http.StatusBadGateway, Message: "Tile URL template is missing XYZ placeholders"}
	}

	return &session, nil
}
