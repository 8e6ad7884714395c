package util

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"sync"
	"time"
)

var (
	httpClient     *http.Client
	httpClientOnce sync.Once
)

// HTTPClient returns the shared HTTP client used for all outbound requests
func HTTPClient() *http.Client {
	httpClientOnce.Do(func() {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	})
	return httpClient
}

// ReqByObjJSON makes a JSON request using the input object as the body and
// unmarshals the JSON response into the output object. The output object is
// untouched when the response is not a 2xx.
func ReqByObjJSON(method, url, auth string, input, output interface{}) (*http.Response, error) {
	var (
		requestBody []byte
		err         error
	)
	if input != nil {
		if requestBody, err = json.Marshal(input); err != nil {
			return nil, err
		}
	}

	request, err := http.NewRequest(method, url, bytes.NewBuffer(requestBody))
	if err != nil {
		return nil, err
	}
	request.Header.Set("Content-Type", "application/json")
	if auth != "" {
		request.Header.Set("Authorization", auth)
	}

	response, err := HTTPClient().Do(request)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()

	responseBody, _ := ioutil.ReadAll(response.Body)
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return response, HTTPErr{
			Status:  response.StatusCode,
			Message: fmt.Sprintf("Request to %v failed: %v", url, response.Status),
		}
	}

	if output != nil {
		if err = json.Unmarshal(responseBody, output); err != nil {
			return response, Error{
				LogMsg:     "Failed to unmarshal JSON response: " + err.Error(),
				SimpleMsg:  "The remote service returned an unexpected response.",
				Response:   string(responseBody),
				URL:        url,
				HTTPStatus: response.StatusCode,
			}
		}
	}

	return response, nil
}
