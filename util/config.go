package util

import (
	"fmt"
	"os"
	"strconv"
)

// Environment variables
const (
	DOMAIN                            = "DOMAIN"
	SENTINEL_HOST                     = "SENTINEL_HOST"
	CATALOG_API_URL                   = "CATALOG_API_URL"
	CATALOG_API_KEY                   = "CATALOG_API_KEY"
	WEATHER_API_URL                   = "WEATHER_API_URL"
	CATALOG_DISABLE_PERMISSIONS_CHECK = "CATALOG_DISABLE_PERMISSIONS_CHECK"
)

const defaultWeatherURL = "https://vesuvius-weather.localdomain/weather"

// GetDomain returns a string for the DOMAIN environment variable
func GetDomain() string {
	domain, ok := os.LookupEnv(DOMAIN)
	if !ok {
		LogAlert(&BasicLogContext{}, "Didn't get domain from environment.")
	}
	return domain
}

// GetSentinelHost returns a string for the SENTINEL_HOST environment variable
func GetSentinelHost() string {
	sentinelHost, ok := os.LookupEnv(SENTINEL_HOST)
	if !ok {
		LogAlert(&BasicLogContext{}, "Did not get Sentinel Host URL from the environment. Sentinel band URLs will not be available.")
	}
	return sentinelHost
}

// GetCatalogAPIURL returns a string for the CATALOG_API_URL environment variable
func GetCatalogAPIURL() string {
	catalogBaseURL, ok := os.LookupEnv(CATALOG_API_URL)
	if !ok {
		LogAlert(&BasicLogContext{}, "Did not get catalog API URL from the environment. Scene discovery will not be available.")
	}
	return catalogBaseURL
}

// GetCatalogAPIKey returns a string for the CATALOG_API_KEY environment variable
func GetCatalogAPIKey() string {
	catalogKey, ok := os.LookupEnv(CATALOG_API_KEY)
	if !ok {
		LogAlert(&BasicLogContext{}, "Did not get catalog API key from the environment. Catalog requests will be anonymous.")
	}
	return catalogKey
}

// GetWeatherURL returns a string for the WEATHER_API_URL environment
// variable or generates one if needed
func GetWeatherURL() string {
	weatherURL, ok := os.LookupEnv(WEATHER_API_URL)
	if !ok {
		LogInfo(&BasicLogContext{}, "Did not get explicit weather service URL from the environment. Using implied URL based on domain.")
		domain := GetDomain()
		if len(domain) == 0 {
			LogAlert(&BasicLogContext{}, "No domain in environment. Using default weather URL: "+defaultWeatherURL)
			weatherURL = defaultWeatherURL
		} else {
			weatherURL = fmt.Sprintf("https://vesuvius-weather.%s/weather", domain)
		}
	}
	return weatherURL
}

// IsCatalogPermissionsDisabled returns true if the
// CATALOG_DISABLE_PERMISSIONS_CHECK is true
func IsCatalogPermissionsDisabled() (bool, error) {
	return strconv.ParseBool(os.Getenv(CATALOG_DISABLE_PERMISSIONS_CHECK))
}
