package catalog

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/viventriglia/vesuvius-sentinel/model"
	"github.com/viventriglia/vesuvius-sentinel/util"
)

// Inputs: hostURL, mgrs1, mgrs2, mgrs3, year, month, day
const sentinelTileFolderURL = "%s/tiles/%s/%s/%s/%d/%d/%d/0/"

// https://earth.esa.int/web/sentinel/user-guides/sentinel-2-msi/naming-convention
// TODO: add support for old-style product IDs (which do not contain MGRS info in them)
var sentinelIDPattern = regexp.MustCompile("S2(A|B)_MSIL1C_([0-9]{4})([0-9]{2})([0-9]{2})T[0-9]+_[A-Z0-9]+_[A-Z0-9]+_T([0-9]+)([A-Z])([A-Z]+)_[0-9]{8}T[0-9]")

func isSentinelFeature(productID string) bool {
	return strings.HasPrefix(productID, "S2A") || strings.HasPrefix(productID, "S2B")
}

// sentinelTileFolder derives the scene's tile folder URL on the public S3
// archive from the MGRS grid info embedded in its product ID
func sentinelTileFolder(sentinelID string) (string, error) {
	if !sentinelIDPattern.MatchString(sentinelID) {
		return "", fmt.Errorf("Product ID had '%s' prefix but did not match expected Sentinel-2 format", sentinelID[:3])
	}

	m := sentinelIDPattern.FindStringSubmatch(sentinelID)
	m = m[2:] // Skip over whole string match and satellite A/B match
	year, err := strconv.Atoi(m[0])
	if err != nil {
		return "", err
	}
	month, err := strconv.Atoi(m[1])
	if err != nil {
		return "", err
	}
	day, err := strconv.Atoi(m[2])
	if err != nil {
		return "", err
	}

	return fmt.Sprintf(sentinelTileFolderURL, util.GetSentinelHost(), m[3], m[4], m[5], year, month, day), nil
}

func addSentinelS3BandsToProperties(sentinelID string, properties *map[string]interface{}) error {
	if !isSentinelFeature(sentinelID) {
		return nil // Not a Sentinel-2 product
	}

	folderURL, err := sentinelTileFolder(sentinelID)
	if err != nil {
		return err
	}

	bands, err := model.NewSentinelS3Bands(folderURL)
	if err != nil {
		return err
	}

	(*properties)["bands"] = bands.Map()

	return nil
}
