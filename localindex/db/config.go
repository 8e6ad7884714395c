package db

import "strconv"

// Column names from the Sentinel-2 scene list CSV published alongside the
// public S3 archive.
const productIDColumn string = "product_id"
const sensingTimeColumn string = "sensing_time"
const cloudCoverColumn string = "cloud_cover"
const mgrsTileColumn string = "mgrs_tile"
const baseURLColumn = "base_url"
const northLatColumn = "north_lat"
const southLatColumn = "south_lat"
const westLonColumn = "west_lon"
const eastLonColumn = "east_lon"

const insertSceneStatement = `
INSERT INTO scenes as s (
	product_id,
	acquisition_date,
	cloud_cover,
	mgrs_tile,
	scene_url,
	bounds)
VALUES
(
	$1,
	$2,
	$3,
	$4,
	$5,
	ST_SetSRID(ST_MakeEnvelope($6, $7, $8, $9), 4326)
)
	ON CONFLICT (product_id) DO UPDATE
	SET scene_url =	$5
	WHERE s.scene_url <> $5
	`

const databaseMaintenanceStatement = `
	VACUUM ANALYZE scenes
`

//columnNames should contain an entry for any column used in a columnConverter.
var columnNames = []string{
	productIDColumn,
	sensingTimeColumn,
	cloudCoverColumn,
	mgrsTileColumn,
	baseURLColumn,
	westLonColumn,
	southLatColumn,
	eastLonColumn,
	northLatColumn}

//columnConverters transform the raw values from the csv file into the values of the
//parameters used in the insert SQL statement.
//NOTE: Since the database can do most necessary parsing this may all be trivial.
var columnConverters = []csvValueConverter{
	func(vals map[string]string) (interface{}, error) { return vals[productIDColumn], nil },
	func(vals map[string]string) (interface{}, error) { return vals[sensingTimeColumn], nil },
	func(vals map[string]string) (interface{}, error) {
		// The scene list reports percent; the scenes table stores a 0-1 fraction.
		cloudCover, err := strconv.ParseFloat(vals[cloudCoverColumn], 64)
		if err != nil {
			return nil, err
		}
		return cloudCover / 100.0, nil
	},
	func(vals map[string]string) (interface{}, error) { return vals[mgrsTileColumn], nil },
	func(vals map[string]string) (interface{}, error) { return vals[baseURLColumn], nil },
	func(vals map[string]string) (interface{}, error) { return vals[westLonColumn], nil },
	func(vals map[string]string) (interface{}, error) { return vals[southLatColumn], nil },
	func(vals map[string]string) (interface{}, error) { return vals[eastLonColumn], nil },
	func(vals map[string]string) (interface{}, error) { return vals[northLatColumn], nil }}
