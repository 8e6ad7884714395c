package db

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

// General test mocks and utils

// recordingDriver is a database/sql driver that records every statement
// execution, standing in for Postgres during ingest tests.
type recordingDriver struct {
	mu           sync.Mutex
	execs        []recordedExec
	rowsAffected int64
}

type recordedExec struct {
	query string
	args  []driver.Value
}

func (d *recordingDriver) Open(name string) (driver.Conn, error) {
	return &recordingConn{driver: d}, nil
}

func (d *recordingDriver) reset(rowsAffected int64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.execs = nil
	d.rowsAffected = rowsAffected
}

func (d *recordingDriver) record(query string, args []driver.Value) int64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	copied := make([]driver.Value, len(args))
	copy(copied, args)
	d.execs = append(d.execs, recordedExec{query: query, args: copied})
	return d.rowsAffected
}

func (d *recordingDriver) inserts() []recordedExec {
	d.mu.Lock()
	defer d.mu.Unlock()
	var inserts []recordedExec
	for _, exec := range d.execs {
		if strings.Contains(exec.query, "INSERT INTO scenes") {
			inserts = append(inserts, exec)
		}
	}
	return inserts
}

type recordingConn struct {
	driver *recordingDriver
}

func (c *recordingConn) Prepare(query string) (driver.Stmt, error) {
	return &recordingStmt{driver: c.driver, query: query}, nil
}

func (c *recordingConn) Close() error { return nil }

func (c *recordingConn) Begin() (driver.Tx, error) {
	return nil, errors.New("transactions not supported")
}

type recordingStmt struct {
	driver *recordingDriver
	query  string
}

func (s *recordingStmt) Close() error { return nil }

func (s *recordingStmt) NumInput() int { return -1 }

func (s *recordingStmt) Exec(args []driver.Value) (driver.Result, error) {
	return driver.RowsAffected(s.driver.record(s.query, args)), nil
}

func (s *recordingStmt) Query(args []driver.Value) (driver.Rows, error) {
	return nil, errors.New("queries not supported")
}

var ingestTestDriver = &recordingDriver{}

func init() {
	sql.Register("ingesttest", ingestTestDriver)
}

func openRecordingDB(t *testing.T, rowsAffected int64) *sql.DB {
	ingestTestDriver.reset(rowsAffected)
	database, err := sql.Open("ingesttest", "")
	assert.Nil(t, err)
	return database
}

const sampleScenesCSV = `product_id,sensing_time,cloud_cover,mgrs_tile,base_url,north_lat,south_lat,west_lon,east_lon
S2A_MSIL1C_20230715T095031_N0509_R079_T33TVF_20230715T115052,2023-07-15T09:50:21.024Z,12.5,33TVF,https://sentinel.fakeamazonaws.dummy/tiles/33/T/VF/2023/7/15/0/,40.9,40.7,14.3,14.5
S2B_MSIL1C_20230710T095031_N0509_R079_T33TVF_20230710T115052,2023-07-10T09:50:21.024Z,50,33TVF,https://sentinel.fakeamazonaws.dummy/tiles/33/T/VF/2023/7/10/0/,40.9,40.7,14.3,14.5
`

// Actual tests

func TestIngest_InsertsScenes(t *testing.T) {
	// Mock
	database := openRecordingDB(t, 1)
	defer database.Close()
	imp := NewImporter("", false, nil)
	cancelChan := make(chan string)

	// Tested code
	result := imp.Ingest(strings.NewReader(sampleScenesCSV), database, cancelChan)

	// Asserts
	inserts := ingestTestDriver.inserts()
	assert.Len(t, inserts, 2)

	first := inserts[0]
	assert.Equal(t, "S2A_MSIL1C_20230715T095031_N0509_R079_T33TVF_20230715T115052", first.args[0])
	assert.Equal(t, "2023-07-15T09:50:21.024Z", first.args[1])
	assert.InDelta(t, 0.125, first.args[2].(float64), 1e-9, "percent in the CSV is stored as a fraction")
	assert.Equal(t, "33TVF", first.args[3])
	assert.Equal(t, "14.3", first.args[5], "west longitude is the envelope x-min")
	assert.Equal(t, "40.7", first.args[6], "south latitude is the envelope y-min")

	assert.Contains(t, result, "Canceled: false")
	assert.Contains(t, result, "#Added:\t\t2")
}

func TestIngest_SkippedRowsAreCounted(t *testing.T) {
	// Mock: every upsert reports zero rows affected (scene already present)
	database := openRecordingDB(t, 0)
	defer database.Close()
	imp := NewImporter("", false, nil)
	cancelChan := make(chan string)

	// Tested code
	result := imp.Ingest(strings.NewReader(sampleScenesCSV), database, cancelChan)

	// Asserts
	assert.Len(t, ingestTestDriver.inserts(), 2)
	assert.Contains(t, result, "#Added:\t\t0")
	assert.Contains(t, result, "#Skipped:\t2")
}

func TestIngest_AbortStopsBeforeRows(t *testing.T) {
	// Mock
	database := openRecordingDB(t, 1)
	defer database.Close()
	imp := NewImporter("", false, nil)
	cancelChan := make(chan string, 1)
	cancelChan <- AbortIngestJobMessage

	// Tested code
	result := imp.Ingest(strings.NewReader(sampleScenesCSV), database, cancelChan)

	// Asserts
	assert.Empty(t, ingestTestDriver.inserts(), "a canceled job should not insert rows")
	assert.Contains(t, result, "Canceled: true")
}

func TestDrainMessages(t *testing.T) {
	messageChan := make(chan string, 3)
	messageChan <- "noise"
	messageChan <- AbortIngestJobMessage
	messageChan <- BeginIngestJobMessage

	assert.True(t, drainMessages(messageChan))
	assert.False(t, drainMessages(messageChan), "channel should already be drained")
}

func TestDrainStatusChannel(t *testing.T) {
	statusChan := make(chan chan string, 1)
	responseChan := make(chan string, 1)
	statusChan <- responseChan

	stats := jobStats{NumberAddedOrUpdated: 3}
	drainStatusChannel(statusChan, &stats)

	select {
	case status := <-responseChan:
		assert.Contains(t, status, "In progress")
		assert.Contains(t, status, "#Added:\t\t3")
	default:
		assert.Fail(t, "no status response was sent")
	}
}
