package tui

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adithyanak/fuelbook/internal/daterange"
	"github.com/adithyanak/fuelbook/internal/fuelapi"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func recordsModel(t *testing.T, api *fuelapi.Client, recs []fuelapi.FuelRecord) model {
	t.Helper()
	m := model{
		deps:   Deps{API: api, Log: quietLogger()},
		styles: darkTheme(),
		screen: screenRecords,
		rng:    daterange.LastMonths(3),
		page:   1,
	}
	m.recs = recs
	m.vehicles = []fuelapi.Vehicle{{ID: "v1", Name: "Swift", CategoryID: "c1"}}
	m.rebuildRows()
	return m
}

func testFuelRecords(n int) []fuelapi.FuelRecord {
	recs := make([]fuelapi.FuelRecord, 0, n)
	for i := 0; i < n; i++ {
		recs = append(recs, fuelapi.FuelRecord{
			ID:          fmt.Sprintf("f%d", i+1),
			VehicleID:   "v1",
			Date:        time.Date(2026, time.January, i%28+1, 10, 0, 0, 0, time.UTC),
			Amount:      1000,
			Litres:      40,
			FuelType:    "PETROL",
			PaymentType: "UPI",
		})
	}
	return recs
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestDeleteCancelLeavesRecordsUntouched(t *testing.T) {
	var requests []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests = append(requests, r.Method+" "+r.URL.Path)
		fmt.Fprint(w, `{"status":"0","data":[]}`)
	}))
	defer server.Close()

	m := recordsModel(t, fuelapi.NewWithBaseURL("t", server.URL), testFuelRecords(1))

	next, cmd := m.Update(keyRune('x'))
	m = next.(model)
	require.Nil(t, cmd)
	require.NotNil(t, m.confirm)
	assert.Contains(t, m.confirm.prompt, "Delete")

	next, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(model)
	require.Nil(t, cmd)
	assert.Nil(t, m.confirm)

	assert.Empty(t, requests)
	assert.Len(t, m.filtered, 1)
	assert.Equal(t, "f1", m.filtered[0].ID)
}

func TestDeleteConfirmIssuesOneDeleteThenRefetch(t *testing.T) {
	var requests []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests = append(requests, r.Method+" "+r.URL.Path)
		switch r.Method {
		case http.MethodDelete:
			fmt.Fprint(w, `{"status":"0"}`)
		default:
			fmt.Fprint(w, `{"status":"0","data":[]}`)
		}
	}))
	defer server.Close()

	m := recordsModel(t, fuelapi.NewWithBaseURL("t", server.URL), testFuelRecords(1))

	next, _ := m.Update(keyRune('x'))
	m = next.(model)
	require.NotNil(t, m.confirm)

	next, cmd := m.Update(keyRune('y'))
	m = next.(model)
	assert.Nil(t, m.confirm)
	require.NotNil(t, cmd)

	msg := cmd()
	deleted, ok := msg.(recordDeletedMsg)
	require.True(t, ok, "message type = %T", msg)
	require.NoError(t, deleted.err)

	next, cmd = m.Update(deleted)
	m = next.(model)
	assert.True(t, m.recordsLoading)
	require.NotNil(t, cmd)

	loaded, ok := cmd().(recordsLoadedMsg)
	require.True(t, ok)
	next, _ = m.Update(loaded)
	m = next.(model)

	assert.False(t, m.recordsLoading)
	assert.Empty(t, m.recordsErr)
	assert.Empty(t, m.filtered)
	assert.Equal(t, []string{"DELETE /fuel/f1", "GET /fuel"}, requests)
}

func TestRefetchResetsPageWhenFilteredSizeChanges(t *testing.T) {
	m := recordsModel(t, nil, testFuelRecords(30))
	m.page = 3

	seq := m.recSeq.Next()
	next, _ := m.Update(recordsLoadedMsg{seq: seq, recs: testFuelRecords(12)})
	m = next.(model)
	assert.Equal(t, 1, m.page)

	// Same filtered size keeps the page where the user left it.
	m.page = 2
	seq = m.recSeq.Next()
	next, _ = m.Update(recordsLoadedMsg{seq: seq, recs: testFuelRecords(12)})
	m = next.(model)
	assert.Equal(t, 2, m.page)
}
