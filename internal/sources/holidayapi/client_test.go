package holidayapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snoozelab/holiday-alarm/internal/logger"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, "test-key", time.Second, logger.New("error", false))
}

func TestFetchHolidaysArrayResponse(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/getHoliDeInfo", r.URL.Path)
		assert.Equal(t, "2026", r.URL.Query().Get("solYear"))
		assert.Equal(t, "json", r.URL.Query().Get("_type"))
		assert.Equal(t, "test-key", r.URL.Query().Get("serviceKey"))

		_, _ = w.Write([]byte(`{
			"response": {
				"header": {"resultCode": "00", "resultMsg": "NORMAL SERVICE."},
				"body": {
					"items": {"item": [
						{"dateKind": "01", "dateName": "New Year", "isHoliday": "Y", "locdate": 20260101, "seq": 1},
						{"dateKind": "01", "dateName": "Arbor Day", "isHoliday": "N", "locdate": 20260405, "seq": 1}
					]},
					"numOfRows": 100, "pageNo": 1, "totalCount": 2
				}
			}
		}`))
	})

	holidays, err := client.FetchHolidays(context.Background(), 2026)
	require.NoError(t, err)
	require.Len(t, holidays, 2)

	assert.Equal(t, 20260101, holidays[0].Date)
	assert.Equal(t, "New Year", holidays[0].Name)
	assert.True(t, holidays[0].Actual())
	assert.False(t, holidays[1].Actual())
}

func TestFetchHolidaysSingleObjectResponse(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{
			"response": {
				"header": {"resultCode": "00", "resultMsg": "NORMAL SERVICE."},
				"body": {
					"items": {"item": {"dateKind": "01", "dateName": "Chuseok", "isHoliday": "Y", "locdate": 20260925, "seq": 1}},
					"numOfRows": 100, "pageNo": 1, "totalCount": 1
				}
			}
		}`))
	})

	holidays, err := client.FetchHolidays(context.Background(), 2026)
	require.NoError(t, err)
	require.Len(t, holidays, 1)
	assert.Equal(t, "Chuseok", holidays[0].Name)
}

func TestFetchHolidaysEmptyItems(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{
			"response": {
				"header": {"resultCode": "00", "resultMsg": "NORMAL SERVICE."},
				"body": {"items": "", "numOfRows": 100, "pageNo": 1, "totalCount": 0}
			}
		}`))
	})

	holidays, err := client.FetchHolidays(context.Background(), 2026)
	require.NoError(t, err)
	assert.Empty(t, holidays)
}

func TestFetchHolidaysProviderError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{
			"response": {
				"header": {"resultCode": "30", "resultMsg": "SERVICE_KEY_IS_NOT_REGISTERED_ERROR"},
				"body": {"items": "", "numOfRows": 0, "pageNo": 0, "totalCount": 0}
			}
		}`))
	})

	_, err := client.FetchHolidays(context.Background(), 2026)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SERVICE_KEY_IS_NOT_REGISTERED_ERROR")
}

func TestFetchHolidaysHTTPFailure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.FetchHolidays(context.Background(), 2026)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 502")
}

func TestFetchHolidaysMalformedBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html>not json</html>`))
	})

	_, err := client.FetchHolidays(context.Background(), 2026)
	require.Error(t, err)
}
