package trustedemployee

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchStatus(t *testing.T) {
	resp := `<ReportStatusResponse>
		<Report><FileNbr>111</FileNbr><ErrorText>file not found</ErrorText></Report>
		<Report><FileNbr>222</FileNbr><OrderStatus><Disposition>Complete</Disposition></OrderStatus></Report>
		<Report><FileNbr>333</FileNbr></Report>
	</ReportStatusResponse>`

	var gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ReportStatusFetch.cfm", r.URL.Path)

		raw, _ := io.ReadAll(r.Body)
		gotBody = string(raw)

		_, _ = w.Write([]byte(resp))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	results, err := c.FetchStatus(context.Background(), []string{"111", "222", "333"})
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "111", results[0].FileNo)
	assert.Equal(t, "file not found", results[0].ErrorText)
	assert.Empty(t, results[0].Status)
	assert.Nil(t, results[0].Raw)
	assert.False(t, results[0].Available())

	assert.Equal(t, "222", results[1].FileNo)
	assert.Empty(t, results[1].ErrorText)
	assert.Equal(t, StatusAvailable, results[1].Status)
	assert.True(t, results[1].Available())
	require.NotNil(t, results[1].Raw)
	assert.Equal(t, "Complete", results[1].Raw.SelectElement("Disposition").Text())

	// neither node: both fields unset, not an error
	assert.Equal(t, "333", results[2].FileNo)
	assert.Empty(t, results[2].Status)
	assert.Empty(t, results[2].ErrorText)
	assert.Nil(t, results[2].Raw)

	assert.Contains(t, gotBody, "<Report>111</Report><Report>222</Report><Report>333</Report>")
	assert.Contains(t, gotBody, "<PartnerId>partner&amp;co</PartnerId>")
}

func TestFetchStatusEscapesFileNumbers(t *testing.T) {
	var gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		gotBody = string(raw)
		_, _ = w.Write([]byte("<ReportStatusResponse></ReportStatusResponse>"))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	results, err := c.FetchStatus(context.Background(), []string{"A&1"})
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Contains(t, gotBody, "<Report>A&amp;1</Report>")
}

func TestFetchStatusServerOrderWins(t *testing.T) {
	// the server may reorder reports; results follow the response
	resp := `<ReportStatusResponse>
		<Report><FileNbr>333</FileNbr></Report>
		<Report><FileNbr>111</FileNbr></Report>
	</ReportStatusResponse>`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(resp))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	results, err := c.FetchStatus(context.Background(), []string{"111", "333"})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "333", results[0].FileNo)
	assert.Equal(t, "111", results[1].FileNo)
}

func TestFetchStatusHTTPErrorAbortsBatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "temporarily unavailable", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	results, err := c.FetchStatus(context.Background(), []string{"111", "222"})
	assert.Nil(t, results)

	var reqErr *RequestFailedError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, http.StatusServiceUnavailable, reqErr.StatusCode)
	assert.Contains(t, reqErr.Body, "temporarily unavailable")
}

func TestFetchStatusParseError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<ReportStatusResponse><Report></ReportStatusResponse>"))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.FetchStatus(context.Background(), []string{"111"})

	var parseErr *ResponseParseError
	assert.ErrorAs(t, err, &parseErr)
}
