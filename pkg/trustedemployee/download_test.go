package trustedemployee

import (
	"context"
	"encoding/base64"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/craibuc/trustedemployee/pkg/reportstore/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pdfResponse(fileNo string, pdf []byte) string {
	return "<ReportCopyResponse><FileNbr>" + fileNo + "</FileNbr><ReportPDF>" +
		base64.StdEncoding.EncodeToString(pdf) + "</ReportPDF></ReportCopyResponse>"
}

func newFsStore(t *testing.T) (*fs.Writer, string) {
	t.Helper()

	dir := filepath.Join(t.TempDir(), "reports")
	store, err := fs.NewWriter(fs.Config{Dir: dir})
	require.NoError(t, err)

	return store, dir
}

func TestDownloadReportsContinuesPastFailures(t *testing.T) {
	pdfOne := []byte("%PDF-1.4 one")
	pdfThree := []byte("%PDF-1.4 three")

	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ReportPDFFetch.cfm", r.URL.Path)
		calls++

		raw, _ := io.ReadAll(r.Body)
		body := string(raw)
		assert.Contains(t, body, "<PartnerId>partner&amp;co</PartnerId>")

		switch {
		case strings.Contains(body, "<FileNbr>111</FileNbr>"):
			_, _ = w.Write([]byte(pdfResponse("111", pdfOne)))
		case strings.Contains(body, "<FileNbr>222</FileNbr>"):
			http.Error(w, "backend down", http.StatusInternalServerError)
		default:
			_, _ = w.Write([]byte(pdfResponse("333", pdfThree)))
		}
	}))
	defer srv.Close()

	store, dir := newFsStore(t)
	c := newTestClient(t, srv.URL)

	results := c.DownloadReports(context.Background(), store, []string{"111", "222", "333"})
	require.Len(t, results, 3)
	assert.Equal(t, 3, calls)

	require.NoError(t, results[0].Err)
	assert.Equal(t, filepath.Join(dir, "111.pdf"), results[0].Location)
	gotOne, err := os.ReadFile(results[0].Location)
	require.NoError(t, err)
	assert.Equal(t, pdfOne, gotOne)

	assert.Equal(t, "222", results[1].FileNo)
	var reqErr *RequestFailedError
	require.ErrorAs(t, results[1].Err, &reqErr)
	assert.Equal(t, http.StatusInternalServerError, reqErr.StatusCode)

	require.NoError(t, results[2].Err)
	gotThree, err := os.ReadFile(results[2].Location)
	require.NoError(t, err)
	assert.Equal(t, pdfThree, gotThree)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestDownloadReportsVendorError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		if strings.Contains(string(raw), "<FileNbr>404</FileNbr>") {
			_, _ = w.Write([]byte("<ReportCopyResponse><FileNbr>404</FileNbr><ErrorText>no such file</ErrorText></ReportCopyResponse>"))
			return
		}
		_, _ = w.Write([]byte(pdfResponse("111", []byte("%PDF-1.4"))))
	}))
	defer srv.Close()

	store, _ := newFsStore(t)
	c := newTestClient(t, srv.URL)

	results := c.DownloadReports(context.Background(), store, []string{"404", "111"})
	require.Len(t, results, 2)

	var repErr *ReportError
	require.ErrorAs(t, results[0].Err, &repErr)
	assert.Equal(t, "404", repErr.FileNo)
	assert.Equal(t, "no such file", repErr.Text)

	assert.NoError(t, results[1].Err)
}

func TestDownloadReportsWrappedBase64(t *testing.T) {
	pdf := []byte("%PDF-1.4 wrapped payload")
	encoded := base64.StdEncoding.EncodeToString(pdf)
	wrapped := encoded[:10] + "\n  " + encoded[10:]

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<ReportCopyResponse><FileNbr>111</FileNbr><ReportPDF>" + wrapped + "</ReportPDF></ReportCopyResponse>"))
	}))
	defer srv.Close()

	store, _ := newFsStore(t)
	c := newTestClient(t, srv.URL)

	results := c.DownloadReports(context.Background(), store, []string{"111"})
	require.Len(t, results, 1)
	require.NoError(t, results[0].Err)

	got, err := os.ReadFile(results[0].Location)
	require.NoError(t, err)
	assert.Equal(t, pdf, got)
}

func TestDownloadReportsUnexpectedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<ReportCopyResponse><FileNbr>111</FileNbr></ReportCopyResponse>"))
	}))
	defer srv.Close()

	store, _ := newFsStore(t)
	c := newTestClient(t, srv.URL)

	results := c.DownloadReports(context.Background(), store, []string{"111"})
	require.Len(t, results, 1)

	var parseErr *ResponseParseError
	assert.ErrorAs(t, results[0].Err, &parseErr)
}
