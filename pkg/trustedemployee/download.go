package trustedemployee

import (
	"bytes"
	"context"
	"encoding/base64"
	"strings"

	"github.com/craibuc/trustedemployee/pkg/reportstore"
	util_xml "github.com/craibuc/trustedemployee/pkg/util/xml"
	"github.com/beevik/etree"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
)

// DownloadResult is one file's PDF retrieval outcome. Err carries the
// per-file failure; other files in the same batch are unaffected.
type DownloadResult struct {
	FileNo   string
	Location string
	Err      error
}

// DownloadReports issues one <ReportCopyRequest> per file number,
// strictly in sequence, storing each decoded PDF as {fileNo}.pdf. A
// failure on one file is recorded on its result and the loop moves on
// to the remaining file numbers.
func (c *Client) DownloadReports(ctx context.Context, store reportstore.Writer, fileNos []string) []DownloadResult {
	results := make([]DownloadResult, 0, len(fileNos))
	for _, fn := range fileNos {
		loc, err := c.downloadReport(ctx, store, fn)
		if err != nil {
			level.Error(c.log).Log("msg", "download report", "file_no", fn, "err", err)
			results = append(results, DownloadResult{FileNo: fn, Err: err})
			continue
		}

		level.Info(c.log).Log("msg", "downloaded report", "file_no", fn, "location", loc)
		results = append(results, DownloadResult{FileNo: fn, Location: loc})
	}

	return results
}

func (c *Client) downloadReport(ctx context.Context, store reportstore.Writer, fileNo string) (string, error) {
	var sb strings.Builder
	sb.WriteString("<ReportCopyRequest>")
	writePartnerInfo(&sb, c.cfg.PartnerID, c.cfg.Password)
	writeElem(&sb, "FileNbr", util_xml.Escape(fileNo))
	sb.WriteString("</ReportCopyRequest>")

	respBody, err := c.post(ctx, opDownload, downloadPath, sb.String())
	if err != nil {
		return "", err
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(respBody); err != nil {
		return "", &ResponseParseError{Op: opDownload, Err: err}
	}

	root := doc.Root()
	if root == nil {
		return "", &ResponseParseError{Op: opDownload, Err: errors.New("empty response document")}
	}

	if et := root.FindElement("//ErrorText"); et != nil && strings.TrimSpace(et.Text()) != "" {
		return "", &ReportError{FileNo: fileNo, Text: strings.TrimSpace(et.Text())}
	}

	pdf := root.FindElement("//ReportPDF")
	if pdf == nil {
		return "", &ResponseParseError{Op: opDownload, Err: errors.New("response contains neither ErrorText nor ReportPDF")}
	}

	// The vendor wraps the payload; drop any embedded whitespace before
	// decoding.
	data, err := base64.StdEncoding.DecodeString(strings.Join(strings.Fields(pdf.Text()), ""))
	if err != nil {
		return "", errors.Wrap(err, "decode report pdf")
	}

	loc, err := store.Store(ctx, fileNo+".pdf", bytes.NewReader(data))
	if err != nil {
		return "", errors.Wrap(err, "store report pdf")
	}

	return loc, nil
}
