package trustedemployee

import (
	"context"
	"strings"

	util_xml "github.com/craibuc/trustedemployee/pkg/util/xml"
	"github.com/beevik/etree"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// StatusAvailable marks a report whose status payload was present in
// the vendor's response.
const StatusAvailable = "Available"

// StatusResult is one file's outcome from a batched status fetch.
// ErrorText and Status are independent optional fields; a <Report> with
// neither node yields both unset, which is not itself an error.
type StatusResult struct {
	FileNo    string
	Status    string
	ErrorText string

	// Raw is the status payload exactly as returned, set only when
	// Status is StatusAvailable.
	Raw *etree.Element
}

func (r StatusResult) Available() bool {
	return r.Status == StatusAvailable
}

// FetchStatus posts one batched <ReportStatusRequest> and maps each
// <Report> child of the response to a StatusResult. Results follow the
// server's response order, which is not guaranteed to match fileNos.
func (c *Client) FetchStatus(ctx context.Context, fileNos []string) ([]StatusResult, error) {
	var sb strings.Builder
	sb.WriteString("<ReportStatusRequest>")
	writePartnerInfo(&sb, c.cfg.PartnerID, c.cfg.Password)
	sb.WriteString(strings.Join(lo.Map(fileNos, func(fn string, _ int) string {
		return "<Report>" + util_xml.Escape(fn) + "</Report>"
	}), ""))
	sb.WriteString("</ReportStatusRequest>")

	respBody, err := c.post(ctx, opStatus, statusPath, sb.String())
	if err != nil {
		return nil, err
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(respBody); err != nil {
		return nil, &ResponseParseError{Op: opStatus, Err: err}
	}

	root := doc.Root()
	if root == nil {
		return nil, &ResponseParseError{Op: opStatus, Err: errors.New("empty response document")}
	}

	reports := root.SelectElements("Report")
	results := make([]StatusResult, 0, len(reports))
	for _, rep := range reports {
		var res StatusResult
		if fn := rep.SelectElement("FileNbr"); fn != nil {
			res.FileNo = strings.TrimSpace(fn.Text())
		}
		if et := rep.SelectElement("ErrorText"); et != nil {
			res.ErrorText = strings.TrimSpace(et.Text())
		}
		if st := rep.SelectElement("OrderStatus"); st != nil {
			res.Status = StatusAvailable
			res.Raw = st.Copy()
		}

		results = append(results, res)
	}

	level.Debug(c.log).Log("msg", "fetched report statuses", "requested", len(fileNos), "returned", len(results))

	return results, nil
}
