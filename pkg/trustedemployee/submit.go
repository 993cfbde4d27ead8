package trustedemployee

import (
	"context"
	"net/url"
	"strings"

	util_xml "github.com/craibuc/trustedemployee/pkg/util/xml"
	"github.com/beevik/etree"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
)

// Submission collects applicants for one batched screen request.
// Applicants are validated and encoded as they are added; Send issues a
// single POST for the whole batch.
type Submission struct {
	c         *Client
	fragments []string
}

func (c *Client) NewSubmission() *Submission {
	return &Submission{c: c}
}

// Add validates a and appends its encoded fragment to the batch.
func (s *Submission) Add(a *Applicant) error {
	if err := validateApplicant(a); err != nil {
		return err
	}

	s.fragments = append(s.fragments, a.EncodeXML())
	return nil
}

func (s *Submission) Len() int {
	return len(s.fragments)
}

// Request assembles the <ScreenRequest> envelope exactly as it will be
// sent over the wire. Useful with xml.Format for debug output.
func (s *Submission) Request() string {
	var sb strings.Builder
	sb.WriteString("<ScreenRequest>")
	writePartnerInfo(&sb, s.c.cfg.PartnerID, s.c.cfg.Password)
	sb.WriteString("<Account>")
	writeElem(&sb, "AcctNbr", util_xml.Escape(s.c.cfg.Account))
	sb.WriteString("<PostBackURL CredentialType='NONE'>")
	sb.WriteString(util_xml.Escape(s.c.cfg.PostBackURL))
	sb.WriteString("</PostBackURL>")
	for _, f := range s.fragments {
		sb.WriteString(f)
	}
	sb.WriteString("</Account>")
	sb.WriteString("</ScreenRequest>")

	return sb.String()
}

// Send posts the batch and returns the parsed response document. The
// vendor does not document per-applicant semantics for this exchange,
// so the response is passed through opaquely rather than mapped.
func (s *Submission) Send(ctx context.Context) (*etree.Document, error) {
	if len(s.fragments) == 0 {
		return nil, &ValidationError{Message: "submission contains no applicants"}
	}
	if len(s.c.cfg.Account) != accountLen {
		return nil, &ValidationError{Field: "Account", Message: "account number must be exactly 6 characters"}
	}
	if u, err := url.Parse(s.c.cfg.PostBackURL); err != nil || !u.IsAbs() {
		return nil, &ValidationError{Field: "PostBackURL", Message: "postback url must be an absolute uri"}
	}

	level.Debug(s.c.log).Log("msg", "submitting screen request", "applicants", len(s.fragments))

	respBody, err := s.c.post(ctx, opSubmit, submitPath, s.Request())
	if err != nil {
		return nil, err
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(respBody); err != nil {
		return nil, &ResponseParseError{Op: opSubmit, Err: err}
	}
	if doc.Root() == nil {
		return nil, &ResponseParseError{Op: opSubmit, Err: errors.New("empty response document")}
	}

	return doc, nil
}
