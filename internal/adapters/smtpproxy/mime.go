package smtpproxy

import (
	"encoding/base64"
	"io"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/mail"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// maxPartDepth bounds recursion into nested multipart containers
const maxPartDepth = 4

// extractAnalyzableText pulls the human-readable text out of a parsed
// message: the decoded subject plus the message body. Plain text parts
// are preferred; an HTML-only message is rendered down to its visible
// text so it can still be scored.
func extractAnalyzableText(msg *mail.Message) string {
	var b strings.Builder
	if subject := decodeEncodedHeader(msg.Header.Get("Subject")); subject != "" {
		b.WriteString(subject)
		b.WriteString("\n")
	}

	plain, html := collectBodies(
		msg.Header.Get("Content-Type"),
		msg.Header.Get("Content-Transfer-Encoding"),
		msg.Body, 0)
	switch {
	case strings.TrimSpace(plain) != "":
		b.WriteString(plain)
	case html != "":
		b.WriteString(htmlToText(html))
	}

	return b.String()
}

// collectBodies walks the MIME structure and gathers text/plain and
// text/html content separately. Attachments and other media are skipped.
func collectBodies(contentType, encoding string, r io.Reader, depth int) (plain, html string) {
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil || contentType == "" {
		// No usable Content-Type means a bare text message
		mediaType = "text/plain"
	}

	if strings.HasPrefix(mediaType, "multipart/") {
		if depth >= maxPartDepth {
			return "", ""
		}
		boundary, ok := params["boundary"]
		if !ok {
			return "", ""
		}

		var plainParts, htmlParts []string
		mr := multipart.NewReader(r, boundary)
		for {
			part, err := mr.NextPart()
			if err != nil {
				break
			}
			p, h := collectBodies(
				part.Header.Get("Content-Type"),
				part.Header.Get("Content-Transfer-Encoding"),
				part, depth+1)
			if p != "" {
				plainParts = append(plainParts, p)
			}
			if h != "" {
				htmlParts = append(htmlParts, h)
			}
		}
		return strings.Join(plainParts, "\n"), strings.Join(htmlParts, "\n")
	}

	switch {
	case strings.HasPrefix(mediaType, "text/html"):
		return "", readBody(r, encoding)
	case strings.HasPrefix(mediaType, "text/"):
		return readBody(r, encoding), ""
	}
	return "", ""
}

// readBody reads a body part, undoing its transfer encoding
func readBody(r io.Reader, encoding string) string {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "base64":
		r = base64.NewDecoder(base64.StdEncoding, r)
	case "quoted-printable":
		r = quotedprintable.NewReader(r)
	}

	body, err := io.ReadAll(r)
	if err != nil && len(body) == 0 {
		return ""
	}
	return string(body)
}

// htmlToText renders an HTML body down to its visible text
func htmlToText(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return html
	}
	doc.Find("script,style").Remove()

	text := doc.Find("body").Text()
	if strings.TrimSpace(text) == "" {
		text = doc.Text()
	}
	return strings.Join(strings.Fields(text), " ")
}

// decodeEncodedHeader decodes RFC 2047 encoded-words in a header value.
// The input is returned unchanged when it is not encoded or fails to
// decode.
func decodeEncodedHeader(value string) string {
	if !strings.Contains(value, "=?") {
		return value
	}

	dec := new(mime.WordDecoder)
	decoded, err := dec.DecodeHeader(value)
	if err != nil {
		return value
	}
	return decoded
}
