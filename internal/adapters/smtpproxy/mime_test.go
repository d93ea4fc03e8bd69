package smtpproxy

import (
	"net/mail"
	"strings"
	"testing"
)

func parseMessage(t *testing.T, raw string) *mail.Message {
	t.Helper()
	msg, err := mail.ReadMessage(strings.NewReader(raw))
	if err != nil {
		t.Fatalf("ReadMessage: %v", err)
	}
	return msg
}

func TestExtractPlainMessage(t *testing.T) {
	msg := parseMessage(t, "From: a@example.com\r\n"+
		"Subject: Lunch plans\r\n"+
		"Content-Type: text/plain\r\n"+
		"\r\n"+
		"Are we still on for tomorrow?\r\n")

	got := extractAnalyzableText(msg)
	if got != "Lunch plans\nAre we still on for tomorrow?\r\n" {
		t.Errorf("extracted %q, expected subject then body", got)
	}
}

func TestExtractEncodedSubject(t *testing.T) {
	msg := parseMessage(t, "From: a@example.com\r\n"+
		"Subject: =?UTF-8?B?RlJFRSBtb25leQ==?=\r\n"+
		"\r\n"+
		"body\r\n")

	got := extractAnalyzableText(msg)
	if !strings.HasPrefix(got, "FREE money\n") {
		t.Errorf("extracted %q, expected decoded subject first", got)
	}
}

func TestExtractMultipartPrefersPlain(t *testing.T) {
	raw := "From: a@example.com\r\n" +
		"Subject: Offer\r\n" +
		"Content-Type: multipart/alternative; boundary=BOUNDARY\r\n" +
		"\r\n" +
		"--BOUNDARY\r\n" +
		"Content-Type: text/plain\r\n" +
		"\r\n" +
		"plain version here\r\n" +
		"--BOUNDARY\r\n" +
		"Content-Type: text/html\r\n" +
		"\r\n" +
		"<p>html version here</p>\r\n" +
		"--BOUNDARY--\r\n"

	got := extractAnalyzableText(parseMessage(t, raw))
	if !strings.Contains(got, "plain version here") {
		t.Errorf("extracted %q, expected the plain part", got)
	}
	if strings.Contains(got, "html version") {
		t.Errorf("extracted %q, should not include the html part when plain exists", got)
	}
}

func TestExtractHTMLOnly(t *testing.T) {
	raw := "From: a@example.com\r\n" +
		"Subject: Offer\r\n" +
		"Content-Type: text/html\r\n" +
		"\r\n" +
		"<html><head><style>p{color:red}</style></head>" +
		"<body><p>Free money inside</p><script>track()</script></body></html>\r\n"

	got := extractAnalyzableText(parseMessage(t, raw))
	if !strings.Contains(got, "Free money inside") {
		t.Errorf("extracted %q, expected the visible html text", got)
	}
	if strings.Contains(got, "track()") || strings.Contains(got, "color:red") {
		t.Errorf("extracted %q, script and style content should be stripped", got)
	}
	if strings.Contains(got, "<p>") {
		t.Errorf("extracted %q, markup should be stripped", got)
	}
}

func TestExtractBase64Body(t *testing.T) {
	raw := "From: a@example.com\r\n" +
		"Subject: Hi\r\n" +
		"Content-Type: text/plain\r\n" +
		"Content-Transfer-Encoding: base64\r\n" +
		"\r\n" +
		"V2luIGZyZWUgY2FzaCBub3chIENsaWNrIGh0dHA6Ly9iaXQubHkveno=\r\n"

	got := extractAnalyzableText(parseMessage(t, raw))
	if !strings.Contains(got, "Win free cash now! Click http://bit.ly/zz") {
		t.Errorf("extracted %q, expected the decoded base64 body", got)
	}
}

func TestExtractQuotedPrintableBody(t *testing.T) {
	raw := "From: a@example.com\r\n" +
		"Subject: Hi\r\n" +
		"Content-Type: text/plain\r\n" +
		"Content-Transfer-Encoding: quoted-printable\r\n" +
		"\r\n" +
		"Free=20money=21\r\n"

	got := extractAnalyzableText(parseMessage(t, raw))
	if !strings.Contains(got, "Free money!") {
		t.Errorf("extracted %q, expected the decoded quoted-printable body", got)
	}
}

func TestExtractNestedMultipart(t *testing.T) {
	raw := "From: a@example.com\r\n" +
		"Subject: Report\r\n" +
		"Content-Type: multipart/mixed; boundary=OUTER\r\n" +
		"\r\n" +
		"--OUTER\r\n" +
		"Content-Type: multipart/alternative; boundary=INNER\r\n" +
		"\r\n" +
		"--INNER\r\n" +
		"Content-Type: text/plain\r\n" +
		"\r\n" +
		"nested plain text\r\n" +
		"--INNER--\r\n" +
		"--OUTER\r\n" +
		"Content-Type: application/pdf\r\n" +
		"\r\n" +
		"%PDF-1.4 binary junk\r\n" +
		"--OUTER--\r\n"

	got := extractAnalyzableText(parseMessage(t, raw))
	if !strings.Contains(got, "nested plain text") {
		t.Errorf("extracted %q, expected text from the nested part", got)
	}
	if strings.Contains(got, "%PDF") {
		t.Errorf("extracted %q, attachments should be skipped", got)
	}
}

func TestExtractMissingContentType(t *testing.T) {
	msg := parseMessage(t, "From: a@example.com\r\n"+
		"Subject: Note\r\n"+
		"\r\n"+
		"bare body treated as plain text\r\n")

	got := extractAnalyzableText(msg)
	if !strings.Contains(got, "bare body treated as plain text") {
		t.Errorf("extracted %q, expected the bare body", got)
	}
}

func TestDecodeEncodedHeader(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain", "Hello there", "Hello there"},
		{"empty", "", ""},
		{"base64 word", "=?UTF-8?B?RlJFRSBtb25leQ==?=", "FREE money"},
		{"quoted word", "=?ISO-8859-1?Q?Caf=E9?=", "Café"},
		{"malformed", "=?broken", "=?broken"},
	}

	for _, tc := range testCases {
		result := decodeEncodedHeader(tc.input)
		if result != tc.expected {
			t.Errorf("%s: decodeEncodedHeader(%q) = %q, expected %q", tc.name, tc.input, result, tc.expected)
		}
	}
}

func TestMessageBody(t *testing.T) {
	crlf := []byte("Subject: x\r\n\r\nbody line\r\n")
	if got := string(messageBody(crlf)); got != "body line\r\n" {
		t.Errorf("messageBody = %q, expected %q", got, "body line\r\n")
	}

	lf := []byte("Subject: x\n\nbody line\n")
	if got := string(messageBody(lf)); got != "body line\n" {
		t.Errorf("messageBody = %q, expected %q", got, "body line\n")
	}

	if got := messageBody([]byte("Subject: x\r\n")); got != nil {
		t.Errorf("messageBody without separator = %q, expected nil", got)
	}
}

func TestHTMLToText(t *testing.T) {
	got := htmlToText("<div>one  <b>two</b>\n three &amp; four</div>")
	if got != "one two three & four" {
		t.Errorf("htmlToText = %q, expected collapsed visible text", got)
	}
}

func TestDomainOf(t *testing.T) {
	testCases := []struct {
		addr     string
		expected string
	}{
		{"user@example.com", "example.com"},
		{"plain-string", "unknown"},
		{"a@b@c", "unknown"},
		{"", "unknown"},
	}

	for _, tc := range testCases {
		if got := domainOf(tc.addr); got != tc.expected {
			t.Errorf("domainOf(%q) = %q, expected %q", tc.addr, got, tc.expected)
		}
	}
}
