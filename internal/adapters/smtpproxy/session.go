package smtpproxy

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/mail"
	"strings"
	"time"

	"github.com/emersion/go-smtp"
	"go.uber.org/zap"

	"github.com/codezworl/spamshield/internal/core"
)

// analysisErrorHeader is stamped on messages whose analysis failed, so
// downstream tooling can tell an unscored message from a clean one.
const analysisErrorHeader = "X-SpamShield-Error"

// backend implements the go-smtp Backend interface
type backend struct {
	proxy *Proxy
}

// NewSession creates a new SMTP session
func (b *backend) NewSession(_ *smtp.Conn) (smtp.Session, error) {
	return &session{proxy: b.proxy}, nil
}

// session implements the go-smtp Session interface
type session struct {
	proxy      *Proxy
	from       string
	recipients []string
}

// Mail sets the sender address
func (s *session) Mail(from string, _ *smtp.MailOptions) error {
	s.from = from
	return nil
}

// Rcpt adds a recipient
func (s *session) Rcpt(to string, _ *smtp.RcptOptions) error {
	s.recipients = append(s.recipients, to)
	return nil
}

// Reset resets the session state
func (s *session) Reset() {
	s.from = ""
	s.recipients = nil
}

// Logout handles SMTP logout
func (s *session) Logout() error {
	return nil
}

// Data receives the message, scores it and decides its fate. Messages
// that cannot be parsed or analyzed are relayed untouched; the filter
// must never lose mail on its own account.
func (s *session) Data(r io.Reader) error {
	raw, err := io.ReadAll(r)
	if err != nil {
		s.proxy.logger.Error("Failed to read message data", zap.Error(err))
		return err
	}

	senderDomain := domainOf(s.from)

	if s.proxy.whitelist.IsWhitelisted(s.from) {
		s.proxy.logger.Debug("Sender whitelisted, relaying unmodified",
			zap.String("from", s.from),
			zap.String("sender_domain", senderDomain))
		return s.proxy.relayUpstream(s.from, s.recipients, raw)
	}

	msg, err := mail.ReadMessage(bytes.NewReader(raw))
	if err != nil {
		s.proxy.logger.Warn("Failed to parse message, relaying unmodified",
			zap.Error(err),
			zap.String("from", s.from))
		return s.proxy.relayUpstream(s.from, s.recipients, raw)
	}

	text := s.proxy.textproc.Prepare(extractAnalyzableText(msg))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var res *core.Analysis
	var checkErr error
	if strings.TrimSpace(text) == "" {
		res = safeFallback()
	} else {
		res, checkErr = s.proxy.checker.Check(ctx, text, string(core.KindEmail))
		if checkErr != nil {
			s.proxy.logger.Error("Failed to analyze message",
				zap.Error(checkErr),
				zap.String("from", s.from),
				zap.String("sender_domain", senderDomain))
			res = safeFallback()
		}
	}

	cfg := s.proxy.cfg
	if res.IsSpam && cfg.BlockSpam && checkErr == nil {
		s.proxy.logger.Info("Rejecting spam message",
			zap.String("from", s.from),
			zap.String("sender_domain", senderDomain),
			zap.Float64("score", res.Score),
			zap.Strings("reasons", res.Reasons))
		return &smtp.SMTPError{
			Code:         550,
			EnhancedCode: smtp.EnhancedCode{5, 7, 1},
			Message:      fmt.Sprintf("Message rejected as spam (score: %.2f)", res.Score),
		}
	}

	stamped := s.stampMessage(raw, msg, res, checkErr)
	if err := s.proxy.relayUpstream(s.from, s.recipients, stamped); err != nil {
		s.proxy.logger.Error("Failed to relay message upstream",
			zap.Error(err),
			zap.String("from", s.from))
		return err
	}

	s.proxy.logger.Info("Processed message",
		zap.String("from", s.from),
		zap.String("sender_domain", senderDomain),
		zap.Bool("is_spam", res.IsSpam),
		zap.Float64("score", res.Score),
		zap.String("category", string(res.Category)),
		zap.String("source", string(res.Source)))

	return nil
}

// stampMessage rebuilds the message with verdict headers prepended and,
// for spam, the subject prefixed. The original body bytes are spliced
// back in untouched so MIME structure and attachments survive.
func (s *session) stampMessage(raw []byte, msg *mail.Message, res *core.Analysis, checkErr error) []byte {
	cfg := s.proxy.cfg
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "%s: %t\r\n", cfg.Headers.Flag, res.IsSpam)
	fmt.Fprintf(&buf, "%s: %.4f\r\n", cfg.Headers.Score, res.Score)
	fmt.Fprintf(&buf, "%s: %s\r\n", cfg.Headers.Category, res.Category)
	if len(res.Reasons) > 0 {
		fmt.Fprintf(&buf, "%s: %s\r\n", cfg.Headers.Reasons, strings.Join(res.Reasons, "; "))
	}
	if checkErr != nil {
		fmt.Fprintf(&buf, "%s: %s\r\n", analysisErrorHeader, checkErr.Error())
	}

	rewrite := res.IsSpam && cfg.RewriteSubject && cfg.SubjectPrefix != ""
	var newSubject string
	if rewrite {
		subject := decodeEncodedHeader(msg.Header.Get("Subject"))
		if strings.HasPrefix(subject, cfg.SubjectPrefix) {
			rewrite = false
		} else {
			newSubject = cfg.SubjectPrefix + subject
		}
	}

	for key, values := range msg.Header {
		if rewrite && strings.EqualFold(key, "Subject") {
			continue
		}
		for _, value := range values {
			fmt.Fprintf(&buf, "%s: %s\r\n", key, value)
		}
	}
	if rewrite {
		fmt.Fprintf(&buf, "Subject: %s\r\n", newSubject)
	}
	buf.WriteString("\r\n")

	buf.Write(messageBody(raw))
	return buf.Bytes()
}

// safeFallback is the verdict used when a message yields no analyzable
// text or analysis fails
func safeFallback() *core.Analysis {
	return &core.Analysis{
		IsSpam:     false,
		Score:      0,
		Confidence: 0,
		Category:   core.CategorySafe,
		Reasons:    []string{},
		Kind:       core.KindEmail,
		AnalyzedAt: time.Now(),
		Source:     core.SourceEngine,
	}
}

// messageBody returns the raw bytes after the header separator. A
// message that survived mail.ReadMessage always has one.
func messageBody(raw []byte) []byte {
	if i := bytes.Index(raw, []byte("\r\n\r\n")); i >= 0 {
		return raw[i+4:]
	}
	if i := bytes.Index(raw, []byte("\n\n")); i >= 0 {
		return raw[i+2:]
	}
	return nil
}

func domainOf(addr string) string {
	if parts := strings.Split(addr, "@"); len(parts) == 2 {
		return parts[1]
	}
	return "unknown"
}
