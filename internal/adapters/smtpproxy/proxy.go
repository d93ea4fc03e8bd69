// Package smtpproxy runs the inbound SMTP content filter: it accepts
// messages, scores them and relays them to the upstream MTA with
// verdict headers attached.
package smtpproxy

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/emersion/go-smtp"
	"go.uber.org/zap"

	"github.com/codezworl/spamshield/internal/config"
	"github.com/codezworl/spamshield/internal/core"
	"github.com/codezworl/spamshield/internal/textutil"
	"github.com/codezworl/spamshield/internal/whitelist"
)

// Proxy implements an SMTP proxy frontend
type Proxy struct {
	checker   *core.CheckerService
	whitelist *whitelist.Checker
	textproc  *textutil.Processor
	logger    *zap.Logger
	cfg       config.SMTPConfig
	server    *smtp.Server
}

// NewProxy creates a new SMTP proxy
func NewProxy(
	checker *core.CheckerService,
	wl *whitelist.Checker,
	textproc *textutil.Processor,
	logger *zap.Logger,
	cfg config.SMTPConfig,
) *Proxy {
	return &Proxy{
		checker:   checker,
		whitelist: wl,
		textproc:  textproc,
		logger:    logger,
		cfg:       cfg,
	}
}

// Start starts the SMTP proxy
func (p *Proxy) Start() error {
	p.server = smtp.NewServer(&backend{proxy: p})

	p.server.Addr = p.cfg.ListenAddress
	p.server.Domain = "localhost"
	p.server.ReadTimeout = 30 * time.Second
	p.server.WriteTimeout = 30 * time.Second
	p.server.MaxMessageBytes = 30 * 1024 * 1024 // 30MB
	p.server.MaxRecipients = 50
	p.server.AllowInsecureAuth = true

	p.logger.Info("SMTP proxy starting",
		zap.String("address", p.cfg.ListenAddress),
		zap.String("upstream", p.cfg.UpstreamAddress),
		zap.Bool("block_spam", p.cfg.BlockSpam))

	go func() {
		if err := p.server.ListenAndServe(); err != nil && err != smtp.ErrServerClosed {
			p.logger.Error("SMTP server error", zap.Error(err))
		}
	}()

	return nil
}

// Stop stops the SMTP proxy
func (p *Proxy) Stop() error {
	if p.server != nil {
		return p.server.Close()
	}
	return nil
}

// relayUpstream hands a message to the upstream MTA
func (p *Proxy) relayUpstream(sender string, recipients []string, data []byte) error {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "localhost"
	}

	conn, err := net.DialTimeout("tcp", p.cfg.UpstreamAddress, 10*time.Second)
	if err != nil {
		return fmt.Errorf("failed to connect to upstream MTA: %w", err)
	}
	if err := conn.SetDeadline(time.Now().Add(30 * time.Second)); err != nil {
		conn.Close()
		return fmt.Errorf("failed to set connection deadline: %w", err)
	}

	c := smtp.NewClient(conn)
	defer c.Close()

	if err := c.Hello(hostname); err != nil {
		return fmt.Errorf("EHLO failed: %w", err)
	}
	if err := c.Mail(sender, nil); err != nil {
		return fmt.Errorf("MAIL FROM failed: %w", err)
	}

	accepted := false
	for _, recipient := range recipients {
		if err := c.Rcpt(recipient, nil); err != nil {
			p.logger.Warn("RCPT TO failed for recipient",
				zap.String("recipient", recipient),
				zap.Error(err))
			continue
		}
		accepted = true
	}
	if !accepted {
		return fmt.Errorf("all recipients were rejected by upstream")
	}

	wc, err := c.Data()
	if err != nil {
		return fmt.Errorf("DATA command failed: %w", err)
	}
	if _, err := wc.Write(data); err != nil {
		wc.Close()
		return fmt.Errorf("failed to write message data: %w", err)
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}

	if err := c.Quit(); err != nil {
		p.logger.Warn("QUIT failed after relay", zap.Error(err))
	}

	return nil
}
