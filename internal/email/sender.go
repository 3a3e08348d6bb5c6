// Package email delivers contact-form messages through an SMTP relay with
// a STARTTLS upgrade. Delivery failure is reported as a boolean, never as
// a propagated transport error; the handler turns false into a generic
// delivery error.
package email

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strings"

	"co2-platform/internal/config"
	"co2-platform/pkg/logging"
	"co2-platform/pkg/metrics"
)

// Sender transmits contact emails via a fixed SMTP relay.
type Sender struct {
	host     string
	port     int
	address  string
	password string
	logger   *logging.StructuredLogger
	metrics  *metrics.Collector
}

// NewSender creates a new email sender. Credentials are not validated
// here; a missing or wrong credential surfaces as a delivery failure.
func NewSender(cfg config.SMTPConfig, logger *logging.StructuredLogger, metricsCollector *metrics.Collector) *Sender {
	return &Sender{
		host:     cfg.Host,
		port:     cfg.Port,
		address:  cfg.Address,
		password: cfg.Password,
		logger:   logger,
		metrics:  metricsCollector,
	}
}

// Send builds the contact-form HTML message and transmits it. Returns
// false on any failure.
func (s *Sender) Send(to, subject, userEmail, message string) bool {
	ctx := context.Background()

	body := buildBody(userEmail, subject, message)
	payload := buildMessage(s.address, to, subject, body)

	if err := s.transmit(to, payload); err != nil {
		s.metrics.RecordEmailSend("failed")
		s.logger.Error(ctx, "[EMAIL_SEND_ERROR] Delivery failed", logging.Fields{
			"to":   to,
			"host": s.host,
		}, err)
		return false
	}

	s.metrics.RecordEmailSend("sent")
	s.logger.Info(ctx, "[EMAIL_SENT] Contact email delivered", logging.Fields{
		"to": to,
	})

	return true
}

// transmit connects to the relay, upgrades to TLS, authenticates and
// sends the message.
func (s *Sender) transmit(to string, payload []byte) error {
	addr := fmt.Sprintf("%s:%d", s.host, s.port)

	client, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("failed to connect to relay: %w", err)
	}
	defer client.Close()

	if err := client.StartTLS(&tls.Config{ServerName: s.host}); err != nil {
		return fmt.Errorf("failed to start TLS: %w", err)
	}

	auth := smtp.PlainAuth("", s.address, s.password, s.host)
	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("failed to authenticate: %w", err)
	}

	if err := client.Mail(s.address); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}

	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	writer, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to open data stream: %w", err)
	}

	if _, err := writer.Write(payload); err != nil {
		writer.Close()
		return fmt.Errorf("failed to write message: %w", err)
	}

	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finish message: %w", err)
	}

	return client.Quit()
}

// buildMessage assembles the MIME message headers and body.
func buildMessage(from, to, subject, body string) []byte {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("From: %s\r\n", from))
	sb.WriteString(fmt.Sprintf("To: %s\r\n", to))
	sb.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	sb.WriteString("\r\n")
	sb.WriteString(body)

	return []byte(sb.String())
}

// buildBody renders the contact-form HTML document. User-controlled
// fields are interpolated without escaping, preserving the behavior of
// the system this replaces.
func buildBody(userEmail, subject, message string) string {
	return fmt.Sprintf(`
        <html>
            <body>
                <h2>Nuevo mensaje desde el formulario de contacto</h2>
                <p><strong>De:</strong> %s</p>
                <p><strong>Asunto:</strong> %s</p>
                <hr>
                <p>%s</p>
                <hr>
                <p style="font-size: 12px; color: #555;">
                    Este mensaje fue enviado desde LAirPrope - Modelo de Predicción de CO₂.
                </p>
            </body>
        </html>
        `, userEmail, subject, message)
}
