package pipeline

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/jordan-wright/email"
	"go.opentelemetry.io/otel/codes"
)

// mails the finished run report to the configured operators. only
// called when smtp is configured.
func (s Service) mailReport(ctx context.Context, summary Summary) error {
	_, span := tracer.Start(ctx, "mailReport")
	defer span.End()

	mail := email.NewEmail()
	mail.From = fmt.Sprintf("tp4-dataops <%s>", s.cfg.Smtp.EmailAddress)
	mail.To = s.cfg.Smtp.To
	mail.Subject = fmt.Sprintf("Run report %s", summary.RunId)
	mail.Text = []byte(strings.Join(reportLines(summary), "\n"))

	addr := fmt.Sprintf("%s:%d", s.cfg.Smtp.Server, s.cfg.Smtp.Port)
	err := mail.Send(addr, smtp.PlainAuth("", s.cfg.Smtp.EmailAddress, s.cfg.Smtp.Password, s.cfg.Smtp.Server))
	if err != nil && strings.Contains(err.Error(), "server doesn't support AUTH") {
		err = mail.Send(addr, nil)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to send report email")
		return err
	}
	return nil
}
