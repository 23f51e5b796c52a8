// internal/services/notification_service.go
package services

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"

	"github.com/sirupsen/logrus"

	"github.com/ecocupon/ecocanasta-api/internal/config"
)

// NotificationService delivers coupon emails over SMTP. With no SMTP host
// configured it degrades to logging, which keeps development setups working.
type NotificationService struct {
	config *config.Config
}

type CouponEmailData struct {
	Code            string
	ProductName     string
	ProductURL      string
	Shop            string
	DiscountPercent int
	Savings         string
	DisplayPrice    string
	SiteName        string
}

func NewNotificationService(config *config.Config) *NotificationService {
	return &NotificationService{config: config}
}

func (s *NotificationService) SendCouponEmail(to, subject string, data CouponEmailData) error {
	body, err := s.renderTemplate(couponEmailTemplate, data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}
	return s.sendEmail(to, subject, body)
}

func (s *NotificationService) sendEmail(to, subject, body string) error {
	if s.config.Email.SMTPUsername == "" {
		logrus.WithFields(logrus.Fields{
			"to":      to,
			"subject": subject,
		}).Info("Email delivery skipped, SMTP not configured")
		return nil
	}

	auth := smtp.PlainAuth("", s.config.Email.SMTPUsername, s.config.Email.SMTPPassword, s.config.Email.SMTPHost)

	msg := []byte(fmt.Sprintf("From: %s <%s>\r\nTo: %s\r\nSubject: %s\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s",
		s.config.Email.FromName, s.config.Email.FromEmail, to, subject, body))

	addr := fmt.Sprintf("%s:%s", s.config.Email.SMTPHost, s.config.Email.SMTPPort)
	return smtp.SendMail(addr, auth, s.config.Email.FromEmail, []string{to}, msg)
}

func (s *NotificationService) renderTemplate(templateStr string, data interface{}) (string, error) {
	tmpl, err := template.New("email").Parse(templateStr)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

const couponEmailTemplate = `
<!DOCTYPE html>
<html>
<body>
	<h2>¡Tu cupón de descuento está listo!</h2>
	<p>Usa el código <strong>{{.Code}}</strong> y ahorra <strong>${{.Savings}}</strong> ({{.DiscountPercent}}% OFF) en:</p>
	<p><strong>{{.ProductName}}</strong>{{if .Shop}} — {{.Shop}}{{end}}</p>
	<p>Precio con descuento: <strong>${{.DisplayPrice}}</strong></p>
	{{if .ProductURL}}<p><a href="{{.ProductURL}}">Ver producto</a></p>{{end}}
	<p>Equipo {{.SiteName}}</p>
</body>
</html>`
