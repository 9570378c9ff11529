package mailer

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// ErrSendFailed возвращается, когда SendGrid не принял письмо
// Вызывающие обязаны логировать и глотать эту ошибку: недоставленное письмо
// никогда не отменяет само бронирование или платеж
var ErrSendFailed = errors.New("mailer: failed to send email")

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент отправки транзакционных писем через SendGrid
// При enabled = false все методы становятся no-op (локальная разработка, тесты)
type Client struct {
	enabled   bool
	apiKey    string
	fromEmail string
	fromName  string
	log       Logger
}

// NewClient создает новый экземпляр почтового клиента
func NewClient(enabled bool, apiKey, fromEmail, fromName string, log Logger) *Client {
	return &Client{
		enabled:   enabled,
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
		log:       log,
	}
}

// SendBookingConfirmation отправляет письмо о принятой заявке
func (c *Client) SendBookingConfirmation(data BookingEmailData) error {
	subject := fmt.Sprintf("Заявка на занятие принята - %s", data.BookingCode)
	return c.send(data.ClientEmail, data.ClientName, subject, bookingConfirmationTmpl, data)
}

// SendBookingApproved отправляет письмо о подтвержденной записи
func (c *Client) SendBookingApproved(data BookingEmailData) error {
	subject := fmt.Sprintf("Запись подтверждена - %s", data.BookingCode)
	return c.send(data.ClientEmail, data.ClientName, subject, bookingApprovedTmpl, data)
}

// SendBookingRejected отправляет письмо об отклоненной заявке
func (c *Client) SendBookingRejected(data BookingEmailData) error {
	subject := fmt.Sprintf("Заявка отклонена - %s", data.BookingCode)
	return c.send(data.ClientEmail, data.ClientName, subject, bookingRejectedTmpl, data)
}

// SendPaymentReminder отправляет напоминание о задолженности
func (c *Client) SendPaymentReminder(data PaymentReminderData) error {
	subject := fmt.Sprintf("Напоминание об оплате за %s", data.Month)
	return c.send(data.ClientEmail, "", subject, paymentReminderTmpl, data)
}

func (c *Client) send(toEmail, toName, subject string, tmpl *template.Template, data interface{}) error {
	if !c.enabled {
		c.log.Info("Mailer disabled, skipping email to=%s subject=%q", toEmail, subject)
		return nil
	}

	var htmlBody bytes.Buffer
	if err := tmpl.Execute(&htmlBody, data); err != nil {
		return fmt.Errorf("%w: render template: %v", ErrSendFailed, err)
	}

	from := mail.NewEmail(c.fromName, c.fromEmail)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, "", htmlBody.String())

	client := sendgrid.NewSendClient(c.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("%w: to=%s: %v", ErrSendFailed, toEmail, err)
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return fmt.Errorf("%w: to=%s, status=%d, body=%s", ErrSendFailed, toEmail, response.StatusCode, response.Body)
	}

	c.log.Info("Email sent to=%s subject=%q status=%d", toEmail, subject, response.StatusCode)
	return nil
}
