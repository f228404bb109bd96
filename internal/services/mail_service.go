package services

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"strings"

	"inkwell/internal/config"
	"inkwell/internal/logger"
)

type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// MailService tells the moderator about comments waiting for approval.
type MailService struct {
	Host      string
	Port      string
	Username  string
	Password  string
	From      string
	Moderator string
	Enabled   bool

	log      *logger.Logger
	sendMail sendMailFunc
}

// ModerationNotice is what the moderator needs to find and judge a pending comment.
type ModerationNotice struct {
	CommentID string
	PostID    string
	Name      string
	Email     string
	Comment   string
}

var moderationTemplate = template.Must(template.New("moderation").Parse(`<p>A new comment is waiting for approval.</p>
<table>
  <tr><td>Post</td><td>{{.PostID}}</td></tr>
  <tr><td>Name</td><td>{{.Name}}</td></tr>
  <tr><td>Email</td><td>{{.Email}}</td></tr>
</table>
<blockquote>{{.Comment}}</blockquote>
<p>Comment id: {{.CommentID}}</p>
`))

func NewMailService(cfg *config.Config, log *logger.Logger) *MailService {
	enabled := cfg.MailEnabled()
	if !enabled {
		log.Warn("MailService disabled: missing SMTP or MODERATOR_EMAIL settings")
	}

	return &MailService{
		Host:      cfg.SMTPHost,
		Port:      cfg.SMTPPort,
		Username:  cfg.SMTPUser,
		Password:  cfg.SMTPPass,
		From:      cfg.SMTPFrom,
		Moderator: cfg.ModeratorEmail,
		Enabled:   enabled,
		log:       log,
		sendMail:  smtp.SendMail,
	}
}

func (s *MailService) buildMessage(to []string, subject, body string) []byte {
	mime := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n\n"
	return []byte(fmt.Sprintf("To: %s\r\n"+
		"From: Comments <%s>\r\n"+
		"Subject: %s\r\n"+
		"%s\r\n%s", strings.Join(to, ","), s.From, subject, mime, body))
}

func (s *MailService) send(to []string, subject, body string) error {
	auth := smtp.PlainAuth("", s.Username, s.Password, s.Host)
	addr := fmt.Sprintf("%s:%s", s.Host, s.Port)
	if err := s.sendMail(addr, auth, s.From, to, s.buildMessage(to, subject, body)); err != nil {
		return fmt.Errorf("send mail to %v: %w", to, err)
	}
	return nil
}

// SendModerationNotice mails the moderator in the background. It is a no-op when mail is disabled.
func (s *MailService) SendModerationNotice(n ModerationNotice) {
	if !s.Enabled {
		return
	}

	var buf bytes.Buffer
	if err := moderationTemplate.Execute(&buf, n); err != nil {
		s.log.Error("render moderation notice: %v", err)
		return
	}

	go func() {
		if err := s.send([]string{s.Moderator}, "New comment awaiting approval", buf.String()); err != nil {
			s.log.Error("%v", err)
			return
		}
		s.log.Info("moderation notice sent for comment %s", n.CommentID)
	}()
}
