package email

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/qs3c/market_admin_server/config"
)

type Service struct {
	cfg *config.EmailConfig
}

func NewService(cfg *config.EmailConfig) *Service {
	return &Service{cfg: cfg}
}

// SendNewsletter 发送一期通讯
func (s *Service) SendNewsletter(to, subject, htmlBody string) error {
	return s.sendHTML(to, subject, htmlBody)
}

// SendLowPotWarning 发送公共池余额预警邮件
func (s *Service) SendLowPotWarning(to string, balance, threshold int) error {
	subject := "公共池余额预警 - 闲置集市管理后台"
	body := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <h2 style="color: #dc2626;">公共池余额预警</h2>
        <p>您好，</p>
        <p>社区公共池当前余额已低于预警阈值：</p>
        <div style="background-color: #fef2f2; padding: 15px; text-align: center; font-size: 24px; font-weight: bold; margin: 20px 0;">
            %d / %d
        </div>
        <p>余额耗尽后用户将无法通过公共池获得免费发布额度，请及时充值或调整阈值。</p>
        <hr style="border: none; border-top: 1px solid #e5e7eb; margin: 20px 0;">
        <p style="color: #6b7280; font-size: 12px;">此邮件由系统自动发送，请勿回复。</p>
    </div>
</body>
</html>
`, balance, threshold)

	return s.sendHTML(to, subject, body)
}

// SendGrantNotice 通知用户积分已到账
func (s *Service) SendGrantNotice(to, username string, credits int) error {
	subject := "积分到账通知 - 闲置集市"
	body := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <h2 style="color: #2563eb;">积分到账</h2>
        <p>您好，%s！</p>
        <p>管理员已向您的账户发放积分：</p>
        <div style="background-color: #f3f4f6; padding: 15px; text-align: center; font-size: 24px; font-weight: bold; margin: 20px 0;">
            +%d
        </div>
        <p>积分可用于发布付费信息，祝您交易愉快！</p>
        <hr style="border: none; border-top: 1px solid #e5e7eb; margin: 20px 0;">
        <p style="color: #6b7280; font-size: 12px;">此邮件由系统自动发送，请勿回复。</p>
    </div>
</body>
</html>
`, username, credits)

	return s.sendHTML(to, subject, body)
}

// sendHTML 发送 HTML 邮件
func (s *Service) sendHTML(to, subject, body string) error {
	headers := make(map[string]string)
	headers["From"] = s.cfg.From
	headers["To"] = to
	headers["Subject"] = subject
	headers["MIME-Version"] = "1.0"
	headers["Content-Type"] = "text/html; charset=UTF-8"

	var msg strings.Builder
	for k, v := range headers {
		msg.WriteString(fmt.Sprintf("%s: %s\r\n", k, v))
	}
	msg.WriteString("\r\n")
	msg.WriteString(body)

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.SMTPHost)
	addr := fmt.Sprintf("%s:%d", s.cfg.SMTPHost, s.cfg.SMTPPort)

	return smtp.SendMail(addr, auth, s.cfg.From, []string{to}, []byte(msg.String()))
}
