package service

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/user/streamflix/internal/config"
)

const elasticAPIURL = "https://api.elasticemail.com/v2/email/send"

// ElasticMailer 基于 Elastic Email HTTP API 的邮件发送
// 使用 HTTP API 而非 SMTP，程序化发送更可靠
type ElasticMailer struct {
	apiKey   string
	from     string
	fromName string
	endpoint string
	client   *http.Client
}

// NewElasticMailer 创建邮件发送器
func NewElasticMailer(cfg *config.Config) *ElasticMailer {
	return &ElasticMailer{
		apiKey:   cfg.MailAPIKey,
		from:     cfg.MailFrom,
		fromName: cfg.MailFromName,
		endpoint: elasticAPIURL,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

// SendResetCode 发送密码重置验证码
func (m *ElasticMailer) SendResetCode(toEmail, code string, ttl time.Duration) error {
	subject := "密码重置验证码"
	body := fmt.Sprintf(`您好，

您正在申请重置密码，验证码为：

    %s

验证码 %d 分钟内有效。如果这不是您本人的操作，请忽略本邮件。`,
		code, int(ttl.Minutes()))

	return m.send(toEmail, subject, body)
}

func (m *ElasticMailer) send(to, subject, body string) error {
	form := url.Values{}
	form.Set("apikey", m.apiKey)
	form.Set("from", m.from)
	form.Set("fromName", m.fromName)
	form.Set("to", to)
	form.Set("subject", subject)
	form.Set("bodyText", body)

	resp, err := m.client.Post(m.endpoint, "application/x-www-form-urlencoded",
		strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("邮件请求失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("邮件发送失败，状态码 %d: %s", resp.StatusCode, data)
	}
	return nil
}
