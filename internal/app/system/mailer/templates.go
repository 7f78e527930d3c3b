// internal/app/system/mailer/templates.go
package mailer

import (
	"bytes"
	"html/template"
	"strings"
	"time"
)

// ContactNotificationData contains the data for a new-submission
// notification sent to the configured admin recipients.
type ContactNotificationData struct {
	AppName     string
	FullName    string
	Email       string
	Phone       string
	Subject     string
	Message     string
	Priority    string
	SubmittedAt time.Time
	AdminURL    string
}

// ContactNotificationEmail generates both plain text and HTML versions of
// the admin notification for a contact-form submission.
func ContactNotificationEmail(data ContactNotificationData) (textBody, htmlBody string) {
	var b strings.Builder
	b.WriteString("New contact submission on " + data.AppName + "\n\n")
	b.WriteString("From:    " + data.FullName + " <" + data.Email + ">\n")
	if data.Phone != "" {
		b.WriteString("Phone:   " + data.Phone + "\n")
	}
	b.WriteString("Subject: " + data.Subject + "\n")
	b.WriteString("Priority: " + data.Priority + "\n")
	b.WriteString("Received: " + data.SubmittedAt.Format("2006-01-02 15:04 MST") + "\n\n")
	b.WriteString(data.Message + "\n")
	if data.AdminURL != "" {
		b.WriteString("\nManage submissions: " + data.AdminURL + "\n")
	}
	textBody = b.String()

	var buf bytes.Buffer
	contactHTMLTmpl.Execute(&buf, data)
	htmlBody = buf.String()

	return textBody, htmlBody
}

var contactHTMLTmpl = template.Must(template.New("contact_notification").Funcs(template.FuncMap{
	"fmtTime": func(t time.Time) string { return t.Format("2006-01-02 15:04 MST") },
}).Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>New Contact Submission</title>
</head>
<body style="margin: 0; padding: 0; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif; background-color: #f4f4f5;">
  <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="background-color: #f4f4f5;">
    <tr>
      <td align="center" style="padding: 40px 20px;">
        <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="max-width: 480px; background-color: #ffffff; border-radius: 8px; box-shadow: 0 1px 3px rgba(0,0,0,0.1);">
          <!-- Header -->
          <tr>
            <td style="padding: 32px 32px 24px 32px; text-align: center; border-bottom: 1px solid #e4e4e7;">
              <h1 style="margin: 0; font-size: 24px; font-weight: 600; color: #18181b;">{{.AppName}}</h1>
            </td>
          </tr>
          <!-- Content -->
          <tr>
            <td style="padding: 32px;">
              <h2 style="margin: 0 0 16px 0; font-size: 20px; font-weight: 600; color: #18181b;">New Contact Submission</h2>
              {{if eq .Priority "high"}}
              <p style="margin: 0 0 16px 0;">
                <span style="display: inline-block; padding: 4px 12px; background-color: #fef2f2; color: #dc2626; font-size: 12px; font-weight: 600; border-radius: 9999px;">HIGH PRIORITY</span>
              </p>
              {{end}}
              <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="margin: 0 0 24px 0;">
                <tr>
                  <td style="padding: 6px 0; font-size: 14px; color: #71717a; width: 90px;">From</td>
                  <td style="padding: 6px 0; font-size: 14px; color: #18181b;">{{.FullName}} &lt;{{.Email}}&gt;</td>
                </tr>
                {{if .Phone}}
                <tr>
                  <td style="padding: 6px 0; font-size: 14px; color: #71717a;">Phone</td>
                  <td style="padding: 6px 0; font-size: 14px; color: #18181b;">{{.Phone}}</td>
                </tr>
                {{end}}
                <tr>
                  <td style="padding: 6px 0; font-size: 14px; color: #71717a;">Subject</td>
                  <td style="padding: 6px 0; font-size: 14px; color: #18181b;">{{.Subject}}</td>
                </tr>
                <tr>
                  <td style="padding: 6px 0; font-size: 14px; color: #71717a;">Received</td>
                  <td style="padding: 6px 0; font-size: 14px; color: #18181b;">{{fmtTime .SubmittedAt}}</td>
                </tr>
              </table>
              <p style="margin: 0 0 24px 0; padding: 16px; background-color: #fafafa; border-radius: 6px; font-size: 15px; line-height: 1.6; color: #52525b; white-space: pre-wrap;">{{.Message}}</p>
              {{if .AdminURL}}
              <table role="presentation" width="100%" cellspacing="0" cellpadding="0">
                <tr>
                  <td align="center" style="padding: 8px 0 0 0;">
                    <a href="{{.AdminURL}}" style="display: inline-block; padding: 14px 32px; background-color: #4f46e5; color: #ffffff; text-decoration: none; font-size: 15px; font-weight: 600; border-radius: 6px;">Manage Submissions</a>
                  </td>
                </tr>
              </table>
              {{end}}
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`))
