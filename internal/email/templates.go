package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

const subjectLeadNotificationFmt = "New quote request from %s"

type leadNotificationTemplateData struct {
	Title       string
	Heading     string
	WidgetName  string
	ContactName string
	Email       string
	Phone       string
	Answers     map[string]interface{}
	Summary     map[string]interface{}
	HasSummary  bool
}

func renderEmailTemplate(name string, data any) (string, error) {
	templates := []string{"templates/base.html", "templates/" + name}
	tmpl, err := template.New("base.html").ParseFS(templateFS, templates...)
	if err != nil {
		return "", fmt.Errorf("parse email template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "email", data); err != nil {
		return "", fmt.Errorf("execute email template %s: %w", name, err)
	}
	return buf.String(), nil
}

func leadNotificationContent(data LeadEmailData) (subject, html string, err error) {
	contact := data.ContactName
	if contact == "" {
		contact = "a website visitor"
	}
	subject = fmt.Sprintf(subjectLeadNotificationFmt, contact)

	html, err = renderEmailTemplate("lead_notification.html", leadNotificationTemplateData{
		Title:       "New quote request",
		Heading:     "New quote request",
		WidgetName:  data.WidgetName,
		ContactName: data.ContactName,
		Email:       data.Email,
		Phone:       data.Phone,
		Answers:     data.Answers,
		Summary:     data.Summary,
		HasSummary:  len(data.Summary) > 0,
	})
	return subject, html, err
}
