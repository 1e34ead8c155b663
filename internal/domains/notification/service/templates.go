package service

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	htmlTemplate "html/template"
	textTemplate "text/template"

	"studio/internal/domains/notification/model"
)

//go:embed templates/*.html templates/*.txt
var templateFS embed.FS

var ErrUnknownTemplate = errors.New("unknown notification template")

var subjects = map[string]string{
	model.TemplateBookingConfirmation: "Booking Confirmed!",
	model.TemplateBookingAlert:        "New Booking Alert!",
	model.TemplateInquiryAlert:        "New Inquiry from Contact Form",
	model.TemplateInquiryReceipt:      "Thank you for contacting {{.studio}}!",
}

// Rendered is a template expanded for one message.
type Rendered struct {
	Subject string
	HTML    string
	Text    string
}

// Renderer expands the embedded templates. Missing data keys render as empty strings.
type Renderer struct {
	html     *htmlTemplate.Template
	text     *textTemplate.Template
	subjects *textTemplate.Template
}

func NewRenderer() (*Renderer, error) {
	html, err := htmlTemplate.New("html").Option("missingkey=zero").ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse html templates: %w", err)
	}

	text, err := textTemplate.New("text").Option("missingkey=zero").ParseFS(templateFS, "templates/*.txt")
	if err != nil {
		return nil, fmt.Errorf("failed to parse text templates: %w", err)
	}

	subjectTemplates := textTemplate.New("subjects").Option("missingkey=zero")
	for name, subject := range subjects {
		if _, err = subjectTemplates.New(name).Parse(subject); err != nil {
			return nil, fmt.Errorf("failed to parse subject of %s: %w", name, err)
		}
	}

	return &Renderer{html: html, text: text, subjects: subjectTemplates}, nil
}

func (r *Renderer) Render(name string, data map[string]string) (Rendered, error) {
	var rendered Rendered

	if _, ok := subjects[name]; !ok {
		return rendered, fmt.Errorf("%w: %s", ErrUnknownTemplate, name)
	}

	var buf bytes.Buffer

	if err := r.subjects.ExecuteTemplate(&buf, name, data); err != nil {
		return rendered, fmt.Errorf("failed to render subject of %s: %w", name, err)
	}

	rendered.Subject = buf.String()
	buf.Reset()

	if err := r.text.ExecuteTemplate(&buf, name+".txt", data); err != nil {
		return rendered, fmt.Errorf("failed to render text of %s: %w", name, err)
	}

	rendered.Text = buf.String()
	buf.Reset()

	if err := r.html.ExecuteTemplate(&buf, name+".html", data); err != nil {
		return rendered, fmt.Errorf("failed to render html of %s: %w", name, err)
	}

	rendered.HTML = buf.String()

	return rendered, nil
}
