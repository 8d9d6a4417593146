// internal/workers/infrastructure/render-invitation/renderer.go
package renderinvitation

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	texttemplate "text/template"

	"github.com/microcosm-cc/bluemonday"

	"influencer-outreach/internal/common/errors"
	"influencer-outreach/internal/models"
)

//go:embed templates/*
var templatesFS embed.FS

const (
	htmlTemplateName = "invitation.html"
	textTemplateName = "invitation.txt"
)

// Renderer turns a recommended contact into the invitation email.
type Renderer struct {
	config *Config
	html   *template.Template
	text   *texttemplate.Template
	policy *bluemonday.Policy
}

// NewRenderer parses the embedded templates, or the HTML template at
// config.TemplatePath when set.
func NewRenderer(config *Config) (*Renderer, error) {
	htmlSource, err := templatesFS.ReadFile("templates/" + htmlTemplateName)
	if err != nil {
		return nil, fmt.Errorf("read embedded template: %w", err)
	}
	name := htmlTemplateName
	if config.TemplatePath != "" {
		htmlSource, err = os.ReadFile(config.TemplatePath)
		if err != nil {
			return nil, fmt.Errorf("read template %s: %w", config.TemplatePath, err)
		}
		name = filepath.Base(config.TemplatePath)
	}

	htmlTmpl, err := template.New(name).Option("missingkey=error").Parse(string(htmlSource))
	if err != nil {
		return nil, fmt.Errorf("parse template %s: %w", name, err)
	}

	textTmpl, err := texttemplate.New(textTemplateName).ParseFS(templatesFS, "templates/"+textTemplateName)
	if err != nil {
		return nil, fmt.Errorf("parse template %s: %w", textTemplateName, err)
	}

	r := &Renderer{
		config: config,
		html:   htmlTmpl,
		text:   textTmpl,
	}
	if config.SanitizeBody {
		r.policy = bodyPolicy()
	}
	return r, nil
}

// bodyPolicy keeps basic formatting and line breaks and strips everything
// else, including scripts and event handlers.
func bodyPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowStandardURLs()
	p.AllowElements("p", "br", "strong", "b", "em", "i", "u", "ul", "ol", "li", "blockquote")
	p.AllowAttrs("href").OnElements("a")
	p.RequireNoFollowOnLinks(true)
	return p
}

// BodyToHTML converts line breaks to <br> and leaves every other character
// as it is.
func BodyToHTML(body string) string {
	body = strings.ReplaceAll(body, "\r\n", "\n")
	return strings.ReplaceAll(body, "\n", "<br>")
}

// Render returns the HTML invitation for contact.
func (r *Renderer) Render(contact models.RecommendedContact) (string, error) {
	body := BodyToHTML(contact.Body)
	if r.policy != nil {
		body = r.policy.Sanitize(body)
	}

	var buf bytes.Buffer
	err := r.html.Execute(&buf, htmlData{
		Name:  contact.Name,
		Body:  template.HTML(body),
		Event: r.config.Event,
	})
	if err != nil {
		return "", errors.NewTemplateRenderFailedError(contact.Email, err)
	}
	return buf.String(), nil
}

// RenderText returns the plain-text alternative of the invitation.
func (r *Renderer) RenderText(contact models.RecommendedContact) (string, error) {
	var buf bytes.Buffer
	err := r.text.ExecuteTemplate(&buf, textTemplateName, textData{
		Name:  contact.Name,
		Body:  strings.ReplaceAll(contact.Body, "\r\n", "\n"),
		Event: r.config.Event,
	})
	if err != nil {
		return "", errors.NewTemplateRenderFailedError(contact.Email, err)
	}
	return buf.String(), nil
}
