package contactform

import (
	"context"
	"fmt"
	"html"

	"github.com/a-h/templ"
	"github.com/microcosm-cc/bluemonday"

	"github.com/dmitrymomot/contactform/core/email"
	"github.com/dmitrymomot/contactform/core/form"
	"github.com/dmitrymomot/contactform/core/i18n"
)

const mailTag = "contact-form"

// MailSubmitter delivers submissions as an email to a fixed recipient.
// Submitted text is stripped of markup before it is rendered.
type MailSubmitter struct {
	sender    email.EmailSender
	resolver  *i18n.Resolver
	registry  *form.Registry
	recipient string
	language  string
	policy    *bluemonday.Policy
}

// NewMailSubmitter creates a submitter writing mails in the resolver's
// default language.
func NewMailSubmitter(sender email.EmailSender, resolver *i18n.Resolver, registry *form.Registry, recipient string) (*MailSubmitter, error) {
	if sender == nil || resolver == nil || registry == nil {
		return nil, ErrMissingDependency
	}
	if recipient == "" {
		return nil, ErrMissingRecipient
	}

	return &MailSubmitter{
		sender:    sender,
		resolver:  resolver,
		registry:  registry,
		recipient: recipient,
		language:  resolver.DefaultLanguage(),
		policy:    bluemonday.StrictPolicy(),
	}, nil
}

// Submit implements form.Submitter.
func (m *MailSubmitter) Submit(ctx context.Context, values map[string]string) error {
	rows := make([]mailRow, 0, m.registry.Len())
	for _, name := range m.registry.Names() {
		rows = append(rows, mailRow{
			Label: m.resolver.T(m.language, form.LabelKey(name)),
			Value: m.plain(values[name]),
		})
	}

	body, err := templ.ToGoHTML(ctx, mailBody(rows))
	if err != nil {
		return fmt.Errorf("render mail body: %w", err)
	}

	params := email.SendEmailParams{
		SendTo:   m.recipient,
		Subject:  m.resolver.T(m.language, "mail.subject", i18n.M{"name": m.plain(values["name"])}),
		BodyHTML: string(body),
		Tag:      mailTag,
	}
	if addr := values["email"]; email.IsValidAddress(addr) {
		params.ReplyTo = addr
	}

	return m.sender.SendEmail(ctx, params)
}

// plain strips markup. The policy output is entity-encoded, so it is
// decoded here and escaped once when rendered.
func (m *MailSubmitter) plain(s string) string {
	return html.UnescapeString(m.policy.Sanitize(s))
}

type mailRow struct {
	Label string
	Value string
}

func mailBody(rows []mailRow) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<table cellpadding="6" style="border-collapse:collapse">`)
		for _, row := range rows {
			h.raw(`<tr><th align="left" valign="top">`)
			h.text(row.Label)
			h.raw(`</th><td style="white-space:pre-wrap">`)
			h.text(row.Value)
			h.raw(`</td></tr>`)
		}
		h.raw(`</table>`)
	})
}
