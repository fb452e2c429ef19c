package contactform

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"
)

const lottieScriptURL = "https://cdnjs.cloudflare.com/ajax/libs/lottie-web/5.12.2/lottie.min.js"

// htmlWriter stops writing after the first error.
type htmlWriter struct {
	ctx context.Context
	w   io.Writer
	err error
}

func (h *htmlWriter) raw(ss ...string) {
	for _, s := range ss {
		if h.err != nil {
			return
		}
		_, h.err = io.WriteString(h.w, s)
	}
}

func (h *htmlWriter) text(s string) {
	h.raw(templ.EscapeString(s))
}

func (h *htmlWriter) attrs(a templ.Attributer) {
	if h.err == nil {
		h.err = templ.RenderAttributes(h.ctx, h.w, a)
	}
}

func (h *htmlWriter) component(c templ.Component) {
	if h.err == nil {
		h.err = c.Render(h.ctx, h.w)
	}
}

func component(fn func(h *htmlWriter)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{ctx: ctx, w: w}
		fn(h)
		return h.err
	})
}

// Page renders the whole document.
func Page(p PageView) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<!DOCTYPE html><html`)
		h.attrs(templ.OrderedAttributes{
			{Key: "lang", Value: p.State.Language},
			{Key: "dir", Value: p.State.Direction},
			{Key: "class", Value: templ.KV("dark", p.Dark)},
		})
		h.raw(`><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.raw(`<title>`)
		h.text(p.Title)
		h.raw(`</title><link rel="stylesheet" href="/assets/style.css"></head><body><main>`)
		h.component(templ.Join(
			header(p),
			languageSelector(p),
			themeToggle(p),
			formView(p.State, p.ResetLabel),
			animation(),
			toast(p.State.Toast),
			templ.JSONScript("form-state", p.State),
		))
		h.raw(`</main><script src="`, lottieScriptURL, `" defer></script>`)
		h.raw(`<script src="/assets/form.js" defer></script></body></html>`)
	})
}

func header(p PageView) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<header><span class="badge">`)
		h.text(p.Badge)
		h.raw(`</span><h1>`)
		h.text(p.Title)
		h.raw(`</h1><p>`)
		h.text(p.Subtitle)
		h.raw(`</p></header>`)
	})
}

func languageSelector(p PageView) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<nav class="languages"`)
		h.attrs(templ.OrderedAttributes{{Key: "aria-label", Value: p.LanguageLabel}})
		h.raw(`>`)
		for _, l := range p.Languages {
			h.raw(`<form method="post" action="/preferences/language"><input type="hidden" name="language"`)
			h.attrs(templ.OrderedAttributes{{Key: "value", Value: l.Code}})
			h.raw(`><button type="submit"`)
			h.attrs(templ.OrderedAttributes{
				{Key: "data-language", Value: l.Code},
				{Key: "aria-current", Value: templ.KV("true", l.Current)},
			})
			h.raw(`>`)
			if l.Flag != "" {
				h.text(l.Flag)
				h.raw(` `)
			}
			h.text(l.Label)
			h.raw(`</button></form>`)
		}
		h.raw(`</nav>`)
	})
}

func themeToggle(p PageView) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<form method="post" action="/preferences/theme"><button type="submit" id="theme-toggle"`)
		h.attrs(templ.OrderedAttributes{{Key: "aria-label", Value: p.ThemeToggle}})
		h.raw(`>`)
		if p.Dark {
			h.raw(`☀️`)
		} else {
			h.raw(`🌙`)
		}
		h.raw(`</button></form>`)
	})
}

func formView(s StateView, resetLabel string) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<form id="contact-form" method="post" action="/submit" novalidate>`)
		for _, f := range s.Fields {
			h.component(fieldView(f))
		}
		h.raw(`<div class="actions"><button type="submit" id="submit"`)
		h.attrs(templ.OrderedAttributes{{Key: "disabled", Value: s.SubmissionInFlight || s.Submitted}})
		h.raw(`>`)
		h.text(s.SubmitLabel)
		h.raw(`</button><button type="submit" id="reset" formaction="/reset">`)
		h.text(resetLabel)
		h.raw(`</button></div></form>`)
	})
}

func fieldView(f FieldView) templ.Component {
	return component(func(h *htmlWriter) {
		errID := f.Name + "-error"

		h.raw(`<div class="field"><label`)
		h.attrs(templ.OrderedAttributes{{Key: "for", Value: f.Name}})
		h.raw(`>`)
		h.text(f.Label)
		if f.Required {
			h.raw(` <span class="required" aria-hidden="true">*</span>`)
		}
		h.raw(`</label>`)

		attrs := templ.OrderedAttributes{
			{Key: "id", Value: f.Name},
			{Key: "name", Value: f.Name},
			{Key: "data-field", Value: f.Name},
			{Key: "placeholder", Value: f.Placeholder},
			{Key: "required", Value: f.Required},
		}
		if f.Error != "" {
			attrs = append(attrs,
				templ.KeyValue[string, any]{Key: "aria-invalid", Value: "true"},
				templ.KeyValue[string, any]{Key: "aria-describedby", Value: errID},
			)
		}

		if f.Kind == "textarea" {
			h.raw(`<textarea rows="4"`)
			h.attrs(attrs)
			h.raw(`>`)
			h.text(f.Value)
			h.raw(`</textarea>`)
		} else {
			attrs = append(attrs,
				templ.KeyValue[string, any]{Key: "type", Value: f.Kind},
				templ.KeyValue[string, any]{Key: "value", Value: f.Value},
			)
			h.raw(`<input`)
			h.attrs(attrs)
			h.raw(`>`)
		}

		h.raw(`<p class="error"`)
		h.attrs(templ.OrderedAttributes{
			{Key: "id", Value: errID},
			{Key: "hidden", Value: f.Error == ""},
		})
		h.raw(`>`)
		h.text(f.Error)
		h.raw(`</p></div>`)
	})
}

func animation() templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<div id="animation" aria-hidden="true"`)
		h.attrs(templ.OrderedAttributes{
			{Key: "data-src", Value: "/assets/animation.json"},
			{Key: "data-loop", Value: strconv.FormatBool(true)},
			{Key: "data-autoplay", Value: strconv.FormatBool(true)},
		})
		h.raw(`></div>`)
	})
}

func toast(message string) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<div id="toast" role="status" aria-live="polite"`)
		h.attrs(templ.OrderedAttributes{{Key: "hidden", Value: message == ""}})
		h.raw(`>`)
		h.text(message)
		h.raw(`</div>`)
	})
}
