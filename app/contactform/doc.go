// Package contactform serves the contact form widget over HTTP.
//
// Every visitor gets a signed cf_visitor cookie. Its Session holds the theme
// and language controllers, a translator following the active language and
// a form.Controller. Pages are rendered on the server; assets/form.js
// upgrades them to JSON calls of the same routes.
//
//	cfg := contactform.Config{}
//	config.MustLoad(&cfg)
//
//	opts, cleanup, err := contactform.Bootstrap(ctx, cfg, log)
//	defer cleanup()
//	if err != nil {
//		return err
//	}
//
//	app, err := contactform.NewApp(cfg, append(opts, contactform.WithLogger(log))...)
//	if err != nil {
//		return err
//	}
//	return app.Run(ctx)
//
// Routes:
//
//	GET  /                      page
//	GET  /state                 widget state as JSON
//	POST /fields/{name}/change  store a value, clearing its error
//	POST /fields/{name}/blur    validate a value
//	POST /submit                validate and deliver the form
//	POST /reset                 clear the form
//	POST /preferences/theme     toggle light and dark
//	POST /preferences/language  switch language
//	GET  /livez                 liveness
//	GET  /healthz               dependency checks
//	GET  /metrics               Prometheus metrics
//	GET  /assets/*              embedded static files
//
// POST routes answer JSON requests with the state and redirect form posts
// back to the page.
package contactform
