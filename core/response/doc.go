// Package response builds HTTP responses as values.
//
// Handlers return a Response and Handle turns them into an http.Handler,
// routing render failures to an error handler:
//
//	r.Method(http.MethodGet, "/", response.Handle(func(r *http.Request) response.Response {
//		return response.Templ(views.Page(state), http.StatusOK)
//	}, response.ErrorHandler))
//
// Errors become HTTPError values. An error implementing StatusCode() int is
// mapped to the predefined error for that status; anything else is a 500.
// JSONErrorHandler writes the same errors as JSON:
//
//	{"code":"not_found","message":"Not Found"}
package response
