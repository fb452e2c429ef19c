// Package health provides liveness and readiness handlers.
//
//	checks := map[string]health.Check{
//		"postgres": pg.Healthcheck(pool),
//		"redis":    redis.Healthcheck(client),
//	}
//	r.Method(http.MethodGet, "/livez", response.Handle(health.Liveness, nil))
//	r.Method(http.MethodGet, "/healthz", response.Handle(health.Readiness(log, 0, checks), nil))
//
// Readiness answers with a JSON Report naming every check and its result.
package health
