// Package server runs an http.Handler with production timeouts and graceful
// shutdown.
//
//	srv, err := server.NewFromConfig(cfg, server.WithLogger(log))
//	if err != nil {
//		return err
//	}
//
//	g, ctx := errgroup.WithContext(ctx)
//	g.Go(srv.Run(ctx, router))
//	return g.Wait()
//
// Run serves until the context is canceled and then calls Stop, which waits
// up to the shutdown timeout for in-flight requests. TLS is enabled when the
// config names both a certificate and a key file, or with WithTLS.
package server
