// Package httpserver provides a thin wrapper around net/http's Server
// with graceful, signal-aware shutdown.
//
// The server stops on context cancellation, SIGINT, or SIGTERM, giving
// in-flight requests a bounded window to finish:
//
//	srv := httpserver.New(
//		httpserver.WithAddr(":8080"),
//		httpserver.WithShutdownTimeout(10*time.Second),
//	)
//	if err := srv.Run(ctx, router); err != nil {
//		log.Fatal(err)
//	}
package httpserver
