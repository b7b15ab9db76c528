// Package requestid attaches a correlation ID to each HTTP request.
//
// Middleware reuses a well-formed X-Request-ID sent by the client or
// generates a UUID, stores it in the request context and echoes it back in
// the response. LoggerExtractor plugs into logger.WithContextExtractors so
// toast delivery logs (restored, persisted, failed) carry the ID of the
// request that produced them.
//
//	log := logger.New(logger.WithContextExtractors(requestid.LoggerExtractor()))
//	r := chi.NewRouter()
//	r.Use(requestid.Middleware)
package requestid
