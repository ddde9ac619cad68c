// Package logging provides structured logging for the gateway.
//
// # Overview
//
// Logging wraps Zap with:
//   - A custom Trace level (-2, below Debug)
//   - Automatic context field injection (tenant, session, request, tool)
//   - Defense-in-depth secret redaction
//
// # Usage
//
//	cfg := logging.NewDefaultConfig()
//	logger, err := logging.NewLogger(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer logger.Sync()
//
//	ctx := logging.WithTenantID(ctx, "prod1")
//	ctx = logging.WithRequestID(ctx, reqID)
//	logger.Info(ctx, "tool dispatched", zap.String("tool", name))
//
// # Secret Redaction
//
// Secrets never reach a log sink:
//  1. Domain primitives (config.Secret) marshal to "[REDACTED]"
//  2. The encoder redacts known field names (access_token, client_secret, ...)
//  3. The encoder redacts values matching configured patterns (bearer tokens)
//
// Use RedactedString or Secret for manual redaction at call sites:
//
//	logger.Info(ctx, "auth received", logging.RedactedString("authorization", authHeader))
//
// # Testing
//
//	tl := logging.NewTestLogger()
//	tl.Info(ctx, "test message", zap.String("key", "value"))
//	tl.AssertLogged(t, zapcore.InfoLevel, "test message")
//	tl.AssertNoSecrets(t)
package logging
</content>
