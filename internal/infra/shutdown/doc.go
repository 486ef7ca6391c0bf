// Package shutdown runs cleanup hooks once when the CLI exits, whether
// the command finished or SIGINT/SIGTERM arrived.
//
// Typical wiring:
//
//	h := shutdown.NewHandler(5 * time.Second)
//	ctx, stop := h.NotifyContext(context.Background())
//	defer stop()
//	defer h.Shutdown()
//	h.OnShutdown("credentials", store.Close)
package shutdown
