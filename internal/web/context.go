package web

import (
	"context"
	"net/http"

	"github.com/JonMunkholm/celleditors/internal/core"
	webmw "github.com/JonMunkholm/celleditors/internal/web/middleware"
)

// withRequestMetadata attaches the client address and User-Agent so
// committed edits carry them into the grid history.
func withRequestMetadata(r *http.Request) context.Context {
	ctx := core.ContextWithIPAddress(r.Context(), webmw.ClientIP(r))
	return core.ContextWithUserAgent(ctx, r.UserAgent())
}
