package handler

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/rupsadmin/storefront-admin-go/internal/domain"
	"github.com/rupsadmin/storefront-admin-go/internal/service"
)

// ============================================================
// Session endpoints
// ============================================================

// authStateHandler returns the resolver's current snapshot.
func authStateHandler(resolver *service.SessionResolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, resolver.State())
	}
}

// authEventHandler feeds an auth-state change into the resolver. The session
// attached to the event is always the caller's own verified session, never
// one taken from the request body.
func authEventHandler(resolver *service.SessionResolver, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, span := tracer.Start(r.Context(), "Handler.AuthEvent")
		defer span.End()

		var req struct {
			Type string `json:"type"`
		}
		if err := decodeBody(r, &req); err != nil {
			handleServiceError(w, err, logger)
			return
		}

		evType := domain.AuthEventType(req.Type)
		switch evType {
		case domain.AuthEventInitialSession, domain.AuthEventSignedIn,
			domain.AuthEventSignedOut, domain.AuthEventTokenRefreshed:
		default:
			handleServiceError(w, &domain.ErrValidation{Field: "type", Message: "unknown auth event type"}, logger)
			return
		}

		ev := domain.AuthEvent{Type: evType}
		if evType != domain.AuthEventSignedOut {
			ev.Session = SessionFromContext(r.Context())
		}
		resolver.Dispatch(ev)

		writeJSON(w, http.StatusAccepted, map[string]string{"status": "accepted"})
	}
}

// signOutHandler revokes the caller's session.
func signOutHandler(resolver *service.SessionResolver, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "Handler.SignOut")
		defer span.End()

		if err := resolver.SignOut(ctx); err != nil {
			logger.Warn("signout: provider revocation failed", zap.Error(err))
		}
		// Local state is cleared regardless of the provider call.
		writeJSON(w, http.StatusOK, map[string]string{"status": "signed_out"})
	}
}
