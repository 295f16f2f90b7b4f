package webhook

import (
	"net/http"

	"paisabot/internal/httputil"
	"paisabot/internal/logging"
	"paisabot/internal/svc"
)

// VerifyHandler answers the provider's subscription handshake. A matching
// mode and token echoes the challenge verbatim; a mismatch is 403 and the
// challenge is never echoed. A request with no hub parameters at all is a
// bare health probe.
func VerifyHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		mode := q.Get("hub.mode")
		token := q.Get("hub.verify_token")
		challenge := q.Get("hub.challenge")

		if mode == "" && token == "" && challenge == "" {
			httputil.OkJSON(w, map[string]string{"status": "ok", "service": "paisabot"})
			return
		}

		if svcCtx.Config.VerifyToken == "" {
			httputil.InternalError(w, "verify token not configured")
			return
		}

		if mode == "subscribe" && token == svcCtx.Config.VerifyToken {
			httputil.PlainText(w, http.StatusOK, challenge)
			return
		}

		logging.Warnf("webhook verification rejected: mode=%q", mode)
		httputil.PlainText(w, http.StatusForbidden, "Forbidden")
	}
}
