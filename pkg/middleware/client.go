package middleware

import (
	"net"
	"net/http"

	"pizza-service/pkg/utils"
)

// ClientInfo records the caller's user agent and address so new sessions can
// be attributed to a device. Run it after chi's RealIP.
func ClientInfo(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := r.RemoteAddr
		if host, _, err := net.SplitHostPort(ip); err == nil {
			ip = host
		}

		ctx := utils.SetClientInfo(r.Context(), utils.ClientInfo{
			UserAgent: r.UserAgent(),
			IPAddress: ip,
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
