package http

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/ethereum/go-ethereum/rpc"
	"github.com/gin-gonic/gin"
	"github.com/quantumauth-io/quantum-go-utils/log"

	"github.com/quantumauth-io/credential-minter/internal/ipfs"
	"github.com/quantumauth-io/credential-minter/internal/session"
	"github.com/quantumauth-io/credential-minter/internal/validate"
	"github.com/quantumauth-io/credential-minter/internal/wallet"
)

func isLoopbackRequest(r *http.Request) bool {
	ra := r.RemoteAddr

	h, _, err := net.SplitHostPort(ra)
	if err != nil {
		ip := net.ParseIP(ra)
		return ip != nil && ip.IsLoopback()
	}
	ip := net.ParseIP(h)
	return ip != nil && ip.IsLoopback()
}

func isSafeLocalHost(hostport string) bool {
	host := hostport
	if h, _, err := net.SplitHostPort(hostport); err == nil {
		host = h
	}
	host = strings.ToLower(host)
	return host == "127.0.0.1" || host == "localhost" || host == "::1"
}

func normalizeOrigin(in string) string {
	in = strings.TrimSpace(in)
	if in == "" {
		return ""
	}
	u, err := url.Parse(in)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	return fmt.Sprintf("%s://%s", strings.ToLower(u.Scheme), strings.ToLower(u.Host))
}

func uniqueOrigins(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		o := normalizeOrigin(s)
		if o == "" {
			continue
		}
		if _, ok := seen[o]; ok {
			continue
		}
		seen[o] = struct{}{}
		out = append(out, o)
	}
	return out
}

func isTxHash(s string) bool {
	if len(s) != 66 || !strings.HasPrefix(s, "0x") {
		return false
	}
	for _, c := range s[2:] {
		if !(c >= '0' && c <= '9') && !(c >= 'a' && c <= 'f') && !(c >= 'A' && c <= 'F') {
			return false
		}
	}
	return true
}

// statusFor maps a service error to the HTTP status returned to the UI.
func statusFor(err error) int {
	var (
		ve     *validate.ValidationError
		se     *ipfs.StatusError
		rpcErr rpc.Error
	)
	switch {
	case errors.As(err, &ve), errors.Is(err, wallet.ErrInvalidKey):
		return http.StatusBadRequest
	case errors.Is(err, wallet.ErrUnknownAccount):
		return http.StatusNotFound
	case errors.Is(err, session.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, session.ErrNotOwner):
		return http.StatusForbidden
	case errors.Is(err, session.ErrUserRejected), errors.Is(err, session.ErrRequestPending):
		return http.StatusConflict
	case errors.Is(err, session.ErrNotConnected):
		return http.StatusPreconditionFailed
	case errors.Is(err, ipfs.ErrNotConfigured):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.As(err, &se) && se.Status == http.StatusNotFound:
		return http.StatusNotFound
	case errors.As(err, &rpcErr):
		switch rpcErr.ErrorCode() {
		case wallet.CodeUserRejected, wallet.CodeRequestPending:
			return http.StatusConflict
		case wallet.CodeUnauthorized:
			return http.StatusUnauthorized
		case wallet.CodeUnrecognizedChain:
			return http.StatusNotFound
		case wallet.CodeInvalidParams:
			return http.StatusBadRequest
		}
	}
	return http.StatusBadGateway
}

func writeError(c *gin.Context, err error) {
	status := statusFor(err)
	body := gin.H{JSONKeyError: err.Error()}

	var ve *validate.ValidationError
	if errors.As(err, &ve) {
		body[JSONKeyField] = ve.Field
	}
	var rpcErr rpc.Error
	if errors.As(err, &rpcErr) {
		body[JSONKeyCode] = rpcErr.ErrorCode()
	}

	if status >= http.StatusInternalServerError {
		log.Warn("request failed",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", status,
			"request_id", c.GetString(ContextRequestID),
			"error", err,
		)
	}
	c.AbortWithStatusJSON(status, body)
}
