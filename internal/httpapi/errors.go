package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dileep-u-k/agent-fetch/internal/gateway"
)

// abortWithError maps gateway errors to HTTP statuses: caller mistakes are
// 400, lookups that found nothing are 404, provider trouble is 502, and
// anything unrecognized is 500.
func abortWithError(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}

func statusFor(err error) int {
	var kind gateway.ErrorKind

	var werr *gateway.WeatherError
	var cerr *gateway.CryptoError
	switch {
	case errors.As(err, &werr):
		kind = werr.Kind
	case errors.As(err, &cerr):
		kind = cerr.Kind
	default:
		return http.StatusInternalServerError
	}

	switch kind {
	case gateway.KindInvalidInput:
		return http.StatusBadRequest
	case gateway.KindNotFound, gateway.KindUnknownCoin:
		return http.StatusNotFound
	case gateway.KindRateLimited, gateway.KindBadStatus, gateway.KindNetwork:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// corsMiddleware allows the dashboard frontend (served from another port)
// to call the API.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
