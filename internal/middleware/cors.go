package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// corsHeaders is the exact surface the cadastro frontend needs: bearer auth,
// JSON bodies and the request id echoed back for support tickets. Preflight
// results are cacheable for 12h.
var corsHeaders = [...][2]string{
	{"Access-Control-Allow-Origin", "*"},
	{"Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS"},
	{"Access-Control-Allow-Headers", "Authorization, Content-Type, X-Request-ID"},
	{"Access-Control-Expose-Headers", "X-Request-ID"},
	{"Access-Control-Max-Age", "43200"},
}

func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range corsHeaders {
			c.Header(h[0], h[1])
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
