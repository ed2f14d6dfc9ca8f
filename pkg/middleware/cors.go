package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/cors"
)

// CORS adapts go-chi/cors to gin. A "*" entry allows any origin; with
// credentials enabled the request Origin is echoed instead of "*", since
// browsers reject a wildcard together with Allow-Credentials.
func CORS(origins []string, allowCredentials bool) gin.HandlerFunc {
	opts := cors.Options{
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           300,
	}

	anyOrigin := false
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		o = strings.TrimSpace(o)
		if o == "*" {
			anyOrigin = true
		} else if o != "" {
			allowed[o] = true
		}
	}
	if anyOrigin && !allowCredentials {
		opts.AllowedOrigins = []string{"*"}
	} else {
		opts.AllowOriginFunc = func(_ *http.Request, origin string) bool {
			return anyOrigin || allowed[origin]
		}
	}
	return wrapHTTP(cors.New(opts).Handler)
}

// wrapHTTP runs a net/http middleware inside the gin chain. The gin chain
// continues only if the middleware called its next handler; otherwise the
// middleware already answered (preflight) and the request is aborted.
func wrapHTTP(mw func(http.Handler) http.Handler) gin.HandlerFunc {
	return func(c *gin.Context) {
		passed := false
		mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			passed = true
			c.Request = r
			c.Next()
		})).ServeHTTP(c.Writer, c.Request)
		if !passed {
			c.Abort()
		}
	}
}
