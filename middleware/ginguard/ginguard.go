// Package ginguard adapts the route-guard policy to gin.
package ginguard

import (
	"net/http"

	goGuard "github.com/MrEthical07/goGuard"
	"github.com/MrEthical07/goGuard/middleware"
	"github.com/gin-gonic/gin"
)

// Guard returns the route guard as a gin middleware. Policy and redirect
// targets are identical to the net/http variant.
func Guard(engine *goGuard.Engine) gin.HandlerFunc {
	cfg := engine.Config().Guard
	metrics := engine.Metrics()

	return func(c *gin.Context) {
		decision, target := middleware.Evaluate(cfg, c.Request.URL.Path, engine.IsAuthenticated(c.Request))
		switch decision {
		case middleware.DecisionSkip:
			metrics.Inc(goGuard.MetricGuardSkipped)
			c.Next()
		case middleware.DecisionRedirectLogin:
			metrics.Inc(goGuard.MetricGuardRedirectLogin)
			c.Redirect(http.StatusTemporaryRedirect, target)
			c.Abort()
		case middleware.DecisionRedirectDashboard:
			metrics.Inc(goGuard.MetricGuardRedirectDashboard)
			c.Redirect(http.StatusTemporaryRedirect, target)
			c.Abort()
		default:
			metrics.Inc(goGuard.MetricGuardAllowed)
			c.Next()
		}
	}
}
