package middleware

import (
	"github.com/gin-gonic/gin"
	"strconv"

	"github.com/weihanng/techtrove/internal/application"
)

// CartCount decorates authenticated responses with the user's total
// cart unit count in the X-Cart-Count header, the JSON-API analogue of
// the cart badge. It reads the count before the handler runs, so it
// belongs on routes that leave the cart alone; cart-mutating handlers
// write the header themselves. Anonymous requests get 0. Failures are
// swallowed; the badge is cosmetic.
func CartCount(carts *application.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString(CtxUserIDKey)
		if uid == "" {
			c.Header("X-Cart-Count", "0")
			c.Next()
			return
		}
		n, err := carts.Count(uid)
		if err != nil {
			n = 0
		}
		c.Header("X-Cart-Count", strconv.Itoa(n))
		c.Next()
	}
}
