package server

import (
	"artvista/internal/config"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo, cfg config.Config, h Handlers) {
	h.Auth.RegisterRoutes(e, cfg)
	h.Art.RegisterRoutes(e, cfg)
	h.Cart.RegisterRoutes(e, cfg)
	h.Wishlist.RegisterRoutes(e, cfg)
}
