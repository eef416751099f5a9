package handler

import (
	"mall-pos/internal/middleware"
	"mall-pos/internal/model"
	"mall-pos/internal/service"
	"mall-pos/internal/ws"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

// RequireWSUpgrade authenticates the ?token= query and rejects plain HTTP
// requests. Browsers cannot set headers on a websocket handshake.
func RequireWSUpgrade(authService service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return c.SendStatus(fiber.StatusUpgradeRequired)
		}

		identity, err := authService.Authenticate(c.Query("token"))
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
		}

		c.Locals(middleware.IdentityKey, identity)
		return c.Next()
	}
}

// LiveEvents subscribes the connection to its mall's events until the peer goes away
func LiveEvents(hub *ws.Hub) fiber.Handler {
	return websocket.New(func(c *websocket.Conn) {
		identity, ok := c.Locals(middleware.IdentityKey).(*model.Identity)
		if !ok {
			c.Close()
			return
		}

		client := &ws.Client{MallID: identity.MallID, Conn: c}
		if !hub.Join(client) {
			c.Close()
			return
		}
		defer hub.Leave(client)

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	})
}
