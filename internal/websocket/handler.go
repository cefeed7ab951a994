package websocket

import (
	"log"
	"net/http"
	"os"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Dashboard frontends connect from their own origin
		return true
	},
}

// HandleWebSocket upgrades an HTTP connection to a dashboard session. The
// gateway JWT arrives as a query parameter since browsers cannot set headers
// on websocket upgrades.
func HandleWebSocket(hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tokenString := r.URL.Query().Get("token")
		if tokenString == "" {
			log.Println("❌ No token on WebSocket upgrade")
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		jwtSecret := os.Getenv("APP_JWT_SECRET")
		if jwtSecret == "" {
			log.Println("❌ JWT secret not configured")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(jwtSecret), nil
		})
		if err != nil || !token.Valid {
			log.Printf("❌ Invalid token on WebSocket upgrade: %v", err)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		email := ""
		if claims, ok := token.Claims.(jwt.MapClaims); ok {
			if v, ok := claims["email"].(string); ok {
				email = v
			}
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("❌ WebSocket upgrade failed: %v", err)
			return
		}

		client := NewClient(uuid.NewString(), email, conn, hub)
		hub.register <- client

		go client.WritePump()
		go client.ReadPump()

		log.Printf("✅ WebSocket connection established for session: %s (%s)", client.ID, email)
	}
}
