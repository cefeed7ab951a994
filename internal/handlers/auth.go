package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"dispatch-gateway/internal/upstream"
	"dispatch-gateway/pkg/utils"

	"github.com/golang-jwt/jwt/v5"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	OK    bool           `json:"ok"`
	Token string         `json:"token,omitempty"`
	User  *upstream.User `json:"user,omitempty"`
}

// Login forwards credentials to the fleet API and, on success, issues a
// gateway JWT for the dashboard session. The upstream bearer token stays
// inside the gateway.
func Login(api *upstream.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		log.Printf("🔐 Login attempt for: %s", req.Email)

		jwtSecret := os.Getenv("APP_JWT_SECRET")
		if jwtSecret == "" {
			log.Println("❌ JWT secret not configured")
			utils.RespondJSON(w, http.StatusInternalServerError, LoginResponse{OK: false})
			return
		}

		user, err := api.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			log.Printf("❌ Upstream login failed for %s: %v", req.Email, err)
			utils.RespondJSON(w, http.StatusUnauthorized, LoginResponse{OK: false})
			return
		}

		claims := jwt.MapClaims{
			"email": req.Email,
			"role":  "admin",
			"iat":   time.Now().Unix(),
			"exp":   time.Now().Add(7 * 24 * time.Hour).Unix(),
		}
		if user != nil {
			claims["user_id"] = fmt.Sprintf("%d", user.ID)
		}

		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		tokenString, err := token.SignedString([]byte(jwtSecret))
		if err != nil {
			log.Println("❌ Failed to create token")
			utils.RespondJSON(w, http.StatusInternalServerError, LoginResponse{OK: false})
			return
		}

		log.Printf("✅ Login successful: %s", req.Email)
		utils.RespondJSON(w, http.StatusOK, LoginResponse{OK: true, Token: tokenString, User: user})
	}
}

// Logout invalidates the upstream session
func Logout(api *upstream.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := api.Logout(r.Context()); err != nil {
			log.Printf("⚠️  Upstream logout failed: %v", err)
		}
		utils.RespondJSON(w, http.StatusOK, map[string]bool{"ok": true})
	}
}
