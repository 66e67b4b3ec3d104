package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"FitPulse/core/auth"
	"FitPulse/logger"
	"FitPulse/model"
	"FitPulse/repository"
)

// RegisterRequest represents the signup request body.
type RegisterRequest struct {
	Email           string `json:"email"`
	Name            string `json:"name"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// LoginRequest represents the login request body.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterHandler handles user signup requests.
func (h *APIHandler) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Email == "" || req.Name == "" || req.Password == "" {
		http.Error(w, "Email, name and password are required", http.StatusBadRequest)
		return
	}
	if req.Password != req.ConfirmPassword {
		http.Error(w, "Passwords do not match", http.StatusBadRequest)
		return
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		http.Error(w, "Failed to process password", http.StatusInternalServerError)
		return
	}

	user := &model.User{
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: hashedPassword,
	}

	userID, err := h.userRepo.CreateUser(user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			logger.Warn("[Register] email already exists", logger.String("email", req.Email))
			http.Error(w, "Email address already exists", http.StatusConflict)
			return
		}
		logger.Error("[Register] failed to create user", logger.ErrorField(err))
		http.Error(w, "Failed to create user", http.StatusInternalServerError)
		return
	}

	logger.Info("[Register] user created",
		logger.Int64("userId", userID), logger.String("email", req.Email))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"user": map[string]interface{}{
			"id":    userID,
			"email": req.Email,
			"name":  req.Name,
		},
	})
}

// LoginHandler handles user login requests.
func (h *APIHandler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Error("[Login] failed to decode request body", logger.ErrorField(err))
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Email == "" || req.Password == "" {
		http.Error(w, "Email and password are required", http.StatusBadRequest)
		return
	}

	user, err := h.userRepo.GetUserByEmail(req.Email)
	if err != nil {
		logger.Error("[Login] failed to query user", logger.ErrorField(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	// Unknown email and wrong password produce the same answer.
	if user == nil || !auth.VerifyPassword(req.Password, user.PasswordHash) {
		logger.Warn("[Login] invalid credentials", logger.String("email", req.Email))
		http.Error(w, "Invalid email or password", http.StatusUnauthorized)
		return
	}

	token, sessionID, err := auth.GenerateToken(user.ID, user.Email, h.cfg.JWTSecret, h.cfg.SessionTTL)
	if err != nil {
		logger.Error("[Login] failed to generate token", logger.ErrorField(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if err := h.sessions.Save(r.Context(), sessionID, user.ID, h.cfg.SessionTTL); err != nil {
		logger.Error("[Login] failed to save session", logger.ErrorField(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	logger.Info("[Login] login successful", logger.String("email", user.Email))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"token": token,
		"user": map[string]interface{}{
			"id":    user.ID,
			"email": user.Email,
			"name":  user.Name,
		},
	})
}

// LogoutHandler terminates the current session. Logging out twice is a no-op.
func (h *APIHandler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := r.Context().Value("sessionID").(string)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := h.sessions.Delete(r.Context(), sessionID); err != nil {
		logger.Error("[Logout] failed to delete session", logger.ErrorField(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
	})
}

// AuthMiddleware checks for a valid bearer token bound to a live session.
func (h *APIHandler) AuthMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "Authorization header is required", http.StatusUnauthorized)
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			http.Error(w, "Invalid authorization header format", http.StatusUnauthorized)
			return
		}

		claims, err := auth.ParseToken(parts[1], h.cfg.JWTSecret)
		if err != nil {
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		// Tokens outlive logout cryptographically; the session record decides.
		alive, err := h.sessions.Exists(r.Context(), claims.ID)
		if err != nil {
			logger.Error("[Auth] failed to check session", logger.ErrorField(err))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		if !alive {
			http.Error(w, "Session expired", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), "userID", claims.UserID)
		ctx = context.WithValue(ctx, "email", claims.Email)
		ctx = context.WithValue(ctx, "sessionID", claims.ID)

		next.ServeHTTP(w, r.WithContext(ctx))
	}
}
