package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"todoList/internal/handlers/dto"
	"todoList/internal/logger"

	"go.uber.org/zap"
)

type AuthHandler struct {
	service AuthService
}

func NewAuthHandler(service AuthService) *AuthHandler {
	return &AuthHandler{
		service: service,
	}
}

// Signup обрабатывает POST /signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	if !checkContentType(r, "application/json") {
		logger.Warn("HTTP: Неверный тип контента",
			zap.String("received", r.Header.Get("Content-Type")),
			zap.String("client_ip", r.RemoteAddr))
		respondWithError(w, http.StatusUnsupportedMediaType, "Content-Type должен быть application/json")
		return
	}

	var request dto.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		logger.Warn("HTTP: ошибка чтения JSON",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))
		respondWithError(w, http.StatusBadRequest, "неверное тело запроса: "+err.Error())
		return
	}

	logger.Info("HTTP: Вызов сервиса регистрации")
	credentials, err := h.service.Signup(r.Context(), request.Username, request.Email, request.Password)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	logger.Info("HTTP_OUT: Пользователь создан",
		zap.String("user_id", credentials.UserID.String()),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusCreated))

	respondWithJSON(w, http.StatusCreated, "User created Successfully", credentials)
}

// Login обрабатывает POST /login.
// Необязательное поле refresh позволяет продлить прежний refresh токен;
// невалидный refresh не приводит к ошибке, выпускается новая пара.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	if !checkContentType(r, "application/json") {
		logger.Warn("HTTP: Неверный тип контента",
			zap.String("received", r.Header.Get("Content-Type")),
			zap.String("client_ip", r.RemoteAddr))
		respondWithError(w, http.StatusUnsupportedMediaType, "Content-Type должен быть application/json")
		return
	}

	var request dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		logger.Warn("HTTP: ошибка чтения JSON",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))
		respondWithError(w, http.StatusBadRequest, "неверное тело запроса: "+err.Error())
		return
	}

	logger.Info("HTTP: Вызов сервиса входа")
	pair, err := h.service.Login(r.Context(), request.Email, request.Password, request.Refresh)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	logger.Info("HTTP_OUT: Пользователь вошёл",
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	respondWithJSON(w, http.StatusOK, "User Logged in Successfully", dto.TokenPairResponse{
		AccessToken:  pair.Access,
		RefreshToken: pair.Refresh,
	})
}

// ObtainPair обрабатывает POST /token - стандартная выдача пары по паролю
func (h *AuthHandler) ObtainPair(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	if !checkContentType(r, "application/json") {
		logger.Warn("HTTP: Неверный тип контента",
			zap.String("received", r.Header.Get("Content-Type")),
			zap.String("client_ip", r.RemoteAddr))
		respondWithError(w, http.StatusUnsupportedMediaType, "Content-Type должен быть application/json")
		return
	}

	var request dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		logger.Warn("HTTP: ошибка чтения JSON",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))
		respondWithError(w, http.StatusBadRequest, "неверное тело запроса: "+err.Error())
		return
	}

	pair, err := h.service.Login(r.Context(), request.Email, request.Password, "")
	if err != nil {
		handleServiceError(w, err)
		return
	}

	logger.Info("HTTP_OUT: Пара токенов выдана",
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	respondWithJSON(w, http.StatusOK, "Token pair obtained successfully", pair)
}

// RefreshToken обрабатывает POST /token/refresh.
// Невалидный или просроченный refresh токен помечается refresh_valid=false.
func (h *AuthHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	if !checkContentType(r, "application/json") {
		logger.Warn("HTTP: Неверный тип контента",
			zap.String("received", r.Header.Get("Content-Type")),
			zap.String("client_ip", r.RemoteAddr))
		respondWithError(w, http.StatusUnsupportedMediaType, "Content-Type должен быть application/json")
		return
	}

	var request dto.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		logger.Warn("HTTP: ошибка чтения JSON",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))
		respondWithError(w, http.StatusBadRequest, "неверное тело запроса: "+err.Error())
		return
	}

	pair, err := h.service.Refresh(r.Context(), request.Refresh)
	if err != nil {
		logger.Warn("HTTP: Невалидный refresh токен",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))
		respondWithJSON(w, http.StatusUnauthorized, "Invalid or expired refresh token", map[string]any{
			"refresh_valid": false,
		})
		return
	}

	logger.Info("HTTP_OUT: Access токен продлён",
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	respondWithJSON(w, http.StatusOK, "Token refreshed successfully", map[string]any{
		"access":        pair.Access,
		"refresh":       pair.Refresh,
		"refresh_valid": true,
	})
}
