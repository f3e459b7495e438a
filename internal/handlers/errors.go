package handlers

import (
	"errors"
	"net/http"

	"todoList/internal/logger"
	"todoList/internal/service"

	"go.uber.org/zap"
)

// handleServiceError переводит ошибку сервиса в HTTP-ответ.
// BusinessError отображается по своему коду, всё прочее уходит как 500
// с текстом исходной ошибки.
func handleServiceError(w http.ResponseWriter, err error) {
	var businessErr *service.BusinessError
	if errors.As(err, &businessErr) {
		statusCode := mapBusinessErrorToHTTP(businessErr.Code)

		logger.Warn("HTTP: Бизнес-ошибка",
			zap.String("error_code", businessErr.Code),
			zap.Int("http_status", statusCode))

		message := any(businessErr.Message)
		if businessErr.Code == service.CodeValidation && len(businessErr.Details) > 0 {
			message = businessErr.Details
		}
		respondWithError(w, statusCode, message)
		return
	}

	logger.Error("HTTP: Ошибка Service", err)
	respondWithError(w, http.StatusInternalServerError, err.Error())
}

func mapBusinessErrorToHTTP(code string) int {
	switch code {
	case service.CodeNotFound:
		return http.StatusNotFound
	case service.CodeUnauthorized:
		return http.StatusUnauthorized
	case service.CodeValidation, service.CodeConflict:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
