package handlers

import (
	"encoding/json"
	"net/http"
)

// единый конверт ответа: {status_code, message, result?}
type Response struct {
	StatusCode int `json:"status_code"`
	Message    any `json:"message"`
	Result     any `json:"result,omitempty"`
}

func respondWithJSON(w http.ResponseWriter, code int, message any, result any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(Response{
		StatusCode: code,
		Message:    message,
		Result:     result,
	})
}

func respondWithError(w http.ResponseWriter, code int, message any) {
	respondWithJSON(w, code, message, nil)
}
