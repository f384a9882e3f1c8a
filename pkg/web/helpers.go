package web

import (
	"encoding/json"
	"net/http"
)

func sendResponse(w http.ResponseWriter, payload any) {
	// note: w.Header after this, so we can call sendError
	b, err := json.Marshal(payload)
	if err != nil {
		sendErrorResponse(w, http.StatusInternalServerError, "in json.Marshal: "+err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store") // do not cache (Browsers cache GET forever by default)
	w.Write(b)
}

type errorResponse struct {
	Error string `json:"error"`
}

func sendErrorResponse(w http.ResponseWriter, code int, message string) {
	// a struct holding one string always marshals
	b, _ := json.Marshal(errorResponse{Error: message})
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(code)
	w.Write(b)
}
