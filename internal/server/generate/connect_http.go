package generate

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

// ConnectHandler returns an http.Handler that serves GenerateService.Generate
// using the Connect protocol with JSON encoding (application/json).
// It bridges to the same generator as the gRPC and REST surfaces.
func (s *Service) ConnectHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != ConnectRoute {
			http.NotFound(w, r)
			return
		}
		var req GenerateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			writeConnectError(w, http.StatusBadRequest, "invalid_argument", "invalid JSON body")
			return
		}
		out, err := s.Generator.Generate(r.Context(), req.Requirement)
		if err != nil {
			code, msg := mapError(err)
			writeConnectError(w, connectHTTPStatus(code), code, msg)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(out)
	})
}

// connectHTTPStatus follows the Connect code to HTTP status table.
func connectHTTPStatus(code string) int {
	if code == "invalid_argument" {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// writeConnectError writes a Connect unary error envelope.
func writeConnectError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"code":    code,
		"message": message,
	})
}
