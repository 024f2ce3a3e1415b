package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

func WriteJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// Success responde {"success": true, ...fields}.
func Success(w http.ResponseWriter, code int, fields map[string]any) {
	body := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		body[k] = v
	}
	body["success"] = true
	WriteJSON(w, code, body)
}

// Fail responde {"success": false, "message": msg}.
func Fail(w http.ResponseWriter, code int, msg string) {
	WriteJSON(w, code, map[string]any{"success": false, "message": msg})
}

/*
decodeStrict decodifica JSON rejeitando chaves desconhecidas
e garantindo que exista exatamente UM objeto JSON.
*/
func DecodeStrict(r io.Reader, dst any) error {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return err
	}
	// Garante que não tenha lixo após o objeto JSON
	if dec.More() {
		return errors.New("unexpected additional JSON content")
	}

	return nil
}

func BadRequest(w http.ResponseWriter, msg string) {
	Fail(w, http.StatusBadRequest, msg)
}

// O tipo "err" customiza as mensagens de erro "unknown field"
func FormatUnknownFieldError(err error) string {
	if errors.Is(err, io.EOF) {
		return "request body is empty"
	}
	return fmt.Sprintf("invalid request body: %v", err)
}
