package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
)

var errFileTooLarge = errors.New("file is too large")

// readFormFile lê o arquivo multipart do campo informado, limitado a max bytes.
func readFormFile(r *http.Request, field string, max int64) ([]byte, error) {
	f, _, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", field, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, max+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > max {
		return nil, errFileTooLarge
	}
	return data, nil
}

// parseMultipart limita o corpo e faz o parse do formulário.
func parseMultipart(w http.ResponseWriter, r *http.Request, max int64) error {
	r.Body = http.MaxBytesReader(w, r.Body, max+1<<20)
	return r.ParseMultipartForm(max)
}
