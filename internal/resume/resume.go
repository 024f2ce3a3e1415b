package resume

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/ledongthuc/pdf"
)

var (
	ErrEmpty    = errors.New("resume file is empty")
	ErrTooLarge = errors.New("resume file is too large")
	ErrNotPDF   = errors.New("resume must be a PDF document")
)

const ContentType = "application/pdf"

// Validate aceita apenas PDFs legíveis com pelo menos uma página.
func Validate(data []byte, maxBytes int64) error {
	if len(data) == 0 {
		return ErrEmpty
	}
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrTooLarge, len(data), maxBytes)
	}
	if http.DetectContentType(data) != ContentType {
		return ErrNotPDF
	}
	pages, err := pageCount(data)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNotPDF, err)
	}
	if pages < 1 {
		return fmt.Errorf("%w: no pages", ErrNotPDF)
	}
	return nil
}

func pageCount(data []byte) (n int, err error) {
	// o parser entra em pânico com alguns arquivos truncados
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed pdf: %v", r)
		}
	}()
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return 0, err
	}
	return r.NumPage(), nil
}
