package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	app_errors "rukmini-chat/backend/internal/errors"

	"github.com/go-playground/validator/v10"
)

const maxBodyBytes = 1 << 20

var (
	validate *validator.Validate
	once     sync.Once
)

// getInstance returns the shared validator; it caches struct metadata, so
// one instance serves all requests.
func getInstance() *validator.Validate {
	once.Do(func() {
		validate = validator.New()
	})
	return validate
}

// validateRequest checks payload against its `validate` tags and returns a
// wrapped app_errors.ErrValidation listing every failed field.
func validateRequest(payload interface{}) error {
	err := getInstance().Struct(payload)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("%w: an unexpected error occurred during validation: %s", app_errors.ErrValidation, err.Error())
	}

	var errorMessages []string
	for _, fieldErr := range validationErrors {
		errorMessages = append(errorMessages, fmt.Sprintf("Field '%s' failed on the '%s' tag", fieldErr.Field(), fieldErr.Tag()))
	}
	return fmt.Errorf("%w: %s", app_errors.ErrValidation, strings.Join(errorMessages, "; "))
}

// decodeJSON reads the request body into dst and validates it. An empty
// body is accepted when allowEmpty is set.
func decodeJSON(r *http.Request, dst interface{}, allowEmpty bool) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("%w: could not read request body: %s", app_errors.ErrValidation, err.Error())
	}
	if len(bytes.TrimSpace(body)) == 0 {
		if allowEmpty {
			return validateRequest(dst)
		}
		return fmt.Errorf("%w: request body is empty", app_errors.ErrValidation)
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("%w: invalid request payload: %s", app_errors.ErrValidation, err.Error())
	}
	return validateRequest(dst)
}
