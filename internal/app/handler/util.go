package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"backoffice/internal/app/apperr"
	"backoffice/internal/app/model"

	"github.com/go-playground/validator/v10"
)

// readBody into json struct
func readBody(r *http.Request, v interface{}) error {
	body, err := io.ReadAll(r.Body)
	_ = r.Body.Close()
	if err != nil {
		return fmt.Errorf("body read: %w", err)
	}

	err = json.Unmarshal(body, v)
	if err != nil {
		return fmt.Errorf("json decode: %w", err)
	}

	return nil
}

type jsonError struct {
	Message string `json:"error"`
}

// WriteError formatted in json
func WriteError(w http.ResponseWriter, err error, statusCode int) {
	WriteResponse(w, &jsonError{Message: err.Error()}, statusCode)
}

// WriteResponse formatted in json
func WriteResponse(w http.ResponseWriter, v interface{}, statusCode int) {
	resBody, err := json.Marshal(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_, _ = w.Write(resBody)
}

type ValidationErrorResponse struct {
	Errors ValidationErrors `json:"errors"`
}

type ValidationErrors []ValidationError

type ValidationError struct {
	Msg   string `json:"msg"`
	Param string `json:"param"`
	Value string `json:"value"`
}

func newValidator() *validator.Validate {
	validate := validator.New()
	_ = validate.RegisterValidation("msisdn_ao", func(fl validator.FieldLevel) bool {
		return model.ValidPhone(fl.Field().String())
	})

	return validate
}

// validateData and send errors, returns true if no validation errors.
// Malformed input (a bad phone included) never reaches storage; it is
// rejected here with a field-level error body.
func validateData(w http.ResponseWriter, v interface{}) bool {
	err := newValidator().Struct(v)
	if err != nil {
		errs := make(ValidationErrors, 0)
		for _, err := range err.(validator.ValidationErrors) {
			errs = append(errs, ValidationError{
				Msg:   err.Error(),
				Param: err.Field(),
				Value: fmt.Sprintf("%v", err.Value()),
			})
		}
		writeValidationErrors(w, errs)
		return false
	}

	return true
}

// writeValidationErrors formatted in json
func writeValidationErrors(w http.ResponseWriter, errs ValidationErrors) {
	WriteResponse(w, ValidationErrorResponse{errs}, http.StatusBadRequest)
}

type ContextKeyAdmin struct{}

func ReadContextAdmin(ctx context.Context) (*model.Admin, error) {
	v := ctx.Value(ContextKeyAdmin{})
	if admin, ok := v.(*model.Admin); ok {
		return admin, nil
	}

	return nil, apperr.ErrUnauthorized
}

// actorName resolves the audit actor label from the session, falling back
// to a default when the identity is absent.
func actorName(ctx context.Context) string {
	a, err := ReadContextAdmin(ctx)
	if err != nil {
		return "unknown"
	}

	return a.Name
}
