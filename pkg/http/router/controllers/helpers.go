package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/lintang-b-s/bearmaps/pkg/util"
	"go.uber.org/zap"
)

type envelope map[string]any

func writeJSON(w http.ResponseWriter, status int, data envelope, headers http.Header) error {
	js, err := json.Marshal(data)
	if err != nil {
		return err
	}
	js = append(js, '\n')

	for key, value := range headers {
		w.Header()[key] = value
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(js)
	return err
}

func errorResponse(log *zap.Logger, w http.ResponseWriter, r *http.Request, status int, message any) {
	env := envelope{"error": message}
	if err := writeJSON(w, status, env, nil); err != nil {
		log.Error("failed to write error response", zap.String("url", r.URL.String()), zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func serverErrorResponse(log *zap.Logger, w http.ResponseWriter, r *http.Request, err error) {
	log.Error("internal server error", zap.String("method", r.Method), zap.String("url", r.URL.String()),
		zap.Error(err))
	errorResponse(log, w, r, http.StatusInternalServerError, util.MessageInternalServerError)
}

func badRequestResponse(log *zap.Logger, w http.ResponseWriter, r *http.Request, err error) {
	errorResponse(log, w, r, http.StatusBadRequest, err.Error())
}

func notFoundResponse(log *zap.Logger, w http.ResponseWriter, r *http.Request, err error) {
	errorResponse(log, w, r, http.StatusNotFound, err.Error())
}

// getStatusCode writes the error response matching the code of err (see util.WrapErrorf).
func getStatusCode(log *zap.Logger, w http.ResponseWriter, r *http.Request, err error) {
	switch util.ErrorCode(err) {
	case util.ErrBadParamInput:
		badRequestResponse(log, w, r, err)
	case util.ErrNotFound:
		notFoundResponse(log, w, r, err)
	case util.ErrConflict:
		errorResponse(log, w, r, http.StatusConflict, err.Error())
	default:
		serverErrorResponse(log, w, r, err)
	}
}

func translateError(err error, trans ut.Translator) []error {
	if err == nil {
		return nil
	}
	var validatorErrs validator.ValidationErrors
	if !errors.As(err, &validatorErrs) {
		return []error{err}
	}
	errs := make([]error, 0, len(validatorErrs))
	for _, e := range validatorErrs {
		errs = append(errs, errors.New(e.Translate(trans)))
	}
	return errs
}

// check runs the struct validation and returns the translated messages as a single error.
func (v *requestValidator) check(request any) error {
	if err := v.validate.Struct(request); err != nil {
		vv := translateError(err, v.trans)
		vvString := make([]string, 0, len(vv))
		for _, e := range vv {
			vvString = append(vvString, e.Error())
		}
		return fmt.Errorf("validation error: %v", vvString)
	}
	return nil
}

func parseFloatQuery(r *http.Request, key string) (float64, error) {
	val, err := util.StringToFloat64(r.URL.Query().Get(key))
	if err != nil {
		return 0, fmt.Errorf("%s is required and must be a valid float", key)
	}
	return val, nil
}
