package mux

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"tourneypoker-server/pkg/chips"
	"tourneypoker-server/pkg/db"
	"tourneypoker-server/pkg/playable/poker/texasholdem"
	"tourneypoker-server/pkg/room"
	"tourneypoker-server/pkg/tournament"
)

const maxRows = 100
const defaultRows = 100

func parsePaginationOptions(r *http.Request) (int, int, error) {
	start := 0
	rows := defaultRows

	if startStr := r.FormValue("start"); startStr != "" {
		val, err := strconv.Atoi(startStr)
		if err != nil {
			return 0, 0, err
		}

		if val < 0 {
			return 0, 0, errors.New("start cannot be less than zero")
		}

		start = val
	}

	if rowsStr := r.FormValue("rows"); rowsStr != "" {
		val, err := strconv.Atoi(rowsStr)
		if err != nil {
			return 0, 0, err
		}

		if val <= 0 {
			return 0, 0, errors.New("rows must be greater than zero")
		}

		if val > maxRows {
			return 0, 0, fmt.Errorf("rows cannot be greater than %d", maxRows)
		}

		rows = val
	}

	return start, rows, nil
}

func remoteAddr(r *http.Request) string {
	parts := strings.Split(r.RemoteAddr, ":")
	if len(parts) == 1 {
		return parts[0]
	}

	return strings.Join(parts[0:len(parts)-1], ":")
}

// decodeRequest decodes a JSON body, an empty body leaves payload untouched
func decodeRequest(w http.ResponseWriter, r *http.Request, payload interface{}) bool {
	if r.ContentLength == 0 {
		return true
	}

	if ct := r.Header.Get("Content-Type"); ct != "application/json" && ct != "text/json" {
		writeJSONError(w, http.StatusUnsupportedMediaType, nil)
		return false
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSONError(w, http.StatusBadRequest, err)
		return false
	}

	return true
}

func writeJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logrus.WithError(err).Error("could not write JSON response")
	}
}

type errorResponse struct {
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
	Code       string `json:"code,omitempty"`
}

// writeError picks the status code for an error returned by a dealer
func writeError(w http.ResponseWriter, err error) {
	var stateErr *tournament.StateError
	var actionErr *texasholdem.InvalidActionError
	var notFoundErr *texasholdem.PlayerNotFoundError
	var configErr *texasholdem.GameConfigurationError
	var chipsErr *chips.NegativeChipsError

	switch {
	case errors.As(err, &actionErr):
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Message:    actionErr.Message,
			StatusCode: http.StatusBadRequest,
			Code:       actionErr.Code,
		})
	case errors.As(err, &stateErr), errors.Is(err, db.ErrStaleWrite):
		writeJSONError(w, http.StatusConflict, err)
	case errors.As(err, &notFoundErr):
		writeJSONError(w, http.StatusNotFound, err)
	case errors.As(err, &configErr), errors.As(err, &chipsErr):
		writeJSONError(w, http.StatusBadRequest, err)
	case errors.Is(err, room.ErrShiftEnded):
		writeJSONError(w, http.StatusServiceUnavailable, err)
	case errors.Is(err, context.DeadlineExceeded):
		writeJSONError(w, http.StatusGatewayTimeout, err)
	default:
		writeJSONError(w, http.StatusInternalServerError, err)
	}
}

func writeJSONError(w http.ResponseWriter, statusCode int, err error) {
	var msg string

	if statusCode < 500 && err != nil {
		msg = err.Error()
	} else {
		msg = http.StatusText(statusCode)
	}

	if statusCode >= 500 {
		logrus.WithField("statusCode", statusCode).Error(err)
	}

	writeJSON(w, statusCode, errorResponse{
		Message:    msg,
		StatusCode: statusCode,
	})
}
