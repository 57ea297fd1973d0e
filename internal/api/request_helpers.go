package api

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/tasks-api/internal/api/shared"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/query"
)

// actorID returns the authenticated user's id, writing a 401 when absent.
func actorID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, ok := shared.GetUserID(r.Context())
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized)
		return 0, false
	}
	return id, true
}

// pathID parses a positive integer path parameter, writing a 400 on failure.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		HandleAPIError(w, r, domain.NewValidationError(name, "must be a positive integer", domain.ErrInvalidID))
		return 0, false
	}
	return id, true
}

// decodeAndValidate reads the JSON body into v and validates it, writing a
// 400 on failure.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := shared.DecodeJSON(w, r, v); err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			HandleAPIError(w, r, verr)
			return false
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return false
	}
	if err := shared.ValidateRequest(v); err != nil {
		HandleAPIError(w, r, err)
		return false
	}
	return true
}

// taskQueryFromURL reads a TaskQuery from query parameters.
func taskQueryFromURL(values url.Values) (query.TaskQuery, error) {
	q := query.TaskQuery{
		TaskName:  values.Get("taskName"),
		Category:  values.Get("category"),
		Status:    values.Get("status"),
		StartDate: values.Get("startDate"),
		EndDate:   values.Get("endDate"),
		OrderBy:   values.Get("orderBy"),
	}
	var err error
	if q.Current, err = intParam(values, "current"); err != nil {
		return query.TaskQuery{}, err
	}
	if q.PageSize, err = intParam(values, "pageSize"); err != nil {
		return query.TaskQuery{}, err
	}
	return q, nil
}

func intParam(values url.Values, name string) (int, error) {
	raw := strings.TrimSpace(values.Get(name))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.NewValidationError(name, "must be an integer", nil)
	}
	return n, nil
}
