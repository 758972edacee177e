package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"

	"github.com/biaslens-dev/biaslens/pkg/domain/model"
	"github.com/biaslens-dev/biaslens/pkg/domain/model/auth"
	"github.com/biaslens-dev/biaslens/pkg/domain/types"
	"github.com/biaslens-dev/biaslens/pkg/service/detector"
	"github.com/biaslens-dev/biaslens/pkg/usecase"
	"github.com/biaslens-dev/biaslens/pkg/utils/errutil"
)

type analyzeRequest struct {
	Text string `json:"text"`
}

type listReportsResponse struct {
	Reports []*model.Report `json:"reports"`
	Total   int             `json:"total"`
}

// requestUserID resolves the authenticated user from the request context
func requestUserID(r *http.Request) (types.UserID, error) {
	token := auth.TokenFromContext(r.Context())
	if token == nil {
		return "", goerr.New("no authenticated user in request context")
	}
	return types.UserID(token.Sub), nil
}

// analyzeHandler runs one analysis and returns the resulting report
func analyzeHandler(analyzeUC *usecase.AnalyzeUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := requestUserID(r)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err, http.StatusUnauthorized)
			return
		}

		var req analyzeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(r.Context(), w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
			return
		}

		report, err := analyzeUC.AnalyzeContent(r.Context(), userID, req.Text)
		if err != nil {
			handleAnalysisError(w, r, err)
			return
		}

		writeJSON(r.Context(), w, http.StatusOK, report)
	}
}

// handleAnalysisError maps detection pipeline failures to HTTP statuses
func handleAnalysisError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, model.ErrContentEmpty), errors.Is(err, model.ErrContentTooLong):
		writeJSON(r.Context(), w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, detector.ErrExternalUnavailable):
		errutil.HandleHTTP(r.Context(), w, err, http.StatusServiceUnavailable)
	case errors.Is(err, detector.ErrExternalMalformed):
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadGateway)
	default:
		errutil.HandleHTTP(r.Context(), w, err, http.StatusInternalServerError)
	}
}

// listReportsHandler returns one page of the user's reports
func listReportsHandler(reportUC *usecase.ReportUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := requestUserID(r)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err, http.StatusUnauthorized)
			return
		}

		limit, err := queryInt(r, "limit", 0)
		if err != nil {
			writeJSON(r.Context(), w, http.StatusBadRequest, errorResponse{Error: "invalid limit parameter"})
			return
		}
		offset, err := queryInt(r, "offset", 0)
		if err != nil {
			writeJSON(r.Context(), w, http.StatusBadRequest, errorResponse{Error: "invalid offset parameter"})
			return
		}

		reports, total, err := reportUC.ListReports(r.Context(), userID, limit, offset)
		if err != nil {
			handleReportError(w, r, err)
			return
		}

		writeJSON(r.Context(), w, http.StatusOK, listReportsResponse{
			Reports: reports,
			Total:   total,
		})
	}
}

// getReportHandler returns one report owned by the requesting user
func getReportHandler(reportUC *usecase.ReportUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := requestUserID(r)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err, http.StatusUnauthorized)
			return
		}

		reportID := types.ReportID(chi.URLParam(r, "reportID"))
		report, err := reportUC.GetReport(r.Context(), userID, reportID)
		if err != nil {
			handleReportError(w, r, err)
			return
		}

		writeJSON(r.Context(), w, http.StatusOK, report)
	}
}

// deleteReportHandler removes one report owned by the requesting user
func deleteReportHandler(reportUC *usecase.ReportUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := requestUserID(r)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err, http.StatusUnauthorized)
			return
		}

		reportID := types.ReportID(chi.URLParam(r, "reportID"))
		if err := reportUC.DeleteReport(r.Context(), userID, reportID); err != nil {
			handleReportError(w, r, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// handleReportError maps report lookup failures to HTTP statuses
func handleReportError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, usecase.ErrReportNotFound):
		writeJSON(r.Context(), w, http.StatusNotFound, errorResponse{Error: "report not found"})
	case errors.Is(err, usecase.ErrAccessDenied):
		writeJSON(r.Context(), w, http.StatusForbidden, errorResponse{Error: "access denied"})
	case errors.Is(err, usecase.ErrInvalidPagination):
		writeJSON(r.Context(), w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	default:
		errutil.HandleHTTP(r.Context(), w, err, http.StatusInternalServerError)
	}
}

func queryInt(r *http.Request, key string, fallback int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}
