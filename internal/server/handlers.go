package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/dshearer1/quoteshield-webdev-sub000/internal/analysis"
	"github.com/dshearer1/quoteshield-webdev-sub000/internal/benchmark"
	"github.com/dshearer1/quoteshield-webdev-sub000/internal/db"
	"github.com/dshearer1/quoteshield-webdev-sub000/internal/schemas"
	"github.com/dshearer1/quoteshield-webdev-sub000/internal/types"
)

// CreateAnalysisRequest is the payload for POST /analyses: one extraction
// result plus the trade/region context to analyze it under.
type CreateAnalysisRequest struct {
	Trade        string              `json:"trade" validate:"required"`
	Subtrade     string              `json:"subtrade"`
	RegionKey    string              `json:"region_key" validate:"required"`
	ProjectValue *float64            `json:"project_value" validate:"omitempty,gt=0"`
	MaxFindings  int                 `json:"max_findings" validate:"omitempty,gte=0"`
	AiResult     json.RawMessage     `json:"ai_result" validate:"required"`
	LineItems    []types.LineItemRow `json:"line_items"`
}

func (s *Server) handleCreateAnalysis(w http.ResponseWriter, r *http.Request) {
	var req CreateAnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := s.validate.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	if err := schemas.ValidateAiResult(string(req.AiResult)); err != nil {
		s.errorResponse(w, http.StatusUnprocessableEntity, "AI result failed schema validation: "+err.Error())
		return
	}

	var aiResult types.AiResult
	if err := json.Unmarshal(req.AiResult, &aiResult); err != nil {
		s.errorResponse(w, http.StatusUnprocessableEntity, "AI result is not a valid extraction payload")
		return
	}

	submissionID, err := s.db.CreateSubmission(r.Context(), types.Submission{
		Trade:        req.Trade,
		Subtrade:     req.Subtrade,
		RegionKey:    req.RegionKey,
		ProjectValue: req.ProjectValue,
	})
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	if err := s.db.SaveAiResult(r.Context(), submissionID, req.AiResult); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if len(req.LineItems) > 0 {
		if err := s.db.SaveLineItems(r.Context(), submissionID, req.LineItems); err != nil {
			s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
			return
		}
	}

	result, err := analysis.Run(r.Context(), analysis.RunOptions{
		AiResult:     &aiResult,
		LineItems:    req.LineItems,
		Trade:        req.Trade,
		Subtrade:     req.Subtrade,
		RegionKey:    req.RegionKey,
		ProjectValue: req.ProjectValue,
		MaxFindings:  req.MaxFindings,
		RangeStore:   s.db,
	})
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Analysis failed: "+err.Error())
		return
	}

	record := analysis.Merge(submissionID, result)
	if _, err := s.db.SaveAnalysis(r.Context(), record); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, record)
}

// handleGetAnalysis returns the stored analysis for a submission.
// The path ID is the submission ID, which is stable across rescores.
func (s *Server) handleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	submissionID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid analysis ID")
		return
	}

	record, err := s.db.GetAnalysis(r.Context(), submissionID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if record == nil {
		s.errorResponse(w, http.StatusNotFound, "Analysis not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, record)
}

func (s *Server) handleListAnalyses(w http.ResponseWriter, r *http.Request) {
	filters := db.AnalysisFilters{
		Trade:     r.URL.Query().Get("trade"),
		RegionKey: r.URL.Query().Get("region"),
	}
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 {
			s.errorResponse(w, http.StatusBadRequest, "Invalid limit parameter")
			return
		}
		filters.Limit = limit
	}

	summaries, err := s.db.ListAnalyses(r.Context(), filters)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if summaries == nil {
		summaries = []db.AnalysisSummary{}
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"analyses": summaries})
}

// handleRescore replays the stored extraction payload for a submission
// through the analysis pipeline. The prior analysis feeds the unit
// normalizer so the new run reuses the established quantity.
func (s *Server) handleRescore(w http.ResponseWriter, r *http.Request) {
	submissionID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid analysis ID")
		return
	}

	sub, err := s.db.GetSubmission(r.Context(), submissionID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if sub == nil {
		s.errorResponse(w, http.StatusNotFound, "Submission not found")
		return
	}

	raw, err := s.db.GetAiResult(r.Context(), submissionID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if len(raw) == 0 {
		s.errorResponse(w, http.StatusConflict, "Submission has no stored extraction payload")
		return
	}

	var aiResult types.AiResult
	if err := json.Unmarshal(raw, &aiResult); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Stored extraction payload is corrupt")
		return
	}

	lineItems, err := s.db.ListLineItems(r.Context(), submissionID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	prior, err := s.db.GetPriorAnalysis(r.Context(), submissionID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	result, err := analysis.Run(r.Context(), analysis.RunOptions{
		AiResult:     &aiResult,
		LineItems:    lineItems,
		Prior:        prior,
		Trade:        sub.Trade,
		Subtrade:     sub.Subtrade,
		RegionKey:    sub.RegionKey,
		ProjectValue: sub.ProjectValue,
		RangeStore:   s.db,
	})
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Analysis failed: "+err.Error())
		return
	}

	record := analysis.Merge(submissionID, result)
	if _, err := s.db.SaveAnalysis(r.Context(), record); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, record)
}

func (s *Server) handleGetBenchmark(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	key := benchmark.RangeKey{
		Trade:     q.Get("trade"),
		Subtrade:  q.Get("subtrade"),
		RegionKey: q.Get("region"),
		UnitBasis: q.Get("unit_basis"),
	}
	if key.Trade == "" || key.RegionKey == "" {
		s.errorResponse(w, http.StatusBadRequest, "trade and region parameters are required")
		return
	}
	if key.UnitBasis == "" {
		key.UnitBasis = types.UnitBasisSquare
	}

	rng, err := benchmark.FetchRange(r.Context(), s.db, key)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Benchmark lookup failed: "+err.Error())
		return
	}
	if rng.UnitLow == nil && rng.UnitMid == nil && rng.UnitHigh == nil {
		s.errorResponse(w, http.StatusNotFound, "No benchmark range for the requested key")
		return
	}

	s.jsonResponse(w, http.StatusOK, rng)
}

// validationMessage flattens validator errors into a single readable line.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return "Validation failed on field '" + fe.Field() + "' (" + fe.Tag() + ")"
	}
	return "Validation failed"
}
