package main

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/lighthouise/engine/internal/catalog"
	"github.com/lighthouise/engine/internal/diagnostic"
	"github.com/lighthouise/engine/internal/engagement"
	"github.com/lighthouise/engine/internal/fit"
	"github.com/lighthouise/engine/internal/model"
	"github.com/lighthouise/engine/internal/report"
)

// api holds the request handlers and their injected dependencies.
type api struct {
	catalog     *catalog.Catalog
	scorer      *fit.Scorer
	classifier  *diagnostic.Classifier
	builder     *report.Builder
	store       engagement.Store
	assumptions model.Assumptions
}

func newAPI(cat *catalog.Catalog, store engagement.Store, assumptions model.Assumptions) *api {
	return &api{
		catalog:     cat,
		scorer:      fit.NewScorer(cat),
		classifier:  diagnostic.NewClassifier(),
		builder:     report.NewBuilder(cat),
		store:       store,
		assumptions: assumptions,
	}
}

func (a *api) listWorkflows(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, a.catalog.Workflows())
}

func (a *api) getWorkflow(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	wf, ok := a.catalog.Workflow(id)
	if !ok {
		writeError(w, http.StatusNotFound, "workflow not found")
		return
	}
	writeJSON(w, http.StatusOK, wf)
}

func (a *api) listTools(w http.ResponseWriter, r *http.Request) {
	if cat := r.URL.Query().Get("category"); cat != "" {
		category := model.ToolCategory(cat)
		if !category.Valid() {
			writeError(w, http.StatusBadRequest, "unknown category")
			return
		}
		writeJSON(w, http.StatusOK, a.catalog.ToolsByCategory(category))
		return
	}
	writeJSON(w, http.StatusOK, a.catalog.Tools())
}

func (a *api) getTool(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	tool, ok := a.catalog.Tool(id)
	if !ok {
		writeError(w, http.StatusNotFound, "tool not found")
		return
	}
	writeJSON(w, http.StatusOK, tool)
}

func (a *api) toolsForStep(w http.ResponseWriter, r *http.Request) {
	stepID := chi.URLParam(r, "stepID")
	q := r.URL.Query()

	category := model.ToolCategory(q.Get("category"))
	if !category.Valid() {
		writeError(w, http.StatusBadRequest, "category is required")
		return
	}

	var ctx *model.CompanyContext
	if q.Get("size") != "" || q.Get("subSector") != "" {
		ctx = &model.CompanyContext{
			CompanySize: model.CompanySize(q.Get("size")),
			SubSector:   q.Get("subSector"),
		}
	}

	writeJSON(w, http.StatusOK, a.scorer.ToolsForStep(stepID, category, ctx, q.Get("erp")))
}

func (a *api) diagnose(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Context    model.CompanyContext `json:"context"`
		PainPoints string               `json:"pain_points,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	writeJSON(w, http.StatusOK, a.classifier.Classify(req.Context, req.PainPoints))
}

func (a *api) assess(w http.ResponseWriter, r *http.Request) {
	var intake report.Intake
	if err := json.NewDecoder(r.Body).Decode(&intake); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	findings, err := a.builder.Build(intake, a.assumptions)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if r.URL.Query().Get("save") == "true" && a.store != nil {
		snap := &model.EngagementSnapshot{
			Context:           findings.Context,
			PerProcessAnswers: intake.Processes,
			Diagnostic:        findings.Diagnostic,
			FindingsByProcess: findings.FindingsByProcess,
			Assumptions:       findings.Assumptions,
		}
		if err := a.store.Save(r.Context(), snap); err != nil {
			// Persistence failure is logged, not fatal to the response.
			zap.L().Error("api: snapshot save failed", zap.Error(err))
		} else {
			w.Header().Set("X-Engagement-ID", snap.ID)
		}
	}

	writeJSON(w, http.StatusOK, findings)
}

func (a *api) listEngagements(w http.ResponseWriter, r *http.Request) {
	snaps, err := a.store.List(r.Context(), 50)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "list engagements failed")
		return
	}
	if snaps == nil {
		snaps = []model.EngagementSnapshot{}
	}
	writeJSON(w, http.StatusOK, snaps)
}

func (a *api) getEngagement(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	snap, err := a.store.Get(r.Context(), id)
	if err != nil {
		if eris.Is(err, engagement.ErrNotFound) {
			writeError(w, http.StatusNotFound, "engagement not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "get engagement failed")
		return
	}
	writeJSON(w, http.StatusOK, snap)
}
