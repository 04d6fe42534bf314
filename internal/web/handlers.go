package web

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/huangsam/devscope/core"
	"github.com/huangsam/devscope/internal/chart"
	"github.com/huangsam/devscope/internal/contract"
	"github.com/huangsam/devscope/schema"
)

// pageData is what the index template renders.
type pageData struct {
	Handle     string
	Error      string
	Result     *schema.ExploreResult
	Languages  []schema.RankedLanguage
	TotalStars int
	TotalForks int
}

// profileResponse is the JSON body of /api/profiles/{handle}.
type profileResponse struct {
	*schema.ExploreResult
	RankedLanguages []schema.RankedLanguage `json:"ranked_languages"`
	Degraded        bool                    `json:"degraded"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// handleIndex renders the search form. A request without a handle query
// looks up the default handle; an empty handle renders the bare form.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	handle := s.cfg.DefaultHandle
	if query.Has("handle") {
		handle = schema.NormalizeHandle(query.Get("handle"))
	}

	data := pageData{Handle: handle}
	status := http.StatusOK
	if handle != "" {
		result, err := s.explore(r, handle)
		if err != nil {
			status = contract.HTTPStatus(err)
			data.Error = contract.UserMessage(handle, err)
		} else {
			data.Result = result
			data.Languages = schema.RankLanguages(result.Languages)
			data.TotalStars = schema.TotalStars(result.Projects)
			data.TotalForks = schema.TotalForks(result.Projects)
		}
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		s.logger.Error("render page", slog.Any("error", err))
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (s *Server) handleProfileAPI(w http.ResponseWriter, r *http.Request) {
	handle := schema.NormalizeHandle(r.PathValue("handle"))
	result, err := s.explore(r, handle)
	if err != nil {
		writeJSON(w, contract.HTTPStatus(err), errorResponse{Error: contract.UserMessage(handle, err)})
		return
	}
	writeJSON(w, http.StatusOK, profileResponse{
		ExploreResult:   result,
		RankedLanguages: schema.RankLanguages(result.Languages),
		Degraded:        result.Degraded(),
	})
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	handle := schema.NormalizeHandle(r.PathValue("handle"))
	result, err := s.explore(r, handle)
	if err != nil {
		http.Error(w, contract.UserMessage(handle, err), contract.HTTPStatus(err))
		return
	}

	var buf bytes.Buffer
	if err := chart.RenderLanguagePie(&buf, result.Profile.Login, result.Languages); err != nil {
		s.logger.Error("render chart", slog.String("handle", handle), slog.Any("error", err))
		http.Error(w, "failed to render chart", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

// explore runs a lookup bound to the request context, so a client that
// goes away cancels its own lookup.
func (s *Server) explore(r *http.Request, handle string) (*schema.ExploreResult, error) {
	ctx := core.WithSuppressHeader(r.Context())
	result, err := core.GetExploreResult(ctx, s.lookupConfig(handle), s.client, s.recorder)
	if err != nil {
		s.logger.Warn("lookup failed",
			slog.String("handle", handle),
			slog.String("outcome", contract.Outcome(err)),
			slog.Any("error", err))
		return nil, err
	}
	return result, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
