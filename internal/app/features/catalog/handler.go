// internal/app/features/catalog/handler.go
package catalog

import (
	"encoding/json"
	"net/http"
	"net/url"

	catalogs "github.com/dalemusser/scivishub/internal/app/catalog"
	"github.com/dalemusser/scivishub/internal/app/features/shared"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

// criteriaKey is the session value holding the JSON-encoded criteria.
const criteriaKey = "criteria"

// Query parameters, one per filter category. Each may repeat.
const (
	paramDomain     = "domain"
	paramDifficulty = "difficulty"
	paramOperation  = "operation"
	paramDataType   = "dataType"
	paramClear      = "clear"
)

// Handler serves the test-case catalog. The catalog itself is shared and
// read-only; each viewer's filter criteria live in their session cookie.
type Handler struct {
	Catalog     *catalogs.Catalog
	Sessions    sessions.Store
	SessionName string
	Log         *zap.Logger
}

// NewHandler constructs a catalog Handler.
func NewHandler(cat *catalogs.Catalog, store sessions.Store, sessionName string, logger *zap.Logger) *Handler {
	return &Handler{
		Catalog:     cat,
		Sessions:    store,
		SessionName: sessionName,
		Log:         logger,
	}
}

type catalogResponse struct {
	Criteria catalogs.Criteria `json:"criteria"`
	Options  catalogs.Options  `json:"options"`
	Results  interface{}       `json:"results"`
	Total    int               `json:"total"`
}

// ServeCatalog handles GET /api/catalog.
//
// With no filter parameters the criteria saved in the session apply. Any of
// domain, difficulty, operation or dataType replaces all four; clear=1
// resets to the full catalog.
func (h *Handler) ServeCatalog(w http.ResponseWriter, r *http.Request) {
	sess, err := h.Sessions.Get(r, h.SessionName)
	if err != nil {
		if scErr, ok := err.(securecookie.Error); ok && scErr.IsDecode() {
			h.Log.Warn("browse cookie invalid, using fresh session", zap.Error(err))
		} else {
			h.Log.Error("session store error, using fresh session", zap.Error(err))
		}
	}
	if sess == nil {
		sess = sessions.NewSession(h.Sessions, h.SessionName)
	}

	browse := catalogs.NewBrowse(h.Catalog, h.savedCriteria(sess))

	q := r.URL.Query()
	switch {
	case q.Get(paramClear) == "1":
		browse.Clear()
	case hasFilterParams(q):
		browse.Set(criteriaFromQuery(q))
	}

	if data, err := json.Marshal(browse.Criteria()); err == nil {
		sess.Values[criteriaKey] = string(data)
		if err := sess.Save(r, w); err != nil {
			h.Log.Warn("saving browse session failed", zap.Error(err))
		}
	}

	results := browse.Results()
	shared.WriteJSON(w, http.StatusOK, catalogResponse{
		Criteria: browse.Criteria(),
		Options:  browse.Options(),
		Results:  results,
		Total:    len(results),
	})
}

// ServeReport handles GET /api/catalog/report.
func (h *Handler) ServeReport(w http.ResponseWriter, r *http.Request) {
	report := catalogs.Analyze(h.Catalog)
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	_, _ = w.Write([]byte(report.Markdown()))
}

func (h *Handler) savedCriteria(sess *sessions.Session) catalogs.Criteria {
	var c catalogs.Criteria
	raw, ok := sess.Values[criteriaKey].(string)
	if !ok || raw == "" {
		return c
	}
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		h.Log.Debug("discarding unreadable browse criteria", zap.Error(err))
		return catalogs.Criteria{}
	}
	return c
}

func hasFilterParams(q url.Values) bool {
	for _, k := range []string{paramDomain, paramDifficulty, paramOperation, paramDataType} {
		if _, ok := q[k]; ok {
			return true
		}
	}
	return false
}

func criteriaFromQuery(q url.Values) catalogs.Criteria {
	return catalogs.Criteria{
		Domains:      nonEmpty(q[paramDomain]),
		Difficulties: nonEmpty(q[paramDifficulty]),
		Operations:   nonEmpty(q[paramOperation]),
		DataTypes:    nonEmpty(q[paramDataType]),
	}
}

func nonEmpty(vals []string) []string {
	var out []string
	for _, v := range vals {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
