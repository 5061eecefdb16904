package dashboard_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/scivishub/internal/app/features/dashboard"
	"github.com/dalemusser/scivishub/internal/app/submission"
	"github.com/dalemusser/scivishub/internal/domain/models"
	"github.com/dalemusser/scivishub/internal/testutil"
	"go.uber.org/zap"
)

type dashboardBody struct {
	Stats struct {
		TotalDatasets      int            `json:"totalDatasets"`
		TotalContributors  int            `json:"totalContributors"`
		ApplicationDomains map[string]int `json:"applicationDomains"`
	} `json:"stats"`
	DomainBuckets []struct {
		Value string `json:"value"`
		Count int    `json:"count"`
	} `json:"domainBuckets"`
	Contributors []struct {
		Email         string `json:"email"`
		Contributions int    `json:"contributions"`
		Breakdown     string `json:"breakdown"`
	} `json:"contributors"`
}

func serve(t *testing.T, h *dashboard.Handler) dashboardBody {
	t.Helper()
	rec := httptest.NewRecorder()
	dashboard.Routes(h).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	var body dashboardBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	return body
}

func TestServeDashboard(t *testing.T) {
	ctx := context.Background()
	local := testutil.NewLocalStore(t)

	jane := testutil.ValidSubmission()
	jane.ID = "a"
	jane2 := testutil.ValidSubmission()
	jane2.ID = "b"
	jane2.Dataset.ApplicationDomain = "simulation"
	john := testutil.ValidSubmission()
	john.ID = "c"
	john.Contributor.Email = "john@lab.gov"
	for _, s := range []*models.Submission{&jane, &jane2, &john} {
		if err := local.Save(ctx, s, nil, nil); err != nil {
			t.Fatalf("seed local store: %v", err)
		}
	}

	loader := submission.NewLoader(submission.Unavailable(nil), local, zap.NewNop())
	body := serve(t, dashboard.NewHandler(loader, zap.NewNop()))

	if body.Stats.TotalDatasets != 3 {
		t.Errorf("totalDatasets: got %d, want 3", body.Stats.TotalDatasets)
	}
	if body.Stats.TotalContributors != 2 {
		t.Errorf("totalContributors: got %d, want 2", body.Stats.TotalContributors)
	}
	if got := body.Stats.ApplicationDomains["medical"]; got != 2 {
		t.Errorf("medical: got %d, want 2", got)
	}
	if got := body.Stats.ApplicationDomains["climate"]; got != 0 {
		t.Errorf("climate: got %d, want 0", got)
	}
	if len(body.DomainBuckets) != 2 {
		t.Errorf("domain buckets: got %d, want 2", len(body.DomainBuckets))
	}

	if len(body.Contributors) != 2 {
		t.Fatalf("contributors: got %d, want 2", len(body.Contributors))
	}
	top := body.Contributors[0]
	if top.Email != "jane.smith@university.edu" || top.Contributions != 2 {
		t.Errorf("top contributor: got %s with %d, want jane with 2", top.Email, top.Contributions)
	}
	if want := "Medical (1) 33%, Simulation (1) 33%"; top.Breakdown != want {
		t.Errorf("breakdown: got %q, want %q", top.Breakdown, want)
	}
}

func TestServeDashboard_Empty(t *testing.T) {
	loader := submission.NewLoader(submission.Unavailable(nil), testutil.NewLocalStore(t), zap.NewNop())
	body := serve(t, dashboard.NewHandler(loader, zap.NewNop()))

	if body.Stats.TotalDatasets != 0 || body.Stats.TotalContributors != 0 {
		t.Errorf("expected zero totals, got %+v", body.Stats)
	}
	if len(body.Contributors) != 0 {
		t.Errorf("expected no contributors, got %d", len(body.Contributors))
	}
}
