package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"origo/internal/leadstore"
	"origo/internal/models"
	"origo/internal/origination"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newWizardFixture stands up a fiber app with the step routes wired to a
// store holding one lead, backed by a fake origination server.
func newWizardFixture(t *testing.T, lead models.Lead, upstream http.HandlerFunc) (*fiber.App, *leadstore.Store) {
	t.Helper()

	srv := httptest.NewServer(upstream)
	t.Cleanup(srv.Close)

	client := origination.NewClient(srv.URL, "test-token")
	store := leadstore.NewStore(client, nil)
	store.RestoreLeads([]models.Lead{lead})

	h := NewStepHandler(store, client)
	app := fiber.New()
	app.Put("/leads/:id/personal", h.SavePersonal)
	app.Put("/leads/:id/identity", h.SaveIdentity)
	app.Put("/leads/:id/employment", h.SaveEmployment)
	app.Put("/leads/:id/terms", h.SaveTerms)
	return app, store
}

func putJSON(t *testing.T, app *fiber.App, path, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPut, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func okUpstream(w http.ResponseWriter, r *http.Request) {
	json.NewEncoder(w).Encode(origination.SubmitAck{Accepted: true})
}

func TestStepHandler_SavePersonal(t *testing.T) {
	t.Run("valid save merges step 1 and advances the wizard", func(t *testing.T) {
		app, store := newWizardFixture(t, models.Lead{ID: "lead-1", AppID: "APP-1", Status: models.StatusDraft}, okUpstream)

		resp := putJSON(t, app, "/leads/lead-1/personal",
			`{"firstName":"Asha","lastName":"Verma","dob":"1990-03-10","gender":"female"}`)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		lead := store.Leads()[0]
		require.NotNil(t, lead.FormData.Step1)
		assert.Equal(t, "Asha", lead.FormData.Step1.FirstName)
		assert.Equal(t, "Asha Verma", lead.CustomerName)
		assert.Equal(t, 2, lead.CurrentStep)
	})

	t.Run("missing required fields are rejected before the wire", func(t *testing.T) {
		upstreamHit := false
		app, store := newWizardFixture(t, models.Lead{ID: "lead-1", AppID: "APP-1"}, func(w http.ResponseWriter, r *http.Request) {
			upstreamHit = true
		})

		resp := putJSON(t, app, "/leads/lead-1/personal", `{"firstName":"Asha"}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.False(t, upstreamHit)
		assert.Nil(t, store.Leads()[0].FormData.Step1)
	})

	t.Run("drafts without an app id save locally only", func(t *testing.T) {
		upstreamHit := false
		app, store := newWizardFixture(t, models.Lead{ID: "lead-1"}, func(w http.ResponseWriter, r *http.Request) {
			upstreamHit = true
		})

		resp := putJSON(t, app, "/leads/lead-1/personal",
			`{"firstName":"Asha","dob":"1990-03-10","gender":"female"}`)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.False(t, upstreamHit)
		require.NotNil(t, store.Leads()[0].FormData.Step1)
	})

	t.Run("terminal leads are locked", func(t *testing.T) {
		app, _ := newWizardFixture(t, models.Lead{ID: "lead-1", Status: models.StatusSubmitted}, okUpstream)

		resp := putJSON(t, app, "/leads/lead-1/personal",
			`{"firstName":"Asha","dob":"1990-03-10","gender":"female"}`)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("unknown lead", func(t *testing.T) {
		app, _ := newWizardFixture(t, models.Lead{ID: "lead-1"}, okUpstream)
		resp := putJSON(t, app, "/leads/nope/personal", `{}`)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestStepHandler_SaveIdentity(t *testing.T) {
	t.Run("pan is normalized and the section locks", func(t *testing.T) {
		app, store := newWizardFixture(t, models.Lead{ID: "lead-1", AppID: "APP-1"}, okUpstream)

		resp := putJSON(t, app, "/leads/lead-1/identity", `{"panNumber":"abcde1234f"}`)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		lead := store.Leads()[0]
		assert.Equal(t, "ABCDE1234F", lead.PANNumber)
		assert.True(t, lead.Step2Completed)
	})

	t.Run("a locked section refuses re-submission", func(t *testing.T) {
		app, _ := newWizardFixture(t, models.Lead{ID: "lead-1", Step2Completed: true}, okUpstream)

		resp := putJSON(t, app, "/leads/lead-1/identity", `{"panNumber":"ABCDE1234F"}`)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("malformed pan", func(t *testing.T) {
		app, _ := newWizardFixture(t, models.Lead{ID: "lead-1"}, okUpstream)
		resp := putJSON(t, app, "/leads/lead-1/identity", `{"panNumber":"12345"}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestStepHandler_SaveEmployment(t *testing.T) {
	t.Run("upstream rejection surfaces its message and skips the merge", func(t *testing.T) {
		app, store := newWizardFixture(t, models.Lead{ID: "lead-1", AppID: "APP-1"}, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			w.Write([]byte(`{"error":"income below product floor"}`))
		})

		resp := putJSON(t, app, "/leads/lead-1/employment",
			`{"occupationType":"salaried","employerName":"Acme","monthlyIncome":5000}`)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

		var body map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "income below product floor", body["error"])
		assert.Nil(t, store.Leads()[0].FormData.Step4)
	})

	t.Run("occupation-conditional rules apply", func(t *testing.T) {
		app, _ := newWizardFixture(t, models.Lead{ID: "lead-1"}, okUpstream)
		resp := putJSON(t, app, "/leads/lead-1/employment",
			`{"occupationType":"business","annualTurnover":0}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestStepHandler_SaveTerms(t *testing.T) {
	app, store := newWizardFixture(t, models.Lead{ID: "lead-1", AppID: "APP-1", CurrentStep: 7}, okUpstream)

	resp := putJSON(t, app, "/leads/lead-1/terms",
		`{"amount":500000,"purpose":"home_renovation","tenureMonths":60,"emiDay":5}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	lead := store.Leads()[0]
	assert.Equal(t, 500000.0, lead.LoanAmount)
	assert.Equal(t, "home_renovation", lead.LoanPurpose)
	assert.Equal(t, 8, lead.CurrentStep)
}
