package handler

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"mortgageportal/internal/application/service"
	"mortgageportal/internal/application/store"
	"mortgageportal/pkg/testutil"
)

type HandlerSuite struct {
	suite.Suite
	store   *store.MemoryStore
	handler *Handler
	router  http.Handler
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	s.store = store.NewMemoryStore()
	svc := service.New(s.store, s.store, service.WithReader(s.store))
	s.handler = New(svc, slog.New(slog.DiscardHandler))
	s.router = s.handler.Routes()
}

func (s *HandlerSuite) postForm(userID string, form url.Values) *httptest.ResponseRecorder {
	req := testutil.WithUser(testutil.NewFormRequest(s.T(), "/", form), userID)
	return testutil.DoRequest(s.router, req)
}

// ============================================================
// POST /
// ============================================================

func (s *HandlerSuite) TestSaveSubmission() {
	form := url.Values{}
	form.Set("borrowerFirstName", "Jane")
	form.Set("borrowerLastName", "Doe")
	form.Set("loanAmount4", "$350,000")
	form.Set("loanPurpose4", "Purchase")

	rec := s.postForm("user-1", form)
	s.Require().Equal(http.StatusCreated, rec.Code)

	var body struct {
		Success       bool      `json:"success"`
		ApplicationID uuid.UUID `json:"applicationId"`
	}
	testutil.DecodeJSON(s.T(), rec, &body)
	s.True(body.Success)
	s.NotEqual(uuid.Nil, body.ApplicationID)

	g, ok := s.store.Graph(body.ApplicationID)
	s.Require().True(ok)
	s.Equal("user-1", g.Application.UserID)
	s.Len(g.Borrowers, 1)
}

func (s *HandlerSuite) TestSaveWithoutIdentity() {
	rec := s.postForm("", url.Values{})
	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Contains(rec.Body.String(), `"success":false`)
}

func (s *HandlerSuite) TestSaveFailureEnvelope() {
	s.store.FailOn("loan_applications")

	rec := s.postForm("user-1", url.Values{})
	s.Equal(http.StatusInternalServerError, rec.Code)

	var body struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	testutil.DecodeJSON(s.T(), rec, &body)
	s.False(body.Success)
	s.Equal("internal_error", body.Error)
}

// ============================================================
// GET /{id}
// ============================================================

func (s *HandlerSuite) TestGetApplication() {
	form := url.Values{}
	form.Set("borrowerFirstName", "Jane")
	form.Set("borrowerLastName", "Doe")
	form.Set("loanAmount4", "350000")
	rec := s.postForm("user-1", form)
	s.Require().Equal(http.StatusCreated, rec.Code)

	var created struct {
		ApplicationID uuid.UUID `json:"applicationId"`
	}
	testutil.DecodeJSON(s.T(), rec, &created)

	req := testutil.WithUser(testutil.NewRequest(s.T(), http.MethodGet, "/"+created.ApplicationID.String()), "user-1")
	getRec := testutil.DoRequest(s.router, req)
	s.Require().Equal(http.StatusOK, getRec.Code)

	var body struct {
		Success     bool `json:"success"`
		Application struct {
			ID     uuid.UUID `json:"id"`
			UserID string    `json:"userId"`
			Status string    `json:"status"`
		} `json:"application"`
		Counts store.EntityCounts `json:"counts"`
	}
	testutil.DecodeJSON(s.T(), getRec, &body)
	s.True(body.Success)
	s.Equal(created.ApplicationID, body.Application.ID)
	s.Equal("Submitted", body.Application.Status)
	s.Equal(1, body.Counts.Borrowers)
	s.Equal(1, body.Counts.SubjectProperties)
}

func (s *HandlerSuite) TestGetUnknownApplication() {
	req := testutil.WithUser(testutil.NewRequest(s.T(), http.MethodGet, "/"+uuid.NewString()), "user-1")
	rec := testutil.DoRequest(s.router, req)
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *HandlerSuite) TestGetInvalidID() {
	req := testutil.WithUser(testutil.NewRequest(s.T(), http.MethodGet, "/not-a-uuid"), "user-1")
	rec := testutil.DoRequest(s.router, req)
	s.Equal(http.StatusBadRequest, rec.Code)
}

// ============================================================
// GET /status
// ============================================================

func (s *HandlerSuite) TestStatusWithoutCacheReturnsEmptyReport() {
	req := testutil.WithUser(testutil.NewRequest(s.T(), http.MethodGet, "/status"), "user-1")
	rec := testutil.DoRequest(s.router, req)
	s.Require().Equal(http.StatusOK, rec.Code)

	var body struct {
		Success  bool              `json:"success"`
		Sections map[string]string `json:"sections"`
	}
	testutil.DecodeJSON(s.T(), rec, &body)
	s.True(body.Success)
	s.Empty(body.Sections)
}
