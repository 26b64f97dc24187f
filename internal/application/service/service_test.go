package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"mortgageportal/internal/application/models"
	"mortgageportal/internal/application/store"
	"mortgageportal/internal/events"
	"mortgageportal/internal/platform/middleware"
	"mortgageportal/internal/status"
	dErrors "mortgageportal/pkg/domain-errors"
)

type ServiceSuite struct {
	suite.Suite
	store *store.MemoryStore
	pub   *events.MemoryPublisher
	svc   *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.store = store.NewMemoryStore()
	s.pub = events.NewMemoryPublisher()
	s.svc = New(s.store, s.store,
		WithReader(s.store),
		WithPublisher(s.pub),
	)
}

func fullSubmission() *models.Submission {
	return models.SubmissionFromMap(map[string]string{
		"borrowerFirstName": "Jane",
		"borrowerLastName":  "Doe",
		"ssn1a":             "123-45-6789",
		"dob1a":             "1985-06-15",
		"email1a":           "jane@example.com",

		"loanAmount4":  "$350,000",
		"loanPurpose4": "Purchase",

		"hasLiabilities2c":  "true",
		"accountType2c1":    "CreditCard",
		"unpaidBalance2c1":  "$2,000",
		"monthlyPayment2c1": "75",
	})
}

// ============================================================
// Save pipeline
// ============================================================

func (s *ServiceSuite) TestSaveFullSubmission() {
	ctx := context.Background()

	id, err := s.svc.Save(ctx, fullSubmission(), "user-1")
	s.Require().NoError(err)

	g, ok := s.store.Graph(id)
	s.Require().True(ok)

	s.Require().Len(g.Borrowers, 1)
	s.Equal("Jane", g.Borrowers[0].FirstName)
	s.Equal("6789", *g.Borrowers[0].SSNLast4)

	s.Require().NotNil(g.SubjectProperty)
	s.Equal(350000.0, *g.SubjectProperty.LoanAmount)
	s.Equal("Purchase", *g.SubjectProperty.LoanPurpose)

	s.Require().Len(g.Liabilities, 1)
	s.Equal("CreditCard", g.Liabilities[0].AccountType)
	s.Equal(2000.0, *g.Liabilities[0].UnpaidBalance)
	s.Equal(75.0, *g.Liabilities[0].MonthlyPayment)

	published := s.pub.Events()
	s.Require().Len(published, 1)
	s.Equal(id, published[0].ApplicationID)
	s.Equal("user-1", published[0].UserID)
	s.Equal(1, published[0].BorrowerCount)
}

func (s *ServiceSuite) TestSaveWithoutNameStillCreatesApplication() {
	ctx := context.Background()

	id, err := s.svc.Save(ctx, models.SubmissionFromMap(map[string]string{
		"loanAmount4": "200000",
	}), "user-2")
	s.Require().NoError(err)

	g, ok := s.store.Graph(id)
	s.Require().True(ok)
	s.Empty(g.Borrowers, "no name parts, no borrower")
	s.Empty(g.Liabilities)
	s.NotNil(g.SubjectProperty, "subject property does not depend on a borrower")
}

func (s *ServiceSuite) TestSaveLogsClientMetadata() {
	var buf bytes.Buffer
	svc := New(s.store, s.store,
		WithPublisher(s.pub),
		WithLogger(slog.New(slog.NewJSONHandler(&buf, nil))),
	)
	ctx := middleware.WithClientMetadata(context.Background(), "203.0.113.9",
		"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36")

	_, err := svc.Save(ctx, fullSubmission(), "user-1")
	s.Require().NoError(err)

	logged := buf.String()
	s.Contains(logged, `"msg":"application saved"`)
	s.Contains(logged, `"client_ip":"203.0.113.9"`)
	s.Contains(logged, `"device":"Chrome`)
}

func (s *ServiceSuite) TestSaveFillsSectionStatus() {
	ctx := context.Background()

	id, err := s.svc.Save(ctx, fullSubmission(), "user-1")
	s.Require().NoError(err)

	g, _ := s.store.Graph(id)
	var report map[string]string
	s.Require().NoError(json.Unmarshal([]byte(g.Application.SectionStatus), &report))
	s.Equal(status.Completed, report[status.SectionBorrower])
	s.Equal(status.Completed, report[status.SectionLiabilities])
	s.Equal(status.NotStarted, report[status.SectionMilitary])
}

func (s *ServiceSuite) TestSubmittedStatusBlobWins() {
	ctx := context.Background()

	sub := models.SubmissionFromMap(map[string]string{
		"borrowerFirstName": "Jane",
		"borrowerLastName":  "Doe",
		"sectionStatus":     `{"borrower":"InProgress"}`,
	})
	id, err := s.svc.Save(ctx, sub, "user-1")
	s.Require().NoError(err)

	g, _ := s.store.Graph(id)
	s.Equal(`{"borrower":"InProgress"}`, g.Application.SectionStatus,
		"a client-submitted blob passes through untouched")
}

// ============================================================
// Atomicity and failure handling
// ============================================================

func (s *ServiceSuite) TestFailedSaveLeavesNothingAndPublishesNothing() {
	ctx := context.Background()
	s.store.FailOn("liabilities")

	_, err := s.svc.Save(ctx, fullSubmission(), "user-1")
	s.Require().Error(err)
	s.True(dErrors.Is(err, dErrors.CodeInternal))

	s.Equal(0, s.store.Len(), "failed save persists nothing at all")
	s.Empty(s.pub.Events(), "no event for an application that did not commit")
}

func (s *ServiceSuite) TestLegacyFailureFailsSave() {
	ctx := context.Background()
	legacyErr := errors.New("legacy row rejected")
	svc := New(s.store, s.store,
		WithPublisher(s.pub),
		WithLegacy(failingLegacy{err: legacyErr}),
	)

	_, err := svc.Save(ctx, fullSubmission(), "user-1")
	s.Require().Error(err)
	s.ErrorIs(err, legacyErr)
	s.Equal(0, s.store.Len(), "graph save rolls back with the failed projection")
	s.Empty(s.pub.Events())
}

func (s *ServiceSuite) TestPublisherFailureDoesNotFailSave() {
	ctx := context.Background()
	s.pub.FailWith(errors.New("broker down"))

	id, err := s.svc.Save(ctx, fullSubmission(), "user-1")
	s.Require().NoError(err, "the application committed; a broker hiccup stays invisible")
	_, ok := s.store.Graph(id)
	s.True(ok)
}

// ============================================================
// Read surface
// ============================================================

func (s *ServiceSuite) TestGet() {
	ctx := context.Background()
	id, err := s.svc.Save(ctx, fullSubmission(), "user-1")
	s.Require().NoError(err)

	summary, err := s.svc.Get(ctx, id)
	s.Require().NoError(err)
	s.Equal("user-1", summary.Application.UserID)
	s.Equal(1, summary.Counts.Borrowers)
	s.Equal(1, summary.Counts.Liabilities)
	s.Equal(1, summary.Counts.SubjectProperties)
}

func (s *ServiceSuite) TestGetUnknownApplication() {
	_, err := s.svc.Get(context.Background(), uuid.New())
	s.True(dErrors.Is(err, dErrors.CodeNotFound))
}

type failingLegacy struct {
	err error
}

func (f failingLegacy) Upsert(context.Context, *models.Graph) error {
	return f.err
}
