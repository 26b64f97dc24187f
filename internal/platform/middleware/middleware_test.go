package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/suite"
)

type MiddlewareSuite struct {
	suite.Suite
	logger *slog.Logger
}

func TestMiddlewareSuite(t *testing.T) {
	suite.Run(t, new(MiddlewareSuite))
}

func (s *MiddlewareSuite) SetupTest() {
	s.logger = slog.New(slog.DiscardHandler)
}

// ============================================================
// RequestID
// ============================================================

func (s *MiddlewareSuite) TestRequestIDGenerated() {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	s.NotEmpty(seen)
	s.Equal(seen, rec.Header().Get("X-Request-ID"))
}

func (s *MiddlewareSuite) TestRequestIDHonorsInboundHeader() {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "upstream-id")
	h.ServeHTTP(httptest.NewRecorder(), req)

	s.Equal("upstream-id", seen)
}

// ============================================================
// Recovery
// ============================================================

func (s *MiddlewareSuite) TestRecoveryConvertsPanicTo500() {
	h := Recovery(s.logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))

	s.Equal(http.StatusInternalServerError, rec.Code)
	s.JSONEq(`{"success":false,"error":"internal_error"}`, rec.Body.String())
}

// ============================================================
// RequireAuth
// ============================================================

type fakeValidator struct {
	claims *JWTClaims
	err    error
}

func (f fakeValidator) ValidateToken(string) (*JWTClaims, error) {
	return f.claims, f.err
}

func (s *MiddlewareSuite) TestRequireAuth() {
	s.Run("valid token reaches handler with identity", func() {
		var userID, sessionID string
		h := RequireAuth(fakeValidator{claims: &JWTClaims{UserID: "user-1", SessionID: "sess-1"}}, s.logger)(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				userID = GetUserID(r.Context())
				sessionID = GetSessionID(r.Context())
			}))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer some-token")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		s.Equal(http.StatusOK, rec.Code)
		s.Equal("user-1", userID)
		s.Equal("sess-1", sessionID)
	})

	s.Run("missing header is rejected", func() {
		h := RequireAuth(fakeValidator{}, s.logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s.Fail("handler must not run")
		}))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		s.Equal(http.StatusUnauthorized, rec.Code)
	})

	s.Run("invalid token is rejected", func() {
		h := RequireAuth(fakeValidator{err: errors.New("bad signature")}, s.logger)(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				s.Fail("handler must not run")
			}))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer forged")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		s.Equal(http.StatusUnauthorized, rec.Code)
	})
}
