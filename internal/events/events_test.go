package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type EventsSuite struct {
	suite.Suite
}

func TestEventsSuite(t *testing.T) {
	suite.Run(t, new(EventsSuite))
}

func (s *EventsSuite) TestMemoryPublisherRecordsEvents() {
	pub := NewMemoryPublisher()
	event := ApplicationSaved{
		ApplicationID: uuid.New(),
		UserID:        "user-1",
		Status:        "Submitted",
		BorrowerCount: 1,
		SavedAt:       time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC),
	}

	s.Require().NoError(pub.PublishApplicationSaved(context.Background(), event))

	got := pub.Events()
	s.Require().Len(got, 1)
	s.Equal(event, got[0])
}

func (s *EventsSuite) TestMemoryPublisherFailWith() {
	pub := NewMemoryPublisher()
	pub.FailWith(errors.New("broker down"))

	err := pub.PublishApplicationSaved(context.Background(), ApplicationSaved{UserID: "user-1"})
	s.Require().Error(err)
	s.Empty(pub.Events())

	pub.FailWith(nil)
	s.Require().NoError(pub.PublishApplicationSaved(context.Background(), ApplicationSaved{UserID: "user-1"}))
	s.Len(pub.Events(), 1)
}
