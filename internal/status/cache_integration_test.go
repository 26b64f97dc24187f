//go:build integration

package status

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	platformredis "mortgageportal/internal/platform/redis"
	"mortgageportal/pkg/testutil/containers"
)

type CacheSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	cache *Cache
}

func TestCacheSuite(t *testing.T) {
	suite.Run(t, new(CacheSuite))
}

func (s *CacheSuite) SetupSuite() {
	s.redis = containers.NewRedisContainer(s.T())
	client := &platformredis.Client{Client: s.redis.Client}
	s.cache = NewCache(client, time.Minute, slog.New(slog.DiscardHandler))
}

func (s *CacheSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *CacheSuite) TestPutAndGet() {
	ctx := context.Background()
	report := Report{SectionBorrower: Completed, SectionLiabilities: InProgress}

	s.cache.Put(ctx, "user-1", report)

	got, ok, err := s.cache.Get(ctx, "user-1")
	s.Require().NoError(err)
	s.Require().True(ok)
	s.Equal(report, got)
}

func (s *CacheSuite) TestGetMiss() {
	_, ok, err := s.cache.Get(context.Background(), "nobody")
	s.Require().NoError(err)
	s.False(ok)
}

func (s *CacheSuite) TestPutReplacesPriorReport() {
	ctx := context.Background()
	s.cache.Put(ctx, "user-1", Report{SectionBorrower: InProgress})
	s.cache.Put(ctx, "user-1", Report{SectionBorrower: Completed})

	got, ok, err := s.cache.Get(ctx, "user-1")
	s.Require().NoError(err)
	s.Require().True(ok)
	s.Equal(Completed, got[SectionBorrower])
}
