package chat

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/scribble/internal/models"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	mr      *miniredis.Miniredis
	client  *redis.Client
	repo    Repository
	ctx     context.Context
	testNow time.Time
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	repo, err := NewRedis(&Config{
		RedisClient: s.client,
	})
	s.Require().NoError(err)
	s.repo = repo

	s.ctx = context.Background()
	s.testNow = time.Date(2025, 4, 5, 10, 0, 0, 0, time.UTC)
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) message(text string) *models.ChatMessage {
	return &models.ChatMessage{
		Username:  "alice",
		Text:      text,
		Color:     "#00FFBF",
		Type:      models.ChatMessageTypeMessage,
		Timestamp: s.testNow,
	}
}

func (s *RedisRepositoryTestSuite) TestAppendAndRecent() {
	s.Require().NoError(s.repo.Append(s.ctx, &AppendInput{RoomID: "room-1", Message: s.message("hello")}))
	s.Require().NoError(s.repo.Append(s.ctx, &AppendInput{RoomID: "room-1", Message: s.message("world")}))

	out, err := s.repo.Recent(s.ctx, &RecentInput{RoomID: "room-1"})
	s.Require().NoError(err)
	s.Require().Len(out.Messages, 2)
	s.Equal("hello", out.Messages[0].Text)
	s.Equal("world", out.Messages[1].Text)
	s.Equal(models.ChatMessageTypeMessage, out.Messages[0].Type)
	s.Equal(s.testNow.Unix(), out.Messages[0].Timestamp.Unix())
}

func (s *RedisRepositoryTestSuite) TestHistoryIsCapped() {
	for i := 0; i < HistoryLimit+20; i++ {
		s.Require().NoError(s.repo.Append(s.ctx, &AppendInput{RoomID: "room-1", Message: s.message(fmt.Sprintf("msg-%d", i))}))
	}

	out, err := s.repo.Recent(s.ctx, &RecentInput{RoomID: "room-1"})
	s.Require().NoError(err)
	s.Require().Len(out.Messages, HistoryLimit)
	s.Equal("msg-20", out.Messages[0].Text)
	s.Equal(fmt.Sprintf("msg-%d", HistoryLimit+19), out.Messages[HistoryLimit-1].Text)
}

func (s *RedisRepositoryTestSuite) TestRecentLimit() {
	for i := 0; i < 10; i++ {
		s.Require().NoError(s.repo.Append(s.ctx, &AppendInput{RoomID: "room-1", Message: s.message(fmt.Sprintf("msg-%d", i))}))
	}

	out, err := s.repo.Recent(s.ctx, &RecentInput{RoomID: "room-1", Limit: 3})
	s.Require().NoError(err)
	s.Require().Len(out.Messages, 3)
	s.Equal("msg-7", out.Messages[0].Text)
	s.Equal("msg-9", out.Messages[2].Text)
}

func (s *RedisRepositoryTestSuite) TestRoomsAreIsolated() {
	s.Require().NoError(s.repo.Append(s.ctx, &AppendInput{RoomID: "room-1", Message: s.message("hello")}))

	out, err := s.repo.Recent(s.ctx, &RecentInput{RoomID: "room-2"})
	s.Require().NoError(err)
	s.Empty(out.Messages)
}

func (s *RedisRepositoryTestSuite) TestClear() {
	s.Require().NoError(s.repo.Append(s.ctx, &AppendInput{RoomID: "room-1", Message: s.message("hello")}))
	s.Require().NoError(s.repo.Append(s.ctx, &AppendInput{RoomID: "room-2", Message: s.message("other")}))

	s.Require().NoError(s.repo.Clear(s.ctx, &ClearInput{RoomID: "room-1"}))

	out, err := s.repo.Recent(s.ctx, &RecentInput{RoomID: "room-1"})
	s.Require().NoError(err)
	s.Empty(out.Messages)

	out, err = s.repo.Recent(s.ctx, &RecentInput{RoomID: "room-2"})
	s.Require().NoError(err)
	s.Len(out.Messages, 1)

	s.Error(s.repo.Clear(s.ctx, &ClearInput{}))
}

func (s *RedisRepositoryTestSuite) TestAppendValidation() {
	s.Error(s.repo.Append(s.ctx, nil))
	s.Error(s.repo.Append(s.ctx, &AppendInput{RoomID: "room-1"}))
	s.Error(s.repo.Append(s.ctx, &AppendInput{Message: s.message("x")}))
}
