package service

import (
	"context"

	"harvester/events"
	"harvester/models"
	"harvester/riot"

	"github.com/stretchr/testify/mock"
)

// MockSummonerRepository is a mock implementation of SummonerRepository
type MockSummonerRepository struct {
	mock.Mock
}

func (m *MockSummonerRepository) BatchUpsert(ctx context.Context, summoners []*models.Summoner) (int, error) {
	args := m.Called(ctx, summoners)
	return args.Int(0), args.Error(1)
}

func (m *MockSummonerRepository) GetByPUUID(ctx context.Context, puuid string) (*models.Summoner, error) {
	args := m.Called(ctx, puuid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Summoner), args.Error(1)
}

func (m *MockSummonerRepository) ListByRegion(ctx context.Context, region string, limit int) ([]*models.Summoner, error) {
	args := m.Called(ctx, region, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Summoner), args.Error(1)
}

func (m *MockSummonerRepository) CountByRegionTier(ctx context.Context, region, tier string) (int64, error) {
	args := m.Called(ctx, region, tier)
	return args.Get(0).(int64), args.Error(1)
}

// MockCollectionRunRepository is a mock implementation of CollectionRunRepository
type MockCollectionRunRepository struct {
	mock.Mock
}

func (m *MockCollectionRunRepository) Create(ctx context.Context, run *models.CollectionRun) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}

func (m *MockCollectionRunRepository) GetLatest(ctx context.Context) (*models.CollectionRun, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CollectionRun), args.Error(1)
}

func (m *MockCollectionRunRepository) ListRecent(ctx context.Context, limit int) ([]*models.CollectionRun, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.CollectionRun), args.Error(1)
}

// MockRiotClient is a mock implementation of RiotClient
type MockRiotClient struct {
	mock.Mock
}

func (m *MockRiotClient) LeagueEntries(ctx context.Context, region, tier, division string, page int) ([]riot.LeagueEntry, error) {
	args := m.Called(ctx, region, tier, division, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]riot.LeagueEntry), args.Error(1)
}

func (m *MockRiotClient) SummonerByID(ctx context.Context, region, summonerID string) (*riot.Summoner, error) {
	args := m.Called(ctx, region, summonerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*riot.Summoner), args.Error(1)
}

// mockEventPublisher collects published events for assertions
type mockEventPublisher struct {
	published []events.Event
}

func (p *mockEventPublisher) Publish(event events.Event) {
	p.published = append(p.published, event)
}

// mockUnitOfWork is a hand-rolled unit of work over the repository mocks
type mockUnitOfWork struct {
	summonerRepo      *MockSummonerRepository
	collectionRunRepo *MockCollectionRunRepository
	eventPublisher    *mockEventPublisher

	began      bool
	committed  bool
	rolledBack bool
	beginErr   error
	commitErr  error
}

func newMockUnitOfWork() *mockUnitOfWork {
	return &mockUnitOfWork{
		summonerRepo:      &MockSummonerRepository{},
		collectionRunRepo: &MockCollectionRunRepository{},
		eventPublisher:    &mockEventPublisher{},
	}
}

func (u *mockUnitOfWork) Begin(ctx context.Context) error {
	if u.beginErr != nil {
		return u.beginErr
	}
	u.began = true
	return nil
}

func (u *mockUnitOfWork) Commit() error {
	if u.commitErr != nil {
		return u.commitErr
	}
	u.committed = true
	return nil
}

func (u *mockUnitOfWork) Rollback() error {
	if !u.committed {
		u.rolledBack = true
	}
	return nil
}

func (u *mockUnitOfWork) SummonerRepository() SummonerRepository {
	return u.summonerRepo
}

func (u *mockUnitOfWork) CollectionRunRepository() CollectionRunRepository {
	return u.collectionRunRepo
}

func (u *mockUnitOfWork) EventBus() EventPublisher {
	return u.eventPublisher
}

// mockUnitOfWorkFactory hands out a single prepared unit of work
type mockUnitOfWorkFactory struct {
	uow *mockUnitOfWork
}

func (f *mockUnitOfWorkFactory) Create() UnitOfWork {
	return f.uow
}
