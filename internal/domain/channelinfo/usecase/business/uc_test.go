package business

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/iotaledger/e-commerce-tools/internal/domain/channelinfo/entities"
	cherrors "github.com/iotaledger/e-commerce-tools/internal/domain/channelinfo/errors"
	"github.com/iotaledger/e-commerce-tools/internal/infrastructure/metrics"
)

const (
	testChannelAddress = "testaddress"
	testAuthorID       = "did:iota:author"
)

// mockChannelRepo is a mock implementation of deps.ChannelInfoRepository
type mockChannelRepo struct {
	getFunc             func(ctx context.Context, channelAddress string) (*entities.ChannelInfo, error)
	addSubscriberIDFunc func(ctx context.Context, channelAddress, subscriberID string) error
	added               *entities.ChannelInfo
	updated             *entities.ChannelInfo
	deleted             bool
}

func (m *mockChannelRepo) Get(ctx context.Context, channelAddress string) (*entities.ChannelInfo, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, channelAddress)
	}
	return nil, nil
}

func (m *mockChannelRepo) Add(ctx context.Context, info *entities.ChannelInfo) error {
	m.added = info
	return nil
}

func (m *mockChannelRepo) Update(ctx context.Context, info *entities.ChannelInfo) error {
	m.updated = info
	return nil
}

func (m *mockChannelRepo) Delete(ctx context.Context, channelAddress string) error {
	m.deleted = true
	return nil
}

func (m *mockChannelRepo) Search(ctx context.Context, authorID string, limit, offset int) ([]entities.ChannelInfo, error) {
	return nil, nil
}

func (m *mockChannelRepo) AddSubscriberID(ctx context.Context, channelAddress, subscriberID string) error {
	if m.addSubscriberIDFunc != nil {
		return m.addSubscriberIDFunc(ctx, channelAddress, subscriberID)
	}
	return nil
}

// mockChannelEvents is a mock implementation of deps.EventPublisher
type mockChannelEvents struct {
	published []string
}

func (m *mockChannelEvents) NotifyChannelChanged(ctx context.Context, eventType string, info *entities.ChannelInfo) error {
	m.published = append(m.published, eventType)
	return nil
}

func newTestUseCase(repo *mockChannelRepo, events *mockChannelEvents) *UseCase {
	return NewUseCase(repo, events, zerolog.Nop(), metrics.GetDefaultMetrics())
}

func existingChannel(ctx context.Context, channelAddress string) (*entities.ChannelInfo, error) {
	return &entities.ChannelInfo{
		ChannelAddress: channelAddress,
		AuthorID:       testAuthorID,
		SubscriberIDs:  []string{testAuthorID},
	}, nil
}

func TestAddChannelInfo(t *testing.T) {
	t.Run("AuthorJoinsSubscriberList", func(t *testing.T) {
		repo := &mockChannelRepo{}
		events := &mockChannelEvents{}
		uc := newTestUseCase(repo, events)

		err := uc.AddChannelInfo(context.Background(), &entities.ChannelInfo{
			ChannelAddress: testChannelAddress,
			AuthorID:       testAuthorID,
			Topics:         []entities.Topic{{Type: "private", Source: "device"}},
		})
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if repo.added == nil {
			t.Fatal("Expected channel to be persisted")
		}
		if !repo.added.HasSubscriber(testAuthorID) {
			t.Error("Expected author on the subscriber list")
		}
		if len(events.published) != 1 || events.published[0] != EventChannelCreated {
			t.Errorf("Expected created event, got %v", events.published)
		}
	})

	t.Run("MissingAuthor", func(t *testing.T) {
		uc := newTestUseCase(&mockChannelRepo{}, &mockChannelEvents{})

		err := uc.AddChannelInfo(context.Background(), &entities.ChannelInfo{ChannelAddress: testChannelAddress})
		if !errors.Is(err, cherrors.ErrMissingAuthor) {
			t.Fatalf("Expected ErrMissingAuthor, got %v", err)
		}
	})
}

func TestUpdateChannelInfo_AuthorOnly(t *testing.T) {
	t.Run("AuthorSucceeds", func(t *testing.T) {
		repo := &mockChannelRepo{getFunc: existingChannel}
		uc := newTestUseCase(repo, &mockChannelEvents{})

		err := uc.UpdateChannelInfo(context.Background(), &entities.ChannelInfo{
			ChannelAddress: testChannelAddress,
			Name:           "renamed",
		}, testAuthorID)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if repo.updated == nil || repo.updated.Name != "renamed" {
			t.Errorf("Expected update to be persisted, got %+v", repo.updated)
		}
	})

	t.Run("StrangerRejected", func(t *testing.T) {
		repo := &mockChannelRepo{getFunc: existingChannel}
		uc := newTestUseCase(repo, &mockChannelEvents{})

		err := uc.UpdateChannelInfo(context.Background(), &entities.ChannelInfo{
			ChannelAddress: testChannelAddress,
		}, "did:iota:stranger")
		if !errors.Is(err, cherrors.ErrChannelNotAuthorized) {
			t.Fatalf("Expected ErrChannelNotAuthorized, got %v", err)
		}
		if repo.updated != nil {
			t.Error("Expected no update for unauthorized caller")
		}
	})

	t.Run("UnknownChannel", func(t *testing.T) {
		uc := newTestUseCase(&mockChannelRepo{}, &mockChannelEvents{})

		err := uc.UpdateChannelInfo(context.Background(), &entities.ChannelInfo{
			ChannelAddress: testChannelAddress,
		}, testAuthorID)
		if !errors.Is(err, cherrors.ErrChannelNotFound) {
			t.Fatalf("Expected ErrChannelNotFound, got %v", err)
		}
	})
}

func TestDeleteChannelInfo_AuthorOnly(t *testing.T) {
	t.Run("AuthorSucceeds", func(t *testing.T) {
		repo := &mockChannelRepo{getFunc: existingChannel}
		events := &mockChannelEvents{}
		uc := newTestUseCase(repo, events)

		if err := uc.DeleteChannelInfo(context.Background(), testChannelAddress, testAuthorID); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if !repo.deleted {
			t.Error("Expected channel to be deleted")
		}
		if len(events.published) != 1 || events.published[0] != EventChannelDeleted {
			t.Errorf("Expected deleted event, got %v", events.published)
		}
	})

	t.Run("StrangerRejected", func(t *testing.T) {
		repo := &mockChannelRepo{getFunc: existingChannel}
		uc := newTestUseCase(repo, &mockChannelEvents{})

		err := uc.DeleteChannelInfo(context.Background(), testChannelAddress, "did:iota:stranger")
		if !errors.Is(err, cherrors.ErrChannelNotAuthorized) {
			t.Fatalf("Expected ErrChannelNotAuthorized, got %v", err)
		}
	})
}

func TestGetAuthorID(t *testing.T) {
	t.Run("ResolvesAuthor", func(t *testing.T) {
		uc := newTestUseCase(&mockChannelRepo{getFunc: existingChannel}, &mockChannelEvents{})

		authorID, err := uc.GetAuthorID(context.Background(), testChannelAddress)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if authorID != testAuthorID {
			t.Errorf("Expected author %q, got %q", testAuthorID, authorID)
		}
	})

	t.Run("UnknownChannel", func(t *testing.T) {
		uc := newTestUseCase(&mockChannelRepo{}, &mockChannelEvents{})

		if _, err := uc.GetAuthorID(context.Background(), testChannelAddress); !errors.Is(err, cherrors.ErrChannelNotFound) {
			t.Fatalf("Expected ErrChannelNotFound, got %v", err)
		}
	})
}
