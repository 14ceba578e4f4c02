package business

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/iotaledger/e-commerce-tools/internal/domain/subscription/deps"
	"github.com/iotaledger/e-commerce-tools/internal/domain/subscription/dto"
	"github.com/iotaledger/e-commerce-tools/internal/domain/subscription/entities"
	suberrors "github.com/iotaledger/e-commerce-tools/internal/domain/subscription/errors"
	"github.com/iotaledger/e-commerce-tools/internal/infrastructure/metrics"
)

const (
	testChannelAddress = "testaddress"
	testIdentityID     = "did:iota:1234"
	testAuthorID       = "did:iota:author"
	testLink           = "testlink"
	testPublicKey      = "testpublickey"
	testState          = "teststate"
	testSeed           = "testseed"
	testPskID          = "testpskid"
	testPresharedKey   = "d57921c36648c411db5048b652ec11b8"
)

// mockSubscriptionRepo is a mock implementation of deps.SubscriptionRepository
type mockSubscriptionRepo struct {
	getByIdentityFunc  func(ctx context.Context, channelAddress, identityID string) (*entities.Subscription, error)
	getByPublicKeyFunc func(ctx context.Context, channelAddress, publicKey string) (*entities.Subscription, error)
	getByChannelFunc   func(ctx context.Context, channelAddress string, isAuthorized *bool) ([]entities.Subscription, error)
	addFunc            func(ctx context.Context, sub *entities.Subscription) error
	updateFunc         func(ctx context.Context, channelAddress, identityID string, patch *dto.SubscriptionPatch) error
	deleteFunc         func(ctx context.Context, channelAddress, identityID string) error
	added              *entities.Subscription
	deleted            bool
}

func (m *mockSubscriptionRepo) GetByIdentity(ctx context.Context, channelAddress, identityID string) (*entities.Subscription, error) {
	if m.getByIdentityFunc != nil {
		return m.getByIdentityFunc(ctx, channelAddress, identityID)
	}
	return nil, nil
}

func (m *mockSubscriptionRepo) GetByPublicKey(ctx context.Context, channelAddress, publicKey string) (*entities.Subscription, error) {
	if m.getByPublicKeyFunc != nil {
		return m.getByPublicKeyFunc(ctx, channelAddress, publicKey)
	}
	return nil, nil
}

func (m *mockSubscriptionRepo) GetByChannel(ctx context.Context, channelAddress string, isAuthorized *bool) ([]entities.Subscription, error) {
	if m.getByChannelFunc != nil {
		return m.getByChannelFunc(ctx, channelAddress, isAuthorized)
	}
	return nil, nil
}

func (m *mockSubscriptionRepo) Add(ctx context.Context, sub *entities.Subscription) error {
	if m.addFunc != nil {
		return m.addFunc(ctx, sub)
	}
	m.added = sub
	return nil
}

func (m *mockSubscriptionRepo) Update(ctx context.Context, channelAddress, identityID string, patch *dto.SubscriptionPatch) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, channelAddress, identityID, patch)
	}
	return nil
}

func (m *mockSubscriptionRepo) Delete(ctx context.Context, channelAddress, identityID string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, channelAddress, identityID)
	}
	m.deleted = true
	return nil
}

// mockStreamsClient is a mock implementation of deps.StreamsClient
type mockStreamsClient struct {
	requestSubscriptionFunc func(ctx context.Context, channelAddress, seed, presharedKey string) (*deps.SubscriptionHandle, error)
	exportStateFunc         func(ctx context.Context, handle *deps.SubscriptionHandle) (string, error)
	requested               bool
}

func (m *mockStreamsClient) RequestSubscription(ctx context.Context, channelAddress, seed, presharedKey string) (*deps.SubscriptionHandle, error) {
	m.requested = true
	if m.requestSubscriptionFunc != nil {
		return m.requestSubscriptionFunc(ctx, channelAddress, seed, presharedKey)
	}
	return &deps.SubscriptionHandle{
		ID:               "handle-1",
		SubscriptionLink: testLink,
		PublicKey:        testPublicKey,
		Seed:             testSeed,
	}, nil
}

func (m *mockStreamsClient) ExportState(ctx context.Context, handle *deps.SubscriptionHandle) (string, error) {
	if m.exportStateFunc != nil {
		return m.exportStateFunc(ctx, handle)
	}
	return testState, nil
}

// mockChannelInfo is a mock implementation of deps.ChannelInfoProvider
type mockChannelInfo struct {
	getAuthorIDFunc     func(ctx context.Context, channelAddress string) (string, error)
	addSubscriberIDFunc func(ctx context.Context, channelAddress, identityID string) error
	appended            []string
}

func (m *mockChannelInfo) GetAuthorID(ctx context.Context, channelAddress string) (string, error) {
	if m.getAuthorIDFunc != nil {
		return m.getAuthorIDFunc(ctx, channelAddress)
	}
	return testAuthorID, nil
}

func (m *mockChannelInfo) AddSubscriberID(ctx context.Context, channelAddress, identityID string) error {
	if m.addSubscriberIDFunc != nil {
		return m.addSubscriberIDFunc(ctx, channelAddress, identityID)
	}
	m.appended = append(m.appended, identityID)
	return nil
}

// mockEvents is a mock implementation of deps.EventPublisher
type mockEvents struct {
	notifyFunc func(ctx context.Context, eventType string, sub *entities.Subscription) error
	published  []string
}

func (m *mockEvents) NotifySubscriptionChanged(ctx context.Context, eventType string, sub *entities.Subscription) error {
	if m.notifyFunc != nil {
		return m.notifyFunc(ctx, eventType, sub)
	}
	m.published = append(m.published, eventType)
	return nil
}

func newTestUseCase(repo *mockSubscriptionRepo, streams *mockStreamsClient, channelInfo *mockChannelInfo, events *mockEvents) *UseCase {
	return NewUseCase(repo, streams, channelInfo, events, zerolog.Nop(), metrics.GetDefaultMetrics())
}

func TestRequestSubscription_PublicKeyPath(t *testing.T) {
	repo := &mockSubscriptionRepo{}
	streams := &mockStreamsClient{}
	channelInfo := &mockChannelInfo{}
	events := &mockEvents{}

	uc := newTestUseCase(repo, streams, channelInfo, events)

	resp, err := uc.RequestSubscription(context.Background(), testChannelAddress, testIdentityID, &dto.RequestSubscriptionBody{
		AccessRights: entities.AccessRightsReadAndWrite,
		Seed:         testSeed,
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if resp.Seed != testSeed {
		t.Errorf("Expected seed %q, got %q", testSeed, resp.Seed)
	}
	if resp.SubscriptionLink != testLink {
		t.Errorf("Expected subscription link %q, got %q", testLink, resp.SubscriptionLink)
	}

	sub := repo.added
	if sub == nil {
		t.Fatal("Expected subscription to be persisted")
	}
	if sub.ChannelAddress != testChannelAddress || sub.IdentityID != testIdentityID {
		t.Errorf("Unexpected identifiers: %q %q", sub.ChannelAddress, sub.IdentityID)
	}
	if sub.Type != entities.SubscriptionTypeSubscriber {
		t.Errorf("Expected subscriber type, got %q", sub.Type)
	}
	if sub.AccessRights != entities.AccessRightsReadAndWrite {
		t.Errorf("Expected ReadAndWrite access rights, got %q", sub.AccessRights)
	}
	if sub.IsAuthorized {
		t.Error("Expected new subscription to be unauthorized")
	}
	if sub.PublicKey != testPublicKey {
		t.Errorf("Expected public key %q, got %q", testPublicKey, sub.PublicKey)
	}
	if sub.State != testState {
		t.Errorf("Expected state %q, got %q", testState, sub.State)
	}
	if sub.KeyloadLink != "" {
		t.Errorf("Expected empty keyload link, got %q", sub.KeyloadLink)
	}

	if len(channelInfo.appended) != 1 || channelInfo.appended[0] != testIdentityID {
		t.Errorf("Expected subscriber appended to channel info, got %v", channelInfo.appended)
	}
	if len(events.published) != 1 || events.published[0] != EventSubscriptionRequested {
		t.Errorf("Expected requested event, got %v", events.published)
	}
}

func TestRequestSubscription_PresharedKeyPath(t *testing.T) {
	repo := &mockSubscriptionRepo{}
	streams := &mockStreamsClient{
		requestSubscriptionFunc: func(ctx context.Context, channelAddress, seed, presharedKey string) (*deps.SubscriptionHandle, error) {
			if presharedKey != testPresharedKey {
				t.Errorf("Expected preshared key to be forwarded, got %q", presharedKey)
			}
			return &deps.SubscriptionHandle{
				ID:               "handle-1",
				SubscriptionLink: testLink,
				PskID:            testPskID,
				Seed:             testSeed,
			}, nil
		},
	}
	channelInfo := &mockChannelInfo{}
	events := &mockEvents{}

	uc := newTestUseCase(repo, streams, channelInfo, events)

	resp, err := uc.RequestSubscription(context.Background(), testChannelAddress, testIdentityID, &dto.RequestSubscriptionBody{
		AccessRights: entities.AccessRightsReadAndWrite,
		PresharedKey: testPresharedKey,
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if resp.SubscriptionLink != testLink {
		t.Errorf("Expected subscription link %q, got %q", testLink, resp.SubscriptionLink)
	}

	sub := repo.added
	if sub == nil {
		t.Fatal("Expected subscription to be persisted")
	}
	if sub.AccessRights != entities.AccessRightsAudit {
		t.Errorf("Expected Audit access rights, got %q", sub.AccessRights)
	}
	if !sub.IsAuthorized {
		t.Error("Expected preshared-key subscription to be authorized immediately")
	}
	if sub.KeyloadLink != testChannelAddress {
		t.Errorf("Expected keyload link %q, got %q", testChannelAddress, sub.KeyloadLink)
	}
	if sub.PskID != testPskID {
		t.Errorf("Expected psk id %q, got %q", testPskID, sub.PskID)
	}
	if sub.PublicKey != "" {
		t.Errorf("Expected no public key, got %q", sub.PublicKey)
	}
	if !sub.UsesPresharedKey() {
		t.Error("Expected subscription to report preshared key usage")
	}
}

func TestRequestSubscription_AlreadyRequested(t *testing.T) {
	repo := &mockSubscriptionRepo{
		getByIdentityFunc: func(ctx context.Context, channelAddress, identityID string) (*entities.Subscription, error) {
			return &entities.Subscription{ChannelAddress: channelAddress, IdentityID: identityID}, nil
		},
	}
	streams := &mockStreamsClient{}

	uc := newTestUseCase(repo, streams, &mockChannelInfo{}, &mockEvents{})

	_, err := uc.RequestSubscription(context.Background(), testChannelAddress, testIdentityID, &dto.RequestSubscriptionBody{})
	if !errors.Is(err, suberrors.ErrAlreadyRequested) {
		t.Fatalf("Expected ErrAlreadyRequested, got %v", err)
	}
	if streams.requested {
		t.Error("Expected no ledger call when the pair already holds a subscription")
	}
}

func TestRequestSubscription_DuplicatePublicKey(t *testing.T) {
	repo := &mockSubscriptionRepo{
		getByPublicKeyFunc: func(ctx context.Context, channelAddress, publicKey string) (*entities.Subscription, error) {
			return &entities.Subscription{ChannelAddress: channelAddress, IdentityID: "did:iota:other", PublicKey: publicKey}, nil
		},
	}
	channelInfo := &mockChannelInfo{}

	uc := newTestUseCase(repo, &mockStreamsClient{}, channelInfo, &mockEvents{})

	_, err := uc.RequestSubscription(context.Background(), testChannelAddress, testIdentityID, &dto.RequestSubscriptionBody{})
	if !errors.Is(err, suberrors.ErrPublicKeyInUse) {
		t.Fatalf("Expected ErrPublicKeyInUse, got %v", err)
	}
	if repo.added != nil {
		t.Error("Expected nothing persisted on duplicate public key")
	}
	if len(channelInfo.appended) != 0 {
		t.Error("Expected no subscriber append on duplicate public key")
	}
}

func TestRequestSubscription_LedgerFailure(t *testing.T) {
	streams := &mockStreamsClient{
		requestSubscriptionFunc: func(ctx context.Context, channelAddress, seed, presharedKey string) (*deps.SubscriptionHandle, error) {
			return nil, errors.New("gateway unreachable")
		},
	}
	repo := &mockSubscriptionRepo{}

	uc := newTestUseCase(repo, streams, &mockChannelInfo{}, &mockEvents{})

	_, err := uc.RequestSubscription(context.Background(), testChannelAddress, testIdentityID, &dto.RequestSubscriptionBody{})
	if !errors.Is(err, suberrors.ErrRequestFailed) {
		t.Fatalf("Expected ErrRequestFailed, got %v", err)
	}
	if repo.added != nil {
		t.Error("Expected nothing persisted on ledger failure")
	}
}

func TestRequestSubscription_MissingIdentifiers(t *testing.T) {
	uc := newTestUseCase(&mockSubscriptionRepo{}, &mockStreamsClient{}, &mockChannelInfo{}, &mockEvents{})

	if _, err := uc.RequestSubscription(context.Background(), "", testIdentityID, nil); !errors.Is(err, suberrors.ErrMissingChannelOrIdentity) {
		t.Errorf("Expected ErrMissingChannelOrIdentity for empty channel, got %v", err)
	}
	if _, err := uc.RequestSubscription(context.Background(), testChannelAddress, "", nil); !errors.Is(err, suberrors.ErrMissingChannelOrIdentity) {
		t.Errorf("Expected ErrMissingChannelOrIdentity for empty identity, got %v", err)
	}
}

func TestRequestSubscription_SubscriberAppendFailureDoesNotFail(t *testing.T) {
	repo := &mockSubscriptionRepo{}
	channelInfo := &mockChannelInfo{
		addSubscriberIDFunc: func(ctx context.Context, channelAddress, identityID string) error {
			return errors.New("channel info unavailable")
		},
	}

	uc := newTestUseCase(repo, &mockStreamsClient{}, channelInfo, &mockEvents{})

	if _, err := uc.RequestSubscription(context.Background(), testChannelAddress, testIdentityID, &dto.RequestSubscriptionBody{}); err != nil {
		t.Fatalf("Expected subscriber append failure to be swallowed, got %v", err)
	}
	if repo.added == nil {
		t.Error("Expected subscription to be persisted despite append failure")
	}
}

func TestRequestSubscription_DuplicateRaceOnInsert(t *testing.T) {
	repo := &mockSubscriptionRepo{
		addFunc: func(ctx context.Context, sub *entities.Subscription) error {
			return suberrors.ErrAlreadyAdded
		},
	}

	uc := newTestUseCase(repo, &mockStreamsClient{}, &mockChannelInfo{}, &mockEvents{})

	_, err := uc.RequestSubscription(context.Background(), testChannelAddress, testIdentityID, &dto.RequestSubscriptionBody{})
	if !errors.Is(err, suberrors.ErrAlreadyRequested) {
		t.Fatalf("Expected lost insert race to surface as ErrAlreadyRequested, got %v", err)
	}
}

func TestAddSubscription(t *testing.T) {
	t.Run("MissingPublicKey", func(t *testing.T) {
		uc := newTestUseCase(&mockSubscriptionRepo{}, &mockStreamsClient{}, &mockChannelInfo{}, &mockEvents{})

		err := uc.AddSubscription(context.Background(), &entities.Subscription{
			ChannelAddress: testChannelAddress,
			IdentityID:     testIdentityID,
		})
		if !errors.Is(err, suberrors.ErrMissingPublicKey) {
			t.Fatalf("Expected ErrMissingPublicKey, got %v", err)
		}
	})

	t.Run("AlreadyAdded", func(t *testing.T) {
		repo := &mockSubscriptionRepo{
			getByIdentityFunc: func(ctx context.Context, channelAddress, identityID string) (*entities.Subscription, error) {
				return &entities.Subscription{ChannelAddress: channelAddress, IdentityID: identityID}, nil
			},
		}
		uc := newTestUseCase(repo, &mockStreamsClient{}, &mockChannelInfo{}, &mockEvents{})

		err := uc.AddSubscription(context.Background(), &entities.Subscription{
			ChannelAddress: testChannelAddress,
			IdentityID:     testIdentityID,
			PublicKey:      testPublicKey,
		})
		if !errors.Is(err, suberrors.ErrAlreadyAdded) {
			t.Fatalf("Expected ErrAlreadyAdded, got %v", err)
		}
	})

	t.Run("Success", func(t *testing.T) {
		repo := &mockSubscriptionRepo{}
		events := &mockEvents{}
		uc := newTestUseCase(repo, &mockStreamsClient{}, &mockChannelInfo{}, events)

		err := uc.AddSubscription(context.Background(), &entities.Subscription{
			ChannelAddress: testChannelAddress,
			IdentityID:     testIdentityID,
			PublicKey:      testPublicKey,
			State:          testState,
		})
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if repo.added == nil {
			t.Fatal("Expected subscription to be persisted")
		}
		if repo.added.Type != entities.SubscriptionTypeSubscriber {
			t.Errorf("Expected defaulted subscriber type, got %q", repo.added.Type)
		}
		if len(events.published) != 1 || events.published[0] != EventSubscriptionAdded {
			t.Errorf("Expected added event, got %v", events.published)
		}
	})
}

func TestUpdateSubscription_Authorization(t *testing.T) {
	existing := func(ctx context.Context, channelAddress, identityID string) (*entities.Subscription, error) {
		return &entities.Subscription{
			ChannelAddress: channelAddress,
			IdentityID:     identityID,
			AccessRights:   entities.AccessRightsRead,
		}, nil
	}
	authorized := true
	patch := &dto.SubscriptionPatch{IsAuthorized: &authorized, KeyloadLink: strPtr(testLink)}

	t.Run("AuthorMayUpdateOthers", func(t *testing.T) {
		repo := &mockSubscriptionRepo{getByIdentityFunc: existing}
		events := &mockEvents{}
		uc := newTestUseCase(repo, &mockStreamsClient{}, &mockChannelInfo{}, events)

		if err := uc.UpdateSubscription(context.Background(), testChannelAddress, testIdentityID, testAuthorID, patch); err != nil {
			t.Fatalf("Expected author update to succeed, got %v", err)
		}
		if len(events.published) != 1 || events.published[0] != EventSubscriptionUpdated {
			t.Errorf("Expected updated event, got %v", events.published)
		}
	})

	t.Run("SubscriberMayUpdateSelf", func(t *testing.T) {
		repo := &mockSubscriptionRepo{getByIdentityFunc: existing}
		uc := newTestUseCase(repo, &mockStreamsClient{}, &mockChannelInfo{}, &mockEvents{})

		if err := uc.UpdateSubscription(context.Background(), testChannelAddress, testIdentityID, testIdentityID, patch); err != nil {
			t.Fatalf("Expected self update to succeed, got %v", err)
		}
	})

	t.Run("StrangerRejected", func(t *testing.T) {
		repo := &mockSubscriptionRepo{getByIdentityFunc: existing}
		uc := newTestUseCase(repo, &mockStreamsClient{}, &mockChannelInfo{}, &mockEvents{})

		err := uc.UpdateSubscription(context.Background(), testChannelAddress, testIdentityID, "did:iota:stranger", patch)
		if !errors.Is(err, suberrors.ErrUpdateNotAuthorized) {
			t.Fatalf("Expected ErrUpdateNotAuthorized, got %v", err)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		uc := newTestUseCase(&mockSubscriptionRepo{}, &mockStreamsClient{}, &mockChannelInfo{}, &mockEvents{})

		err := uc.UpdateSubscription(context.Background(), testChannelAddress, testIdentityID, testAuthorID, patch)
		if !errors.Is(err, suberrors.ErrSubscriptionNotFound) {
			t.Fatalf("Expected ErrSubscriptionNotFound, got %v", err)
		}
	})
}

func TestDeleteSubscription(t *testing.T) {
	existing := func(ctx context.Context, channelAddress, identityID string) (*entities.Subscription, error) {
		return &entities.Subscription{ChannelAddress: channelAddress, IdentityID: identityID}, nil
	}

	t.Run("AuthorMayDeleteOthers", func(t *testing.T) {
		repo := &mockSubscriptionRepo{getByIdentityFunc: existing}
		channelInfo := &mockChannelInfo{}
		events := &mockEvents{}
		uc := newTestUseCase(repo, &mockStreamsClient{}, channelInfo, events)

		if err := uc.DeleteSubscription(context.Background(), testChannelAddress, testIdentityID, testAuthorID); err != nil {
			t.Fatalf("Expected author delete to succeed, got %v", err)
		}
		if !repo.deleted {
			t.Error("Expected record to be deleted")
		}
		// The subscriber list keeps the deleted identity
		if len(channelInfo.appended) != 0 {
			t.Errorf("Expected no subscriber list mutation on delete, got %v", channelInfo.appended)
		}
		if len(events.published) != 1 || events.published[0] != EventSubscriptionDeleted {
			t.Errorf("Expected deleted event, got %v", events.published)
		}
	})

	t.Run("StrangerRejected", func(t *testing.T) {
		repo := &mockSubscriptionRepo{getByIdentityFunc: existing}
		uc := newTestUseCase(repo, &mockStreamsClient{}, &mockChannelInfo{}, &mockEvents{})

		err := uc.DeleteSubscription(context.Background(), testChannelAddress, testIdentityID, "did:iota:stranger")
		if !errors.Is(err, suberrors.ErrDeleteNotAuthorized) {
			t.Fatalf("Expected ErrDeleteNotAuthorized, got %v", err)
		}
		if repo.deleted {
			t.Error("Expected no deletion for unauthorized caller")
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		uc := newTestUseCase(&mockSubscriptionRepo{}, &mockStreamsClient{}, &mockChannelInfo{}, &mockEvents{})

		err := uc.DeleteSubscription(context.Background(), testChannelAddress, testIdentityID, testAuthorID)
		if !errors.Is(err, suberrors.ErrSubscriptionNotFound) {
			t.Fatalf("Expected ErrSubscriptionNotFound, got %v", err)
		}
	})
}

func TestCanMutate(t *testing.T) {
	cases := []struct {
		name     string
		author   string
		acting   string
		target   string
		expected bool
	}{
		{"Author", testAuthorID, testAuthorID, testIdentityID, true},
		{"Self", testAuthorID, testIdentityID, testIdentityID, true},
		{"Stranger", testAuthorID, "did:iota:stranger", testIdentityID, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := canMutate(tc.author, tc.acting, tc.target); got != tc.expected {
				t.Errorf("canMutate(%q, %q, %q) = %v, want %v", tc.author, tc.acting, tc.target, got, tc.expected)
			}
		})
	}
}

func strPtr(s string) *string {
	return &s
}
