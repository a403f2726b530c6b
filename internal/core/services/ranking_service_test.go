package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matchmyvibe/roommate-service/internal/core/domain"
	"github.com/matchmyvibe/roommate-service/internal/core/ports"
	"github.com/matchmyvibe/roommate-service/internal/core/services"
	"github.com/matchmyvibe/roommate-service/test/mocks"
)

func TestRankingService_RankedMatches(t *testing.T) {
	ctx := context.Background()
	store := mocks.NewMockStore()
	store.SeedProfile(ana)

	twin := mocks.NewTestProfile("twin", "", map[string]string{"daily_rhythm": "morning", "lifestyle": "social"})
	for _, room := range []domain.Room{
		mocks.NewTestRoom("liked", 2),
		mocks.NewTestRoom("disliked", 2),
		mocks.NewTestRoom("empty", 2),
		mocks.NewTestRoom("twin", 3, twin),
		mocks.NewTestRoom("full", 1, twin),
	} {
		require.NoError(t, store.SeedRoom(ctx, room))
	}
	store.SeedSwipe(ana.ID, "liked", domain.DirectionRight)
	store.SeedSwipe(ana.ID, "disliked", domain.DirectionLeft)

	metrics := mocks.NewMockMetrics()
	svc := services.NewRankingService(store, store, store, nil, metrics, nil)

	ranked, err := svc.RankedMatches(ctx, ana.ID)
	require.NoError(t, err)

	require.Len(t, ranked, 2)
	assert.Equal(t, "twin", ranked[0].RoomID)
	assert.Equal(t, 70.0, ranked[0].Score)
	assert.Equal(t, "empty", ranked[1].RoomID)
	assert.Equal(t, []int{2}, metrics.Rankings)
}

func TestRankingService_SkipsCallersOwnRoom(t *testing.T) {
	ctx := context.Background()
	store := mocks.NewMockStore()
	store.SeedProfile(ana)
	require.NoError(t, store.SeedRoom(ctx, mocks.NewTestRoom("home", 4, ana, ben)))
	require.NoError(t, store.SeedRoom(ctx, mocks.NewTestRoom("empty", 2)))

	svc := services.NewRankingService(store, store, store, nil, nil, nil)

	ranked, err := svc.RankedMatches(ctx, ana.ID)
	require.NoError(t, err)

	require.Len(t, ranked, 1)
	assert.Equal(t, "empty", ranked[0].RoomID)
	assert.Equal(t, 35.0, ranked[0].Score)
}

func TestRankingService_Errors(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(*mocks.MockStore)
		wantErr error
	}{
		{name: "unknown_user", setup: func(*mocks.MockStore) {}, wantErr: ports.ErrNotFound},
		{
			name: "rooms_unavailable",
			setup: func(m *mocks.MockStore) {
				m.SeedProfile(ana)
				m.ListRoomsError = errors.New("db down")
			},
		},
		{
			name: "swipes_unavailable",
			setup: func(m *mocks.MockStore) {
				m.SeedProfile(ana)
				m.GetSwipesError = errors.New("db down")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := mocks.NewMockStore()
			tt.setup(store)
			svc := services.NewRankingService(store, store, store, nil, nil, nil)

			_, err := svc.RankedMatches(context.Background(), ana.ID)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}
