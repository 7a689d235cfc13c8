package application

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	profilemock "github.com/kickoff-hub/service-users/internal/mocks/domain/profile"
	"github.com/kickoff-hub/service-users/internal/repository/memory"
	"github.com/kickoff-hub/service-users/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestProfileService_RegisterProfile(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewProfileRepository()
	svc := NewProfileService(repo, zap.NewNop())

	addr := "Jl. Sudirman 1"
	dto, err := svc.RegisterProfile(ctx, RegisterProfileRequest{Email: "a@x.com", Name: "A", Address: &addr})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, dto.ID)
	assert.Equal(t, "a@x.com", dto.Email)
	assert.Equal(t, "A", dto.Name)
	require.NotNil(t, dto.Address)
	assert.Equal(t, addr, *dto.Address)

	exists, err := svc.UserExists(ctx, UserRequest{UserID: dto.ID.String()})
	require.NoError(t, err)
	assert.True(t, exists.Exists)
}

func TestProfileService_RegisterProfileTwiceConflicts(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewProfileRepository()
	svc := NewProfileService(repo, zap.NewNop())

	_, err := svc.RegisterProfile(ctx, RegisterProfileRequest{Email: "a@x.com", Name: "A"})
	require.NoError(t, err)

	_, err = svc.RegisterProfile(ctx, RegisterProfileRequest{Email: "a@x.com", Name: "A again"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, "user already exists", domain.Message(err))

	all, err := svc.ListProfiles(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestProfileService_UniqueIndexDecidesRace(t *testing.T) {
	repo := profilemock.NewProfileRepository(t)
	repo.On("FindByEmail", mock.Anything, "a@x.com").Return(nil, domain.NewNotFoundError("user"))
	repo.On("Save", mock.Anything, mock.Anything).Return(domain.NewConflictError("user already exists"))

	_, err := NewProfileService(repo, zap.NewNop()).RegisterProfile(context.Background(), RegisterProfileRequest{Email: "a@x.com", Name: "A"})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestProfileService_StoreFailurePropagates(t *testing.T) {
	repo := profilemock.NewProfileRepository(t)
	repo.On("FindByEmail", mock.Anything, "a@x.com").Return(nil, domain.NewStoreUnavailableError(errors.New("connection refused")))

	_, err := NewProfileService(repo, zap.NewNop()).RegisterProfile(context.Background(), RegisterProfileRequest{Email: "a@x.com", Name: "A"})
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestProfileService_UserExists(t *testing.T) {
	svc := NewProfileService(memory.NewProfileRepository(), zap.NewNop())

	out, err := svc.UserExists(context.Background(), UserRequest{UserID: uuid.NewString()})
	require.NoError(t, err)
	assert.False(t, out.Exists)

	_, err = svc.UserExists(context.Background(), UserRequest{UserID: "not-a-uuid"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestProfileService_ListProfilesKeepsCreationOrder(t *testing.T) {
	ctx := context.Background()
	svc := NewProfileService(memory.NewProfileRepository(), zap.NewNop())

	for _, email := range []string{"c@x.com", "a@x.com", "b@x.com"} {
		_, err := svc.RegisterProfile(ctx, RegisterProfileRequest{Email: email, Name: email})
		require.NoError(t, err)
	}

	all, err := svc.ListProfiles(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "c@x.com", all[0].Email)
	assert.Equal(t, "a@x.com", all[1].Email)
	assert.Equal(t, "b@x.com", all[2].Email)
}
