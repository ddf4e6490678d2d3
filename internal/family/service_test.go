package family_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"custodia/internal/family"
)

func TestService_Children(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	repo := family.NewMockRepository(ctrl)
	repo.EXPECT().
		ListChildren(gomock.Any(), userID).
		Return([]*family.Child{
			{ID: uuid.New(), Name: "Ana"},
			{ID: uuid.New(), Name: "Pedro"},
		}, nil)

	svc := family.NewService(repo)
	got, err := svc.Children(context.Background(), userID)

	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestService_Child_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	childID := uuid.New()
	repo := family.NewMockRepository(ctrl)
	repo.EXPECT().
		GetChild(gomock.Any(), userID, childID).
		Return(nil, family.ErrNotFound)

	svc := family.NewService(repo)
	_, err := svc.Child(context.Background(), userID, childID)

	assert.ErrorIs(t, err, family.ErrNotFound)
}

func TestService_LegalCases_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	repo := family.NewMockRepository(ctrl)
	repo.EXPECT().
		ListLegalCases(gomock.Any(), userID).
		Return(nil, errors.New("db error"))

	svc := family.NewService(repo)
	_, err := svc.LegalCases(context.Background(), userID)

	assert.Error(t, err)
}
