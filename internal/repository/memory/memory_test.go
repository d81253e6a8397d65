package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/Kerhoff/CartoboT/internal/models"
	"github.com/Kerhoff/CartoboT/internal/repository"
)

type MemoryStoreSuite struct {
	suite.Suite
	users repository.UserRepository
	lists repository.ShoppingListRepository
	ctx   context.Context
}

func (s *MemoryStoreSuite) SetupTest() {
	s.users = NewUserRepository()
	s.lists = NewShoppingListRepository()
	s.ctx = context.Background()
}

func TestMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(MemoryStoreSuite))
}

func (s *MemoryStoreSuite) newListWith(t *testing.T, owner string, names ...string) *models.ShoppingList {
	t.Helper()
	list, err := models.NewShoppingList(owner)
	require.NoError(t, err)
	for _, name := range names {
		item, err := models.NewShoppingItem(name, 1, "", "", "")
		require.NoError(t, err)
		list.AddItem(item)
	}
	require.NoError(s.T(), s.lists.Update(s.ctx, list))
	return list
}

func (s *MemoryStoreSuite) TestUserGetOrCreate() {
	s.Run("absent user is nil, not an error", func() {
		user, err := s.users.GetByExternalID(s.ctx, "ghost")
		s.Require().NoError(err)
		s.Nil(user)
	})

	s.Run("creates then returns same user", func() {
		first, err := s.users.GetOrCreate(s.ctx, "user-1")
		s.Require().NoError(err)
		s.Equal("User user-1", first.DisplayName)

		second, err := s.users.GetOrCreate(s.ctx, "user-1")
		s.Require().NoError(err)
		s.Equal(first.ExternalID, second.ExternalID)
		s.Equal(first.CreatedAt, second.CreatedAt)
	})

	s.Run("duplicate create returns the existing record", func() {
		existing, err := s.users.GetOrCreate(s.ctx, "user-2")
		s.Require().NoError(err)

		dup, err := models.NewUser("user-2")
		s.Require().NoError(err)
		got, err := s.users.Create(s.ctx, dup)
		s.Require().NoError(err)
		s.Equal(existing.CreatedAt, got.CreatedAt)
	})
}

func (s *MemoryStoreSuite) TestListLifecycle() {
	s.Run("get-or-create yields empty default list", func() {
		list, err := s.lists.GetOrCreate(s.ctx, "user-1")
		s.Require().NoError(err)
		s.Equal(models.DefaultListName, list.ListName)
		s.Empty(list.Items)
	})

	s.Run("update upserts and delete reports", func() {
		s.newListWith(s.T(), "user-2", "Milk")

		deleted, err := s.lists.Delete(s.ctx, "user-2")
		s.Require().NoError(err)
		s.True(deleted)

		deleted, err = s.lists.Delete(s.ctx, "user-2")
		s.Require().NoError(err)
		s.False(deleted)
	})
}

func (s *MemoryStoreSuite) TestRemoveItemsByNameBulk() {
	s.newListWith(s.T(), "user-1", "Eggs", "Milk", "EGGS")

	removed, err := s.lists.RemoveItemsByName(s.ctx, "user-1", "eggs")
	s.Require().NoError(err)
	s.True(removed)

	list, err := s.lists.GetByOwner(s.ctx, "user-1")
	s.Require().NoError(err)
	s.Require().Len(list.Items, 1)
	s.Equal("Milk", list.Items[0].Name)

	removed, err = s.lists.RemoveItemsByName(s.ctx, "user-1", "eggs")
	s.Require().NoError(err)
	s.False(removed)
}

// Mutating a loaded list must not leak into the store until Update is called;
// this boundary is what makes the lost-update anomaly reproducible.
func (s *MemoryStoreSuite) TestLoadStoreBoundaryIsolation() {
	s.newListWith(s.T(), "user-1", "Milk")

	loaded, err := s.lists.GetByOwner(s.ctx, "user-1")
	s.Require().NoError(err)
	loaded.Items[0].MarkChecked()

	stored, err := s.lists.GetByOwner(s.ctx, "user-1")
	s.Require().NoError(err)
	s.False(stored.Items[0].Checked)
}
