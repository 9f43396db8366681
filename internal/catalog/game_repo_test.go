package catalog

import (
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/philmer-vdm/gamesess/internal/apperr"
	"github.com/philmer-vdm/gamesess/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Game{}))
	return db
}

func TestChildrenBackReference(t *testing.T) {
	db := newTestDB(t)
	repo := NewGameRepository(db)
	actor := models.Actor(1)

	base := &Game{Name: "Descent", Parts: "2-5"}
	require.NoError(t, repo.Create(base, actor))

	// No update to the parent: the child appears in Children by virtue of
	// its parent reference alone.
	scenario := &Game{Name: "Rellegar scenario", Parts: "2-5", ParentID: &base.ID}
	require.NoError(t, repo.Create(scenario, actor))

	children, err := repo.Children(base.ID)
	require.NoError(t, err)
	require.Len(t, children, 1)
	assert.Equal(t, scenario.ID, children[0].ID)

	// Deactivating the child does not touch the parent.
	require.NoError(t, repo.Deactivate(scenario.ID, actor))
	parent, err := repo.GetByID(base.ID)
	require.NoError(t, err)
	assert.True(t, parent.Active)
}

func TestChildrenOrderedByName(t *testing.T) {
	db := newTestDB(t)
	repo := NewGameRepository(db)
	actor := models.Actor(1)

	base := &Game{Name: "Pandemic"}
	require.NoError(t, repo.Create(base, actor))
	for _, name := range []string{"On the Brink", "In the Lab", "State of Emergency"} {
		require.NoError(t, repo.Create(&Game{Name: name, ParentID: &base.ID}, actor))
	}

	children, err := repo.Children(base.ID)
	require.NoError(t, err)
	require.Len(t, children, 3)
	assert.Equal(t, "In the Lab", children[0].Name)
	assert.Equal(t, "On the Brink", children[1].Name)
	assert.Equal(t, "State of Emergency", children[2].Name)
}

func TestCreateRejectsMissingParent(t *testing.T) {
	db := newTestDB(t)
	repo := NewGameRepository(db)

	missing := uint(999)
	err := repo.Create(&Game{Name: "Orphan", ParentID: &missing}, models.Actor(1))
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestSetParentRejectsCycles(t *testing.T) {
	db := newTestDB(t)
	repo := NewGameRepository(db)
	actor := models.Actor(1)

	a := &Game{Name: "A"}
	require.NoError(t, repo.Create(a, actor))
	b := &Game{Name: "B", ParentID: &a.ID}
	require.NoError(t, repo.Create(b, actor))
	c := &Game{Name: "C", ParentID: &b.ID}
	require.NoError(t, repo.Create(c, actor))

	// A -> B -> C; rooting A under C would close the loop.
	err := repo.SetParent(a.ID, &c.ID, actor)
	assert.True(t, apperr.IsValidation(err), "expected a validation failure, got %v", err)

	// Self-parenting is rejected outright.
	err = repo.SetParent(a.ID, &a.ID, actor)
	assert.True(t, apperr.IsValidation(err))

	// Detaching and legal re-rooting still work.
	require.NoError(t, repo.SetParent(c.ID, nil, actor))
	require.NoError(t, repo.SetParent(c.ID, &a.ID, actor))
}

func TestDeactivatedGameStaysResolvable(t *testing.T) {
	db := newTestDB(t)
	repo := NewGameRepository(db)
	actor := models.Actor(1)

	g := &Game{Name: "Twilight Struggle", Parts: "2"}
	require.NoError(t, repo.Create(g, actor))
	require.NoError(t, repo.Deactivate(g.ID, actor))

	got, err := repo.GetByID(g.ID)
	require.NoError(t, err)
	assert.False(t, got.Active)

	// Inactive games drop out of the default listing.
	games, total, err := repo.List(1, 10, "")
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, games)
}
