package club

import (
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/philmer-vdm/gamesess/internal/apperr"
	"github.com/philmer-vdm/gamesess/internal/gamer"
	"github.com/philmer-vdm/gamesess/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&gamer.Gamer{}, &Club{}, &GamerClub{}))
	return db
}

func seedClub(t *testing.T, repo ClubRepository, name string, public bool) *Club {
	t.Helper()
	c := &Club{Name: name, Public: public}
	require.NoError(t, repo.Create(c, models.Actor(1)))
	return c
}

func TestListPublicExcludesPrivateAndInactive(t *testing.T) {
	db := newTestDB(t)
	repo := NewClubRepository(db)

	seedClub(t, repo, "Zanzibar", true)
	seedClub(t, repo, "Aurochs", true)
	seedClub(t, repo, "Cachette", false)
	gone := seedClub(t, repo, "Disparu", true)
	require.NoError(t, repo.Deactivate(gone.ID, models.Actor(1)))

	clubs, err := repo.ListPublic()
	require.NoError(t, err)
	require.Len(t, clubs, 2)
	assert.Equal(t, "Aurochs", clubs[0].Name)
	assert.Equal(t, "Zanzibar", clubs[1].Name)

	// A deactivated club still resolves directly, for audit references.
	got, err := repo.GetByID(gone.ID)
	require.NoError(t, err)
	assert.False(t, got.Active)
}

func TestListForGamerIncludesPrivateMemberships(t *testing.T) {
	db := newTestDB(t)
	repo := NewClubRepository(db)
	actor := models.Actor(1)

	private := seedClub(t, repo, "Cachette", false)
	public := seedClub(t, repo, "Ouvert", true)
	other := seedClub(t, repo, "Ailleurs", true)

	require.NoError(t, repo.AddMember(private.ID, 9, RoleUser, actor))
	require.NoError(t, repo.AddMember(public.ID, 9, RoleManager, actor))
	require.NoError(t, repo.AddMember(other.ID, 10, RoleUser, actor))

	clubs, err := repo.ListForGamer(9)
	require.NoError(t, err)
	require.Len(t, clubs, 2)
	assert.Equal(t, "Cachette", clubs[0].Name)
	assert.Equal(t, "Ouvert", clubs[1].Name)

	require.NoError(t, repo.RemoveMember(private.ID, 9, actor))
	clubs, err = repo.ListForGamer(9)
	require.NoError(t, err)
	require.Len(t, clubs, 1)
	assert.Equal(t, "Ouvert", clubs[0].Name)
}

func TestMembershipLifecycle(t *testing.T) {
	db := newTestDB(t)
	repo := NewClubRepository(db)
	actor := models.Actor(1)

	c := seedClub(t, repo, "Le Cercle", true)

	require.NoError(t, repo.AddMember(c.ID, 9, RoleUser, actor))

	err := repo.AddMember(c.ID, 9, RoleUser, actor)
	assert.True(t, apperr.IsValidation(err), "duplicate active membership must be rejected")

	err = repo.AddMember(c.ID, 10, RoleUnknown, actor)
	assert.True(t, apperr.IsValidation(err), "unknown role must be rejected")

	role, err := repo.RoleFor(9, c.ID)
	require.NoError(t, err)
	assert.Equal(t, RoleUser, role)

	require.NoError(t, repo.ChangeMemberRole(c.ID, 9, RoleManager, actor))
	role, err = repo.RoleFor(9, c.ID)
	require.NoError(t, err)
	assert.Equal(t, RoleManager, role)

	// Removing then re-adding reuses the same row instead of stacking.
	require.NoError(t, repo.RemoveMember(c.ID, 9, actor))
	role, err = repo.RoleFor(9, c.ID)
	require.NoError(t, err)
	assert.Equal(t, RoleUnknown, role)

	require.NoError(t, repo.AddMember(c.ID, 9, RoleUser, actor))
	var count int64
	require.NoError(t, db.Model(&GamerClub{}).Where("club_id = ? AND gamer_id = ?", c.ID, 9).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	role, err = repo.RoleFor(9, c.ID)
	require.NoError(t, err)
	assert.Equal(t, RoleUser, role)
}

func TestRoleForNonMember(t *testing.T) {
	db := newTestDB(t)
	repo := NewClubRepository(db)

	role, err := repo.RoleFor(9, 12345)
	require.NoError(t, err)
	assert.Equal(t, RoleUnknown, role)
	assert.False(t, role.CanParticipate())
	assert.False(t, role.CanAdminister())
	assert.True(t, RoleManager.CanParticipate())
	assert.True(t, RoleManager.CanAdminister())
	assert.True(t, RoleUser.CanParticipate())
	assert.False(t, RoleUser.CanAdminister())
}
