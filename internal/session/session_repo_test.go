package session

import (
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/philmer-vdm/gamesess/internal/apperr"
	"github.com/philmer-vdm/gamesess/internal/catalog"
	"github.com/philmer-vdm/gamesess/internal/club"
	"github.com/philmer-vdm/gamesess/internal/gamer"
	"github.com/philmer-vdm/gamesess/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&gamer.Gamer{}, &club.Club{}, &club.GamerClub{}, &catalog.Game{}, &GameSession{}, &GameTable{}))
	return db
}

func TestCreateSessionValidatesSpan(t *testing.T) {
	db := newTestDB(t)
	repo := NewSessionRepository(db)
	actor := models.Actor(1)

	begin := time.Date(2017, 5, 26, 20, 0, 0, 0, time.UTC)
	end := time.Date(2017, 5, 26, 23, 59, 59, 0, time.UTC)

	err := repo.Create(&GameSession{Name: "Reversed", Begin: end, End: begin, ClubID: 1}, actor)
	assert.True(t, apperr.IsValidation(err), "expected a validation failure, got %v", err)

	err = repo.Create(&GameSession{Name: "No end", Begin: begin, ClubID: 1}, actor)
	assert.True(t, apperr.IsValidation(err))

	s := &GameSession{Name: "Soirée du 26/5/2017", Begin: begin, End: end, Type: TypeEvening, State: StatePossible, ClubID: 1}
	require.NoError(t, repo.Create(s, actor))
	assert.NotZero(t, s.ID)
	assert.Equal(t, actor, s.CreateID)
}

func TestListSessionsForClub(t *testing.T) {
	db := newTestDB(t)
	repo := NewSessionRepository(db)
	actor := models.Actor(1)

	begin := time.Date(2017, 4, 21, 20, 0, 0, 0, time.UTC)
	later := begin.AddDate(0, 1, 5)

	second := &GameSession{Name: "Soirée de mai", Begin: later, End: later.Add(4 * time.Hour), ClubID: 7}
	require.NoError(t, repo.Create(second, actor))
	first := &GameSession{Name: "Soirée d'avril", Begin: begin, End: begin.Add(4 * time.Hour), ClubID: 7}
	require.NoError(t, repo.Create(first, actor))
	other := &GameSession{Name: "Autre club", Begin: begin, End: begin.Add(2 * time.Hour), ClubID: 8}
	require.NoError(t, repo.Create(other, actor))

	require.NoError(t, repo.Deactivate(second.ID, actor))

	sessions, err := repo.ListForClub(7)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, first.ID, sessions[0].ID)

	// Deactivated sessions stay fetchable by id.
	got, err := repo.GetByID(second.ID)
	require.NoError(t, err)
	assert.False(t, got.Active)
}

func TestCreateTableValidation(t *testing.T) {
	db := newTestDB(t)
	repo := NewSessionRepository(db)
	actor := models.Actor(1)

	begin := time.Date(2017, 5, 26, 20, 0, 0, 0, time.UTC)
	end := begin.Add(-time.Hour)

	err := repo.CreateTable(&GameTable{Name: "Reversed", Begin: &begin, End: &end, GameID: 1, SessionID: 1}, actor)
	assert.True(t, apperr.IsValidation(err))

	err = repo.CreateTable(&GameTable{Name: "Bad bounds", MinPart: 5, MaxPart: 2, GameID: 1, SessionID: 1}, actor)
	assert.True(t, apperr.IsValidation(err))

	// A table without its own span is a valid proposal.
	table := &GameTable{Name: "Table Pandemic", MinPart: 2, MaxPart: 4, Type: TableProposal, GameID: 1, SessionID: 1}
	require.NoError(t, repo.CreateTable(table, actor))
	assert.NotZero(t, table.ID)
}
