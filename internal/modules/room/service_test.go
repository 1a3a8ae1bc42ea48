package room

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeRepo struct {
	rooms    map[string]*Room
	standard map[string]int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		rooms:    map[string]*Room{},
		standard: map[string]int{"water": 4, "cola": 3},
	}
}

func (f *fakeRepo) Create(_ context.Context, room *Room) error {
	f.rooms[room.ID] = room
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (*Room, error) {
	room, ok := f.rooms[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return room, nil
}

func (f *fakeRepo) List(_ context.Context) ([]*Room, error) {
	var out []*Room
	for _, room := range f.rooms {
		out = append(out, room)
	}
	return out, nil
}

func (f *fakeRepo) UpdateIdentity(_ context.Context, id, newID string, building int) error {
	room, ok := f.rooms[id]
	if !ok {
		return sql.ErrNoRows
	}
	delete(f.rooms, id)
	room.ID = newID
	room.Building = building
	f.rooms[newID] = room
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.rooms[id]; !ok {
		return sql.ErrNoRows
	}
	delete(f.rooms, id)
	return nil
}

func (f *fakeRepo) DeleteBuilding(_ context.Context, building int) (int64, error) {
	var n int64
	for id, room := range f.rooms {
		if room.Building == building {
			delete(f.rooms, id)
			n++
		}
	}
	return n, nil
}

func (f *fakeRepo) StandardStocks(_ context.Context) (map[string]int, error) {
	stock := make(map[string]int, len(f.standard))
	for k, v := range f.standard {
		stock[k] = v
	}
	return stock, nil
}

func TestCreateRoom_SeedsStandardStocks(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, zap.NewNop())

	room, err := svc.CreateRoom(context.Background(), RoomRequest{ID: "101", Building: 1})
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"water": 4, "cola": 3}, room.MinibarStock)
	assert.Equal(t, 1, room.Building)
}

func TestCreateRoom_Validation(t *testing.T) {
	svc := NewService(newFakeRepo(), zap.NewNop())

	_, err := svc.CreateRoom(context.Background(), RoomRequest{Building: 1})
	assert.Error(t, err)

	_, err = svc.CreateRoom(context.Background(), RoomRequest{ID: "101"})
	assert.Error(t, err)
}

func TestUpdateRoom_RenumberPreservesStock(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, zap.NewNop())

	created, err := svc.CreateRoom(context.Background(), RoomRequest{ID: "101", Building: 1})
	require.NoError(t, err)
	created.MinibarStock["water"] = 1 // drained by checkouts

	moved, err := svc.UpdateRoom(context.Background(), "101", RoomRequest{ID: "201", Building: 2})
	require.NoError(t, err)
	assert.Equal(t, "201", moved.ID)
	assert.Equal(t, 2, moved.Building)
	assert.Equal(t, 1, moved.MinibarStock["water"])

	_, err = svc.GetRoom(context.Background(), "101")
	assert.Error(t, err)
}

func TestDeleteBuilding_RemovesOnlyThatBuilding(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, zap.NewNop())

	for _, req := range []RoomRequest{
		{ID: "101", Building: 1},
		{ID: "102", Building: 1},
		{ID: "201", Building: 2},
	} {
		_, err := svc.CreateRoom(context.Background(), req)
		require.NoError(t, err)
	}

	n, err := svc.DeleteBuilding(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	rooms, err := svc.ListRooms(context.Background())
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, "201", rooms[0].ID)
}

func TestValidateStock_RejectsNegative(t *testing.T) {
	assert.Error(t, ValidateStock(map[string]int{"water": -1}))
	assert.NoError(t, ValidateStock(map[string]int{"water": 0, "cola": 3}))
}
