package room

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Service defines room business logic.
type Service interface {
	// CreateRoom creates a fully stocked room: every product starts at its
	// standard stock.
	CreateRoom(ctx context.Context, req RoomRequest) (*Room, error)
	GetRoom(ctx context.Context, id string) (*Room, error)
	ListRooms(ctx context.Context) ([]*Room, error)
	// UpdateRoom renumbers or moves a room; the stock map is untouched.
	UpdateRoom(ctx context.Context, id string, req RoomRequest) (*Room, error)
	DeleteRoom(ctx context.Context, id string) error
	DeleteBuilding(ctx context.Context, building int) (int64, error)
}

// RoomRequest holds the data for creating or renumbering a room.
type RoomRequest struct {
	ID       string `json:"id"`
	Building int    `json:"building"`
}

type service struct {
	repo Repository
	log  *zap.Logger
}

// NewService creates a new room service.
func NewService(repo Repository, log *zap.Logger) Service {
	return &service{repo: repo, log: log.Named("room")}
}

func (s *service) CreateRoom(ctx context.Context, req RoomRequest) (*Room, error) {
	if req.ID == "" {
		return nil, fmt.Errorf("room id is required")
	}
	if req.Building <= 0 {
		return nil, fmt.Errorf("building must be positive")
	}

	stock, err := s.repo.StandardStocks(ctx)
	if err != nil {
		return nil, fmt.Errorf("load standard stocks: %w", err)
	}

	room := &Room{
		ID:           req.ID,
		Building:     req.Building,
		MinibarStock: stock,
	}
	if err := s.repo.Create(ctx, room); err != nil {
		return nil, err
	}
	s.log.Info("room created",
		zap.String("room_id", room.ID),
		zap.Int("building", room.Building),
		zap.Int("products", len(stock)))
	return room, nil
}

func (s *service) GetRoom(ctx context.Context, id string) (*Room, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListRooms(ctx context.Context) ([]*Room, error) {
	return s.repo.List(ctx)
}

func (s *service) UpdateRoom(ctx context.Context, id string, req RoomRequest) (*Room, error) {
	if req.ID == "" {
		return nil, fmt.Errorf("room id is required")
	}
	if req.Building <= 0 {
		return nil, fmt.Errorf("building must be positive")
	}
	if err := s.repo.UpdateIdentity(ctx, id, req.ID, req.Building); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, req.ID)
}

func (s *service) DeleteRoom(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("room deleted", zap.String("room_id", id))
	return nil
}

func (s *service) DeleteBuilding(ctx context.Context, building int) (int64, error) {
	n, err := s.repo.DeleteBuilding(ctx, building)
	if err != nil {
		return 0, err
	}
	s.log.Info("building deleted", zap.Int("building", building), zap.Int64("rooms", n))
	return n, nil
}
