package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/robinhio12/rockbrakel/models"
	"github.com/robinhio12/rockbrakel/repositories"
	"github.com/robinhio12/rockbrakel/storage"
)

var allowedPictureTypes = map[string]string{
	"image/png":  "png",
	"image/jpeg": "jpg",
	"image/gif":  "gif",
	"image/webp": "webp",
}

type RegisterPlayerInput struct {
	Name   string
	Number int

	// Optional decorative picture.
	Picture            io.Reader
	PictureContentType string
}

type PlayerService interface {
	Register(ctx context.Context, input RegisterPlayerInput) (*models.Player, error)
	List(ctx context.Context) ([]models.Player, error)
	GetByID(ctx context.Context, id int) (*models.Player, error)
}

type playerService struct {
	playerRepo repositories.PlayerRepository
	uploader   storage.FileUploader
}

func NewPlayerService(playerRepo repositories.PlayerRepository, uploader storage.FileUploader) PlayerService {
	return &playerService{
		playerRepo: playerRepo,
		uploader:   uploader,
	}
}

func (s *playerService) Register(ctx context.Context, input RegisterPlayerInput) (*models.Player, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" || input.Number <= 0 {
		return nil, ErrPlayerNameRequired
	}

	player := &models.Player{
		Name:         name,
		Number:       input.Number,
		RegisteredAt: time.Now(),
	}
	if err := s.playerRepo.Create(ctx, player); err != nil {
		if errors.Is(err, repositories.ErrPlayerNumberConflict) {
			return nil, ErrStartNumberConflict
		}
		return nil, fmt.Errorf("failed to create player: %w", err)
	}

	if input.Picture != nil && s.uploader != nil {
		ext, ok := allowedPictureTypes[input.PictureContentType]
		if !ok {
			return player, nil // registration stands, the picture is just skipped
		}
		key := fmt.Sprintf("player_pictures/player_%d.%s", player.ID, ext)
		result, err := s.uploader.Upload(ctx, key, input.PictureContentType, input.Picture)
		if err != nil {
			// A failed upload does not undo the registration.
			return player, nil
		}
		if err := s.playerRepo.UpdatePictureKey(ctx, player.ID, &result.Key); err != nil {
			return player, nil
		}
		player.PictureKey = &result.Key
	}

	s.attachPictureURL(player)
	return player, nil
}

func (s *playerService) List(ctx context.Context) ([]models.Player, error) {
	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	for i := range players {
		s.attachPictureURL(&players[i])
	}
	return players, nil
}

func (s *playerService) GetByID(ctx context.Context, id int) (*models.Player, error) {
	player, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	s.attachPictureURL(player)
	return player, nil
}

func (s *playerService) attachPictureURL(p *models.Player) {
	if p.PictureKey != nil && s.uploader != nil {
		url := s.uploader.GetPublicURL(*p.PictureKey)
		p.PictureURL = &url
	}
}
