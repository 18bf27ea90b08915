package vehicles

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/hevertoncelestino/controle-manutencao/internal/platform/timefmt"
)

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrDuplicatePlate = errors.New("plate already exists")
	ErrNotFound       = errors.New("vehicle not found")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	Plate string
	Model string
	Year  int
	Color string
	Notes string
}

// Create registers a vehicle. Plates are case-insensitive: they are
// uppercased here and everywhere else they enter the system. No further
// plate validation happens on purpose (legacy data carries free-form plates).
func (s *Service) Create(ctx context.Context, in CreateInput) (Vehicle, error) {
	plate := NormalizePlate(in.Plate)
	if plate == "" {
		return Vehicle{}, ErrInvalidInput
	}

	v := Vehicle{
		Plate:        plate,
		Model:        strings.TrimSpace(in.Model),
		Year:         in.Year,
		Color:        strings.TrimSpace(in.Color),
		Notes:        strings.TrimSpace(in.Notes),
		RegisteredAt: timefmt.Format(s.now()),
	}

	if err := s.repo.Create(ctx, v); err != nil {
		return Vehicle{}, err
	}
	return v, nil
}

func (s *Service) Get(ctx context.Context, plate string) (Vehicle, error) {
	plate = NormalizePlate(plate)
	if plate == "" {
		return Vehicle{}, ErrInvalidInput
	}
	return s.repo.Get(ctx, plate)
}

func (s *Service) List(ctx context.Context) ([]Vehicle, error) {
	return s.repo.List(ctx)
}

// Status classifies v against the service clock.
func (s *Service) Status(v Vehicle) (StatusInfo, error) {
	return Classify(v.LastMaintenanceAt, s.now())
}

func NormalizePlate(plate string) string {
	return strings.ToUpper(strings.TrimSpace(plate))
}
