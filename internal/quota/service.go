package quota

import (
	"context"
	"errors"
	"time"
)

var ErrQuotaExceeded = errors.New("limite de consultas excedido")

const keyPrefix = "quota:"

type InterfaceService interface {
	Consume(ctx context.Context, ip string) (Usage, error)
}

type Service struct {
	InterfaceRepository InterfaceRepository
	Limit               int64
	Window              time.Duration
	now                 func() time.Time
}

func NewQuotaService(InterfaceRepository InterfaceRepository, limit int64, window time.Duration) *Service {
	return &Service{
		InterfaceRepository: InterfaceRepository,
		Limit:               limit,
		Window:              window,
		now:                 time.Now,
	}
}

// Consume counts one search for ip. Once the count passes the limit it keeps
// returning ErrQuotaExceeded with the usage until the window resets.
func (s *Service) Consume(ctx context.Context, ip string) (Usage, error) {
	count, left, err := s.InterfaceRepository.Increment(ctx, keyPrefix+ip, s.Window)
	if err != nil {
		return Usage{}, err
	}

	usage := Usage{
		Limit:     s.Limit,
		Count:     count,
		Remaining: max(s.Limit-count, 0),
		ResetAt:   s.now().Add(left),
	}
	if count > s.Limit {
		return usage, ErrQuotaExceeded
	}
	return usage, nil
}
