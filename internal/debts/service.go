package debts

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"vehicledebts/pkg/logger"
	"vehicledebts/pkg/plate"
)

// InterfaceGateway queries the Detran-SP webservice. A category without debts
// comes back as a missing or empty key, never as an error.
type InterfaceGateway interface {
	Fetch(ctx context.Context, licensePlate, renavam string, query Query) (map[string]any, error)
}

type InterfaceService interface {
	SearchDebts(ctx context.Context, input SearchInput) ([]Debt, error)
}

type Service struct {
	InterfaceGateway InterfaceGateway
	Metrics          *Metrics
	Logger           *logger.Logger
}

func NewDebtsService(InterfaceGateway InterfaceGateway, metrics *Metrics, log *logger.Logger) *Service {
	return &Service{
		InterfaceGateway: InterfaceGateway,
		Metrics:          metrics,
		Logger:           log,
	}
}

var tracer = otel.Tracer("vehicledebts/internal/debts")

// SearchDebts retrieves and normalizes the debts selected by
// input.DebtOption. Records are ordered tickets, IPVA, DPVAT, licensing no
// matter which query answers first. Any gateway failure or invalid record
// fails the whole search.
func (s *Service) SearchDebts(ctx context.Context, input SearchInput) ([]Debt, error) {
	filter, err := ParseFilter(input.DebtOption)
	if err != nil {
		return nil, err
	}

	legacyPlate, err := plate.ToLegacyFormat(input.LicensePlate)
	if err != nil {
		return nil, err
	}

	kinds := filter.Kinds()
	payloads := make([]map[string]any, len(kinds))

	g, gctx := errgroup.WithContext(ctx)
	for i, kind := range kinds {
		i, kind := i, kind
		g.Go(func() error {
			payload, err := s.fetch(gctx, legacyPlate, input.Renavam, kind.Query())
			if err != nil {
				return err
			}
			payloads[i] = payload
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.Logger.Error("debts search aborted",
			"license_plate", legacyPlate,
			"renavam", input.Renavam,
			"filter", filter.String(),
			"error", err,
		)
		return nil, err
	}

	result := make([]Debt, 0)
	var invalid ValidationErrors
	for i, kind := range kinds {
		items, found, err := Extract(payloads[i], kind)
		if err != nil {
			return nil, &GatewayError{Query: kind.Query(), Err: err}
		}
		if !found {
			continue
		}

		for idx, item := range items {
			debt, err := Normalize(kind, item)
			if err != nil {
				var verr *ValidationError
				if !errors.As(err, &verr) {
					return nil, err
				}
				verr.Index = idx
				invalid = append(invalid, verr)
				s.Metrics.IncrementValidationFailure(kind)
				continue
			}
			result = append(result, debt)
		}
	}

	if len(invalid) > 0 {
		s.Logger.Warn("debts search rejected invalid records",
			"license_plate", legacyPlate,
			"renavam", input.Renavam,
			"filter", filter.String(),
			"invalid", len(invalid),
		)
		return nil, invalid
	}

	for _, debt := range result {
		s.Metrics.IncrementRecords(debt.DebtType())
	}
	s.Logger.Info("debts search finished",
		"license_plate", legacyPlate,
		"mercosul", plate.IsMercosul(input.LicensePlate),
		"renavam", input.Renavam,
		"filter", filter.String(),
		"records", len(result),
	)

	return result, nil
}

func (s *Service) fetch(ctx context.Context, licensePlate, renavam string, query Query) (map[string]any, error) {
	ctx, span := tracer.Start(ctx, "detran.fetch", trace.WithAttributes(
		attribute.String("detran.query", string(query)),
	))
	defer span.End()

	start := time.Now()
	payload, err := s.InterfaceGateway.Fetch(ctx, licensePlate, renavam, query)
	s.Metrics.ObserveGatewayLatency(query, time.Since(start))

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.Metrics.IncrementGatewayFailure(query)

		var gwErr *GatewayError
		if errors.As(err, &gwErr) {
			return nil, err
		}
		return nil, &GatewayError{Query: query, Err: err}
	}

	if payload == nil {
		payload = map[string]any{}
	}
	return payload, nil
}
