package booking

import (
	"context"

	"go.uber.org/zap"

	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/domain/availability"
	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/models"
)

type AvailabilitySource interface {
	Availability(ctx context.Context, in models.AvailabilityRequest) ([]models.AggregatedSlot, error)
}

// Availability queries aggregated open windows for a set of services.
type Availability struct {
	src    AvailabilitySource
	logger *zap.Logger
}

func NewAvailability(src AvailabilitySource, logger *zap.Logger) *Availability {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Availability{src: src, logger: logger}
}

// Query never fails: a backend error is logged and reads as "no slots".
func (a *Availability) Query(ctx context.Context, serviceIDs []uint, fecha string) []models.AggregatedSlot {
	if len(serviceIDs) == 0 || fecha == "" {
		return []models.AggregatedSlot{}
	}

	slots, err := a.src.Availability(ctx, models.AvailabilityRequest{Services: serviceIDs, Fecha: fecha})
	if err != nil {
		a.logger.Warn("availability query failed, showing no slots",
			zap.Uints("services", serviceIDs),
			zap.String("fecha", fecha),
			zap.Error(err),
		)
		return []models.AggregatedSlot{}
	}
	if slots == nil {
		return []models.AggregatedSlot{}
	}

	availability.SortByStart(slots)
	return slots
}
