package layout

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/fastygo/dashboard/domain"
	"github.com/fastygo/dashboard/pkg/logger"
	"github.com/fastygo/dashboard/repository"
)

type UseCase struct {
	layouts repository.LayoutRepository
	logger  *zap.Logger
}

func New(layouts repository.LayoutRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		layouts: layouts,
		logger:  logger,
	}
}

// GetLayout returns the stored card order, or the default order when nothing is
// stored or the stored document does not validate.
func (uc *UseCase) GetLayout(ctx context.Context, userID string) (domain.DashboardLayout, error) {
	document, err := uc.layouts.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrLayoutNotFound) {
			return domain.DefaultLayout(), nil
		}
		return domain.DashboardLayout{}, err
	}

	layout, ok := domain.DecodeLayout(document)
	if !ok {
		logger.WithRequestID(ctx, uc.logger).Warn("stored layout rejected, serving default", zap.String("user_id", userID))
	}
	return layout, nil
}

func (uc *UseCase) SaveLayout(ctx context.Context, userID string, layout domain.DashboardLayout) (domain.DashboardLayout, error) {
	if err := layout.Validate(); err != nil {
		return domain.DashboardLayout{}, err
	}
	document, err := layout.Encode()
	if err != nil {
		return domain.DashboardLayout{}, err
	}
	if err := uc.layouts.Upsert(ctx, userID, document); err != nil {
		return domain.DashboardLayout{}, err
	}
	return layout, nil
}
