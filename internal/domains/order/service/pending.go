package service

import (
	menuModel "bistro/internal/domains/menu/model"
	"bistro/internal/domains/order/model"
	"bistro/internal/domains/order/model/dto"
	"bistro/shared"
	"bistro/shared/constant"
	"bistro/shared/failure"
	"bistro/shared/metrics"
	"bistro/shared/session"
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

// AddLine reads the dish straight from the database so the stock check never sees a cached
// quantity.
func (s *serviceImpl) AddLine(ctx context.Context, sess session.Session, req dto.AddLineRequest) (res dto.PendingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".order.AddLine")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.Quantity <= 0 {
		return res, failure.BadRequestFromString("quantity must be positive")
	}

	dish, err := s.dishes.Get(ctx, shared.FilterByID(req.DishID, menuModel.FieldID, menuModel.DishTableName))
	if err != nil {
		log.Error().Err(err).Str("dish", req.DishID).Msg("failed to get dish")

		return res, fmt.Errorf("failed to get dish: %w", err)
	}

	if dish.ID == constant.Empty {
		return res, failure.NotFound("dish not found")
	}

	pending, err := s.pending.Get(ctx, sess.UserID)
	if err != nil {
		log.Error().Err(err).Str("user", sess.UserID).Msg("failed to load pending order")

		return res, fmt.Errorf("failed to load pending order: %w", err)
	}

	line := model.PendingLine{DishID: dish.ID, Name: dish.Name, Price: dish.Price, Quantity: req.Quantity}

	if err = pending.Add(line, dish.Quantity); err != nil {
		if failure.Is(err, failure.KindInsufficientStock) {
			metrics.StockRejections.Inc()
		}

		return res, err
	}

	if err = s.pending.Save(ctx, sess.UserID, pending); err != nil {
		log.Error().Err(err).Str("user", sess.UserID).Msg("failed to store pending order")

		return res, fmt.Errorf("failed to store pending order: %w", err)
	}

	res.FromModel(pending)

	return res, nil
}

func (s *serviceImpl) RemoveLine(ctx context.Context, sess session.Session, dishID string) (res dto.PendingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".order.RemoveLine")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	pending, err := s.pending.Get(ctx, sess.UserID)
	if err != nil {
		log.Error().Err(err).Str("user", sess.UserID).Msg("failed to load pending order")

		return res, fmt.Errorf("failed to load pending order: %w", err)
	}

	if !pending.Remove(dishID) {
		return res, failure.NotFound("dish is not in the pending order")
	}

	if err = s.pending.Save(ctx, sess.UserID, pending); err != nil {
		log.Error().Err(err).Str("user", sess.UserID).Msg("failed to store pending order")

		return res, fmt.Errorf("failed to store pending order: %w", err)
	}

	res.FromModel(pending)

	return res, nil
}

func (s *serviceImpl) GetPending(ctx context.Context, sess session.Session) (res dto.PendingResponse, err error) {
	pending, err := s.pending.Get(ctx, sess.UserID)
	if err != nil {
		log.Error().Err(err).Str("user", sess.UserID).Msg("failed to load pending order")

		return res, fmt.Errorf("failed to load pending order: %w", err)
	}

	res.FromModel(pending)

	return res, nil
}

func (s *serviceImpl) Discard(ctx context.Context, sess session.Session) error {
	if err := s.pending.Delete(ctx, sess.UserID); err != nil {
		log.Error().Err(err).Str("user", sess.UserID).Msg("failed to discard pending order")

		return fmt.Errorf("failed to discard pending order: %w", err)
	}

	return nil
}
