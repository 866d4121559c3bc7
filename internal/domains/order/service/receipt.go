package service

import (
	"bistro/internal/domains/order/model"
	"bistro/internal/domains/order/model/dto"
	"bistro/shared"
	"bistro/shared/constant"
	gDto "bistro/shared/dto"
	"bistro/shared/failure"
	"bistro/shared/session"
	"bistro/shared/timezone"
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"
)

const receiptContentType = "application/json"

// Receipt archives the order's receipt on first print and serves the archived copy afterwards.
func (s *serviceImpl) Receipt(ctx context.Context, sess session.Session, id string) (res dto.ReceiptResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".order.Receipt")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	order, err := s.get(ctx, sess, id)
	if err != nil {
		return res, err
	}

	name := order.ID + ".json"

	if order.ReceiptPrinted && order.ReceiptURL != nil {
		data, err := s.storage.GetObject(ctx, s.cfg.Order.ReceiptDirectory, name)
		if err != nil {
			log.Error().Err(err).Str("order", id).Msg("failed to fetch archived receipt")

			return res, fmt.Errorf("failed to fetch archived receipt: %w", err)
		}

		if err = json.Unmarshal(data, &res.Receipt); err != nil {
			return res, failure.InternalError(fmt.Errorf("failed to decode archived receipt: %w", err))
		}

		res.URL = *order.ReceiptURL

		return res, nil
	}

	items, err := s.itemsOf(ctx, order.ID)
	if err != nil {
		return res, err
	}

	receipt := model.NewReceipt(order, items[order.ID], timezone.Now())

	data, err := json.Marshal(receipt)
	if err != nil {
		return res, failure.InternalError(fmt.Errorf("failed to encode receipt: %w", err))
	}

	url, err := s.storage.PutObject(ctx, s.cfg.Order.ReceiptDirectory, name, receiptContentType, data)
	if err != nil {
		log.Error().Err(err).Str("order", id).Msg("failed to archive receipt")

		return res, fmt.Errorf("failed to archive receipt: %w", err)
	}

	if err = s.orders.MarkReceipt(ctx, order.ID, url, sess.Login); err != nil {
		log.Error().Err(err).Str("order", id).Msg("failed to mark receipt as printed")

		return res, fmt.Errorf("failed to mark receipt as printed: %w", err)
	}

	res.Receipt = receipt
	res.URL = url

	return res, nil
}

// Receipts lists a client's orders with their lines between two dates, both inclusive.
func (s *serviceImpl) Receipts(ctx context.Context, sess session.Session, params gDto.QueryParams, req dto.ReceiptsRequest) (res dto.GetOrdersResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".order.Receipts")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if sess.IsClient() {
		req.ClientID = sess.UserID
	}

	filter, err := receiptsFilter(req)
	if err != nil {
		return res, err
	}

	params = shared.RestrictSort(params, sortableColumns, model.TableName+"."+model.FieldCreatedAt, gDto.SortDirDesc)

	total, err := s.orders.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count receipts")

		return res, fmt.Errorf("failed to count receipts: %w", err)
	}

	orders, err := s.orders.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get receipts")

		return res, fmt.Errorf("failed to get receipts: %w", err)
	}

	ids := make([]string, len(orders))
	for i, order := range orders {
		ids[i] = order.ID
	}

	items, err := s.itemsOf(ctx, ids...)
	if err != nil {
		return res, err
	}

	res.FromModels(orders, items, total, params.Limit)

	return res, nil
}

func receiptsFilter(req dto.ReceiptsRequest) (gDto.FilterGroup, error) {
	filter := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	if req.ClientID != constant.Empty {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldClientID,
			Value:    req.ClientID,
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		})
	}

	if req.From != constant.Empty {
		from, err := timezone.Date(req.From)
		if err != nil {
			return filter, failure.BadRequest(err)
		}

		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldCreatedAt,
			Value:    from,
			Operator: gDto.FilterOperatorGreaterEq,
			Table:    model.TableName,
			ArgName:  "created_from",
		})
	}

	if req.To != constant.Empty {
		to, err := timezone.Date(req.To)
		if err != nil {
			return filter, failure.BadRequest(err)
		}

		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldCreatedAt,
			Value:    to.AddDate(0, 0, 1),
			Operator: gDto.FilterOperatorLess,
			Table:    model.TableName,
			ArgName:  "created_to",
		})
	}

	if req.From != constant.Empty && req.To != constant.Empty && req.From > req.To {
		return filter, failure.BadRequestFromString("from must not be after to")
	}

	return filter, nil
}
