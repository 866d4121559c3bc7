package dto

import (
	"bistro/internal/domains/order/model"
	"bistro/shared"
	gDto "bistro/shared/dto"
	gModel "bistro/shared/model"
	"bistro/shared/timezone"

	"github.com/google/uuid"
)

type AddLineRequest struct {
	DishID   string `json:"dish_id"  validate:"required,uuid"`
	Quantity int    `json:"quantity" validate:"required"`
}

type PendingLineResponse struct {
	DishID   string `json:"dish_id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
	Amount   int64  `json:"amount"`
}

type PendingResponse struct {
	Lines []PendingLineResponse `json:"lines"`
	Total int64                 `json:"total"`
}

func (r *PendingResponse) FromModel(pending model.Pending) {
	r.Total = pending.Total

	r.Lines = make([]PendingLineResponse, len(pending.Lines))
	for i, line := range pending.Lines {
		r.Lines[i] = PendingLineResponse{
			DishID:   line.DishID,
			Name:     line.Name,
			Price:    line.Price,
			Quantity: line.Quantity,
			Amount:   line.Price * int64(line.Quantity),
		}
	}
}

type SaveOrderRequest struct {
	TableID string `json:"table_id" validate:"required,uuid"`
	// ClientID lets staff seat a known client. Ignored for clients.
	ClientID string `json:"client_id" validate:"omitempty,uuid"`
}

func (r *SaveOrderRequest) ToModel(clientID *string, waiterID, actor string) model.Order {
	return model.Order{
		ID:       uuid.NewString(),
		TableID:  r.TableID,
		ClientID: clientID,
		WaiterID: waiterID,
		Status:   model.StatusActive,
		Metadata: gModel.NewMetadata(timezone.Now(), actor),
	}
}

// ToItems turns pending lines into rows of the order.
func ToItems(orderID string, pending model.Pending) []model.Item {
	items := make([]model.Item, len(pending.Lines))
	for i, line := range pending.Lines {
		items[i] = model.Item{
			ID:       uuid.NewString(),
			OrderID:  orderID,
			DishID:   line.DishID,
			DishName: line.Name,
			Quantity: line.Quantity,
			Price:    line.Price,
		}
	}

	return items
}

type CloseOrderRequest struct {
	Confirm bool `json:"confirm"`
}

type ListOrdersRequest struct {
	Status string `json:"status" validate:"omitempty,oneof=active paid closed"`
}

type ReceiptsRequest struct {
	ClientID string `json:"client_id" validate:"omitempty,uuid"`
	From     string `json:"from"      validate:"omitempty,isodate"`
	To       string `json:"to"        validate:"omitempty,isodate"`
}

type ItemResponse struct {
	ID       string `json:"id"`
	DishID   string `json:"dish_id"`
	DishName string `json:"dish_name"`
	Quantity int    `json:"quantity"`
	Price    int64  `json:"price"`
	Amount   int64  `json:"amount"`
}

type OrderResponse struct {
	ID             string         `json:"id"`
	TableID        string         `json:"table_id"`
	TableNumber    int            `json:"table_number"`
	ClientID       *string        `json:"client_id"`
	WaiterID       string         `json:"waiter_id"`
	WaiterName     string         `json:"waiter_name"`
	Status         string         `json:"status"`
	Total          int64          `json:"total"`
	ReceiptPrinted bool           `json:"receipt_printed"`
	ReceiptURL     *string        `json:"receipt_url"`
	Items          []ItemResponse `json:"items,omitempty"`
	gDto.Metadata
}

func (r *OrderResponse) FromModel(order model.Order, items []model.Item) {
	r.ID = order.ID
	r.TableID = order.TableID
	r.TableNumber = order.TableNumber
	r.ClientID = order.ClientID
	r.WaiterID = order.WaiterID
	r.WaiterName = order.WaiterName
	r.Status = order.Status
	r.Total = order.Total
	r.ReceiptPrinted = order.ReceiptPrinted
	r.ReceiptURL = order.ReceiptURL
	r.Metadata.FromModel(order.Metadata)

	if len(items) == 0 {
		return
	}

	r.Items = make([]ItemResponse, len(items))
	for i, item := range items {
		r.Items[i] = ItemResponse{
			ID:       item.ID,
			DishID:   item.DishID,
			DishName: item.DishName,
			Quantity: item.Quantity,
			Price:    item.Price,
			Amount:   item.Amount(),
		}
	}
}

type GetOrdersResponse struct {
	Orders    []OrderResponse `json:"orders"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetOrdersResponse) FromModels(models []model.Order, items map[string][]model.Item, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Orders = make([]OrderResponse, len(models))
	for i, mod := range models {
		r.Orders[i].FromModel(mod, items[mod.ID])
	}
}

type ReceiptResponse struct {
	model.Receipt
	URL string `json:"url"`
}
