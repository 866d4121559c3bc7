package model

import (
	"bistro/shared/model"
	"time"
)

const (
	TableName      = "orders"
	EntityName     = "order"
	ItemTableName  = "order_items"
	ItemEntityName = "order item"

	FieldID        = "id"
	FieldTableID   = "table_id"
	FieldClientID  = "client_id"
	FieldWaiterID  = "waiter_id"
	FieldStatus    = "status"
	FieldTotal     = "total"
	FieldOrderID   = "order_id"
	FieldCreatedAt = "created_at"

	StatusActive = "active"
	StatusPaid   = "paid"
	StatusClosed = "closed"
)

type Order struct {
	ID             string  `db:"id"`
	TableID        string  `db:"table_id"`
	TableNumber    int     `column:"number"    db:"table_number" table:"tables"`
	ClientID       *string `db:"client_id"`
	WaiterID       string  `db:"waiter_id"`
	WaiterName     string  `column:"full_name" db:"waiter_name"  table:"users"`
	Status         string  `db:"status"`
	Total          int64   `db:"total"`
	ReceiptPrinted bool    `db:"receipt_printed"`
	ReceiptURL     *string `db:"receipt_url"`
	model.Metadata
}

func (Order) GetJoinQuery() string {
	return "JOIN tables ON tables.id = orders.table_id JOIN users ON users.id = orders.waiter_id"
}

// OwnedBy reports whether the order was placed for the client.
func (o Order) OwnedBy(clientID string) bool {
	return o.ClientID != nil && *o.ClientID == clientID
}

type Item struct {
	ID       string `db:"id"`
	OrderID  string `db:"order_id"`
	DishID   string `db:"dish_id"`
	DishName string `column:"name" db:"dish_name" table:"dishes"`
	Quantity int    `db:"quantity"`
	Price    int64  `db:"price"`
}

func (Item) GetJoinQuery() string {
	return "JOIN dishes ON dishes.id = order_items.dish_id"
}

func (i Item) Amount() int64 {
	return i.Price * int64(i.Quantity)
}

// ReceiptLine groups an order's items that share a dish and unit price.
type ReceiptLine struct {
	DishID   string `json:"dish_id"`
	Dish     string `json:"dish"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
	Amount   int64  `json:"amount"`
}

// Receipt is the document archived for an order.
type Receipt struct {
	OrderID     string        `json:"order_id"`
	TableNumber int           `json:"table_number"`
	Waiter      string        `json:"waiter"`
	Status      string        `json:"status"`
	OpenedAt    time.Time     `json:"opened_at"`
	PrintedAt   time.Time     `json:"printed_at"`
	Lines       []ReceiptLine `json:"lines"`
	Total       int64         `json:"total"`
}

// NewReceipt groups items by dish and unit price, keeping first-seen order.
func NewReceipt(order Order, items []Item, printedAt time.Time) Receipt {
	receipt := Receipt{
		OrderID:     order.ID,
		TableNumber: order.TableNumber,
		Waiter:      order.WaiterName,
		Status:      order.Status,
		OpenedAt:    order.CreatedAt,
		PrintedAt:   printedAt,
		Lines:       []ReceiptLine{},
	}

	type key struct {
		dishID string
		price  int64
	}

	index := map[key]int{}

	for _, item := range items {
		k := key{item.DishID, item.Price}

		pos, ok := index[k]
		if !ok {
			pos = len(receipt.Lines)
			index[k] = pos
			receipt.Lines = append(receipt.Lines, ReceiptLine{DishID: item.DishID, Dish: item.DishName, Price: item.Price})
		}

		receipt.Lines[pos].Quantity += item.Quantity
		receipt.Lines[pos].Amount += item.Amount()
		receipt.Total += item.Amount()
	}

	return receipt
}
