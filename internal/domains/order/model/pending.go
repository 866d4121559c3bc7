package model

import (
	"bistro/shared/failure"
	"fmt"
)

// PendingLine is one dish in an order being assembled.
type PendingLine struct {
	DishID   string `json:"dish_id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
}

// Pending is an order under construction, owned by a single user until it is saved.
type Pending struct {
	Lines []PendingLine `json:"lines"`
	Total int64         `json:"total"`
}

// Add merges quantity into the dish's line. The cumulative quantity may not exceed stock;
// on failure the pending order is left unchanged.
func (p *Pending) Add(line PendingLine, stock int) error {
	if line.Quantity <= 0 {
		return failure.BadRequestFromString("quantity must be positive")
	}

	pos := p.find(line.DishID)

	cumulative := line.Quantity
	if pos >= 0 {
		cumulative += p.Lines[pos].Quantity
	}

	if cumulative > stock {
		return failure.InsufficientStock(fmt.Sprintf("only %d of %s left", stock, line.Name))
	}

	if pos >= 0 {
		p.Lines[pos].Quantity = cumulative
		p.Lines[pos].Price = line.Price
	} else {
		p.Lines = append(p.Lines, line)
	}

	p.recompute()

	return nil
}

// Remove drops the dish's line. It reports false when the dish was not pending.
func (p *Pending) Remove(dishID string) bool {
	pos := p.find(dishID)
	if pos < 0 {
		return false
	}

	p.Lines = append(p.Lines[:pos], p.Lines[pos+1:]...)
	p.recompute()

	return true
}

func (p *Pending) Empty() bool {
	return len(p.Lines) == 0
}

func (p *Pending) find(dishID string) int {
	for i, line := range p.Lines {
		if line.DishID == dishID {
			return i
		}
	}

	return -1
}

func (p *Pending) recompute() {
	p.Total = 0
	for _, line := range p.Lines {
		p.Total += line.Price * int64(line.Quantity)
	}
}
