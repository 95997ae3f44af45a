package receipt

import (
	"github.com/shopspring/decimal"

	"github.com/Riboost-Studio/perfect-menu-print-dispatch/internal/model"
)

type lineKind int

const (
	lineProduct lineKind = iota
	lineCombo
)

// ComboPart is one product bundled inside a combo.
type ComboPart struct {
	Name     string
	Quantity int
}

// Line is a printable receipt line built from one or more order items.
type Line struct {
	Kind        lineKind
	Name        string
	ComboNumber int
	Quantity    int
	UnitPrice   decimal.Decimal
	Notes       string
	Parts       []ComboPart
}

func (l Line) Total() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

func isComboHeader(it model.OrderItem) bool {
	return it.ComboID != "" && it.ProductID == "" && it.Price != nil && it.Price.IsPositive()
}

// GroupItems rebuilds combos from the flat item list. Combo headers come
// first in order of appearance, followed by the standalone products.
func GroupItems(items []model.OrderItem) []Line {
	var lines []Line
	claimed := make(map[int]bool)
	comboNumbers := make(map[string]int)

	for _, header := range items {
		if !isComboHeader(header) {
			continue
		}
		num, ok := comboNumbers[header.ComboID]
		if !ok {
			num = len(comboNumbers) + 1
			comboNumbers[header.ComboID] = num
		}

		line := Line{
			Kind:        lineCombo,
			ComboNumber: num,
			Quantity:    header.Quantity,
			UnitPrice:   *header.Price,
			Notes:       header.Notes,
		}
		for i, child := range items {
			if child.ComboID == header.ComboID && child.ProductID != "" && child.Product != nil {
				claimed[i] = true
				line.Parts = append(line.Parts, ComboPart{Name: child.Product.Name, Quantity: child.Quantity})
			}
		}
		lines = append(lines, line)
	}

	for i, it := range items {
		if claimed[i] {
			continue
		}
		// leftover zero-priced combo rows carry no information of their own
		if it.ComboID != "" && it.Price != nil && it.Price.IsZero() {
			continue
		}
		if it.ProductID == "" || it.Product == nil {
			continue
		}

		price := it.Product.Price
		if it.Price != nil && !it.Price.IsZero() {
			price = *it.Price
		}
		lines = append(lines, Line{
			Kind:      lineProduct,
			Name:      it.Product.Name,
			Quantity:  it.Quantity,
			UnitPrice: price,
			Notes:     it.Notes,
		})
	}

	return lines
}

// ItemCount sums quantities, leaving combo headers out so a combo counts
// through its parts.
func ItemCount(items []model.OrderItem) int {
	n := 0
	for _, it := range items {
		if it.ComboID != "" && it.ProductID == "" {
			continue
		}
		n += it.Quantity
	}
	return n
}
