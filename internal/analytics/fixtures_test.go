package analytics

import (
	"time"

	"ecompulse/pkg/contracts/domain"
)

// line builds an order line for tests with sensible defaults.
func line(orderID string, ts string, opts ...func(*domain.OrderLine)) domain.OrderLine {
	t, err := time.Parse("2006-01-02 15:04:05", ts)
	if err != nil {
		if t, err = time.Parse("2006-01-02", ts); err != nil {
			panic("fixtures: bad timestamp " + ts)
		}
	}

	ol := domain.OrderLine{
		OrderID:           orderID,
		OrderItemID:       1,
		ProductCategory:   "beleza_saude",
		CustomerID:        "cust-" + orderID,
		CustomerState:     "SP",
		CustomerCity:      "sao paulo",
		ReviewScore:       5,
		Price:             10.0,
		PurchaseTimestamp: t,
	}
	for _, opt := range opts {
		opt(&ol)
	}
	return ol
}

func withPrice(p float64) func(*domain.OrderLine) {
	return func(ol *domain.OrderLine) { ol.Price = p }
}

func withItems(n int) func(*domain.OrderLine) {
	return func(ol *domain.OrderLine) { ol.OrderItemID = n }
}

func withCategory(c string) func(*domain.OrderLine) {
	return func(ol *domain.OrderLine) { ol.ProductCategory = c }
}

func withCustomer(id string) func(*domain.OrderLine) {
	return func(ol *domain.OrderLine) { ol.CustomerID = id }
}

func withState(s string) func(*domain.OrderLine) {
	return func(ol *domain.OrderLine) { ol.CustomerState = s }
}

func withCity(c string) func(*domain.OrderLine) {
	return func(ol *domain.OrderLine) { ol.CustomerCity = c }
}

func withScore(s int) func(*domain.OrderLine) {
	return func(ol *domain.OrderLine) { ol.ReviewScore = s }
}

// twoOrderTable is the canonical two-order fixture: order A with two lines in
// SP on Jan 1, order B with one line in RJ on Jan 3.
func twoOrderTable() []domain.OrderLine {
	return []domain.OrderLine{
		line("A", "2024-01-01 10:00:00", withPrice(10.00)),
		line("A", "2024-01-01 10:00:00", withPrice(5.00)),
		line("B", "2024-01-03 18:30:00", withPrice(20.00), withState("RJ"), withCity("rio de janeiro"), withCustomer("cust-B")),
	}
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic("fixtures: bad day " + s)
	}
	return t
}
