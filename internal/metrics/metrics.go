package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Shop counts the business events worth graphing. Registered once at startup.
type Shop struct {
	OrdersPlaced    prometheus.Counter
	CheckoutsFailed prometheus.Counter
	CartsMerged     prometheus.Counter
	OrdersFulfilled prometheus.Counter
}

func NewShop() *Shop {
	m := &Shop{
		OrdersPlaced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "nexoshop",
			Name:      "orders_placed_total",
			Help:      "Orders successfully created at checkout.",
		}),
		CheckoutsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "nexoshop",
			Name:      "checkouts_failed_total",
			Help:      "Checkout submissions that did not produce a complete order.",
		}),
		CartsMerged: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "nexoshop",
			Name:      "carts_merged_total",
			Help:      "Anonymous carts merged into user carts on login.",
		}),
		OrdersFulfilled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "nexoshop",
			Name:      "orders_fulfilled_total",
			Help:      "Orders marked delivered with stock decremented.",
		}),
	}
	prometheus.MustRegister(m.OrdersPlaced, m.CheckoutsFailed, m.CartsMerged, m.OrdersFulfilled)
	return m
}

func Handler() http.Handler {
	return promhttp.Handler()
}
