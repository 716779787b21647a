package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/saaltamirano2-glitch/NexoShop/internal/domain"
	"github.com/saaltamirano2-glitch/NexoShop/internal/validate"
)

type CheckoutStep string

const (
	StepShipping     CheckoutStep = "shipping"
	StepPayment      CheckoutStep = "payment"
	StepConfirmation CheckoutStep = "confirmation"
	StepSuccess      CheckoutStep = "success"
)

var (
	ErrFlowStep      = errors.New("action not valid for current checkout step")
	ErrMissingFields = errors.New("missing required fields")
)

type ShippingInfo struct {
	FullName string
	Address  string
	City     string
	Phone    string
	Notes    string
}

type PaymentInfo struct {
	Method     domain.PaymentMethod
	CardNumber string
	CardExpiry string
	CardCVV    string
	CardHolder string
}

// CheckoutFlow is the linear shipping -> payment -> confirmation -> success
// state machine. Steps advance only through validated submissions; the only
// backward transition is the explicit Back action.
type CheckoutFlow struct {
	Step     CheckoutStep
	Shipping ShippingInfo
	Payment  PaymentInfo
	OrderID  string // set once Submit succeeds
}

func NewCheckoutFlow() *CheckoutFlow {
	return &CheckoutFlow{Step: StepShipping}
}

func missing(err error, fields []string) error {
	return fmt.Errorf("%w: %s", err, strings.Join(fields, ", "))
}

// SubmitShipping validates the shipping form and advances to payment.
// A validation failure leaves the flow on the shipping step.
func (f *CheckoutFlow) SubmitShipping(in ShippingInfo) error {
	if f.Step != StepShipping {
		return ErrFlowStep
	}
	var bad []string
	var ok bool
	if in.FullName, ok = validate.Required(in.FullName); !ok {
		bad = append(bad, "full_name")
	}
	if in.Address, ok = validate.Required(in.Address); !ok {
		bad = append(bad, "address")
	}
	if in.City, ok = validate.Required(in.City); !ok {
		bad = append(bad, "city")
	}
	if in.Phone, ok = validate.Phone(in.Phone); !ok {
		bad = append(bad, "phone")
	}
	in.Notes = strings.TrimSpace(in.Notes)
	if len(bad) > 0 {
		return missing(ErrMissingFields, bad)
	}
	f.Shipping = in
	f.Step = StepPayment
	return nil
}

// SubmitPayment validates the payment form and advances to confirmation.
// Card details are required when the method is card even though the charge
// is simulated; cash-on-delivery needs only the method itself.
func (f *CheckoutFlow) SubmitPayment(in PaymentInfo) error {
	if f.Step != StepPayment {
		return ErrFlowStep
	}
	if !in.Method.Valid() {
		return missing(ErrMissingFields, []string{"payment_method"})
	}
	if in.Method == domain.PaymentCard {
		var bad []string
		var ok bool
		if in.CardNumber, ok = validate.CardNumber(in.CardNumber); !ok {
			bad = append(bad, "card_number")
		}
		if in.CardExpiry, ok = validate.CardExpiry(in.CardExpiry); !ok {
			bad = append(bad, "card_expiry")
		}
		if in.CardCVV, ok = validate.CardCVV(in.CardCVV); !ok {
			bad = append(bad, "card_cvv")
		}
		if in.CardHolder, ok = validate.Required(in.CardHolder); !ok {
			bad = append(bad, "card_holder")
		}
		if len(bad) > 0 {
			return missing(ErrMissingFields, bad)
		}
	} else {
		in.CardNumber, in.CardExpiry, in.CardCVV, in.CardHolder = "", "", "", ""
	}
	f.Payment = in
	f.Step = StepConfirmation
	return nil
}

// Back returns to the previous step. Success is terminal and shipping has
// nowhere to go, so both reject.
func (f *CheckoutFlow) Back() error {
	switch f.Step {
	case StepPayment:
		f.Step = StepShipping
	case StepConfirmation:
		f.Step = StepPayment
	default:
		return ErrFlowStep
	}
	return nil
}
