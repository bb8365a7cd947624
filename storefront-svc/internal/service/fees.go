package service

import (
	"fmt"
	"math"

	"warung-site/internal/domain"
)

const (
	FeePolicySubtotalOnly = "subtotal_only"
	FeePolicyTaxDelivery  = "tax_delivery"

	TaxRate     = 0.10
	DeliveryFee = int64(10000)
)

// FeePolicy turns a cart subtotal into the summary the payment page shows.
type FeePolicy func(subtotal int64) domain.PaymentSummary

func SubtotalOnly(subtotal int64) domain.PaymentSummary {
	return domain.PaymentSummary{Subtotal: subtotal, Total: subtotal}
}

func TaxAndDelivery(subtotal int64) domain.PaymentSummary {
	tax := int64(math.Round(float64(subtotal) * TaxRate))
	return domain.PaymentSummary{
		Subtotal:    subtotal,
		Tax:         tax,
		DeliveryFee: DeliveryFee,
		Total:       subtotal + tax + DeliveryFee,
	}
}

func ParseFeePolicy(name string) (FeePolicy, error) {
	switch name {
	case "", FeePolicySubtotalOnly:
		return SubtotalOnly, nil
	case FeePolicyTaxDelivery:
		return TaxAndDelivery, nil
	}
	return nil, fmt.Errorf("unknown fee policy %q", name)
}
