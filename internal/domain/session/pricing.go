package session

import "github.com/shopspring/decimal"

// Platform fee charged on top of the session price.
var platformFeeRate = decimal.New(15, -2) // 0.15

var minutesPerHour = decimal.NewFromInt(60)

type PriceBreakdown struct {
	SessionPrice decimal.Decimal `json:"session_price"`
	PlatformFee  decimal.Decimal `json:"platform_fee"`
	Total        decimal.Decimal `json:"total"`
	FreeTrial    bool            `json:"free_trial"`
}

// CalculatePrice derives the full price breakdown for a candidate booking.
// Pure arithmetic, full precision; rounding happens only at the display
// edge via Rounded. A zero hourly rate means the mentor is always free,
// independent of the trial flag.
func CalculatePrice(hourlyRate decimal.Decimal, durationMin int, freeTrial bool) PriceBreakdown {
	sessionPrice := hourlyRate.
		Mul(decimal.NewFromInt(int64(durationMin))).
		Div(minutesPerHour)

	platformFee := sessionPrice.Mul(platformFeeRate)

	total := sessionPrice.Add(platformFee)
	if freeTrial {
		total = decimal.Zero
	}

	return PriceBreakdown{
		SessionPrice: sessionPrice,
		PlatformFee:  platformFee,
		Total:        total,
		FreeTrial:    freeTrial,
	}
}

// Rounded returns the breakdown rounded to 2 decimal places, half up.
// Fee and price are combined before rounding, never after.
func (p PriceBreakdown) Rounded() PriceBreakdown {
	return PriceBreakdown{
		SessionPrice: p.SessionPrice.Round(2),
		PlatformFee:  p.PlatformFee.Round(2),
		Total:        p.Total.Round(2),
		FreeTrial:    p.FreeTrial,
	}
}
