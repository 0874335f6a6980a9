package jobpost

import (
	"encoding/json"
	"fmt"

	"github.com/Ayflow350/lexend-jobs/pkg/schema"
)

// PaymentType selects the budget variant.
type PaymentType string

const (
	PaymentHourly PaymentType = "hourly"
	PaymentFixed  PaymentType = "fixed"
)

// Budget is the tagged budget of a job post: HourlyBudget or FixedBudget.
type Budget interface {
	PaymentType() PaymentType
	isBudget()
}

// HourlyBudget is an hourly rate range.
type HourlyBudget struct {
	From *float64
	To   *float64
}

// PaymentType implements Budget.
func (HourlyBudget) PaymentType() PaymentType { return PaymentHourly }
func (HourlyBudget) isBudget()                {}

// FixedBudget is a single fixed price.
type FixedBudget struct {
	Amount *float64
}

// PaymentType implements Budget.
func (FixedBudget) PaymentType() PaymentType { return PaymentFixed }
func (FixedBudget) isBudget()                {}

// NewBudget returns an empty budget of the given variant.
func NewBudget(pt PaymentType) (Budget, error) {
	switch pt {
	case PaymentHourly:
		return HourlyBudget{}, nil
	case PaymentFixed:
		return FixedBudget{}, nil
	case "":
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPaymentType, pt)
	}
}

const (
	msgPaymentType   = "Please select a payment type for the budget."
	msgFromRequired  = "Minimum hourly rate is required for hourly payment."
	msgToRequired    = "Maximum hourly rate is required for hourly payment."
	msgFromPositive  = "Minimum rate must be positive."
	msgToPositive    = "Maximum rate must be positive."
	msgRateFloor     = "Minimum rate is $0.01/hr."
	msgRangeInverted = "Maximum rate cannot be less than minimum rate."
	msgFixedRequired = "Fixed price budget is required for fixed payment."
	msgFixedPositive = "Budget must be positive."
	msgFixedFloor    = "Minimum budget is $1."
	minHourlyRate    = 0.01
	minFixedBudget   = 1.0
)

// ValidateBudget checks a budget on its own. Paths are relative to the budget
// (`paymentType`, `hourlyRateFrom`, `hourlyRateTo`, `fixedPriceBudget`).
func ValidateBudget(b Budget) schema.Issues {
	var issues schema.Issues
	switch v := b.(type) {
	case HourlyBudget:
		issues = append(issues, checkAmount("hourlyRateFrom", v.From, msgFromRequired, msgFromPositive, msgRateFloor, minHourlyRate)...)
		issues = append(issues, checkAmount("hourlyRateTo", v.To, msgToRequired, msgToPositive, msgRateFloor, minHourlyRate)...)
		if v.From != nil && v.To != nil && *v.To < *v.From {
			issues = append(issues, schema.Issue{Path: "hourlyRateTo", Message: msgRangeInverted})
		}
	case FixedBudget:
		issues = append(issues, checkAmount("fixedPriceBudget", v.Amount, msgFixedRequired, msgFixedPositive, msgFixedFloor, minFixedBudget)...)
	default:
		issues = append(issues, schema.Issue{Path: "paymentType", Message: msgPaymentType})
	}
	return issues
}

func checkAmount(path string, value *float64, required, positive, floor string, min float64) schema.Issues {
	switch {
	case value == nil:
		return schema.Issues{{Path: path, Message: required}}
	case *value <= 0:
		return schema.Issues{{Path: path, Message: positive}}
	case *value < min:
		return schema.Issues{{Path: path, Message: floor}}
	}
	return nil
}

// budgetPayload is the flat wire shape of a budget.
type budgetPayload struct {
	PaymentType      PaymentType `json:"paymentType,omitempty"`
	HourlyRateFrom   *float64    `json:"hourlyRateFrom,omitempty"`
	HourlyRateTo     *float64    `json:"hourlyRateTo,omitempty"`
	FixedPriceBudget *float64    `json:"fixedPriceBudget,omitempty"`
}

func encodeBudget(b Budget) *budgetPayload {
	switch v := b.(type) {
	case HourlyBudget:
		return &budgetPayload{PaymentType: PaymentHourly, HourlyRateFrom: v.From, HourlyRateTo: v.To}
	case FixedBudget:
		return &budgetPayload{PaymentType: PaymentFixed, FixedPriceBudget: v.Amount}
	default:
		return nil
	}
}

// decode keeps only the fields of the selected variant, so switching the
// payment type drops the amounts of the other one.
func (p *budgetPayload) decode() (Budget, error) {
	if p == nil {
		return nil, nil
	}
	switch p.PaymentType {
	case PaymentHourly:
		return HourlyBudget{From: p.HourlyRateFrom, To: p.HourlyRateTo}, nil
	case PaymentFixed:
		return FixedBudget{Amount: p.FixedPriceBudget}, nil
	case "":
		if p.HourlyRateFrom != nil || p.HourlyRateTo != nil || p.FixedPriceBudget != nil {
			return nil, ErrPaymentTypeUnset
		}
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPaymentType, p.PaymentType)
	}
}

// MarshalJSON encodes the budget in its flat wire shape.
func (h HourlyBudget) MarshalJSON() ([]byte, error) {
	return json.Marshal(encodeBudget(h))
}

// MarshalJSON encodes the budget in its flat wire shape.
func (f FixedBudget) MarshalJSON() ([]byte, error) {
	return json.Marshal(encodeBudget(f))
}

func cloneAmount(v *float64) *float64 {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}

func cloneBudget(b Budget) Budget {
	switch v := b.(type) {
	case HourlyBudget:
		return HourlyBudget{From: cloneAmount(v.From), To: cloneAmount(v.To)}
	case FixedBudget:
		return FixedBudget{Amount: cloneAmount(v.Amount)}
	default:
		return nil
	}
}
