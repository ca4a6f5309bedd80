// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fees

// National office fee schedule.
var (
	NationalBaseFee  = units(100, EUR)
	NationalClassFee = units(20, EUR)
)

// NationalFees itemizes a national application.
type NationalFees struct {
	Classes        []int `json:"classes" yaml:"classes"`
	BaseFee        Money `json:"base_fee" yaml:"base_fee"`
	ClassFee       Money `json:"class_fee" yaml:"class_fee"`
	TotalClassFees Money `json:"total_class_fees" yaml:"total_class_fees"`
	Total          Money `json:"total" yaml:"total"`
}

// National returns the fees for a national application covering classes:
// a base fee plus a fee per class.
func National(classes []int) (NationalFees, error) {
	cs, err := normalizeClasses(classes)
	if err != nil {
		return NationalFees{}, err
	}
	classFees := NationalClassFee.Times(len(cs))
	return NationalFees{
		Classes:        cs,
		BaseFee:        NationalBaseFee,
		ClassFee:       NationalClassFee,
		TotalClassFees: classFees,
		Total:          NationalBaseFee.Plus(classFees),
	}, nil
}
