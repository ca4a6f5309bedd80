// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fees

// Madrid System fee schedule (black and white mark).
var (
	MadridBaseFee          = units(653, CHF)
	MadridComplementaryFee = units(100, CHF)
	MadridSupplementaryFee = units(100, CHF)
)

// includedClasses is the number of classes covered by the base fee.
const includedClasses = 3

// individualFees lists the designations that charge an individual fee
// instead of the complementary fee.
var individualFees = map[string]Money{
	"US": units(388, CHF),
	"JP": units(151, CHF),
	"EU": units(897, CHF),
	"UK": units(227, CHF),
	"CN": units(249, CHF),
	"AU": units(350, CHF),
	"CA": units(294, CHF),
	"KR": units(306, CHF),
	"SG": units(341, CHF),
}

// IndividualFee returns the individual fee charged by country, if any.
func IndividualFee(country string) (Money, bool) {
	m, ok := individualFees[country]
	return m, ok
}

// MadridFees itemizes an international application.
type MadridFees struct {
	Classes             []int    `json:"classes" yaml:"classes"`
	DesignatedCountries []string `json:"designated_countries" yaml:"designated_countries"`

	BaseFee Money `json:"base_fee" yaml:"base_fee"`

	// IndividualFees holds the fee of each designation charging one.
	IndividualFees      map[string]Money `json:"individual_fees" yaml:"individual_fees"`
	TotalIndividualFees Money            `json:"total_individual_fees" yaml:"total_individual_fees"`

	// ComplementaryCountries are the designations paying the complementary fee.
	ComplementaryCountries  []string `json:"complementary_countries,omitempty" yaml:"complementary_countries,omitempty"`
	TotalComplementaryFees  Money    `json:"total_complementary_fees" yaml:"total_complementary_fees"`
	SupplementaryClassCount int      `json:"supplementary_class_count" yaml:"supplementary_class_count"`
	TotalSupplementaryFees  Money    `json:"total_supplementary_fees" yaml:"total_supplementary_fees"`

	Total Money `json:"total" yaml:"total"`
}

// Madrid returns the fees for an international registration covering
// classes and designating countries. Each designation pays its individual
// fee where one exists and the complementary fee otherwise. Every class
// beyond the third adds a supplementary fee.
func Madrid(classes []int, countries []string) (MadridFees, error) {
	cs, err := normalizeClasses(classes)
	if err != nil {
		return MadridFees{}, err
	}
	designated := normalizeCountries(countries)
	if len(designated) == 0 {
		return MadridFees{}, ErrNoCountries
	}

	f := MadridFees{
		Classes:                cs,
		DesignatedCountries:    designated,
		BaseFee:                MadridBaseFee,
		IndividualFees:         map[string]Money{},
		TotalIndividualFees:    Money{Currency: CHF},
		TotalComplementaryFees: Money{Currency: CHF},
	}
	for _, c := range designated {
		if fee, ok := individualFees[c]; ok {
			f.IndividualFees[c] = fee
			f.TotalIndividualFees = f.TotalIndividualFees.Plus(fee)
			continue
		}
		f.ComplementaryCountries = append(f.ComplementaryCountries, c)
		f.TotalComplementaryFees = f.TotalComplementaryFees.Plus(MadridComplementaryFee)
	}

	if extra := len(cs) - includedClasses; extra > 0 {
		f.SupplementaryClassCount = extra
	}
	f.TotalSupplementaryFees = MadridSupplementaryFee.Times(f.SupplementaryClassCount)

	f.Total = f.BaseFee.
		Plus(f.TotalIndividualFees).
		Plus(f.TotalComplementaryFees).
		Plus(f.TotalSupplementaryFees)
	return f, nil
}
