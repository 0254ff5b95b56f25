package types

// RiskCondition names one of the five extreme-weather conditions scored per
// prediction.
type RiskCondition string

const (
	VeryHot           RiskCondition = "very_hot"
	VeryCold          RiskCondition = "very_cold"
	VeryWindy         RiskCondition = "very_windy"
	VeryWet           RiskCondition = "very_wet"
	VeryUncomfortable RiskCondition = "very_uncomfortable"
)

// Conditions lists every scored condition in report order.
var Conditions = []RiskCondition{VeryHot, VeryCold, VeryWindy, VeryWet, VeryUncomfortable}

// RiskProfile maps each condition to a probability in [0, 1].
type RiskProfile map[RiskCondition]float64

// Max returns the highest probability in the profile, 0 for an empty profile.
func (p RiskProfile) Max() float64 {
	max := 0.0
	for _, v := range p {
		if v > max {
			max = v
		}
	}
	return max
}

// RiskLevel is the ordinal classification derived from a RiskProfile.
type RiskLevel string

const (
	RiskMinimal  RiskLevel = "MINIMAL"
	RiskLow      RiskLevel = "LOW"
	RiskModerate RiskLevel = "MODERATE"
	RiskHigh     RiskLevel = "HIGH"
	RiskExtreme  RiskLevel = "EXTREME"
)

// AnomalyOutput is the frozen model's raw result: two unconstrained anomaly
// scalars plus the baseline values they were predicted against.
type AnomalyOutput struct {
	TemperatureAnomaly   float64 `json:"temperature_anomaly"`
	PrecipitationAnomaly float64 `json:"precipitation_anomaly"`
	BaseTemperature      float64 `json:"base_temperature"`
	BasePrecipitation    float64 `json:"base_precipitation"`
}
