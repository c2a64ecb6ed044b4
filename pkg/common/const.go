package common

const (
	KEY_CUSTOMER_CONTEXT = "customer_context:%s"
)

const (
	RISK_LEVEL_LOW    = "low"
	RISK_LEVEL_MEDIUM = "medium"
	RISK_LEVEL_HIGH   = "high"
)

func GetRiskLevelList() []string {
	return []string{
		RISK_LEVEL_LOW,
		RISK_LEVEL_MEDIUM,
		RISK_LEVEL_HIGH,
	}
}
