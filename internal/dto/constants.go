package dto

const (
	IntentTransactionAnalysis = "transaction_analysis"
	IntentInvestmentOverview  = "investment_overview"
	IntentRecommendation      = "recommendation"
	IntentGeneralQuery        = "general_query"
	IntentSummary             = "summary"
)

func KnownIntents() []string {
	return []string{
		IntentTransactionAnalysis,
		IntentInvestmentOverview,
		IntentRecommendation,
		IntentGeneralQuery,
		IntentSummary,
	}
}

const (
	DataSourceTransactions    = "transactions"
	DataSourceInvestments     = "investments"
	DataSourceCustomerProfile = "customer_profile"
)

// Fallback texts returned to the user when the generation service fails or
// produces no usable output. Chat requests never fail because of the model.
const (
	FallbackGenerationError = "Oops, technical glitch! 😅 Try again in a moment."
	FallbackEmptyCompletion = "I'm having trouble thinking of a detailed response. Could you ask differently?"
)
