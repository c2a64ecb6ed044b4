package repository

import (
	"fmt"
	"math/rand"
	"strings"

	"banking-chatbot/internal/dto"
	"banking-chatbot/pkg/utils"
)

func promptClassifyIntent(query string) string {
	return fmt.Sprintf(`Classify this banking query into ONE intent:
- transaction_analysis: spending/expenses questions
- investment_overview: portfolio/returns questions
- recommendation: seeking advice
- general_query: other questions
- summary: financial overview requests

Query: %s

Intent (one word):`, query)
}

// buildGenerationPrompt assembles the full query sent as the latest user
// turn: persona, profile, data snapshot, the user's question and the
// response instructions.
func (r *geminiAIRepository) buildGenerationPrompt(
	query string,
	profile *dto.CustomerProfile,
	contextData *dto.CustomerContext,
	history []dto.HistoryEntry,
) string {
	var sb strings.Builder

	sb.WriteString(buildDataPrompt(profile, contextData, r.cfg.Chat.PromptTxnLimit))

	instruction := "Jump straight into the answer. Do NOT greet the user again."
	if len(history) <= 1 {
		instruction = "Start with a friendly welcome to the user by name."
	}

	sb.WriteString(fmt.Sprintf(`

User: %s

INSTRUCTIONS FOR ARYA:
- **%s**
- **Conversational Flow**: Write in natural paragraphs, not just lists. Tell a story with the data.
- **Be Detailed**: Go beyond simple answers. Provide numbers, percentages, comparisons, and insights.
- **Use the Data**: Your answer MUST be grounded in the provided financial data. Mention specific transactions or investments.
- **Human Tone**: Write like a real, friendly financial expert. Use contractions, casual language, and be encouraging.
- **Structure**: You can use bullet points for lists of numbers, but wrap them in conversational text.
- **Proactive Advice**: Always end with a valuable insight or a thoughtful question to guide the user.

Arya's Detailed Response:`, query, instruction))

	return sb.String()
}

func buildDataPrompt(profile *dto.CustomerProfile, contextData *dto.CustomerContext, txnLimit int) string {
	var sb strings.Builder

	name := "there"
	age := 0
	riskLevel := "Not set"
	annualIncome := 0.0
	goals := "Not set"
	if profile != nil {
		name = profile.Name
		age = profile.Age
		annualIncome = profile.AnnualIncome
		if profile.RiskLevel != "" {
			riskLevel = profile.RiskLevel
		}
		if profile.FinancialGoals != "" {
			goals = profile.FinancialGoals
		}
	}

	sb.WriteString("You are Arya, a top-tier financial analyst and relationship manager at SmartBank. Your goal is to provide deep, data-driven insights in a friendly, human way.\n\n")

	sb.WriteString("CUSTOMER PROFILE:\n")
	sb.WriteString(fmt.Sprintf("- Name: %s\n", name))
	sb.WriteString(fmt.Sprintf("- Age: %d\n", age))
	sb.WriteString(fmt.Sprintf("- Risk Tolerance: %s\n", utils.NormalizeLabel(riskLevel)))
	sb.WriteString(fmt.Sprintf("- Annual Income: ₹%s\n", utils.FormatAmount(annualIncome)))
	sb.WriteString(fmt.Sprintf("- Financial Goals: %s\n", utils.NormalizeLabel(goals)))

	sb.WriteString("\n---\nFINANCIAL DATA SNAPSHOT\n---\n")

	if contextData != nil && len(contextData.Transactions) > 0 {
		if txnLimit <= 0 {
			txnLimit = 10
		}
		sb.WriteString(fmt.Sprintf("\nRECENT TRANSACTIONS (Sample of up to %d):\n", txnLimit))
		for i, t := range contextData.Transactions {
			if i >= txnLimit {
				break
			}
			sb.WriteString(fmt.Sprintf("- %s: %s (%s) - ₹%s\n", t.Date, t.Merchant, t.Category, utils.FormatAmount(t.Amount)))
		}
	}

	if contextData != nil && len(contextData.Investments) > 0 {
		sb.WriteString("\nINVESTMENT HOLDINGS:\n")
		for _, inv := range contextData.Investments {
			sb.WriteString(fmt.Sprintf("- %s (%s): Invested ₹%s, now worth ₹%s (%+.2f%% return)\n",
				inv.ProductName, inv.ProductType,
				utils.FormatAmount(inv.InvestedAmount), utils.FormatAmount(inv.CurrentValue),
				inv.ReturnsPercentage))
		}
	}

	sb.WriteString("\n--- END OF DATA ---")

	return sb.String()
}

var followUpSuggestions = map[string][]string{
	dto.IntentTransactionAnalysis: {
		"Break down my spending by category",
		"Were there any large, one-time expenses?",
		"How does my spending compare to my income?",
	},
	dto.IntentInvestmentOverview: {
		"Which investment has the highest return?",
		"What's the risk level of my overall portfolio?",
		"Tell me more about my worst-performing asset.",
	},
	dto.IntentRecommendation: {
		"Based on my risk profile, what should I buy next?",
		"I have ₹50,000 to invest, what do you suggest?",
		"How can I better align my portfolio with my goals?",
	},
	dto.IntentSummary: {
		"Give me a detailed financial health report.",
		"What are the top 3 insights from my data?",
		"Summarize my financial situation in one paragraph.",
	},
	dto.IntentGeneralQuery: {
		"Analyze my spending habits.",
		"Give me a deep dive into my investments.",
		"What's one thing I could do better financially?",
	},
}

// FollowUpSuggestions returns up to three suggested follow-up questions for
// an intent, sampled without replacement. Unknown intents get the
// general-query bucket.
func (r *geminiAIRepository) FollowUpSuggestions(intent string) []string {
	bucket, ok := followUpSuggestions[intent]
	if !ok {
		bucket = followUpSuggestions[dto.IntentGeneralQuery]
	}

	sampled := make([]string, len(bucket))
	copy(sampled, bucket)
	rand.Shuffle(len(sampled), func(i, j int) {
		sampled[i], sampled[j] = sampled[j], sampled[i]
	})

	n := 3
	if len(sampled) < n {
		n = len(sampled)
	}
	return sampled[:n]
}
