package usecase

const (
	msgWelcome = "Welcome to ABC Mutual Fund! I can show your portfolio valuation, " +
		"list your transactions for a date range, help you explore funds by category, " +
		"share fund details or simulate an investment. What would you like to do?"
	msgFallback = "Sorry, I can't help with that yet."

	msgInvalidIdentity = "That doesn't look like a valid mobile number. Please enter a 10-digit number."
	msgIdentitySaved   = "Thanks! I've saved your number: %s. How can I help you next?"
	msgChangeIdentity  = "Sure. Please share the new 10-digit mobile number you'd like to use."

	msgAskIdentityValuation = "Please share your mobile number to get your portfolio details."
	msgAskIdentityHistory   = "Could you please share your mobile number to continue?"
	msgAskIdentityExplore   = "Please share your mobile number before we explore funds."
	msgAskIdentityInvest    = "Before we proceed with the investment, please provide your mobile number."

	msgNoAccount     = "No account found for this mobile number."
	msgDataTrouble   = "I'm having trouble fetching that information right now. Please try again in a moment."
	msgValuation     = "💼 Your total portfolio valuation is ₹%s."
	msgValuationNext = "Would you like to explore more funds, check your transaction history, or exit?"

	msgAskDateRange     = "Please provide the date range for the transactions."
	msgNoTransactions   = "No transactions found in the given date range."
	msgHistoryHeader    = "Here are your transactions:"
	msgHistoryLine      = "• %s: ₹%s - %s"
	msgHistoryNext      = "Would you like to invest more in one of these, explore other funds, or exit?"
	msgAskCategory      = "Which fund category would you like to explore? For example Equity, Debt or Hybrid."
	msgCategoryNotFound = "Sorry, no funds found in \"%s\". Try another category."
	msgCategoryHeader   = "Here are some %s funds:"
	msgCategoryLine     = "• %s (ID: %s)"
	msgCategoryNext     = "Would you like details on any of these, or would you like to invest?"

	msgAskFundName    = "Which fund would you like details for?"
	msgFundNotFound   = "No details found for fund: %s"
	msgFundHeader     = "📊 *%s* Breakdown:"
	msgFundLine       = "• %s: %s%%"
	msgFundMoreInfo   = "🔗 More info: %s"
	msgAskInvestment  = "Please mention both the fund name and the amount you'd like to invest."
	msgInvestBlocked  = "For demo, investments above ₹50,000 require verification. Contact support."
	msgInvestNotFound = "Sorry, no fund found with name \"%s\"."
	msgInvested       = "✅ Successfully simulated an investment of ₹%s in %s."
	msgInvestNext     = "Would you like to check your portfolio or explore more funds?"
)
