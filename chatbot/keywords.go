package chatbot

// Keyword tables drive the whole classifier. Matching is lower-cased
// substring containment, so short words can fire inside longer ones ("job"
// inside "jobless"). That looseness is intentional and covered by tests;
// extend the tables rather than the control flow.

// nonFinancialKeywords reject a message outright, before any financial
// keyword is considered.
var nonFinancialKeywords = []string{
	"weather",
	"movie",
	"film",
	"recipe",
	"cooking",
	"sports",
	"game score",
	"relationship",
	"dating",
	"health symptom",
	"medical",
	"doctor",
	"homework",
	"essay",
	"joke",
	"song",
	"lyrics",
	"travel visa",
	"job",
}

// financialKeywords classify a message as finance-related
var financialKeywords = []string{
	"invest",
	"stock",
	"bond",
	"etf",
	"fund",
	"portfolio",
	"dividend",
	"market",
	"trading",
	"broker",
	"401k",
	"401(k)",
	"ira",
	"roth",
	"retirement",
	"pension",
	"savings",
	"save money",
	"saving",
	"budget",
	"income",
	"salary",
	"paycheck",
	"money",
	"dollar",
	"finance",
	"financial",
	"interest rate",
	"compound",
	"debt",
	"loan",
	"mortgage",
	"credit",
	"expense",
	"spend",
	"wealth",
	"asset",
	"equity",
	"crypto",
	"inflation",
	"tax",
	"emergency fund",
	"net worth",
}

// savingsContextWords and incomeContextWords back two heuristics: the
// digit+savings+income classification catch-all, and the savings-calculator
// dispatch rule.
var savingsContextWords = []string{
	"save",
	"saving",
	"goal",
	"accumulate",
	"put away",
	"set aside",
	"reach",
}

var incomeContextWords = []string{
	"earn",
	"make",
	"income",
	"paycheck",
	"salary",
	"paid",
	"wage",
	"per week",
	"every two weeks",
	"biweekly",
	"per month",
}

// investmentDomainWords gate the advice generator: an extracted amount alone
// is not enough, the message has to be about investing.
var investmentDomainWords = []string{
	"invest",
	"portfolio",
	"stock",
	"etf",
	"retirement",
	"401k",
	"ira",
}

// Goal inference buckets. Travel needs a word from travelWords AND one from
// spendingWords so a city name alone does not flip the goal.
var travelWords = []string{"travel", "trip", "vacation", "flight", "holiday"}

var spendingWords = []string{"spend", "buy", "cost", "pay", "budget", "afford"}

var retirementWords = []string{"retire", "retirement", "pension"}

var homeWords = []string{"house", "home", "mortgage", "down payment", "property"}

var educationWords = []string{"college", "education", "tuition", "school", "degree"}

// Risk inference word lists
var lowRiskWords = []string{"safe", "conservative", "low risk", "low-risk", "cautious", "stable", "preserve"}

var highRiskWords = []string{"aggressive", "high risk", "high-risk", "risky", "growth", "speculative"}

// Time-horizon word lists. Long-horizon words win over short-horizon ones.
var longHorizonWords = []string{"year", "annual", "decade", "long term", "long-term"}

var shortHorizonWords = []string{"month", "short", "soon", "quickly"}
