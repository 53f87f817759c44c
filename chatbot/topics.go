package chatbot

import "strings"

// topic pairs a set of trigger substrings with a canned response. The table
// is checked in order and the first hit wins, so narrower topics sit above
// broader ones (e.g. "index fund" above the generic stock-analysis entry).
type topic struct {
	name     string
	triggers []string
	response string
}

var topicTable = []topic{
	{
		name:     "etf",
		triggers: []string{"etf", "exchange traded fund", "exchange-traded fund"},
		response: "An ETF (exchange-traded fund) is a basket of securities that trades on an exchange like a single stock. " +
			"ETFs give you instant diversification with low fees and no minimum beyond one share. " +
			"Broad-market ETFs like VTI or VOO are a common core holding for long-term investors.",
	},
	{
		name:     "index_funds",
		triggers: []string{"index fund", "index investing", "passive investing"},
		response: "Index funds track a market index such as the S&P 500 instead of trying to beat it. " +
			"Because there's no active manager to pay, fees are very low, and over long periods most actively managed funds fail to outperform their index. " +
			"They're a solid default for retirement accounts.",
	},
	{
		name:     "ira",
		triggers: []string{"roth ira", "traditional ira", " ira", "ira "},
		response: "An IRA is a tax-advantaged retirement account. With a Traditional IRA you may deduct contributions now and pay tax on withdrawals in retirement; " +
			"with a Roth IRA you contribute after-tax money and qualified withdrawals are tax-free. " +
			"If you expect to be in a higher bracket later, Roth usually wins.",
	},
	{
		name:     "compound_interest",
		triggers: []string{"compound interest", "compounding", "compound growth"},
		response: "Compound interest is earning returns on your returns. $1,000 growing at 7% annually becomes about $2,000 in 10 years and $7,600 in 30, " +
			"without adding another dollar. The earlier you start, the more the compounding does the work for you.",
	},
	{
		name:     "diversification",
		triggers: []string{"diversif"},
		response: "Diversification means spreading your money across many assets so no single failure sinks you. " +
			"In practice that's owning broad funds rather than a handful of individual stocks, and mixing asset classes (stocks, bonds, cash) " +
			"in proportions that match your time horizon.",
	},
	{
		name:     "options",
		triggers: []string{"option", "covered call", "strike price"},
		response: "Options are contracts giving the right to buy (calls) or sell (puts) a stock at a set price before a deadline. " +
			"They can hedge a portfolio or generate income, but sold options carry potentially large losses. " +
			"They're best left alone until you're comfortable with how the underlying stocks behave.",
	},
	{
		name:     "market_cap",
		triggers: []string{"market cap", "market capitalization"},
		response: "Market capitalization is share price times shares outstanding, i.e. what the whole company is valued at. " +
			"Large-cap companies (over ~$10B) tend to be steadier; small-caps are more volatile with more room to grow. " +
			"Many investors hold a mix via total-market funds.",
	},
	{
		name:     "pe_ratio",
		triggers: []string{"p/e", "pe ratio", "price to earnings", "price-to-earnings"},
		response: "The P/E ratio divides a company's share price by its earnings per share, telling you how much you pay for each dollar of profit. " +
			"A high P/E can mean expected growth or overvaluation; a low one can mean a bargain or a business in decline. " +
			"Always compare against the company's sector, not the whole market.",
	},
	{
		name:     "dividends",
		triggers: []string{"dividend"},
		response: "Dividends are cash a company pays shareholders out of its profits, typically quarterly. " +
			"Dividend yield is the annual payout divided by share price. Reinvesting dividends is one of the quiet engines of long-term returns, " +
			"but a very high yield is often a warning sign rather than a gift.",
	},
	{
		name:     "volatility",
		triggers: []string{"volatil"},
		response: "Volatility measures how much a price swings around its average. Higher volatility means bigger ups and downs, not necessarily worse returns. " +
			"If a 20% drop would make you sell in a panic, lower your stock allocation before the drop happens rather than after.",
	},
	{
		name:     "beta",
		triggers: []string{"beta"},
		response: "Beta measures how a stock moves relative to the overall market. Beta 1 moves with the market, above 1 amplifies it, below 1 dampens it. " +
			"A portfolio's weighted beta is a quick gauge of how hard a market drop would hit it.",
	},
	{
		name:     "expense_ratio",
		triggers: []string{"expense ratio", "fund fees", "management fee"},
		response: "The expense ratio is the annual fee a fund charges, as a percentage of your balance. " +
			"It compounds against you: 1% a year eats roughly a quarter of your gains over 30 years versus 0.05%. " +
			"For index funds there's rarely a reason to pay more than about 0.1%.",
	},
	{
		name:     "401k",
		triggers: []string{"401k", "401(k)", "employer match"},
		response: "A 401(k) is an employer-sponsored retirement account funded straight from your paycheck, pre-tax. " +
			"If your employer matches contributions, contribute at least enough to capture the full match, it's an immediate 50-100% return. " +
			"After the match, weigh maxing an IRA for better fund choices.",
	},
	{
		name:     "emergency_fund",
		triggers: []string{"emergency fund", "rainy day"},
		response: "An emergency fund is 3-6 months of essential expenses kept in a high-yield savings account, separate from investments. " +
			"It exists so a job loss or car repair doesn't force you to sell investments at a bad time or reach for a credit card. " +
			"Build it before you invest aggressively.",
	},
	{
		name:     "budgeting",
		triggers: []string{"budget", "track spending", "spending plan"},
		response: "A simple starting budget is 50/30/20: 50% of take-home pay to needs, 30% to wants, 20% to savings and debt payments. " +
			"The exact split matters less than tracking where the money actually goes for a month or two, the leaks are usually a surprise.",
	},
	{
		name:     "debt",
		triggers: []string{"debt", "pay off", "loan", "credit card balance"},
		response: "For paying down debt, two orderings work: avalanche (highest interest rate first, mathematically optimal) " +
			"and snowball (smallest balance first, motivationally easier). Anything above ~7% interest is usually worth paying off before investing, " +
			"it's a guaranteed return at that rate.",
	},
	{
		name:     "credit_score",
		triggers: []string{"credit score", "credit report", "fico"},
		response: "Your credit score is driven mostly by payment history and credit utilization. " +
			"Pay every bill on time, keep card balances under ~30% of their limits (under 10% is better), and don't close old accounts. " +
			"Checking your own score never hurts it.",
	},
	{
		name:     "dollar_cost_averaging",
		triggers: []string{"dollar cost averaging", "dollar-cost averaging", "dca"},
		response: "Dollar-cost averaging means investing a fixed amount on a fixed schedule regardless of price, so you buy more shares when prices are low. " +
			"Its real value is behavioral: it removes the temptation to time the market. A monthly automatic transfer into a broad fund is DCA in practice.",
	},
	{
		name:     "stock_analysis",
		triggers: []string{"analyze", "research a stock", "fundamentals", "earnings report"},
		response: "To evaluate a stock, look at revenue and earnings growth over several years, debt levels, free cash flow, and valuation versus peers (P/E, P/S). " +
			"Then ask the qualitative question: does this business have an advantage competitors can't easily copy? " +
			"If you can't answer that, a fund may serve you better than the stock.",
	},
	{
		name:     "trading_basics",
		triggers: []string{"how to trade", "start trading", "day trading", "market order", "limit order"},
		response: "Trading basics: a market order executes immediately at the current price, a limit order only at your price or better. " +
			"Day trading against professionals is a losing proposition for most people; " +
			"the boring approach of buying broad funds and holding has beaten the average active trader in every long-run study.",
	},
}

// comparativeResponse handles "X vs Y" style questions, which cut across the
// topic table.
const comparativeResponse = "For comparing two investments, line them up on the same criteria: " +
	"expected long-term return, fees, risk level, liquidity, and tax treatment. " +
	"Often the honest answer is that both are fine and the decision matters less than how long you stay invested. " +
	"Ask me about either one individually and I can go deeper."

// purchaseDecisionResponse is a generic framework for "should I buy X"
const purchaseDecisionResponse = "For any buy decision, run through this checklist: " +
	"Do you have an emergency fund? Is high-interest debt paid off? Do you understand what you're buying well enough to explain it to a friend? " +
	"And would a 30% drop in its price change your plans? If the answers are yes, yes, yes, no, you're in a reasonable position to buy."

// fallbackResponse is the terminal catch-all; the responder never fails
const fallbackResponse = "I can help with a range of personal-finance topics: investing basics (ETFs, index funds, diversification), " +
	"retirement accounts (401k, IRA), savings plans and budgeting, debt payoff, and how to evaluate a stock. " +
	"Ask me something like \"what is an expense ratio?\" or \"I make $600 every two weeks and want to save $5000 by December.\""

// topicResponse runs the ordered topic table and the two cross-cutting
// checks, ending in the generic fallback. It always returns a response.
func topicResponse(input string) (string, string) {
	text := strings.ToLower(input)

	for _, t := range topicTable {
		if containsAny(text, t.triggers) {
			return t.response, t.name
		}
	}

	if strings.Contains(text, " vs ") || strings.Contains(text, " vs. ") || strings.Contains(text, "versus") {
		return comparativeResponse, "comparison"
	}
	if strings.Contains(text, "should i buy") || strings.Contains(text, "worth buying") {
		return purchaseDecisionResponse, "purchase_decision"
	}

	return fallbackResponse, "fallback"
}
