package scoring

// WeightedPhrase is one relevance taxonomy entry. Relevance phrases live in
// a slice, not a map: matched-keyword truncation is reproducible only if
// iteration follows declaration order.
type WeightedPhrase struct {
	Phrase string
	Weight float64
}

// Theme is a named critical macro-event category with its trigger phrases.
// Each theme contributes at most one fixed boost no matter how many of its
// triggers appear.
type Theme struct {
	ID       string
	Triggers []string
}

// Lexicon bundles the static scoring tables: weighted relevance phrases,
// the signed sentiment lexicon and the critical-theme triggers. Loaded once
// at startup and shared read-only by all scorers.
type Lexicon struct {
	Relevance []WeightedPhrase
	Sentiment map[string]float64
	Themes    []Theme
}

// Default returns the built-in finance/macro-crisis taxonomy.
func Default() *Lexicon {
	return &Lexicon{
		Relevance: relevanceWeights,
		Sentiment: sentimentWeights,
		Themes:    criticalThemes,
	}
}

// relevanceWeights maps lowercase phrases to positive topical weights.
// Declaration order is load-bearing for matched-keyword truncation.
var relevanceWeights = []WeightedPhrase{
	// Monetary policy
	{"federal reserve", 3.0}, {"fed", 2.0}, {"rate cut", 3.5}, {"rate hike", 3.5},
	{"interest rate", 2.5}, {"fomc", 3.0}, {"jerome powell", 2.5}, {"ecb", 2.5},
	{"quantitative easing", 2.5}, {"qt", 1.5}, {"yield curve", 2.0},
	{"boj", 2.0}, {"bank of england", 2.0}, {"pivot", 2.0}, {"inflation", 2.0},
	{"cpi", 2.0}, {"pce", 2.0}, {"gdp", 1.5},

	// Markets
	{"stock market", 2.5}, {"equities", 2.0}, {"s&p 500", 2.5}, {"nasdaq", 2.0},
	{"dow jones", 1.5}, {"market crash", 4.0}, {"selloff", 3.0}, {"rally", 1.5},
	{"bear market", 3.5}, {"bull market", 2.0}, {"correction", 2.5}, {"vix", 2.5},
	{"volatility", 2.0}, {"earnings", 2.0}, {"ipo", 1.5}, {"derivatives", 1.5},
	{"hedge fund", 1.5}, {"short selling", 2.0},

	// Geopolitics
	{"war", 4.0}, {"invasion", 4.5}, {"conflict", 3.0}, {"military", 2.5},
	{"sanctions", 3.5}, {"nato", 2.5}, {"ukraine", 3.0}, {"russia", 2.5},
	{"china", 2.0}, {"taiwan", 3.5}, {"middle east", 2.5}, {"oil", 2.5},
	{"energy crisis", 3.0}, {"geopolitical", 2.5},

	// Crisis
	{"crisis", 3.5}, {"default", 3.5}, {"bankruptcy", 3.0}, {"collapse", 4.0},
	{"recession", 3.0}, {"stagflation", 3.0}, {"hyperinflation", 3.5},
	{"bank run", 4.0}, {"contagion", 3.5}, {"systemic risk", 3.5},
	{"debt ceiling", 3.0}, {"shutdown", 2.5},

	// General finance
	{"merger", 1.5}, {"acquisition", 1.5}, {"tariff", 2.5}, {"trade war", 3.0},
	{"dollar", 1.5}, {"currency", 1.5}, {"treasury", 2.0}, {"bond", 1.5},
	{"commodity", 1.5}, {"gold", 1.5}, {"bitcoin", 1.5}, {"crypto", 1.5},
}

// sentimentWeights is the signed sentiment lexicon. Keys are single tokens
// or two-word phrases matched against the unigram+bigram token stream.
var sentimentWeights = map[string]float64{
	// Positive
	"surge": 4.8, "soar": 4.5, "boom": 5.0, "record high": 5.0,
	"rally": 3.5, "rebound": 3.0, "recovery": 3.0, "recover": 2.5,
	"gain": 2.5, "gains": 2.5, "climb": 2.0, "rise": 1.5, "rises": 1.5,
	"growth": 2.0, "expansion": 2.0, "optimism": 2.5, "upbeat": 2.0,
	"bullish": 3.0, "beat expectations": 3.5, "strong earnings": 3.0,
	"outperform": 2.5, "upgrade": 2.5, "stimulus": 1.5, "breakthrough": 2.5,
	"stabilize": 1.5, "resilient": 2.0, "easing fears": 2.5,

	// Negative
	"crash": -5.0, "collapse": -5.0, "plunge": -4.5, "plummet": -4.5,
	"crisis": -4.0, "panic": -4.5, "bank run": -5.0, "meltdown": -4.5,
	"default": -4.0, "bankruptcy": -4.5, "recession": -4.0, "contagion": -4.0,
	"selloff": -3.5, "tumble": -3.5, "turmoil": -3.5, "slump": -3.0,
	"sink": -3.0, "sinks": -3.0, "downgrade": -3.0, "losses": -2.5,
	"fears": -2.5, "fear": -2.0, "warns": -2.0, "warning": -2.0,
	"bearish": -3.0, "miss expectations": -3.5, "weak": -1.5, "decline": -2.0,
	"falls": -1.5, "drop": -1.5, "drops": -1.5, "record low": -4.5,
	"layoffs": -3.0, "shutdown": -2.5, "sanctions": -2.0, "war": -3.5,
	"invasion": -4.0, "escalation": -3.0, "uncertainty": -2.0,
}

// criticalThemes maps theme identifiers to trigger phrases, matched as raw
// substrings against the title-weighted lowercase blob. Scan order within a
// theme only decides which trigger short-circuits; it never changes score.
var criticalThemes = []Theme{
	{"war_conflict", []string{"war", "invasion", "military strike", "airstrike", "nuclear"}},
	{"market_crash", []string{"market crash", "circuit breaker", "trading halt", "black monday", "black swan"}},
	{"monetary_emergency", []string{"emergency rate cut", "emergency meeting", "fed emergency", "extraordinary measures"}},
	{"sovereign_default", []string{"default", "debt restructuring", "imf bailout", "sovereign debt crisis"}},
	{"banking_crisis", []string{"bank run", "bank failure", "fdic", "systemic collapse", "bank bailout"}},
	{"sanctions_major", []string{"sanctions", "export controls", "asset freeze", "swift ban"}},
	{"geopolitical_shock", []string{"taiwan strait", "nuclear threat", "escalation", "invasion"}},
	{"recession", []string{"recession", "gdp contraction", "economic downturn", "negative growth"}},
	{"inflation", []string{"inflation surge", "cpi spike", "hyperinflation", "price surge"}},
	{"oil_energy", []string{"oil price", "crude oil", "opec", "energy crisis", "oil shock"}},
	{"market_volatility", []string{"vix spike", "volatility surge", "flash crash", "market selloff", "panic selling"}},
	{"central_bank", []string{"rate decision", "central bank", "fomc meeting", "boj decision", "ecb decision"}},
}
