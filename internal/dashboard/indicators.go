package dashboard

var indicators = []Indicator{
	{Name: "Treasury Yields (10Y, 2Y)", Importance: "High", Frequency: "Daily", Source: "Alpha Vantage (Premium)"},
	{Name: "Unemployment Rate", Importance: "High", Frequency: "Monthly", Source: "BLS/FRED API"},
	{Name: "Consumer Price Index (CPI)", Importance: "High", Frequency: "Monthly", Source: "BLS/FRED API"},
	{Name: "GDP Growth Rate", Importance: "Medium", Frequency: "Quarterly", Source: "BEA/FRED API"},
	{Name: "Fed Funds Rate", Importance: "High", Frequency: "As changes occur", Source: "Federal Reserve/FRED API"},
	{Name: "Housing Starts", Importance: "Medium", Frequency: "Monthly", Source: "Census Bureau/FRED API"},
	{Name: "Retail Sales", Importance: "Medium", Frequency: "Monthly", Source: "Census Bureau/FRED API"},
	{Name: "ISM Manufacturing Index", Importance: "Medium", Frequency: "Monthly", Source: "ISM/FRED API"},
}

const indicatorsNote = "Economic indicators such as Treasury yields, unemployment and inflation " +
	"need additional API calls beyond the Alpha Vantage free tier. Use the FRED API or a premium " +
	"Alpha Vantage subscription to track them."

// Indicators returns the static list of recommended economic indicators.
func (s *Service) Indicators() IndicatorsView {
	out := make([]Indicator, len(indicators))
	copy(out, indicators)
	return IndicatorsView{Indicators: out, Note: indicatorsNote}
}
