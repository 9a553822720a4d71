package types

type IndicatorType string

const (
	IndicatorTypeMA             IndicatorType = "ma"
	IndicatorTypeEMA            IndicatorType = "ema"
	IndicatorTypeWMA            IndicatorType = "wma"
	IndicatorTypeSum            IndicatorType = "sum"
	IndicatorTypeStdDev         IndicatorType = "std_dev"
	IndicatorTypeRSI            IndicatorType = "rsi"
	IndicatorTypeMACD           IndicatorType = "macd"
	IndicatorTypeBollingerBands IndicatorType = "bollinger_bands"
	IndicatorTypeTR             IndicatorType = "tr"
	IndicatorTypeATR            IndicatorType = "atr"
	IndicatorTypeDMI            IndicatorType = "dmi"
	IndicatorTypeADX            IndicatorType = "adx"
	IndicatorTypeStochastic     IndicatorType = "stochastic_oscillator"
	IndicatorTypeWilliamsR      IndicatorType = "williams_r"
	IndicatorTypeCCI            IndicatorType = "cci"
	IndicatorTypeOBV            IndicatorType = "obv"
	IndicatorTypeZigZag         IndicatorType = "zigzag"
)
