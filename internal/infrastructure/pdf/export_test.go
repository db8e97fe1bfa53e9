package pdf

var (
	FormatMoney = formatMoney
	SplitEvery  = splitEvery
)
