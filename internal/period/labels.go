package period

import (
	"strconv"
	"strings"
)

// MonthLabeler turns a "YYYY-MM" month key into a chart label.
type MonthLabeler func(month string) string

var (
	shortMonthsPtBR = [12]string{"jan.", "fev.", "mar.", "abr.", "mai.", "jun.", "jul.", "ago.", "set.", "out.", "nov.", "dez."}
	shortMonthsEN   = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}
)

// ShortMonthPtBR labels months with Brazilian Portuguese abbreviations.
func ShortMonthPtBR(month string) string {
	return shortMonth(month, shortMonthsPtBR)
}

// ShortMonthEN labels months with English abbreviations.
func ShortMonthEN(month string) string {
	return shortMonth(month, shortMonthsEN)
}

// LabelerFor returns the labeler for a locale tag, defaulting to pt-BR.
func LabelerFor(locale string) MonthLabeler {
	switch strings.ToLower(locale) {
	case "en", "en-us", "en-gb":
		return ShortMonthEN
	default:
		return ShortMonthPtBR
	}
}

// shortMonth returns the key unchanged when it is not a valid YYYY-MM value.
func shortMonth(month string, names [12]string) string {
	parts := strings.SplitN(month, "-", 2)
	if len(parts) != 2 || len(parts[0]) != 4 {
		return month
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 1 || m > 12 {
		return month
	}
	return names[m-1]
}
