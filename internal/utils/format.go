// internal/utils/format.go
package utils

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var clpPrinter = message.NewPrinter(language.MustParse("es-CL"))

// FormatPrice renders a whole-unit CLP amount with es-CL digit grouping,
// e.g. 699990 -> "699.990".
func FormatPrice(amount int64) string {
	return clpPrinter.Sprintf("%d", amount)
}
