// Package currency форматирует цены в индийских рупиях.
package currency

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Symbol — знак рупии.
const Symbol = "₹"

// ToRupees переводит цену в пайсах в рупии.
func ToRupees(paise int64) decimal.Decimal {
	return decimal.New(paise, -2)
}

// FormatINR форматирует цену в пайсах как "₹1,99,999": округление до целых рупий,
// индийская группировка разрядов (последние три цифры, далее по две).
func FormatINR(paise int64) string {
	rupees := ToRupees(paise).Round(0)

	sign := ""
	if rupees.IsNegative() {
		sign = "-"
		rupees = rupees.Abs()
	}

	return sign + Symbol + groupIndian(rupees.StringFixed(0))
}

// groupIndian расставляет запятые по индийской системе (лакхи, кроры).
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]

	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}

	return strings.Join(groups, ",") + "," + tail
}
