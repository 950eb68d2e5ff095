package pox

import (
	"strings"

	"github.com/shopspring/decimal"
)

const (
	// MicroSTXDecimals is the number of decimals between STX and micro-STX.
	MicroSTXDecimals = 6
	// MaxSafeInteger is the largest amount a JSON client can represent without loss (2^53 - 1).
	MaxSafeInteger int64 = 1<<53 - 1

	// maxSafeDigits is the number of integer digits of MaxSafeInteger.
	maxSafeDigits = 16
	// maxAmountDigits bounds the significant digits (and fractional scale) accepted before any arithmetic.
	maxAmountDigits = 32
)

var maxSafeAmount = decimal.NewFromInt(MaxSafeInteger)

// ToMicroSTX 将 STX 金额（显示单位）转换为 micro-STX，截断小数部分。
// 指数形式在任何运算前按数量级拒绝，避免展开为超大整数
func ToMicroSTX(amount string) (uint64, error) {
	trimmed := strings.TrimSpace(amount)
	if trimmed == "" {
		return 0, errInvalidMaxAmount(amount)
	}

	d, err := decimal.NewFromString(trimmed)
	if err != nil || d.IsNegative() {
		return 0, errInvalidMaxAmount(amount)
	}
	if d.IsZero() {
		return 0, nil
	}

	digits := int64(d.NumDigits())
	exp := int64(d.Exponent())
	if digits > maxAmountDigits || exp < -(MicroSTXDecimals+maxAmountDigits) {
		return 0, errInvalidMaxAmount(amount)
	}
	// integer digits of the micro-STX value
	if digits+exp+MicroSTXDecimals > maxSafeDigits {
		return 0, errMaxAmountTooBig(trimmed)
	}

	micro := d.Shift(MicroSTXDecimals).Truncate(0)
	if micro.GreaterThan(maxSafeAmount) {
		return 0, errMaxAmountTooBig(micro.String())
	}

	return uint64(micro.IntPart()), nil
}
