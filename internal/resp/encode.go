package resp

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Encode serializes f to its canonical RESP bytes. Encoding is total: every
// Frame value, including non-finite doubles, produces some byte sequence.
func Encode(f Frame) []byte {
	var buf bytes.Buffer
	encodeInto(&buf, f)
	return buf.Bytes()
}

func encodeInto(buf *bytes.Buffer, f Frame) {
	switch f.Kind {
	case KindSimpleString:
		buf.WriteByte('+')
		buf.WriteString(f.Str)
		buf.WriteString("\r\n")
	case KindSimpleError:
		buf.WriteByte('-')
		buf.WriteString(f.Str)
		buf.WriteString("\r\n")
	case KindInteger:
		buf.WriteByte(':')
		buf.WriteString(formatSignedInt(f.Int))
		buf.WriteString("\r\n")
	case KindBulkString:
		fmt.Fprintf(buf, "$%d\r\n", len(f.Bulk))
		buf.Write(f.Bulk)
		buf.WriteString("\r\n")
	case KindNullBulkString:
		buf.WriteString("$-1\r\n")
	case KindArray:
		fmt.Fprintf(buf, "*%d\r\n", len(f.Array))
		for _, item := range f.Array {
			encodeInto(buf, item)
		}
	case KindNullArray:
		buf.WriteString("*-1\r\n")
	case KindNull:
		buf.WriteString("_\r\n")
	case KindBoolean:
		if f.Bool {
			buf.WriteString("#t\r\n")
		} else {
			buf.WriteString("#f\r\n")
		}
	case KindDouble:
		buf.WriteByte(',')
		buf.WriteString(formatDouble(f.Double))
		buf.WriteString("\r\n")
	case KindMap:
		entries := sortedEntries(f.Map)
		fmt.Fprintf(buf, "%%%d\r\n", len(entries))
		for _, e := range entries {
			encodeInto(buf, SimpleString(e.Key))
			encodeInto(buf, e.Value)
		}
	case KindSet:
		fmt.Fprintf(buf, "~%d\r\n", len(f.Array))
		for _, item := range f.Array {
			encodeInto(buf, item)
		}
	}
}

// formatSignedInt renders n with an explicit leading sign, avoiding the
// int64 negation overflow at math.MinInt64.
func formatSignedInt(n int64) string {
	s := strconv.FormatInt(n, 10)
	if n >= 0 {
		return "+" + s
	}
	return s
}

// formatDouble renders f per the canonicalization rule: decimal form with an
// explicit sign inside the magnitude band [1e-8, 1e8], exponential form with
// an unpadded exponent (no '+', '-' only when negative) outside it, "+0" for zero regardless
// of sign bit, and the RESP3 literals for non-finite values.
func formatDouble(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "+inf"
	case math.IsInf(f, -1):
		return "-inf"
	case f == 0:
		return "+0"
	}

	sign := "+"
	if f < 0 {
		sign = "-"
	}
	abs := math.Abs(f)
	if abs > 1e8 || abs < 1e-8 {
		return sign + formatExponential(abs)
	}
	return sign + strconv.FormatFloat(abs, 'f', -1, 64)
}

// formatExponential turns Go's "1.23456e+08" into the canonical
// "1.23456e8" / "1.23456e-8": no sign and no zero-padding on a positive
// exponent, a bare minus and no padding on a negative one.
func formatExponential(abs float64) string {
	s := strconv.FormatFloat(abs, 'e', -1, 64)
	idx := strings.IndexByte(s, 'e')
	mantissa := s[:idx]
	expSign := s[idx+1]
	expDigits := strings.TrimLeft(s[idx+2:], "0")
	if expDigits == "" {
		expDigits = "0"
	}
	if expSign == '-' {
		return mantissa + "e-" + expDigits
	}
	return mantissa + "e" + expDigits
}
