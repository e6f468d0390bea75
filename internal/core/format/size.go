package format

import (
	"math"
	"strconv"
	"strings"
)

// UnknownSize is shown in place of a file size the extractor did not report
const UnknownSize = "Unknown size"

var sizeUnits = []string{"Bytes", "KB", "MB", "GB"}

// FileSize renders a byte count in the largest base-1024 unit that keeps the
// value at or above 1, rounded to two decimals. GB is the largest unit.
func FileSize(bytes int64) string {
	if bytes <= 0 {
		return "0 Byte"
	}

	unit := SizeUnitIndex(bytes)
	value := float64(bytes) / math.Pow(1024, float64(unit))
	return formatNumber(math.Round(value*100)/100) + " " + sizeUnits[unit]
}

// SizeUnitIndex returns the index of the unit FileSize uses for bytes
// (0 Bytes, 1 KB, 2 MB, 3 GB)
func SizeUnitIndex(bytes int64) int {
	unit := 0
	threshold := int64(1024)
	for unit < len(sizeUnits)-1 && bytes >= threshold {
		unit++
		threshold *= 1024
	}
	return unit
}

// formatNumber renders f in its shortest decimal form ("30", "29.97")
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Duration normalizes an "H:MM:SS" / "M:SS" duration string, dropping a
// zero hour component. Strings that do not have three parts are returned as is.
func Duration(s string) string {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return s
	}

	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return s
		}
		nums[i] = n
	}

	hours, minutes, seconds := nums[0], nums[1], nums[2]
	if hours > 0 {
		return strconv.Itoa(hours) + ":" + pad2(minutes) + ":" + pad2(seconds)
	}
	return strconv.Itoa(minutes) + ":" + pad2(seconds)
}

func pad2(n int) string {
	if n >= 0 && n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}
