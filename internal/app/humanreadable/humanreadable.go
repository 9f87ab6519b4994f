// humanreadable formats byte counts for log output, mainly the
// enclosure sizes reported by the media resolver.
package humanreadable

import "fmt"

// IEC returns b in binary units, for example "48.8 KiB".
func IEC(b int64) string {
	return format(b, 1024, "KMGTPE", "iB")
}

// SI returns b in decimal units, for example "50.0 kB".
func SI(b int64) string {
	return format(b, 1000, "kMGTPE", "B")
}

func format(b int64, unit int64, prefixes string, suffix string) string {
	if b < 0 {
		return "unknown"
	}
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := unit, 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %c%s", float64(b)/float64(div), prefixes[exp], suffix)
}
