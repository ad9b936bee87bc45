package util

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"time"

	"github.com/pkg/errors"
)

// Digest copies r into w while hashing it. It returns the SHA-256 hex digest
// and the number of bytes copied.
func Digest(w io.Writer, r io.Reader) (string, int64, error) {
	hash := sha256.New()

	n, err := io.Copy(io.MultiWriter(w, hash), r)
	if err != nil {
		return "", n, errors.Wrap(err, "failed to read content")
	}

	return hex.EncodeToString(hash.Sum(nil)), n, nil
}

// FormatBytes formats a size for logs, e.g. "512 B" or "1.5 KB".
func FormatBytes(size int64) string {
	units := []string{"B", "KB", "MB", "GB", "TB"}

	value := float64(size)
	i := 0
	for value >= 1024 && i < len(units)-1 {
		value /= 1024
		i++
	}
	if i == 0 {
		return fmt.Sprintf("%d B", size)
	}

	return fmt.Sprintf("%.1f %s", value, units[i])
}

// FormatDuration formats an import duration for logs. Sub-second values keep
// millisecond precision, longer ones are rounded to the second.
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}

	d = d.Round(time.Second)
	h := int(d / time.Hour)
	m := int(d/time.Minute) % 60
	s := int(d/time.Second) % 60

	switch {
	case h > 0:
		return fmt.Sprintf("%dh%dm", h, m)
	case m > 0:
		return fmt.Sprintf("%dm%ds", m, s)
	default:
		return fmt.Sprintf("%ds", s)
	}
}
