// ABOUTME: Audio library listings with filename-encoded timestamps
// ABOUTME: Parses YYMMDD_HHMM stems and lists recordings newest first
package library

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/voxdeck/voxdeck-go/pkg/audio/decode"
)

// File describes one recording in the library directory.
type File struct {
	Path      string
	Name      string
	Timestamp time.Time
}

// stemPattern is the YYMMDD_HHMM recording name: six date digits, one
// separator, four time digits. Trailing text after the time is allowed.
var stemPattern = regexp.MustCompile(`^(\d{2})(\d{2})(\d{2})[^0-9](\d{2})(\d{2})`)

// ParseTimestamp decodes a filename stem of the form YYMMDD_HHMM into
// a timestamp in the local time zone. Years map to 20YY.
func ParseTimestamp(stem string) (time.Time, error) {
	m := stemPattern.FindStringSubmatch(stem)
	if m == nil {
		return time.Time{}, fmt.Errorf("filename %q does not match YYMMDD_HHMM", stem)
	}

	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])
	hour, _ := strconv.Atoi(m[4])
	minute, _ := strconv.Atoi(m[5])

	t := time.Date(2000+year, time.Month(month), day, hour, minute, 0, 0, time.Local)
	// time.Date normalizes out-of-range components; a changed field
	// means the stem encoded an impossible date or time.
	if int(t.Month()) != month || t.Day() != day || t.Hour() != hour || t.Minute() != minute {
		return time.Time{}, fmt.Errorf("filename %q encodes an invalid date", stem)
	}
	return t, nil
}

// List returns the decodable recordings in dir that carry a valid
// timestamp, newest first. Files with unparsable names are excluded.
func List(dir string) ([]File, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list recordings: %w", err)
	}

	var files []File
	for _, entry := range entries {
		if entry.IsDir() || !decode.Supported(entry.Name()) {
			continue
		}
		stem := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		ts, err := ParseTimestamp(stem)
		if err != nil {
			continue
		}
		files = append(files, File{
			Path:      filepath.Join(dir, entry.Name()),
			Name:      entry.Name(),
			Timestamp: ts,
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Timestamp.After(files[j].Timestamp)
	})
	return files, nil
}
