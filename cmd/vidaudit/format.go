package main

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var timeNow = time.Now

var (
	printer    = message.NewPrinter(language.English)
	titleCaser = cases.Title(language.English)
)

// tierAcronyms keeps tier names that title-casing would mangle.
var tierAcronyms = map[string]string{
	"sdr":   "SDR",
	"hdr":   "HDR",
	"4k":    "4K",
	"1080p": "1080p",
}

// formatCount groups thousands: 12,345.
func formatCount(n int) string {
	return printer.Sprintf("%d", n)
}

// formatShare renders "count (pct%)" the way the HTML cards do.
func formatShare(count int, pct float64) string {
	return printer.Sprintf("%d (%.1f%%)", count, pct)
}

// tierHeading turns a tier identifier into a display heading.
func tierHeading(tier string) string {
	if a, ok := tierAcronyms[tier]; ok {
		return a
	}
	return titleCaser.String(strings.ReplaceAll(tier, "_", " "))
}

func pluralize(n int, singular, plural string) string {
	if n == 1 {
		return formatCount(n) + " " + singular
	}
	return formatCount(n) + " " + plural
}

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return d.Round(time.Millisecond).String()
	}
	return d.Round(100 * time.Millisecond).String()
}
