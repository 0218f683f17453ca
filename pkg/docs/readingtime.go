package docs

import (
	"fmt"
	"math"
	"regexp"
	"strings"
)

const (
	wordsPerMinute    = 200
	codeReadingFactor = 0.3 // reading code is slower than prose
)

var fencedBlock = regexp.MustCompile("(?s)```.*?```")

// EstimateReadingTime derives an approximate reading duration from Markdown
// content. Fenced code blocks are extracted first and weighted by
// codeReadingFactor; the remainder is counted as prose. The result is a
// display string such as "1 min" or "7 mins". Empty content yields "1 min".
func EstimateReadingTime(content string) string {
	codeBlocks := fencedBlock.FindAllString(content, -1)
	text := fencedBlock.ReplaceAllString(content, "")

	textWords := len(strings.Fields(text))
	codeWords := 0
	for _, block := range codeBlocks {
		codeWords += len(strings.Fields(block))
	}

	textTime := float64(textWords) / wordsPerMinute
	codeTime := float64(codeWords) / wordsPerMinute / codeReadingFactor
	minutes := int(math.Ceil(textTime + codeTime))

	if minutes <= 1 {
		return "1 min"
	}
	return fmt.Sprintf("%d mins", minutes)
}
