// Package ats scores resume text the way a keyword-driven applicant tracking
// system would: contact details, keyword density, section headings and length.
package ats

import (
	"errors"
	"fmt"
	"regexp"
	"unicode/utf16"
)

// ErrAnalyze is returned when scoring fails unexpectedly.
var ErrAnalyze = errors.New("failed to analyze resume")

// Score is the result returned to clients.
type Score struct {
	Overall         int       `json:"overall"`
	Breakdown       Breakdown `json:"breakdown"`
	Recommendations []string  `json:"recommendations"`
	Label           string    `json:"label"`
}

// Breakdown holds the five independently capped sub-scores.
type Breakdown struct {
	Keywords    int `json:"keywords"`
	Formatting  int `json:"formatting"`
	Sections    int `json:"sections"`
	Length      int `json:"length"`
	Readability int `json:"readability"`
}

const (
	baseScore    = 15
	overallLimit = 75

	keywordsCap    = 20
	sectionsCap    = 20
	readabilityCap = 8
)

var (
	emailPattern   = regexp.MustCompile(`(?i)\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Z|a-z]{2,}\b`)
	phonePattern   = regexp.MustCompile(`\b\d{3}[-.]?\d{3}[-.]?\d{4}\b`)
	keywordPattern = regexp.MustCompile(`(?i)\b(experience|skills|education|management|development|analysis|leadership|project|achievement)\b`)
	sectionPattern = regexp.MustCompile(`(?i)\b(experience|education|skills|summary|objective|projects|certifications)\b`)
	// 按 JS 的 \s 划分空白；RE2 的 \s 只匹配 ASCII 空白。
	whitespace = regexp.MustCompile(`[\t\n\v\f\r \x{00a0}\x{1680}\x{2000}-\x{200a}\x{2028}\x{2029}\x{202f}\x{205f}\x{3000}\x{feff}]+`)
)

// Features are the raw measurements the score is derived from.
type Features struct {
	TextLength     int
	WordCount      int
	HasEmail       bool
	HasPhone       bool
	KeywordDensity int
	Sections       int
}

// Extract measures text. WordCount counts the pieces produced by splitting on
// whitespace runs, so leading or trailing whitespace adds an empty piece and
// empty text counts as one word.
func Extract(text string) Features {
	return Features{
		TextLength:     len(utf16.Encode([]rune(text))),
		WordCount:      len(whitespace.Split(text, -1)),
		HasEmail:       emailPattern.MatchString(text),
		HasPhone:       phonePattern.MatchString(text),
		KeywordDensity: len(keywordPattern.FindAllStringIndex(text, -1)),
		Sections:       len(sectionPattern.FindAllStringIndex(text, -1)),
	}
}

// Calculate scores resume text. It is deterministic and keeps no state.
func Calculate(text string) (score Score, err error) {
	defer func() {
		if r := recover(); r != nil {
			score = Score{}
			err = fmt.Errorf("%w: %v", ErrAnalyze, r)
		}
	}()

	return FromFeatures(Extract(text)), nil
}

// FromFeatures applies the point weights and thresholds.
func FromFeatures(f Features) Score {
	overall := baseScore
	if f.HasEmail {
		overall += 8
	}
	if f.HasPhone {
		overall += 8
	}
	if f.WordCount > 200 {
		overall += 10
	}
	if f.WordCount > 400 {
		overall += 10
	}
	if f.KeywordDensity > 5 {
		overall += 15
	}
	if f.Sections > 3 {
		overall += 12
	}
	if f.TextLength > 1000 {
		overall += 8
	}
	overall = min(overallLimit, overall)

	breakdown := Breakdown{
		Keywords:    min(keywordsCap, f.KeywordDensity*2),
		Formatting:  10,
		Sections:    min(sectionsCap, f.Sections*3),
		Length:      8,
		Readability: min(readabilityCap, f.WordCount/100),
	}
	if f.HasEmail && f.HasPhone {
		breakdown.Formatting = 18
	}
	if f.WordCount >= 300 && f.WordCount <= 800 {
		breakdown.Length = 12
	}

	return Score{
		Overall:         overall,
		Breakdown:       breakdown,
		Recommendations: recommend(overall, breakdown),
		Label:           Label(overall),
	}
}

// Label maps an overall score to the wording shown next to it.
// Overall is capped at 75, so Calculate never yields "Excellent".
func Label(overall int) string {
	switch {
	case overall >= 80:
		return "Excellent"
	case overall >= 60:
		return "Good"
	default:
		return "Needs Improvement"
	}
}

func recommend(overall int, b Breakdown) []string {
	var out []string
	if b.Keywords < 15 {
		out = append(out, recKeywords)
	}
	if b.Formatting < 15 {
		out = append(out, recContactInfo)
	}
	if b.Sections < 15 {
		out = append(out, recSections)
	}
	if b.Length < 10 {
		out = append(out, recLength)
	}
	if b.Readability < 6 {
		out = append(out, recReadability)
	}
	if overall < 50 {
		out = append(out, recOverall)
	}
	if len(out) == 0 {
		out = append(out, recExcellent)
	}
	return out
}
