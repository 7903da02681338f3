package repository

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"mediascope/internal/ingestor/dto"
)

var (
	monthPattern = regexp.MustCompile(`(?i)MONTH:\s*(\w+)`)
	dayPattern   = regexp.MustCompile(`(?i)DAY:\s*(\d+)`)
	yearPattern  = regexp.MustCompile(`(?i)YEAR:\s*(\d+)`)
	pagePattern  = regexp.MustCompile(`(?i)PAGE:\s*(\d+)`)

	articleBlockPattern = regexp.MustCompile(`(?s)ARTICLE_START(.*?)ARTICLE_END`)
	numberPattern       = regexp.MustCompile(`NUMBER:\s*(\d+)`)
	headlinePattern     = regexp.MustCompile(`HEADLINE:\s*(.+)`)
	contentPattern      = regexp.MustCompile(`(?s)CONTENT:\s*(.+)`)
)

// parsePageMetadata parses the strict MONTH/DAY/YEAR/PAGE reply. Missing or
// unreadable fields fall back to January 1 1990, page 1.
func parsePageMetadata(text string) *dto.PageMetadata {
	meta := &dto.PageMetadata{Year: 1990, Month: 1, Day: 1, PageNumber: 1}

	if m := monthPattern.FindStringSubmatch(text); m != nil {
		if month, ok := parseMonthName(m[1]); ok {
			meta.Month = month
		}
	}
	if m := dayPattern.FindStringSubmatch(text); m != nil {
		if day, err := strconv.Atoi(m[1]); err == nil && day >= 1 && day <= 31 {
			meta.Day = day
		}
	}
	if m := yearPattern.FindStringSubmatch(text); m != nil {
		if year, err := strconv.Atoi(m[1]); err == nil && year >= 1000 {
			meta.Year = year
		}
	}
	if m := pagePattern.FindStringSubmatch(text); m != nil {
		if page, err := strconv.Atoi(m[1]); err == nil && page >= 1 {
			meta.PageNumber = page
		}
	}
	return meta
}

func parseMonthName(name string) (int, bool) {
	if len(name) < 3 {
		return 0, false
	}
	abbr := strings.ToUpper(name[:1]) + strings.ToLower(name[1:3])
	t, err := time.Parse("Jan", abbr)
	if err != nil {
		return 0, false
	}
	return int(t.Month()), true
}

// parseArticleBlocks splits the OCR reply into segmented articles. Blocks
// without a headline or content are dropped.
func parseArticleBlocks(text string) []dto.OCRArticle {
	var articles []dto.OCRArticle
	for _, match := range articleBlockPattern.FindAllStringSubmatch(text, -1) {
		block := match[1]

		headlineMatch := headlinePattern.FindStringSubmatch(block)
		contentMatch := contentPattern.FindStringSubmatch(block)
		if headlineMatch == nil || contentMatch == nil {
			continue
		}
		headline := strings.TrimSpace(headlineMatch[1])
		content := strings.TrimSpace(contentMatch[1])
		if headline == "" || content == "" {
			continue
		}

		number := len(articles) + 1
		if m := numberPattern.FindStringSubmatch(block); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil {
				number = n
			}
		}

		articles = append(articles, dto.OCRArticle{
			Number:   number,
			Headline: headline,
			Content:  content,
		})
	}
	return articles
}
