package repository

import "fmt"

// BuildMetadataPrompt asks for the publication date and page number of a
// scanned page. The reply is parsed line by line, so the format is strict.
func BuildMetadataPrompt() string {
	return `Extract from this newspaper scan:
1. Publication date (month, day, year)
2. Page number

Respond ONLY in this format:
MONTH: [month name]
DAY: [day number]
YEAR: [4-digit year like 1990]
PAGE: [page number]

If not found, write UNKNOWN.`
}

// BuildArticleExtractionPrompt asks for the segmented article structure of a
// scanned page, delimited with ARTICLE_START and ARTICLE_END markers.
func BuildArticleExtractionPrompt() string {
	return `This is a historical newspaper being digitized for academic research.

Identify and extract article structure from this newspaper page:
- Number each distinct article (1, 2, 3...)
- Provide the headline for each
- Extract the text content for digital preservation

Format:
ARTICLE_START
NUMBER: [number]
HEADLINE: [headline text]
CONTENT: [article text for research archive]
ARTICLE_END

This is for educational and historical research purposes.`
}

// BuildAnnotationPrompt asks for named entities, sentiment and a topic label
// for one article as a JSON object.
func BuildAnnotationPrompt(headline, content string) string {
	return fmt.Sprintf(`You are an NLP annotator for a historical newspaper archive.

Annotate the following article.

Headline: %s

Content:
%s

Return ONLY a JSON object with this exact structure:
{
  "entities": [{"text": "...", "type": "PERSON|ORG|GPE|LOC|EVENT|DATE|TIME|CARDINAL|ORDINAL|QUANTITY|MONEY|PERCENT", "start_char": 0, "end_char": 0}],
  "sentiment_score": 0.0,
  "sentiment_label": "positive|neutral|negative",
  "topic_label": "..."
}

The sentiment_score is between -1.0 and 1.0. Character offsets refer to the content text. Use a short topic label such as "diplomacy", "economy" or "sports".`, headline, content)
}
