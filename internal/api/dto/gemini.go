package dto

// GeminiAPIRequest is the request payload for the Gemini API.
type GeminiAPIRequest struct {
	Contents []Content `json:"contents"`
}

// Content is a content block in a Gemini API request.
type Content struct {
	Parts []Part `json:"parts"`
}

// Part is a part of a content block.
type Part struct {
	Text string `json:"text"`
}

// GeminiAPIResponse is the response from the Gemini API.
type GeminiAPIResponse struct {
	Candidates []Candidate `json:"candidates"`
}

// Candidate is a candidate response from the Gemini API.
type Candidate struct {
	Content struct {
		Parts []Part `json:"parts"`
	} `json:"content"`
}
