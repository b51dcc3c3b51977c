// Package domain holds DTOs for analyze http and service contracts
package domain

// TextInput asks for a one-shot profanity scan of finished text
type TextInput struct {
	Text string `json:"text" validate:"required,max=20000" example:"you are an ass today"`
}

// Hit is one detected token with byte offsets into the submitted text
type Hit struct {
	Token    string  `json:"token" example:"ass"`
	Entry    string  `json:"entry" example:"ass"`
	Category string  `json:"category,omitempty" example:"profanity"`
	Score    float64 `json:"score" example:"1.0"`
	Start    int     `json:"start" example:"11"`
	End      int     `json:"end" example:"14"`
}

// Span is one stretch of the highlight partition; spans tile the input
type Span struct {
	Start   int  `json:"start" example:"0"`
	End     int  `json:"end" example:"11"`
	Flagged bool `json:"flagged" example:"false"`
}

// TextResponse carries hits and the highlight partition
type TextResponse struct {
	Hits         []Hit  `json:"hits"`
	Spans        []Span `json:"spans"`
	HasProfanity bool   `json:"has_profanity" example:"true"`
}

// Segment is one transcribed span of speech
type Segment struct {
	SegmentID string  `json:"segment_id,omitempty" validate:"omitempty,uuid4" example:"7b1deb4d-3b7d-4bad-9bdd-2b0d7b3dcb6d"`
	SessionID string  `json:"session_id,omitempty" validate:"omitempty,max=128" example:"class-7b-period-3"`
	Seq       int     `json:"seq,omitempty" validate:"omitempty,gte=0" example:"12"`
	Speaker   string  `json:"speaker,omitempty" validate:"omitempty,max=128" example:"kid_3"`
	Text      string  `json:"text" validate:"required,max=20000" example:"lets talk about the game instead"`
	StartTime float64 `json:"start_time" validate:"gte=0" example:"2.5"`
	EndTime   float64 `json:"end_time" validate:"gte=0" example:"4.1"`
}

// TopicInput scores a batch of segments for subject adherence.
// Omitted keyword or indicator lists fall back to the server policy
type TopicInput struct {
	Segments   []Segment `json:"segments" validate:"required,min=1,max=1000,dive"`
	Keywords   []string  `json:"keywords,omitempty" validate:"omitempty,max=128,dive,min=1,max=64"`
	Indicators []string  `json:"indicators,omitempty" validate:"omitempty,max=128,dive,min=1,max=128"`
}

// ScriptInput asks for a writing system breakdown of text
type ScriptInput struct {
	Text string `json:"text" validate:"required,max=20000" example:"hello दुनिया"`
}

// ScriptRun is a maximal stretch of adjacent runes sharing one script tag
type ScriptRun struct {
	Tag   string `json:"tag" example:"Latin"`
	Text  string `json:"text" example:"hello "`
	Start int    `json:"start" example:"0"`
}

// ScriptResponse carries the runs and the dominant script among letters
type ScriptResponse struct {
	Runs     []ScriptRun `json:"runs"`
	Dominant string      `json:"dominant" example:"Latin"`
	Letters  int         `json:"letters" example:"5"`
}

// ModerateInput runs the full pipeline over one segment.
// Persist writes surviving flags; it requires a session id on the segment
type ModerateInput struct {
	Segment Segment `json:"segment" validate:"required"`
	Persist bool    `json:"persist,omitempty" example:"false"`
}
