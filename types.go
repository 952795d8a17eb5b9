package tuteliq

import "time"

// RiskLevel grades how severe a detection is.
type RiskLevel string

const (
	// RiskLevelNone means nothing concerning was found.
	RiskLevelNone RiskLevel = "none"
	// RiskLevelLow means mild indicators that rarely require action.
	RiskLevelLow RiskLevel = "low"
	// RiskLevelMedium means clear indicators worth reviewing.
	RiskLevelMedium RiskLevel = "medium"
	// RiskLevelHigh means strong indicators that should be reviewed promptly.
	RiskLevelHigh RiskLevel = "high"
	// RiskLevelCritical means the content warrants immediate intervention.
	RiskLevelCritical RiskLevel = "critical"
)

// String returns the string representation of the risk level.
func (r RiskLevel) String() string {
	return string(r)
}

// Emotion is one of the emotions the emotion detector scores.
type Emotion string

const (
	EmotionJoy      Emotion = "joy"
	EmotionSadness  Emotion = "sadness"
	EmotionAnger    Emotion = "anger"
	EmotionFear     Emotion = "fear"
	EmotionSurprise Emotion = "surprise"
	EmotionDisgust  Emotion = "disgust"
	EmotionNeutral  Emotion = "neutral"
)

// String returns the string representation of the emotion.
func (e Emotion) String() string {
	return string(e)
}

// TextAnalysisRequest is the common input for text analysis endpoints.
type TextAnalysisRequest struct {
	// Text is the content to analyze. Required.
	Text string `json:"text"`
	// ChildAge tunes detection thresholds for the child's age. Optional.
	ChildAge int `json:"child_age,omitempty"`
	// Language is a BCP 47 tag, e.g. "en" or "pt-BR". Detected when empty.
	Language string `json:"language,omitempty"`
	// SessionID groups related messages for conversation-aware detectors.
	SessionID string `json:"session_id,omitempty"`
	// Metadata is echoed back in results and webhook events.
	Metadata map[string]Value `json:"metadata,omitempty"`
}

// AudioAnalysisRequest is the input for audio analysis endpoints. The file is
// uploaded as multipart/form-data.
type AudioAnalysisRequest struct {
	// Filename names the uploaded audio; its extension selects the MIME type.
	Filename string
	// Data is the raw audio bytes.
	Data []byte
	// ChildAge tunes detection thresholds for the child's age. Optional.
	ChildAge int
	// Language is a BCP 47 tag. Detected when empty.
	Language string
	// Metadata is echoed back in results and webhook events.
	Metadata map[string]Value
}

// ImageAnalysisRequest is the input for image analysis. The file is uploaded
// as multipart/form-data.
type ImageAnalysisRequest struct {
	// Filename names the uploaded image; its extension selects the MIME type.
	Filename string
	// Data is the raw image bytes.
	Data []byte
	// ChildAge tunes detection thresholds for the child's age. Optional.
	ChildAge int
	// Metadata is echoed back in results and webhook events.
	Metadata map[string]Value
}

// BullyingResult is the outcome of a bullying analysis.
type BullyingResult struct {
	// Detected reports whether bullying content was found.
	Detected bool `json:"detected"`
	// RiskLevel grades the severity of the finding.
	RiskLevel RiskLevel `json:"risk_level"`
	// Confidence is the model confidence, 0.0 to 1.0.
	Confidence float64 `json:"confidence"`
	// Categories lists the bullying categories that matched, e.g.
	// "exclusion", "threats", "name_calling".
	Categories []string `json:"categories,omitempty"`
	// TargetedTerms are the spans that triggered the detection.
	TargetedTerms []string `json:"targeted_terms,omitempty"`
	// Explanation is a short human-readable rationale.
	Explanation string `json:"explanation,omitempty"`
	// Transcript is filled for audio analysis with the recognized speech.
	Transcript string `json:"transcript,omitempty"`
	// Metadata echoes the request metadata.
	Metadata map[string]Value `json:"metadata,omitempty"`
	// AnalyzedAt is when the API processed the request.
	AnalyzedAt time.Time `json:"analyzed_at"`
}

// GroomingIndicator is one grooming pattern found in a conversation.
type GroomingIndicator struct {
	// Type names the pattern, e.g. "isolation", "gift_offering",
	// "secrecy_request", "personal_info_probing".
	Type string `json:"type"`
	// Score is the per-indicator confidence, 0.0 to 1.0.
	Score float64 `json:"score"`
	// Excerpt is the message span the indicator was found in.
	Excerpt string `json:"excerpt,omitempty"`
}

// GroomingResult is the outcome of a grooming analysis.
type GroomingResult struct {
	// Detected reports whether grooming behavior was found.
	Detected bool `json:"detected"`
	// RiskLevel grades the severity of the finding.
	RiskLevel RiskLevel `json:"risk_level"`
	// Confidence is the model confidence, 0.0 to 1.0.
	Confidence float64 `json:"confidence"`
	// Indicators lists the individual grooming patterns found.
	Indicators []GroomingIndicator `json:"indicators,omitempty"`
	// EscalationStage places the conversation on the grooming escalation
	// scale, 0 (none) to 5 (meeting arrangement).
	EscalationStage int `json:"escalation_stage"`
	// Metadata echoes the request metadata.
	Metadata map[string]Value `json:"metadata,omitempty"`
	// AnalyzedAt is when the API processed the request.
	AnalyzedAt time.Time `json:"analyzed_at"`
}

// ConversationMessage is one message of a conversation submitted for
// grooming analysis.
type ConversationMessage struct {
	// Sender identifies the author within the conversation.
	Sender string `json:"sender"`
	// Text is the message body.
	Text string `json:"text"`
	// SentAt is when the message was sent. Optional.
	SentAt time.Time `json:"sent_at,omitzero"`
}

// ConversationAnalysisRequest submits a whole conversation for
// conversation-aware grooming analysis.
type ConversationAnalysisRequest struct {
	// Messages are the conversation messages in chronological order.
	Messages []ConversationMessage `json:"messages"`
	// ChildParticipant names the Sender value that is the child.
	ChildParticipant string `json:"child_participant,omitempty"`
	// ChildAge tunes detection thresholds for the child's age. Optional.
	ChildAge int `json:"child_age,omitempty"`
	// Language is a BCP 47 tag. Detected when empty.
	Language string `json:"language,omitempty"`
	// Metadata is echoed back in results and webhook events.
	Metadata map[string]Value `json:"metadata,omitempty"`
}

// UnsafeCategoryScore is one unsafe-content category with its score.
type UnsafeCategoryScore struct {
	// Category names the unsafe category, e.g. "violence", "self_harm",
	// "sexual", "drugs", "hate_speech".
	Category string `json:"category"`
	// Score is the per-category confidence, 0.0 to 1.0.
	Score float64 `json:"score"`
	// Flagged reports whether the score crossed the category threshold.
	Flagged bool `json:"flagged"`
}

// UnsafeContentResult is the outcome of an unsafe-content analysis.
type UnsafeContentResult struct {
	// Flagged reports whether any category crossed its threshold.
	Flagged bool `json:"flagged"`
	// RiskLevel grades the overall severity.
	RiskLevel RiskLevel `json:"risk_level"`
	// Categories holds every scored category.
	Categories []UnsafeCategoryScore `json:"categories"`
	// Metadata echoes the request metadata.
	Metadata map[string]Value `json:"metadata,omitempty"`
	// AnalyzedAt is when the API processed the request.
	AnalyzedAt time.Time `json:"analyzed_at"`
}

// EmotionResult is the outcome of an emotion analysis.
type EmotionResult struct {
	// Primary is the strongest emotion.
	Primary Emotion `json:"primary"`
	// Scores holds the score of every detected emotion, 0.0 to 1.0.
	Scores map[Emotion]float64 `json:"scores"`
	// Sentiment is the overall valence, -1.0 (negative) to 1.0 (positive).
	Sentiment float64 `json:"sentiment"`
	// DistressSignals lists phrases indicating acute distress, if any.
	DistressSignals []string `json:"distress_signals,omitempty"`
	// Transcript is filled for audio analysis with the recognized speech.
	Transcript string `json:"transcript,omitempty"`
	// Metadata echoes the request metadata.
	Metadata map[string]Value `json:"metadata,omitempty"`
	// AnalyzedAt is when the API processed the request.
	AnalyzedAt time.Time `json:"analyzed_at"`
}

// AnalysisResult bundles the outcome of every detector for the combined
// Analyze endpoint. Detectors not enabled for the current plan are nil.
type AnalysisResult struct {
	Bullying *BullyingResult      `json:"bullying,omitempty"`
	Grooming *GroomingResult      `json:"grooming,omitempty"`
	Unsafe   *UnsafeContentResult `json:"unsafe_content,omitempty"`
	Emotion  *EmotionResult       `json:"emotion,omitempty"`
	// AnalyzedAt is when the API processed the request.
	AnalyzedAt time.Time `json:"analyzed_at"`
}
