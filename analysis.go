package tuteliq

import (
	"context"
	"errors"
	"net/http"
)

var errEmptyText = errors.New("tuteliq: text must not be empty")

// Analyze runs every detector enabled for the account against a single piece
// of text and returns the combined result.
func (c *Client) Analyze(ctx context.Context, req *TextAnalysisRequest) (*AnalysisResult, error) {
	if req == nil || req.Text == "" {
		return nil, errEmptyText
	}
	data, err := c.execute(ctx, http.MethodPost, "/analyze", req, nil)
	if err != nil {
		return nil, err
	}
	var result AnalysisResult
	if err := decodeResponse(data, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// AnalyzeBullying analyzes a piece of text for bullying content.
func (c *Client) AnalyzeBullying(ctx context.Context, req *TextAnalysisRequest) (*BullyingResult, error) {
	if req == nil || req.Text == "" {
		return nil, errEmptyText
	}
	data, err := c.execute(ctx, http.MethodPost, "/analyze/bullying", req, nil)
	if err != nil {
		return nil, err
	}
	var result BullyingResult
	if err := decodeResponse(data, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// BatchAnalysisRequest submits up to 100 texts for bullying analysis in one
// call. Results come back in submission order.
type BatchAnalysisRequest struct {
	Items []TextAnalysisRequest `json:"items"`
}

// BatchAnalysisResponse is the result of a batch analysis.
type BatchAnalysisResponse struct {
	Results []BullyingResult `json:"results"`
}

// AnalyzeBullyingBatch analyzes several texts in a single request.
func (c *Client) AnalyzeBullyingBatch(ctx context.Context, req *BatchAnalysisRequest) (*BatchAnalysisResponse, error) {
	if req == nil || len(req.Items) == 0 {
		return nil, errors.New("tuteliq: batch must contain at least one item")
	}
	data, err := c.execute(ctx, http.MethodPost, "/analyze/bullying/batch", req, nil)
	if err != nil {
		return nil, err
	}
	var result BatchAnalysisResponse
	if err := decodeResponse(data, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// AnalyzeBullyingAudio uploads an audio clip for transcription and bullying
// analysis.
func (c *Client) AnalyzeBullyingAudio(ctx context.Context, req *AudioAnalysisRequest) (*BullyingResult, error) {
	body, boundary, err := buildAudioUpload(req)
	if err != nil {
		return nil, err
	}
	data, err := c.executeMultipart(ctx, "/analyze/bullying/audio", body, boundary)
	if err != nil {
		return nil, err
	}
	var result BullyingResult
	if err := decodeResponse(data, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// AnalyzeGrooming analyzes a piece of text for grooming indicators.
func (c *Client) AnalyzeGrooming(ctx context.Context, req *TextAnalysisRequest) (*GroomingResult, error) {
	if req == nil || req.Text == "" {
		return nil, errEmptyText
	}
	data, err := c.execute(ctx, http.MethodPost, "/analyze/grooming", req, nil)
	if err != nil {
		return nil, err
	}
	var result GroomingResult
	if err := decodeResponse(data, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// AnalyzeConversation runs conversation-aware grooming analysis over a whole
// message history. Conversation context considerably improves escalation
// staging compared to per-message analysis.
func (c *Client) AnalyzeConversation(ctx context.Context, req *ConversationAnalysisRequest) (*GroomingResult, error) {
	if req == nil || len(req.Messages) == 0 {
		return nil, errors.New("tuteliq: conversation must contain at least one message")
	}
	data, err := c.execute(ctx, http.MethodPost, "/analyze/grooming/conversation", req, nil)
	if err != nil {
		return nil, err
	}
	var result GroomingResult
	if err := decodeResponse(data, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// AnalyzeUnsafeContent analyzes a piece of text for unsafe content
// categories (violence, self harm, sexual content, drugs, hate speech).
func (c *Client) AnalyzeUnsafeContent(ctx context.Context, req *TextAnalysisRequest) (*UnsafeContentResult, error) {
	if req == nil || req.Text == "" {
		return nil, errEmptyText
	}
	data, err := c.execute(ctx, http.MethodPost, "/analyze/unsafe-content", req, nil)
	if err != nil {
		return nil, err
	}
	var result UnsafeContentResult
	if err := decodeResponse(data, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// AnalyzeImage uploads an image for unsafe-content analysis.
func (c *Client) AnalyzeImage(ctx context.Context, req *ImageAnalysisRequest) (*UnsafeContentResult, error) {
	if req == nil || len(req.Data) == 0 {
		return nil, errors.New("tuteliq: image data must not be empty")
	}
	fields := make([]formField, 0, 2)
	if req.ChildAge > 0 {
		fields = append(fields, formField{name: "child_age", value: req.ChildAge})
	}
	if len(req.Metadata) > 0 {
		fields = append(fields, formField{name: "metadata", value: req.Metadata})
	}
	boundary := newBoundary()
	body, err := buildMultipartBody(boundary, formFile{field: "file", filename: req.Filename, data: req.Data}, fields)
	if err != nil {
		return nil, err
	}
	data, err := c.executeMultipart(ctx, "/analyze/unsafe-content/image", body, boundary)
	if err != nil {
		return nil, err
	}
	var result UnsafeContentResult
	if err := decodeResponse(data, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// AnalyzeEmotion analyzes a piece of text for emotional state and distress
// signals.
func (c *Client) AnalyzeEmotion(ctx context.Context, req *TextAnalysisRequest) (*EmotionResult, error) {
	if req == nil || req.Text == "" {
		return nil, errEmptyText
	}
	data, err := c.execute(ctx, http.MethodPost, "/analyze/emotion", req, nil)
	if err != nil {
		return nil, err
	}
	var result EmotionResult
	if err := decodeResponse(data, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// AnalyzeEmotionAudio uploads an audio clip for transcription and emotion
// analysis. Vocal tone contributes to the scores in addition to the
// transcript.
func (c *Client) AnalyzeEmotionAudio(ctx context.Context, req *AudioAnalysisRequest) (*EmotionResult, error) {
	body, boundary, err := buildAudioUpload(req)
	if err != nil {
		return nil, err
	}
	data, err := c.executeMultipart(ctx, "/analyze/emotion/audio", body, boundary)
	if err != nil {
		return nil, err
	}
	var result EmotionResult
	if err := decodeResponse(data, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// buildAudioUpload assembles the multipart body shared by the audio analysis
// endpoints: the file part first, then each present optional field.
func buildAudioUpload(req *AudioAnalysisRequest) (body []byte, boundary string, err error) {
	if req == nil || len(req.Data) == 0 {
		return nil, "", errors.New("tuteliq: audio data must not be empty")
	}
	fields := make([]formField, 0, 3)
	if req.ChildAge > 0 {
		fields = append(fields, formField{name: "child_age", value: req.ChildAge})
	}
	if req.Language != "" {
		fields = append(fields, formField{name: "language", value: req.Language})
	}
	if len(req.Metadata) > 0 {
		fields = append(fields, formField{name: "metadata", value: req.Metadata})
	}
	boundary = newBoundary()
	body, err = buildMultipartBody(boundary, formFile{field: "file", filename: req.Filename, data: req.Data}, fields)
	if err != nil {
		return nil, "", err
	}
	return body, boundary, nil
}
