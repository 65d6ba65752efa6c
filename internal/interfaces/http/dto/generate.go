package dto

// GenerateRequest 内容生成请求
type GenerateRequest struct {
	ContentType string            `json:"contentType"`
	Prompt      string            `json:"prompt" binding:"required"`
	Tone        string            `json:"tone"`
	Style       string            `json:"style"`
	UserDetails map[string]string `json:"userDetails"`
	SampleMode  bool              `json:"sampleMode"`
}
