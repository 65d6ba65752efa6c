package generation

import (
	"sort"
	"strings"
)

const (
	basePrompt = "You are an expert AI content writer. "

	samplePrompt = "Generate content with placeholders like [Your Name], [Company Name], etc. for missing information. "

	strictPrompt = "CRITICAL: Use ONLY the specific user-provided details. NEVER use placeholders like [Your Name], [Address], [Company], etc. If information is missing, create realistic example content or skip that section entirely. "
)

// Input 一次生成请求的提示词输入
type Input struct {
	ContentType string
	Prompt      string
	Tone        string
	Style       string
	UserDetails map[string]string
	SampleMode  bool
}

// Composer 提示词组装器
type Composer struct {
	registry *Registry
}

// NewComposer 创建组装器
func NewComposer(registry *Registry) *Composer {
	return &Composer{registry: registry}
}

// Compose 组装系统提示词和用户消息
// 系统提示词 = 基础身份 + 模式指令 + 类型指令 + 语气；
// 用户消息 = 原始 prompt + 详情块（示例模式下省略详情块）
func (c *Composer) Compose(in Input) (system, user string) {
	var sb strings.Builder
	sb.WriteString(basePrompt)
	if in.SampleMode {
		sb.WriteString(samplePrompt)
	} else {
		sb.WriteString(strictPrompt)
	}
	sb.WriteString(c.registry.Instruction(in.ContentType))
	if in.Tone != "" {
		sb.WriteString(" Use a " + in.Tone + " tone.")
	}
	system = sb.String()

	user = in.Prompt
	if !in.SampleMode {
		user += detailsBlock(in.UserDetails)
	}
	return system, user
}

// detailsBlock 把用户详情渲染为键值块，键排序保证输出稳定。
// 空值字段跳过，全部为空时整个块省略。
func detailsBlock(details map[string]string) string {
	keys := make([]string, 0, len(details))
	for k := range details {
		if details[k] != "" {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return ""
	}
	sort.Strings(keys)

	var sb strings.Builder
	sb.WriteString("\n\nUser Details:\n")
	for _, k := range keys {
		sb.WriteString(k)
		sb.WriteString(": ")
		sb.WriteString(details[k])
		sb.WriteString("\n")
	}
	sb.WriteString("\nIMPORTANT: Use these exact details in the content. Do not add placeholders.")
	return sb.String()
}
