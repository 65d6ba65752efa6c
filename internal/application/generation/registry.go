// Package generation 实现内容生成核心流程：
// 提示词组装、上游调用、积分扣减与流式转发
package generation

import (
	"sort"
	"sync"
)

// FieldSpec 内容类型的详情字段定义
type FieldSpec struct {
	Name        string `json:"name"`
	Label       string `json:"label"`
	Placeholder string `json:"placeholder,omitempty"`
	Multiline   bool   `json:"multiline,omitempty"`
	Required    bool   `json:"required,omitempty"`
}

// ContentType 一种可生成的内容类型
type ContentType struct {
	// Tag 客户端传入的类型标识
	Tag string `json:"tag"`
	// Instruction 拼入系统提示词的类型指令
	Instruction string `json:"instruction"`
	// Fields 该类型建议收集的详情字段
	Fields []FieldSpec `json:"fields"`
}

// defaultInstruction 未注册类型的回退指令
const defaultInstruction = "Generate high-quality written content based on the user's requirements."

// Registry 内容类型注册表
// 未知标签回退到通用指令而不是报错
type Registry struct {
	mu    sync.RWMutex
	types map[string]ContentType
}

// NewRegistry 创建带内置类型的注册表
func NewRegistry() *Registry {
	r := &Registry{types: make(map[string]ContentType)}
	for _, ct := range builtinTypes() {
		r.Register(ct)
	}
	return r
}

// Register 注册或覆盖内容类型
func (r *Registry) Register(ct ContentType) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.types[ct.Tag] = ct
}

// Lookup 查找内容类型
func (r *Registry) Lookup(tag string) (ContentType, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ct, ok := r.types[tag]
	return ct, ok
}

// Instruction 获取标签对应的指令，未注册时返回通用指令
func (r *Registry) Instruction(tag string) string {
	if ct, ok := r.Lookup(tag); ok {
		return ct.Instruction
	}
	return defaultInstruction
}

// List 返回按标签排序的全部内容类型
func (r *Registry) List() []ContentType {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]ContentType, 0, len(r.types))
	for _, ct := range r.types {
		out = append(out, ct)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Tag < out[j].Tag })
	return out
}

// builtinTypes 内置的六种内容类型，指令与字段和前端采集表单保持一致
func builtinTypes() []ContentType {
	return []ContentType{
		{
			Tag:         "blog",
			Instruction: "Create SEO-optimized blog posts with engaging titles, meta descriptions, and well-structured content with headings.",
			Fields: []FieldSpec{
				{Name: "topic", Label: "Main Topic", Placeholder: "e.g., AI in Healthcare", Required: true},
				{Name: "targetAudience", Label: "Target Audience", Placeholder: "e.g., Healthcare professionals"},
				{Name: "keyPoints", Label: "Key Points to Cover", Placeholder: "List main points you want covered", Multiline: true},
			},
		},
		{
			Tag:         "email",
			Instruction: "Write professional and effective emails with clear subject lines and well-formatted body text.",
			Fields: []FieldSpec{
				{Name: "recipientName", Label: "Recipient Name", Placeholder: "John Smith"},
				{Name: "senderName", Label: "Your Name", Placeholder: "Jane Doe", Required: true},
				{Name: "subject", Label: "Subject", Placeholder: "Meeting Request", Required: true},
				{Name: "purpose", Label: "Purpose", Placeholder: "What's the main goal of this email?", Multiline: true, Required: true},
			},
		},
		{
			Tag:         "letter",
			Instruction: "Compose formal business letters with proper formatting, professional language, and clear structure.",
			Fields: []FieldSpec{
				{Name: "senderName", Label: "Your Full Name", Placeholder: "John Doe", Required: true},
				{Name: "senderAddress", Label: "Your Address", Placeholder: "123 Main St, City, State ZIP"},
				{Name: "senderPhone", Label: "Your Phone", Placeholder: "+1 234 567 8900"},
				{Name: "senderEmail", Label: "Your Email", Placeholder: "john@example.com"},
				{Name: "recipientName", Label: "Recipient Name", Placeholder: "Jane Smith", Required: true},
				{Name: "recipientTitle", Label: "Recipient Title", Placeholder: "Hiring Manager"},
				{Name: "companyName", Label: "Company Name", Placeholder: "ABC Corporation"},
				{Name: "recipientAddress", Label: "Recipient Address", Placeholder: "456 Business Ave, City, State ZIP"},
				{Name: "purpose", Label: "Purpose of Letter", Placeholder: "What is this letter about?", Multiline: true, Required: true},
			},
		},
		{
			Tag:         "resume",
			Instruction: "Generate professional resume content with compelling summaries, achievement-focused bullet points, and industry-appropriate language.",
			Fields: []FieldSpec{
				{Name: "fullName", Label: "Full Name", Placeholder: "John Doe", Required: true},
				{Name: "email", Label: "Email", Placeholder: "john@example.com", Required: true},
				{Name: "phone", Label: "Phone", Placeholder: "+1 234 567 8900", Required: true},
				{Name: "location", Label: "Location", Placeholder: "New York, NY", Required: true},
				{Name: "jobTitle", Label: "Target Job Title", Placeholder: "Senior Software Engineer", Required: true},
				{Name: "experience", Label: "Work Experience", Placeholder: "List your work history with company names, roles, and achievements", Multiline: true, Required: true},
				{Name: "education", Label: "Education", Placeholder: "Your degrees, schools, and graduation years", Multiline: true, Required: true},
				{Name: "skills", Label: "Skills", Placeholder: "Technical and soft skills", Multiline: true, Required: true},
			},
		},
		{
			Tag:         "essay",
			Instruction: "Write well-researched academic essays with clear thesis statements, supporting arguments, and proper structure.",
			Fields: []FieldSpec{
				{Name: "topic", Label: "Essay Topic", Placeholder: "The Impact of Social Media on Democracy", Required: true},
				{Name: "thesisStatement", Label: "Thesis Statement", Placeholder: "Your main argument or position", Multiline: true, Required: true},
				{Name: "keyArguments", Label: "Key Arguments", Placeholder: "Main points that support your thesis", Multiline: true},
				{Name: "sources", Label: "Sources/References", Placeholder: "List sources you want cited or referenced", Multiline: true},
			},
		},
		{
			Tag:         "marketing",
			Instruction: "Create persuasive marketing copy that drives action, highlights benefits, and connects with the target audience.",
			Fields: []FieldSpec{
				{Name: "productName", Label: "Product/Service Name", Placeholder: "Premium Coffee Subscription", Required: true},
				{Name: "targetAudience", Label: "Target Audience", Placeholder: "Coffee enthusiasts aged 25-45", Required: true},
				{Name: "keyBenefits", Label: "Key Benefits", Placeholder: "What problems does it solve? What value does it provide?", Multiline: true, Required: true},
				{Name: "callToAction", Label: "Call to Action", Placeholder: "Sign up today", Required: true},
				{Name: "uniqueValue", Label: "Unique Value Proposition", Placeholder: "What makes this different from competitors?", Multiline: true},
			},
		},
	}
}
