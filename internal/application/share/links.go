// Package share 生成社交平台分享链接
package share

import (
	"net/url"
)

// Links 各平台的分享地址
type Links struct {
	Twitter  string `json:"twitter"`
	Facebook string `json:"facebook"`
	LinkedIn string `json:"linkedin"`
	WhatsApp string `json:"whatsapp"`
}

// snippetLimit 分享文案中内容摘要的最大长度
const snippetLimit = 100

// BuildLinks 为一篇内容构建分享链接
// pageURL 指向前端的内容页面，文案为标题加内容摘要
func BuildLinks(title, content, pageURL string) Links {
	text := title + "\n\n" + snippet(content)

	return Links{
		Twitter: "https://twitter.com/intent/tweet?text=" + url.QueryEscape(text) +
			"&url=" + url.QueryEscape(pageURL),
		Facebook: "https://www.facebook.com/sharer/sharer.php?u=" + url.QueryEscape(pageURL) +
			"&quote=" + url.QueryEscape(text),
		LinkedIn: "https://www.linkedin.com/sharing/share-offsite/?url=" + url.QueryEscape(pageURL),
		WhatsApp: "https://wa.me/?text=" + url.QueryEscape(text+"\n"+pageURL),
	}
}

func snippet(content string) string {
	runes := []rune(content)
	if len(runes) <= snippetLimit {
		return content
	}
	return string(runes[:snippetLimit]) + "..."
}
