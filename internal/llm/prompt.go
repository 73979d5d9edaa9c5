package llm

import (
	"fmt"
	"strings"

	"domainbot/internal/rag"
)

const systemPromptTemplate = `شما یک ربات چت با محدودیت دامنه هستید. شما باید STRICTLY فقط از اطلاعات موجود در پایگاه دانش و منابع وب‌سایت استفاده کنید.

قوانین STRICT (بدون استثنا):
1. فقط از اطلاعات ارائه شده در متن زیر استفاده کنید
2. اگر پاسخ به سوال در متن زیر نیست، باید بگویید: "در منابع موجود نیست"
3. از دانش عمومی استفاده نکنید - حتی اگر می‌دانید پاسخ چیست
4. فرضیات نسازید - فقط از متن ارائه شده استفاده کنید
5. توضیحات اضافی یا پیش‌فرض‌ها اضافه نکنید
6. اگر متن شامل اطلاعات کافی برای پاسخ نیست، صراحتاً بگویید "در منابع موجود نیست"
7. باید منابع را در پاسخ خود ذکر کنید (مثلاً "طبق پایگاه دانش" یا "بر اساس صفحه وب‌سایت [URL]")

متن:
%s

منابع استفاده شده:
%s

یادآوری CRITICAL:
- اگر نمی‌توانید پاسخ را مستقیماً از متن بالا استخراج کنید، باید بگویید "در منابع موجود نیست"
- همیشه منابع را در پاسخ خود ذکر کنید
- هیچ استثنایی وجود ندارد - فقط از منابع ارائه شده استفاده کنید.`

const noSourcesLine = "هیچ منبعی یافت نشد"

// unwantedPhrases are stripped from answers; the bot must never send users
// to the administrator. Longer phrases come first so that their shorter
// prefixes do not leave fragments behind.
var unwantedPhrases = []string{
	"از مدیر بخواهید این سوال را اضافه کند",
	"در پنل مدیریت اضافه کنید",
	"لطفا از مدیر بخواهید",
	"از مدیر بخواهید",
	"از پنل مدیریت",
}

// BuildSystemPrompt embeds the grounding context and the numbered source
// list in the system prompt.
func BuildSystemPrompt(contextText string, sources []rag.SourceRef) string {
	return fmt.Sprintf(systemPromptTemplate, contextText, sourcesList(sources))
}

func sourcesList(sources []rag.SourceRef) string {
	lines := make([]string, 0, len(sources))
	for i, s := range sources {
		switch s.Type {
		case rag.SourceTypeKB:
			lines = append(lines, fmt.Sprintf("%d. پایگاه دانش: %s (ID: %d)", i+1, s.Title, s.ID))
		case rag.SourceTypeWebsite:
			lines = append(lines, fmt.Sprintf("%d. وب‌سایت: %s (URL: %s)", i+1, s.Title, s.URL))
		}
	}
	if len(lines) == 0 {
		return noSourcesLine
	}
	return strings.Join(lines, "\n")
}

// CleanAnswer removes unwanted phrases and collapses whitespace.
func CleanAnswer(answer string) string {
	for _, phrase := range unwantedPhrases {
		answer = strings.ReplaceAll(answer, phrase+".", "")
		answer = strings.ReplaceAll(answer, phrase+"،", "")
		answer = strings.ReplaceAll(answer, phrase, "")
	}
	return strings.Join(strings.Fields(answer), " ")
}
