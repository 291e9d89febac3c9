package notify

import "strings"

const TemplateCustom = "custom"

type Template struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	Message string `json:"message"`
}

var templates = []Template{
	{Code: "new_job", Name: "새 일자리 알림", Message: "새로운 일자리가 등록되었습니다! 지금 확인해보세요."},
	{Code: "recommend", Name: "추천 알림", Message: "회원님께 맞는 일자리를 추천드립니다."},
	{Code: "hired", Name: "채용 확정", Message: "축하합니다! 채용이 확정되었습니다."},
	{Code: "reminder", Name: "근무 리마인더", Message: "내일 근무가 예정되어 있습니다. 확인해주세요."},
	{Code: TemplateCustom, Name: "직접 작성"},
}

// Templates returns a copy of the available message templates.
func Templates() []Template {
	out := make([]Template, len(templates))
	copy(out, templates)
	return out
}

// Lookup finds a template by code.
func Lookup(code string) (Template, bool) {
	for _, t := range templates {
		if t.Code == code {
			return t, true
		}
	}
	return Template{}, false
}

// Render returns the message for code. The custom template uses the
// caller's text; ok is false for unknown codes and empty messages.
func Render(code, custom string) (message string, ok bool) {
	t, found := Lookup(code)
	if !found {
		return "", false
	}
	if code == TemplateCustom {
		message = strings.TrimSpace(custom)
		return message, message != ""
	}
	return t.Message, true
}
