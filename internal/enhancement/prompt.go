package enhancement

import "github.com/jonathan/resume-optimax/internal/prompts"

const (
	promptFile = "enhancement.json"
	promptKey  = "enhance-resume"
)

// BuildPrompt embeds the resume and job description verbatim into the
// enhancement template. Inputs are not escaped; whatever the caller supplies,
// including further instructions, reaches the model as-is.
func BuildPrompt(resume, jobDescription string) string {
	template := prompts.MustGet(promptFile, promptKey)
	return prompts.Format(template, map[string]string{
		"Resume":         resume,
		"JobDescription": jobDescription,
	})
}
