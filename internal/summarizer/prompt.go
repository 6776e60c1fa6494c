package summarizer

import "fmt"

const promptTemplate = `Here are the meeting minutes:

%s

Summarize the meeting, focusing on:

* The main discussion points.
* All decisions made.
* Action items, including who is responsible and deadlines.
* Any required follow-up.

Please present the action items in a clear, bulleted list with responsible parties and deadlines clearly noted.`

// BuildPrompt embeds the meeting text verbatim in the instruction template.
func BuildPrompt(meetingText string) string {
	return fmt.Sprintf(promptTemplate, meetingText)
}
