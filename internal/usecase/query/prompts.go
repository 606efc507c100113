package query

import (
	"fmt"
	"strings"

	"github.com/edurag/tutor-backend/internal/entity"
)

// basePrompt frames every retrieval-backed mode: the question plus the
// retrieved chunks joined as "Relevant Information".
func basePrompt(question, context string) string {
	return fmt.Sprintf(`You are a helpful and knowledgeable teacher. Answer the following question in a clear, direct, and engaging way.

Question: %s

Relevant Information:
%s

Instructions:`, question, context)
}

// buildPrompt selects the instruction template for a response mode. Unknown
// modes fall through to the default teaching template.
func buildPrompt(mode entity.ResponseMode, question, context string) string {
	base := basePrompt(question, context)

	switch mode {
	case entity.ModeExplain:
		return base + "\nProvide a clear and engaging explanation in approximately 300 words. Break down complex ideas into simpler parts and use clear examples to illustrate your points. Write in a conversational, teacher-like tone without using phrases like 'according to the textbook' or 'as mentioned in the material'."
	case entity.ModeExample:
		return base + "\nProvide 2-3 practical examples that demonstrate the concept. Make sure the examples are clear, relevant, and help in understanding the concept better. Write in a natural, teaching style."
	case entity.ModeOneMark:
		return base + "\nProvide a concise answer in exactly 40 words. Focus on the most important points only. Write in a clear, direct style."
	case entity.ModeTwoMark:
		return base + "\nProvide a detailed answer in exactly 100 words. Include key points and brief explanations. Write in a natural, teaching style."
	case entity.ModeFourMark:
		return base + "\nProvide a comprehensive answer in exactly 200 words. Include detailed explanations and relevant examples. Write in a clear, engaging style."
	case entity.ModeReasoning:
		return base + "\nExplain the reasoning behind the concept. Break down the logical steps and explain why things work the way they do. Write in a natural, teaching style."
	default:
		return base + "\nProvide a clear and educational answer that helps the student understand the concept. Write in a natural, teaching style without referencing the source material directly."
	}
}

// youtubePrompt asks for a JSON object pairing an explanation with video
// suggestions. Youtube mode never uses retrieved context.
func youtubePrompt(question string) string {
	return basePrompt(question, "") + `
You must respond with a JSON object containing two fields:
1. "description": A 200-word explanation of the concept
2. "videos": An array of 2-3 video objects, each with "title" and "url" fields

Your response must be a valid JSON object that looks exactly like this:
{
    "description": "Your 200-word explanation here",
    "videos": [
        {
            "title": "Title of first video",
            "url": "https://www.youtube.com/watch?v=VIDEO_ID1"
        },
        {
            "title": "Title of second video",
            "url": "https://www.youtube.com/watch?v=VIDEO_ID2"
        }
    ]
}

Important:
- The response must be a single valid JSON object
- Include exactly 2-3 video links
- Each video must have both a title and a valid YouTube URL
- The description should be exactly 200 words
- Do not include any text outside the JSON object`
}

// mathPrompt asks for a concise numbered solution. Math mode never uses
// retrieved context.
func mathPrompt(question string) string {
	return fmt.Sprintf(`Solve the following math problem step by step. Be concise and clear.
Focus only on the essential steps and calculations.
Format the response as a numbered list of steps.

Problem: %s

Provide the solution in this format:
1. Step 1
2. Step 2
...
Answer: [final answer]`, question)
}

// diagramDescriptionPrompt asks for a drawable description tailored to the
// tenant's audience.
func diagramDescriptionPrompt(question, audience string) string {
	return fmt.Sprintf(`You are a helpful educational assistant. Create a detailed visual description for a diagram that would help explain this concept to a %s student.

Question: %s

The description should:
1. Focus on visual elements that can be drawn
2. Specify the layout and arrangement of components
3. List all labels and text that should appear
4. Describe any arrows, lines, or connections needed
5. Mention colors or visual styles that would help understanding
6. Keep it simple and clear for %s students
7. Include a suggested title for the diagram
`, audience, question, audience)
}

// diagramImagePrompt turns the description into the image-generation prompt.
func diagramImagePrompt(description, question, audience string) string {
	return fmt.Sprintf(`Create a labeled educational diagram for %s students about %s.
The diagram should be clear, well-labeled, and include all necessary components from this description: %s.
Style: Educational diagram with white background, clear labels, simple and clean design, age-appropriate for %s students.
Make it professional looking with a title and all necessary labels.`, audience, question, description, audience)
}

// topDoubtsPrompt asks for the five most commonly misunderstood topics.
func topDoubtsPrompt() string {
	return `Based on common student questions and difficulties, provide the top 5 topics or concepts where students typically have doubts.
Format each suggestion as a concise question or topic.
Focus on fundamental concepts that are often misunderstood.

Provide the response in this format:
1. [First topic/question]
2. [Second topic/question]
3. [Third topic/question]
4. [Fourth topic/question]
5. [Fifth topic/question]`
}

// extractJSONObject returns the span from the first '{' to the last '}' of
// the text, or "" when no such span exists. Generators often wrap JSON in
// prose or code fences.
func extractJSONObject(text string) string {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return ""
	}
	return text[start : end+1]
}

// extractJSONArray is the array counterpart of extractJSONObject.
func extractJSONArray(text string) string {
	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start == -1 || end == -1 || end < start {
		return ""
	}
	return text[start : end+1]
}
