package summary

import "strings"

// summaryPrompt is sent to every provider. The wording is deliberately
// identical across backends so summaries stay comparable when the provider
// changes.
const summaryPrompt = `You are an expert summarizer with 20 years of experience, specializing in video transcripts. Summarize the key points of the given transcript concisely, focusing on the main ideas and important details. Identify and highlight the most important 20% of the content that provides 80% of the value. Present the summary in bullet points.

Transcript:
{transcript}

Summary:`

const transcriptPlaceholder = "{transcript}"

func renderPrompt(transcript string) string {
	return strings.Replace(summaryPrompt, transcriptPlaceholder, transcript, 1)
}
