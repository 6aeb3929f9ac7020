package composer

import "fmt"

// promptTemplate directs the model to act as an art expert grounded in
// the retrieved context. %s slots: context block, then question.
const promptTemplate = `You are an art expert assistant. Use the following context to provide a detailed and engaging answer to the user's question.
Be specific about the artworks mentioned and their historical significance.

Context:
%s

Question:
%s

Provide a well-structured answer that:
1. Directly addresses the user's question
2. References specific artworks when relevant
3. Includes interesting historical or artistic details
4. Maintains a conversational and engaging tone

Answer:`

// BuildPrompt substitutes the context block and question into the fixed
// instructional template.
func BuildPrompt(context, question string) string {
	return fmt.Sprintf(promptTemplate, context, question)
}
