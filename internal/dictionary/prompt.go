package dictionary

import "strings"

// PromptTemplate is the instruction sent to the model. {:word} is replaced
// with the trimmed word.
const PromptTemplate = "please act as a dictionary, including the pronunciation, explanation, two examples of sentences, and one image. And the word is `{:word}`. please output the result in json format, the json keys are `word`, `pronunciation`, `definition`, `examples`, and `image`."

const wordPlaceholder = "{:word}"

// BuildPrompt fills PromptTemplate with word. The word is not validated; an
// empty word yields a prompt with an empty placeholder.
func BuildPrompt(word string) string {
	return strings.Replace(PromptTemplate, wordPlaceholder, strings.TrimSpace(word), 1)
}
