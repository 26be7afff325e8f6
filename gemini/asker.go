package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/mzawadzki/ordpipe"
	"google.golang.org/genai"
)

const model = "gemini-2.5-flash"

// DefaultTopK is the number of passages retrieved per question.
const DefaultTopK = 5

// FallbackAnswer is returned when retrieval finds nothing relevant.
const FallbackAnswer = "I could not find the answer in the provided documents."

// Ensure Asker implements ordpipe.Asker at compile time.
var _ ordpipe.Asker = (*Asker)(nil)

// Asker implements ordpipe.Asker using Google Gemini. It embeds the
// question, retrieves the most similar stored passages, and generates an
// answer grounded in them.
type Asker struct {
	client   *genai.Client
	embedder ordpipe.Embedder
	store    ordpipe.VectorStore

	// TopK is the number of passages retrieved per question.
	// Defaults to DefaultTopK.
	TopK int
}

// NewAsker creates a new Asker.
func NewAsker(client *genai.Client, embedder ordpipe.Embedder, store ordpipe.VectorStore) *Asker {
	return &Asker{client: client, embedder: embedder, store: store, TopK: DefaultTopK}
}

// Ask answers a natural language question about the stored ordinances.
func (a *Asker) Ask(ctx context.Context, question string) (string, error) {
	if question == "" {
		return "", ordpipe.Errorf(ordpipe.EINVALID, "question required")
	}

	vector, err := a.embedder.Embed(ctx, question)
	if err != nil {
		return "", err
	}

	k := a.TopK
	if k <= 0 {
		k = DefaultTopK
	}
	matches, err := a.store.SimilarityQuery(ctx, vector, k)
	if err != nil {
		return "", err
	}
	if len(matches) == 0 {
		return FallbackAnswer, nil
	}

	prompt := BuildUserPrompt(matches, question)
	config := BuildConfig()

	result, err := a.client.Models.GenerateContent(ctx, model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		config,
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", ordpipe.Errorf(ordpipe.EINTERNAL, "gemini returned nil result")
	}

	answer := strings.TrimSpace(result.Text())
	if answer == "" {
		return FallbackAnswer, nil
	}
	return answer, nil
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.2)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You are a helpful assistant answering questions about municipal ordinances. Answer based only on the ordinance passages provided. If the answer is not in the passages, say: " + FallbackAnswer,
			}},
		},
		Temperature: &temp,
	}
}

// BuildUserPrompt builds the user prompt containing retrieved passages and
// the question.
func BuildUserPrompt(matches []ordpipe.Match, question string) string {
	var sb strings.Builder
	sb.WriteString("<passages>\n")
	for i, m := range matches {
		sb.WriteString("<passage>\n")
		fmt.Fprintf(&sb, "<index>%d</index>\n", i+1)
		fmt.Fprintf(&sb, "<source>%s</source>\n", m.Passage.Metadata.Source)
		fmt.Fprintf(&sb, "<content>%s</content>\n", m.Passage.Text)
		sb.WriteString("</passage>\n")
	}
	sb.WriteString("</passages>\n\n")
	fmt.Fprintf(&sb, "Question: %s", question)
	return sb.String()
}
