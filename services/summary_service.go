package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"
	"time"

	"drivehub/models"
	"drivehub/repository"
	"drivehub/storage"

	"github.com/ledongthuc/pdf"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	// Cached summaries stay valid for a week before regeneration.
	summaryTTL = 7 * 24 * time.Hour

	// The model has a token limit; feed it at most this many characters.
	summaryInputLimit = 5000

	maxKeyPoints = 5
	maxTopics    = 5
)

// Summarizer condenses extracted document text. Implementations call an
// external model endpoint.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// SummaryService produces and caches AI summaries for PDF files.
type SummaryService struct {
	nodes      repository.NodeRepository
	blobs      storage.BlobStore
	access     *AccessService
	summarizer Summarizer
}

func NewSummaryService(nodes repository.NodeRepository, blobs storage.BlobStore, access *AccessService, summarizer Summarizer) *SummaryService {
	return &SummaryService{
		nodes:      nodes,
		blobs:      blobs,
		access:     access,
		summarizer: summarizer,
	}
}

// GetSummary returns the node's summary, regenerating it when the cache is
// older than a week. Only PDF files can be summarized.
func (s *SummaryService) GetSummary(ctx context.Context, requester, nodeID primitive.ObjectID) (*models.Summary, error) {
	node, err := s.nodes.Get(ctx, nodeID)
	if err != nil {
		return nil, err
	}
	if err := s.access.Authorize(requester, node, VerbView); err != nil {
		return nil, err
	}
	if !node.IsPDF() {
		return nil, fmt.Errorf("%w: summaries are only available for PDF files", ErrInvalidArgument)
	}

	if node.Summary != nil && time.Since(node.Summary.GeneratedAt) < summaryTTL {
		return node.Summary, nil
	}

	return s.Generate(ctx, nodeID)
}

// Generate builds a fresh summary from the stored PDF and caches it on the
// node.
func (s *SummaryService) Generate(ctx context.Context, nodeID primitive.ObjectID) (*models.Summary, error) {
	node, err := s.nodes.Get(ctx, nodeID)
	if err != nil {
		return nil, err
	}
	if !node.IsPDF() {
		return nil, fmt.Errorf("%w: not a PDF file", ErrInvalidArgument)
	}

	data, err := s.blobs.Get(node.StorageKey)
	if err != nil {
		return nil, upstream("blob download", err)
	}

	text, err := extractPDFText(data)
	if err != nil {
		return nil, upstream("pdf extraction", err)
	}

	input := text
	if len(input) > summaryInputLimit {
		input = input[:summaryInputLimit]
	}

	summaryText, err := s.summarizer.Summarize(ctx, input)
	if err != nil {
		return nil, upstream("summarization", err)
	}

	summary := &models.Summary{
		Text:        summaryText,
		MainPoints:  extractKeyPoints(summaryText),
		Topics:      extractTopics(input),
		GeneratedAt: time.Now(),
	}
	if err := s.nodes.SetSummary(ctx, nodeID, summary); err != nil {
		return nil, upstream("summary cache", err)
	}
	return summary, nil
}

func extractPDFText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %v", err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to extract text: %v", err)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", fmt.Errorf("failed to read text: %v", err)
	}
	return buf.String(), nil
}

var sentenceEnd = regexp.MustCompile(`[.!?]\s+`)

// extractKeyPoints picks the first few substantial sentences out of the
// generated summary.
func extractKeyPoints(summary string) []string {
	var points []string
	rest := summary
	for _, loc := range sentenceEnd.FindAllStringIndex(summary, -1) {
		sentence := strings.TrimSpace(summary[len(summary)-len(rest) : loc[1]])
		rest = summary[loc[1]:]
		if len(sentence) > 20 {
			points = append(points, sentence)
		}
		if len(points) == maxKeyPoints {
			return points
		}
	}
	if tail := strings.TrimSpace(rest); len(tail) > 20 && len(points) < maxKeyPoints {
		points = append(points, tail)
	}
	return points
}

var topicStopWords = map[string]bool{
	"the": true, "and": true, "in": true, "on": true, "at": true,
	"to": true, "for": true, "of": true, "with": true, "is": true,
	"are": true, "be": true, "was": true, "were": true, "this": true,
	"that": true, "these": true, "those": true, "there": true,
	"here": true, "from": true, "have": true, "has": true, "had": true,
	"not": true, "by": true, "but": true, "or": true, "as": true,
	"what": true, "when": true, "where": true, "who": true, "how": true,
	"why": true, "which": true, "their": true, "they": true,
	"them": true, "then": true, "than": true, "can": true,
	"could": true, "would": true, "should": true, "will": true,
	"may": true, "might": true, "must": true, "about": true,
}

var nonWord = regexp.MustCompile(`[^\w\s]`)

// extractTopics runs a simple keyword-frequency pass over the source text.
func extractTopics(text string) []string {
	cleaned := nonWord.ReplaceAllString(strings.ToLower(text), " ")

	frequencies := make(map[string]int)
	for _, word := range strings.Fields(cleaned) {
		if len(word) <= 3 || topicStopWords[word] {
			continue
		}
		frequencies[word]++
	}

	words := make([]string, 0, len(frequencies))
	for word := range frequencies {
		words = append(words, word)
	}
	sort.Slice(words, func(i, j int) bool {
		if frequencies[words[i]] != frequencies[words[j]] {
			return frequencies[words[i]] > frequencies[words[j]]
		}
		return words[i] < words[j]
	})

	if len(words) > maxTopics {
		words = words[:maxTopics]
	}
	return words
}
