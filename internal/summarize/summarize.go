// Package summarize produces short summaries and entity lists for raw
// document text. The meta-study pipeline only ever sees the resulting
// strings, so the implementation behind the interface is swappable for a
// model-backed collaborator without touching the clustering code.
package summarize

import (
	"strings"
	"unicode"

	"github.com/veldtlabs/docstudy/internal/extract"
	"github.com/veldtlabs/docstudy/internal/metastudy"
)

// Summarizer turns raw document text into a short summary string and a list
// of entity strings.
type Summarizer interface {
	Summarize(text string) (summary string, entities []string)
}

const (
	maxSummarySentences = 2
	maxSummaryLength    = 280
	maxEntities         = 10
)

// Heuristic is the default Summarizer: lead sentences for the summary,
// capitalized phrases for the entities. It is deliberately cheap; quality
// beyond "good enough to cluster on" belongs to an external model.
type Heuristic struct{}

// NewHeuristic returns the default lead-sentence summarizer.
func NewHeuristic() *Heuristic {
	return &Heuristic{}
}

// Summarize returns the first sentences of the normalized text, capped in
// length, plus the distinct capitalized phrases in order of first appearance.
func (h *Heuristic) Summarize(text string) (string, []string) {
	clean := extract.Normalize(text)
	return leadSentences(clean), capitalizedPhrases(clean)
}

// Record builds one corpus record from a file's raw text using the given
// summarizer, with entities comma-joined the way the meta-study matrix
// stores them. Cluster starts unassigned.
func Record(s Summarizer, filename, text string) metastudy.CorpusRecord {
	summary, entities := s.Summarize(text)
	return metastudy.CorpusRecord{
		Filename: filename,
		Text:     text,
		Summary:  summary,
		Entities: strings.Join(entities, ", "),
		Cluster:  -1,
	}
}

func leadSentences(clean string) string {
	if clean == "" {
		return ""
	}

	var b strings.Builder
	sentences := 0
	for i, r := range clean {
		b.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			sentences++
			if sentences == maxSummarySentences {
				break
			}
		}
		if i+1 >= maxSummaryLength {
			break
		}
	}

	return strings.TrimSpace(b.String())
}

// capitalizedPhrases collects runs of consecutive capitalized words, skipping
// a run that only covers a sentence-initial single word.
func capitalizedPhrases(clean string) []string {
	words := strings.Fields(clean)
	seen := map[string]bool{}
	var entities []string
	var run []string
	prevEndedSentence := true

	flush := func(sentenceStart bool) {
		defer func() { run = run[:0] }()
		if len(run) == 0 {
			return
		}
		// A lone capitalized word at the start of a sentence is most likely
		// just capitalization, not a name.
		if len(run) == 1 && sentenceStart {
			return
		}
		phrase := strings.Join(run, " ")
		if !seen[phrase] && len(entities) < maxEntities {
			seen[phrase] = true
			entities = append(entities, phrase)
		}
	}

	runStartedSentence := false
	for _, w := range words {
		// A sentence boundary always terminates the current run, even when
		// the next word is capitalized too.
		if prevEndedSentence && len(run) > 0 {
			flush(runStartedSentence)
		}
		trimmed := strings.TrimFunc(w, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if trimmed != "" && unicode.IsUpper([]rune(trimmed)[0]) {
			if len(run) == 0 {
				runStartedSentence = prevEndedSentence
			}
			run = append(run, trimmed)
		} else {
			flush(runStartedSentence)
		}
		prevEndedSentence = strings.ContainsAny(w, ".!?")
	}
	flush(runStartedSentence)

	return entities
}
