package directory

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dosewise/medsafe/internal/interaction"

	"github.com/rs/zerolog"
)

// InteractionSource finds pairwise interactions among the supplied names.
// The strategy is swappable so a structured upstream can replace free-text
// scanning without touching anything above it.
type InteractionSource interface {
	Interactions(ctx context.Context, names []string) ([]interaction.Interaction, error)
}

// LabelScanSource detects interactions by scanning each drug's label
// interaction text for mentions of every other supplied name. Substring
// matching over prose is inherently fuzzy; it both over- and under-matches,
// which is why this lives behind InteractionSource.
type LabelScanSource struct {
	labels LabelSource
	log    zerolog.Logger
}

func NewLabelScanSource(labels LabelSource, log zerolog.Logger) *LabelScanSource {
	return &LabelScanSource{labels: labels, log: log}
}

func (s *LabelScanSource) Interactions(ctx context.Context, names []string) ([]interaction.Interaction, error) {
	var (
		found    []interaction.Interaction
		fetched  int
		failures int
	)

	for _, name := range names {
		label, err := s.labels.Label(ctx, name)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				fetched++
				continue
			}
			failures++
			s.log.Warn().Err(err).Str("drug", name).Msg("label fetch failed during interaction scan")
			continue
		}
		fetched++

		text := label.DrugInteractions
		if text == "" {
			continue
		}
		lower := strings.ToLower(text)

		for _, other := range names {
			if strings.EqualFold(other, name) {
				continue
			}
			if !strings.Contains(lower, strings.ToLower(other)) {
				continue
			}
			desc := mentionSentence(text, other)
			found = append(found, interaction.Interaction{
				DrugName:        name,
				InteractingDrug: other,
				Severity:        interaction.ClassifySeverity(desc),
				Description:     desc,
				Source:          "label",
			})
		}
	}

	// Only when every single lookup failed do we report the check itself as
	// failed; partial coverage still yields whatever was found.
	if fetched == 0 && failures > 0 {
		return nil, fmt.Errorf("all %d label lookups failed", failures)
	}

	return found, nil
}

// mentionSentence extracts the sentence containing the first mention of the
// drug, so the description (and its severity) reflect the relevant passage
// rather than the whole interactions section. A boundary is a period followed
// by any whitespace, so newline-terminated sentences end the excerpt too.
func mentionSentence(text, drug string) string {
	lower := strings.ToLower(text)
	idx := strings.Index(lower, strings.ToLower(drug))
	if idx < 0 {
		return text
	}

	start := 0
	for i := idx - 1; i >= 1; i-- {
		if isSpaceByte(text[i]) && text[i-1] == '.' {
			start = i + 1
			break
		}
	}

	end := len(text)
	for i := idx; i < len(text)-1; i++ {
		if text[i] == '.' && isSpaceByte(text[i+1]) {
			end = i + 1
			break
		}
	}

	return strings.TrimSpace(text[start:end])
}

func isSpaceByte(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
