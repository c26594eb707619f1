package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dosewise/medsafe/internal/interaction"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

const DefaultRxNavBaseURL = "https://rxnav.nlm.nih.gov"

// RxNavSource resolves drug names to RxCUIs and queries the structured
// interaction-pair endpoint. It is the structured alternative to
// LabelScanSource.
type RxNavSource struct {
	client  *resty.Client
	limiter RateLimiter
	log     zerolog.Logger
}

func NewRxNavSource(baseURL string, timeout time.Duration, limiter RateLimiter, log zerolog.Logger) *RxNavSource {
	if baseURL == "" {
		baseURL = DefaultRxNavBaseURL
	}
	c := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		SetTimeout(timeout)

	return &RxNavSource{client: c, limiter: limiter, log: log}
}

func (s *RxNavSource) Interactions(ctx context.Context, names []string) ([]interaction.Interaction, error) {
	cuiToName := make(map[string]string, len(names))
	cuis := make([]string, 0, len(names))

	for _, name := range names {
		cui, err := s.resolveRxCUI(ctx, name)
		if err != nil {
			return nil, err
		}
		if cui == "" {
			s.log.Debug().Str("drug", name).Msg("no rxcui match")
			continue
		}
		cuiToName[cui] = name
		cuis = append(cuis, cui)
	}
	if len(cuis) < 2 {
		return nil, nil
	}

	return s.interactionPairs(ctx, cuis, cuiToName)
}

type rxcuiResponse struct {
	IDGroup struct {
		RxNormID []string `json:"rxnormId"`
	} `json:"idGroup"`
}

func (s *RxNavSource) resolveRxCUI(ctx context.Context, name string) (string, error) {
	if s.limiter != nil {
		if err := s.limiter.Acquire(ctx); err != nil {
			return "", err
		}
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParam("name", name).
		Get("/REST/rxcui.json")
	if err != nil {
		return "", fmt.Errorf("rxnav rxcui request: %w", err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return "", nil
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("rxnav rxcui status %d", resp.StatusCode())
	}

	var body rxcuiResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return "", fmt.Errorf("decode rxcui response: %w", err)
	}
	if len(body.IDGroup.RxNormID) == 0 {
		return "", nil
	}
	return body.IDGroup.RxNormID[0], nil
}

type rxnavInteractionResponse struct {
	FullInteractionTypeGroup []struct {
		FullInteractionType []struct {
			InteractionPair []struct {
				InteractionConcept []struct {
					MinConceptItem struct {
						Name  string `json:"name"`
						RxCUI string `json:"rxcui"`
					} `json:"minConceptItem"`
				} `json:"interactionConcept"`
				Severity    string `json:"severity"`
				Description string `json:"description"`
			} `json:"interactionPair"`
		} `json:"fullInteractionType"`
	} `json:"fullInteractionTypeGroup"`
}

func (s *RxNavSource) interactionPairs(ctx context.Context, cuis []string, cuiToName map[string]string) ([]interaction.Interaction, error) {
	if s.limiter != nil {
		if err := s.limiter.Acquire(ctx); err != nil {
			return nil, err
		}
	}

	// The upstream expects a space-separated rxcui list; the space is encoded
	// as "+" on the wire. Joining with a literal "+" here would get
	// percent-encoded into one unparseable token.
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParam("rxcuis", strings.Join(cuis, " ")).
		Get("/REST/interaction/list.json")
	if err != nil {
		return nil, fmt.Errorf("rxnav interaction request: %w", err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("rxnav interaction status %d", resp.StatusCode())
	}

	var body rxnavInteractionResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return nil, fmt.Errorf("decode interaction response: %w", err)
	}

	var result []interaction.Interaction
	seen := make(map[string]struct{})

	for _, group := range body.FullInteractionTypeGroup {
		for _, fit := range group.FullInteractionType {
			for _, pair := range fit.InteractionPair {
				if len(pair.InteractionConcept) < 2 {
					continue
				}
				a := pair.InteractionConcept[0].MinConceptItem
				b := pair.InteractionConcept[1].MinConceptItem

				// The API can return the same pair more than once.
				key := a.RxCUI + "-" + b.RxCUI
				if _, dup := seen[key]; dup {
					continue
				}
				seen[key] = struct{}{}

				result = append(result, interaction.Interaction{
					DrugName:        callerName(cuiToName, a.RxCUI, a.Name),
					InteractingDrug: callerName(cuiToName, b.RxCUI, b.Name),
					Severity:        rxnavSeverity(pair.Severity, pair.Description),
					Description:     pair.Description,
					Source:          "rxnav",
				})
			}
		}
	}

	return result, nil
}

// callerName prefers the name the caller supplied over RxNav's normalized
// concept name so findings line up with the input medication list.
func callerName(cuiToName map[string]string, cui, fallback string) string {
	if n, ok := cuiToName[cui]; ok {
		return n
	}
	return fallback
}

// rxnavSeverity maps RxNav's coded severity when present and falls back to
// keyword classification of the description.
func rxnavSeverity(code, description string) interaction.Severity {
	switch strings.ToLower(code) {
	case "high":
		return interaction.SeverityMajor
	case "n/a", "":
		return interaction.ClassifySeverity(description)
	default:
		return interaction.ClassifySeverity(code + " " + description)
	}
}
