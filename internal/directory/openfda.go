package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

const DefaultOpenFDABaseURL = "https://api.fda.gov"

// OpenFDASource reads drug search results and label text from the openFDA
// drug label endpoint. Every request first awaits the shared rate limiter.
type OpenFDASource struct {
	client  *resty.Client
	limiter RateLimiter
	log     zerolog.Logger
}

func NewOpenFDASource(baseURL string, timeout time.Duration, limiter RateLimiter, log zerolog.Logger) *OpenFDASource {
	if baseURL == "" {
		baseURL = DefaultOpenFDABaseURL
	}
	c := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		SetTimeout(timeout)

	return &OpenFDASource{client: c, limiter: limiter, log: log}
}

type openFDALabelResult struct {
	ID                  string   `json:"id"`
	IndicationsAndUsage []string `json:"indications_and_usage"`
	DrugInteractions    []string `json:"drug_interactions"`
	Warnings            []string `json:"warnings"`
	OpenFDA             struct {
		BrandName        []string `json:"brand_name"`
		GenericName      []string `json:"generic_name"`
		SubstanceName    []string `json:"substance_name"`
		ManufacturerName []string `json:"manufacturer_name"`
		Route            []string `json:"route"`
		ProductNDC       []string `json:"product_ndc"`
	} `json:"openfda"`
}

type openFDALabelResponse struct {
	Results []openFDALabelResult `json:"results"`
}

func (s *OpenFDASource) Search(ctx context.Context, query string, limit int) ([]DrugInfo, error) {
	results, err := s.fetchLabels(ctx, searchExpr(query), limit)
	if err != nil {
		return nil, err
	}

	infos := make([]DrugInfo, 0, len(results))
	for _, r := range results {
		infos = append(infos, DrugInfo{
			ID:               r.ID,
			BrandName:        first(r.OpenFDA.BrandName),
			GenericName:      first(r.OpenFDA.GenericName),
			ActiveIngredient: first(r.OpenFDA.SubstanceName),
			Manufacturer:     first(r.OpenFDA.ManufacturerName),
			Route:            r.OpenFDA.Route,
			ProductNDC:       first(r.OpenFDA.ProductNDC),
		})
	}
	return infos, nil
}

func (s *OpenFDASource) Label(ctx context.Context, name string) (*DrugLabel, error) {
	results, err := s.fetchLabels(ctx, searchExpr(name), 1)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, ErrNotFound
	}

	r := results[0]
	return &DrugLabel{
		BrandName:        first(r.OpenFDA.BrandName),
		GenericName:      first(r.OpenFDA.GenericName),
		Indications:      joined(r.IndicationsAndUsage),
		DrugInteractions: joined(r.DrugInteractions),
		Warnings:         joined(r.Warnings),
	}, nil
}

func (s *OpenFDASource) fetchLabels(ctx context.Context, search string, limit int) ([]openFDALabelResult, error) {
	if s.limiter != nil {
		if err := s.limiter.Acquire(ctx); err != nil {
			return nil, err
		}
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParam("search", search).
		SetQueryParam("limit", strconv.Itoa(limit)).
		Get("/drug/label.json")
	if err != nil {
		return nil, fmt.Errorf("openfda request: %w", err)
	}

	// openFDA answers 404 for queries with zero hits.
	if resp.StatusCode() == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("openfda status %d: %s", resp.StatusCode(), resp.String())
	}

	var body openFDALabelResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return nil, fmt.Errorf("decode openfda response: %w", err)
	}

	return body.Results, nil
}

func searchExpr(query string) string {
	return fmt.Sprintf("openfda.brand_name:%q openfda.generic_name:%q openfda.substance_name:%q", query, query, query)
}

func first(s []string) string {
	if len(s) == 0 {
		return ""
	}
	return s[0]
}

func joined(s []string) string {
	switch len(s) {
	case 0:
		return ""
	case 1:
		return s[0]
	default:
		out := s[0]
		for _, part := range s[1:] {
			out += " " + part
		}
		return out
	}
}
