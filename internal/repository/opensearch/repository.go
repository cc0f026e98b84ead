package opensearch

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/opensearch-project/opensearch-go/v2"
	"github.com/opensearch-project/opensearch-go/v2/opensearchapi"

	"github.com/kingrain94/realty-api/internal/config"
	"github.com/kingrain94/realty-api/internal/domain"
)

type Repository struct {
	client *opensearch.Client
	config *config.OpenSearchConfig
}

// NewRepository returns the listing search index. Each tenant has its own
// index; queries additionally filter on tenant_id.
func NewRepository(client *opensearch.Client, config *config.OpenSearchConfig) *Repository {
	return &Repository{
		client: client,
		config: config,
	}
}

func (r *Repository) IndexListing(ctx context.Context, doc *domain.ListingDocument) error {
	if err := r.CreateIndex(ctx, doc.TenantID); err != nil {
		return fmt.Errorf("failed to ensure index exists: %w", err)
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal listing: %w", err)
	}

	req := opensearchapi.IndexRequest{
		Index:      r.config.GetIndexName(doc.TenantID),
		DocumentID: doc.ID,
		Body:       strings.NewReader(string(data)),
	}

	res, err := req.Do(ctx, r.client)
	if err != nil {
		return fmt.Errorf("failed to index document: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("error indexing document: %s", res.String())
	}
	return nil
}

func (r *Repository) BulkIndexListings(ctx context.Context, docs []domain.ListingDocument) error {
	if len(docs) == 0 {
		return nil
	}

	groups := make(map[string][]domain.ListingDocument)
	for _, doc := range docs {
		groups[doc.TenantID] = append(groups[doc.TenantID], doc)
	}

	for tenantID, group := range groups {
		if err := r.bulkIndexGroup(ctx, tenantID, group); err != nil {
			return fmt.Errorf("failed to bulk index listings of tenant %s: %w", tenantID, err)
		}
	}
	return nil
}

func (r *Repository) bulkIndexGroup(ctx context.Context, tenantID string, docs []domain.ListingDocument) error {
	if err := r.CreateIndex(ctx, tenantID); err != nil {
		return fmt.Errorf("failed to ensure index exists: %w", err)
	}
	indexName := r.config.GetIndexName(tenantID)

	var body strings.Builder
	for _, doc := range docs {
		action, err := json.Marshal(map[string]any{
			"index": map[string]any{
				"_index": indexName,
				"_id":    doc.ID,
			},
		})
		if err != nil {
			return fmt.Errorf("failed to marshal action: %w", err)
		}
		body.Write(action)
		body.WriteString("\n")

		line, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("failed to marshal document: %w", err)
		}
		body.Write(line)
		body.WriteString("\n")
	}

	req := opensearchapi.BulkRequest{
		Body: strings.NewReader(body.String()),
	}

	res, err := req.Do(ctx, r.client)
	if err != nil {
		return fmt.Errorf("failed to execute bulk request: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("bulk request failed: %s", res.String())
	}
	return nil
}

func (r *Repository) SearchListings(ctx context.Context, scope domain.TenantScope, filter domain.ContentFilter) ([]string, int64, error) {
	// Search is always per tenant, even for cross-tenant callers.
	if !scope.Bound() {
		return []string{}, 0, nil
	}

	queryJSON, err := json.Marshal(buildSearchQuery(scope.TenantID(), filter))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to marshal query: %w", err)
	}

	req := opensearchapi.SearchRequest{
		Index: []string{r.config.GetIndexName(scope.TenantID())},
		Body:  strings.NewReader(string(queryJSON)),
	}

	res, err := req.Do(ctx, r.client)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to execute search: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		if res.StatusCode == 404 {
			return []string{}, 0, nil
		}
		return nil, 0, fmt.Errorf("search request failed: %s", res.String())
	}

	var result struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
		return nil, 0, fmt.Errorf("failed to decode response: %w", err)
	}

	ids := make([]string, 0, len(result.Hits.Hits))
	for _, hit := range result.Hits.Hits {
		ids = append(ids, hit.ID)
	}
	return ids, result.Hits.Total.Value, nil
}

// buildSearchQuery turns a listing filter into a bool query. Full-text matching
// runs over the flattened text of every locale, boosting the requested one.
func buildSearchQuery(tenantID string, filter domain.ContentFilter) map[string]any {
	must := make([]map[string]any, 0)
	filters := []map[string]any{createTermQuery("tenant_id", tenantID)}

	if filter.Query != "" {
		fields := []string{"text"}
		if filter.Locale != "" {
			fields = append(fields,
				fmt.Sprintf("titles.%s^3", filter.Locale),
				fmt.Sprintf("addresses.%s^2", filter.Locale),
				fmt.Sprintf("descriptions.%s", filter.Locale),
			)
		}
		must = append(must, map[string]any{
			"multi_match": map[string]any{
				"query":     filter.Query,
				"fields":    fields,
				"fuzziness": "AUTO",
			},
		})
	}
	if filter.Status != "" {
		filters = append(filters, createTermQuery("status", string(filter.Status)))
	}
	if filter.ListingComplexID != "" {
		filters = append(filters, createTermQuery("listing_complex_id", filter.ListingComplexID))
	}
	if filter.Rooms > 0 {
		filters = append(filters, map[string]any{"term": map[string]any{"rooms": filter.Rooms}})
	}
	if filter.MinPrice > 0 || filter.MaxPrice > 0 {
		priceRange := make(map[string]any)
		if filter.MinPrice > 0 {
			priceRange["gte"] = filter.MinPrice
		}
		if filter.MaxPrice > 0 {
			priceRange["lte"] = filter.MaxPrice
		}
		filters = append(filters, map[string]any{"range": map[string]any{"price": priceRange}})
	}

	query := map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"must":   must,
				"filter": filters,
			},
		},
		"_source":          false,
		"track_total_hits": true,
	}

	if filter.Limit > 0 {
		query["from"] = filter.Offset
		query["size"] = filter.Limit
	}
	if filter.Query == "" {
		query["sort"] = []map[string]any{
			{"published_at": map[string]any{"order": "desc", "missing": "_last"}},
		}
	}
	return query
}

func createTermQuery(field, value string) map[string]any {
	return map[string]any{
		"term": map[string]any{
			field: value,
		},
	}
}

func (r *Repository) getIndexMapping() string {
	return `{
		"mappings": {
			"dynamic_templates": [
				{
					"localised": {
						"path_match": "*s.*",
						"match_mapping_type": "string",
						"mapping": { "type": "text" }
					}
				}
			],
			"properties": {
				"id": { "type": "keyword" },
				"tenant_id": { "type": "keyword" },
				"listing_complex_id": { "type": "keyword" },
				"slug": { "type": "keyword" },
				"status": { "type": "keyword" },
				"price": { "type": "long" },
				"currency": { "type": "keyword" },
				"rooms": { "type": "integer" },
				"area": { "type": "float" },
				"text": { "type": "text" },
				"published_at": { "type": "date" },
				"updated_at": { "type": "date" }
			}
		},
		"settings": {
			"index": {
				"number_of_shards": 1,
				"number_of_replicas": 1,
				"refresh_interval": "1s"
			}
		}
	}`
}

func (r *Repository) CreateIndex(ctx context.Context, tenantID string) error {
	indexName := r.config.GetIndexName(tenantID)

	exists := opensearchapi.IndicesExistsRequest{
		Index: []string{indexName},
	}
	res, err := exists.Do(ctx, r.client)
	if err != nil {
		return fmt.Errorf("failed to check index existence: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == 200 {
		return nil
	}

	create := opensearchapi.IndicesCreateRequest{
		Index: indexName,
		Body:  strings.NewReader(r.getIndexMapping()),
	}

	res, err = create.Do(ctx, r.client)
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}
	defer res.Body.Close()

	// Another worker may have created it in the meantime
	if res.IsError() && !strings.Contains(res.String(), "resource_already_exists_exception") {
		return fmt.Errorf("error creating index: %s", res.String())
	}
	return nil
}

func (r *Repository) DeleteIndex(ctx context.Context, tenantID string) error {
	req := opensearchapi.IndicesDeleteRequest{
		Index: []string{r.config.GetIndexName(tenantID)},
	}

	res, err := req.Do(ctx, r.client)
	if err != nil {
		return fmt.Errorf("failed to delete index: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("error deleting index: %s", res.String())
	}
	return nil
}

func (r *Repository) DeleteListing(ctx context.Context, tenantID, listingID string) error {
	req := opensearchapi.DeleteRequest{
		Index:      r.config.GetIndexName(tenantID),
		DocumentID: listingID,
	}

	res, err := req.Do(ctx, r.client)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("error deleting document: %s", res.String())
	}
	return nil
}
