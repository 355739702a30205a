package search

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

// Index abstracts the search engine for the orchestrator so tests can stand
// in a call-counting stub without a running cluster.
type Index interface {
	Search(ctx context.Context, body map[string]interface{}, from, size int) (*Result, error)
	IndexDocument(ctx context.Context, id int, doc interface{}) error
	DeleteDocument(ctx context.Context, id int) error
}

// Result carries the raw document projections and the total hit count of
// one index query.
type Result struct {
	Hits  []map[string]interface{}
	Total int64
}

// ESIndex executes against a live Elasticsearch cluster.
type ESIndex struct {
	client  *elasticsearch.Client
	index   string
	timeout time.Duration
}

func NewESIndex(client *elasticsearch.Client, index string, timeout time.Duration) *ESIndex {
	return &ESIndex{client: client, index: index, timeout: timeout}
}

func (e *ESIndex) Search(ctx context.Context, body map[string]interface{}, from, size int) (*Result, error) {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal search body: %w", err)
	}

	req := esapi.SearchRequest{
		Index: []string{e.index},
		Body:  strings.NewReader(string(payload)),
		From:  &from,
		Size:  &size,
	}

	res, err := req.Do(ctx, e.client)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("search query failed: %s", res.String())
	}

	var r map[string]interface{}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	hits, ok := r["hits"].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("malformed search response: missing hits")
	}

	total := int64(0)
	if t, ok := hits["total"].(map[string]interface{}); ok {
		if v, ok := t["value"].(float64); ok {
			total = int64(v)
		}
	}

	var docs []map[string]interface{}
	if rawHits, ok := hits["hits"].([]interface{}); ok {
		for _, hit := range rawHits {
			if h, ok := hit.(map[string]interface{}); ok {
				if source, ok := h["_source"].(map[string]interface{}); ok {
					docs = append(docs, source)
				}
			}
		}
	}

	return &Result{Hits: docs, Total: total}, nil
}

// IndexDocument upserts a full document replace; a prior version under the
// same id is overwritten wholesale, never patched.
func (e *ESIndex) IndexDocument(ctx context.Context, id int, doc interface{}) error {
	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}

	res, err := e.client.Index(
		e.index,
		strings.NewReader(string(payload)),
		e.client.Index.WithDocumentID(strconv.Itoa(id)),
		e.client.Index.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("index request failed: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("index write failed: %s", res.String())
	}

	return nil
}

func (e *ESIndex) DeleteDocument(ctx context.Context, id int) error {
	res, err := e.client.Delete(
		e.index,
		strconv.Itoa(id),
		e.client.Delete.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("delete request failed: %w", err)
	}
	defer res.Body.Close()

	// A 404 means the document was never indexed (or a prior removal
	// already won); the relational delete is authoritative either way.
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("index delete failed: %s", res.String())
	}

	return nil
}
