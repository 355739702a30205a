// internal/common/database/elasticsearch.go
package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"jobboard-api/internal/common/config"

	"github.com/elastic/go-elasticsearch/v8"
)

// jobsIndexMapping is the fixed field-to-type mapping for the jobs document
// collection. title and description are analyzed text; the foreign keys and
// tags are exact-match fields; created_at drives the default sort.
const jobsIndexMapping = `{
	"mappings": {
		"properties": {
			"id": {"type": "integer"},
			"title": {"type": "text", "analyzer": "standard"},
			"description": {"type": "text", "analyzer": "standard"},
			"salary_min": {"type": "integer"},
			"salary_max": {"type": "integer"},
			"location_id": {"type": "integer"},
			"work_type_id": {"type": "integer"},
			"recruiter_id": {"type": "integer"},
			"experience_level": {"type": "keyword"},
			"industry": {"type": "keyword"},
			"created_at": {"type": "date"},
			"tags": {"type": "keyword"}
		}
	}
}`

// ElasticsearchClient wraps the Elasticsearch client
type ElasticsearchClient struct {
	Client *elasticsearch.Client
}

// NewElasticsearch creates a new Elasticsearch client
func NewElasticsearch(cfg config.ElasticsearchConfig) (*ElasticsearchClient, error) {
	esCfg := elasticsearch.Config{
		Addresses: cfg.Addresses,
	}

	if cfg.Username != "" {
		esCfg.Username = cfg.Username
		esCfg.Password = cfg.Password
	}

	es, err := elasticsearch.NewClient(esCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create elasticsearch client: %w", err)
	}

	return &ElasticsearchClient{Client: es}, nil
}

// Ping tests the Elasticsearch connection
func (c *ElasticsearchClient) Ping() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res, err := c.Client.Ping(
		c.Client.Ping.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("elasticsearch ping failed: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("elasticsearch ping error: %s", res.Status())
	}

	return nil
}

// EnsureJobsIndex creates the jobs index with its mapping if it does not
// exist yet. Safe to call on every startup.
func (c *ElasticsearchClient) EnsureJobsIndex(ctx context.Context, index string) error {
	res, err := c.Client.Indices.Exists(
		[]string{index},
		c.Client.Indices.Exists.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("elasticsearch index check failed: %w", err)
	}
	res.Body.Close()

	if res.StatusCode == 200 {
		return nil
	}

	createRes, err := c.Client.Indices.Create(
		index,
		c.Client.Indices.Create.WithBody(strings.NewReader(jobsIndexMapping)),
		c.Client.Indices.Create.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("elasticsearch index create failed: %w", err)
	}
	defer createRes.Body.Close()

	if createRes.IsError() {
		return fmt.Errorf("elasticsearch index create error: %s", createRes.String())
	}

	return nil
}

// GetClient returns the underlying *elasticsearch.Client
func (c *ElasticsearchClient) GetClient() *elasticsearch.Client {
	return c.Client
}
