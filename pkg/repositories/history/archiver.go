package history

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/shopspring/decimal"

	"github.com/fadedpez/tong777/pkg/entities"
)

// Archiver keeps finished rounds somewhere outside the player record
type Archiver interface {
	Archive(ctx context.Context, username string, record entities.GameRecord) error
}

// Config holds the Elasticsearch connection settings
type Config struct {
	URL         string
	Username    string
	Password    string
	IndexPrefix string
}

const roundMapping = `{
	"mappings": {
		"properties": {
			"round_id": { "type": "keyword" },
			"username": { "type": "keyword" },
			"game": { "type": "keyword" },
			"outcome": { "type": "keyword" },
			"bet": { "type": "scaled_float", "scaling_factor": 100 },
			"result": { "type": "scaled_float", "scaling_factor": 100 },
			"balance_after": { "type": "scaled_float", "scaling_factor": 100 },
			"played_at": { "type": "date" }
		}
	}
}`

// RoundDocument is one archived round
type RoundDocument struct {
	RoundID      string          `json:"round_id"`
	Username     string          `json:"username"`
	Game         string          `json:"game"`
	Outcome      string          `json:"outcome"`
	Bet          decimal.Decimal `json:"bet"`
	Result       decimal.Decimal `json:"result"`
	BalanceAfter decimal.Decimal `json:"balance_after"`
	PlayedAt     time.Time       `json:"played_at"`
}

func newRoundDocument(username string, rec entities.GameRecord) RoundDocument {
	return RoundDocument{
		RoundID:      rec.ID,
		Username:     username,
		Game:         string(rec.Game),
		Outcome:      string(rec.Outcome),
		Bet:          rec.Bet,
		Result:       rec.Result,
		BalanceAfter: rec.BalanceAfter,
		PlayedAt:     rec.Timestamp,
	}
}

// GameRecord converts the document back into a history entry
func (d RoundDocument) GameRecord() entities.GameRecord {
	return entities.GameRecord{
		ID:           d.RoundID,
		Game:         entities.GameKind(d.Game),
		Bet:          d.Bet,
		Result:       d.Result,
		Outcome:      entities.Result(d.Outcome),
		BalanceAfter: d.BalanceAfter,
		Timestamp:    d.PlayedAt,
	}
}

// ElasticsearchArchiver indexes rounds into monthly indices named PREFIX_rounds_YYYY.MM
type ElasticsearchArchiver struct {
	client      *elasticsearch.Client
	indexPrefix string

	mu      sync.Mutex
	ensured map[string]bool
}

// NewElasticsearchArchiver creates the client; indices are created lazily on first write
func NewElasticsearchArchiver(cfg Config) (*ElasticsearchArchiver, error) {
	esCfg := elasticsearch.Config{
		Addresses: []string{cfg.URL},
	}
	if cfg.Username != "" && cfg.Password != "" {
		esCfg.Username = cfg.Username
		esCfg.Password = cfg.Password
	}

	client, err := elasticsearch.NewClient(esCfg)
	if err != nil {
		return nil, fmt.Errorf("error creating Elasticsearch client: %w", err)
	}

	prefix := cfg.IndexPrefix
	if prefix == "" {
		prefix = "tong777"
	}

	return &ElasticsearchArchiver{
		client:      client,
		indexPrefix: prefix,
		ensured:     make(map[string]bool),
	}, nil
}

// IndexFor names the index a round played at t belongs in
func (a *ElasticsearchArchiver) IndexFor(t time.Time) string {
	return fmt.Sprintf("%s_rounds_%s", a.indexPrefix, t.UTC().Format("2006.01"))
}

func (a *ElasticsearchArchiver) ensureIndex(ctx context.Context, index string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.ensured[index] {
		return nil
	}

	res, err := a.client.Indices.Exists([]string{index}, a.client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("error checking if index %s exists: %w", index, err)
	}
	res.Body.Close()

	switch res.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		req := esapi.IndicesCreateRequest{
			Index: index,
			Body:  strings.NewReader(roundMapping),
		}
		res, err := req.Do(ctx, a.client)
		if err != nil {
			return fmt.Errorf("error creating index %s: %w", index, err)
		}
		defer res.Body.Close()

		if res.IsError() {
			return fmt.Errorf("error creating index %s: %s", index, res.String())
		}
	default:
		return fmt.Errorf("error checking if index %s exists: status %d", index, res.StatusCode)
	}

	a.ensured[index] = true
	return nil
}

// Archive implements Archiver. The round ID is the document ID so a retry overwrites instead of duplicating.
func (a *ElasticsearchArchiver) Archive(ctx context.Context, username string, record entities.GameRecord) error {
	index := a.IndexFor(record.Timestamp)
	if err := a.ensureIndex(ctx, index); err != nil {
		return err
	}

	body, err := json.Marshal(newRoundDocument(username, record))
	if err != nil {
		return fmt.Errorf("error marshaling round: %w", err)
	}

	opts := []func(*esapi.IndexRequest){a.client.Index.WithContext(ctx)}
	if record.ID != "" {
		opts = append(opts, a.client.Index.WithDocumentID(record.ID))
	}

	res, err := a.client.Index(index, bytes.NewReader(body), opts...)
	if err != nil {
		return fmt.Errorf("error indexing round: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("error indexing round: %s", res.String())
	}
	return nil
}

type searchResponse struct {
	Hits struct {
		Hits []struct {
			Source RoundDocument `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// Recent returns up to limit of the player's newest archived rounds, newest first
func (a *ElasticsearchArchiver) Recent(ctx context.Context, username string, limit int) ([]entities.GameRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	query := map[string]interface{}{
		"query": map[string]interface{}{
			"term": map[string]interface{}{"username": username},
		},
		"sort": []interface{}{
			map[string]interface{}{"played_at": map[string]interface{}{"order": "desc"}},
		},
		"size": limit,
	}
	body, err := json.Marshal(query)
	if err != nil {
		return nil, fmt.Errorf("error marshaling query: %w", err)
	}

	res, err := a.client.Search(
		a.client.Search.WithContext(ctx),
		a.client.Search.WithIndex(a.indexPrefix+"_rounds_*"),
		a.client.Search.WithBody(bytes.NewReader(body)),
		a.client.Search.WithIgnoreUnavailable(true),
	)
	if err != nil {
		return nil, fmt.Errorf("error searching rounds: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("error searching rounds: %s", res.String())
	}

	var parsed searchResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("error parsing search response: %w", err)
	}

	records := make([]entities.GameRecord, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		records = append(records, hit.Source.GameRecord())
	}
	return records, nil
}
