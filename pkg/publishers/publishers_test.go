package publishers

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	return path
}

func TestLoadRegistryEnabledFilter(t *testing.T) {
	path := writeFile(t, "publishers.yaml", `
publishers:
  - id: http1
    type: http
    enabled: false
    http:
      url: https://example.com
  - id: http2
    type: HTTP
    enabled: true
    http:
      url: " https://example.com/2 "
      method: put
      headers:
        X-Token: abc
        "": dropped
`)

	reg, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	enabled := reg.Enabled()
	if len(enabled) != 1 || enabled[0].ID != "http2" {
		t.Fatalf("expected only http2 enabled, got %#v", enabled)
	}
	cfg, ok := reg.byID("http2")
	if !ok {
		t.Fatalf("expected http2 to be indexed")
	}
	if cfg.Type != TypeHTTP || cfg.HTTP.URL != "https://example.com/2" || cfg.HTTP.Method != "PUT" {
		t.Fatalf("unexpected sanitized config %#v", cfg.HTTP)
	}
	if cfg.HTTP.TimeoutSeconds != httpDefaultTimeoutSeconds {
		t.Fatalf("expected default timeout, got %d", cfg.HTTP.TimeoutSeconds)
	}
	if len(cfg.HTTP.Headers) != 1 || cfg.HTTP.Headers["X-Token"] != "abc" {
		t.Fatalf("unexpected headers %#v", cfg.HTTP.Headers)
	}
}

func TestLoadRegistryJSONWithAWSAccess(t *testing.T) {
	path := writeFile(t, "publishers.json", `{
  "publishers": [
    {"id": "q", "type": "sqs", "sqs": {"uri": "https://sqs.local/q", "region": "us-east-1", "endpoint": "http://localhost:4566"}},
    {"id": "t", "type": "sns", "sns": {"topic_arn": "arn:aws:sns:us-east-1:1:t", "region": "us-east-1", "access_key_id": "AK", "secret_access_key": "SK"}}
  ]
}`)

	reg, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	q, _ := reg.byID("q")
	if q.SQS.Endpoint != "http://localhost:4566" {
		t.Fatalf("expected inline endpoint, got %#v", q.SQS)
	}
	topic, _ := reg.byID("t")
	if topic.SNS.AccessKeyID != "AK" || topic.SNS.SecretAccessKey != "SK" {
		t.Fatalf("expected inline credentials, got %#v", topic.SNS)
	}
}

func TestLoadRegistryYAMLInlineAWSAccess(t *testing.T) {
	path := writeFile(t, "publishers.yml", `
publishers:
  - id: q
    type: sqs
    sqs:
      uri: https://sqs.local/q
      region: eu-west-1
      endpoint: http://localhost:4566
`)
	reg, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	q, _ := reg.byID("q")
	if q.SQS.Endpoint != "http://localhost:4566" {
		t.Fatalf("expected inline endpoint, got %#v", q.SQS)
	}
}

func TestLoadRegistryDuplicateID(t *testing.T) {
	path := writeFile(t, "publishers.yaml", `
publishers:
  - id: dup
    type: http
    http: {url: https://a.example}
  - id: dup
    type: http
    http: {url: https://b.example}
`)
	if _, err := LoadRegistry(path); err == nil {
		t.Fatalf("expected duplicate publisher error")
	}
}

func TestValidatePublisherConfig(t *testing.T) {
	cases := []PublisherConfig{
		{ID: "h1", Type: TypeHTTP},
		{ID: "s1", Type: TypeSQS, SQS: &SQSPublisherConfig{QueueURL: "q"}},
		{ID: "n1", Type: TypeSNS, SNS: &SNSPublisherConfig{Region: "us-east-1"}},
		{ID: "p1", Type: TypePubSub, PubSub: &PubSubPublisherConfig{ProjectID: "p"}},
		{ID: "x1", Type: "kafka"},
		{Type: TypeHTTP},
	}
	for _, cfg := range cases {
		if err := cfg.validate(); err == nil {
			t.Fatalf("expected validation error for %#v", cfg)
		}
	}

	ok := PublisherConfig{ID: "p", Type: TypePubSub, PubSub: &PubSubPublisherConfig{ProjectID: "p", Topic: "t"}}
	if err := ok.validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoadRegistryUnknownExtension(t *testing.T) {
	path := writeFile(t, "publishers.toml", `publishers = []`)
	if _, err := LoadRegistry(path); err == nil {
		t.Fatalf("expected unsupported extension error")
	}
}

func TestLoadRegistryAssetTypes(t *testing.T) {
	path := writeFile(t, "publishers.yaml", `
publishers:
  - id: videos
    type: http
    asset_types: [" Video ", ""]
    http: {url: https://hooks.example/videos}
  - id: everything
    type: http
    http: {url: https://hooks.example/all}
`)
	reg, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}

	videos, _ := reg.byID("videos")
	if len(videos.AssetTypes) != 1 || videos.AssetTypes[0] != "video" {
		t.Fatalf("unexpected asset types %#v", videos.AssetTypes)
	}
	if !videos.Accepts("VIDEO") || videos.Accepts("image") {
		t.Fatalf("videos sink must accept only video events")
	}

	all, _ := reg.byID("everything")
	if !all.Accepts("image") || !all.Accepts("video") {
		t.Fatalf("sink without asset_types must accept everything")
	}
	if got := len(reg.All()); got != 2 {
		t.Fatalf("expected 2 publishers, got %d", got)
	}
}

func TestLoadRegistryEmptyList(t *testing.T) {
	path := writeFile(t, "publishers.yaml", "publishers: []\n")
	reg, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	if len(reg.Enabled()) != 0 {
		t.Fatalf("expected no publishers")
	}
}
