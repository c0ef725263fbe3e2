package config

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

func TestParseSecretDataString(t *testing.T) {
	out := &secretsmanager.GetSecretValueOutput{
		SecretString: aws.String(`{"market_data_token":"tok-123"}`),
	}

	secrets, err := parseSecretData(out)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if secrets.MarketDataToken != "tok-123" {
		t.Errorf("expected token 'tok-123', got '%s'", secrets.MarketDataToken)
	}
}

func TestParseSecretDataBinary(t *testing.T) {
	out := &secretsmanager.GetSecretValueOutput{
		SecretBinary: []byte(`{"market_data_token":"tok-456"}`),
	}

	secrets, err := parseSecretData(out)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if secrets.MarketDataToken != "tok-456" {
		t.Errorf("expected token 'tok-456', got '%s'", secrets.MarketDataToken)
	}
}

func TestParseSecretDataEmpty(t *testing.T) {
	if _, err := parseSecretData(&secretsmanager.GetSecretValueOutput{}); err == nil {
		t.Error("expected error for empty secret payload")
	}
}

func TestParseSecretDataInvalidJSON(t *testing.T) {
	out := &secretsmanager.GetSecretValueOutput{
		SecretString: aws.String(`not json`),
	}
	if _, err := parseSecretData(out); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestOverlaySecretsOnConfig(t *testing.T) {
	cfg := &Config{MarketData: MarketDataConfig{Token: "from-file"}}

	overlaySecretsOnConfig(cfg, &SecretsOverlay{MarketDataToken: "from-aws"})
	if cfg.MarketData.Token != "from-aws" {
		t.Errorf("expected secret to override token, got '%s'", cfg.MarketData.Token)
	}

	overlaySecretsOnConfig(cfg, &SecretsOverlay{})
	if cfg.MarketData.Token != "from-aws" {
		t.Errorf("expected empty secret not to clobber token, got '%s'", cfg.MarketData.Token)
	}
}
