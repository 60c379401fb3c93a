package config

import "testing"

func TestValidate_InvalidPort(t *testing.T) {
	cfg := Config{HTTP: HTTPConfig{Port: 0}}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_InvalidThreshold(t *testing.T) {
	cfg := Config{
		HTTP:       HTTPConfig{Port: 8080},
		Classifier: ClassifierConfig{Threshold: 1.5},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for threshold above 1")
	}
}

func TestValidate_InvalidBoostFactor(t *testing.T) {
	cfg := Config{
		HTTP:     HTTPConfig{Port: 8080},
		Pipeline: PipelineConfig{EmojiBoostFactor: 2},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for boost factor above 1")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{HTTP: HTTPConfig{Port: 8080}}
	cfg.ApplyDefaults()

	if cfg.Classifier.Threshold != 0.3 {
		t.Errorf("expected default threshold 0.3, got %f", cfg.Classifier.Threshold)
	}
	if cfg.Pipeline.EmojiBoostFactor != 0.15 {
		t.Errorf("expected default boost factor 0.15, got %f", cfg.Pipeline.EmojiBoostFactor)
	}
	if cfg.Pipeline.MinClusterSize != 2 {
		t.Errorf("expected default min cluster size 2, got %d", cfg.Pipeline.MinClusterSize)
	}
	if cfg.Pipeline.MaxClusters != 8 {
		t.Errorf("expected default max clusters 8, got %d", cfg.Pipeline.MaxClusters)
	}
	if cfg.Generation.Model != "gpt-4o-mini" {
		t.Errorf("expected default generation model, got %q", cfg.Generation.Model)
	}
	if cfg.Classifier.AllowDegraded == nil || !*cfg.Classifier.AllowDegraded {
		t.Error("expected degraded fallback enabled by default")
	}
	if cfg.Database.KeyPrefix != "emosense:" {
		t.Errorf("expected default key prefix, got %q", cfg.Database.KeyPrefix)
	}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	allow := false
	cfg := Config{
		HTTP:       HTTPConfig{Port: 8080},
		Classifier: ClassifierConfig{Threshold: 0.5, AllowDegraded: &allow},
		Pipeline:   PipelineConfig{MinClusterSize: 3},
	}
	cfg.ApplyDefaults()

	if cfg.Classifier.Threshold != 0.5 {
		t.Errorf("explicit threshold overwritten: %f", cfg.Classifier.Threshold)
	}
	if *cfg.Classifier.AllowDegraded {
		t.Error("explicit allow_degraded=false overwritten")
	}
	if cfg.Pipeline.MinClusterSize != 3 {
		t.Errorf("explicit min cluster size overwritten: %d", cfg.Pipeline.MinClusterSize)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("EMOSENSE_TEST_KEY", "secret")

	data := expandEnvVars([]byte("api_key: ${EMOSENSE_TEST_KEY}\nmodel: ${EMOSENSE_UNSET:-gpt-4o-mini}"))
	want := "api_key: secret\nmodel: gpt-4o-mini"
	if string(data) != want {
		t.Errorf("unexpected expansion:\ngot:  %q\nwant: %q", string(data), want)
	}
}
