package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

func TestCounter(t *testing.T) {
	t.Run("without labels", func(t *testing.T) {
		r := NewRegistry()
		c := r.NewCounter("test_counter", "A test counter")

		c.Inc()
		c.Inc()
		c.Add(3)

		samples := c.Collect()
		if len(samples) != 1 {
			t.Fatalf("expected 1 sample, got %d", len(samples))
		}
		if samples[0].Value != 5 {
			t.Errorf("expected value 5, got %f", samples[0].Value)
		}
	})

	t.Run("with labels", func(t *testing.T) {
		r := NewRegistry()
		c := r.NewCounter("imposter_requests", "Total captured requests", "protocol", "port")

		vec, err := c.WithLabels("tcp", "4545")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		_ = vec.Inc()
		vec, _ = c.WithLabels("tcp", "4545")
		_ = vec.Inc()
		vec, _ = c.WithLabels("tcp", "4546")
		_ = vec.Add(5)

		samples := c.Collect()
		if len(samples) != 2 {
			t.Fatalf("expected 2 samples, got %d", len(samples))
		}

		found := make(map[string]float64)
		for _, s := range samples {
			key := s.Labels["protocol"] + "_" + s.Labels["port"]
			found[key] = s.Value
		}

		if found["tcp_4545"] != 2 {
			t.Errorf("expected tcp_4545=2, got %f", found["tcp_4545"])
		}
		if found["tcp_4546"] != 5 {
			t.Errorf("expected tcp_4546=5, got %f", found["tcp_4546"])
		}
	})

	t.Run("label count mismatch", func(t *testing.T) {
		r := NewRegistry()
		c := r.NewCounter("labeled_counter", "Labeled", "a", "b")

		_, err := c.WithLabels("only-one")
		if !errors.Is(err, ErrLabelCountMismatch) {
			t.Errorf("expected ErrLabelCountMismatch, got %v", err)
		}
	})

	t.Run("negative add rejected", func(t *testing.T) {
		r := NewRegistry()
		c := r.NewCounter("mono_counter", "Monotonic")

		if err := c.Add(-1); !errors.Is(err, ErrNegativeCounterValue) {
			t.Errorf("expected ErrNegativeCounterValue, got %v", err)
		}

		samples := c.Collect()
		if len(samples) != 0 {
			t.Errorf("expected no samples after rejected add, got %d", len(samples))
		}
	})
}

func TestGauge(t *testing.T) {
	t.Run("set inc dec", func(t *testing.T) {
		r := NewRegistry()
		g := r.NewGauge("test_gauge", "A test gauge")

		g.Set(10)
		g.Inc()
		g.Inc()
		g.Dec()

		samples := g.Collect()
		if len(samples) != 1 {
			t.Fatalf("expected 1 sample, got %d", len(samples))
		}
		if samples[0].Value != 11 {
			t.Errorf("expected value 11, got %f", samples[0].Value)
		}
	})

	t.Run("with labels", func(t *testing.T) {
		r := NewRegistry()
		g := r.NewGauge("active_conns", "Active connections", "protocol")

		vec, err := g.WithLabels("tcp")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		vec.Inc()
		vec.Inc()
		vec.Dec()

		samples := g.Collect()
		if len(samples) != 1 {
			t.Fatalf("expected 1 sample, got %d", len(samples))
		}
		if samples[0].Value != 1 {
			t.Errorf("expected value 1, got %f", samples[0].Value)
		}
	})

	t.Run("negative values allowed", func(t *testing.T) {
		r := NewRegistry()
		g := r.NewGauge("signed_gauge", "Signed")

		g.Set(-42.5)

		samples := g.Collect()
		if samples[0].Value != -42.5 {
			t.Errorf("expected -42.5, got %f", samples[0].Value)
		}
	})
}

func TestRegistryDuplicatePanics(t *testing.T) {
	r := NewRegistry()
	r.NewCounter("dup_metric", "First")

	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate metric name")
		}
	}()
	r.NewGauge("dup_metric", "Second")
}

func TestHandler(t *testing.T) {
	r := NewRegistry()
	c := r.NewCounter("handler_requests_total", "Total requests", "protocol", "port")
	vec, _ := c.WithLabels("tcp", "4545")
	_ = vec.Add(7)

	g := r.NewGauge("handler_running", "Running imposters")
	g.Set(2)

	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, req)

	if ct := rec.Header().Get("Content-Type"); !strings.Contains(ct, "text/plain") {
		t.Errorf("unexpected content type: %s", ct)
	}

	body, _ := io.ReadAll(rec.Body)
	out := string(body)

	expected := []string{
		"# HELP handler_requests_total Total requests",
		"# TYPE handler_requests_total counter",
		`handler_requests_total{port="4545",protocol="tcp"} 7`,
		"# TYPE handler_running gauge",
		"handler_running 2",
	}
	for _, want := range expected {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{7, "7"},
		{-3, "-3"},
		{0.5, "0.5"},
	}
	for _, tt := range tests {
		if got := formatFloat(tt.in); got != tt.want {
			t.Errorf("formatFloat(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEscaping(t *testing.T) {
	if got := escapeLabelValue(`a"b\c` + "\n"); got != `a\"b\\c\n` {
		t.Errorf("escapeLabelValue = %q", got)
	}
	if got := escapeHelp("line1\nline2"); got != `line1\nline2` {
		t.Errorf("escapeHelp = %q", got)
	}
}

func TestConcurrentAccess(t *testing.T) {
	r := NewRegistry()
	c := r.NewCounter("concurrent_total", "Concurrent", "protocol")

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				vec, _ := c.WithLabels("tcp")
				_ = vec.Inc()
			}
		}()
	}
	wg.Wait()

	samples := c.Collect()
	if len(samples) != 1 {
		t.Fatalf("expected 1 sample, got %d", len(samples))
	}
	if samples[0].Value != 1000 {
		t.Errorf("expected 1000, got %f", samples[0].Value)
	}
}

func TestDefaultRegistry(t *testing.T) {
	Reset()

	if RequestsTotal == nil || ErrorsTotal == nil || ActiveConnections == nil || ImpostersRunning == nil {
		t.Fatal("default metrics not initialized")
	}

	vec, err := RequestsTotal.WithLabels("tcp", "4545")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_ = vec.Inc()

	samples := RequestsTotal.Collect()
	if len(samples) != 1 || samples[0].Value != 1 {
		t.Errorf("unexpected samples: %+v", samples)
	}

	if DefaultRegistry() == nil {
		t.Error("DefaultRegistry returned nil")
	}
}
