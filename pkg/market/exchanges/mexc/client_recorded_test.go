package mexc

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/dnaeon/go-vcr/recorder"
	"github.com/stretchr/testify/assert"
)

// This test uses go-vcr to record/replay a real Klines call.
// It skips by default if cassette is absent and RECORD_CASSETTES != 1.
func TestClient_Klines_Recorded(t *testing.T) {
	cassette := filepath.Join("testdata", "cassettes", "mexc_klines.yaml")
	if _, err := os.Stat(cassette); os.IsNotExist(err) {
		if os.Getenv("RECORD_CASSETTES") != "1" {
			t.Skipf("cassette missing; set RECORD_CASSETTES=1 to record: %s", cassette)
		}
		// Ensure parent directory exists for recording
		err := os.MkdirAll(filepath.Dir(cassette), 0o755)
		assert.NoError(t, err, "mkdir cassettes dir should succeed")
	}

	r, err := recorder.New(cassette)
	assert.NoError(t, err, "recorder.New should not error")
	assert.NotNil(t, r, "recorder should not be nil")
	defer func() { _ = r.Stop() }()

	httpClient := &http.Client{Transport: r}
	client := NewClient(WithHTTPClient(httpClient))
	ctx := context.Background()
	klines, err := client.Klines(ctx, "BTCUSDT", "1m", 5)
	assert.NoError(t, err, "Klines should not error")
	assert.NotEmpty(t, klines, "klines should not be empty")
	for _, k := range klines {
		assert.Greater(t, k.Close, 0.0, "close should be positive")
		assert.Greater(t, k.CloseTime, k.OpenTime, "close time should follow open time")
	}
}
