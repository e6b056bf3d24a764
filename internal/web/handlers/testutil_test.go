package handlers

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"image"
	"image/png"
	"net/http/httptest"
	"testing"

	"github.com/jsvoboda/rollcall/internal/attendance"
	"github.com/jsvoboda/rollcall/internal/database/mock"
)

// stubDetector returns a fixed descriptor, or an injected error.
type stubDetector struct {
	descriptor []float32
	err        error
}

func (s *stubDetector) DetectFace(ctx context.Context, imageData []byte) ([]float32, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.descriptor, nil
}

// testDescriptor builds a 128-dim descriptor with the given leading components.
func testDescriptor(leading ...float32) []float32 {
	d := make([]float32, 128)
	copy(d, leading)
	return d
}

// newTestService builds an attendance service over a mock repository and the
// given detector.
func newTestService(repo *mock.StudentRepository, detector *stubDetector) *attendance.Service {
	return attendance.NewService(repo, detector, attendance.DefaultThreshold, 128)
}

// testPhotoDataURI encodes a small valid PNG as a base64 data URI.
func testPhotoDataURI(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 8, 8))); err != nil {
		t.Fatalf("failed to encode test photo: %v", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

// parseJSONResponse parses a JSON response body into the target type
func parseJSONResponse(t *testing.T, recorder *httptest.ResponseRecorder, target any) {
	t.Helper()
	if err := json.Unmarshal(recorder.Body.Bytes(), target); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nBody: %s", err, recorder.Body.String())
	}
}

// assertStatusCode checks if the response has the expected status code
func assertStatusCode(t *testing.T, recorder *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if recorder.Code != expected {
		t.Errorf("expected status %d, got %d\nBody: %s", expected, recorder.Code, recorder.Body.String())
	}
}

// assertFailureMessage checks that the response is {success:false} with the
// expected message.
func assertFailureMessage(t *testing.T, recorder *httptest.ResponseRecorder, expectedMessage string) {
	t.Helper()
	var resp apiResponse
	parseJSONResponse(t, recorder, &resp)
	if resp.Success {
		t.Error("expected success=false")
	}
	if resp.Message != expectedMessage {
		t.Errorf("expected message '%s', got '%s'", expectedMessage, resp.Message)
	}
}
