package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"sync"
	"testing"

	"github.com/sefazor/pixelmuse-backend/internal/models"
	"go.uber.org/zap"
)

// makeFileHeaders builds real multipart file headers so FileHeader.Open works.
func makeFileHeaders(t *testing.T, names ...string) []*multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for _, name := range names {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="images"; filename="%s"`, name))
		h.Set("Content-Type", "image/png")
		part, err := w.CreatePart(h)
		if err != nil {
			t.Fatalf("failed to create part: %v", err)
		}
		if _, err := part.Write([]byte("fake-image-bytes")); err != nil {
			t.Fatalf("failed to write part: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("failed to close writer: %v", err)
	}

	form, err := multipart.NewReader(body, w.Boundary()).ReadForm(32 << 20)
	if err != nil {
		t.Fatalf("failed to read form: %v", err)
	}
	return form.File["images"]
}

func newImageServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write([]byte("generated-png-bytes"))
	}))
	t.Cleanup(srv.Close)
	return srv
}

type generationFixture struct {
	subs     *fakeSubscriptionStore
	projects *fakeProjectStore
	input    *fakeBlobStorage
	output   *fakeBlobStorage
	gen      *fakeGenerator
	svc      *GenerationService
}

func newGenerationFixture(t *testing.T, modelOutput json.RawMessage) *generationFixture {
	f := &generationFixture{
		subs:     newFakeSubscriptionStore(),
		projects: newFakeProjectStore(),
		input:    newFakeBlobStorage("input-images"),
		output:   newFakeBlobStorage("output-images"),
		gen:      &fakeGenerator{output: modelOutput},
	}
	f.svc = NewGenerationService(f.subs, f.projects, f.input, f.output, f.gen, zap.NewNop())
	return f
}

func activeSubscription(userID uint, limit, used int) *models.Subscription {
	return &models.Subscription{
		UserID:     userID,
		Status:     models.SubscriptionStatusActive,
		QuotaLimit: limit,
		QuotaUsed:  used,
	}
}

func TestGenerateLastQuotaSlot(t *testing.T) {
	srv := newImageServer(t)
	fix := newGenerationFixture(t, json.RawMessage(fmt.Sprintf(`["%s/out.png"]`, srv.URL)))
	fix.subs.Upsert(activeSubscription(1, 50, 49))

	result, err := fix.svc.Generate(1, makeFileHeaders(t, "cat.png"), "a cat in space")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if result.OutputImageURL == "" {
		t.Fatal("expected an output image URL")
	}
	if result.ProjectID == nil {
		t.Fatal("expected a project id")
	}
	if len(result.InputImageURLs) != 1 {
		t.Fatalf("expected 1 input URL, got %d", len(result.InputImageURLs))
	}
	if result.Prompt != "a cat in space" {
		t.Fatalf("single-image prompt should be unchanged, got %q", result.Prompt)
	}

	sub, _ := fix.subs.GetByUserID(1)
	if sub.QuotaUsed != 50 {
		t.Fatalf("quota_used = %d, want 50", sub.QuotaUsed)
	}
}

func TestGenerateDeniedAtQuotaLimitMakesNoPaidCalls(t *testing.T) {
	fix := newGenerationFixture(t, json.RawMessage(`["https://example.com/out.png"]`))
	fix.subs.Upsert(activeSubscription(1, 50, 50))

	_, err := fix.svc.Generate(1, makeFileHeaders(t, "cat.png"), "a cat in space")
	if !errors.Is(err, ErrQuotaExceeded) {
		t.Fatalf("Generate() error = %v, want ErrQuotaExceeded", err)
	}

	if fix.input.uploadCount() != 0 {
		t.Fatalf("expected no uploads on deny, got %d", fix.input.uploadCount())
	}
	if fix.gen.callCount() != 0 {
		t.Fatalf("expected no model calls on deny, got %d", fix.gen.callCount())
	}
}

func TestGenerateDeniedWithoutSubscription(t *testing.T) {
	fix := newGenerationFixture(t, json.RawMessage(`["https://example.com/out.png"]`))

	_, err := fix.svc.Generate(1, makeFileHeaders(t, "cat.png"), "a cat")
	if !errors.Is(err, ErrSubscriptionRequired) {
		t.Fatalf("Generate() error = %v, want ErrSubscriptionRequired", err)
	}
	if fix.input.uploadCount() != 0 || fix.gen.callCount() != 0 {
		t.Fatal("denied request must not touch storage or the model")
	}
}

func TestGenerateDeniedAfterCancellation(t *testing.T) {
	fix := newGenerationFixture(t, json.RawMessage(`["https://example.com/out.png"]`))
	fix.subs.Upsert(activeSubscription(1, 50, 0))
	fix.subs.UpdateStatus(1, models.SubscriptionStatusCanceled)

	_, err := fix.svc.Generate(1, makeFileHeaders(t, "cat.png"), "a cat")
	if !errors.Is(err, ErrSubscriptionRequired) {
		t.Fatalf("Generate() error = %v, want ErrSubscriptionRequired", err)
	}
}

func TestGenerateMultiImageAugmentsPrompt(t *testing.T) {
	srv := newImageServer(t)
	fix := newGenerationFixture(t, json.RawMessage(fmt.Sprintf(`"%s/out.png"`, srv.URL)))
	fix.subs.Upsert(activeSubscription(1, 0, 0))

	result, err := fix.svc.Generate(1, makeFileHeaders(t, "a.png", "b.png", "c.png"), "a dog")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if len(result.InputImageURLs) != 3 {
		t.Fatalf("expected 3 input URLs, got %d", len(result.InputImageURLs))
	}
	if result.PrimaryURL != result.InputImageURLs[0] {
		t.Fatal("primary URL must be the first uploaded image")
	}
	if !strings.Contains(result.Prompt, "3 reference images") {
		t.Fatalf("prompt should record the reference count, got %q", result.Prompt)
	}
}

func TestGenerateUnexpectedUpstreamFormat(t *testing.T) {
	tests := []struct {
		name   string
		output json.RawMessage
	}{
		{name: "object", output: json.RawMessage(`{"url":"https://example.com/x.png"}`)},
		{name: "empty list", output: json.RawMessage(`[]`)},
		{name: "number", output: json.RawMessage(`42`)},
		{name: "null", output: json.RawMessage(`null`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fix := newGenerationFixture(t, tt.output)
			fix.subs.Upsert(activeSubscription(1, 0, 0))

			_, err := fix.svc.Generate(1, makeFileHeaders(t, "cat.png"), "a cat")
			if !errors.Is(err, ErrUnexpectedUpstreamFormat) {
				t.Fatalf("Generate() error = %v, want ErrUnexpectedUpstreamFormat", err)
			}
		})
	}
}

func TestGenerateProjectInsertFailureIsNonFatal(t *testing.T) {
	srv := newImageServer(t)
	fix := newGenerationFixture(t, json.RawMessage(fmt.Sprintf(`["%s/out.png"]`, srv.URL)))
	fix.subs.Upsert(activeSubscription(1, 50, 0))
	fix.projects.createErr = errors.New("database is down")

	result, err := fix.svc.Generate(1, makeFileHeaders(t, "cat.png"), "a cat")
	if err != nil {
		t.Fatalf("Generate() error = %v, generation should survive a failed project insert", err)
	}
	if result.ProjectID != nil {
		t.Fatal("project id should be nil when the insert failed")
	}
	if result.OutputImageURL == "" {
		t.Fatal("output must still be delivered")
	}

	// Kota yine de artar
	sub, _ := fix.subs.GetByUserID(1)
	if sub.QuotaUsed != 1 {
		t.Fatalf("quota_used = %d, want 1", sub.QuotaUsed)
	}
}

func TestGenerateQuotaIncrementFailureIsNonFatal(t *testing.T) {
	srv := newImageServer(t)
	fix := newGenerationFixture(t, json.RawMessage(fmt.Sprintf(`["%s/out.png"]`, srv.URL)))
	fix.subs.Upsert(activeSubscription(1, 50, 0))
	fix.subs.incrementErr = errors.New("database is down")

	result, err := fix.svc.Generate(1, makeFileHeaders(t, "cat.png"), "a cat")
	if err != nil {
		t.Fatalf("Generate() error = %v, generation should survive a failed quota update", err)
	}
	if result.OutputImageURL == "" {
		t.Fatal("output must still be delivered")
	}
}

func TestGenerateInvalidInput(t *testing.T) {
	fix := newGenerationFixture(t, json.RawMessage(`["https://example.com/out.png"]`))
	fix.subs.Upsert(activeSubscription(1, 0, 0))

	if _, err := fix.svc.Generate(1, nil, "a cat"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("no images: error = %v, want ErrInvalidInput", err)
	}
	if _, err := fix.svc.Generate(1, makeFileHeaders(t, "cat.png"), ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("empty prompt: error = %v, want ErrInvalidInput", err)
	}
}

// N eşzamanlı başarılı üretim quota_used'ı tam N artırmalı; artış sunucu
// tarafında atomik olduğu için kayıp update olmaz.
func TestGenerateConcurrentQuotaIncrements(t *testing.T) {
	srv := newImageServer(t)
	fix := newGenerationFixture(t, json.RawMessage(fmt.Sprintf(`["%s/out.png"]`, srv.URL)))
	fix.subs.Upsert(activeSubscription(1, 0, 0))

	const n = 25
	var wg sync.WaitGroup
	errs := make(chan error, n)
	files := makeFileHeaders(t, "cat.png")

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := fix.svc.Generate(1, files, "a cat")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Fatalf("concurrent Generate() error = %v", err)
		}
	}

	sub, _ := fix.subs.GetByUserID(1)
	if sub.QuotaUsed != n {
		t.Fatalf("quota_used = %d, want exactly %d", sub.QuotaUsed, n)
	}
}

func TestNormalizeModelOutput(t *testing.T) {
	if url, err := normalizeModelOutput(json.RawMessage(`"https://x/y.png"`)); err != nil || url != "https://x/y.png" {
		t.Fatalf("single string: got (%q, %v)", url, err)
	}
	if url, err := normalizeModelOutput(json.RawMessage(`["https://x/a.png","https://x/b.png"]`)); err != nil || url != "https://x/a.png" {
		t.Fatalf("list: got (%q, %v)", url, err)
	}
	if _, err := normalizeModelOutput(json.RawMessage(`""`)); !errors.Is(err, ErrUnexpectedUpstreamFormat) {
		t.Fatalf("empty string: error = %v, want ErrUnexpectedUpstreamFormat", err)
	}
}
