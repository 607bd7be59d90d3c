package assets

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

type fakeS3 struct {
	objects map[string]string
	err     error
	keys    []string
}

func (f *fakeS3) HeadObject(ctx context.Context, in *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	key := aws.ToString(in.Key)
	f.keys = append(f.keys, key)
	if f.err != nil {
		return nil, f.err
	}
	body, ok := f.objects[key]
	if !ok {
		return nil, &types.NotFound{}
	}
	return &s3.HeadObjectOutput{
		ContentLength: aws.Int64(int64(len(body))),
		ETag:          aws.String(`"etag-1"`),
	}, nil
}

func (f *fakeS3) GetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	key := aws.ToString(in.Key)
	f.keys = append(f.keys, key)
	if f.err != nil {
		return nil, f.err
	}
	body, ok := f.objects[key]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{
		Body:          io.NopCloser(strings.NewReader(body)),
		ContentLength: aws.Int64(int64(len(body))),
		ContentType:   aws.String("application/javascript"),
		ETag:          aws.String(`"etag-1"`),
	}, nil
}

func TestS3Source(t *testing.T) {
	fake := &fakeS3{objects: map[string]string{"bundles/mwc-dialog.js": "export {};"}}
	src := NewS3Source(fake, "assets", "bundles")
	ctx := context.Background()

	info, err := src.Stat(ctx, "mwc-dialog.js")
	if err != nil {
		t.Fatalf("Stat error: %v", err)
	}
	if info.Size != 10 || info.ETag != `"etag-1"` {
		t.Errorf("info = %+v", info)
	}
	if !strings.HasPrefix(info.ContentType, "text/javascript") {
		t.Errorf("HeadObject without a content type should fall back to the extension, got %q", info.ContentType)
	}

	rc, info, err := src.Open(ctx, "/mwc-dialog.js")
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	data, _ := io.ReadAll(rc)
	rc.Close()
	if string(data) != "export {};" || info.ContentType != "application/javascript" {
		t.Errorf("Open = %q, %+v", data, info)
	}
	if fake.keys[0] != "bundles/mwc-dialog.js" {
		t.Errorf("key = %q, want prefixed key", fake.keys[0])
	}

	if _, err := src.Stat(ctx, "missing.js"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Stat missing err = %v", err)
	}
	if _, _, err := src.Open(ctx, "missing.js"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Open missing err = %v", err)
	}
	if _, err := src.Stat(ctx, "../x"); !errors.Is(err, ErrInvalidName) {
		t.Errorf("traversal err = %v", err)
	}
}

func TestS3SourceOtherErrors(t *testing.T) {
	boom := errors.New("throttled")
	src := NewS3Source(&fakeS3{err: boom}, "assets", "")
	_, err := src.Stat(context.Background(), "a.js")
	if !errors.Is(err, boom) || errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want wrapped throttled", err)
	}
	if !strings.Contains(err.Error(), "s3://assets/a.js") {
		t.Errorf("err = %q, want bucket and key", err.Error())
	}
}

func TestS3HandlerETag(t *testing.T) {
	fake := &fakeS3{objects: map[string]string{"mwc-dialog.js": "export {};"}}
	h := Handler(NewS3Source(fake, "assets", ""))

	req := httptest.NewRequest(http.MethodGet, "/mwc-dialog.js", nil)
	req.Header.Set("If-None-Match", `"etag-1"`)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotModified {
		t.Fatalf("status = %d, want 304", rec.Code)
	}
}

func TestNewS3Client(t *testing.T) {
	t.Setenv("AWS_ACCESS_KEY_ID", "")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "")
	client := NewS3Client(S3Config{Region: "eu-west-1", Endpoint: "http://localhost:9000", UsePathStyle: true})
	opts := client.Options()
	if opts.Region != "eu-west-1" {
		t.Errorf("Region = %q", opts.Region)
	}
	if aws.ToString(opts.BaseEndpoint) != "http://localhost:9000" || !opts.UsePathStyle {
		t.Errorf("endpoint options not applied: %+v", opts.BaseEndpoint)
	}
}
