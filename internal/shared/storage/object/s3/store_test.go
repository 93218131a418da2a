package s3

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"resume-critic/internal/shared/storage/object"
)

func TestObjectKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		prefix  string
		key     string
		want    string
		wantErr bool
	}{
		{name: "no prefix", prefix: "", key: "documents/a/cv.pdf", want: "documents/a/cv.pdf"},
		{name: "prefix", prefix: "root", key: "documents/a/cv.pdf", want: "root/documents/a/cv.pdf"},
		{name: "slashes trimmed", prefix: "/root/", key: "/documents/cv.pdf", want: "root/documents/cv.pdf"},
		{name: "nested prefix", prefix: "root/sub", key: "cv.pdf", want: "root/sub/cv.pdf"},
		{name: "empty key", prefix: "root", key: "  ", wantErr: true},
		{name: "traversal", prefix: "root", key: "a/../../secret", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			store := NewWithClient(&fakeGetter{}, "bucket", tt.prefix)
			got, err := store.objectKey(tt.key)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidKey) {
					t.Fatalf("expected ErrInvalidKey, got %q, %v", got, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Fatalf("objectKey(%q) = %q, %v; want %q", tt.key, got, err, tt.want)
			}
		})
	}
}

type fakeGetter struct {
	lastKey string
	body    string
	err     error
}

func (f *fakeGetter) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.lastKey = aws.ToString(params.Key)
	if f.err != nil {
		return nil, f.err
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(f.body))}, nil
}

func TestOpenAppliesPrefix(t *testing.T) {
	getter := &fakeGetter{body: "docx-bytes"}
	store := NewWithClient(getter, "bucket", "/uploads/")

	rc, err := store.Open(context.Background(), "documents/a/cv.docx")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer rc.Close()
	if getter.lastKey != "uploads/documents/a/cv.docx" {
		t.Fatalf("unexpected key %q", getter.lastKey)
	}
	data, _ := io.ReadAll(rc)
	if string(data) != "docx-bytes" {
		t.Fatalf("unexpected body %q", data)
	}
}

func TestOpenMapsNoSuchKey(t *testing.T) {
	store := NewWithClient(&fakeGetter{err: &s3types.NoSuchKey{}}, "bucket", "")
	if _, err := store.Open(context.Background(), "missing.pdf"); !errors.Is(err, object.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestOpenMapsNotFoundHead(t *testing.T) {
	store := NewWithClient(&fakeGetter{err: &s3types.NotFound{}}, "bucket", "")
	if _, err := store.Open(context.Background(), "missing.pdf"); !errors.Is(err, object.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestOpenRejectsTraversalWithoutCallingS3(t *testing.T) {
	getter := &fakeGetter{}
	store := NewWithClient(getter, "bucket", "uploads")
	if _, err := store.Open(context.Background(), "../other/cv.pdf"); !errors.Is(err, ErrInvalidKey) {
		t.Fatalf("expected ErrInvalidKey, got %v", err)
	}
	if getter.lastKey != "" {
		t.Fatalf("expected no GetObject call, got key %q", getter.lastKey)
	}
}
