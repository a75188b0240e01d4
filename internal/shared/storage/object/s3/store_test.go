package s3

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

func TestApplyPrefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		prefix string
		key    string
		want   string
	}{
		{name: "no prefix", prefix: "", key: "user/file.pdf", want: "user/file.pdf"},
		{name: "simple prefix", prefix: "resumes", key: "user/file.pdf", want: "resumes/user/file.pdf"},
		{name: "prefix trailing slash", prefix: "resumes/", key: "user/file.pdf", want: "resumes/user/file.pdf"},
		{name: "prefix and key slashes", prefix: "/resumes/", key: "/user/file.pdf", want: "resumes/user/file.pdf"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := applyPrefix(tt.prefix, tt.key); got != tt.want {
				t.Fatalf("applyPrefix(%q, %q) = %q, want %q", tt.prefix, tt.key, got, tt.want)
			}
		})
	}
}

type fakeS3 struct {
	puts    []*s3.PutObjectInput
	objects map[string][]byte
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	if f.objects == nil {
		f.objects = map[string][]byte{}
	}
	f.objects[aws.ToString(in.Key)] = body
	f.puts = append(f.puts, in)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) GetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(f.objects[aws.ToString(in.Key)]))}, nil
}

func TestPutUsesPrefixAndEncryption(t *testing.T) {
	fake := &fakeS3{}
	store := NewWithClient(fake, "bucket", "resumes/", "kms-key")

	obj, err := store.Put(context.Background(), "alice", "cv.txt", strings.NewReader("plain text resume"))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if obj.Size != int64(len("plain text resume")) {
		t.Fatalf("unexpected size %d", obj.Size)
	}
	if len(fake.puts) != 1 {
		t.Fatalf("expected one PutObject call, got %d", len(fake.puts))
	}
	in := fake.puts[0]
	if !strings.HasPrefix(aws.ToString(in.Key), "resumes/") {
		t.Fatalf("expected prefixed key, got %s", aws.ToString(in.Key))
	}
	if in.ServerSideEncryption != s3types.ServerSideEncryptionAwsKms || aws.ToString(in.SSEKMSKeyId) != "kms-key" {
		t.Fatalf("expected KMS encryption, got %v", in.ServerSideEncryption)
	}

	rc, err := store.Get(context.Background(), obj.Key)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	defer rc.Close()
	body, _ := io.ReadAll(rc)
	if string(body) != "plain text resume" {
		t.Fatalf("unexpected body %q", body)
	}
}
